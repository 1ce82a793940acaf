// Package config provides the optional configuration file for the xvgu tools.
//
// The tower works with no configuration at all: every setting has a default
// matching the stock XVGU3 hardware. A YAML file can override the USB
// identifiers, transfer timeouts, response validation mode, timed-buzzer
// re-open policy and logging.
//
// # Configuration File Location
//
//   - Linux: $XDG_CONFIG_HOME/xvgu/config.yaml or $HOME/.config/xvgu/config.yaml
//   - macOS: $HOME/.config/xvgu/config.yaml
//   - Windows: %LOCALAPPDATA%\xvgu\config.yaml
//
// # Example
//
//	version: 1
//	device:
//	  vendor_id: "0x16DE"
//	  product_id: "0x000C"
//	  interface: 1
//	  alt_setting: 0
//	  write_timeout: 1s
//	  read_timeout: 1s
//	response:
//	  validation: strict
//	buzzer:
//	  reopen_attempts: 3
//	  reopen_delay: 500ms
//
// # Usage Example
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Device.WriteTimeout)
package config
