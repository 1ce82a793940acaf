// Xvgu controls a USB signal tower: three stacked LED layers and a buzzer.
//
// Each command opens the tower, sends one protocol frame (reading the reply
// for read-type commands) and releases the device again. A timed buzzer
// releases the device while it waits, so other tools can use it meanwhile.
//
// Usage:
//
//	xvgu [command] [flags]
//
// See 'xvgu --help' for available commands.
package main

import (
	"io"
	"os"
	"time"

	"github.com/google/gousb"
	"github.com/spf13/cobra"

	"github.com/xvgu/xvguctl/internal/config"
	"github.com/xvgu/xvguctl/internal/device"
	"github.com/xvgu/xvguctl/internal/dispatch"
	"github.com/xvgu/xvguctl/internal/logging"
	"github.com/xvgu/xvguctl/internal/towererr"
	"github.com/xvgu/xvguctl/internal/ui"
	"github.com/xvgu/xvguctl/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, nil))
}

// app carries global flag values and the collaborators every command uses.
type app struct {
	stdout io.Writer
	stderr io.Writer

	// Global flags
	configPath  string
	logLevel    string
	logFile     string
	format      string
	passthrough bool
	countdown   bool

	cfg     *config.Config
	printer *ui.Printer

	// openSession opens a device session; tests replace it
	openSession func(device.Config) (dispatch.Session, error)

	// waiter overrides the timed-buzzer wait; tests replace it
	waiter dispatch.Waiter
}

// run executes the CLI with args and returns the process exit code.
// A nil open uses the USB device.
func run(args []string, stdout, stderr io.Writer, open func(device.Config) (dispatch.Session, error)) int {
	a := &app{stdout: stdout, stderr: stderr, openSession: open}
	return a.execute(args)
}

func (a *app) execute(args []string) int {
	if a.openSession == nil {
		a.openSession = openUSB
	}

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	err := root.Execute()
	logging.Sync()
	if err == nil {
		return 0
	}

	// Cobra's own errors (unknown command and the like) carry no kind
	if towererr.KindOf(err) == towererr.Unknown {
		err = towererr.Wrap(towererr.InvalidArgument, err, "%s", root.Name())
	}
	if a.printer == nil {
		a.printer = ui.NewPrinter(a.stdout, a.stderr, ui.FormatText)
	}
	a.printer.Error(err)
	return 1
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "xvgu",
		Short: "Signal tower controller",
		Long: `Control a USB signal tower (LED layers and buzzer).

Every command opens the tower, sends one frame and releases it again.
Invalid arguments are rejected before the device is touched.

Settings are read from an optional YAML file; see 'xvgu config path'.
Set XVGU_LOG_LEVEL=debug (or --log-level debug) to log every frame.`,
		Version:           version.Full(),
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return a.setup() },
	}

	// Disable automatic completion command generation
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return towererr.Wrap(towererr.InvalidArgument, err, "%s", cmd.CommandPath())
	})

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Configuration file (default: $XDG_CONFIG_HOME/xvgu/config.yaml)")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error (default: $"+logging.LogLevelEnvVar+")")
	flags.StringVar(&a.logFile, "log-file", "", "Also write JSON logs to this rotating file")
	flags.StringVar(&a.format, "format", "text", "Output format: text, styled, json")
	flags.BoolVar(&a.passthrough, "passthrough", false, "Print read responses without validating the frame")
	flags.BoolVar(&a.countdown, "countdown", false, "Show a progress bar while a timed buzzer sounds")

	root.AddCommand(
		newLEDSetCmd(a),
		newBuzzerCmd(a),
		newReadCmd(a),
		newConfSetCmd(a),
		newConfReadCmd(a),
		newPtnDoCmd(a),
		newPtnSetCmd(a),
		newPtnReadCmd(a),
		newColorsCmd(a),
		newConfigCmd(a),
		newVersionCmd(a),
	)
	return root
}

// setup loads configuration, initialises logging and creates the printer.
func (a *app) setup() error {
	format, err := ui.ParseFormat(a.format)
	if err != nil {
		return err
	}
	a.printer = ui.NewPrinter(a.stdout, a.stderr, format)

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return towererr.Wrap(towererr.InvalidArgument, err, "cannot load configuration")
	}
	if a.passthrough {
		cfg.Response.Validation = config.ValidationPassthrough
	}
	a.cfg = cfg

	opts := logging.Options{
		Level:      cfg.Logging.Level,
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	}
	if a.logLevel != "" {
		opts.Level = a.logLevel
	}
	if a.logFile != "" {
		opts.File = a.logFile
	}
	if err := logging.Initialize(opts); err != nil {
		return towererr.Wrap(towererr.InvalidArgument, err, "invalid log level")
	}
	return nil
}

func (a *app) deviceConfig() device.Config {
	d := a.cfg.Device
	return device.Config{
		VendorID:     gousb.ID(d.VendorID),
		ProductID:    gousb.ID(d.ProductID),
		Interface:    d.Interface,
		AltSetting:   d.AltSetting,
		WriteTimeout: d.WriteTimeout,
		ReadTimeout:  d.ReadTimeout,
	}
}

// dispatcher builds a Dispatcher from the loaded configuration.
func (a *app) dispatcher() *dispatch.Dispatcher {
	devCfg := a.deviceConfig()
	opener := dispatch.OpenerFunc(func() (dispatch.Session, error) {
		return a.openSession(devCfg)
	})

	d := dispatch.New(opener, logging.GetLogger())
	d.Validation = dispatch.ValidationMode(a.cfg.Response.Validation)
	d.BuzzerOpts.ReopenAttempts = a.cfg.Buzzer.ReopenAttempts
	d.BuzzerOpts.ReopenDelay = a.cfg.Buzzer.ReopenDelay
	d.BuzzerOpts.Waiter = a.buzzerWaiter()
	return d
}

func (a *app) buzzerWaiter() dispatch.Waiter {
	if a.waiter != nil {
		return a.waiter
	}
	if a.countdown && a.printer.Format() != ui.FormatJSON && ui.IsTerminal(a.stdout) {
		return ui.CountdownWaiter{Out: a.stdout}
	}
	return dispatch.SleepWaiter
}

// openUSB opens the real device. A failed open must return a nil interface,
// not a nil *device.Session.
func openUSB(cfg device.Config) (dispatch.Session, error) {
	s, err := device.Open(cfg, logging.GetLogger())
	if err != nil {
		return nil, err
	}
	return s, nil
}

// maxBuzzSeconds bounds --seconds so the duration cannot overflow.
const maxBuzzSeconds = float64(24 * time.Hour / time.Second)
