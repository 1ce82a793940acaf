package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Response validation modes
const (
	ValidationStrict      = "strict"
	ValidationPassthrough = "passthrough"
)

// Config represents the entire configuration file.
type Config struct {
	Version  int            `yaml:"version"`
	Device   DeviceConfig   `yaml:"device"`
	Response ResponseConfig `yaml:"response"`
	Buzzer   BuzzerConfig   `yaml:"buzzer"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DeviceConfig selects the USB device and its transfer timeouts.
type DeviceConfig struct {
	VendorID     HexID         `yaml:"vendor_id"`
	ProductID    HexID         `yaml:"product_id"`
	Interface    int           `yaml:"interface"`
	AltSetting   int           `yaml:"alt_setting"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
}

// ResponseConfig controls how read-back frames are checked.
type ResponseConfig struct {
	Validation string `yaml:"validation"` // strict or passthrough
}

// BuzzerConfig is the re-open policy for timed buzzer runs.
type BuzzerConfig struct {
	ReopenAttempts int           `yaml:"reopen_attempts"`
	ReopenDelay    time.Duration `yaml:"reopen_delay"`
}

// LoggingConfig mirrors the --log-level / --log-file flags.
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`
	File       string `yaml:"file,omitempty"`
	MaxSizeMB  int    `yaml:"max_size_mb,omitempty"`
	MaxBackups int    `yaml:"max_backups,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Version: 1,
		Device: DeviceConfig{
			VendorID:     0x16DE,
			ProductID:    0x000C,
			Interface:    1,
			AltSetting:   0,
			WriteTimeout: time.Second,
			ReadTimeout:  time.Second,
		},
		Response: ResponseConfig{
			Validation: ValidationStrict,
		},
		Buzzer: BuzzerConfig{
			ReopenAttempts: 1,
			ReopenDelay:    500 * time.Millisecond,
		},
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Version != 1 {
		return fmt.Errorf("unsupported config version: %d (expected 1)", c.Version)
	}
	if c.Device.Interface < 0 || c.Device.AltSetting < 0 {
		return fmt.Errorf("device.interface and device.alt_setting must not be negative")
	}
	if c.Device.WriteTimeout <= 0 || c.Device.ReadTimeout <= 0 {
		return fmt.Errorf("device timeouts must be positive")
	}
	switch c.Response.Validation {
	case ValidationStrict, ValidationPassthrough:
	default:
		return fmt.Errorf("response.validation must be %q or %q, got %q",
			ValidationStrict, ValidationPassthrough, c.Response.Validation)
	}
	if c.Buzzer.ReopenAttempts < 1 {
		return fmt.Errorf("buzzer.reopen_attempts must be at least 1")
	}
	if c.Buzzer.ReopenDelay < 0 {
		return fmt.Errorf("buzzer.reopen_delay must not be negative")
	}
	return nil
}

// HexID is a 16-bit USB identifier written as "0x16DE" in YAML.
type HexID uint16

func (h HexID) String() string {
	return fmt.Sprintf("0x%04X", uint16(h))
}

// MarshalYAML implements yaml.Marshaler
func (h HexID) MarshalYAML() (interface{}, error) {
	return h.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler. Accepts "0x16DE", "16de" or a
// decimal integer.
func (h *HexID) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: USB id must be a scalar", value.Line)
	}
	id, err := ParseHexID(value.Value, value.Tag == "!!int")
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*h = id
	return nil
}

// ParseHexID parses a USB id. Strings are hexadecimal with optional 0x
// prefix unless decimal is set.
func ParseHexID(s string, decimal bool) (HexID, error) {
	s = strings.TrimSpace(s)
	base := 16
	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, "0x"):
		s = s[2:]
	case decimal:
		base = 10
	}
	v, err := strconv.ParseUint(s, base, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid USB id %q: %w", s, err)
	}
	return HexID(v), nil
}
