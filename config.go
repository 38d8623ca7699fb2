package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	// BindAddress is the address the control server listens on (e.g. "127.0.0.1:8080")
	BindAddress string `yaml:"bind_address"`
	// SerialPorts are the bound RFCOMM channels, one hands-free unit each (e.g. "/dev/rfcomm0")
	SerialPorts []string `yaml:"serial_ports"`
	// BaudRate is the baud rate of the serial ports (e.g. 115200)
	BaudRate int `yaml:"baud_rate"`
	// LogLevel sets the logging level (e.g. "debug", "info", "warn", "error")
	LogLevel string `yaml:"log_level"`
	// Features names the gateway features to advertise. Empty means all.
	Features []string `yaml:"features"`
	// OperatorName is reported to the hands-free unit by AT+COPS?
	OperatorName string `yaml:"operator_name"`
	// SubscriberNumber is reported by AT+CNUM
	SubscriberNumber string `yaml:"subscriber_number"`
	// BackendTimeout bounds every telephony request
	BackendTimeout time.Duration `yaml:"backend_timeout"`
	// MaxConsecutiveErrors closes a connection whose peer keeps failing
	MaxConsecutiveErrors int `yaml:"max_consecutive_errors"`
	// RedialInterval is the pause before reopening a port whose peer went away
	RedialInterval time.Duration `yaml:"redial_interval"`
}

// ConfigOption is a function that modifies a Config
type ConfigOption func(*Config) error

// LoadConfig creates a new config by applying the given options in order
func LoadConfig(opts ...ConfigOption) (*Config, error) {
	config := &Config{}

	for _, opt := range opts {
		if err := opt(config); err != nil {
			return nil, err
		}
	}

	return config, nil
}

// WithDefaults applies default configuration values
func WithDefaults() ConfigOption {
	return func(c *Config) error {
		c.BindAddress = "127.0.0.1:8080"
		c.SerialPorts = []string{"/dev/rfcomm0"}
		c.BaudRate = 115200
		c.LogLevel = "info"
		c.BackendTimeout = 10 * time.Second
		c.MaxConsecutiveErrors = 10
		c.RedialInterval = 5 * time.Second
		return nil
	}
}

// WithFile overlays the keys present in a YAML file. An empty path is a no-op.
func WithFile(path string) ConfigOption {
	return func(c *Config) error {
		if path == "" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parsing config file %s: %w", path, err)
		}
		return nil
	}
}

// WithEnv loads configuration from environment variables
func WithEnv() ConfigOption {
	return func(c *Config) error {
		if addr := os.Getenv("BIND_ADDRESS"); addr != "" {
			c.BindAddress = addr
		}

		if ports := os.Getenv("SERIAL_PORTS"); ports != "" {
			c.SerialPorts = splitList(ports)
		}

		if baud := os.Getenv("BAUD_RATE"); baud != "" {
			if b, err := strconv.Atoi(baud); err == nil {
				c.BaudRate = b
			}
		}

		if level := os.Getenv("LOG_LEVEL"); level != "" {
			c.LogLevel = level
		}

		if features := os.Getenv("AG_FEATURES"); features != "" {
			c.Features = splitList(features)
		}

		if name := os.Getenv("OPERATOR_NAME"); name != "" {
			c.OperatorName = name
		}

		if number := os.Getenv("SUBSCRIBER_NUMBER"); number != "" {
			c.SubscriberNumber = number
		}

		return nil
	}
}

// WithFlags loads configuration from command-line flags that were set explicitly
func WithFlags(fSet *pflag.FlagSet) ConfigOption {
	return func(c *Config) error {
		var err error
		fSet.Visit(func(f *pflag.Flag) {
			switch f.Name {
			case "bind-address":
				c.BindAddress = f.Value.String()
			case "serial-port":
				c.SerialPorts, err = fSet.GetStringSlice(f.Name)
			case "baud-rate":
				c.BaudRate, err = fSet.GetInt(f.Name)
			case "log-level":
				c.LogLevel = f.Value.String()
			case "features":
				c.Features, err = fSet.GetStringSlice(f.Name)
			case "operator-name":
				c.OperatorName = f.Value.String()
			case "subscriber-number":
				c.SubscriberNumber = f.Value.String()
			}
		})
		return err
	}
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
