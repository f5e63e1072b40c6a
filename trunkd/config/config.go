package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config holds all configuration for the trunkd service
type Config struct {
	Daemon DaemonConfig `mapstructure:"daemon"`
	NATS   NATSConfig   `mapstructure:"nats"`
	Psvm   PsvmConfig   `mapstructure:"psvm"`
}

// DaemonConfig holds the daemon configuration
type DaemonConfig struct {
	BaseDir string `mapstructure:"base_dir"`
	Debug   bool   `mapstructure:"debug"`
}

// NATSConfig holds the NATS configuration
type NATSConfig struct {
	Host string  `mapstructure:"host"`
	ACL  NATSACL `mapstructure:"acl"`
}

// NATSACL holds the NATS ACL configuration
type NATSACL struct {
	Token string `mapstructure:"token"`
}

// PsvmConfig holds the physical switch vlan manager configuration
type PsvmConfig struct {
	// Enabled gates the daemon, which refuses to start without it. The
	// one-shot sync and vlan commands do not check it.
	Enabled bool `mapstructure:"enabled"`
	// Plugin selects the switch plugin family.
	Plugin string `mapstructure:"plugin"`
	// Driver selects the transport within the plugin family.
	Driver string `mapstructure:"driver"`
	// IgnoreVlans are never removed from a trunk during sync, i.e. the
	// native VLAN.
	IgnoreVlans []int `mapstructure:"ignore_vlans"`
	// SyncInterval is the periodic sync tick in seconds. 0 disables the
	// ticker; sync then only runs on bus request.
	SyncInterval int `mapstructure:"sync_interval"`
}

// LoadConfig loads the configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Set environment variable prefix
	viper.SetEnvPrefix("TRUNKD")
	viper.AutomaticEnv()

	// Defaults matching the platform's switch-manager knobs
	viper.SetDefault("psvm.plugin", "cisco.nexus.plugin")
	viper.SetDefault("psvm.driver", "cisco.nexus.driver")
	viper.SetDefault("psvm.ignore_vlans", []int{1})
	viper.SetDefault("psvm.sync_interval", 0)

	// Try to load config file if it exists
	if configPath != "" {
		// Check if file exists
		if _, err := os.Stat(configPath); err == nil {
			viper.SetConfigFile(configPath)
			viper.SetConfigType("toml")

			if err := viper.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
		} else {
			fmt.Fprintf(os.Stderr, "Config file not found: %s, using environment variables and defaults\n", configPath)
		}
	}

	// Create config struct
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate required fields
	if config.NATS.Host == "" {
		return nil, fmt.Errorf("NATS host is required")
	}

	for _, id := range config.Psvm.IgnoreVlans {
		if id < 1 || id > 4094 {
			return nil, fmt.Errorf("ignore vlan %d out of range", id)
		}
	}

	return &config, nil
}
