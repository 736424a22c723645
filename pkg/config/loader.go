package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config represents the complete configuration structure for hooksentry.
type Config struct {
	Scan   ScanConfig   `mapstructure:"scan"`
	Common CommonConfig `mapstructure:"common"`
}

// ScanConfig contains scanning-specific configuration
type ScanConfig struct {
	CustomPatterns string `mapstructure:"custom_patterns"`
	MaxFileSize    string `mapstructure:"max_file_size"`
}

// CommonConfig contains common configuration settings
type CommonConfig struct {
	Threads int `mapstructure:"threads"`
}

var globalViper *viper.Viper

// InitializeViper initializes the global Viper instance with config file and defaults.
// This should be called once during application initialization.
func InitializeViper(configFile string) error {
	v := viper.New()

	setDefaults(v)

	// If a config file is explicitly specified, use it
	if configFile != "" {
		v.SetConfigFile(configFile)
		log.Debug().Str("path", configFile).Msg("Using specified config file")
	} else {
		// Look for config in standard locations
		v.SetConfigName("hooksentry")
		v.SetConfigType("yaml")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "hooksentry"))
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")

		log.Debug().Msg("Searching for config file in standard locations")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Debug().Msg("No config file found, using defaults and command-line flags")
		} else {
			return fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		log.Info().Str("file", v.ConfigFileUsed()).Msg("Loaded config file")
	}

	v.SetEnvPrefix("HOOKSENTRY")
	v.AutomaticEnv()

	globalViper = v
	return nil
}

// LoadConfig initializes the configuration system from an optional file path.
func LoadConfig(configFile string) (*Config, error) {
	if err := InitializeViper(configFile); err != nil {
		return nil, err
	}
	return UnmarshalConfig()
}

// GetViper returns the global Viper instance
func GetViper() *viper.Viper {
	if globalViper == nil {
		if err := InitializeViper(""); err != nil {
			log.Fatal().Err(err).Msg("Failed to auto-initialize Viper configuration")
		}
	}
	return globalViper
}

// BindFlags binds command flags to Viper configuration keys.
// This enables automatic priority handling: CLI flags > config file > defaults.
func BindFlags(flags *pflag.FlagSet, flagMappings map[string]string) error {
	v := GetViper()
	for flagName, viperKey := range flagMappings {
		flag := flags.Lookup(flagName)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(viperKey, flag); err != nil {
			return fmt.Errorf("failed to bind flag %s to key %s: %w", flagName, viperKey, err)
		}
	}
	return nil
}

// GetString retrieves a string value using Viper's native priority handling
func GetString(key string) string {
	return GetViper().GetString(key)
}

// GetBool retrieves a bool value using Viper's native priority handling
func GetBool(key string) bool {
	return GetViper().GetBool(key)
}

// GetInt retrieves an int value using Viper's native priority handling
func GetInt(key string) int {
	return GetViper().GetInt(key)
}

// UnmarshalConfig unmarshals the configuration into a Config struct
func UnmarshalConfig() (*Config, error) {
	config := &Config{}
	if err := GetViper().Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return config, nil
}

// setDefaults sets default values for all configuration options
func setDefaults(v *viper.Viper) {
	// Sequential scanning is the default; output ordering is stable either way.
	v.SetDefault("common.threads", 1)
	v.SetDefault("scan.max_file_size", "5Mb")
	v.SetDefault("scan.custom_patterns", "")
}
