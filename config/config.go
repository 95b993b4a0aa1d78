package config

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

// Config holds the configuration for the Delicious server.
type Config struct {
	// Listen is the address the server will listen on.
	Listen string `yaml:"listen" mapstructure:"listen"`
	// ServerURL is the base URL of the server, used when building absolute links.
	ServerURL string `yaml:"server_url" mapstructure:"server_url"`
	// SessionKey is the key used to authenticate session cookies.
	SessionKey string `yaml:"session_key" mapstructure:"session_key"`
	// SessionMaxAge is the maximum age of a session in seconds.
	SessionMaxAge int `yaml:"session_max_age" mapstructure:"session_max_age"`
	// MasterKey gates invite-code creation and developer registration.
	// Compared by direct equality, never stored hashed.
	MasterKey string `yaml:"master_key" mapstructure:"master_key"`
	// DeveloperInviteCode is an optional static invite code accepted in
	// addition to single-use codes from the database.
	DeveloperInviteCode string `yaml:"developer_invite_code" mapstructure:"developer_invite_code"`
	// MediaDir is the directory where uploaded images are stored.
	MediaDir string `yaml:"media_dir" mapstructure:"media_dir"`
	// Database holds the database configuration.
	Database *DatabaseConfig `yaml:"database" mapstructure:"database"`
	// LogLevel is the default log level (debug, info, warn, error).
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`
}

// DatabaseConfig holds the database configuration.
type DatabaseConfig struct {
	// Path is the directory containing the sqlite database file.
	Path string `yaml:"path" mapstructure:"path"`
}

// Load reads the configuration from the specified path and returns a Config struct.
// If path is empty, it will use default search paths for config files.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigType("yaml")
	v.SetEnvPrefix("DELICIOUS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.delicious")
		v.AddConfigPath("/etc/delicious")
	}

	if err := v.ReadInConfig(); err != nil {
		// If no config file is found, use defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		log.Debug("Using config file", "file", v.ConfigFileUsed())
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

// setDefaults sets default values for the configuration.
func setDefaults(v *viper.Viper) {
	v.SetDefault("listen", "0.0.0.0:3003")
	v.SetDefault("server_url", "http://localhost:3003")
	// Registered empty so the env-var overrides are picked up during unmarshal.
	v.SetDefault("session_key", "")
	v.SetDefault("master_key", "")
	v.SetDefault("developer_invite_code", "")
	v.SetDefault("session_max_age", 172800) // 48 hours
	v.SetDefault("media_dir", "./data/media")
	v.SetDefault("database.path", "./data")
	v.SetDefault("log_level", "info")
}

// validateConfig validates the configuration.
func validateConfig(c *Config) error {
	if c == nil {
		return fmt.Errorf("missing config")
	}
	if c.SessionKey == "" {
		return fmt.Errorf("session_key is required")
	}
	if c.Database == nil || c.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}
	if c.MasterKey == "" {
		log.Warn("No master key configured, invite-code creation and developer registration are disabled")
	}
	return nil
}
