package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Log      LogConfig
	UI       UIConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// LogConfig holds diagnostic log settings. The TUI owns stdout, so logs
// always go to a file.
type LogConfig struct {
	Path  string
	Level string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	DateFormat  string `mapstructure:"date_format"`
	DefaultView string `mapstructure:"default_view"` // "grid" or "list"
}

// Load reads configuration from file and env. Env var overrides use prefix HABITFS_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "habitfs", "habitfs.db"))
	v.SetDefault("log.path", filepath.Join(os.Getenv("HOME"), ".local", "state", "habitfs", "habitfs.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("ui.date_format", "02/01")
	v.SetDefault("ui.default_view", "grid")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("HABITFS_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "habitfs"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("HABITFS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if
// needed. Honors the same HABITFS_CONFIG override as Load.
func Save(cfg Config) error {
	path := os.Getenv("HABITFS_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "habitfs", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("ui.date_format", cfg.UI.DateFormat)
	v.Set("ui.default_view", cfg.UI.DefaultView)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
