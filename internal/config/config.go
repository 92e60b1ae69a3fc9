// Package config loads zkeep settings from an optional config file and
// ZKEEP_ environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Store     StoreConfig
	Form      FormConfig
	Clipboard ClipboardConfig
}

// StoreConfig locates the data file.
type StoreConfig struct {
	Path string
}

// FormConfig holds form defaults.
type FormConfig struct {
	DefaultEmail string `mapstructure:"default_email"`
}

// ClipboardConfig toggles clipboard integration.
type ClipboardConfig struct {
	Enabled bool
}

// DataDir returns the default data directory for zkeep.
func DataDir() string {
	if d := os.Getenv("XDG_DATA_HOME"); d != "" {
		return filepath.Join(d, "zkeep")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".zkeep"
	}
	return filepath.Join(home, ".local", "share", "zkeep")
}

// ConfigDir returns the directory searched for config.toml.
func ConfigDir() string {
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return filepath.Join(d, "zkeep")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".zkeep"
	}
	return filepath.Join(home, ".config", "zkeep")
}

// Load reads configuration from file and env. Env var overrides use prefix
// ZKEEP_, e.g. ZKEEP_STORE_PATH. ZKEEP_CONFIG points at an explicit file.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("store.path", filepath.Join(DataDir(), "data.json"))
	v.SetDefault("form.default_email", "")
	v.SetDefault("clipboard.enabled", true)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("ZKEEP_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(ConfigDir())
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("ZKEEP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		// a missing default config is fine; an explicit or broken one is not
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Store.Path = expandHome(c.Store.Path)
	return c, nil
}

// StoreLocation splits the store path into the directory and file name used
// to open the store.
func (c Config) StoreLocation() (dir, name string) {
	return filepath.Dir(c.Store.Path), filepath.Base(c.Store.Path)
}

func expandHome(p string) string {
	if !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[2:])
}
