// Package config resolves the tool's settings from built-in defaults, an
// optional config file and IFPREFIX_* environment overrides, highest last.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// DefaultConfigDir is where the optional config file is searched for.
const DefaultConfigDir = "/etc/ifprefix"

type Config struct {
	logLevel    string
	recordsDir  string
	lockFile    string
	cmdlinePath string
}

// Load reads config.toml from configDir when present and applies
// environment overrides. A missing config file leaves the defaults.
func Load(configDir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	v.SetDefault("log_level", "info")
	v.SetDefault("records_dir", "/etc/systemd/network")
	v.SetDefault("lock_file", "/run/lock/net-prefix-ifnames.lock")
	v.SetDefault("cmdline_path", "/proc/cmdline")

	v.SetEnvPrefix("IFPREFIX")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return &Config{
		logLevel:    v.GetString("log_level"),
		recordsDir:  v.GetString("records_dir"),
		lockFile:    v.GetString("lock_file"),
		cmdlinePath: v.GetString("cmdline_path"),
	}, nil
}

// LogLevel returns the zerolog level name.
func (c *Config) LogLevel() string {
	return c.logLevel
}

// RecordsDir returns the directory holding the record files.
func (c *Config) RecordsDir() string {
	return c.recordsDir
}

// LockFile returns the path of the cross-process lock file.
func (c *Config) LockFile() string {
	return c.lockFile
}

// CmdlinePath returns the path of the kernel command line.
func (c *Config) CmdlinePath() string {
	return c.cmdlinePath
}
