// SPDX-License-Identifier: MPL-2.0

// Package config loads the shim's configuration file and environment into
// the invocation configuration consumed by the core packages. Only this
// package and cmd/ touch viper or ambient environment; the core receives
// an already-built configuration object.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"runcshim/internal/runc"
)

const (
	// AppName is the application name, used for the config directory.
	AppName = "runcshim"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "toml"
)

type (
	// RuntimeConfig configures invocations of the runtime binary.
	RuntimeConfig struct {
		Command       string        `mapstructure:"command"`
		Root          string        `mapstructure:"root"`
		Debug         bool          `mapstructure:"debug"`
		Log           string        `mapstructure:"log"`
		LogFormat     string        `mapstructure:"log_format"`
		SystemdCgroup bool          `mapstructure:"systemd_cgroup"`
		Rootless      *bool         `mapstructure:"rootless"`
		SetPgid       bool          `mapstructure:"set_pgid"`
		Timeout       time.Duration `mapstructure:"timeout"`
	}

	// LogConfig configures the shim's own logging.
	LogConfig struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	}

	// Config is the full shim configuration.
	Config struct {
		Runtime RuntimeConfig `mapstructure:"runtime"`
		Log     LogConfig     `mapstructure:"log"`
	}
)

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Runtime: RuntimeConfig{
			Command: runc.DefaultCommand,
			Timeout: 5 * time.Second,
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// ConfigDir returns the shim configuration directory:
// $XDG_CONFIG_HOME/runcshim, defaulting to ~/.config/runcshim.
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, AppName), nil
}

// Load reads the configuration from the given file, or from the default
// location when path is empty, with RUNCSHIM_* environment variables taking
// precedence over the file. A missing file yields the defaults without an
// error; a malformed file is an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType(ConfigFileExt)
	v.SetEnvPrefix("RUNCSHIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Register every key with its default so env lookups see it even when
	// no config file mentions it.
	defaults := Default()
	v.SetDefault("runtime.command", defaults.Runtime.Command)
	v.SetDefault("runtime.root", defaults.Runtime.Root)
	v.SetDefault("runtime.debug", defaults.Runtime.Debug)
	v.SetDefault("runtime.log", defaults.Runtime.Log)
	v.SetDefault("runtime.log_format", defaults.Runtime.LogFormat)
	v.SetDefault("runtime.systemd_cgroup", defaults.Runtime.SystemdCgroup)
	v.SetDefault("runtime.set_pgid", defaults.Runtime.SetPgid)
	v.SetDefault("runtime.timeout", defaults.Runtime.Timeout)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		dir, err := ConfigDir()
		if err != nil {
			return nil, err
		}
		v.SetConfigName(ConfigFileName)
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// No file at the default location: defaults and env still apply.
	}
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// RuncOptions translates the runtime section into the invoker's
// constructor options.
func (c *Config) RuncOptions() []runc.Opt {
	r := c.Runtime
	opts := []runc.Opt{
		runc.WithCommand(r.Command),
		runc.WithRoot(r.Root),
		runc.WithDebug(r.Debug),
		runc.WithLog(r.Log),
		runc.WithLogFormat(runc.LogFormat(r.LogFormat)),
		runc.WithSystemdCgroup(r.SystemdCgroup),
		runc.WithSetPgid(r.SetPgid),
		runc.WithTimeout(r.Timeout),
	}
	if r.Rootless != nil {
		opts = append(opts, runc.WithRootless(*r.Rootless))
	}
	return opts
}
