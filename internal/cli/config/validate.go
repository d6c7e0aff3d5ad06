package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/dbmeta/pkg/core"
	"github.com/leapstack-labs/dbmeta/pkg/dialect"
	"github.com/leapstack-labs/dbmeta/pkg/plugin"
)

// PluginKey returns the registry key for the profile's plugin. Engine names
// and aliases are accepted: "postgres" -> DATASOURCE_POSTGRESQL.
func (p Profile) PluginKey() string {
	name := strings.TrimSpace(p.Plugin)
	if name == "" {
		return ""
	}
	if plugin.IsRegistered(name) {
		return strings.ToUpper(name)
	}
	if key, err := dialect.ParseKey(name); err == nil {
		return key.PluginKey()
	}
	return strings.ToUpper(name)
}

// Validate checks that the profile names a registered plugin.
func (p Profile) Validate() error {
	key := p.PluginKey()
	if key == "" {
		return &core.ConfigError{Msg: "no plugin configured\nHint: set profiles.<name>.plugin in " + DefaultConfigFile + " or pass --plugin"}
	}
	if _, err := plugin.Resolve(key); err != nil {
		return fmt.Errorf("invalid connection: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.OutputFormat {
	case "", "auto", "table", "json", "yaml":
	default:
		return &core.ConfigError{Msg: fmt.Sprintf("unknown output format %q (want auto, table, json or yaml)", c.OutputFormat)}
	}
	if _, err := c.Level(); err != nil {
		return &core.ConfigError{Msg: "invalid log_level", Err: err}
	}
	if c.Timeout < 0 {
		return &core.ConfigError{Msg: "timeout must not be negative"}
	}
	return nil
}

// Level returns the log level. Verbose raises the default warn level to info.
func (c *Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if c.LogLevel != "" {
		if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
			return 0, err
		}
	} else {
		lvl = slog.LevelWarn
	}
	if c.Verbose && lvl > slog.LevelInfo {
		lvl = slog.LevelInfo
	}
	return lvl, nil
}
