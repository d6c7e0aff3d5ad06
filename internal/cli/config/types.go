// Package config provides configuration management for the dbmeta CLI.
//
// Settings come from dbmeta.yaml, DBMETA_* environment variables and command
// line flags. A config file holds named connection profiles; one is selected
// with `profile` and individual fields can be overridden per invocation.
package config

import (
	"maps"
	"time"

	"github.com/leapstack-labs/dbmeta/pkg/core"
)

// Profile is one named connection.
type Profile struct {
	Plugin     string            `koanf:"plugin"`
	Host       string            `koanf:"host"`
	Port       int               `koanf:"port"`
	Database   string            `koanf:"database"`
	User       string            `koanf:"user"`
	Password   string            `koanf:"password"`
	Attributes map[string]string `koanf:"-"`

	// RawAttributes is the attributes block as loaded. Dotted names such as
	// pool.max_open arrive nested and are flattened into Attributes.
	RawAttributes map[string]any `koanf:"attributes"`
}

// Params converts the profile to plugin connection parameters.
func (p Profile) Params() core.ConnectionParams {
	attrs := make(map[string]string, len(p.Attributes))
	maps.Copy(attrs, p.Attributes)
	return core.ConnectionParams{
		Host:       p.Host,
		Port:       p.Port,
		Database:   p.Database,
		User:       p.User,
		Password:   p.Password,
		Attributes: attrs,
	}
}

// Config holds all CLI configuration options.
type Config struct {
	Profile      string             `koanf:"profile"`
	OutputFormat string             `koanf:"output"`
	Verbose      bool               `koanf:"verbose"`
	LogLevel     string             `koanf:"log_level"`
	Timeout      time.Duration      `koanf:"timeout"`
	Profiles     map[string]Profile `koanf:"profiles"`

	// Per-invocation overrides, applied over the selected profile.
	Plugin   string   `koanf:"plugin"`
	Host     string   `koanf:"host"`
	Port     int      `koanf:"port"`
	Database string   `koanf:"database"`
	User     string   `koanf:"user"`
	Password string   `koanf:"password"`
	Attr     []string `koanf:"attr"`

	// Connection is the selected profile with overrides applied.
	Connection Profile `koanf:"-"`
}

// Default configuration values.
const (
	DefaultConfigFile = "dbmeta.yaml"
	DefaultOutput     = "auto" // table on a terminal, table without colors otherwise
	DefaultLogLevel   = "warn"
	DefaultTimeout    = 30 * time.Second
	EnvPrefix         = "DBMETA_"
)
