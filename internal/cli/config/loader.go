package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/leapstack-labs/dbmeta/pkg/core"
)

// loggerKey is used to store logger in context.
type loggerKey struct{}

// maxUpwardSearchLevels limits how far up the directory tree to search for config files.
const maxUpwardSearchLevels = 10

// Package-level koanf instance and config file tracking
var (
	k              = koanf.New(".")
	configFileUsed string
	currentConfig  *Config
)

var configNames = []string{"dbmeta.yaml", "dbmeta.yml", ".dbmeta.yaml"}

// configIn returns the config file in dir, or "".
func configIn(dir string) string {
	for _, name := range configNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// findConfigFile finds the config file to use.
// Priority: explicit path > nearest dbmeta.yaml upward from CWD > ~/.dbmeta/dbmeta.yaml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if cwd, err := os.Getwd(); err == nil {
		dir := cwd
		for range maxUpwardSearchLevels {
			if path := configIn(dir); path != "" {
				return path
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		return configIn(filepath.Join(home, ".dbmeta"))
	}
	return ""
}

// loadDotEnv loads .env files into the process environment. Variables that
// are already set win.
func loadDotEnv(dirs ...string) error {
	seen := map[string]bool{}
	for _, dir := range dirs {
		path := filepath.Join(dir, ".env")
		if seen[path] {
			continue
		}
		seen[path] = true
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("error reading %s: %w", path, err)
		}
	}
	return nil
}

// ResetConfig resets the koanf instance. Used for testing.
func ResetConfig() {
	k = koanf.New(".")
	configFileUsed = ""
	currentConfig = nil
}

// Load loads configuration from file, environment variables, and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k = koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]any{
		"output":    DefaultOutput,
		"verbose":   false,
		"log_level": DefaultLogLevel,
		"timeout":   DefaultTimeout.String(),
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	configFileUsed = findConfigFile(cfgFile)
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	// 3. .env next to the config file and in the working directory, then the
	// environment itself. DBMETA_PROFILES__PROD__HOST -> profiles.prod.host
	dirs := []string{"."}
	if configFileUsed != "" {
		dirs = append(dirs, filepath.Dir(configFileUsed))
	}
	if err := loadDotEnv(dirs...); err != nil {
		return nil, err
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags (highest priority)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.resolve(); err != nil {
		return nil, err
	}

	currentConfig = &cfg
	return &cfg, nil
}

// resolve selects the profile and applies per-invocation overrides. With no
// profile named and exactly one defined, that one is used.
func (c *Config) resolve() error {
	name := c.Profile
	if name == "" && len(c.Profiles) == 1 {
		for n := range c.Profiles {
			name = n
		}
	}

	var p Profile
	if name != "" {
		selected, ok := c.Profiles[name]
		if !ok {
			return &core.ConfigError{Msg: fmt.Sprintf("profile %q not found (available: %s)", name, strings.Join(c.ProfileNames(), ", "))}
		}
		p = selected
		c.Profile = name
	}

	p.Attributes = make(map[string]string)
	flattenAttributes("", p.RawAttributes, p.Attributes)
	for _, kv := range c.Attr {
		key, val, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return &core.ConfigError{Msg: fmt.Sprintf("invalid attribute %q, want key=value", kv)}
		}
		p.Attributes[strings.TrimSpace(key)] = val
	}

	if c.Plugin != "" {
		p.Plugin = c.Plugin
	}
	if c.Host != "" {
		p.Host = c.Host
	}
	if c.Port != 0 {
		p.Port = c.Port
	}
	if c.Database != "" {
		p.Database = c.Database
	}
	if c.User != "" {
		p.User = c.User
	}
	if c.Password != "" {
		p.Password = c.Password
	}

	expandProfileEnvVars(&p)
	c.Connection = p
	return nil
}

// ProfileByName returns a defined profile with its attributes flattened and
// ${VAR} references expanded. Flag overrides are not applied.
func (c *Config) ProfileByName(name string) (Profile, error) {
	p, ok := c.Profiles[name]
	if !ok {
		return Profile{}, &core.ConfigError{Msg: fmt.Sprintf("profile %q not found (available: %s)", name, strings.Join(c.ProfileNames(), ", "))}
	}
	p.Attributes = make(map[string]string)
	flattenAttributes("", p.RawAttributes, p.Attributes)
	expandProfileEnvVars(&p)
	return p, nil
}

// ProfileNames returns the defined profile names (sorted).
func (c *Config) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for n := range c.Profiles {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

func flattenAttributes(prefix string, in map[string]any, out map[string]string) {
	for key, v := range in {
		if prefix != "" {
			key = prefix + "." + key
		}
		if nested, ok := v.(map[string]any); ok {
			flattenAttributes(key, nested, out)
			continue
		}
		if v == nil {
			out[key] = ""
			continue
		}
		out[key] = fmt.Sprint(v)
	}
}

// GetConfigFileUsed returns the path to the config file being used, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// GetCurrentConfig returns the currently loaded configuration.
// This is available after Load is called.
func GetCurrentConfig() *Config {
	return currentConfig
}

// LoggerKey returns the context key used for storing the logger.
// This allows the commands package to retrieve the logger from context
// without creating an import cycle with the cli package.
func LoggerKey() any {
	return loggerKey{}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars expands ${VAR} patterns in a string with environment variable values.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if val, ok := os.LookupEnv(match[2 : len(match)-1]); ok {
			return val
		}
		return match
	})
}

// expandProfileEnvVars expands environment variables in connection fields.
func expandProfileEnvVars(p *Profile) {
	p.Plugin = expandEnvVars(p.Plugin)
	p.Host = expandEnvVars(p.Host)
	p.Database = expandEnvVars(p.Database)
	p.User = expandEnvVars(p.User)
	p.Password = expandEnvVars(p.Password)
	for key, v := range p.Attributes {
		p.Attributes[key] = expandEnvVars(v)
	}
}
