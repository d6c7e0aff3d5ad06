package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/dbmeta/pkg/core"
	_ "github.com/leapstack-labs/dbmeta/pkg/plugins/postgres"
)

const profilesYAML = `profile: dev
output: json
profiles:
  dev:
    plugin: postgres
    host: localhost
    port: 5432
    database: shop
    user: app
    password: ${DBMETA_TEST_PASSWORD}
    attributes:
      sslmode: disable
      pool.max_open: 8
  prod:
    plugin: DATASOURCE_MYSQL
    host: db.internal
    database: shop
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "dbmeta.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("profile", "", "")
	fs.String("plugin", "", "")
	fs.String("host", "", "")
	fs.Int("port", 0, "")
	fs.String("database", "", "")
	fs.String("output", "", "")
	fs.StringSlice("attr", nil, "")
	fs.String("log-level", "", "")
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoad_Profile(t *testing.T) {
	ResetConfig()
	t.Setenv("DBMETA_TEST_PASSWORD", "s3cret")
	path := writeConfig(t, profilesYAML)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, path, GetConfigFileUsed())
	assert.Same(t, cfg, GetCurrentConfig())
	assert.Equal(t, "dev", cfg.Profile)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, []string{"dev", "prod"}, cfg.ProfileNames())

	conn := cfg.Connection
	assert.Equal(t, "postgres", conn.Plugin)
	assert.Equal(t, "DATASOURCE_POSTGRESQL", conn.PluginKey())
	assert.Equal(t, 5432, conn.Port)
	assert.Equal(t, "s3cret", conn.Password)
	assert.Equal(t, map[string]string{"sslmode": "disable", "pool.max_open": "8"}, conn.Attributes)

	params := conn.Params()
	assert.Equal(t, "shop", params.Database)
	assert.Equal(t, "8", params.Attr("pool.max_open"))
}

func TestProfileByName(t *testing.T) {
	ResetConfig()
	t.Setenv("DBMETA_TEST_PASSWORD", "s3cret")
	path := writeConfig(t, profilesYAML)

	cfg, err := Load(path, newFlags(t, "--host", "override"))
	require.NoError(t, err)

	dev, err := cfg.ProfileByName("dev")
	require.NoError(t, err)
	assert.Equal(t, "localhost", dev.Host, "flag overrides apply to the selected connection only")
	assert.Equal(t, "s3cret", dev.Password)
	assert.Equal(t, "8", dev.Attributes["pool.max_open"])

	prod, err := cfg.ProfileByName("prod")
	require.NoError(t, err)
	assert.Equal(t, "DATASOURCE_MYSQL", prod.PluginKey())
	assert.Empty(t, prod.Attributes)

	_, err = cfg.ProfileByName("staging")
	assert.ErrorIs(t, err, core.ErrConfig)
}

func TestLoad_Precedence(t *testing.T) {
	ResetConfig()
	path := writeConfig(t, profilesYAML)
	t.Setenv("DBMETA_PROFILE", "prod")
	t.Setenv("DBMETA_TIMEOUT", "5s")
	t.Setenv("DBMETA_PROFILES__PROD__USER", "reader")

	flags := newFlags(t, "--host", "replica.internal", "--port", "3307", "--attr", "tls=true", "--attr", "charset=utf8mb4")
	cfg, err := Load(path, flags)
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Profile)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	conn := cfg.Connection
	assert.Equal(t, "DATASOURCE_MYSQL", conn.PluginKey())
	assert.Equal(t, "replica.internal", conn.Host, "flag overrides profile")
	assert.Equal(t, 3307, conn.Port)
	assert.Equal(t, "reader", conn.User, "env reaches into profiles")
	assert.Equal(t, map[string]string{"tls": "true", "charset": "utf8mb4"}, conn.Attributes)
}

func TestLoad_FlagSelectsProfile(t *testing.T) {
	ResetConfig()
	path := writeConfig(t, profilesYAML)

	cfg, err := Load(path, newFlags(t, "--profile", "prod", "--output", "yaml"))
	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.Connection.Host)
	assert.Equal(t, "yaml", cfg.OutputFormat)
}

func TestLoad_SingleProfileIsDefault(t *testing.T) {
	ResetConfig()
	path := writeConfig(t, "profiles:\n  only:\n    plugin: duckdb\n    database: ':memory:'\n")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "only", cfg.Profile)
	assert.Equal(t, ":memory:", cfg.Connection.Database)
}

func TestLoad_NoConfigFile(t *testing.T) {
	ResetConfig()
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("", newFlags(t, "--plugin", "postgres", "--database", "shop"))
	require.NoError(t, err)
	assert.Empty(t, GetConfigFileUsed())
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.Equal(t, "shop", cfg.Connection.Database)
	assert.NoError(t, cfg.Connection.Validate())
}

func TestLoad_DotEnv(t *testing.T) {
	ResetConfig()
	path := writeConfig(t, "profiles:\n  dev:\n    plugin: postgres\n    password: ${DBMETA_DOTENV_SECRET}\n")
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), ".env"), []byte("DBMETA_DOTENV_SECRET=from-dotenv\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("DBMETA_DOTENV_SECRET") })

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Connection.Password)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("unknown profile", func(t *testing.T) {
		ResetConfig()
		path := writeConfig(t, profilesYAML)
		_, err := Load(path, newFlags(t, "--profile", "staging"))
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrConfig)
		assert.Contains(t, err.Error(), "dev, prod")
	})

	t.Run("malformed attribute", func(t *testing.T) {
		ResetConfig()
		path := writeConfig(t, profilesYAML)
		_, err := Load(path, newFlags(t, "--attr", "novalue"))
		assert.ErrorIs(t, err, core.ErrConfig)
	})

	t.Run("missing file", func(t *testing.T) {
		ResetConfig()
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
		assert.Error(t, err)
	})
}

func TestProfileValidate(t *testing.T) {
	tests := []struct {
		name    string
		plugin  string
		wantErr bool
	}{
		{"engine name", "postgres", false},
		{"plugin key", "DATASOURCE_POSTGRESQL", false},
		{"lower-case key", "datasource_postgresql", false},
		{"missing", "", true},
		{"unknown", "DATASOURCE_NOPE", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Profile{Plugin: tt.plugin}.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, core.ErrConfig)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestConfigValidateAndLevel(t *testing.T) {
	cfg := &Config{OutputFormat: "yaml", LogLevel: "debug"}
	require.NoError(t, cfg.Validate())
	lvl, _ := cfg.Level()
	assert.Equal(t, slog.LevelDebug, lvl)

	cfg = &Config{LogLevel: "warn", Verbose: true}
	lvl, _ = cfg.Level()
	assert.Equal(t, slog.LevelInfo, lvl)

	assert.ErrorIs(t, (&Config{OutputFormat: "xml"}).Validate(), core.ErrConfig)
	assert.ErrorIs(t, (&Config{LogLevel: "loud"}).Validate(), core.ErrConfig)
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("TEST_VAR_ONE", "value_one")
	t.Setenv("TEST_VAR_EMPTY", "")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"single variable", "${TEST_VAR_ONE}", "value_one"},
		{"variable in text", "host-${TEST_VAR_ONE}.internal", "host-value_one.internal"},
		{"set but empty", "${TEST_VAR_EMPTY}", ""},
		{"unset variable stays as-is", "${UNSET_VARIABLE}", "${UNSET_VARIABLE}"},
		{"no variables", "plain string", "plain string"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, expandEnvVars(tt.input))
		})
	}
}
