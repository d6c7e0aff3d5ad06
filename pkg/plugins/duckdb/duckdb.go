// Package duckdb provides the DuckDB plugin, backed by go-duckdb.
//
// Database is a file path; leave it blank for an in-memory database.
package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strconv"

	"github.com/marcboeker/go-duckdb"

	"github.com/leapstack-labs/dbmeta/pkg/core"
	"github.com/leapstack-labs/dbmeta/pkg/dialect"
	duckdialect "github.com/leapstack-labs/dbmeta/pkg/dialects/duckdb"
	"github.com/leapstack-labs/dbmeta/pkg/plugin"
)

func init() {
	plugin.Register(dialect.DuckDB.PluginKey(), New)
}

// Attributes are the DuckDB-specific connection attributes.
// Anything else is passed as a DuckDB configuration option.
type Attributes struct {
	// Extensions to install and load on every new connection (e.g. "json,httpfs").
	Extensions  []string `mapstructure:"extensions"`
	AccessMode  string   `mapstructure:"access_mode"`
	Threads     int      `mapstructure:"threads"`
	MemoryLimit string   `mapstructure:"memory_limit"`
}

var extensionName = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// New creates a DuckDB plugin. The database file is opened on first use.
func New(params core.ConnectionParams, logger *slog.Logger) (plugin.Plugin, error) {
	var attrs Attributes
	extra, err := plugin.DecodeAttributes(params.Attributes, &attrs)
	if err != nil {
		return nil, err
	}
	for _, ext := range attrs.Extensions {
		if !extensionName.MatchString(ext) {
			return nil, &core.ConfigError{Msg: fmt.Sprintf("duckdb: invalid extension name %q", ext)}
		}
	}
	dsn := DSN(params, attrs, extra)

	b, err := plugin.NewBase(plugin.Config{
		Key:        dialect.DuckDB.PluginKey(),
		Dialect:    duckdialect.DuckDB,
		Params:     params,
		URL:        URL(params),
		DriverName: "duckdb",
		Open: func() (*sql.DB, error) {
			connector, err := duckdb.NewConnector(dsn, loadExtensions(attrs.Extensions))
			if err != nil {
				return nil, err
			}
			return sql.OpenDB(connector), nil
		},
	}, logger)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func loadExtensions(exts []string) func(driver.ExecerContext) error {
	return func(execer driver.ExecerContext) error {
		ctx := context.Background()
		for _, ext := range exts {
			if _, err := execer.ExecContext(ctx, "INSTALL "+ext, nil); err != nil {
				return fmt.Errorf("install extension %s: %w", ext, err)
			}
			if _, err := execer.ExecContext(ctx, "LOAD "+ext, nil); err != nil {
				return fmt.Errorf("load extension %s: %w", ext, err)
			}
		}
		return nil
	}
}

// DSN returns the database path followed by configuration options.
func DSN(p core.ConnectionParams, attrs Attributes, extra map[string]string) string {
	q := url.Values{}
	for k, v := range extra {
		q.Set(k, v)
	}
	if attrs.AccessMode != "" {
		q.Set("access_mode", attrs.AccessMode)
	}
	if attrs.Threads > 0 {
		q.Set("threads", strconv.Itoa(attrs.Threads))
	}
	if attrs.MemoryLimit != "" {
		q.Set("memory_limit", attrs.MemoryLimit)
	}
	if len(q) == 0 {
		return p.Database
	}
	return p.Database + "?" + q.Encode()
}

// URL returns the display URL: duckdb:<path> or duckdb::memory:.
func URL(p core.ConnectionParams) string {
	if p.Database == "" {
		return "duckdb::memory:"
	}
	return "duckdb:" + p.Database
}
