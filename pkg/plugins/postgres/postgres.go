// Package postgres provides the PostgreSQL plugin, backed by pgx.
//
// Import this package with a blank identifier to register DATASOURCE_POSTGRESQL:
//
//	import _ "github.com/leapstack-labs/dbmeta/pkg/plugins/postgres"
package postgres

import (
	"database/sql"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/leapstack-labs/dbmeta/pkg/core"
	"github.com/leapstack-labs/dbmeta/pkg/dialect"
	pgdialect "github.com/leapstack-labs/dbmeta/pkg/dialects/postgres"
	"github.com/leapstack-labs/dbmeta/pkg/plugin"
)

// DefaultPort is used when the connection params carry no port.
const DefaultPort = 5432

func init() {
	plugin.Register(dialect.PostgreSQL.PluginKey(), New)
}

// Attributes are the PostgreSQL-specific connection attributes.
// Anything else is passed to the server as a runtime parameter.
type Attributes struct {
	SSLMode         string        `mapstructure:"sslmode"`
	ConnectTimeout  time.Duration `mapstructure:"connect_timeout"`
	SearchPath      string        `mapstructure:"search_path"`
	ApplicationName string        `mapstructure:"application_name"`
}

// New creates a PostgreSQL plugin. The pool is opened on first use.
func New(params core.ConnectionParams, logger *slog.Logger) (plugin.Plugin, error) {
	var attrs Attributes
	extra, err := plugin.DecodeAttributes(params.Attributes, &attrs)
	if err != nil {
		return nil, err
	}
	dsn := DSN(params, attrs, extra)

	b, err := plugin.NewBase(plugin.Config{
		Key:        dialect.PostgreSQL.PluginKey(),
		Dialect:    pgdialect.Postgres,
		Params:     params,
		URL:        URL(params),
		DriverName: "pgx",
		Open: func() (*sql.DB, error) {
			cfg, err := pgx.ParseConfig(dsn)
			if err != nil {
				return nil, err
			}
			return stdlib.OpenDB(*cfg), nil
		},
	}, logger)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// DSN builds the pgx connection URL. sslmode defaults to disable.
func DSN(p core.ConnectionParams, attrs Attributes, extra map[string]string) string {
	u := url.URL{
		Scheme: "postgres",
		Host:   p.Address(DefaultPort),
		Path:   "/" + p.Database,
	}
	if p.User != "" {
		u.User = url.UserPassword(p.User, p.Password)
	}

	q := url.Values{}
	for k, v := range extra {
		q.Set(k, v)
	}
	sslmode := attrs.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	q.Set("sslmode", sslmode)
	if attrs.ConnectTimeout > 0 {
		q.Set("connect_timeout", strconv.Itoa(int(attrs.ConnectTimeout.Seconds())))
	}
	if attrs.SearchPath != "" {
		q.Set("search_path", attrs.SearchPath)
	}
	if attrs.ApplicationName != "" {
		q.Set("application_name", attrs.ApplicationName)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// URL returns the display URL: postgresql://host:port/db?props.
func URL(p core.ConnectionParams) string {
	s := "postgresql://" + p.Address(DefaultPort) + "/" + p.Database
	if props := plugin.DisplayParams(p.Attributes, "&"); props != "" {
		s += "?" + props
	}
	return s
}
