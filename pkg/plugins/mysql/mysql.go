// Package mysql provides the MySQL plugin, backed by go-sql-driver/mysql.
//
// Import this package with a blank identifier to register DATASOURCE_MYSQL:
//
//	import _ "github.com/leapstack-labs/dbmeta/pkg/plugins/mysql"
package mysql

import (
	"database/sql"
	"log/slog"
	"maps"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/leapstack-labs/dbmeta/pkg/core"
	"github.com/leapstack-labs/dbmeta/pkg/dialect"
	mysqldialect "github.com/leapstack-labs/dbmeta/pkg/dialects/mysql"
	"github.com/leapstack-labs/dbmeta/pkg/plugin"
)

// DefaultPort is used when the connection params carry no port.
const DefaultPort = 3306

func init() {
	plugin.Register(dialect.MySQL.PluginKey(), New)
}

// Attributes are the MySQL-specific connection attributes.
// Anything else becomes a DSN parameter (charset, sql_mode, ...).
type Attributes struct {
	TLS          string        `mapstructure:"tls"`
	Collation    string        `mapstructure:"collation"`
	Timeout      time.Duration `mapstructure:"timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// New creates a MySQL plugin. The pool is opened on first use.
func New(params core.ConnectionParams, logger *slog.Logger) (plugin.Plugin, error) {
	var attrs Attributes
	extra, err := plugin.DecodeAttributes(params.Attributes, &attrs)
	if err != nil {
		return nil, err
	}
	cfg := Config(params, attrs, extra)

	b, err := plugin.NewBase(plugin.Config{
		Key:        dialect.MySQL.PluginKey(),
		Dialect:    mysqldialect.MySQL,
		Params:     params,
		URL:        URL(params),
		DriverName: "mysql",
		Open: func() (*sql.DB, error) {
			connector, err := mysql.NewConnector(cfg)
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

// Config builds the driver config. parseTime is always on so catalog
// timestamps scan into time.Time.
func Config(p core.ConnectionParams, attrs Attributes, extra map[string]string) *mysql.Config {
	cfg := mysql.NewConfig()
	cfg.User = p.User
	cfg.Passwd = p.Password
	cfg.Net = "tcp"
	cfg.Addr = p.Address(DefaultPort)
	cfg.DBName = p.Database
	cfg.ParseTime = true
	cfg.TLSConfig = attrs.TLS
	cfg.Timeout = attrs.Timeout
	cfg.ReadTimeout = attrs.ReadTimeout
	cfg.WriteTimeout = attrs.WriteTimeout
	if attrs.Collation != "" {
		cfg.Collation = attrs.Collation
	}
	if len(extra) > 0 {
		cfg.Params = maps.Clone(extra)
	}
	return cfg
}

// URL returns the display URL: mysql://host:port/db?props.
func URL(p core.ConnectionParams) string {
	s := "mysql://" + p.Address(DefaultPort) + "/" + p.Database
	if props := plugin.DisplayParams(p.Attributes, "&"); props != "" {
		s += "?" + props
	}
	return s
}
