// Package mssql provides the SQL Server plugin, backed by microsoft/go-mssqldb.
package mssql

import (
	"database/sql"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	mssql "github.com/microsoft/go-mssqldb"

	"github.com/leapstack-labs/dbmeta/pkg/core"
	"github.com/leapstack-labs/dbmeta/pkg/dialect"
	msdialect "github.com/leapstack-labs/dbmeta/pkg/dialects/mssql"
	"github.com/leapstack-labs/dbmeta/pkg/plugin"
)

// DefaultPort is used when the connection params carry no port.
const DefaultPort = 1433

func init() {
	plugin.Register(dialect.MSSQL.PluginKey(), New)
}

// Attributes are the SQL Server-specific connection attributes.
// Anything else is passed through as a connection string parameter.
type Attributes struct {
	Encrypt                string        `mapstructure:"encrypt"`
	TrustServerCertificate bool          `mapstructure:"trust_server_certificate"`
	AppName                string        `mapstructure:"app_name"`
	Instance               string        `mapstructure:"instance"`
	DialTimeout            time.Duration `mapstructure:"dial_timeout"`
}

// New creates a SQL Server plugin. The pool is opened on first use.
func New(params core.ConnectionParams, logger *slog.Logger) (plugin.Plugin, error) {
	var attrs Attributes
	extra, err := plugin.DecodeAttributes(params.Attributes, &attrs)
	if err != nil {
		return nil, err
	}
	dsn := DSN(params, attrs, extra)

	b, err := plugin.NewBase(plugin.Config{
		Key:        dialect.MSSQL.PluginKey(),
		Dialect:    msdialect.MSSQL,
		Params:     params,
		URL:        URL(params),
		DriverName: "sqlserver",
		Open: func() (*sql.DB, error) {
			connector, err := mssql.NewConnector(dsn)
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

// DSN builds the sqlserver:// connection URL understood by the driver.
func DSN(p core.ConnectionParams, attrs Attributes, extra map[string]string) string {
	u := url.URL{
		Scheme: "sqlserver",
		Host:   p.Address(DefaultPort),
	}
	if attrs.Instance != "" {
		u.Path = "/" + attrs.Instance
	}
	if p.User != "" {
		u.User = url.UserPassword(p.User, p.Password)
	}

	q := url.Values{}
	for k, v := range extra {
		q.Set(k, v)
	}
	if p.Database != "" {
		q.Set("database", p.Database)
	}
	if attrs.Encrypt != "" {
		q.Set("encrypt", attrs.Encrypt)
	}
	if attrs.TrustServerCertificate {
		q.Set("TrustServerCertificate", "true")
	}
	if attrs.AppName != "" {
		q.Set("app name", attrs.AppName)
	}
	if attrs.DialTimeout > 0 {
		q.Set("dial timeout", strconv.Itoa(int(attrs.DialTimeout.Seconds())))
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// URL returns the display URL: sqlserver://host:port;databaseName=db;props.
func URL(p core.ConnectionParams) string {
	s := "sqlserver://" + p.Address(DefaultPort) + ";databaseName=" + p.Database
	if props := plugin.DisplayParams(p.Attributes, ";"); props != "" {
		s += ";" + props
	}
	return s
}
