// Package generic provides a plugin for any linked database/sql driver. It
// uses the ANSI dialect: information_schema catalog queries and standard DDL.
//
// The driver must be imported by the binary; attributes.driver names it and
// attributes.dsn is handed to sql.Open verbatim.
package generic

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"slices"

	"github.com/leapstack-labs/dbmeta/pkg/core"
	"github.com/leapstack-labs/dbmeta/pkg/dialect"
	"github.com/leapstack-labs/dbmeta/pkg/dialects/ansi"
	"github.com/leapstack-labs/dbmeta/pkg/plugin"
)

func init() {
	plugin.Register(dialect.Generic.PluginKey(), New)
}

// Attributes select the driver.
type Attributes struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

// New creates a generic plugin. It fails when the named driver is not linked
// into the binary.
func New(params core.ConnectionParams, logger *slog.Logger) (plugin.Plugin, error) {
	var attrs Attributes
	if _, err := plugin.DecodeAttributes(params.Attributes, &attrs); err != nil {
		return nil, err
	}
	if attrs.Driver == "" {
		return nil, &core.ConfigError{Msg: "generic: attribute driver is required"}
	}
	if !slices.Contains(sql.Drivers(), attrs.Driver) {
		return nil, &core.ConfigError{Msg: fmt.Sprintf("generic: driver %q is not linked", attrs.Driver)}
	}

	b, err := plugin.NewBase(plugin.Config{
		Key:        dialect.Generic.PluginKey(),
		Dialect:    ansi.ANSI.WithPlaceholder(dialect.PlaceholderForDriver(attrs.Driver)),
		Params:     params,
		URL:        URL(attrs),
		DriverName: attrs.Driver,
		Open: func() (*sql.DB, error) {
			return sql.Open(attrs.Driver, attrs.DSN)
		},
	}, logger)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// URL returns driver:dsn with any URL password masked. DSNs that are not
// URLs are not shown.
func URL(attrs Attributes) string {
	u, err := url.Parse(attrs.DSN)
	if err != nil || u.Scheme == "" {
		return attrs.Driver + ":"
	}
	return attrs.Driver + ":" + u.Redacted()
}
