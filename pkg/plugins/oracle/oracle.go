// Package oracle provides the Oracle plugin, backed by godror.
//
// godror links the Oracle client libraries through cgo; the client must be
// installed where the binary runs.
package oracle

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/godror/godror"

	"github.com/leapstack-labs/dbmeta/pkg/core"
	"github.com/leapstack-labs/dbmeta/pkg/dialect"
	oradialect "github.com/leapstack-labs/dbmeta/pkg/dialects/oracle"
	"github.com/leapstack-labs/dbmeta/pkg/plugin"
)

// DefaultPort is used when the connection params carry no port.
const DefaultPort = 1521

func init() {
	plugin.Register(dialect.Oracle.PluginKey(), New)
}

// Attributes are the Oracle-specific connection attributes. Database is the
// service name unless sid is set.
type Attributes struct {
	SID       string `mapstructure:"sid"`
	SysDBA    bool   `mapstructure:"sysdba"`
	ConnClass string `mapstructure:"connection_class"`
}

// New creates an Oracle plugin. The pool is opened on first use.
func New(params core.ConnectionParams, logger *slog.Logger) (plugin.Plugin, error) {
	var attrs Attributes
	if _, err := plugin.DecodeAttributes(params.Attributes, &attrs); err != nil {
		return nil, err
	}
	cp := ConnectionParams(params, attrs)

	b, err := plugin.NewBase(plugin.Config{
		Key:        dialect.Oracle.PluginKey(),
		Dialect:    oradialect.Oracle,
		Params:     params,
		URL:        URL(params),
		DriverName: "godror",
		Open: func() (*sql.DB, error) {
			return sql.OpenDB(godror.NewConnector(cp)), nil
		},
	}, logger)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// ConnectString returns the Easy Connect string, or a full descriptor when a
// SID is configured.
func ConnectString(p core.ConnectionParams, attrs Attributes) string {
	if attrs.SID != "" {
		host := p.Host
		if host == "" {
			host = "localhost"
		}
		port := p.Port
		if port == 0 {
			port = DefaultPort
		}
		return fmt.Sprintf("(DESCRIPTION=(ADDRESS=(PROTOCOL=TCP)(HOST=%s)(PORT=%d))(CONNECT_DATA=(SID=%s)))",
			host, port, attrs.SID)
	}
	return p.Address(DefaultPort) + "/" + p.Database
}

// ConnectionParams builds the godror parameters. Their String form is the
// logfmt DSN with the password masked.
func ConnectionParams(p core.ConnectionParams, attrs Attributes) godror.ConnectionParams {
	var cp godror.ConnectionParams
	cp.Username = p.User
	cp.Password = godror.NewPassword(p.Password)
	cp.ConnectString = ConnectString(p, attrs)
	cp.IsSysDBA = attrs.SysDBA
	cp.ConnClass = attrs.ConnClass
	return cp
}

// URL returns the display URL: oracle:thin:@//host:port/db.
func URL(p core.ConnectionParams) string {
	return "oracle:thin:@//" + p.Address(DefaultPort) + "/" + p.Database
}
