package mssql

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/dbmeta/pkg/core"
	"github.com/leapstack-labs/dbmeta/pkg/dialect"
	"github.com/leapstack-labs/dbmeta/pkg/plugin"
)

func TestDSN(t *testing.T) {
	params := core.ConnectionParams{Host: "sql", Database: "shop", User: "sa", Password: "Secret!1"}
	attrs := Attributes{Encrypt: "true", TrustServerCertificate: true, Instance: "SQLEXPRESS", DialTimeout: 15 * time.Second}

	u, err := url.Parse(DSN(params, attrs, map[string]string{"log": "1"}))
	require.NoError(t, err)

	assert.Equal(t, "sqlserver", u.Scheme)
	assert.Equal(t, "sql:1433", u.Host)
	assert.Equal(t, "/SQLEXPRESS", u.Path)
	assert.Equal(t, "shop", u.Query().Get("database"))
	assert.Equal(t, "true", u.Query().Get("encrypt"))
	assert.Equal(t, "true", u.Query().Get("TrustServerCertificate"))
	assert.Equal(t, "15", u.Query().Get("dial timeout"))
	assert.Equal(t, "1", u.Query().Get("log"))
	pw, _ := u.User.Password()
	assert.Equal(t, "Secret!1", pw)
}

func TestURL(t *testing.T) {
	p := core.ConnectionParams{Host: "sql", Database: "shop",
		Attributes: map[string]string{"encrypt": "true", "app_name": "dbmeta"}}
	assert.Equal(t, "sqlserver://sql:1433;databaseName=shop;app_name=dbmeta;encrypt=true", URL(p))
}

func TestNew(t *testing.T) {
	p, err := plugin.New(dialect.MSSQL.PluginKey(), core.ConnectionParams{Host: "sql", Database: "shop"}, nil)
	require.NoError(t, err)
	defer func() { _ = p.Close() }()
	assert.Equal(t, dialect.PlaceholderAt, p.Dialect().Placeholder)
}
