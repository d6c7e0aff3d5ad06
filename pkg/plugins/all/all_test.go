package all_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/dbmeta/pkg/core"
	"github.com/leapstack-labs/dbmeta/pkg/dialect"
	"github.com/leapstack-labs/dbmeta/pkg/plugin"

	_ "github.com/leapstack-labs/dbmeta/pkg/plugins/all"
)

func TestEveryKeyIsRegistered(t *testing.T) {
	for _, k := range dialect.Keys() {
		t.Run(k.PluginKey(), func(t *testing.T) {
			assert.True(t, plugin.IsRegistered(k.PluginKey()))
			assert.False(t, plugin.IsRegistered(k.String()), "engine names are not plugin keys")
		})
	}
	assert.Len(t, plugin.List(), len(dialect.Keys()))
}

func TestNew_DialectMatchesKey(t *testing.T) {
	tests := []struct {
		key    dialect.Key
		params core.ConnectionParams
	}{
		{dialect.MySQL, core.ConnectionParams{Host: "db", Database: "shop"}},
		{dialect.PostgreSQL, core.ConnectionParams{Host: "db", Database: "shop"}},
		{dialect.Oracle, core.ConnectionParams{Host: "db", Database: "ORCLPDB1"}},
		{dialect.MSSQL, core.ConnectionParams{Host: "db", Database: "shop"}},
		{dialect.ClickHouse, core.ConnectionParams{Host: "db", Database: "default"}},
		{dialect.DuckDB, core.ConnectionParams{}},
	}

	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			p, err := plugin.New(tt.key.PluginKey(), tt.params, nil)
			require.NoError(t, err)
			defer func() { _ = p.Close() }()

			assert.Equal(t, tt.key.PluginKey(), p.Key())
			assert.Equal(t, tt.key, p.Dialect().Key)
		})
	}
}

func TestNew_UnknownKey(t *testing.T) {
	p, err := plugin.New("DATASOURCE_DB2", core.ConnectionParams{}, nil)
	assert.Nil(t, p)

	var unknown *core.UnknownPluginError
	require.ErrorAs(t, err, &unknown)
	assert.Contains(t, unknown.Available, "DATASOURCE_MYSQL")
}
