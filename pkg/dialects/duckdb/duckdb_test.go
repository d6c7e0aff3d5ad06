package duckdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/dbmeta/pkg/core"
	"github.com/leapstack-labs/dbmeta/pkg/dialect"
	"github.com/leapstack-labs/dbmeta/pkg/dialect/dialecttest"
	"github.com/leapstack-labs/dbmeta/pkg/types"
)

func TestRegistered(t *testing.T) {
	d, ok := dialect.ForKey(dialect.DuckDB)
	require.True(t, ok)
	assert.Same(t, DuckDB, d)
	assert.Equal(t, "DATASOURCE_DUCKDB", d.Key.PluginKey())
}

func TestTypesRoundTrip(t *testing.T) {
	dialecttest.AssertRoundTrip(t, Types,
		types.Bit, types.Varchar, types.Time, types.TimeWithTimeZone,
		types.Timestamp, types.TimestampWithTimeZone)
}

func TestTypes(t *testing.T) {
	tests := []struct {
		native string
		want   types.Type
	}{
		{"INTEGER", types.Of(types.Integer)},
		{"UINTEGER", types.Of(types.IntegerUnsigned)},
		{"HUGEINT", types.Of(types.Int128)},
		{"DECIMAL(18,3)", types.DecimalOf(18, 3)},
		{"VARCHAR", types.VarcharOf(0)},
		{"TIMESTAMP WITH TIME ZONE", types.Of(types.TimestampWithTimeZone)},
		{"FLOAT", types.Of(types.Real)},
		{"INTEGER[]", types.Ext("integer[]")},
		{"UUID", types.Ext("uuid")},
	}
	for _, tt := range tests {
		t.Run(tt.native, func(t *testing.T) {
			assert.Equal(t, tt.want, Types.ToType(tt.native, 0, 0, 0))
		})
	}
}

func TestFromType(t *testing.T) {
	tests := []struct {
		in   types.Type
		want string
	}{
		{types.Of(types.IntegerUnsigned), "uinteger"},
		{types.Of(types.UInt64), "ubigint"},
		{types.VarcharOf(40), "varchar"},
		{types.TimestampOf(3), "timestamp"},
		{types.Ext("uuid"), "uuid"},
		{types.Ext("struct(a integer)"), "struct(a integer)"},
	}
	for _, tt := range tests {
		t.Run(tt.in.String(), func(t *testing.T) {
			got, err := Types.FromType(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	dialecttest.AssertUnsupported(t, Types, types.Of(types.Int256), types.Ext("geometry"))
}

func TestQueries(t *testing.T) {
	q, ok := DuckDB.Query(core.KindFunction)
	require.True(t, ok)
	sql, args := q.Build(DuckDB, core.Filter{Schema: "main", Name: "add_%"})
	assert.Contains(t, sql, "AND schema_name = ? ORDER BY schema_name, function_name, function_oid")
	assert.Equal(t, []any{"main"}, args)

	_, ok = DuckDB.Query(core.KindMaterializedView)
	assert.False(t, ok)
	_, ok = DuckDB.Query(core.KindForeignTable)
	assert.False(t, ok)
}

func TestNativeDDL(t *testing.T) {
	n, ok := DuckDB.NativeDDL[core.KindView]
	require.True(t, ok)

	sql, args := n.Build(DuckDB, core.ObjectRef{SchemaName: "main", ObjectName: "v_orders"})
	assert.Equal(t, "SELECT sql FROM duckdb_views() WHERE schema_name = ? AND view_name = ?", sql)
	assert.Equal(t, []any{"main", "v_orders"}, args)

	_, args = n.Build(DuckDB, core.ObjectRef{CatalogName: "db", SchemaName: "main", ObjectName: "v"})
	assert.Len(t, args, 3)
}

func TestIdentifiers(t *testing.T) {
	assert.Equal(t, "Orders", DuckDB.QuoteIdentifierIfNeeded("Orders"))
	assert.Equal(t, `"order"`, DuckDB.QuoteIdentifierIfNeeded("order"))
	assert.Equal(t, `"my table"`, DuckDB.QuoteIdentifierIfNeeded("my table"))
}

func TestTemplates(t *testing.T) {
	assert.True(t, Templates.InlinePrimaryKey)
	assert.Empty(t, Templates.AddPrimaryKey)

	tmpl, err := DuckDB.DDL.DropTemplate(core.KindFunction)
	require.NoError(t, err)
	assert.Equal(t, "DROP MACRO {{qualified}}", tmpl)

	_, err = DuckDB.DDL.RenameTemplate(core.KindSequence)
	assert.ErrorIs(t, err, core.ErrUnsupportedOperation)
}

func TestBindRules(t *testing.T) {
	k, ok := DuckDB.BindKindFor("UBIGINT")
	require.True(t, ok)
	assert.Equal(t, dialect.BindUint64, k)

	k, ok = DuckDB.BindKindFor("TIMESTAMP WITH TIME ZONE")
	require.True(t, ok)
	assert.Equal(t, dialect.BindTimestamp, k)
}
