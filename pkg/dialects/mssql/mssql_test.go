package mssql

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
	d, ok := dialect.Get("MSSQL")
	require.True(t, ok)
	assert.Same(t, MSSQL, d)
	assert.Equal(t, "DATASOURCE_MSSQL", d.Key.PluginKey())
}

func TestTypesRoundTrip(t *testing.T) {
	dialecttest.AssertRoundTrip(t, Types, types.Datetime)
}

func TestTypes(t *testing.T) {
	tests := []struct {
		native string
		length int
		want   types.Type
	}{
		{"nvarchar", 50, types.Ext("nvarchar(50)")},
		{"nvarchar", -1, types.Ext("nvarchar(max)")},
		{"NCHAR(3)", 0, types.Ext("nchar(3)")},
		{"ntext", 0, types.Ext("ntext")},
		{"varchar", 50, types.VarcharOf(50)},
		{"varchar(max)", 0, types.VarcharOf(-1)},
		{"VARBINARY(MAX)", 0, types.VarbinaryOf(-1)},
		{"bit", 0, types.Of(types.Boolean)},
		{"datetime2(3)", 0, types.TimestampOf(3)},
		{"datetimeoffset", 0, types.Of(types.TimestampWithTimeZone)},
		{"uniqueidentifier", 0, types.Ext("uniqueidentifier")},
	}
	for _, tt := range tests {
		t.Run(tt.native, func(t *testing.T) {
			assert.Equal(t, tt.want, Types.ToType(tt.native, tt.length, 0, 0))
		})
	}
}

func TestFromType(t *testing.T) {
	tests := []struct {
		in   types.Type
		want string
	}{
		{types.VarcharOf(-1), "varchar(max)"},
		{types.VarcharOf(80), "varchar(80)"},
		{types.Of(types.Text), "nvarchar(max)"},
		{types.Of(types.JSON), "nvarchar(max)"},
		{types.Of(types.Integer), "int"},
		{types.Ext("uniqueidentifier"), "uniqueidentifier"},
		{types.Ext("nvarchar(50)"), "nvarchar(50)"},
		{types.Ext("nchar(3)"), "nchar(3)"},
	}
	for _, tt := range tests {
		t.Run(tt.in.String(), func(t *testing.T) {
			got, err := Types.FromType(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	dialecttest.AssertUnsupported(t, Types,
		types.Of(types.IntegerUnsigned),
		types.Of(types.UInt16),
		types.Of(types.Int256),
		types.Ext("uuid"),
	)
}

func TestQuoting(t *testing.T) {
	assert.Equal(t, "[a]]b]", MSSQL.QuoteIdentifier("a]b"))
	assert.Equal(t, "[order]", MSSQL.QuoteIdentifierIfNeeded("order"))
	assert.Equal(t, "dbo.Orders", MSSQL.Qualify("dbo", "Orders"))
	assert.Equal(t, "N'it''s'", MSSQL.QuoteLiteral("it's"))
}

func TestCrossCatalogQueries(t *testing.T) {
	q, ok := MSSQL.Query(core.KindTable)
	require.True(t, ok)

	sql, args := q.Build(MSSQL, core.Filter{Catalog: "Sales", Schema: "dbo", Name: "Orders"})
	assert.Contains(t, sql, "N'Sales' AS catalog_name")
	assert.Contains(t, sql, "FROM [Sales].sys.tables o")
	assert.NotContains(t, sql, "{{")
	assert.Contains(t, sql, "AND s.name = @p1 AND o.name = @p2")
	assert.Equal(t, []any{"dbo", "Orders"}, args)

	sql, _ = q.Build(MSSQL, core.Filter{})
	assert.Contains(t, sql, "DB_NAME() AS catalog_name")
	assert.Contains(t, sql, "FROM sys.tables o")

	for _, kind := range core.ObjectKinds() {
		_, ok := MSSQL.Query(kind)
		assert.True(t, ok, "missing query for %s", kind)
	}
}

func TestKeyQueriesUseCatalogPrefix(t *testing.T) {
	sql, _ := MSSQL.PrimaryKeys.Build(MSSQL, core.Filter{Catalog: "Sales"})
	assert.Contains(t, sql, "FROM [Sales].sys.key_constraints kc")
	sql, _ = MSSQL.ForeignKeys.Build(MSSQL, core.Filter{})
	assert.Contains(t, sql, "FROM sys.foreign_keys fk")
}

func TestObjectDefinition(t *testing.T) {
	sql, args := objectDefinition.Build(MSSQL, core.ObjectRef{CatalogName: "Sales", SchemaName: "dbo", ObjectName: "v"})
	assert.Equal(t, "SELECT m.definition FROM [Sales].sys.sql_modules m WHERE m.object_id = OBJECT_ID(@p1)", sql)
	assert.Equal(t, []any{"[Sales].[dbo].[v]"}, args)

	sql, args = objectDefinition.Build(MSSQL, core.ObjectRef{SchemaName: "dbo", ObjectName: "v"})
	assert.Equal(t, "SELECT m.definition FROM sys.sql_modules m WHERE m.object_id = OBJECT_ID(@p1)", sql)
	assert.Equal(t, []any{"[dbo].[v]"}, args)
}

func TestTemplates(t *testing.T) {
	tmpl, err := MSSQL.DDL.RenameTemplate(core.KindTable)
	require.NoError(t, err)
	assert.Equal(t, "EXEC sp_rename {{qualified_lit}}, {{new_lit}}", tmpl)

	_, err = MSSQL.DDL.RenameTemplate(core.KindForeignTable)
	assert.ErrorIs(t, err, core.ErrUnsupportedOperation)
	assert.Equal(t, dialect.IdentityKeyword, MSSQL.DDL.Identity)
}
