package mysql

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
	d, ok := dialect.ForKey(dialect.MySQL)
	require.True(t, ok)
	assert.Same(t, MySQL, d)
	assert.Equal(t, dialect.CatalogPseudo, d.Catalogs)
}

func TestTypesRoundTrip(t *testing.T) {
	dialecttest.AssertRoundTrip(t, Types)
}

func TestUnsignedInteger(t *testing.T) {
	got := Types.ToType("int unsigned", 0, 0, 0)
	assert.Equal(t, types.Of(types.IntegerUnsigned), got)

	s, err := Types.FromType(got)
	require.NoError(t, err)
	assert.Equal(t, "int unsigned", s)
}

func TestTypes(t *testing.T) {
	tests := []struct {
		native string
		want   types.Type
	}{
		{"int(11)", types.Of(types.Integer)},
		{"int(10) unsigned zerofill", types.Of(types.IntegerUnsigned)},
		{"bigint unsigned", types.Of(types.BigIntUnsigned)},
		{"tinyint(1)", types.Of(types.Boolean)},
		{"tinyint(1) unsigned", types.Of(types.TinyIntUnsigned)},
		{"tinyint(4)", types.Of(types.TinyInt)},
		{"varchar(255)", types.VarcharOf(255)},
		{"decimal(10,2)", types.DecimalOf(10, 2)},
		{"datetime(3)", types.Type{Kind: types.Datetime, Precision: 3}},
		{"mediumtext", types.Of(types.MediumText)},
		{"enum('a','b')", types.Ext("enum('a','b')")},
		{"decimal(10,2) unsigned", types.Ext("decimal(10,2) unsigned")},
		{"double unsigned", types.Ext("double unsigned")},
		{"float(7,4) unsigned zerofill", types.Ext("float(7,4) unsigned zerofill")},
	}
	for _, tt := range tests {
		t.Run(tt.native, func(t *testing.T) {
			assert.Equal(t, tt.want, Types.ToType(tt.native, 0, 0, 0))
		})
	}
}

func TestFromType(t *testing.T) {
	s, err := Types.FromType(types.Ext("enum('a','b')"))
	require.NoError(t, err)
	assert.Equal(t, "enum('a','b')", s)

	s, err = Types.FromType(Types.ToType("decimal(10,2) unsigned", 0, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, "decimal(10,2) unsigned", s)

	s, err = Types.FromType(types.Of(types.UInt32))
	require.NoError(t, err)
	assert.Equal(t, "int unsigned", s)

	dialecttest.AssertUnsupported(t, Types,
		types.Of(types.Int128),
		types.Of(types.UInt256),
		types.Ext("uuid"),
	)
}

func TestQuoting(t *testing.T) {
	assert.Equal(t, "`order`", MySQL.QuoteIdentifierIfNeeded("order"))
	assert.Equal(t, "Orders", MySQL.QuoteIdentifierIfNeeded("Orders"))
	assert.Equal(t, "`a``b`", MySQL.QuoteIdentifier("a`b"))
	assert.Equal(t, `'it''s \\ here'`, MySQL.QuoteLiteral(`it's \ here`))
}

func TestQueriesIgnoreCatalog(t *testing.T) {
	for _, kind := range []core.ObjectKind{core.KindTable, core.KindView, core.KindIndex, core.KindColumn} {
		q, ok := MySQL.Query(kind)
		require.True(t, ok)
		sql, args := q.Build(MySQL, core.Filter{Catalog: "shop", Schema: "shop"})
		assert.Equal(t, []any{"shop"}, args, kind.String())
		assert.NotContains(t, sql, "= 'shop'")
	}

	_, ok := MySQL.Query(core.KindSequence)
	assert.False(t, ok)
}

func TestShowCreate(t *testing.T) {
	n := MySQL.NativeDDL[core.KindFunction]
	sql, args := n.Build(MySQL, core.ObjectRef{SchemaName: "shop", ObjectName: "total"})
	assert.Equal(t, "SHOW CREATE FUNCTION `shop`.`total`", sql)
	assert.Nil(t, args)
	assert.Equal(t, 2, n.Column)
}

func TestTemplates(t *testing.T) {
	tmpl, err := MySQL.DDL.DropTemplate(core.KindIndex)
	require.NoError(t, err)
	assert.Equal(t, "DROP INDEX {{name}} ON {{table}}", tmpl)

	_, err = MySQL.DDL.RenameTemplate(core.KindFunction)
	assert.ErrorIs(t, err, core.ErrUnsupportedOperation)
	_, err = MySQL.DDL.DropTemplate(core.KindSequence)
	assert.ErrorIs(t, err, core.ErrUnsupportedOperation)
}

func TestBindRules(t *testing.T) {
	k, ok := MySQL.BindKindFor("int(10) unsigned")
	require.True(t, ok)
	assert.Equal(t, dialect.BindUint64, k)

	k, ok = MySQL.BindKindFor("datetime(6)")
	require.True(t, ok)
	assert.Equal(t, dialect.BindTimestamp, k)

	_, ok = MySQL.BindKindFor("enum('a')")
	assert.False(t, ok)
}
