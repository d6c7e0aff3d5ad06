package postgres

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
	d, ok := dialect.ForKey(dialect.PostgreSQL)
	require.True(t, ok)
	assert.Same(t, Postgres, d)

	d, ok = dialect.Get("PostgreSQL")
	require.True(t, ok)
	assert.Same(t, Postgres, d)
}

func TestTypesRoundTrip(t *testing.T) {
	dialecttest.AssertRoundTrip(t, Types)
}

func TestTypes(t *testing.T) {
	tests := []struct {
		native string
		want   types.Type
	}{
		{"integer", types.Of(types.Integer)},
		{"int4", types.Of(types.Integer)},
		{"serial", types.Of(types.Integer)},
		{"character varying(50)", types.VarcharOf(50)},
		{"numeric(12,4)", types.NumericOf(12, 4)},
		{"timestamp(3) without time zone", types.TimestampOf(3)},
		{"timestamp with time zone", types.Of(types.TimestampWithTimeZone)},
		{"bytea", types.Of(types.Blob)},
		{"jsonb", types.Of(types.JSONB)},
		{"uuid", types.Ext("uuid")},
		{"integer[]", types.Ext("integer[]")},
	}
	for _, tt := range tests {
		t.Run(tt.native, func(t *testing.T) {
			assert.Equal(t, tt.want, Types.ToType(tt.native, 0, 0, 0))
		})
	}
}

func TestFromType(t *testing.T) {
	s, err := Types.FromType(types.VarcharOf(50))
	require.NoError(t, err)
	assert.Equal(t, "varchar(50)", s)

	s, err = Types.FromType(types.Ext("uuid"))
	require.NoError(t, err)
	assert.Equal(t, "uuid", s)

	s, err = Types.FromType(types.Of(types.Datetime))
	require.NoError(t, err)
	assert.Equal(t, "timestamp", s)

	dialecttest.AssertUnsupported(t, Types,
		types.Of(types.IntegerUnsigned),
		types.Of(types.BigIntUnsigned),
		types.Of(types.UInt8),
		types.Ext("enum"),
	)
}

func TestQuoting(t *testing.T) {
	assert.Equal(t, `"Users"`, Postgres.QuoteIdentifier("Users"))
	assert.Equal(t, `"a""b"`, Postgres.QuoteIdentifier(`a"b`))
	assert.Equal(t, `'it''s'`, Postgres.QuoteLiteral("it's"))
	assert.Equal(t, ` E'back\\slash'`, Postgres.QuoteLiteral(`back\slash`))
	assert.Equal(t, `public."order"`, Postgres.Qualify("public", "order"))
}

func TestQueries(t *testing.T) {
	q, ok := Postgres.Query(core.KindTable)
	require.True(t, ok)

	sql, args := q.Build(Postgres, core.Filter{Catalog: "shop", Schema: "public", Name: "orders"})
	assert.Contains(t, sql, "AND current_database() = $1 AND n.nspname = $2 AND c.relname = $3")
	assert.Equal(t, []any{"shop", "public", "orders"}, args)

	for _, kind := range core.ObjectKinds() {
		_, ok := Postgres.Query(kind)
		assert.True(t, ok, "missing query for %s", kind)
	}
}

func TestSystemSchemas(t *testing.T) {
	for _, s := range []string{"pg_catalog", "information_schema", "pg_toast", "pg_temp_3"} {
		assert.True(t, Postgres.IsSystemSchema(s), s)
	}
	assert.False(t, Postgres.IsSystemSchema("public"))
}

func TestTemplates(t *testing.T) {
	for _, kind := range core.ObjectKinds() {
		_, err := Postgres.DDL.DropTemplate(kind)
		assert.NoError(t, err, kind.String())
		_, err = Postgres.DDL.RenameTemplate(kind)
		assert.NoError(t, err, kind.String())
	}
}
