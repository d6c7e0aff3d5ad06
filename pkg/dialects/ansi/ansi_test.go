package ansi

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
	d, ok := dialect.ForKey(dialect.Generic)
	require.True(t, ok)
	assert.Same(t, ANSI, d)
	assert.Equal(t, "DATASOURCE_GENERIC", d.Key.PluginKey())
}

func TestTypesRoundTrip(t *testing.T) {
	dialecttest.AssertRoundTrip(t, Types)
}

func TestTypes(t *testing.T) {
	tests := []struct {
		native string
		want   types.Type
	}{
		{"CHARACTER VARYING", types.VarcharOf(0)},
		{"character varying(40)", types.VarcharOf(40)},
		{"DOUBLE PRECISION", types.Of(types.Double)},
		{"timestamp(3) with time zone", types.Type{Kind: types.TimestampWithTimeZone, Precision: 3}},
		{"INTERVAL", types.Ext("interval")},
	}
	for _, tt := range tests {
		t.Run(tt.native, func(t *testing.T) {
			assert.Equal(t, tt.want, Types.ToType(tt.native, 0, 0, 0))
		})
	}

	dialecttest.AssertUnsupported(t, Types,
		types.Of(types.IntegerUnsigned),
		types.Of(types.UInt64),
		types.Ext("uuid"),
	)
}

func TestQueriesBindFilters(t *testing.T) {
	for _, kind := range []core.ObjectKind{
		core.KindCatalog, core.KindSchema, core.KindTable, core.KindView, core.KindForeignTable,
		core.KindIndex, core.KindSequence, core.KindFunction, core.KindColumn,
	} {
		q, ok := ANSI.Query(kind)
		require.True(t, ok, kind.String())

		sql, args := q.Build(ANSI, core.Filter{Schema: "APP", Name: "X%"})
		assert.NotContains(t, sql, "X%", kind.String())
		if q.Schema != "" {
			assert.Equal(t, []any{"APP"}, args, kind.String())
		}
	}

	_, ok := ANSI.Query(core.KindMaterializedView)
	assert.False(t, ok)
}

func TestSystemSchemas(t *testing.T) {
	assert.True(t, ANSI.IsSystemSchema("INFORMATION_SCHEMA"))
	assert.True(t, ANSI.IsSystemSchema("pg_toast"))
	assert.False(t, ANSI.IsSystemSchema("PUBLIC"))
}
