// Package dialecttest provides shared assertions for dialect packages.
package dialecttest

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/dbmeta/pkg/dialect"
	"github.com/leapstack-labs/dbmeta/pkg/types"
)

// Sample returns a representative sized value of kind k.
func Sample(k types.Kind) types.Type {
	switch dialect.ArgStyleOf(k) {
	case dialect.ArgLength:
		switch k {
		case types.Bit:
			return types.Bits(8)
		case types.Float:
			return types.FloatOf(24)
		case types.Char:
			return types.CharOf(10)
		case types.Binary:
			return types.BinaryOf(16)
		}
		return types.Type{Kind: k, Length: 255}
	case dialect.ArgPrecision:
		return types.Type{Kind: k, Precision: 6}
	case dialect.ArgPrecisionScale:
		return types.Type{Kind: k, Precision: 10, Scale: 2}
	}
	return types.Of(k)
}

// AssertRoundTrip checks ToType(FromType(t)) == t for every claimed kind, both
// sized and unsized, and that FromType is deterministic. Kinds listed in
// unsized carry no size information on this engine and are checked unsized only.
func AssertRoundTrip(t *testing.T, m dialect.TypeMapper, unsized ...types.Kind) {
	t.Helper()
	claims := m.Claims()
	require.NotEmpty(t, claims)

	for _, k := range claims {
		samples := []types.Type{types.Of(k), Sample(k)}
		if slices.Contains(unsized, k) {
			samples = samples[:1]
		}
		for _, want := range samples {
			t.Run(want.String(), func(t *testing.T) {
				native, err := m.FromType(want)
				require.NoError(t, err)

				again, err := m.FromType(want)
				require.NoError(t, err)
				assert.Equal(t, native, again, "FromType must be deterministic")

				assert.Equal(t, want, m.ToType(native, 0, 0, 0), "round trip through %q", native)
			})
		}
	}
}

// AssertUnsupported checks that FromType fails with an UnsupportedTypeError.
func AssertUnsupported(t *testing.T, m dialect.TypeMapper, ts ...types.Type) {
	t.Helper()
	for _, typ := range ts {
		_, err := m.FromType(typ)
		assert.ErrorIs(t, err, types.ErrUnsupportedType, "type %s", typ)
	}
}
