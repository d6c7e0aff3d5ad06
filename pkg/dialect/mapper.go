package dialect

import (
	"slices"
	"strconv"
	"strings"

	"github.com/leapstack-labs/dbmeta/pkg/types"
)

// TypeMapper converts between native type spellings and canonical types.
type TypeMapper interface {
	// ToType is total: unknown names yield types.Ext(lower(native)).
	ToType(native string, length, precision, scale int) types.Type
	// FromType renders t in the engine's documented spelling. It fails with a
	// *types.UnsupportedTypeError for types the engine cannot express.
	FromType(t types.Type) (string, error)
	// Claims lists the kinds that round-trip exactly.
	Claims() []types.Kind
}

// ArgStyle describes which size fields a kind carries.
type ArgStyle int

const (
	ArgNone ArgStyle = iota
	ArgLength
	ArgPrecision
	ArgPrecisionScale
)

// ArgStyleOf returns the size fields meaningful for k.
func ArgStyleOf(k types.Kind) ArgStyle {
	switch k {
	case types.Bit, types.Float, types.Char, types.Varchar, types.Binary, types.Varbinary:
		return ArgLength
	case types.Time, types.TimeWithTimeZone, types.Timestamp, types.TimestampWithTimeZone,
		types.Datetime, types.DatetimeWithTimeZone:
		return ArgPrecision
	case types.Decimal, types.Numeric:
		return ArgPrecisionScale
	}
	return ArgNone
}

// Spelling is how one kind is written by an engine.
type Spelling struct {
	Name    string   // base name, e.g. "varchar"
	Args    ArgStyle // size fields rendered in parentheses
	Suffix  string   // appended after the arguments, e.g. " unsigned"
	MaxWord string   // rendered for Length < 0, e.g. "max"
}

// Render writes t using this spelling.
func (s Spelling) Render(t types.Type) string {
	var args string
	switch s.Args {
	case ArgLength:
		switch {
		case t.Length > 0:
			args = strconv.Itoa(t.Length)
		case t.Length < 0 && s.MaxWord != "":
			args = s.MaxWord
		}
	case ArgPrecision:
		if t.Precision > 0 {
			args = strconv.Itoa(t.Precision)
		}
	case ArgPrecisionScale:
		switch {
		case t.Precision > 0 && t.Scale > 0:
			args = strconv.Itoa(t.Precision) + "," + strconv.Itoa(t.Scale)
		case t.Precision > 0:
			args = strconv.Itoa(t.Precision)
		}
	}
	if args == "" {
		return s.Name + s.Suffix
	}
	return s.Name + "(" + args + ")" + s.Suffix
}

// TableMapper is a table-driven TypeMapper. Hooks run before the tables.
type TableMapper struct {
	Dialect string

	// Aliases maps lower-cased spellings to kinds. Keys may include modifier
	// words ("int unsigned", "timestamp with time zone").
	Aliases map[string]types.Kind
	// Spellings are the exact, claimed renderings.
	Spellings map[types.Kind]Spelling
	// Lossy renderings are used by FromType but not claimed, because ToType
	// maps them back to a different kind or drops size information.
	Lossy map[types.Kind]Spelling
	// Extensions are raw native names the engine accepts verbatim.
	Extensions []string

	Unwrap  func(native string) string
	Resolve func(n types.Native, length, precision, scale int) (types.Type, bool)
	Render  func(t types.Type) (string, bool)
}

var unsignedOf = map[types.Kind]types.Kind{
	types.TinyInt:   types.TinyIntUnsigned,
	types.SmallInt:  types.SmallIntUnsigned,
	types.MediumInt: types.MediumIntUnsigned,
	types.Integer:   types.IntegerUnsigned,
	types.BigInt:    types.BigIntUnsigned,
}

// ToType implements TypeMapper.
func (m *TableMapper) ToType(native string, length, precision, scale int) types.Type {
	raw := strings.TrimSpace(native)
	if m.Unwrap != nil {
		raw = m.Unwrap(raw)
	}
	n := types.ParseNative(raw)
	if m.Resolve != nil {
		if t, ok := m.Resolve(n, length, precision, scale); ok {
			return t
		}
	}
	kind, ok := m.lookup(n)
	if !ok {
		return types.Ext(raw)
	}
	return Sized(kind, n, length, precision, scale)
}

func (m *TableMapper) lookup(n types.Native) (types.Kind, bool) {
	mods := make([]string, 0, len(n.Modifiers))
	for _, w := range n.Modifiers {
		if w != "zerofill" && w != "signed" {
			mods = append(mods, w)
		}
	}
	if len(mods) > 0 {
		if k, ok := m.Aliases[n.Base+" "+strings.Join(mods, " ")]; ok {
			return k, true
		}
	}
	k, ok := m.Aliases[n.Base]
	if !ok {
		return 0, false
	}
	if n.HasModifier("unsigned") && !k.IsUnsigned() {
		// Unsigned decimals and floats have no canonical kind.
		u, ok := unsignedOf[k]
		return u, ok
	}
	return k, true
}

// Sized builds a Type of kind k, taking sizes from the explicit parameters
// first and from the parsed spelling when those are zero.
func Sized(k types.Kind, n types.Native, length, precision, scale int) types.Type {
	pick := func(param, idx int) int {
		if param != 0 {
			return param
		}
		return n.Arg(idx)
	}
	t := types.Type{Kind: k}
	switch ArgStyleOf(k) {
	case ArgLength:
		t.Length = pick(length, 0)
	case ArgPrecision:
		t.Precision = pick(precision, 0)
	case ArgPrecisionScale:
		t.Precision = pick(precision, 0)
		t.Scale = pick(scale, 1)
	}
	return t
}

// FromType implements TypeMapper.
func (m *TableMapper) FromType(t types.Type) (string, error) {
	if m.Render != nil {
		if s, ok := m.Render(t); ok {
			return s, nil
		}
	}
	if t.Kind == types.Extension {
		if m.allowsExtension(t.Raw) {
			return t.Raw, nil
		}
		return "", &types.UnsupportedTypeError{Dialect: m.Dialect, Type: t, Reason: "no native type by that name"}
	}
	if s, ok := m.Spellings[t.Kind]; ok {
		return s.Render(t), nil
	}
	if s, ok := m.Lossy[t.Kind]; ok {
		return s.Render(t), nil
	}
	err := &types.UnsupportedTypeError{Dialect: m.Dialect, Type: t}
	if t.Kind.IsUnsigned() {
		err.Reason = "no unsigned integer types"
	}
	return "", err
}

func (m *TableMapper) allowsExtension(raw string) bool {
	if raw == "" {
		return false
	}
	base := types.ParseNative(raw).Base
	for _, e := range m.Extensions {
		if e == raw || e == base {
			return true
		}
	}
	return false
}

// Claims implements TypeMapper.
func (m *TableMapper) Claims() []types.Kind {
	out := make([]types.Kind, 0, len(m.Spellings))
	for k := range m.Spellings {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
