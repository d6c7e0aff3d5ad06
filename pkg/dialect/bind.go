package dialect

import (
	"strings"

	"github.com/leapstack-labs/dbmeta/pkg/types"
)

// BindKind is the Go type a cell value is converted to before binding.
type BindKind int

const (
	BindString BindKind = iota
	BindBool
	BindInt32
	BindInt64
	BindUint64
	BindFloat64
	BindDecimal
	// BindNumber picks int32, int64 or decimal from the column's precision and scale.
	BindNumber
	BindDate
	BindTime
	BindTimestamp
	BindBytes
)

var bindKindNames = [...]string{
	BindString:    "string",
	BindBool:      "bool",
	BindInt32:     "int32",
	BindInt64:     "int64",
	BindUint64:    "uint64",
	BindFloat64:   "float64",
	BindDecimal:   "decimal",
	BindNumber:    "number",
	BindDate:      "date",
	BindTime:      "time",
	BindTimestamp: "timestamp",
	BindBytes:     "bytes",
}

func (k BindKind) String() string {
	if k >= 0 && int(k) < len(bindKindNames) {
		return bindKindNames[k]
	}
	return "unknown"
}

// BindRules maps lower-cased native base type names to bind kinds.
type BindRules map[string]BindKind

// BindKindFor resolves the bind kind for a native type spelling. The second
// result is false for unmapped names, which bind as plain strings.
func (d *Dialect) BindKindFor(native string) (BindKind, bool) {
	n := types.ParseNative(d.UnwrapType(native))
	if n.HasModifier("with") {
		if k, ok := d.Bind[n.Base+" "+strings.Join(n.Modifiers, " ")]; ok {
			return k, true
		}
	}
	k, ok := d.Bind[n.Base]
	if !ok {
		return BindString, false
	}
	if n.HasModifier("unsigned") && (k == BindInt32 || k == BindInt64) {
		return BindUint64, true
	}
	return k, true
}
