// Package binder converts edited cell text into typed bind parameters.
//
// A row edit arrives as strings keyed by column. Each value is converted to
// the Go type the column's native type binds as on its engine, so drivers
// receive int32, decimal.Decimal, time.Time and []byte rather than text.
package binder

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/leapstack-labs/dbmeta/pkg/core"
	"github.com/leapstack-labs/dbmeta/pkg/dialect"
	"github.com/leapstack-labs/dbmeta/pkg/types"
)

// ErrIndexOutOfRange is returned for bind positions below 1.
var ErrIndexOutOfRange = errors.New("bind index out of range")

// Params is a 1-based positional argument list. Unset positions bind NULL.
type Params struct {
	args []any
}

// Len returns the highest position set.
func (p *Params) Len() int { return len(p.args) }

// Get returns the value at position index and whether it is within range.
func (p *Params) Get(index int) (any, bool) {
	if index < 1 || index > len(p.args) {
		return nil, false
	}
	return p.args[index-1], true
}

// Args returns a copy of the arguments for ExecContext.
func (p *Params) Args() []any {
	out := make([]any, len(p.args))
	copy(out, p.args)
	return out
}

func (p *Params) set(index int, v any) {
	for len(p.args) < index {
		p.args = append(p.args, nil)
	}
	p.args[index-1] = v
}

// Binder converts values for one dialect.
type Binder struct {
	d *dialect.Dialect
}

// New returns a binder for d.
func New(d *dialect.Dialect) *Binder {
	return &Binder{d: d}
}

// Bind converts value for col and stores it at position index. A nil or blank
// value binds NULL. On failure Bind returns a *core.CoercionError and leaves
// params unchanged.
func (b *Binder) Bind(params *Params, col core.Column, value *string, index int) error {
	if index < 1 {
		return fmt.Errorf("column %s: %w: %d", col.ColumnName, ErrIndexOutOfRange, index)
	}
	if value == nil || strings.TrimSpace(*value) == "" {
		params.set(index, nil)
		return nil
	}

	kind, _ := b.d.BindKindFor(col.NativeTypeName)
	v, target, err := b.convert(kind, col, *value)
	if err != nil {
		return &core.CoercionError{Column: col.ColumnName, Value: *value, Target: target, Err: err}
	}
	params.set(index, v)
	return nil
}

// Value converts value for col without binding it. A nil or blank value
// yields nil.
func (b *Binder) Value(col core.Column, value *string) (any, error) {
	var p Params
	if err := b.Bind(&p, col, value, 1); err != nil {
		return nil, err
	}
	v, _ := p.Get(1)
	return v, nil
}

func (b *Binder) convert(kind dialect.BindKind, col core.Column, raw string) (any, string, error) {
	s := strings.TrimSpace(raw)
	switch kind {
	case dialect.BindBool:
		v, err := parseBool(s)
		return v, "bool", err
	case dialect.BindInt32:
		v, err := strconv.ParseInt(s, 10, 32)
		return int32(v), "int32", numErr(err)
	case dialect.BindInt64:
		v, err := strconv.ParseInt(s, 10, 64)
		return v, "int64", numErr(err)
	case dialect.BindUint64:
		v, err := strconv.ParseUint(s, 10, 64)
		return v, "uint64", numErr(err)
	case dialect.BindFloat64:
		v, err := strconv.ParseFloat(s, 64)
		return v, "float64", numErr(err)
	case dialect.BindDecimal:
		v, err := decimal.NewFromString(s)
		return v, "decimal", err
	case dialect.BindNumber:
		return bindNumber(col, s)
	case dialect.BindDate, dialect.BindTime, dialect.BindTimestamp:
		ms, err := ParseEpochMillis(s)
		if err != nil {
			return nil, kind.String(), err
		}
		return time.UnixMilli(ms).UTC(), kind.String(), nil
	case dialect.BindBytes:
		return []byte(raw), "bytes", nil
	default:
		return raw, "string", nil
	}
}

// bindNumber narrows an exact numeric to the smallest Go type that holds
// every value the column accepts.
func bindNumber(col core.Column, s string) (any, string, error) {
	precision, scale := numberShape(col)
	switch {
	case scale == 0 && precision > 0 && precision <= 9:
		v, err := strconv.ParseInt(s, 10, 32)
		return int32(v), "int32", numErr(err)
	case scale == 0 && precision > 0 && precision <= 18:
		v, err := strconv.ParseInt(s, 10, 64)
		return v, "int64", numErr(err)
	default:
		v, err := decimal.NewFromString(s)
		return v, "decimal", err
	}
}

// numberShape prefers the descriptor's precision and scale and falls back to
// the arguments of the native spelling, as in NUMBER(10,2).
func numberShape(col core.Column) (precision, scale int) {
	precision, scale = col.Precision, col.Scale
	if precision > 0 {
		return precision, scale
	}
	n := types.ParseNative(col.NativeTypeName)
	if len(n.Args) > 0 {
		precision = n.Args[0]
	}
	if len(n.Args) > 1 {
		scale = n.Args[1]
	}
	return precision, scale
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "y", "yes", "on":
		return true, nil
	case "n", "no", "off":
		return false, nil
	}
	return strconv.ParseBool(s)
}

// numErr drops the strconv wrapper, whose message repeats the input.
func numErr(err error) error {
	var ne *strconv.NumError
	if errors.As(err, &ne) {
		return ne.Err
	}
	return err
}
