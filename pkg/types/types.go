// Package types defines the canonical, engine-independent column type system.
//
// Every dialect type mapper converts its native spellings into a types.Type and
// renders a types.Type back into a native spelling. The variant set is closed:
// anything a dialect cannot place into a known Kind becomes an Extension that
// carries the lower-cased native name.
package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies one canonical type variant.
type Kind int

// Canonical type variants. Unsigned integers are distinct variants rather than a
// flag because only some engines can express them.
const (
	Null Kind = iota
	Boolean
	Bit
	TinyInt
	TinyIntUnsigned
	SmallInt
	SmallIntUnsigned
	MediumInt
	MediumIntUnsigned
	Integer
	IntegerUnsigned
	BigInt
	BigIntUnsigned
	Int128
	Int256
	UInt8
	UInt16
	UInt32
	UInt64
	UInt128
	UInt256
	Decimal
	Numeric
	Float
	Real
	Double
	Char
	Varchar
	Text
	TinyText
	MediumText
	LongText
	Binary
	Varbinary
	Blob
	TinyBlob
	MediumBlob
	LongBlob
	Date
	Time
	TimeWithTimeZone
	Timestamp
	TimestampWithTimeZone
	Datetime
	DatetimeWithTimeZone
	Year
	JSON
	JSONB
	Extension
)

var kindNames = [...]string{
	Null:                  "Null",
	Boolean:               "Boolean",
	Bit:                   "Bit",
	TinyInt:               "TinyInt",
	TinyIntUnsigned:       "TinyIntUnsigned",
	SmallInt:              "SmallInt",
	SmallIntUnsigned:      "SmallIntUnsigned",
	MediumInt:             "MediumInt",
	MediumIntUnsigned:     "MediumIntUnsigned",
	Integer:               "Integer",
	IntegerUnsigned:       "IntegerUnsigned",
	BigInt:                "BigInt",
	BigIntUnsigned:        "BigIntUnsigned",
	Int128:                "Int128",
	Int256:                "Int256",
	UInt8:                 "UInt8",
	UInt16:                "UInt16",
	UInt32:                "UInt32",
	UInt64:                "UInt64",
	UInt128:               "UInt128",
	UInt256:               "UInt256",
	Decimal:               "Decimal",
	Numeric:               "Numeric",
	Float:                 "Float",
	Real:                  "Real",
	Double:                "Double",
	Char:                  "Char",
	Varchar:               "Varchar",
	Text:                  "Text",
	TinyText:              "TinyText",
	MediumText:            "MediumText",
	LongText:              "LongText",
	Binary:                "Binary",
	Varbinary:             "Varbinary",
	Blob:                  "Blob",
	TinyBlob:              "TinyBlob",
	MediumBlob:            "MediumBlob",
	LongBlob:              "LongBlob",
	Date:                  "Date",
	Time:                  "Time",
	TimeWithTimeZone:      "TimeWithTimeZone",
	Timestamp:             "Timestamp",
	TimestampWithTimeZone: "TimestampWithTimeZone",
	Datetime:              "Datetime",
	DatetimeWithTimeZone:  "DatetimeWithTimeZone",
	Year:                  "Year",
	JSON:                  "Json",
	JSONB:                 "Jsonb",
	Extension:             "Extension",
}

// Kinds returns every canonical variant in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(kindNames))
	for k := range kindNames {
		out = append(out, Kind(k))
	}
	return out
}

// String returns the variant name.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// IsUnsigned reports whether k is an unsigned integer variant.
func (k Kind) IsUnsigned() bool {
	switch k {
	case TinyIntUnsigned, SmallIntUnsigned, MediumIntUnsigned, IntegerUnsigned, BigIntUnsigned,
		UInt8, UInt16, UInt32, UInt64, UInt128, UInt256:
		return true
	}
	return false
}

// IsInteger reports whether k is any integer variant, signed or not.
func (k Kind) IsInteger() bool {
	switch k {
	case TinyInt, SmallInt, MediumInt, Integer, BigInt, Int128, Int256:
		return true
	}
	return k.IsUnsigned()
}

// IsNumeric reports whether k holds numbers (integers, exact and approximate).
func (k Kind) IsNumeric() bool {
	switch k {
	case Decimal, Numeric, Float, Real, Double:
		return true
	}
	return k.IsInteger()
}

// IsText reports whether k is a character variant.
func (k Kind) IsText() bool {
	switch k {
	case Char, Varchar, Text, TinyText, MediumText, LongText:
		return true
	}
	return false
}

// IsBinary reports whether k is a byte-string variant.
func (k Kind) IsBinary() bool {
	switch k {
	case Binary, Varbinary, Blob, TinyBlob, MediumBlob, LongBlob:
		return true
	}
	return false
}

// IsTemporal reports whether k is a date or time variant.
func (k Kind) IsTemporal() bool {
	switch k {
	case Date, Time, TimeWithTimeZone, Timestamp, TimestampWithTimeZone, Datetime, DatetimeWithTimeZone, Year:
		return true
	}
	return false
}

// Type is one canonical column type. Zero-valued Length, Precision and Scale
// mean "not specified". Raw is the lower-cased native spelling of an
// Extension. Time zone kinds may carry an engine's zone name in Raw, which
// other dialects ignore.
type Type struct {
	Kind      Kind
	Length    int
	Precision int
	Scale     int
	Raw       string
}

// String renders the canonical form, e.g. "Decimal(10,2)" or "Extension(uuid)".
func (t Type) String() string {
	switch {
	case t.Kind == Extension:
		return "Extension(" + t.Raw + ")"
	case t.Precision > 0 && t.Scale > 0:
		return fmt.Sprintf("%s(%d,%d)", t.Kind, t.Precision, t.Scale)
	case t.Precision > 0:
		return fmt.Sprintf("%s(%d)", t.Kind, t.Precision)
	case t.Length != 0:
		return fmt.Sprintf("%s(%d)", t.Kind, t.Length)
	case t.Scale > 0:
		return fmt.Sprintf("%s(scale=%d)", t.Kind, t.Scale)
	}
	return t.Kind.String()
}

// Of returns a Type of kind k with no size information.
func Of(k Kind) Type { return Type{Kind: k} }

// Bits returns Bit(length).
func Bits(length int) Type { return Type{Kind: Bit, Length: length} }

// DecimalOf returns Decimal(precision, scale).
func DecimalOf(precision, scale int) Type {
	return Type{Kind: Decimal, Precision: precision, Scale: scale}
}

// NumericOf returns Numeric(precision, scale).
func NumericOf(precision, scale int) Type {
	return Type{Kind: Numeric, Precision: precision, Scale: scale}
}

// FloatOf returns Float(length).
func FloatOf(length int) Type { return Type{Kind: Float, Length: length} }

// CharOf returns Char(length).
func CharOf(length int) Type { return Type{Kind: Char, Length: length} }

// VarcharOf returns Varchar(length).
func VarcharOf(length int) Type { return Type{Kind: Varchar, Length: length} }

// BinaryOf returns Binary(length).
func BinaryOf(length int) Type { return Type{Kind: Binary, Length: length} }

// VarbinaryOf returns Varbinary(length).
func VarbinaryOf(length int) Type { return Type{Kind: Varbinary, Length: length} }

// TimestampOf returns Timestamp with fractional-second precision.
func TimestampOf(precision int) Type { return Type{Kind: Timestamp, Precision: precision} }

// Ext returns an Extension for a native name the canonical set cannot place.
func Ext(raw string) Type {
	return Type{Kind: Extension, Raw: strings.ToLower(strings.TrimSpace(raw))}
}

// ErrUnsupportedType is matched by every UnsupportedTypeError.
var ErrUnsupportedType = errors.New("unsupported type")

// UnsupportedTypeError reports a canonical type a dialect cannot render.
type UnsupportedTypeError struct {
	Dialect string
	Type    Type
	Reason  string
}

func (e *UnsupportedTypeError) Error() string {
	msg := fmt.Sprintf("dialect %s cannot express type %s", e.Dialect, e.Type)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// Is makes errors.Is(err, ErrUnsupportedType) hold.
func (e *UnsupportedTypeError) Is(target error) bool {
	return target == ErrUnsupportedType
}
