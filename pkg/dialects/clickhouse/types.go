package clickhouse

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/leapstack-labs/dbmeta/pkg/dialect"
	"github.com/leapstack-labs/dbmeta/pkg/types"
)

// decimalWidths are the precisions of the fixed-width DecimalN(S) aliases.
var decimalWidths = map[string]int{
	"decimal32":  9,
	"decimal64":  18,
	"decimal128": 38,
	"decimal256": 76,
}

var extensions = []string{
	"uuid", "ipv4", "ipv6", "array", "map", "tuple", "nested", "enum", "enum8", "enum16",
	"point", "ring", "linestring", "multilinestring", "polygon", "multipolygon",
	"dynamic", "variant", "object", "aggregatefunction", "simpleaggregatefunction",
	"time", "time64", "bfloat16",
}

// properNames restores the case of type names in extension spellings, which
// are stored lower-cased but must be written exactly.
var properNames = func() map[string]string {
	names := []string{
		"Bool", "Int8", "Int16", "Int32", "Int64", "Int128", "Int256", "UInt8", "UInt16",
		"UInt32", "UInt64", "UInt128", "UInt256", "Float32", "Float64", "BFloat16",
		"Decimal", "Decimal32", "Decimal64", "Decimal128", "Decimal256", "String",
		"FixedString", "Date", "Date32", "DateTime", "DateTime64", "Time", "Time64",
		"JSON", "UUID", "IPv4", "IPv6", "Array", "Map", "Tuple", "Nested", "Enum",
		"Enum8", "Enum16", "Nullable", "LowCardinality", "Point", "Ring", "LineString",
		"MultiLineString", "Polygon", "MultiPolygon", "Dynamic", "Variant", "Object",
		"AggregateFunction", "SimpleAggregateFunction",
	}
	m := make(map[string]string, len(names))
	for _, n := range names {
		m[strings.ToLower(n)] = n
	}
	return m
}()

// restoreCase rewrites every known type name in s to its proper case,
// leaving quoted strings untouched.
func restoreCase(s string) string {
	var b strings.Builder
	inQuote := false
	word := -1
	flush := func(end int) {
		if word < 0 {
			return
		}
		w := s[word:end]
		if proper, ok := properNames[strings.ToLower(w)]; ok {
			w = proper
		}
		b.WriteString(w)
		word = -1
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case inQuote:
			b.WriteByte(c)
			if c == '\\' && i+1 < len(s) {
				i++
				b.WriteByte(s[i])
			} else if c == '\'' {
				inQuote = false
			}
		case c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z':
			if word < 0 {
				word = i
			}
		default:
			flush(i)
			inQuote = c == '\''
			b.WriteByte(c)
		}
	}
	flush(len(s))
	return b.String()
}

func resolveType(n types.Native, _, _, scale int) (types.Type, bool) {
	if width, ok := decimalWidths[n.Base]; ok {
		if scale == 0 {
			scale = n.Arg(0)
		}
		return types.DecimalOf(width, scale), true
	}
	if n.Inner == "" {
		return types.Type{}, false
	}
	// DateTime('tz') and DateTime64(p, 'tz') carry a time zone. A zone other
	// than UTC is kept in Raw so it renders back unchanged.
	parts := strings.Split(n.Inner, ",")
	zone := strings.Trim(strings.TrimSpace(parts[len(parts)-1]), "'")
	if strings.EqualFold(zone, "UTC") {
		zone = ""
	}
	switch n.Base {
	case "datetime":
		return types.Type{Kind: types.DatetimeWithTimeZone, Raw: zone}, true
	case "datetime64":
		p, _ := strconv.Atoi(strings.TrimSpace(parts[0]))
		if len(parts) < 2 {
			zone = ""
		}
		return types.Type{Kind: types.DatetimeWithTimeZone, Precision: p, Raw: zone}, true
	}
	return types.Type{}, false
}

// zoneLiteral quotes the zone of a time zone type, UTC when none was kept.
func zoneLiteral(t types.Type) string {
	return "'" + strings.ReplaceAll(cmp.Or(t.Raw, "UTC"), "'", "\\'") + "'"
}

func renderType(t types.Type) (string, bool) {
	switch t.Kind {
	case types.Decimal, types.Numeric:
		for name, width := range decimalWidths {
			if t.Precision == width {
				return properNames[name] + "(" + strconv.Itoa(t.Scale) + ")", true
			}
		}
		if t.Precision > 0 {
			return "Decimal(" + strconv.Itoa(t.Precision) + ", " + strconv.Itoa(t.Scale) + ")", true
		}
		return "Decimal", true
	case types.Datetime, types.Timestamp:
		if t.Precision > 0 {
			return "DateTime64(" + strconv.Itoa(t.Precision) + ")", true
		}
		return "DateTime", true
	case types.DatetimeWithTimeZone, types.TimestampWithTimeZone:
		if t.Precision > 0 {
			return "DateTime64(" + strconv.Itoa(t.Precision) + ", " + zoneLiteral(t) + ")", true
		}
		return "DateTime(" + zoneLiteral(t) + ")", true
	case types.Extension:
		if slices.Contains(extensions, types.ParseNative(t.Raw).Base) {
			return restoreCase(t.Raw), true
		}
	}
	return "", false
}

// Types maps ClickHouse type names. Unsigned integers exist only as the
// UIntN family, so the MySQL-style unsigned kinds render as their UIntN
// equivalent and read back as UIntN.
var Types = &dialect.TableMapper{
	Dialect: "clickhouse",
	Aliases: map[string]types.Kind{
		"bool":        types.Boolean,
		"boolean":     types.Boolean,
		"int8":        types.TinyInt,
		"int16":       types.SmallInt,
		"int32":       types.Integer,
		"int64":       types.BigInt,
		"int128":      types.Int128,
		"int256":      types.Int256,
		"uint8":       types.UInt8,
		"uint16":      types.UInt16,
		"uint32":      types.UInt32,
		"uint64":      types.UInt64,
		"uint128":     types.UInt128,
		"uint256":     types.UInt256,
		"float32":     types.Real,
		"float64":     types.Double,
		"decimal":     types.Decimal,
		"string":      types.Text,
		"fixedstring": types.Char,
		"date":        types.Date,
		"date32":      types.Date,
		"datetime":    types.Datetime,
		"datetime64":  types.Datetime,
		"json":        types.JSON,
	},
	// Decimal and the DateTime kinds are written by renderType; the entries
	// here only mark them as claimed.
	Spellings: map[types.Kind]dialect.Spelling{
		types.Boolean:              {Name: "Bool"},
		types.TinyInt:              {Name: "Int8"},
		types.SmallInt:             {Name: "Int16"},
		types.Integer:              {Name: "Int32"},
		types.BigInt:               {Name: "Int64"},
		types.Int128:               {Name: "Int128"},
		types.Int256:               {Name: "Int256"},
		types.UInt8:                {Name: "UInt8"},
		types.UInt16:               {Name: "UInt16"},
		types.UInt32:               {Name: "UInt32"},
		types.UInt64:               {Name: "UInt64"},
		types.UInt128:              {Name: "UInt128"},
		types.UInt256:              {Name: "UInt256"},
		types.Real:                 {Name: "Float32"},
		types.Double:               {Name: "Float64"},
		types.Decimal:              {Name: "Decimal"},
		types.Text:                 {Name: "String"},
		types.Char:                 {Name: "FixedString", Args: dialect.ArgLength},
		types.Date:                 {Name: "Date"},
		types.Datetime:             {Name: "DateTime"},
		types.DatetimeWithTimeZone: {Name: "DateTime"},
		types.JSON:                 {Name: "JSON"},
	},
	Lossy: map[types.Kind]dialect.Spelling{
		types.TinyIntUnsigned:   {Name: "UInt8"},
		types.SmallIntUnsigned:  {Name: "UInt16"},
		types.MediumInt:         {Name: "Int32"},
		types.MediumIntUnsigned: {Name: "UInt32"},
		types.IntegerUnsigned:   {Name: "UInt32"},
		types.BigIntUnsigned:    {Name: "UInt64"},
		types.Float:             {Name: "Float64"},
		types.Varchar:           {Name: "String"},
		types.TinyText:          {Name: "String"},
		types.MediumText:        {Name: "String"},
		types.LongText:          {Name: "String"},
		types.Binary:            {Name: "FixedString", Args: dialect.ArgLength},
		types.Varbinary:         {Name: "String"},
		types.Blob:              {Name: "String"},
		types.TinyBlob:          {Name: "String"},
		types.MediumBlob:        {Name: "String"},
		types.LongBlob:          {Name: "String"},
		types.Year:              {Name: "UInt16"},
		types.JSONB:             {Name: "JSON"},
	},
	Extensions: extensions,
	Unwrap:     unwrapType,
	Resolve:    resolveType,
	Render:     renderType,
}

// BindRules maps ClickHouse type names to bind kinds. Wrappers are stripped
// before lookup.
var BindRules = dialect.BindRules{
	"bool":       dialect.BindBool,
	"int8":       dialect.BindInt32,
	"int16":      dialect.BindInt32,
	"int32":      dialect.BindInt32,
	"int64":      dialect.BindInt64,
	"uint8":      dialect.BindUint64,
	"uint16":     dialect.BindUint64,
	"uint32":     dialect.BindUint64,
	"uint64":     dialect.BindUint64,
	"float32":    dialect.BindFloat64,
	"float64":    dialect.BindFloat64,
	"decimal":    dialect.BindDecimal,
	"decimal32":  dialect.BindDecimal,
	"decimal64":  dialect.BindDecimal,
	"decimal128": dialect.BindDecimal,
	"decimal256": dialect.BindDecimal,
	"date":       dialect.BindDate,
	"date32":     dialect.BindDate,
	"datetime":   dialect.BindTimestamp,
	"datetime64": dialect.BindTimestamp,
}
