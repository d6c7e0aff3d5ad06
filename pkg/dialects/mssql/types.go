package mssql

import (
	"strconv"

	"github.com/leapstack-labs/dbmeta/pkg/dialect"
	"github.com/leapstack-labs/dbmeta/pkg/types"
)

// Types maps SQL Server type names as reported by sys.types. Unbounded
// character and binary types are written with the max keyword and carry
// Length -1, which ParseNative reads from "(max)".
var Types = &dialect.TableMapper{
	Dialect: "mssql",
	Aliases: map[string]types.Kind{
		"bit":              types.Boolean,
		"tinyint":          types.TinyInt,
		"smallint":         types.SmallInt,
		"int":              types.Integer,
		"integer":          types.Integer,
		"bigint":           types.BigInt,
		"decimal":          types.Decimal,
		"dec":              types.Decimal,
		"numeric":          types.Numeric,
		"float":            types.Double,
		"double precision": types.Double,
		"real":             types.Real,
		"char":             types.Char,
		"varchar":          types.Varchar,
		"text":             types.Text,
		"binary":           types.Binary,
		"varbinary":        types.Varbinary,
		"image":            types.Blob,
		"date":             types.Date,
		"time":             types.Time,
		"datetime":         types.Datetime,
		"smalldatetime":    types.Datetime,
		"datetime2":        types.Timestamp,
		"datetimeoffset":   types.TimestampWithTimeZone,
		"json":             types.JSON,
	},
	Spellings: map[types.Kind]dialect.Spelling{
		types.Boolean:               {Name: "bit"},
		types.TinyInt:               {Name: "tinyint"},
		types.SmallInt:              {Name: "smallint"},
		types.Integer:               {Name: "int"},
		types.BigInt:                {Name: "bigint"},
		types.Decimal:               {Name: "decimal", Args: dialect.ArgPrecisionScale},
		types.Numeric:               {Name: "numeric", Args: dialect.ArgPrecisionScale},
		types.Real:                  {Name: "real"},
		types.Double:                {Name: "float"},
		types.Char:                  {Name: "char", Args: dialect.ArgLength},
		types.Varchar:               {Name: "varchar", Args: dialect.ArgLength, MaxWord: "max"},
		types.Binary:                {Name: "binary", Args: dialect.ArgLength},
		types.Varbinary:             {Name: "varbinary", Args: dialect.ArgLength, MaxWord: "max"},
		types.Date:                  {Name: "date"},
		types.Time:                  {Name: "time", Args: dialect.ArgPrecision},
		types.Datetime:              {Name: "datetime"},
		types.Timestamp:             {Name: "datetime2", Args: dialect.ArgPrecision},
		types.TimestampWithTimeZone: {Name: "datetimeoffset", Args: dialect.ArgPrecision},
	},
	Lossy: map[types.Kind]dialect.Spelling{
		types.MediumInt:            {Name: "int"},
		types.Int128:               {Name: "decimal(38)"},
		types.Float:                {Name: "float", Args: dialect.ArgLength},
		types.Text:                 {Name: "nvarchar(max)"},
		types.TinyText:             {Name: "nvarchar(max)"},
		types.MediumText:           {Name: "nvarchar(max)"},
		types.LongText:             {Name: "nvarchar(max)"},
		types.Blob:                 {Name: "varbinary(max)"},
		types.TinyBlob:             {Name: "varbinary(max)"},
		types.MediumBlob:           {Name: "varbinary(max)"},
		types.LongBlob:             {Name: "varbinary(max)"},
		types.TimeWithTimeZone:     {Name: "datetimeoffset", Args: dialect.ArgPrecision},
		types.DatetimeWithTimeZone: {Name: "datetimeoffset", Args: dialect.ArgPrecision},
		types.Year:                 {Name: "smallint"},
		types.JSON:                 {Name: "nvarchar(max)"},
		types.JSONB:                {Name: "nvarchar(max)"},
	},
	Extensions: []string{
		"uniqueidentifier", "xml", "sql_variant", "geography", "geometry", "hierarchyid",
		"money", "smallmoney", "rowversion", "timestamp", "nchar", "nvarchar", "ntext",
	},
	Resolve: resolveNational,
}

// resolveNational keeps the Unicode character types as extensions with their
// length, since the canonical character kinds render as the byte types.
func resolveNational(n types.Native, length, _, _ int) (types.Type, bool) {
	switch n.Base {
	case "ntext":
		return types.Ext("ntext"), true
	case "nchar", "nvarchar":
	default:
		return types.Type{}, false
	}
	if length == 0 {
		length = n.Arg(0)
	}
	switch {
	case length == -1:
		return types.Ext(n.Base + "(max)"), true
	case length > 0:
		return types.Ext(n.Base + "(" + strconv.Itoa(length) + ")"), true
	}
	return types.Ext(n.Base), true
}

// BindRules maps SQL Server type names to bind kinds.
var BindRules = dialect.BindRules{
	"bit":            dialect.BindBool,
	"tinyint":        dialect.BindInt32,
	"smallint":       dialect.BindInt32,
	"int":            dialect.BindInt32,
	"bigint":         dialect.BindInt64,
	"decimal":        dialect.BindDecimal,
	"numeric":        dialect.BindDecimal,
	"money":          dialect.BindDecimal,
	"smallmoney":     dialect.BindDecimal,
	"float":          dialect.BindFloat64,
	"real":           dialect.BindFloat64,
	"date":           dialect.BindDate,
	"time":           dialect.BindTime,
	"datetime":       dialect.BindTimestamp,
	"smalldatetime":  dialect.BindTimestamp,
	"datetime2":      dialect.BindTimestamp,
	"datetimeoffset": dialect.BindTimestamp,
	"binary":         dialect.BindBytes,
	"varbinary":      dialect.BindBytes,
	"image":          dialect.BindBytes,
}
