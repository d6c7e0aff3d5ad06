package duckdb

import (
	"github.com/leapstack-labs/dbmeta/pkg/dialect"
	"github.com/leapstack-labs/dbmeta/pkg/types"
)

// Types maps DuckDB type names as reported by duckdb_columns(). DuckDB has
// native unsigned and 128-bit integers but ignores string lengths and stores
// timestamps at a fixed precision.
var Types = &dialect.TableMapper{
	Dialect: "duckdb",
	Aliases: map[string]types.Kind{
		"boolean":                  types.Boolean,
		"bool":                     types.Boolean,
		"logical":                  types.Boolean,
		"bit":                      types.Bit,
		"bitstring":                types.Bit,
		"tinyint":                  types.TinyInt,
		"int1":                     types.TinyInt,
		"smallint":                 types.SmallInt,
		"int2":                     types.SmallInt,
		"short":                    types.SmallInt,
		"integer":                  types.Integer,
		"int":                      types.Integer,
		"int4":                     types.Integer,
		"bigint":                   types.BigInt,
		"int8":                     types.BigInt,
		"long":                     types.BigInt,
		"hugeint":                  types.Int128,
		"int128":                   types.Int128,
		"utinyint":                 types.TinyIntUnsigned,
		"usmallint":                types.SmallIntUnsigned,
		"uinteger":                 types.IntegerUnsigned,
		"ubigint":                  types.BigIntUnsigned,
		"uhugeint":                 types.UInt128,
		"decimal":                  types.Decimal,
		"numeric":                  types.Decimal,
		"float":                    types.Real,
		"float4":                   types.Real,
		"real":                     types.Real,
		"double":                   types.Double,
		"float8":                   types.Double,
		"varchar":                  types.Varchar,
		"char":                     types.Varchar,
		"bpchar":                   types.Varchar,
		"text":                     types.Varchar,
		"string":                   types.Varchar,
		"blob":                     types.Blob,
		"bytea":                    types.Blob,
		"binary":                   types.Blob,
		"varbinary":                types.Blob,
		"date":                     types.Date,
		"time":                     types.Time,
		"time with time zone":      types.TimeWithTimeZone,
		"timetz":                   types.TimeWithTimeZone,
		"timestamp":                types.Timestamp,
		"datetime":                 types.Timestamp,
		"timestamp with time zone": types.TimestampWithTimeZone,
		"timestamptz":              types.TimestampWithTimeZone,
		"json":                     types.JSON,
	},
	Spellings: map[types.Kind]dialect.Spelling{
		types.Boolean:               {Name: "boolean"},
		types.Bit:                   {Name: "bit"},
		types.TinyInt:               {Name: "tinyint"},
		types.SmallInt:              {Name: "smallint"},
		types.Integer:               {Name: "integer"},
		types.BigInt:                {Name: "bigint"},
		types.Int128:                {Name: "hugeint"},
		types.TinyIntUnsigned:       {Name: "utinyint"},
		types.SmallIntUnsigned:      {Name: "usmallint"},
		types.IntegerUnsigned:       {Name: "uinteger"},
		types.BigIntUnsigned:        {Name: "ubigint"},
		types.UInt128:               {Name: "uhugeint"},
		types.Decimal:               {Name: "decimal", Args: dialect.ArgPrecisionScale},
		types.Real:                  {Name: "real"},
		types.Double:                {Name: "double"},
		types.Varchar:               {Name: "varchar"},
		types.Blob:                  {Name: "blob"},
		types.Date:                  {Name: "date"},
		types.Time:                  {Name: "time"},
		types.TimeWithTimeZone:      {Name: "time with time zone"},
		types.Timestamp:             {Name: "timestamp"},
		types.TimestampWithTimeZone: {Name: "timestamp with time zone"},
		types.JSON:                  {Name: "json"},
	},
	Lossy: map[types.Kind]dialect.Spelling{
		types.MediumInt:            {Name: "integer"},
		types.MediumIntUnsigned:    {Name: "uinteger"},
		types.UInt8:                {Name: "utinyint"},
		types.UInt16:               {Name: "usmallint"},
		types.UInt32:               {Name: "uinteger"},
		types.UInt64:               {Name: "ubigint"},
		types.Numeric:              {Name: "decimal", Args: dialect.ArgPrecisionScale},
		types.Float:                {Name: "double"},
		types.Char:                 {Name: "varchar"},
		types.Text:                 {Name: "varchar"},
		types.TinyText:             {Name: "varchar"},
		types.MediumText:           {Name: "varchar"},
		types.LongText:             {Name: "varchar"},
		types.Binary:               {Name: "blob"},
		types.Varbinary:            {Name: "blob"},
		types.TinyBlob:             {Name: "blob"},
		types.MediumBlob:           {Name: "blob"},
		types.LongBlob:             {Name: "blob"},
		types.Datetime:             {Name: "timestamp"},
		types.DatetimeWithTimeZone: {Name: "timestamp with time zone"},
		types.Year:                 {Name: "smallint"},
		types.JSONB:                {Name: "json"},
	},
	Extensions: []string{
		"uuid", "interval", "enum", "list", "struct", "map", "union", "varint",
		"timestamp_s", "timestamp_ms", "timestamp_ns",
	},
}

// BindRules maps DuckDB type names to bind kinds.
var BindRules = dialect.BindRules{
	"boolean":                  dialect.BindBool,
	"bool":                     dialect.BindBool,
	"tinyint":                  dialect.BindInt32,
	"smallint":                 dialect.BindInt32,
	"integer":                  dialect.BindInt32,
	"int":                      dialect.BindInt32,
	"bigint":                   dialect.BindInt64,
	"utinyint":                 dialect.BindUint64,
	"usmallint":                dialect.BindUint64,
	"uinteger":                 dialect.BindUint64,
	"ubigint":                  dialect.BindUint64,
	"hugeint":                  dialect.BindDecimal,
	"uhugeint":                 dialect.BindDecimal,
	"decimal":                  dialect.BindDecimal,
	"numeric":                  dialect.BindDecimal,
	"float":                    dialect.BindFloat64,
	"real":                     dialect.BindFloat64,
	"double":                   dialect.BindFloat64,
	"date":                     dialect.BindDate,
	"time":                     dialect.BindTime,
	"timestamp":                dialect.BindTimestamp,
	"timestamp with time zone": dialect.BindTimestamp,
	"timestamptz":              dialect.BindTimestamp,
	"blob":                     dialect.BindBytes,
}
