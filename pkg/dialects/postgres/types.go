package postgres

import (
	"github.com/leapstack-labs/dbmeta/pkg/dialect"
	"github.com/leapstack-labs/dbmeta/pkg/types"
)

// Types maps PostgreSQL type names as reported by format_type().
var Types = &dialect.TableMapper{
	Dialect: "postgresql",
	Aliases: map[string]types.Kind{
		"boolean":                     types.Boolean,
		"bool":                        types.Boolean,
		"bit":                         types.Bit,
		"smallint":                    types.SmallInt,
		"int2":                        types.SmallInt,
		"smallserial":                 types.SmallInt,
		"serial2":                     types.SmallInt,
		"integer":                     types.Integer,
		"int":                         types.Integer,
		"int4":                        types.Integer,
		"serial":                      types.Integer,
		"serial4":                     types.Integer,
		"bigint":                      types.BigInt,
		"int8":                        types.BigInt,
		"bigserial":                   types.BigInt,
		"serial8":                     types.BigInt,
		"decimal":                     types.Decimal,
		"numeric":                     types.Numeric,
		"float":                       types.Float,
		"real":                        types.Real,
		"float4":                      types.Real,
		"double precision":            types.Double,
		"float8":                      types.Double,
		"char":                        types.Char,
		"character":                   types.Char,
		"bpchar":                      types.Char,
		"varchar":                     types.Varchar,
		"character varying":           types.Varchar,
		"text":                        types.Text,
		"bytea":                       types.Blob,
		"date":                        types.Date,
		"time":                        types.Time,
		"time without time zone":      types.Time,
		"time with time zone":         types.TimeWithTimeZone,
		"timetz":                      types.TimeWithTimeZone,
		"timestamp":                   types.Timestamp,
		"timestamp without time zone": types.Timestamp,
		"timestamp with time zone":    types.TimestampWithTimeZone,
		"timestamptz":                 types.TimestampWithTimeZone,
		"json":                        types.JSON,
		"jsonb":                       types.JSONB,
	},
	Spellings: map[types.Kind]dialect.Spelling{
		types.Boolean:               {Name: "boolean"},
		types.Bit:                   {Name: "bit", Args: dialect.ArgLength},
		types.SmallInt:              {Name: "smallint"},
		types.Integer:               {Name: "integer"},
		types.BigInt:                {Name: "bigint"},
		types.Decimal:               {Name: "decimal", Args: dialect.ArgPrecisionScale},
		types.Numeric:               {Name: "numeric", Args: dialect.ArgPrecisionScale},
		types.Float:                 {Name: "float", Args: dialect.ArgLength},
		types.Real:                  {Name: "real"},
		types.Double:                {Name: "double precision"},
		types.Char:                  {Name: "char", Args: dialect.ArgLength},
		types.Varchar:               {Name: "varchar", Args: dialect.ArgLength},
		types.Text:                  {Name: "text"},
		types.Blob:                  {Name: "bytea"},
		types.Date:                  {Name: "date"},
		types.Time:                  {Name: "time", Args: dialect.ArgPrecision},
		types.TimeWithTimeZone:      {Name: "time", Args: dialect.ArgPrecision, Suffix: " with time zone"},
		types.Timestamp:             {Name: "timestamp", Args: dialect.ArgPrecision},
		types.TimestampWithTimeZone: {Name: "timestamp", Args: dialect.ArgPrecision, Suffix: " with time zone"},
		types.JSON:                  {Name: "json"},
		types.JSONB:                 {Name: "jsonb"},
	},
	Lossy: map[types.Kind]dialect.Spelling{
		types.TinyInt:              {Name: "smallint"},
		types.MediumInt:            {Name: "integer"},
		types.Int128:               {Name: "numeric(39)"},
		types.Int256:               {Name: "numeric(77)"},
		types.TinyText:             {Name: "text"},
		types.MediumText:           {Name: "text"},
		types.LongText:             {Name: "text"},
		types.Binary:               {Name: "bytea"},
		types.Varbinary:            {Name: "bytea"},
		types.TinyBlob:             {Name: "bytea"},
		types.MediumBlob:           {Name: "bytea"},
		types.LongBlob:             {Name: "bytea"},
		types.Datetime:             {Name: "timestamp", Args: dialect.ArgPrecision},
		types.DatetimeWithTimeZone: {Name: "timestamp", Args: dialect.ArgPrecision, Suffix: " with time zone"},
		types.Year:                 {Name: "smallint"},
	},
	Extensions: []string{
		"uuid", "inet", "cidr", "macaddr", "macaddr8", "money", "interval", "xml",
		"tsvector", "tsquery", "point", "line", "lseg", "box", "path", "polygon", "circle",
		"int4range", "int8range", "numrange", "tsrange", "tstzrange", "daterange",
		"oid", "bit varying", "varbit", "citext", "hstore", "geometry", "geography",
	},
}

// BindRules maps PostgreSQL type names to bind kinds.
var BindRules = dialect.BindRules{
	"boolean":                  dialect.BindBool,
	"bool":                     dialect.BindBool,
	"smallint":                 dialect.BindInt32,
	"int2":                     dialect.BindInt32,
	"integer":                  dialect.BindInt32,
	"int":                      dialect.BindInt32,
	"int4":                     dialect.BindInt32,
	"serial":                   dialect.BindInt32,
	"bigint":                   dialect.BindInt64,
	"int8":                     dialect.BindInt64,
	"bigserial":                dialect.BindInt64,
	"numeric":                  dialect.BindDecimal,
	"decimal":                  dialect.BindDecimal,
	"real":                     dialect.BindFloat64,
	"float4":                   dialect.BindFloat64,
	"float8":                   dialect.BindFloat64,
	"double precision":         dialect.BindFloat64,
	"date":                     dialect.BindDate,
	"time":                     dialect.BindTime,
	"timetz":                   dialect.BindTime,
	"time with time zone":      dialect.BindTime,
	"timestamp":                dialect.BindTimestamp,
	"timestamptz":              dialect.BindTimestamp,
	"timestamp with time zone": dialect.BindTimestamp,
	"bytea":                    dialect.BindBytes,
}
