package ansi

import (
	"github.com/leapstack-labs/dbmeta/pkg/dialect"
	"github.com/leapstack-labs/dbmeta/pkg/types"
)

// Types maps the SQL standard type names.
var Types = &dialect.TableMapper{
	Dialect: "ansi",
	Aliases: map[string]types.Kind{
		"boolean":                     types.Boolean,
		"bool":                        types.Boolean,
		"bit":                         types.Bit,
		"smallint":                    types.SmallInt,
		"integer":                     types.Integer,
		"int":                         types.Integer,
		"bigint":                      types.BigInt,
		"decimal":                     types.Decimal,
		"dec":                         types.Decimal,
		"numeric":                     types.Numeric,
		"float":                       types.Float,
		"real":                        types.Real,
		"double precision":            types.Double,
		"double":                      types.Double,
		"char":                        types.Char,
		"character":                   types.Char,
		"varchar":                     types.Varchar,
		"character varying":           types.Varchar,
		"char varying":                types.Varchar,
		"clob":                        types.Text,
		"character large object":      types.Text,
		"binary":                      types.Binary,
		"varbinary":                   types.Varbinary,
		"binary varying":              types.Varbinary,
		"blob":                        types.Blob,
		"binary large object":         types.Blob,
		"date":                        types.Date,
		"time":                        types.Time,
		"time without time zone":      types.Time,
		"time with time zone":         types.TimeWithTimeZone,
		"timestamp":                   types.Timestamp,
		"timestamp without time zone": types.Timestamp,
		"timestamp with time zone":    types.TimestampWithTimeZone,
		"json":                        types.JSON,
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
		types.Text:                  {Name: "clob"},
		types.Binary:                {Name: "binary", Args: dialect.ArgLength},
		types.Varbinary:             {Name: "varbinary", Args: dialect.ArgLength},
		types.Blob:                  {Name: "blob"},
		types.Date:                  {Name: "date"},
		types.Time:                  {Name: "time", Args: dialect.ArgPrecision},
		types.TimeWithTimeZone:      {Name: "time", Args: dialect.ArgPrecision, Suffix: " with time zone"},
		types.Timestamp:             {Name: "timestamp", Args: dialect.ArgPrecision},
		types.TimestampWithTimeZone: {Name: "timestamp", Args: dialect.ArgPrecision, Suffix: " with time zone"},
		types.JSON:                  {Name: "json"},
	},
	Lossy: map[types.Kind]dialect.Spelling{
		types.TinyInt:              {Name: "smallint"},
		types.MediumInt:            {Name: "integer"},
		types.Int128:               {Name: "decimal(39)"},
		types.Int256:               {Name: "decimal(77)"},
		types.TinyText:             {Name: "clob"},
		types.MediumText:           {Name: "clob"},
		types.LongText:             {Name: "clob"},
		types.TinyBlob:             {Name: "blob"},
		types.MediumBlob:           {Name: "blob"},
		types.LongBlob:             {Name: "blob"},
		types.Datetime:             {Name: "timestamp", Args: dialect.ArgPrecision},
		types.DatetimeWithTimeZone: {Name: "timestamp", Args: dialect.ArgPrecision, Suffix: " with time zone"},
		types.Year:                 {Name: "smallint"},
		types.JSONB:                {Name: "json"},
	},
}

// BindRules maps standard type names to bind kinds.
var BindRules = dialect.BindRules{
	"boolean":                  dialect.BindBool,
	"bool":                     dialect.BindBool,
	"smallint":                 dialect.BindInt32,
	"integer":                  dialect.BindInt32,
	"int":                      dialect.BindInt32,
	"bigint":                   dialect.BindInt64,
	"decimal":                  dialect.BindDecimal,
	"numeric":                  dialect.BindDecimal,
	"float":                    dialect.BindFloat64,
	"real":                     dialect.BindFloat64,
	"double precision":         dialect.BindFloat64,
	"double":                   dialect.BindFloat64,
	"date":                     dialect.BindDate,
	"time":                     dialect.BindTime,
	"time with time zone":      dialect.BindTime,
	"timestamp":                dialect.BindTimestamp,
	"timestamp with time zone": dialect.BindTimestamp,
	"binary":                   dialect.BindBytes,
	"varbinary":                dialect.BindBytes,
	"blob":                     dialect.BindBytes,
}
