package oracle

import (
	"github.com/leapstack-labs/dbmeta/pkg/dialect"
	"github.com/leapstack-labs/dbmeta/pkg/types"
)

// Types maps Oracle data_type spellings. Every exact number is NUMBER, so the
// integer kinds are written as NUMBER(n) and read back as Numeric.
var Types = &dialect.TableMapper{
	Dialect: "oracle",
	Aliases: map[string]types.Kind{
		"number":                         types.Numeric,
		"numeric":                        types.Numeric,
		"decimal":                        types.Numeric,
		"integer":                        types.Numeric,
		"int":                            types.Numeric,
		"smallint":                       types.Numeric,
		"float":                          types.Float,
		"binary_float":                   types.Real,
		"binary_double":                  types.Double,
		"char":                           types.Char,
		"nchar":                          types.Char,
		"varchar2":                       types.Varchar,
		"nvarchar2":                      types.Varchar,
		"varchar":                        types.Varchar,
		"clob":                           types.Text,
		"nclob":                          types.Text,
		"long":                           types.LongText,
		"raw":                            types.Varbinary,
		"long raw":                       types.LongBlob,
		"blob":                           types.Blob,
		"date":                           types.Datetime,
		"timestamp":                      types.Timestamp,
		"timestamp with time zone":       types.TimestampWithTimeZone,
		"timestamp with local time zone": types.TimestampWithTimeZone,
		"json":                           types.JSON,
		"boolean":                        types.Boolean,
	},
	Spellings: map[types.Kind]dialect.Spelling{
		types.Numeric:               {Name: "number", Args: dialect.ArgPrecisionScale},
		types.Float:                 {Name: "float", Args: dialect.ArgLength},
		types.Real:                  {Name: "binary_float"},
		types.Double:                {Name: "binary_double"},
		types.Char:                  {Name: "char", Args: dialect.ArgLength},
		types.Varchar:               {Name: "varchar2", Args: dialect.ArgLength},
		types.Text:                  {Name: "clob"},
		types.Varbinary:             {Name: "raw", Args: dialect.ArgLength},
		types.Blob:                  {Name: "blob"},
		types.Datetime:              {Name: "date"},
		types.Timestamp:             {Name: "timestamp", Args: dialect.ArgPrecision},
		types.TimestampWithTimeZone: {Name: "timestamp", Args: dialect.ArgPrecision, Suffix: " with time zone"},
		types.JSON:                  {Name: "json"},
	},
	Lossy: map[types.Kind]dialect.Spelling{
		types.Boolean:              {Name: "number(1)"},
		types.TinyInt:              {Name: "number(3)"},
		types.SmallInt:             {Name: "number(5)"},
		types.MediumInt:            {Name: "number(7)"},
		types.Integer:              {Name: "number(10)"},
		types.BigInt:               {Name: "number(19)"},
		types.Int128:               {Name: "number(38)"},
		types.Decimal:              {Name: "number", Args: dialect.ArgPrecisionScale},
		types.Binary:               {Name: "raw", Args: dialect.ArgLength},
		types.TinyText:             {Name: "clob"},
		types.MediumText:           {Name: "clob"},
		types.LongText:             {Name: "clob"},
		types.TinyBlob:             {Name: "blob"},
		types.MediumBlob:           {Name: "blob"},
		types.LongBlob:             {Name: "blob"},
		types.Date:                 {Name: "date"},
		types.Time:                 {Name: "timestamp", Args: dialect.ArgPrecision},
		types.TimeWithTimeZone:     {Name: "timestamp", Args: dialect.ArgPrecision, Suffix: " with time zone"},
		types.DatetimeWithTimeZone: {Name: "timestamp", Args: dialect.ArgPrecision, Suffix: " with time zone"},
		types.Year:                 {Name: "number(4)"},
		types.JSONB:                {Name: "json"},
	},
	Extensions: []string{
		"rowid", "urowid", "bfile", "xmltype", "sdo_geometry", "interval year", "interval day",
	},
}

// BindRules maps Oracle type names to bind kinds. NUMBER picks its Go type
// from the column's precision and scale.
var BindRules = dialect.BindRules{
	"number":                         dialect.BindNumber,
	"integer":                        dialect.BindNumber,
	"float":                          dialect.BindFloat64,
	"binary_float":                   dialect.BindFloat64,
	"binary_double":                  dialect.BindFloat64,
	"date":                           dialect.BindTimestamp,
	"timestamp":                      dialect.BindTimestamp,
	"timestamp with time zone":       dialect.BindTimestamp,
	"timestamp with local time zone": dialect.BindTimestamp,
	"raw":                            dialect.BindBytes,
	"blob":                           dialect.BindBytes,
	"boolean":                        dialect.BindBool,
}
