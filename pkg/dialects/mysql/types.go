package mysql

import (
	"github.com/leapstack-labs/dbmeta/pkg/dialect"
	"github.com/leapstack-labs/dbmeta/pkg/types"
)

// Types maps MySQL column_type spellings. Display widths are dropped except
// for tinyint(1), which MySQL uses for BOOLEAN.
var Types = &dialect.TableMapper{
	Dialect: "mysql",
	Aliases: map[string]types.Kind{
		"bool":             types.Boolean,
		"boolean":          types.Boolean,
		"bit":              types.Bit,
		"tinyint":          types.TinyInt,
		"smallint":         types.SmallInt,
		"mediumint":        types.MediumInt,
		"int":              types.Integer,
		"integer":          types.Integer,
		"bigint":           types.BigInt,
		"serial":           types.BigIntUnsigned,
		"decimal":          types.Decimal,
		"dec":              types.Decimal,
		"numeric":          types.Decimal,
		"fixed":            types.Decimal,
		"float":            types.Float,
		"double":           types.Double,
		"double precision": types.Double,
		"real":             types.Double,
		"char":             types.Char,
		"varchar":          types.Varchar,
		"tinytext":         types.TinyText,
		"text":             types.Text,
		"mediumtext":       types.MediumText,
		"longtext":         types.LongText,
		"binary":           types.Binary,
		"varbinary":        types.Varbinary,
		"tinyblob":         types.TinyBlob,
		"blob":             types.Blob,
		"mediumblob":       types.MediumBlob,
		"longblob":         types.LongBlob,
		"date":             types.Date,
		"time":             types.Time,
		"datetime":         types.Datetime,
		"timestamp":        types.Timestamp,
		"year":             types.Year,
		"json":             types.JSON,
	},
	Spellings: map[types.Kind]dialect.Spelling{
		types.Boolean:           {Name: "tinyint(1)"},
		types.Bit:               {Name: "bit", Args: dialect.ArgLength},
		types.TinyInt:           {Name: "tinyint"},
		types.TinyIntUnsigned:   {Name: "tinyint", Suffix: " unsigned"},
		types.SmallInt:          {Name: "smallint"},
		types.SmallIntUnsigned:  {Name: "smallint", Suffix: " unsigned"},
		types.MediumInt:         {Name: "mediumint"},
		types.MediumIntUnsigned: {Name: "mediumint", Suffix: " unsigned"},
		types.Integer:           {Name: "int"},
		types.IntegerUnsigned:   {Name: "int", Suffix: " unsigned"},
		types.BigInt:            {Name: "bigint"},
		types.BigIntUnsigned:    {Name: "bigint", Suffix: " unsigned"},
		types.Decimal:           {Name: "decimal", Args: dialect.ArgPrecisionScale},
		types.Float:             {Name: "float", Args: dialect.ArgLength},
		types.Double:            {Name: "double"},
		types.Char:              {Name: "char", Args: dialect.ArgLength},
		types.Varchar:           {Name: "varchar", Args: dialect.ArgLength},
		types.TinyText:          {Name: "tinytext"},
		types.Text:              {Name: "text"},
		types.MediumText:        {Name: "mediumtext"},
		types.LongText:          {Name: "longtext"},
		types.Binary:            {Name: "binary", Args: dialect.ArgLength},
		types.Varbinary:         {Name: "varbinary", Args: dialect.ArgLength},
		types.TinyBlob:          {Name: "tinyblob"},
		types.Blob:              {Name: "blob"},
		types.MediumBlob:        {Name: "mediumblob"},
		types.LongBlob:          {Name: "longblob"},
		types.Date:              {Name: "date"},
		types.Time:              {Name: "time", Args: dialect.ArgPrecision},
		types.Datetime:          {Name: "datetime", Args: dialect.ArgPrecision},
		types.Timestamp:         {Name: "timestamp", Args: dialect.ArgPrecision},
		types.Year:              {Name: "year"},
		types.JSON:              {Name: "json"},
	},
	Lossy: map[types.Kind]dialect.Spelling{
		types.UInt8:                 {Name: "tinyint unsigned"},
		types.UInt16:                {Name: "smallint unsigned"},
		types.UInt32:                {Name: "int unsigned"},
		types.UInt64:                {Name: "bigint unsigned"},
		types.Numeric:               {Name: "decimal", Args: dialect.ArgPrecisionScale},
		types.Real:                  {Name: "float"},
		types.TimeWithTimeZone:      {Name: "time", Args: dialect.ArgPrecision},
		types.TimestampWithTimeZone: {Name: "timestamp", Args: dialect.ArgPrecision},
		types.DatetimeWithTimeZone:  {Name: "datetime", Args: dialect.ArgPrecision},
		types.JSONB:                 {Name: "json"},
	},
	// The numeric bases carry the deprecated unsigned decimals and floats,
	// which have no canonical kind and stay verbatim.
	Extensions: []string{
		"enum", "set", "geometry", "point", "linestring", "polygon", "multipoint",
		"multilinestring", "multipolygon", "geometrycollection", "vector",
		"decimal", "dec", "numeric", "fixed", "float", "double", "double precision", "real",
	},
	Resolve: func(n types.Native, _, _, _ int) (types.Type, bool) {
		if n.Base == "tinyint" && len(n.Args) == 1 && n.Args[0] == 1 && !n.HasModifier("unsigned") {
			return types.Of(types.Boolean), true
		}
		return types.Type{}, false
	},
}

// BindRules maps MySQL type names to bind kinds. Unsigned integer columns are
// promoted to uint64 by the lookup.
var BindRules = dialect.BindRules{
	"bool":       dialect.BindBool,
	"boolean":    dialect.BindBool,
	"tinyint":    dialect.BindInt32,
	"smallint":   dialect.BindInt32,
	"mediumint":  dialect.BindInt32,
	"int":        dialect.BindInt32,
	"integer":    dialect.BindInt32,
	"year":       dialect.BindInt32,
	"bigint":     dialect.BindInt64,
	"decimal":    dialect.BindDecimal,
	"numeric":    dialect.BindDecimal,
	"float":      dialect.BindFloat64,
	"double":     dialect.BindFloat64,
	"real":       dialect.BindFloat64,
	"date":       dialect.BindDate,
	"time":       dialect.BindTime,
	"datetime":   dialect.BindTimestamp,
	"timestamp":  dialect.BindTimestamp,
	"binary":     dialect.BindBytes,
	"varbinary":  dialect.BindBytes,
	"tinyblob":   dialect.BindBytes,
	"blob":       dialect.BindBytes,
	"mediumblob": dialect.BindBytes,
	"longblob":   dialect.BindBytes,
}
