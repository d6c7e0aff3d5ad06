// Package mysql provides the MySQL dialect bundle.
//
// MySQL has no catalog level: the configured database is exposed as the only
// catalog and every database on the server is listed as a schema.
package mysql

import (
	"strings"

	"github.com/leapstack-labs/dbmeta/pkg/core"
	"github.com/leapstack-labs/dbmeta/pkg/dialect"
)

func init() {
	dialect.Register(MySQL)
}

// mysqlReservedWords contains the MySQL 8.0 reserved words most likely to be
// used as table or column names.
var mysqlReservedWords = []string{
	"accessible", "add", "all", "alter", "analyze", "and", "as", "asc", "before",
	"between", "bigint", "binary", "blob", "both", "by", "call", "cascade", "case",
	"change", "char", "character", "check", "collate", "column", "condition",
	"constraint", "continue", "convert", "create", "cross", "cube", "current_date",
	"current_time", "current_timestamp", "current_user", "cursor", "database",
	"databases", "default", "delayed", "delete", "desc", "describe", "distinct",
	"div", "double", "drop", "dual", "each", "else", "elseif", "exists", "exit",
	"explain", "false", "fetch", "float", "for", "force", "foreign", "from",
	"fulltext", "function", "generated", "grant", "group", "grouping", "groups",
	"having", "if", "ignore", "in", "index", "inner", "insert", "int", "integer",
	"interval", "into", "is", "join", "key", "keys", "kill", "lag", "lead",
	"leading", "leave", "left", "like", "limit", "lines", "load", "lock", "long",
	"match", "mod", "natural", "not", "null", "numeric", "of", "on", "option",
	"or", "order", "out", "outer", "over", "partition", "precision", "primary",
	"procedure", "range", "rank", "read", "real", "references", "regexp",
	"release", "rename", "repeat", "replace", "require", "restrict", "return",
	"revoke", "right", "rlike", "row", "rows", "schema", "schemas", "select",
	"set", "show", "smallint", "spatial", "sql", "ssl", "starting", "system",
	"table", "terminated", "then", "to", "trailing", "trigger", "true", "union",
	"unique", "unlock", "unsigned", "update", "usage", "use", "using", "values",
	"varchar", "when", "where", "while", "window", "with", "write", "xor",
	"year_month", "zerofill",
}

// quoteLiteral escapes backslashes as well as quotes; MySQL treats a backslash
// in a string literal as an escape character unless NO_BACKSLASH_ESCAPES is set.
func quoteLiteral(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// MySQL is the MySQL dialect.
var MySQL = dialect.NewDialect("mysql").
	Key(dialect.MySQL).
	Identifiers("`", "`", "``", dialect.NormCaseInsensitive).
	LiteralQuoter(quoteLiteral).
	PlaceholderStyle(dialect.PlaceholderQuestion).
	CatalogMode(dialect.CatalogPseudo).
	SystemSchemas("information_schema", "mysql", "performance_schema", "sys").
	WithReservedWords(mysqlReservedWords...).
	Types(Types).
	Query(core.KindCatalog, catalogsQuery).
	Query(core.KindSchema, schemasQuery).
	Query(core.KindTable, tablesQuery).
	Query(core.KindView, viewsQuery).
	Query(core.KindForeignTable, foreignTablesQuery).
	Query(core.KindIndex, indexesQuery).
	Query(core.KindFunction, functionsQuery).
	Query(core.KindColumn, columnsQuery).
	PrimaryKeys(primaryKeysQuery).
	ForeignKeys(foreignKeysQuery).
	NativeDDL(core.KindTable, showCreate("TABLE", 1)).
	NativeDDL(core.KindForeignTable, showCreate("TABLE", 1)).
	NativeDDL(core.KindView, showCreate("VIEW", 1)).
	NativeDDL(core.KindFunction, showCreate("FUNCTION", 2)).
	DDL(Templates).
	BindRules(BindRules).
	Build()
