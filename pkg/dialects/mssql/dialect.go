// Package mssql provides the Microsoft SQL Server dialect bundle.
//
// SQL Server exposes every database on the instance as a catalog. Catalog
// queries address sys views through a three-part [database].sys.* prefix, so
// one connection can list objects of any database it may read.
package mssql

import (
	"strings"

	"github.com/leapstack-labs/dbmeta/pkg/core"
	"github.com/leapstack-labs/dbmeta/pkg/dialect"
)

func init() {
	dialect.Register(MSSQL)
}

// mssqlReservedWords contains the Transact-SQL reserved keywords.
var mssqlReservedWords = []string{
	"add", "all", "alter", "and", "any", "as", "asc", "authorization", "backup",
	"begin", "between", "break", "browse", "bulk", "by", "cascade", "case", "check",
	"checkpoint", "close", "clustered", "coalesce", "collate", "column", "commit",
	"compute", "constraint", "contains", "containstable", "continue", "convert",
	"create", "cross", "current", "current_date", "current_time",
	"current_timestamp", "current_user", "cursor", "database", "dbcc",
	"deallocate", "declare", "default", "delete", "deny", "desc", "disk",
	"distinct", "distributed", "double", "drop", "dump", "else", "end", "errlvl",
	"escape", "except", "exec", "execute", "exists", "exit", "external", "fetch",
	"file", "fillfactor", "for", "foreign", "freetext", "freetexttable", "from",
	"full", "function", "goto", "grant", "group", "having", "holdlock",
	"identity", "identity_insert", "identitycol", "if", "in", "index", "inner",
	"insert", "intersect", "into", "is", "join", "key", "kill", "left", "like",
	"lineno", "load", "merge", "national", "nocheck", "nonclustered", "not",
	"null", "nullif", "of", "off", "offsets", "on", "open", "opendatasource",
	"openquery", "openrowset", "openxml", "option", "or", "order", "outer",
	"over", "percent", "pivot", "plan", "precision", "primary", "print", "proc",
	"procedure", "public", "raiserror", "read", "readtext", "reconfigure",
	"references", "replication", "restore", "restrict", "return", "revert",
	"revoke", "right", "rollback", "rowcount", "rowguidcol", "rule", "save",
	"schema", "securityaudit", "select", "semantickeyphrasetable",
	"semanticsimilaritydetailstable", "semanticsimilaritytable", "session_user",
	"set", "setuser", "shutdown", "some", "statistics", "system_user", "table",
	"tablesample", "textsize", "then", "to", "top", "tran", "transaction",
	"trigger", "truncate", "try_convert", "tsequal", "union", "unique", "unpivot",
	"update", "updatetext", "use", "user", "values", "varying", "view", "waitfor",
	"when", "where", "while", "with", "writetext",
}

// quoteLiteral writes a Unicode string literal.
func quoteLiteral(s string) string {
	return "N'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// MSSQL is the SQL Server dialect.
var MSSQL = dialect.NewDialect("mssql").
	Key(dialect.MSSQL).
	Identifiers("[", "]", "]]", dialect.NormCaseInsensitive).
	LiteralQuoter(quoteLiteral).
	DefaultSchema("dbo").
	PlaceholderStyle(dialect.PlaceholderAt).
	CatalogMode(dialect.CatalogCross).
	SystemSchemas(
		"sys", "information_schema", "guest", "db_owner", "db_accessadmin",
		"db_securityadmin", "db_ddladmin", "db_backupoperator", "db_datareader",
		"db_datawriter", "db_denydatareader", "db_denydatawriter",
	).
	WithReservedWords(mssqlReservedWords...).
	Types(Types).
	Query(core.KindCatalog, catalogsQuery).
	Query(core.KindSchema, schemasQuery).
	Query(core.KindTable, tablesQuery).
	Query(core.KindView, viewsQuery).
	Query(core.KindMaterializedView, materializedViewsQuery).
	Query(core.KindForeignTable, foreignTablesQuery).
	Query(core.KindIndex, indexesQuery).
	Query(core.KindSequence, sequencesQuery).
	Query(core.KindFunction, functionsQuery).
	Query(core.KindColumn, columnsQuery).
	PrimaryKeys(primaryKeysQuery).
	ForeignKeys(foreignKeysQuery).
	NativeDDL(core.KindView, objectDefinition).
	NativeDDL(core.KindMaterializedView, objectDefinition).
	NativeDDL(core.KindFunction, objectDefinition).
	DDL(Templates).
	BindRules(BindRules).
	Build()
