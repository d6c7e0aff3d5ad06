// Package ansi provides the generic ANSI SQL dialect bundle.
//
// It is built on information_schema only, so it works against any engine that
// implements the standard views, at the cost of row counts, sizes and comments.
// This package is pure Go with no database driver dependencies.
package ansi

import (
	"github.com/leapstack-labs/dbmeta/pkg/core"
	"github.com/leapstack-labs/dbmeta/pkg/dialect"
)

func init() {
	dialect.Register(ANSI)
}

// ansiReservedWords contains the SQL:2016 reserved words most likely to clash
// with real table and column names.
var ansiReservedWords = []string{
	"all", "alter", "and", "any", "as", "asc", "between", "by", "case", "cast",
	"check", "column", "constraint", "create", "cross", "current", "current_date",
	"current_time", "current_timestamp", "current_user", "default", "delete",
	"desc", "distinct", "drop", "else", "end", "except", "exists", "false",
	"fetch", "for", "foreign", "from", "full", "grant", "group", "having", "in",
	"inner", "insert", "intersect", "into", "is", "join", "left", "like", "not",
	"null", "of", "on", "or", "order", "outer", "primary", "references", "right",
	"select", "session_user", "set", "some", "table", "then", "to", "true",
	"union", "unique", "update", "user", "using", "value", "values", "when",
	"where", "with", "year", "month", "day", "hour", "minute", "second", "time",
	"timestamp", "date", "interval", "position", "size",
}

// SystemSchemas are the schemas hidden by the generic handlers. They cover the
// engines most often reached through a generic driver.
var SystemSchemas = []string{
	"information_schema", "definition_schema", "pg_catalog", "pg_toast*", "pg_temp_*",
	"mysql", "performance_schema", "sys", "system",
}

// ANSI is the generic dialect.
var ANSI = dialect.NewDialect("ansi").
	Key(dialect.Generic).
	Identifiers(`"`, `"`, `""`, dialect.NormUppercase).
	PlaceholderStyle(dialect.PlaceholderQuestion).
	CatalogMode(dialect.CatalogCurrent).
	SystemSchemas(SystemSchemas...).
	WithReservedWords(ansiReservedWords...).
	Types(Types).
	Query(core.KindCatalog, catalogsQuery).
	Query(core.KindSchema, schemasQuery).
	Query(core.KindTable, tablesQuery).
	Query(core.KindView, viewsQuery).
	Query(core.KindForeignTable, foreignTablesQuery).
	Query(core.KindIndex, indexesQuery).
	Query(core.KindSequence, sequencesQuery).
	Query(core.KindFunction, functionsQuery).
	Query(core.KindColumn, columnsQuery).
	PrimaryKeys(PrimaryKeysQuery).
	ForeignKeys(ForeignKeysQuery).
	DDL(Templates).
	BindRules(BindRules).
	Build()
