// Package duckdb provides the DuckDB dialect bundle.
//
// Catalog queries go through the duckdb_* table functions, which carry
// comments, estimated sizes and the original CREATE statements.
package duckdb

import (
	"github.com/leapstack-labs/dbmeta/pkg/core"
	"github.com/leapstack-labs/dbmeta/pkg/dialect"
	"github.com/leapstack-labs/dbmeta/pkg/dialects/ansi"
)

func init() {
	dialect.Register(DuckDB)
}

// duckdbReservedWords is the output of duckdb_keywords() filtered to
// keyword_category = 'reserved'.
var duckdbReservedWords = []string{
	"all", "analyse", "analyze", "and", "any", "array", "as", "asc", "asymmetric",
	"both", "case", "cast", "check", "collate", "column", "constraint", "create",
	"default", "deferrable", "desc", "describe", "distinct", "do", "else", "end",
	"except", "false", "fetch", "for", "foreign", "from", "grant", "group",
	"having", "in", "initially", "intersect", "into", "lateral", "leading",
	"limit", "not", "null", "offset", "on", "only", "or", "order", "pivot",
	"pivot_longer", "pivot_wider", "placing", "primary", "qualify", "references",
	"returning", "select", "show", "some", "summarize", "symmetric", "table",
	"then", "to", "trailing", "true", "union", "unique", "unpivot", "using",
	"variadic", "when", "where", "window", "with",
}

// DuckDB is the DuckDB dialect. Identifiers are case-insensitive but keep
// their spelling, so mixed-case names are not quoted.
var DuckDB = dialect.NewDialect("duckdb").
	Key(dialect.DuckDB).
	Identifiers(`"`, `"`, `""`, dialect.NormCaseInsensitive).
	DefaultSchema("main").
	PlaceholderStyle(dialect.PlaceholderQuestion).
	CatalogMode(dialect.CatalogCurrent).
	SystemSchemas("information_schema", "pg_catalog").
	WithReservedWords(duckdbReservedWords...).
	Types(Types).
	Query(core.KindCatalog, catalogsQuery).
	Query(core.KindSchema, schemasQuery).
	Query(core.KindTable, tablesQuery).
	Query(core.KindView, viewsQuery).
	Query(core.KindIndex, indexesQuery).
	Query(core.KindSequence, sequencesQuery).
	Query(core.KindFunction, functionsQuery).
	Query(core.KindColumn, columnsQuery).
	PrimaryKeys(ansi.PrimaryKeysQuery).
	ForeignKeys(ansi.ForeignKeysQuery).
	NativeDDL(core.KindTable, createStatement("duckdb_tables()", "table_name")).
	NativeDDL(core.KindView, createStatement("duckdb_views()", "view_name")).
	NativeDDL(core.KindIndex, createStatement("duckdb_indexes()", "index_name")).
	NativeDDL(core.KindSequence, createStatement("duckdb_sequences()", "sequence_name")).
	DDL(Templates).
	BindRules(BindRules).
	Build()
