// Package postgres provides the PostgreSQL dialect bundle.
// This package is pure Go with no database driver dependencies; identifier
// and literal escaping reuse lib/pq's quoting routines.
package postgres

import (
	"github.com/lib/pq"

	"github.com/leapstack-labs/dbmeta/pkg/core"
	"github.com/leapstack-labs/dbmeta/pkg/dialect"
)

func init() {
	dialect.Register(Postgres)
}

// postgresReservedWords contains common PostgreSQL reserved words.
// This is a manually maintained list of frequently problematic identifiers.
// For a complete list, use pg_get_keywords() at runtime.
var postgresReservedWords = []string{
	"user", "order", "group", "table", "select", "from", "where", "index",
	"all", "and", "any", "array", "as", "asc", "asymmetric", "authorization",
	"between", "binary", "both", "case", "cast", "check", "collate", "column",
	"constraint", "create", "cross", "current_catalog", "current_date",
	"current_role", "current_schema", "current_time", "current_timestamp",
	"current_user", "default", "deferrable", "desc", "distinct", "do", "else",
	"end", "except", "false", "fetch", "for", "foreign", "freeze", "full",
	"grant", "having", "ilike", "in", "initially", "inner", "intersect",
	"into", "is", "isnull", "join", "lateral", "leading", "left", "like",
	"limit", "localtime", "localtimestamp", "natural", "not", "notnull",
	"null", "offset", "on", "only", "or", "outer", "overlaps", "placing",
	"primary", "references", "returning", "right", "session_user", "similar",
	"some", "symmetric", "then", "to", "trailing", "true", "union", "unique",
	"using", "variadic", "verbose", "when", "window", "with",
}

// Postgres is the PostgreSQL dialect.
var Postgres = dialect.NewDialect("postgresql").
	Key(dialect.PostgreSQL).
	Identifiers(`"`, `"`, `""`, dialect.NormLowercase).
	IdentifierQuoter(pq.QuoteIdentifier).
	LiteralQuoter(pq.QuoteLiteral).
	DefaultSchema("public").
	PlaceholderStyle(dialect.PlaceholderDollar).
	CatalogMode(dialect.CatalogCurrent).
	SystemSchemas("information_schema", "pg_catalog", "pg_toast*", "pg_temp_*").
	WithReservedWords(postgresReservedWords...).
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
	DDL(Templates).
	BindRules(BindRules).
	Build()
