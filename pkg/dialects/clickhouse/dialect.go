// Package clickhouse provides the ClickHouse dialect bundle.
//
// ClickHouse has databases but no schemas inside them; databases are listed
// as schemas and the configured database is the only catalog. Type names are
// case-sensitive and may be wrapped in Nullable(...) or LowCardinality(...).
package clickhouse

import (
	"strings"

	"github.com/leapstack-labs/dbmeta/pkg/core"
	"github.com/leapstack-labs/dbmeta/pkg/dialect"
)

func init() {
	dialect.Register(ClickHouse)
}

// clickhouseReservedWords are keywords that break statements when used as
// bare identifiers.
var clickhouseReservedWords = []string{
	"all", "and", "any", "array", "as", "asc", "between", "by", "case", "cast",
	"cross", "desc", "distinct", "else", "end", "except", "final", "format", "from",
	"full", "global", "group", "having", "ilike", "in", "inner", "interval",
	"intersect", "into", "is", "join", "left", "like", "limit", "not", "null",
	"offset", "on", "or", "order", "outer", "prewhere", "right", "sample",
	"select", "settings", "table", "then", "to", "union", "using", "when",
	"where", "with",
}

var wrappers = []string{"nullable(", "lowcardinality("}

// unwrapType strips Nullable(...) and LowCardinality(...) in any nesting order.
func unwrapType(native string) string {
	s := strings.TrimSpace(native)
	for {
		w, ok := wrapperOf(s)
		if !ok {
			return s
		}
		s = strings.TrimSpace(s[len(w) : len(s)-1])
	}
}

func wrapperOf(s string) (string, bool) {
	if !strings.HasSuffix(s, ")") {
		return "", false
	}
	lower := strings.ToLower(s)
	for _, w := range wrappers {
		if strings.HasPrefix(lower, w) {
			return w, true
		}
	}
	return "", false
}

// quoteLiteral escapes with backslashes, the form ClickHouse documents.
func quoteLiteral(s string) string {
	return "'" + strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s) + "'"
}

// ClickHouse is the ClickHouse dialect.
var ClickHouse = dialect.NewDialect("clickhouse").
	Key(dialect.ClickHouse).
	Identifiers("`", "`", "\\`", dialect.NormCaseSensitive).
	LiteralQuoter(quoteLiteral).
	TypeUnwrapper(unwrapType).
	DefaultSchema("default").
	PlaceholderStyle(dialect.PlaceholderQuestion).
	CatalogMode(dialect.CatalogPseudo).
	SystemSchemas("system", "information_schema").
	WithReservedWords(clickhouseReservedWords...).
	Types(Types).
	Query(core.KindCatalog, catalogsQuery).
	Query(core.KindSchema, schemasQuery).
	Query(core.KindTable, tablesQuery).
	Query(core.KindView, viewsQuery).
	Query(core.KindMaterializedView, materializedViewsQuery).
	Query(core.KindForeignTable, foreignTablesQuery).
	Query(core.KindIndex, indexesQuery).
	Query(core.KindFunction, functionsQuery).
	Query(core.KindColumn, columnsQuery).
	PrimaryKeys(primaryKeysQuery).
	NativeDDL(core.KindTable, showCreate).
	NativeDDL(core.KindView, showCreate).
	NativeDDL(core.KindMaterializedView, showCreate).
	NativeDDL(core.KindForeignTable, showCreate).
	NativeDDL(core.KindFunction, functionDDL).
	DDL(Templates).
	BindRules(BindRules).
	Build()
