package dialect

import (
	"strings"

	"github.com/leapstack-labs/dbmeta/pkg/core"
)

// Query is a catalog query template written with ? placeholders.
//
// SQL must end inside a WHERE clause: Build appends exact-match filters as
// "AND <column> = ?". Columns left blank are never pushed down. The tokens
// {{catalog}} and {{catalog_name}} are replaced for cross-catalog engines with
// the quoted catalog prefix ("[db]." or "") and the catalog name literal (or
// DB_NAME() style CurrentCatalog expression) respectively.
type Query struct {
	SQL     string
	Catalog string
	Schema  string
	Name    string
	Table   string
	OrderBy string

	// CurrentCatalog is substituted for {{catalog_name}} when no catalog is given.
	CurrentCatalog string
}

// Build renders the query for filter f and returns the rebound SQL with its
// arguments. Wildcard patterns are never written into the SQL text; callers
// apply them with Match after scanning.
func (q Query) Build(d *Dialect, f core.Filter) (string, []any) {
	sql := q.SQL
	if strings.Contains(sql, "{{") {
		prefix, name := "", q.CurrentCatalog
		if f.Catalog != "" {
			prefix = d.QuoteIdentifier(f.Catalog) + "."
			name = d.QuoteLiteral(f.Catalog)
		}
		sql = strings.NewReplacer("{{catalog}}", prefix, "{{catalog_name}}", name).Replace(sql)
	}

	var b strings.Builder
	b.WriteString(sql)
	var args []any
	add := func(column, value string) {
		if column == "" || !Pattern(value).IsExact() {
			return
		}
		b.WriteString(" AND ")
		b.WriteString(column)
		b.WriteString(" = ?")
		args = append(args, value)
	}
	if d.Catalogs == CatalogCurrent {
		add(q.Catalog, f.Catalog)
	}
	add(q.Schema, f.Schema)
	add(q.Name, f.Name)
	add(q.Table, f.Table)
	if q.OrderBy != "" {
		b.WriteString(" ORDER BY ")
		b.WriteString(q.OrderBy)
	}
	return d.Rebind(b.String()), args
}

// Pattern is a list filter value.
//
//	""        matches everything
//	"orders"  matches exactly "orders" (case-sensitive)
//	"ord%"    '%' and '*' match any run of characters, everything else is literal
type Pattern string

// IsBlank reports whether the pattern matches everything.
func (p Pattern) IsBlank() bool { return strings.TrimSpace(string(p)) == "" }

// HasWildcard reports whether the pattern contains '%' or '*'.
func (p Pattern) HasWildcard() bool { return strings.ContainsAny(string(p), "%*") }

// IsExact reports whether the pattern is a plain name.
func (p Pattern) IsExact() bool { return !p.IsBlank() && !p.HasWildcard() }

// Match reports whether s satisfies the pattern.
func (p Pattern) Match(s string) bool {
	switch {
	case p.IsBlank():
		return true
	case !p.HasWildcard():
		return s == string(p)
	}

	segments := strings.FieldsFunc(string(p), func(r rune) bool { return r == '%' || r == '*' })
	pat := string(p)
	anchoredStart := !strings.ContainsAny(pat[:1], "%*")
	anchoredEnd := !strings.ContainsAny(pat[len(pat)-1:], "%*")

	rest := s
	for i, seg := range segments {
		switch {
		case i == 0 && anchoredStart:
			if !strings.HasPrefix(rest, seg) {
				return false
			}
			rest = rest[len(seg):]
		case i == len(segments)-1 && anchoredEnd:
			return strings.HasSuffix(rest, seg)
		default:
			idx := strings.Index(rest, seg)
			if idx < 0 {
				return false
			}
			rest = rest[idx+len(seg):]
		}
	}
	return true
}

// MatchFilter applies the schema, name and table patterns of f.
func MatchFilter(f core.Filter, schema, name, table string) bool {
	return Pattern(f.Schema).Match(schema) &&
		Pattern(f.Name).Match(name) &&
		Pattern(f.Table).Match(table)
}
