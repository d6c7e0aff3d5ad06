// Package dialect provides the per-engine bundle of pure data and pure
// functions that the metadata handlers, the DDL generator and the value binder
// dispatch on.
//
// A Dialect is selected by Key; there is no inheritance between dialects.
// Concrete dialects are registered from pkg/dialects/*/ packages.
package dialect

import (
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/jmoiron/sqlx"

	"github.com/leapstack-labs/dbmeta/pkg/core"
)

// Dialect represents one engine's catalog schema, type system and DDL syntax.
type Dialect struct {
	Name        string
	Key         Key
	Identifiers IdentifierConfig

	// Database-specific settings
	DefaultSchema string           // Default schema name ("public" for Postgres, "dbo" for SQL Server)
	Placeholder   PlaceholderStyle // How to format query parameters
	Catalogs      CatalogMode      // How the catalog level is exposed

	// Types converts native spellings to and from canonical types.
	Types TypeMapper

	// Catalog queries, one per listable kind (including catalogs, schemas and columns).
	Queries     map[core.ObjectKind]Query
	PrimaryKeys Query
	ForeignKeys Query

	// NativeDDL holds "show create" style lookups; kinds without an entry are
	// assembled from descriptors.
	NativeDDL map[core.ObjectKind]NativeDDL

	DDL  DDLTemplates
	Bind BindRules

	systemSchemas  map[string]struct{}
	systemPrefixes []string
	reservedWords  map[string]struct{}

	quoteIdent   func(string) string
	quoteLiteral func(string) string
	unwrapType   func(string) string
}

// NormalizeName normalizes an identifier according to dialect rules.
func (d *Dialect) NormalizeName(name string) string {
	switch d.Identifiers.Normalization {
	case NormUppercase:
		return strings.ToUpper(name)
	case NormLowercase, NormCaseInsensitive:
		return strings.ToLower(name)
	default: // NormCaseSensitive
		return name
	}
}

// FormatPlaceholder returns a placeholder for the given parameter index (1-based).
func (d *Dialect) FormatPlaceholder(index int) string {
	switch d.Placeholder {
	case PlaceholderDollar:
		return "$" + strconv.Itoa(index)
	case PlaceholderAt:
		return "@p" + strconv.Itoa(index)
	case PlaceholderColon:
		return ":" + strconv.Itoa(index)
	default: // PlaceholderQuestion
		return "?"
	}
}

// Rebind rewrites ? placeholders into the dialect's placeholder style.
func (d *Dialect) Rebind(query string) string {
	return sqlx.Rebind(d.Placeholder.BindType(), query)
}

// IsReservedWord returns true if the word needs quoting when used as an identifier.
func (d *Dialect) IsReservedWord(word string) bool {
	_, ok := d.reservedWords[strings.ToUpper(word)]
	return ok
}

// IsSystemSchema reports whether schema is engine-internal and must never be listed.
func (d *Dialect) IsSystemSchema(schema string) bool {
	lower := strings.ToLower(schema)
	if _, ok := d.systemSchemas[lower]; ok {
		return true
	}
	for _, p := range d.systemPrefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}

// SystemSchemas returns the exclusion list, sorted. Prefix entries end in "*".
func (d *Dialect) SystemSchemas() []string {
	out := make([]string, 0, len(d.systemSchemas)+len(d.systemPrefixes))
	for s := range d.systemSchemas {
		out = append(out, s)
	}
	for _, p := range d.systemPrefixes {
		out = append(out, p+"*")
	}
	slices.Sort(out)
	return out
}

// QuoteIdentifier quotes an identifier using the dialect's quote characters.
func (d *Dialect) QuoteIdentifier(name string) string {
	if d.quoteIdent != nil {
		return d.quoteIdent(name)
	}
	// Escape any existing quote end characters in the name (e.g., ] -> ]])
	escaped := strings.ReplaceAll(name, d.Identifiers.QuoteEnd, d.Identifiers.Escape)
	return d.Identifiers.Quote + escaped + d.Identifiers.QuoteEnd
}

// QuoteIdentifierIfNeeded quotes an identifier only when it is reserved, is not
// a plain word, or would be case-folded by the engine.
func (d *Dialect) QuoteIdentifierIfNeeded(name string) string {
	if d.needsQuoting(name) {
		return d.QuoteIdentifier(name)
	}
	return name
}

func (d *Dialect) needsQuoting(name string) bool {
	if name == "" || d.IsReservedWord(name) {
		return true
	}
	for i, r := range name {
		switch {
		case r == '_', r < unicode.MaxASCII && unicode.IsLetter(r):
		case i > 0 && (unicode.IsDigit(r) || r == '$'):
		default:
			return true
		}
	}
	if d.Identifiers.Normalization == NormCaseInsensitive {
		return false
	}
	return d.NormalizeName(name) != name
}

// QuoteLiteral renders s as a string literal.
func (d *Dialect) QuoteLiteral(s string) string {
	if d.quoteLiteral != nil {
		return d.quoteLiteral(s)
	}
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// Qualify returns schema.name with each part quoted if needed. A blank schema
// yields the bare name.
func (d *Dialect) Qualify(parts ...string) string {
	quoted := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		quoted = append(quoted, d.QuoteIdentifierIfNeeded(p))
	}
	return strings.Join(quoted, ".")
}

// UnwrapType strips engine-specific wrappers from a native type spelling,
// e.g. ClickHouse Nullable(...). Most dialects return the input unchanged.
func (d *Dialect) UnwrapType(native string) string {
	if d.unwrapType != nil {
		return d.unwrapType(native)
	}
	return native
}

// Query returns the catalog query for kind.
func (d *Dialect) Query(kind core.ObjectKind) (Query, bool) {
	q, ok := d.Queries[kind]
	return q, ok && q.SQL != ""
}

// Builder provides a fluent API for constructing dialects.
type Builder struct {
	d *Dialect
}

// NewDialect creates a new dialect builder with the given name.
func NewDialect(name string) *Builder {
	return &Builder{
		d: &Dialect{
			Name: name,
			Identifiers: IdentifierConfig{
				Quote:         `"`,
				QuoteEnd:      `"`,
				Escape:        `""`,
				Normalization: NormLowercase,
			},
			Placeholder:   PlaceholderQuestion,
			Catalogs:      CatalogCurrent,
			Queries:       make(map[core.ObjectKind]Query),
			NativeDDL:     make(map[core.ObjectKind]NativeDDL),
			Bind:          make(BindRules),
			systemSchemas: make(map[string]struct{}),
			reservedWords: make(map[string]struct{}),
		},
	}
}

// Key sets the engine key.
func (b *Builder) Key(k Key) *Builder {
	b.d.Key = k
	return b
}

// Identifiers configures identifier quoting and normalization.
func (b *Builder) Identifiers(quote, quoteEnd, escape string, norm NormalizationStrategy) *Builder {
	b.d.Identifiers = IdentifierConfig{
		Quote:         quote,
		QuoteEnd:      quoteEnd,
		Escape:        escape,
		Normalization: norm,
	}
	return b
}

// DefaultSchema sets the default schema name.
func (b *Builder) DefaultSchema(schema string) *Builder {
	b.d.DefaultSchema = schema
	return b
}

// PlaceholderStyle sets how query parameters are formatted.
func (b *Builder) PlaceholderStyle(style PlaceholderStyle) *Builder {
	b.d.Placeholder = style
	return b
}

// CatalogMode sets how the catalog level is exposed.
func (b *Builder) CatalogMode(mode CatalogMode) *Builder {
	b.d.Catalogs = mode
	return b
}

// SystemSchemas registers schemas that are never listed. A trailing "*" makes
// the entry a prefix match.
func (b *Builder) SystemSchemas(names ...string) *Builder {
	for _, n := range names {
		n = strings.ToLower(n)
		if p, ok := strings.CutSuffix(n, "*"); ok {
			b.d.systemPrefixes = append(b.d.systemPrefixes, p)
			continue
		}
		b.d.systemSchemas[n] = struct{}{}
	}
	return b
}

// WithReservedWords registers words that need quoting when used as identifiers.
func (b *Builder) WithReservedWords(words ...string) *Builder {
	for _, w := range words {
		b.d.reservedWords[strings.ToUpper(w)] = struct{}{}
	}
	return b
}

// Types sets the type mapper.
func (b *Builder) Types(m TypeMapper) *Builder {
	b.d.Types = m
	return b
}

// Query registers the catalog query for kind.
func (b *Builder) Query(kind core.ObjectKind, q Query) *Builder {
	b.d.Queries[kind] = q
	return b
}

// PrimaryKeys sets the primary key column query.
func (b *Builder) PrimaryKeys(q Query) *Builder {
	b.d.PrimaryKeys = q
	return b
}

// ForeignKeys sets the foreign key column query.
func (b *Builder) ForeignKeys(q Query) *Builder {
	b.d.ForeignKeys = q
	return b
}

// NativeDDL registers a "show create" lookup for kind.
func (b *Builder) NativeDDL(kind core.ObjectKind, n NativeDDL) *Builder {
	b.d.NativeDDL[kind] = n
	return b
}

// DDL sets the DDL templates.
func (b *Builder) DDL(t DDLTemplates) *Builder {
	b.d.DDL = t
	return b
}

// BindRules registers native type names and their bind kinds.
func (b *Builder) BindRules(rules BindRules) *Builder {
	for name, kind := range rules {
		b.d.Bind[strings.ToLower(name)] = kind
	}
	return b
}

// IdentifierQuoter overrides QuoteIdentifier.
func (b *Builder) IdentifierQuoter(f func(string) string) *Builder {
	b.d.quoteIdent = f
	return b
}

// LiteralQuoter overrides QuoteLiteral.
func (b *Builder) LiteralQuoter(f func(string) string) *Builder {
	b.d.quoteLiteral = f
	return b
}

// TypeUnwrapper sets the hook that strips wrappers from native type names.
func (b *Builder) TypeUnwrapper(f func(string) string) *Builder {
	b.d.unwrapType = f
	return b
}

// Build returns the constructed dialect.
func (b *Builder) Build() *Dialect {
	return b.d
}

// WithPlaceholder returns a shallow copy of d using style. Used when one bundle
// is served by drivers with different placeholder syntax.
func (d *Dialect) WithPlaceholder(style PlaceholderStyle) *Dialect {
	c := *d
	c.Placeholder = style
	return &c
}
