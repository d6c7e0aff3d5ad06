// Package ddl assembles dialect-correct DDL text from descriptors.
//
// Every generator method is pure: it returns either the complete text or an
// error, never partial output, and returns byte-identical text for identical
// input. Scripts are multi-line with each statement terminated by ';'. The
// *Statement methods return one bare statement for execution through a driver.
package ddl

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/leapstack-labs/dbmeta/pkg/core"
	"github.com/leapstack-labs/dbmeta/pkg/dialect"
	"github.com/leapstack-labs/dbmeta/pkg/types"
)

const indentSize = 2

var indent = strings.Repeat(" ", indentSize)

// Generator renders DDL for one dialect.
type Generator struct {
	d *dialect.Dialect
	t dialect.DDLTemplates
}

// New creates a generator for d.
func New(d *dialect.Dialect) *Generator {
	return &Generator{d: d, t: d.DDL}
}

// Dialect returns the dialect the generator renders for.
func (g *Generator) Dialect() *dialect.Dialect { return g.d }

func (g *Generator) refVars(ref core.ObjectRef) vars {
	d := g.d
	v := vars{
		"qualified": d.Qualify(ref.SchemaName, ref.ObjectName),
		"name":      d.QuoteIdentifierIfNeeded(ref.ObjectName),
		"name_lit":  d.QuoteLiteral(ref.ObjectName),
	}
	v["qualified_lit"] = d.QuoteLiteral(v["qualified"])

	schema := cmp.Or(ref.SchemaName, d.DefaultSchema)
	if schema != "" {
		v["schema"] = d.QuoteIdentifierIfNeeded(schema)
		v["schema_lit"] = d.QuoteLiteral(schema)
	}
	if ref.TableName != "" {
		v["table"] = d.Qualify(ref.SchemaName, ref.TableName)
		v["table_lit"] = d.QuoteLiteral(ref.TableName)
		v["index_lit"] = d.QuoteLiteral(v["table"] + "." + v["name"])
	}
	return v
}

// inCatalog scopes a bare drop or rename statement to ref's catalog. Only
// CatalogCross engines can address another catalog from one connection.
func (g *Generator) inCatalog(op string, ref core.ObjectRef, stmt string) (string, error) {
	if ref.CatalogName == "" || g.d.Catalogs != dialect.CatalogCross {
		return stmt, nil
	}
	if g.t.InCatalog == "" {
		return "", fmt.Errorf("%s %s in catalog %s: %w", op, ref.ObjectName, ref.CatalogName, core.ErrUnsupportedOperation)
	}
	return render(g.t.InCatalog, vars{
		"catalog":       g.d.QuoteIdentifier(ref.CatalogName),
		"statement_lit": g.d.QuoteLiteral(stmt),
	})
}

func tableRef(o core.Object) core.ObjectRef {
	return core.ObjectRef{SchemaName: o.SchemaName, ObjectName: o.ObjectName, TableName: o.ObjectName}
}

// DropStatement returns the bare DROP statement for kind.
func (g *Generator) DropStatement(kind core.ObjectKind, ref core.ObjectRef) (string, error) {
	tmpl, err := g.t.DropTemplate(kind)
	if err != nil {
		return "", err
	}
	stmt, err := render(tmpl, g.refVars(ref))
	if err != nil {
		return "", fmt.Errorf("drop %s %s: %w", kind, ref.ObjectName, err)
	}
	return g.inCatalog("drop "+kind.String(), ref, stmt)
}

// Drop returns the DROP script for kind.
func (g *Generator) Drop(kind core.ObjectKind, ref core.ObjectRef) (string, error) {
	stmt, err := g.DropStatement(kind, ref)
	if err != nil {
		return "", err
	}
	return statement(stmt) + ";", nil
}

// RenameStatement returns the bare rename statement for kind.
func (g *Generator) RenameStatement(kind core.ObjectKind, ref core.ObjectRef, newName string) (string, error) {
	tmpl, err := g.t.RenameTemplate(kind)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(newName) == "" {
		return "", fmt.Errorf("rename %s %s: new name is empty", kind, ref.ObjectName)
	}
	v := g.refVars(ref)
	v["new"] = g.d.QuoteIdentifierIfNeeded(newName)
	v["new_lit"] = g.d.QuoteLiteral(newName)
	v["new_qualified"] = g.d.Qualify(ref.SchemaName, newName)

	stmt, err := render(tmpl, v)
	if err != nil {
		return "", fmt.Errorf("rename %s %s: %w", kind, ref.ObjectName, err)
	}
	return g.inCatalog("rename "+kind.String(), ref, stmt)
}

// Rename returns the rename script for kind.
func (g *Generator) Rename(kind core.ObjectKind, ref core.ObjectRef, newName string) (string, error) {
	stmt, err := g.RenameStatement(kind, ref, newName)
	if err != nil {
		return "", err
	}
	return statement(stmt) + ";", nil
}

func (g *Generator) commentsSupported() bool {
	return g.t.Comments != dialect.CommentUnsupported
}

// CommentOnTableStatement returns the bare statement that sets a table remark.
func (g *Generator) CommentOnTableStatement(ref core.ObjectRef, remark string) (string, error) {
	if !g.commentsSupported() || g.t.CommentOnTable == "" {
		return "", fmt.Errorf("comment on table: %w", core.ErrUnsupportedOperation)
	}
	if ref.TableName == "" {
		ref.TableName = ref.ObjectName
	}
	v := g.refVars(ref)
	v["literal"] = g.d.QuoteLiteral(remark)
	stmt, err := render(g.t.CommentOnTable, v)
	if err != nil {
		return "", fmt.Errorf("comment on table %s: %w", ref.ObjectName, err)
	}
	return stmt, nil
}

// CommentOnTable returns the script that sets a table remark.
func (g *Generator) CommentOnTable(ref core.ObjectRef, remark string) (string, error) {
	stmt, err := g.CommentOnTableStatement(ref, remark)
	if err != nil {
		return "", err
	}
	return statement(stmt) + ";", nil
}

// CommentOnColumnStatement returns the bare statement that sets col.Remark on
// the column of the table addressed by ref.
func (g *Generator) CommentOnColumnStatement(ref core.ObjectRef, col core.Column) (string, error) {
	if !g.commentsSupported() || g.t.CommentOnColumn == "" {
		return "", fmt.Errorf("comment on column: %w", core.ErrUnsupportedOperation)
	}
	if ref.TableName == "" {
		ref.TableName = ref.ObjectName
	}
	v := g.refVars(ref)
	v["column"] = g.d.QuoteIdentifierIfNeeded(col.ColumnName)
	v["column_lit"] = g.d.QuoteLiteral(col.ColumnName)
	v["literal"] = g.d.QuoteLiteral(col.Remark)
	if strings.Contains(g.t.CommentOnColumn, "{{definition}}") {
		def, err := g.columnDefinition(col, false)
		if err != nil {
			return "", err
		}
		v["definition"] = def
	}
	stmt, err := render(g.t.CommentOnColumn, v)
	if err != nil {
		return "", fmt.Errorf("comment on column %s.%s: %w", ref.ObjectName, col.ColumnName, err)
	}
	return stmt, nil
}

// CommentOnColumn returns the script that sets col.Remark.
func (g *Generator) CommentOnColumn(ref core.ObjectRef, col core.Column) (string, error) {
	stmt, err := g.CommentOnColumnStatement(ref, col)
	if err != nil {
		return "", err
	}
	return statement(stmt) + ";", nil
}

// ColumnType renders the native type of c. Types the engine reported itself
// (an Extension derived from the column's own native name) render verbatim.
func (g *Generator) ColumnType(c core.Column) (string, error) {
	t := c.SQLType
	if t == (types.Type{}) && c.NativeTypeName != "" {
		t = g.d.Types.ToType(c.NativeTypeName, c.Length, c.Precision, c.Scale)
	}
	s, err := g.d.Types.FromType(t)
	if err == nil {
		return s, nil
	}
	if t.Kind == types.Extension && c.NativeTypeName != "" {
		native := g.d.UnwrapType(strings.TrimSpace(c.NativeTypeName))
		if types.Ext(native) == t {
			return native, nil
		}
	}
	return "", fmt.Errorf("column %s: %w", c.ColumnName, err)
}

// ColumnDefinition renders "name type [NULL|NOT NULL] [DEFAULT v]" with the
// dialect's identity syntax for auto-increment columns.
func (g *Generator) ColumnDefinition(c core.Column) (string, error) {
	return g.columnDefinition(c, true)
}

func (g *Generator) columnDefinition(c core.Column, withComment bool) (string, error) {
	identity := c.AutoIncrement && g.t.Identity != dialect.IdentityNone

	var b strings.Builder
	b.WriteString(g.d.QuoteIdentifierIfNeeded(c.ColumnName))
	b.WriteByte(' ')
	if identity && g.t.Identity == dialect.IdentitySerial {
		b.WriteString(serialType(c.SQLType.Kind))
	} else {
		typ, err := g.ColumnType(c)
		if err != nil {
			return "", err
		}
		b.WriteString(typ)
	}

	if identity {
		switch g.t.Identity {
		case dialect.IdentityKeyword:
			b.WriteString(" IDENTITY(1,1)")
		case dialect.IdentityGenerated:
			b.WriteString(" GENERATED BY DEFAULT AS IDENTITY")
		}
	}

	if c.IsNullable && !identity {
		b.WriteString(" NULL")
	} else {
		b.WriteString(" NOT NULL")
	}

	if !identity && c.DefaultValue != nil && strings.TrimSpace(*c.DefaultValue) != "" {
		b.WriteString(" DEFAULT ")
		b.WriteString(strings.TrimSpace(*c.DefaultValue))
	}

	if identity && g.t.Identity == dialect.IdentityAutoIncrement {
		b.WriteString(" AUTO_INCREMENT")
	}

	if withComment && c.Remark != "" && g.t.Comments == dialect.CommentInline && g.t.ColumnComment != "" {
		s, err := render(g.t.ColumnComment, vars{"literal": g.d.QuoteLiteral(c.Remark)})
		if err != nil {
			return "", err
		}
		b.WriteString(s)
	}
	return b.String(), nil
}

func serialType(k types.Kind) string {
	switch k {
	case types.SmallInt, types.TinyInt:
		return "smallserial"
	case types.BigInt:
		return "bigserial"
	}
	return "serial"
}

// sortedColumns returns a copy of cols in ascending ordinal order.
func sortedColumns(cols []core.Column) []core.Column {
	out := slices.Clone(cols)
	slices.SortStableFunc(out, func(a, b core.Column) int { return cmp.Compare(a.Ordinal, b.Ordinal) })
	return out
}

// body renders "(\n  line,\n  line\n)".
func body(lines []string) string {
	if len(lines) == 0 {
		return "()"
	}
	var b strings.Builder
	b.WriteString("(\n")
	for i, l := range lines {
		b.WriteString(indent)
		b.WriteString(l)
		if i < len(lines)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteByte(')')
	return b.String()
}

func (g *Generator) columnLines(cols []core.Column) ([]string, error) {
	lines := make([]string, 0, len(cols))
	for _, c := range sortedColumns(cols) {
		def, err := g.ColumnDefinition(c)
		if err != nil {
			return nil, err
		}
		lines = append(lines, def)
	}
	return lines, nil
}

// columnList quotes a comma-joined key list. Expressions and already quoted
// names are kept verbatim.
func (g *Generator) columnList(columns string) string {
	parts := splitTopLevel(columns)
	for i, p := range parts {
		if strings.ContainsAny(p, "( \"`[") {
			continue
		}
		parts[i] = g.d.QuoteIdentifierIfNeeded(p)
	}
	return strings.Join(parts, ", ")
}

// splitTopLevel splits s on commas outside parentheses and quotes.
func splitTopLevel(s string) []string {
	var parts []string
	depth, start := 0, 0
	var quote rune
	for i, r := range s {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'' || r == '`':
			quote = r
		case r == '(':
			depth++
		case r == ')':
			depth--
		case r == ',' && depth == 0:
			parts = append(parts, strings.TrimSpace(s[start:i]))
			start = i + 1
		}
	}
	if last := strings.TrimSpace(s[start:]); last != "" || len(parts) > 0 {
		parts = append(parts, last)
	}
	return slices.DeleteFunc(parts, func(p string) bool { return p == "" })
}

// primaryKey returns the constraint name and ordered key columns of t. When
// the table has no key rows, a primary index stands in.
func primaryKey(t core.Table) (string, []string) {
	if len(t.PrimaryKeys) > 0 {
		keys := slices.Clone(t.PrimaryKeys)
		slices.SortStableFunc(keys, func(a, b core.PrimaryKey) int { return cmp.Compare(a.Position, b.Position) })
		cols := make([]string, len(keys))
		for i, k := range keys {
			cols[i] = k.ColumnName
		}
		return keys[0].ConstraintName, cols
	}
	for _, idx := range t.Indexes {
		if idx.IsPrimary {
			return idx.ObjectName, splitTopLevel(idx.Columns)
		}
	}
	return "", nil
}

// CreateTable renders the table, its primary key, indexes and remarks.
func (g *Generator) CreateTable(t core.Table) (string, error) {
	if len(t.Columns) == 0 {
		return "", fmt.Errorf("create table %s: no columns", t.ObjectName)
	}
	v := g.refVars(tableRef(t.Object))

	lines, err := g.columnLines(t.Columns)
	if err != nil {
		return "", fmt.Errorf("create table %s: %w", t.ObjectName, err)
	}

	pkName, pkCols := primaryKey(t)
	pkList := g.columnList(strings.Join(pkCols, ","))
	inlinePK := len(pkCols) > 0 && g.t.InlinePrimaryKey && g.t.AddPrimaryKey == ""
	if inlinePK {
		lines = append(lines, "PRIMARY KEY ("+pkList+")")
	}

	var create strings.Builder
	create.WriteString("CREATE TABLE ")
	create.WriteString(v["qualified"])
	create.WriteByte(' ')
	create.WriteString(body(lines))

	if g.t.TableSuffix != "" {
		orderBy := "tuple()"
		if len(pkCols) > 0 {
			orderBy = "(" + pkList + ")"
		}
		sv := g.refVars(tableRef(t.Object))
		sv["order_by"] = orderBy
		suffix, err := render(g.t.TableSuffix, sv)
		if err != nil {
			return "", fmt.Errorf("create table %s: %w", t.ObjectName, err)
		}
		create.WriteString(suffix)
	}
	if t.Remark != "" && g.t.Comments == dialect.CommentInline && g.t.TableComment != "" {
		s, err := render(g.t.TableComment, vars{"literal": g.d.QuoteLiteral(t.Remark)})
		if err != nil {
			return "", err
		}
		create.WriteString(s)
	}

	var sc script
	sc.add(create.String())

	if len(pkCols) > 0 && g.t.AddPrimaryKey != "" {
		pv := g.refVars(core.ObjectRef{
			SchemaName: t.SchemaName,
			ObjectName: cmp.Or(pkName, t.ObjectName+"_pkey"),
			TableName:  t.ObjectName,
		})
		pv["columns"] = pkList
		s, err := render(g.t.AddPrimaryKey, pv)
		if err != nil {
			return "", fmt.Errorf("create table %s: %w", t.ObjectName, err)
		}
		sc.add(s)
	}

	for _, idx := range t.Indexes {
		if idx.IsPrimary || (pkName != "" && idx.ObjectName == pkName) {
			continue
		}
		if idx.TableName == "" {
			idx.TableName = t.ObjectName
		}
		if idx.SchemaName == "" {
			idx.SchemaName = t.SchemaName
		}
		s, err := g.indexStatement(idx)
		if err != nil {
			return "", fmt.Errorf("create table %s: %w", t.ObjectName, err)
		}
		sc.add(s)
	}

	if g.t.Comments == dialect.CommentOn || g.t.Comments == dialect.CommentProcedure {
		ref := tableRef(t.Object)
		if t.Remark != "" {
			s, err := g.CommentOnTableStatement(ref, t.Remark)
			if err != nil {
				return "", err
			}
			sc.add(s)
		}
		for _, c := range sortedColumns(t.Columns) {
			if c.Remark == "" {
				continue
			}
			s, err := g.CommentOnColumnStatement(ref, c)
			if err != nil {
				return "", err
			}
			sc.add(s)
		}
	}
	return sc.String(), nil
}

func (g *Generator) indexStatement(idx core.Index) (string, error) {
	v := g.refVars(core.ObjectRef{SchemaName: idx.SchemaName, ObjectName: idx.ObjectName, TableName: idx.TableName})
	v["columns"] = g.columnList(idx.Columns)
	v["unique"] = ""
	if idx.IsUnique && !idx.IsPrimary {
		v["unique"] = "UNIQUE "
	}
	v["using"] = ""
	if idx.IndexType != "" {
		v["index_type"] = idx.IndexType
		v["using"] = " USING " + strings.ToLower(idx.IndexType)
	}

	tmpl := g.t.CreateIndex
	if idx.IsPrimary {
		tmpl = g.t.AddPrimaryKey
	}
	if tmpl == "" {
		return "", fmt.Errorf("create index %s: %w", idx.ObjectName, core.ErrUnsupportedOperation)
	}
	return render(tmpl, v)
}

// CreateIndex renders one index. Primary indexes render as ADD PRIMARY KEY.
func (g *Generator) CreateIndex(idx core.Index) (string, error) {
	if idx.TableName == "" {
		return "", fmt.Errorf("create index %s: table name is required", idx.ObjectName)
	}
	s, err := g.indexStatement(idx)
	if err != nil {
		return "", err
	}
	return statement(s) + ";", nil
}

// isComplete reports whether source is already a full CREATE statement.
func isComplete(source string) bool {
	fields := strings.Fields(source)
	return len(fields) > 0 && strings.EqualFold(fields[0], "CREATE")
}

func (g *Generator) createAs(keyword string, o core.Object, query string) (string, error) {
	query = statement(query)
	if query == "" {
		return "", fmt.Errorf("create %s %s: no definition", strings.ToLower(keyword), o.ObjectName)
	}
	if isComplete(query) {
		return query + ";", nil
	}
	return "CREATE " + keyword + " " + g.d.Qualify(o.SchemaName, o.ObjectName) + " AS\n" + query + ";", nil
}

// CreateView renders CREATE VIEW from the stored query.
func (g *Generator) CreateView(v core.View) (string, error) {
	return g.createAs("VIEW", v.Object, v.QuerySQL)
}

// CreateMaterializedView renders CREATE MATERIALIZED VIEW from the stored query.
func (g *Generator) CreateMaterializedView(v core.MaterializedView) (string, error) {
	return g.createAs("MATERIALIZED VIEW", v.Object, v.QuerySQL)
}

// CreateForeignTable renders the engine's foreign or external table syntax.
func (g *Generator) CreateForeignTable(ft core.ForeignTable) (string, error) {
	if g.t.CreateForeignTable == "" {
		return "", fmt.Errorf("create foreign table: %w", core.ErrUnsupportedOperation)
	}
	lines, err := g.columnLines(ft.Columns)
	if err != nil {
		return "", fmt.Errorf("create foreign table %s: %w", ft.ObjectName, err)
	}
	v := g.refVars(tableRef(ft.Object))
	v["body"] = body(lines)
	v["options"] = g.foreignOptions(ft.Options)
	v["options_lit"] = g.d.QuoteLiteral(ft.Options)
	if ft.ServerName != "" {
		v["server"] = g.d.QuoteIdentifierIfNeeded(ft.ServerName)
	}
	s, err := render(g.t.CreateForeignTable, v)
	if err != nil {
		return "", fmt.Errorf("create foreign table %s: %w", ft.ObjectName, err)
	}
	var sc script
	sc.add(s)
	return sc.String(), nil
}

// foreignOptions turns "key=value, key=value" into " OPTIONS (key 'value', ...)".
func (g *Generator) foreignOptions(options string) string {
	if strings.TrimSpace(options) == "" {
		return ""
	}
	var parts []string
	for _, kv := range strings.Split(options, ", ") {
		k, val, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		parts = append(parts, strings.TrimSpace(k)+" "+g.d.QuoteLiteral(val))
	}
	if len(parts) == 0 {
		return ""
	}
	return " OPTIONS (" + strings.Join(parts, ", ") + ")"
}

// CreateSequence renders CREATE SEQUENCE with every known option.
func (g *Generator) CreateSequence(s core.Sequence) (string, error) {
	if _, ok := g.d.Query(core.KindSequence); !ok {
		return "", fmt.Errorf("create sequence: %w", core.ErrUnsupportedOperation)
	}
	var b strings.Builder
	b.WriteString("CREATE SEQUENCE ")
	b.WriteString(g.d.Qualify(s.SchemaName, s.ObjectName))
	opt := func(keyword string, n decimal.NullDecimal) {
		if n.Valid {
			b.WriteString("\n" + indent + keyword + " " + n.Decimal.String())
		}
	}
	opt("START WITH", s.StartValue)
	opt("INCREMENT BY", s.IncrementBy)
	opt("MINVALUE", s.MinValue)
	opt("MAXVALUE", s.MaxValue)
	if s.IsCycle {
		b.WriteString("\n" + indent + "CYCLE")
	} else {
		b.WriteString("\n" + indent + "NO CYCLE")
	}
	if s.CacheSize > 1 {
		fmt.Fprintf(&b, "\n%sCACHE %d", indent, s.CacheSize)
	}
	b.WriteByte(';')
	return b.String(), nil
}

// ErrIncompleteSource is returned when a function's stored source is only a
// body and cannot be turned into a CREATE statement.
var ErrIncompleteSource = errors.New("source is not a complete definition")

// CreateFunction returns the stored definition when it is a full CREATE statement.
func (g *Generator) CreateFunction(f core.Function) (string, error) {
	src := statement(f.SourceCode)
	if !isComplete(src) {
		return "", fmt.Errorf("create function %s: %w: %w", f.ObjectName, ErrIncompleteSource, core.ErrUnsupportedOperation)
	}
	return src + ";", nil
}
