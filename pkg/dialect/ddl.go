package dialect

import (
	"fmt"

	"github.com/leapstack-labs/dbmeta/pkg/core"
)

// IdentityStyle is how an auto-increment column is declared.
type IdentityStyle int

const (
	// IdentityNone ignores auto-increment; the column default is kept.
	IdentityNone IdentityStyle = iota
	// IdentitySerial replaces the type with serial/bigserial/smallserial.
	IdentitySerial
	// IdentityAutoIncrement appends AUTO_INCREMENT.
	IdentityAutoIncrement
	// IdentityKeyword appends IDENTITY(1,1) after the type.
	IdentityKeyword
	// IdentityGenerated appends GENERATED BY DEFAULT AS IDENTITY after the type.
	IdentityGenerated
)

// CommentStyle is how table and column remarks are written.
type CommentStyle int

const (
	// CommentOn emits trailing COMMENT ON statements.
	CommentOn CommentStyle = iota
	// CommentInline writes COMMENT clauses inside CREATE TABLE.
	CommentInline
	// CommentProcedure emits a stored procedure call per remark.
	CommentProcedure
	// CommentUnsupported drops remarks.
	CommentUnsupported
)

// DDLTemplates holds the statement templates of one engine.
//
// Templates are plain text with {{var}} tokens. The generator provides:
//
//	{{qualified}}     quoted schema.name of the object
//	{{name}}          quoted bare name
//	{{schema}}        quoted schema
//	{{table}}         quoted schema.table the object belongs to (indexes, columns)
//	{{column}}        quoted column name
//	{{columns}}       quoted, comma-joined column list
//	{{new}}           quoted new bare name
//	{{new_qualified}} quoted schema.new
//	{{unique}}        "UNIQUE " or ""
//	{{index_type}}    index type as reported by the engine
//	{{using}}         " USING <index_type>" or "" when the type is unknown
//	{{literal}}       quoted comment text
//	{{definition}}    full column definition (inline comment engines)
//	{{order_by}}      "(pk columns)" or "tuple()" for TableSuffix
//	{{body}}          parenthesized, multi-line column definition list
//	{{server}}        quoted foreign server or data source name
//	{{options}}       " OPTIONS (key 'value', ...)" or ""
//	{{*_lit}}         string-literal forms of the above: {{qualified_lit}},
//	                  {{name_lit}}, {{schema_lit}}, {{table_lit}}, {{column_lit}},
//	                  {{new_lit}}, {{index_lit}}, {{options_lit}}
type DDLTemplates struct {
	Identity IdentityStyle
	Comments CommentStyle

	// ColumnComment is appended to a column definition for CommentInline.
	ColumnComment string
	// TableComment is appended after the closing parenthesis for CommentInline.
	TableComment string
	// TableSuffix is appended after the column list (e.g. ClickHouse ENGINE).
	TableSuffix string

	CommentOnTable  string
	CommentOnColumn string

	CreateIndex   string
	AddPrimaryKey string

	// CreateForeignTable is used when the engine has no native DDL lookup for
	// foreign tables.
	CreateForeignTable string

	// InlinePrimaryKey renders the primary key inside the column list when
	// AddPrimaryKey is empty.
	InlinePrimaryKey bool

	Drop   map[core.ObjectKind]string
	Rename map[core.ObjectKind]string

	// InCatalog runs a drop or rename in another catalog on CatalogCross
	// engines. {{catalog}} is the quoted catalog and {{statement_lit}} the
	// statement as a string literal.
	InCatalog string
}

// DropTemplate returns the drop template for kind or ErrUnsupportedOperation.
func (t DDLTemplates) DropTemplate(kind core.ObjectKind) (string, error) {
	if tmpl, ok := t.Drop[kind]; ok && tmpl != "" {
		return tmpl, nil
	}
	return "", fmt.Errorf("drop %s: %w", kind, core.ErrUnsupportedOperation)
}

// RenameTemplate returns the rename template for kind or ErrUnsupportedOperation.
func (t DDLTemplates) RenameTemplate(kind core.ObjectKind) (string, error) {
	if tmpl, ok := t.Rename[kind]; ok && tmpl != "" {
		return tmpl, nil
	}
	return "", fmt.Errorf("rename %s: %w", kind, core.ErrUnsupportedOperation)
}

// NativeDDL describes a "show create" lookup. Build returns the statement and
// its arguments (already rebound); the DDL text is read from result column
// Column (0-based).
type NativeDDL struct {
	Build  func(d *Dialect, ref core.ObjectRef) (string, []any)
	Column int
}
