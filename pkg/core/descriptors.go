package core

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/leapstack-labs/dbmeta/pkg/types"
)

// Descriptors are immutable snapshots built from a single catalog query. They
// are never cached or updated in place.

// Catalog is the top-level namespace. Engines without catalogs report one
// pseudo-catalog named after the configured database.
type Catalog struct {
	CatalogName string `json:"catalog_name" yaml:"catalog_name"`
}

// Schema is a namespace within a catalog. System schemas are never reported.
type Schema struct {
	CatalogName string `json:"catalog_name,omitempty" yaml:"catalog_name,omitempty"`
	SchemaName  string `json:"schema_name" yaml:"schema_name"`
}

// ObjectRef addresses a single object. Table is set for objects that live
// inside a table (indexes on engines where index names are table-scoped).
type ObjectRef struct {
	CatalogName string `json:"catalog_name,omitempty" yaml:"catalog_name,omitempty"`
	SchemaName  string `json:"schema_name,omitempty" yaml:"schema_name,omitempty"`
	ObjectName  string `json:"object_name" yaml:"object_name"`
	TableName   string `json:"table_name,omitempty" yaml:"table_name,omitempty"`
}

// Object is the descriptor base shared by every object kind.
type Object struct {
	CatalogName string     `json:"catalog_name,omitempty" yaml:"catalog_name,omitempty"`
	SchemaName  string     `json:"schema_name,omitempty" yaml:"schema_name,omitempty"`
	ObjectName  string     `json:"object_name" yaml:"object_name"`
	ObjectType  string     `json:"object_type" yaml:"object_type"`
	CreateTime  *time.Time `json:"create_time,omitempty" yaml:"create_time,omitempty"`
	LastDDLTime *time.Time `json:"last_ddl_time,omitempty" yaml:"last_ddl_time,omitempty"`
}

// Ref returns the address of the object.
func (o Object) Ref() ObjectRef {
	return ObjectRef{CatalogName: o.CatalogName, SchemaName: o.SchemaName, ObjectName: o.ObjectName}
}

// Column describes one table column.
type Column struct {
	CatalogName    string     `json:"catalog_name,omitempty" yaml:"catalog_name,omitempty"`
	SchemaName     string     `json:"schema_name,omitempty" yaml:"schema_name,omitempty"`
	TableName      string     `json:"table_name" yaml:"table_name"`
	ColumnName     string     `json:"column_name" yaml:"column_name"`
	NativeTypeName string     `json:"native_type_name" yaml:"native_type_name"`
	SQLType        types.Type `json:"-" yaml:"-"`
	Length         int        `json:"length,omitempty" yaml:"length,omitempty"`
	Precision      int        `json:"precision,omitempty" yaml:"precision,omitempty"`
	Scale          int        `json:"scale,omitempty" yaml:"scale,omitempty"`
	DefaultValue   *string    `json:"default_value,omitempty" yaml:"default_value,omitempty"`
	Ordinal        int        `json:"ordinal" yaml:"ordinal"`
	Remark         string     `json:"remark,omitempty" yaml:"remark,omitempty"`
	IsNullable     bool       `json:"is_nullable" yaml:"is_nullable"`
	AutoIncrement  bool       `json:"auto_increment" yaml:"auto_increment"`
}

// CanonicalType returns the canonical type rendered as text, for display.
func (c Column) CanonicalType() string { return c.SQLType.String() }

// Index describes one index. Columns is the ordered, comma-joined key list.
type Index struct {
	Object     `yaml:",inline"`
	TableName  string `json:"table_name" yaml:"table_name"`
	IndexType  string `json:"index_type,omitempty" yaml:"index_type,omitempty"`
	IsUnique   bool   `json:"is_unique" yaml:"is_unique"`
	IsPrimary  bool   `json:"is_primary,omitempty" yaml:"is_primary,omitempty"`
	Columns    string `json:"columns" yaml:"columns"`
	IndexBytes int64  `json:"index_bytes,omitempty" yaml:"index_bytes,omitempty"`
}

// PrimaryKey is one column of a primary key constraint.
type PrimaryKey struct {
	ConstraintName string `json:"constraint_name" yaml:"constraint_name"`
	ColumnName     string `json:"column_name" yaml:"column_name"`
	Position       int    `json:"position" yaml:"position"`
}

// ForeignKey is one column pair of a foreign key constraint.
type ForeignKey struct {
	ConstraintName   string `json:"constraint_name" yaml:"constraint_name"`
	ColumnName       string `json:"column_name" yaml:"column_name"`
	Position         int    `json:"position" yaml:"position"`
	ReferencedSchema string `json:"referenced_schema,omitempty" yaml:"referenced_schema,omitempty"`
	ReferencedTable  string `json:"referenced_table" yaml:"referenced_table"`
	ReferencedColumn string `json:"referenced_column" yaml:"referenced_column"`
	OnUpdate         string `json:"on_update,omitempty" yaml:"on_update,omitempty"`
	OnDelete         string `json:"on_delete,omitempty" yaml:"on_delete,omitempty"`
}

// Table describes a base table with its structure.
type Table struct {
	Object         `yaml:",inline"`
	Remark         string       `json:"remark,omitempty" yaml:"remark,omitempty"`
	RowCount       int64        `json:"row_count" yaml:"row_count"`
	DataBytes      int64        `json:"data_bytes" yaml:"data_bytes"`
	LastAccessTime *time.Time   `json:"last_access_time,omitempty" yaml:"last_access_time,omitempty"`
	Columns        []Column     `json:"columns" yaml:"columns"`
	Indexes        []Index      `json:"indexes" yaml:"indexes"`
	PrimaryKeys    []PrimaryKey `json:"primary_keys" yaml:"primary_keys"`
	ForeignKeys    []ForeignKey `json:"foreign_keys" yaml:"foreign_keys"`
}

// PrimaryKeyName returns the constraint name of the primary key, or "".
func (t Table) PrimaryKeyName() string {
	if len(t.PrimaryKeys) == 0 {
		return ""
	}
	return t.PrimaryKeys[0].ConstraintName
}

// View describes a view. QuerySQL is the defining query as the engine reports it.
type View struct {
	Object   `yaml:",inline"`
	Remark   string `json:"remark,omitempty" yaml:"remark,omitempty"`
	QuerySQL string `json:"query_sql" yaml:"query_sql"`
}

// MaterializedView describes a materialized view.
type MaterializedView struct {
	Object    `yaml:",inline"`
	Remark    string `json:"remark,omitempty" yaml:"remark,omitempty"`
	QuerySQL  string `json:"query_sql" yaml:"query_sql"`
	RowCount  int64  `json:"row_count,omitempty" yaml:"row_count,omitempty"`
	DataBytes int64  `json:"data_bytes,omitempty" yaml:"data_bytes,omitempty"`
}

// ForeignTable describes a table whose rows live outside the engine.
type ForeignTable struct {
	Object     `yaml:",inline"`
	Remark     string   `json:"remark,omitempty" yaml:"remark,omitempty"`
	ServerName string   `json:"server_name,omitempty" yaml:"server_name,omitempty"`
	Options    string   `json:"options,omitempty" yaml:"options,omitempty"`
	Columns    []Column `json:"columns" yaml:"columns"`
}

// Sequence describes a sequence generator. Values are exact because engines
// allow bounds far beyond int64 (Oracle's default MAXVALUE is 10^28-1).
type Sequence struct {
	Object      `yaml:",inline"`
	StartValue  decimal.NullDecimal `json:"start_value" yaml:"start_value"`
	MinValue    decimal.NullDecimal `json:"min_value" yaml:"min_value"`
	MaxValue    decimal.NullDecimal `json:"max_value" yaml:"max_value"`
	IncrementBy decimal.NullDecimal `json:"increment_by" yaml:"increment_by"`
	IsCycle     bool                `json:"is_cycle" yaml:"is_cycle"`
	LastValue   decimal.NullDecimal `json:"last_value" yaml:"last_value"`
	CacheSize   int64               `json:"cache_size" yaml:"cache_size"`
}

// Function describes a stored function or procedure.
type Function struct {
	Object     `yaml:",inline"`
	Remark     string `json:"remark,omitempty" yaml:"remark,omitempty"`
	ReturnType string `json:"return_type,omitempty" yaml:"return_type,omitempty"`
	Language   string `json:"language,omitempty" yaml:"language,omitempty"`
	SourceCode string `json:"source_code" yaml:"source_code"`
}
