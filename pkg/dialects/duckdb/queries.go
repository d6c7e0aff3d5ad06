package duckdb

import (
	"github.com/leapstack-labs/dbmeta/pkg/core"
	"github.com/leapstack-labs/dbmeta/pkg/dialect"
)

var catalogsQuery = dialect.Query{
	SQL:     `SELECT database_name AS catalog_name FROM duckdb_databases() WHERE NOT internal`,
	Catalog: "database_name",
	OrderBy: "database_name",
}

var schemasQuery = dialect.Query{
	SQL: `SELECT database_name AS catalog_name, schema_name AS schema_name
FROM duckdb_schemas()
WHERE database_name NOT IN ('system', 'temp')`,
	Catalog: "database_name",
	Schema:  "schema_name",
	OrderBy: "database_name, schema_name",
}

var tablesQuery = dialect.Query{
	SQL: `SELECT database_name AS catalog_name, schema_name AS schema_name, table_name AS object_name,
       comment AS remark, estimated_size AS row_count
FROM duckdb_tables()
WHERE NOT internal`,
	Catalog: "database_name",
	Schema:  "schema_name",
	Name:    "table_name",
	OrderBy: "schema_name, table_name",
}

var viewsQuery = dialect.Query{
	SQL: `SELECT database_name AS catalog_name, schema_name AS schema_name, view_name AS object_name,
       comment AS remark, sql AS query_sql
FROM duckdb_views()
WHERE NOT internal`,
	Catalog: "database_name",
	Schema:  "schema_name",
	Name:    "view_name",
	OrderBy: "schema_name, view_name",
}

// duckdb_indexes() reports key expressions as one bracketed list, so each
// index yields a single row carrying every column.
var indexesQuery = dialect.Query{
	SQL: `SELECT database_name AS catalog_name, schema_name AS schema_name, index_name AS object_name,
       table_name AS table_name, 'ART' AS index_type,
       is_unique AS is_unique, is_primary AS is_primary,
       trim(CAST(expressions AS VARCHAR), '[]') AS column_name, 1 AS key_position
FROM duckdb_indexes()
WHERE 1 = 1`,
	Catalog: "database_name",
	Schema:  "schema_name",
	Name:    "index_name",
	Table:   "table_name",
	OrderBy: "schema_name, table_name, index_name",
}

var sequencesQuery = dialect.Query{
	SQL: `SELECT database_name AS catalog_name, schema_name AS schema_name, sequence_name AS object_name,
       start_value AS start_value, min_value AS min_value, max_value AS max_value,
       increment_by AS increment_by, cycle AS is_cycle, last_value AS current_value
FROM duckdb_sequences()
WHERE 1 = 1`,
	Catalog: "database_name",
	Schema:  "schema_name",
	Name:    "sequence_name",
	OrderBy: "schema_name, sequence_name",
}

// Only macros carry user-written SQL; builtin and extension functions are internal.
var functionsQuery = dialect.Query{
	SQL: `SELECT database_name AS catalog_name, schema_name AS schema_name, function_name AS object_name,
       description AS remark, return_type AS return_type, 'SQL' AS language,
       macro_definition AS source_code
FROM duckdb_functions()
WHERE NOT internal AND function_type IN ('macro', 'table_macro')`,
	Catalog: "database_name",
	Schema:  "schema_name",
	Name:    "function_name",
	OrderBy: "schema_name, function_name, function_oid",
}

var columnsQuery = dialect.Query{
	SQL: `SELECT database_name AS catalog_name, schema_name AS schema_name, table_name AS table_name,
       column_name AS column_name, data_type AS native_type,
       character_maximum_length AS type_length, numeric_precision AS type_precision, numeric_scale AS type_scale,
       column_default AS default_value, column_index AS ordinal, comment AS remark,
       is_nullable AS is_nullable,
       COALESCE(column_default, '') LIKE 'nextval(%' AS auto_increment
FROM duckdb_columns()
WHERE NOT internal`,
	Catalog: "database_name",
	Schema:  "schema_name",
	Name:    "column_name",
	Table:   "table_name",
	OrderBy: "schema_name, table_name, column_index",
}

// createStatement reads the stored CREATE statement from the sql column of a
// duckdb_* table function.
func createStatement(fn, nameColumn string) dialect.NativeDDL {
	return dialect.NativeDDL{
		Build: func(d *dialect.Dialect, ref core.ObjectRef) (string, []any) {
			q := "SELECT sql FROM " + fn + " WHERE schema_name = ? AND " + nameColumn + " = ?"
			args := []any{ref.SchemaName, ref.ObjectName}
			if ref.CatalogName != "" {
				q += " AND database_name = ?"
				args = append(args, ref.CatalogName)
			}
			return d.Rebind(q), args
		},
	}
}
