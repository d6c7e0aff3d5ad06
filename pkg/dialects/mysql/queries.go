package mysql

import (
	"github.com/leapstack-labs/dbmeta/pkg/core"
	"github.com/leapstack-labs/dbmeta/pkg/dialect"
)

// Catalog queries read information_schema. The catalog column is filled by
// the handler from the connection's database, so no query filters on it.

var catalogsQuery = dialect.Query{
	SQL: `SELECT DATABASE() AS catalog_name FROM DUAL WHERE 1 = 1`,
}

var schemasQuery = dialect.Query{
	SQL:     `SELECT schema_name AS schema_name FROM information_schema.schemata WHERE 1 = 1`,
	Schema:  "schema_name",
	OrderBy: "schema_name",
}

var tablesQuery = dialect.Query{
	SQL: `SELECT table_schema AS schema_name, table_name AS object_name, table_comment AS remark,
       table_rows AS row_count, data_length + index_length AS data_bytes,
       create_time AS create_time, update_time AS last_access_time
FROM information_schema.tables
WHERE table_type = 'BASE TABLE' AND COALESCE(engine, '') <> 'FEDERATED'`,
	Schema:  "table_schema",
	Name:    "table_name",
	OrderBy: "table_schema, table_name",
}

var viewsQuery = dialect.Query{
	SQL: `SELECT table_schema AS schema_name, table_name AS object_name, view_definition AS query_sql
FROM information_schema.views
WHERE 1 = 1`,
	Schema:  "table_schema",
	Name:    "table_name",
	OrderBy: "table_schema, table_name",
}

// FEDERATED tables are MySQL's foreign tables; the remote connection string
// is kept in the table comment or create options.
var foreignTablesQuery = dialect.Query{
	SQL: `SELECT table_schema AS schema_name, table_name AS object_name, table_comment AS remark,
       'FEDERATED' AS server_name, create_options AS options, create_time AS create_time
FROM information_schema.tables
WHERE engine = 'FEDERATED'`,
	Schema:  "table_schema",
	Name:    "table_name",
	OrderBy: "table_schema, table_name",
}

var indexesQuery = dialect.Query{
	SQL: `SELECT table_schema AS schema_name, index_name AS object_name, table_name AS table_name,
       index_type AS index_type,
       CASE non_unique WHEN 0 THEN 'YES' ELSE 'NO' END AS is_unique,
       CASE index_name WHEN 'PRIMARY' THEN 'YES' ELSE 'NO' END AS is_primary,
       column_name AS column_name, seq_in_index AS key_position
FROM information_schema.statistics
WHERE 1 = 1`,
	Schema:  "table_schema",
	Name:    "index_name",
	Table:   "table_name",
	OrderBy: "table_schema, table_name, index_name, seq_in_index",
}

var functionsQuery = dialect.Query{
	SQL: `SELECT routine_schema AS schema_name, routine_name AS object_name, routine_comment AS remark,
       dtd_identifier AS return_type, external_language AS language, routine_definition AS source_code,
       created AS create_time, last_altered AS last_ddl_time
FROM information_schema.routines
WHERE routine_type = 'FUNCTION'`,
	Schema:  "routine_schema",
	Name:    "routine_name",
	OrderBy: "routine_schema, routine_name, created",
}

// column_type keeps display width, unsigned and enum members, which
// data_type drops.
var columnsQuery = dialect.Query{
	SQL: `SELECT table_schema AS schema_name, table_name AS table_name, column_name AS column_name,
       column_type AS native_type, character_maximum_length AS type_length,
       COALESCE(numeric_precision, datetime_precision) AS type_precision, numeric_scale AS type_scale,
       column_default AS default_value, ordinal_position AS ordinal, column_comment AS remark,
       is_nullable AS is_nullable,
       CASE WHEN extra LIKE '%auto_increment%' THEN 'YES' ELSE 'NO' END AS auto_increment
FROM information_schema.columns
WHERE 1 = 1`,
	Schema:  "table_schema",
	Name:    "column_name",
	Table:   "table_name",
	OrderBy: "table_schema, table_name, ordinal_position",
}

var primaryKeysQuery = dialect.Query{
	SQL: `SELECT table_schema AS schema_name, table_name AS table_name, constraint_name AS constraint_name,
       column_name AS column_name, ordinal_position AS key_position
FROM information_schema.key_column_usage
WHERE constraint_name = 'PRIMARY'`,
	Schema:  "table_schema",
	Table:   "table_name",
	OrderBy: "table_schema, table_name, ordinal_position",
}

var foreignKeysQuery = dialect.Query{
	SQL: `SELECT k.table_schema AS schema_name, k.table_name AS table_name, k.constraint_name AS constraint_name,
       k.column_name AS column_name, k.ordinal_position AS key_position,
       k.referenced_table_schema AS referenced_schema, k.referenced_table_name AS referenced_table,
       k.referenced_column_name AS referenced_column,
       rc.update_rule AS on_update, rc.delete_rule AS on_delete
FROM information_schema.key_column_usage k
JOIN information_schema.referential_constraints rc
  ON rc.constraint_schema = k.constraint_schema
 AND rc.constraint_name = k.constraint_name
WHERE k.referenced_table_name IS NOT NULL`,
	Schema:  "k.table_schema",
	Table:   "k.table_name",
	OrderBy: "k.table_schema, k.table_name, k.constraint_name, k.ordinal_position",
}

// showCreate builds a SHOW CREATE lookup. Identifiers cannot be bound, so the
// name is quoted into the statement.
func showCreate(keyword string, column int) dialect.NativeDDL {
	return dialect.NativeDDL{
		Build: func(d *dialect.Dialect, ref core.ObjectRef) (string, []any) {
			name := d.QuoteIdentifier(ref.ObjectName)
			if ref.SchemaName != "" {
				name = d.QuoteIdentifier(ref.SchemaName) + "." + name
			}
			return "SHOW CREATE " + keyword + " " + name, nil
		},
		Column: column,
	}
}
