package clickhouse

import (
	"strings"

	"github.com/leapstack-labs/dbmeta/pkg/core"
	"github.com/leapstack-labs/dbmeta/pkg/dialect"
)

// Catalog queries read the system database. Tables backed by an integration
// engine read from another system and are listed as foreign tables.

var integrationEngines = []string{
	"MySQL", "PostgreSQL", "MongoDB", "Redis", "SQLite", "ODBC", "JDBC", "HDFS",
	"S3", "S3Queue", "URL", "AzureBlobStorage", "AzureQueue", "Kafka", "RabbitMQ",
	"NATS", "Hive", "DeltaLake", "Iceberg", "Hudi", "ExternalDistributed",
}

func engineList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "'" + n + "'"
	}
	return "(" + strings.Join(quoted, ", ") + ")"
}

var (
	viewEngines    = engineList([]string{"View", "MaterializedView", "LiveView", "WindowView"})
	foreignEngines = engineList(integrationEngines)
)

var catalogsQuery = dialect.Query{
	SQL: `SELECT currentDatabase() AS catalog_name WHERE 1 = 1`,
}

var schemasQuery = dialect.Query{
	SQL:     `SELECT name AS schema_name FROM system.databases WHERE 1 = 1`,
	Schema:  "name",
	OrderBy: "name",
}

var tablesQuery = dialect.Query{
	SQL: `SELECT database AS schema_name, name AS object_name, comment AS remark,
       total_rows AS row_count, total_bytes AS data_bytes,
       metadata_modification_time AS last_ddl_time
FROM system.tables
WHERE NOT is_temporary AND engine NOT IN ` + viewEngines + ` AND engine NOT IN ` + foreignEngines,
	Schema:  "database",
	Name:    "name",
	OrderBy: "database, name",
}

var viewsQuery = dialect.Query{
	SQL: `SELECT database AS schema_name, name AS object_name, comment AS remark, as_select AS query_sql,
       metadata_modification_time AS last_ddl_time
FROM system.tables
WHERE engine = 'View'`,
	Schema:  "database",
	Name:    "name",
	OrderBy: "database, name",
}

// A materialized view without TO stores rows in an inner table named
// .inner_id.<uuid>; its sizes are reported on that table, not the view.
var materializedViewsQuery = dialect.Query{
	SQL: `SELECT v.database AS schema_name, v.name AS object_name, v.comment AS remark, v.as_select AS query_sql,
       t.total_rows AS row_count, t.total_bytes AS data_bytes,
       v.metadata_modification_time AS last_ddl_time
FROM system.tables v
LEFT JOIN system.tables t ON t.database = v.database AND t.name = concat('.inner_id.', toString(v.uuid))
WHERE v.engine = 'MaterializedView'`,
	Schema:  "v.database",
	Name:    "v.name",
	OrderBy: "v.database, v.name",
}

var foreignTablesQuery = dialect.Query{
	SQL: `SELECT database AS schema_name, name AS object_name, comment AS remark,
       engine AS server_name, engine_full AS options,
       metadata_modification_time AS last_ddl_time
FROM system.tables
WHERE engine IN ` + foreignEngines,
	Schema:  "database",
	Name:    "name",
	OrderBy: "database, name",
}

// Data skipping indices index one expression each.
var indexesQuery = dialect.Query{
	SQL: `SELECT database AS schema_name, name AS object_name, table AS table_name, type AS index_type,
       'NO' AS is_unique, 'NO' AS is_primary, expr AS column_name, 1 AS key_position,
       data_compressed_bytes AS index_bytes
FROM system.data_skipping_indices
WHERE 1 = 1`,
	Schema:  "database",
	Name:    "name",
	Table:   "table",
	OrderBy: "database, table, name",
}

// SQL user-defined functions are global; they are reported under the
// current database.
var functionsQuery = dialect.Query{
	SQL: `SELECT currentDatabase() AS schema_name, name AS object_name, description AS remark,
       'SQL' AS language, create_query AS source_code
FROM system.functions
WHERE origin = 'SQLUserDefined'`,
	Name:    "name",
	OrderBy: "name",
}

var columnsQuery = dialect.Query{
	SQL: `SELECT database AS schema_name, table AS table_name, name AS column_name, type AS native_type,
       character_octet_length AS type_length, numeric_precision AS type_precision, numeric_scale AS type_scale,
       nullIf(default_expression, '') AS default_value, position AS ordinal, comment AS remark,
       if(startsWith(type, 'Nullable('), 'YES', 'NO') AS is_nullable, 'NO' AS auto_increment
FROM system.columns
WHERE 1 = 1`,
	Schema:  "database",
	Name:    "name",
	Table:   "table",
	OrderBy: "database, table, position",
}

var primaryKeysQuery = dialect.Query{
	SQL: `SELECT database AS schema_name, table AS table_name, 'PRIMARY' AS constraint_name,
       name AS column_name, position AS key_position
FROM system.columns
WHERE is_in_primary_key`,
	Schema:  "database",
	Table:   "table",
	OrderBy: "database, table, position",
}

var showCreate = dialect.NativeDDL{
	Build: func(d *dialect.Dialect, ref core.ObjectRef) (string, []any) {
		return "SHOW CREATE TABLE " + d.Qualify(ref.SchemaName, ref.ObjectName), nil
	},
}

var functionDDL = dialect.NativeDDL{
	Build: func(d *dialect.Dialect, ref core.ObjectRef) (string, []any) {
		return d.Rebind("SELECT create_query FROM system.functions WHERE name = ?"), []any{ref.ObjectName}
	},
}
