package postgres

import "github.com/leapstack-labs/dbmeta/pkg/dialect"

// Catalog queries read pg_catalog directly: information_schema hides objects
// the user cannot write and carries no sizes or comments.

const currentDatabase = "current_database()"

var catalogsQuery = dialect.Query{
	SQL:     `SELECT current_database() AS catalog_name WHERE 1 = 1`,
	Catalog: currentDatabase,
}

var schemasQuery = dialect.Query{
	SQL: `SELECT current_database() AS catalog_name, n.nspname AS schema_name
FROM pg_catalog.pg_namespace n
WHERE 1 = 1`,
	Catalog: currentDatabase,
	Schema:  "n.nspname",
	OrderBy: "n.nspname",
}

var tablesQuery = dialect.Query{
	SQL: `SELECT current_database() AS catalog_name, n.nspname AS schema_name, c.relname AS object_name,
       obj_description(c.oid, 'pg_class') AS remark,
       GREATEST(c.reltuples, 0)::bigint AS row_count,
       pg_total_relation_size(c.oid) AS data_bytes,
       s.last_analyze AS last_ddl_time
FROM pg_catalog.pg_class c
JOIN pg_catalog.pg_namespace n ON n.oid = c.relnamespace
LEFT JOIN pg_catalog.pg_stat_all_tables s ON s.relid = c.oid
WHERE c.relkind IN ('r', 'p') AND NOT c.relispartition`,
	Catalog: currentDatabase,
	Schema:  "n.nspname",
	Name:    "c.relname",
	OrderBy: "n.nspname, c.relname",
}

var viewsQuery = dialect.Query{
	SQL: `SELECT current_database() AS catalog_name, n.nspname AS schema_name, c.relname AS object_name,
       obj_description(c.oid, 'pg_class') AS remark,
       pg_get_viewdef(c.oid, true) AS query_sql
FROM pg_catalog.pg_class c
JOIN pg_catalog.pg_namespace n ON n.oid = c.relnamespace
WHERE c.relkind = 'v'`,
	Catalog: currentDatabase,
	Schema:  "n.nspname",
	Name:    "c.relname",
	OrderBy: "n.nspname, c.relname",
}

var materializedViewsQuery = dialect.Query{
	SQL: `SELECT current_database() AS catalog_name, n.nspname AS schema_name, c.relname AS object_name,
       obj_description(c.oid, 'pg_class') AS remark,
       pg_get_viewdef(c.oid, true) AS query_sql,
       GREATEST(c.reltuples, 0)::bigint AS row_count,
       pg_total_relation_size(c.oid) AS data_bytes
FROM pg_catalog.pg_class c
JOIN pg_catalog.pg_namespace n ON n.oid = c.relnamespace
WHERE c.relkind = 'm'`,
	Catalog: currentDatabase,
	Schema:  "n.nspname",
	Name:    "c.relname",
	OrderBy: "n.nspname, c.relname",
}

var foreignTablesQuery = dialect.Query{
	SQL: `SELECT current_database() AS catalog_name, n.nspname AS schema_name, c.relname AS object_name,
       obj_description(c.oid, 'pg_class') AS remark,
       s.srvname AS server_name,
       array_to_string(ft.ftoptions, ', ') AS options
FROM pg_catalog.pg_foreign_table ft
JOIN pg_catalog.pg_class c ON c.oid = ft.ftrelid
JOIN pg_catalog.pg_namespace n ON n.oid = c.relnamespace
JOIN pg_catalog.pg_foreign_server s ON s.oid = ft.ftserver
WHERE 1 = 1`,
	Catalog: currentDatabase,
	Schema:  "n.nspname",
	Name:    "c.relname",
	OrderBy: "n.nspname, c.relname",
}

// One row per key column; the handler joins them in key_position order.
var indexesQuery = dialect.Query{
	SQL: `SELECT current_database() AS catalog_name, n.nspname AS schema_name, ic.relname AS object_name,
       t.relname AS table_name, am.amname AS index_type,
       i.indisunique AS is_unique, i.indisprimary AS is_primary,
       pg_get_indexdef(i.indexrelid, k.ord, true) AS column_name, k.ord AS key_position,
       pg_relation_size(i.indexrelid) AS index_bytes
FROM pg_catalog.pg_index i
JOIN pg_catalog.pg_class ic ON ic.oid = i.indexrelid
JOIN pg_catalog.pg_class t ON t.oid = i.indrelid
JOIN pg_catalog.pg_namespace n ON n.oid = t.relnamespace
JOIN pg_catalog.pg_am am ON am.oid = ic.relam
CROSS JOIN LATERAL generate_series(1, i.indnkeyatts::int) AS k(ord)
WHERE 1 = 1`,
	Catalog: currentDatabase,
	Schema:  "n.nspname",
	Name:    "ic.relname",
	Table:   "t.relname",
	OrderBy: "n.nspname, t.relname, ic.relname, k.ord",
}

var sequencesQuery = dialect.Query{
	SQL: `SELECT current_database() AS catalog_name, s.schemaname AS schema_name, s.sequencename AS object_name,
       s.start_value AS start_value, s.min_value AS min_value, s.max_value AS max_value,
       s.increment_by AS increment_by, s.cycle AS is_cycle, s.last_value AS current_value,
       s.cache_size AS cache_size
FROM pg_catalog.pg_sequences s
WHERE 1 = 1`,
	Catalog: currentDatabase,
	Schema:  "s.schemaname",
	Name:    "s.sequencename",
	OrderBy: "s.schemaname, s.sequencename",
}

// Ordered by oid within (schema, name) so the first overload created wins.
var functionsQuery = dialect.Query{
	SQL: `SELECT current_database() AS catalog_name, n.nspname AS schema_name, p.proname AS object_name,
       obj_description(p.oid, 'pg_proc') AS remark,
       pg_get_function_result(p.oid) AS return_type,
       l.lanname AS language,
       pg_get_functiondef(p.oid) AS source_code
FROM pg_catalog.pg_proc p
JOIN pg_catalog.pg_namespace n ON n.oid = p.pronamespace
JOIN pg_catalog.pg_language l ON l.oid = p.prolang
WHERE p.prokind IN ('f', 'p')`,
	Catalog: currentDatabase,
	Schema:  "n.nspname",
	Name:    "p.proname",
	OrderBy: "n.nspname, p.proname, p.oid",
}

var columnsQuery = dialect.Query{
	SQL: `SELECT current_database() AS catalog_name, n.nspname AS schema_name, c.relname AS table_name,
       a.attname AS column_name, format_type(a.atttypid, a.atttypmod) AS native_type,
       a.attnum AS ordinal, NOT a.attnotnull AS is_nullable,
       pg_get_expr(d.adbin, d.adrelid) AS default_value,
       col_description(c.oid, a.attnum) AS remark,
       (a.attidentity <> '' OR COALESCE(pg_get_expr(d.adbin, d.adrelid), '') LIKE 'nextval(%') AS auto_increment
FROM pg_catalog.pg_attribute a
JOIN pg_catalog.pg_class c ON c.oid = a.attrelid
JOIN pg_catalog.pg_namespace n ON n.oid = c.relnamespace
LEFT JOIN pg_catalog.pg_attrdef d ON d.adrelid = a.attrelid AND d.adnum = a.attnum
WHERE a.attnum > 0 AND NOT a.attisdropped AND c.relkind IN ('r', 'p', 'v', 'm', 'f')`,
	Catalog: currentDatabase,
	Schema:  "n.nspname",
	Name:    "a.attname",
	Table:   "c.relname",
	OrderBy: "n.nspname, c.relname, a.attnum",
}

var primaryKeysQuery = dialect.Query{
	SQL: `SELECT n.nspname AS schema_name, t.relname AS table_name, con.conname AS constraint_name,
       a.attname AS column_name, k.ord AS key_position
FROM pg_catalog.pg_constraint con
JOIN pg_catalog.pg_class t ON t.oid = con.conrelid
JOIN pg_catalog.pg_namespace n ON n.oid = t.relnamespace
CROSS JOIN LATERAL unnest(con.conkey) WITH ORDINALITY AS k(attnum, ord)
JOIN pg_catalog.pg_attribute a ON a.attrelid = t.oid AND a.attnum = k.attnum
WHERE con.contype = 'p'`,
	Catalog: currentDatabase,
	Schema:  "n.nspname",
	Table:   "t.relname",
	OrderBy: "n.nspname, t.relname, k.ord",
}

var foreignKeysQuery = dialect.Query{
	SQL: `SELECT n.nspname AS schema_name, t.relname AS table_name, con.conname AS constraint_name,
       a.attname AS column_name, k.ord AS key_position,
       rn.nspname AS referenced_schema, rt.relname AS referenced_table, ra.attname AS referenced_column,
       ` + fkAction("con.confupdtype") + ` AS on_update,
       ` + fkAction("con.confdeltype") + ` AS on_delete
FROM pg_catalog.pg_constraint con
JOIN pg_catalog.pg_class t ON t.oid = con.conrelid
JOIN pg_catalog.pg_namespace n ON n.oid = t.relnamespace
JOIN pg_catalog.pg_class rt ON rt.oid = con.confrelid
JOIN pg_catalog.pg_namespace rn ON rn.oid = rt.relnamespace
CROSS JOIN LATERAL unnest(con.conkey, con.confkey) WITH ORDINALITY AS k(attnum, refnum, ord)
JOIN pg_catalog.pg_attribute a ON a.attrelid = t.oid AND a.attnum = k.attnum
JOIN pg_catalog.pg_attribute ra ON ra.attrelid = rt.oid AND ra.attnum = k.refnum
WHERE con.contype = 'f'`,
	Catalog: currentDatabase,
	Schema:  "n.nspname",
	Table:   "t.relname",
	OrderBy: "n.nspname, t.relname, con.conname, k.ord",
}

func fkAction(col string) string {
	return "CASE " + col + " WHEN 'c' THEN 'CASCADE' WHEN 'n' THEN 'SET NULL' WHEN 'd' THEN 'SET DEFAULT'" +
		" WHEN 'r' THEN 'RESTRICT' ELSE 'NO ACTION' END"
}
