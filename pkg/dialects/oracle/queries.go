package oracle

import (
	"github.com/leapstack-labs/dbmeta/pkg/core"
	"github.com/leapstack-labs/dbmeta/pkg/dialect"
)

// Catalog queries read the ALL_* dictionary views, which cover every object
// the session can see. Row counts and sizes come from optimizer statistics.

var catalogsQuery = dialect.Query{
	SQL: `SELECT SYS_CONTEXT('USERENV', 'DB_NAME') AS catalog_name FROM DUAL WHERE 1 = 1`,
}

var schemasQuery = dialect.Query{
	SQL:     `SELECT username AS schema_name FROM all_users WHERE 1 = 1`,
	Schema:  "username",
	OrderBy: "username",
}

var tablesQuery = dialect.Query{
	SQL: `SELECT t.owner AS schema_name, t.table_name AS object_name, c.comments AS remark,
       t.num_rows AS row_count, t.num_rows * t.avg_row_len AS data_bytes,
       o.created AS create_time, o.last_ddl_time AS last_ddl_time, t.last_analyzed AS last_access_time
FROM all_tables t
JOIN all_objects o ON o.owner = t.owner AND o.object_name = t.table_name AND o.object_type = 'TABLE'
LEFT JOIN all_tab_comments c ON c.owner = t.owner AND c.table_name = t.table_name
WHERE t.nested = 'NO' AND t.secondary = 'N'
  AND NOT EXISTS (SELECT 1 FROM all_external_tables e WHERE e.owner = t.owner AND e.table_name = t.table_name)
  AND NOT EXISTS (SELECT 1 FROM all_mviews m WHERE m.owner = t.owner AND m.mview_name = t.table_name)`,
	Schema:  "t.owner",
	Name:    "t.table_name",
	OrderBy: "t.owner, t.table_name",
}

var viewsQuery = dialect.Query{
	SQL: `SELECT v.owner AS schema_name, v.view_name AS object_name, c.comments AS remark, v.text AS query_sql,
       o.created AS create_time, o.last_ddl_time AS last_ddl_time
FROM all_views v
JOIN all_objects o ON o.owner = v.owner AND o.object_name = v.view_name AND o.object_type = 'VIEW'
LEFT JOIN all_tab_comments c ON c.owner = v.owner AND c.table_name = v.view_name
WHERE 1 = 1`,
	Schema:  "v.owner",
	Name:    "v.view_name",
	OrderBy: "v.owner, v.view_name",
}

var materializedViewsQuery = dialect.Query{
	SQL: `SELECT m.owner AS schema_name, m.mview_name AS object_name, c.comments AS remark, m.query AS query_sql,
       t.num_rows AS row_count, t.num_rows * t.avg_row_len AS data_bytes,
       m.last_refresh_date AS last_ddl_time
FROM all_mviews m
LEFT JOIN all_tables t ON t.owner = m.owner AND t.table_name = m.container_name
LEFT JOIN all_mview_comments c ON c.owner = m.owner AND c.mview_name = m.mview_name
WHERE 1 = 1`,
	Schema:  "m.owner",
	Name:    "m.mview_name",
	OrderBy: "m.owner, m.mview_name",
}

// External tables are Oracle's foreign tables; the directory stands in for
// the server and the access driver type for the options.
var foreignTablesQuery = dialect.Query{
	SQL: `SELECT e.owner AS schema_name, e.table_name AS object_name, c.comments AS remark,
       e.default_directory_name AS server_name, e.type_name AS options
FROM all_external_tables e
LEFT JOIN all_tab_comments c ON c.owner = e.owner AND c.table_name = e.table_name
WHERE 1 = 1`,
	Schema:  "e.owner",
	Name:    "e.table_name",
	OrderBy: "e.owner, e.table_name",
}

var indexesQuery = dialect.Query{
	SQL: `SELECT i.owner AS schema_name, i.index_name AS object_name, i.table_name AS table_name,
       i.index_type AS index_type,
       CASE i.uniqueness WHEN 'UNIQUE' THEN 'YES' ELSE 'NO' END AS is_unique,
       CASE WHEN EXISTS (SELECT 1 FROM all_constraints k
                         WHERE k.owner = i.table_owner AND k.index_name = i.index_name AND k.constraint_type = 'P')
            THEN 'YES' ELSE 'NO' END AS is_primary,
       ic.column_name AS column_name, ic.column_position AS key_position
FROM all_indexes i
JOIN all_ind_columns ic ON ic.index_owner = i.owner AND ic.index_name = i.index_name
WHERE i.index_type <> 'LOB'`,
	Schema:  "i.owner",
	Name:    "i.index_name",
	Table:   "i.table_name",
	OrderBy: "i.owner, i.table_name, i.index_name, ic.column_position",
}

// ALL_SEQUENCES has no start value; last_number is the next value to be
// written to disk, which is the closest the dictionary offers.
var sequencesQuery = dialect.Query{
	SQL: `SELECT sequence_owner AS schema_name, sequence_name AS object_name,
       min_value AS min_value, max_value AS max_value, increment_by AS increment_by,
       cycle_flag AS is_cycle, last_number AS current_value, cache_size AS cache_size
FROM all_sequences
WHERE 1 = 1`,
	Schema:  "sequence_owner",
	Name:    "sequence_name",
	OrderBy: "sequence_owner, sequence_name",
}

var functionsQuery = dialect.Query{
	SQL: `SELECT o.owner AS schema_name, o.object_name AS object_name,
       a.data_type AS return_type, 'PL/SQL' AS language,
       o.created AS create_time, o.last_ddl_time AS last_ddl_time
FROM all_objects o
LEFT JOIN all_arguments a
  ON a.owner = o.owner AND a.object_name = o.object_name AND a.package_name IS NULL AND a.position = 0
WHERE o.object_type = 'FUNCTION'`,
	Schema:  "o.owner",
	Name:    "o.object_name",
	OrderBy: "o.owner, o.object_name, o.created",
}

var columnsQuery = dialect.Query{
	SQL: `SELECT c.owner AS schema_name, c.table_name AS table_name, c.column_name AS column_name,
       c.data_type AS native_type, c.char_length AS type_length,
       c.data_precision AS type_precision, c.data_scale AS type_scale,
       c.data_default AS default_value, c.column_id AS ordinal, cc.comments AS remark,
       c.nullable AS is_nullable, c.identity_column AS auto_increment
FROM all_tab_columns c
LEFT JOIN all_col_comments cc
  ON cc.owner = c.owner AND cc.table_name = c.table_name AND cc.column_name = c.column_name
WHERE 1 = 1`,
	Schema:  "c.owner",
	Name:    "c.column_name",
	Table:   "c.table_name",
	OrderBy: "c.owner, c.table_name, c.column_id",
}

var primaryKeysQuery = dialect.Query{
	SQL: `SELECT c.owner AS schema_name, c.table_name AS table_name, c.constraint_name AS constraint_name,
       cc.column_name AS column_name, cc.position AS key_position
FROM all_constraints c
JOIN all_cons_columns cc ON cc.owner = c.owner AND cc.constraint_name = c.constraint_name
WHERE c.constraint_type = 'P'`,
	Schema:  "c.owner",
	Table:   "c.table_name",
	OrderBy: "c.owner, c.table_name, cc.position",
}

// Oracle has no ON UPDATE actions.
var foreignKeysQuery = dialect.Query{
	SQL: `SELECT c.owner AS schema_name, c.table_name AS table_name, c.constraint_name AS constraint_name,
       cc.column_name AS column_name, cc.position AS key_position,
       r.owner AS referenced_schema, r.table_name AS referenced_table, rc.column_name AS referenced_column,
       'NO ACTION' AS on_update, c.delete_rule AS on_delete
FROM all_constraints c
JOIN all_cons_columns cc ON cc.owner = c.owner AND cc.constraint_name = c.constraint_name
JOIN all_constraints r ON r.owner = c.r_owner AND r.constraint_name = c.r_constraint_name
JOIN all_cons_columns rc ON rc.owner = r.owner AND rc.constraint_name = r.constraint_name AND rc.position = cc.position
WHERE c.constraint_type = 'R'`,
	Schema:  "c.owner",
	Table:   "c.table_name",
	OrderBy: "c.owner, c.table_name, c.constraint_name, cc.position",
}

// getDDL reads the DDL of an object through DBMS_METADATA.
func getDDL(objectType string) dialect.NativeDDL {
	return dialect.NativeDDL{
		Build: func(d *dialect.Dialect, ref core.ObjectRef) (string, []any) {
			q := "SELECT DBMS_METADATA.GET_DDL(?, ?, ?) FROM DUAL"
			return d.Rebind(q), []any{objectType, ref.ObjectName, ref.SchemaName}
		},
	}
}
