package mssql

import (
	"github.com/leapstack-labs/dbmeta/pkg/core"
	"github.com/leapstack-labs/dbmeta/pkg/dialect"
)

// Catalog queries read the sys catalog views of the target database. The
// {{catalog}} token becomes "[db]." when a catalog is requested, and
// {{catalog_name}} its literal name or DB_NAME().

const currentCatalog = "DB_NAME()"

// remarkJoin joins the MS_Description extended property of an object (or of
// one of its columns when minor is not "0").
func remarkJoin(alias, objectID, minor string) string {
	return "LEFT JOIN {{catalog}}sys.extended_properties " + alias +
		" ON " + alias + ".class = 1 AND " + alias + ".major_id = " + objectID +
		" AND " + alias + ".minor_id = " + minor + " AND " + alias + ".name = 'MS_Description'"
}

const rowCount = `(SELECT SUM(p.rows) FROM {{catalog}}sys.partitions p
        WHERE p.object_id = o.object_id AND p.index_id IN (0, 1))`

const dataBytes = `(SELECT SUM(a.total_pages) * 8192 FROM {{catalog}}sys.partitions p
        JOIN {{catalog}}sys.allocation_units a ON a.container_id = p.partition_id
        WHERE p.object_id = o.object_id)`

var catalogsQuery = dialect.Query{
	SQL:     `SELECT name AS catalog_name FROM sys.databases WHERE database_id > 4 AND state = 0`,
	OrderBy: "name",
}

var schemasQuery = dialect.Query{
	SQL: `SELECT {{catalog_name}} AS catalog_name, s.name AS schema_name
FROM {{catalog}}sys.schemas s
WHERE 1 = 1`,
	Schema:         "s.name",
	OrderBy:        "s.name",
	CurrentCatalog: currentCatalog,
}

var tablesQuery = dialect.Query{
	SQL: `SELECT {{catalog_name}} AS catalog_name, s.name AS schema_name, o.name AS object_name,
       CAST(ep.value AS nvarchar(4000)) AS remark,
       ` + rowCount + ` AS row_count,
       ` + dataBytes + ` AS data_bytes,
       o.create_date AS create_time, o.modify_date AS last_ddl_time
FROM {{catalog}}sys.tables o
JOIN {{catalog}}sys.schemas s ON s.schema_id = o.schema_id
` + remarkJoin("ep", "o.object_id", "0") + `
WHERE o.is_ms_shipped = 0 AND o.is_external = 0`,
	Schema:         "s.name",
	Name:           "o.name",
	OrderBy:        "s.name, o.name",
	CurrentCatalog: currentCatalog,
}

// A view with a clustered index is an indexed view, listed as a
// materialized view instead.
const indexedView = `EXISTS (SELECT 1 FROM {{catalog}}sys.indexes i WHERE i.object_id = o.object_id AND i.index_id = 1)`

var viewsQuery = dialect.Query{
	SQL: `SELECT {{catalog_name}} AS catalog_name, s.name AS schema_name, o.name AS object_name,
       CAST(ep.value AS nvarchar(4000)) AS remark, m.definition AS query_sql,
       o.create_date AS create_time, o.modify_date AS last_ddl_time
FROM {{catalog}}sys.views o
JOIN {{catalog}}sys.schemas s ON s.schema_id = o.schema_id
LEFT JOIN {{catalog}}sys.sql_modules m ON m.object_id = o.object_id
` + remarkJoin("ep", "o.object_id", "0") + `
WHERE o.is_ms_shipped = 0 AND NOT ` + indexedView,
	Schema:         "s.name",
	Name:           "o.name",
	OrderBy:        "s.name, o.name",
	CurrentCatalog: currentCatalog,
}

var materializedViewsQuery = dialect.Query{
	SQL: `SELECT {{catalog_name}} AS catalog_name, s.name AS schema_name, o.name AS object_name,
       CAST(ep.value AS nvarchar(4000)) AS remark, m.definition AS query_sql,
       ` + rowCount + ` AS row_count,
       ` + dataBytes + ` AS data_bytes,
       o.create_date AS create_time, o.modify_date AS last_ddl_time
FROM {{catalog}}sys.views o
JOIN {{catalog}}sys.schemas s ON s.schema_id = o.schema_id
LEFT JOIN {{catalog}}sys.sql_modules m ON m.object_id = o.object_id
` + remarkJoin("ep", "o.object_id", "0") + `
WHERE o.is_ms_shipped = 0 AND ` + indexedView,
	Schema:         "s.name",
	Name:           "o.name",
	OrderBy:        "s.name, o.name",
	CurrentCatalog: currentCatalog,
}

var foreignTablesQuery = dialect.Query{
	SQL: `SELECT {{catalog_name}} AS catalog_name, s.name AS schema_name, o.name AS object_name,
       CAST(ep.value AS nvarchar(4000)) AS remark,
       ds.name AS server_name, o.location AS options,
       o.create_date AS create_time, o.modify_date AS last_ddl_time
FROM {{catalog}}sys.external_tables o
JOIN {{catalog}}sys.schemas s ON s.schema_id = o.schema_id
JOIN {{catalog}}sys.external_data_sources ds ON ds.data_source_id = o.data_source_id
` + remarkJoin("ep", "o.object_id", "0") + `
WHERE 1 = 1`,
	Schema:         "s.name",
	Name:           "o.name",
	OrderBy:        "s.name, o.name",
	CurrentCatalog: currentCatalog,
}

var indexesQuery = dialect.Query{
	SQL: `SELECT {{catalog_name}} AS catalog_name, s.name AS schema_name, i.name AS object_name,
       o.name AS table_name, i.type_desc AS index_type,
       i.is_unique AS is_unique, i.is_primary_key AS is_primary,
       c.name AS column_name, ic.key_ordinal AS key_position,
       (SELECT SUM(a.used_pages) * 8192 FROM {{catalog}}sys.partitions p
        JOIN {{catalog}}sys.allocation_units a ON a.container_id = p.partition_id
        WHERE p.object_id = i.object_id AND p.index_id = i.index_id) AS index_bytes
FROM {{catalog}}sys.indexes i
JOIN {{catalog}}sys.objects o ON o.object_id = i.object_id
JOIN {{catalog}}sys.schemas s ON s.schema_id = o.schema_id
JOIN {{catalog}}sys.index_columns ic
  ON ic.object_id = i.object_id AND ic.index_id = i.index_id AND ic.is_included_column = 0
JOIN {{catalog}}sys.columns c ON c.object_id = ic.object_id AND c.column_id = ic.column_id
WHERE i.index_id > 0 AND o.is_ms_shipped = 0`,
	Schema:         "s.name",
	Name:           "i.name",
	Table:          "o.name",
	OrderBy:        "s.name, o.name, i.name, ic.key_ordinal",
	CurrentCatalog: currentCatalog,
}

// Sequence bounds are sql_variant and must be cast before scanning.
var sequencesQuery = dialect.Query{
	SQL: `SELECT {{catalog_name}} AS catalog_name, s.name AS schema_name, o.name AS object_name,
       CAST(o.start_value AS decimal(38, 0)) AS start_value,
       CAST(o.minimum_value AS decimal(38, 0)) AS min_value,
       CAST(o.maximum_value AS decimal(38, 0)) AS max_value,
       CAST(o.increment AS decimal(38, 0)) AS increment_by,
       o.is_cycling AS is_cycle,
       CAST(o.current_value AS decimal(38, 0)) AS current_value,
       o.cache_size AS cache_size,
       o.create_date AS create_time, o.modify_date AS last_ddl_time
FROM {{catalog}}sys.sequences o
JOIN {{catalog}}sys.schemas s ON s.schema_id = o.schema_id
WHERE 1 = 1`,
	Schema:         "s.name",
	Name:           "o.name",
	OrderBy:        "s.name, o.name",
	CurrentCatalog: currentCatalog,
}

var functionsQuery = dialect.Query{
	SQL: `SELECT {{catalog_name}} AS catalog_name, s.name AS schema_name, o.name AS object_name,
       CAST(ep.value AS nvarchar(4000)) AS remark,
       COALESCE(rt.name, 'TABLE') AS return_type,
       CASE WHEN o.type IN ('FS', 'FT') THEN 'CLR' ELSE 'SQL' END AS language,
       m.definition AS source_code,
       o.create_date AS create_time, o.modify_date AS last_ddl_time
FROM {{catalog}}sys.objects o
JOIN {{catalog}}sys.schemas s ON s.schema_id = o.schema_id
LEFT JOIN {{catalog}}sys.sql_modules m ON m.object_id = o.object_id
LEFT JOIN {{catalog}}sys.parameters rp ON rp.object_id = o.object_id AND rp.parameter_id = 0
LEFT JOIN {{catalog}}sys.types rt ON rt.user_type_id = rp.user_type_id
` + remarkJoin("ep", "o.object_id", "0") + `
WHERE o.type IN ('FN', 'IF', 'TF', 'FS', 'FT') AND o.is_ms_shipped = 0`,
	Schema:         "s.name",
	Name:           "o.name",
	OrderBy:        "s.name, o.name, o.create_date",
	CurrentCatalog: currentCatalog,
}

// max_length is in bytes; n-types store two bytes per character. Temporal
// types carry their fractional precision in scale.
var columnsQuery = dialect.Query{
	SQL: `SELECT {{catalog_name}} AS catalog_name, s.name AS schema_name, o.name AS table_name,
       c.name AS column_name, ty.name AS native_type,
       CASE WHEN c.max_length = -1 THEN -1
            WHEN ty.name IN ('nchar', 'nvarchar') THEN c.max_length / 2
            ELSE c.max_length END AS type_length,
       CASE WHEN ty.name IN ('time', 'datetime2', 'datetimeoffset') THEN c.scale ELSE c.precision END AS type_precision,
       c.scale AS type_scale,
       dc.definition AS default_value, c.column_id AS ordinal,
       CAST(ep.value AS nvarchar(4000)) AS remark,
       c.is_nullable AS is_nullable, c.is_identity AS auto_increment
FROM {{catalog}}sys.columns c
JOIN {{catalog}}sys.objects o ON o.object_id = c.object_id
JOIN {{catalog}}sys.schemas s ON s.schema_id = o.schema_id
JOIN {{catalog}}sys.types ty ON ty.user_type_id = c.user_type_id
LEFT JOIN {{catalog}}sys.default_constraints dc ON dc.object_id = c.default_object_id
` + remarkJoin("ep", "c.object_id", "c.column_id") + `
WHERE o.type IN ('U', 'V', 'ET') AND o.is_ms_shipped = 0`,
	Schema:         "s.name",
	Name:           "c.name",
	Table:          "o.name",
	OrderBy:        "s.name, o.name, c.column_id",
	CurrentCatalog: currentCatalog,
}

var primaryKeysQuery = dialect.Query{
	SQL: `SELECT s.name AS schema_name, t.name AS table_name, kc.name AS constraint_name,
       c.name AS column_name, ic.key_ordinal AS key_position
FROM {{catalog}}sys.key_constraints kc
JOIN {{catalog}}sys.tables t ON t.object_id = kc.parent_object_id
JOIN {{catalog}}sys.schemas s ON s.schema_id = t.schema_id
JOIN {{catalog}}sys.index_columns ic ON ic.object_id = kc.parent_object_id AND ic.index_id = kc.unique_index_id
JOIN {{catalog}}sys.columns c ON c.object_id = ic.object_id AND c.column_id = ic.column_id
WHERE kc.type = 'PK'`,
	Schema:         "s.name",
	Table:          "t.name",
	OrderBy:        "s.name, t.name, ic.key_ordinal",
	CurrentCatalog: currentCatalog,
}

var foreignKeysQuery = dialect.Query{
	SQL: `SELECT s.name AS schema_name, t.name AS table_name, fk.name AS constraint_name,
       c.name AS column_name, fkc.constraint_column_id AS key_position,
       rs.name AS referenced_schema, rt.name AS referenced_table, rc.name AS referenced_column,
       REPLACE(fk.update_referential_action_desc, '_', ' ') AS on_update,
       REPLACE(fk.delete_referential_action_desc, '_', ' ') AS on_delete
FROM {{catalog}}sys.foreign_keys fk
JOIN {{catalog}}sys.foreign_key_columns fkc ON fkc.constraint_object_id = fk.object_id
JOIN {{catalog}}sys.tables t ON t.object_id = fk.parent_object_id
JOIN {{catalog}}sys.schemas s ON s.schema_id = t.schema_id
JOIN {{catalog}}sys.columns c ON c.object_id = fkc.parent_object_id AND c.column_id = fkc.parent_column_id
JOIN {{catalog}}sys.tables rt ON rt.object_id = fk.referenced_object_id
JOIN {{catalog}}sys.schemas rs ON rs.schema_id = rt.schema_id
JOIN {{catalog}}sys.columns rc ON rc.object_id = fkc.referenced_object_id AND rc.column_id = fkc.referenced_column_id
WHERE 1 = 1`,
	Schema:         "s.name",
	Table:          "t.name",
	OrderBy:        "s.name, t.name, fk.name, fkc.constraint_column_id",
	CurrentCatalog: currentCatalog,
}

// objectDefinition reads the module text of a view or function.
// OBJECT_DEFINITION only sees the current database, so the text comes from the
// target catalog's sys.sql_modules. OBJECT_ID resolves three-part names.
var objectDefinition = dialect.NativeDDL{
	Build: func(d *dialect.Dialect, ref core.ObjectRef) (string, []any) {
		name := d.QuoteIdentifier(ref.SchemaName) + "." + d.QuoteIdentifier(ref.ObjectName)
		modules := "sys.sql_modules"
		if ref.CatalogName != "" {
			name = d.QuoteIdentifier(ref.CatalogName) + "." + name
			modules = d.QuoteIdentifier(ref.CatalogName) + "." + modules
		}
		return d.Rebind("SELECT m.definition FROM " + modules + " m WHERE m.object_id = OBJECT_ID(?)"), []any{name}
	},
}
