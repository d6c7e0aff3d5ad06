package ansi

import "github.com/leapstack-labs/dbmeta/pkg/dialect"

// Catalog queries use only the SQL standard information_schema views. Column
// aliases follow the row contract read by pkg/metadata.

var catalogsQuery = dialect.Query{
	SQL:     `SELECT DISTINCT catalog_name AS catalog_name FROM information_schema.schemata WHERE 1 = 1`,
	Catalog: "catalog_name",
	OrderBy: "catalog_name",
}

var schemasQuery = dialect.Query{
	SQL:     `SELECT catalog_name AS catalog_name, schema_name AS schema_name FROM information_schema.schemata WHERE 1 = 1`,
	Catalog: "catalog_name",
	Schema:  "schema_name",
	OrderBy: "schema_name",
}

var tablesQuery = dialect.Query{
	SQL: `SELECT table_catalog AS catalog_name, table_schema AS schema_name, table_name AS object_name
FROM information_schema.tables
WHERE table_type = 'BASE TABLE'`,
	Catalog: "table_catalog",
	Schema:  "table_schema",
	Name:    "table_name",
	OrderBy: "table_schema, table_name",
}

var viewsQuery = dialect.Query{
	SQL: `SELECT table_catalog AS catalog_name, table_schema AS schema_name, table_name AS object_name,
       view_definition AS query_sql
FROM information_schema.views
WHERE 1 = 1`,
	Catalog: "table_catalog",
	Schema:  "table_schema",
	Name:    "table_name",
	OrderBy: "table_schema, table_name",
}

var foreignTablesQuery = dialect.Query{
	SQL: `SELECT table_catalog AS catalog_name, table_schema AS schema_name, table_name AS object_name
FROM information_schema.tables
WHERE table_type IN ('FOREIGN', 'FOREIGN TABLE')`,
	Catalog: "table_catalog",
	Schema:  "table_schema",
	Name:    "table_name",
	OrderBy: "table_schema, table_name",
}

// The standard has no index views; unique and primary key constraints are the
// portable approximation.
var indexesQuery = dialect.Query{
	SQL: `SELECT tc.table_catalog AS catalog_name, tc.table_schema AS schema_name, tc.constraint_name AS object_name,
       tc.table_name AS table_name, tc.constraint_type AS index_type,
       'YES' AS is_unique,
       CASE WHEN tc.constraint_type = 'PRIMARY KEY' THEN 'YES' ELSE 'NO' END AS is_primary,
       kcu.column_name AS column_name, kcu.ordinal_position AS key_position
FROM information_schema.table_constraints tc
JOIN information_schema.key_column_usage kcu
  ON kcu.constraint_schema = tc.constraint_schema
 AND kcu.constraint_name = tc.constraint_name
 AND kcu.table_name = tc.table_name
WHERE tc.constraint_type IN ('PRIMARY KEY', 'UNIQUE')`,
	Catalog: "tc.table_catalog",
	Schema:  "tc.table_schema",
	Name:    "tc.constraint_name",
	Table:   "tc.table_name",
	OrderBy: "tc.table_schema, tc.table_name, tc.constraint_name, kcu.ordinal_position",
}

var sequencesQuery = dialect.Query{
	SQL: `SELECT sequence_catalog AS catalog_name, sequence_schema AS schema_name, sequence_name AS object_name,
       start_value AS start_value, minimum_value AS min_value, maximum_value AS max_value,
       increment AS increment_by, cycle_option AS is_cycle
FROM information_schema.sequences
WHERE 1 = 1`,
	Catalog: "sequence_catalog",
	Schema:  "sequence_schema",
	Name:    "sequence_name",
	OrderBy: "sequence_schema, sequence_name",
}

var functionsQuery = dialect.Query{
	SQL: `SELECT routine_catalog AS catalog_name, routine_schema AS schema_name, routine_name AS object_name,
       data_type AS return_type, external_language AS language, routine_definition AS source_code
FROM information_schema.routines
WHERE routine_type = 'FUNCTION'`,
	Catalog: "routine_catalog",
	Schema:  "routine_schema",
	Name:    "routine_name",
	OrderBy: "routine_schema, routine_name, specific_name",
}

var columnsQuery = dialect.Query{
	SQL: `SELECT table_catalog AS catalog_name, table_schema AS schema_name, table_name AS table_name,
       column_name AS column_name, data_type AS native_type,
       character_maximum_length AS type_length, numeric_precision AS type_precision, numeric_scale AS type_scale,
       column_default AS default_value, ordinal_position AS ordinal, is_nullable AS is_nullable
FROM information_schema.columns
WHERE 1 = 1`,
	Catalog: "table_catalog",
	Schema:  "table_schema",
	Name:    "column_name",
	Table:   "table_name",
	OrderBy: "table_schema, table_name, ordinal_position",
}

// PrimaryKeysQuery lists primary key columns from information_schema.
var PrimaryKeysQuery = dialect.Query{
	SQL: `SELECT tc.table_schema AS schema_name, tc.table_name AS table_name, tc.constraint_name AS constraint_name,
       kcu.column_name AS column_name, kcu.ordinal_position AS key_position
FROM information_schema.table_constraints tc
JOIN information_schema.key_column_usage kcu
  ON kcu.constraint_schema = tc.constraint_schema
 AND kcu.constraint_name = tc.constraint_name
 AND kcu.table_name = tc.table_name
WHERE tc.constraint_type = 'PRIMARY KEY'`,
	Catalog: "tc.table_catalog",
	Schema:  "tc.table_schema",
	Table:   "tc.table_name",
	OrderBy: "tc.table_schema, tc.table_name, kcu.ordinal_position",
}

// ForeignKeysQuery lists foreign key column pairs from information_schema.
var ForeignKeysQuery = dialect.Query{
	SQL: `SELECT kcu.table_schema AS schema_name, kcu.table_name AS table_name, kcu.constraint_name AS constraint_name,
       kcu.column_name AS column_name, kcu.ordinal_position AS key_position,
       ref.table_schema AS referenced_schema, ref.table_name AS referenced_table, ref.column_name AS referenced_column,
       rc.update_rule AS on_update, rc.delete_rule AS on_delete
FROM information_schema.referential_constraints rc
JOIN information_schema.key_column_usage kcu
  ON kcu.constraint_schema = rc.constraint_schema
 AND kcu.constraint_name = rc.constraint_name
JOIN information_schema.key_column_usage ref
  ON ref.constraint_schema = rc.unique_constraint_schema
 AND ref.constraint_name = rc.unique_constraint_name
 AND ref.ordinal_position = kcu.position_in_unique_constraint
WHERE 1 = 1`,
	Catalog: "kcu.table_catalog",
	Schema:  "kcu.table_schema",
	Table:   "kcu.table_name",
	OrderBy: "kcu.table_schema, kcu.table_name, kcu.constraint_name, kcu.ordinal_position",
}
