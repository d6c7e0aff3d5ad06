// Package all registers every bundled plugin.
//
//	import _ "github.com/leapstack-labs/dbmeta/pkg/plugins/all"
package all

import (
	_ "github.com/leapstack-labs/dbmeta/pkg/plugins/clickhouse" // DATASOURCE_CLICKHOUSE
	_ "github.com/leapstack-labs/dbmeta/pkg/plugins/duckdb"     // DATASOURCE_DUCKDB
	_ "github.com/leapstack-labs/dbmeta/pkg/plugins/generic"    // DATASOURCE_GENERIC
	_ "github.com/leapstack-labs/dbmeta/pkg/plugins/mssql"      // DATASOURCE_MSSQL
	_ "github.com/leapstack-labs/dbmeta/pkg/plugins/mysql"      // DATASOURCE_MYSQL
	_ "github.com/leapstack-labs/dbmeta/pkg/plugins/oracle"     // DATASOURCE_ORACLE
	_ "github.com/leapstack-labs/dbmeta/pkg/plugins/postgres"   // DATASOURCE_POSTGRESQL
)
