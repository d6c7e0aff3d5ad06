// Package oracle provides the Oracle Database dialect bundle.
//
// Oracle has no catalog level: the connected service is exposed as the only
// catalog and schemas are database users. Unquoted identifiers fold to upper
// case, so catalog rows come back upper-cased.
package oracle

import (
	"github.com/leapstack-labs/dbmeta/pkg/core"
	"github.com/leapstack-labs/dbmeta/pkg/dialect"
)

func init() {
	dialect.Register(Oracle)
}

// oracleReservedWords is V$RESERVED_WORDS filtered to reserved = 'Y'.
var oracleReservedWords = []string{
	"access", "add", "all", "alter", "and", "any", "as", "asc", "audit", "between",
	"by", "char", "check", "cluster", "column", "comment", "compress", "connect",
	"create", "current", "date", "decimal", "default", "delete", "desc", "distinct",
	"drop", "else", "exclusive", "exists", "file", "float", "for", "from", "grant",
	"group", "having", "identified", "immediate", "in", "increment", "index",
	"initial", "insert", "integer", "intersect", "into", "is", "level", "like",
	"lock", "long", "maxextents", "minus", "mlslabel", "mode", "modify", "noaudit",
	"nocompress", "not", "nowait", "null", "number", "of", "offline", "on",
	"online", "option", "or", "order", "pctfree", "prior", "public", "raw",
	"rename", "resource", "revoke", "row", "rowid", "rownum", "rows", "select",
	"session", "set", "share", "size", "smallint", "start", "successful",
	"synonym", "sysdate", "table", "then", "to", "trigger", "uid", "union",
	"unique", "update", "user", "validate", "values", "varchar", "varchar2",
	"view", "whenever", "where", "with",
}

// SystemSchemas are the accounts created by the database and its options.
var SystemSchemas = []string{
	"anonymous", "appqossys", "audsys", "ctxsys", "dbsfwuser", "dbsnmp", "dip",
	"dvf", "dvsys", "ggsys", "gsmadmin_internal", "gsmcatuser", "gsmuser",
	"lbacsys", "mddata", "mdsys", "ojvmsys", "olapsys", "oracle_ocm", "orddata",
	"ordplugins", "ordsys", "outln", "remote_scheduler_agent",
	"si_informtn_schema", "sys", "sys$umf", "sysbackup", "sysdg", "syskm",
	"sysrac", "system", "wmsys", "xdb", "xs$null", "apex_*", "flows_*",
}

// Oracle is the Oracle dialect.
var Oracle = dialect.NewDialect("oracle").
	Key(dialect.Oracle).
	Identifiers(`"`, `"`, `""`, dialect.NormUppercase).
	PlaceholderStyle(dialect.PlaceholderColon).
	CatalogMode(dialect.CatalogPseudo).
	SystemSchemas(SystemSchemas...).
	WithReservedWords(oracleReservedWords...).
	Types(Types).
	Query(core.KindCatalog, catalogsQuery).
	Query(core.KindSchema, schemasQuery).
	Query(core.KindTable, tablesQuery).
	Query(core.KindView, viewsQuery).
	Query(core.KindMaterializedView, materializedViewsQuery).
	Query(core.KindForeignTable, foreignTablesQuery).
	Query(core.KindIndex, indexesQuery).
	Query(core.KindSequence, sequencesQuery).
	Query(core.KindFunction, functionsQuery).
	Query(core.KindColumn, columnsQuery).
	PrimaryKeys(primaryKeysQuery).
	ForeignKeys(foreignKeysQuery).
	NativeDDL(core.KindTable, getDDL("TABLE")).
	NativeDDL(core.KindForeignTable, getDDL("TABLE")).
	NativeDDL(core.KindView, getDDL("VIEW")).
	NativeDDL(core.KindMaterializedView, getDDL("MATERIALIZED_VIEW")).
	NativeDDL(core.KindIndex, getDDL("INDEX")).
	NativeDDL(core.KindSequence, getDDL("SEQUENCE")).
	NativeDDL(core.KindFunction, getDDL("FUNCTION")).
	DDL(Templates).
	BindRules(BindRules).
	Build()
