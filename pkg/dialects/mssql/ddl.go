package mssql

import (
	"github.com/leapstack-labs/dbmeta/pkg/core"
	"github.com/leapstack-labs/dbmeta/pkg/dialect"
)

const describe = "EXEC sp_addextendedproperty @name = N'MS_Description', @value = {{literal}}, " +
	"@level0type = N'SCHEMA', @level0name = {{schema_lit}}, @level1type = N'TABLE', @level1name = {{name_lit}}"

// Templates are the SQL Server DDL forms. Remarks are MS_Description extended
// properties and renames go through sp_rename, which takes the new bare name.
// DROP VIEW, DROP FUNCTION and sp_rename only see the current database, so
// statements for another catalog run through that catalog's sp_executesql.
var Templates = dialect.DDLTemplates{
	Identity:           dialect.IdentityKeyword,
	Comments:           dialect.CommentProcedure,
	CommentOnTable:     describe,
	CommentOnColumn:    describe + ", @level2type = N'COLUMN', @level2name = {{column_lit}}",
	CreateIndex:        "CREATE {{unique}}INDEX {{name}} ON {{table}} ({{columns}})",
	AddPrimaryKey:      "ALTER TABLE {{table}} ADD CONSTRAINT {{name}} PRIMARY KEY ({{columns}})",
	CreateForeignTable: "CREATE EXTERNAL TABLE {{qualified}} {{body}} WITH (DATA_SOURCE = {{server}}, LOCATION = {{options_lit}})",
	Drop: map[core.ObjectKind]string{
		core.KindTable:            "DROP TABLE {{qualified}}",
		core.KindView:             "DROP VIEW {{qualified}}",
		core.KindMaterializedView: "DROP VIEW {{qualified}}",
		core.KindForeignTable:     "DROP EXTERNAL TABLE {{qualified}}",
		core.KindIndex:            "DROP INDEX {{name}} ON {{table}}",
		core.KindSequence:         "DROP SEQUENCE {{qualified}}",
		core.KindFunction:         "DROP FUNCTION {{qualified}}",
	},
	Rename: map[core.ObjectKind]string{
		core.KindTable:            "EXEC sp_rename {{qualified_lit}}, {{new_lit}}",
		core.KindView:             "EXEC sp_rename {{qualified_lit}}, {{new_lit}}",
		core.KindMaterializedView: "EXEC sp_rename {{qualified_lit}}, {{new_lit}}",
		core.KindIndex:            "EXEC sp_rename {{index_lit}}, {{new_lit}}, N'INDEX'",
		core.KindSequence:         "EXEC sp_rename {{qualified_lit}}, {{new_lit}}",
		core.KindFunction:         "EXEC sp_rename {{qualified_lit}}, {{new_lit}}",
	},
	InCatalog: "EXEC {{catalog}}.sys.sp_executesql {{statement_lit}}",
}
