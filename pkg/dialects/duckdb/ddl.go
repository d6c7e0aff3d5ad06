package duckdb

import (
	"github.com/leapstack-labs/dbmeta/pkg/core"
	"github.com/leapstack-labs/dbmeta/pkg/dialect"
)

// Templates are the DuckDB DDL forms. DuckDB cannot add a primary key to an
// existing table, so the key is declared inside CREATE TABLE. Functions are
// macros.
var Templates = dialect.DDLTemplates{
	Identity:         dialect.IdentityNone,
	Comments:         dialect.CommentOn,
	CommentOnTable:   "COMMENT ON TABLE {{qualified}} IS {{literal}}",
	CommentOnColumn:  "COMMENT ON COLUMN {{table}}.{{column}} IS {{literal}}",
	CreateIndex:      "CREATE {{unique}}INDEX {{name}} ON {{table}} ({{columns}})",
	InlinePrimaryKey: true,
	Drop: map[core.ObjectKind]string{
		core.KindTable:    "DROP TABLE {{qualified}}",
		core.KindView:     "DROP VIEW {{qualified}}",
		core.KindIndex:    "DROP INDEX {{qualified}}",
		core.KindSequence: "DROP SEQUENCE {{qualified}}",
		core.KindFunction: "DROP MACRO {{qualified}}",
	},
	Rename: map[core.ObjectKind]string{
		core.KindTable: "ALTER TABLE {{qualified}} RENAME TO {{new}}",
		core.KindView:  "ALTER VIEW {{qualified}} RENAME TO {{new}}",
	},
}
