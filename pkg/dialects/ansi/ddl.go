package ansi

import (
	"github.com/leapstack-labs/dbmeta/pkg/core"
	"github.com/leapstack-labs/dbmeta/pkg/dialect"
)

// Templates are the SQL standard DDL forms.
var Templates = dialect.DDLTemplates{
	Identity:           dialect.IdentityGenerated,
	Comments:           dialect.CommentOn,
	CommentOnTable:     "COMMENT ON TABLE {{qualified}} IS {{literal}}",
	CommentOnColumn:    "COMMENT ON COLUMN {{table}}.{{column}} IS {{literal}}",
	CreateIndex:        "CREATE {{unique}}INDEX {{name}} ON {{table}} ({{columns}})",
	AddPrimaryKey:      "ALTER TABLE {{table}} ADD CONSTRAINT {{name}} PRIMARY KEY ({{columns}})",
	CreateForeignTable: "CREATE FOREIGN TABLE {{qualified}} {{body}} SERVER {{server}}{{options}}",
	Drop: map[core.ObjectKind]string{
		core.KindTable:        "DROP TABLE {{qualified}}",
		core.KindView:         "DROP VIEW {{qualified}}",
		core.KindForeignTable: "DROP FOREIGN TABLE {{qualified}}",
		core.KindIndex:        "DROP INDEX {{qualified}}",
		core.KindSequence:     "DROP SEQUENCE {{qualified}}",
		core.KindFunction:     "DROP FUNCTION {{qualified}}",
	},
	Rename: map[core.ObjectKind]string{
		core.KindTable: "ALTER TABLE {{qualified}} RENAME TO {{new}}",
	},
}
