package postgres

import (
	"github.com/leapstack-labs/dbmeta/pkg/core"
	"github.com/leapstack-labs/dbmeta/pkg/dialect"
)

// Templates are the PostgreSQL DDL forms. Auto-increment columns become
// serial types.
var Templates = dialect.DDLTemplates{
	Identity:           dialect.IdentitySerial,
	Comments:           dialect.CommentOn,
	CommentOnTable:     "COMMENT ON TABLE {{qualified}} IS {{literal}}",
	CommentOnColumn:    "COMMENT ON COLUMN {{table}}.{{column}} IS {{literal}}",
	CreateIndex:        "CREATE {{unique}}INDEX {{name}} ON {{table}}{{using}} ({{columns}})",
	AddPrimaryKey:      "ALTER TABLE {{table}} ADD CONSTRAINT {{name}} PRIMARY KEY ({{columns}})",
	CreateForeignTable: "CREATE FOREIGN TABLE {{qualified}} {{body}} SERVER {{server}}{{options}}",
	Drop: map[core.ObjectKind]string{
		core.KindTable:            "DROP TABLE {{qualified}}",
		core.KindView:             "DROP VIEW {{qualified}}",
		core.KindMaterializedView: "DROP MATERIALIZED VIEW {{qualified}}",
		core.KindForeignTable:     "DROP FOREIGN TABLE {{qualified}}",
		core.KindIndex:            "DROP INDEX {{qualified}}",
		core.KindSequence:         "DROP SEQUENCE {{qualified}}",
		core.KindFunction:         "DROP FUNCTION {{qualified}}",
	},
	Rename: map[core.ObjectKind]string{
		core.KindTable:            "ALTER TABLE {{qualified}} RENAME TO {{new}}",
		core.KindView:             "ALTER VIEW {{qualified}} RENAME TO {{new}}",
		core.KindMaterializedView: "ALTER MATERIALIZED VIEW {{qualified}} RENAME TO {{new}}",
		core.KindForeignTable:     "ALTER FOREIGN TABLE {{qualified}} RENAME TO {{new}}",
		core.KindIndex:            "ALTER INDEX {{qualified}} RENAME TO {{new}}",
		core.KindSequence:         "ALTER SEQUENCE {{qualified}} RENAME TO {{new}}",
		core.KindFunction:         "ALTER FUNCTION {{qualified}} RENAME TO {{new}}",
	},
}
