package oracle

import (
	"github.com/leapstack-labs/dbmeta/pkg/core"
	"github.com/leapstack-labs/dbmeta/pkg/dialect"
)

// Templates are the Oracle DDL forms. Views, sequences and functions can only
// be renamed by the owning user through RENAME, which does not accept a
// schema, so those renames are not offered.
var Templates = dialect.DDLTemplates{
	Identity:        dialect.IdentityGenerated,
	Comments:        dialect.CommentOn,
	CommentOnTable:  "COMMENT ON TABLE {{qualified}} IS {{literal}}",
	CommentOnColumn: "COMMENT ON COLUMN {{table}}.{{column}} IS {{literal}}",
	CreateIndex:     "CREATE {{unique}}INDEX {{name}} ON {{table}} ({{columns}})",
	AddPrimaryKey:   "ALTER TABLE {{table}} ADD CONSTRAINT {{name}} PRIMARY KEY ({{columns}})",
	Drop: map[core.ObjectKind]string{
		core.KindTable:            "DROP TABLE {{qualified}}",
		core.KindView:             "DROP VIEW {{qualified}}",
		core.KindMaterializedView: "DROP MATERIALIZED VIEW {{qualified}}",
		core.KindForeignTable:     "DROP TABLE {{qualified}}",
		core.KindIndex:            "DROP INDEX {{qualified}}",
		core.KindSequence:         "DROP SEQUENCE {{qualified}}",
		core.KindFunction:         "DROP FUNCTION {{qualified}}",
	},
	Rename: map[core.ObjectKind]string{
		core.KindTable:        "ALTER TABLE {{qualified}} RENAME TO {{new}}",
		core.KindForeignTable: "ALTER TABLE {{qualified}} RENAME TO {{new}}",
		core.KindIndex:        "ALTER INDEX {{qualified}} RENAME TO {{new}}",
	},
}
