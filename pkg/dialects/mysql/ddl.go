package mysql

import (
	"github.com/leapstack-labs/dbmeta/pkg/core"
	"github.com/leapstack-labs/dbmeta/pkg/dialect"
)

// Templates are the MySQL DDL forms. Comments are written inline; changing a
// column comment later requires restating the whole column definition.
var Templates = dialect.DDLTemplates{
	Identity:        dialect.IdentityAutoIncrement,
	Comments:        dialect.CommentInline,
	ColumnComment:   " COMMENT {{literal}}",
	TableComment:    " COMMENT={{literal}}",
	CommentOnTable:  "ALTER TABLE {{qualified}} COMMENT = {{literal}}",
	CommentOnColumn: "ALTER TABLE {{table}} MODIFY COLUMN {{definition}} COMMENT {{literal}}",
	CreateIndex:     "CREATE {{unique}}INDEX {{name}} ON {{table}} ({{columns}})",
	AddPrimaryKey:   "ALTER TABLE {{table}} ADD PRIMARY KEY ({{columns}})",
	Drop: map[core.ObjectKind]string{
		core.KindTable:        "DROP TABLE {{qualified}}",
		core.KindView:         "DROP VIEW {{qualified}}",
		core.KindForeignTable: "DROP TABLE {{qualified}}",
		core.KindIndex:        "DROP INDEX {{name}} ON {{table}}",
		core.KindFunction:     "DROP FUNCTION {{qualified}}",
	},
	Rename: map[core.ObjectKind]string{
		core.KindTable:        "RENAME TABLE {{qualified}} TO {{new_qualified}}",
		core.KindView:         "RENAME TABLE {{qualified}} TO {{new_qualified}}",
		core.KindForeignTable: "RENAME TABLE {{qualified}} TO {{new_qualified}}",
		core.KindIndex:        "ALTER TABLE {{table}} RENAME INDEX {{name}} TO {{new}}",
	},
}
