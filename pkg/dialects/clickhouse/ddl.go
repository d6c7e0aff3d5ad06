package clickhouse

import (
	"github.com/leapstack-labs/dbmeta/pkg/core"
	"github.com/leapstack-labs/dbmeta/pkg/dialect"
)

// Templates are the ClickHouse DDL forms. Tables are created as MergeTree with
// the primary key as sorting key; indexes are data skipping indices.
var Templates = dialect.DDLTemplates{
	Identity:        dialect.IdentityNone,
	Comments:        dialect.CommentInline,
	ColumnComment:   " COMMENT {{literal}}",
	TableComment:    " COMMENT {{literal}}",
	TableSuffix:     " ENGINE = MergeTree ORDER BY {{order_by}}",
	CommentOnTable:  "ALTER TABLE {{qualified}} MODIFY COMMENT {{literal}}",
	CommentOnColumn: "ALTER TABLE {{table}} COMMENT COLUMN {{column}} {{literal}}",
	CreateIndex:     "ALTER TABLE {{table}} ADD INDEX {{name}} ({{columns}}) TYPE {{index_type}}",
	Drop: map[core.ObjectKind]string{
		core.KindTable:            "DROP TABLE {{qualified}}",
		core.KindView:             "DROP VIEW {{qualified}}",
		core.KindMaterializedView: "DROP VIEW {{qualified}}",
		core.KindForeignTable:     "DROP TABLE {{qualified}}",
		core.KindIndex:            "ALTER TABLE {{table}} DROP INDEX {{name}}",
		core.KindFunction:         "DROP FUNCTION {{name}}",
	},
	Rename: map[core.ObjectKind]string{
		core.KindTable:            "RENAME TABLE {{qualified}} TO {{new_qualified}}",
		core.KindView:             "RENAME TABLE {{qualified}} TO {{new_qualified}}",
		core.KindMaterializedView: "RENAME TABLE {{qualified}} TO {{new_qualified}}",
		core.KindForeignTable:     "RENAME TABLE {{qualified}} TO {{new_qualified}}",
	},
}
