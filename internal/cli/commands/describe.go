package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/dbmeta/internal/cli/output"
	"github.com/leapstack-labs/dbmeta/pkg/core"
	"github.com/leapstack-labs/dbmeta/pkg/metadata"
)

// NewDescribeCommand creates the describe command.
func NewDescribeCommand() *cobra.Command {
	var f filterFlags
	cmd := &cobra.Command{
		Use:     "describe <kind> <name>",
		Aliases: []string{"desc"},
		Short:   "Show the full descriptor of one object",
		Example: `  dbmeta describe table public.users
  dbmeta describe index users_email_idx --schema public -o yaml`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeKinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(args[0])
			if err != nil {
				return err
			}
			return runDescribe(cmd, kind, f.ref(args[1]))
		},
	}
	f.register(cmd, false)
	return cmd
}

func runDescribe(cmd *cobra.Command, kind core.ObjectKind, ref core.ObjectRef) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := cmdCtx.Context(cmd)
	defer cancel()

	h, err := cmdCtx.Inspector.Handler(kind)
	if err != nil {
		return err
	}
	item, ok, err := h.Describe(ctx, ref)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s %s: %w", kind, ref.ObjectName, metadata.ErrObjectNotFound)
	}

	r := cmdCtx.Renderer
	if structured, err := r.Structured(item); structured || err != nil {
		return err
	}

	switch o := item.(type) {
	case core.Table:
		r.KeyValues(append(objectPairs(o.Object),
			[2]string{"Remark", o.Remark},
			[2]string{"Rows", output.Count(o.RowCount)},
			[2]string{"Size", output.Bytes(o.DataBytes)},
			[2]string{"Primary key", o.PrimaryKeyName()},
		))
		renderColumns(cmdCtx, o.Columns, false)
		renderIndexes(cmdCtx, o.Indexes)
		renderForeignKeys(cmdCtx, o.ForeignKeys)
	case core.View:
		r.KeyValues(append(objectPairs(o.Object), [2]string{"Remark", o.Remark}))
		renderSource(cmdCtx, "Query", o.QuerySQL)
	case core.MaterializedView:
		r.KeyValues(append(objectPairs(o.Object),
			[2]string{"Remark", o.Remark},
			[2]string{"Rows", output.Count(o.RowCount)},
			[2]string{"Size", output.Bytes(o.DataBytes)},
		))
		renderSource(cmdCtx, "Query", o.QuerySQL)
	case core.ForeignTable:
		r.KeyValues(append(objectPairs(o.Object),
			[2]string{"Remark", o.Remark},
			[2]string{"Server", o.ServerName},
			[2]string{"Options", o.Options},
		))
		renderColumns(cmdCtx, o.Columns, false)
	case core.Index:
		r.KeyValues(append(objectPairs(o.Object),
			[2]string{"Table", o.TableName},
			[2]string{"Index type", o.IndexType},
			[2]string{"Unique", output.FormatValue(o.IsUnique)},
			[2]string{"Primary", output.FormatValue(o.IsPrimary)},
			[2]string{"Columns", o.Columns},
			[2]string{"Size", output.Bytes(o.IndexBytes)},
		))
	case core.Sequence:
		r.KeyValues(append(objectPairs(o.Object),
			[2]string{"Start", output.FormatValue(o.StartValue)},
			[2]string{"Increment", output.FormatValue(o.IncrementBy)},
			[2]string{"Min", output.FormatValue(o.MinValue)},
			[2]string{"Max", output.FormatValue(o.MaxValue)},
			[2]string{"Cycle", output.FormatValue(o.IsCycle)},
			[2]string{"Cache", strconv.FormatInt(o.CacheSize, 10)},
			[2]string{"Last value", output.FormatValue(o.LastValue)},
		))
	case core.Function:
		r.KeyValues(append(objectPairs(o.Object),
			[2]string{"Remark", o.Remark},
			[2]string{"Returns", o.ReturnType},
			[2]string{"Language", o.Language},
		))
		renderSource(cmdCtx, "Source", o.SourceCode)
	}
	return nil
}

func objectPairs(o core.Object) [][2]string {
	return [][2]string{
		{"Catalog", o.CatalogName},
		{"Schema", o.SchemaName},
		{"Name", o.ObjectName},
		{"Type", output.Title(o.ObjectType)},
		{"Created", output.FormatValue(o.CreateTime)},
		{"Last DDL", output.FormatValue(o.LastDDLTime)},
	}
}

func renderSource(c *CommandContext, title, text string) {
	if text == "" {
		return
	}
	c.Renderer.Println()
	c.Renderer.Header(title)
	c.Renderer.Println(text)
}

// renderColumns prints a column table. The table name is shown when the
// columns span tables.
func renderColumns(c *CommandContext, cols []core.Column, withTable bool) {
	r := c.Renderer
	if !withTable {
		r.Println()
		r.Header("Columns")
	}
	header := []string{"#", "NAME", "NATIVE TYPE", "TYPE", "NULLABLE", "DEFAULT", "AUTO", "REMARK"}
	if withTable {
		header = append([]string{"SCHEMA", "TABLE"}, header...)
	}
	rows := make([][]any, 0, len(cols))
	for _, col := range cols {
		row := []any{col.Ordinal, col.ColumnName, col.NativeTypeName, col.CanonicalType(), col.IsNullable, col.DefaultValue, col.AutoIncrement, col.Remark}
		if withTable {
			row = append([]any{col.SchemaName, col.TableName}, row...)
		}
		rows = append(rows, row)
	}
	r.Table(header, rows)
}

func renderIndexes(c *CommandContext, idx []core.Index) {
	if len(idx) == 0 {
		return
	}
	r := c.Renderer
	r.Println()
	r.Header("Indexes")
	rows := make([][]any, 0, len(idx))
	for _, i := range idx {
		rows = append(rows, []any{i.ObjectName, i.IndexType, i.IsUnique, i.IsPrimary, i.Columns})
	}
	r.Table([]string{"NAME", "TYPE", "UNIQUE", "PRIMARY", "COLUMNS"}, rows)
}

func renderForeignKeys(c *CommandContext, fks []core.ForeignKey) {
	if len(fks) == 0 {
		return
	}
	r := c.Renderer
	r.Println()
	r.Header("Foreign keys")
	rows := make([][]any, 0, len(fks))
	for _, fk := range fks {
		target := fk.ReferencedTable + "." + fk.ReferencedColumn
		if fk.ReferencedSchema != "" {
			target = fk.ReferencedSchema + "." + target
		}
		rows = append(rows, []any{fk.ConstraintName, fk.Position, fk.ColumnName, target, fk.OnUpdate, fk.OnDelete})
	}
	r.Table([]string{"NAME", "#", "COLUMN", "REFERENCES", "ON UPDATE", "ON DELETE"}, rows)
}
