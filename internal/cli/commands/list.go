package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/dbmeta/internal/cli/output"
	"github.com/leapstack-labs/dbmeta/pkg/core"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	var (
		f       filterFlags
		details bool
	)
	cmd := &cobra.Command{
		Use:   "list <kind>",
		Short: "List objects of one kind",
		Long: fmt.Sprintf(`List the objects of one kind visible to the connection.

Kinds: %s.
Plural and kebab-case spellings are accepted ("tables", "materialized-views").

Patterns in --schema, --name and --table match with %% or * as wildcards.`, strings.Join(kindNames(), ", ")),
		Example: `  # Tables in a schema
  dbmeta list tables --schema public

  # Views matching a pattern, with their definitions, as JSON
  dbmeta list views --name 'v_%' --details -o json

  # Indexes of one table
  dbmeta list indexes --table orders`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeKinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(args[0])
			if err != nil {
				return err
			}
			return runList(cmd, kind, f.filter(), details)
		},
	}
	f.register(cmd, true)
	cmd.Flags().BoolVarP(&details, "details", "d", false, "Load full descriptors (sizes, definitions, columns)")
	return cmd
}

func runList(cmd *cobra.Command, kind core.ObjectKind, filter core.Filter, details bool) error {
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
	r := cmdCtx.Renderer

	if !details {
		refs, err := h.List(ctx, filter)
		if err != nil {
			return err
		}
		if ok, err := r.Structured(refs); ok || err != nil {
			return err
		}
		header := []string{"CATALOG", "SCHEMA", "NAME"}
		if kind == core.KindIndex {
			header = append(header, "TABLE")
		}
		rows := make([][]any, 0, len(refs))
		for _, ref := range refs {
			row := []any{ref.CatalogName, ref.SchemaName, ref.ObjectName}
			if kind == core.KindIndex {
				row = append(row, ref.TableName)
			}
			rows = append(rows, row)
		}
		r.Table(header, rows)
		return nil
	}

	items, err := h.ListAny(ctx, filter)
	if err != nil {
		return err
	}
	if ok, err := r.Structured(items); ok || err != nil {
		return err
	}
	header, rows := detailRows(kind, items)
	r.Table(header, rows)
	return nil
}

// detailRows renders one summary row per descriptor.
func detailRows(kind core.ObjectKind, items []any) ([]string, [][]any) {
	var header []string
	switch kind {
	case core.KindTable:
		header = []string{"SCHEMA", "NAME", "TYPE", "COLUMNS", "ROWS", "SIZE", "REMARK"}
	case core.KindView:
		header = []string{"SCHEMA", "NAME", "REMARK"}
	case core.KindMaterializedView:
		header = []string{"SCHEMA", "NAME", "ROWS", "SIZE", "REMARK"}
	case core.KindForeignTable:
		header = []string{"SCHEMA", "NAME", "SERVER", "COLUMNS", "REMARK"}
	case core.KindIndex:
		header = []string{"SCHEMA", "NAME", "TABLE", "TYPE", "UNIQUE", "COLUMNS", "SIZE"}
	case core.KindSequence:
		header = []string{"SCHEMA", "NAME", "START", "INCREMENT", "MIN", "MAX", "CYCLE"}
	case core.KindFunction:
		header = []string{"SCHEMA", "NAME", "TYPE", "RETURNS", "LANGUAGE"}
	}

	rows := make([][]any, 0, len(items))
	for _, it := range items {
		switch o := it.(type) {
		case core.Table:
			rows = append(rows, []any{o.SchemaName, o.ObjectName, o.ObjectType, len(o.Columns), output.Count(o.RowCount), output.Bytes(o.DataBytes), o.Remark})
		case core.View:
			rows = append(rows, []any{o.SchemaName, o.ObjectName, o.Remark})
		case core.MaterializedView:
			rows = append(rows, []any{o.SchemaName, o.ObjectName, output.Count(o.RowCount), output.Bytes(o.DataBytes), o.Remark})
		case core.ForeignTable:
			rows = append(rows, []any{o.SchemaName, o.ObjectName, o.ServerName, len(o.Columns), o.Remark})
		case core.Index:
			rows = append(rows, []any{o.SchemaName, o.ObjectName, o.TableName, o.IndexType, o.IsUnique, o.Columns, output.Bytes(o.IndexBytes)})
		case core.Sequence:
			rows = append(rows, []any{o.SchemaName, o.ObjectName, o.StartValue, o.IncrementBy, o.MinValue, o.MaxValue, o.IsCycle})
		case core.Function:
			rows = append(rows, []any{o.SchemaName, o.ObjectName, o.ObjectType, o.ReturnType, o.Language})
		}
	}
	return header, rows
}
