package commands

import (
	"github.com/spf13/cobra"
)

// NewCatalogsCommand creates the catalogs command.
func NewCatalogsCommand() *cobra.Command {
	var f filterFlags
	cmd := &cobra.Command{
		Use:     "catalogs",
		Aliases: []string{"databases"},
		Short:   "List catalogs",
		Long: `List the catalogs visible to the connection.

Engines without catalogs report a single catalog named after the
configured database.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, cancel := cmdCtx.Context(cmd)
			defer cancel()

			catalogs, err := cmdCtx.Inspector.Catalogs().List(ctx, f.filter())
			if err != nil {
				return err
			}
			r := cmdCtx.Renderer
			if ok, err := r.Structured(catalogs); ok || err != nil {
				return err
			}
			rows := make([][]any, 0, len(catalogs))
			for _, c := range catalogs {
				rows = append(rows, []any{c.CatalogName})
			}
			r.Table([]string{"CATALOG"}, rows)
			return nil
		},
	}
	cmd.Flags().StringVar(&f.catalog, "catalog", "", "Catalog name")
	return cmd
}

// NewSchemasCommand creates the schemas command.
func NewSchemasCommand() *cobra.Command {
	var f filterFlags
	cmd := &cobra.Command{
		Use:   "schemas",
		Short: "List schemas",
		Long:  `List the schemas of a catalog. System schemas are never shown.`,
		Example: `  dbmeta schemas
  dbmeta schemas --schema 'sales%'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, cancel := cmdCtx.Context(cmd)
			defer cancel()

			schemas, err := cmdCtx.Inspector.Schemas().List(ctx, f.filter())
			if err != nil {
				return err
			}
			r := cmdCtx.Renderer
			if ok, err := r.Structured(schemas); ok || err != nil {
				return err
			}
			rows := make([][]any, 0, len(schemas))
			for _, s := range schemas {
				rows = append(rows, []any{s.CatalogName, s.SchemaName})
			}
			r.Table([]string{"CATALOG", "SCHEMA"}, rows)
			return nil
		},
	}
	f.register(cmd, false)
	_ = cmd.Flags().MarkHidden("table")
	return cmd
}

// NewColumnsCommand creates the columns command.
func NewColumnsCommand() *cobra.Command {
	var f filterFlags
	cmd := &cobra.Command{
		Use:   "columns [table]",
		Short: "List columns with their canonical types",
		Example: `  # Columns of one table
  dbmeta columns public.users

  # Columns of every table in a schema
  dbmeta columns --schema public`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, cancel := cmdCtx.Context(cmd)
			defer cancel()

			filter := f.filter()
			if len(args) == 1 {
				ref := f.ref(args[0])
				filter.Schema, filter.Table = ref.SchemaName, ref.ObjectName
			}
			cols, err := cmdCtx.Inspector.Columns().List(ctx, filter)
			if err != nil {
				return err
			}
			r := cmdCtx.Renderer
			if ok, err := r.Structured(cols); ok || err != nil {
				return err
			}
			renderColumns(cmdCtx, cols, true)
			return nil
		},
	}
	f.register(cmd, false)
	return cmd
}
