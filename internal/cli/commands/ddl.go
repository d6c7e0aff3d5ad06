package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/dbmeta/pkg/core"
)

type ddlResult struct {
	Kind string         `json:"kind"`
	Ref  core.ObjectRef `json:"ref"`
	DDL  string         `json:"ddl"`
}

// NewDDLCommand creates the ddl command.
func NewDDLCommand() *cobra.Command {
	var f filterFlags
	cmd := &cobra.Command{
		Use:   "ddl <kind> <name>",
		Short: "Print the CREATE statement of one object",
		Long: `Print the CREATE statement of one object.

The engine's own definition is used when it can produce one (SHOW CREATE,
DBMS_METADATA and similar). Otherwise the statement is assembled from the
object's descriptor.`,
		Example: `  dbmeta ddl table public.users
  dbmeta ddl view active_users --schema public -o json`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeKinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(args[0])
			if err != nil {
				return err
			}
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
			ref := f.ref(args[1])
			text, err := h.GetDDL(ctx, ref)
			if err != nil {
				return err
			}

			r := cmdCtx.Renderer
			if ok, err := r.Structured(ddlResult{Kind: kind.String(), Ref: ref, DDL: text}); ok || err != nil {
				return err
			}
			r.Println(text)
			return nil
		},
	}
	f.register(cmd, false)
	return cmd
}
