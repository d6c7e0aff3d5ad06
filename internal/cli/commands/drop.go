package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewDropCommand creates the drop command.
func NewDropCommand() *cobra.Command {
	var (
		f   filterFlags
		yes bool
	)
	cmd := &cobra.Command{
		Use:   "drop <kind> <name>",
		Short: "Drop one object",
		Example: `  dbmeta drop view public.stale_report --yes
  dbmeta drop index orders_created_idx --table orders --yes`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeKinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(args[0])
			if err != nil {
				return err
			}
			if !yes {
				return fmt.Errorf("refusing to drop %s %s without --yes", kind, args[1])
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
			if err := h.Drop(ctx, f.ref(args[1])); err != nil {
				return err
			}
			cmdCtx.Renderer.Success(fmt.Sprintf("dropped %s %s", kind, args[1]))
			return nil
		},
	}
	f.register(cmd, false)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm the drop")
	return cmd
}

// NewRenameCommand creates the rename command.
func NewRenameCommand() *cobra.Command {
	var (
		f   filterFlags
		yes bool
	)
	cmd := &cobra.Command{
		Use:               "rename <kind> <name> <new-name>",
		Short:             "Rename one object",
		Example:           `  dbmeta rename table public.users customers --yes`,
		Args:              cobra.ExactArgs(3),
		ValidArgsFunction: completeKinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(args[0])
			if err != nil {
				return err
			}
			if !yes {
				return fmt.Errorf("refusing to rename %s %s without --yes", kind, args[1])
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
			if err := h.Rename(ctx, f.ref(args[1]), args[2]); err != nil {
				return err
			}
			cmdCtx.Renderer.Success(fmt.Sprintf("renamed %s %s to %s", kind, args[1], args[2]))
			return nil
		},
	}
	f.register(cmd, false)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm the rename")
	return cmd
}
