// Package commands implements the dbmeta subcommands.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/dbmeta/internal/cli/config"
	"github.com/leapstack-labs/dbmeta/internal/cli/output"
	"github.com/leapstack-labs/dbmeta/pkg/core"
	"github.com/leapstack-labs/dbmeta/pkg/metadata"
	"github.com/leapstack-labs/dbmeta/pkg/plugin"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg       *config.Config
	Logger    *slog.Logger
	Plugin    plugin.Plugin
	Inspector *metadata.Inspector
	Renderer  *output.Renderer
}

// NewCommandContext creates a CommandContext connected to the configured
// database. Returns the context and a cleanup function that must be called
// (typically via defer). No connection is made until the first query.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	c := NewCommandContextWithoutPlugin(cmd)

	conn := c.Cfg.Connection
	if err := conn.Validate(); err != nil {
		return nil, nil, err
	}
	p, err := plugin.New(conn.PluginKey(), conn.Params(), c.Logger)
	if err != nil {
		return nil, nil, err
	}
	c.Logger.Info("using connection",
		slog.String("profile", c.Cfg.Profile),
		slog.String("plugin", p.Key()),
		slog.String("url", p.URL()))

	c.Plugin = p
	c.Inspector = metadata.NewInspector(p, c.Logger)

	cleanup := func() {
		if err := p.Close(); err != nil {
			c.Logger.Debug("close failed", slog.String("error", err.Error()))
		}
	}
	return c, cleanup, nil
}

// NewCommandContextWithoutPlugin creates a CommandContext without a connection.
// Useful for commands that don't need database access.
func NewCommandContextWithoutPlugin(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	mode, err := output.ParseMode(cfg.OutputFormat)
	if err != nil {
		mode = output.ModeAuto
	}
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode),
	}
}

// Context returns the command context bounded by the configured timeout.
func (c *CommandContext) Context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if c.Cfg.Timeout > 0 {
		return context.WithTimeout(ctx, c.Cfg.Timeout)
	}
	return context.WithCancel(ctx)
}

// getConfig returns the current configuration, or defaults when none was loaded.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return &config.Config{
		OutputFormat: config.DefaultOutput,
		LogLevel:     config.DefaultLogLevel,
		Timeout:      config.DefaultTimeout,
	}
}

// filterFlags are the object selection flags shared by listing commands.
type filterFlags struct {
	catalog string
	schema  string
	name    string
	table   string
}

func (f *filterFlags) register(cmd *cobra.Command, withName bool) {
	cmd.Flags().StringVar(&f.catalog, "catalog", "", "Catalog (database) name")
	cmd.Flags().StringVarP(&f.schema, "schema", "s", "", "Schema name or pattern (% and * match any run)")
	cmd.Flags().StringVar(&f.table, "table", "", "Table name or pattern, for indexes and columns")
	if withName {
		cmd.Flags().StringVarP(&f.name, "name", "n", "", "Object name or pattern")
	}
}

func (f *filterFlags) filter() core.Filter {
	return core.Filter{Catalog: f.catalog, Schema: f.schema, Name: f.name, Table: f.table}
}

// ref addresses one object. "schema.name" is accepted when --schema is not set.
func (f *filterFlags) ref(name string) core.ObjectRef {
	ref := core.ObjectRef{CatalogName: f.catalog, SchemaName: f.schema, ObjectName: name, TableName: f.table}
	if ref.SchemaName == "" {
		if schema, obj, ok := strings.Cut(name, "."); ok && schema != "" && obj != "" {
			ref.SchemaName, ref.ObjectName = schema, obj
		}
	}
	return ref
}

// kindNames lists the object kinds accepted as the first argument.
func kindNames() []string {
	var names []string
	for _, k := range core.ObjectKinds() {
		names = append(names, k.String())
	}
	return names
}

func parseKind(arg string) (core.ObjectKind, error) {
	kind, err := core.ParseObjectKind(arg)
	if err != nil {
		return 0, fmt.Errorf("%w (want one of: %s)", err, strings.Join(kindNames(), ", "))
	}
	for _, k := range core.ObjectKinds() {
		if k == kind {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("%s is not an object kind (want one of: %s)", kind, strings.Join(kindNames(), ", "))
}

func completeKinds(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return kindNames(), cobra.ShellCompDirectiveNoFileComp
}
