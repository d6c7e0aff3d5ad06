package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/dbmeta/pkg/plugin"
)

// maxConcurrentPings bounds the connections opened by ping --all.
const maxConcurrentPings = 8

type pingResult struct {
	Profile   string `json:"profile,omitempty"`
	Plugin    string `json:"plugin"`
	URL       string `json:"url"`
	OK        bool   `json:"ok"`
	ElapsedMS int64  `json:"elapsed_ms"`
	Error     string `json:"error,omitempty"`
}

// NewPingCommand creates the ping command.
func NewPingCommand() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Test the configured connection",
		Example: `  # Ping the default profile
  dbmeta ping

  # Ping a profile by name
  dbmeta ping -p warehouse

  # Ping every profile in the config file
  dbmeta ping --all`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if all {
				return runPingAll(cmd)
			}
			return runPing(cmd)
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Ping every configured profile concurrently")
	return cmd
}

// ping tests one plugin. A failed connection is reported in the result.
func ping(ctx context.Context, p plugin.Plugin) pingResult {
	start := time.Now()
	ok, err := p.TestConnection(ctx)
	res := pingResult{
		Plugin:    p.Key(),
		URL:       p.URL(),
		OK:        ok,
		ElapsedMS: time.Since(start).Milliseconds(),
	}
	if !ok && err == nil {
		err = errors.New("no response")
	}
	if err != nil {
		res.OK = false
		res.Error = err.Error()
	}
	return res
}

func runPing(cmd *cobra.Command) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := cmdCtx.Context(cmd)
	defer cancel()

	res := ping(ctx, cmdCtx.Plugin)
	res.Profile = cmdCtx.Cfg.Profile

	r := cmdCtx.Renderer
	structured, err := r.Structured(res)
	if err != nil {
		return err
	}
	if !res.OK {
		return fmt.Errorf("connection to %s failed: %s", res.URL, res.Error)
	}
	if !structured {
		r.Success(fmt.Sprintf("connected to %s (%dms)", res.URL, res.ElapsedMS))
	}
	return nil
}

func runPingAll(cmd *cobra.Command) error {
	c := NewCommandContextWithoutPlugin(cmd)
	names := c.Cfg.ProfileNames()
	if len(names) == 0 {
		return fmt.Errorf("no profiles configured")
	}

	ctx, cancel := c.Context(cmd)
	defer cancel()

	results := make([]pingResult, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentPings)
	for i, name := range names {
		g.Go(func() error {
			results[i] = pingProfile(gctx, c, name)
			return nil
		})
	}
	_ = g.Wait()

	r := c.Renderer
	failed := 0
	rows := make([][]any, 0, len(results))
	for _, res := range results {
		if !res.OK {
			failed++
		}
		rows = append(rows, []any{res.Profile, res.Plugin, res.URL, res.OK, res.ElapsedMS, res.Error})
	}
	if structured, err := r.Structured(results); err != nil {
		return err
	} else if !structured {
		r.Table([]string{"PROFILE", "PLUGIN", "URL", "OK", "MS", "ERROR"}, rows)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d profiles failed", failed, len(results))
	}
	return nil
}

func pingProfile(ctx context.Context, c *CommandContext, name string) pingResult {
	res := pingResult{Profile: name}
	prof, err := c.Cfg.ProfileByName(name)
	if err == nil {
		err = prof.Validate()
	}
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Plugin = prof.PluginKey()

	p, err := plugin.New(res.Plugin, prof.Params(), c.Logger.With(slog.String("profile", name)))
	if err != nil {
		res.Error = err.Error()
		return res
	}
	defer func() { _ = p.Close() }()

	res = ping(ctx, p)
	res.Profile = name
	return res
}
