package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/dbmeta/pkg/dialect"
	"github.com/leapstack-labs/dbmeta/pkg/plugin"
)

type pluginInfo struct {
	Key           string `json:"key"`
	Dialect       string `json:"dialect,omitempty"`
	Catalogs      string `json:"catalogs,omitempty"`
	DefaultSchema string `json:"default_schema,omitempty"`
}

// NewPluginsCommand creates the plugins command.
func NewPluginsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "plugins",
		Short: "List registered plugins",
		Long: `List every registered plugin key with the dialect it speaks.

Use the key, or the engine name, as the plugin of a connection profile.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlugins(cmd)
		},
	}
}

func pluginInfos() []pluginInfo {
	keys := plugin.List()
	infos := make([]pluginInfo, 0, len(keys))
	for _, key := range keys {
		info := pluginInfo{Key: key}
		if k, err := dialect.ParseKey(key); err == nil {
			if d, ok := dialect.ForKey(k); ok {
				info.Dialect = d.Name
				info.Catalogs = d.Catalogs.String()
				info.DefaultSchema = d.DefaultSchema
			}
		}
		infos = append(infos, info)
	}
	return infos
}

func runPlugins(cmd *cobra.Command) error {
	r := NewCommandContextWithoutPlugin(cmd).Renderer
	infos := pluginInfos()
	if ok, err := r.Structured(infos); ok || err != nil {
		return err
	}

	rows := make([][]any, 0, len(infos))
	for _, p := range infos {
		rows = append(rows, []any{p.Key, p.Dialect, p.Catalogs, p.DefaultSchema})
	}
	r.Table([]string{"KEY", "DIALECT", "CATALOGS", "DEFAULT SCHEMA"}, rows)
	return nil
}
