package commands

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/dbmeta/pkg/core"
	"github.com/leapstack-labs/dbmeta/pkg/dialect"
	"github.com/leapstack-labs/dbmeta/pkg/plugin"

	_ "github.com/leapstack-labs/dbmeta/pkg/dialects/mysql"
	_ "github.com/leapstack-labs/dbmeta/pkg/dialects/oracle"
	"github.com/leapstack-labs/dbmeta/pkg/dialects/postgres"
)

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestCommandMetadata(t *testing.T) {
	tests := []struct {
		cmd   *cobra.Command
		use   string
		flags []string
	}{
		{NewPluginsCommand(), "plugins", nil},
		{NewPingCommand(), "ping", []string{"all"}},
		{NewCatalogsCommand(), "catalogs", []string{"catalog"}},
		{NewSchemasCommand(), "schemas", []string{"catalog", "schema"}},
		{NewListCommand(), "list <kind>", []string{"catalog", "schema", "name", "table", "details"}},
		{NewColumnsCommand(), "columns [table]", []string{"schema", "table"}},
		{NewDescribeCommand(), "describe <kind> <name>", []string{"schema", "table"}},
		{NewDDLCommand(), "ddl <kind> <name>", []string{"schema"}},
		{NewDropCommand(), "drop <kind> <name>", []string{"schema", "yes"}},
		{NewRenameCommand(), "rename <kind> <name> <new-name>", []string{"schema", "yes"}},
		{NewTypesCommand(), "types <native-type>", []string{"from", "to", "length", "precision", "scale", "value"}},
	}
	for _, tt := range tests {
		t.Run(tt.use, func(t *testing.T) {
			assert.Equal(t, tt.use, tt.cmd.Use)
			assert.NotEmpty(t, tt.cmd.Short, "Short should not be empty")
			for _, flag := range tt.flags {
				assert.NotNil(t, tt.cmd.Flags().Lookup(flag), "flag %q should exist", flag)
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	kind, err := parseKind("materialized-views")
	require.NoError(t, err)
	assert.Equal(t, core.KindMaterializedView, kind)

	_, err = parseKind("schema")
	require.Error(t, err, "schemas have their own command")
	assert.Contains(t, err.Error(), "table, view")

	_, err = parseKind("widget")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want one of")
}

func TestFilterFlagsRef(t *testing.T) {
	tests := []struct {
		name  string
		flags filterFlags
		arg   string
		want  core.ObjectRef
	}{
		{"qualified", filterFlags{}, "public.users", core.ObjectRef{SchemaName: "public", ObjectName: "users"}},
		{"bare", filterFlags{}, "users", core.ObjectRef{ObjectName: "users"}},
		{"schema flag wins", filterFlags{schema: "sales"}, "a.b", core.ObjectRef{SchemaName: "sales", ObjectName: "a.b"}},
		{"index on table", filterFlags{table: "orders"}, "public.idx", core.ObjectRef{SchemaName: "public", ObjectName: "idx", TableName: "orders"}},
		{"trailing dot", filterFlags{}, "users.", core.ObjectRef{ObjectName: "users."}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.flags.ref(tt.arg))
		})
	}
}

func TestTypesCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want map[string]any
	}{
		{
			name: "unsigned mysql int",
			args: []string{"int(11) unsigned", "--from", "mysql"},
			want: map[string]any{"from": "mysql", "canonical": "IntegerUnsigned", "bind_kind": "uint64"},
		},
		{
			name: "oracle number to postgres",
			args: []string{"NUMBER", "--precision", "10", "--scale", "2", "--from", "oracle", "--to", "postgres"},
			want: map[string]any{"canonical": "Numeric(10,2)", "target": "numeric(10,2)", "bind_kind": "number"},
		},
		{
			name: "bind a datetime",
			args: []string{"datetime", "--from", "DATASOURCE_MYSQL", "--value", "2024-03-01 12:30:00"},
			want: map[string]any{"bind_kind": "timestamp", "bound": "2024-03-01T12:30:00Z", "bound_type": "time.Time"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewTypesCommand()
			out, _, err := execute(t, cmd, tt.args...)
			require.NoError(t, err)

			// No config is loaded here, so the default table mode is in effect.
			for k, v := range tt.want {
				assert.Contains(t, out, v, k)
			}
		})
	}
}

func TestTypesCommand_Errors(t *testing.T) {
	_, _, err := execute(t, NewTypesCommand(), "int")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrConfig)

	_, _, err = execute(t, NewTypesCommand(), "int", "--from", "sybase")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrConfig)

	_, _, err = execute(t, NewTypesCommand(), "int", "--from", "mysql", "--value", "twelve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `cannot bind "twelve" as int32`)
}

func TestPluginInfos(t *testing.T) {
	plugin.Register(dialect.PostgreSQL.PluginKey(), func(params core.ConnectionParams, logger *slog.Logger) (plugin.Plugin, error) {
		return nil, nil
	})
	plugin.Register("DATASOURCE_CMDTEST", func(params core.ConnectionParams, logger *slog.Logger) (plugin.Plugin, error) {
		return nil, nil
	})

	var pg, custom *pluginInfo
	infos := pluginInfos()
	for i := range infos {
		switch infos[i].Key {
		case "DATASOURCE_POSTGRESQL":
			pg = &infos[i]
		case "DATASOURCE_CMDTEST":
			custom = &infos[i]
		}
	}
	require.NotNil(t, pg)
	require.NotNil(t, custom)
	assert.Equal(t, postgres.Postgres.Name, pg.Dialect)
	assert.Equal(t, postgres.Postgres.DefaultSchema, pg.DefaultSchema)
	assert.Equal(t, postgres.Postgres.Catalogs.String(), pg.Catalogs)
	assert.Empty(t, custom.Dialect)

	data, err := json.Marshal(custom)
	require.NoError(t, err)
	assert.JSONEq(t, `{"key":"DATASOURCE_CMDTEST"}`, string(data))
}
