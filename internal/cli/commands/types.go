package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/dbmeta/internal/cli/output"
	"github.com/leapstack-labs/dbmeta/pkg/binder"
	"github.com/leapstack-labs/dbmeta/pkg/core"
	"github.com/leapstack-labs/dbmeta/pkg/dialect"
	"github.com/leapstack-labs/dbmeta/pkg/types"
)

type typeResult struct {
	From      string  `json:"from"`
	Native    string  `json:"native"`
	Canonical string  `json:"canonical"`
	To        string  `json:"to,omitempty"`
	Target    string  `json:"target,omitempty"`
	Exact     bool    `json:"exact"`
	BindKind  string  `json:"bind_kind"`
	Value     *string `json:"value,omitempty"`
	Bound     string  `json:"bound,omitempty"`
	BoundType string  `json:"bound_type,omitempty"`
}

type typeFlags struct {
	from      string
	to        string
	length    int
	precision int
	scale     int
	value     string
}

// NewTypesCommand creates the types command.
func NewTypesCommand() *cobra.Command {
	var tf typeFlags
	cmd := &cobra.Command{
		Use:   "types <native-type>",
		Short: "Map a native type through the canonical type system",
		Long:  `Map a native type of one engine to its canonical type and, with --to,
to the spelling another engine uses for it.

With --value, also show how a text cell of that type is bound as a
statement parameter.`,
		Example: `  # Canonical type of a MySQL column
  dbmeta types "int(11) unsigned" --from mysql

  # Translate an Oracle type to PostgreSQL
  dbmeta types NUMBER --precision 10 --scale 2 --from oracle --to postgres

  # Bind a text value the way a loader would
  dbmeta types datetime --from mysql --value "2024-03-01 12:30:00"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("value") {
				return runTypes(cmd, args[0], tf, nil)
			}
			v := tf.value
			return runTypes(cmd, args[0], tf, &v)
		},
	}
	cmd.Flags().StringVar(&tf.from, "from", "", "Source engine name or plugin key (default: the connection's plugin)")
	cmd.Flags().StringVar(&tf.to, "to", "", "Target engine name or plugin key")
	cmd.Flags().IntVar(&tf.length, "length", 0, "Declared length")
	cmd.Flags().IntVar(&tf.precision, "precision", 0, "Declared precision")
	cmd.Flags().IntVar(&tf.scale, "scale", 0, "Declared scale")
	cmd.Flags().StringVar(&tf.value, "value", "", "Text value to bind")
	return cmd
}

func lookupDialect(name string) (*dialect.Dialect, error) {
	k, err := dialect.ParseKey(name)
	if err != nil {
		return nil, &core.ConfigError{Msg: "unknown engine " + name, Err: err}
	}
	d, ok := dialect.ForKey(k)
	if !ok {
		return nil, &core.ConfigError{Msg: fmt.Sprintf("no dialect registered for %s", k)}
	}
	return d, nil
}

func runTypes(cmd *cobra.Command, native string, tf typeFlags, value *string) error {
	c := NewCommandContextWithoutPlugin(cmd)

	from := tf.from
	if from == "" {
		from = c.Cfg.Connection.Plugin
	}
	if from == "" {
		return &core.ConfigError{Msg: "no source engine: pass --from or configure a connection"}
	}
	src, err := lookupDialect(from)
	if err != nil {
		return err
	}

	t := src.Types.ToType(native, tf.length, tf.precision, tf.scale)
	res := typeResult{
		From:      src.Name,
		Native:    native,
		Canonical: t.String(),
		Exact:     claims(src, t.Kind),
	}

	kind, _ := src.BindKindFor(native)
	res.BindKind = kind.String()

	if tf.to != "" {
		dst, err := lookupDialect(tf.to)
		if err != nil {
			return err
		}
		res.To = dst.Name
		spelled, err := dst.Types.FromType(t)
		if err != nil {
			return err
		}
		res.Target = spelled
		res.Exact = res.Exact && claims(dst, t.Kind)
	}

	if value != nil {
		res.Value = value
		col := core.Column{
			ColumnName:     "value",
			NativeTypeName: native,
			SQLType:        t,
			Length:         tf.length,
			Precision:      tf.precision,
			Scale:          tf.scale,
		}
		bound, err := binder.New(src).Value(col, value)
		if err != nil {
			var ce *core.CoercionError
			if errors.As(err, &ce) {
				return fmt.Errorf("cannot bind %q as %s: %w", *value, ce.Target, ce.Err)
			}
			return err
		}
		res.Bound = output.FormatValue(bound)
		res.BoundType = fmt.Sprintf("%T", bound)
	}

	r := c.Renderer
	if ok, err := r.Structured(res); ok || err != nil {
		return err
	}
	r.KeyValues([][2]string{
		{"Engine", res.From},
		{"Native", res.Native},
		{"Canonical", res.Canonical},
		{"Target (" + res.To + ")", res.Target},
		{"Exact", output.FormatValue(res.Exact)},
		{"Bind kind", res.BindKind},
		{"Bound", boundText(res)},
	})
	return nil
}

func boundText(res typeResult) string {
	if res.Value == nil {
		return ""
	}
	if res.BoundType == "<nil>" {
		return "NULL"
	}
	return res.Bound + " (" + res.BoundType + ")"
}

func claims(d *dialect.Dialect, k types.Kind) bool {
	for _, c := range d.Types.Claims() {
		if c == k {
			return true
		}
	}
	return false
}
