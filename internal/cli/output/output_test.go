package output

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTest(mode Mode) (*Renderer, *bytes.Buffer, *bytes.Buffer) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	return NewRendererWithTTY(out, errOut, false, mode), out, errOut
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"": ModeAuto, "JSON": ModeJSON, " yaml ": ModeYAML, "table": ModeTable} {
		got, err := ParseMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseMode("markdown")
	assert.Error(t, err)
}

func TestTable(t *testing.T) {
	r, out, _ := newTest(ModeAuto)
	assert.Equal(t, ModeTable, r.EffectiveMode())
	assert.False(t, r.IsStructured())

	r.Table([]string{"SCHEMA", "NAME", "NULLABLE"}, [][]any{{"public", "users", true}, {"public", nil, false}})
	s := out.String()
	assert.Contains(t, s, "SCHEMA")
	assert.Contains(t, s, "users")
	assert.Contains(t, s, "YES")
	assert.Contains(t, s, "(2 rows)")

	out.Reset()
	r.Table([]string{"NAME"}, nil)
	assert.Equal(t, "(0 rows)\n", out.String())
}

type doc struct {
	Name  string              `json:"name"`
	Max   decimal.NullDecimal `json:"max"`
	Tags  []string            `json:"tags"`
	Empty *string             `json:"empty"`
}

func TestStructured(t *testing.T) {
	v := doc{Name: "123", Max: decimal.NewNullDecimal(decimal.RequireFromString("9999999999999999999999999999")), Tags: []string{"a"}}

	r, out, _ := newTest(ModeJSON)
	ok, err := r.Structured(v)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"name":"123","max":"9999999999999999999999999999","tags":["a"],"empty":null}`, out.String())

	r, out, _ = newTest(ModeYAML)
	ok, err = r.Structured(v)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "name: \"123\"\nmax: \"9999999999999999999999999999\"\ntags:\n  - a\nempty: null\n", out.String())

	r, _, _ = newTest(ModeTable)
	ok, err = r.Structured(v)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStatusLines(t *testing.T) {
	r, out, errOut := newTest(ModeTable)
	r.Success("connected")
	r.Failure("refused")
	r.Warn("slow")
	assert.Empty(t, out.String())
	assert.Equal(t, "OK connected\nFAIL refused\n! slow\n", errOut.String())
}

func TestKeyValues(t *testing.T) {
	r, out, _ := newTest(ModeTable)
	r.KeyValues([][2]string{{"Name", "users"}, {"Remark", ""}, {"Rows", "10"}})
	assert.Equal(t, "Name:   users\nRows:   10\n", out.String())
}

func TestFormat(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s := "x"
	assert.Equal(t, "2024-03-01T12:00:00Z", FormatValue(&ts))
	assert.Equal(t, "", FormatValue((*time.Time)(nil)))
	assert.Equal(t, "x", FormatValue(&s))
	assert.Equal(t, "", FormatValue(decimal.NullDecimal{}))
	assert.Equal(t, "42", FormatValue(42))

	assert.Equal(t, "8.0 KiB", Bytes(8192))
	assert.Equal(t, "", Bytes(0))
	assert.Equal(t, "1,234,567", Count(1234567))
	assert.Equal(t, "Materialized View", Title("materialized_view"))
}
