// Package output renders command results as tables, JSON or YAML.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/muesli/termenv"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Mode selects how results are rendered.
type Mode string

const (
	ModeAuto  Mode = "auto"
	ModeTable Mode = "table"
	ModeJSON  Mode = "json"
	ModeYAML  Mode = "yaml"
)

// ParseMode resolves an output mode name. Blank means auto.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeAuto, nil
	case ModeAuto, ModeTable, ModeJSON, ModeYAML:
		return m, nil
	}
	return "", fmt.Errorf("unknown output format %q (want auto, table, json or yaml)", s)
}

// Renderer writes results to stdout and status lines to stderr.
type Renderer struct {
	w      io.Writer
	errW   io.Writer
	mode   Mode
	isTTY  bool
	styles *Styles
}

// NewRenderer creates a renderer, detecting whether w is a terminal.
func NewRenderer(w, errW io.Writer, mode Mode) *Renderer {
	tty := false
	if f, ok := w.(*os.File); ok {
		tty = term.IsTerminal(int(f.Fd()))
	}
	return NewRendererWithTTY(w, errW, tty, mode)
}

// NewRendererWithTTY creates a renderer with an explicit terminal state.
// Colors are disabled off a terminal and when NO_COLOR is set.
func NewRendererWithTTY(w, errW io.Writer, isTTY bool, mode Mode) *Renderer {
	if mode == "" {
		mode = ModeAuto
	}
	return &Renderer{
		w:      w,
		errW:   errW,
		mode:   mode,
		isTTY:  isTTY,
		styles: NewStyles(isTTY && !termenv.EnvNoColor()),
	}
}

// EffectiveMode resolves auto to table.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode == ModeAuto {
		return ModeTable
	}
	return r.mode
}

// IsStructured reports whether output is machine-readable.
func (r *Renderer) IsStructured() bool {
	m := r.EffectiveMode()
	return m == ModeJSON || m == ModeYAML
}

// Writer returns the result writer.
func (r *Renderer) Writer() io.Writer { return r.w }

// Styles returns the styles in effect.
func (r *Renderer) Styles() *Styles { return r.styles }

// Println writes a line to the result writer.
func (r *Renderer) Println(a ...any) { _, _ = fmt.Fprintln(r.w, a...) }

// Printf writes formatted text to the result writer.
func (r *Renderer) Printf(format string, a ...any) { _, _ = fmt.Fprintf(r.w, format, a...) }

// Success writes a status line to stderr.
func (r *Renderer) Success(msg string) {
	_, _ = fmt.Fprintln(r.errW, r.styles.StatusSuccess.String()+" "+msg)
}

// Warn writes a warning line to stderr.
func (r *Renderer) Warn(msg string) {
	_, _ = fmt.Fprintln(r.errW, r.styles.Warning.Render("! "+msg))
}

// Failure writes an error line to stderr.
func (r *Renderer) Failure(msg string) {
	_, _ = fmt.Fprintln(r.errW, r.styles.StatusFailed.String()+" "+r.styles.Error.Render(msg))
}

// Table renders rows under header. An empty table prints "(0 rows)".
func (r *Renderer) Table(header []string, rows [][]any) {
	if len(rows) == 0 {
		r.Println(r.styles.Muted.Render("(0 rows)"))
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.w)
	t.SetStyle(table.StyleLight)

	headerRow := make(table.Row, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	t.AppendHeader(headerRow)
	for _, row := range rows {
		out := make(table.Row, len(row))
		for i, v := range row {
			out[i] = FormatValue(v)
		}
		t.AppendRow(out)
	}
	t.Render()
	r.Printf("(%d rows)\n", len(rows))
}

// KeyValues renders label/value pairs, one per line, with aligned labels.
func (r *Renderer) KeyValues(pairs [][2]string) {
	width := 0
	for _, p := range pairs {
		width = max(width, len(p[0]))
	}
	for _, p := range pairs {
		if p[1] == "" {
			continue
		}
		label := fmt.Sprintf("%-*s", width+1, p[0]+":")
		r.Printf("%s %s\n", r.styles.Bold.Render(label), p[1])
	}
}

// Header writes a section title.
func (r *Renderer) Header(title string) {
	r.Println(r.styles.Header.Render(title))
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// YAML writes v as YAML. Field names and value formats follow the JSON
// encoding, so both structured modes show the same document.
func (r *Renderer) YAML(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	clearStyle(&doc)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err = r.w.Write(buf.Bytes())
	return err
}

// clearStyle drops the flow and quoting styles JSON input carries so the
// document encodes in block style.
func clearStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		clearStyle(c)
	}
}

// Structured writes v in the structured mode in effect. It reports false in
// table mode, leaving rendering to the caller.
func (r *Renderer) Structured(v any) (bool, error) {
	switch r.EffectiveMode() {
	case ModeJSON:
		return true, r.JSON(v)
	case ModeYAML:
		return true, r.YAML(v)
	}
	return false, nil
}
