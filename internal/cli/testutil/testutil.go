// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/dbmeta/internal/cli/output"
	"github.com/leapstack-labs/dbmeta/pkg/core"
	"github.com/leapstack-labs/dbmeta/pkg/dialect"
	"github.com/leapstack-labs/dbmeta/pkg/plugin"
)

// SetupConfigDir writes dbmeta.yaml with the given content into a temporary
// directory and makes it the working directory for the rest of the test.
func SetupConfigDir(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dbmeta.yaml"), []byte(content), 0o600))
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	return dir
}

var (
	mockMu  sync.Mutex
	mockDBs = map[string]*sql.DB{}
)

// RegisterMockPlugin registers key as a plugin speaking d whose connections
// come from a fresh sqlmock. The mock is replaced on every call, so tests may
// reuse a key.
func RegisterMockPlugin(t *testing.T, key string, d *dialect.Dialect) sqlmock.Sqlmock {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mockMu.Lock()
	mockDBs[key] = db
	mockMu.Unlock()

	plugin.Register(key, func(params core.ConnectionParams, logger *slog.Logger) (plugin.Plugin, error) {
		mockMu.Lock()
		db := mockDBs[key]
		mockMu.Unlock()
		return plugin.NewBase(plugin.Config{
			Key:     key,
			Dialect: d,
			Params:  params,
			URL:     "mock://" + params.Database,
			Open:    func() (*sql.DB, error) { return db, nil },
		}, logger)
	})
	return mock
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a new test renderer with the specified mode and TTY state.
func NewTestRenderer(mode output.Mode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// Output returns the stdout output as a string.
func (tr *TestRenderer) Output() string { return tr.Out.String() }

// ErrorOutput returns the stderr output as a string.
func (tr *TestRenderer) ErrorOutput() string { return tr.ErrOut.String() }

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}
