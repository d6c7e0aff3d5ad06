package generic

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/dbmeta/pkg/core"
	"github.com/leapstack-labs/dbmeta/pkg/dialect"
)

func TestNew_MissingDriver(t *testing.T) {
	tests := []struct {
		name   string
		attrs  map[string]string
		errMsg string
	}{
		{"no driver attribute", nil, "attribute driver is required"},
		{"driver not linked", map[string]string{"driver": "db2"}, `driver "db2" is not linked`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(core.ConnectionParams{Attributes: tt.attrs}, nil)
			assert.Nil(t, p)
			require.Error(t, err)
			assert.ErrorIs(t, err, core.ErrConfig)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestNew_SQLMockDriver(t *testing.T) {
	_, mock, err := sqlmock.NewWithDSN("generic_plugin_test", sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	p, err := New(core.ConnectionParams{Attributes: map[string]string{
		"driver": "sqlmock",
		"dsn":    "generic_plugin_test",
	}}, nil)
	require.NoError(t, err)

	assert.Equal(t, dialect.Generic, p.Dialect().Key)
	assert.Equal(t, dialect.PlaceholderQuestion, p.Dialect().Placeholder)

	mock.ExpectPing()
	ok, err := p.TestConnection(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)

	mock.ExpectClose()
	require.NoError(t, p.Close())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestURL(t *testing.T) {
	tests := []struct {
		attrs Attributes
		want  string
	}{
		{Attributes{Driver: "pgx", DSN: "postgres://u:pw@h/db"}, "pgx:postgres://u:xxxxx@h/db"},
		{Attributes{Driver: "odbc", DSN: "DSN=warehouse;PWD=pw"}, "odbc:"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, URL(tt.attrs))
	}
}
