package plugin

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/dbmeta/internal/testutil"
	"github.com/leapstack-labs/dbmeta/pkg/core"
	"github.com/leapstack-labs/dbmeta/pkg/dialect"
)

func newMockBase(t *testing.T, attrs map[string]string) (*Base, sqlmock.Sqlmock, *int) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	opened := 0
	b, err := NewBase(Config{
		Key:        "DATASOURCE_TEST",
		Dialect:    &dialect.Dialect{Name: "test"},
		Params:     core.ConnectionParams{Host: "h", Password: "secret", Attributes: attrs},
		URL:        "test://h",
		DriverName: "sqlmock",
		Open: func() (*sql.DB, error) {
			opened++
			return db, nil
		},
	}, testutil.NewTestLogger(t))
	require.NoError(t, err)
	return b, mock, &opened
}

func TestNewBase_Validation(t *testing.T) {
	tests := []struct {
		name   string
		cfg    Config
		errMsg string
	}{
		{
			name:   "missing dialect",
			cfg:    Config{Key: "DATASOURCE_X", Open: func() (*sql.DB, error) { return nil, nil }},
			errMsg: "dialect is required",
		},
		{
			name:   "missing opener",
			cfg:    Config{Key: "DATASOURCE_X", Dialect: &dialect.Dialect{}},
			errMsg: "no driver opener",
		},
		{
			name: "bad pool attribute",
			cfg: Config{
				Key:     "DATASOURCE_X",
				Dialect: &dialect.Dialect{},
				Open:    func() (*sql.DB, error) { return nil, nil },
				Params:  core.ConnectionParams{Attributes: map[string]string{"pool.max_open": "lots"}},
			},
			errMsg: "invalid attributes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewBase(tt.cfg, nil)
			assert.Nil(t, b)
			require.Error(t, err)
			assert.ErrorIs(t, err, core.ErrConfig)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestBase_PoolOptions(t *testing.T) {
	b, _, _ := newMockBase(t, map[string]string{
		"pool.max_open":     "10",
		"pool.max_lifetime": "1m",
	})

	assert.Equal(t, 10, b.Pool.MaxOpen)
	assert.Equal(t, time.Minute, b.Pool.MaxLifetime)
	assert.Equal(t, DefaultPoolOptions().MaxIdle, b.Pool.MaxIdle, "unset options keep defaults")
}

func TestBase_LazyPool(t *testing.T) {
	b, mock, opened := newMockBase(t, nil)
	ctx := context.Background()

	assert.Equal(t, 0, *opened, "constructing a plugin does not open the pool")

	db1, err := b.DB(ctx)
	require.NoError(t, err)
	db2, err := b.DB(ctx)
	require.NoError(t, err)

	assert.Same(t, db1, db2)
	assert.Equal(t, 1, *opened)

	mock.ExpectClose()
	require.NoError(t, b.Close())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBase_TestConnection(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantOK    bool
		expectErr bool
	}{
		{
			name: "ping succeeds",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectPing()
			},
			wantOK: true,
		},
		{
			name: "ping fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectPing().WillReturnError(assert.AnError)
			},
			wantOK:    false,
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, mock, _ := newMockBase(t, nil)
			tt.setupMock(mock)

			ok, err := b.TestConnection(context.Background())
			assert.Equal(t, tt.wantOK, ok)
			if tt.expectErr {
				var execErr *core.ExecutionError
				require.ErrorAs(t, err, &execErr)
				assert.Equal(t, "ping", execErr.Op)
				assert.ErrorIs(t, err, assert.AnError)
			} else {
				assert.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestBase_OpenError(t *testing.T) {
	b, err := NewBase(Config{
		Key:        "DATASOURCE_X",
		Dialect:    &dialect.Dialect{},
		DriverName: "nope",
		Open:       func() (*sql.DB, error) { return nil, assert.AnError },
	}, nil)
	require.NoError(t, err)

	ok, err := b.TestConnection(context.Background())
	assert.False(t, ok)
	assert.ErrorIs(t, err, core.ErrConfig)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestBase_Close(t *testing.T) {
	t.Run("close before use", func(t *testing.T) {
		b, _, opened := newMockBase(t, nil)
		require.NoError(t, b.Close())
		assert.Equal(t, 0, *opened)
	})

	t.Run("use after close", func(t *testing.T) {
		b, mock, _ := newMockBase(t, nil)
		_, err := b.DB(context.Background())
		require.NoError(t, err)

		mock.ExpectClose()
		require.NoError(t, b.Close())
		require.NoError(t, b.Close(), "second close is a no-op")

		_, err = b.Conn(context.Background())
		assert.ErrorIs(t, err, core.ErrNotConnected)
	})
}

func TestBase_Accessors(t *testing.T) {
	b, _, _ := newMockBase(t, map[string]string{"sslmode": "disable"})

	assert.Equal(t, "DATASOURCE_TEST", b.Key())
	assert.Equal(t, "test", b.Dialect().Name)
	assert.Equal(t, "test://h", b.URL())
	assert.NotContains(t, b.URL(), "secret")
	assert.Equal(t, "disable", b.Params().Attributes["sslmode"])
}
