package plugin

import (
	"database/sql"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/dbmeta/pkg/core"
	"github.com/leapstack-labs/dbmeta/pkg/dialect"
)

func fakeFactory(calls *int) Factory {
	return func(params core.ConnectionParams, logger *slog.Logger) (Plugin, error) {
		*calls++
		b, err := NewBase(Config{
			Key:     "DATASOURCE_FAKE",
			Dialect: &dialect.Dialect{Name: "fake"},
			Params:  params,
			Open:    func() (*sql.DB, error) { return nil, assert.AnError },
		}, logger)
		if err != nil {
			return nil, err
		}
		return b, nil
	}
}

func TestRegister(t *testing.T) {
	var calls int
	Register("datasource_fake", fakeFactory(&calls))

	assert.True(t, IsRegistered("DATASOURCE_FAKE"), "keys are case-insensitive")
	assert.True(t, IsRegistered(" datasource_fake "))
	assert.Contains(t, List(), "DATASOURCE_FAKE")

	f, err := Resolve("Datasource_Fake")
	require.NoError(t, err)
	assert.NotNil(t, f)
}

func TestNew_UnknownKey(t *testing.T) {
	p, err := New("DATASOURCE_DB2", core.ConnectionParams{Host: "db2.local"}, nil)

	assert.Nil(t, p, "no partial plugin on failure")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrConfig)

	var unknown *core.UnknownPluginError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "DATASOURCE_DB2", unknown.Key)
	assert.Equal(t, List(), unknown.Available)
}

func TestNew_EmptyKey(t *testing.T) {
	p, err := New("  ", core.ConnectionParams{}, nil)
	assert.Nil(t, p)
	assert.ErrorIs(t, err, core.ErrConfig)
	assert.Contains(t, err.Error(), "plugin key not specified")
}

func TestNew_OwnsParamsCopy(t *testing.T) {
	var calls int
	Register("DATASOURCE_FAKE_COPY", fakeFactory(&calls))

	params := core.ConnectionParams{Host: "h", Attributes: map[string]string{"sslmode": "disable"}}
	p, err := New("DATASOURCE_FAKE_COPY", params, nil)
	require.NoError(t, err)

	params.Attributes["sslmode"] = "require"
	params.Host = "other"

	got := p.Params()
	assert.Equal(t, "h", got.Host)
	assert.Equal(t, "disable", got.Attributes["sslmode"])

	got.Attributes["sslmode"] = "mutated"
	assert.Equal(t, "disable", p.Params().Attributes["sslmode"], "Params returns a copy")
}

func TestNew_NeverCaches(t *testing.T) {
	var calls int
	Register("DATASOURCE_FAKE_NOCACHE", fakeFactory(&calls))

	a, err := New("DATASOURCE_FAKE_NOCACHE", core.ConnectionParams{}, nil)
	require.NoError(t, err)
	b, err := New("DATASOURCE_FAKE_NOCACHE", core.ConnectionParams{}, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	assert.NotSame(t, a, b)
}

func TestNew_FactoryError(t *testing.T) {
	Register("DATASOURCE_FAKE_BROKEN", func(core.ConnectionParams, *slog.Logger) (Plugin, error) {
		return nil, &core.ConfigError{Msg: "missing attribute driver"}
	})

	p, err := New("DATASOURCE_FAKE_BROKEN", core.ConnectionParams{}, nil)
	assert.Nil(t, p)
	assert.ErrorIs(t, err, core.ErrConfig)
}
