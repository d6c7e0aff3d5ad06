package clickhouse

import (
	"testing"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/dbmeta/pkg/core"
)

func TestPort(t *testing.T) {
	tests := []struct {
		attrs Attributes
		want  int
	}{
		{Attributes{}, NativePort},
		{Attributes{Secure: true}, NativeSecurePort},
		{Attributes{Protocol: "HTTP"}, HTTPPort},
		{Attributes{Protocol: "http", Secure: true}, HTTPSecurePort},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Port(tt.attrs), "%+v", tt.attrs)
	}
}

func TestOptions(t *testing.T) {
	params := core.ConnectionParams{Host: "ch", Database: "analytics", User: "default", Password: "pw"}
	opts, err := Options(params, Attributes{
		Protocol:    "http",
		Compress:    "lz4",
		Secure:      true,
		DialTimeout: 2 * time.Second,
	}, map[string]string{"max_execution_time": "60"})
	require.NoError(t, err)

	assert.Equal(t, []string{"ch:8443"}, opts.Addr)
	assert.Equal(t, clickhouse.HTTP, opts.Protocol)
	assert.Equal(t, "analytics", opts.Auth.Database)
	assert.Equal(t, "pw", opts.Auth.Password)
	require.NotNil(t, opts.Compression)
	assert.Equal(t, clickhouse.CompressionLZ4, opts.Compression.Method)
	require.NotNil(t, opts.TLS)
	assert.Equal(t, "60", opts.Settings["max_execution_time"])
	assert.Equal(t, 2*time.Second, opts.DialTimeout)
}

func TestOptions_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		attrs Attributes
	}{
		{"protocol", Attributes{Protocol: "grpc"}},
		{"compression", Attributes{Compress: "brotli9"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Options(core.ConnectionParams{}, tt.attrs, nil)
			assert.ErrorIs(t, err, core.ErrConfig)
		})
	}
}

func TestURL(t *testing.T) {
	assert.Equal(t, "clickhouse://ch:9000/default", URL(core.ConnectionParams{Host: "ch", Database: "default"}, Attributes{}))
}
