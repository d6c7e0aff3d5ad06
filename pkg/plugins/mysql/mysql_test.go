package mysql

import (
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/dbmeta/pkg/core"
	"github.com/leapstack-labs/dbmeta/pkg/dialect"
	"github.com/leapstack-labs/dbmeta/pkg/plugin"
)

func TestConfig(t *testing.T) {
	params := core.ConnectionParams{Host: "my", Database: "shop", User: "app", Password: "secret"}
	cfg := Config(params, Attributes{TLS: "skip-verify", Timeout: 3 * time.Second}, map[string]string{"charset": "utf8mb4"})

	assert.Equal(t, "my:3306", cfg.Addr)
	assert.Equal(t, "tcp", cfg.Net)
	assert.True(t, cfg.ParseTime)
	assert.Equal(t, "skip-verify", cfg.TLSConfig)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, "utf8mb4", cfg.Params["charset"])

	parsed, err := mysql.ParseDSN(cfg.FormatDSN())
	require.NoError(t, err)
	assert.Equal(t, "shop", parsed.DBName)
	assert.Equal(t, "app", parsed.User)
	assert.Equal(t, "secret", parsed.Passwd)
	assert.True(t, parsed.ParseTime)
}

func TestURL(t *testing.T) {
	tests := []struct {
		name   string
		params core.ConnectionParams
		want   string
	}{
		{"bare", core.ConnectionParams{Host: "my", Database: "shop"}, "mysql://my:3306/shop"},
		{"props", core.ConnectionParams{Host: "my", Port: 3307, Database: "shop",
			Attributes: map[string]string{"charset": "utf8mb4", "tls": "true"}}, "mysql://my:3307/shop?charset=utf8mb4&tls=true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, URL(tt.params))
		})
	}
}

func TestNew(t *testing.T) {
	p, err := plugin.New("datasource_mysql", core.ConnectionParams{Host: "my", Database: "shop"}, nil)
	require.NoError(t, err)
	defer func() { _ = p.Close() }()

	assert.Equal(t, dialect.MySQL, p.Dialect().Key)
	assert.Equal(t, "mysql://my:3306/shop", p.URL())
}
