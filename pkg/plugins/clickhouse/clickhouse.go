// Package clickhouse provides the ClickHouse plugin, backed by clickhouse-go/v2.
package clickhouse

import (
	"crypto/tls"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"

	"github.com/leapstack-labs/dbmeta/pkg/core"
	"github.com/leapstack-labs/dbmeta/pkg/dialect"
	chdialect "github.com/leapstack-labs/dbmeta/pkg/dialects/clickhouse"
	"github.com/leapstack-labs/dbmeta/pkg/plugin"
)

// Default ports per protocol; secure ports apply when secure=true.
const (
	NativePort       = 9000
	NativeSecurePort = 9440
	HTTPPort         = 8123
	HTTPSecurePort   = 8443
)

func init() {
	plugin.Register(dialect.ClickHouse.PluginKey(), New)
}

// Attributes are the ClickHouse-specific connection attributes.
// Anything else is sent as a query setting.
type Attributes struct {
	Protocol    string        `mapstructure:"protocol"`
	Secure      bool          `mapstructure:"secure"`
	SkipVerify  bool          `mapstructure:"skip_verify"`
	Compress    string        `mapstructure:"compress"`
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout time.Duration `mapstructure:"read_timeout"`
}

// New creates a ClickHouse plugin. The pool is opened on first use.
func New(params core.ConnectionParams, logger *slog.Logger) (plugin.Plugin, error) {
	var attrs Attributes
	extra, err := plugin.DecodeAttributes(params.Attributes, &attrs)
	if err != nil {
		return nil, err
	}
	opts, err := Options(params, attrs, extra)
	if err != nil {
		return nil, err
	}

	b, err := plugin.NewBase(plugin.Config{
		Key:        dialect.ClickHouse.PluginKey(),
		Dialect:    chdialect.ClickHouse,
		Params:     params,
		URL:        URL(params, attrs),
		DriverName: "clickhouse",
		Open: func() (*sql.DB, error) {
			return clickhouse.OpenDB(opts), nil
		},
	}, logger)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Port returns the default port for the configured protocol.
func Port(attrs Attributes) int {
	http := strings.EqualFold(attrs.Protocol, "http")
	switch {
	case http && attrs.Secure:
		return HTTPSecurePort
	case http:
		return HTTPPort
	case attrs.Secure:
		return NativeSecurePort
	}
	return NativePort
}

// Options builds the driver options.
func Options(p core.ConnectionParams, attrs Attributes, extra map[string]string) (*clickhouse.Options, error) {
	opts := &clickhouse.Options{
		Addr: []string{p.Address(Port(attrs))},
		Auth: clickhouse.Auth{
			Database: p.Database,
			Username: p.User,
			Password: p.Password,
		},
		Protocol:    clickhouse.Native,
		DialTimeout: attrs.DialTimeout,
		ReadTimeout: attrs.ReadTimeout,
	}

	switch strings.ToLower(attrs.Protocol) {
	case "", "native":
	case "http":
		opts.Protocol = clickhouse.HTTP
	default:
		return nil, &core.ConfigError{Msg: fmt.Sprintf("clickhouse: unknown protocol %q", attrs.Protocol)}
	}

	switch strings.ToLower(attrs.Compress) {
	case "", "none":
	case "lz4":
		opts.Compression = &clickhouse.Compression{Method: clickhouse.CompressionLZ4}
	case "zstd":
		opts.Compression = &clickhouse.Compression{Method: clickhouse.CompressionZSTD}
	default:
		return nil, &core.ConfigError{Msg: fmt.Sprintf("clickhouse: unknown compression %q", attrs.Compress)}
	}

	if attrs.Secure {
		opts.TLS = &tls.Config{InsecureSkipVerify: attrs.SkipVerify} //nolint:gosec // opt-in via skip_verify
	}

	if len(extra) > 0 {
		opts.Settings = clickhouse.Settings{}
		for k, v := range extra {
			opts.Settings[k] = v
		}
	}
	return opts, nil
}

// URL returns the display URL: clickhouse://host:port/db.
func URL(p core.ConnectionParams, attrs Attributes) string {
	return "clickhouse://" + p.Address(Port(attrs)) + "/" + p.Database
}
