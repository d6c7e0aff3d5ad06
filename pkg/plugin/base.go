package plugin

import (
	"context"
	"database/sql"
	"log/slog"
	"sync"

	"github.com/jmoiron/sqlx"

	"github.com/leapstack-labs/dbmeta/pkg/core"
	"github.com/leapstack-labs/dbmeta/pkg/dialect"
)

// Opener returns the engine's database/sql handle. It must not dial; the first
// connection is made lazily by the pool.
type Opener func() (*sql.DB, error)

// Config describes one engine connection for NewBase.
type Config struct {
	Key        string
	Dialect    *dialect.Dialect
	Params     core.ConnectionParams
	URL        string
	DriverName string
	Open       Opener
}

// Base provides the pool handling shared by every engine.
// Embed it in concrete plugins; they only supply the Opener and the URL.
type Base struct {
	Logger *slog.Logger
	Pool   PoolOptions

	key        string
	dialect    *dialect.Dialect
	params     core.ConnectionParams
	url        string
	driverName string
	open       Opener

	mu      sync.Mutex
	once    sync.Once
	db      *sqlx.DB
	openErr error
	closed  bool
}

// NewBase validates cfg and decodes the pool attributes. No connection is made.
func NewBase(cfg Config, logger *slog.Logger) (*Base, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Dialect == nil {
		return nil, &core.ConfigError{Msg: cfg.Key + ": " + dialect.ErrDialectRequired.Error()}
	}
	if cfg.Open == nil {
		return nil, &core.ConfigError{Msg: cfg.Key + ": no driver opener"}
	}

	pool := DefaultPoolOptions()
	if _, err := DecodeAttributes(cfg.Params.Attributes, &pool); err != nil {
		return nil, err
	}

	return &Base{
		Logger:     logger.With(slog.String("plugin", cfg.Key)),
		Pool:       pool,
		key:        cfg.Key,
		dialect:    cfg.Dialect,
		params:     cfg.Params.Clone(),
		url:        cfg.URL,
		driverName: cfg.DriverName,
		open:       cfg.Open,
	}, nil
}

// Key returns the registry key.
func (b *Base) Key() string { return b.key }

// Dialect returns the dialect bundle.
func (b *Base) Dialect() *dialect.Dialect { return b.dialect }

// Params returns a copy of the connection parameters.
func (b *Base) Params() core.ConnectionParams { return b.params.Clone() }

// URL returns the display URL.
func (b *Base) URL() string { return b.url }

// DB returns the pool, opening it once on first use.
func (b *Base) DB(ctx context.Context) (*sqlx.DB, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, core.ErrNotConnected
	}
	b.once.Do(func() {
		b.Logger.Debug("opening connection pool",
			slog.String("url", b.url),
			slog.Int("max_open", b.Pool.MaxOpen))

		db, err := b.open()
		if err != nil {
			b.openErr = &core.ConfigError{Msg: "open " + b.driverName, Err: err}
			return
		}
		db.SetMaxOpenConns(b.Pool.MaxOpen)
		db.SetMaxIdleConns(b.Pool.MaxIdle)
		db.SetConnMaxLifetime(b.Pool.MaxLifetime)
		db.SetConnMaxIdleTime(b.Pool.MaxIdleTime)
		b.db = sqlx.NewDb(db, b.driverName)
	})
	return b.db, b.openErr
}

// Conn checks out one connection from the pool.
func (b *Base) Conn(ctx context.Context) (*sqlx.Conn, error) {
	db, err := b.DB(ctx)
	if err != nil {
		return nil, err
	}
	conn, err := db.Connx(ctx)
	if err != nil {
		return nil, &core.ExecutionError{Op: "connect", Plugin: b.key, Err: err}
	}
	return conn, nil
}

// TestConnection opens one connection and pings it.
func (b *Base) TestConnection(ctx context.Context) (bool, error) {
	conn, err := b.Conn(ctx)
	if err != nil {
		return false, err
	}
	defer func() { _ = conn.Close() }()

	if err := conn.PingContext(ctx); err != nil {
		b.Logger.Debug("ping failed", slog.String("error", err.Error()))
		return false, &core.ExecutionError{Op: "ping", Plugin: b.key, Err: err}
	}
	b.Logger.Debug("connection ok", slog.String("url", b.url))
	return true, nil
}

// Close closes the pool. Calling Close more than once is a no-op.
func (b *Base) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	if b.db != nil {
		b.Logger.Debug("closing connection pool")
		return b.db.Close()
	}
	return nil
}

// Ensure Base implements the Plugin interface.
var _ Plugin = (*Base)(nil)
