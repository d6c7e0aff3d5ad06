// Package plugin defines the contract every database engine implements and the
// static registry that resolves DATASOURCE_<ENGINE> keys to constructors.
//
// Engines live in pkg/plugins/<engine> and register themselves from init().
// Import them with a blank identifier to make their key resolvable:
//
//	import _ "github.com/leapstack-labs/dbmeta/pkg/plugins/postgres"
package plugin

import (
	"context"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/leapstack-labs/dbmeta/pkg/core"
	"github.com/leapstack-labs/dbmeta/pkg/dialect"
)

// Plugin is one configured connection to one database.
//
// A plugin owns exactly one pool. The pool is created on first use and
// released by Close; a closed plugin cannot be reopened.
type Plugin interface {
	// Key returns the registry key, e.g. DATASOURCE_MYSQL.
	Key() string

	// Dialect returns the bundle the handlers dispatch on.
	Dialect() *dialect.Dialect

	// Params returns a copy of the connection parameters.
	Params() core.ConnectionParams

	// URL returns the display URL of the connection. It never contains the password.
	URL() string

	// DB returns the pool, opening it on the first call.
	DB(ctx context.Context) (*sqlx.DB, error)

	// Conn checks out one pooled connection. The caller must close it.
	Conn(ctx context.Context) (*sqlx.Conn, error)

	// TestConnection opens a connection and validates it with a ping.
	TestConnection(ctx context.Context) (bool, error)

	// Close releases the pool.
	Close() error
}

// Factory builds a plugin from connection parameters. The params value is
// already a private copy. A nil logger discards output.
type Factory func(params core.ConnectionParams, logger *slog.Logger) (Plugin, error)
