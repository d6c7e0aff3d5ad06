// Package metadata lists, describes and manages database objects through a
// plugin's connection pool.
//
// Every call checks out one pooled connection and releases it, together with
// every cursor it opened, before returning. Catalog queries come from the
// plugin's dialect; wildcard filters and the system schema policy are applied
// after scanning.
package metadata

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/leapstack-labs/dbmeta/pkg/core"
	"github.com/leapstack-labs/dbmeta/pkg/ddl"
	"github.com/leapstack-labs/dbmeta/pkg/dialect"
	"github.com/leapstack-labs/dbmeta/pkg/plugin"
)

// ErrObjectNotFound is returned by operations that need an existing object.
var ErrObjectNotFound = errors.New("object not found")

// Inspector gives access to the handler of every object kind of one plugin.
type Inspector struct {
	p      plugin.Plugin
	d      *dialect.Dialect
	gen    *ddl.Generator
	params core.ConnectionParams
	logger *slog.Logger

	catalogs          *CatalogHandler
	schemas           *SchemaHandler
	columns           *ColumnHandler
	tables            *handler[core.Table]
	views             *handler[core.View]
	materializedViews *handler[core.MaterializedView]
	foreignTables     *handler[core.ForeignTable]
	indexes           *handler[core.Index]
	sequences         *handler[core.Sequence]
	functions         *handler[core.Function]
}

// NewInspector creates the handlers for p. No connection is made.
func NewInspector(p plugin.Plugin, logger *slog.Logger) *Inspector {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	i := &Inspector{
		p:      p,
		d:      p.Dialect(),
		gen:    ddl.New(p.Dialect()),
		params: p.Params(),
		logger: logger.With(slog.String("plugin", p.Key())),
	}
	i.catalogs = &CatalogHandler{i: i}
	i.schemas = &SchemaHandler{i: i}
	i.columns = &ColumnHandler{i: i}
	i.tables = newTableHandler(i)
	i.views = newViewHandler(i)
	i.materializedViews = newMaterializedViewHandler(i)
	i.foreignTables = newForeignTableHandler(i)
	i.indexes = newIndexHandler(i)
	i.sequences = newSequenceHandler(i)
	i.functions = newFunctionHandler(i)
	return i
}

// Plugin returns the plugin the inspector queries.
func (i *Inspector) Plugin() plugin.Plugin { return i.p }

// Generator returns the DDL generator for the plugin's dialect.
func (i *Inspector) Generator() *ddl.Generator { return i.gen }

// Accessors for the per-kind handlers.

func (i *Inspector) Catalogs() *CatalogHandler { return i.catalogs }
func (i *Inspector) Schemas() *SchemaHandler { return i.schemas }
func (i *Inspector) Columns() *ColumnHandler { return i.columns }
func (i *Inspector) Tables() Handler[core.Table] { return i.tables }
func (i *Inspector) Views() Handler[core.View] { return i.views }
func (i *Inspector) MaterializedViews() Handler[core.MaterializedView] { return i.materializedViews }
func (i *Inspector) ForeignTables() Handler[core.ForeignTable] { return i.foreignTables }
func (i *Inspector) Indexes() Handler[core.Index] { return i.indexes }
func (i *Inspector) Sequences() Handler[core.Sequence] { return i.sequences }
func (i *Inspector) Functions() Handler[core.Function] { return i.functions }

// Handler returns the handler for kind. Catalogs, schemas and columns have
// their own list-only handlers and are not returned here.
func (i *Inspector) Handler(kind core.ObjectKind) (ObjectHandler, error) {
	switch kind {
	case core.KindTable:
		return i.tables, nil
	case core.KindView:
		return i.views, nil
	case core.KindMaterializedView:
		return i.materializedViews, nil
	case core.KindForeignTable:
		return i.foreignTables, nil
	case core.KindIndex:
		return i.indexes, nil
	case core.KindSequence:
		return i.sequences, nil
	case core.KindFunction:
		return i.functions, nil
	}
	return nil, fmt.Errorf("no object handler for %s", kind)
}

// withConn runs fn on one pooled connection and always releases it.
func (i *Inspector) withConn(ctx context.Context, fn func(conn *sqlx.Conn) error) error {
	conn, err := i.p.Conn(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := conn.Close(); err != nil {
			i.logger.Debug("release connection", slog.String("error", err.Error()))
		}
	}()
	return fn(conn)
}

func (i *Inspector) execErr(op string, err error) error {
	return &core.ExecutionError{Op: op, Plugin: i.p.Key(), Err: err}
}

// query runs a catalog query. A dialect without the query yields no rows.
func (i *Inspector) query(ctx context.Context, conn *sqlx.Conn, what string, q dialect.Query, f core.Filter) ([]record, error) {
	if q.SQL == "" {
		i.logger.Debug("no catalog query", slog.String("what", what))
		return nil, nil
	}
	stmt, args := q.Build(i.d, f)
	return i.queryRaw(ctx, conn, "list "+what, stmt, args)
}

func (i *Inspector) queryRaw(ctx context.Context, conn *sqlx.Conn, op, stmt string, args []any) ([]record, error) {
	i.logger.Debug("catalog query", slog.String("op", op), slog.Int("args", len(args)))

	rows, err := conn.QueryxContext(ctx, stmt, args...)
	if err != nil {
		return nil, i.execErr(op, err)
	}
	defer func() { _ = rows.Close() }()

	recs, err := scanRecords(rows)
	if err != nil {
		return nil, i.execErr(op, err)
	}
	i.logger.Debug("catalog rows", slog.String("op", op), slog.Int("rows", len(recs)))
	return recs, nil
}

func (i *Inspector) exec(ctx context.Context, op, stmt string) error {
	return i.withConn(ctx, func(conn *sqlx.Conn) error {
		i.logger.Debug("executing ddl", slog.String("op", op), slog.String("statement", stmt))
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return i.execErr(op, err)
		}
		return nil
	})
}

// pseudoMismatch reports whether f asks for a catalog other than the
// configured database on an engine that exposes a single pseudo-catalog.
func (i *Inspector) pseudoMismatch(f core.Filter) bool {
	return i.d.Catalogs == dialect.CatalogPseudo &&
		f.Catalog != "" && i.params.Database != "" &&
		!strings.EqualFold(f.Catalog, i.params.Database)
}

// catalogOf returns the catalog a row belongs to.
func (i *Inspector) catalogOf(r record, f core.Filter) string {
	if i.d.Catalogs == dialect.CatalogPseudo && i.params.Database != "" {
		return i.params.Database
	}
	if c := r.str("catalog_name"); c != "" {
		return c
	}
	return f.Catalog
}

// visible applies the system schema policy and the wildcard patterns of f.
func (i *Inspector) visible(f core.Filter, schema, name, table string) bool {
	if schema != "" && i.d.IsSystemSchema(schema) {
		return false
	}
	return dialect.MatchFilter(f, schema, name, table)
}
