package metadata

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/leapstack-labs/dbmeta/pkg/core"
	"github.com/leapstack-labs/dbmeta/pkg/dialect"
)

// Handler is the capability set of one object kind.
type Handler[T any] interface {
	Kind() core.ObjectKind

	// List returns the address of every visible object matching f.
	List(ctx context.Context, f core.Filter) ([]core.ObjectRef, error)

	// ListDetails returns full descriptors, including children such as table
	// columns, for every visible object matching f.
	ListDetails(ctx context.Context, f core.Filter) ([]T, error)

	// GetDetail returns one descriptor. A missing object reports false, not an error.
	GetDetail(ctx context.Context, ref core.ObjectRef) (T, bool, error)

	Drop(ctx context.Context, ref core.ObjectRef) error
	Rename(ctx context.Context, ref core.ObjectRef, newName string) error

	// GetDDL returns the engine's own definition when it can produce one and
	// the assembled DDL otherwise.
	GetDDL(ctx context.Context, ref core.ObjectRef) (string, error)
}

// ObjectHandler is a Handler with the descriptor type erased, for callers
// that select the kind at runtime.
type ObjectHandler interface {
	Kind() core.ObjectKind
	List(ctx context.Context, f core.Filter) ([]core.ObjectRef, error)
	ListAny(ctx context.Context, f core.Filter) ([]any, error)
	Describe(ctx context.Context, ref core.ObjectRef) (any, bool, error)
	Drop(ctx context.Context, ref core.ObjectRef) error
	Rename(ctx context.Context, ref core.ObjectRef, newName string) error
	GetDDL(ctx context.Context, ref core.ObjectRef) (string, error)
}

type handler[T any] struct {
	i    *Inspector
	kind core.ObjectKind

	// load lists descriptors without children.
	load func(ctx context.Context, conn *sqlx.Conn, f core.Filter) ([]T, error)
	// details fills children of items in place; f is the list filter.
	details func(ctx context.Context, conn *sqlx.Conn, f core.Filter, items []T) error
	// complete fills fields that are only fetched for a single object.
	complete func(ctx context.Context, conn *sqlx.Conn, item *T) error

	ref    func(T) core.ObjectRef
	create func(T) (string, error)
}

var (
	_ Handler[core.Table] = (*handler[core.Table])(nil)
	_ ObjectHandler       = (*handler[core.Table])(nil)
)

func (h *handler[T]) Kind() core.ObjectKind { return h.kind }

func (h *handler[T]) List(ctx context.Context, f core.Filter) ([]core.ObjectRef, error) {
	refs := []core.ObjectRef{}
	err := h.i.withConn(ctx, func(conn *sqlx.Conn) error {
		items, err := h.load(ctx, conn, f)
		if err != nil {
			return err
		}
		for _, it := range items {
			refs = append(refs, h.ref(it))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return refs, nil
}

func (h *handler[T]) ListDetails(ctx context.Context, f core.Filter) ([]T, error) {
	var out []T
	err := h.i.withConn(ctx, func(conn *sqlx.Conn) error {
		items, err := h.load(ctx, conn, f)
		if err != nil {
			return err
		}
		if h.details != nil && len(items) > 0 {
			if err := h.details(ctx, conn, f, items); err != nil {
				return err
			}
		}
		out = items
		return nil
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func (h *handler[T]) ListAny(ctx context.Context, f core.Filter) ([]any, error) {
	items, err := h.ListDetails(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]any, len(items))
	for n, it := range items {
		out[n] = it
	}
	return out, nil
}

// matches reports whether got is exactly the object ref addresses. Blank
// parts of ref are not compared.
func matches(got, ref core.ObjectRef) bool {
	return got.ObjectName == ref.ObjectName &&
		(ref.SchemaName == "" || got.SchemaName == ref.SchemaName) &&
		(ref.TableName == "" || got.TableName == ref.TableName) &&
		(ref.CatalogName == "" || strings.EqualFold(got.CatalogName, ref.CatalogName))
}

func (h *handler[T]) GetDetail(ctx context.Context, ref core.ObjectRef) (T, bool, error) {
	var (
		item  T
		found bool
	)
	if ref.ObjectName == "" {
		return item, false, nil
	}
	err := h.i.withConn(ctx, func(conn *sqlx.Conn) error {
		items, err := h.load(ctx, conn, core.ForRef(ref))
		if err != nil {
			return err
		}
		for _, it := range items {
			if matches(h.ref(it), ref) {
				item, found = it, true
				break
			}
		}
		if !found {
			return nil
		}
		one := []T{item}
		if h.details != nil {
			if err := h.details(ctx, conn, core.ForRef(h.ref(item)), one); err != nil {
				return err
			}
		}
		if h.complete != nil {
			if err := h.complete(ctx, conn, &one[0]); err != nil {
				return err
			}
		}
		item = one[0]
		return nil
	})
	if err != nil {
		var zero T
		return zero, false, err
	}
	return item, found, nil
}

func (h *handler[T]) Describe(ctx context.Context, ref core.ObjectRef) (any, bool, error) {
	item, ok, err := h.GetDetail(ctx, ref)
	if err != nil || !ok {
		return nil, ok, err
	}
	return item, true, nil
}

// resolve fills the table of an index ref on engines whose index names are
// table-scoped.
func (h *handler[T]) resolve(ctx context.Context, ref core.ObjectRef) (core.ObjectRef, error) {
	if h.kind != core.KindIndex || ref.TableName != "" {
		return ref, nil
	}
	item, ok, err := h.GetDetail(ctx, ref)
	if err != nil {
		return ref, err
	}
	if !ok {
		return ref, fmt.Errorf("%s %s: %w", h.kind, ref.ObjectName, ErrObjectNotFound)
	}
	ref.TableName = h.ref(item).TableName
	return ref, nil
}

func (h *handler[T]) Drop(ctx context.Context, ref core.ObjectRef) error {
	if _, err := h.i.d.DDL.DropTemplate(h.kind); err != nil {
		return err
	}
	ref, err := h.resolve(ctx, ref)
	if err != nil {
		return err
	}
	stmt, err := h.i.gen.DropStatement(h.kind, ref)
	if err != nil {
		return err
	}
	return h.i.exec(ctx, "drop "+h.kind.String()+" "+ref.ObjectName, stmt)
}

func (h *handler[T]) Rename(ctx context.Context, ref core.ObjectRef, newName string) error {
	if _, err := h.i.d.DDL.RenameTemplate(h.kind); err != nil {
		return err
	}
	ref, err := h.resolve(ctx, ref)
	if err != nil {
		return err
	}
	stmt, err := h.i.gen.RenameStatement(h.kind, ref, newName)
	if err != nil {
		return err
	}
	return h.i.exec(ctx, "rename "+h.kind.String()+" "+ref.ObjectName, stmt)
}

func (h *handler[T]) GetDDL(ctx context.Context, ref core.ObjectRef) (string, error) {
	if nd, ok := h.i.d.NativeDDL[h.kind]; ok && nd.Build != nil {
		var text string
		err := h.i.withConn(ctx, func(conn *sqlx.Conn) error {
			var err error
			text, err = h.i.nativeDDL(ctx, conn, h.kind, nd, ref)
			return err
		})
		if err != nil {
			return "", err
		}
		return text, nil
	}

	item, ok, err := h.GetDetail(ctx, ref)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%s %s: %w", h.kind, ref.ObjectName, ErrObjectNotFound)
	}
	return h.create(item)
}

// nativeDDL runs the engine's "show create" lookup and returns the text
// terminated by a single ';'.
func (i *Inspector) nativeDDL(ctx context.Context, conn *sqlx.Conn, kind core.ObjectKind, nd dialect.NativeDDL, ref core.ObjectRef) (string, error) {
	op := "ddl " + kind.String() + " " + ref.ObjectName
	stmt, args := nd.Build(i.d, ref)
	i.logger.Debug("native ddl", slog.String("op", op))

	rows, err := conn.QueryxContext(ctx, stmt, args...)
	if err != nil {
		return "", i.execErr(op, err)
	}
	defer func() { _ = rows.Close() }()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return "", i.execErr(op, err)
		}
		return "", fmt.Errorf("%s %s: %w", kind, ref.ObjectName, ErrObjectNotFound)
	}
	vals, err := rows.SliceScan()
	if err != nil {
		return "", i.execErr(op, err)
	}
	if nd.Column >= len(vals) {
		return "", i.execErr(op, fmt.Errorf("result has %d columns, want column %d", len(vals), nd.Column))
	}

	text := strings.TrimSpace(record{"ddl": vals[nd.Column]}.str("ddl"))
	text = strings.TrimSpace(strings.TrimRight(text, "; \t\r\n"))
	if text == "" {
		return "", fmt.Errorf("%s %s: %w", kind, ref.ObjectName, ErrObjectNotFound)
	}
	return text + ";", nil
}
