package metadata

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/leapstack-labs/dbmeta/pkg/core"
	"github.com/leapstack-labs/dbmeta/pkg/dialect"
)

// CatalogHandler lists catalogs.
type CatalogHandler struct {
	i *Inspector
}

// List returns the visible catalogs. Engines without catalogs report one
// pseudo-catalog named after the configured database; f.Catalog selects by
// exact name or pattern.
func (h *CatalogHandler) List(ctx context.Context, f core.Filter) ([]core.Catalog, error) {
	i := h.i
	if i.d.Catalogs == dialect.CatalogPseudo && i.params.Database != "" {
		if i.pseudoMismatch(f) {
			return []core.Catalog{}, nil
		}
		return []core.Catalog{{CatalogName: i.params.Database}}, nil
	}

	out := []core.Catalog{}
	err := i.withConn(ctx, func(conn *sqlx.Conn) error {
		var qf core.Filter
		if i.d.Catalogs == dialect.CatalogCurrent {
			qf.Catalog = f.Catalog
		}
		q, _ := i.d.Query(core.KindCatalog)
		recs, err := i.query(ctx, conn, "catalogs", q, qf)
		if err != nil {
			return err
		}
		for _, r := range recs {
			name := r.str("catalog_name")
			if name == "" || !dialect.Pattern(f.Catalog).Match(name) {
				continue
			}
			out = append(out, core.Catalog{CatalogName: name})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SchemaHandler lists schemas.
type SchemaHandler struct {
	i *Inspector
}

// List returns the non-system schemas of f.Catalog (or the current catalog)
// matching f.Schema.
func (h *SchemaHandler) List(ctx context.Context, f core.Filter) ([]core.Schema, error) {
	i := h.i
	out := []core.Schema{}
	if i.pseudoMismatch(f) {
		return out, nil
	}
	err := i.withConn(ctx, func(conn *sqlx.Conn) error {
		qf := core.Filter{Catalog: f.Catalog, Schema: f.Schema}
		q, _ := i.d.Query(core.KindSchema)
		recs, err := i.query(ctx, conn, "schemas", q, qf)
		if err != nil {
			return err
		}
		for _, r := range recs {
			schema := r.str("schema_name")
			if schema == "" || !i.visible(qf, schema, "", "") {
				continue
			}
			out = append(out, core.Schema{CatalogName: i.catalogOf(r, f), SchemaName: schema})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ColumnHandler lists columns across tables.
type ColumnHandler struct {
	i *Inspector
}

// List returns the columns of every table matching f.Table whose name
// matches f.Name, grouped by table. Ordinals count every column of the table,
// so filtered output keeps each column's position.
func (h *ColumnHandler) List(ctx context.Context, f core.Filter) ([]core.Column, error) {
	i := h.i
	out := []core.Column{}
	err := i.withConn(ctx, func(conn *sqlx.Conn) error {
		byTable, order, err := i.columnsByTable(ctx, conn, f)
		if err != nil {
			return err
		}
		for _, k := range order {
			out = append(out, byTable[k]...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
