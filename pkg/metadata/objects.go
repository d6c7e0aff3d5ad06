package metadata

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/leapstack-labs/dbmeta/pkg/core"
)

type tableKey struct {
	schema string
	table  string
}

// objectRecords lists the visible rows of kind. Only indexes are filtered by
// table.
func (i *Inspector) objectRecords(ctx context.Context, conn *sqlx.Conn, kind core.ObjectKind, f core.Filter) ([]record, error) {
	if i.pseudoMismatch(f) {
		return nil, nil
	}
	if kind != core.KindIndex {
		f.Table = ""
	}
	q, _ := i.d.Query(kind)
	recs, err := i.query(ctx, conn, kind.String()+"s", q, f)
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(recs, func(r record) bool {
		return !i.visible(f, r.str("schema_name"), r.str("object_name"), r.str("table_name"))
	}), nil
}

func (i *Inspector) object(r record, f core.Filter, kind core.ObjectKind) core.Object {
	return core.Object{
		CatalogName: i.catalogOf(r, f),
		SchemaName:  r.str("schema_name"),
		ObjectName:  r.str("object_name"),
		ObjectType:  kind.SQLKeyword(),
		CreateTime:  r.time("create_time"),
		LastDDLTime: r.time("last_ddl_time"),
	}
}

func objectRef(o core.Object) core.ObjectRef { return o.Ref() }

func newTableHandler(i *Inspector) *handler[core.Table] {
	return &handler[core.Table]{
		i:    i,
		kind: core.KindTable,
		load: func(ctx context.Context, conn *sqlx.Conn, f core.Filter) ([]core.Table, error) {
			recs, err := i.objectRecords(ctx, conn, core.KindTable, f)
			if err != nil {
				return nil, err
			}
			out := make([]core.Table, 0, len(recs))
			for _, r := range recs {
				out = append(out, core.Table{
					Object:         i.object(r, f, core.KindTable),
					Remark:         r.str("remark"),
					RowCount:       r.int64("row_count"),
					DataBytes:      r.int64("data_bytes"),
					LastAccessTime: r.time("last_access_time"),
				})
			}
			return out, nil
		},
		details: i.tableDetails,
		ref:     func(t core.Table) core.ObjectRef { return objectRef(t.Object) },
		create:  i.gen.CreateTable,
	}
}

// tableDetails loads columns, keys and indexes of every listed table with one
// query each and distributes them by (schema, table).
func (i *Inspector) tableDetails(ctx context.Context, conn *sqlx.Conn, f core.Filter, tables []core.Table) error {
	df := core.Filter{Catalog: f.Catalog, Schema: f.Schema, Table: f.Name}

	cols, _, err := i.columnsByTable(ctx, conn, df)
	if err != nil {
		return err
	}
	pks, err := i.primaryKeys(ctx, conn, df)
	if err != nil {
		return err
	}
	fks, err := i.foreignKeys(ctx, conn, df)
	if err != nil {
		return err
	}
	idx, err := i.indexesByTable(ctx, conn, df)
	if err != nil {
		return err
	}

	for n := range tables {
		k := tableKey{tables[n].SchemaName, tables[n].ObjectName}
		tables[n].Columns = orEmpty(cols[k])
		tables[n].PrimaryKeys = orEmpty(pks[k])
		tables[n].ForeignKeys = orEmpty(fks[k])
		tables[n].Indexes = orEmpty(idx[k])
	}
	return nil
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func (i *Inspector) column(r record, f core.Filter) core.Column {
	c := core.Column{
		CatalogName:    i.catalogOf(r, f),
		SchemaName:     r.str("schema_name"),
		TableName:      r.str("table_name"),
		ColumnName:     r.str("column_name"),
		NativeTypeName: strings.TrimSpace(r.str("native_type")),
		Length:         r.int("type_length"),
		Precision:      r.int("type_precision"),
		Scale:          r.int("type_scale"),
		DefaultValue:   r.strPtr("default_value"),
		Ordinal:        r.int("ordinal"),
		Remark:         r.str("remark"),
		IsNullable:     r.bool("is_nullable"),
		AutoIncrement:  r.bool("auto_increment"),
	}
	c.SQLType = i.d.Types.ToType(c.NativeTypeName, c.Length, c.Precision, c.Scale)
	return c
}

// columnsByTable groups visible columns by table. f.Table selects tables and
// f.Name columns. Ordinals are renumbered 1..n over each table's full column
// set before f.Name applies, so a filtered column keeps its position. The key
// slice keeps the order tables first appeared in.
func (i *Inspector) columnsByTable(ctx context.Context, conn *sqlx.Conn, f core.Filter) (map[tableKey][]core.Column, []tableKey, error) {
	if i.pseudoMismatch(f) {
		return nil, nil, nil
	}
	tf := f
	tf.Name = ""
	q, _ := i.d.Query(core.KindColumn)
	recs, err := i.query(ctx, conn, "columns", q, tf)
	if err != nil {
		return nil, nil, err
	}

	all := map[tableKey][]core.Column{}
	var seen []tableKey
	for _, r := range recs {
		c := i.column(r, f)
		if !i.visible(tf, c.SchemaName, c.ColumnName, c.TableName) {
			continue
		}
		k := tableKey{c.SchemaName, c.TableName}
		if _, ok := all[k]; !ok {
			seen = append(seen, k)
		}
		all[k] = append(all[k], c)
	}

	out := map[tableKey][]core.Column{}
	var order []tableKey
	for _, k := range seen {
		cols := all[k]
		slices.SortStableFunc(cols, func(a, b core.Column) int { return cmp.Compare(a.Ordinal, b.Ordinal) })
		for n := range cols {
			cols[n].Ordinal = n + 1
		}
		cols = slices.DeleteFunc(cols, func(c core.Column) bool {
			return !i.visible(f, c.SchemaName, c.ColumnName, c.TableName)
		})
		if len(cols) == 0 {
			continue
		}
		order = append(order, k)
		out[k] = cols
	}
	return out, order, nil
}

func (i *Inspector) primaryKeys(ctx context.Context, conn *sqlx.Conn, f core.Filter) (map[tableKey][]core.PrimaryKey, error) {
	recs, err := i.query(ctx, conn, "primary keys", i.d.PrimaryKeys, f)
	if err != nil {
		return nil, err
	}
	out := map[tableKey][]core.PrimaryKey{}
	for _, r := range recs {
		schema, table := r.str("schema_name"), r.str("table_name")
		if !i.visible(core.Filter{Schema: f.Schema, Table: f.Table}, schema, "", table) {
			continue
		}
		k := tableKey{schema, table}
		out[k] = append(out[k], core.PrimaryKey{
			ConstraintName: r.str("constraint_name"),
			ColumnName:     r.str("column_name"),
			Position:       r.int("key_position"),
		})
	}
	for _, keys := range out {
		slices.SortStableFunc(keys, func(a, b core.PrimaryKey) int { return cmp.Compare(a.Position, b.Position) })
	}
	return out, nil
}

func (i *Inspector) foreignKeys(ctx context.Context, conn *sqlx.Conn, f core.Filter) (map[tableKey][]core.ForeignKey, error) {
	recs, err := i.query(ctx, conn, "foreign keys", i.d.ForeignKeys, f)
	if err != nil {
		return nil, err
	}
	out := map[tableKey][]core.ForeignKey{}
	for _, r := range recs {
		schema, table := r.str("schema_name"), r.str("table_name")
		if !i.visible(core.Filter{Schema: f.Schema, Table: f.Table}, schema, "", table) {
			continue
		}
		k := tableKey{schema, table}
		out[k] = append(out[k], core.ForeignKey{
			ConstraintName:   r.str("constraint_name"),
			ColumnName:       r.str("column_name"),
			Position:         r.int("key_position"),
			ReferencedSchema: r.str("referenced_schema"),
			ReferencedTable:  r.str("referenced_table"),
			ReferencedColumn: r.str("referenced_column"),
			OnUpdate:         r.str("on_update"),
			OnDelete:         r.str("on_delete"),
		})
	}
	for _, keys := range out {
		slices.SortStableFunc(keys, func(a, b core.ForeignKey) int {
			return cmp.Or(cmp.Compare(a.ConstraintName, b.ConstraintName), cmp.Compare(a.Position, b.Position))
		})
	}
	return out, nil
}

type indexKey struct {
	schema, table, name string
}

type keyPart struct {
	position int
	column   string
}

// loadIndexes folds one-row-per-key-column results into indexes with an
// ordered, comma-joined column list.
func (i *Inspector) loadIndexes(ctx context.Context, conn *sqlx.Conn, f core.Filter) ([]core.Index, error) {
	recs, err := i.objectRecords(ctx, conn, core.KindIndex, f)
	if err != nil {
		return nil, err
	}

	type group struct {
		idx   core.Index
		parts []keyPart
	}
	groups := map[indexKey]*group{}
	var order []indexKey
	for _, r := range recs {
		k := indexKey{r.str("schema_name"), r.str("table_name"), r.str("object_name")}
		g, ok := groups[k]
		if !ok {
			g = &group{idx: core.Index{
				Object:     i.object(r, f, core.KindIndex),
				TableName:  k.table,
				IndexType:  r.str("index_type"),
				IsUnique:   r.bool("is_unique"),
				IsPrimary:  r.bool("is_primary"),
				IndexBytes: r.int64("index_bytes"),
			}}
			groups[k] = g
			order = append(order, k)
		}
		if col := strings.TrimSpace(r.str("column_name")); col != "" {
			g.parts = append(g.parts, keyPart{r.int("key_position"), col})
		}
	}

	out := make([]core.Index, 0, len(order))
	for _, k := range order {
		g := groups[k]
		slices.SortStableFunc(g.parts, func(a, b keyPart) int { return cmp.Compare(a.position, b.position) })
		cols := make([]string, len(g.parts))
		for n, p := range g.parts {
			cols[n] = p.column
		}
		g.idx.Columns = strings.Join(cols, ",")
		out = append(out, g.idx)
	}
	return out, nil
}

func (i *Inspector) indexesByTable(ctx context.Context, conn *sqlx.Conn, f core.Filter) (map[tableKey][]core.Index, error) {
	idx, err := i.loadIndexes(ctx, conn, f)
	if err != nil {
		return nil, err
	}
	out := map[tableKey][]core.Index{}
	for _, x := range idx {
		k := tableKey{x.SchemaName, x.TableName}
		out[k] = append(out[k], x)
	}
	return out, nil
}

func newIndexHandler(i *Inspector) *handler[core.Index] {
	return &handler[core.Index]{
		i:    i,
		kind: core.KindIndex,
		load: i.loadIndexes,
		ref: func(x core.Index) core.ObjectRef {
			ref := x.Ref()
			ref.TableName = x.TableName
			return ref
		},
		create: i.gen.CreateIndex,
	}
}

func newViewHandler(i *Inspector) *handler[core.View] {
	return &handler[core.View]{
		i:    i,
		kind: core.KindView,
		load: func(ctx context.Context, conn *sqlx.Conn, f core.Filter) ([]core.View, error) {
			recs, err := i.objectRecords(ctx, conn, core.KindView, f)
			if err != nil {
				return nil, err
			}
			out := make([]core.View, 0, len(recs))
			for _, r := range recs {
				out = append(out, core.View{
					Object:   i.object(r, f, core.KindView),
					Remark:   r.str("remark"),
					QuerySQL: r.str("query_sql"),
				})
			}
			return out, nil
		},
		ref:    func(v core.View) core.ObjectRef { return objectRef(v.Object) },
		create: i.gen.CreateView,
	}
}

func newMaterializedViewHandler(i *Inspector) *handler[core.MaterializedView] {
	return &handler[core.MaterializedView]{
		i:    i,
		kind: core.KindMaterializedView,
		load: func(ctx context.Context, conn *sqlx.Conn, f core.Filter) ([]core.MaterializedView, error) {
			recs, err := i.objectRecords(ctx, conn, core.KindMaterializedView, f)
			if err != nil {
				return nil, err
			}
			out := make([]core.MaterializedView, 0, len(recs))
			for _, r := range recs {
				out = append(out, core.MaterializedView{
					Object:    i.object(r, f, core.KindMaterializedView),
					Remark:    r.str("remark"),
					QuerySQL:  r.str("query_sql"),
					RowCount:  r.int64("row_count"),
					DataBytes: r.int64("data_bytes"),
				})
			}
			return out, nil
		},
		ref:    func(v core.MaterializedView) core.ObjectRef { return objectRef(v.Object) },
		create: i.gen.CreateMaterializedView,
	}
}

func newForeignTableHandler(i *Inspector) *handler[core.ForeignTable] {
	return &handler[core.ForeignTable]{
		i:    i,
		kind: core.KindForeignTable,
		load: func(ctx context.Context, conn *sqlx.Conn, f core.Filter) ([]core.ForeignTable, error) {
			recs, err := i.objectRecords(ctx, conn, core.KindForeignTable, f)
			if err != nil {
				return nil, err
			}
			out := make([]core.ForeignTable, 0, len(recs))
			for _, r := range recs {
				out = append(out, core.ForeignTable{
					Object:     i.object(r, f, core.KindForeignTable),
					Remark:     r.str("remark"),
					ServerName: r.str("server_name"),
					Options:    r.str("options"),
				})
			}
			return out, nil
		},
		details: func(ctx context.Context, conn *sqlx.Conn, f core.Filter, items []core.ForeignTable) error {
			cols, _, err := i.columnsByTable(ctx, conn, core.Filter{Catalog: f.Catalog, Schema: f.Schema, Table: f.Name})
			if err != nil {
				return err
			}
			for n := range items {
				items[n].Columns = orEmpty(cols[tableKey{items[n].SchemaName, items[n].ObjectName}])
			}
			return nil
		},
		ref:    func(t core.ForeignTable) core.ObjectRef { return objectRef(t.Object) },
		create: i.gen.CreateForeignTable,
	}
}

func newSequenceHandler(i *Inspector) *handler[core.Sequence] {
	return &handler[core.Sequence]{
		i:    i,
		kind: core.KindSequence,
		load: func(ctx context.Context, conn *sqlx.Conn, f core.Filter) ([]core.Sequence, error) {
			recs, err := i.objectRecords(ctx, conn, core.KindSequence, f)
			if err != nil {
				return nil, err
			}
			out := make([]core.Sequence, 0, len(recs))
			for _, r := range recs {
				out = append(out, core.Sequence{
					Object:      i.object(r, f, core.KindSequence),
					StartValue:  r.decimal("start_value"),
					MinValue:    r.decimal("min_value"),
					MaxValue:    r.decimal("max_value"),
					IncrementBy: r.decimal("increment_by"),
					IsCycle:     r.bool("is_cycle"),
					LastValue:   r.decimal("current_value"),
					CacheSize:   r.int64("cache_size"),
				})
			}
			return out, nil
		},
		ref:    func(s core.Sequence) core.ObjectRef { return objectRef(s.Object) },
		create: i.gen.CreateSequence,
	}
}

func newFunctionHandler(i *Inspector) *handler[core.Function] {
	return &handler[core.Function]{
		i:    i,
		kind: core.KindFunction,
		load: func(ctx context.Context, conn *sqlx.Conn, f core.Filter) ([]core.Function, error) {
			recs, err := i.objectRecords(ctx, conn, core.KindFunction, f)
			if err != nil {
				return nil, err
			}
			// Rows arrive in creation order within (schema, name); overloads
			// after the first are dropped.
			seen := map[tableKey]bool{}
			out := make([]core.Function, 0, len(recs))
			for _, r := range recs {
				fn := core.Function{
					Object:     i.object(r, f, core.KindFunction),
					Remark:     r.str("remark"),
					ReturnType: r.str("return_type"),
					Language:   r.str("language"),
					SourceCode: r.str("source_code"),
				}
				k := tableKey{fn.SchemaName, fn.ObjectName}
				if seen[k] {
					continue
				}
				seen[k] = true
				out = append(out, fn)
			}
			return out, nil
		},
		complete: func(ctx context.Context, conn *sqlx.Conn, fn *core.Function) error {
			nd, ok := i.d.NativeDDL[core.KindFunction]
			if fn.SourceCode != "" || !ok || nd.Build == nil {
				return nil
			}
			src, err := i.nativeDDL(ctx, conn, core.KindFunction, nd, fn.Ref())
			if err != nil {
				i.logger.Debug("function source unavailable",
					slog.String("function", fn.ObjectName), slog.String("error", err.Error()))
				return nil
			}
			fn.SourceCode = src
			return nil
		},
		ref:    func(fn core.Function) core.ObjectRef { return objectRef(fn.Object) },
		create: i.gen.CreateFunction,
	}
}
