package metadata

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/dbmeta/internal/testutil"
	"github.com/leapstack-labs/dbmeta/pkg/core"
	"github.com/leapstack-labs/dbmeta/pkg/dialect"
	"github.com/leapstack-labs/dbmeta/pkg/dialects/mssql"
	"github.com/leapstack-labs/dbmeta/pkg/dialects/mysql"
	"github.com/leapstack-labs/dbmeta/pkg/dialects/oracle"
	"github.com/leapstack-labs/dbmeta/pkg/dialects/postgres"
	"github.com/leapstack-labs/dbmeta/pkg/plugin"
	"github.com/leapstack-labs/dbmeta/pkg/types"
)

func newInspector(t *testing.T, d *dialect.Dialect, database string) (*Inspector, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	p, err := plugin.NewBase(plugin.Config{
		Key:        d.Key.PluginKey(),
		Dialect:    d,
		Params:     core.ConnectionParams{Host: "db", Database: database, User: "u", Password: "secret"},
		URL:        "test://db",
		DriverName: "sqlmock",
		Open:       func() (*sql.DB, error) { return db, nil },
	}, testutil.NewTestLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })

	return NewInspector(p, testutil.NewTestLogger(t)), mock
}

func q(s string) string { return regexp.QuoteMeta(s) }

func TestTables_ListDetailsPostgres(t *testing.T) {
	insp, mock := newInspector(t, postgres.Postgres, "shop")
	ctx := context.Background()

	mock.ExpectQuery(q("FROM pg_catalog.pg_class c")).
		WithArgs("public").
		WillReturnRows(sqlmock.NewRows([]string{"catalog_name", "schema_name", "object_name", "remark", "row_count", "data_bytes", "last_ddl_time"}).
			AddRow("shop", "public", "users", "people", int64(10), int64(8192), nil))
	mock.ExpectQuery(q("FROM pg_catalog.pg_attribute a")).
		WithArgs("public").
		WillReturnRows(sqlmock.NewRows([]string{"catalog_name", "schema_name", "table_name", "column_name", "native_type", "ordinal", "is_nullable", "default_value", "remark", "auto_increment"}).
			AddRow("shop", "public", "users", "name", "character varying(50)", int64(3), true, nil, "display name", false).
			AddRow("shop", "public", "users", "id", "integer", int64(1), false, "nextval('users_id_seq'::regclass)", nil, true))
	mock.ExpectQuery(q("con.contype = 'p'")).
		WithArgs("public").
		WillReturnRows(sqlmock.NewRows([]string{"schema_name", "table_name", "constraint_name", "column_name", "key_position"}).
			AddRow("public", "users", "users_pkey", "id", int64(1)))
	mock.ExpectQuery(q("con.contype = 'f'")).
		WithArgs("public").
		WillReturnRows(sqlmock.NewRows([]string{"schema_name", "table_name", "constraint_name", "column_name", "key_position"}))
	mock.ExpectQuery(q("FROM pg_catalog.pg_index i")).
		WithArgs("public").
		WillReturnRows(sqlmock.NewRows([]string{"catalog_name", "schema_name", "object_name", "table_name", "index_type", "is_unique", "is_primary", "column_name", "key_position", "index_bytes"}).
			AddRow("shop", "public", "users_pkey", "users", "btree", true, true, "id", int64(1), int64(16384)).
			AddRow("shop", "public", "users_name_idx", "users", "btree", false, false, "lower(name)", int64(2), int64(8192)).
			AddRow("shop", "public", "users_name_idx", "users", "btree", false, false, "id", int64(1), int64(8192)))

	tables, err := insp.Tables().ListDetails(ctx, core.Filter{Schema: "public"})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
	require.Len(t, tables, 1)

	tbl := tables[0]
	assert.Equal(t, "shop", tbl.CatalogName)
	assert.Equal(t, "TABLE", tbl.ObjectType)
	assert.Equal(t, "people", tbl.Remark)
	assert.Equal(t, int64(10), tbl.RowCount)
	assert.Nil(t, tbl.LastDDLTime)

	require.Len(t, tbl.Columns, 2)
	assert.Equal(t, "id", tbl.Columns[0].ColumnName)
	assert.Equal(t, 1, tbl.Columns[0].Ordinal)
	assert.True(t, tbl.Columns[0].AutoIncrement)
	assert.Equal(t, "name", tbl.Columns[1].ColumnName)
	assert.Equal(t, 2, tbl.Columns[1].Ordinal)
	assert.Equal(t, types.VarcharOf(50), tbl.Columns[1].SQLType)
	assert.Nil(t, tbl.Columns[1].DefaultValue)

	assert.Equal(t, "users_pkey", tbl.PrimaryKeyName())
	assert.NotNil(t, tbl.ForeignKeys)
	assert.Empty(t, tbl.ForeignKeys)

	require.Len(t, tbl.Indexes, 2)
	assert.True(t, tbl.Indexes[0].IsPrimary)
	assert.Equal(t, "id,lower(name)", tbl.Indexes[1].Columns)

	ddl, err := insp.Generator().CreateTable(tbl)
	require.NoError(t, err)
	assert.Contains(t, ddl, "  id serial NOT NULL,\n")
	assert.Contains(t, ddl, "CREATE INDEX users_name_idx ON public.users USING btree (id, lower(name));")
}

func TestTables_ListAppliesPatternsAndSystemSchemas(t *testing.T) {
	insp, mock := newInspector(t, postgres.Postgres, "shop")

	mock.ExpectQuery(q("FROM pg_catalog.pg_class c")).
		WillReturnRows(sqlmock.NewRows([]string{"catalog_name", "schema_name", "object_name"}).
			AddRow("shop", "pg_catalog", "users_internal").
			AddRow("shop", "public", "orders").
			AddRow("shop", "public", "users").
			AddRow("shop", "sales", "users_archive"))

	refs, err := insp.Tables().List(context.Background(), core.Filter{Name: "users%"})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, []core.ObjectRef{
		{CatalogName: "shop", SchemaName: "public", ObjectName: "users"},
		{CatalogName: "shop", SchemaName: "sales", ObjectName: "users_archive"},
	}, refs)
}

func TestGetDetail_NotFound(t *testing.T) {
	insp, mock := newInspector(t, postgres.Postgres, "shop")

	mock.ExpectQuery(q("c.relkind = 'v'")).
		WithArgs("public", "missing").
		WillReturnRows(sqlmock.NewRows([]string{"schema_name", "object_name"}))

	v, ok, err := insp.Views().GetDetail(context.Background(), core.ObjectRef{SchemaName: "public", ObjectName: "missing"})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v.ObjectName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListDetails_EmptyIsNotNil(t *testing.T) {
	insp, mock := newInspector(t, postgres.Postgres, "shop")

	mock.ExpectQuery(q("FROM pg_catalog.pg_sequences s")).
		WillReturnRows(sqlmock.NewRows([]string{"schema_name", "object_name"}))

	seqs, err := insp.Sequences().ListDetails(context.Background(), core.Filter{})
	require.NoError(t, err)
	assert.NotNil(t, seqs)
	assert.Empty(t, seqs)
}

func TestFunctions_FirstOverloadWins(t *testing.T) {
	insp, mock := newInspector(t, postgres.Postgres, "shop")

	mock.ExpectQuery(q("FROM pg_catalog.pg_proc p")).
		WillReturnRows(sqlmock.NewRows([]string{"schema_name", "object_name", "return_type", "source_code"}).
			AddRow("public", "add", "integer", "CREATE FUNCTION add(a int, b int) ...").
			AddRow("public", "add", "bigint", "CREATE FUNCTION add(a bigint, b bigint) ...").
			AddRow("public", "sub", "integer", "CREATE FUNCTION sub(a int, b int) ..."))

	fns, err := insp.Functions().ListDetails(context.Background(), core.Filter{})
	require.NoError(t, err)
	require.Len(t, fns, 2)
	assert.Equal(t, "integer", fns[0].ReturnType)
	assert.Equal(t, "sub", fns[1].ObjectName)
}

func TestCatalogs_PseudoCatalog(t *testing.T) {
	insp, mock := newInspector(t, mysql.MySQL, "shop")
	ctx := context.Background()

	cats, err := insp.Catalogs().List(ctx, core.Filter{})
	require.NoError(t, err)
	assert.Equal(t, []core.Catalog{{CatalogName: "shop"}}, cats)

	cats, err = insp.Catalogs().List(ctx, core.Filter{Catalog: "other"})
	require.NoError(t, err)
	assert.Empty(t, cats)

	refs, err := insp.Tables().List(ctx, core.Filter{Catalog: "other"})
	require.NoError(t, err)
	assert.Empty(t, refs)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSchemas_PseudoCatalogName(t *testing.T) {
	insp, mock := newInspector(t, mysql.MySQL, "shop")

	mock.ExpectQuery(q("FROM information_schema.schemata")).
		WillReturnRows(sqlmock.NewRows([]string{"schema_name"}).
			AddRow("information_schema").
			AddRow("shop").
			AddRow("crm"))

	schemas, err := insp.Schemas().List(context.Background(), core.Filter{Catalog: "SHOP"})
	require.NoError(t, err)
	assert.Equal(t, []core.Schema{
		{CatalogName: "shop", SchemaName: "shop"},
		{CatalogName: "shop", SchemaName: "crm"},
	}, schemas)
}

func TestCatalogs_CrossCatalog(t *testing.T) {
	insp, mock := newInspector(t, mssql.MSSQL, "master")
	ctx := context.Background()

	mock.ExpectQuery(q("FROM sys.databases")).
		WillReturnRows(sqlmock.NewRows([]string{"catalog_name"}).AddRow("sales").AddRow("hr"))
	mock.ExpectQuery(q("FROM [hr].sys.schemas s")).
		WillReturnRows(sqlmock.NewRows([]string{"catalog_name", "schema_name"}).
			AddRow("hr", "dbo").
			AddRow("hr", "payroll"))

	cats, err := insp.Catalogs().List(ctx, core.Filter{Catalog: "hr"})
	require.NoError(t, err)
	assert.Equal(t, []core.Catalog{{CatalogName: "hr"}}, cats)

	schemas, err := insp.Schemas().List(ctx, core.Filter{Catalog: "hr", Schema: "pay*"})
	require.NoError(t, err)
	assert.Equal(t, []core.Schema{{CatalogName: "hr", SchemaName: "payroll"}}, schemas)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSequences_OracleUppercaseAndExactBounds(t *testing.T) {
	insp, mock := newInspector(t, oracle.Oracle, "ORCL")

	mock.ExpectQuery(q("FROM all_sequences")).
		WithArgs("HR").
		WillReturnRows(sqlmock.NewRows([]string{"SCHEMA_NAME", "OBJECT_NAME", "MIN_VALUE", "MAX_VALUE", "INCREMENT_BY", "IS_CYCLE", "CURRENT_VALUE", "CACHE_SIZE"}).
			AddRow("HR", "EMP_SEQ", "1", "9999999999999999999999999999", "1", "N", "41", "20"))

	seqs, err := insp.Sequences().ListDetails(context.Background(), core.Filter{Schema: "HR"})
	require.NoError(t, err)
	require.Len(t, seqs, 1)

	s := seqs[0]
	assert.Equal(t, "ORCL", s.CatalogName)
	assert.Equal(t, "EMP_SEQ", s.ObjectName)
	assert.Equal(t, "9999999999999999999999999999", s.MaxValue.Decimal.String())
	assert.False(t, s.IsCycle)
	assert.Equal(t, "41", s.LastValue.Decimal.String())
	assert.Equal(t, int64(20), s.CacheSize)
	assert.False(t, s.StartValue.Valid)
}

func TestMissingQueryYieldsEmptyList(t *testing.T) {
	insp, mock := newInspector(t, mysql.MySQL, "shop")

	refs, err := insp.MaterializedViews().List(context.Background(), core.Filter{})
	require.NoError(t, err)
	assert.NotNil(t, refs)
	assert.Empty(t, refs)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestColumns_List(t *testing.T) {
	insp, mock := newInspector(t, mysql.MySQL, "shop")

	mock.ExpectQuery(q("FROM information_schema.columns")).
		WithArgs("shop").
		WillReturnRows(sqlmock.NewRows([]string{"schema_name", "table_name", "column_name", "native_type", "type_length", "ordinal", "is_nullable", "auto_increment"}).
			AddRow("shop", "users", "id", "int unsigned", nil, int64(1), "NO", int64(1)).
			AddRow("shop", "users", "email", "varchar(255)", int64(255), int64(2), "YES", int64(0)).
			AddRow("shop", "orders", "id", "bigint", nil, int64(1), "NO", int64(1)))

	cols, err := insp.Columns().List(context.Background(), core.Filter{Schema: "shop", Name: "*id"})
	require.NoError(t, err)
	require.Len(t, cols, 2)
	assert.Equal(t, "users", cols[0].TableName)
	assert.Equal(t, types.Of(types.IntegerUnsigned), cols[0].SQLType)
	assert.False(t, cols[0].IsNullable)
	assert.True(t, cols[0].AutoIncrement)
	assert.Equal(t, "orders", cols[1].TableName)
	assert.Equal(t, "shop", cols[1].CatalogName)
}

func TestColumns_NameFilterKeepsOrdinals(t *testing.T) {
	insp, mock := newInspector(t, mysql.MySQL, "shop")
	cols := []string{"schema_name", "table_name", "column_name", "native_type", "type_length", "ordinal", "is_nullable", "auto_increment"}

	tests := []struct {
		name    string
		pattern string
		want    string
		ordinal int
	}{
		{"pattern", "na%", "name", 3},
		{"exact name after a dropped column", "email", "email", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock.ExpectQuery(q("FROM information_schema.columns")).
				WillReturnRows(sqlmock.NewRows(cols).
					AddRow("shop", "users", "id", "int", nil, int64(1), "NO", int64(1)).
					AddRow("shop", "users", "email", "varchar(255)", int64(255), int64(3), "YES", int64(0)).
					AddRow("shop", "users", "name", "varchar(50)", int64(50), int64(4), "YES", int64(0)))

			got, err := insp.Columns().List(context.Background(), core.Filter{Table: "users", Name: tt.pattern})
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0].ColumnName)
			assert.Equal(t, tt.ordinal, got[0].Ordinal)
		})
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDrop(t *testing.T) {
	insp, mock := newInspector(t, postgres.Postgres, "shop")
	ctx := context.Background()

	mock.ExpectExec(q("DROP TABLE public.users")).WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, insp.Tables().Drop(ctx, core.ObjectRef{SchemaName: "public", ObjectName: "users"}))

	mock.ExpectExec(q("DROP VIEW public.v")).WillReturnError(errors.New(`view "v" does not exist`))
	err := insp.Views().Drop(ctx, core.ObjectRef{SchemaName: "public", ObjectName: "v"})
	var execErr *core.ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, "DATASOURCE_POSTGRESQL", execErr.Plugin)
	assert.Contains(t, err.Error(), `view "v" does not exist`)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDrop_IndexResolvesTable(t *testing.T) {
	insp, mock := newInspector(t, mysql.MySQL, "shop")

	mock.ExpectQuery(q("FROM information_schema.statistics")).
		WithArgs("shop", "ix_email").
		WillReturnRows(sqlmock.NewRows([]string{"schema_name", "object_name", "table_name", "index_type", "is_unique", "is_primary", "column_name", "key_position"}).
			AddRow("shop", "ix_email", "users", "BTREE", "YES", "NO", "email", int64(1)))
	mock.ExpectExec(q("DROP INDEX ix_email ON shop.users")).WillReturnResult(sqlmock.NewResult(0, 0))

	err := insp.Indexes().Drop(context.Background(), core.ObjectRef{SchemaName: "shop", ObjectName: "ix_email"})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDropRename_Unsupported(t *testing.T) {
	insp, mock := newInspector(t, oracle.Oracle, "ORCL")
	ctx := context.Background()

	err := insp.Views().Rename(ctx, core.ObjectRef{SchemaName: "HR", ObjectName: "V"}, "W")
	assert.ErrorIs(t, err, core.ErrUnsupportedOperation)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDrop_LogsStatement(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	logger, rec := testutil.NewRecordingLogger()
	p, err := plugin.NewBase(plugin.Config{
		Key:     postgres.Postgres.Key.PluginKey(),
		Dialect: postgres.Postgres,
		Params:  core.ConnectionParams{Database: "shop"},
		Open:    func() (*sql.DB, error) { return db, nil },
	}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })

	mock.ExpectExec(q("DROP SEQUENCE public.order_seq")).WillReturnResult(sqlmock.NewResult(0, 0))
	insp := NewInspector(p, logger)
	require.NoError(t, insp.Sequences().Drop(context.Background(), core.ObjectRef{SchemaName: "public", ObjectName: "order_seq"}))

	logged := rec.Records("executing ddl")
	require.Len(t, logged, 1)
	assert.Equal(t, "DROP SEQUENCE public.order_seq", logged[0]["statement"])
	assert.Equal(t, "drop sequence order_seq", logged[0]["op"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDropRename_OtherCatalog(t *testing.T) {
	insp, mock := newInspector(t, mssql.MSSQL, "master")
	ctx := context.Background()
	users := core.ObjectRef{CatalogName: "sales", SchemaName: "dbo", ObjectName: "users"}

	mock.ExpectExec(q("EXEC [sales].sys.sp_executesql N'DROP TABLE dbo.users'")).WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, insp.Tables().Drop(ctx, users))

	mock.ExpectExec(q("EXEC [sales].sys.sp_executesql N'EXEC sp_rename N''dbo.users'', N''people'''")).WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, insp.Tables().Rename(ctx, users, "people"))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDDL_OtherCatalogModule(t *testing.T) {
	insp, mock := newInspector(t, mssql.MSSQL, "master")

	mock.ExpectQuery(q("SELECT m.definition FROM [sales].sys.sql_modules m WHERE m.object_id = OBJECT_ID(@p1)")).
		WithArgs("[sales].[dbo].[active]").
		WillReturnRows(sqlmock.NewRows([]string{"definition"}).AddRow("CREATE VIEW dbo.active AS SELECT 1 AS x"))

	got, err := insp.Views().GetDDL(context.Background(), core.ObjectRef{CatalogName: "sales", SchemaName: "dbo", ObjectName: "active"})
	require.NoError(t, err)
	assert.Equal(t, "CREATE VIEW dbo.active AS SELECT 1 AS x;", got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRename(t *testing.T) {
	insp, mock := newInspector(t, postgres.Postgres, "shop")

	mock.ExpectExec(q("ALTER VIEW public.v RENAME TO active_users")).WillReturnResult(sqlmock.NewResult(0, 0))
	err := insp.Views().Rename(context.Background(), core.ObjectRef{SchemaName: "public", ObjectName: "v"}, "active_users")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDDL_Native(t *testing.T) {
	insp, mock := newInspector(t, mysql.MySQL, "shop")
	ctx := context.Background()

	mock.ExpectQuery(q("SHOW CREATE TABLE `shop`.`users`")).
		WillReturnRows(sqlmock.NewRows([]string{"Table", "Create Table"}).
			AddRow("users", "CREATE TABLE `users` (\n  `id` int NOT NULL\n) ENGINE=InnoDB"))

	got, err := insp.Tables().GetDDL(ctx, core.ObjectRef{SchemaName: "shop", ObjectName: "users"})
	require.NoError(t, err)
	assert.Equal(t, "CREATE TABLE `users` (\n  `id` int NOT NULL\n) ENGINE=InnoDB;", got)

	mock.ExpectQuery(q("SHOW CREATE VIEW `shop`.`gone`")).
		WillReturnRows(sqlmock.NewRows([]string{"View", "Create View"}))
	_, err = insp.Views().GetDDL(ctx, core.ObjectRef{SchemaName: "shop", ObjectName: "gone"})
	assert.ErrorIs(t, err, ErrObjectNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDDL_Assembled(t *testing.T) {
	insp, mock := newInspector(t, postgres.Postgres, "shop")

	mock.ExpectQuery(q("c.relkind = 'v'")).
		WithArgs("public", "active").
		WillReturnRows(sqlmock.NewRows([]string{"schema_name", "object_name", "query_sql"}).
			AddRow("public", "active", " SELECT id FROM users WHERE active;"))

	got, err := insp.Views().GetDDL(context.Background(), core.ObjectRef{SchemaName: "public", ObjectName: "active"})
	require.NoError(t, err)
	assert.Equal(t, "CREATE VIEW public.active AS\nSELECT id FROM users WHERE active;", got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHandlerDispatch(t *testing.T) {
	insp, _ := newInspector(t, postgres.Postgres, "shop")

	for _, kind := range core.ObjectKinds() {
		h, err := insp.Handler(kind)
		require.NoError(t, err)
		assert.Equal(t, kind, h.Kind())
	}
	_, err := insp.Handler(core.KindColumn)
	assert.Error(t, err)
}

func TestClosedPlugin(t *testing.T) {
	insp, _ := newInspector(t, postgres.Postgres, "shop")
	require.NoError(t, insp.Plugin().Close())

	_, err := insp.Tables().List(context.Background(), core.Filter{})
	assert.ErrorIs(t, err, core.ErrNotConnected)
}
