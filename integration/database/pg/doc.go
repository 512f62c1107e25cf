// Package pg provides the PostgreSQL connection pool, schema migrations and a
// Postgres-backed session store.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, log); err != nil {
//		return err
//	}
//	store := pg.NewStore(pool)
//
// Migrations are embedded in the binary and applied with goose through the
// pgx database/sql adapter. Postgres has no native row TTL, so expired rows are
// hidden on read and purged by Store.DeleteExpired, usually driven by
// session.Cleanup.
package pg
