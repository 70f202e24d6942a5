// Package pg bootstraps PostgreSQL access on top of pgx/v5.
//
// Connect opens a *pgxpool.Pool from an environment-driven Config and retries
// until the server answers a ping. Migrate runs goose migrations from an
// fs.FS against the same pool, so storage packages can ship their schema
// with go:embed. Check adapts the pool to a readiness probe.
//
//	var cfg pg.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
// Error helpers such as IsUniqueViolation classify *pgconn.PgError values
// returned by queries.
package pg
