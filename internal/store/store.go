package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Options controls connection-pool behaviour.
type Options struct {
	MaxConns               int32
	MinConns               int32
	MaxConnIdleTime        time.Duration
	MaxConnLifetime        time.Duration
	ConnTimeout            time.Duration
	StatementCacheCapacity int
	Logger                 *zap.Logger
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// Handle is a process-lifetime database handle, acquired once at startup and
// released with Close on shutdown.
type Handle interface {
	Dialect() string
	HealthCheck(ctx context.Context) error
	Migrate(ctx context.Context) error
	Seed(ctx context.Context) error
	Close()
}

// Open dispatches on driver ("postgres" or "sqlite").
func Open(ctx context.Context, driver, dbURL string, opts Options) (Handle, error) {
	switch driver {
	case DialectPostgres:
		pg, err := NewPostgres(ctx, dbURL, opts)
		if err != nil {
			return nil, err
		}
		return pg, nil
	case DialectSQLite:
		lite, err := NewSQLite(ctx, dbURL, opts)
		if err != nil {
			return nil, err
		}
		return lite, nil
	default:
		return nil, fmt.Errorf("unsupported db driver %q", driver)
	}
}

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// Postgres hides direct access to the underlying connection pool so higher
// layers can focus on the lookups.
type Postgres struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
	opts   Options
}

// NewPostgres initializes a connection pool and validates connectivity with Ping.
func NewPostgres(ctx context.Context, dbURL string, opts Options) (*Postgres, error) {
	logger := opts.logger().With(zap.String("component", "store"), zap.String("dialect", DialectPostgres))
	logger.Info("initializing connection pool",
		zap.Int32("max_conns", opts.MaxConns),
		zap.Int32("min_conns", opts.MinConns),
		zap.Duration("max_idle", opts.MaxConnIdleTime),
		zap.Duration("max_life", opts.MaxConnLifetime),
		zap.Int("stmt_cache", opts.StatementCacheCapacity),
	)

	cfg, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("parse db url: %w", err)
	}

	if opts.MaxConns > 0 {
		cfg.MaxConns = opts.MaxConns
	}
	if opts.MinConns > 0 {
		cfg.MinConns = opts.MinConns
	}
	if opts.MaxConnIdleTime > 0 {
		cfg.MaxConnIdleTime = opts.MaxConnIdleTime
	}
	if opts.MaxConnLifetime > 0 {
		cfg.MaxConnLifetime = opts.MaxConnLifetime
	}
	if opts.StatementCacheCapacity > 0 {
		cfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheStatement
		cfg.ConnConfig.StatementCacheCapacity = opts.StatementCacheCapacity
	}

	connCtx := ctx
	if opts.ConnTimeout > 0 {
		var cancel context.CancelFunc
		connCtx, cancel = context.WithTimeout(ctx, opts.ConnTimeout)
		defer cancel()
	}

	pool, err := pgxpool.NewWithConfig(connCtx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := pool.Ping(connCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	logger.Info("database connection established")

	return &Postgres{pool: pool, logger: logger, opts: opts}, nil
}

// NewPostgresWithPool wraps an already connected pool.
func NewPostgresWithPool(pool *pgxpool.Pool, logger *zap.Logger) *Postgres {
	opts := Options{Logger: logger}
	return &Postgres{pool: pool, logger: opts.logger(), opts: opts}
}

func (s *Postgres) Dialect() string { return DialectPostgres }

// Close releases database resources.
func (s *Postgres) Close() {
	if s == nil || s.pool == nil {
		return
	}
	s.logger.Info("closing connection pool")
	s.pool.Close()
}

// HealthCheck verifies the database is reachable.
func (s *Postgres) HealthCheck(ctx context.Context) error {
	if s == nil || s.pool == nil {
		return fmt.Errorf("store not initialized")
	}
	checkCtx := ctx
	if s.opts.ConnTimeout > 0 {
		var cancel context.CancelFunc
		checkCtx, cancel = context.WithTimeout(ctx, s.opts.ConnTimeout)
		defer cancel()
	}
	return s.pool.Ping(checkCtx)
}

// Migrate applies the embedded postgres migrations in order.
func (s *Postgres) Migrate(ctx context.Context) error {
	return applyScripts(ctx, migrationScripts(DialectPostgres), s.exec, s.logger)
}

// Seed loads the fixture films and reviews. Rows already present are left alone.
func (s *Postgres) Seed(ctx context.Context) error {
	return applyScripts(ctx, seedScripts(), s.exec, s.logger)
}

func (s *Postgres) exec(ctx context.Context, sql string) error {
	_, err := s.pool.Exec(ctx, sql)
	return err
}

// Pool exposes the underlying pgx pool for repositories.
func (s *Postgres) Pool() *pgxpool.Pool {
	return s.pool
}

// Stats exposes pgxpool statistics for observability.
func (s *Postgres) Stats() *pgxpool.Stat {
	if s == nil || s.pool == nil {
		return nil
	}
	return s.pool.Stat()
}
