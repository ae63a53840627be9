package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"modernc.org/sqlite"

	"github.com/Clark-Hu/rtfilms/internal/domain"
)

// TitleKeyFunc is the SQL function computing domain.TitleKey inside SQLite,
// whose own LOWER only folds ASCII.
const TitleKeyFunc = "title_key"

func init() {
	sqlite.MustRegisterDeterministicScalarFunction(TitleKeyFunc, 1, titleKey)
}

func titleKey(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return domain.TitleKey(v), nil
	case []byte:
		return domain.TitleKey(string(v)), nil
	default:
		return nil, fmt.Errorf("%s: unsupported argument %T", TitleKeyFunc, v)
	}
}

// SQLite is a database/sql handle on a SQLite file (or ":memory:").
type SQLite struct {
	db     *sql.DB
	logger *zap.Logger
	opts   Options
}

// NewSQLite opens path with foreign keys enforced and pings it.
func NewSQLite(ctx context.Context, path string, opts Options) (*SQLite, error) {
	logger := opts.logger().With(zap.String("component", "store"), zap.String("dialect", DialectSQLite))

	db, err := sql.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if opts.MaxConns > 0 {
		db.SetMaxOpenConns(int(opts.MaxConns))
	}
	if opts.MaxConnIdleTime > 0 {
		db.SetConnMaxIdleTime(opts.MaxConnIdleTime)
	}
	if opts.MaxConnLifetime > 0 {
		db.SetConnMaxLifetime(opts.MaxConnLifetime)
	}
	if isMemory(path) {
		// every new connection would get its own empty in-memory database
		db.SetMaxOpenConns(1)
		db.SetConnMaxIdleTime(0)
		db.SetConnMaxLifetime(0)
	}

	pingCtx := ctx
	if opts.ConnTimeout > 0 {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, opts.ConnTimeout)
		defer cancel()
	}
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	logger.Info("database opened", zap.String("path", path))
	return &SQLite{db: db, logger: logger, opts: opts}, nil
}

func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

func isMemory(path string) bool {
	return path == ":memory:" || strings.Contains(path, "mode=memory")
}

func (s *SQLite) Dialect() string { return DialectSQLite }

// Close releases the database handle.
func (s *SQLite) Close() {
	if s == nil || s.db == nil {
		return
	}
	s.logger.Info("closing database")
	if err := s.db.Close(); err != nil {
		s.logger.Warn("close sqlite", zap.Error(err))
	}
}

// HealthCheck verifies the database is reachable.
func (s *SQLite) HealthCheck(ctx context.Context) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("store not initialized")
	}
	return s.db.PingContext(ctx)
}

// Migrate applies the embedded sqlite migrations in order.
func (s *SQLite) Migrate(ctx context.Context) error {
	return applyScripts(ctx, migrationScripts(DialectSQLite), s.exec, s.logger)
}

// Seed loads the fixture films and reviews. Rows already present are left alone.
func (s *SQLite) Seed(ctx context.Context) error {
	return applyScripts(ctx, seedScripts(), s.exec, s.logger)
}

func (s *SQLite) exec(ctx context.Context, query string) error {
	_, err := s.db.ExecContext(ctx, query)
	return err
}

// DB exposes the underlying handle for repositories.
func (s *SQLite) DB() *sql.DB {
	return s.db
}
