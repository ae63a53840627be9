package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestSQLiteMigrateAndSeed(t *testing.T) {
	ctx := context.Background()
	st, err := NewSQLite(ctx, filepath.Join(t.TempDir(), "rtfilms.db"), Options{Logger: zaptest.NewLogger(t)})
	require.NoError(t, err)
	t.Cleanup(st.Close)

	require.NoError(t, st.HealthCheck(ctx))
	require.NoError(t, st.Migrate(ctx))
	// migrations and seeds are idempotent
	require.NoError(t, st.Migrate(ctx))
	require.NoError(t, st.Seed(ctx))
	require.NoError(t, st.Seed(ctx))

	var films, reviews int
	require.NoError(t, st.DB().QueryRowContext(ctx, `SELECT COUNT(*) FROM films`).Scan(&films))
	require.NoError(t, st.DB().QueryRowContext(ctx, `SELECT COUNT(*) FROM reviews WHERE film_code = 'PB1987'`).Scan(&reviews))
	assert.Equal(t, 1, films)
	assert.Equal(t, 2, reviews)
}

func TestSQLiteForeignKeys(t *testing.T) {
	ctx := context.Background()
	st, err := NewSQLite(ctx, ":memory:", Options{})
	require.NoError(t, err)
	t.Cleanup(st.Close)
	require.NoError(t, st.Migrate(ctx))

	_, err = st.DB().ExecContext(ctx, `INSERT INTO reviews (film_code, reviewer) VALUES ('NOPE', 'Nobody')`)
	assert.Error(t, err, "review for unknown film must be rejected")
}

func TestSQLiteTitleKeyFunction(t *testing.T) {
	ctx := context.Background()
	st, err := NewSQLite(ctx, ":memory:", Options{})
	require.NoError(t, err)
	t.Cleanup(st.Close)

	var key string
	require.NoError(t, st.DB().QueryRowContext(ctx, `SELECT title_key(?)`, "Le Fabuleux  Destin d'AMÉLIE").Scan(&key))
	assert.Equal(t, "lefabuleuxdestind'amélie", key)

	var null sql.NullString
	require.NoError(t, st.DB().QueryRowContext(ctx, `SELECT title_key(NULL)`).Scan(&null))
	assert.False(t, null.Valid)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "mysql", "whatever", Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mysql")
}

func TestOpenSQLiteDialect(t *testing.T) {
	h, err := Open(context.Background(), DialectSQLite, ":memory:", Options{})
	require.NoError(t, err)
	t.Cleanup(h.Close)
	assert.Equal(t, DialectSQLite, h.Dialect())
}

func TestMigrationScriptsOrdered(t *testing.T) {
	for _, dialect := range []string{DialectPostgres, DialectSQLite} {
		scripts := migrationScripts(dialect)
		require.Len(t, scripts, 2, dialect)
		assert.Equal(t, "migrations/"+dialect+"/0001_films.up.sql", scripts[0].name)
		assert.Equal(t, "migrations/"+dialect+"/0002_reviews.up.sql", scripts[1].name)
	}
	assert.NotEmpty(t, seedScripts())
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "a.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", sqliteDSN("a.db"))
	assert.Equal(t, "file:a.db?mode=ro&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", sqliteDSN("file:a.db?mode=ro"))
}

func TestNilHandles(t *testing.T) {
	var pg *Postgres
	var lite *SQLite
	pg.Close()
	lite.Close()
	assert.Error(t, pg.HealthCheck(context.Background()))
	assert.Error(t, lite.HealthCheck(context.Background()))
	assert.Nil(t, pg.Stats())
}
