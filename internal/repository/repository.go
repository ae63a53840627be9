package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Clark-Hu/rtfilms/internal/domain"
	"github.com/Clark-Hu/rtfilms/internal/store"
)

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("repository: not found")

// FilmRepository looks up single films.
type FilmRepository interface {
	// FindByTitleKey matches key against domain.TitleKey of the stored title.
	FindByTitleKey(ctx context.Context, key string) (domain.Film, error)
	FindByCode(ctx context.Context, code string) (domain.Film, error)
}

// ReviewRepository lists reviews of a film in insertion order.
type ReviewRepository interface {
	ListByFilmCode(ctx context.Context, code string) ([]domain.Review, error)
}

// Repository aggregates all domain-specific repositories.
type Repository struct {
	Films   FilmRepository
	Reviews ReviewRepository
}

// New constructs a Repository backed by the provided store handle.
func New(h store.Handle, log *zap.Logger) (*Repository, error) {
	switch st := h.(type) {
	case *store.Postgres:
		return NewWithPool(st.Pool(), log), nil
	case *store.SQLite:
		return NewWithDB(st.DB(), log), nil
	default:
		return nil, fmt.Errorf("repository: unsupported store %T", h)
	}
}

// NewWithPool allows constructing repositories directly from a pgx pool.
func NewWithPool(pool *pgxpool.Pool, log *zap.Logger) *Repository {
	log = named(log)
	return &Repository{
		Films:   &pgFilms{pool: pool, log: log.With(zap.String("repository", "film"))},
		Reviews: &pgReviews{pool: pool, log: log.With(zap.String("repository", "review"))},
	}
}

// NewWithDB allows constructing repositories directly from a SQLite handle.
func NewWithDB(db *sql.DB, log *zap.Logger) *Repository {
	log = named(log)
	return &Repository{
		Films:   &liteFilms{db: db, log: log.With(zap.String("repository", "film"))},
		Reviews: &liteReviews{db: db, log: log.With(zap.String("repository", "review"))},
	}
}

func named(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}
