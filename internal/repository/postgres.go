package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Clark-Hu/rtfilms/internal/domain"
)

type pgFilms struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

func (r *pgFilms) FindByTitleKey(ctx context.Context, key string) (domain.Film, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM films
        WHERE LOWER(REPLACE(title, ' ', '')) = $1
        ORDER BY film_code
        LIMIT 1
    `, filmColumns)
	return r.findOne(ctx, query, key)
}

func (r *pgFilms) FindByCode(ctx context.Context, code string) (domain.Film, error) {
	query := fmt.Sprintf(`SELECT %s FROM films WHERE film_code = $1`, filmColumns)
	return r.findOne(ctx, query, code)
}

func (r *pgFilms) findOne(ctx context.Context, query, arg string) (domain.Film, error) {
	film, err := scanFilm(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Film{}, ErrNotFound
		}
		r.log.Error("Failed to find film", zap.Error(err), zap.String("key", arg))
		return domain.Film{}, fmt.Errorf("find film %q: %w", arg, err)
	}
	return film, nil
}

type pgReviews struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

func (r *pgReviews) ListByFilmCode(ctx context.Context, code string) ([]domain.Review, error) {
	query := fmt.Sprintf(`SELECT %s FROM reviews WHERE film_code = $1 ORDER BY id`, reviewColumns)
	rows, err := r.pool.Query(ctx, query, code)
	if err != nil {
		r.log.Error("Failed to list reviews", zap.Error(err), zap.String("film_code", code))
		return nil, fmt.Errorf("list reviews for %s: %w", code, err)
	}
	defer rows.Close()

	reviews := make([]domain.Review, 0)
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}

	r.log.Debug("Reviews found", zap.String("film_code", code), zap.Int("count", len(reviews)))
	return reviews, nil
}
