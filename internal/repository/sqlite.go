package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Clark-Hu/rtfilms/internal/domain"
)

type liteFilms struct {
	db  *sql.DB
	log *zap.Logger
}

func (r *liteFilms) FindByTitleKey(ctx context.Context, key string) (domain.Film, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM films
        WHERE title_key(title) = ?
        ORDER BY film_code
        LIMIT 1
    `, filmColumns)
	return r.findOne(ctx, query, key)
}

func (r *liteFilms) FindByCode(ctx context.Context, code string) (domain.Film, error) {
	query := fmt.Sprintf(`SELECT %s FROM films WHERE film_code = ?`, filmColumns)
	return r.findOne(ctx, query, code)
}

func (r *liteFilms) findOne(ctx context.Context, query, arg string) (domain.Film, error) {
	film, err := scanFilm(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Film{}, ErrNotFound
		}
		r.log.Error("Failed to find film", zap.Error(err), zap.String("key", arg))
		return domain.Film{}, fmt.Errorf("find film %q: %w", arg, err)
	}
	return film, nil
}

type liteReviews struct {
	db  *sql.DB
	log *zap.Logger
}

func (r *liteReviews) ListByFilmCode(ctx context.Context, code string) ([]domain.Review, error) {
	query := fmt.Sprintf(`SELECT %s FROM reviews WHERE film_code = ? ORDER BY id`, reviewColumns)
	rows, err := r.db.QueryContext(ctx, query, code)
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
