package repository

import (
	"github.com/Clark-Hu/rtfilms/internal/domain"
)

const filmColumns = `
    film_code,
    title,
    year,
    score,
    director,
    starring,
    genre,
    runtime,
    box_office,
    synopsis,
    mpaa_rating,
    release_date,
    links
`

const reviewColumns = `film_code, reviewer, publication, review_text, score, rating`

// rowScanner is satisfied by pgx.Row, pgx.Rows, *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanFilm(row rowScanner) (domain.Film, error) {
	var film domain.Film
	err := row.Scan(
		&film.Code,
		&film.Title,
		&film.Year,
		&film.Score,
		&film.Director,
		&film.Starring,
		&film.Genre,
		&film.Runtime,
		&film.BoxOffice,
		&film.Synopsis,
		&film.MpaaRating,
		&film.ReleaseDate,
		&film.Links,
	)
	if err != nil {
		return domain.Film{}, err
	}
	return film, nil
}

func scanReview(row rowScanner) (domain.Review, error) {
	var review domain.Review
	err := row.Scan(
		&review.FilmCode,
		&review.Reviewer,
		&review.Publication,
		&review.Text,
		&review.Score,
		&review.Label,
	)
	if err != nil {
		return domain.Review{}, err
	}
	return review, nil
}
