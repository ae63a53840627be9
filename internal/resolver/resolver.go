// Package resolver turns a title query into the view model of a movie page:
// one film lookup, one review lookup, then presentation fields.
package resolver

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/Clark-Hu/rtfilms/internal/assets"
	"github.com/Clark-Hu/rtfilms/internal/domain"
	"github.com/Clark-Hu/rtfilms/internal/repository"
)

// DefaultFallbackPoster is used when no candidate poster exists.
const DefaultFallbackPoster = "/images/poster2.png"

// Options configures a Resolver. Zero values select title lookup,
// DefaultFallbackPoster and a no-op logger.
type Options struct {
	Mode           LookupMode
	FallbackPoster string
	Logger         *zap.Logger
}

// Resolver runs the lookup-then-join pipeline. It is safe for concurrent use.
type Resolver struct {
	films          repository.FilmRepository
	reviews        repository.ReviewRepository
	posters        assets.Locator
	mode           LookupMode
	fallbackPoster string
	log            *zap.Logger
}

// New builds a Resolver. posters may be nil, in which case every film gets
// the fallback poster.
func New(films repository.FilmRepository, reviews repository.ReviewRepository, posters assets.Locator, opts Options) *Resolver {
	r := &Resolver{
		films:          films,
		reviews:        reviews,
		posters:        posters,
		mode:           opts.Mode,
		fallbackPoster: opts.FallbackPoster,
		log:            opts.Logger,
	}
	if r.mode == "" {
		r.mode = LookupByTitle
	}
	if r.fallbackPoster == "" {
		r.fallbackPoster = DefaultFallbackPoster
	}
	if r.log == nil {
		r.log = zap.NewNop()
	}
	r.log = r.log.With(zap.String("component", "resolver"))
	return r
}

// Mode reports the configured lookup mode.
func (r *Resolver) Mode() LookupMode { return r.mode }

// Resolve looks up the film named by raw and its reviews. It returns
// ErrMissingParameter, an error matching ErrNotFound, or a *StoreError
// when the view model cannot be built.
func (r *Resolver) Resolve(ctx context.Context, raw string) (*ViewModel, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrMissingParameter
	}
	key := r.mode.key(raw)
	log := r.log.With(zap.String("query", raw), zap.String("key", key), zap.String("mode", string(r.mode)))

	film, err := r.findFilm(ctx, key)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Info("Film not found")
			return nil, ErrNotFound
		}
		log.Error("Film lookup failed", zap.Error(err))
		return nil, &StoreError{Op: "find film", Err: err}
	}

	reviews, err := r.reviews.ListByFilmCode(ctx, film.Code)
	if err != nil {
		log.Error("Review lookup failed", zap.Error(err), zap.String("film_code", film.Code))
		return nil, &StoreError{Op: "list reviews", Err: err}
	}

	vm := r.build(ctx, film, reviews)
	log.Debug("Film resolved",
		zap.String("film_code", film.Code),
		zap.Int("reviews", len(vm.Reviews)),
		zap.Bool("placeholders", vm.UsedPlaceholders),
		zap.String("poster", vm.PosterPath),
	)
	return vm, nil
}

func (r *Resolver) findFilm(ctx context.Context, key string) (domain.Film, error) {
	if r.mode == LookupByCode {
		return r.films.FindByCode(ctx, key)
	}
	return r.films.FindByTitleKey(ctx, key)
}

func (r *Resolver) build(ctx context.Context, film domain.Film, reviews []domain.Review) *ViewModel {
	vm := &ViewModel{
		Film:        film,
		Code:        film.Code,
		Title:       film.Title,
		Heading:     heading(film),
		Score:       film.Score,
		Director:    deref(film.Director),
		Cast:        splitList(film.Starring),
		Genres:      splitList(film.Genre),
		Runtime:     formatRuntime(film.Runtime),
		BoxOffice:   formatBoxOffice(film.BoxOffice),
		MpaaRating:  deref(film.MpaaRating),
		ReleaseDate: deref(film.ReleaseDate),
		Synopsis:    deref(film.Synopsis),
		PosterPath:  r.resolvePoster(ctx, Normalize(film.Title)),
	}
	if film.Score != nil {
		vm.ScoreBadge = domain.VerdictForScore(*film.Score)
		vm.ScoreIcon = verdictIcon(vm.ScoreBadge)
	}

	links, err := parseLinks(film.Links)
	if err != nil {
		r.log.Warn("Ignoring film links", zap.Error(err), zap.String("film_code", film.Code))
	}
	vm.Links = links

	if len(reviews) == 0 {
		reviews = PlaceholderReviews(film.Code)
		vm.UsedPlaceholders = true
	}
	vm.Reviews = make([]ReviewView, 0, len(reviews))
	for _, rv := range reviews {
		vm.Reviews = append(vm.Reviews, newReviewView(rv))
	}
	return vm
}
