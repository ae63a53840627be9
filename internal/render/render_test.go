package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Clark-Hu/rtfilms/internal/domain"
	"github.com/Clark-Hu/rtfilms/internal/resolver"
)

func sampleView() *resolver.ViewModel {
	score := 95
	return &resolver.ViewModel{
		Code:       "PB1987",
		Title:      "The Princess Bride",
		Heading:    "The Princess Bride (1987)",
		Score:      &score,
		ScoreBadge: domain.VerdictFresh,
		ScoreIcon:  resolver.FreshIcon,
		Director:   "Rob Reiner",
		Cast:       []string{"Cary Elwes", "Mandy Patinkin"},
		Genres:     []string{"Adventure", "Comedy"},
		Runtime:    "98 mins",
		BoxOffice:  "30.8 million",
		MpaaRating: "PG",
		PosterPath: "/images/theprincessbride/poster3.jpg",
		Links:      []domain.Link{{URL: "https://www.imdb.com/title/tt0093779/", Text: "IMDb"}, {URL: "javascript:alert(1)", Text: "bad"}},
		Reviews: []resolver.ReviewView{
			{Reviewer: "Jonathan Rosenbaum", Publication: "Chicago Reader", Text: "Friendly <b>adventure</b>.", Verdict: domain.VerdictFresh, Icon: resolver.FreshIcon},
			{Reviewer: "Variety Staff", Verdict: domain.VerdictRotten, Icon: resolver.RottenIcon},
			{Reviewer: "Nobody"},
		},
	}
}

func TestMovie(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Movie(&buf, sampleView()))
	out := buf.String()

	assert.Contains(t, out, "<h1>The Princess Bride (1987)</h1>")
	assert.Contains(t, out, "<title>The Princess Bride (1987) - Rancid Tomatoes</title>")
	assert.Contains(t, out, `src="/images/theprincessbride/poster3.jpg"`)
	assert.Contains(t, out, "Cary Elwes<br>Mandy Patinkin")
	assert.Contains(t, out, "Adventure, Comedy")
	assert.Contains(t, out, "98 mins")
	assert.Contains(t, out, "30.8 million")
	assert.Contains(t, out, "95%")
	assert.Contains(t, out, `href="https://www.imdb.com/title/tt0093779/"`)
	assert.NotContains(t, out, "javascript:alert")
	assert.Contains(t, out, "Friendly &lt;b&gt;adventure&lt;/b&gt;.")
	assert.Contains(t, out, `<img src="/images/fresh.gif" alt="FRESH">`)
	assert.Contains(t, out, `<img src="/images/rotten.gif" alt="ROTTEN">`)
	assert.Equal(t, 2, strings.Count(out, `class="quote"><img`), "unknown verdict gets no icon")
	assert.Contains(t, out, "(3 reviews total)")
}

func TestMovieSparse(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Movie(&buf, &resolver.ViewModel{
		Title:      "Bare",
		Heading:    "Bare",
		Runtime:    resolver.NotAvailable,
		BoxOffice:  resolver.NotAvailable,
		PosterPath: resolver.DefaultFallbackPoster,
	}))
	out := buf.String()
	assert.Contains(t, out, "<dd>N/A</dd>")
	assert.NotContains(t, out, "Director")
	assert.NotContains(t, out, "<dt>Links</dt>")
	assert.NotContains(t, out, "%</span>")
}

func TestMovieNil(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	var buf bytes.Buffer
	assert.Error(t, r.Movie(&buf, nil))
	assert.Zero(t, buf.Len())
}

func TestOtherPages(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Welcome(&buf))
	assert.Contains(t, buf.String(), "Welcome to Rancid Tomatoes")
	assert.Contains(t, buf.String(), `name="title"`)

	buf.Reset()
	require.NoError(t, r.NotFound(&buf, "<NoSuchMovie>"))
	assert.Contains(t, buf.String(), "Movie Not Found")
	assert.Contains(t, buf.String(), "&lt;NoSuchMovie&gt;")

	buf.Reset()
	require.NoError(t, r.Error(&buf, "req-1"))
	assert.Contains(t, buf.String(), "Something Went Wrong")
	assert.Contains(t, buf.String(), "req-1")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestWriteErrorSurfaces(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	assert.Error(t, r.Welcome(failingWriter{}))
}
