package resolver

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/Clark-Hu/rtfilms/internal/domain"
)

// NotAvailable is shown for absent runtime and box office values.
const NotAvailable = "N/A"

// Badge icons shown next to a verdict.
const (
	FreshIcon  = "/images/fresh.gif"
	RottenIcon = "/images/rotten.gif"
)

// ViewModel is everything the movie page renders for one film.
type ViewModel struct {
	Film domain.Film `json:"-"`

	Code        string         `json:"code"`
	Title       string         `json:"title"`
	Heading     string         `json:"heading"`
	Score       *int           `json:"score,omitempty"`
	ScoreBadge  domain.Verdict `json:"scoreBadge,omitempty"`
	ScoreIcon   string         `json:"scoreIcon,omitempty"`
	Director    string         `json:"director,omitempty"`
	Cast        []string       `json:"cast"`
	Genres      []string       `json:"genres"`
	Runtime     string         `json:"runtime"`
	BoxOffice   string         `json:"boxOffice"`
	MpaaRating  string         `json:"mpaaRating,omitempty"`
	ReleaseDate string         `json:"releaseDate,omitempty"`
	Synopsis    string         `json:"synopsis,omitempty"`
	PosterPath  string         `json:"posterPath"`
	Links       []domain.Link  `json:"links"`
	Reviews     []ReviewView   `json:"reviews"`
	// UsedPlaceholders is set when the film had no stored reviews.
	UsedPlaceholders bool `json:"usedPlaceholders"`
}

// GenreLine joins the genres for display.
func (v *ViewModel) GenreLine() string {
	if len(v.Genres) == 0 {
		return NotAvailable
	}
	return strings.Join(v.Genres, ", ")
}

// ReviewView is one review as displayed.
type ReviewView struct {
	Reviewer    string         `json:"reviewer"`
	Publication string         `json:"publication,omitempty"`
	Text        string         `json:"text,omitempty"`
	Verdict     domain.Verdict `json:"verdict,omitempty"`
	Icon        string         `json:"icon,omitempty"`
}

func newReviewView(rv domain.Review) ReviewView {
	v := rv.Verdict()
	return ReviewView{
		Reviewer:    rv.Reviewer,
		Publication: deref(rv.Publication),
		Text:        deref(rv.Text),
		Verdict:     v,
		Icon:        verdictIcon(v),
	}
}

func verdictIcon(v domain.Verdict) string {
	switch v {
	case domain.VerdictFresh:
		return FreshIcon
	case domain.VerdictRotten:
		return RottenIcon
	}
	return ""
}

func heading(f domain.Film) string {
	if f.Year == nil {
		return f.Title
	}
	return fmt.Sprintf("%s (%d)", f.Title, *f.Year)
}

// splitList splits a comma-joined column into trimmed, non-empty items.
func splitList(s *string) []string {
	out := []string{}
	if s == nil {
		return out
	}
	for _, item := range strings.Split(*s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func formatRuntime(minutes *int) string {
	if minutes == nil || *minutes <= 0 {
		return NotAvailable
	}
	return strconv.Itoa(*minutes) + " mins"
}

func formatBoxOffice(millions *float64) string {
	if millions == nil || *millions <= 0 {
		return NotAvailable
	}
	return strconv.FormatFloat(*millions, 'f', -1, 64) + " million"
}

// parseLinks decodes the stored link list. Anything that is not a JSON
// array of objects yields an empty list and ErrMalformedLinks. Entries
// without a URL are dropped.
func parseLinks(raw *string) ([]domain.Link, error) {
	links := []domain.Link{}
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return links, nil
	}
	var decoded []domain.Link
	if err := json.Unmarshal([]byte(*raw), &decoded); err != nil {
		return links, fmt.Errorf("%w: %v", ErrMalformedLinks, err)
	}
	if decoded == nil {
		// JSON null
		return links, fmt.Errorf("%w: not an array", ErrMalformedLinks)
	}
	for _, l := range decoded {
		l.URL = strings.TrimSpace(l.URL)
		if l.URL == "" {
			continue
		}
		links = append(links, l)
	}
	return links, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
