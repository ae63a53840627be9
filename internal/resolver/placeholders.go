package resolver

import "github.com/Clark-Hu/rtfilms/internal/domain"

type placeholder struct {
	text, label, reviewer, publication string
}

var placeholderFixture = []placeholder{
	{"One of Reiner's most entertaining films, effective as a swashbuckling epic, romantic fable, and satire of these genres.", "FRESH", "Emanuel Levy", "Emanuel Levy"},
	{"Based on William Goldman's novel, this is a post-modern fairy tale that challenges and affirms the conventions of a genre that may not be flexible enough to support such horseplay.", "ROTTEN", "Variety Staff", "Variety Staff"},
	{"Rob Reiner's friendly 1987 fairy-tale adventure delicately mines the irony inherent in its make-believe without ever undermining the effectiveness of the fantasy.", "FRESH", "Jonathan Rosenbaum", "Chicago Reader"},
	{"One of the Top films of the 1980s, if not of all time. A treasure of a film that you'll want to watch again and again.", "FRESH", "Clint Morris", "Moviehole"},
	{"An effective comedy, an interesting bedtime tale, and one of the greatest date rentals of all time.", "FRESH", "Brad Laidman", "Film Threat"},
	{"The lesson it most effectively demonstrates is that cinema has the power to turn you into a kid again. As we wish.", "FRESH", "Phil Villarreal", "Arizona Daily Star"},
	{"My name is Marty Stepp. You killed my father. Prepare to die.", "FRESH", "Marty Stepp", "Step by Step Publishing"},
}

// PlaceholderReviews returns a fresh copy of the reviews shown for a film
// that has none stored. Callers may modify the result.
func PlaceholderReviews(filmCode string) []domain.Review {
	out := make([]domain.Review, 0, len(placeholderFixture))
	for _, p := range placeholderFixture {
		out = append(out, domain.Review{
			FilmCode:    filmCode,
			Reviewer:    p.reviewer,
			Publication: &p.publication,
			Text:        &p.text,
			Label:       &p.label,
		})
	}
	return out
}
