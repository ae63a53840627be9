package domain

import "strings"

// Verdict is the qualitative outcome of a review.
type Verdict string

const (
	VerdictFresh   Verdict = "FRESH"
	VerdictRotten  Verdict = "ROTTEN"
	VerdictUnknown Verdict = ""
)

// FreshThreshold is the lowest numeric score counted as fresh.
const FreshThreshold = 60

// VerdictForScore maps a 0-100 score onto a verdict.
func VerdictForScore(score int) Verdict {
	if score >= FreshThreshold {
		return VerdictFresh
	}
	return VerdictRotten
}

// Review represents a row of the reviews relation.
type Review struct {
	FilmCode    string
	Reviewer    string
	Publication *string
	Text        *string
	Score       *int
	// Label is the stored verdict label, if any. It wins over Score.
	Label *string
}

// Verdict returns the stored label when it names a known verdict, otherwise
// derives one from the score.
func (r Review) Verdict() Verdict {
	if r.Label != nil {
		switch v := Verdict(strings.ToUpper(strings.TrimSpace(*r.Label))); v {
		case VerdictFresh, VerdictRotten:
			return v
		}
	}
	if r.Score != nil {
		return VerdictForScore(*r.Score)
	}
	return VerdictUnknown
}
