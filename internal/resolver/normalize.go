package resolver

import (
	"fmt"
	"strings"

	"github.com/Clark-Hu/rtfilms/internal/domain"
)

// LookupMode selects which film column the query is matched against.
type LookupMode string

const (
	LookupByTitle LookupMode = "title"
	LookupByCode  LookupMode = "code"
)

// ParseLookupMode accepts "title" or "code", case-insensitively.
// An empty string selects title lookup.
func ParseLookupMode(s string) (LookupMode, error) {
	switch LookupMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", LookupByTitle:
		return LookupByTitle, nil
	case LookupByCode:
		return LookupByCode, nil
	}
	return "", fmt.Errorf("unknown lookup mode %q", s)
}

// Normalize turns a title query into its lookup key. See domain.TitleKey.
func Normalize(s string) string {
	return domain.TitleKey(s)
}

// key turns the raw query value into the lookup key for mode.
func (m LookupMode) key(raw string) string {
	if m == LookupByCode {
		return strings.TrimSpace(raw)
	}
	return Normalize(raw)
}
