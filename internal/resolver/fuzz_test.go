package resolver

import (
	"strings"
	"testing"
	"unicode"
)

func FuzzNormalize(f *testing.F) {
	for _, seed := range []string{"The Princess Bride", "ThePrincessBride", "  \t", "Amélie", "AC/DC"} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, s string) {
		got := Normalize(s)
		if strings.IndexFunc(got, unicode.IsSpace) >= 0 {
			t.Fatalf("Normalize(%q) = %q still has whitespace", s, got)
		}
		if again := Normalize(got); again != got {
			t.Fatalf("Normalize not idempotent: %q -> %q -> %q", s, got, again)
		}
	})
}

func FuzzParseLinks(f *testing.F) {
	for _, seed := range []string{
		`[{"url":"https://example.com","text":"Example"}]`,
		`[]`,
		`null`,
		`{"url":"x"}`,
		`[1,2,3]`,
		`[null,{}]`,
		`not json`,
		``,
	} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, raw string) {
		links, _ := parseLinks(&raw)
		if links == nil {
			t.Fatalf("parseLinks(%q) returned nil slice", raw)
		}
		for _, l := range links {
			if l.URL == "" {
				t.Fatalf("parseLinks(%q) kept a link without URL", raw)
			}
		}
	})
}
