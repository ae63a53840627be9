package resolver

import (
	"errors"
	"testing"
)

func TestFormatting(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"runtime", formatRuntime(intp(98)), "98 mins"},
		{"runtime absent", formatRuntime(nil), "N/A"},
		{"runtime zero", formatRuntime(intp(0)), "N/A"},
		{"box office fraction", formatBoxOffice(floatp(30.8)), "30.8 million"},
		{"box office whole", formatBoxOffice(floatp(115)), "115 million"},
		{"box office absent", formatBoxOffice(nil), "N/A"},
		{"heading", heading(princessBride()), "The Princess Bride (1987)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Fatalf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(strp(" Cary Elwes ,Mandy Patinkin,, "))
	if len(got) != 2 || got[0] != "Cary Elwes" || got[1] != "Mandy Patinkin" {
		t.Fatalf("splitList = %#v", got)
	}
	if got := splitList(nil); got == nil || len(got) != 0 {
		t.Fatalf("splitList(nil) = %#v", got)
	}
}

func TestParseLinks(t *testing.T) {
	tests := []struct {
		name    string
		raw     *string
		want    int
		wantErr bool
	}{
		{"absent", nil, 0, false},
		{"blank", strp("  "), 0, false},
		{"array", strp(`[{"url":"a","text":"A"},{"url":"b","text":"B"}]`), 2, false},
		{"empty array", strp(`[]`), 0, false},
		{"null and empty entries", strp(`[null,{},{"url":"  ","text":"blank"}]`), 0, false},
		{"mixed entries", strp(`[{"text":"no url"},{"url":"https://example.com","text":"ok"}]`), 1, false},
		{"object", strp(`{"url":"a"}`), 0, true},
		{"null", strp(`null`), 0, true},
		{"garbage", strp(`[{"url":`), 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			links, err := parseLinks(tt.raw)
			if tt.wantErr != (err != nil) {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrMalformedLinks) {
				t.Fatalf("err = %v, want ErrMalformedLinks", err)
			}
			if links == nil || len(links) != tt.want {
				t.Fatalf("links = %#v, want %d items", links, tt.want)
			}
		})
	}
}
