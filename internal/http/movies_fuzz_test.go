package httpserver

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func FuzzMovieTitle(f *testing.F) {
	for _, seed := range []string{"ThePrincessBride", "", "NoSuchMovie", "'; DROP TABLE films; --", "%", "../../etc/passwd"} {
		f.Add(seed)
	}
	ts := buildTestServer(f, nil)

	f.Fuzz(func(t *testing.T, title string) {
		req := httptest.NewRequest(http.MethodGet, "/?title="+url.QueryEscape(title), nil)
		rec := httptest.NewRecorder()
		ts.srv.Handler().ServeHTTP(rec, req)
		if rec.Code != http.StatusOK && rec.Code != http.StatusNotFound {
			t.Fatalf("title %q: unexpected status %d", title, rec.Code)
		}
	})
}
