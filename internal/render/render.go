// Package render draws the HTML pages of the site from embedded templates.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/Clark-Hu/rtfilms/internal/resolver"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	pageMovie    = "movie.html"
	pageWelcome  = "welcome.html"
	pageNotFound = "not_found.html"
	pageError    = "error.html"
)

// Renderer holds the parsed page templates. It is safe for concurrent use.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page together with the shared layout.
func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, page := range []string{pageMovie, pageWelcome, pageNotFound, pageError} {
		tmpl, err := template.New(page).ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		r.pages[page] = tmpl
	}
	return r, nil
}

// Movie renders the detail page of a resolved film.
func (r *Renderer) Movie(w io.Writer, vm *resolver.ViewModel) error {
	if vm == nil {
		return fmt.Errorf("render movie: nil view model")
	}
	return r.render(w, pageMovie, vm)
}

// Welcome renders the search page shown when no title was given.
func (r *Renderer) Welcome(w io.Writer) error {
	return r.render(w, pageWelcome, nil)
}

// NotFound renders the friendly page for a title with no match.
func (r *Renderer) NotFound(w io.Writer, query string) error {
	return r.render(w, pageNotFound, query)
}

// Error renders the generic failure page. requestID may be empty.
func (r *Renderer) Error(w io.Writer, requestID string) error {
	return r.render(w, pageError, requestID)
}

// render executes into a buffer first so a failing template never
// leaves a half-written page behind.
func (r *Renderer) render(w io.Writer, page string, data any) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %s", page)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("execute %s: %w", page, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
