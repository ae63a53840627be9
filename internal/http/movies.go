package httpserver

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"path"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Clark-Hu/rtfilms/internal/resolver"
)

func (s *Server) handleMovie(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("title")

	vm, err := s.resolver.Resolve(r.Context(), raw)
	switch {
	case err == nil:
		s.respondPage(w, r, http.StatusOK, func(buf io.Writer) error {
			return s.pages.Movie(buf, vm)
		})
	case errors.Is(err, resolver.ErrMissingParameter):
		s.respondPage(w, r, http.StatusOK, s.pages.Welcome)
	case errors.Is(err, resolver.ErrNotFound):
		// a missing film is a normal outcome, not a failure
		s.respondPage(w, r, http.StatusOK, func(buf io.Writer) error {
			return s.pages.NotFound(buf, raw)
		})
	default:
		s.handleServiceError(w, r, err)
	}
}

func (s *Server) handleMyMovie(w http.ResponseWriter, r *http.Request) {
	film := r.URL.Query().Get("film")
	http.Redirect(w, r, "/?title="+url.QueryEscape(film), http.StatusFound)
}

// handleImage streams /images/* from the asset backend and falls back to
// the static directory for anything the backend does not hold.
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	name := path.Join("images", chi.URLParam(r, "*"))
	obj, modified, err := s.images.Open(r.Context(), name)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("Image backend failed", zap.Error(err), zap.String("name", name))
		}
		s.static.ServeHTTP(w, r)
		return
	}
	defer obj.Close()
	http.ServeContent(w, r, name, modified, obj)
}

func (s *Server) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var storeErr *resolver.StoreError
	if errors.As(err, &storeErr) {
		s.logger.Error("Store failure",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("op", storeErr.Op),
			zap.Error(storeErr.Err),
		)
	} else {
		s.logger.Error("Unexpected resolver error",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err),
		)
	}
	s.respondError(w, r)
}

// respondPage renders into a buffer and only then commits the status, so a
// template failure becomes a clean error page.
func (s *Server) respondPage(w http.ResponseWriter, r *http.Request, status int, page func(io.Writer) error) {
	var buf bytes.Buffer
	if err := page(&buf); err != nil {
		s.logger.Error("Render failed",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err),
		)
		s.respondError(w, r)
		return
	}
	writeHTML(w, status, &buf)
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.pages.Error(&buf, middleware.GetReqID(r.Context())); err != nil {
		s.logger.Error("Render error page failed", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	writeHTML(w, http.StatusInternalServerError, &buf)
}

func writeHTML(w http.ResponseWriter, status int, buf *bytes.Buffer) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
