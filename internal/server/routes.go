package server

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ocrdesk/ocrdesk/web"
)

// routes builds the chi router: the upload page, the submission handler,
// health, and embedded static assets.
func (s *Server) routes() (http.Handler, error) {
	tmpl, err := template.ParseFS(web.Assets(), "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	s.templates = tmpl

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/", s.handleIndex)
	r.Post("/process", s.handleProcess)
	r.Get("/healthz", s.handleHealth)

	staticFS, err := web.Static()
	if err != nil {
		return nil, fmt.Errorf("failed to load static assets: %w", err)
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	return r, nil
}
