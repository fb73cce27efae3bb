// Package web serves the AdaStock pages: dashboard, product list and the
// forms behind every stock action.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/julienmatondotezolo/ada-stock/internal/http/middleware"
	"github.com/julienmatondotezolo/ada-stock/internal/http/ratelimit"
	"github.com/julienmatondotezolo/ada-stock/internal/i18n"
	"github.com/julienmatondotezolo/ada-stock/internal/store"
)

const (
	ServiceName = "ada-stock"
	Version     = "1.0.0"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

type Server struct {
	store         *store.Store
	catalog       *i18n.Catalog
	defaultLocale i18n.Locale
	tmpl          *template.Template
	static        fs.FS
	log           *slog.Logger
	limiter       *ratelimit.Limiter
	now           func() time.Time
}

type Option func(*Server)

func WithDefaultLocale(l i18n.Locale) Option {
	return func(s *Server) { s.defaultLocale = l }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.log = l }
}

// WithRateLimit limits form posts per client.
func WithRateLimit(l *ratelimit.Limiter) Option {
	return func(s *Server) { s.limiter = l }
}

func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

func NewServer(st *store.Store, catalog *i18n.Catalog, opts ...Option) (*Server, error) {
	s := &Server{
		store:         st,
		catalog:       catalog,
		defaultLocale: i18n.DefaultLocale,
		log:           slog.Default(),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	tmpl, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	s.tmpl = tmpl

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("static files: %w", err)
	}
	s.static = static
	return s, nil
}

// Routes returns the app router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging(s.log))
	r.Use(chimw.Recoverer)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(s.static)))

	r.Get("/", s.dashboardPage)
	r.Get("/products", s.productsPage)
	r.Get("/api/health", s.health)
	r.Get("/api/products", s.productsJSON)

	r.Group(func(r chi.Router) {
		if s.limiter != nil {
			r.Use(middleware.RateLimit(s.limiter, s.tooManyRequests))
		}
		r.Post("/products", s.addProduct)
		r.Post("/products/{id}/quantity", s.setQuantity)
		r.Post("/products/{id}/adjust", s.adjustQuantity)
		r.Post("/products/{id}/update", s.updateProduct)
		r.Post("/products/{id}/delete", s.deleteProduct)
		r.Post("/locale", s.setLocale)
		r.Post("/reload", s.reload)
		r.Post("/dismiss", s.dismiss)
	})

	return r
}

func (s *Server) tooManyRequests(w http.ResponseWriter) {
	http.Error(w, s.catalog.T(i18n.EN, "errors.tooManyRequests", nil), http.StatusTooManyRequests)
}
