package main

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ahinestrog/bookcatalog/api/catalog"
	"github.com/rs/zerolog/log"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static/*
var staticFS embed.FS

// BookAPI is the part of the Catalog Service the pages use.
type BookAPI interface {
	List(ctx context.Context) ([]catalog.Book, error)
	Create(ctx context.Context, b catalog.Book) (*catalog.Book, error)
	Update(ctx context.Context, id int64, b catalog.Book) error
	Delete(ctx context.Context, id int64) error
}

type Server struct {
	tplList  *template.Template
	tplCart  *template.Template
	tplAdmin *template.Template
	api      BookAPI
	carts    *CartProvider
	timeout  time.Duration
}

func NewServer(api BookAPI, carts *CartProvider, timeout time.Duration) (*Server, error) {
	layout, err := template.New("layout.html").Funcs(funcs).ParseFS(templatesFS, "templates/layout.html")
	if err != nil {
		return nil, err
	}
	page := func(name string) (*template.Template, error) {
		t, err := layout.Clone()
		if err != nil {
			return nil, err
		}
		return t.ParseFS(templatesFS, "templates/"+name)
	}

	s := &Server{api: api, carts: carts, timeout: timeout}
	if s.tplList, err = page("index.html"); err != nil {
		return nil, err
	}
	if s.tplCart, err = page("cart.html"); err != nil {
		return nil, err
	}
	if s.tplAdmin, err = page("admin.html"); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /cart", s.handleCart)
	mux.HandleFunc("POST /cart/add", s.handleCartAdd)
	mux.HandleFunc("POST /cart/remove", s.handleCartRemove)
	mux.HandleFunc("POST /cart/clear", s.handleCartClear)
	mux.HandleFunc("GET /admin", s.handleAdmin)
	mux.HandleFunc("POST /admin/books", s.handleAdminSave)
	mux.HandleFunc("POST /admin/books/{id}/delete", s.handleAdminDelete)

	// static
	mux.Handle("GET /static/", http.FileServer(http.FS(staticFS)))

	return withLog(mux)
}

func main() {
	cfg := LoadConfig()
	setupLogger(cfg)

	client := catalog.NewClient(cfg.APIURL, cfg.APITimeout)
	s, err := NewServer(client, NewCartProvider(cfg.SecureCookies), cfg.APITimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("parse templates")
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info().Str("addr", cfg.Addr).Str("api", cfg.APIURL).Msg("catalog frontend listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func withLog(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		h.ServeHTTP(sw, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", sw.status).
			Dur("took", time.Since(start)).
			Msg("http")
	})
}

func (s *Server) apiCtx(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), s.timeout)
}

// render executes into a buffer so a template error never leaves half a page.
func (s *Server) render(w http.ResponseWriter, t *template.Template, data any) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Error().Err(err).Str("tpl", t.Name()).Msg("template execute error")
		httpError(w, "Error rendering page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func httpError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write([]byte("<pre>" + template.HTMLEscapeString(msg) + "</pre>"))
}
