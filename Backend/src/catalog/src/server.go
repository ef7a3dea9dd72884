package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	catalogapi "github.com/ahinestrog/bookcatalog/api/catalog"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
)

type BookHandler struct {
	svc          *Service
	maxBodyBytes int64
}

func NewBookHandler(svc *Service, maxBodyBytes int64) *BookHandler {
	return &BookHandler{svc: svc, maxBodyBytes: maxBodyBytes}
}

// NewRouter mounts the books API and /health behind the common middleware.
func NewRouter(cfg Config, h *BookHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(hlog.NewHandler(log.Logger))
	r.Use(accessLog)
	r.Use(middleware.Recoverer)
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}
	r.Use(cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"Location"},
	}).Handler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/books", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
	return r
}

func accessLog(next http.Handler) http.Handler {
	return hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("req_id", middleware.GetReqID(r.Context())).
			Int("status", status).
			Int("size", size).
			Dur("took", d).
			Msg("http")
	})(next)
}

func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.svc.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	out := make([]catalogapi.Book, 0, len(books))
	for _, b := range books {
		out = append(out, bookToAPI(b))
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	b, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, bookToAPI(b))
}

func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, ok := h.decodeBook(w, r)
	if !ok {
		return
	}
	b, err := h.svc.Create(r.Context(), bookFromAPI(in))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/books/"+strconv.FormatInt(b.ID, 10))
	respondJSON(w, http.StatusCreated, bookToAPI(b))
}

func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	in, ok := h.decodeBook(w, r)
	if !ok {
		return
	}
	if err := h.svc.Update(r.Context(), id, bookFromAPI(in)); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *BookHandler) decodeBook(w http.ResponseWriter, r *http.Request) (catalogapi.Book, bool) {
	var b catalogapi.Book
	body := http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&b); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return b, false
	}
	return b, true
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_id", "id must be an integer")
		return 0, false
	}
	return id, true
}

func (h *BookHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respondError(w, http.StatusNotFound, "not_found", ErrNotFound.Error())
	case errors.Is(err, ErrIDMismatch):
		respondError(w, http.StatusBadRequest, "id_mismatch", ErrIDMismatch.Error())
	default:
		hlog.FromRequest(r).Error().Err(err).Msg("request failed")
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, catalogapi.ErrorResponse{Error: message, Code: code})
}
