package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/ahinestrog/bookcatalog/api/catalog"
	"github.com/rs/zerolog/log"
)

type adminView struct {
	Books  []catalog.Book
	Form   catalog.Book
	EditID int64
	Msg    string
	Err    string
}

func (v adminView) Editing() bool { return v.EditID != 0 }

func (s *Server) handleAdmin(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.apiCtx(r)
	defer cancel()

	v := adminView{Msg: r.URL.Query().Get("msg")}
	books, err := s.api.List(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("list books")
		v.Err = loadFailed
		s.render(w, s.tplAdmin, v)
		return
	}
	v.Books = books

	if id, err := strconv.ParseInt(r.URL.Query().Get("edit"), 10, 64); err == nil {
		for _, b := range books {
			if b.BookID == id {
				v.Form, v.EditID = b, id
				break
			}
		}
	}
	s.render(w, s.tplAdmin, v)
}

// handleAdminSave updates the staged book when the form carries a bookID and
// creates a new one otherwise.
func (s *Server) handleAdminSave(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httpError(w, err.Error(), http.StatusBadRequest)
		return
	}
	b, err := bookFromForm(r)
	if err != nil {
		adminRedirect(w, r, "Failed to save book: "+err.Error())
		return
	}

	ctx, cancel := s.apiCtx(r)
	defer cancel()

	if b.BookID != 0 {
		if err := s.api.Update(ctx, b.BookID, b); err != nil {
			log.Warn().Err(err).Int64("book", b.BookID).Msg("update book")
			adminRedirect(w, r, "Failed to update book: "+describe(err))
			return
		}
		adminRedirect(w, r, "Book updated.")
		return
	}
	created, err := s.api.Create(ctx, b)
	if err != nil {
		log.Warn().Err(err).Msg("create book")
		adminRedirect(w, r, "Failed to create book: "+describe(err))
		return
	}
	adminRedirect(w, r, fmt.Sprintf("Book %d created.", created.BookID))
}

func (s *Server) handleAdminDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		adminRedirect(w, r, "Failed to delete book: invalid id")
		return
	}
	ctx, cancel := s.apiCtx(r)
	defer cancel()

	if err := s.api.Delete(ctx, id); err != nil {
		log.Warn().Err(err).Int64("book", id).Msg("delete book")
		adminRedirect(w, r, "Failed to delete book: "+describe(err))
		return
	}
	adminRedirect(w, r, "Book deleted.")
}

func adminRedirect(w http.ResponseWriter, r *http.Request, msg string) {
	http.Redirect(w, r, withMsg("/admin", msg), http.StatusSeeOther)
}

func describe(err error) string {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return "book not found"
	case errors.Is(err, catalog.ErrUnavailable):
		return "catalog service unavailable"
	}
	var apiErr *catalog.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

func bookFromForm(r *http.Request) (catalog.Book, error) {
	var b catalog.Book
	if v := strings.TrimSpace(r.Form.Get("bookID")); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return b, errors.New("invalid bookID")
		}
		b.BookID = id
	}
	if v := strings.TrimSpace(r.Form.Get("pageCount")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return b, errors.New("page count must be a whole number")
		}
		b.PageCount = n
	}
	price, err := catalog.ParseMoney(r.Form.Get("price"))
	if err != nil {
		return b, errors.New("price must be a number")
	}
	b.Price = price
	b.Title = strings.TrimSpace(r.Form.Get("title"))
	b.Author = strings.TrimSpace(r.Form.Get("author"))
	b.Publisher = strings.TrimSpace(r.Form.Get("publisher"))
	b.ISBN = strings.TrimSpace(r.Form.Get("isbn"))
	b.Classification = strings.TrimSpace(r.Form.Get("classification"))
	return b, nil
}
