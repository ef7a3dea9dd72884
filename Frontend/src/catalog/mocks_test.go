package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ahinestrog/bookcatalog/api/catalog"
	"github.com/stretchr/testify/require"
)

// fakeAPI is an in-memory BookAPI that records writes.
type fakeAPI struct {
	mu      sync.Mutex
	books   []catalog.Book
	err     error
	created []catalog.Book
	updated []catalog.Book
	deleted []int64
}

func (f *fakeAPI) List(context.Context) ([]catalog.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]catalog.Book{}, f.books...), nil
}

func (f *fakeAPI) Create(_ context.Context, b catalog.Book) (*catalog.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	b.BookID = int64(len(f.books) + 1)
	f.books = append(f.books, b)
	f.created = append(f.created, b)
	return &b, nil
}

func (f *fakeAPI) Update(_ context.Context, id int64, b catalog.Book) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	b.BookID = id
	f.updated = append(f.updated, b)
	return nil
}

func (f *fakeAPI) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

// twelveBooks has 7 Fiction, 3 Biography and 2 Science books.
func twelveBooks() []catalog.Book {
	var books []catalog.Book
	add := func(n int, class string) {
		for i := 0; i < n; i++ {
			books = append(books, catalog.Book{
				BookID:         int64(len(books) + 1),
				Title:          fmt.Sprintf("%s %02d", class, i),
				Author:         "Author",
				Publisher:      "Publisher",
				ISBN:           fmt.Sprintf("978-%010d", len(books)+1),
				Classification: class,
				PageCount:      1200,
				Price:          1000,
			})
		}
	}
	add(7, "Fiction")
	add(3, "Biography")
	add(2, "Science")
	return books
}

func newTestServer(t *testing.T, api BookAPI) http.Handler {
	t.Helper()
	s, err := NewServer(api, NewCartProvider(false), time.Second)
	require.NoError(t, err)
	return s.Routes()
}

func get(h http.Handler, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func postForm(h http.Handler, target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
