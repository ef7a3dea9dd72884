package main

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/ahinestrog/bookcatalog/api/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flash(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	require.Equal(t, "/admin", loc.Path)
	return loc.Query().Get("msg")
}

func TestAdmin_ListsBooks(t *testing.T) {
	rec := get(newTestServer(t, &fakeAPI{books: twelveBooks()}), "/admin")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Science 01")
	assert.Contains(t, body, "<th>Publisher</th><th>ISBN</th>")
	assert.Contains(t, body, "<td>978-0000000012</td>")
	assert.Contains(t, body, "Add Book")
	assert.NotContains(t, body, "Update Book")
	assert.Contains(t, body, `action="/admin/books/12/delete"`)
}

func TestAdmin_EditStagesBook(t *testing.T) {
	rec := get(newTestServer(t, &fakeAPI{books: twelveBooks()}), "/admin?edit=9")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Update Book")
	assert.Contains(t, body, `name="bookID" value="9"`)
	assert.Contains(t, body, `value="Biography 01"`)
	assert.Contains(t, body, `value="10.00"`)
}

func TestAdmin_EditUnknownIDFallsBackToCreate(t *testing.T) {
	rec := get(newTestServer(t, &fakeAPI{books: twelveBooks()}), "/admin?edit=99")
	assert.Contains(t, rec.Body.String(), "Add Book")
}

func TestAdmin_CreateWithoutStagedID(t *testing.T) {
	api := &fakeAPI{}
	h := newTestServer(t, api)

	rec := postForm(h, "/admin/books", url.Values{
		"title": {"Kindred"}, "author": {"Octavia E. Butler"}, "pageCount": {"264"}, "price": {"9.99"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "Book 1 created.", flash(t, rec))

	require.Len(t, api.created, 1)
	assert.Equal(t, "Kindred", api.created[0].Title)
	assert.Equal(t, 264, api.created[0].PageCount)
	assert.Equal(t, catalog.Money(999), api.created[0].Price)
	assert.Empty(t, api.updated)
}

func TestAdmin_UpdateWithStagedID(t *testing.T) {
	api := &fakeAPI{books: twelveBooks()}
	h := newTestServer(t, api)

	rec := postForm(h, "/admin/books", url.Values{"bookID": {"3"}, "title": {"Renamed"}, "price": {"1"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "Book updated.", flash(t, rec))

	require.Len(t, api.updated, 1)
	assert.Equal(t, int64(3), api.updated[0].BookID)
	assert.Equal(t, "Renamed", api.updated[0].Title)
	assert.Empty(t, api.created)
}

func TestAdmin_FailuresAreReported(t *testing.T) {
	api := &fakeAPI{err: &catalog.APIError{Status: http.StatusNotFound, Code: "not_found", Message: "book not found"}}
	h := newTestServer(t, api)

	rec := postForm(h, "/admin/books", url.Values{"bookID": {"3"}, "title": {"Gone"}})
	assert.Equal(t, "Failed to update book: book not found", flash(t, rec))

	rec = postForm(h, "/admin/books/3/delete", nil)
	assert.Equal(t, "Failed to delete book: book not found", flash(t, rec))

	rec = postForm(h, "/admin/books", url.Values{"title": {"x"}, "pageCount": {"many"}})
	assert.Equal(t, "Failed to save book: page count must be a whole number", flash(t, rec))

	api.err = catalog.ErrUnavailable
	rec = postForm(h, "/admin/books", url.Values{"title": {"x"}})
	assert.Equal(t, "Failed to create book: catalog service unavailable", flash(t, rec))
}

func TestAdmin_Delete(t *testing.T) {
	api := &fakeAPI{books: twelveBooks()}
	h := newTestServer(t, api)

	rec := postForm(h, "/admin/books/4/delete", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "Book deleted.", flash(t, rec))
	assert.Equal(t, []int64{4}, api.deleted)

	rec = postForm(h, "/admin/books/abc/delete", nil)
	assert.Equal(t, "Failed to delete book: invalid id", flash(t, rec))
}

func TestAdmin_FlashAndFetchFailure(t *testing.T) {
	h := newTestServer(t, &fakeAPI{err: catalog.ErrUnavailable})
	rec := get(h, "/admin?msg=Book+deleted.")
	body := rec.Body.String()
	assert.Contains(t, body, "Book deleted.")
	assert.Contains(t, body, "Failed to load books.")
	assert.NotContains(t, body, "<table")
}
