package main

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/ahinestrog/bookcatalog/api/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndex_FirstPage(t *testing.T) {
	rec := get(newTestServer(t, &fakeAPI{books: twelveBooks()}), "/")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "0 item(s) | Total: $0.00")
	assert.Contains(t, body, "Fiction 04")
	assert.NotContains(t, body, "Fiction 05")
	assert.Contains(t, body, "1,200")
	assert.Contains(t, body, "$10.00")
	assert.Contains(t, body, "<th>Publisher</th>")
	assert.Contains(t, body, "<th>ISBN</th>")
	assert.Contains(t, body, "<td>Publisher</td>")
	assert.Contains(t, body, "<td>978-0000000001</td>")
	assert.Contains(t, body, `href="/?page=3"`)
}

func TestIndex_CategoryAndSort(t *testing.T) {
	rec := get(newTestServer(t, &fakeAPI{books: twelveBooks()}), "/?category=Biography&sort=desc")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.NotContains(t, body, "Fiction 00")
	i0 := strings.Index(body, "Biography 00")
	i2 := strings.Index(body, "Biography 02")
	require.True(t, i0 > 0 && i2 > 0)
	assert.Less(t, i2, i0, "descending title order")
	assert.Contains(t, body, "▼")
	assert.Contains(t, body, `href="/?category=Biography&amp;sort=asc"`)
	assert.NotContains(t, body, `class="pages"`)
}

func TestIndex_FetchFailure(t *testing.T) {
	rec := get(newTestServer(t, &fakeAPI{err: catalog.ErrUnavailable}), "/")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Failed to load books.")
	assert.NotContains(t, body, "<table")
	assert.NotContains(t, body, `class="pages"`)
}

func TestIndex_AgainstCatalogClient(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"bookID":1,"title":"Kindred","classification":"Fiction","pageCount":264,"price":9.99}]`))
	}))
	defer api.Close()

	rec := get(newTestServer(t, catalog.NewClient(api.URL, 0)), "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Kindred")
	assert.Contains(t, rec.Body.String(), "$9.99")
}

func addToCart(t *testing.T, h http.Handler, id, title, price, qty string, cookies ...*http.Cookie) *http.Cookie {
	t.Helper()
	rec := postForm(h, "/cart/add", url.Values{
		"bookID": {id}, "title": {title}, "price": {price}, "quantity": {qty}, "return": {"/?page=2"},
	}, cookies...)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/?page=2", rec.Header().Get("Location"))
	return lastCartCookie(t, rec)
}

func TestCartFlow(t *testing.T) {
	h := newTestServer(t, &fakeAPI{books: twelveBooks()})

	c := addToCart(t, h, "1", "First", "10.00", "2")
	c = addToCart(t, h, "2", "Second", "5", "", c)

	rec := get(h, "/cart", c)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "First")
	assert.Contains(t, body, "Second")
	assert.Contains(t, body, "3 item(s)")
	assert.Contains(t, body, "$25.00")
	assert.Contains(t, body, "Clear Cart")

	rec = get(h, "/", c)
	assert.Contains(t, rec.Body.String(), "3 item(s) | Total: $25.00")

	rec = postForm(h, "/cart/remove", url.Values{"bookID": {"1"}}, c)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/cart", rec.Header().Get("Location"))
	c = lastCartCookie(t, rec)
	assert.Contains(t, get(h, "/cart", c).Body.String(), "1 item(s)")

	rec = postForm(h, "/cart/clear", nil, c)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, get(h, "/cart", lastCartCookie(t, rec)).Body.String(), "Your cart is empty.")
}

func TestCartAdd_BadInput(t *testing.T) {
	h := newTestServer(t, &fakeAPI{})

	for name, form := range map[string]url.Values{
		"zero quantity": {"bookID": {"1"}, "price": {"1"}, "quantity": {"0"}},
		"bad quantity":  {"bookID": {"1"}, "price": {"1"}, "quantity": {"x"}},
		"overflow":      {"bookID": {"1"}, "price": {"1"}, "quantity": {"99999999999999999999"}},
		"bad id":        {"bookID": {"abc"}, "price": {"1"}},
		"bad price":     {"bookID": {"1"}, "price": {"cheap"}},
	} {
		rec := postForm(h, "/cart/add", form)
		assert.Equal(t, http.StatusBadRequest, rec.Code, name)
		assert.Empty(t, rec.Result().Cookies(), name)
	}
}

func TestCartAdd_QuantityLimitShowsMessage(t *testing.T) {
	h := newTestServer(t, &fakeAPI{})
	c := addToCart(t, h, "1", "First", "1", "999")

	rec := postForm(h, "/cart/add", url.Values{"bookID": {"1"}, "price": {"1"}, "quantity": {"1"}}, c)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	loc := rec.Header().Get("Location")
	assert.True(t, strings.HasPrefix(loc, "/cart?msg="), loc)
	assert.Empty(t, rec.Result().Cookies())

	body := get(h, loc, c).Body.String()
	assert.Contains(t, body, "At most 999 copies")
	assert.Contains(t, body, "999 item(s)")

	rec = postForm(h, "/cart/add", url.Values{"bookID": {"2"}, "price": {"1"}, "quantity": {"1000"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Location"), "/cart?msg="))
}

func TestCartAdd_FullCartShowsMessage(t *testing.T) {
	h := newTestServer(t, &fakeAPI{})
	rec := httptest.NewRecorder()
	s := NewCartProvider(false).Open(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	id := int64(1)
	for s.Add(longItem(id)) == nil {
		id++
	}
	cs := cartCookies(t, rec)

	rec = postForm(h, "/cart/add", url.Values{"bookID": {strconv.FormatInt(id, 10)}, "title": {longItem(id).Title}, "price": {"19.99"}}, cs...)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	loc := rec.Header().Get("Location")
	assert.Empty(t, rec.Result().Cookies())
	assert.Contains(t, get(h, loc, cs...).Body.String(), "Your cart is full.")
}

func TestCartAdd_RejectsForeignReturn(t *testing.T) {
	h := newTestServer(t, &fakeAPI{})
	rec := postForm(h, "/cart/add", url.Values{"bookID": {"1"}, "price": {"1"}, "return": {"//evil.test/x"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestSafeReturn(t *testing.T) {
	assert.Equal(t, "/?page=2", safeReturn("/?page=2", "/"))
	assert.Equal(t, "/", safeReturn("", "/"))
	assert.Equal(t, "/", safeReturn("https://evil.test", "/"))
	assert.Equal(t, "/cart", safeReturn(`/\evil.test`, "/cart"))
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$0.00", formatMoney(0))
	assert.Equal(t, "$25.00", formatMoney(2500))
	assert.Equal(t, "$1,234.50", formatMoney(123450))
}

func TestStaticAssets(t *testing.T) {
	rec := get(newTestServer(t, &fakeAPI{}), "/static/style.css")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUnknownPath(t *testing.T) {
	rec := get(newTestServer(t, &fakeAPI{err: errors.New("unused")}), "/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
