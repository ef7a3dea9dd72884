package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/ahinestrog/bookcatalog/api/catalog"
	"github.com/ahinestrog/bookcatalog/internal/listing"
	"github.com/rs/zerolog/log"
)

const loadFailed = "Failed to load books."

type cartSummary struct {
	Items int
	Total catalog.Money
}

func summarize(c Cart) cartSummary {
	return cartSummary{Items: c.TotalItems(), Total: c.TotalCost()}
}

type indexView struct {
	Cart      cartSummary
	Err       string
	Result    listing.Result
	PageSizes []int
	Return    string
}

func (v indexView) PageURL(p int) string { return stateURL(v.Result.State.WithPage(p)) }

func (v indexView) SortURL() string { return stateURL(v.Result.State.Toggled()) }

func (v indexView) SortIndicator() string {
	switch v.Result.State.Sort {
	case listing.SortAsc:
		return "▲"
	case listing.SortDesc:
		return "▼"
	}
	return ""
}

func stateURL(s listing.State) string {
	q := s.Query()
	if len(q) == 0 {
		return "/"
	}
	return "/?" + q.Encode()
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.apiCtx(r)
	defer cancel()

	state := listing.ParseState(r.URL.Query())
	sess := s.carts.Open(w, r)
	v := indexView{
		Cart:      summarize(sess.Cart()),
		Result:    listing.Result{State: state},
		PageSizes: listing.PageSizes,
		Return:    r.URL.RequestURI(),
	}

	books, err := s.api.List(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("list books")
		v.Err = loadFailed
	} else {
		v.Result = listing.Derive(books, state)
	}
	s.render(w, s.tplList, v)
}

type cartView struct {
	Msg   string
	Items []CartItem
	Cart  cartSummary
}

func (s *Server) handleCart(w http.ResponseWriter, r *http.Request) {
	c := s.carts.Open(w, r).Cart()
	s.render(w, s.tplCart, cartView{Msg: r.URL.Query().Get("msg"), Items: c.Items(), Cart: summarize(c)})
}

func (s *Server) handleCartAdd(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httpError(w, err.Error(), http.StatusBadRequest)
		return
	}
	item, err := cartItemFromForm(r)
	if err != nil {
		httpError(w, err.Error(), http.StatusBadRequest)
		return
	}
	switch err := s.carts.Open(w, r).Add(item); {
	case errors.Is(err, ErrCartFull):
		http.Redirect(w, r, withMsg("/cart", "Your cart is full. Remove something before adding more."), http.StatusSeeOther)
		return
	case errors.Is(err, ErrQuantityLimit):
		http.Redirect(w, r, withMsg("/cart", fmt.Sprintf("At most %d copies of one book fit in the cart.", MaxQuantity)), http.StatusSeeOther)
		return
	case err != nil:
		httpError(w, err.Error(), http.StatusBadRequest)
		return
	}
	log.Debug().Int64("book", item.BookID).Int("qty", item.Quantity).Msg("cart add")
	http.Redirect(w, r, safeReturn(r.Form.Get("return"), "/"), http.StatusSeeOther)
}

func (s *Server) handleCartRemove(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httpError(w, err.Error(), http.StatusBadRequest)
		return
	}
	id, err := strconv.ParseInt(r.Form.Get("bookID"), 10, 64)
	if err != nil {
		httpError(w, "invalid bookID", http.StatusBadRequest)
		return
	}
	s.carts.Open(w, r).Remove(id)
	http.Redirect(w, r, safeReturn(r.Form.Get("return"), "/cart"), http.StatusSeeOther)
}

func (s *Server) handleCartClear(w http.ResponseWriter, r *http.Request) {
	s.carts.Open(w, r).Clear()
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func cartItemFromForm(r *http.Request) (CartItem, error) {
	id, err := strconv.ParseInt(r.Form.Get("bookID"), 10, 64)
	if err != nil {
		return CartItem{}, errors.New("invalid bookID")
	}
	price, err := catalog.ParseMoney(r.Form.Get("price"))
	if err != nil {
		return CartItem{}, err
	}
	qty := 1
	if q := strings.TrimSpace(r.Form.Get("quantity")); q != "" {
		if qty, err = strconv.Atoi(q); err != nil {
			return CartItem{}, ErrInvalidQuantity
		}
	}
	return CartItem{BookID: id, Title: r.Form.Get("title"), Price: price, Quantity: qty}, nil
}
