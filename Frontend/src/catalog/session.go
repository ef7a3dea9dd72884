package main

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	cartCookie = "cart"

	// A cart larger than one cookie is split into cart, cart.1, cart.2, ...
	// Each value stays well below the ~4096 byte limit browsers apply per
	// cookie, and the total is capped.
	cartChunkSize = 3000
	maxCartChunks = 6
)

var ErrCartFull = errors.New("cart is full")

// CartProvider keeps each browser's cart in session cookies. It is created
// once at startup and handed to the handlers that need it.
type CartProvider struct {
	secure bool
}

func NewCartProvider(secure bool) *CartProvider {
	return &CartProvider{secure: secure}
}

func chunkName(i int) string {
	if i == 0 {
		return cartCookie
	}
	return cartCookie + "." + strconv.Itoa(i)
}

// Open loads the cart for r. Mutations through the returned session are
// written back to w immediately.
func (p *CartProvider) Open(w http.ResponseWriter, r *http.Request) *CartSession {
	s := &CartSession{p: p, w: w, present: map[string]bool{}}
	var value strings.Builder
	contiguous := true
	for i := 0; i < maxCartChunks; i++ {
		c, err := r.Cookie(chunkName(i))
		if err != nil {
			contiguous = false
			continue
		}
		s.present[c.Name] = true
		if contiguous {
			value.WriteString(c.Value)
		}
	}
	s.cart = decodeCart(value.String())
	return s
}

type CartSession struct {
	p       *CartProvider
	w       http.ResponseWriter
	cart    Cart
	present map[string]bool
}

// Cart returns a copy of the current cart. Changes go through the session.
func (s *CartSession) Cart() Cart { return Cart{items: s.cart.Items()} }

// Add merges item into the cart. ErrCartFull means the result would not fit
// in the cart cookies; the cart is left unchanged.
func (s *CartSession) Add(item CartItem) error {
	next := Cart{items: s.cart.Items()}
	if err := next.Add(item); err != nil {
		return err
	}
	value := encodeCart(next)
	if len(value) > cartChunkSize*maxCartChunks {
		return ErrCartFull
	}
	s.cart = next
	s.write(value)
	return nil
}

func (s *CartSession) Remove(bookID int64) {
	s.cart.Remove(bookID)
	s.write(encodeCart(s.cart))
}

func (s *CartSession) Clear() {
	s.cart.Clear()
	s.write(encodeCart(s.cart))
}

// write stores value across as many chunk cookies as it needs and expires
// chunks left over from a larger cart.
func (s *CartSession) write(value string) {
	n := 0
	for ; n == 0 || len(value) > 0; n++ {
		part := value[:min(len(value), cartChunkSize)]
		value = value[len(part):]
		c := s.p.cookie(chunkName(n), part)
		http.SetCookie(s.w, c)
		s.present[c.Name] = true
	}
	for i := n; i < maxCartChunks; i++ {
		name := chunkName(i)
		if !s.present[name] {
			continue
		}
		c := s.p.cookie(name, "")
		c.MaxAge = -1
		http.SetCookie(s.w, c)
		delete(s.present, name)
	}
}

func (p *CartProvider) cookie(name, value string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   p.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func encodeCart(c Cart) string {
	items := c.Items()
	if items == nil {
		items = []CartItem{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		log.Error().Err(err).Msg("encode cart")
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(b)
}

// decodeCart rebuilds a cart from the joined cookie value. Anything unreadable
// gives an empty cart; entries go back through Add so duplicates merge and bad
// quantities are dropped.
func decodeCart(value string) Cart {
	var c Cart
	if value == "" {
		return c
	}
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		log.Debug().Err(err).Msg("discarding cart cookie")
		return c
	}
	var items []CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		log.Debug().Err(err).Msg("discarding cart cookie")
		return c
	}
	for _, it := range items {
		_ = c.Add(it)
	}
	return c
}
