package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrAmountRange is returned for amounts that do not fit in Money.
var ErrAmountRange = errors.New("amount out of range")

// Money is a currency amount in cents. On the wire it is a decimal number
// with two fraction digits.
type Money int64

// ParseMoney reads a decimal amount such as "12.5", "$12.50" or "-3". Digits
// past the cent are rounded half away from zero on the decimal text, so
// "1.005" is 1.01. Exponent forms like "1e3" go through FromFloat.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if s == "" {
		return 0, nil
	}
	if strings.ContainsAny(s, "eE") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid amount %q: %w", s, err)
		}
		return FromFloat(f)
	}

	neg := false
	digits := s
	switch {
	case strings.HasPrefix(digits, "-"):
		neg, digits = true, digits[1:]
	case strings.HasPrefix(digits, "+"):
		digits = digits[1:]
	}
	whole, frac, _ := strings.Cut(digits, ".")
	if (whole == "" && frac == "") || !allDigits(whole) || !allDigits(frac) {
		return 0, fmt.Errorf("invalid amount %q", s)
	}

	var units uint64
	if whole != "" {
		n, err := strconv.ParseUint(whole, 10, 64)
		if err != nil || n > math.MaxInt64/100 {
			return 0, fmt.Errorf("%w: %q", ErrAmountRange, s)
		}
		units = n * 100
	}
	frac += "000"
	cents := uint64(frac[0]-'0')*10 + uint64(frac[1]-'0')
	if frac[2] >= '5' {
		cents++
	}
	units += cents
	if units > math.MaxInt64 {
		return 0, fmt.Errorf("%w: %q", ErrAmountRange, s)
	}
	if neg {
		return -Money(units), nil
	}
	return Money(units), nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// FromFloat rounds f*100 to the nearest integer, half away from zero. The
// rounding applies to the binary value of f, so 1.005 (stored just below)
// gives 100; use ParseMoney for decimal text.
func FromFloat(f float64) (Money, error) {
	c := math.Round(f * 100)
	if math.IsNaN(c) || c >= math.MaxInt64 || c < math.MinInt64 {
		return 0, fmt.Errorf("%w: %v", ErrAmountRange, f)
	}
	return Money(c), nil
}

func (m Money) Float() float64 { return float64(m) / 100 }

func (m Money) Mul(qty int) Money { return m * Money(qty) }

func (m Money) String() string {
	sign := ""
	u := uint64(m)
	if m < 0 {
		sign = "-"
		u = uint64(-(m + 1)) + 1
	}
	return fmt.Sprintf("%s%d.%02d", sign, u/100, u%100)
}

func (m Money) MarshalJSON() ([]byte, error) { return []byte(m.String()), nil }

func (m *Money) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*m = 0
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("price: %w", err)
	}
	v, err := ParseMoney(n.String())
	if err != nil {
		return fmt.Errorf("price: %w", err)
	}
	*m = v
	return nil
}
