// Package listing derives the visible page of the catalog from the full book
// list: classification filter, title sort, then pagination. Nothing here
// mutates the input slice; every call recomputes from the source list.
package listing

import (
	"net/url"
	"slices"
	"strconv"
	"sync"

	"github.com/ahinestrog/bookcatalog/api/catalog"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const DefaultPageSize = 5

// PageSizes are the selectable page sizes, in display order.
var PageSizes = []int{5, 10, 15}

type SortOrder string

const (
	SortNone SortOrder = ""
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Next is the order a sort request switches to. The first request sorts
// ascending; later ones alternate.
func (o SortOrder) Next() SortOrder {
	if o == SortAsc {
		return SortDesc
	}
	return SortAsc
}

// State is the user's current view selection.
type State struct {
	Category string
	PageSize int
	Page     int
	Sort     SortOrder
}

func DefaultState() State {
	return State{Category: catalog.AllCategories, PageSize: DefaultPageSize, Page: 1}
}

// WithCategory selects a classification and goes back to the first page.
func (s State) WithCategory(c string) State {
	if c == "" {
		c = catalog.AllCategories
	}
	s.Category = c
	s.Page = 1
	return s
}

// WithPageSize changes the page size and goes back to the first page.
func (s State) WithPageSize(n int) State {
	s.PageSize = normalizePageSize(n)
	s.Page = 1
	return s
}

func (s State) WithPage(p int) State {
	if p < 1 {
		p = 1
	}
	s.Page = p
	return s
}

// Toggled flips the title sort direction, keeping category and page.
func (s State) Toggled() State {
	s.Sort = s.Sort.Next()
	return s
}

// Query encodes s as URL query parameters. Defaults are omitted.
func (s State) Query() url.Values {
	q := url.Values{}
	if s.Category != "" && s.Category != catalog.AllCategories {
		q.Set("category", s.Category)
	}
	if s.PageSize != DefaultPageSize {
		q.Set("pageSize", strconv.Itoa(s.PageSize))
	}
	if s.Page > 1 {
		q.Set("page", strconv.Itoa(s.Page))
	}
	if s.Sort != SortNone {
		q.Set("sort", string(s.Sort))
	}
	return q
}

// ParseState reads a State from query parameters. Unknown or malformed values
// fall back to defaults.
func ParseState(q url.Values) State {
	s := DefaultState()
	if c := q.Get("category"); c != "" {
		s.Category = c
	}
	if n, err := strconv.Atoi(q.Get("pageSize")); err == nil {
		s.PageSize = normalizePageSize(n)
	}
	if p, err := strconv.Atoi(q.Get("page")); err == nil && p > 1 {
		s.Page = p
	}
	switch SortOrder(q.Get("sort")) {
	case SortAsc:
		s.Sort = SortAsc
	case SortDesc:
		s.Sort = SortDesc
	}
	return s
}

func normalizePageSize(n int) int {
	if slices.Contains(PageSizes, n) {
		return n
	}
	return DefaultPageSize
}

// Result is one derived view.
type Result struct {
	State      State
	Books      []catalog.Book
	Matching   int
	TotalPages int
	Categories []string
}

// Pages lists 1..TotalPages for rendering page links.
func (r Result) Pages() []int {
	pages := make([]int, r.TotalPages)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}

// Derive runs filter, sort and paginate over books.
func Derive(books []catalog.Book, s State) Result {
	s.PageSize = normalizePageSize(s.PageSize)
	if s.Page < 1 {
		s.Page = 1
	}
	if s.Category == "" {
		s.Category = catalog.AllCategories
	}

	filtered := Filter(books, s.Category)
	sorted := SortByTitle(filtered, s.Sort)

	return Result{
		State:      s,
		Books:      Paginate(sorted, s.Page, s.PageSize),
		Matching:   len(sorted),
		TotalPages: TotalPages(len(sorted), s.PageSize),
		Categories: Categories(books),
	}
}

// Filter keeps books whose classification equals category, or all of them for
// catalog.AllCategories. The result never aliases books.
func Filter(books []catalog.Book, category string) []catalog.Book {
	out := make([]catalog.Book, 0, len(books))
	for _, b := range books {
		if category == catalog.AllCategories || b.Classification == category {
			out = append(out, b)
		}
	}
	return out
}

var (
	collatorMu sync.Mutex
	collator   = collate.New(language.English)
)

func compareTitles(a, b string) int {
	collatorMu.Lock()
	defer collatorMu.Unlock()
	return collator.CompareString(a, b)
}

// SortByTitle returns a stably sorted copy. SortNone keeps the input order.
func SortByTitle(books []catalog.Book, order SortOrder) []catalog.Book {
	out := slices.Clone(books)
	switch order {
	case SortAsc:
		slices.SortStableFunc(out, func(a, b catalog.Book) int { return compareTitles(a.Title, b.Title) })
	case SortDesc:
		slices.SortStableFunc(out, func(a, b catalog.Book) int { return compareTitles(b.Title, a.Title) })
	}
	return out
}

// Paginate returns page (1-based) of size items. Pages past the end are empty.
func Paginate(books []catalog.Book, page, size int) []catalog.Book {
	if size <= 0 || page < 1 {
		return []catalog.Book{}
	}
	start := (page - 1) * size
	if start >= len(books) {
		return []catalog.Book{}
	}
	end := min(start+size, len(books))
	return books[start:end]
}

func TotalPages(n, size int) int {
	if size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Categories lists the distinct classifications in first-seen order.
func Categories(books []catalog.Book) []string {
	seen := make(map[string]struct{}, len(books))
	var out []string
	for _, b := range books {
		if _, ok := seen[b.Classification]; ok {
			continue
		}
		seen[b.Classification] = struct{}{}
		out = append(out, b.Classification)
	}
	return out
}
