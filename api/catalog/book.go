// Package catalog holds the wire contract of the Catalog Service and an HTTP
// client for it. Backend, frontend and bookctl all speak these types.
package catalog

// Book is the JSON shape served under /api/books.
type Book struct {
	BookID         int64  `json:"bookID"`
	Title          string `json:"title"`
	Author         string `json:"author"`
	Publisher      string `json:"publisher"`
	ISBN           string `json:"isbn"`
	Classification string `json:"classification"`
	PageCount      int    `json:"pageCount"`
	Price          Money  `json:"price"`
}

// AllCategories is the classification selector value that disables filtering.
const AllCategories = "All"
