package main

import (
	catalogapi "github.com/ahinestrog/bookcatalog/api/catalog"
)

// Book is one row of the books table.
type Book struct {
	ID             int64
	Title          string
	Author         string
	Publisher      string
	ISBN           string
	Classification string
	PageCount      int
	PriceCents     int64
}

// ---- mapping row <-> wire ----

func bookToAPI(b *Book) catalogapi.Book {
	return catalogapi.Book{
		BookID:         b.ID,
		Title:          b.Title,
		Author:         b.Author,
		Publisher:      b.Publisher,
		ISBN:           b.ISBN,
		Classification: b.Classification,
		PageCount:      b.PageCount,
		Price:          catalogapi.Money(b.PriceCents),
	}
}

func bookFromAPI(b catalogapi.Book) *Book {
	return &Book{
		ID:             b.BookID,
		Title:          b.Title,
		Author:         b.Author,
		Publisher:      b.Publisher,
		ISBN:           b.ISBN,
		Classification: b.Classification,
		PageCount:      b.PageCount,
		PriceCents:     int64(b.Price),
	}
}
