package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("book not found")

// Repository is the Catalog Store. It always works on the full table: no
// filtering, sorting or paging happens here.
type Repository interface {
	List(ctx context.Context) ([]*Book, error)
	Get(ctx context.Context, id int64) (*Book, error)
	Insert(ctx context.Context, b *Book) (*Book, error)
	Replace(ctx context.Context, id int64, b *Book) error
	Delete(ctx context.Context, id int64) error
}

type sqliteRepo struct{ db *sql.DB }

func NewSQLiteRepo(db *sql.DB) Repository { return &sqliteRepo{db: db} }

const bookColumns = `id,title,author,publisher,isbn,classification,page_count,price_cents`

type scanner interface{ Scan(dest ...any) error }

func scanBook(s scanner) (*Book, error) {
	var b Book
	err := s.Scan(&b.ID, &b.Title, &b.Author, &b.Publisher, &b.ISBN, &b.Classification, &b.PageCount, &b.PriceCents)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *sqliteRepo) List(ctx context.Context) ([]*Book, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+bookColumns+` FROM books ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	out := []*Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return out, nil
}

func (r *sqliteRepo) Get(ctx context.Context, id int64) (*Book, error) {
	b, err := scanBook(r.db.QueryRowContext(ctx, `SELECT `+bookColumns+` FROM books WHERE id=?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get book %d: %w", id, err)
	}
	return b, nil
}

func (r *sqliteRepo) Insert(ctx context.Context, b *Book) (*Book, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO books(title,author,publisher,isbn,classification,page_count,price_cents)
		VALUES (?,?,?,?,?,?,?)`,
		b.Title, b.Author, b.Publisher, b.ISBN, b.Classification, b.PageCount, b.PriceCents)
	if err != nil {
		return nil, fmt.Errorf("failed to insert book: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read new book id: %w", err)
	}
	out := *b
	out.ID = id
	return &out, nil
}

func (r *sqliteRepo) Replace(ctx context.Context, id int64, b *Book) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE books
		SET title=?, author=?, publisher=?, isbn=?, classification=?, page_count=?, price_cents=?
		WHERE id=?`,
		b.Title, b.Author, b.Publisher, b.ISBN, b.Classification, b.PageCount, b.PriceCents, id)
	if err != nil {
		return fmt.Errorf("failed to update book %d: %w", id, err)
	}
	return expectOneRow(res)
}

func (r *sqliteRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete book %d: %w", id, err)
	}
	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
