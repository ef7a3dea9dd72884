package main

import (
	"context"
	"errors"
	"sync"
)

// memRepo is an in-memory Repository for service and handler tests.
type memRepo struct {
	mu     sync.Mutex
	books  map[int64]Book
	order  []int64
	nextID int64
	err    error
	gets   int
	writes int
}

func newMemRepo(books ...Book) *memRepo {
	r := &memRepo{books: map[int64]Book{}}
	for _, b := range books {
		b := b
		_, _ = r.Insert(context.Background(), &b)
	}
	r.writes = 0
	return r
}

func (r *memRepo) List(context.Context) ([]*Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := []*Book{}
	for _, id := range r.order {
		b := r.books[id]
		out = append(out, &b)
	}
	return out, nil
}

func (r *memRepo) Get(_ context.Context, id int64) (*Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gets++
	if r.err != nil {
		return nil, r.err
	}
	b, ok := r.books[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &b, nil
}

func (r *memRepo) Insert(_ context.Context, b *Book) (*Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	r.writes++
	r.nextID++
	out := *b
	out.ID = r.nextID
	r.books[out.ID] = out
	r.order = append(r.order, out.ID)
	return &out, nil
}

func (r *memRepo) Replace(_ context.Context, id int64, b *Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if _, ok := r.books[id]; !ok {
		return ErrNotFound
	}
	r.writes++
	nb := *b
	nb.ID = id
	r.books[id] = nb
	return nil
}

func (r *memRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if _, ok := r.books[id]; !ok {
		return ErrNotFound
	}
	r.writes++
	delete(r.books, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

type published struct {
	key  string
	body string
}

// eventRecorder captures published catalog events.
type eventRecorder struct {
	mu     sync.Mutex
	events []published
	err    error
}

func (e *eventRecorder) Publish(_ context.Context, key string, body []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.err != nil {
		return e.err
	}
	e.events = append(e.events, published{key: key, body: string(body)})
	return nil
}

var errBoom = errors.New("boom")
