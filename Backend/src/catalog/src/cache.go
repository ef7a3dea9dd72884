package main

import (
	"context"
	"strconv"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// cachedRepo keeps recently read books by id. Writes go straight to the
// underlying repository and drop the cached entry afterwards; List is never
// served from the cache.
//
// gen is bumped before and after every write. A read only fills the cache if
// gen did not move while it was loading, so a row read before a write is
// never stored after it.
type cachedRepo struct {
	Repository
	books *lru.Cache[int64, Book]
	sfg   singleflight.Group

	mu  sync.Mutex
	gen uint64
}

// NewCachedRepo wraps repo with an LRU of size entries. size <= 0 returns repo
// unchanged.
func NewCachedRepo(repo Repository, size int) (Repository, error) {
	if size <= 0 {
		return repo, nil
	}
	c, err := lru.New[int64, Book](size)
	if err != nil {
		return nil, err
	}
	return &cachedRepo{Repository: repo, books: c}, nil
}

func (r *cachedRepo) Get(ctx context.Context, id int64) (*Book, error) {
	if b, ok := r.books.Get(id); ok {
		return &b, nil
	}
	v, err, _ := r.sfg.Do(strconv.FormatInt(id, 10), func() (any, error) {
		start := r.generation()
		b, err := r.Repository.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		r.store(id, *b, start)
		return *b, nil
	})
	if err != nil {
		return nil, err
	}
	b := v.(Book)
	return &b, nil
}

func (r *cachedRepo) generation() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gen
}

// store caches b unless a write started since start.
func (r *cachedRepo) store(id int64, b Book, start uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.gen == start {
		r.books.Add(id, b)
	}
}

func (r *cachedRepo) Replace(ctx context.Context, id int64, b *Book) error {
	r.bump()
	defer r.invalidate(id)
	return r.Repository.Replace(ctx, id, b)
}

func (r *cachedRepo) Delete(ctx context.Context, id int64) error {
	r.bump()
	defer r.invalidate(id)
	return r.Repository.Delete(ctx, id)
}

func (r *cachedRepo) bump() {
	r.mu.Lock()
	r.gen++
	r.mu.Unlock()
}

// invalidate drops id from the cache and detaches any in-flight read of it.
func (r *cachedRepo) invalidate(id int64) {
	r.mu.Lock()
	r.gen++
	r.books.Remove(id)
	r.mu.Unlock()
	r.sfg.Forget(strconv.FormatInt(id, 10))
}
