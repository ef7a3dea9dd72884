package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

var ErrIDMismatch = errors.New("ID mismatch")

const (
	RKBookCreated = "catalog.book.created"
	RKBookUpdated = "catalog.book.updated"
	RKBookDeleted = "catalog.book.deleted"
)

type Events interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
}

type BookEvent struct {
	BookID int64 `json:"bookID"`
}

// Service is the Catalog Service: store operations plus the identifier rules
// and catalog.book.* notifications.
type Service struct {
	repo   Repository
	events Events
}

func NewService(repo Repository, events Events) *Service {
	return &Service{repo: repo, events: events}
}

func (s *Service) List(ctx context.Context) ([]*Book, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*Book, error) {
	return s.repo.Get(ctx, id)
}

// Create stores b under a fresh id; any id carried by b is ignored.
func (s *Service) Create(ctx context.Context, b *Book) (*Book, error) {
	in := *b
	in.ID = 0
	out, err := s.repo.Insert(ctx, &in)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, RKBookCreated, out.ID)
	return out, nil
}

// Update replaces book id with b. b.ID must equal id; nothing is written
// otherwise. A book deleted before the write yields ErrNotFound.
func (s *Service) Update(ctx context.Context, id int64, b *Book) error {
	if b.ID != id {
		return fmt.Errorf("%w: path %d, body %d", ErrIDMismatch, id, b.ID)
	}
	if err := s.repo.Replace(ctx, id, b); err != nil {
		return err
	}
	s.publish(ctx, RKBookUpdated, id)
	return nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, RKBookDeleted, id)
	return nil
}

func (s *Service) publish(ctx context.Context, key string, id int64) {
	if s.events == nil {
		return
	}
	body, _ := json.Marshal(BookEvent{BookID: id})
	if err := s.events.Publish(ctx, key, body); err != nil {
		log.Warn().Err(err).Str("rk", key).Int64("book", id).Msg("publish event failed")
	}
}
