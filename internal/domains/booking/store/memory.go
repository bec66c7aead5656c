package store

import (
	"context"
	"stay/internal/domains/booking/model"
	"sync"
)

// memoryDrafts is a map-backed Drafts for tests and single-node runs
// without Redis. Entries do not expire.
type memoryDrafts struct {
	mu     sync.RWMutex
	drafts map[string]model.Draft
}

func NewMemoryDrafts() Drafts {
	return &memoryDrafts{
		drafts: map[string]model.Draft{},
	}
}

func (s *memoryDrafts) Save(_ context.Context, draft model.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.drafts[draft.ID] = draft

	return nil
}

func (s *memoryDrafts) Get(_ context.Context, id string) (model.Draft, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	draft, found := s.drafts[id]

	return draft, found, nil
}

func (s *memoryDrafts) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.drafts, id)

	return nil
}

type memoryPending struct {
	mu      sync.RWMutex
	markers map[string]model.PendingReservation
}

func NewMemoryPending() Pending {
	return &memoryPending{
		markers: map[string]model.PendingReservation{},
	}
}

func (s *memoryPending) Record(_ context.Context, sessionID string, marker model.PendingReservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.markers[sessionID] = marker

	return nil
}

func (s *memoryPending) Peek(_ context.Context, sessionID string) (model.PendingReservation, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	marker, found := s.markers[sessionID]

	return marker, found, nil
}
