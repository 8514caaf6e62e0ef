package flow

import (
	"context"
	"errors"
	"sync"

	"github.com/svj/nbeconnect/internal/db"
	"github.com/svj/nbeconnect/internal/model"
)

// fakeStore is an in-memory EntryStore with hooks for failure injection.
type fakeStore struct {
	mu      sync.Mutex
	entries map[string]*model.Entry

	addErr    error
	lookupErr error
	updateErr error
	adds      int
	updates   int
}

func newFakeStore(entries ...*model.Entry) *fakeStore {
	s := &fakeStore{entries: map[string]*model.Entry{}}
	for _, e := range entries {
		s.entries[e.ID] = e
	}
	return s
}

func (s *fakeStore) GetEntry(_ context.Context, id string) (*model.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, nil
}

func (s *fakeStore) GetEntryByUniqueID(_ context.Context, domain, uniqueID string) (*model.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	for _, e := range s.entries {
		if e.Domain == domain && e.UniqueID == uniqueID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) AddEntry(_ context.Context, e *model.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.addErr != nil {
		return s.addErr
	}
	for _, existing := range s.entries {
		if existing.Domain == e.Domain && existing.UniqueID == e.UniqueID {
			return db.ErrDuplicate
		}
	}
	cp := *e
	s.entries[e.ID] = &cp
	s.adds++
	return nil
}

func (s *fakeStore) UpdateEntryData(_ context.Context, id string, data model.EntryData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updateErr != nil {
		return s.updateErr
	}
	e, ok := s.entries[id]
	if !ok {
		return db.ErrNotFound
	}
	e.Data = data
	s.updates++
	return nil
}

func (s *fakeStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

var errStoreDown = errors.New("store down")
