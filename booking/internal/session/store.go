// Package session keeps one allocator per booking session and serializes
// every call made against it.
package session

import (
	"errors"
	"sync"

	"github.com/meetupaws/coach_seat_booking/booking/internal/allocator"
)

var ErrMissingSessionID = errors.New("missing_session_id")

type Store struct {
	config allocator.Config

	mu       sync.Mutex
	sessions map[string]*entry
}

type entry struct {
	mu        sync.Mutex
	allocator *allocator.Allocator
}

func NewStore(config allocator.Config) (*Store, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Store{
		config:   config,
		sessions: make(map[string]*entry),
	}, nil
}

func (s *Store) Config() allocator.Config {
	return s.config
}

func (s *Store) Book(sessionID string, name string) (allocator.Outcome, error) {
	var out allocator.Outcome
	err := s.with(sessionID, func(a *allocator.Allocator) {
		out = a.Book(name)
	})
	return out, err
}

func (s *Store) Cancel(sessionID string, name string) (allocator.Outcome, error) {
	var out allocator.Outcome
	err := s.with(sessionID, func(a *allocator.Allocator) {
		out = a.Cancel(name)
	})
	return out, err
}

func (s *Store) Status(sessionID string) (allocator.Status, error) {
	var status allocator.Status
	err := s.with(sessionID, func(a *allocator.Allocator) {
		status = a.Status()
	})
	return status, err
}

// End drops the session's grid and waitlist. The next call with the same
// ID starts from an empty allocator.
func (s *Store) End(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Store) with(sessionID string, fn func(a *allocator.Allocator)) error {
	if sessionID == "" {
		return ErrMissingSessionID
	}

	e, err := s.lookup(sessionID)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.allocator)
	return nil
}

func (s *Store) lookup(sessionID string) (*entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.sessions[sessionID]; ok {
		return e, nil
	}

	a, err := allocator.New(s.config)
	if err != nil {
		return nil, err
	}
	e := &entry{allocator: a}
	s.sessions[sessionID] = e
	return e, nil
}
