// Package otpstore keeps pending one-time codes in process memory.
package otpstore

import (
	"sync"
	"time"
)

// Record is a pending code for one phone number. Only the hash is kept.
type Record struct {
	Hash      string
	ExpiresAt time.Time
}

type Store struct {
	mu      sync.Mutex
	records map[string]Record
	now     func() time.Time
}

type Option func(*Store)

// WithClock replaces time.Now, for tests
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func New(opts ...Option) *Store {
	s := &Store{
		records: make(map[string]Record),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save stores the code for phone, replacing any code still pending.
func (s *Store) Save(phone, hash string, ttl time.Duration) Record {
	rec := Record{Hash: hash, ExpiresAt: s.now().Add(ttl)}

	s.mu.Lock()
	s.records[phone] = rec
	s.mu.Unlock()

	return rec
}

// Get returns the pending record for phone. Expired records are returned
// with expired=true and removed, so the caller can tell "expired" apart
// from "never sent".
func (s *Store) Get(phone string) (rec Record, expired bool, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok = s.records[phone]
	if !ok {
		return Record{}, false, false
	}
	if !s.now().Before(rec.ExpiresAt) {
		delete(s.records, phone)
		return rec, true, true
	}
	return rec, false, true
}

// Consume removes the record for phone if it still holds hash. It returns
// false when another request consumed or replaced the code first.
func (s *Store) Consume(phone, hash string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[phone]
	if !ok || rec.Hash != hash {
		return false
	}
	delete(s.records, phone)
	return true
}

func (s *Store) Delete(phone string) {
	s.mu.Lock()
	delete(s.records, phone)
	s.mu.Unlock()
}

// PurgeExpired drops every expired record and reports how many were removed
func (s *Store) PurgeExpired() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for phone, rec := range s.records {
		if !now.Before(rec.ExpiresAt) {
			delete(s.records, phone)
			removed++
		}
	}
	return removed
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
