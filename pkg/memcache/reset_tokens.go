package memcache

import (
	"sync"
	"time"
)

type ResetTokenStore interface {
	Set(token string, email string, ttl time.Duration)

	// Consume returns the email for token if not expired and removes the
	// token. Returns "" if missing or expired.
	Consume(token string) string

	// Peek reads without consuming.
	Peek(token string) (string, bool)

	// Purge drops expired tokens and reports how many were removed.
	Purge() int
}

type entry struct {
	email     string
	expiresAt time.Time
}

type ResetTokens struct {
	mu   sync.RWMutex
	data map[string]entry
	now  func() time.Time
}

func NewResetTokens() *ResetTokens {
	return &ResetTokens{
		data: make(map[string]entry),
		now:  time.Now,
	}
}

func (s *ResetTokens) Set(token string, email string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[token] = entry{
		email:     email,
		expiresAt: s.now().Add(ttl),
	}
}

func (s *ResetTokens) Consume(token string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[token]
	if !ok {
		return ""
	}
	delete(s.data, token)
	if s.now().After(e.expiresAt) {
		return ""
	}
	return e.email
}

func (s *ResetTokens) Peek(token string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[token]
	if !ok || s.now().After(e.expiresAt) {
		return "", false
	}
	return e.email, true
}

func (s *ResetTokens) Purge() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for token, e := range s.data {
		if now.After(e.expiresAt) {
			delete(s.data, token)
			removed++
		}
	}
	return removed
}
