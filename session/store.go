package session

import (
	"sort"
	"sync"
)

// Store keeps sessions of live connections
type Store interface {
	Put(session *Session)
	Get(id string) (*Session, bool)
	// Delete removes and closes session
	Delete(id string) (*Session, bool)
	Count() int
	List() []*Session
}

// MemoryStore is an in-memory, concurrency-safe Store
type MemoryStore struct {
	mu   sync.RWMutex
	byID map[string]*Session
}

func (s *MemoryStore) Put(session *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[session.ID] = session
}

func (s *MemoryStore) Get(id string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.byID[id]
	return session, ok
}

func (s *MemoryStore) Delete(id string) (*Session, bool) {
	s.mu.Lock()
	session, ok := s.byID[id]
	delete(s.byID, id)
	s.mu.Unlock()
	if ok {
		session.Close()
	}
	return session, ok
}

func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

// List returns sessions ordered by creation time
func (s *MemoryStore) List() []*Session {
	s.mu.RLock()
	out := make([]*Session, 0, len(s.byID))
	for _, session := range s.byID {
		out = append(out, session)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Close closes and removes all sessions
func (s *MemoryStore) Close() {
	s.mu.Lock()
	sessions := s.byID
	s.byID = make(map[string]*Session)
	s.mu.Unlock()
	for _, session := range sessions {
		session.Close()
	}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[string]*Session)}
}
