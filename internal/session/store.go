package session

import (
	"sync"
	"time"

	"smartparking/internal/entities"
)

// TTL is how long a conversation context survives without updates.
const TTL = 3600 * time.Second

// Context is the per-conversation state the assistant keeps between turns.
// LastResults must be the exact collection returned to the client on the
// prior turn; refinement and follow-up logic operate only on this snapshot.
type Context struct {
	LastQuery       string
	LastResults     []entities.ParkingSpot
	LastResponse    string
	LastCoordinates *entities.Coordinates
	Timestamp       time.Time
}

// Update carries the fields a Set call merges into an existing context.
// Nil fields are left untouched.
type Update struct {
	Query       *string
	Results     []entities.ParkingSpot
	Response    *string
	Coordinates *entities.Coordinates
}

// Store maps session identifiers to conversation contexts. It is owned by
// the server process only: nothing is persisted, everything is lost on
// restart. Handlers receive it by reference rather than reaching for a
// package-level map so tests can build their own.
type Store struct {
	mu       sync.RWMutex
	contexts map[string]*Context
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{
		contexts: make(map[string]*Context),
		now:      time.Now,
	}
}

// Get returns the context for the session, or nil when the session is
// unknown or its context has expired.
func (s *Store) Get(sessionID string) *Context {
	if sessionID == "" {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx, ok := s.contexts[sessionID]
	if !ok || s.now().Sub(ctx.Timestamp) > TTL {
		return nil
	}
	cp := *ctx
	return &cp
}

// Set merges the update into any existing context for the session, stamps
// the current time, and sweeps expired entries.
func (s *Store) Set(sessionID string, u Update) {
	if sessionID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, ok := s.contexts[sessionID]
	if !ok {
		ctx = &Context{}
		s.contexts[sessionID] = ctx
	}
	if u.Query != nil {
		ctx.LastQuery = *u.Query
	}
	if u.Results != nil {
		ctx.LastResults = u.Results
	}
	if u.Response != nil {
		ctx.LastResponse = *u.Response
	}
	if u.Coordinates != nil {
		ctx.LastCoordinates = u.Coordinates
	}
	ctx.Timestamp = s.now()

	s.evictLocked(ctx.Timestamp)
}

// Evict removes all contexts older than TTL relative to now. Set already
// sweeps on every write; this is the maintenance entry point for the
// scheduler.
func (s *Store) Evict(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.evictLocked(now)
}

func (s *Store) evictLocked(now time.Time) int {
	evicted := 0
	for id, ctx := range s.contexts {
		if now.Sub(ctx.Timestamp) > TTL {
			delete(s.contexts, id)
			evicted++
		}
	}
	return evicted
}

// Len reports the number of live contexts.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.contexts)
}
