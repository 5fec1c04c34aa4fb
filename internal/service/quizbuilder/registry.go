package quizbuilder

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/quizmaker-backend/internal/domain"
)

var (
	// ErrSessionBusy is returned when a session is already running a transition.
	ErrSessionBusy = fmt.Errorf("session busy: %w", domain.ErrConflict)
	// ErrTooManySessions is returned by Create when the registry is full.
	ErrTooManySessions = fmt.Errorf("too many open sessions: %w", domain.ErrConflict)
)

// Registry holds in-progress sessions by id. It lets the HTTP surface
// address a session across requests while keeping each session owned by one
// transition at a time.
type Registry struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*entry
	ttl     time.Duration
	max     int
	log     *slog.Logger
	now     func() time.Time
	stop    chan struct{}
	done    chan struct{}
}

type entry struct {
	mu       sync.Mutex
	session  *Session
	lastUsed time.Time
}

// NewRegistry creates a Registry. Sessions idle for longer than ttl are
// evicted by Cleanup. maxSessions <= 0 means unbounded.
func NewRegistry(logger *slog.Logger, ttl time.Duration, maxSessions int) *Registry {
	return &Registry{
		entries: make(map[uuid.UUID]*entry),
		ttl:     ttl,
		max:     maxSessions,
		log:     logger.With("service", "quiz_sessions"),
		now:     time.Now,
	}
}

// Create opens a new session in COLLECTING and returns its id.
func (r *Registry) Create() (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.max > 0 && len(r.entries) >= r.max {
		return uuid.Nil, ErrTooManySessions
	}

	id := uuid.New()
	r.entries[id] = &entry{session: NewSession(), lastUsed: r.now()}
	return id, nil
}

// Do runs fn with exclusive access to the session. If another call holds the
// session, Do fails fast with ErrSessionBusy rather than queueing.
func (r *Registry) Do(id uuid.UUID, fn func(s *Session) error) error {
	e, err := r.acquire(id)
	if err != nil {
		return err
	}
	defer e.mu.Unlock()

	return fn(e.session)
}

// View runs fn with read access to the session, waiting for a running
// transition to finish.
func (r *Registry) View(id uuid.UUID, fn func(s *Session)) error {
	e, err := r.get(id)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	fn(e.session)
	return nil
}

// Delete discards a session. No store cleanup is needed since only the
// terminal transition creates a quiz.
func (r *Registry) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[id]; !ok {
		return fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}
	delete(r.entries, id)
	return nil
}

// Len returns the number of open sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Cleanup evicts expired and persisted sessions and returns how many were
// removed. Sessions in the middle of a transition are skipped.
func (r *Registry) Cleanup() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	removed := 0
	for id, e := range r.entries {
		if !e.mu.TryLock() {
			continue
		}
		expired := r.ttl > 0 && now.Sub(e.lastUsed) > r.ttl
		persisted := e.session.Stage().IsTerminal()
		e.mu.Unlock()

		if expired || persisted {
			delete(r.entries, id)
			removed++
		}
	}
	return removed
}

// Start runs Cleanup every interval until Stop is called or ctx ends.
func (r *Registry) Start(ctx context.Context, interval time.Duration) {
	stop := make(chan struct{})
	done := make(chan struct{})
	r.stop, r.done = stop, done

	go func() {
		defer close(done)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-stop:
				return
			case <-ticker.C:
				if n := r.Cleanup(); n > 0 {
					r.log.DebugContext(ctx, "quiz sessions evicted", slog.Int("count", n))
				}
			}
		}
	}()
}

// Stop terminates the cleanup goroutine started by Start and waits for it.
func (r *Registry) Stop() {
	if r.stop == nil {
		return
	}
	close(r.stop)
	<-r.done
	r.stop = nil
}

func (r *Registry) get(id uuid.UUID) (*entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}
	return e, nil
}

// acquire locks the session while r.mu is held, so Cleanup cannot evict it
// between lookup and lock. Busy entries are skipped by Cleanup.
func (r *Registry) acquire(id uuid.UUID) (*entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}
	if !e.mu.TryLock() {
		return nil, ErrSessionBusy
	}
	e.lastUsed = r.now()
	return e, nil
}
