package lockout

import (
	"context"
	"sync"
	"time"

	"github.com/juliezimmer/task-manager-api/internal/application/ports"
)

type entry struct {
	failures    int
	lockedUntil time.Time
}

// MemoryStore is an in-memory LoginLockoutStore suitable for
// single-instance deployment. For multi-instance, use a shared store
// (e.g. Redis).
type MemoryStore struct {
	mu       sync.RWMutex
	data     map[string]*entry
	max      int
	cooldown time.Duration
}

// NewMemoryStore returns a lockout store with given max attempts and
// cooldown. maxAttempts 0 = disabled.
func NewMemoryStore(maxAttempts, cooldownSeconds int) *MemoryStore {
	cd := time.Duration(cooldownSeconds) * time.Second
	if cd <= 0 {
		cd = 15 * time.Minute
	}
	return &MemoryStore{
		data:     make(map[string]*entry),
		max:      maxAttempts,
		cooldown: cd,
	}
}

func (s *MemoryStore) IsLocked(ctx context.Context, email string) (locked bool, retryAfterSeconds int) {
	if s.max <= 0 {
		return false, 0
	}
	s.mu.RLock()
	e, ok := s.data[email]
	s.mu.RUnlock()
	if !ok || e == nil {
		return false, 0
	}
	if time.Now().Before(e.lockedUntil) {
		secs := int(time.Until(e.lockedUntil).Seconds())
		if secs < 1 {
			secs = 1
		}
		return true, secs
	}
	return false, 0
}

func (s *MemoryStore) RecordFailure(ctx context.Context, email string) {
	if s.max <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.data[email]
	if e == nil {
		e = &entry{}
		s.data[email] = e
	}
	// If an old lock has expired, reset the count so a fresh lockout
	// can apply after max attempts again.
	now := time.Now()
	if !e.lockedUntil.IsZero() && now.After(e.lockedUntil) {
		e.failures = 0
		e.lockedUntil = time.Time{}
	}
	e.failures++
	if e.failures >= s.max {
		e.lockedUntil = now.Add(s.cooldown)
	}
}

func (s *MemoryStore) RecordSuccess(ctx context.Context, email string) {
	if s.max <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, email)
}

var _ ports.LoginLockoutStore = (*MemoryStore)(nil)
