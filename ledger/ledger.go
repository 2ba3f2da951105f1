package ledger

import (
	"context"
	"sync"
	"time"
)

// Ledger records which webhook event IDs have already been handled, so
// redelivered events do not repeat their side effects.
type Ledger interface {
	// MarkProcessed records the event ID and reports whether this is the
	// first time it has been seen.
	MarkProcessed(ctx context.Context, eventID string) (bool, error)
	// Forget removes the event ID so a redelivery is processed again.
	Forget(ctx context.Context, eventID string)
}

// MemoryLedger is an in-process Ledger with TTL-bounded entries. Losing it
// on restart is acceptable: the upstream delivers at least once, and a
// reprocessed event only repeats a notification.
type MemoryLedger struct {
	mu        sync.Mutex
	ttl       time.Duration
	entries   map[string]time.Time
	lastSweep time.Time
	now       func() time.Time
}

func NewMemoryLedger(ttl time.Duration) *MemoryLedger {
	return &MemoryLedger{
		ttl:     ttl,
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (l *MemoryLedger) MarkProcessed(_ context.Context, eventID string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	if processedAt, ok := l.entries[eventID]; ok && now.Sub(processedAt) < l.ttl {
		return false, nil
	}
	l.entries[eventID] = now
	return true, nil
}

func (l *MemoryLedger) Forget(_ context.Context, eventID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.entries, eventID)
}

// sweep drops expired entries at most once per TTL interval.
func (l *MemoryLedger) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.ttl {
		return
	}
	for id, processedAt := range l.entries {
		if now.Sub(processedAt) >= l.ttl {
			delete(l.entries, id)
		}
	}
	l.lastSweep = now
}
