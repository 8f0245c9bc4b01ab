package audit

import (
	"context"
	"sync"

	id "pessoas/pkg/domain"
)

// Sink receives audit events for durable storage or forwarding.
type Sink interface {
	Append(ctx context.Context, event Event) error
}

// MemorySink keeps events in memory. Used in tests and single-process setups.
type MemorySink struct {
	mu     sync.RWMutex
	events []Event
}

func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Append(ctx context.Context, event Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// Events returns a snapshot of everything appended so far.
func (s *MemorySink) Events() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

// ListByPerson returns the trail for one person, oldest first.
func (s *MemorySink) ListByPerson(key id.PersonKey) []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Event
	for _, e := range s.events {
		if e.PersonKey == key {
			out = append(out, e)
		}
	}
	return out
}
