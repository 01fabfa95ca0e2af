package runtime

import (
	"campus-chat/domain/event"
	"context"
	"sync"
)

type RecordingSink struct {
	mu     sync.Mutex
	events []event.Event
}

func (s *RecordingSink) Consume(_ context.Context, e event.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return nil
}

func (s *RecordingSink) Types() []event.Type {
	s.mu.Lock()
	defer s.mu.Unlock()
	types := make([]event.Type, 0, len(s.events))
	for _, e := range s.events {
		types = append(types, e.Type)
	}
	return types
}

func (s *RecordingSink) OfType(t event.Type) []event.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []event.Event
	for _, e := range s.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

func (s *RecordingSink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = nil
}
