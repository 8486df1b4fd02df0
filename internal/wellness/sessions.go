package wellness

import (
	"sync"
	"time"
)

type session struct {
	breathing  *Breathing
	meditation *Meditation
	touchedAt  time.Time
}

// Sessions tracks the live exercise machines per user namespace, driven
// by the shared one-second ticker. Idle sessions are reaped after maxAge.
type Sessions struct {
	mu      sync.Mutex
	maxAge  time.Duration
	entries map[string]*session
	now     func() time.Time
}

func NewSessions(maxAge time.Duration) *Sessions {
	return &Sessions{
		maxAge:  maxAge,
		entries: make(map[string]*session),
		now:     time.Now,
	}
}

func (s *Sessions) get(ns string) *session {
	e, ok := s.entries[ns]
	if !ok {
		e = &session{}
		s.entries[ns] = e
	}
	e.touchedAt = s.now()
	return e
}

// Breathing returns the namespace's breathing machine, creating a paused
// one on first use.
func (s *Sessions) Breathing(ns string) *Breathing {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.get(ns)
	if e.breathing == nil {
		e.breathing = NewBreathing()
	}
	return e.breathing
}

// StartMeditation replaces any running meditation with a fresh session.
func (s *Sessions) StartMeditation(ns string, minutes int, track string) *Meditation {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.get(ns)
	e.meditation = NewMeditation(minutes, track)
	e.meditation.Start()
	return e.meditation
}

// Meditation returns the namespace's current meditation, or nil.
func (s *Sessions) Meditation(ns string) *Meditation {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[ns]
	if !ok {
		return nil
	}
	e.touchedAt = s.now()
	return e.meditation
}

// Tick advances every live machine and reaps idle sessions.
func (s *Sessions) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().Add(-s.maxAge)
	for ns, e := range s.entries {
		if e.breathing != nil {
			e.breathing.Tick()
		}
		if e.meditation != nil {
			e.meditation.Tick()
		}
		if e.touchedAt.Before(cutoff) {
			delete(s.entries, ns)
		}
	}
}
