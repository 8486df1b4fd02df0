// Package wellness holds the tick-driven guided exercise machines: the
// 4-7-8 breathing cycle and the meditation countdown. Both are advanced
// by the shared one-second ticker, same as the crisis countdown, and each
// machine carries its own lock because that ticker and request handlers
// touch it concurrently.
package wellness

import (
	"sync"

	"github.com/solacehq/solace/internal/config"
)

// BreathPhase is one leg of the 4-7-8 cycle.
type BreathPhase string

const (
	PhaseInhale BreathPhase = "inhale"
	PhaseHold   BreathPhase = "hold"
	PhaseExhale BreathPhase = "exhale"
)

// Breathing is the 4-7-8 exercise machine. Each Tick consumes one second
// of the current phase; exhale rolls over into the next cycle's inhale.
type Breathing struct {
	mu        sync.Mutex
	phase     BreathPhase
	remaining int
	cycles    int
	running   bool
}

// BreathingStatus is a consistent read of the machine.
type BreathingStatus struct {
	Phase     BreathPhase
	Remaining int
	Cycles    int
	Running   bool
}

func NewBreathing() *Breathing {
	return &Breathing{phase: PhaseInhale, remaining: config.BreathInhale}
}

func (b *Breathing) Start() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.running = true
}

func (b *Breathing) Pause() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.running = false
}

func (b *Breathing) Running() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.running
}

func (b *Breathing) Phase() BreathPhase {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.phase
}

func (b *Breathing) Remaining() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.remaining
}

func (b *Breathing) Cycles() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cycles
}

// Status snapshots every field in one lock acquisition.
func (b *Breathing) Status() BreathingStatus {
	b.mu.Lock()
	defer b.mu.Unlock()
	return BreathingStatus{
		Phase:     b.phase,
		Remaining: b.remaining,
		Cycles:    b.cycles,
		Running:   b.running,
	}
}

// Tick advances the machine by one second. Paused machines ignore ticks.
func (b *Breathing) Tick() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.running {
		return
	}
	b.remaining--
	if b.remaining > 0 {
		return
	}
	switch b.phase {
	case PhaseInhale:
		b.phase = PhaseHold
		b.remaining = config.BreathHold
	case PhaseHold:
		b.phase = PhaseExhale
		b.remaining = config.BreathExhale
	case PhaseExhale:
		b.cycles++
		b.phase = PhaseInhale
		b.remaining = config.BreathInhale
	}
}

// Reset returns the machine to a fresh paused inhale.
func (b *Breathing) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.phase = PhaseInhale
	b.remaining = config.BreathInhale
	b.cycles = 0
	b.running = false
}
