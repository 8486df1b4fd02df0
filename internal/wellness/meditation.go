package wellness

import (
	"slices"
	"sync"

	"github.com/solacehq/solace/internal/config"
)

// Meditation is a plain countdown over one of the preset durations, with
// an ambient track name attached for the client player.
type Meditation struct {
	mu        sync.Mutex
	track     string
	total     int
	remaining int
	running   bool
	done      bool
}

// MeditationStatus is a consistent read of the countdown.
type MeditationStatus struct {
	Track     string
	Total     int
	Remaining int
	Running   bool
	Done      bool
}

// NewMeditation builds a session. Durations outside the preset list snap
// to the shortest preset.
func NewMeditation(minutes int, track string) *Meditation {
	if !slices.Contains(config.MeditationDurations, minutes) {
		minutes = config.MeditationDurations[0]
	}
	if !slices.Contains(config.MeditationTracks, track) {
		track = config.MeditationTracks[0]
	}
	total := minutes * 60
	return &Meditation{track: track, total: total, remaining: total}
}

func (m *Meditation) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.running = !m.done
}

func (m *Meditation) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.running = false
}

func (m *Meditation) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

func (m *Meditation) Done() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.done
}

// Track and Total are set at construction and never change.
func (m *Meditation) Track() string { return m.track }
func (m *Meditation) Total() int    { return m.total }

func (m *Meditation) Remaining() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.remaining
}

// Status snapshots every field in one lock acquisition.
func (m *Meditation) Status() MeditationStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return MeditationStatus{
		Track:     m.track,
		Total:     m.total,
		Remaining: m.remaining,
		Running:   m.running,
		Done:      m.done,
	}
}

// Tick consumes one second. Finishing stops the machine for good.
func (m *Meditation) Tick() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.running || m.done {
		return
	}
	m.remaining--
	if m.remaining <= 0 {
		m.remaining = 0
		m.done = true
		m.running = false
	}
}
