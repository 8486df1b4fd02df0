package crisis

import (
	"sync"
	"time"

	"github.com/solacehq/solace/internal/domain"
)

type entry struct {
	interstitial *Interstitial
	armedAt      time.Time
}

// Center tracks the live interstitial per user namespace. Entries are
// ephemeral: destroyed once the countdown is done and the user dismisses,
// or reaped after maxAge.
type Center struct {
	mu        sync.Mutex
	countdown int
	maxAge    time.Duration
	entries   map[string]*entry
	now       func() time.Time
}

func NewCenter(countdown int, maxAge time.Duration) *Center {
	return &Center{
		countdown: countdown,
		maxAge:    maxAge,
		entries:   make(map[string]*entry),
		now:       time.Now,
	}
}

// Arm creates an interstitial for the namespace, or returns the live one.
// Re-arming while one is live never restarts its countdown.
func (c *Center) Arm(namespace string) *Interstitial {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[namespace]; ok && e.interstitial.State() != StateClosed {
		return e.interstitial
	}
	i := New(c.countdown)
	c.entries[namespace] = &entry{interstitial: i, armedAt: c.now()}
	return i
}

// Get returns the live interstitial, or ErrNoInterstitial.
func (c *Center) Get(namespace string) (*Interstitial, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[namespace]
	if !ok || e.interstitial.State() == StateClosed {
		return nil, domain.ErrNoInterstitial
	}
	return e.interstitial, nil
}

// Dismiss applies the user's close action and drops the entry once closed.
func (c *Center) Dismiss(namespace string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[namespace]
	if !ok {
		return domain.ErrNoInterstitial
	}
	if err := e.interstitial.Dismiss(); err != nil {
		return err
	}
	delete(c.entries, namespace)
	return nil
}

// Tick advances every live countdown by one and reaps abandoned entries.
// Called once per second by the shared ticker in main.
func (c *Center) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()
	cutoff := c.now().Add(-c.maxAge)
	for ns, e := range c.entries {
		e.interstitial.Tick()
		if e.armedAt.Before(cutoff) {
			delete(c.entries, ns)
		}
	}
}
