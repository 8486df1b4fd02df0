package crisis

import (
	"sync"

	"github.com/solacehq/solace/internal/config"
	"github.com/solacehq/solace/internal/domain"
)

// State of the interstitial machine.
type State string

const (
	StateArmed       State = "armed"
	StateCounting    State = "counting"
	StateDismissable State = "dismissable"
	StateClosed      State = "closed"
)

// Interstitial is the mandatory safety overlay. The generic close action is
// gated by the countdown; the emergency contacts are not — they are live
// from the moment the interstitial is armed. The machine carries its own
// lock: the shared ticker and request handlers touch it concurrently.
type Interstitial struct {
	mu        sync.Mutex
	state     State
	countdown int

	// guardianAlerted comes only from the oracle payload; the client never
	// fabricates it. Nil means unknown (client-side trigger only).
	guardianAlerted *bool
	crisisLevel     string
}

// Status is a consistent read of the machine, taken under its lock.
type Status struct {
	State           State
	Countdown       int
	GuardianAlerted *bool
	CrisisLevel     string
}

// New arms an interstitial with the given countdown. A countdown of zero or
// less arms it already dismissable.
func New(countdown int) *Interstitial {
	if countdown <= 0 {
		return &Interstitial{state: StateDismissable}
	}
	return &Interstitial{state: StateArmed, countdown: countdown}
}

func (i *Interstitial) State() State {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.state
}

// Countdown returns remaining ticks; never negative.
func (i *Interstitial) Countdown() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.countdown
}

func (i *Interstitial) CrisisLevel() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.crisisLevel
}

// Status snapshots every field in one lock acquisition, so a render never
// mixes the state of one tick with the countdown of another.
func (i *Interstitial) Status() Status {
	i.mu.Lock()
	defer i.mu.Unlock()
	return Status{
		State:           i.state,
		Countdown:       i.countdown,
		GuardianAlerted: i.guardianAlerted,
		CrisisLevel:     i.crisisLevel,
	}
}

// Tick decrements the countdown by one. It is driven by a single shared
// ticker, so a stalled tick source stalls the countdown rather than
// catching up; the countdown never goes below zero and the transition to
// Dismissable fires exactly once.
func (i *Interstitial) Tick() {
	i.mu.Lock()
	defer i.mu.Unlock()
	switch i.state {
	case StateArmed:
		i.state = StateCounting
		fallthrough
	case StateCounting:
		if i.countdown > 0 {
			i.countdown--
		}
		if i.countdown == 0 {
			i.state = StateDismissable
		}
	default:
		// Dismissable and Closed ignore further ticks.
	}
}

// Dismiss closes the interstitial. While the countdown is running it is a
// no-op returning ErrInterstitialLocked; the machine, not styling, enforces
// the gate.
func (i *Interstitial) Dismiss() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	switch i.state {
	case StateDismissable:
		i.state = StateClosed
		return nil
	case StateClosed:
		return nil
	default:
		return domain.ErrInterstitialLocked
	}
}

// SetServerSignal overwrites the guardian/level fields from an oracle
// crisis payload. The server-side classification is authoritative.
func (i *Interstitial) SetServerSignal(guardianAlerted *bool, level string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.guardianAlerted = guardianAlerted
	i.crisisLevel = level
}

// ShowGuardianBanner reports whether the guardian notice renders.
func (i *Interstitial) ShowGuardianBanner() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.guardianAlerted != nil && *i.guardianAlerted
}

// Contacts returns the emergency actions. They render in every state.
func (i *Interstitial) Contacts() []config.EmergencyContact {
	return config.EmergencyContacts
}
