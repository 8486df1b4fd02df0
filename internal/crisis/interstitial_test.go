package crisis

import (
	"testing"
	"time"

	"github.com/solacehq/solace/internal/domain"
)

func TestInterstitial_DismissInertWhileCounting(t *testing.T) {
	i := New(15)

	if i.State() != StateArmed {
		t.Fatalf("state = %q, want %q", i.State(), StateArmed)
	}

	// Dismiss is a no-op for the first 14 ticks.
	for tick := 1; tick < 15; tick++ {
		i.Tick()
		if err := i.Dismiss(); err != domain.ErrInterstitialLocked {
			t.Fatalf("tick %d: Dismiss() = %v, want ErrInterstitialLocked", tick, err)
		}
		if i.State() != StateCounting {
			t.Fatalf("tick %d: state = %q, want %q", tick, i.State(), StateCounting)
		}
	}

	// The 15th tick makes it dismissable.
	i.Tick()
	if i.State() != StateDismissable {
		t.Fatalf("state after 15 ticks = %q, want %q", i.State(), StateDismissable)
	}
	if err := i.Dismiss(); err != nil {
		t.Fatalf("Dismiss() after countdown = %v, want nil", err)
	}
	if i.State() != StateClosed {
		t.Fatalf("state = %q, want %q", i.State(), StateClosed)
	}
}

func TestInterstitial_CountdownNeverNegative(t *testing.T) {
	i := New(3)
	for n := 0; n < 10; n++ {
		i.Tick()
	}
	if i.Countdown() != 0 {
		t.Errorf("countdown = %d, want 0", i.Countdown())
	}
	if i.State() != StateDismissable {
		t.Errorf("state = %q, want %q", i.State(), StateDismissable)
	}
}

func TestInterstitial_TransitionFiresOnce(t *testing.T) {
	i := New(1)
	i.Tick()
	if i.State() != StateDismissable {
		t.Fatalf("state = %q, want %q", i.State(), StateDismissable)
	}
	// Extra ticks after the transition are no-ops.
	i.Tick()
	i.Tick()
	if i.State() != StateDismissable || i.Countdown() != 0 {
		t.Errorf("state = %q countdown = %d after extra ticks", i.State(), i.Countdown())
	}
}

func TestInterstitial_ContactsAlwaysAvailable(t *testing.T) {
	i := New(15)
	if len(i.Contacts()) == 0 {
		t.Fatal("contacts must render while armed")
	}
	i.Tick()
	if len(i.Contacts()) == 0 {
		t.Fatal("contacts must render while counting")
	}
	// tel:/sms: deep links are the actual safety mechanism.
	var sawTel, sawSMS bool
	for _, c := range i.Contacts() {
		if c.Href == "tel:988" {
			sawTel = true
		}
		if c.Href == "sms:741741?body=HELLO" {
			sawSMS = true
		}
	}
	if !sawTel || !sawSMS {
		t.Errorf("missing emergency deep links: tel=%v sms=%v", sawTel, sawSMS)
	}
}

func TestInterstitial_GuardianBannerOnlyFromServer(t *testing.T) {
	i := New(15)
	if i.ShowGuardianBanner() {
		t.Error("guardian banner must not render without a server signal")
	}
	alerted := true
	i.SetServerSignal(&alerted, "high")
	if !i.ShowGuardianBanner() {
		t.Error("guardian banner should render after server signal")
	}
	if i.CrisisLevel() != "high" {
		t.Errorf("crisis level = %q, want %q", i.CrisisLevel(), "high")
	}
}

func TestCenter_ArmIsIdempotentWhileLive(t *testing.T) {
	c := NewCenter(15, time.Hour)
	first := c.Arm("user@example.com")
	first.Tick()
	again := c.Arm("user@example.com")
	if first != again {
		t.Fatal("re-arming a live interstitial must not restart it")
	}
	if again.Countdown() != 14 {
		t.Errorf("countdown = %d, want 14", again.Countdown())
	}
}

func TestCenter_DismissRemovesEntry(t *testing.T) {
	c := NewCenter(1, time.Hour)
	c.Arm("user@example.com")

	if err := c.Dismiss("user@example.com"); err != domain.ErrInterstitialLocked {
		t.Fatalf("Dismiss before countdown = %v, want ErrInterstitialLocked", err)
	}

	c.Tick()
	if err := c.Dismiss("user@example.com"); err != nil {
		t.Fatalf("Dismiss after countdown = %v", err)
	}
	if _, err := c.Get("user@example.com"); err != domain.ErrNoInterstitial {
		t.Errorf("Get after dismiss = %v, want ErrNoInterstitial", err)
	}
}

func TestCenter_NamespaceIsolation(t *testing.T) {
	c := NewCenter(15, time.Hour)
	c.Arm("a@example.com")
	if _, err := c.Get("b@example.com"); err != domain.ErrNoInterstitial {
		t.Errorf("Get for another namespace = %v, want ErrNoInterstitial", err)
	}
}

func TestInterstitialConcurrentWithTicker(t *testing.T) {
	c := NewCenter(15, time.Minute)
	inter := c.Arm("mira@example.com")

	// Ticker goroutine, as main runs it.
	done := make(chan struct{})
	ticking := make(chan struct{})
	go func() {
		defer close(ticking)
		for {
			select {
			case <-done:
				return
			default:
				c.Tick()
			}
		}
	}()

	// Handler-side access through the escaped pointer while the ticker
	// runs: status reads, server signal writes, dismiss attempts.
	alerted := true
	for n := 0; n < 1000; n++ {
		st := inter.Status()
		if st.Countdown < 0 {
			t.Fatal("countdown went negative")
		}
		inter.SetServerSignal(&alerted, "high")
		_ = inter.ShowGuardianBanner()
		_ = inter.Dismiss()
	}

	close(done)
	<-ticking

	for n := 0; n < 15; n++ {
		c.Tick()
	}
	if st := inter.Status(); st.Countdown != 0 {
		t.Errorf("countdown = %d after saturation, want 0", st.Countdown)
	}
}
