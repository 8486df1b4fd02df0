package config

import "time"

const (
	// Interstitial countdown default (seconds). The close control stays
	// inert until the countdown reaches zero.
	DefaultCrisisCountdown = 15

	// Fallback text appended when the oracle call fails.
	FallbackAnswer = "Sorry, I encountered an error. Please try again."

	// Sources shown in compact rendering contexts.
	MaxCompactSources = 3

	// Rate limits (requests per minute)
	RateLimitPerMinute = 20

	// Stale request cleanup
	StaleRequestCleanup = 60 * time.Second
	StaleRequestAge     = 3 * time.Minute

	// Verification and reset codes
	VerificationCodeTTL = 10 * time.Minute
	VerificationCodeLen = 6

	// Session cookie name
	SessionCookie = "solace_session"

	// Interstitial registry entries older than this are reaped even if the
	// user never dismissed them.
	InterstitialMaxAge = 30 * time.Minute

	// Breathing pattern (4-7-8), in ticks
	BreathInhale = 4
	BreathHold   = 7
	BreathExhale = 8
)

// EmergencyContacts are rendered with every interstitial and are never
// gated behind the countdown.
type EmergencyContact struct {
	Label  string
	Detail string
	Href   string
}

var EmergencyContacts = []EmergencyContact{
	{Label: "988 Suicide & Crisis Lifeline", Detail: "Call or text 988 • Free & Confidential", Href: "tel:988"},
	{Label: "Emergency (US)", Detail: "Call 911", Href: "tel:911"},
	{Label: "Emergency (India)", Detail: "Call 108", Href: "tel:108"},
	{Label: "Crisis Text Line", Detail: "Text HELLO to 741741", Href: "sms:741741?body=HELLO"},
	{Label: "KIRAN Mental Health (India)", Detail: "1800-599-0019 • 24/7 Support", Href: "tel:18005990019"},
}

// MeditationDurations selectable for a meditation session, in minutes.
var MeditationDurations = []int{5, 10, 15, 20}

// MeditationTracks available for meditation sessions.
var MeditationTracks = []string{
	"Birds in Crescent",
	"Gentle Rain",
	"Ocean Waves",
	"Small Waterfall",
}
