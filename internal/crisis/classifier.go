// Package crisis holds the client-side crisis keyword classifier and the
// countdown-gated interstitial shown when it (or the oracle) fires.
package crisis

import "strings"

// phrases is the fixed risk list. Matching is plain substring containment:
// no stemming and no negation handling. The design over-triggers on
// purpose; a missed crisis signal costs categorically more than a false
// alarm.
var phrases = []string{
	"suicide",
	"kill myself",
	"hurt myself",
	"harm myself",
	"end it all",
	"want to die",
	"no point living",
	"better off dead",
	"end my life",
	"take my life",
	"not worth living",
	"cant go on",
}

// Classify reports whether text contains any risk phrase, case-insensitive.
// It is pure and synchronous so it works before (and without) any network
// call.
func Classify(text string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
