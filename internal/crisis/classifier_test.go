package crisis

import "testing"

func TestClassify_RiskPhrases(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"I want to kill myself", true},
		{"i've been thinking about suicide", true},
		{"It's NOT WORTH LIVING anymore", true},
		{"I Cant Go On like this", true},
		{"sometimes I feel better off dead", true},
		{"I want to end my life", true},
		{"thinking I should take my life", true},
		{"there is no point living", true},
		{"I might hurt myself tonight", true},
		{"how can I sleep better?", false},
		{"my cat died last week and I'm sad", false},
		{"I killed it at work today", false},
		{"", false},
		{"   ", false},
	}
	for _, c := range cases {
		if got := Classify(c.text); got != c.want {
			t.Errorf("Classify(%q) = %v, want %v", c.text, got, c.want)
		}
	}
}

// Negation is deliberately not handled: over-triggering is the safe
// direction.
func TestClassify_NegationStillTriggers(t *testing.T) {
	if !Classify("I do NOT want to kill myself") {
		t.Error("negated phrasing should still classify as risk")
	}
}

func TestClassify_PhraseEmbeddedInLongerText(t *testing.T) {
	text := "honestly after everything that happened I just want to die, nothing helps"
	if !Classify(text) {
		t.Error("embedded phrase should classify as risk")
	}
}
