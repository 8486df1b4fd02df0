package domain

import "time"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Source types attached to assistant answers. Differentiation is cosmetic;
// unknown types fall back to a generic rendering.
const (
	SourceRAGLocal     = "rag_local"
	SourceWebAugmented = "web_augmented"
	SourceWebSearch    = "web_search"
	SourceCrisis       = "crisis_resource"
)

type Source struct {
	Title      string   `json:"title"`
	URL        string   `json:"url"`
	Snippet    string   `json:"snippet"`
	DisplayURL string   `json:"displayUrl"`
	Type       string   `json:"type,omitempty"`
	Confidence *float64 `json:"confidence,omitempty"`
	MatchScore *float64 `json:"matchScore,omitempty"`
}

// Message is one turn of a conversation. Messages are immutable once
// appended; conversations are append-only ordered sequences.
type Message struct {
	Role    string   `json:"role"`
	Content string   `json:"content"`
	Sources []Source `json:"sources"`
	SentAt  time.Time `json:"sentAt"`
}

// SavedMessage is a bookmarked message in the per-user saved collection.
type SavedMessage struct {
	Message
	SavedAt time.Time `json:"savedAt"`
}

type Conversation struct {
	ID        string    `json:"id"`
	Messages  []Message `json:"messages"`
	Timestamp time.Time `json:"timestamp"`
}

// Answer is the canonical shape of an oracle reply. Both field-name
// variants observed at the wire ("content"/"answer", "role"/"sender")
// collapse into this one struct at the client boundary.
type Answer struct {
	Answer          string   `json:"answer"`
	Sources         []Source `json:"sources"`
	Type            string   `json:"type,omitempty"`
	Confidence      float64  `json:"confidence,omitempty"`
	GuardianAlerted *bool    `json:"guardian_alerted,omitempty"`
	CrisisLevel     string   `json:"crisis_level,omitempty"`
}

// AnswerTypeCrisis is the authoritative server-side crisis signal.
const AnswerTypeCrisis = "crisis_intervention"

func (a *Answer) IsCrisis() bool {
	return a.Type == AnswerTypeCrisis
}
