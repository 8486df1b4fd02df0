package domain

import "time"

// MoodEntry is one record in the per-user mood log, score 1..10.
type MoodEntry struct {
	Score      int       `json:"score"`
	Note       string    `json:"note,omitempty"`
	RecordedAt time.Time `json:"recordedAt"`
}

// ExerciseDay marks a calendar day on which the user completed a guided
// exercise, stored as YYYY-MM-DD.
type ExerciseDay struct {
	Day         string    `json:"day"`
	CompletedAt time.Time `json:"completedAt"`
}

// Preferences holds per-user UI state persisted across sessions.
type Preferences struct {
	Theme            string `json:"theme"`
	SidebarCollapsed bool   `json:"sidebarCollapsed"`
}
