package internal

import "time"

// ReportKind identifies what a stored record represents.
type ReportKind string

const (
	ReportWeeklySummary ReportKind = "weekly_summary"
	ReportEndOfDay      ReportKind = "end_of_day_summary"
	ReportRawLogs       ReportKind = "raw_logs"
)

type User struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// Record is a report or log entry owned by the external store. The accessor
// only ever reads it; Payload is guaranteed normalized (see report.Normalize).
type Record struct {
	ID        string     `json:"id"`
	BabyID    string     `json:"baby_id"`
	Kind      ReportKind `json:"report_type"`
	CreatedAt time.Time  `json:"created_at"`
	Payload   Payload    `json:"payload"`
}

// Payload is the normalized report body. All three fields are always present
// after normalization; categories and aggregates carry a canonical
// (lexicographic) order so rendering is deterministic regardless of how the
// store encoded the raw JSON.
type Payload struct {
	Categories []Category     `json:"categories"`
	Aggregates []Aggregate    `json:"aggregates"`
	Meta       map[string]any `json:"meta"`
}

type Category struct {
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

type Aggregate struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// Item is one entry inside a category list. Data may contain startTime/endTime
// (ISO-8601), notes, and arbitrary domain fields (value, temperature, tooth_name).
type Item struct {
	Type string         `json:"type,omitempty"`
	Data map[string]any `json:"data,omitempty"`
}

// Chat history roles, matching the rows the history store persists.
const (
	RoleHuman = "human"
	RoleAI    = "ai"
)

type ChatMessage struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id,omitempty"`
	Role      string    `json:"role"`
	Content   string    `json:"message_content"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}
