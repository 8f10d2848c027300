package repository

import "time"

// Kind distinguishes folders from habit files.
type Kind string

const (
	KindFolder Kind = "folder"
	KindFile   Kind = "file"
)

// Priority levels. A nil Priority on an entry means "unset" and renders the
// neutral accent.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Difficulty levels. A nil Difficulty on an entry means "unset".
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Entry represents a row in the virtual file-system tree: a habit ("file")
// or a grouping of habits ("folder"). All metadata fields are optional;
// nil means the field is unset and the UI falls back to its default.
type Entry struct {
	ID             string
	ParentID       *string // nil = root
	Kind           Kind
	Name           string
	Priority       *string
	Difficulty     *string
	Streak         *int
	Category       *string
	CompletionRate *float64 // percent, 0-100
	CreatedAt      time.Time
	ModifiedAt     time.Time
	Tags           []Tag // ordered by position
}

// Tag represents a tag row.
type Tag struct {
	ID   string
	Name string
}
