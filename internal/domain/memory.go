package domain

import "time"

// Guideline is a free-text rule consumed by external policy callers.
type Guideline struct {
	ID        string
	Rule      string
	Priority  int
	Active    bool
	CreatedAt time.Time
}

// MemoryFact is a (category, key) keyed value consumed by external
// policy callers.
type MemoryFact struct {
	Category  string
	Key       string
	Value     string
	UpdatedAt time.Time
}
