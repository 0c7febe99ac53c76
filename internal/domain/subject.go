package domain

import "time"

type Subject struct {
	Code      string
	Name      string
	Credits   int
	Type      SubjectType
	Color     string
	CreatedAt time.Time
}

type Chapter struct {
	ID          string
	SubjectCode string
	Number      int
	Title       string
	CreatedAt   time.Time
}

// ChapterProgress tracks reading and assignment state for one chapter.
// Completing the reading unlocks the assignment and seeds the revision
// queue in one atomic store operation.
type ChapterProgress struct {
	ChapterID        string
	ReadingStatus    ReadingStatus
	AssignmentStatus AssignmentStatus
	MasteryLevel     int
	RevisionCount    int
	UpdatedAt        time.Time
}
