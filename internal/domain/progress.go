package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProgressRecord is a per-(user, level, word) running tally of answers.
// Counters only ever increment; the record is never deleted.
type ProgressRecord struct {
	UserID         uuid.UUID
	Level          string
	Word           string
	CorrectCount   int
	IncorrectCount int
	LastPracticed  time.Time
}

// Accuracy returns the damped accuracy of the record. The +1 in the
// denominator keeps a single-attempt word away from 100%/0% extremes and must
// match the aggregate computed in SQL by the progress repository.
func (p *ProgressRecord) Accuracy() float64 {
	return float64(p.CorrectCount) / float64(p.CorrectCount+p.IncorrectCount+1)
}

// LevelStats is the per-level aggregate returned by the stats report.
type LevelStats struct {
	Level          string
	WordsPracticed int
	TotalCorrect   int
	TotalIncorrect int
	Accuracy       float64
}

// Mistake is one entry of the ranked mistake report. Translation is filled
// best-effort; a translator outage degrades it to a placeholder instead of
// blocking the report.
type Mistake struct {
	Word           string
	Level          string
	CorrectCount   int
	IncorrectCount int
	LastPracticed  time.Time
	Translation    string
}
