package models

import (
	"time"
)

// SearchCriterion is one row of the input workbook. The price bounds and
// banned terms are kept as raw cell text; each site routine parses them and
// skips the criterion when they are malformed.
type SearchCriterion struct {
	Product     string `json:"product"`
	MinPrice    string `json:"min_price"`
	MaxPrice    string `json:"max_price"`
	BannedTerms string `json:"banned_terms"`
}

// ProductMatch is a result card that passed the banned-term and price gates.
type ProductMatch struct {
	Name      string  `json:"product_name"`
	Price     float64 `json:"price"`
	PriceText string  `json:"product_price"`
	Link      string  `json:"product_link"`
}

// ResultRow is one line of an output workbook.
type ResultRow struct {
	Name  string `json:"product_name"`
	Price string `json:"product_price"`
	Link  string `json:"product_link"`
}

// SiteOutcome summarizes one site's pass within a research run.
type SiteOutcome struct {
	Site       string `json:"site" db:"site"`
	Matches    int    `json:"matches" db:"matches"`
	Criteria   int    `json:"criteria" db:"criteria"`
	Failed     bool   `json:"failed" db:"failed"`
	Error      string `json:"error,omitempty" db:"error"`
	DurationMS int64  `json:"duration_ms" db:"duration_ms"`
}

// Research run statuses.
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// ResearchRun is a persisted record of one end-to-end research pass.
type ResearchRun struct {
	ID           int           `json:"id" db:"id"`
	StartedAt    time.Time     `json:"started_at" db:"started_at"`
	FinishedAt   *time.Time    `json:"finished_at" db:"finished_at"`
	Status       string        `json:"status" db:"status"`
	TotalMatches int           `json:"total_matches" db:"total_matches"`
	EmailSent    bool          `json:"email_sent" db:"email_sent"`
	Error        *string       `json:"error" db:"error"`
	Sites        []SiteOutcome `json:"sites,omitempty"`
}

// IsFinished returns true once the run has a terminal status.
func (r *ResearchRun) IsFinished() bool {
	return r.Status != RunStatusRunning
}

// Duration returns how long the run took, or 0 if it is still in flight.
func (r *ResearchRun) Duration() time.Duration {
	if r.FinishedAt == nil {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
