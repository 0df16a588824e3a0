package domain

import "time"

// PeriodStatus indicates whether an accounting period still accepts writes.
type PeriodStatus string

const (
	PeriodOpen   PeriodStatus = "OPEN"
	PeriodLocked PeriodStatus = "LOCKED"
)

// Period is a calendar month of the books, keyed by its canonical
// "YYYY-MM" name. Periods are created lazily the first time an entry
// needs them.
type Period struct {
	PeriodID  int64        `json:"periodID"`
	Name      string       `json:"name"` // canonical "YYYY-MM"
	Status    PeriodStatus `json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
}
