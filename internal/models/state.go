package models

// DateRange names a statistics granularity anchored at a date.
type DateRange string

const (
	DateRangeDay   DateRange = "day"
	DateRangeWeek  DateRange = "week"
	DateRangeMonth DateRange = "month"
	DateRangeYear  DateRange = "year"
)

// SyncStatus is the transient indicator of the most recent mutator's
// remote-call outcome.
type SyncStatus string

const (
	SyncStatusIdle    SyncStatus = "idle"
	SyncStatusSyncing SyncStatus = "syncing"
	SyncStatusSynced  SyncStatus = "synced"
	SyncStatusError   SyncStatus = "error"
)

// SearchFilter holds transient filter criteria. Zero-valued fields are
// inactive; active predicates are applied conjunctively.
type SearchFilter struct {
	Keyword    string       `json:"keyword,omitempty"`
	CategoryID string       `json:"categoryId,omitempty"`
	StartDate  string       `json:"startDate,omitempty"`
	EndDate    string       `json:"endDate,omitempty"`
	Type       CategoryType `json:"type,omitempty"`
}

// IsZero reports whether no filter criteria are set.
func (f SearchFilter) IsZero() bool {
	return f == SearchFilter{}
}
