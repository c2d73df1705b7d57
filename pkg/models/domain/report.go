package domain

import "time"

// CheckItem is one evaluated control. Items are created once per check
// execution and are immutable after that; the owning section is the
// only holder.
type CheckItem struct {
	Title          string
	Outcome        Outcome
	Details        string
	Recommendation string
}

// Section is a named, ordered group of check items. Insertion order of
// sections and of items within a section is the run order and must be
// preserved verbatim by every renderer.
type Section struct {
	ID           string
	Title        string
	DisplayState DisplayState
	Items        []CheckItem
}

// Counters holds the running outcome totals for one assessment phase.
// Invariant: Total == Passed + Failed + Warning + Info + AccessDenied.
type Counters struct {
	Total        int
	Passed       int
	Failed       int
	Warning      int
	Info         int
	AccessDenied int
}

// Report is the root of the assessment tree: run metadata, the ordered
// sections, and the counters snapshot the displayed percentage was
// computed from. Mutated by appends throughout the run, write-once
// after finalize.
type Report struct {
	Title     string
	AccountID string
	Scope     string
	Actor     string
	Timestamp time.Time
	Sections  []Section
	Counters  Counters
	// Percent is the compliance percentage captured at finalize time.
	Percent int
}
