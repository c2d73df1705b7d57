package api

import "time"

type Counters struct {
	Total        int `json:"total"`
	Passed       int `json:"passed"`
	Failed       int `json:"failed"`
	Warning      int `json:"warning"`
	Info         int `json:"info"`
	AccessDenied int `json:"access_denied"`
}

type CheckItem struct {
	Title          string `json:"title"`
	Outcome        string `json:"outcome"`
	Details        string `json:"details,omitempty"`
	Recommendation string `json:"recommendation,omitempty"`
}

type Section struct {
	ID    string      `json:"id"`
	Title string      `json:"title"`
	Items []CheckItem `json:"items"`
}

type RunSummary struct {
	Title     string    `json:"title"`
	AccountID string    `json:"account_id"`
	Scope     string    `json:"scope"`
	Actor     string    `json:"actor"`
	Timestamp time.Time `json:"timestamp"`
	Percent   int       `json:"compliance_percent"`
	Counters  Counters  `json:"counters"`
	Sections  []Section `json:"sections"`
}

// Run identifies one emitted assessment in the output directory.
type Run struct {
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
	Percent   int       `json:"compliance_percent"`
}
