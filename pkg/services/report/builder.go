// Package report maintains the ordered section/item tree for one
// assessment run and seals it exactly once at finalize.
package report

import (
	"errors"
	"fmt"
	"time"

	"github.com/de-tools/audit-atlas/pkg/models/domain"
	"github.com/de-tools/audit-atlas/pkg/services/aggregate"
)

var (
	// ErrSectionClosed is returned when an item is appended to a section
	// that has been sealed. Closing is a hard invariant, not advisory.
	ErrSectionClosed = errors.New("section is closed")

	// ErrFinalized is returned for any mutation after finalize.
	ErrFinalized = errors.New("report is finalized")

	// ErrMissingRecommendation is returned when a Fail or Warning item
	// carries no remediation guidance. Findings without a follow-up are
	// refused loudly, never dropped.
	ErrMissingRecommendation = errors.New("item requires a recommendation")
)

// Meta identifies the run a report describes.
type Meta struct {
	Title     string
	AccountID string
	Scope     string
	Actor     string
}

// Builder owns a report under construction. It is not safe for
// concurrent use; a run is single-threaded by design.
type Builder struct {
	report    domain.Report
	index     map[string]int
	closed    map[string]bool
	finalized bool
}

// NewBuilder starts an empty report stamped with the run metadata.
func NewBuilder(meta Meta) *Builder {
	return &Builder{
		report: domain.Report{
			Title:     meta.Title,
			AccountID: meta.AccountID,
			Scope:     meta.Scope,
			Actor:     meta.Actor,
			Timestamp: time.Now().UTC(),
		},
		index:  make(map[string]int),
		closed: make(map[string]bool),
	}
}

// OpenSection appends a new section. Section order is display order.
func (b *Builder) OpenSection(id, title string, state domain.DisplayState) error {
	if b.finalized {
		return ErrFinalized
	}
	if _, exists := b.index[id]; exists {
		return fmt.Errorf("section %q already exists", id)
	}
	b.report.Sections = append(b.report.Sections, domain.Section{
		ID:           id,
		Title:        title,
		DisplayState: state,
	})
	b.index[id] = len(b.report.Sections) - 1
	return nil
}

// AppendItem adds one check item to an open section.
func (b *Builder) AppendItem(sectionID string, item domain.CheckItem) error {
	if b.finalized {
		return ErrFinalized
	}
	idx, exists := b.index[sectionID]
	if !exists {
		return fmt.Errorf("section %q not found", sectionID)
	}
	if b.closed[sectionID] {
		return fmt.Errorf("append %q to section %q: %w", item.Title, sectionID, ErrSectionClosed)
	}
	if needsRecommendation(item.Outcome) && item.Recommendation == "" {
		return fmt.Errorf("append %q (%s): %w", item.Title, item.Outcome, ErrMissingRecommendation)
	}
	b.report.Sections[idx].Items = append(b.report.Sections[idx].Items, item)
	return nil
}

// CloseSection seals a section; further appends fail.
func (b *Builder) CloseSection(sectionID string) error {
	if b.finalized {
		return ErrFinalized
	}
	if _, exists := b.index[sectionID]; !exists {
		return fmt.Errorf("section %q not found", sectionID)
	}
	b.closed[sectionID] = true
	return nil
}

// Finalize seals the report with the given counters snapshot and
// computed percentage. The first call decides the snapshot; calling it
// again returns the already-sealed report unchanged, so totals are
// never double-counted.
func (b *Builder) Finalize(c domain.Counters) *domain.Report {
	if b.finalized {
		return &b.report
	}
	for id := range b.index {
		b.closed[id] = true
	}
	b.report.Counters = c
	b.report.Percent = aggregate.Percentage(c)
	b.finalized = true
	return &b.report
}

// Finalized reports whether the tree has been sealed.
func (b *Builder) Finalized() bool {
	return b.finalized
}

func needsRecommendation(o domain.Outcome) bool {
	return o == domain.OutcomeFail || o == domain.OutcomeWarning
}
