package reconciler

import (
	"time"

	"github.com/agentstation/roster/pkg/dedupe"
	"github.com/agentstation/roster/pkg/moves"
	"github.com/agentstation/roster/pkg/registry"
	"github.com/agentstation/roster/pkg/report"
)

// Result represents the outcome of a lint or rescue run.
type Result struct {
	// Document is the input document with its records replaced by the
	// accepted canonical records, ready to be written back
	Document *registry.Document

	// Accepted are the canonical records that survived deduplication
	Accepted []registry.CanonicalRecord

	// Removed are the records excluded by deduplication
	Removed []dedupe.Removed

	// Moves is the plan computed by Lint
	Moves []moves.Move

	// Report holds diagnostics and summary counts
	Report *report.Report

	// Metadata
	Metadata ResultMetadata
}

// ResultMetadata contains metadata about the run.
type ResultMetadata struct {
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	// DryRun indicates file moves were only reported
	DryRun bool

	// Applied is set once the move plan has been executed
	Applied bool
}

// HasChanges reports whether the document or the tree would change.
func (r *Result) HasChanges() bool {
	return len(r.Moves) > 0 || len(r.Removed) > 0 || r.documentChanged()
}

func (r *Result) documentChanged() bool {
	if r.Document == nil {
		return false
	}
	for _, rec := range r.Accepted {
		if rec.Category != rec.CategoryKey || rec.Path != rec.CanonicalPath {
			return true
		}
	}
	return false
}

func newResult(kind report.Kind, dryRun bool) *Result {
	return &Result{
		Report: report.New(kind),
		Metadata: ResultMetadata{
			StartTime: time.Now(),
			DryRun:    dryRun,
		},
	}
}

// finalize calculates duration and marks completion.
func (r *Result) finalize() {
	r.Metadata.EndTime = time.Now()
	r.Metadata.Duration = r.Metadata.EndTime.Sub(r.Metadata.StartTime)
}
