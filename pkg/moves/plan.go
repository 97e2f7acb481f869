// Package moves plans and applies the file moves that bring a tree in line
// with the canonical registry.
//
// Planning is a pure diff of declared and canonical paths; it performs no
// I/O so a plan can be inspected or tested without a tree. Execution applies
// a plan to an afero.Fs rooted at the tree, one move at a time, and never
// overwrites an existing destination.
package moves

import (
	"fmt"

	"github.com/agentstation/roster/pkg/registry"
	"github.com/agentstation/roster/pkg/report"
)

// Move relocates the file of one record.
type Move struct {
	Key  string `json:"key" yaml:"key"`
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// String implements fmt.Stringer.
func (m Move) String() string {
	return fmt.Sprintf("%s -> %s", m.From, m.To)
}

// Diagnostic describes the move as a planned action.
func (m Move) Diagnostic() report.Diagnostic {
	return report.Info(report.CodePlannedMove, m.Key, m.From, "move to %s", m.To)
}

// Plan returns one move per record whose declared path differs from its
// canonical path, in record order.
func Plan(records []registry.CanonicalRecord) []Move {
	var plan []Move
	for _, rec := range records {
		if rec.Path == rec.CanonicalPath {
			continue
		}
		plan = append(plan, Move{Key: rec.Name, From: rec.Path, To: rec.CanonicalPath})
	}
	return plan
}
