// Package reconciler runs the registry pipeline end to end.
//
// A lint run normalizes the document's records, removes duplicates and
// plans the moves that bring the tree in line; nothing touches the tree
// until Apply is called with the result. A rescue run resolves missing
// files by unique basename match and moves them directly.
package reconciler

import (
	"context"

	"github.com/spf13/afero"

	"github.com/agentstation/roster/pkg/dedupe"
	"github.com/agentstation/roster/pkg/errors"
	"github.com/agentstation/roster/pkg/logging"
	"github.com/agentstation/roster/pkg/moves"
	"github.com/agentstation/roster/pkg/normalize"
	"github.com/agentstation/roster/pkg/registry"
	"github.com/agentstation/roster/pkg/report"
	"github.com/agentstation/roster/pkg/rescue"
)

// Reconciler is the main interface for reconciling a registry with a tree.
type Reconciler interface {
	// Lint normalizes and deduplicates the document and plans moves
	Lint(ctx context.Context, doc *registry.Document) (*Result, error)

	// Apply executes the move plan of a lint result against tree
	Apply(ctx context.Context, result *Result, tree afero.Fs) error

	// Rescue relocates missing files found elsewhere in tree
	Rescue(ctx context.Context, doc *registry.Document, tree afero.Fs) (*Result, error)
}

// reconciler is the default implementation of Reconciler.
type reconciler struct {
	layout           registry.Layout
	descriptionLimit int
	suffix           string
	dryRun           bool
}

// New creates a new Reconciler with options.
func New(opts ...Option) (Reconciler, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &reconciler{
		layout:           options.layout,
		descriptionLimit: options.descriptionLimit,
		suffix:           options.suffix,
		dryRun:           options.dryRun,
	}, nil
}

// prepared is the shared normalize and dedupe stage.
type prepared struct {
	dedupe.Result
	diagnostics []report.Diagnostic
}

func (r *reconciler) prepare(ctx context.Context, doc *registry.Document) (prepared, error) {
	if doc == nil {
		return prepared{}, errors.NewValidationError("document", nil, "cannot be nil")
	}
	layout := r.layout.ForDocument(doc)
	if err := layout.Validate(); err != nil {
		return prepared{}, err
	}

	n := normalize.New(layout, normalize.WithDescriptionLimit(r.descriptionLimit))
	canonical, diags := n.NormalizeAll(ctx, doc.Agents)
	if err := ctx.Err(); err != nil {
		return prepared{}, err
	}

	resolved := dedupe.Resolve(ctx, canonical)
	return prepared{
		Result:      resolved,
		diagnostics: append(diags, resolved.Diagnostics...),
	}, nil
}

// Lint performs the pure planning stages.
func (r *reconciler) Lint(ctx context.Context, doc *registry.Document) (*Result, error) {
	ctx = logging.WithOperation(ctx, "lint")
	logger := logging.FromContext(ctx)

	p, err := r.prepare(ctx, doc)
	if err != nil {
		return nil, err
	}

	result := newResult(report.KindLint, r.dryRun)
	result.Accepted = p.Accepted
	result.Removed = p.Removed
	result.Moves = moves.Plan(p.Accepted)
	result.Document = doc.WithAgents(canonicalRecords(p.Accepted))

	result.Report.Add(p.diagnostics...)
	for _, m := range result.Moves {
		result.Report.Add(m.Diagnostic())
	}
	result.Report.Summary = report.Summary{
		Total:   len(doc.Agents),
		Kept:    len(p.Accepted),
		Removed: len(p.Removed),
		Planned: len(result.Moves),
	}
	result.finalize()

	logger.Debug().
		Int("total", len(doc.Agents)).
		Int("kept", len(p.Accepted)).
		Int("planned", len(result.Moves)).
		Dur("duration", result.Metadata.Duration).
		Msg("lint complete")
	return result, nil
}

// Apply executes result's move plan and folds the outcome into its report.
func (r *reconciler) Apply(ctx context.Context, result *Result, tree afero.Fs) error {
	if result == nil {
		return errors.NewValidationError("result", nil, "cannot be nil")
	}
	if tree == nil {
		return errors.NewValidationError("tree", nil, "cannot be nil")
	}
	ctx = logging.WithOperation(ctx, "apply")

	exec := moves.NewExecutor(tree, moves.WithDryRun(r.dryRun))
	applied, err := exec.Apply(ctx, result.Moves)

	result.Report.Add(applied.Diagnostics...)
	result.Report.Summary.Moved += applied.Moved
	result.Report.Summary.Skipped += applied.Skipped
	result.Report.Summary.Unresolved += applied.Unresolved
	result.Report.Summary.Failed += applied.Failed
	result.Metadata.Applied = err == nil
	result.Metadata.DryRun = r.dryRun
	result.finalize()

	logging.FromContext(ctx).Debug().
		Int("moved", applied.Moved).
		Int("skipped", applied.Skipped).
		Int("unresolved", applied.Unresolved).
		Int("failed", applied.Failed).
		Bool("dry_run", r.dryRun).
		Msg("moves applied")
	return err
}

// Rescue indexes the tree and moves files to targets that are empty.
func (r *reconciler) Rescue(ctx context.Context, doc *registry.Document, tree afero.Fs) (*Result, error) {
	if tree == nil {
		return nil, errors.NewValidationError("tree", nil, "cannot be nil")
	}
	ctx = logging.WithOperation(ctx, "rescue")

	p, err := r.prepare(ctx, doc)
	if err != nil {
		return nil, err
	}

	result := newResult(report.KindRescue, r.dryRun)
	result.Accepted = p.Accepted
	result.Removed = p.Removed
	result.Report.Add(p.diagnostics...)

	idx, err := rescue.BuildIndex(ctx, tree, r.suffix)
	if err != nil {
		return nil, err
	}
	matched, err := rescue.NewMatcher(tree, rescue.WithDryRun(r.dryRun)).Run(ctx, p.Accepted, idx)
	result.Report.Add(matched.Diagnostics...)
	result.Report.Summary = report.Summary{
		Total:     len(doc.Agents),
		Kept:      len(p.Accepted),
		Removed:   len(p.Removed),
		Moved:     matched.Moved,
		Skipped:   matched.Skipped,
		Missing:   matched.Missing,
		Ambiguous: matched.Ambiguous,
		Failed:    matched.Failed,
	}
	result.finalize()
	if err != nil {
		return result, err
	}

	logging.FromContext(ctx).Debug().
		Int("indexed", idx.Len()).
		Int("moved", matched.Moved).
		Int("ambiguous", matched.Ambiguous).
		Int("missing", matched.Missing).
		Msg("rescue complete")
	return result, nil
}

func canonicalRecords(records []registry.CanonicalRecord) []registry.Record {
	out := make([]registry.Record, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.Canonical())
	}
	return out
}
