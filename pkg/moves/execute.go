package moves

import (
	"context"
	"path"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/agentstation/roster/pkg/constants"
	"github.com/agentstation/roster/pkg/errors"
	"github.com/agentstation/roster/pkg/logging"
	"github.com/agentstation/roster/pkg/report"
)

// Action is what the executor did with a move.
type Action string

// Actions.
const (
	ActionMoved      Action = "moved"
	ActionSkipped    Action = "skipped"
	ActionUnresolved Action = "unresolved"
	ActionFailed     Action = "failed"
)

// Outcome records the handling of one move.
type Outcome struct {
	Move   Move
	Action Action
	// Source is the path actually renamed, which differs from Move.From when
	// the file was found at the tree root
	Source string
	Err    error
}

// Result collects the outcomes of Apply.
type Result struct {
	Moved       int
	Skipped     int
	Unresolved  int
	Failed      int
	Outcomes    []Outcome
	Diagnostics []report.Diagnostic
}

// Executor applies moves to a file tree.
type Executor struct {
	fs     afero.Fs
	dryRun bool
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithDryRun makes the executor report what it would do without touching
// the tree.
func WithDryRun(dryRun bool) ExecutorOption {
	return func(e *Executor) {
		e.dryRun = dryRun
	}
}

// NewExecutor creates an executor for the tree rooted at fs.
func NewExecutor(fs afero.Fs, opts ...ExecutorOption) *Executor {
	e := &Executor{fs: fs}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Apply executes the moves in order. A destination that already exists is
// skipped untouched. A missing source is looked for by basename directly
// under the tree root before the move is reported unresolved. Failures are
// reported and the batch continues; the returned error is only non-nil when
// ctx is cancelled.
func (e *Executor) Apply(ctx context.Context, plan []Move) (Result, error) {
	logger := logging.FromContext(ctx)
	var res Result

	for _, m := range plan {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		outcome := e.apply(m)
		res.Outcomes = append(res.Outcomes, outcome)

		switch outcome.Action {
		case ActionSkipped:
			res.Skipped++
			logger.Debug().Str("key", m.Key).Str("to", m.To).Msg("destination present, skipped")
		case ActionMoved:
			res.Moved++
			verb := "moved"
			if e.dryRun {
				verb = "would move"
			}
			res.Diagnostics = append(res.Diagnostics, report.Info(report.CodeMoved, m.Key, outcome.Source, "%s to %s", verb, m.To))
		case ActionUnresolved:
			res.Unresolved++
			res.Diagnostics = append(res.Diagnostics, report.Warning(report.CodeUnresolved, m.Key, m.From,
				"source not found and no file named %s at the tree root", path.Base(m.From)))
		case ActionFailed:
			res.Failed++
			res.Diagnostics = append(res.Diagnostics, report.Warning(report.CodeMoveFailed, m.Key, outcome.Source,
				"move to %s failed: %v", m.To, outcome.Err))
		}
	}
	return res, nil
}

func (e *Executor) apply(m Move) Outcome {
	present, err := afero.Exists(e.fs, filepath.FromSlash(m.To))
	if err != nil {
		return Outcome{Move: m, Action: ActionFailed, Source: m.From, Err: errors.WrapIO("stat", m.To, err)}
	}
	if present {
		return Outcome{Move: m, Action: ActionSkipped}
	}

	source, found, err := e.locate(m)
	if err != nil {
		return Outcome{Move: m, Action: ActionFailed, Source: m.From, Err: err}
	}
	if !found {
		return Outcome{Move: m, Action: ActionUnresolved}
	}

	if err := e.rename(source, m.To); err != nil {
		return Outcome{Move: m, Action: ActionFailed, Source: source, Err: err}
	}
	return Outcome{Move: m, Action: ActionMoved, Source: source}
}

// locate returns the declared source, or a file with the declared (then the
// canonical) basename directly under the tree root.
func (e *Executor) locate(m Move) (string, bool, error) {
	candidates := []string{m.From, path.Base(m.From), path.Base(m.To)}
	seen := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		if c == "" || c == "." || c == m.To || seen[c] {
			continue
		}
		seen[c] = true

		info, err := e.fs.Stat(filepath.FromSlash(c))
		if err != nil {
			if errors.IsNotExist(err) {
				continue
			}
			return "", false, errors.WrapIO("stat", c, err)
		}
		if !info.IsDir() {
			return c, true, nil
		}
	}
	return "", false, nil
}

// rename moves from to to, creating missing destination directories.
func (e *Executor) rename(from, to string) error {
	if e.dryRun {
		return nil
	}
	dir := filepath.FromSlash(path.Dir(to))
	if err := e.fs.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("mkdir", dir, err)
	}
	if err := e.fs.Rename(filepath.FromSlash(from), filepath.FromSlash(to)); err != nil {
		return errors.WrapIO("rename", from, err)
	}
	return nil
}
