package lint

import (
	"context"
	"io"

	"github.com/spf13/afero"

	"github.com/agentstation/roster/internal/cmd/application"
	"github.com/agentstation/roster/internal/cmd/cmdutil"
	"github.com/agentstation/roster/internal/cmd/output"
	"github.com/agentstation/roster/pkg/errors"
	"github.com/agentstation/roster/pkg/logging"
	"github.com/agentstation/roster/pkg/reconciler"
	"github.com/agentstation/roster/pkg/registry"
)

// Execute runs a lint pass over the registry at path and writes the report
// to w. Every fatal condition is checked before anything is written.
func Execute(ctx context.Context, app application.Application, w io.Writer, path string, flags *Flags) error {
	if flags == nil {
		flags = &Flags{}
	}
	if flags.TreeFlags == nil {
		flags.TreeFlags = &cmdutil.TreeFlags{}
	}
	if err := flags.Validate(); err != nil {
		return err
	}
	format, err := output.ParseFormat(app.OutputFormat())
	if err != nil {
		return errors.WrapValidation("format", err)
	}

	ctx = logging.WithRegistry(ctx, path)
	logger := logging.FromContext(ctx)

	doc, err := registry.Load(ctx, path)
	if err != nil {
		return err
	}

	r, err := app.Reconciler(reconciler.WithDryRun(flags.DryRun))
	if err != nil {
		return err
	}

	var tree afero.Fs
	if flags.ApplyMoves {
		tree, _, err = cmdutil.OpenTree(path, flags.Root)
		if err != nil {
			return err
		}
	}

	result, err := r.Lint(ctx, doc)
	if err != nil {
		return err
	}

	if flags.Fix {
		if flags.DryRun {
			logger.Info().Msg("dry run, registry not written")
		} else {
			backup, err := registry.Save(ctx, path, result.Document)
			if err != nil {
				return err
			}
			logger.Info().Str("backup", backup).Int("agents", len(result.Document.Agents)).Msg("registry written")
		}
	}

	if flags.ApplyMoves {
		if err := r.Apply(ctx, result, tree); err != nil {
			return err
		}
	}

	return output.NewFormatter(format).Format(w, result.Report)
}
