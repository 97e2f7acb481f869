package rescue

import (
	"context"
	"io"

	"github.com/agentstation/roster/internal/cmd/application"
	"github.com/agentstation/roster/internal/cmd/cmdutil"
	"github.com/agentstation/roster/internal/cmd/output"
	"github.com/agentstation/roster/pkg/errors"
	"github.com/agentstation/roster/pkg/logging"
	"github.com/agentstation/roster/pkg/reconciler"
	"github.com/agentstation/roster/pkg/registry"
)

// Execute runs a rescue pass for the registry at path and writes the report
// to w.
func Execute(ctx context.Context, app application.Application, w io.Writer, path string, flags *Flags) error {
	if flags == nil {
		flags = &Flags{Suffix: app.Suffix()}
	}
	if flags.TreeFlags == nil {
		flags.TreeFlags = &cmdutil.TreeFlags{}
	}
	format, err := output.ParseFormat(app.OutputFormat())
	if err != nil {
		return errors.WrapValidation("format", err)
	}

	ctx = logging.WithRegistry(ctx, path)

	doc, err := registry.Load(ctx, path)
	if err != nil {
		return err
	}
	tree, root, err := cmdutil.OpenTree(path, flags.Root)
	if err != nil {
		return err
	}

	r, err := app.Reconciler(reconciler.WithDryRun(flags.DryRun), reconciler.WithSuffix(flags.Suffix))
	if err != nil {
		return err
	}

	logging.FromContext(ctx).Debug().Str("root", root).Str("suffix", flags.Suffix).Msg("rescuing")
	result, err := r.Rescue(ctx, doc, tree)
	if err != nil {
		return err
	}

	return output.NewFormatter(format).Format(w, result.Report)
}
