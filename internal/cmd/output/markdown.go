package output

import (
	"fmt"
	"io"

	md "github.com/nao1215/markdown"

	"github.com/agentstation/roster/pkg/report"
)

// MarkdownFormatter renders a report as a markdown document, suitable for
// pasting into a pull request.
type MarkdownFormatter struct{}

// Format implements the Formatter interface for markdown output.
func (f *MarkdownFormatter) Format(w io.Writer, data any) error {
	r, ok := data.(*report.Report)
	if !ok {
		return fmt.Errorf("markdown format does not support %T", data)
	}

	doc := md.NewMarkdown(w)
	doc.H2(fmt.Sprintf("roster %s", r.Kind))

	if len(r.Diagnostics) > 0 {
		diags := DiagnosticsData(r.Diagnostics)
		doc.Table(md.TableSet{Header: diags.Headers, Rows: diags.Rows})
	} else {
		doc.PlainText("No diagnostics.")
	}

	summary := SummaryData(r.Kind, r.Summary)
	doc.H3("Summary")
	doc.Table(md.TableSet{Header: summary.Headers, Rows: summary.Rows})

	return doc.Build()
}
