// Package output provides formatters for command output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/roster/pkg/report"
)

// Format types for output.
type Format string

const (
	// FormatText represents the plain line-per-diagnostic format.
	FormatText Format = "text"
	// FormatTable represents table output format.
	FormatTable Format = "table"
	// FormatJSON represents JSON output format.
	FormatJSON Format = "json"
	// FormatYAML represents YAML output format.
	FormatYAML Format = "yaml"
	// FormatMarkdown represents a markdown document with tables.
	FormatMarkdown Format = "markdown"
)

// Formatter interface for all output types.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// FormatterFunc allows functions to implement Formatter.
type FormatterFunc func(io.Writer, any) error

// Format implements the Formatter interface.
func (f FormatterFunc) Format(w io.Writer, data any) error {
	return f(w, data)
}

// NewFormatter creates appropriate formatter based on format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: "  "}
	case FormatYAML:
		return &YAMLFormatter{}
	case FormatTable:
		return &TableFormatter{}
	case FormatMarkdown:
		return &MarkdownFormatter{}
	default:
		return FormatterFunc(formatText)
	}
}

// textWriter is implemented by values that render themselves as plain text.
type textWriter interface {
	WriteText(w io.Writer) error
}

func formatText(w io.Writer, data any) error {
	if t, ok := data.(textWriter); ok {
		return t.WriteText(w)
	}
	_, err := fmt.Fprintln(w, data)
	return err
}

// JSONFormatter outputs JSON format.
type JSONFormatter struct {
	Indent string
}

// Format implements the Formatter interface for JSON output.
func (f *JSONFormatter) Format(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	if f.Indent != "" {
		encoder.SetIndent("", f.Indent)
	}
	return encoder.Encode(data)
}

// YAMLFormatter outputs YAML format.
type YAMLFormatter struct{}

// Format outputs data in YAML format.
func (f *YAMLFormatter) Format(w io.Writer, data any) error {
	yamlData, err := yaml.MarshalWithOptions(data,
		yaml.Indent(2),
		yaml.IndentSequence(false),
	)
	if err != nil {
		return err
	}
	_, err = w.Write(yamlData)
	return err
}

// TableFormatter outputs table format.
type TableFormatter struct{}

// Format outputs data in table format.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	switch v := data.(type) {
	case *report.Report:
		return f.formatReport(w, v)
	default:
		return fmt.Errorf("table format does not support %T", data)
	}
}

// formatReport renders the diagnostics as one table and the summary counts
// as a second one.
func (f *TableFormatter) formatReport(w io.Writer, r *report.Report) error {
	if len(r.Diagnostics) > 0 {
		if err := f.formatTable(w, DiagnosticsData(r.Diagnostics)); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return f.formatTable(w, SummaryData(r.Kind, r.Summary))
}

func (f *TableFormatter) formatTable(w io.Writer, data Data) error {
	opts := []tablewriter.Option{}
	config := tablewriter.Config{}

	if len(data.ColumnAlignment) > 0 {
		twAlign := make([]tw.Align, len(data.ColumnAlignment))
		for i, align := range data.ColumnAlignment {
			switch align {
			case AlignLeft:
				twAlign[i] = tw.AlignLeft
			case AlignCenter:
				twAlign[i] = tw.AlignCenter
			case AlignRight:
				twAlign[i] = tw.AlignRight
			default:
				twAlign[i] = tw.Skip
			}
		}

		config.Header.Alignment = tw.CellAlignment{PerColumn: twAlign}
		config.Row.Alignment = tw.CellAlignment{PerColumn: twAlign}
	}

	opts = append(opts, tablewriter.WithConfig(config))
	table := tablewriter.NewTable(w, opts...)

	if len(data.Headers) > 0 {
		headers := make([]any, len(data.Headers))
		for i, h := range data.Headers {
			headers[i] = h
		}
		table.Header(headers...)
	}

	for _, row := range data.Rows {
		rowData := make([]any, len(row))
		for i, cell := range row {
			rowData[i] = cell
		}
		if err := table.Append(rowData...); err != nil {
			return err
		}
	}

	return table.Render()
}

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault leaves alignment to the table writer.
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents data formatted for table output.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align
}

// DiagnosticsData converts diagnostics to table rows.
func DiagnosticsData(diags []report.Diagnostic) Data {
	rows := make([][]string, 0, len(diags))
	for _, d := range diags {
		msg := d.Message
		if len(d.Candidates) > 0 {
			msg += " (" + strings.Join(d.Candidates, ", ") + ")"
		}
		rows = append(rows, []string{string(d.Severity), string(d.Code), d.Key, d.Path, msg})
	}
	return Data{
		Headers: []string{"Severity", "Code", "Key", "Path", "Message"},
		Rows:    rows,
	}
}

// SummaryData converts the counts shown for kind to a two-column table.
func SummaryData(kind report.Kind, s report.Summary) Data {
	counts := map[string]int{
		"total": s.Total, "kept": s.Kept, "removed": s.Removed, "planned": s.Planned,
		"moved": s.Moved, "skipped": s.Skipped, "unresolved": s.Unresolved,
		"missing": s.Missing, "ambiguous": s.Ambiguous, "failed": s.Failed,
	}
	caser := cases.Title(language.English)

	var rows [][]string
	for _, field := range strings.Fields(s.Line(kind)) {
		name, _, _ := strings.Cut(field, "=")
		rows = append(rows, []string{caser.String(name), fmt.Sprintf("%d", counts[name])})
	}
	return Data{
		Headers:         []string{"Count", "Value"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
}

// ParseFormat converts string to Format with validation. An empty string
// selects text.
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(s)))
	switch format {
	case "":
		return FormatText, nil
	case FormatText, FormatTable, FormatJSON, FormatYAML, FormatMarkdown:
		return format, nil
	default:
		return "", fmt.Errorf("invalid format %q: must be one of: text, table, json, yaml, markdown", s)
	}
}
