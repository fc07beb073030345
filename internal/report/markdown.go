package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/compcheck/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(check *model.Check) (int, error) {
	report, err := reportOf(check)
	if err != nil {
		return 0, err
	}

	md := markdown.NewMarkdown(w.output)

	w.writeSummary(md, check, report)
	w.writeChart(md, report)
	w.writeHeaders(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeSummary writes the summary table and an alert for the result.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, check *model.Check, report *model.CompressionReport) {
	md.H1("Compression Check")
	md.PlainText("")

	encoding := report.Headers["content-encoding"]
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"URL", "`" + report.URL + "`"},
			{"Status", strconv.Itoa(report.Status)},
			{"Compression", report.CompressionType},
			{"Transferred", formatBytes(report.CompressedSize)},
			{"Uncompressed", formatBytes(report.UncompressedSize)},
			{"Savings", formatPercent(report.SavingsPercent)},
			{"Decoding", decodeStatus(encoding, check.Decoded.Attempted, check.Decoded.Succeeded)},
		},
	})
	md.PlainText("")

	switch {
	case check.Decoded.Attempted && !check.Decoded.Succeeded:
		md.Warningf("The body declared Content-Encoding %q but could not be decoded: %s", encoding, check.Decoded.Note)
	case encoding != "" && !check.Decoded.Attempted:
		md.Importantf("The Content-Encoding %q is not supported, so sizes are reported as transferred.", encoding)
	case report.IsCompressed:
		md.Tip(fmt.Sprintf("The response is compressed with %s and saves %s.", report.CompressionType, formatPercent(report.SavingsPercent)))
	default:
		md.Note("The response is not compressed.")
	}
	md.PlainText("")
}

// writeChart writes a mermaid pie chart of transferred versus saved bytes.
func (w *MarkdownWriter) writeChart(md *markdown.Markdown, report *model.CompressionReport) {
	if !report.IsCompressed {
		return
	}

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Transferred vs. saved bytes"),
		piechart.WithShowData(true),
	)
	transferred := uint64(report.CompressedSize)                     //nolint:gosec // sizes are non-negative
	saved := uint64(report.UncompressedSize - report.CompressedSize) //nolint:gosec // positive when compressed
	chart.LabelAndIntValue("Transferred", transferred)
	chart.LabelAndIntValue("Saved", saved)

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeHeaders writes the response headers table.
func (w *MarkdownWriter) writeHeaders(md *markdown.Markdown, report *model.CompressionReport) {
	md.H2("Response Headers")
	md.PlainText("")

	if len(report.Headers) == 0 {
		md.PlainText("No response headers.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(report.Headers))
	for _, name := range sortedKeys(report.Headers) {
		rows = append(rows, []string{"`" + name + "`", truncateString(report.Headers[name], 80)})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Header", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [compcheck](https://github.com/nao1215/compcheck)*")
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
