package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/compcheck/internal/model"
)

// lineWidth is the width of the section separators.
const lineWidth = 70

// SimpleWriter outputs human-readable text reports for terminal display.
type SimpleWriter struct {
	baseWriter

	// showHeaders controls whether the response headers are listed.
	showHeaders bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithHeaders configures the writer to list the response headers.
func WithHeaders(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showHeaders = show
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report in human-readable format.
func (w *SimpleWriter) Write(check *model.Check) (int, error) {
	report, err := reportOf(check)
	if err != nil {
		return 0, err
	}

	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeSizes(&sb, check, report)
	if w.showHeaders {
		w.writeResponseHeaders(&sb, report)
	}
	sb.WriteString(strings.Repeat("=", lineWidth))
	sb.WriteString("\n")

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report title and target information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.CompressionReport) {
	sb.WriteString(strings.Repeat("=", lineWidth))
	sb.WriteString("\n")
	sb.WriteString("                      COMPRESSION CHECK\n")
	sb.WriteString(strings.Repeat("=", lineWidth))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "URL:          %s\n", report.URL)
	fmt.Fprintf(sb, "Status:       %d\n", report.Status)
	if report.IsCompressed {
		fmt.Fprintf(sb, "Compressed:   yes (%s)\n", report.CompressionType)
	} else {
		sb.WriteString("Compressed:   no\n")
	}
	sb.WriteString("\n")
}

// writeSizes writes the size section and explains a skipped decode.
func (w *SimpleWriter) writeSizes(sb *strings.Builder, check *model.Check, report *model.CompressionReport) {
	sb.WriteString(strings.Repeat("-", lineWidth))
	sb.WriteString("\n")
	sb.WriteString("SIZES\n")
	sb.WriteString(strings.Repeat("-", lineWidth))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "  Transferred:   %s\n", formatBytes(report.CompressedSize))
	fmt.Fprintf(sb, "  Uncompressed:  %s\n", formatBytes(report.UncompressedSize))
	fmt.Fprintf(sb, "  Savings:       %s\n", formatPercent(report.SavingsPercent))

	encoding := report.Headers["content-encoding"]
	fmt.Fprintf(sb, "  Decoding:      %s\n", decodeStatus(encoding, check.Decoded.Attempted, check.Decoded.Succeeded))
	if check.Decoded.Note != "" {
		fmt.Fprintf(sb, "  Note:          %s\n", check.Decoded.Note)
	}
	sb.WriteString("\n")
}

// writeResponseHeaders writes the response headers in lexical order.
func (w *SimpleWriter) writeResponseHeaders(sb *strings.Builder, report *model.CompressionReport) {
	sb.WriteString(strings.Repeat("-", lineWidth))
	sb.WriteString("\n")
	sb.WriteString("RESPONSE HEADERS\n")
	sb.WriteString(strings.Repeat("-", lineWidth))
	sb.WriteString("\n\n")

	if len(report.Headers) == 0 {
		sb.WriteString("  (none)\n\n")
		return
	}
	for _, name := range sortedKeys(report.Headers) {
		fmt.Fprintf(sb, "  %s: %s\n", name, report.Headers[name])
	}
	sb.WriteString("\n")
}
