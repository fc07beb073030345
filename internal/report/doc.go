// Package report renders the result of a compression check.
//
// This package contains writers for different output formats:
//   - SimpleWriter: Human-readable text output for terminal display
//   - JSONWriter: The CompressionReport as JSON, identical to the body the
//     HTTP endpoint returns
//   - MarkdownWriter: A Markdown summary for sharing
//
// Writers implement the Writer interface and take the whole *model.Check,
// so formats meant for people can also explain why a body was not decoded.
package report
