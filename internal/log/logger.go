package log

import (
	"io"
	"log/slog"
	"sort"
)

// Options configures New.
type Options struct {
	// Level is the minimum level that is logged.
	Level slog.Leveler

	// JSON switches the output from text to JSON.
	JSON bool
}

// Level returns slog.LevelDebug when verbose is set, otherwise base.
func Level(verbose bool, base slog.Level) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return base
}

// New creates a logger writing to w that sanitizes sensitive information.
func New(w io.Writer, opts Options) *slog.Logger {
	level := opts.Level
	if level == nil {
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}

	return slog.New(NewSecureHandler(handler))
}

// HeaderAttrs returns headers as a group attribute named key, with header
// names in lexical order. Sensitive headers are masked when the attribute
// passes through a SecureHandler.
func HeaderAttrs(key string, headers map[string]string) slog.Attr {
	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}
	sort.Strings(names)

	attrs := make([]any, 0, len(names))
	for _, name := range names {
		attrs = append(attrs, slog.String(name, headers[name]))
	}
	return slog.Group(key, attrs...)
}
