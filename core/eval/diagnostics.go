package eval

import (
	"context"
	"log/slog"
	"strings"

	"github.com/FocuswithJustin/anafora-eval/core/anafora"
)

// DiagnosticKind says which side of a comparison an annotation was lost on.
type DiagnosticKind string

const (
	// Missed marks a reference annotation with no predicted match.
	Missed DiagnosticKind = "missed"
	// Added marks a predicted annotation with no reference match.
	Added DiagnosticKind = "added"
)

// Diagnostic records one unmatched annotation.
type Diagnostic struct {
	Label      string
	Kind       DiagnosticKind
	Annotation *anafora.Annotation
}

// Sink receives diagnostics from ScoreData.
type Sink interface {
	Report(d Diagnostic)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(d Diagnostic)

// Report calls f(d).
func (f SinkFunc) Report(d Diagnostic) { f(d) }

type logSink struct{ logger *slog.Logger }

func (s logSink) Report(d Diagnostic) {
	ctx := context.Background()
	if !s.logger.Enabled(ctx, slog.LevelDebug) {
		return
	}
	msg := "Missed"
	if d.Kind == Added {
		msg = "Added"
	}
	attrs := []any{slog.String("annotation", strings.TrimRight(d.Annotation.String(), "\n"))}
	if d.Label != "" {
		attrs = append(attrs, slog.String("file", d.Label))
	}
	s.logger.Debug(msg, attrs...)
}

// LogDiagnostics returns a sink writing each diagnostic to logger at debug
// level. A nil logger uses slog.Default().
func LogDiagnostics(logger *slog.Logger) Sink {
	if logger == nil {
		logger = slog.Default()
	}
	return logSink{logger: logger}
}

// Collector is a Sink that keeps every diagnostic in order.
type Collector struct {
	Diagnostics []Diagnostic
}

// Report appends d.
func (c *Collector) Report(d Diagnostic) {
	c.Diagnostics = append(c.Diagnostics, d)
}

// Count returns how many diagnostics of kind were collected.
func (c *Collector) Count(kind DiagnosticKind) int {
	n := 0
	for _, d := range c.Diagnostics {
		if d.Kind == kind {
			n++
		}
	}
	return n
}
