package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// CheckMessage is the record message the runner emits for each completed
// check. The CheckHandler renders records carrying this message as progress
// lines instead of structured log output.
const CheckMessage = "check completed"

// CheckHandler wraps an slog.Handler to render check-progress records as
// human-readable lines. Records whose message is CheckMessage are written
// to the progress output as "[PASS] check name (page)"; every other record
// is passed to the underlying handler unchanged.
//
// Design decision: We use a handler wrapper rather than a custom logger
// because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Components keep logging through *slog.Logger without knowing about
//     progress rendering
type CheckHandler struct {
	// handler is the underlying slog handler for non-progress records.
	handler slog.Handler

	// output receives the rendered progress lines.
	output io.Writer

	// mu serializes progress writes. Shared across WithAttrs/WithGroup
	// copies so concurrent batch runs don't interleave partial lines.
	mu *sync.Mutex
}

// NewCheckHandler creates a new CheckHandler. Progress lines are written
// to output; all other records go to the given handler.
// If handler is nil, the returned CheckHandler uses slog.Default().Handler().
func NewCheckHandler(output io.Writer, handler slog.Handler) *CheckHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &CheckHandler{
		handler: handler,
		output:  output,
		mu:      &sync.Mutex{},
	}
}

// Enabled reports whether the handler handles records at the given level.
// Progress records are always handled; everything else follows the
// underlying handler's level.
func (h *CheckHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if level >= slog.LevelInfo {
		return true
	}
	return h.handler.Enabled(ctx, level)
}

// Handle renders progress records and delegates the rest.
func (h *CheckHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Message == CheckMessage {
		return h.writeProgress(r)
	}

	if !h.handler.Enabled(ctx, r.Level) {
		return nil
	}
	return h.handler.Handle(ctx, r)
}

// WithAttrs returns a new handler with the given attributes added to the
// underlying handler. Progress rendering is unaffected.
func (h *CheckHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &CheckHandler{
		handler: h.handler.WithAttrs(attrs),
		output:  h.output,
		mu:      h.mu,
	}
}

// WithGroup returns a new handler with the given group name.
func (h *CheckHandler) WithGroup(name string) slog.Handler {
	return &CheckHandler{
		handler: h.handler.WithGroup(name),
		output:  h.output,
		mu:      h.mu,
	}
}

// writeProgress renders a single check record as a progress line.
func (h *CheckHandler) writeProgress(r slog.Record) error {
	var check, status, page, detail string

	r.Attrs(func(a slog.Attr) bool {
		switch a.Key {
		case "check":
			check = a.Value.String()
		case "status":
			status = a.Value.String()
		case "page":
			page = a.Value.String()
		case "detail":
			detail = a.Value.String()
		}
		return true
	})

	location := page
	if location == "" {
		location = "site"
	}

	line := fmt.Sprintf("  [%s] %s (%s)\n", status, check, location)
	if detail != "" && status != "PASS" {
		line += fmt.Sprintf("        %s\n", detail)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := io.WriteString(h.output, line)
	return err
}

// NewCheckLogger creates a new slog.Logger that renders check progress to
// progressOut and writes structured diagnostics to diagOut.
//
// Parameters:
//   - progressOut: destination for rendered progress lines (typically os.Stdout)
//   - diagOut: destination for structured log output (typically os.Stderr)
//   - verbose: if true, sets the diagnostic log level to Debug; otherwise Warn
func NewCheckLogger(progressOut, diagOut io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	textHandler := slog.NewTextHandler(diagOut, opts)
	return slog.New(NewCheckHandler(progressOut, textHandler))
}
