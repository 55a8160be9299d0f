package printing

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// ErrPopupBlocked is returned by a PrintSink when the print window
// could not be opened, typically because a popup blocker intervened.
var ErrPopupBlocked = errors.New("print window blocked")

// PrintWindow is an open print target. Implementations wrap whatever
// actually shows the dialog: a browser popup driven by a frontend, a
// headless browser, or a logging stand-in on the server.
type PrintWindow interface {
	// WriteDocument writes the full HTML label document into the window.
	WriteDocument(html string) error
	// AwaitLoad blocks until client-side rendering (barcode scripts)
	// has settled, or the context is done.
	AwaitLoad(ctx context.Context) error
	// TriggerPrint opens the print dialog.
	TriggerPrint() error
	// Close closes the window.
	Close() error
}

// PrintSink opens print windows.
type PrintSink interface {
	OpenWindow(ctx context.Context) (PrintWindow, error)
}

// LogSink is a server-side PrintSink that records the print flow in the
// log instead of opening a real window. It is the default sink when no
// browser is attached.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink creates a logging print sink
func NewLogSink(logger *zap.Logger) *LogSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSink{logger: logger}
}

// OpenWindow returns a window that logs each step
func (s *LogSink) OpenWindow(ctx context.Context) (PrintWindow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.logger.Debug("print window opened")
	return &logWindow{logger: s.logger}, nil
}

type logWindow struct {
	logger *zap.Logger
}

func (w *logWindow) WriteDocument(html string) error {
	w.logger.Debug("label document written", zap.Int("bytes", len(html)))
	return nil
}

func (w *logWindow) AwaitLoad(ctx context.Context) error {
	return ctx.Err()
}

func (w *logWindow) TriggerPrint() error {
	w.logger.Debug("print dialog triggered")
	return nil
}

func (w *logWindow) Close() error {
	w.logger.Debug("print window closed")
	return nil
}
