package printing

import (
	"context"
	"fmt"
	"time"

	"github.com/shipdesk/backend/internal/domain/printing"
	"go.uber.org/zap"
)

const (
	// DefaultSettleDelay is how long to wait after the window reports
	// loaded, so barcode scripts that run on load can finish drawing
	// before the print dialog fires.
	DefaultSettleDelay = 500 * time.Millisecond
	// DefaultCloseDelay is how long to leave the window open after the
	// print dialog fires.
	DefaultCloseDelay = 100 * time.Millisecond
)

// PrintDocument is the input to one print run: the HTML document to put
// in the window plus the PDF to download afterwards.
type PrintDocument struct {
	HTML         string
	BillIDs      []string
	TemplateName string
	// NeedsSettle is set when the document carries client-side barcode
	// scripts that must run before printing.
	NeedsSettle bool
	// PDFData and PDFFilename describe the download that follows the
	// print flow. Empty PDFData skips the download step.
	PDFData     []byte
	PDFFilename string
}

// Orchestrator walks a PrintDocument through the print window flow.
//
// Failures before the document is written abort the run. After that
// point every remaining step is best effort: errors are logged on the
// run, and the flow always proceeds to close the window and trigger
// the PDF download.
type Orchestrator struct {
	sink        PrintSink
	downloader  PDFDownloader
	logger      *zap.Logger
	settleDelay time.Duration
	closeDelay  time.Duration
	sleep       func(time.Duration)
}

// OrchestratorOption configures the Orchestrator
type OrchestratorOption func(*Orchestrator)

// WithSettleDelay overrides the barcode settle delay
func WithSettleDelay(d time.Duration) OrchestratorOption {
	return func(o *Orchestrator) { o.settleDelay = d }
}

// WithCloseDelay overrides the post-print close delay
func WithCloseDelay(d time.Duration) OrchestratorOption {
	return func(o *Orchestrator) { o.closeDelay = d }
}

// WithSleep replaces the sleep function, used by tests
func WithSleep(fn func(time.Duration)) OrchestratorOption {
	return func(o *Orchestrator) { o.sleep = fn }
}

// NewOrchestrator creates a print orchestrator
func NewOrchestrator(sink PrintSink, downloader PDFDownloader, logger *zap.Logger, opts ...OrchestratorOption) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	o := &Orchestrator{
		sink:        sink,
		downloader:  downloader,
		logger:      logger,
		settleDelay: DefaultSettleDelay,
		closeDelay:  DefaultCloseDelay,
		sleep:       time.Sleep,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run executes the print flow for one document. The returned PrintRun
// is always non-nil once the document validates, so callers can record
// partially completed runs.
func (o *Orchestrator) Run(ctx context.Context, doc *PrintDocument) (*printing.PrintRun, error) {
	if doc == nil {
		return nil, fmt.Errorf("print document is nil")
	}

	run, err := printing.NewPrintRun(doc.BillIDs, doc.TemplateName)
	if err != nil {
		return nil, err
	}

	o.logger.Info("print run started",
		zap.String("runId", run.GetID().String()),
		zap.Int("labels", run.LabelCount),
		zap.String("template", run.TemplateName))

	win, err := o.sink.OpenWindow(ctx)
	if err != nil {
		_ = run.Fail(err.Error())
		o.logger.Error("failed to open print window", zap.Error(err))
		return run, fmt.Errorf("open print window: %w", err)
	}
	_ = run.Advance(printing.RunStateWindowOpened)

	if err := win.WriteDocument(doc.HTML); err != nil {
		_ = run.Fail(err.Error())
		o.logger.Error("failed to write label document", zap.Error(err))
		if closeErr := win.Close(); closeErr != nil {
			o.logger.Warn("failed to close print window", zap.Error(closeErr))
		}
		return run, fmt.Errorf("write label document: %w", err)
	}
	_ = run.Advance(printing.RunStateContentWritten)

	// From here on the run never aborts.
	if doc.NeedsSettle {
		// Wait for the load event first; the settle delay then covers
		// barcode scripts that draw after load fires.
		if err := win.AwaitLoad(ctx); err != nil {
			run.RecordWarning("barcode render: " + err.Error())
			o.logger.Warn("barcode scripts did not settle", zap.Error(err))
		} else {
			_ = run.Advance(printing.RunStateBarcodesRendered)
		}
		o.sleep(o.settleDelay)
	} else {
		_ = run.Advance(printing.RunStateBarcodesRendered)
	}

	if err := win.TriggerPrint(); err != nil {
		run.RecordWarning("print dialog: " + err.Error())
		o.logger.Warn("failed to trigger print dialog", zap.Error(err))
	} else if run.State.CanTransitionTo(printing.RunStatePrinted) {
		_ = run.Advance(printing.RunStatePrinted)
	}

	o.sleep(o.closeDelay)
	if err := win.Close(); err != nil {
		run.RecordWarning("close window: " + err.Error())
		o.logger.Warn("failed to close print window", zap.Error(err))
	}
	_ = run.Advance(printing.RunStateClosed)

	o.download(ctx, run, doc)

	o.logger.Info("print run finished",
		zap.String("runId", run.GetID().String()),
		zap.String("state", run.State.String()),
		zap.String("warning", run.ErrorMessage))

	return run, nil
}

func (o *Orchestrator) download(ctx context.Context, run *printing.PrintRun, doc *PrintDocument) {
	if o.downloader == nil || len(doc.PDFData) == 0 {
		return
	}

	path, err := o.downloader.Download(ctx, doc.PDFFilename, doc.PDFData)
	if err != nil {
		run.RecordWarning("pdf download: " + err.Error())
		o.logger.Warn("failed to download PDF", zap.Error(err))
		return
	}
	if err := run.MarkDownloaded(path); err != nil {
		o.logger.Warn("failed to record download", zap.Error(err))
	}
}
