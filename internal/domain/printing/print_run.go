package printing

import (
	"time"

	"github.com/shipdesk/backend/internal/domain/shared"
)

// PrintRun records one pass through the browser print flow for a batch
// of shipping labels. It is the audit trail of what the orchestrator
// did: which bills were printed, how far the flow got, and whether the
// PDF download fired.
type PrintRun struct {
	shared.BaseEntity
	BillIDs      []string  // Bills included in this run
	TemplateName string    // Label template used
	LabelCount   int       // Number of labels in the document
	State        RunState  // Current run state
	ErrorMessage string    // Message from the first failure, if any
	DownloadPath string    // Where the PDF was saved, once downloaded
	FinishedAt   time.Time // When the run reached a terminal state
}

// NewPrintRun creates a print run for the given bills
func NewPrintRun(billIDs []string, templateName string) (*PrintRun, error) {
	if len(billIDs) == 0 {
		return nil, shared.NewDomainError("EMPTY_BATCH", "Print run requires at least one bill")
	}
	if templateName == "" {
		return nil, shared.NewDomainError("INVALID_TEMPLATE", "Template name cannot be empty")
	}

	return &PrintRun{
		BaseEntity:   shared.NewBaseEntity(),
		BillIDs:      billIDs,
		TemplateName: templateName,
		LabelCount:   len(billIDs),
		State:        RunStateIdle,
	}, nil
}

// Advance moves the run to the target state
func (r *PrintRun) Advance(target RunState) error {
	if !r.State.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			"Cannot move from "+r.State.String()+" to "+target.String())
	}

	r.State = target
	now := r.Touch()
	if target.IsTerminal() {
		r.FinishedAt = now
	}

	return nil
}

// Fail aborts the run with an error message. Failing is only allowed
// before content has been delivered to the print window.
func (r *PrintRun) Fail(message string) error {
	if !r.State.CanTransitionTo(RunStateFailed) {
		return shared.NewDomainError("INVALID_STATE",
			"Cannot fail a run in state: "+r.State.String())
	}

	r.State = RunStateFailed
	r.ErrorMessage = message
	r.FinishedAt = r.Touch()

	return nil
}

// RecordWarning keeps the first non-fatal error observed during the run
func (r *PrintRun) RecordWarning(message string) {
	if r.ErrorMessage == "" {
		r.ErrorMessage = message
	}
	r.Touch()
}

// MarkDownloaded records the PDF download location and finishes the run
func (r *PrintRun) MarkDownloaded(path string) error {
	if err := r.Advance(RunStatePdfDownloaded); err != nil {
		return err
	}
	r.DownloadPath = path
	return nil
}

// Succeeded returns true if the run delivered content to the window
func (r *PrintRun) Succeeded() bool {
	return r.State.ContentDelivered()
}

// IsFailed returns true if the run aborted
func (r *PrintRun) IsFailed() bool {
	return r.State == RunStateFailed
}
