package printing

// RunState represents the state of a print run.
//
// The happy path walks the states in order: a popup window is opened,
// the label document is written into it, barcodes settle, the print
// dialog fires, the window closes, and finally the PDF download is
// triggered. Failures before content is written abort the run; after
// that point the run always proceeds to close and download, so several
// forward states may be skipped.
type RunState string

const (
	RunStateIdle             RunState = "IDLE"
	RunStateWindowOpened     RunState = "WINDOW_OPENED"
	RunStateContentWritten   RunState = "CONTENT_WRITTEN"
	RunStateBarcodesRendered RunState = "BARCODES_RENDERED"
	RunStatePrinted          RunState = "PRINTED"
	RunStateClosed           RunState = "CLOSED"
	RunStatePdfDownloaded    RunState = "PDF_DOWNLOADED"
	RunStateFailed           RunState = "FAILED"
)

// IsValid checks if the RunState is a valid value
func (s RunState) IsValid() bool {
	switch s {
	case RunStateIdle, RunStateWindowOpened, RunStateContentWritten,
		RunStateBarcodesRendered, RunStatePrinted, RunStateClosed,
		RunStatePdfDownloaded, RunStateFailed:
		return true
	}
	return false
}

// String returns the string representation of RunState
func (s RunState) String() string {
	return string(s)
}

// IsTerminal returns true if this is a terminal state (no further transitions)
func (s RunState) IsTerminal() bool {
	return s == RunStateClosed || s == RunStatePdfDownloaded || s == RunStateFailed
}

// ContentDelivered returns true if the label document has been written
// to the print window. Once content is delivered the run never aborts,
// it only skips forward.
func (s RunState) ContentDelivered() bool {
	switch s {
	case RunStateContentWritten, RunStateBarcodesRendered, RunStatePrinted,
		RunStateClosed, RunStatePdfDownloaded:
		return true
	}
	return false
}

// CanTransitionTo checks if the state can transition to the target state
func (s RunState) CanTransitionTo(target RunState) bool {
	switch s {
	case RunStateIdle:
		return target == RunStateWindowOpened || target == RunStateFailed
	case RunStateWindowOpened:
		return target == RunStateContentWritten || target == RunStateFailed
	case RunStateContentWritten:
		// Barcode rendering and printing are best effort once the
		// content is in the window.
		return target == RunStateBarcodesRendered || target == RunStatePrinted ||
			target == RunStateClosed
	case RunStateBarcodesRendered:
		return target == RunStatePrinted || target == RunStateClosed
	case RunStatePrinted:
		return target == RunStateClosed
	case RunStateClosed:
		return target == RunStatePdfDownloaded
	case RunStatePdfDownloaded, RunStateFailed:
		return false
	}
	return false
}

// AllRunStates returns all valid RunState values
func AllRunStates() []RunState {
	return []RunState{
		RunStateIdle, RunStateWindowOpened, RunStateContentWritten,
		RunStateBarcodesRendered, RunStatePrinted, RunStateClosed,
		RunStatePdfDownloaded, RunStateFailed,
	}
}
