// Package printing models the lifecycle of a browser print run for
// shipping labels. A PrintRun tracks one pass through the print dialog
// flow, from opening the print window to closing it and triggering the
// PDF download, with an explicit state machine guarding transitions.
package printing
