// Package printing drives the browser print flow for shipping labels.
//
// The Orchestrator opens a print window through a PrintSink, writes the
// rendered label document into it, waits for client-side barcodes to
// settle, triggers the print dialog, closes the window, and triggers
// the PDF download. Each run is recorded as a domain PrintRun.
package printing
