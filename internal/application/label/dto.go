package label

import (
	"time"

	"github.com/shipdesk/backend/internal/domain/label"
)

// =============================================================================
// Request DTOs
// =============================================================================

// PreviewRequest asks for the printable HTML document for one or more bills
type PreviewRequest struct {
	Bills       []label.Bill       `json:"bills" binding:"required,min=1"`
	Template    *label.Template    `json:"template"`
	FromAddress *label.FromAddress `json:"fromAddress"`
}

// GeneratePDFRequest asks for a single-order PDF
type GeneratePDFRequest struct {
	Bill        label.Bill         `json:"bill"`
	Template    *label.Template    `json:"template"`
	FromAddress *label.FromAddress `json:"fromAddress"`
}

// BulkPDFRequest asks for a multi-page PDF, one label per page
type BulkPDFRequest struct {
	Bills       []label.Bill       `json:"bills" binding:"required,min=1"`
	Template    *label.Template    `json:"template"`
	FromAddress *label.FromAddress `json:"fromAddress"`
}

// PrintRequest asks for a full print run: HTML into the print window,
// PDF download afterwards
type PrintRequest struct {
	Bills       []label.Bill       `json:"bills" binding:"required,min=1"`
	Template    *label.Template    `json:"template"`
	FromAddress *label.FromAddress `json:"fromAddress"`
	// SkipDownload suppresses the PDF download step
	SkipDownload bool `json:"skipDownload"`
}

// =============================================================================
// Response DTOs
// =============================================================================

// PreviewResponse carries the rendered HTML document
type PreviewResponse struct {
	HTML         string `json:"html"`
	LabelCount   int    `json:"labelCount"`
	TemplateName string `json:"templateName"`
	// NeedsSettle is true when the document renders barcodes with a
	// client-side script and should be given time to settle.
	NeedsSettle bool `json:"needsSettle"`
}

// PDFResult carries generated PDF bytes and the filename to serve them under
type PDFResult struct {
	Filename  string `json:"filename"`
	Data      []byte `json:"-"`
	PageCount int    `json:"pageCount"`
	Size      int    `json:"size"`
}

// PrintRunResponse reports the outcome of a print run
type PrintRunResponse struct {
	ID           string    `json:"id"`
	State        string    `json:"state"`
	BillIDs      []string  `json:"billIds"`
	LabelCount   int       `json:"labelCount"`
	TemplateName string    `json:"templateName"`
	Warning      string    `json:"warning,omitempty"`
	DownloadPath string    `json:"downloadPath,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	FinishedAt   time.Time `json:"finishedAt"`
}

// TemplateInfo describes one standard label template
type TemplateInfo struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Width    float64 `json:"width"`  // px
	Height   float64 `json:"height"` // px
	WidthIn  float64 `json:"widthIn"`
	HeightIn float64 `json:"heightIn"`
}
