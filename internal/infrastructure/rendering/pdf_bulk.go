package rendering

import (
	"time"

	"github.com/shipdesk/backend/internal/domain/label"
	"github.com/shipdesk/backend/internal/infrastructure/barcode"
	"go.uber.org/zap"
)

// RenderBulk draws one page per bill into a single PDF document. The
// first bill's layout sizes the document; every bill then gets its own
// independently built LayoutModel against the shared template, so box
// geometry is identical across pages while content differs.
//
// Barcode generation runs sequentially per bill because the underlying
// raster surface is reused; a barcode failure for one bill degrades
// that page to a text placeholder and does not abort the rest.
func (r *PDFRenderer) RenderBulk(bills []label.Bill, tmpl *label.Template, from label.FromAddress) (*RenderResult, error) {
	if len(bills) == 0 {
		return nil, NewRenderError(ErrCodeEmptyBatch, "no bills to render", nil)
	}

	startTime := time.Now()

	first := label.BuildLayout(&bills[0], tmpl, from)
	doc := r.newDocument(&first)

	for i := range bills {
		bill := &bills[i]
		m := label.BuildLayout(bill, tmpl, from)
		r.warnOnOverflow(&m, bill.BillID)

		doc.AddPage()

		asset := barcode.EncodeForLayout(r.encoder, bill.BillID, &m)
		if asset.IsEmpty() {
			r.logger.Warn("barcode unavailable, using text placeholder",
				zap.String("billId", bill.BillID),
				zap.Int("page", i+1))
		}
		r.drawLabel(doc, &m, asset, i)
	}

	data, err := r.output(doc)
	if err != nil {
		return nil, err
	}

	return &RenderResult{
		PDFData:        data,
		PageCount:      doc.PageCount(),
		RenderDuration: time.Since(startTime),
	}, nil
}
