package rendering

import (
	"bytes"
	"fmt"
	"time"

	"codeberg.org/go-pdf/fpdf"
	"github.com/shipdesk/backend/internal/domain/label"
	"github.com/shipdesk/backend/internal/infrastructure/barcode"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// RenderResult contains the output from PDF rendering
type RenderResult struct {
	// PDFData is the raw PDF file content
	PDFData []byte
	// PageCount is the number of pages in the PDF
	PageCount int
	// RenderDuration is how long the rendering took
	RenderDuration time.Duration
}

// PDFRenderer draws shipping labels onto point-sized PDF pages. It
// reproduces the HTML renderer's flow layout with an explicit vertical
// cursor, reading every spacing constant from the same LayoutModel.
type PDFRenderer struct {
	encoder  barcode.Encoder
	logger   *zap.Logger
	caser    cases.Caser
	compress bool
}

// PDFOption configures the PDF renderer.
type PDFOption func(*PDFRenderer)

// WithCompression toggles PDF stream compression. Enabled by default;
// tests disable it to assert on content-stream text.
func WithCompression(enabled bool) PDFOption {
	return func(r *PDFRenderer) {
		r.compress = enabled
	}
}

// NewPDFRenderer creates a PDF renderer.
func NewPDFRenderer(encoder barcode.Encoder, logger *zap.Logger, opts ...PDFOption) *PDFRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &PDFRenderer{
		encoder:  encoder,
		logger:   logger,
		caser:    cases.Title(language.English),
		compress: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RenderSingle draws one bill onto a single PDF page matching the
// template's physical size.
func (r *PDFRenderer) RenderSingle(bill *label.Bill, tmpl *label.Template, from label.FromAddress) (*RenderResult, error) {
	if bill == nil {
		return nil, NewRenderError(ErrCodeInvalidInput, "bill is nil", nil)
	}

	startTime := time.Now()
	m := label.BuildLayout(bill, tmpl, from)
	r.warnOnOverflow(&m, bill.BillID)

	doc := r.newDocument(&m)
	doc.AddPage()

	asset := barcode.EncodeForLayout(r.encoder, bill.BillID, &m)
	r.drawLabel(doc, &m, asset, 0)

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

// newDocument creates a point-unit PDF document sized exactly to the
// layout's template dimensions, with automatic page breaks disabled:
// the cursor arithmetic owns the page, not fpdf.
func (r *PDFRenderer) newDocument(m *label.LayoutModel) *fpdf.Fpdf {
	orientation := "P"
	if m.TemplateWidthPt > m.TemplateHeightPt {
		orientation = "L"
	}
	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: orientation,
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: m.TemplateWidthPt, Ht: m.TemplateHeightPt},
	})
	doc.SetCompression(r.compress)
	doc.SetAutoPageBreak(false, 0)
	doc.SetMargins(0, 0, 0)
	doc.SetTextColor(0, 0, 0)
	doc.SetDrawColor(0, 0, 0)
	return doc
}

// drawLabel draws one label onto the current page. Drawing proceeds
// with an explicit vertical cursor that starts at the top padding and
// advances by fontSize*lineHeight (or a box's fixed height) after each
// element, mirroring the CSS flow layout of the HTML path.
func (r *PDFRenderer) drawLabel(doc *fpdf.Fpdf, m *label.LayoutModel, asset barcode.Asset, pageIndex int) {
	tr := doc.UnicodeTranslatorFromDescriptor("")

	x := m.MarginPt
	contentW := m.TemplateWidthPt - 2*m.MarginPt
	y := m.MarginPt + m.TopPaddingAdjustmentPt

	titleLineH := m.TitleFontSizePt * m.LineHeight
	baseLineH := m.BaseFontSizePt * m.LineHeight
	smallLineH := m.SmallFontSizePt * m.LineHeight

	// Ship-via line, left-aligned.
	doc.SetFont("Helvetica", "", m.TitleFontSizePt)
	doc.SetXY(x, y)
	doc.CellFormat(contentW, titleLineH, tr("Ship Via: "+r.caser.String(m.FormattedOrder.ShipVia)), "", 0, "L", false, 0, "")
	y += titleLineH

	// Centered order-id line.
	doc.SetFont("Helvetica", "B", m.TitleFontSizePt)
	doc.SetXY(x, y)
	doc.CellFormat(contentW, titleLineH, tr(m.FormattedOrder.BillNo), "", 0, "C", false, 0, "")
	y += titleLineH

	// Barcode block: centered raster when available, otherwise a fixed
	// gap holding a bracketed text placeholder. A PDF cannot invoke a
	// script at render time, so there is no client-side fallback here.
	if !asset.IsEmpty() {
		name := fmt.Sprintf("barcode-%d-%s", pageIndex, m.FormattedOrder.BillID)
		doc.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(asset.PNG))
		barcodeW := label.PxToPt(float64(m.BarcodeRasterWidthPx()))
		if barcodeW > contentW {
			barcodeW = contentW
		}
		doc.ImageOptions(name, x+(contentW-barcodeW)/2, y, barcodeW, m.BarcodeHeightPt, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
		y += m.BarcodeHeightPt
	} else {
		doc.SetFont("Helvetica", "", m.BaseFontSizePt)
		doc.SetXY(x, y)
		doc.CellFormat(contentW, m.BarcodeGapPt(), tr("[BARCODE: "+m.FormattedOrder.BillID+"]"), "", 0, "CM", false, 0, "")
		y += m.BarcodeGapPt()
	}
	y += m.SectionSpacingPt

	// Bordered to-address box.
	doc.SetLineWidth(m.BorderWidthPt)
	doc.Rect(x, y, contentW, m.ToAddressBoxHeightPt, "D")

	innerX := x + m.PaddingPt
	innerW := contentW - 2*m.PaddingPt
	lineY := y + m.PaddingPt

	doc.SetFont("Helvetica", "B", m.BaseFontSizePt)
	doc.SetXY(innerX, lineY)
	doc.CellFormat(innerW, baseLineH, tr(m.FormattedOrder.ToName), "", 0, "L", false, 0, "")
	lineY += baseLineH

	doc.SetFont("Helvetica", "", m.BaseFontSizePt)
	for _, line := range []string{
		m.FormattedOrder.ToAddressLine,
		m.FormattedOrder.ToDistrict,
		m.FormattedOrder.ToStateLine,
		m.FormattedOrder.ToPhone,
	} {
		doc.SetXY(innerX, lineY)
		doc.CellFormat(innerW, baseLineH, tr(line), "", 0, "L", false, 0, "")
		lineY += baseLineH
	}
	y += m.ToAddressBoxHeightPt + m.SectionSpacingPt

	// Two side-by-side bordered detail boxes.
	colW := m.DetailBoxWidthPt()
	r.drawDetailColumn(doc, tr, m, x, y, colW, "From:", []string{
		m.FromAddress.Name,
		m.FromAddress.Street,
		m.FromAddress.City,
		joinStateZip(m.FromAddress.State, m.FromAddress.ZipCode),
		m.FromAddress.Phone,
	})
	orderLines := []string{
		"Order No: " + m.FormattedOrder.BillNo,
		"Date: " + m.FormattedOrder.OrderDate,
		fmt.Sprintf("Items: %d", m.FormattedOrder.TotalQuantity),
	}
	if m.FormattedOrder.Weight != "" {
		orderLines = append(orderLines, "Weight: "+m.FormattedOrder.Weight)
	}
	r.drawDetailColumn(doc, tr, m, x+colW+m.SectionSpacingPt, y, colW, "Prepaid Order:", orderLines)
	y += m.DetailBoxHeightPt + m.SectionSpacingPt

	// Bordered product box: whatever vertical space remains above the
	// bottom margin, filled with measured word-wrapped product text.
	productH := m.TemplateHeightPt - m.MarginPt - y
	if productH <= 0 {
		return
	}
	doc.Rect(x, y, contentW, productH, "D")
	doc.SetFont("Helvetica", "", m.SmallFontSizePt)
	productY := y + m.PaddingPt
	for _, line := range doc.SplitText(tr(m.ProductText), innerW) {
		if productY+smallLineH > y+productH-m.PaddingPt {
			break
		}
		doc.SetXY(innerX, productY)
		doc.CellFormat(innerW, smallLineH, line, "", 0, "L", false, 0, "")
		productY += smallLineH
	}
}

// drawDetailColumn draws one bordered detail column with a bold title
// line followed by small-font content lines, clipped to the box height.
func (r *PDFRenderer) drawDetailColumn(doc *fpdf.Fpdf, tr func(string) string, m *label.LayoutModel, x, y, w float64, title string, lines []string) {
	doc.SetLineWidth(m.BorderWidthPt)
	doc.Rect(x, y, w, m.DetailBoxHeightPt, "D")

	innerX := x + m.PaddingPt
	innerW := w - 2*m.PaddingPt
	smallLineH := m.SmallFontSizePt * m.LineHeight
	bottom := y + m.DetailBoxHeightPt - m.PaddingPt
	lineY := y + m.PaddingPt

	doc.SetFont("Helvetica", "B", m.SmallFontSizePt)
	doc.SetXY(innerX, lineY)
	doc.CellFormat(innerW, smallLineH, tr(title), "", 0, "L", false, 0, "")
	lineY += smallLineH

	doc.SetFont("Helvetica", "", m.SmallFontSizePt)
	for _, line := range lines {
		if lineY+smallLineH > bottom {
			break
		}
		doc.SetXY(innerX, lineY)
		doc.CellFormat(innerW, smallLineH, tr(line), "", 0, "L", false, 0, "")
		lineY += smallLineH
	}
}

// output serializes the document, surfacing any accumulated fpdf error.
func (r *PDFRenderer) output(doc *fpdf.Fpdf) ([]byte, error) {
	if doc.Err() {
		return nil, NewRenderError(ErrCodeRenderFailed, "pdf drawing failed", doc.Error())
	}
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, NewRenderError(ErrCodePDFOutput, "failed to serialize pdf", err)
	}
	return buf.Bytes(), nil
}

func (r *PDFRenderer) warnOnOverflow(m *label.LayoutModel, billID string) {
	if m.VerticalOverflow {
		r.logger.Warn("label template too small, content may overflow",
			zap.String("billId", billID),
			zap.String("template", m.TemplateName),
			zap.Float64("heightPt", m.TemplateHeightPt))
	}
}

func joinStateZip(state, zip string) string {
	if state == "" {
		return zip
	}
	if zip == "" {
		return state
	}
	return state + " - " + zip
}
