package label

import (
	"strconv"
	"strings"
)

// MinBoxHeightPt is the floor for the to-address and detail boxes. When
// the apportionment remainder would push a box below it, the box is
// clamped here instead; on extremely small templates this may overflow
// the page, which is accepted over crashing.
const MinBoxHeightPt = 55

// boxHeightShare is the fraction of the apportionment remainder given to
// the to-address box and to each detail box; the product section takes
// whatever is left.
const boxHeightShare = 0.32

// barcodeReservePt is the extra vertical space reserved around the
// barcode block on top of the barcode's own height.
const barcodeReservePt = 20

// barcodeGapPt is the vertical gap substituted when no barcode raster is
// available for a label.
const barcodeGapPt = 35

// LayoutModel is the single computed geometry and content value consumed
// by all renderers. Every spacing constant is held in both CSS pixels
// (for HTML and canvas rasters) and PDF points, with pt = px * 0.75
// exactly. It is recomputed for every render call and never cached or
// shared across bills.
type LayoutModel struct {
	Tier         Tier
	TemplateName string

	TemplateWidthPx  float64
	TemplateHeightPx float64
	TemplateWidthPt  float64
	TemplateHeightPt float64

	BaseFontSizePx  float64
	BaseFontSizePt  float64
	TitleFontSizePx float64
	TitleFontSizePt float64
	SmallFontSizePx float64
	SmallFontSizePt float64
	LineHeight      float64

	MarginPx               float64
	MarginPt               float64
	PaddingPx              float64
	PaddingPt              float64
	BorderWidthPx          float64
	BorderWidthPt          float64
	TopPaddingAdjustmentPx float64
	TopPaddingAdjustmentPt float64
	SectionSpacingPx       float64
	SectionSpacingPt       float64

	ToAddressBoxHeightPt float64
	ToAddressBoxHeightPx float64
	DetailBoxHeightPt    float64
	DetailBoxHeightPx    float64
	ProductBoxHeightPt   float64
	ProductBoxHeightPx   float64

	// BarcodeWidth is the bar module multiplier; the raster surface is
	// BarcodeWidth*80 px wide by BarcodeHeightPx tall.
	BarcodeWidth    float64
	BarcodeHeightPx float64
	BarcodeHeightPt float64

	FormattedOrder FormattedOrder
	FromAddress    ResolvedFromAddress
	ProductText    string

	// VerticalOverflow is set when the apportionment remainder went
	// negative after clamping, meaning content may spill past the
	// bottom margin on this template.
	VerticalOverflow bool
}

// FormattedOrder is the bill content normalized to display form.
// Missing optional fields degrade to the empty string, never to an
// error.
type FormattedOrder struct {
	BillID        string
	BillNo        string
	ShipVia       string
	OrderDate     string
	ToName        string
	ToAddressLine string
	ToDistrict    string
	ToStateLine   string
	ToPhone       string
	TotalQuantity int
	Weight        string
}

// ResolvedFromAddress is the sender block after organisation details
// from the bill have been applied over the tenant's stored from-address,
// field by field.
type ResolvedFromAddress struct {
	Name    string
	Street  string
	City    string
	State   string
	ZipCode string
	Phone   string
}

// BuildLayout computes the LayoutModel for one bill on one template. It
// is deterministic and side-effect free: identical inputs yield
// structurally identical output, and well-formed input never causes a
// panic or error. A nil or dimensionless template falls back to the
// default 4x4in label.
func BuildLayout(bill *Bill, tmpl *Template, from FromAddress) LayoutModel {
	resolved := tmpl.Resolve()
	tier := TierForWidth(resolved.Width)
	style := styleFor(tier)

	m := LayoutModel{
		Tier:         tier,
		TemplateName: resolved.Name,

		TemplateWidthPx:  resolved.Width,
		TemplateHeightPx: resolved.Height,
		TemplateWidthPt:  PxToPt(resolved.Width),
		TemplateHeightPt: PxToPt(resolved.Height),

		BaseFontSizePx:  style.BaseFontSize,
		BaseFontSizePt:  PxToPt(style.BaseFontSize),
		TitleFontSizePx: style.TitleFontSize,
		TitleFontSizePt: PxToPt(style.TitleFontSize),
		SmallFontSizePx: style.SmallFontSize,
		SmallFontSizePt: PxToPt(style.SmallFontSize),
		LineHeight:      style.LineHeight,

		MarginPx:               style.Margin,
		MarginPt:               PxToPt(style.Margin),
		PaddingPx:              style.Padding,
		PaddingPt:              PxToPt(style.Padding),
		BorderWidthPx:          style.BorderWidth,
		BorderWidthPt:          PxToPt(style.BorderWidth),
		TopPaddingAdjustmentPx: style.TopPaddingAdjustment,
		TopPaddingAdjustmentPt: PxToPt(style.TopPaddingAdjustment),
		SectionSpacingPx:       style.SectionSpacing,
		SectionSpacingPt:       PxToPt(style.SectionSpacing),

		BarcodeWidth:    style.BarcodeWidth,
		BarcodeHeightPx: style.BarcodeHeight,
		BarcodeHeightPt: PxToPt(style.BarcodeHeight),
	}

	m.apportionVerticalSpace()

	if bill != nil {
		m.FormattedOrder = formatOrder(bill)
		m.FromAddress = ResolveFromAddress(bill.OrganisationDetails, from)
		m.ProductText = BuildProductText(bill.ProductDetails, style.MaxProductNameLen)
	} else {
		m.FromAddress = ResolveFromAddress(OrganisationDetails{}, from)
		m.ProductText = BuildProductText(nil, style.MaxProductNameLen)
	}

	return m
}

// apportionVerticalSpace splits the label height among the to-address
// box, the two detail boxes, and the product section. The header line
// block is estimated at three title-font heights (ship-via line, order
// id line, spacing) and the barcode block at its height plus a fixed
// reserve; the to-address and detail boxes each take 32% of what
// remains, floored at MinBoxHeightPt, and the product section absorbs
// the rest so it can never force the page to overflow on its own.
func (m *LayoutModel) apportionVerticalSpace() {
	availableHeight := m.TemplateHeightPt - 2*m.MarginPt - m.TopPaddingAdjustmentPt
	headerHeight := 3 * m.TitleFontSizePt
	barcodeBlock := m.BarcodeHeightPt + barcodeReservePt
	remainder := availableHeight - headerHeight - barcodeBlock

	toAddress := remainder * boxHeightShare
	if toAddress < MinBoxHeightPt {
		toAddress = MinBoxHeightPt
	}
	detail := remainder * boxHeightShare
	if detail < MinBoxHeightPt {
		detail = MinBoxHeightPt
	}

	product := remainder - toAddress - detail
	if product < 0 {
		product = 0
		m.VerticalOverflow = true
	}

	// The split is computed in pt but px is stored as primary: the
	// division by 0.75 is not exact in float64, so the stored pt is
	// re-derived from px to keep the pair on the exact 0.75 ratio.
	m.ToAddressBoxHeightPx = PtToPx(toAddress)
	m.ToAddressBoxHeightPt = PxToPt(m.ToAddressBoxHeightPx)
	m.DetailBoxHeightPx = PtToPx(detail)
	m.DetailBoxHeightPt = PxToPt(m.DetailBoxHeightPx)
	m.ProductBoxHeightPx = PtToPx(product)
	m.ProductBoxHeightPt = PxToPt(m.ProductBoxHeightPx)
}

// DetailBoxWidthPt returns the width of each of the two side-by-side
// detail boxes. The same formula backs the CSS column width so the HTML
// and PDF renders agree.
func (m *LayoutModel) DetailBoxWidthPt() float64 {
	return (m.TemplateWidthPt - 3*m.MarginPt - m.SectionSpacingPt) / 2
}

// BarcodeGapPt returns the vertical gap reserved in place of a missing
// barcode raster.
func (m *LayoutModel) BarcodeGapPt() float64 {
	return barcodeGapPt
}

// BarcodeRasterWidthPx returns the pixel width of the offscreen raster
// surface the barcode is drawn onto.
func (m *LayoutModel) BarcodeRasterWidthPx() int {
	return int(m.BarcodeWidth * 80)
}

// formatOrder normalizes a bill into its display form.
func formatOrder(bill *Bill) FormattedOrder {
	f := FormattedOrder{
		BillID:        bill.BillID,
		BillNo:        bill.BillDetails.BillNo,
		OrderDate:     joinNonEmpty(" ", bill.BillDetails.Date, bill.BillDetails.Time),
		ToName:        bill.CustomerDetails.Name,
		ToAddressLine: joinNonEmpty(", ", bill.CustomerDetails.FlatNo, bill.CustomerDetails.Street),
		ToDistrict:    bill.CustomerDetails.District,
		ToStateLine:   joinNonEmpty(" - ", bill.CustomerDetails.State, bill.CustomerDetails.Pincode),
		ToPhone:       bill.CustomerDetails.Phone,
		TotalQuantity: bill.TotalQuantity(),
	}

	if bill.ShippingDetails != nil {
		f.ShipVia = bill.ShippingDetails.MethodName
		if !bill.ShippingDetails.Weight.IsZero() {
			f.Weight = bill.ShippingDetails.Weight.String() + " kg"
		}
	}

	return f
}

// ResolveFromAddress merges the organisation details embedded in a bill
// over the tenant's stored from-address. Organisation fields win when
// non-empty; the stored address fills the gaps.
func ResolveFromAddress(org OrganisationDetails, stored FromAddress) ResolvedFromAddress {
	return ResolvedFromAddress{
		Name:    firstNonEmpty(org.Name, stored.Name),
		Street:  firstNonEmpty(org.Street, stored.Street),
		City:    firstNonEmpty(org.District, stored.City),
		State:   firstNonEmpty(org.State, stored.State),
		ZipCode: firstNonEmpty(org.Pincode, stored.ZipCode),
		Phone:   firstNonEmpty(org.Phone, stored.Phone),
	}
}

// TruncateProductName shortens a product name to at most max runes. A
// name over the limit keeps its first max-1 runes and gains an ellipsis;
// a name at or under the limit is returned unchanged.
func TruncateProductName(name string, max int) string {
	runes := []rune(name)
	if len(runes) <= max || max < 1 {
		return name
	}
	return string(runes[:max-1]) + "…"
}

// BuildProductText renders the product lines as a single joined string
// of "Name × Qty" entries, truncating each name to the tier limit. An
// empty product list renders as the literal "No products".
func BuildProductText(products []ProductDetail, maxNameLen int) string {
	if len(products) == 0 {
		return "No products"
	}
	parts := make([]string, 0, len(products))
	for _, p := range products {
		parts = append(parts, TruncateProductName(p.ProductName, maxNameLen)+" × "+strconv.Itoa(p.Quantity))
	}
	return strings.Join(parts, ", ")
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, strings.TrimSpace(p))
		}
	}
	return strings.Join(kept, sep)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
