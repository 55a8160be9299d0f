package label

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBill() *Bill {
	return &Bill{
		BillID: "B-1001",
		CustomerDetails: CustomerDetails{
			Name:     "Asha Verma",
			FlatNo:   "12A",
			Street:   "MG Road",
			District: "Ernakulam",
			State:    "Kerala",
			Pincode:  "682016",
			Phone:    "9876543210",
		},
		BillDetails: BillDetails{
			BillNo: "INV-2026-0042",
			Date:   "2026-08-30",
			Time:   "14:21",
		},
		ShippingDetails: &ShippingDetails{
			MethodName: "Surface",
			Weight:     decimal.NewFromFloat(1.25),
		},
		ProductDetails: []ProductDetail{
			{ProductName: "Almond Oil - 35ml", Quantity: 2},
			{ProductName: "Soap", Quantity: 1},
		},
		OrganisationDetails: OrganisationDetails{
			Name:     "Kairali Naturals",
			Street:   "Industrial Estate",
			District: "Kochi",
			State:    "Kerala",
			Pincode:  "682030",
			Phone:    "0484-2200100",
		},
	}
}

func sampleFromAddress() FromAddress {
	return FromAddress{
		Name:    "Stored Sender",
		Street:  "Warehouse 7",
		City:    "Aluva",
		State:   "Kerala",
		ZipCode: "683101",
		Phone:   "0484-1111111",
	}
}

func TestBuildLayout_PxPtPairing(t *testing.T) {
	tmpl := &Template{ID: "t1", Name: "2x4", Width: 192, Height: 384}
	m := BuildLayout(sampleBill(), tmpl, sampleFromAddress())

	pairs := []struct {
		name string
		px   float64
		pt   float64
	}{
		{"template width", m.TemplateWidthPx, m.TemplateWidthPt},
		{"template height", m.TemplateHeightPx, m.TemplateHeightPt},
		{"base font", m.BaseFontSizePx, m.BaseFontSizePt},
		{"title font", m.TitleFontSizePx, m.TitleFontSizePt},
		{"small font", m.SmallFontSizePx, m.SmallFontSizePt},
		{"margin", m.MarginPx, m.MarginPt},
		{"padding", m.PaddingPx, m.PaddingPt},
		{"border width", m.BorderWidthPx, m.BorderWidthPt},
		{"top padding adjustment", m.TopPaddingAdjustmentPx, m.TopPaddingAdjustmentPt},
		{"section spacing", m.SectionSpacingPx, m.SectionSpacingPt},
		{"to-address box", m.ToAddressBoxHeightPx, m.ToAddressBoxHeightPt},
		{"detail box", m.DetailBoxHeightPx, m.DetailBoxHeightPt},
		{"product box", m.ProductBoxHeightPx, m.ProductBoxHeightPt},
		{"barcode height", m.BarcodeHeightPx, m.BarcodeHeightPt},
	}
	for _, p := range pairs {
		assert.Equal(t, p.px*PtPerPx, p.pt, "pt must equal px*0.75 for %s", p.name)
	}
}

func TestBuildLayout_PxPtPairingAcrossSizes(t *testing.T) {
	bill := sampleBill()
	from := sampleFromAddress()

	// The apportioned box heights are derived by dividing the pt split
	// by 0.75, so they are the pairs most exposed to float drift.
	for w := 96.0; w <= 768; w += 4 {
		for h := 96.0; h <= 768; h += 4 {
			m := BuildLayout(bill, &Template{Name: "scan", Width: w, Height: h}, from)

			require.Equal(t, m.ToAddressBoxHeightPx*PtPerPx, m.ToAddressBoxHeightPt,
				"to-address box at %gx%g", w, h)
			require.Equal(t, m.DetailBoxHeightPx*PtPerPx, m.DetailBoxHeightPt,
				"detail box at %gx%g", w, h)
			require.Equal(t, m.ProductBoxHeightPx*PtPerPx, m.ProductBoxHeightPt,
				"product box at %gx%g", w, h)
		}
	}
}

func TestBuildLayout_Idempotent(t *testing.T) {
	tmpl := &Template{ID: "t1", Name: "4x4", Width: 384, Height: 384}
	a := BuildLayout(sampleBill(), tmpl, sampleFromAddress())
	b := BuildLayout(sampleBill(), tmpl, sampleFromAddress())
	assert.Equal(t, a, b)
}

func TestBuildLayout_ApportionmentBounds(t *testing.T) {
	tests := []struct {
		name   string
		width  float64
		height float64
	}{
		{"2x4 small", 192, 384},
		{"4x4 medium", 384, 384},
		{"6x4 large", 576, 384},
		{"tall large", 576, 768},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl := &Template{Name: tt.name, Width: tt.width, Height: tt.height}
			m := BuildLayout(sampleBill(), tmpl, sampleFromAddress())

			headerHeight := 3 * m.TitleFontSizePt
			barcodeBlock := m.BarcodeHeightPt + barcodeReservePt
			used := m.ToAddressBoxHeightPt + m.DetailBoxHeightPt + headerHeight + barcodeBlock

			assert.False(t, m.VerticalOverflow)
			assert.LessOrEqual(t, used, m.TemplateHeightPt-2*m.MarginPt)
			assert.GreaterOrEqual(t, m.ToAddressBoxHeightPt, float64(MinBoxHeightPt))
			assert.GreaterOrEqual(t, m.DetailBoxHeightPt, float64(MinBoxHeightPt))
			assert.GreaterOrEqual(t, m.ProductBoxHeightPt, 0.0)
		})
	}
}

func TestBuildLayout_TinyTemplateClampsNotPanics(t *testing.T) {
	tmpl := &Template{Name: "tiny", Width: 96, Height: 120}
	m := BuildLayout(sampleBill(), tmpl, sampleFromAddress())

	assert.True(t, m.VerticalOverflow)
	assert.Equal(t, float64(MinBoxHeightPt), m.ToAddressBoxHeightPt)
	assert.Equal(t, float64(MinBoxHeightPt), m.DetailBoxHeightPt)
	assert.Equal(t, 0.0, m.ProductBoxHeightPt)
}

func TestBuildLayout_NilTemplateFallsBackToDefault(t *testing.T) {
	m := BuildLayout(sampleBill(), nil, sampleFromAddress())
	assert.Equal(t, float64(DefaultTemplateWidth), m.TemplateWidthPx)
	assert.Equal(t, float64(DefaultTemplateHeight), m.TemplateHeightPx)
	assert.Equal(t, TierMedium, m.Tier)
}

func TestBuildLayout_ProductTruncationSmallTier(t *testing.T) {
	tmpl := &Template{Name: "2x4", Width: 192, Height: 384}
	bill := sampleBill()
	bill.ProductDetails = []ProductDetail{{ProductName: "Almond Oil - 35ml", Quantity: 2}}

	m := BuildLayout(bill, tmpl, sampleFromAddress())

	assert.Equal(t, "Almond Oil …", TruncateProductName("Almond Oil - 35ml", 12))
	assert.Equal(t, "Almond Oil … × 2", m.ProductText)
}

func TestBuildLayout_EmptyProductList(t *testing.T) {
	bill := sampleBill()
	bill.ProductDetails = nil
	m := BuildLayout(bill, &Template{Width: 384, Height: 384}, sampleFromAddress())
	assert.Equal(t, "No products", m.ProductText)
}

func TestBuildLayout_MissingOptionalFieldsDegradeToEmpty(t *testing.T) {
	bill := sampleBill()
	bill.ShippingDetails = nil
	bill.CustomerDetails.FlatNo = ""

	m := BuildLayout(bill, &Template{Width: 384, Height: 384}, sampleFromAddress())

	assert.Equal(t, "", m.FormattedOrder.ShipVia)
	assert.Equal(t, "", m.FormattedOrder.Weight)
	assert.Equal(t, "MG Road", m.FormattedOrder.ToAddressLine)
}

func TestBuildLayout_FormattedOrder(t *testing.T) {
	m := BuildLayout(sampleBill(), &Template{Width: 384, Height: 384}, sampleFromAddress())
	f := m.FormattedOrder

	assert.Equal(t, "B-1001", f.BillID)
	assert.Equal(t, "INV-2026-0042", f.BillNo)
	assert.Equal(t, "Surface", f.ShipVia)
	assert.Equal(t, "2026-08-30 14:21", f.OrderDate)
	assert.Equal(t, "12A, MG Road", f.ToAddressLine)
	assert.Equal(t, "Kerala - 682016", f.ToStateLine)
	assert.Equal(t, 3, f.TotalQuantity)
	assert.Equal(t, "1.25 kg", f.Weight)
}

func TestResolveFromAddress_OrganisationWins(t *testing.T) {
	resolved := ResolveFromAddress(sampleBill().OrganisationDetails, sampleFromAddress())

	assert.Equal(t, "Kairali Naturals", resolved.Name)
	assert.Equal(t, "Kochi", resolved.City)
	assert.Equal(t, "682030", resolved.ZipCode)
}

func TestResolveFromAddress_FallsBackFieldByField(t *testing.T) {
	org := OrganisationDetails{Name: "Org Only"}
	resolved := ResolveFromAddress(org, sampleFromAddress())

	require.Equal(t, "Org Only", resolved.Name)
	assert.Equal(t, "Warehouse 7", resolved.Street)
	assert.Equal(t, "Aluva", resolved.City)
	assert.Equal(t, "683101", resolved.ZipCode)
	assert.Equal(t, "0484-1111111", resolved.Phone)
}

func TestTruncateProductName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		max      int
		expected string
	}{
		{"under limit unchanged", "Soap", 12, "Soap"},
		{"at limit unchanged", "ExactlyTwelv", 12, "ExactlyTwelv"},
		{"over limit truncated", "Almond Oil - 35ml", 12, "Almond Oil …"},
		{"unicode aware", "Ayurvedic Très Long Name", 12, "Ayurvedic T…"},
		{"zero max returns input", "Soap", 0, "Soap"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateProductName(tt.input, tt.max)
			assert.Equal(t, tt.expected, got)
			if len([]rune(tt.input)) > tt.max && tt.max > 0 {
				assert.Len(t, []rune(got), tt.max)
			}
		})
	}
}

func TestBuildProductText_Joins(t *testing.T) {
	products := []ProductDetail{
		{ProductName: "Almond Oil", Quantity: 2},
		{ProductName: "Rose Water", Quantity: 5},
	}
	assert.Equal(t, "Almond Oil × 2, Rose Water × 5", BuildProductText(products, 20))
}

func TestDetailBoxWidthPt(t *testing.T) {
	m := BuildLayout(sampleBill(), &Template{Width: 384, Height: 384}, sampleFromAddress())
	expected := (m.TemplateWidthPt - 3*m.MarginPt - m.SectionSpacingPt) / 2
	assert.Equal(t, expected, m.DetailBoxWidthPt())
}
