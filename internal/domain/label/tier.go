package label

// Tier is a styling bucket selected by template width. Tiering exists
// because naive proportional scaling produces illegible text on small
// labels and wasteful whitespace on large ones; the breakpoints and the
// constants behind them are empirically chosen, not a continuous
// function of width.
type Tier string

const (
	TierSmall  Tier = "SMALL"  // width <= 192px, e.g. 2x4in
	TierMedium Tier = "MEDIUM" // width <= 384px, e.g. 4x4in
	TierLarge  Tier = "LARGE"  // anything wider
)

// IsValid checks if the Tier is a valid value.
func (t Tier) IsValid() bool {
	switch t {
	case TierSmall, TierMedium, TierLarge:
		return true
	}
	return false
}

// String returns the string representation of Tier.
func (t Tier) String() string {
	return string(t)
}

// TierForWidth selects the styling tier for a template width in pixels.
func TierForWidth(widthPx float64) Tier {
	switch {
	case widthPx <= 192:
		return TierSmall
	case widthPx <= 384:
		return TierMedium
	default:
		return TierLarge
	}
}

// tierStyle fixes every tier-dependent styling constant. All lengths are
// CSS pixels; point counterparts are derived via PxToPt by the layout
// builder, never stored here.
type tierStyle struct {
	BaseFontSize         float64
	TitleFontSize        float64
	SmallFontSize        float64
	LineHeight           float64 // unitless multiplier
	Margin               float64
	Padding              float64
	BorderWidth          float64
	TopPaddingAdjustment float64
	SectionSpacing       float64
	BarcodeWidth         float64 // bar module multiplier; raster width is BarcodeWidth*80 px
	BarcodeHeight        float64
	MaxProductNameLen    int
}

var tierStyles = map[Tier]tierStyle{
	TierSmall: {
		BaseFontSize:         7,
		TitleFontSize:        9,
		SmallFontSize:        6,
		LineHeight:           1.15,
		Margin:               8,
		Padding:              4,
		BorderWidth:          1,
		TopPaddingAdjustment: 2,
		SectionSpacing:       6,
		BarcodeWidth:         2,
		BarcodeHeight:        25,
		MaxProductNameLen:    12,
	},
	TierMedium: {
		BaseFontSize:         9,
		TitleFontSize:        12,
		SmallFontSize:        8,
		LineHeight:           1.2,
		Margin:               12,
		Padding:              6,
		BorderWidth:          1,
		TopPaddingAdjustment: 4,
		SectionSpacing:       8,
		BarcodeWidth:         3,
		BarcodeHeight:        35,
		MaxProductNameLen:    20,
	},
	TierLarge: {
		BaseFontSize:         11,
		TitleFontSize:        14,
		SmallFontSize:        9,
		LineHeight:           1.25,
		Margin:               16,
		Padding:              8,
		BorderWidth:          1.5,
		TopPaddingAdjustment: 6,
		SectionSpacing:       10,
		BarcodeWidth:         4,
		BarcodeHeight:        45,
		MaxProductNameLen:    30,
	},
}

// styleFor returns the styling constants for a tier. Unknown tiers fall
// back to medium.
func styleFor(t Tier) tierStyle {
	if s, ok := tierStyles[t]; ok {
		return s
	}
	return tierStyles[TierMedium]
}
