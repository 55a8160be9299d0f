package label

// PtPerPx is the pixel-to-point conversion factor under the 96 DPI
// assumption used by CSS: 1px = 0.75pt. Every paired px/pt field in a
// LayoutModel is derived through this constant so the HTML and PDF
// renderers cannot drift apart.
const PtPerPx = 0.75

// PxToPt converts CSS pixels to PDF points.
func PxToPt(px float64) float64 {
	return px * PtPerPx
}

// PtToPx converts PDF points to CSS pixels.
func PtToPx(pt float64) float64 {
	return pt / PtPerPx
}

// PtToInches converts PDF points to inches (72pt per inch). Used for
// @page CSS rules, which browsers honour most reliably in physical units.
func PtToInches(pt float64) float64 {
	return pt / 72
}
