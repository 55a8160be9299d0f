// Package rendering contains the renderers that turn a LayoutModel into
// deliverable artifacts.
//
// This package contains:
// - HTMLRenderer for self-contained print documents (@page sized to the label)
// - PDFRenderer for single-order and multi-page bulk PDFs drawn with fpdf
// - RenderError, the typed error shared by all renderers
//
// Both renderers read every spacing constant from the LayoutModel and
// make no styling decisions of their own; the model is the single
// normative contract that keeps the HTML and PDF outputs visually
// consistent. The PDF path reproduces the CSS flow layout with an
// explicit vertical cursor, since PDF drawing has no native flow layout.
package rendering
