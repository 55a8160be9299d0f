// Package barcode provides CODE128 barcode generation for shipping
// labels.
//
// Two encoder implementations exist by design:
//   - Code128Encoder pre-renders the symbol onto an offscreen raster and
//     returns it as PNG bytes plus a data URL. This path is required for
//     PDF embedding and preferred for HTML, since it guarantees the
//     print preview matches the PDF.
//   - ClientScriptEncoder produces no raster at all; it signals the HTML
//     renderer to emit inline vector markup plus a barcode-library call
//     in the document's own script block. Consistency between HTML and
//     PDF is then best-effort.
//
// Callers must treat an empty Asset as "use the fallback path", never as
// a fatal error: a barcode failure is localized to a single label and
// does not abort a bulk batch.
package barcode
