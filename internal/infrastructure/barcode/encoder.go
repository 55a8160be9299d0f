package barcode

import (
	"github.com/shipdesk/backend/internal/domain/label"
)

// Asset is a pre-rendered barcode raster. It is produced once per bill
// per render pass and never persisted.
type Asset struct {
	// DataURL is the base64 PNG data URL for embedding in HTML.
	DataURL string
	// PNG is the raw image for embedding in PDFs.
	PNG []byte
}

// IsEmpty reports whether the asset carries no raster, which callers
// must treat as "use the fallback path".
func (a Asset) IsEmpty() bool {
	return a.DataURL == "" || len(a.PNG) == 0
}

// Encoder renders an order identifier as a CODE128 barcode raster sized
// by the layout model's barcode dimensions.
type Encoder interface {
	// Encode renders text onto a widthPx x heightPx raster surface with
	// zero margin and no human-readable text overlay.
	Encode(text string, widthPx, heightPx int) (Asset, error)
}

// EncodeForLayout encodes text using the raster dimensions the layout
// model prescribes, degrading to an empty Asset on any failure. This is
// the form renderers consume: the error is swallowed by contract, and
// the caller decides between the raster and the fallback path by
// checking IsEmpty.
func EncodeForLayout(enc Encoder, text string, m *label.LayoutModel) Asset {
	if enc == nil || text == "" {
		return Asset{}
	}
	asset, err := enc.Encode(text, m.BarcodeRasterWidthPx(), int(m.BarcodeHeightPx))
	if err != nil {
		return Asset{}
	}
	return asset
}
