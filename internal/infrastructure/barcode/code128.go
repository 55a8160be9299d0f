package barcode

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"

	bcode "github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
)

// Code128Encoder pre-renders CODE128 symbols as PNG rasters. The
// identifier is shown separately as plain text on the label, so the
// raster carries bars only: no checksum digit display and no
// human-readable line.
type Code128Encoder struct{}

// NewCode128Encoder creates a raster CODE128 encoder.
func NewCode128Encoder() *Code128Encoder {
	return &Code128Encoder{}
}

// Encode renders text as a CODE128 PNG of the requested pixel size.
func (e *Code128Encoder) Encode(text string, widthPx, heightPx int) (Asset, error) {
	if text == "" {
		return Asset{}, fmt.Errorf("barcode: empty text")
	}
	if widthPx <= 0 || heightPx <= 0 {
		return Asset{}, fmt.Errorf("barcode: invalid raster size %dx%d", widthPx, heightPx)
	}

	symbol, err := code128.Encode(text)
	if err != nil {
		return Asset{}, fmt.Errorf("barcode: encode %q: %w", text, err)
	}

	// Scaling can fail when the requested width is narrower than the
	// symbol's minimum module count; that is a per-label failure, not a
	// batch abort.
	scaled, err := bcode.Scale(symbol, widthPx, heightPx)
	if err != nil {
		return Asset{}, fmt.Errorf("barcode: scale to %dx%d: %w", widthPx, heightPx, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return Asset{}, fmt.Errorf("barcode: png encode: %w", err)
	}

	data := buf.Bytes()
	return Asset{
		DataURL: "data:image/png;base64," + base64.StdEncoding.EncodeToString(data),
		PNG:     data,
	}, nil
}
