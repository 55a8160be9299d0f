package barcode

// ClientScriptEncoder is the fallback encoder used when no raster
// surface is available. It always returns an empty Asset, which makes
// the HTML renderer emit an inline SVG placeholder plus a JsBarcode
// call in the document's own script block, and makes the PDF renderer
// fall back to a bracketed text placeholder.
type ClientScriptEncoder struct{}

// NewClientScriptEncoder creates the client-rendered fallback encoder.
func NewClientScriptEncoder() *ClientScriptEncoder {
	return &ClientScriptEncoder{}
}

// Encode returns an empty Asset; rendering is deferred to the client.
func (e *ClientScriptEncoder) Encode(text string, widthPx, heightPx int) (Asset, error) {
	return Asset{}, nil
}
