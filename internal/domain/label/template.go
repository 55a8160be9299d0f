package label

import "strings"

// Template identifies a physical label size. Width and Height are CSS
// pixels and are the only required fields; everything else is derived by
// the layout builder. A Template is immutable once selected for a render
// pass.
type Template struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Width         float64           `json:"width"`  // px
	Height        float64           `json:"height"` // px
	Margins       *Margins          `json:"margins,omitempty"`
	ScaleFactor   float64           `json:"scaleFactor,omitempty"`
	PrintSettings map[string]string `json:"printSettings,omitempty"`
}

// Margins represents optional template margin overrides in pixels.
type Margins struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// TemplateSize is a named standard label size.
type TemplateSize string

const (
	TemplateSize2x4 TemplateSize = "2x4" // 2in x 4in thermal label
	TemplateSize4x4 TemplateSize = "4x4" // 4in x 4in thermal label
	TemplateSize6x4 TemplateSize = "6x4" // 6in wide x 4in tall label
)

// IsValid checks if the TemplateSize is a valid value.
func (s TemplateSize) IsValid() bool {
	switch s {
	case TemplateSize2x4, TemplateSize4x4, TemplateSize6x4:
		return true
	}
	return false
}

// String returns the string representation of TemplateSize.
func (s TemplateSize) String() string {
	return string(s)
}

// Dimensions returns the label dimensions in pixels (width, height) at
// 96 DPI.
func (s TemplateSize) Dimensions() (width, height float64) {
	switch s {
	case TemplateSize2x4:
		return 192, 384
	case TemplateSize4x4:
		return 384, 384
	case TemplateSize6x4:
		return 576, 384
	default:
		return DefaultTemplateWidth, DefaultTemplateHeight
	}
}

// AllTemplateSizes returns all valid TemplateSize values.
func AllTemplateSizes() []TemplateSize {
	return []TemplateSize{TemplateSize2x4, TemplateSize4x4, TemplateSize6x4}
}

// Default label dimensions in pixels, used when no template is supplied.
// This is a deliberate safety default, not a silent failure: rendering
// proceeds on a 4x4in label rather than aborting.
const (
	DefaultTemplateWidth  = 384
	DefaultTemplateHeight = 384
)

// DefaultTemplate returns the fallback template used when the caller
// supplies none.
func DefaultTemplate() Template {
	return Template{
		ID:     "default",
		Name:   "4x4",
		Width:  DefaultTemplateWidth,
		Height: DefaultTemplateHeight,
	}
}

// StandardTemplate returns the built-in template for a named size.
func StandardTemplate(size TemplateSize) Template {
	w, h := size.Dimensions()
	return Template{
		ID:     strings.ToLower(size.String()),
		Name:   size.String(),
		Width:  w,
		Height: h,
	}
}

// Resolve returns the template itself when it carries usable dimensions,
// or the default template otherwise.
func (t *Template) Resolve() Template {
	if t == nil || t.Width <= 0 || t.Height <= 0 {
		return DefaultTemplate()
	}
	return *t
}
