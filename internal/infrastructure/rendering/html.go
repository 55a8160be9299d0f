package rendering

import (
	"bytes"
	"html/template"
	"strconv"
	"time"

	"github.com/shipdesk/backend/internal/domain/label"
	"github.com/shipdesk/backend/internal/infrastructure/barcode"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultSettleDelay is how long a self-printing document waits after
// load before invoking the print dialog, giving the client-side barcode
// script time to draw. A pragmatic concession, not a completion signal.
const DefaultSettleDelay = 500 * time.Millisecond

// HTMLRenderer emits complete, self-contained HTML print documents. One
// .container is produced per label; the @page rule is sized to the
// template's physical dimensions in inches so the browser's print
// engine never auto-scales.
type HTMLRenderer struct {
	tmpl        *template.Template
	settleDelay time.Duration
}

// HTMLOption configures the HTML renderer.
type HTMLOption func(*HTMLRenderer)

// WithSettleDelay overrides the barcode settle delay embedded in
// self-printing documents.
func WithSettleDelay(d time.Duration) HTMLOption {
	return func(r *HTMLRenderer) {
		if d > 0 {
			r.settleDelay = d
		}
	}
}

// NewHTMLRenderer creates an HTML renderer with its document template
// parsed once up front.
func NewHTMLRenderer(opts ...HTMLOption) (*HTMLRenderer, error) {
	r := &HTMLRenderer{settleDelay: DefaultSettleDelay}
	for _, opt := range opts {
		opt(r)
	}

	titleCaser := cases.Title(language.English)
	funcMap := template.FuncMap{
		"px": func(v float64) string {
			return strconv.FormatFloat(v, 'f', -1, 64)
		},
		"in": func(v float64) string {
			return strconv.FormatFloat(v, 'f', 4, 64)
		},
		"titleCase": titleCaser.String,
	}

	tmpl, err := template.New("label-document").Funcs(funcMap).Parse(labelDocumentTemplate)
	if err != nil {
		return nil, NewRenderError(ErrCodeRenderFailed, "failed to parse label document template", err)
	}
	r.tmpl = tmpl
	return r, nil
}

// labelView is one label's slice of the document data.
type labelView struct {
	M          *label.LayoutModel
	BarcodeURL template.URL
	HasBarcode bool
}

// documentView is the full template payload. Page geometry comes from
// the first label's model; every label in one document shares the same
// template, so the numbers are identical across models by construction.
type documentView struct {
	Page          *label.LayoutModel
	PageWidthIn   float64
	PageHeightIn  float64
	DetailWidthPx float64
	// TopPaddingPx is the container's top padding: the margin plus the
	// tier's top padding adjustment, matching where the PDF cursor
	// starts.
	TopPaddingPx float64
	Labels        []labelView
	NeedsScript   bool
	SettleDelayMs int64
}

// Render builds one HTML document covering all the given layout models,
// in order. assets pairs with models by index; a missing or empty asset
// switches that label to the client-rendered barcode fallback and adds
// the shared script block to the document.
func (r *HTMLRenderer) Render(models []*label.LayoutModel, assets []barcode.Asset) (string, error) {
	if len(models) == 0 {
		return "", NewRenderError(ErrCodeEmptyBatch, "no labels to render", nil)
	}

	page := models[0]
	view := documentView{
		Page:          page,
		PageWidthIn:   label.PtToInches(page.TemplateWidthPt),
		PageHeightIn:  label.PtToInches(page.TemplateHeightPt),
		DetailWidthPx: label.PtToPx(page.DetailBoxWidthPt()),
		TopPaddingPx:  page.MarginPx + page.TopPaddingAdjustmentPx,
		SettleDelayMs: r.settleDelay.Milliseconds(),
	}

	for i, m := range models {
		lv := labelView{M: m}
		if i < len(assets) && !assets[i].IsEmpty() {
			lv.HasBarcode = true
			lv.BarcodeURL = template.URL(assets[i].DataURL)
		} else {
			view.NeedsScript = true
		}
		view.Labels = append(view.Labels, lv)
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, view); err != nil {
		return "", NewRenderError(ErrCodeRenderFailed, "failed to execute label document template", err)
	}
	return buf.String(), nil
}

// labelDocumentTemplate is the single document skeleton. All CSS values
// are taken verbatim from the LayoutModel; the stylesheet makes no
// sizing decisions of its own.
const labelDocumentTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Shipping Labels</title>
<style>
@page {
  size: {{in .PageWidthIn}}in {{in .PageHeightIn}}in;
  margin: 0;
}
* { margin: 0; padding: 0; box-sizing: border-box; }
body {
  font-family: Arial, Helvetica, sans-serif;
  font-size: {{px .Page.BaseFontSizePx}}px;
  line-height: {{.Page.LineHeight}};
}
.container {
  width: {{px .Page.TemplateWidthPx}}px;
  height: {{px .Page.TemplateHeightPx}}px;
  padding: {{px .Page.MarginPx}}px;
  padding-top: {{px .TopPaddingPx}}px;
  overflow: hidden;
  page-break-after: always;
}
.ship-via { font-size: {{px .Page.TitleFontSizePx}}px; text-align: left; }
.order-no { font-size: {{px .Page.TitleFontSizePx}}px; font-weight: bold; text-align: center; }
.barcode {
  display: block;
  margin: 0 auto;
  height: {{px .Page.BarcodeHeightPx}}px;
}
.barcode-gap { height: {{px .Page.BarcodeHeightPx}}px; }
.box {
  border: {{px .Page.BorderWidthPx}}px solid #000;
  padding: {{px .Page.PaddingPx}}px;
  margin-top: {{px .Page.SectionSpacingPx}}px;
  overflow: hidden;
}
.to-address { height: {{px .Page.ToAddressBoxHeightPx}}px; }
.to-address .name { font-weight: bold; }
.detail-row { display: flex; gap: {{px .Page.SectionSpacingPx}}px; }
.detail {
  width: {{px .DetailWidthPx}}px;
  height: {{px .Page.DetailBoxHeightPx}}px;
  font-size: {{px .Page.SmallFontSizePx}}px;
}
.detail .box-title { font-weight: bold; }
.products {
  height: {{px .Page.ProductBoxHeightPx}}px;
  font-size: {{px .Page.SmallFontSizePx}}px;
  word-wrap: break-word;
}
@media print {
  html, body {
    width: {{in .PageWidthIn}}in;
    height: {{in .PageHeightIn}}in;
  }
  .container { page-break-after: always; }
}
</style>
</head>
<body>
{{- range .Labels}}
<div class="container">
  <div class="ship-via">Ship Via: {{titleCase .M.FormattedOrder.ShipVia}}</div>
  <div class="order-no">{{.M.FormattedOrder.BillNo}}</div>
  {{- if .HasBarcode}}
  <img class="barcode" src="{{.BarcodeURL}}" alt="">
  {{- else}}
  <svg class="barcode-gap" id="barcode-{{.M.FormattedOrder.BillID}}"></svg>
  {{- end}}
  <div class="box to-address">
    <div class="name">{{.M.FormattedOrder.ToName}}</div>
    <div>{{.M.FormattedOrder.ToAddressLine}}</div>
    <div>{{.M.FormattedOrder.ToDistrict}}</div>
    <div>{{.M.FormattedOrder.ToStateLine}}</div>
    <div>{{.M.FormattedOrder.ToPhone}}</div>
  </div>
  <div class="detail-row">
    <div class="box detail">
      <div class="box-title">From:</div>
      <div>{{.M.FromAddress.Name}}</div>
      <div>{{.M.FromAddress.Street}}</div>
      <div>{{.M.FromAddress.City}}</div>
      <div>{{.M.FromAddress.State}} - {{.M.FromAddress.ZipCode}}</div>
      <div>{{.M.FromAddress.Phone}}</div>
    </div>
    <div class="box detail">
      <div class="box-title">Prepaid Order:</div>
      <div>Order No: {{.M.FormattedOrder.BillNo}}</div>
      <div>Date: {{.M.FormattedOrder.OrderDate}}</div>
      <div>Items: {{.M.FormattedOrder.TotalQuantity}}</div>
      {{- if .M.FormattedOrder.Weight}}
      <div>Weight: {{.M.FormattedOrder.Weight}}</div>
      {{- end}}
    </div>
  </div>
  <div class="box products">{{.M.ProductText}}</div>
</div>
{{- end}}
{{- if .NeedsScript}}
<script src="https://cdn.jsdelivr.net/npm/jsbarcode@3.11.6/dist/JsBarcode.all.min.js"></script>
<script>
window.addEventListener('load', function () {
  {{- range .Labels}}
  {{- if not .HasBarcode}}
  try {
    JsBarcode("#barcode-{{.M.FormattedOrder.BillID}}", "{{.M.FormattedOrder.BillID}}", {
      format: "CODE128",
      displayValue: false,
      margin: 0,
      width: {{.M.BarcodeWidth}},
      height: {{.M.BarcodeHeightPx}}
    });
  } catch (e) { /* leave the gap; the id is printed as text anyway */ }
  {{- end}}
  {{- end}}
  setTimeout(function () {
    window.print();
    window.close();
  }, {{.SettleDelayMs}});
});
</script>
{{- end}}
</body>
</html>
`
