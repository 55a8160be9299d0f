package label

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shipdesk/backend/internal/domain/label"
	"github.com/shipdesk/backend/internal/domain/printing"
	"github.com/shipdesk/backend/internal/domain/shared"
	"github.com/shipdesk/backend/internal/infrastructure/barcode"
	infra "github.com/shipdesk/backend/internal/infrastructure/printing"
	"github.com/shipdesk/backend/internal/infrastructure/rendering"
	"go.uber.org/zap"
)

// LabelService handles shipping label business operations: HTML
// previews, single and bulk PDF generation, and print runs.
type LabelService struct {
	encoder      barcode.Encoder
	htmlRenderer *rendering.HTMLRenderer
	pdfRenderer  *rendering.PDFRenderer
	orchestrator *infra.Orchestrator
	defaultFrom  label.FromAddress
	logger       *zap.Logger
	now          func() time.Time
}

// ServiceOption configures the LabelService
type ServiceOption func(*LabelService)

// WithClock replaces the wall clock, used by tests for stable filenames
func WithClock(now func() time.Time) ServiceOption {
	return func(s *LabelService) { s.now = now }
}

// NewLabelService creates a new LabelService
func NewLabelService(
	encoder barcode.Encoder,
	htmlRenderer *rendering.HTMLRenderer,
	pdfRenderer *rendering.PDFRenderer,
	orchestrator *infra.Orchestrator,
	defaultFrom label.FromAddress,
	logger *zap.Logger,
	opts ...ServiceOption,
) *LabelService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &LabelService{
		encoder:      encoder,
		htmlRenderer: htmlRenderer,
		pdfRenderer:  pdfRenderer,
		orchestrator: orchestrator,
		defaultFrom:  defaultFrom,
		logger:       logger,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Preview renders the printable HTML document for the given bills
func (s *LabelService) Preview(ctx context.Context, req *PreviewRequest) (*PreviewResponse, error) {
	tmpl, from := s.resolveInputs(req.Template, req.FromAddress)
	if err := validateBills(req.Bills); err != nil {
		return nil, err
	}

	models, assets := s.buildLayouts(req.Bills, &tmpl, from)
	html, err := s.htmlRenderer.Render(models, assets)
	if err != nil {
		return nil, err
	}

	needsSettle := false
	for _, a := range assets {
		if a.IsEmpty() {
			needsSettle = true
			break
		}
	}

	s.logger.Info("label preview rendered",
		zap.Int("labels", len(models)),
		zap.String("template", tmpl.Name))

	return &PreviewResponse{
		HTML:         html,
		LabelCount:   len(models),
		TemplateName: tmpl.Name,
		NeedsSettle:  needsSettle,
	}, nil
}

// GeneratePDF renders a single-order PDF
func (s *LabelService) GeneratePDF(ctx context.Context, req *GeneratePDFRequest) (*PDFResult, error) {
	tmpl, from := s.resolveInputs(req.Template, req.FromAddress)
	if req.Bill.BillID == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Bill ID cannot be empty")
	}

	result, err := s.pdfRenderer.RenderSingle(&req.Bill, &tmpl, from)
	if err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("bill_%s_%s_%s.pdf",
		tmpl.Name, req.Bill.BillID, s.now().Format("2006-01-02"))

	s.logger.Info("label PDF generated",
		zap.String("billId", req.Bill.BillID),
		zap.String("filename", filename),
		zap.Int("size", len(result.PDFData)),
		zap.Duration("duration", result.RenderDuration))

	return &PDFResult{
		Filename:  filename,
		Data:      result.PDFData,
		PageCount: result.PageCount,
		Size:      len(result.PDFData),
	}, nil
}

// GenerateBulkPDF renders a multi-page PDF with one label per page. The
// resolved sender address must be complete for every bill before any
// rendering starts.
func (s *LabelService) GenerateBulkPDF(ctx context.Context, req *BulkPDFRequest) (*PDFResult, error) {
	tmpl, from := s.resolveInputs(req.Template, req.FromAddress)
	if err := validateBills(req.Bills); err != nil {
		return nil, err
	}
	if err := validateFromAddresses(req.Bills, from); err != nil {
		return nil, err
	}

	result, err := s.pdfRenderer.RenderBulk(req.Bills, &tmpl, from)
	if err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("bulk_shipping_labels_%s_%s.pdf",
		tmpl.Name, s.now().Format("2006-01-02"))

	s.logger.Info("bulk label PDF generated",
		zap.Int("labels", len(req.Bills)),
		zap.String("filename", filename),
		zap.Int("pages", result.PageCount),
		zap.Duration("duration", result.RenderDuration))

	return &PDFResult{
		Filename:  filename,
		Data:      result.PDFData,
		PageCount: result.PageCount,
		Size:      len(result.PDFData),
	}, nil
}

// Print runs the full print flow: HTML document into the print window,
// then the bulk PDF download. A run that fails after content delivery
// is still reported as a response; a run that aborts earlier returns
// the partially recorded response alongside the error.
func (s *LabelService) Print(ctx context.Context, req *PrintRequest) (*PrintRunResponse, error) {
	tmpl, from := s.resolveInputs(req.Template, req.FromAddress)
	if err := validateBills(req.Bills); err != nil {
		return nil, err
	}
	if err := validateFromAddresses(req.Bills, from); err != nil {
		return nil, err
	}

	models, assets := s.buildLayouts(req.Bills, &tmpl, from)
	html, err := s.htmlRenderer.Render(models, assets)
	if err != nil {
		return nil, err
	}

	needsSettle := false
	for _, a := range assets {
		if a.IsEmpty() {
			needsSettle = true
			break
		}
	}

	doc := &infra.PrintDocument{
		HTML:         html,
		BillIDs:      billIDs(req.Bills),
		TemplateName: tmpl.Name,
		NeedsSettle:  needsSettle,
	}

	if !req.SkipDownload {
		pdf, err := s.pdfRenderer.RenderBulk(req.Bills, &tmpl, from)
		if err != nil {
			return nil, err
		}
		doc.PDFData = pdf.PDFData
		doc.PDFFilename = fmt.Sprintf("bulk_shipping_labels_%s_%s.pdf",
			tmpl.Name, s.now().Format("2006-01-02"))
	}

	run, err := s.orchestrator.Run(ctx, doc)
	if run == nil {
		return nil, err
	}
	return toPrintRunResponse(run), err
}

// StandardTemplates lists the built-in label templates
func (s *LabelService) StandardTemplates() []TemplateInfo {
	sizes := label.AllTemplateSizes()
	infos := make([]TemplateInfo, 0, len(sizes))
	for _, size := range sizes {
		t := label.StandardTemplate(size)
		infos = append(infos, TemplateInfo{
			ID:       t.ID,
			Name:     t.Name,
			Width:    t.Width,
			Height:   t.Height,
			WidthIn:  label.PtToInches(label.PxToPt(t.Width)),
			HeightIn: label.PtToInches(label.PxToPt(t.Height)),
		})
	}
	return infos
}

func (s *LabelService) resolveInputs(tmpl *label.Template, from *label.FromAddress) (label.Template, label.FromAddress) {
	resolved := tmpl.Resolve()
	sender := s.defaultFrom
	if from != nil {
		sender = *from
	}
	return resolved, sender
}

func (s *LabelService) buildLayouts(bills []label.Bill, tmpl *label.Template, from label.FromAddress) ([]*label.LayoutModel, []barcode.Asset) {
	models := make([]*label.LayoutModel, len(bills))
	assets := make([]barcode.Asset, len(bills))
	for i := range bills {
		m := label.BuildLayout(&bills[i], tmpl, from)
		models[i] = &m
		assets[i] = barcode.EncodeForLayout(s.encoder, bills[i].BillID, &m)
	}
	return models, assets
}

func validateBills(bills []label.Bill) error {
	if len(bills) == 0 {
		return shared.NewDomainError("INVALID_INPUT", "At least one bill is required")
	}
	for _, b := range bills {
		if b.BillID == "" {
			return shared.NewDomainError("INVALID_INPUT", "Bill ID cannot be empty")
		}
	}
	return nil
}

// validateFromAddresses checks that each bill resolves to a complete
// sender address, with organisation details taking precedence over the
// stored address.
func validateFromAddresses(bills []label.Bill, from label.FromAddress) error {
	for _, b := range bills {
		resolved := label.ResolveFromAddress(b.OrganisationDetails, from)
		missing := label.FromAddress{
			Name:    resolved.Name,
			Street:  resolved.Street,
			City:    resolved.City,
			State:   resolved.State,
			ZipCode: resolved.ZipCode,
			Phone:   resolved.Phone,
		}.MissingFields()
		if len(missing) > 0 {
			return shared.NewDomainError("INVALID_ADDRESS",
				"Sender address for bill "+b.BillID+" is missing: "+strings.Join(missing, ", "))
		}
	}
	return nil
}

func billIDs(bills []label.Bill) []string {
	ids := make([]string, len(bills))
	for i, b := range bills {
		ids[i] = b.BillID
	}
	return ids
}

func toPrintRunResponse(run *printing.PrintRun) *PrintRunResponse {
	return &PrintRunResponse{
		ID:           run.GetID().String(),
		State:        run.State.String(),
		BillIDs:      run.BillIDs,
		LabelCount:   run.LabelCount,
		TemplateName: run.TemplateName,
		Warning:      run.ErrorMessage,
		DownloadPath: run.DownloadPath,
		CreatedAt:    run.CreatedAt,
		FinishedAt:   run.FinishedAt,
	}
}
