package label

import (
	"context"
	"testing"
	"time"

	"github.com/shipdesk/backend/internal/domain/label"
	domainprinting "github.com/shipdesk/backend/internal/domain/printing"
	"github.com/shipdesk/backend/internal/domain/shared"
	"github.com/shipdesk/backend/internal/infrastructure/barcode"
	infra "github.com/shipdesk/backend/internal/infrastructure/printing"
	"github.com/shipdesk/backend/internal/infrastructure/rendering"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryDownloader struct {
	filename string
	data     []byte
}

func (d *memoryDownloader) Download(ctx context.Context, filename string, data []byte) (string, error) {
	d.filename = filename
	d.data = data
	return "/downloads/" + filename, nil
}

func fixedClock() time.Time {
	return time.Date(2026, 8, 31, 10, 30, 0, 0, time.UTC)
}

func serviceBill(id string) label.Bill {
	return label.Bill{
		BillID: id,
		CustomerDetails: label.CustomerDetails{
			Name:    "Anjali Menon",
			Street:  "MG Road",
			State:   "Kerala",
			Pincode: "682001",
		},
		BillDetails: label.BillDetails{
			BillNo: "INV-" + id,
			Date:   "2026-08-30",
		},
		ShippingDetails: &label.ShippingDetails{
			MethodName: "surface",
			Weight:     decimal.NewFromFloat(1.25),
		},
		ProductDetails: []label.ProductDetail{
			{ProductName: "Almond Oil - 35ml", Quantity: 2},
		},
	}
}

func serviceFrom() label.FromAddress {
	return label.FromAddress{
		Name:    "Kairali Naturals",
		Street:  "Industrial Estate",
		City:    "Kochi",
		State:   "Kerala",
		ZipCode: "682030",
		Phone:   "0484-2223344",
	}
}

func newTestService(t *testing.T, dl infra.PDFDownloader) *LabelService {
	t.Helper()

	htmlRenderer, err := rendering.NewHTMLRenderer()
	require.NoError(t, err)

	enc := barcode.NewCode128Encoder()
	pdfRenderer := rendering.NewPDFRenderer(enc, zap.NewNop())
	orch := infra.NewOrchestrator(infra.NewLogSink(nil), dl, zap.NewNop(),
		infra.WithSleep(func(time.Duration) {}))

	return NewLabelService(enc, htmlRenderer, pdfRenderer, orch, serviceFrom(),
		zap.NewNop(), WithClock(fixedClock))
}

func TestLabelService_Preview(t *testing.T) {
	svc := newTestService(t, nil)

	resp, err := svc.Preview(context.Background(), &PreviewRequest{
		Bills: []label.Bill{serviceBill("B-1001"), serviceBill("B-1002")},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.LabelCount)
	assert.Equal(t, "4x4", resp.TemplateName)
	assert.False(t, resp.NeedsSettle)
	assert.Contains(t, resp.HTML, "INV-B-1001")
	assert.Contains(t, resp.HTML, "INV-B-1002")
	assert.Contains(t, resp.HTML, "data:image/png;base64,")
}

func TestLabelService_Preview_EmptyBills(t *testing.T) {
	svc := newTestService(t, nil)

	_, err := svc.Preview(context.Background(), &PreviewRequest{})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_INPUT", domainErr.Code)
}

func TestLabelService_GeneratePDF(t *testing.T) {
	svc := newTestService(t, nil)

	bill := serviceBill("B-1001")
	tmpl := label.StandardTemplate(label.TemplateSize2x4)
	result, err := svc.GeneratePDF(context.Background(), &GeneratePDFRequest{
		Bill:     bill,
		Template: &tmpl,
	})
	require.NoError(t, err)

	assert.Equal(t, "bill_2x4_B-1001_2026-08-31.pdf", result.Filename)
	assert.Equal(t, 1, result.PageCount)
	assert.Equal(t, len(result.Data), result.Size)
	assert.Equal(t, "%PDF", string(result.Data[:4]))
}

func TestLabelService_GeneratePDF_MissingBillID(t *testing.T) {
	svc := newTestService(t, nil)

	_, err := svc.GeneratePDF(context.Background(), &GeneratePDFRequest{})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_INPUT", domainErr.Code)
}

func TestLabelService_GenerateBulkPDF(t *testing.T) {
	svc := newTestService(t, nil)

	result, err := svc.GenerateBulkPDF(context.Background(), &BulkPDFRequest{
		Bills: []label.Bill{serviceBill("B-1001"), serviceBill("B-1002"), serviceBill("B-1003")},
	})
	require.NoError(t, err)

	assert.Equal(t, "bulk_shipping_labels_4x4_2026-08-31.pdf", result.Filename)
	assert.Equal(t, 3, result.PageCount)
}

func TestLabelService_GenerateBulkPDF_IncompleteSender(t *testing.T) {
	svc := newTestService(t, nil)

	_, err := svc.GenerateBulkPDF(context.Background(), &BulkPDFRequest{
		Bills:       []label.Bill{serviceBill("B-1001")},
		FromAddress: &label.FromAddress{Name: "Kairali Naturals"},
	})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_ADDRESS", domainErr.Code)
	assert.Contains(t, domainErr.Message, "street")
	assert.Contains(t, domainErr.Message, "B-1001")
}

func TestLabelService_GenerateBulkPDF_OrganisationFillsSender(t *testing.T) {
	svc := newTestService(t, nil)

	// The stored address is incomplete but the bill's organisation
	// details cover the gaps.
	bill := serviceBill("B-1001")
	bill.OrganisationDetails = label.OrganisationDetails{
		Name:     "Malabar Spices",
		Street:   "Spice Market Road",
		District: "Calicut",
		State:    "Kerala",
		Pincode:  "673001",
	}

	_, err := svc.GenerateBulkPDF(context.Background(), &BulkPDFRequest{
		Bills:       []label.Bill{bill},
		FromAddress: &label.FromAddress{Phone: "0495-1112233"},
	})
	require.NoError(t, err)
}

func TestLabelService_Print(t *testing.T) {
	dl := &memoryDownloader{}
	svc := newTestService(t, dl)

	resp, err := svc.Print(context.Background(), &PrintRequest{
		Bills: []label.Bill{serviceBill("B-1001"), serviceBill("B-1002")},
	})
	require.NoError(t, err)

	assert.Equal(t, domainprinting.RunStatePdfDownloaded.String(), resp.State)
	assert.Equal(t, []string{"B-1001", "B-1002"}, resp.BillIDs)
	assert.Equal(t, 2, resp.LabelCount)
	assert.Equal(t, "bulk_shipping_labels_4x4_2026-08-31.pdf", dl.filename)
	assert.Equal(t, "%PDF", string(dl.data[:4]))
	assert.Equal(t, "/downloads/bulk_shipping_labels_4x4_2026-08-31.pdf", resp.DownloadPath)
	assert.Empty(t, resp.Warning)
}

func TestLabelService_Print_SkipDownload(t *testing.T) {
	dl := &memoryDownloader{}
	svc := newTestService(t, dl)

	resp, err := svc.Print(context.Background(), &PrintRequest{
		Bills:        []label.Bill{serviceBill("B-1001")},
		SkipDownload: true,
	})
	require.NoError(t, err)

	assert.Equal(t, domainprinting.RunStateClosed.String(), resp.State)
	assert.Nil(t, dl.data)
	assert.Empty(t, resp.DownloadPath)
}

func TestLabelService_StandardTemplates(t *testing.T) {
	svc := newTestService(t, nil)

	infos := svc.StandardTemplates()
	require.Len(t, infos, 3)

	assert.Equal(t, "2x4", infos[0].Name)
	assert.InDelta(t, 2.0, infos[0].WidthIn, 1e-9)
	assert.InDelta(t, 4.0, infos[0].HeightIn, 1e-9)
	assert.Equal(t, 192.0, infos[0].Width)
	assert.Equal(t, 384.0, infos[0].Height)

	assert.Equal(t, "4x4", infos[1].Name)
	assert.Equal(t, "6x4", infos[2].Name)
	assert.InDelta(t, 6.0, infos[2].WidthIn, 1e-9)
}
