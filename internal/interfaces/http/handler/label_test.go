package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	labelapp "github.com/shipdesk/backend/internal/application/label"
	"github.com/shipdesk/backend/internal/domain/label"
	"github.com/shipdesk/backend/internal/infrastructure/barcode"
	infra "github.com/shipdesk/backend/internal/infrastructure/printing"
	"github.com/shipdesk/backend/internal/infrastructure/rendering"
	"github.com/shipdesk/backend/internal/interfaces/http/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryDownloader struct {
	filename string
}

func (d *memoryDownloader) Download(ctx context.Context, filename string, data []byte) (string, error) {
	d.filename = filename
	return "/downloads/" + filename, nil
}

func setupLabelRouter(t *testing.T) (*gin.Engine, *memoryDownloader) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	htmlRenderer, err := rendering.NewHTMLRenderer()
	require.NoError(t, err)

	enc := barcode.NewCode128Encoder()
	pdfRenderer := rendering.NewPDFRenderer(enc, zap.NewNop())
	dl := &memoryDownloader{}
	orch := infra.NewOrchestrator(infra.NewLogSink(nil), dl, zap.NewNop(),
		infra.WithSleep(func(time.Duration) {}))

	from := label.FromAddress{
		Name:    "Kairali Naturals",
		Street:  "Industrial Estate",
		City:    "Kochi",
		State:   "Kerala",
		ZipCode: "682030",
	}
	svc := labelapp.NewLabelService(enc, htmlRenderer, pdfRenderer, orch, from,
		zap.NewNop(),
		labelapp.WithClock(func() time.Time {
			return time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
		}))

	engine := gin.New()
	router.NewRouter(engine).Register(NewLabelHandler(svc)).Setup()
	return engine, dl
}

func billJSON(id string) map[string]any {
	return map[string]any{
		"billId": id,
		"customerDetails": map[string]any{
			"name":    "Anjali Menon",
			"street":  "MG Road",
			"state":   "Kerala",
			"pincode": "682001",
		},
		"billDetails": map[string]any{
			"billNo": "INV-" + id,
			"date":   "2026-08-30",
		},
		"shippingDetails": map[string]any{
			"methodName": "surface",
		},
		"productDetails": []map[string]any{
			{"productName": "Almond Oil - 35ml", "quantity": 2},
		},
	}
}

func postJSON(t *testing.T, engine *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestLabelHandler_Preview(t *testing.T) {
	engine, _ := setupLabelRouter(t)

	w := postJSON(t, engine, "/api/v1/labels/preview", map[string]any{
		"bills": []map[string]any{billJSON("B-1001"), billJSON("B-1002")},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			HTML       string `json:"html"`
			LabelCount int    `json:"labelCount"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.Data.LabelCount)
	assert.Contains(t, resp.Data.HTML, "INV-B-1001")
}

func TestLabelHandler_Preview_NoBills(t *testing.T) {
	engine, _ := setupLabelRouter(t)

	w := postJSON(t, engine, "/api/v1/labels/preview", map[string]any{
		"bills": []map[string]any{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLabelHandler_GeneratePDF(t *testing.T) {
	engine, _ := setupLabelRouter(t)

	w := postJSON(t, engine, "/api/v1/labels/pdf", map[string]any{
		"bill": billJSON("B-1001"),
	})
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "bill_4x4_B-1001_2026-08-31.pdf")
	assert.Equal(t, "1", w.Header().Get("X-Page-Count"))
	assert.Equal(t, "%PDF", w.Body.String()[:4])
}

func TestLabelHandler_GenerateBulkPDF(t *testing.T) {
	engine, _ := setupLabelRouter(t)

	w := postJSON(t, engine, "/api/v1/labels/bulk/pdf", map[string]any{
		"bills": []map[string]any{billJSON("B-1001"), billJSON("B-1002"), billJSON("B-1003")},
	})
	require.Equal(t, http.StatusOK, w.Code)

	assert.Contains(t, w.Header().Get("Content-Disposition"), "bulk_shipping_labels_4x4_2026-08-31.pdf")
	assert.Equal(t, "3", w.Header().Get("X-Page-Count"))
}

func TestLabelHandler_GenerateBulkPDF_IncompleteSender(t *testing.T) {
	engine, _ := setupLabelRouter(t)

	w := postJSON(t, engine, "/api/v1/labels/bulk/pdf", map[string]any{
		"bills":       []map[string]any{billJSON("B-1001")},
		"fromAddress": map[string]any{"name": "Kairali Naturals"},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ERR_INVALID_ADDRESS", resp.Error.Code)
}

func TestLabelHandler_Print(t *testing.T) {
	engine, dl := setupLabelRouter(t)

	w := postJSON(t, engine, "/api/v1/labels/print", map[string]any{
		"bills": []map[string]any{billJSON("B-1001")},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			State        string `json:"state"`
			LabelCount   int    `json:"labelCount"`
			DownloadPath string `json:"downloadPath"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	assert.Equal(t, "PDF_DOWNLOADED", resp.Data.State)
	assert.Equal(t, 1, resp.Data.LabelCount)
	assert.NotEmpty(t, resp.Data.DownloadPath)
	assert.Equal(t, "bulk_shipping_labels_4x4_2026-08-31.pdf", dl.filename)
}

func TestLabelHandler_StandardTemplates(t *testing.T) {
	engine, _ := setupLabelRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/labels/templates/standard", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []struct {
			Name    string  `json:"name"`
			WidthIn float64 `json:"widthIn"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.Len(t, resp.Data, 3)
	assert.Equal(t, "2x4", resp.Data[0].Name)
	assert.InDelta(t, 2.0, resp.Data[0].WidthIn, 1e-9)
}
