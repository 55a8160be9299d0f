package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	labelapp "github.com/shipdesk/backend/internal/application/label"
	"github.com/shipdesk/backend/internal/infrastructure/printing"
	"github.com/shipdesk/backend/internal/interfaces/http/dto"
)

// LabelHandler handles shipping label API endpoints
type LabelHandler struct {
	BaseHandler
	labelService *labelapp.LabelService
}

// NewLabelHandler creates a new LabelHandler
func NewLabelHandler(labelService *labelapp.LabelService) *LabelHandler {
	return &LabelHandler{labelService: labelService}
}

// RegisterRoutes registers label routes on the given group
func (h *LabelHandler) RegisterRoutes(rg *gin.RouterGroup) {
	labels := rg.Group("/labels")
	{
		labels.POST("/preview", h.Preview)
		labels.POST("/pdf", h.GeneratePDF)
		labels.POST("/bulk/pdf", h.GenerateBulkPDF)
		labels.POST("/print", h.Print)
		labels.GET("/templates/standard", h.StandardTemplates)
	}
}

// Preview renders the printable HTML document for a set of bills
func (h *LabelHandler) Preview(c *gin.Context) {
	var req labelapp.PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, bindingErrorMessage(err))
		return
	}

	resp, err := h.labelService.Preview(c.Request.Context(), &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// GeneratePDF renders and serves a single-order PDF
func (h *LabelHandler) GeneratePDF(c *gin.Context) {
	var req labelapp.GeneratePDFRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, bindingErrorMessage(err))
		return
	}

	result, err := h.labelService.GeneratePDF(c.Request.Context(), &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	servePDF(c, result)
}

// GenerateBulkPDF renders and serves a multi-page PDF, one label per page
func (h *LabelHandler) GenerateBulkPDF(c *gin.Context) {
	var req labelapp.BulkPDFRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, bindingErrorMessage(err))
		return
	}

	result, err := h.labelService.GenerateBulkPDF(c.Request.Context(), &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	servePDF(c, result)
}

// Print runs the full print flow and reports the run outcome
func (h *LabelHandler) Print(c *gin.Context) {
	var req labelapp.PrintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, bindingErrorMessage(err))
		return
	}

	resp, err := h.labelService.Print(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, printing.ErrPopupBlocked) {
			h.Error(c, http.StatusInternalServerError, dto.ErrCodePrintFailed, err.Error())
			return
		}
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// StandardTemplates lists the built-in label templates
func (h *LabelHandler) StandardTemplates(c *gin.Context) {
	h.Success(c, h.labelService.StandardTemplates())
}

func servePDF(c *gin.Context, result *labelapp.PDFResult) {
	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Header("X-Page-Count", strconv.Itoa(result.PageCount))
	c.Data(http.StatusOK, "application/pdf", result.Data)
}
