package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		code string
		want int
	}{
		{"bad request", ErrCodeBadRequest, http.StatusBadRequest},
		{"invalid address", ErrCodeInvalidAddress, http.StatusBadRequest},
		{"empty batch", ErrCodeEmptyBatch, http.StatusBadRequest},
		{"not found", ErrCodeNotFound, http.StatusNotFound},
		{"invalid state", ErrCodeInvalidState, http.StatusUnprocessableEntity},
		{"render failed", ErrCodeRenderFailed, http.StatusInternalServerError},
		{"unknown code falls back to 500", "ERR_NOT_A_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	assert.Equal(t, ErrCodeInvalidAddress, NormalizeErrorCode("INVALID_ADDRESS"))
	assert.Equal(t, ErrCodeEmptyBatch, NormalizeErrorCode("EMPTY_BATCH"))
	assert.Equal(t, ErrCodeRenderFailed, NormalizeErrorCode("PDF_OUTPUT_FAILED"))
	assert.Equal(t, ErrCodeInvalidInput, NormalizeErrorCode("INVALID_TEMPLATE"))
	// Already normalized or unknown codes pass through.
	assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode(ErrCodeNotFound))
	assert.Equal(t, "CUSTOM_CODE", NormalizeErrorCode("CUSTOM_CODE"))
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeEmptyBatch, "no bills", "req-123")

	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeEmptyBatch, resp.Error.Code)
	assert.Equal(t, "no bills", resp.Error.Message)
	assert.Equal(t, "req-123", resp.Error.RequestID)
}
