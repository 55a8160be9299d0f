package rendering

// RenderError represents an error during label rendering.
type RenderError struct {
	Code    string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// Error codes for rendering failures
const (
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeEmptyBatch   = "EMPTY_BATCH"
	ErrCodeRenderFailed = "RENDER_FAILED"
	ErrCodePDFOutput    = "PDF_OUTPUT_FAILED"
)

// NewRenderError creates a new RenderError
func NewRenderError(code, message string, cause error) *RenderError {
	return &RenderError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}
