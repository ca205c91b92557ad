package errors

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helpers
// ==========================

type recordingLogger struct {
	messages []string
	fields   []map[string]interface{}
}

func (r *recordingLogger) Error(msg string, fields map[string]interface{}) {
	r.messages = append(r.messages, msg)
	r.fields = append(r.fields, fields)
}

// ==========================
// Constructor Tests
// ==========================

func TestNewHTTPStatusError(t *testing.T) {
	err := NewHTTPStatusError("GET", "/product/list", 503, "upstream down")

	assert.Equal(t, ErrCodeHTTPStatus, err.Code)
	assert.True(t, err.Retryable)
	assert.Equal(t, 503, StatusCode(err))
	assert.Equal(t, "StandardError[HTTP_STATUS_ERROR]: Backend responded with status 503", err.Error())

	notFound := NewHTTPStatusError("GET", "/product/x", 404, "")
	assert.False(t, notFound.Retryable)
}

func TestNewNetworkError_Unwraps(t *testing.T) {
	err := NewNetworkError("GET", "/user/1", context.DeadlineExceeded)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, "TRANSPORT", GetErrorCategory(err.Code))
}

func TestHTTPStatusError_TruncatesBody(t *testing.T) {
	body := make([]byte, 2000)
	for i := range body {
		body[i] = 'x'
	}
	err := NewHTTPStatusError("PUT", "/product/1", 500, string(body))
	assert.Len(t, err.Details, 515)
}

// ==========================
// Utility Tests
// ==========================

func TestIsCode_WrappedError(t *testing.T) {
	inner := NewEnvelopeDecodeError("products", "missing key")
	wrapped := fmt.Errorf("fetch products: %w", inner)

	assert.True(t, IsCode(wrapped, ErrCodeEnvelopeDecode))
	assert.False(t, IsCode(wrapped, ErrCodeNetwork))
	assert.Equal(t, 0, StatusCode(wrapped))
}

func TestGetErrorCategory(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		expected string
	}{
		{ErrCodeNetwork, "TRANSPORT"},
		{ErrCodeEnvelopeDecode, "PROTOCOL"},
		{ErrCodeIdentity, "AUTH"},
		{ErrCodeInvalidState, "CLIENT"},
		{ErrorCode("SOMETHING_ELSE"), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.expected, GetErrorCategory(tt.code))
		})
	}
}

// ==========================
// Handler Tests
// ==========================

func TestErrorHandler_Handle(t *testing.T) {
	log := &recordingLogger{}
	h := NewErrorHandler(log)

	msg := h.Handle("products.list", "Failed to fetch products", NewHTTPStatusError("GET", "/product/list", 500, "boom"))

	assert.Equal(t, "Failed to fetch products", msg)
	require.Len(t, log.fields, 1)
	assert.Equal(t, "HTTP_STATUS_ERROR", log.fields[0]["errorCode"])
	assert.Equal(t, "products.list", log.fields[0]["operation"])
}

func TestNormalize_PlainError(t *testing.T) {
	stdErr := Normalize(fmt.Errorf("plain"))

	assert.Equal(t, ErrCodeInternal, stdErr.Code)
	assert.Equal(t, "plain", stdErr.Details)
}
