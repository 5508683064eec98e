package errors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ppecli/internal/futures"
	"ppecli/internal/services"
)

func testHandler() *ErrorHandler {
	return NewErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), false)
}

func TestErrorToProblem(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedType string
	}{
		{
			name:         "api error",
			err:          ErrValidation("premium", "must be a number"),
			expectedCode: http.StatusBadRequest,
			expectedType: TypeValidation,
		},
		{
			name:         "wrapped api error",
			err:          fmt.Errorf("handler: %w", ErrNotFound),
			expectedCode: http.StatusNotFound,
			expectedType: TypeNotFound,
		},
		{
			name:         "deadline",
			err:          fmt.Errorf("collect quotes: %w", context.DeadlineExceeded),
			expectedCode: http.StatusGatewayTimeout,
			expectedType: TypeTimeout,
		},
		{
			name:         "unknown instrument",
			err:          fmt.Errorf("%w: %q", futures.ErrUnknownInstrument, "KC"),
			expectedCode: http.StatusNotFound,
			expectedType: TypeUnknownInstrument,
		},
		{
			name:         "sensitivity inputs",
			err:          fmt.Errorf("%w: no premium for ZS", services.ErrNoSensitivityInputs),
			expectedCode: http.StatusUnprocessableEntity,
			expectedType: TypeSensitivityInputs,
		},
		{
			name:         "premium source down",
			err:          fmt.Errorf("%w: tab not found", services.ErrPremiumsUnavailable),
			expectedCode: http.StatusBadGateway,
			expectedType: TypePremiumsUnavailable,
		},
		{
			name:         "anything else",
			err:          errors.New("boom"),
			expectedCode: http.StatusInternalServerError,
			expectedType: TypeInternal,
		},
	}

	h := testHandler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/v1/ppe", nil)
			problem := h.ErrorToProblem(tt.err, r)
			assert.Equal(t, tt.expectedCode, problem.Status)
			assert.Equal(t, tt.expectedType, problem.Type)
			assert.Equal(t, "/api/v1/ppe", problem.Instance)
		})
	}
}

func TestHandleErrorWritesProblemJSON(t *testing.T) {
	h := testHandler()
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/v1/ppe/kc", nil)

	h.HandleError(rec, r, fmt.Errorf("%w: %q", futures.ErrUnknownInstrument, "KC"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, TypeUnknownInstrument, body["type"])
	assert.Equal(t, float64(http.StatusNotFound), body["status"])
	assert.Contains(t, body, "trace_id")
	assert.Contains(t, body, "supported")
}

func TestHandleErrorNil(t *testing.T) {
	rec := httptest.NewRecorder()
	testHandler().HandleError(rec, httptest.NewRequest(http.MethodGet, "/", nil), nil)
	assert.Equal(t, 0, rec.Body.Len())
}

func TestProblemDetailsMarshalKeepsStandardFields(t *testing.T) {
	p := NewProblemDetails(http.StatusBadRequest, TypeValidation, "Bad Request", "bad", "/x").
		WithExtension("status", "overridden").
		WithExtension("error_code", "VALIDATION_FAILED")

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, float64(http.StatusBadRequest), body["status"])
	assert.Equal(t, "VALIDATION_FAILED", body["error_code"])
}

func TestMiddlewareRecoversPanics(t *testing.T) {
	h := testHandler()
	mw := NewErrorMiddleware(h, slog.New(slog.NewTextHandler(io.Discard, nil)))

	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("kaboom")
	})

	rec := httptest.NewRecorder()
	mw.Handler(panicking).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), TypeInternal)
}
