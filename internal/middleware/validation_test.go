package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "ppecli/internal/errors"
)

type sensitivityQuery struct {
	Instrument string   `query:"instrument" validate:"required,instrument"`
	Forward    *float64 `query:"forward" validate:"omitempty,gt=0"`
}

func TestQueryValidatorFloat(t *testing.T) {
	v := NewQueryValidator(discardLogger())

	tests := []struct {
		query    string
		expected *float64
		wantErr  bool
	}{
		{"", nil, false},
		{"premium=85.5", ptr(85.5), false},
		{"premium=-12,25", ptr(-12.25), false},
		{"premium=abc", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/x?"+tt.query, nil)
			got, err := v.Float(r, "premium")
			if tt.wantErr {
				var apiErr *apierrors.APIError
				require.ErrorAs(t, err, &apiErr)
				assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestQueryValidatorValidateStruct(t *testing.T) {
	v := NewQueryValidator(discardLogger())

	assert.NoError(t, v.ValidateStruct(sensitivityQuery{Instrument: "milho", Forward: ptr(5.4)}))

	err := v.ValidateStruct(sensitivityQuery{Instrument: "KC", Forward: ptr(-1)})
	var apiErr *apierrors.APIError
	require.ErrorAs(t, err, &apiErr)
	details, ok := apiErr.Details.(apierrors.ValidationErrors)
	require.True(t, ok)
	require.Len(t, details.Errors, 2)
	assert.Equal(t, "instrument", details.Errors[0].Field)
	assert.Equal(t, "forward", details.Errors[1].Field)
}

func ptr(f float64) *float64 { return &f }
