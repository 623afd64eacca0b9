package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestEnumerateRequest_Validate(t *testing.T) {
	tests := []struct {
		name        string
		request     EnumerateRequest
		expectedErr error
		field       string
	}{
		{
			name:    "valid request",
			request: EnumerateRequest{Denominations: []int{1, 2}, Target: intPtr(3)},
		},
		{
			name:    "zero target is valid",
			request: EnumerateRequest{Denominations: []int{2}, Target: intPtr(0)},
		},
		{
			name:    "denominations may be omitted",
			request: EnumerateRequest{Target: intPtr(10), Limit: 5},
		},
		{
			name:        "missing target",
			request:     EnumerateRequest{Denominations: []int{1}},
			expectedErr: ErrTargetRequired,
		},
		{
			name:        "negative target",
			request:     EnumerateRequest{Target: intPtr(-1)},
			expectedErr: ErrNegativeTarget,
		},
		{
			name:        "negative limit",
			request:     EnumerateRequest{Target: intPtr(1), Limit: -1},
			expectedErr: ErrNegativeLimit,
		},
		{
			name:    "zero denomination",
			request: EnumerateRequest{Denominations: []int{1, 0}, Target: intPtr(3)},
			field:   "denominations[1]",
		},
		{
			name:    "negative denomination",
			request: EnumerateRequest{Denominations: []int{-5}, Target: intPtr(3)},
			field:   "denominations[0]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			switch {
			case tt.expectedErr != nil:
				assert.Equal(t, tt.expectedErr, err)
			case tt.field != "":
				var vErr *ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.Equal(t, tt.field, vErr.Field)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestEnumerateRequest_TargetValue(t *testing.T) {
	assert.Equal(t, 0, (&EnumerateRequest{}).TargetValue())
	assert.Equal(t, 7, (&EnumerateRequest{Target: intPtr(7)}).TargetValue())
}

func TestUpdateDenominationsRequest_Validate(t *testing.T) {
	assert.NoError(t, (&UpdateDenominationsRequest{Denominations: []int{1, 2, 5}}).Validate())
	assert.Equal(t, ErrDenominationsRequired, (&UpdateDenominationsRequest{}).Validate())

	err := (&UpdateDenominationsRequest{Denominations: []int{3, -3}}).Validate()
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "denominations[1]", vErr.Field)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Field: "target", Message: "is required"}
	assert.Equal(t, "target: is required", err.Error())
}
