package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Title    string  `json:"title" validate:"required"`
	Latitude float64 `json:"latitude" validate:"latitude"`
	Limit    int     `json:"limit" validate:"gte=0"`
	Password string  `json:"password" validate:"omitempty,password"`
}

func TestValidateStruct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, ValidateStruct(sample{Title: "x", Latitude: 55.6, Password: "Secret123"}))
	})

	t.Run("uses json names", func(t *testing.T) {
		err := ValidateStruct(sample{Latitude: 120, Limit: -1})
		var verr *RequestValidationError
		require.True(t, errors.As(err, &verr))
		require.Len(t, verr.Fields, 3)
		assert.Equal(t, "title", verr.Fields[0].Field)
		assert.Equal(t, "required", verr.Fields[0].Tag)
		assert.Equal(t, "latitude", verr.Fields[1].Field)
		assert.Equal(t, "limit", verr.Fields[2].Field)
		assert.Equal(t, "limit must be greater than or equal to 0", verr.Fields[2].Message)
		assert.Contains(t, err.Error(), "title is required")
	})

	t.Run("password tag", func(t *testing.T) {
		err := ValidateStruct(sample{Title: "x", Password: "weak"})
		var verr *RequestValidationError
		require.True(t, errors.As(err, &verr))
		require.Len(t, verr.Fields, 1)
		assert.Equal(t, "password", verr.Fields[0].Tag)
	})
}

func TestCheckPassword(t *testing.T) {
	tests := []struct {
		password string
		want     []error
	}{
		{"TestPassword123", nil},
		{"Ab1", []error{ErrPasswordTooShort}},
		{"abcdefgh1", []error{ErrPasswordNoUpper}},
		{"ABCDEFGH1", []error{ErrPasswordNoLower}},
		{"Abcdefghi", []error{ErrPasswordNoDigit}},
		{"", []error{ErrPasswordTooShort, ErrPasswordNoDigit, ErrPasswordNoLower, ErrPasswordNoUpper}},
	}

	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			err := CheckPassword(tt.password)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			for _, want := range tt.want {
				assert.ErrorIs(t, err, want)
			}
		})
	}
}
