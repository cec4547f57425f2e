package validator

import (
	"errors"
	"testing"

	gvalidator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	type claim struct {
		UniquePubkey string `validate:"required,len=8,hexadecimal"`
		Value        uint64 `validate:"required"`
	}

	t.Run("passes for a struct meeting every tag", func(t *testing.T) {
		err := Validate(claim{UniquePubkey: "abcd1234", Value: 5})
		assert.NoError(t, err)
	})

	t.Run("missing required field fails", func(t *testing.T) {
		err := Validate(claim{UniquePubkey: "abcd1234"})

		assert.ErrorIs(t, err, ErrValidationFailed)
		assert.Contains(t, err.Error(), "'Value'")
	})

	t.Run("every failed field is reported", func(t *testing.T) {
		err := Validate(claim{UniquePubkey: "zz"})

		assert.ErrorIs(t, err, ErrValidationFailed)
		assert.Contains(t, err.Error(), "'UniquePubkey'")
		assert.Contains(t, err.Error(), "'Value'")
	})
}

func TestFormatError(t *testing.T) {
	t.Run("wraps validation errors under the sentinel", func(t *testing.T) {
		type target struct {
			Name string `validate:"required"`
		}

		err := gvalidator.New().Struct(target{})
		require.Error(t, err)

		formatted := formatError(err)
		assert.ErrorIs(t, formatted, ErrValidationFailed)
		assert.Contains(t, formatted.Error(), "'Name': value '' does not meet the requirements for the 'required' validation")
	})

	t.Run("passes non-validation errors through unchanged", func(t *testing.T) {
		original := errors.New("connection refused")
		assert.Equal(t, original, formatError(original))
	})
}
