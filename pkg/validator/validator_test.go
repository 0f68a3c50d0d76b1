package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerPayload struct {
	Email    string `validate:"required,email"`
	Phone    string `validate:"required,min=10"`
	Password string `validate:"required,min=8"`
}

func TestValidate_Passes(t *testing.T) {
	err := Validate(registerPayload{Email: "a@x.com", Phone: "1000000001", Password: "Password1"})
	assert.NoError(t, err)
}

func TestValidate_CollectsFieldErrors(t *testing.T) {
	err := Validate(registerPayload{Email: "not-an-email", Phone: "123"})

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))

	fields := valErr.Fields()
	assert.Equal(t, "must be a valid email address", fields["Email"])
	assert.Equal(t, "must be at least 10 characters", fields["Phone"])
	assert.Equal(t, "is required", fields["Password"])
	assert.Contains(t, valErr.Error(), "field 'Email'")
}

func TestValidate_OneOf(t *testing.T) {
	type statusPayload struct {
		Status string `validate:"required,oneof=pending paid shipped"`
	}

	err := Validate(statusPayload{Status: "bogus"})
	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "must be one of: pending paid shipped", valErr.Fields()["Status"])
}
