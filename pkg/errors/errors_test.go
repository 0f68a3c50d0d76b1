package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_ErrorAndUnwrap(t *testing.T) {
	cause := errors.New("row missing")
	e := &AppError{Code: "NOT_FOUND", Message: "user with id u1 not found", Status: http.StatusNotFound, Err: cause}

	assert.Contains(t, e.Error(), "NOT_FOUND")
	assert.Contains(t, e.Error(), "row missing")
	assert.Equal(t, cause, errors.Unwrap(e))
}

func TestHTTPStatus_AppError(t *testing.T) {
	assert.Equal(t, http.StatusConflict, HTTPStatus(AlreadyExists("user", "email", "a@x.com")))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(Unauthorized("invalid credentials")))
	assert.Equal(t, http.StatusForbidden, HTTPStatus(Forbidden("storeowner access required")))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(InvalidInput("email is required")))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFound("order", "o1")))
	assert.Equal(t, http.StatusUnprocessableEntity, HTTPStatus(PaymentFailed("card declined")))
}

func TestHTTPStatus_WrappedSentinels(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(fmt.Errorf("get store: %w", ErrNotFound)))
	assert.Equal(t, http.StatusConflict, HTTPStatus(fmt.Errorf("insert: %w", ErrAlreadyExists)))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(fmt.Errorf("verify: %w", ErrUnauthorized)))
}

func TestHTTPStatus_UnknownErrorIsInternal(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}

func TestInternal_NeverExposesCause(t *testing.T) {
	e := Internal(errors.New("pq: connection refused"))
	assert.Equal(t, "an internal error occurred", e.Message)
	assert.True(t, errors.Is(e, e.Err))
}
