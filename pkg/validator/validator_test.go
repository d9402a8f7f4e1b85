package validator

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupForm struct {
	Username string `validate:"required,alphanum,min=3,max=30"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

func TestValidate_Success(t *testing.T) {
	s := signupForm{Username: "alice", Email: "alice@example.com", Password: "password123"}
	err := Validate(s)
	assert.NoError(t, err)
}

func TestValidate_MissingRequired(t *testing.T) {
	s := signupForm{Email: "alice@example.com", Password: "password123"}
	err := Validate(s)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	fields := valErr.Fields()
	assert.Contains(t, fields, "Username")
	assert.Equal(t, "is required", fields["Username"])
}

func TestValidate_InvalidEmail(t *testing.T) {
	s := signupForm{Username: "alice", Email: "not-an-email", Password: "password123"}
	err := Validate(s)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "must be a valid email address", valErr.Fields()["Email"])
}

func TestValidate_Alphanum(t *testing.T) {
	s := signupForm{Username: "not valid!", Email: "alice@example.com", Password: "password123"}
	err := Validate(s)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "must contain only letters and numbers", valErr.Fields()["Username"])
}

func TestValidate_MultipleErrors(t *testing.T) {
	err := Validate(signupForm{})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	fields := valErr.Fields()
	assert.Contains(t, fields, "Username")
	assert.Contains(t, fields, "Email")
	assert.Contains(t, fields, "Password")
}

func TestValidationError_ErrorString(t *testing.T) {
	err := Validate(signupForm{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field 'Username'")
	assert.Contains(t, err.Error(), "is required")
}

type postForm struct {
	Title   string   `validate:"required,min=5,max=255"`
	Content string   `validate:"required,min=20"`
	Tags    []string `validate:"omitempty,dive,alphanum,min=2,max=20"`
}

func TestValidate_MinMax(t *testing.T) {
	s := postForm{Title: "abc", Content: "too short"}
	err := Validate(s)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	fields := valErr.Fields()
	assert.Contains(t, fields["Title"], "at least 5")
	assert.Contains(t, fields["Content"], "at least 20")
}

func TestValidate_DiveIntoTags(t *testing.T) {
	s := postForm{
		Title:   "A valid blog title",
		Content: "Content long enough to pass the minimum check.",
		Tags:    []string{"go", "x"},
	}
	err := Validate(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 2")
}

func TestDecodeAndValidate_Success(t *testing.T) {
	body := `{"Username":"alice","Email":"alice@example.com","Password":"password123"}`
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))

	var s signupForm
	err := DecodeAndValidate(req, &s)

	require.NoError(t, err)
	assert.Equal(t, "alice", s.Username)
}

func TestDecodeAndValidate_InvalidJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{invalid"))

	var s signupForm
	err := DecodeAndValidate(req, &s)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode request body")
}

func TestDecodeAndValidate_ValidationFails(t *testing.T) {
	body := `{"Username":"","Email":"bad","Password":"short"}`
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))

	var s signupForm
	err := DecodeAndValidate(req, &s)

	require.Error(t, err)
	var valErr *ValidationError
	assert.ErrorAs(t, err, &valErr)
}
