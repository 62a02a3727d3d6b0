package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/resume-optimizer/internal/fetch"
	"github.com/jonathan/resume-optimizer/internal/ingestion"
	"github.com/jonathan/resume-optimizer/internal/pipeline"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"email exists", &ErrEmailAlreadyExists{Email: "a@b.co"}, http.StatusConflict},
		{"invalid credentials", &ErrInvalidCredentials{}, http.StatusUnauthorized},
		{"password mismatch", &ErrPasswordMismatch{}, http.StatusUnauthorized},
		{"user not found", &ErrUserNotFound{UserID: uuid.New()}, http.StatusNotFound},
		{"entity not found", &ErrNotFound{Resource: "resume", ID: uuid.New()}, http.StatusNotFound},
		{"validation", &ErrValidation{Field: "email", Message: "required"}, http.StatusBadRequest},
		{"insufficient content", fmt.Errorf("ingest job: %w", fetch.ErrInsufficientContent), http.StatusUnprocessableEntity},
		{"fetch timeout", &fetch.Error{URL: "https://x", Message: "HTTP request failed", Timeout: true}, http.StatusGatewayTimeout},
		{"deadline", fmt.Errorf("parse job: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{"fetch failure", fmt.Errorf("ingest job: %w", &fetch.Error{URL: "https://x", Message: "HTTP status 404"}), http.StatusBadGateway},
		{"unsupported file", fmt.Errorf("cv.odt: %w", ingestion.ErrUnsupportedFile), http.StatusUnsupportedMediaType},
		{"missing job", pipeline.ErrMissingJob, http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, MsgInsufficientContent, UserMessage(fmt.Errorf("x: %w", fetch.ErrInsufficientContent)))
	assert.Equal(t, MsgFetchTimeout, UserMessage(&fetch.Error{URL: "https://x", Timeout: true}))
	assert.Equal(t, MsgFetchFailed, UserMessage(&fetch.Error{URL: "https://x", Message: "HTTP status 500"}))
	assert.Equal(t, "current password is incorrect", UserMessage(&ErrPasswordMismatch{}))
}

func TestErrValidation_Error(t *testing.T) {
	assert.Equal(t, "validation error: email - required", (&ErrValidation{Field: "email", Message: "required"}).Error())
	assert.Equal(t, "validation error: invalid request body", (&ErrValidation{Message: "invalid request body"}).Error())
}
