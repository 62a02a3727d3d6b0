// Package server provides the HTTP REST API for the resume optimizer.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/resume-optimizer/internal/fetch"
	"github.com/jonathan/resume-optimizer/internal/ingestion"
	"github.com/jonathan/resume-optimizer/internal/pipeline"
)

// Messages shown to users when a job link cannot be used.
const (
	MsgInsufficientContent = "Conteúdo insuficiente para extração."
	MsgFetchTimeout        = "Timeout ao acessar a URL. Tente novamente ou cole o texto da vaga."
	MsgFetchFailed         = "Não foi possível acessar a URL. Verifique o link ou cole o texto da vaga."
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrUserNotFound indicates user was not found
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrPasswordMismatch indicates current password is incorrect
type ErrPasswordMismatch struct{}

func (e *ErrPasswordMismatch) Error() string {
	return "current password is incorrect"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return "validation error: " + e.Message
	}
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrNotFound indicates a stored entity does not exist for the caller
type ErrNotFound struct {
	Resource string
	ID       uuid.UUID
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrEmailAlreadyExists:
		return http.StatusConflict
	case *ErrInvalidCredentials, *ErrPasswordMismatch:
		return http.StatusUnauthorized
	case *ErrUserNotFound, *ErrNotFound:
		return http.StatusNotFound
	case *ErrValidation:
		return http.StatusBadRequest
	}

	switch {
	case errors.Is(err, fetch.ErrInsufficientContent):
		return http.StatusUnprocessableEntity
	case fetch.IsTimeout(err):
		return http.StatusGatewayTimeout
	case errors.Is(err, ingestion.ErrUnsupportedFile):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, pipeline.ErrMissingJob), errors.Is(err, pipeline.ErrMissingResume):
		return http.StatusBadRequest
	}

	var fetchErr *fetch.Error
	if errors.As(err, &fetchErr) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// UserMessage returns the message sent to clients for err. Job link failures
// get fixed, user-facing messages; other errors use their own text.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, fetch.ErrInsufficientContent):
		return MsgInsufficientContent
	case fetch.IsTimeout(err):
		return MsgFetchTimeout
	}
	var fetchErr *fetch.Error
	if errors.As(err, &fetchErr) {
		return MsgFetchFailed
	}
	return err.Error()
}
