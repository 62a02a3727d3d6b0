package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jonathan/resume-optimizer/internal/ingestion"
	"github.com/jonathan/resume-optimizer/internal/logging"
)

// maxBodyBytes bounds JSON request bodies; résumé text can be large.
const maxBodyBytes = ingestion.MaxResumeBytes + 1<<20

var validate = validator.New()

// jsonResponse writes a JSON response
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logging.Logger().Error("failed to encode JSON response", "error", err)
	}
}

// errorResponse writes an error JSON response
func errorResponse(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// errorFrom writes err with the status from HTTPStatus. Server errors are
// logged and their details withheld from the client.
func errorFrom(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError && status != http.StatusGatewayTimeout && status != http.StatusBadGateway {
		logging.Logger().Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		errorResponse(w, status, "Internal server error")
		return
	}
	errorResponse(w, status, UserMessage(err))
}

// decodeJSON decodes the request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return &ErrValidation{Message: fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit)}
		}
		if errors.Is(err, io.EOF) {
			return &ErrValidation{Message: "request body is empty"}
		}
		return &ErrValidation{Message: "invalid request body"}
	}
	return nil
}

// validatable is implemented by request types that validate themselves.
type validatable interface {
	Validate() error
}

// validateRequest runs the validator tags of v.
func validateRequest(v any) error {
	var err error
	if req, ok := v.(validatable); ok {
		err = req.Validate()
	} else {
		err = validate.Struct(v)
	}
	if err != nil {
		return validationError(err)
	}
	return nil
}

// decodeAndValidate decodes and validates the body, writing a 400 response
// and returning false on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v any) bool {
	err := decodeJSON(w, r, v)
	if err == nil {
		err = validateRequest(v)
	}
	if err != nil {
		errorFrom(w, r, err)
		return false
	}
	return true
}

// validationError reports the first failed field of a validator error.
func validationError(err error) *ErrValidation {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		return &ErrValidation{Field: errs[0].Field(), Message: errs[0].Tag()}
	}
	return &ErrValidation{Message: "invalid request"}
}

// pathID parses the {id} path value.
func pathID(r *http.Request, resource string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: "id", Message: "invalid " + resource + " ID"}
	}
	return id, nil
}
