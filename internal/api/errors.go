package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/internal/shop"
	"github.com/goliatone/go-formbuilder/internal/store"
	"github.com/goliatone/go-formbuilder/pkg/fields"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

// Error is a client-facing failure with its HTTP status.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func badRequest(message string, err error) error {
	return &Error{Status: http.StatusBadRequest, Message: message, Err: err}
}

type errorBody struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
	Form    []string            `json:"formErrors,omitempty"`
	Error   string              `json:"error,omitempty"`
}

// errorResponse maps err onto the closed set of API failures. Anything not
// recognised is a 500 whose cause is logged and only echoed when raw error
// exposure is enabled.
func (s *Server) errorResponse(r *http.Request, err error) (int, errorBody) {
	var (
		apiErr   *Error
		valErr   *validation.Error
		maxBytes *http.MaxBytesError
	)
	switch {
	case errors.As(err, &valErr):
		return http.StatusUnprocessableEntity, errorBody{
			Message: "Submission failed validation",
			Errors:  valErr.Fields,
			Form:    valErr.Form,
		}
	case errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge, errorBody{Message: "Request body too large"}
	case errors.As(err, &apiErr):
		return apiErr.Status, errorBody{Message: apiErr.Message}
	case errors.Is(err, fields.ErrUnknownType):
		return http.StatusBadRequest, errorBody{Message: err.Error()}
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, errorBody{Message: "Form not found"}
	case errors.Is(err, store.ErrConflict):
		return http.StatusConflict, errorBody{Message: "Form already exists"}
	case errors.Is(err, shop.ErrUnresolved):
		s.logger.Warn("store lookup failed", zap.String("path", r.URL.Path), zap.Error(err))
		return http.StatusBadGateway, errorBody{Message: "Store information unavailable"}
	}

	s.logger.Error("request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	body := errorBody{Message: "Server error"}
	if s.exposeErrors {
		body.Error = err.Error()
	}
	return http.StatusInternalServerError, body
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, body := s.errorResponse(r, err)
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return badRequest("Request body is required", nil)
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			return err
		}
		return badRequest("Invalid JSON body", err)
	}
	return nil
}
