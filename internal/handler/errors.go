package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/pkordes/planner/internal/domain"
)

// Error codes carried in ErrorDetail.Code.
const (
	codeValidation   = "validation_error"
	codeBusinessRule = "business_rule_violation"
	codeNotFound     = "not_found"
	codeTooLarge     = "request_too_large"
	codeInternal     = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes what went wrong. Fields is set for validation errors.
type ErrorDetail struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// FieldError is one failed constraint on one request field.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string, fields []FieldError) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message, Fields: fields}})
}

// writeServiceError maps a service error onto a status code:
// ErrValidation → 400, ErrBusinessRule → 422, ErrNotFound → 404, anything
// else → 500 with the cause logged and hidden from the client.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, codeValidation, unwrapMessage(err, domain.ErrValidation), nil)
	case errors.Is(err, domain.ErrBusinessRule):
		writeError(w, http.StatusUnprocessableEntity, codeBusinessRule, unwrapMessage(err, domain.ErrBusinessRule), nil)
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, notFound, nil)
	default:
		s.logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, codeInternal, "internal server error", nil)
	}
}

// unwrapMessage extracts the human-readable part after a wrapped sentinel.
// e.g. "service.TripService.Create: business rule violation: invalid trip end date"
// → "invalid trip end date"
func unwrapMessage(err, sentinel error) string {
	msg := err.Error()
	marker := sentinel.Error() + ": "
	if i := strings.Index(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return msg
}

// decodeError turns a JSON decoding failure into a response.
func decodeError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, codeTooLarge,
			fmt.Sprintf("request body must not exceed %d bytes", tooLarge.Limit), nil)
		return
	}
	writeError(w, http.StatusBadRequest, codeValidation, "malformed request body: "+err.Error(), nil)
}

// fieldErrors converts validator output into client-facing field errors.
func fieldErrors(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "", Error: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		var msg string
		switch fe.Tag() {
		case "required":
			msg = "is required"
		case "min":
			if fe.Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", fe.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", fe.Param())
			}
		case "email":
			msg = "must be a valid email address"
		default:
			msg = fmt.Sprintf("failed %q validation", fe.Tag())
		}
		out = append(out, FieldError{Field: fe.Field(), Error: msg})
	}
	return out
}
