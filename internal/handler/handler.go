package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"storefront/internal/auth"
	"storefront/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

var validate = validator.New(validator.WithRequiredStructEnabled())

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already sent; nothing useful to report to the client
		return
	}
}

// writeError writes an error response with the given status code, code and message.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Str("code", code).Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message})
}

// statusFor maps an error kind to its HTTP status.
func statusFor(kind model.ErrorKind) int {
	switch kind {
	case model.KindNotFound:
		return http.StatusNotFound
	case model.KindInvalidInput, model.KindInvalidState:
		return http.StatusBadRequest
	case model.KindForbidden:
		return http.StatusForbidden
	case model.KindUnauthorized:
		return http.StatusUnauthorized
	case model.KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError translates a service error into a response. Errors that are
// not domain errors become a generic 500 and their detail is only logged.
func writeServiceError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var de *model.DomainError
	if !errors.As(err, &de) {
		logger.Error().Err(err).Msg("unhandled error")
		writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error", logger)
		return
	}

	if de.Kind == model.KindUnavailable {
		logger.Error().Err(err).Msg("dependency unavailable")
	}
	writeError(w, statusFor(de.Kind), de.Code, de.Message, logger)
}

// decodeJSON reads a JSON body into v and validates its struct tags.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return model.NewDomainError(model.KindInvalidInput, model.ErrCodeInvalidJSON, "invalid request body")
	}
	if err := validate.Struct(v); err != nil {
		return validationError(err)
	}
	return nil
}

// validationError turns validator output into an InvalidInput error naming the
// offending fields.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return model.InvalidInput(err.Error())
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
	}
	return model.InvalidInput("invalid fields: " + strings.Join(fields, ", "))
}

// pathID parses the named path wildcard as a UUID.
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, model.InvalidInput("invalid " + name)
	}
	return id, nil
}

// caller returns the authenticated identity or ErrUnauthorised.
func caller(r *http.Request) (model.Identity, error) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		return model.Identity{}, model.ErrUnauthorised
	}
	return identity, nil
}
