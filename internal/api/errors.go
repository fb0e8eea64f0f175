package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"microblog/internal/domain"
)

// errorResponse is the JSON envelope for all error responses.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// writeError maps a domain error to its HTTP status and writes the JSON
// envelope. Unrecognized errors become 500 with a generic message; the real
// error goes to the log, never to the client.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var (
		notFound   *domain.NotFoundError
		denied     *domain.AccessDeniedError
		unauth     *domain.UnauthenticatedError
		badCreds   *domain.InvalidCredentialsError
		validation *domain.ValidationError
		conflict   *domain.ConflictError
	)

	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.As(err, &unauth):
		status, message = http.StatusUnauthorized, unauth.Error()
	case errors.As(err, &badCreds):
		status, message = http.StatusUnauthorized, badCreds.Error()
	case errors.As(err, &denied):
		status, message = http.StatusForbidden, denied.Error()
	case errors.As(err, &notFound):
		status, message = http.StatusNotFound, notFound.Error()
	case errors.As(err, &validation):
		status, message = http.StatusBadRequest, validation.Error()
	case errors.As(err, &conflict):
		status, message = http.StatusConflict, conflict.Error()
	default:
		logger.Error("internal error", "error", err)
	}

	writeJSON(w, status, errorResponse{Code: status, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON decodes the request body into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return domain.ErrValidation("invalid request body: %v", err)
	}
	return nil
}
