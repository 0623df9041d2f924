// Package handlers maps HTTP routes onto service calls and writes their results as JSON.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/talkbridge/backend/internal/models"
	"github.com/talkbridge/backend/internal/services"
	"go.uber.org/zap"
)

// Middleware wraps a handler, typically to guard it
type Middleware = func(http.Handler) http.Handler

var errInvalidBody = errors.New("invalid request body")

type BaseHandler struct {
	logger *zap.Logger
}

// respondJSON sends a JSON response
func (h *BaseHandler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// respondError sends an error JSON response
func (h *BaseHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps a service error to a status code; unexpected errors are logged and hidden behind "failed to <action>"
func (h *BaseHandler) respondServiceError(w http.ResponseWriter, r *http.Request, err error, action string) {
	switch {
	case errors.Is(err, services.ErrInvalidID),
		errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrInvalidPrice):
		h.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		h.respondError(w, http.StatusNotFound, "not found")
	default:
		h.logger.Error("failed to "+action,
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		h.respondError(w, http.StatusInternalServerError, "failed to "+action)
	}
}

// decodeJSON reads the request body into v
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errInvalidBody
	}
	return nil
}

// decodeDocument reads a JSON object request body
func decodeDocument(r *http.Request) (models.Document, error) {
	var doc models.Document
	if err := decodeJSON(r, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, errInvalidBody
	}
	return doc, nil
}
