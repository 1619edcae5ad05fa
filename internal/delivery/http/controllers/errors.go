package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventpass/internal/delivery/http/helpers"
	"eventpass/internal/domain"
)

// writeServiceError maps domain errors to HTTP responses. Anything unrecognized is a 500 and is logged.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrMissingContact):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "El asistente no tiene correo registrado")
	case errors.Is(err, domain.ErrAttendeeNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "Asistente no encontrado")
	case errors.Is(err, domain.ErrUnknownCode):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "Código o Identificación no válida")
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "not found")
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
	}
}

// SentItem is a successful delivery in bulk responses.
type SentItem struct {
	Name       string `json:"nombre"`
	Identifier string `json:"identificacion"`
	Email      string `json:"correo"`
}

// FailureItem is an item whose delivery failed, named by attendee identifier when one was matched.
type FailureItem struct {
	Identifier string `json:"identificacion"`
	Error      string `json:"error"`
}

func sentItems(in []domain.DispatchReceipt) []SentItem {
	out := make([]SentItem, len(in))
	for i, r := range in {
		out[i] = SentItem{Name: r.Name, Identifier: r.Identifier, Email: r.Contact}
	}
	return out
}

// missingIdentifiers flattens unreachable attendees to their identifiers.
func missingIdentifiers(in []domain.MissingContactItem) []string {
	out := make([]string, len(in))
	for i, m := range in {
		out[i] = m.Identifier
	}
	return out
}

func failureItems(in []domain.DispatchFailure) []FailureItem {
	out := make([]FailureItem, len(in))
	for i, f := range in {
		out[i] = FailureItem{Identifier: f.Key, Error: f.Error}
	}
	return out
}
