package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/pwakit/internal/common"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeMessage reports a completed admin action.
func writeMessage(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, map[string]any{"S_ERROR": false, "MESSAGE": msg})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"S_ERROR": true, "ERROR_MSG": msg})
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrEmptyPath),
		errors.Is(err, common.ErrInvalidName),
		errors.Is(err, common.ErrFormInvalid),
		errors.Is(err, common.ErrInvalidColor),
		errors.Is(err, common.ErrUploadEmpty),
		errors.Is(err, common.ErrUploadExtension),
		errors.Is(err, common.ErrUploadContent),
		errors.Is(err, common.ErrUploadMissing),
		errors.Is(err, common.ErrUploadExists):
		return http.StatusBadRequest
	}
	var se *common.StorageError
	if errors.As(err, &se) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
