package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"photo-decor/internal/decor"
)

func readJSON(body io.Reader, dest any) error {
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
	})
}

// writeEngineError maps the engine's error taxonomy onto HTTP statuses. All
// four outcomes are recoverable; the caller adjusts the request and retries.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, decor.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, decor.ErrQuotaExceeded):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, decor.ErrInvalidReference):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, decor.ErrDenied):
		writeError(w, http.StatusForbidden, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func pathID(r *http.Request, name string) (uint, bool) {
	value, err := strconv.ParseUint(r.PathValue(name), 10, 64)
	if err != nil || value == 0 {
		return 0, false
	}
	return uint(value), true
}

// queryUserID reads the requesting user's id from currentUserId. Identity is
// resolved upstream; the engine trusts the id as given.
func queryUserID(r *http.Request) (uint, bool) {
	value, err := strconv.ParseUint(r.URL.Query().Get("currentUserId"), 10, 64)
	if err != nil || value == 0 {
		return 0, false
	}
	return uint(value), true
}
