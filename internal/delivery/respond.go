package delivery

import (
	"encoding/json"
	"errors"
	"net/http"

	"mediavault/internal/ports"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// writeError maps the error taxonomy onto HTTP statuses. Store internals are
// never echoed back.
func writeError(w http.ResponseWriter, err error) {
	var ve *ports.ValidationError
	if errors.As(err, &ve) {
		writeMessage(w, http.StatusBadRequest, ve.Reason)
		return
	}
	if errors.Is(err, ports.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "media record not found")
		return
	}
	writeMessage(w, http.StatusInternalServerError, "internal server error")
}

// decodeJSON reads a request body into dst. An oversize body is reported as
// 413, anything else undecodable as 400.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeMessage(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeMessage(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return false
	}
	return true
}
