package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// maxRequestBytes caps JSON request bodies
const maxRequestBytes = 64 << 10

// decodeJSON reads a capped JSON body into v. An empty body is allowed when
// allowEmpty is set. On failure it writes the error response and returns
// false.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}, allowEmpty bool) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	err := json.NewDecoder(r.Body).Decode(v)

	var tooLarge *http.MaxBytesError
	switch {
	case err == nil:
		return true
	case allowEmpty && errors.Is(err, io.EOF):
		return true
	case errors.As(err, &tooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
	default:
		writeError(w, http.StatusBadRequest, "invalid request body")
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// MethodNotAllowed answers a known path called with the wrong method
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}
