package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// maxJSONBodySize caps request bodies decoded by [DecodeJSON].
const maxJSONBodySize = 1 << 20

// ErrInvalidJSON is returned by [DecodeJSON] for bodies that are not a
// single well-formed JSON document.
var ErrInvalidJSON = errors.New("invalid JSON")

// WriteJSON serializes the given data to JSON and writes it to the HTTP response.
//
// It sets the "Content-Type" header to "application/json" and writes
// the provided HTTP status code before sending the response body.
//
// If marshaling fails, it responds with 500 Internal Server Error
// and returns a wrapped error.
//
// Example usage:
//
//	WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// DecodeJSON reads a single JSON document from the request body into dst.
// Unknown fields are ignored. Empty, malformed and oversized bodies, as
// well as trailing data after the document, yield [ErrInvalidJSON].
func DecodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxJSONBodySize))
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}

	if decoder.More() {
		return fmt.Errorf("%w: unexpected data after JSON document", ErrInvalidJSON)
	}

	return nil
}
