package utils

import (
	"encoding/json"
	"log"
	"net/http"
)

// Envelope is the uniform wrapper for every API response body, so the
// payload always sits under a named key ("data", "message", ...).
type Envelope map[string]any

// WriteJSON renders an envelope with the given status. A marshal failure
// means a non-serializable value reached a handler; respond with a plain
// 500 rather than a half-written body.
func WriteJSON(w http.ResponseWriter, status int, data Envelope) {
	js, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		log.Printf("error marshaling response: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	js = append(js, '\n')
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if _, err := w.Write(js); err != nil {
		log.Printf("error writing response: %v", err)
	}
}
