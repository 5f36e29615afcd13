package main

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/psxcreative/engine/internal/order"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string, details any) {
	writeJSON(w, status, errorResponse{Error: msg, Details: details})
}

// writeValidation reports a validation failure. A single problem is surfaced as
// the error message itself.
func writeValidation(w http.ResponseWriter, err error) {
	var ve *order.ValidationError
	if !errors.As(err, &ve) {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	msg := "Invalid request"
	if len(ve.Fields) == 1 {
		for _, m := range ve.Fields {
			msg = m
		}
	}
	writeError(w, http.StatusBadRequest, msg, ve.Fields)
}

// readBody reads a bounded request body.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	return io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
}

// decodeJSON decodes the request body into v, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	body, err := readBody(w, r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Request body too large", nil)
		} else {
			writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		}
		return false
	}
	return unmarshalBody(w, body, v)
}

func unmarshalBody(w http.ResponseWriter, body []byte, v any) bool {
	if err := json.Unmarshal(body, v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return false
	}
	return true
}
