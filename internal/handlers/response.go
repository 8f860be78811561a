package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/Varun5711/contactkeeper/internal/models"
)

const maxBodyBytes = 1 << 20

var errInvalidBody = errors.New("invalid request body")

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondMessage(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, models.MessageResponse{Msg: msg})
}

// decodeBody reads a JSON object into dst. A missing or blank body leaves dst
// zeroed, as if the client had sent {}.
func decodeBody(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return errInvalidBody
	}
	if len(body) > maxBodyBytes {
		return errInvalidBody
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return errInvalidBody
	}
	return nil
}
