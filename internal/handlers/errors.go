package handlers

import (
	"errors"
	"net/http"

	"github.com/Varun5711/contactkeeper/internal/logger"
	"github.com/Varun5711/contactkeeper/internal/service"
	"github.com/Varun5711/contactkeeper/internal/validation"
)

const (
	msgInvalidBody        = "Invalid request body"
	msgServerError        = "Server error"
	msgInvalidCredentials = "Invalid Credentials"
	msgUserExists         = "User already exists"
	msgNotAuthorized      = "Not Authorized"
	msgTokenInvalid       = "Token is not valid"
	msgContactNotFound    = "Contact not Found"
	msgContactRemoved     = "Contact Removed"
	msgRouteNotFound      = "Not Found"
	msgMethodNotAllowed   = "Method Not Allowed"
)

// writeError is the single place service errors become HTTP responses.
// Anything unrecognised is logged and reported as a bare 500.
func writeError(w http.ResponseWriter, log *logger.Logger, err error) {
	var verr *validation.Errors
	if errors.As(err, &verr) {
		respondJSON(w, http.StatusBadRequest, verr)
		return
	}

	switch {
	case errors.Is(err, errInvalidBody):
		respondMessage(w, http.StatusBadRequest, msgInvalidBody)
	case errors.Is(err, service.ErrInvalidCredentials):
		respondMessage(w, http.StatusBadRequest, msgInvalidCredentials)
	case errors.Is(err, service.ErrUserExists):
		respondMessage(w, http.StatusBadRequest, msgUserExists)
	case errors.Is(err, service.ErrNotAuthorized):
		respondMessage(w, http.StatusUnauthorized, msgNotAuthorized)
	case errors.Is(err, service.ErrUserNotFound):
		respondMessage(w, http.StatusUnauthorized, msgTokenInvalid)
	case errors.Is(err, service.ErrContactNotFound):
		respondMessage(w, http.StatusNotFound, msgContactNotFound)
	default:
		log.Error("Request failed: %v", err)
		respondMessage(w, http.StatusInternalServerError, msgServerError)
	}
}
