package handlers

import (
	"net/http"

	"github.com/Varun5711/contactkeeper/internal/logger"
	"github.com/Varun5711/contactkeeper/internal/middleware"
	usermodel "github.com/Varun5711/contactkeeper/internal/models/user"
	"github.com/Varun5711/contactkeeper/internal/service"
)

type AuthHandler struct {
	users *service.UserService
	log   *logger.Logger
}

func NewAuthHandler(users *service.UserService) *AuthHandler {
	return &AuthHandler{
		users: users,
		log:   logger.New("auth-handler"),
	}
}

// Register handles POST /api/users.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req usermodel.RegisterRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	resp, err := h.users.Register(r.Context(), req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	h.log.Info("User registered: %s", req.Email)
	respondJSON(w, http.StatusOK, resp)
}

// Login handles POST /api/auth.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req usermodel.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	resp, err := h.users.Login(r.Context(), req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// Me handles GET /api/auth behind the auth gate.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.WhoAmI(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}
