package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/Varun5711/contactkeeper/internal/logger"
	"github.com/Varun5711/contactkeeper/internal/storage"
)

const healthTimeout = 2 * time.Second

type HealthHandler struct {
	store storage.Pinger
	log   *logger.Logger
}

func NewHealthHandler(store storage.Pinger) *HealthHandler {
	return &HealthHandler{
		store: store,
		log:   logger.New("health"),
	}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.log.Warn("Store ping failed: %v", err)
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
