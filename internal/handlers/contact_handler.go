package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Varun5711/contactkeeper/internal/logger"
	"github.com/Varun5711/contactkeeper/internal/middleware"
	"github.com/Varun5711/contactkeeper/internal/models"
	"github.com/Varun5711/contactkeeper/internal/qrcode"
	"github.com/Varun5711/contactkeeper/internal/service"
)

const maxQRSize = 1024

type ContactHandler struct {
	contacts *service.ContactService
	qr       *qrcode.Renderer
	log      *logger.Logger
}

func NewContactHandler(contacts *service.ContactService, qr *qrcode.Renderer) *ContactHandler {
	return &ContactHandler{
		contacts: contacts,
		qr:       qr,
		log:      logger.New("contact-handler"),
	}
}

func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.contacts.List(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, contacts)
}

func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var fields models.ContactFields
	if err := decodeBody(r, &fields); err != nil {
		writeError(w, h.log, err)
		return
	}

	contact, err := h.contacts.Create(r.Context(), middleware.GetUserID(r.Context()), fields)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, contact)
}

func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	var fields models.ContactFields
	if err := decodeBody(r, &fields); err != nil {
		writeError(w, h.log, err)
		return
	}

	contact, err := h.contacts.Update(r.Context(), middleware.GetUserID(r.Context()), mux.Vars(r)["id"], fields)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, contact)
}

func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.contacts.Delete(r.Context(), middleware.GetUserID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	respondMessage(w, http.StatusOK, msgContactRemoved)
}

// QRCode serves the contact's vCard as a PNG QR code. ?size= sets the edge in pixels.
func (h *ContactHandler) QRCode(w http.ResponseWriter, r *http.Request) {
	contact, err := h.contacts.Get(r.Context(), middleware.GetUserID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	size := qrcode.DefaultSize
	if raw := r.URL.Query().Get("size"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= maxQRSize {
			size = n
		}
	}

	png, err := h.qr.PNG(contact, size)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
