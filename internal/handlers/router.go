package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Varun5711/contactkeeper/internal/logger"
	"github.com/Varun5711/contactkeeper/internal/middleware"
	"github.com/Varun5711/contactkeeper/internal/qrcode"
	"github.com/Varun5711/contactkeeper/internal/service"
	"github.com/Varun5711/contactkeeper/internal/storage"
)

type RouterConfig struct {
	Users           *service.UserService
	Contacts        *service.ContactService
	Auth            *middleware.AuthMiddleware
	Health          storage.Pinger
	QR              *qrcode.Renderer
	OpenAPISpecPath string
	Log             *logger.Logger
}

func NewRouter(cfg RouterConfig) *mux.Router {
	authHandler := NewAuthHandler(cfg.Users)
	qr := cfg.QR
	if qr == nil {
		qr = qrcode.NewRenderer(0)
	}
	contactHandler := NewContactHandler(cfg.Contacts, qr)

	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(cfg.Log))
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		respondMessage(w, http.StatusNotFound, msgRouteNotFound)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		respondMessage(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
	})

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/users", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth", authHandler.Login).Methods(http.MethodPost)
	api.Handle("/auth", cfg.Auth.RequireAuth(http.HandlerFunc(authHandler.Me))).Methods(http.MethodGet)

	contacts := api.PathPrefix("/contacts").Subrouter()
	contacts.Use(cfg.Auth.Middleware())
	contacts.HandleFunc("", contactHandler.List).Methods(http.MethodGet)
	contacts.HandleFunc("", contactHandler.Create).Methods(http.MethodPost)
	contacts.HandleFunc("/{id}", contactHandler.Update).Methods(http.MethodPut)
	contacts.HandleFunc("/{id}", contactHandler.Delete).Methods(http.MethodDelete)
	contacts.HandleFunc("/{id}/qr", contactHandler.QRCode).Methods(http.MethodGet)

	if cfg.Health != nil {
		r.HandleFunc("/health", NewHealthHandler(cfg.Health).Check).Methods(http.MethodGet)
	}
	if cfg.OpenAPISpecPath != "" {
		NewSwaggerHandler(cfg.OpenAPISpecPath).RegisterRoutes(r)
	}

	return r
}
