package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Varun5711/contactkeeper/internal/auth"
	"github.com/Varun5711/contactkeeper/internal/logger"
)

type contextKey string

const UserIDKey contextKey = "user_id"

const (
	msgNoToken      = "No token, authorization denied"
	msgInvalidToken = "Token is not valid"
)

type TokenVerifier interface {
	ValidateToken(token string) (*auth.Claims, error)
}

// AuthMiddleware gates protected routes on the token carried in a single
// request header. The header value is the raw token with no scheme prefix.
type AuthMiddleware struct {
	verifier TokenVerifier
	header   string
	log      *logger.Logger
}

func NewAuthMiddleware(verifier TokenVerifier, header string) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		header:   header,
		log:      logger.New("auth-middleware"),
	}
}

func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(m.header)
		if token == "" {
			deny(w, msgNoToken)
			return
		}

		claims, err := m.verifier.ValidateToken(token)
		if err != nil {
			m.log.Debug("Rejected token: %v", err)
			deny(w, msgInvalidToken)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, claims.User.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Middleware adapts RequireAuth for Router.Use.
func (m *AuthMiddleware) Middleware() mux.MiddlewareFunc {
	return m.RequireAuth
}

func GetUserID(ctx context.Context) string {
	if userID, ok := ctx.Value(UserIDKey).(string); ok {
		return userID
	}
	return ""
}

func deny(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"msg": msg})
}
