package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Varun5711/contactkeeper/internal/auth"
	"github.com/Varun5711/contactkeeper/internal/logger"
	"github.com/Varun5711/contactkeeper/internal/middleware"
	"github.com/Varun5711/contactkeeper/internal/models"
	usermodel "github.com/Varun5711/contactkeeper/internal/models/user"
	"github.com/Varun5711/contactkeeper/internal/service"
	"github.com/Varun5711/contactkeeper/internal/storage"
	"github.com/Varun5711/contactkeeper/internal/validation"
)

const tokenHeader = "x-auth-token"

type testAPI struct {
	router *mux.Router
	store  *storage.MemoryStorage
	jwt    *auth.JWTManager
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	store := storage.NewMemoryStorage()
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	log := logger.New("test")
	log.SetOutput(io.Discard)

	router := NewRouter(RouterConfig{
		Users:    service.NewUserService(store, jwtManager),
		Contacts: service.NewContactService(store),
		Auth:     middleware.NewAuthMiddleware(jwtManager, tokenHeader),
		Health:   store,
		Log:      log,
	})

	return &testAPI{router: router, store: store, jwt: jwtManager}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(tokenHeader, token)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) register(t *testing.T, name, email, password string) string {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/users", "", map[string]string{
		"name": name, "email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp usermodel.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func (a *testAPI) createContact(t *testing.T, token string, fields map[string]string) models.Contact {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/contacts", token, fields)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var c models.Contact
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &c))
	return c
}

func (a *testAPI) list(t *testing.T, token string) []models.Contact {
	t.Helper()
	rec := a.do(t, http.MethodGet, "/api/contacts", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var contacts []models.Contact
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &contacts))
	return contacts
}

func msgOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body models.MessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Msg
}

func TestScenario_RegisterWhoAmICreateAndForeignDelete(t *testing.T) {
	api := newTestAPI(t)

	alice := api.register(t, "Alice", "a@x.com", "secret1")

	rec := api.do(t, http.MethodGet, "/api/auth", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var me map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, "Alice", me["name"])
	assert.Equal(t, "a@x.com", me["email"])
	assert.NotEmpty(t, me["id"])
	assert.NotContains(t, me, "password")
	assert.NotContains(t, me, "PasswordHash")
	assert.NotContains(t, rec.Body.String(), "$2a$")

	bob := api.createContact(t, alice, map[string]string{
		"name": "Bob", "email": "b@x.com", "phone": "555", "type": "personal",
	})
	assert.NotEmpty(t, bob.ID)
	assert.Equal(t, "Bob", bob.Name)
	assert.Equal(t, "b@x.com", bob.Email)
	assert.Equal(t, "555", bob.Phone)
	assert.Equal(t, "personal", bob.Type)
	assert.Equal(t, me["id"], bob.UserID)

	mallory := api.register(t, "Mallory", "m@x.com", "secret2")

	rec = api.do(t, http.MethodDelete, "/api/contacts/"+bob.ID, mallory, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Not Authorized", msgOf(t, rec))

	contacts := api.list(t, alice)
	require.Len(t, contacts, 1)
	assert.Equal(t, bob.ID, contacts[0].ID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	api := newTestAPI(t)
	api.register(t, "Alice", "a@x.com", "secret1")

	rec := api.do(t, http.MethodPost, "/api/users", "", map[string]string{
		"name": "Alice Again", "email": "a@x.com", "password": "another1",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "User already exists", msgOf(t, rec))
}

func TestRegister_ValidationShape(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/users", "", map[string]string{
		"email": "nope", "password": "123",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body validation.Errors
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Fields, 3)

	byParam := map[string]validation.FieldError{}
	for _, f := range body.Fields {
		byParam[f.Param] = f
		assert.Equal(t, "body", f.Location)
	}
	assert.Equal(t, "Please add name", byParam["name"].Msg)
	assert.Equal(t, "Please include a valid email", byParam["email"].Msg)
	assert.Equal(t, "nope", byParam["email"].Value)
	assert.Equal(t, "Please enter a password with 6 or more characters", byParam["password"].Msg)
	assert.Empty(t, byParam["password"].Value)
	assert.NotContains(t, rec.Body.String(), `"123"`)
}

func TestRegister_EmptyBodyIsValidationNotParseError(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/users", "", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body validation.Errors
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Fields, 3)
}

func TestRegister_MalformedJSON(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/api/users", "", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request body", msgOf(t, rec))
}

func TestLogin(t *testing.T) {
	api := newTestAPI(t)
	registered := api.register(t, "Alice", "a@x.com", "secret1")
	regClaims, err := api.jwt.ValidateToken(registered)
	require.NoError(t, err)

	rec := api.do(t, http.MethodPost, "/api/auth", "", map[string]string{"email": "a@x.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp usermodel.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	claims, err := api.jwt.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, regClaims.User.ID, claims.User.ID)

	wrong := api.do(t, http.MethodPost, "/api/auth", "", map[string]string{"email": "a@x.com", "password": "wrong-pass"})
	unknown := api.do(t, http.MethodPost, "/api/auth", "", map[string]string{"email": "z@x.com", "password": "secret1"})

	assert.Equal(t, http.StatusBadRequest, wrong.Code)
	assert.Equal(t, http.StatusBadRequest, unknown.Code)
	assert.Equal(t, "Invalid Credentials", msgOf(t, wrong))
	assert.Equal(t, wrong.Body.String(), unknown.Body.String())
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	api := newTestAPI(t)

	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/auth"},
		{http.MethodGet, "/api/contacts"},
		{http.MethodPost, "/api/contacts"},
		{http.MethodPut, "/api/contacts/abc"},
		{http.MethodDelete, "/api/contacts/abc"},
		{http.MethodGet, "/api/contacts/abc/qr"},
	}

	for _, route := range routes {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			rec := api.do(t, route.method, route.path, "", nil)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "No token, authorization denied", msgOf(t, rec))

			rec = api.do(t, route.method, route.path, "not-a-jwt", nil)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "Token is not valid", msgOf(t, rec))
		})
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	api := newTestAPI(t)
	api.register(t, "Alice", "a@x.com", "secret1")

	expired := auth.NewJWTManager("test-secret", -time.Minute)
	user, err := api.store.GetUserByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	token, _, err := expired.GenerateToken(user.ID)
	require.NoError(t, err)

	rec := api.do(t, http.MethodGet, "/api/contacts", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token is not valid", msgOf(t, rec))
}

func TestWhoAmI_UnknownUserIsUnauthorized(t *testing.T) {
	api := newTestAPI(t)

	token, _, err := api.jwt.GenerateToken("ghost")
	require.NoError(t, err)

	rec := api.do(t, http.MethodGet, "/api/auth", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token is not valid", msgOf(t, rec))
}

func TestContacts_ListIsScopedAndNewestFirst(t *testing.T) {
	api := newTestAPI(t)
	alice := api.register(t, "Alice", "a@x.com", "secret1")
	bob := api.register(t, "Bob", "b@x.com", "secret1")

	assert.Equal(t, "[]\n", api.do(t, http.MethodGet, "/api/contacts", alice, nil).Body.String())

	first := api.createContact(t, alice, map[string]string{"name": "First", "email": "f@x.com"})
	second := api.createContact(t, alice, map[string]string{"name": "Second", "email": "s@x.com"})
	api.createContact(t, bob, map[string]string{"name": "Bobs", "email": "o@x.com"})

	contacts := api.list(t, alice)
	require.Len(t, contacts, 2)
	assert.Equal(t, second.ID, contacts[0].ID)
	assert.Equal(t, first.ID, contacts[1].ID)

	for _, c := range api.list(t, bob) {
		assert.NotEqual(t, first.ID, c.ID)
		assert.NotEqual(t, second.ID, c.ID)
	}
}

func TestContacts_CreateValidation(t *testing.T) {
	api := newTestAPI(t)
	alice := api.register(t, "Alice", "a@x.com", "secret1")

	rec := api.do(t, http.MethodPost, "/api/contacts", alice, map[string]string{"email": "bad"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body validation.Errors
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Has("name"))
	assert.True(t, body.Has("email"))
	assert.Empty(t, api.list(t, alice))
}

func TestContacts_PartialUpdate(t *testing.T) {
	api := newTestAPI(t)
	alice := api.register(t, "Alice", "a@x.com", "secret1")
	c := api.createContact(t, alice, map[string]string{
		"name": "Bob", "email": "b@x.com", "phone": "555", "type": "personal",
	})

	rec := api.do(t, http.MethodPut, "/api/contacts/"+c.ID, alice, map[string]string{"phone": "777"})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Contact
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "777", updated.Phone)
	assert.Equal(t, "Bob", updated.Name)
	assert.Equal(t, "b@x.com", updated.Email)
	assert.Equal(t, "personal", updated.Type)
}

func TestContacts_ForeignUpdateLeavesRecordUnchanged(t *testing.T) {
	api := newTestAPI(t)
	alice := api.register(t, "Alice", "a@x.com", "secret1")
	mallory := api.register(t, "Mallory", "m@x.com", "secret1")
	c := api.createContact(t, alice, map[string]string{"name": "Bob", "email": "b@x.com"})

	rec := api.do(t, http.MethodPut, "/api/contacts/"+c.ID, mallory, map[string]string{"name": "Pwned"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Not Authorized", msgOf(t, rec))

	contacts := api.list(t, alice)
	require.Len(t, contacts, 1)
	assert.Equal(t, "Bob", contacts[0].Name)
}

func TestContacts_UpdateMalformedJSON(t *testing.T) {
	api := newTestAPI(t)
	alice := api.register(t, "Alice", "a@x.com", "secret1")
	c := api.createContact(t, alice, map[string]string{"name": "Bob", "email": "b@x.com"})

	rec := api.do(t, http.MethodPut, "/api/contacts/"+c.ID, alice, `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request body", msgOf(t, rec))
}

func TestContacts_UnknownID(t *testing.T) {
	api := newTestAPI(t)
	alice := api.register(t, "Alice", "a@x.com", "secret1")

	for _, method := range []string{http.MethodPut, http.MethodDelete} {
		rec := api.do(t, method, "/api/contacts/does-not-exist", alice, map[string]string{"name": "X"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Contact not Found", msgOf(t, rec))
	}
}

func TestContacts_Delete(t *testing.T) {
	api := newTestAPI(t)
	alice := api.register(t, "Alice", "a@x.com", "secret1")
	c := api.createContact(t, alice, map[string]string{"name": "Bob", "email": "b@x.com"})

	rec := api.do(t, http.MethodDelete, "/api/contacts/"+c.ID, alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Contact Removed", msgOf(t, rec))
	assert.Empty(t, api.list(t, alice))

	rec = api.do(t, http.MethodDelete, "/api/contacts/"+c.ID, alice, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestContacts_QRCode(t *testing.T) {
	api := newTestAPI(t)
	alice := api.register(t, "Alice", "a@x.com", "secret1")
	mallory := api.register(t, "Mallory", "m@x.com", "secret1")
	c := api.createContact(t, alice, map[string]string{"name": "Bob", "email": "b@x.com"})

	rec := api.do(t, http.MethodGet, "/api/contacts/"+c.ID+"/qr?size=128", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))

	rec = api.do(t, http.MethodGet, "/api/contacts/"+c.ID+"/qr", mallory, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

type downStore struct{}

func (downStore) Ping(ctx context.Context) error { return errors.New("connection refused") }

func TestHealth_StoreDown(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHealthHandler(downStore{}).Check(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestWriteError_UnknownErrorIsOpaque(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New("test")
	log.SetOutput(&buf)
	log.SetLevel(logger.DEBUG)

	rec := httptest.NewRecorder()
	writeError(rec, log, errors.New("pq: relation contacts does not exist"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"msg":"Server error"}`, rec.Body.String())
	assert.Contains(t, buf.String(), "relation contacts does not exist")
}

func TestSwaggerRoutes(t *testing.T) {
	specPath := filepath.Join(t.TempDir(), "openapi.yaml")
	require.NoError(t, os.WriteFile(specPath, []byte("openapi: 3.0.3\n"), 0o600))

	log := logger.New("test")
	log.SetOutput(io.Discard)
	store := storage.NewMemoryStorage()
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	router := NewRouter(RouterConfig{
		Users:           service.NewUserService(store, jwtManager),
		Contacts:        service.NewContactService(store),
		Auth:            middleware.NewAuthMiddleware(jwtManager, tokenHeader),
		OpenAPISpecPath: specPath,
		Log:             log,
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "openapi: 3.0.3\n", rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/docs", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "swagger-ui")
}
