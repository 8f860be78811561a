// Package client talks to the contacts HTTP API on behalf of the terminal UI.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Varun5711/contactkeeper/internal/models"
	usermodel "github.com/Varun5711/contactkeeper/internal/models/user"
	"github.com/Varun5711/contactkeeper/internal/validation"
)

// APIError is a non-2xx response decoded from either error body shape.
type APIError struct {
	Status int
	Msg    string
	Fields []validation.FieldError
}

func (e *APIError) Error() string {
	if len(e.Fields) > 0 {
		msgs := make([]string, len(e.Fields))
		for i, f := range e.Fields {
			msgs[i] = f.Msg
		}
		return strings.Join(msgs, "; ")
	}
	if e.Msg != "" {
		return e.Msg
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

type Client struct {
	baseURL    string
	authHeader string
	http       *http.Client
	timeout    time.Duration

	mu    sync.RWMutex
	token string
}

func New(baseURL, authHeader string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		authHeader: authHeader,
		http:       &http.Client{Timeout: timeout},
		timeout:    timeout,
	}
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Register creates an account and keeps the returned token for later calls.
func (c *Client) Register(name, email, password string) (string, error) {
	var resp usermodel.AuthResponse
	err := c.do(http.MethodPost, "/api/users", usermodel.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return "", err
	}

	c.SetToken(resp.Token)
	return resp.Token, nil
}

func (c *Client) Login(email, password string) (string, error) {
	var resp usermodel.AuthResponse
	err := c.do(http.MethodPost, "/api/auth", usermodel.LoginRequest{
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return "", err
	}

	c.SetToken(resp.Token)
	return resp.Token, nil
}

func (c *Client) Me() (*usermodel.User, error) {
	var user usermodel.User
	if err := c.do(http.MethodGet, "/api/auth", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) ListContacts() ([]models.Contact, error) {
	var contacts []models.Contact
	if err := c.do(http.MethodGet, "/api/contacts", nil, &contacts); err != nil {
		return nil, err
	}
	return contacts, nil
}

func (c *Client) CreateContact(fields models.ContactFields) (*models.Contact, error) {
	var contact models.Contact
	if err := c.do(http.MethodPost, "/api/contacts", fields, &contact); err != nil {
		return nil, err
	}
	return &contact, nil
}

func (c *Client) UpdateContact(id string, fields models.ContactFields) (*models.Contact, error) {
	var contact models.Contact
	if err := c.do(http.MethodPut, "/api/contacts/"+id, fields, &contact); err != nil {
		return nil, err
	}
	return &contact, nil
}

func (c *Client) DeleteContact(id string) error {
	var resp models.MessageResponse
	return c.do(http.MethodDelete, "/api/contacts/"+id, nil, &resp)
}

func (c *Client) do(method, path string, body, out interface{}) error {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set(c.authHeader, token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("contacts API unreachable: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, raw)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("unexpected response from contacts API: %w", err)
	}
	return nil
}

func decodeError(status int, raw []byte) error {
	apiErr := &APIError{Status: status}

	var body struct {
		Msg    string                  `json:"msg"`
		Errors []validation.FieldError `json:"errors"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		apiErr.Msg = body.Msg
		apiErr.Fields = body.Errors
	}

	return apiErr
}
