package storage

import (
	"context"
	"errors"

	"github.com/Varun5711/contactkeeper/internal/models"
	usermodel "github.com/Varun5711/contactkeeper/internal/models/user"
)

// ErrDuplicateEmail is returned by CreateUser when the email is already taken.
var ErrDuplicateEmail = errors.New("email already registered")

// Lookups return (nil, nil) when the record does not exist, including when the
// id is not in a format the backend could have assigned.

type UserStore interface {
	CreateUser(ctx context.Context, req *usermodel.CreateUserRequest, passwordHash string) (*usermodel.User, error)
	GetUserByEmail(ctx context.Context, email string) (*usermodel.User, error)
	GetUserByID(ctx context.Context, userID string) (*usermodel.User, error)
}

type ContactStore interface {
	// ListByUserID returns the user's contacts, newest first.
	ListByUserID(ctx context.Context, userID string) ([]*models.Contact, error)
	CreateContact(ctx context.Context, userID string, fields models.ContactFields) (*models.Contact, error)
	GetContact(ctx context.Context, contactID string) (*models.Contact, error)
	// UpdateContact writes only the non-empty fields and returns the stored result.
	UpdateContact(ctx context.Context, contactID string, fields models.ContactFields) (*models.Contact, error)
	// DeleteContact reports whether a record was removed.
	DeleteContact(ctx context.Context, contactID string) (bool, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}
