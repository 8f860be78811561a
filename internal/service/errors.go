package service

import "errors"

var (
	// ErrUserExists is returned by Register when the email is already registered.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound means a verified token names a user the store no longer has.
	ErrUserNotFound = errors.New("user not found")

	ErrContactNotFound = errors.New("contact not found")
	ErrNotAuthorized   = errors.New("not authorized")
)
