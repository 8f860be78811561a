package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Varun5711/contactkeeper/internal/auth"
	usermodel "github.com/Varun5711/contactkeeper/internal/models/user"
	"github.com/Varun5711/contactkeeper/internal/storage"
	"github.com/Varun5711/contactkeeper/internal/validation"
)

const (
	msgName          = "Please add name"
	msgEmail         = "Please include a valid email"
	msgPasswordShort = "Please enter a password with 6 or more characters"
	msgPasswordLong  = "Password must be at most 72 bytes"
	msgPasswordReq   = "Password is required"

	minPasswordLength = 6
)

type TokenIssuer interface {
	GenerateToken(userID string) (string, time.Time, error)
}

type UserService struct {
	userStorage storage.UserStore
	tokens      TokenIssuer
	dummyHash   string
}

func NewUserService(userStorage storage.UserStore, tokens TokenIssuer) *UserService {
	// compared against on unknown emails so both login failures cost one bcrypt check
	dummy, err := auth.HashPassword("contactkeeper-timing-equalizer")
	if err != nil {
		panic(fmt.Sprintf("service: failed to hash timing equalizer password: %v", err))
	}

	return &UserService{
		userStorage: userStorage,
		tokens:      tokens,
		dummyHash:   dummy,
	}
}

func (s *UserService) Register(ctx context.Context, req usermodel.RegisterRequest) (*usermodel.AuthResponse, error) {
	err := validation.New().
		Required("name", req.Name, msgName).
		Email("email", req.Email, msgEmail).
		MinLength("password", req.Password, minPasswordLength, msgPasswordShort).
		MaxBytes("password", req.Password, auth.MaxPasswordBytes, msgPasswordLong).
		Err()
	if err != nil {
		return nil, err
	}

	existingUser, err := s.userStorage.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, ErrUserExists
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.userStorage.CreateUser(ctx, &usermodel.CreateUserRequest{
		Name:  req.Name,
		Email: req.Email,
	}, passwordHash)
	if errors.Is(err, storage.ErrDuplicateEmail) {
		return nil, ErrUserExists
	}
	if err != nil {
		return nil, err
	}

	return s.issue(user.ID)
}

func (s *UserService) Login(ctx context.Context, req usermodel.LoginRequest) (*usermodel.AuthResponse, error) {
	err := validation.New().
		Email("email", req.Email, msgEmail).
		Present("password", req.Password, msgPasswordReq).
		Err()
	if err != nil {
		return nil, err
	}

	user, err := s.userStorage.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		_ = auth.CheckPassword(s.dummyHash, req.Password)
		return nil, ErrInvalidCredentials
	}

	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to check password: %w", err)
	}

	return s.issue(user.ID)
}

// WhoAmI returns the profile behind an already verified user id, without the password hash.
func (s *UserService) WhoAmI(ctx context.Context, userID string) (*usermodel.User, error) {
	user, err := s.userStorage.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *UserService) issue(userID string) (*usermodel.AuthResponse, error) {
	token, _, err := s.tokens.GenerateToken(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &usermodel.AuthResponse{Token: token}, nil
}
