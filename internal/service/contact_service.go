package service

import (
	"context"
	"fmt"

	"github.com/Varun5711/contactkeeper/internal/models"
	"github.com/Varun5711/contactkeeper/internal/storage"
	"github.com/Varun5711/contactkeeper/internal/validation"
)

const msgContactName = "Name is required"

// ContactService scopes every operation to the calling user. Callers pass the
// user id the auth middleware put on the request context.
type ContactService struct {
	contacts storage.ContactStore
}

func NewContactService(contacts storage.ContactStore) *ContactService {
	return &ContactService{contacts: contacts}
}

func (s *ContactService) List(ctx context.Context, userID string) ([]*models.Contact, error) {
	contacts, err := s.contacts.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if contacts == nil {
		contacts = []*models.Contact{}
	}
	return contacts, nil
}

func (s *ContactService) Create(ctx context.Context, userID string, fields models.ContactFields) (*models.Contact, error) {
	err := validation.New().
		Required("name", fields.Name, msgContactName).
		Email("email", fields.Email, msgEmail).
		Err()
	if err != nil {
		return nil, err
	}

	return s.contacts.CreateContact(ctx, userID, fields)
}

func (s *ContactService) Get(ctx context.Context, userID, contactID string) (*models.Contact, error) {
	return s.owned(ctx, userID, contactID)
}

// Update applies a sparse update. Ownership is settled before anything is written.
func (s *ContactService) Update(ctx context.Context, userID, contactID string, fields models.ContactFields) (*models.Contact, error) {
	if _, err := s.owned(ctx, userID, contactID); err != nil {
		return nil, err
	}

	updated, err := s.contacts.UpdateContact(ctx, contactID, fields)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrContactNotFound
	}

	return updated, nil
}

func (s *ContactService) Delete(ctx context.Context, userID, contactID string) error {
	if _, err := s.owned(ctx, userID, contactID); err != nil {
		return err
	}

	removed, err := s.contacts.DeleteContact(ctx, contactID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrContactNotFound
	}

	return nil
}

func (s *ContactService) owned(ctx context.Context, userID, contactID string) (*models.Contact, error) {
	contact, err := s.contacts.GetContact(ctx, contactID)
	if err != nil {
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}
	if contact == nil {
		return nil, ErrContactNotFound
	}
	if contact.UserID != userID {
		return nil, ErrNotAuthorized
	}
	return contact, nil
}
