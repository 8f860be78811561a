package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Varun5711/contactkeeper/internal/models"
	usermodel "github.com/Varun5711/contactkeeper/internal/models/user"
	"github.com/google/uuid"
)

type memoryContact struct {
	contact models.Contact
	seq     uint64
}

// MemoryStorage keeps users and contacts in process memory. It backs the
// "memory" STORAGE_BACKEND and the service and handler tests.
type MemoryStorage struct {
	mu       sync.RWMutex
	users    map[string]*usermodel.User
	byEmail  map[string]string
	contacts map[string]*memoryContact
	seq      uint64
	now      func() time.Time
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		users:    make(map[string]*usermodel.User),
		byEmail:  make(map[string]string),
		contacts: make(map[string]*memoryContact),
		now:      time.Now,
	}
}

func (s *MemoryStorage) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *MemoryStorage) CreateUser(ctx context.Context, req *usermodel.CreateUserRequest, passwordHash string) (*usermodel.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[req.Email]; exists {
		return nil, ErrDuplicateEmail
	}

	user := &usermodel.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
		CreatedAt:    s.now().UTC(),
	}

	s.users[user.ID] = user
	s.byEmail[user.Email] = user.ID

	out := *user
	return &out, nil
}

func (s *MemoryStorage) GetUserByEmail(ctx context.Context, email string) (*usermodel.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, exists := s.byEmail[email]
	if !exists {
		return nil, nil
	}

	out := *s.users[id]
	return &out, nil
}

func (s *MemoryStorage) GetUserByID(ctx context.Context, userID string) (*usermodel.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.users[userID]
	if !exists {
		return nil, nil
	}

	out := *user
	out.PasswordHash = ""
	return &out, nil
}

func (s *MemoryStorage) ListByUserID(ctx context.Context, userID string) ([]*models.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*memoryContact, 0)
	for _, mc := range s.contacts {
		if mc.contact.UserID == userID {
			matched = append(matched, mc)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		ci, cj := matched[i].contact.CreatedAt, matched[j].contact.CreatedAt
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return matched[i].seq > matched[j].seq
	})

	contacts := make([]*models.Contact, len(matched))
	for i, mc := range matched {
		c := mc.contact
		contacts[i] = &c
	}

	return contacts, nil
}

func (s *MemoryStorage) CreateContact(ctx context.Context, userID string, fields models.ContactFields) (*models.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	mc := &memoryContact{
		contact: models.Contact{
			ID:        uuid.New().String(),
			UserID:    userID,
			Name:      fields.Name,
			Email:     fields.Email,
			Phone:     fields.Phone,
			Type:      fields.Type,
			CreatedAt: s.now().UTC(),
		},
		seq: s.seq,
	}
	s.contacts[mc.contact.ID] = mc

	out := mc.contact
	return &out, nil
}

func (s *MemoryStorage) GetContact(ctx context.Context, contactID string) (*models.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	mc, exists := s.contacts[contactID]
	if !exists {
		return nil, nil
	}

	out := mc.contact
	return &out, nil
}

func (s *MemoryStorage) UpdateContact(ctx context.Context, contactID string, fields models.ContactFields) (*models.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mc, exists := s.contacts[contactID]
	if !exists {
		return nil, nil
	}

	fields.ApplyTo(&mc.contact)

	out := mc.contact
	return &out, nil
}

func (s *MemoryStorage) DeleteContact(ctx context.Context, contactID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.contacts[contactID]; !exists {
		return false, nil
	}

	delete(s.contacts, contactID)
	return true, nil
}
