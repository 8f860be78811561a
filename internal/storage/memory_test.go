package storage

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Varun5711/contactkeeper/internal/models"
	usermodel "github.com/Varun5711/contactkeeper/internal/models/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ UserStore    = (*MemoryStorage)(nil)
	_ ContactStore = (*MemoryStorage)(nil)
	_ UserStore    = (*UserStorage)(nil)
	_ ContactStore = (*ContactStorage)(nil)
	_ UserStore    = (*MongoStorage)(nil)
	_ ContactStore = (*MongoStorage)(nil)
)

func TestMemoryStorage_CreateUser_DuplicateEmail(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	u, err := s.CreateUser(ctx, &usermodel.CreateUserRequest{Name: "Alice", Email: "a@x.com"}, "hash")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "hash", u.PasswordHash)

	_, err = s.CreateUser(ctx, &usermodel.CreateUserRequest{Name: "Alice 2", Email: "a@x.com"}, "hash2")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestMemoryStorage_GetUser(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	created, err := s.CreateUser(ctx, &usermodel.CreateUserRequest{Name: "Alice", Email: "a@x.com"}, "hash")
	require.NoError(t, err)

	byEmail, err := s.GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, "hash", byEmail.PasswordHash)

	byID, err := s.GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "Alice", byID.Name)
	assert.Empty(t, byID.PasswordHash, "lookup by id must not expose the hash")

	missing, err := s.GetUserByEmail(ctx, "nobody@x.com")
	require.NoError(t, err)
	assert.Nil(t, missing)

	missing, err = s.GetUserByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemoryStorage_ListByUserID_NewestFirstAndScoped(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	for i := 1; i <= 3; i++ {
		_, err := s.CreateContact(ctx, "alice", models.ContactFields{Name: fmt.Sprintf("c%d", i)})
		require.NoError(t, err)
	}
	_, err := s.CreateContact(ctx, "bob", models.ContactFields{Name: "bobs"})
	require.NoError(t, err)

	list, err := s.ListByUserID(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "c3", list[0].Name)
	assert.Equal(t, "c2", list[1].Name)
	assert.Equal(t, "c1", list[2].Name)
	for _, c := range list {
		assert.Equal(t, "alice", c.UserID)
	}

	empty, err := s.ListByUserID(ctx, "carol")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestMemoryStorage_ListByUserID_SameTimestampUsesInsertionOrder(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	_, err := s.CreateContact(ctx, "alice", models.ContactFields{Name: "first"})
	require.NoError(t, err)
	_, err = s.CreateContact(ctx, "alice", models.ContactFields{Name: "second"})
	require.NoError(t, err)

	list, err := s.ListByUserID(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Name)
}

func TestMemoryStorage_UpdateContact_Sparse(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	c, err := s.CreateContact(ctx, "alice", models.ContactFields{Name: "Bob", Email: "b@x.com", Phone: "555", Type: "personal"})
	require.NoError(t, err)

	updated, err := s.UpdateContact(ctx, c.ID, models.ContactFields{Phone: "777"})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, "Bob", updated.Name)
	assert.Equal(t, "b@x.com", updated.Email)
	assert.Equal(t, "777", updated.Phone)
	assert.Equal(t, "personal", updated.Type)
	assert.Equal(t, "alice", updated.UserID)
	assert.Equal(t, c.CreatedAt, updated.CreatedAt)

	missing, err := s.UpdateContact(ctx, "missing", models.ContactFields{Phone: "1"})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemoryStorage_ReturnsCopies(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	c, err := s.CreateContact(ctx, "alice", models.ContactFields{Name: "Bob"})
	require.NoError(t, err)

	c.Name = "mutated"
	c.UserID = "mallory"

	stored, err := s.GetContact(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bob", stored.Name)
	assert.Equal(t, "alice", stored.UserID)
}

func TestMemoryStorage_DeleteContact(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	c, err := s.CreateContact(ctx, "alice", models.ContactFields{Name: "Bob"})
	require.NoError(t, err)

	removed, err := s.DeleteContact(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = s.DeleteContact(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	got, err := s.GetContact(ctx, c.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStorage_ConcurrentRegistrationSingleWinner(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.CreateUser(ctx, &usermodel.CreateUserRequest{Name: "A", Email: "race@x.com"}, "h")
			if err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
}

func TestContactSetDocument_NeverTouchesOwner(t *testing.T) {
	set := contactSetDocument(models.ContactFields{Name: "N", Phone: "1"})

	assert.Len(t, set, 2)
	assert.Equal(t, "N", set["name"])
	assert.Equal(t, "1", set["phone"])
	_, hasUser := set["user"]
	assert.False(t, hasUser)

	assert.Empty(t, contactSetDocument(models.ContactFields{}))
}
