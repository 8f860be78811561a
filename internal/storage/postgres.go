package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Varun5711/contactkeeper/internal/database"
	"github.com/Varun5711/contactkeeper/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const contactColumns = `id::text, user_id::text, name, email, phone, type, created_at`

type ContactStorage struct {
	db *database.DBManager
}

func NewContactStorage(db *database.DBManager) *ContactStorage {
	return &ContactStorage{
		db: db,
	}
}

func (s *ContactStorage) Ping(ctx context.Context) error {
	return s.db.Write().Ping(ctx)
}

func (s *ContactStorage) ListByUserID(ctx context.Context, userID string) ([]*models.Contact, error) {
	contacts := make([]*models.Contact, 0)
	if _, err := uuid.Parse(userID); err != nil {
		return contacts, nil
	}

	query := `
		SELECT ` + contactColumns + `
		FROM contacts
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := s.db.Read().Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		contacts = append(contacts, contact)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return contacts, nil
}

func (s *ContactStorage) CreateContact(ctx context.Context, userID string, fields models.ContactFields) (*models.Contact, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, fmt.Errorf("failed to create contact: invalid owner id %q", userID)
	}

	query := `
		INSERT INTO contacts (id, user_id, name, email, phone, type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + contactColumns

	row := s.db.Write().QueryRow(ctx, query,
		uuid.New().String(),
		userID,
		fields.Name,
		fields.Email,
		fields.Phone,
		fields.Type,
		time.Now().UTC(),
	)

	contact, err := scanContact(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	return contact, nil
}

// GetContact reads from the primary: it gates updates and deletes.
func (s *ContactStorage) GetContact(ctx context.Context, contactID string) (*models.Contact, error) {
	if _, err := uuid.Parse(contactID); err != nil {
		return nil, nil
	}

	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id = $1`

	contact, err := scanContact(s.db.Write().QueryRow(ctx, query, contactID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}

	return contact, nil
}

func (s *ContactStorage) UpdateContact(ctx context.Context, contactID string, fields models.ContactFields) (*models.Contact, error) {
	if _, err := uuid.Parse(contactID); err != nil {
		return nil, nil
	}

	query := `
		UPDATE contacts
		SET name = COALESCE(NULLIF($2, ''), name),
			email = COALESCE(NULLIF($3, ''), email),
			phone = COALESCE(NULLIF($4, ''), phone),
			type = COALESCE(NULLIF($5, ''), type)
		WHERE id = $1
		RETURNING ` + contactColumns

	row := s.db.Write().QueryRow(ctx, query,
		contactID,
		fields.Name,
		fields.Email,
		fields.Phone,
		fields.Type,
	)

	contact, err := scanContact(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}

	return contact, nil
}

func (s *ContactStorage) DeleteContact(ctx context.Context, contactID string) (bool, error) {
	if _, err := uuid.Parse(contactID); err != nil {
		return false, nil
	}

	cmdTag, err := s.db.Write().Exec(ctx, `DELETE FROM contacts WHERE id = $1`, contactID)
	if err != nil {
		return false, fmt.Errorf("failed to delete contact: %w", err)
	}

	return cmdTag.RowsAffected() > 0, nil
}

func scanContact(row pgx.Row) (*models.Contact, error) {
	var c models.Contact
	err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.Type,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
