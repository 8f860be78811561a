package models

import "time"

// Conventional contact types. Type stays free-form.
const (
	ContactTypePersonal     = "personal"
	ContactTypeProfessional = "professional"
)

type Contact struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"date"`
}

// ContactFields carries a create body or a sparse update; empty strings mean "not supplied".
type ContactFields struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Type  string `json:"type"`
}

// IsEmpty reports whether no field would change on update.
func (f ContactFields) IsEmpty() bool {
	return f.Name == "" && f.Email == "" && f.Phone == "" && f.Type == ""
}

// ApplyTo overwrites the non-empty fields of f onto c.
func (f ContactFields) ApplyTo(c *Contact) {
	if f.Name != "" {
		c.Name = f.Name
	}
	if f.Email != "" {
		c.Email = f.Email
	}
	if f.Phone != "" {
		c.Phone = f.Phone
	}
	if f.Type != "" {
		c.Type = f.Type
	}
}

type MessageResponse struct {
	Msg string `json:"msg"`
}
