package validation

import (
	"errors"
	"testing"
)

func TestIsEmail_Valid(t *testing.T) {
	valid := []string{
		"a@x.com",
		"alice.smith@example.co.uk",
		"bob+contacts@mail-server.io",
		"UPPER@EXAMPLE.ORG",
	}

	for _, email := range valid {
		if !IsEmail(email) {
			t.Errorf("expected '%s' to be a valid email", email)
		}
	}
}

func TestIsEmail_Invalid(t *testing.T) {
	invalid := []string{
		"",
		"plainaddress",
		"@x.com",
		"a@",
		"a@x",
		"a@@x.com",
		"a b@x.com",
		"a@-x.com",
		"a@x..com",
	}

	for _, email := range invalid {
		if IsEmail(email) {
			t.Errorf("expected '%s' to be an invalid email", email)
		}
	}
}

func TestValidator_NoErrors(t *testing.T) {
	err := New().
		Required("name", "Alice", "Please add name").
		Email("email", "a@x.com", "Please include a valid email").
		MinLength("password", "secret1", 6, "too short").
		Err()

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestValidator_AggregatesEveryField(t *testing.T) {
	err := New().
		Required("name", "", "Please add name").
		Email("email", "nope", "Please include a valid email").
		MinLength("password", "abc", 6, "Please enter a password with 6 or more characters").
		Err()

	var verr *Errors
	if !errors.As(err, &verr) {
		t.Fatalf("expected *Errors, got %T", err)
	}

	if len(verr.Fields) != 3 {
		t.Fatalf("expected 3 field errors, got %d: %+v", len(verr.Fields), verr.Fields)
	}

	wantParams := []string{"name", "email", "password"}
	for i, p := range wantParams {
		if verr.Fields[i].Param != p {
			t.Errorf("field %d: expected param '%s', got '%s'", i, p, verr.Fields[i].Param)
		}
		if verr.Fields[i].Location != LocationBody {
			t.Errorf("field %d: expected location 'body', got '%s'", i, verr.Fields[i].Location)
		}
	}

	if verr.Fields[1].Value != "nope" {
		t.Errorf("expected email value to be echoed, got '%s'", verr.Fields[1].Value)
	}
	if verr.Fields[2].Value != "" {
		t.Errorf("expected password value to be redacted, got '%s'", verr.Fields[2].Value)
	}
}

func TestValidator_RequiredRejectsWhitespace(t *testing.T) {
	err := New().Required("name", "   ", "Name is required").Err()
	if err == nil {
		t.Fatal("expected whitespace-only name to be rejected")
	}
}

func TestValidator_PresentAcceptsWhitespace(t *testing.T) {
	if err := New().Present("password", "      ", "Password is required").Err(); err != nil {
		t.Errorf("expected whitespace password to count as present, got %v", err)
	}

	err := New().Present("password", "", "Password is required").Err()
	var verr *Errors
	if !errors.As(err, &verr) || !verr.Has("password") {
		t.Fatalf("expected missing password to be rejected, got %v", err)
	}
}

func TestValidator_MinLengthCountsRunes(t *testing.T) {
	if err := New().MinLength("password", "пароль", 6, "short").Err(); err != nil {
		t.Errorf("expected six Cyrillic letters to satisfy min length 6, got %v", err)
	}
}

func TestValidator_MaxBytes(t *testing.T) {
	err := New().MaxBytes("password", "123456789", 8, "too long").Err()

	var verr *Errors
	if !errors.As(err, &verr) || !verr.Has("password") {
		t.Fatalf("expected password violation, got %v", err)
	}
}
