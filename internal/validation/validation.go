// Package validation collects per-field violations of a request body so that a
// single response can report every bad field at once.
package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const LocationBody = "body"

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*\.[a-zA-Z]{2,}$`)

// values of these params are never echoed back
var sensitiveParams = map[string]bool{
	"password": true,
}

type FieldError struct {
	Value    string `json:"value"`
	Msg      string `json:"msg"`
	Param    string `json:"param"`
	Location string `json:"location"`
}

type Errors struct {
	Fields []FieldError `json:"errors"`
}

func (e *Errors) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Param + ": " + f.Msg
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Has reports whether param has at least one violation.
func (e *Errors) Has(param string) bool {
	for _, f := range e.Fields {
		if f.Param == param {
			return true
		}
	}
	return false
}

type Validator struct {
	fields []FieldError
}

func New() *Validator {
	return &Validator{}
}

func (v *Validator) add(param, value, msg string) {
	if sensitiveParams[param] {
		value = ""
	}
	v.fields = append(v.fields, FieldError{
		Value:    value,
		Msg:      msg,
		Param:    param,
		Location: LocationBody,
	})
}

func (v *Validator) Required(param, value, msg string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(param, value, msg)
	}
	return v
}

// Present only rejects a missing value. Whitespace counts as content, which
// matters for passwords.
func (v *Validator) Present(param, value, msg string) *Validator {
	if value == "" {
		v.add(param, value, msg)
	}
	return v
}

func (v *Validator) Email(param, value, msg string) *Validator {
	if !IsEmail(value) {
		v.add(param, value, msg)
	}
	return v
}

// MinLength counts characters, not bytes.
func (v *Validator) MinLength(param, value string, min int, msg string) *Validator {
	if utf8.RuneCountInString(value) < min {
		v.add(param, value, msg)
	}
	return v
}

func (v *Validator) MaxBytes(param, value string, max int, msg string) *Validator {
	if len(value) > max {
		v.add(param, value, msg)
	}
	return v
}

// Err returns nil when nothing failed, otherwise an *Errors listing every violation in check order.
func (v *Validator) Err() error {
	if len(v.fields) == 0 {
		return nil
	}
	return &Errors{Fields: v.fields}
}

func IsEmail(s string) bool {
	if len(s) > 254 {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	if at < 1 || at > 64 {
		return false
	}
	return emailRegex.MatchString(s)
}
