package domain

import (
	"regexp"
	"strings"
)

const (
	FieldFullName    = "full_name"
	FieldEmail       = "email"
	FieldPhoneNumber = "phone_number"
)

const minPhoneDigits = 10

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9\s\-()]+$`)
)

type ContactInfo struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

// FieldErrors maps a contact field name to its message.
type FieldErrors map[string]string

func (c ContactInfo) Normalize() ContactInfo {
	return ContactInfo{
		FullName:    strings.TrimSpace(c.FullName),
		Email:       strings.TrimSpace(c.Email),
		PhoneNumber: strings.TrimSpace(c.PhoneNumber),
	}
}

// Validate checks every field and returns nil when all of them pass.
func (c ContactInfo) Validate() FieldErrors {
	errs := FieldErrors{}
	for _, field := range []string{FieldFullName, FieldEmail, FieldPhoneNumber} {
		if msg := c.validateField(field); msg != "" {
			errs[field] = msg
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Field returns the value of a named field and whether the name is known.
func (c ContactInfo) Field(field string) (string, bool) {
	switch field {
	case FieldFullName:
		return c.FullName, true
	case FieldEmail:
		return c.Email, true
	case FieldPhoneNumber:
		return c.PhoneNumber, true
	}
	return "", false
}

// WithField returns a copy with one field replaced.
func (c ContactInfo) WithField(field, value string) (ContactInfo, bool) {
	switch field {
	case FieldFullName:
		c.FullName = value
	case FieldEmail:
		c.Email = value
	case FieldPhoneNumber:
		c.PhoneNumber = value
	default:
		return c, false
	}
	return c, true
}

func (c ContactInfo) validateField(field string) string {
	value, _ := c.Field(field)
	value = strings.TrimSpace(value)

	switch field {
	case FieldFullName:
		if value == "" {
			return "Full name is required"
		}
	case FieldEmail:
		if value == "" {
			return "Email is required"
		}
		if !emailPattern.MatchString(value) {
			return "Please enter a valid email address"
		}
	case FieldPhoneNumber:
		if value == "" {
			return "Phone number is required"
		}
		if !phonePattern.MatchString(value) || countDigits(value) < minPhoneDigits {
			return "Please enter a valid phone number"
		}
	}
	return ""
}

// ContactPatch is a submitted contact form. A nil field was absent from the
// request and keeps the stored value; an empty string clears it.
type ContactPatch struct {
	FullName    *string `json:"full_name"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phone_number"`
}

// Merge applies the present fields over base.
func (p ContactPatch) Merge(base ContactInfo) ContactInfo {
	if p.FullName != nil {
		base.FullName = *p.FullName
	}
	if p.Email != nil {
		base.Email = *p.Email
	}
	if p.PhoneNumber != nil {
		base.PhoneNumber = *p.PhoneNumber
	}
	return base
}

// Patch returns a patch that sets every field of c.
func (c ContactInfo) Patch() ContactPatch {
	return ContactPatch{FullName: &c.FullName, Email: &c.Email, PhoneNumber: &c.PhoneNumber}
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
