package domain

import (
	"fmt"
	"unicode/utf8"
)

// DefaultMaxMessageLength is the message cap used by the tribute input form.
const DefaultMaxMessageLength = 150

// ValidationRules captures which tribute fields are mandatory.
// Deployments disagree on this, so it is configuration rather than code.
type ValidationRules struct {
	// RequireRelationship rejects tributes with an empty relationship label.
	RequireRelationship bool

	// MaxMessageLength caps the trimmed message length in characters.
	// Zero disables the cap.
	MaxMessageLength int
}

// DefaultValidationRules returns the rules of the signed-in tribute flow.
func DefaultValidationRules() ValidationRules {
	return ValidationRules{RequireRelationship: true, MaxMessageLength: DefaultMaxMessageLength}
}

// Validate checks an already-trimmed NewTribute against the rules.
// The returned error wraps ErrValidation and carries a user-facing message.
func (r ValidationRules) Validate(n NewTribute) error {
	if n.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if r.RequireRelationship && n.Relationship == "" {
		return fmt.Errorf("%w: relationship is required", ErrValidation)
	}
	if n.AttachmentType != "" || n.AttachmentValue != "" {
		if n.AttachmentType != AttachmentPicture {
			return fmt.Errorf("%w: unsupported attachment type %q", ErrValidation, n.AttachmentType)
		}
		if n.AttachmentValue == "" {
			return fmt.Errorf("%w: attachment value is required", ErrValidation)
		}
	}
	if n.Message == "" && n.AttachmentValue == "" {
		return fmt.Errorf("%w: please write a message or choose a picture", ErrValidation)
	}
	if r.MaxMessageLength > 0 && utf8.RuneCountInString(n.Message) > r.MaxMessageLength {
		return fmt.Errorf("%w: message must be %d characters or fewer", ErrValidation, r.MaxMessageLength)
	}
	return nil
}
