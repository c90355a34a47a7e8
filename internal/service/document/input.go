package document

import (
	"strings"

	"github.com/google/uuid"

	"github.com/docuchain/docuchain-backend/internal/domain"
)

// UploadInput holds the parameters for uploading a document.
type UploadInput struct {
	Title       string
	Description string
	IsPublic    bool
	FileType    string
	Content     []byte
}

// Validate checks all fields and collects all errors.
func (i UploadInput) Validate() error {
	var errs []domain.FieldError

	title := strings.TrimSpace(i.Title)
	if title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if len(title) > 255 {
		errs = append(errs, domain.FieldError{Field: "title", Message: "max 255 characters"})
	}
	if len(strings.TrimSpace(i.Description)) > 2000 {
		errs = append(errs, domain.FieldError{Field: "description", Message: "max 2000 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ShareInput holds the parameters for sharing a document. A nil Days means
// the default sharing window; an explicit value, zero included, is validated
// against the allowed range.
type ShareInput struct {
	DocumentID   uuid.UUID
	TargetUserID uuid.UUID
	Days         *int
}

// Validate checks identifiers; the duration range is checked separately so
// it maps to ErrInvalidDuration rather than a generic validation error.
func (i ShareInput) Validate() error {
	var errs []domain.FieldError
	if i.DocumentID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "document_id", Message: "required"})
	}
	if i.TargetUserID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "target_user_id", Message: "required"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// RevokeInput holds the parameters for revoking a grant.
type RevokeInput struct {
	DocumentID   uuid.UUID
	TargetUserID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i RevokeInput) Validate() error {
	var errs []domain.FieldError
	if i.DocumentID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "document_id", Message: "required"})
	}
	if i.TargetUserID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "target_user_id", Message: "required"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// LogsInput holds the parameters for listing a document's activity log.
type LogsInput struct {
	DocumentID uuid.UUID
	Limit      int
}

// Validate checks all fields and collects all errors. Oversized limits are
// not an error; they are clamped to the configured page maximum.
func (i LogsInput) Validate() error {
	var errs []domain.FieldError
	if i.DocumentID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "document_id", Message: "required"})
	}
	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be non-negative"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ActivityInput holds pagination for a user's own activity listing.
type ActivityInput struct {
	Limit  int
	Offset int
}

// Validate checks all fields and collects all errors.
func (i ActivityInput) Validate() error {
	var errs []domain.FieldError
	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be non-negative"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be non-negative"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
