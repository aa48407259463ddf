package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/education-platform/backend/internal/errs"
	"gorm.io/gorm"
)

// notFound turns gorm.ErrRecordNotFound into a 404 with message and
// passes any other error through.
func notFound(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewNotFoundError(message)
	}
	return err
}

// duplicate turns gorm.ErrDuplicatedKey into a 400 on field.
func duplicate(err error, field, message string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.NewFieldError(field, message)
	}
	return err
}

// OptionalID distinguishes an absent JSON field from an explicit null.
type OptionalID struct {
	Set   bool
	Value *uint
}

func (o *OptionalID) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}

	var id uint
	if err := json.Unmarshal(data, &id); err != nil || id == 0 {
		return errs.NewFieldError("profession", "Incorrect type. Expected pk value.")
	}
	o.Value = &id
	return nil
}

func invalidPK(id uint) string {
	return fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id)
}

const msgBlank = "This field may not be blank."

// notBlank trims s and rejects an empty result as a field error.
func notBlank(field, s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", errs.NewFieldError(field, msgBlank)
	}
	return s, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// optionalText trims s and maps an empty result to nil.
func optionalText(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
