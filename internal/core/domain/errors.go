package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrEmailTaken      = errors.New("email already registered")
	ErrUnauthorized    = errors.New("invalid email or password")
	ErrNotFound        = errors.New("not found")
	ErrFileType        = errors.New("unsupported file type")
	ErrFileTooLarge    = errors.New("file too large")
	ErrProcess         = errors.New("extraction process failed")
	ErrParse           = errors.New("extraction output unparsable")
	ErrUpstream        = errors.New("extraction reported failure")
	ErrEmptyExtraction = errors.New("empty extraction")
	ErrTemporary       = errors.New("temporary failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
