// Package storage provides the document persistence layer.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/harmony/internal/model"
)

// Validation errors.
var (
	ErrNilContext     = errors.New("context cannot be nil")
	ErrEmptyString    = errors.New("string parameter cannot be empty")
	ErrNilParameter   = errors.New("parameter cannot be nil")
	ErrInvalidSegment = errors.New("invalid path segment")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateSegment ensures s can be used as a single file or key component.
func validateSegment(s string, paramName string) error {
	if err := validateString(s, paramName); err != nil {
		return err
	}
	if !model.ValidSubjectID(s) {
		return fmt.Errorf("%w: %s %q", ErrInvalidSegment, paramName, s)
	}
	return nil
}

// validateAddress checks the (subject, namespace, key) triple of a document.
func validateAddress(ctx context.Context, subject, namespace, key string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSegment(subject, "subject"); err != nil {
		return err
	}
	if err := validateSegment(namespace, "namespace"); err != nil {
		return err
	}
	return validateSegment(key, "key")
}
