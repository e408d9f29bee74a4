package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spendlens/spendlens/internal/model"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
	ErrEmptySlice   = errors.New("slice cannot be empty")
	ErrInvalidID    = errors.New("id must be positive")
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

// validateID ensures a dataset identifier is positive.
func validateID(id int64, paramName string) error {
	if id <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidID, paramName)
	}
	return nil
}

// validateRows validates a slice of rows before persistence.
func validateRows(rows []model.Row) error {
	if rows == nil {
		return fmt.Errorf("%w: rows", ErrNilParameter)
	}
	if len(rows) == 0 {
		return fmt.Errorf("%w: rows", ErrEmptySlice)
	}
	return nil
}
