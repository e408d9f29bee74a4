// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Database errors.
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEntry = errors.New("duplicate entry")

	// Dataset errors.
	ErrNoRows         = errors.New("no transaction rows loaded")
	ErrUnknownDataset = errors.New("unknown dataset")

	// Collaborator contract errors.
	ErrInvalidClusters = errors.New("invalid vendor cluster input")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// ClusterError reports a structurally invalid vendor cluster received from
// the upstream deduplication collaborator. This is the one data condition
// that surfaces as an error instead of degrading: it indicates a contract
// violation rather than messy source rows.
type ClusterError struct {
	Err    error
	Master string
	Index  int
}

func (e *ClusterError) Error() string {
	if e.Master != "" {
		return fmt.Sprintf("vendor cluster %q (index %d): %v", e.Master, e.Index, e.Err)
	}
	return fmt.Sprintf("vendor cluster at index %d: %v", e.Index, e.Err)
}

func (e *ClusterError) Unwrap() error {
	return ErrInvalidClusters
}
