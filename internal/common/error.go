// Package common defines the error taxonomy shared by the credential store,
// the hashing helper and the command-line layer. Callers should use errors.Is
// and errors.As to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyExists is matched by a StorageError caused by a duplicate username.
	ErrAlreadyExists = errors.New("already exists")

	// ErrUnsupportedAlgorithm is the cause of a ConfigurationError for an unknown digest.
	ErrUnsupportedAlgorithm = errors.New("unsupported hash algorithm")
)

// StorageError reports a failure that originated in the connection provider
// or in statement execution. Op names the store operation that failed.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError wraps err; a nil err stays nil.
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

// ConfigurationError means the hashing primitive is missing from the runtime.
// It indicates a broken deployment and must not be retried.
type ConfigurationError struct {
	Algorithm string
	Err       error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: hash algorithm %q: %v", e.Algorithm, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// IsFatal reports whether err is a misconfiguration that no retry can fix.
func IsFatal(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}
