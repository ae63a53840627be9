package resolver

import (
	"errors"
	"fmt"

	"github.com/Clark-Hu/rtfilms/internal/repository"
)

var (
	// ErrMissingParameter means the request carried no usable title.
	ErrMissingParameter = errors.New("resolver: missing title parameter")
	// ErrNotFound means no film matched the lookup key.
	ErrNotFound = fmt.Errorf("resolver: film not found: %w", repository.ErrNotFound)
	// ErrMalformedLinks is logged when a film's stored links cannot be parsed.
	// It never reaches the caller.
	ErrMalformedLinks = errors.New("resolver: malformed links")
)

// StoreError reports an unexpected failure of one of the two store reads.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("resolver: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
