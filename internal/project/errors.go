package project

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is matched by errors from mutators addressing an unknown id.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is matched by errors from Add* mutators given an id that
	// already exists.
	ErrDuplicate = errors.New("duplicate id")

	// ErrInvalid is matched by errors from mutators rejecting a record or a
	// setting that fails validation.
	ErrInvalid = errors.New("invalid")
)

// EntityError reports which entity a mutator failed on.
type EntityError struct {
	Kind string // "project", "task" or "milestone"
	ID   string
	Err  error
}

func (e *EntityError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Kind, e.ID, e.Err)
}

func (e *EntityError) Unwrap() error {
	return e.Err
}

func notFound(kind, id string) error {
	return &EntityError{Kind: kind, ID: id, Err: ErrNotFound}
}

func duplicate(kind, id string) error {
	return &EntityError{Kind: kind, ID: id, Err: ErrDuplicate}
}

func invalid(kind, id string, err error) error {
	return &EntityError{Kind: kind, ID: id, Err: fmt.Errorf("%w: %w", ErrInvalid, err)}
}

// IsNotFound reports whether err is a not-found error from this package.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
