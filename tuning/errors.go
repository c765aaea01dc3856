package tuning

import "github.com/pkg/errors"

var (
	// ErrDuplicateUser is returned when a registration reuses an existing id.
	ErrDuplicateUser = errors.New("user already registered")
	// ErrUserNotFound is returned when the target profile does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrNoSimilarity is returned when a user has no scored candidates yet.
	ErrNoSimilarity = errors.New("no similarity entry")
)
