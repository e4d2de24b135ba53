package domain

import "errors"

// ErrInvalidAttribute is returned when a raw value fails validation: a bad
// name or email on the way in, or a persisted status string that no longer
// parses on the way out of storage.
var ErrInvalidAttribute = errors.New("invalid attribute")
