package domain

import "errors"

// ErrPOINotFound is returned when a requested catalog id does not exist.
var ErrPOINotFound = errors.New("poi not found")
