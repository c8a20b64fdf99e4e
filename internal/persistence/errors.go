package persistence

import "errors"

// ErrCorruptRecord is returned when a stored row or record cannot be decoded.
var ErrCorruptRecord = errors.New("persistence: corrupt record")
