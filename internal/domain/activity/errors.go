package activity

import "errors"

// ErrInvalidInput indicates a nil or incomplete activity entry.
var ErrInvalidInput = errors.New("invalid activity entry")
