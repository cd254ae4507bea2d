package editor

import "errors"

// ErrInvalidDraft is returned when a built-in draft fails validation.
var ErrInvalidDraft = errors.New("invalid draft")
