package animation

import "errors"

var (
	// ErrUnknownEventType is returned when decoding an event with an unknown type.
	ErrUnknownEventType = errors.New("unknown event type")
	// ErrMissingEventAction is returned when encoding an event without an action.
	ErrMissingEventAction = errors.New("event has no action")
	// ErrInvalidShotTarget is returned for a malformed shot target.
	ErrInvalidShotTarget = errors.New("invalid shot target")
)
