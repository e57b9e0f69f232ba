package roster

import "errors"

// Sentinel errors returned by the Store. Callers check them with errors.Is.
var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrUserAlreadyJoined = errors.New("user already joined session")
)
