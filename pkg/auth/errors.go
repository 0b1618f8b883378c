package auth

import "errors"

// ErrDuplicateUser is returned when registering a username that already exists.
var ErrDuplicateUser = errors.New("user already exists")

// ErrInvalidToken is returned for tokens that fail signature, shape, or
// expiry checks.
var ErrInvalidToken = errors.New("invalid token")
