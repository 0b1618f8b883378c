package llm

import "errors"

// ErrTimeout is returned when the completion call exceeds its deadline.
var ErrTimeout = errors.New("ai service timed out")

// ErrUnavailable is returned when the completion backend cannot be reached.
var ErrUnavailable = errors.New("ai service unreachable")

// ErrUnexpected covers every other completion failure (bad status,
// malformed response).
var ErrUnexpected = errors.New("unexpected ai error")
