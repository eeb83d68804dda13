package engine

import "errors"

// Engine sentinel errors. Construction errors mean no session was created;
// state-violation errors indicate a caller bug (double submit, early finalize)
// and are never swallowed.
var (
	ErrEmptyPool           = errors.New("question pool is empty")
	ErrInvalidCount        = errors.New("question count must be positive")
	ErrSessionCompleted    = errors.New("session is already completed")
	ErrSessionNotCompleted = errors.New("session is not completed yet")
)
