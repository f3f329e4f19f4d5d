package types

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrNotFound is returned when a requested record does not exist
	ErrNotFound = goerr.New("record not found")
	// ErrAlreadyCompleted is returned when a status write targets a
	// meeting that already reached its terminal status
	ErrAlreadyCompleted = goerr.New("meeting is already completed")
	// ErrValidation marks caller-supplied input that fails validation
	ErrValidation = goerr.New("validation failed")
)
