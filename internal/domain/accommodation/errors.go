package accommodation

import "errors"

var (
	ErrAccommodationNotFound = errors.New("accommodation not found")
	ErrStopNotFound          = errors.New("stop not found")
	ErrInvalidInput          = errors.New("invalid accommodation input")
)
