package activity

import "errors"

var (
	ErrActivityNotFound   = errors.New("activity not found")
	ErrStopNotFound       = errors.New("stop not found")
	ErrScheduleOutOfRange = errors.New("scheduled time falls outside the stop's date range")
	ErrInvalidInput       = errors.New("invalid activity input")
)
