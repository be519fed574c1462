package stop

import "errors"

var (
	ErrStopNotFound          = errors.New("stop not found")
	ErrParentStopNotFound    = errors.New("parent stop not found")
	ErrNestedChildStop       = errors.New("sub-stops cannot be nested under another sub-stop")
	ErrParentHasChildren     = errors.New("a stop with sub-stops cannot become a sub-stop")
	ErrParentOtherItinerary  = errors.New("parent stop belongs to a different itinerary")
	ErrAccommodationNotFound = errors.New("accommodation not found")
	ErrInvalidInput          = errors.New("invalid stop input")
)
