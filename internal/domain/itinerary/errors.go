package itinerary

import "errors"

var (
	ErrItineraryNotFound = errors.New("itinerary not found")
	ErrInvalidInput      = errors.New("invalid itinerary input")
	ErrNotEditor         = errors.New("editor access required")
	ErrNotOwner          = errors.New("only the owner can delete an itinerary")
)
