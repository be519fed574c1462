package stop

import "time"

// Stop is one leg of an itinerary. ParentStopID forms a two-level tree:
// a stop either has no parent (root) or points at a root stop. Deeper
// nesting is rejected at the service layer.
type Stop struct {
	ID              string     `gorm:"type:uuid;primaryKey"`
	ItineraryID     string     `gorm:"type:uuid;index;not null"`
	ParentStopID    *string    `gorm:"type:uuid;index"`
	Title           string     `gorm:"not null"`
	Description     *string
	LocationName    *string
	StartDate       *time.Time `gorm:"type:date"`
	EndDate         *time.Time `gorm:"type:date"`
	Order           *int       `gorm:"column:order"`
	ImageURL        *string
	AccommodationID *string    `gorm:"type:uuid"`
	CreatedAt       time.Time  `gorm:"autoCreateTime"`
}

type CreateInput struct {
	ItineraryID  string
	ParentStopID *string
	Title        string
	Description  *string
	LocationName *string
	StartDate    *time.Time
	EndDate      *time.Time
	Order        *int
	ImageURL     *string
}

type OptionalNullableString struct {
	Set   bool
	Value *string
}

type OptionalNullableDate struct {
	Set   bool
	Value *time.Time
}

// UpdateInput carries partial updates. AccommodationID distinguishes
// "absent" (no synchronization) from "null" (unlink) from "set" (link),
// the three cases of the bidirectional synchronization rules.
type UpdateInput struct {
	ID              string
	Title           *string
	Description     OptionalNullableString
	LocationName    OptionalNullableString
	StartDate       OptionalNullableDate
	EndDate         OptionalNullableDate
	Order           *int
	ImageURL        OptionalNullableString
	ParentStopID    OptionalNullableString
	AccommodationID OptionalNullableString
}
