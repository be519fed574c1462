package accommodation

import "time"

// Accommodation is a lodging record owned by an itinerary. StopID is the
// forward half of the bidirectional stop link and may be nil for a
// standalone accommodation.
type Accommodation struct {
	ID           string    `gorm:"type:uuid;primaryKey"`
	StopID       *string   `gorm:"type:uuid;index"`
	ItineraryID  string    `gorm:"type:uuid;index;not null"`
	Name         string    `gorm:"not null"`
	Address      *string
	ExternalLink *string
	Notes        *string
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

type CreateInput struct {
	Name         string
	Address      *string
	ExternalLink *string
	Notes        *string
}

// StandaloneCreateInput additionally carries an optional stop link.
type StandaloneCreateInput struct {
	CreateInput
	StopID *string
}

type OptionalNullableString struct {
	Set   bool
	Value *string
}

// UpdateInput carries partial updates. StopID distinguishes "absent"
// (plain update, no synchronization) from "null" (unlink and sweep)
// from "set" (link).
type UpdateInput struct {
	ID           string
	Name         *string
	Address      OptionalNullableString
	ExternalLink OptionalNullableString
	Notes        OptionalNullableString
	StopID       OptionalNullableString
}
