package activity

import "time"

// Activity is a scheduled event under a stop. ScheduledAt is required
// and must fall inside the owning stop's date range when one is set.
type Activity struct {
	ID           string `gorm:"type:uuid;primaryKey"`
	StopID       string `gorm:"type:uuid;index;not null"`
	Title        string `gorm:"not null"`
	Description  *string
	ScheduledAt  time.Time `gorm:"not null"`
	LocationName *string
	ExternalLink *string
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

type CreateInput struct {
	StopID       string
	Title        string
	Description  *string
	ScheduledAt  time.Time
	LocationName *string
	ExternalLink *string
}

type OptionalNullableString struct {
	Set   bool
	Value *string
}

type UpdateInput struct {
	ID           string
	Title        *string
	Description  OptionalNullableString
	ScheduledAt  *time.Time
	LocationName OptionalNullableString
	ExternalLink OptionalNullableString
}
