package itinerary

import "time"

// Access roles. Owner is implicit from the itinerary row; viewer and
// editor come from accepted invites and live in itinerary_collaborators.
const (
	RoleOwner  = "owner"
	RoleEditor = "editor"
	RoleViewer = "viewer"
)

type Itinerary struct {
	ID          string `gorm:"type:uuid;primaryKey"`
	UserID      string `gorm:"type:uuid;index;not null"`
	Title       string `gorm:"not null"`
	Description *string
	StartDate   *time.Time `gorm:"type:date"`
	EndDate     *time.Time `gorm:"type:date"`
	IsPublic    bool       `gorm:"not null;default:false"`
	CreatedAt   time.Time  `gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime"`
}

type CreateInput struct {
	UserID      string
	Title       string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
	IsPublic    bool
}

type OptionalNullableString struct {
	Set   bool
	Value *string
}

type OptionalNullableDate struct {
	Set   bool
	Value *time.Time
}

type UpdateInput struct {
	ID          string
	UserID      string
	Title       *string
	Description OptionalNullableString
	StartDate   OptionalNullableDate
	EndDate     OptionalNullableDate
	IsPublic    *bool
}
