package attachment

import "time"

// EntityType names the owner an attachment hangs off. Exactly one of
// the foreign keys on Attachment is set, matching this type.
type EntityType string

const (
	EntityItinerary     EntityType = "itinerary"
	EntityStop          EntityType = "stop"
	EntityActivity      EntityType = "activity"
	EntityAccommodation EntityType = "accommodation"
	EntityNote          EntityType = "note"
)

func (e EntityType) Valid() bool {
	switch e {
	case EntityItinerary, EntityStop, EntityActivity, EntityAccommodation, EntityNote:
		return true
	}
	return false
}

const (
	FileTypeImage = "image"
	FileTypePDF   = "pdf"
	FileTypeFile  = "file"
)

type Attachment struct {
	ID       string `gorm:"type:uuid;primaryKey"`
	UserID   string `gorm:"type:uuid;index;not null"`
	URL      string `gorm:"not null"`
	Type     string `gorm:"not null"`
	Filename string `gorm:"not null"`

	ItineraryID     *string `gorm:"type:uuid;index"`
	StopID          *string `gorm:"type:uuid;index"`
	ActivityID      *string `gorm:"type:uuid;index"`
	AccommodationID *string `gorm:"type:uuid;index"`
	NoteID          *string `gorm:"type:uuid;index"`

	UploadedAt time.Time `gorm:"autoCreateTime"`
}

// SetOwner points the attachment at its single owning entity.
func (a *Attachment) SetOwner(entityType EntityType, entityID string) {
	switch entityType {
	case EntityItinerary:
		a.ItineraryID = &entityID
	case EntityStop:
		a.StopID = &entityID
	case EntityActivity:
		a.ActivityID = &entityID
	case EntityAccommodation:
		a.AccommodationID = &entityID
	case EntityNote:
		a.NoteID = &entityID
	}
}

type UploadInput struct {
	UserID      string
	EntityType  EntityType
	EntityID    string
	Filename    string
	ContentType string
	Size        int64
}
