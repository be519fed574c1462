package invite

import "time"

const (
	RoleViewer = "viewer"
	RoleEditor = "editor"
)

const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusDeclined = "declined"
)

// Invite asks an email address to collaborate on an itinerary. Status
// moves from pending to accepted or declined exactly once; both are
// terminal.
type Invite struct {
	ID          string    `gorm:"type:uuid;primaryKey"`
	ItineraryID string    `gorm:"type:uuid;index;not null"`
	Email       string    `gorm:"not null"`
	Role        string    `gorm:"not null"`
	Status      string    `gorm:"not null;default:pending"`
	InvitedBy   string    `gorm:"type:uuid;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Invite) TableName() string { return "itinerary_invites" }

// Collaborator is the membership row created when an invite is
// accepted.
type Collaborator struct {
	ID          string    `gorm:"type:uuid;primaryKey"`
	ItineraryID string    `gorm:"type:uuid;index;not null"`
	UserID      string    `gorm:"type:uuid;index;not null"`
	Role        string    `gorm:"not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (Collaborator) TableName() string { return "itinerary_collaborators" }

type CreateInput struct {
	ItineraryID string
	Email       string
	Role        string
	InvitedBy   string
}

// AcceptResult reports the outcome of accepting an invite. The
// collaborator insert is best-effort: when it fails the invite stays
// accepted, CollaboratorAdded is false and Warning carries the reason.
type AcceptResult struct {
	Invite            *Invite
	CollaboratorAdded bool
	Warning           string
}
