package handler

import (
	accommodationdomain "trip-planner-go/internal/domain/accommodation"
	activitydomain "trip-planner-go/internal/domain/activity"
	attachmentdomain "trip-planner-go/internal/domain/attachment"
	invitedomain "trip-planner-go/internal/domain/invite"
	itinerarydomain "trip-planner-go/internal/domain/itinerary"
	stopdomain "trip-planner-go/internal/domain/stop"
	"trip-planner-go/internal/session"
	"trip-planner-go/pkg/logger"
)

type Handlers struct {
	Itineraries    *itinerarydomain.Service
	Stops          *stopdomain.Service
	Accommodations *accommodationdomain.Service
	Activities     *activitydomain.Service
	Invites        *invitedomain.Service
	Attachments    *attachmentdomain.Service
	Sessions       *session.Manager
	log            logger.Logger
}

func New(
	itineraries *itinerarydomain.Service,
	stops *stopdomain.Service,
	accommodations *accommodationdomain.Service,
	activities *activitydomain.Service,
	invites *invitedomain.Service,
	attachments *attachmentdomain.Service,
	sessions *session.Manager,
	log logger.Logger,
) *Handlers {
	return &Handlers{
		Itineraries:    itineraries,
		Stops:          stops,
		Accommodations: accommodations,
		Activities:     activities,
		Invites:        invites,
		Attachments:    attachments,
		Sessions:       sessions,
		log:            log,
	}
}
