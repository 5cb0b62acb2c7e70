package calendar

import (
	"context"

	"schedulit/models"
)

// Gateway is the read/write surface of one user's calendar. Events come
// back with timezone-aware instants; mutations are addressed by event ID.
type Gateway interface {
	ListEvents(ctx context.Context, window models.TimeWindow) ([]models.CandidateEvent, error)
	CreateEvent(ctx context.Context, title string, window models.TimeWindow) (string, error)
	DeleteEvent(ctx context.Context, eventID string) error
	PatchEvent(ctx context.Context, eventID string, window models.TimeWindow) error
	// Timezone returns the calendar's IANA timezone name, e.g. "America/Los_Angeles".
	Timezone(ctx context.Context) (string, error)
}

// Provider builds a Gateway bound to one user's stored credentials.
type Provider interface {
	ForUser(ctx context.Context, userID string) (Gateway, error)
}
