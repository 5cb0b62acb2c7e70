package models

import "time"

// TimeWindow is the concrete start/end pair a command operates on.
// Start is strictly before End; all-day windows span midnight to midnight.
type TimeWindow struct {
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	AllDay bool      `json:"allDay"`
}

// CandidateEvent is a read-only snapshot of a calendar entry returned by
// a lookup. Mutations always go back through the gateway by ID.
type CandidateEvent struct {
	ID     string    `json:"id"`
	Title  string    `json:"title"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	AllDay bool      `json:"allDay,omitempty"`
}
