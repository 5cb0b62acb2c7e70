package models

// CommandRequest is the payload coming from the frontend into /api/message.
type CommandRequest struct {
	Message string `json:"message" binding:"required"`
}

// CommandResult is what the assistant returns for one command.
type CommandResult struct {
	// Message is the conversational reply shown to the user.
	Message string `json:"message"`
	// NeedsChoice is set when the reply is a numbered disambiguation list.
	NeedsChoice bool `json:"needsChoice,omitempty"`
	// Matches carries the candidates behind a numbered list, in list order.
	Matches []CandidateEvent `json:"matches,omitempty"`
	// Events carries the events of a list command.
	Events []CandidateEvent `json:"events,omitempty"`
}

// ReminderPayload is the asynq task body for an event reminder.
type ReminderPayload struct {
	UserID  string `json:"userId"`
	EventID string `json:"eventId"`
	Title   string `json:"title"`
	StartAt string `json:"startAt"` // RFC3339
}
