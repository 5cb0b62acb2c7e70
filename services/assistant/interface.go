package assistant

import (
	"context"

	"schedulit/models"
)

// Service is the conversational assistant: one utterance in, one
// conversational result out. Pipeline failures are folded into the result's
// message; a returned error means something genuinely unexpected.
type Service interface {
	HandleMessage(ctx context.Context, userID, message string) (*models.CommandResult, error)
}

// ReminderScheduler queues a notification ahead of an event's start.
// Scheduling is best-effort; a failed enqueue never fails the command.
type ReminderScheduler interface {
	ScheduleEventReminder(ctx context.Context, userID string, ev models.CandidateEvent) error
}
