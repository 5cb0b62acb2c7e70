package tasks

import (
	"context"
	"encoding/json"
	"time"

	"schedulit/config"
	"schedulit/models"

	"github.com/hibiken/asynq"
)

const TypeEventReminder = "reminder:event"

// AsynqReminderScheduler queues event reminders through asynq.
type AsynqReminderScheduler struct {
	client *asynq.Client
	lead   time.Duration
}

func NewAsynqReminderScheduler(lead time.Duration) *AsynqReminderScheduler {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskDB,
	})
	return &AsynqReminderScheduler{client: client, lead: lead}
}

// ScheduleEventReminder enqueues a reminder that fires ahead of the event's
// start. Events already closer than the lead time get no reminder.
func (s *AsynqReminderScheduler) ScheduleEventReminder(ctx context.Context, userID string, ev models.CandidateEvent) error {
	fireAt := ev.Start.Add(-s.lead)
	if !fireAt.After(time.Now()) {
		return nil
	}

	payload := models.ReminderPayload{
		UserID:  userID,
		EventID: ev.ID,
		Title:   ev.Title,
		StartAt: ev.Start.Format(time.RFC3339),
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	task := asynq.NewTask(TypeEventReminder, b)
	_, err = s.client.EnqueueContext(ctx, task, asynq.ProcessAt(fireAt))
	return err
}
