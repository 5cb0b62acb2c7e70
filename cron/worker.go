package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"schedulit/config"
	"schedulit/models"
	"schedulit/services/tasks"
	"schedulit/utils"

	"github.com/hibiken/asynq"
)

const notifyListPrefix = "notify:"
const notifyTTL = 7 * 24 * time.Hour

// InitReminderWorker runs the async worker in background.
func InitReminderWorker() {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeEventReminder, handleEventReminder)

	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

// handleEventReminder pushes the due reminder onto the user's notification
// list, where the frontend picks it up on its next poll.
func handleEventReminder(ctx context.Context, task *asynq.Task) error {
	var p models.ReminderPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		log.Printf("[ReminderHandler] invalid payload: %v", err)
		return err
	}

	startAt, err := time.Parse(time.RFC3339, p.StartAt)
	if err != nil {
		log.Printf("[ReminderHandler] invalid start time %q: %v", p.StartAt, err)
		return nil
	}

	note := map[string]string{
		"eventId": p.EventID,
		"title":   p.Title,
		"startAt": p.StartAt,
		"message": fmt.Sprintf("Reminder: '%s' starts at %d:%02d", p.Title, startAt.Hour(), startAt.Minute()),
	}
	b, err := json.Marshal(note)
	if err != nil {
		return err
	}

	cache := utils.GetCacheClient()
	key := notifyListPrefix + p.UserID
	if err := cache.LPush(ctx, key, b).Err(); err != nil {
		log.Printf("[ReminderHandler] failed to queue notification: %v", err)
		return err
	}
	return cache.Expire(ctx, key, notifyTTL).Err()
}
