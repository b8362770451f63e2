package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"janjitemu/config"
	"janjitemu/models"
	"janjitemu/services/schedule"
	"janjitemu/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// Reminders go out half an hour before the appointment, mirroring the popup
// set on the officer's calendar event.
const reminderLead = 30 * time.Minute

// TextSender delivers the reminder text to a chat.
type TextSender interface {
	SendText(chatID string, text string) error
}

func reminderRedisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}
}

// ReminderScheduler enqueues reminder tasks for confirmed bookings.
type ReminderScheduler struct {
	client *asynq.Client
}

func NewReminderScheduler() *ReminderScheduler {
	return &ReminderScheduler{client: asynq.NewClient(reminderRedisOpts())}
}

// Schedule queues one reminder for the booking. Bookings made inside the
// lead window get no reminder; the citizen just confirmed and knows.
func (s *ReminderScheduler) Schedule(ctx context.Context, booking models.Booking) error {
	start, err := schedule.SlotStart(booking.Date, booking.Time)
	if err != nil {
		return fmt.Errorf("cannot schedule reminder: %w", err)
	}
	fireAt := start.Add(-reminderLead)
	if !fireAt.After(time.Now()) {
		return nil
	}

	task, opts, err := tasks.NewReminderTask(models.ReminderPayload{
		ChatID:  booking.UserID,
		Name:    booking.Name,
		Date:    booking.Date,
		Time:    booking.Time,
		Officer: booking.Officer,
	}, fireAt)
	if err != nil {
		return fmt.Errorf("failed to build reminder task: %w", err)
	}
	if _, err := s.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	return nil
}

// InitReminderWorker runs the async worker in background.
func InitReminderWorker(sender TextSender) {
	srv := asynq.NewServer(
		reminderRedisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(sender))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[ReminderWorker] 🚀 Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] ❌ Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] ❗ Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(sender TextSender) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] 🔴 Invalid payload: %v", err)
			return err
		}

		log.Printf("[ReminderHandler] ⏰ Triggering reminder for chat %s → %s %s", p.ChatID, p.Date, p.Time)

		text := fmt.Sprintf(
			"🔔 Peringatan: anda mempunyai temu janji dengan %s pada %s jam %s.\nSila hadir 10 minit lebih awal.",
			p.Officer, p.Date, p.Time,
		)
		if err := sender.SendText(p.ChatID, text); err != nil {
			log.Printf("[ReminderHandler] ❌ Failed to send reminder: %v", err)
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[ReminderWorker] ⚠️ Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
