package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"busbook/config"
	"busbook/services/booking"
	"busbook/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeBookingExpire = "booking:expire"

type expirePayload struct {
	BookingID string `json:"booking_id"`
}

// ExpiryClient schedules one-shot booking expiry tasks on the asynq queue.
// It implements booking.ExpiryScheduler.
type ExpiryClient struct {
	client *asynq.Client
}

func queueRedisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NewExpiryClient connects a task client to the queue Redis.
func NewExpiryClient() *ExpiryClient {
	return &ExpiryClient{client: asynq.NewClient(queueRedisOpts())}
}

// ScheduleExpiry enqueues an expiry check to fire when the seat hold lapses.
// The handler re-reads the booking, so a confirmation that lands before the
// task fires makes it a no-op.
func (c *ExpiryClient) ScheduleExpiry(bookingID string, at int64) error {
	payload, err := json.Marshal(expirePayload{BookingID: bookingID})
	if err != nil {
		return fmt.Errorf("failed to marshal expiry payload: %w", err)
	}
	task := asynq.NewTask(TypeBookingExpire, payload)
	_, err = c.client.Enqueue(task, asynq.ProcessAt(time.Unix(at, 0)))
	if err != nil {
		return fmt.Errorf("failed to enqueue expiry task: %w", err)
	}
	return nil
}

// Close releases the underlying queue connection.
func (c *ExpiryClient) Close() error {
	return c.client.Close()
}

// InitExpiryWorker runs the async worker that releases lapsed seat holds.
func InitExpiryWorker(bookingSvc booking.BookingService) {
	srv := asynq.NewServer(
		queueRedisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeBookingExpire, handleExpireTask(bookingSvc))

	go func() {
		logger := utils.GetLogger()
		logger.Info("Starting booking expiry worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Error("Expiry worker failed to start",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Fatal("Expiry worker exhausted retry attempts")
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
}

func handleExpireTask(bookingSvc booking.BookingService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p expirePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			utils.GetLogger().Error("Invalid expiry payload", zap.Error(err))
			return err
		}
		if err := bookingSvc.ExpireBooking(p.BookingID); err != nil {
			utils.GetLogger().Error("Failed to expire booking",
				zap.String("bookingID", p.BookingID), zap.Error(err))
			return err
		}
		return nil
	}
}
