// Package notifications delivers best-effort advisory notifications as a
// side effect of lifecycle transitions. Dispatch never blocks or fails the
// operation that triggered it; every delivery problem is logged and dropped.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"mealbridge/internal/models"
	"mealbridge/internal/repository"

	"github.com/redis/go-redis/v9"
)

// UserChannel returns the Redis channel carrying a user's notification events.
func UserChannel(userID uint) string {
	return fmt.Sprintf("notifications:user:%d", userID)
}

// Dispatcher appends notification rows and publishes matching events to
// Redis. The Redis client may be nil; persistence alone is then the delivery
// mechanism.
type Dispatcher struct {
	repo   repository.NotificationRepository
	rdb    *redis.Client
	logger *slog.Logger
	wg     sync.WaitGroup
}

// NewDispatcher returns a new Dispatcher.
func NewDispatcher(repo repository.NotificationRepository, rdb *redis.Client, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{repo: repo, rdb: rdb, logger: logger}
}

// Dispatch enqueues a notification for the user. It returns immediately;
// delivery happens on a background goroutine after the caller's transaction
// has committed, and failures are swallowed after logging.
func (d *Dispatcher) Dispatch(userID uint, kind models.NotificationKind, message, link string) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		d.deliver(ctx, userID, kind, message, link)
	}()
}

func (d *Dispatcher) deliver(ctx context.Context, userID uint, kind models.NotificationKind, message, link string) {
	notification := &models.Notification{
		UserID:  userID,
		Kind:    kind,
		Message: message,
		Link:    link,
	}

	if err := d.repo.Create(ctx, notification); err != nil {
		d.logger.Error("failed to persist notification",
			slog.Uint64("user_id", uint64(userID)),
			slog.String("kind", string(kind)),
			slog.String("error", err.Error()),
		)
		return
	}

	if d.rdb == nil {
		return
	}

	payload, err := json.Marshal(notification)
	if err != nil {
		d.logger.Error("failed to encode notification event",
			slog.String("error", err.Error()))
		return
	}
	if err := d.rdb.Publish(ctx, UserChannel(userID), payload).Err(); err != nil {
		d.logger.Warn("failed to publish notification event",
			slog.Uint64("user_id", uint64(userID)),
			slog.String("error", err.Error()),
		)
	}
}

// Flush waits for all in-flight dispatches to settle. Used on shutdown and
// by tests.
func (d *Dispatcher) Flush() {
	d.wg.Wait()
}
