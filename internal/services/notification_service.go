// internal/services/notification_service.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/shoplist-backend/internal/config"
	"github.com/javajoker/shoplist-backend/internal/models"
)

// ListEvent describes a committed change to a shopping list.
type ListEvent struct {
	Type           models.ListEventType `json:"type"`
	ShoppingListID uuid.UUID            `json:"shopping_list_id"`
	ActorID        *uuid.UUID           `json:"actor_id,omitempty"`
	TargetUserID   *uuid.UUID           `json:"target_user_id,omitempty"`
	Recipients     []uuid.UUID          `json:"recipients"`
	OccurredAt     time.Time            `json:"occurred_at"`
}

// Notifier is told about list changes after they are persisted. Delivery is
// best effort; list operations never depend on it.
type Notifier interface {
	Notify(ctx context.Context, event ListEvent) error
}

func NewListEvent(eventType models.ListEventType, list *models.ShoppingList) ListEvent {
	return ListEvent{
		Type:           eventType,
		ShoppingListID: list.ID,
		Recipients:     Recipients(list),
		OccurredAt:     time.Now().UTC(),
	}
}

func (e ListEvent) WithActor(id uuid.UUID) ListEvent {
	e.ActorID = &id
	return e
}

func (e ListEvent) WithTarget(id uuid.UUID) ListEvent {
	e.TargetUserID = &id
	return e
}

// RedisNotifier publishes events as JSON on a pub/sub channel.
type RedisNotifier struct {
	rdb     *redis.Client
	channel string
}

func NewRedisNotifier(rdb *redis.Client, channel string) *RedisNotifier {
	return &RedisNotifier{rdb: rdb, channel: channel}
}

func (n *RedisNotifier) Notify(ctx context.Context, event ListEvent) error {
	raw, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode list event: %w", err)
	}
	return n.rdb.Publish(ctx, n.channel, raw).Err()
}

func (n *RedisNotifier) Close() error {
	return n.rdb.Close()
}

// LogNotifier only records events in the log.
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, event ListEvent) error {
	logrus.WithFields(logrus.Fields{
		"event":            event.Type,
		"shopping_list_id": event.ShoppingListID,
		"recipients":       len(event.Recipients),
	}).Debug("List event")
	return nil
}

// NewNotifier connects to Redis when configured and falls back to a
// LogNotifier when Redis is absent, disabled or unreachable.
func NewNotifier(cfg *config.Config) Notifier {
	addr := cfg.Redis.Addr()
	if !cfg.Notifications.Enabled || addr == "" {
		return LogNotifier{}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    cfg.Redis.Password,
		DB:          cfg.Redis.DB,
		DialTimeout: 2 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		logrus.WithError(err).WithField("addr", addr).Warn("Redis unavailable, list events will only be logged")
		return LogNotifier{}
	}

	logrus.WithField("channel", cfg.Notifications.Channel).Info("Publishing list events to Redis")
	return NewRedisNotifier(rdb, cfg.Notifications.Channel)
}

// notify sends the event and logs instead of failing when delivery breaks.
func notify(ctx context.Context, notifier Notifier, event ListEvent) {
	if notifier == nil {
		return
	}
	if err := notifier.Notify(ctx, event); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"event":            event.Type,
			"shopping_list_id": event.ShoppingListID,
		}).Warn("Failed to publish list event")
	}
}
