package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	ledgerTTL    = 48 * time.Hour
	ledgerLayout = "2006-01-02"
)

// NotificationLedger keeps the last reminder day per client in Redis so the
// once-per-day policy survives restarts.
// Key format: reminder:last:<client_id>, value: YYYY-MM-DD.
type NotificationLedger struct {
	client *redis.Client
	loc    *time.Location
}

// NewNotificationLedger wraps the given Redis client. Days are interpreted in loc.
func NewNotificationLedger(client *redis.Client, loc *time.Location) *NotificationLedger {
	if loc == nil {
		loc = time.Local
	}
	return &NotificationLedger{client: client, loc: loc}
}

// LastNotified returns the recorded day for clientID, if any.
func (l *NotificationLedger) LastNotified(ctx context.Context, clientID string) (time.Time, bool, error) {
	v, err := l.client.Get(ctx, l.key(clientID)).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("ledger get: %w", err)
	}
	day, err := time.ParseInLocation(ledgerLayout, v, l.loc)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("ledger parse %q: %w", v, err)
	}
	return day, true, nil
}

// Record overwrites the day for clientID. Entries expire after ledgerTTL,
// which is longer than the one-day window the policy compares against.
func (l *NotificationLedger) Record(ctx context.Context, clientID string, day time.Time) error {
	if err := l.client.Set(ctx, l.key(clientID), day.In(l.loc).Format(ledgerLayout), ledgerTTL).Err(); err != nil {
		return fmt.Errorf("ledger set: %w", err)
	}
	return nil
}

func (l *NotificationLedger) key(clientID string) string {
	return "reminder:last:" + clientID
}
