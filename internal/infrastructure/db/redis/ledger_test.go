package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestLedger(t *testing.T) (*NotificationLedger, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewNotificationLedger(client, time.UTC), mr
}

func TestNotificationLedger_MissingKey(t *testing.T) {
	ledger, _ := newTestLedger(t)

	_, ok, err := ledger.LastNotified(context.Background(), "c1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected no record for unknown client")
	}
}

func TestNotificationLedger_RecordAndRead(t *testing.T) {
	ledger, mr := newTestLedger(t)
	day := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	if err := ledger.Record(context.Background(), "c1", day); err != nil {
		t.Fatalf("record: %v", err)
	}

	got, ok, err := ledger.LastNotified(context.Background(), "c1")
	if err != nil || !ok {
		t.Fatalf("expected record, got ok=%v err=%v", ok, err)
	}
	if !got.Equal(day) {
		t.Errorf("expected %v, got %v", day, got)
	}

	if v, _ := mr.Get("reminder:last:c1"); v != "2024-01-05" {
		t.Errorf("unexpected stored value %q", v)
	}
	if ttl := mr.TTL("reminder:last:c1"); ttl != ledgerTTL {
		t.Errorf("expected ttl %s, got %s", ledgerTTL, ttl)
	}
}

func TestNotificationLedger_Overwrite(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	_ = ledger.Record(ctx, "c1", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC))
	_ = ledger.Record(ctx, "c1", time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC))

	got, _, _ := ledger.LastNotified(ctx, "c1")
	if got.Day() != 6 {
		t.Errorf("expected the later day to win, got %v", got)
	}
}

func TestNotificationLedger_Expiry(t *testing.T) {
	ledger, mr := newTestLedger(t)
	ctx := context.Background()

	_ = ledger.Record(ctx, "c1", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC))
	mr.FastForward(ledgerTTL + time.Second)

	if _, ok, _ := ledger.LastNotified(ctx, "c1"); ok {
		t.Error("expected record to expire")
	}
}

func TestNotificationLedger_CorruptValue(t *testing.T) {
	ledger, mr := newTestLedger(t)
	_ = mr.Set("reminder:last:c1", "garbage")

	if _, _, err := ledger.LastNotified(context.Background(), "c1"); err == nil {
		t.Error("expected parse error for corrupt value")
	}
}
