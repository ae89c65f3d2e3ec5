package guard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/imrishuroy/go-cod-storefront/internal/aws/awstest"
)

func newTestStore(now time.Time) (*Store, *awstest.Dynamo) {
	db := awstest.NewDynamo()
	db.DefineTable("order_guards", "guard_key", "")
	s := NewStore(db, "order_guards", 24*time.Hour)
	s.nowFunc = func() time.Time { return now }
	return s, db
}

func TestStore_ClaimTwiceWithinWindow(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s, db := newTestStore(now)
	ctx := context.Background()
	key := Key("10.0.0.1", "p1")

	ok, err := s.Claim(ctx, key, "o1")
	if err != nil || !ok {
		t.Fatalf("first claim: ok=%v err=%v", ok, err)
	}

	s.nowFunc = func() time.Time { return now.Add(23 * time.Hour) }
	ok, err = s.Claim(ctx, key, "o2")
	if err != nil {
		t.Fatalf("second claim error: %v", err)
	}
	if ok {
		t.Fatal("expected second claim within window to be refused")
	}

	rec, err := s.Get(ctx, key)
	if err != nil || rec == nil {
		t.Fatalf("get: rec=%v err=%v", rec, err)
	}
	if rec.OrderID != "o1" {
		t.Fatalf("claim was overwritten: %s", rec.OrderID)
	}
	if rec.ExpiresAt != now.Add(24*time.Hour).Unix() {
		t.Fatalf("unexpected expires_at %d", rec.ExpiresAt)
	}
	if db.Len("order_guards") != 1 {
		t.Fatalf("expected one guard row, got %d", db.Len("order_guards"))
	}
}

func TestStore_ClaimAfterExpiry(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s, _ := newTestStore(now)
	ctx := context.Background()
	key := Key("10.0.0.1", "p1")

	if ok, _ := s.Claim(ctx, key, "o1"); !ok {
		t.Fatal("first claim refused")
	}
	// row still present (TTL lag) but expired
	s.nowFunc = func() time.Time { return now.Add(25 * time.Hour) }
	ok, err := s.Claim(ctx, key, "o2")
	if err != nil || !ok {
		t.Fatalf("claim after expiry: ok=%v err=%v", ok, err)
	}
}

func TestStore_DifferentProductOrIP(t *testing.T) {
	s, _ := newTestStore(time.Now())
	ctx := context.Background()

	for _, k := range []string{Key("1.1.1.1", "p1"), Key("1.1.1.1", "p2"), Key("2.2.2.2", "p1")} {
		if ok, err := s.Claim(ctx, k, "o"); err != nil || !ok {
			t.Fatalf("claim %s: ok=%v err=%v", k, ok, err)
		}
	}
}

func TestStore_Release(t *testing.T) {
	s, db := newTestStore(time.Now())
	ctx := context.Background()
	key := Key("1.1.1.1", "p1")

	if ok, _ := s.Claim(ctx, key, "o1"); !ok {
		t.Fatal("claim refused")
	}
	if err := s.Release(ctx, key); err != nil {
		t.Fatalf("release: %v", err)
	}
	if db.Len("order_guards") != 0 {
		t.Fatal("guard not removed")
	}
	if ok, _ := s.Claim(ctx, key, "o2"); !ok {
		t.Fatal("claim after release refused")
	}
}

func TestStore_PutError(t *testing.T) {
	s, db := newTestStore(time.Now())
	db.Errs["PutItem"] = errors.New("throttled")

	ok, err := s.Claim(context.Background(), "k", "o")
	if err == nil || ok {
		t.Fatalf("expected error, got ok=%v err=%v", ok, err)
	}
}

func TestKey(t *testing.T) {
	if Key("1.1.1.1", "p1") != Key("1.1.1.1", "p1") {
		t.Fatal("key not deterministic")
	}
	if Key("1.1.1.1", "p1") == Key("1.1.1.1", "p2") {
		t.Fatal("key ignores product")
	}
	if len(Key("a", "b")) != 64 {
		t.Fatal("expected hex sha256")
	}
}
