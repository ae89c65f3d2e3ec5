package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/imrishuroy/go-cod-storefront/internal/aws/awstest"
)

func newTestStore(now time.Time) (*Store, *awstest.Dynamo) {
	db := awstest.NewDynamo()
	db.DefineTable("orders", "order_id", "")
	s := NewStore(db, "orders")
	s.nowFunc = func() time.Time { return now }
	return s, db
}

func TestStore_CreateGet(t *testing.T) {
	now := time.Date(2025, 5, 10, 9, 30, 0, 0, time.UTC)
	s, _ := newTestStore(now)
	ctx := context.Background()

	created, err := s.Create(ctx, Order{
		OrderID:      "o1",
		CustomerName: "Yacine",
		Phone:        "0555123456",
		Wilaya:       "Oran",
		ProductID:    "p1",
		ProductName:  "Dress",
		UnitPrice:    3000,
		Quantity:     2,
		ShippingCost: 400,
		TotalPrice:   6400,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created.Status != StatusPending {
		t.Fatalf("expected pending, got %s", created.Status)
	}

	got, err := s.Get(ctx, "o1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.TotalPrice != 6400 || got.ProductName != "Dress" || !got.CreatedAt.Equal(now) {
		t.Fatalf("unexpected order: %+v", got)
	}

	if _, err := s.Create(ctx, Order{OrderID: "o1"}); !errors.Is(err, ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
}

func TestStore_GetMissing(t *testing.T) {
	s, _ := newTestStore(time.Now())
	if _, err := s.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_ListNewestFirst(t *testing.T) {
	base := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
	s, _ := newTestStore(base)
	ctx := context.Background()

	for i, id := range []string{"a", "b", "c"} {
		if _, err := s.Create(ctx, Order{OrderID: id, CreatedAt: base.Add(time.Duration(i) * time.Hour)}); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}
	list, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(list) != 3 || list[0].OrderID != "c" || list[2].OrderID != "a" {
		t.Fatalf("unexpected order: %v", ids(list))
	}
}

func TestStore_UpdateStatus(t *testing.T) {
	now := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
	s, _ := newTestStore(now)
	ctx := context.Background()
	if _, err := s.Create(ctx, Order{OrderID: "o1"}); err != nil {
		t.Fatal(err)
	}

	later := now.Add(time.Hour)
	s.nowFunc = func() time.Time { return later }

	// any -> any, including back to pending
	for _, st := range []string{StatusDelivered, StatusReturned, StatusPending} {
		o, err := s.UpdateStatus(ctx, "o1", st)
		if err != nil {
			t.Fatalf("UpdateStatus(%s): %v", st, err)
		}
		if o.Status != st || !o.UpdatedAt.Equal(later) {
			t.Fatalf("unexpected row after %s: %+v", st, o)
		}
	}

	if _, err := s.UpdateStatus(ctx, "o1", "lost"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if _, err := s.UpdateStatus(ctx, "missing", StatusShipped); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_Delete(t *testing.T) {
	s, db := newTestStore(time.Now())
	ctx := context.Background()
	if _, err := s.Create(ctx, Order{OrderID: "o1"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, "o1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if db.Len("orders") != 0 {
		t.Fatal("order still present")
	}
	if err := s.Delete(ctx, "o1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_ScanError(t *testing.T) {
	s, db := newTestStore(time.Now())
	db.Errs["Scan"] = errors.New("boom")
	if _, err := s.List(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func ids(list []Order) []string {
	out := make([]string, len(list))
	for i, o := range list {
		out[i] = o.OrderID
	}
	return out
}
