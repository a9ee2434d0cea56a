package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"gokhale/internal/db"

	"github.com/shopspring/decimal"
)

func newSQLiteRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	conn, err := db.OpenSQLite(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return NewSQLiteRepository(conn)
}

func TestSQLiteRepository_RoundTrip(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	delivery := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	order := &Order{
		UserID:       "user-1",
		FirstName:    "Asha",
		MobileNumber: "9000000001",
		DeliveryDate: &delivery,
		Address:      Address{Line1: "12 FC Road", City: "Pune", State: "MH", Pincode: "411004"},
		Items: []LineItem{
			{Name: "Laddu", Quantity: 2, Variant: "500gm", Price: decimal.RequireFromString("240")},
		},
		TotalAmount: decimal.RequireFromString("480.50"),
		Status:      StatusPlaced,
		CreatedAt:   time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC),
	}

	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("create: %v", err)
	}
	if order.ID == 0 {
		t.Fatal("expected id to be assigned")
	}

	got, err := repo.GetByID(ctx, order.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if got.FirstName != "Asha" || got.Address.City != "Pune" || got.Status != StatusPlaced {
		t.Errorf("unexpected order: %+v", got)
	}
	if !got.TotalAmount.Equal(order.TotalAmount) {
		t.Errorf("total: got %s, want %s", got.TotalAmount, order.TotalAmount)
	}
	if got.DeliveryDate == nil || !got.DeliveryDate.Equal(delivery) {
		t.Errorf("delivery date: got %v", got.DeliveryDate)
	}
	if len(got.Items) != 1 || got.Items[0].Variant != "500gm" || got.Items[0].Quantity != 2 {
		t.Errorf("items: got %+v", got.Items)
	}
}

func TestSQLiteRepository_ListAndUpdate(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	base := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	for i, status := range []string{StatusConfirmed, StatusPlaced, StatusInProcess} {
		o := &Order{
			UserID:      "user-1",
			Status:      status,
			TotalAmount: decimal.NewFromInt(100),
			CreatedAt:   base.Add(time.Duration(i) * time.Hour),
		}
		if err := repo.Create(ctx, o); err != nil {
			t.Fatal(err)
		}
	}

	list, err := repo.List(ctx, ListFilter{Statuses: DefaultKitchenStatuses})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Status != StatusConfirmed || list[1].Status != StatusInProcess {
		t.Fatalf("unexpected kitchen list: %+v", list)
	}

	newest, err := repo.List(ctx, ListFilter{NewestFirst: true, Limit: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(newest) != 1 || newest[0].Status != StatusInProcess {
		t.Fatalf("expected newest order first, got %+v", newest)
	}

	if err := repo.UpdateStatus(ctx, list[0].ID, StatusDispatched); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := repo.UpdateStatus(ctx, 9999, StatusDispatched); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
	if _, err := repo.GetByID(ctx, 9999); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}
