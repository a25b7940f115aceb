package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/stockbot/internal/domain/models"
)

func TestStoreInventoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	if _, found, err := s.GetInventoryItem(ctx, "pen"); err != nil || found {
		t.Fatalf("GetInventoryItem(pen) found = %v, err = %v, want not found", found, err)
	}

	item := models.InventoryItem{Name: "pen", Quantity: decimal.NewFromInt(5), AverageCost: decimal.NewFromInt(2)}
	if err := s.SetInventoryItem(ctx, item); err != nil {
		t.Fatalf("SetInventoryItem() error: %v", err)
	}

	got, found, err := s.GetInventoryItem(ctx, "pen")
	if err != nil || !found {
		t.Fatalf("GetInventoryItem(pen) found = %v, err = %v", found, err)
	}
	if !got.Quantity.Equal(item.Quantity) || !got.AverageCost.Equal(item.AverageCost) {
		t.Errorf("item = %+v, want %+v", got, item)
	}

	if _, found, _ := s.GetInventoryItem(ctx, "Pen"); found {
		t.Error("names must be case-sensitive")
	}
}

func TestStoreAssignsUniqueIDs(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	for i := 0; i < 3; i++ {
		if err := s.AppendSale(ctx, models.SaleRecord{Item: "pen"}); err != nil {
			t.Fatalf("AppendSale() error: %v", err)
		}
	}

	sales, _ := s.ListSales(ctx)
	seen := make(map[string]bool)
	for _, sale := range sales {
		if sale.ID == "" {
			t.Fatal("sale ID is empty")
		}
		if seen[sale.ID] {
			t.Fatalf("duplicate sale ID %s", sale.ID)
		}
		seen[sale.ID] = true
	}
}

func TestStoreSummaryDefaultsToZero(t *testing.T) {
	s := NewStore()
	summary, err := s.GetSummary(context.Background())
	if err != nil {
		t.Fatalf("GetSummary() error: %v", err)
	}
	if !summary.Cash.IsZero() || !summary.TotalProfit.IsZero() || !summary.Capital.IsZero() {
		t.Errorf("summary = %+v, want zeros", summary)
	}
}
