package sheets

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/stockbot/internal/domain/models"
)

// fakeRepository keeps tabs as row slices and understands the single-row and open-ended
// A1 ranges the ledger store uses ("Tab!A:C", "Tab!A2:C", "Tab!A3:C3").
type fakeRepository struct {
	t       *testing.T
	tabs    map[string][][]interface{}
	failing bool
}

func splitRange(t *testing.T, sheetRange string) (tab string, start, end int) {
	t.Helper()
	tab, cells, ok := strings.Cut(sheetRange, "!")
	if !ok {
		t.Fatalf("range %q has no tab", sheetRange)
	}
	from, to, _ := strings.Cut(cells, ":")
	return tab, rowNumber(from), rowNumber(to)
}

func rowNumber(cell string) int {
	digits := strings.TrimLeft(cell, "ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	return n
}

func (f *fakeRepository) WriteRow(_ context.Context, sheetRange string, values []interface{}) error {
	if f.failing {
		return errors.New("quota exceeded")
	}
	tab, _, _ := splitRange(f.t, sheetRange)
	rows := f.tabs[tab]
	if len(rows) == 0 {
		rows = append(rows, []interface{}{})
	}
	f.tabs[tab] = append(rows, values)
	return nil
}

func (f *fakeRepository) UpdateRow(_ context.Context, sheetRange string, values []interface{}) error {
	if f.failing {
		return errors.New("quota exceeded")
	}
	tab, start, _ := splitRange(f.t, sheetRange)
	rows := f.tabs[tab]
	for len(rows) < start {
		rows = append(rows, []interface{}{})
	}
	rows[start-1] = values
	f.tabs[tab] = rows
	return nil
}

func (f *fakeRepository) ReadRange(_ context.Context, sheetRange string) ([][]interface{}, error) {
	if f.failing {
		return nil, errors.New("quota exceeded")
	}
	tab, start, end := splitRange(f.t, sheetRange)
	if start == 0 {
		start = 1
	}
	rows := f.tabs[tab]
	if len(rows) < start {
		return nil, nil
	}
	if end == 0 || end > len(rows) {
		end = len(rows)
	}
	return rows[start-1 : end], nil
}

func newTestLedgerStore(t *testing.T) (*LedgerStore, *fakeRepository) {
	t.Helper()
	repo := &fakeRepository{t: t, tabs: make(map[string][][]interface{})}
	return NewLedgerStore(repo, nil), repo
}

func TestLedgerStoreInventory(t *testing.T) {
	ctx := context.Background()
	s, repo := newTestLedgerStore(t)
	if err := s.EnsureHeaders(ctx); err != nil {
		t.Fatalf("EnsureHeaders() error: %v", err)
	}

	if _, found, err := s.GetInventoryItem(ctx, "pen"); err != nil || found {
		t.Fatalf("GetInventoryItem(pen) found = %v, err = %v", found, err)
	}

	pen := models.InventoryItem{Name: "pen", Quantity: decimal.NewFromInt(5), AverageCost: decimal.RequireFromString("2.5")}
	hat := models.InventoryItem{Name: "hat", Quantity: decimal.NewFromInt(1), AverageCost: decimal.NewFromInt(9)}
	for _, item := range []models.InventoryItem{pen, hat} {
		if err := s.SetInventoryItem(ctx, item); err != nil {
			t.Fatalf("SetInventoryItem(%s) error: %v", item.Name, err)
		}
	}

	pen.Quantity = decimal.NewFromInt(2)
	if err := s.SetInventoryItem(ctx, pen); err != nil {
		t.Fatalf("SetInventoryItem(pen) update error: %v", err)
	}

	if rows := repo.tabs["Inventory"]; len(rows) != 3 {
		t.Fatalf("inventory tab rows = %d, want header + 2", len(rows))
	}

	got, found, err := s.GetInventoryItem(ctx, "pen")
	if err != nil || !found {
		t.Fatalf("GetInventoryItem(pen) found = %v, err = %v", found, err)
	}
	if !got.Quantity.Equal(decimal.NewFromInt(2)) || !got.AverageCost.Equal(decimal.RequireFromString("2.5")) {
		t.Errorf("pen = %s @ %s, want 2 @ 2.5", got.Quantity, got.AverageCost)
	}

	items, err := s.ListInventory(ctx)
	if err != nil {
		t.Fatalf("ListInventory() error: %v", err)
	}
	if len(items) != 2 || items[0].Name != "pen" || items[1].Name != "hat" {
		t.Errorf("items = %+v, want pen then hat", items)
	}
}

func TestLedgerStoreSalesAndSummary(t *testing.T) {
	ctx := context.Background()
	s, repo := newTestLedgerStore(t)

	summary, err := s.GetSummary(ctx)
	if err != nil {
		t.Fatalf("GetSummary() error: %v", err)
	}
	if !summary.Cash.IsZero() || !summary.Capital.IsZero() {
		t.Errorf("summary = %+v, want zeros", summary)
	}

	ts := time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)
	sale := models.SaleRecord{
		Timestamp: ts,
		Item:      "pen",
		Quantity:  decimal.NewFromInt(3),
		Price:     decimal.NewFromInt(4),
		Profit:    decimal.RequireFromString("4.5"),
	}
	if err := s.AppendSale(ctx, sale); err != nil {
		t.Fatalf("AppendSale() error: %v", err)
	}
	if err := s.AppendPurchase(ctx, models.PurchaseRecord{Timestamp: ts, Item: "pen", Quantity: decimal.NewFromInt(1), Price: decimal.NewFromInt(1)}); err != nil {
		t.Fatalf("AppendPurchase() error: %v", err)
	}
	if err := s.AppendExpense(ctx, models.ExpenseRecord{Timestamp: ts, Title: "rent", Amount: decimal.NewFromInt(200)}); err != nil {
		t.Fatalf("AppendExpense() error: %v", err)
	}

	// A hand-edited row with a broken timestamp is ignored.
	repo.tabs["Sales"] = append(repo.tabs["Sales"], []interface{}{"x", "yesterday", "pen", 1.0, 1.0, 1.0})

	sales, err := s.ListSales(ctx)
	if err != nil {
		t.Fatalf("ListSales() error: %v", err)
	}
	if len(sales) != 1 {
		t.Fatalf("sales = %d, want 1", len(sales))
	}
	if sales[0].ID == "" || !sales[0].Timestamp.Equal(ts) || !sales[0].Profit.Equal(sale.Profit) {
		t.Errorf("sale = %+v, want id, %s and profit 4.5", sales[0], ts)
	}

	want := models.Summary{
		Cash:        decimal.RequireFromString("-180.25"),
		TotalProfit: decimal.NewFromInt(120),
		Capital:     decimal.NewFromInt(500),
	}
	if err := s.SetSummary(ctx, want); err != nil {
		t.Fatalf("SetSummary() error: %v", err)
	}
	got, err := s.GetSummary(ctx)
	if err != nil {
		t.Fatalf("GetSummary() error: %v", err)
	}
	if !got.Cash.Equal(want.Cash) || !got.TotalProfit.Equal(want.TotalProfit) || !got.Capital.Equal(want.Capital) {
		t.Errorf("summary = %+v, want %+v", got, want)
	}
}

func TestLedgerStorePropagatesErrors(t *testing.T) {
	ctx := context.Background()
	s, repo := newTestLedgerStore(t)
	repo.failing = true

	if _, _, err := s.GetInventoryItem(ctx, "pen"); err == nil {
		t.Error("GetInventoryItem() error = nil, want failure")
	}
	if _, err := s.GetSummary(ctx); err == nil {
		t.Error("GetSummary() error = nil, want failure")
	}
	if err := s.AppendSale(ctx, models.SaleRecord{}); err == nil {
		t.Error("AppendSale() error = nil, want failure")
	}
}

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		value interface{}
		want  string
	}{
		{2.5, "2.5"},
		{"10", "10"},
		{" 3.75 ", "3.75"},
		{"", "0"},
		{7, "7"},
	}
	for _, tt := range tests {
		got, err := parseDecimal(tt.value)
		if err != nil {
			t.Fatalf("parseDecimal(%v) error: %v", tt.value, err)
		}
		if !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("parseDecimal(%v) = %s, want %s", tt.value, got, tt.want)
		}
	}

	if _, err := parseDecimal("abc"); err == nil {
		t.Error("parseDecimal(abc) error = nil")
	}
}
