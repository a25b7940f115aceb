package reporting

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/stockbot/internal/domain/models"
)

type stubLedger struct {
	profit  models.ProfitResult
	summary models.Summary
	items   []models.InventoryItem
	err     error
	at      *time.Time
}

func (s stubLedger) ProfitReportAt(_ context.Context, at time.Time) (models.ProfitResult, error) {
	if s.at != nil {
		*s.at = at
	}
	return s.profit, s.err
}

func (s stubLedger) Inventory(context.Context) ([]models.InventoryItem, error) {
	return s.items, nil
}

func (s stubLedger) Summary(context.Context) (models.Summary, error) {
	return s.summary, nil
}

type memoryArchive struct {
	saved []models.DailyReport
	err   error
}

func (m *memoryArchive) SaveDailyReport(_ context.Context, report models.DailyReport) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, report)
	return nil
}

func (m *memoryArchive) RecentReports(context.Context, int64) ([]models.DailyReport, error) {
	return m.saved, nil
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleLedger() stubLedger {
	return stubLedger{
		profit: models.ProfitResult{Today: d("120"), Month: d("450.5"), TotalProfit: d("250"), Cash: d("-180")},
		summary: models.Summary{
			Cash:        d("-180"),
			TotalProfit: d("250"),
			Capital:     d("500"),
		},
		items: []models.InventoryItem{
			{Name: "cap", Quantity: d("0"), AverageCost: d("7")},
			{Name: "tshirt", Quantity: d("6"), AverageCost: d("50")},
		},
	}
}

func TestGenerateDailyReport(t *testing.T) {
	loc := time.FixedZone("GMT+2", 2*60*60)
	ledger := sampleLedger()
	var profitAt time.Time
	ledger.at = &profitAt
	svc := NewService(ledger, nil, loc, nil)
	now := time.Date(2026, 10, 16, 23, 30, 0, 0, time.UTC)

	report, message, err := svc.GenerateDailyReport(context.Background(), now)
	if err != nil {
		t.Fatalf("GenerateDailyReport() error: %v", err)
	}

	if !profitAt.Equal(now) {
		t.Errorf("profit computed at %s, want %s", profitAt, now)
	}

	wantDate := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	if !report.Date.Equal(wantDate) {
		t.Errorf("Date = %s, want %s", report.Date, wantDate)
	}
	if report.StockValue != 300 || report.ItemCount != 2 || report.Capital != 500 || report.ProfitMonth != 450.5 {
		t.Errorf("report = %+v", report)
	}

	for _, want := range []string{
		"Daily report 2026-10-17",
		"Profit today: 120",
		"Profit this month: 450.5",
		"Cash: -180",
		"Stock value: 300 (2 items)",
		"Sold out: cap",
	} {
		if !strings.Contains(message, want) {
			t.Errorf("message missing %q:\n%s", want, message)
		}
	}
}

func TestRunDailyArchives(t *testing.T) {
	archive := &memoryArchive{}
	svc := NewService(sampleLedger(), archive, time.UTC, nil)

	message, err := svc.RunDaily(context.Background(), time.Date(2026, 10, 16, 20, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("RunDaily() error: %v", err)
	}
	if message == "" {
		t.Error("RunDaily() returned an empty message")
	}
	if len(archive.saved) != 1 || archive.saved[0].TotalProfit != 250 {
		t.Errorf("archived = %+v", archive.saved)
	}
}

func TestRunDailyArchiveFailureStillReports(t *testing.T) {
	archive := &memoryArchive{err: errors.New("no primary")}
	svc := NewService(sampleLedger(), archive, time.UTC, nil)

	message, err := svc.RunDaily(context.Background(), time.Now())
	if err != nil || message == "" {
		t.Fatalf("RunDaily() = %q, %v", message, err)
	}
}

func TestGenerateDailyReportLedgerFailure(t *testing.T) {
	ledger := sampleLedger()
	ledger.err = errors.New("sheet unavailable")
	svc := NewService(ledger, nil, time.UTC, nil)

	if _, _, err := svc.GenerateDailyReport(context.Background(), time.Now()); err == nil {
		t.Fatal("GenerateDailyReport() error = nil, want failure")
	}
}
