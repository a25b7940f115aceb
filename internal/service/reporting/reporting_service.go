package reporting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockbot/internal/domain/models"
	"github.com/mamadbah2/stockbot/internal/repository/mongodb"
)

const dateLayout = "2006-01-02"

// Ledger is the read side of the accounting engine used for reports.
type Ledger interface {
	ProfitReportAt(ctx context.Context, at time.Time) (models.ProfitResult, error)
	Inventory(ctx context.Context) ([]models.InventoryItem, error)
	Summary(ctx context.Context) (models.Summary, error)
}

// Service builds the end-of-day report and archives it.
type Service struct {
	ledger   Ledger
	archive  mongodb.Repository
	location *time.Location
	logger   *zap.Logger
}

// NewService wires a new reporting service instance. archive may be nil, in which case
// reports are only rendered.
func NewService(ledger Ledger, archive mongodb.Repository, location *time.Location, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if location == nil {
		location = time.UTC
	}
	return &Service{ledger: ledger, archive: archive, location: location, logger: logger}
}

// GenerateDailyReport snapshots profit, cash, capital and stock value, and renders the
// chat message for it. The report day, including today's and this month's profit, is
// the day of now in the service location.
func (s *Service) GenerateDailyReport(ctx context.Context, now time.Time) (models.DailyReport, string, error) {
	profit, err := s.ledger.ProfitReportAt(ctx, now)
	if err != nil {
		return models.DailyReport{}, "", fmt.Errorf("load profit: %w", err)
	}
	summary, err := s.ledger.Summary(ctx)
	if err != nil {
		return models.DailyReport{}, "", fmt.Errorf("load summary: %w", err)
	}
	items, err := s.ledger.Inventory(ctx)
	if err != nil {
		return models.DailyReport{}, "", fmt.Errorf("load inventory: %w", err)
	}

	stockValue := decimal.Zero
	var soldOut []string
	for _, item := range items {
		stockValue = stockValue.Add(item.Value())
		if !item.Quantity.IsPositive() {
			soldOut = append(soldOut, item.Name)
		}
	}

	local := now.In(s.location)
	report := models.DailyReport{
		Date:        time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC),
		ProfitToday: profit.Today.InexactFloat64(),
		ProfitMonth: profit.Month.InexactFloat64(),
		TotalProfit: summary.TotalProfit.InexactFloat64(),
		Cash:        summary.Cash.InexactFloat64(),
		Capital:     summary.Capital.InexactFloat64(),
		StockValue:  stockValue.InexactFloat64(),
		ItemCount:   len(items),
		CreatedAt:   now.UTC(),
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Daily report %s\n", local.Format(dateLayout))
	fmt.Fprintf(&b, "Profit today: %s\n", models.FormatAmount(profit.Today))
	fmt.Fprintf(&b, "Profit this month: %s\n", models.FormatAmount(profit.Month))
	fmt.Fprintf(&b, "Total profit: %s\n", models.FormatAmount(summary.TotalProfit))
	fmt.Fprintf(&b, "Cash: %s\n", models.FormatAmount(summary.Cash))
	fmt.Fprintf(&b, "Capital: %s\n", models.FormatAmount(summary.Capital))
	fmt.Fprintf(&b, "Stock value: %s (%d items)", models.FormatAmount(stockValue), len(items))
	if len(soldOut) > 0 {
		fmt.Fprintf(&b, "\nSold out: %s", strings.Join(soldOut, ", "))
	}

	return report, b.String(), nil
}

// RunDaily generates the report and archives it. An archive failure is logged and does
// not prevent the message from being returned.
func (s *Service) RunDaily(ctx context.Context, now time.Time) (string, error) {
	report, message, err := s.GenerateDailyReport(ctx, now)
	if err != nil {
		return "", err
	}

	if s.archive == nil {
		return message, nil
	}
	if err := s.archive.SaveDailyReport(ctx, report); err != nil {
		s.logger.Error("failed to archive daily report", zap.Time("date", report.Date), zap.Error(err))
		return message, nil
	}
	s.logger.Info("daily report archived", zap.Time("date", report.Date))
	return message, nil
}
