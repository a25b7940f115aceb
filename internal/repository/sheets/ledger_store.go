package sheets

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockbot/internal/domain/models"
)

// Tab layout. Row 1 of every tab holds the header; data starts on row 2.
const (
	inventoryWriteRange = "Inventory!A:C"
	inventoryDataRange  = "Inventory!A2:C"
	salesWriteRange     = "Sales!A:F"
	salesDataRange      = "Sales!A2:F"
	purchasesWriteRange = "Purchases!A:E"
	expensesWriteRange  = "Expenses!A:D"
	summaryRowRange     = "Summary!A2:C2"
	firstDataRow        = 2
	timestampLayout     = time.RFC3339Nano
)

var tabHeaders = map[string][]interface{}{
	"Inventory!A1:C1": {"Name", "Quantity", "AverageCost"},
	"Sales!A1:F1":     {"ID", "Timestamp", "Item", "Quantity", "Price", "Profit"},
	"Purchases!A1:E1": {"ID", "Timestamp", "Item", "Quantity", "Price"},
	"Expenses!A1:D1":  {"ID", "Timestamp", "Title", "Amount"},
	"Summary!A1:C1":   {"Cash", "TotalProfit", "Capital"},
}

// LedgerStore maps the bookkeeping ledger onto spreadsheet tabs.
type LedgerStore struct {
	repo   Repository
	logger *zap.Logger
}

// NewLedgerStore wraps a row repository.
func NewLedgerStore(repository Repository, logger *zap.Logger) *LedgerStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LedgerStore{repo: repository, logger: logger}
}

// EnsureHeaders writes the header row of every tab that does not have one yet.
// The tabs themselves must already exist in the spreadsheet.
func (s *LedgerStore) EnsureHeaders(ctx context.Context) error {
	for headerRange, header := range tabHeaders {
		rows, err := s.repo.ReadRange(ctx, headerRange)
		if err != nil {
			return fmt.Errorf("read header %s: %w", headerRange, err)
		}
		if len(rows) > 0 && len(rows[0]) > 0 {
			continue
		}
		if err := s.repo.UpdateRow(ctx, headerRange, header); err != nil {
			return fmt.Errorf("write header %s: %w", headerRange, err)
		}
		s.logger.Info("sheet header created", zap.String("range", headerRange))
	}
	return nil
}

// GetInventoryItem looks an item up by exact name.
func (s *LedgerStore) GetInventoryItem(ctx context.Context, name string) (models.InventoryItem, bool, error) {
	items, _, err := s.loadInventory(ctx)
	if err != nil {
		return models.InventoryItem{}, false, err
	}
	for _, item := range items {
		if item.Name == name {
			return item, true, nil
		}
	}
	return models.InventoryItem{}, false, nil
}

// SetInventoryItem overwrites the item's row, or appends one for a new item.
func (s *LedgerStore) SetInventoryItem(ctx context.Context, item models.InventoryItem) error {
	_, rowsByName, err := s.loadInventory(ctx)
	if err != nil {
		return err
	}

	values := []interface{}{item.Name, item.Quantity.InexactFloat64(), item.AverageCost.InexactFloat64()}
	if row, ok := rowsByName[item.Name]; ok {
		return s.repo.UpdateRow(ctx, fmt.Sprintf("Inventory!A%d:C%d", row, row), values)
	}
	return s.repo.WriteRow(ctx, inventoryWriteRange, values)
}

// ListInventory returns every item in sheet order.
func (s *LedgerStore) ListInventory(ctx context.Context) ([]models.InventoryItem, error) {
	items, _, err := s.loadInventory(ctx)
	return items, err
}

func (s *LedgerStore) AppendSale(ctx context.Context, record models.SaleRecord) error {
	values := []interface{}{
		uuid.NewString(),
		record.Timestamp.UTC().Format(timestampLayout),
		record.Item,
		record.Quantity.InexactFloat64(),
		record.Price.InexactFloat64(),
		record.Profit.InexactFloat64(),
	}
	return s.repo.WriteRow(ctx, salesWriteRange, values)
}

func (s *LedgerStore) AppendPurchase(ctx context.Context, record models.PurchaseRecord) error {
	values := []interface{}{
		uuid.NewString(),
		record.Timestamp.UTC().Format(timestampLayout),
		record.Item,
		record.Quantity.InexactFloat64(),
		record.Price.InexactFloat64(),
	}
	return s.repo.WriteRow(ctx, purchasesWriteRange, values)
}

func (s *LedgerStore) AppendExpense(ctx context.Context, record models.ExpenseRecord) error {
	values := []interface{}{
		uuid.NewString(),
		record.Timestamp.UTC().Format(timestampLayout),
		record.Title,
		record.Amount.InexactFloat64(),
	}
	return s.repo.WriteRow(ctx, expensesWriteRange, values)
}

// ListSales reads the sales tab. Rows that cannot be parsed are skipped.
func (s *LedgerStore) ListSales(ctx context.Context) ([]models.SaleRecord, error) {
	rows, err := s.repo.ReadRange(ctx, salesDataRange)
	if err != nil {
		return nil, fmt.Errorf("load sales range: %w", err)
	}

	sales := make([]models.SaleRecord, 0, len(rows))
	for _, row := range rows {
		if len(row) < 6 {
			continue
		}
		ts, err := parseTimestamp(row[1])
		if err != nil {
			s.logger.Debug("skip sale row with invalid timestamp", zap.Any("value", row[1]), zap.Error(err))
			continue
		}
		qty, errQty := parseDecimal(row[3])
		price, errPrice := parseDecimal(row[4])
		profit, errProfit := parseDecimal(row[5])
		if errQty != nil || errPrice != nil || errProfit != nil {
			s.logger.Debug("skip sale row with invalid amounts", zap.Any("row", row))
			continue
		}
		sales = append(sales, models.SaleRecord{
			ID:        fmt.Sprint(row[0]),
			Timestamp: ts,
			Item:      fmt.Sprint(row[2]),
			Quantity:  qty,
			Price:     price,
			Profit:    profit,
		})
	}
	return sales, nil
}

// GetSummary reads the summary row; a missing row is the zero summary.
func (s *LedgerStore) GetSummary(ctx context.Context) (models.Summary, error) {
	rows, err := s.repo.ReadRange(ctx, summaryRowRange)
	if err != nil {
		return models.Summary{}, fmt.Errorf("load summary range: %w", err)
	}
	if len(rows) == 0 {
		return models.Summary{}, nil
	}

	row := rows[0]
	cells := make([]decimal.Decimal, 3)
	for i := range cells {
		if i >= len(row) {
			continue
		}
		value, err := parseDecimal(row[i])
		if err != nil {
			return models.Summary{}, fmt.Errorf("parse summary column %d: %w", i+1, err)
		}
		cells[i] = value
	}
	return models.Summary{Cash: cells[0], TotalProfit: cells[1], Capital: cells[2]}, nil
}

func (s *LedgerStore) SetSummary(ctx context.Context, summary models.Summary) error {
	values := []interface{}{
		summary.Cash.InexactFloat64(),
		summary.TotalProfit.InexactFloat64(),
		summary.Capital.InexactFloat64(),
	}
	return s.repo.UpdateRow(ctx, summaryRowRange, values)
}

// loadInventory returns the parsed items and the sheet row number of each name.
func (s *LedgerStore) loadInventory(ctx context.Context) ([]models.InventoryItem, map[string]int, error) {
	rows, err := s.repo.ReadRange(ctx, inventoryDataRange)
	if err != nil {
		return nil, nil, fmt.Errorf("load inventory range: %w", err)
	}

	items := make([]models.InventoryItem, 0, len(rows))
	rowsByName := make(map[string]int, len(rows))
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		name := fmt.Sprint(row[0])
		if name == "" {
			continue
		}

		item := models.InventoryItem{Name: name}
		if len(row) > 1 {
			if item.Quantity, err = parseDecimal(row[1]); err != nil {
				return nil, nil, fmt.Errorf("parse quantity of %s: %w", name, err)
			}
		}
		if len(row) > 2 {
			if item.AverageCost, err = parseDecimal(row[2]); err != nil {
				return nil, nil, fmt.Errorf("parse average cost of %s: %w", name, err)
			}
		}

		items = append(items, item)
		rowsByName[name] = firstDataRow + i
	}
	return items, rowsByName, nil
}

func parseDecimal(value interface{}) (decimal.Decimal, error) {
	switch v := value.(type) {
	case float64:
		return decimal.NewFromFloat(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	}

	str := strings.TrimSpace(fmt.Sprint(value))
	if str == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(str)
}

func parseTimestamp(value interface{}) (time.Time, error) {
	str := strings.TrimSpace(fmt.Sprint(value))
	if str == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	return time.Parse(timestampLayout, str)
}
