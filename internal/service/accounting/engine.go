// Package accounting keeps inventory, weighted-average cost, cash, profit and capital
// consistent across sell, buy and expense operations.
package accounting

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockbot/internal/domain/models"
	"github.com/mamadbah2/stockbot/internal/metrics"
)

// Engine is the only writer of inventory and summary state. Mutations of one item are
// serialized by name and every summary update goes through a single lock; locks are
// always taken item first, then summary.
type Engine struct {
	store    Store
	location *time.Location
	logger   *zap.Logger
	now      func() time.Time

	items     *keyedMutex
	summaryMu sync.Mutex
}

// NewEngine wires an engine over store. Profit periods (today, this month) are computed
// in location; nil means UTC.
func NewEngine(store Store, location *time.Location, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if location == nil {
		location = time.UTC
	}
	return &Engine{
		store:    store,
		location: location,
		logger:   logger,
		now:      time.Now,
		items:    newKeyedMutex(),
	}
}

// Execute runs a parsed command and returns its outcome.
func (e *Engine) Execute(ctx context.Context, cmd models.Command) models.Outcome {
	switch cmd.Type {
	case models.CommandSell:
		return e.Sell(ctx, cmd.Item, cmd.Quantity, cmd.Price)
	case models.CommandBuy:
		return e.Buy(ctx, cmd.Item, cmd.Quantity, cmd.Price)
	case models.CommandExpense:
		return e.Expense(ctx, cmd.Title, cmd.Amount)
	case models.CommandStock:
		return e.Stock(ctx, cmd.Item)
	case models.CommandProfit:
		return e.Profit(ctx)
	case models.CommandHelp:
		return models.Succeeded(models.HelpResult{Text: models.HelpText()})
	default:
		return models.Failed(models.NewError(models.KindParse,
			fmt.Sprintf("Unknown command %q. Send help to see available commands.", cmd.Raw)))
	}
}

// Sell records the sale of quantity units of item at price.
func (e *Engine) Sell(ctx context.Context, item, quantity, price string) models.Outcome {
	return e.run("sell", func() (models.Result, error) {
		return e.sell(ctx, item, quantity, price)
	})
}

// Buy records the purchase of quantity units of item at price and re-averages its cost.
func (e *Engine) Buy(ctx context.Context, item, quantity, price string) models.Outcome {
	return e.run("buy", func() (models.Result, error) {
		return e.buy(ctx, item, quantity, price)
	})
}

// Expense records an operating expense, which reduces both cash and total profit.
func (e *Engine) Expense(ctx context.Context, title, amount string) models.Outcome {
	return e.run("expense", func() (models.Result, error) {
		return e.expense(ctx, title, amount)
	})
}

// Stock reports one item, or lists all items when item is blank.
func (e *Engine) Stock(ctx context.Context, item string) models.Outcome {
	return e.run("stock", func() (models.Result, error) {
		if strings.TrimSpace(item) == "" {
			items, err := e.Inventory(ctx)
			if err != nil {
				return nil, err
			}
			return models.StockListResult{Items: items}, nil
		}
		return e.stockItem(ctx, item)
	})
}

// Profit reports sale profit for today and this month, the cumulative profit and cash.
func (e *Engine) Profit(ctx context.Context) models.Outcome {
	return e.run("profit", func() (models.Result, error) {
		return e.ProfitReport(ctx)
	})
}

func (e *Engine) sell(ctx context.Context, item, rawQty, rawPrice string) (models.SaleResult, error) {
	item, qty, price, err := parseTrade(item, rawQty, rawPrice)
	if err != nil {
		return models.SaleResult{}, err
	}

	unlock := e.items.Lock(item)
	defer unlock()

	current, found, err := e.store.GetInventoryItem(ctx, item)
	if err != nil {
		return models.SaleResult{}, storageError("load inventory item", err)
	}
	if !found || current.Quantity.LessThan(qty) {
		available := decimal.Zero
		if found {
			available = current.Quantity
		}
		return models.SaleResult{}, models.NewError(models.KindBusinessRule,
			fmt.Sprintf("Insufficient stock for %s. Available: %s.", item, models.FormatAmount(available)))
	}

	profit := price.Sub(current.AverageCost).Mul(qty)
	revenue := price.Mul(qty)

	record := models.SaleRecord{
		Timestamp: e.now(),
		Item:      item,
		Quantity:  qty,
		Price:     price,
		Profit:    profit,
	}
	if err := e.store.AppendSale(ctx, record); err != nil {
		return models.SaleResult{}, storageError("append sale", err)
	}

	remaining := current.Quantity.Sub(qty)
	if err := e.store.SetInventoryItem(ctx, models.InventoryItem{Name: item, Quantity: remaining, AverageCost: current.AverageCost}); err != nil {
		return models.SaleResult{}, storageError("update inventory item", err)
	}

	if _, err := e.updateSummary(ctx, func(s models.Summary) models.Summary {
		s.Cash = s.Cash.Add(revenue)
		s.TotalProfit = s.TotalProfit.Add(profit)
		return s
	}); err != nil {
		return models.SaleResult{}, err
	}

	e.logger.Info("sale recorded",
		zap.String("item", item),
		zap.Stringer("quantity", qty),
		zap.Stringer("price", price),
		zap.Stringer("profit", profit))

	return models.SaleResult{
		Item:      item,
		Quantity:  qty,
		Price:     price,
		Revenue:   revenue,
		Profit:    profit,
		Remaining: remaining,
	}, nil
}

func (e *Engine) buy(ctx context.Context, item, rawQty, rawPrice string) (models.PurchaseResult, error) {
	item, qty, price, err := parseTrade(item, rawQty, rawPrice)
	if err != nil {
		return models.PurchaseResult{}, err
	}

	unlock := e.items.Lock(item)
	defer unlock()

	current, found, err := e.store.GetInventoryItem(ctx, item)
	if err != nil {
		return models.PurchaseResult{}, storageError("load inventory item", err)
	}
	if !found {
		current = models.InventoryItem{Name: item, Quantity: decimal.Zero, AverageCost: decimal.Zero}
	}

	newQty := current.Quantity.Add(qty)
	newAvg := weightedAverageCost(current.Quantity, current.AverageCost, qty, price)

	record := models.PurchaseRecord{
		Timestamp: e.now(),
		Item:      item,
		Quantity:  qty,
		Price:     price,
	}
	if err := e.store.AppendPurchase(ctx, record); err != nil {
		return models.PurchaseResult{}, storageError("append purchase", err)
	}

	if err := e.store.SetInventoryItem(ctx, models.InventoryItem{Name: item, Quantity: newQty, AverageCost: newAvg}); err != nil {
		return models.PurchaseResult{}, storageError("update inventory item", err)
	}

	spent := qty.Mul(price)
	if _, err := e.updateSummary(ctx, func(s models.Summary) models.Summary {
		s.Cash = s.Cash.Sub(spent)
		s.Capital = s.Capital.Add(spent)
		return s
	}); err != nil {
		return models.PurchaseResult{}, err
	}

	e.logger.Info("purchase recorded",
		zap.String("item", item),
		zap.Stringer("quantity", qty),
		zap.Stringer("price", price),
		zap.Stringer("average_cost", newAvg))

	return models.PurchaseResult{
		Item:           item,
		Quantity:       qty,
		Price:          price,
		Spent:          spent,
		NewQuantity:    newQty,
		NewAverageCost: newAvg,
	}, nil
}

func (e *Engine) expense(ctx context.Context, title, rawAmount string) (models.ExpenseResult, error) {
	amount, err := parsePositive("amount", rawAmount)
	if err != nil {
		return models.ExpenseResult{}, err
	}

	e.summaryMu.Lock()
	defer e.summaryMu.Unlock()

	snapshot, err := e.store.GetSummary(ctx)
	if err != nil {
		return models.ExpenseResult{}, storageError("load summary", err)
	}

	record := models.ExpenseRecord{Timestamp: e.now(), Title: title, Amount: amount}
	if err := e.store.AppendExpense(ctx, record); err != nil {
		return models.ExpenseResult{}, storageError("append expense", err)
	}

	updated := snapshot
	updated.Cash = snapshot.Cash.Sub(amount)
	updated.TotalProfit = snapshot.TotalProfit.Sub(amount)
	if err := e.store.SetSummary(ctx, updated); err != nil {
		return models.ExpenseResult{}, storageError("update summary", err)
	}

	e.logger.Info("expense recorded", zap.String("title", title), zap.Stringer("amount", amount))

	// Reported from the snapshot taken before the write; it equals updated.Cash.
	return models.ExpenseResult{
		Title:         title,
		Amount:        amount,
		RemainingCash: snapshot.Cash.Sub(amount),
	}, nil
}

func (e *Engine) stockItem(ctx context.Context, item string) (models.StockItemResult, error) {
	item = strings.TrimSpace(item)
	current, found, err := e.store.GetInventoryItem(ctx, item)
	if err != nil {
		return models.StockItemResult{}, storageError("load inventory item", err)
	}
	if !found {
		return models.StockItemResult{}, models.NewError(models.KindBusinessRule,
			fmt.Sprintf("Item not found: %s.", item))
	}
	return models.StockItemResult{
		Name:        current.Name,
		Quantity:    current.Quantity,
		AverageCost: current.AverageCost,
		Value:       current.Value(),
	}, nil
}

// Inventory lists every item sorted by name.
func (e *Engine) Inventory(ctx context.Context) ([]models.InventoryItem, error) {
	items, err := e.store.ListInventory(ctx)
	if err != nil {
		return nil, storageError("list inventory", err)
	}
	slices.SortFunc(items, func(a, b models.InventoryItem) int {
		return strings.Compare(a.Name, b.Name)
	})
	return items, nil
}

// Summary returns the running cash, total profit and capital.
func (e *Engine) Summary(ctx context.Context) (models.Summary, error) {
	summary, err := e.store.GetSummary(ctx)
	if err != nil {
		return models.Summary{}, storageError("load summary", err)
	}
	return summary, nil
}

// ProfitReport partitions sale profit into today and this month, in the engine's
// location, and adds the cumulative total profit and cash from the summary.
func (e *Engine) ProfitReport(ctx context.Context) (models.ProfitResult, error) {
	return e.ProfitReportAt(ctx, e.now())
}

// ProfitReportAt is ProfitReport with today and this month being the day and month of
// at. Total profit and cash are always the current summary.
func (e *Engine) ProfitReportAt(ctx context.Context, at time.Time) (models.ProfitResult, error) {
	sales, err := e.store.ListSales(ctx)
	if err != nil {
		return models.ProfitResult{}, storageError("list sales", err)
	}
	summary, err := e.Summary(ctx)
	if err != nil {
		return models.ProfitResult{}, err
	}

	now := at.In(e.location)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, e.location)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, e.location)
	dayEnd := dayStart.AddDate(0, 0, 1)
	monthEnd := monthStart.AddDate(0, 1, 0)

	report := models.ProfitResult{
		Today:       decimal.Zero,
		Month:       decimal.Zero,
		TotalProfit: summary.TotalProfit,
		Cash:        summary.Cash,
	}
	for _, sale := range sales {
		if !sale.Timestamp.Before(dayStart) && sale.Timestamp.Before(dayEnd) {
			report.Today = report.Today.Add(sale.Profit)
		}
		if !sale.Timestamp.Before(monthStart) && sale.Timestamp.Before(monthEnd) {
			report.Month = report.Month.Add(sale.Profit)
		}
	}
	return report, nil
}

// updateSummary applies fn to the stored summary under the summary lock.
func (e *Engine) updateSummary(ctx context.Context, fn func(models.Summary) models.Summary) (models.Summary, error) {
	e.summaryMu.Lock()
	defer e.summaryMu.Unlock()

	current, err := e.store.GetSummary(ctx)
	if err != nil {
		return models.Summary{}, storageError("load summary", err)
	}
	updated := fn(current)
	if err := e.store.SetSummary(ctx, updated); err != nil {
		return models.Summary{}, storageError("update summary", err)
	}
	return updated, nil
}

func (e *Engine) run(operation string, fn func() (models.Result, error)) models.Outcome {
	start := time.Now()
	res, err := fn()
	metrics.OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())

	if err != nil {
		kind := models.KindOf(err)
		metrics.Operations.WithLabelValues(operation, string(kind)).Inc()
		if kind == models.KindStorage {
			e.logger.Error("operation failed", zap.String("operation", operation), zap.Error(err))
		} else {
			e.logger.Debug("operation rejected", zap.String("operation", operation), zap.String("kind", string(kind)), zap.Error(err))
		}
		return models.Failed(err)
	}

	metrics.Operations.WithLabelValues(operation, metrics.ResultOK).Inc()
	return models.Succeeded(res)
}

// parseTrade validates a sell or buy and returns the trimmed item name.
func parseTrade(item, rawQty, rawPrice string) (string, decimal.Decimal, decimal.Decimal, error) {
	name := strings.TrimSpace(item)
	if name == "" {
		return "", decimal.Zero, decimal.Zero, models.NewError(models.KindValidation, "Item name must not be empty.")
	}
	qty, err := parsePositive("quantity", rawQty)
	if err != nil {
		return "", decimal.Zero, decimal.Zero, err
	}
	price, err := parsePositive("price", rawPrice)
	if err != nil {
		return "", decimal.Zero, decimal.Zero, err
	}
	return name, qty, price, nil
}

func storageError(op string, err error) error {
	return models.WrapError(models.KindStorage, op, err)
}
