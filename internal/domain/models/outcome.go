package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// StorageFailureMessage is the reply given when the backing store cannot be reached.
const StorageFailureMessage = "Something went wrong while accessing the records. Please try again."

// Outcome is the structured result of every engine operation.
type Outcome struct {
	Success bool      `json:"success"`
	Kind    ErrorKind `json:"error_kind,omitempty"`
	Message string    `json:"message"`
	Data    Result    `json:"data,omitempty"`
}

// Result is the typed payload of a successful operation.
type Result interface {
	Message() string
}

// Succeeded wraps a result into a successful outcome.
func Succeeded(res Result) Outcome {
	return Outcome{Success: true, Message: res.Message(), Data: res}
}

// Failed converts err into a failed outcome. Storage failures never leak their cause.
func Failed(err error) Outcome {
	var classified *Error
	if errors.As(err, &classified) && classified.Kind != KindStorage {
		return Outcome{Success: false, Kind: classified.Kind, Message: classified.Message}
	}
	return Outcome{Success: false, Kind: KindStorage, Message: StorageFailureMessage}
}

// SaleResult describes a completed sale.
type SaleResult struct {
	Item      string          `json:"item"`
	Quantity  decimal.Decimal `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Revenue   decimal.Decimal `json:"revenue"`
	Profit    decimal.Decimal `json:"profit"`
	Remaining decimal.Decimal `json:"remaining"`
}

func (r SaleResult) Message() string {
	return fmt.Sprintf("Sold %s %s @ %s. Revenue: %s. Profit: %s. Remaining: %s.",
		FormatAmount(r.Quantity), r.Item, FormatAmount(r.Price),
		FormatAmount(r.Revenue), FormatAmount(r.Profit), FormatAmount(r.Remaining))
}

// PurchaseResult describes a completed purchase.
type PurchaseResult struct {
	Item           string          `json:"item"`
	Quantity       decimal.Decimal `json:"quantity"`
	Price          decimal.Decimal `json:"price"`
	Spent          decimal.Decimal `json:"spent"`
	NewQuantity    decimal.Decimal `json:"new_quantity"`
	NewAverageCost decimal.Decimal `json:"new_average_cost"`
}

func (r PurchaseResult) Message() string {
	return fmt.Sprintf("Bought %s %s @ %s. Spent: %s. New quantity: %s. Average cost: %s.",
		FormatAmount(r.Quantity), r.Item, FormatAmount(r.Price),
		FormatAmount(r.Spent), FormatAmount(r.NewQuantity), FormatAmount(r.NewAverageCost))
}

// ExpenseResult describes a recorded expense.
type ExpenseResult struct {
	Title         string          `json:"title"`
	Amount        decimal.Decimal `json:"amount"`
	RemainingCash decimal.Decimal `json:"remaining_cash"`
}

func (r ExpenseResult) Message() string {
	return fmt.Sprintf("Expense recorded: %s %s. Remaining cash: %s.",
		r.Title, FormatAmount(r.Amount), FormatAmount(r.RemainingCash))
}

// StockItemResult describes the holdings of a single item.
type StockItemResult struct {
	Name        string          `json:"name"`
	Quantity    decimal.Decimal `json:"quantity"`
	AverageCost decimal.Decimal `json:"average_cost"`
	Value       decimal.Decimal `json:"value"`
}

func (r StockItemResult) Message() string {
	return fmt.Sprintf("%s: quantity %s, average cost %s, value %s.",
		r.Name, FormatAmount(r.Quantity), FormatAmount(r.AverageCost), FormatAmount(r.Value))
}

// StockListResult lists every inventory item.
type StockListResult struct {
	Items []InventoryItem `json:"items"`
}

func (r StockListResult) Message() string {
	if len(r.Items) == 0 {
		return "No inventory recorded yet."
	}
	var b strings.Builder
	b.WriteString("Inventory:")
	for _, item := range r.Items {
		fmt.Fprintf(&b, "\n- %s: %s @ %s", item.Name, FormatAmount(item.Quantity), FormatAmount(item.AverageCost))
	}
	return b.String()
}

// ProfitResult reports sale profit for today and the current month alongside the
// cumulative total. Today and Month only count sales; TotalProfit also carries expenses.
type ProfitResult struct {
	Today       decimal.Decimal `json:"today"`
	Month       decimal.Decimal `json:"month"`
	TotalProfit decimal.Decimal `json:"total_profit"`
	Cash        decimal.Decimal `json:"cash"`
}

func (r ProfitResult) Message() string {
	return fmt.Sprintf("Profit today: %s\nProfit this month: %s\nTotal profit: %s\nCash: %s",
		FormatAmount(r.Today), FormatAmount(r.Month), FormatAmount(r.TotalProfit), FormatAmount(r.Cash))
}

// HelpResult carries the help text.
type HelpResult struct {
	Text string `json:"text"`
}

func (r HelpResult) Message() string { return r.Text }

// FormatAmount renders a decimal for chat replies, rounded to two places.
func FormatAmount(d decimal.Decimal) string {
	return d.Round(2).String()
}
