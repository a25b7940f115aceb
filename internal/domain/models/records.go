package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleRecord is the immutable log entry written for each sale.
type SaleRecord struct {
	ID        string          `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	Item      string          `json:"item"`
	Quantity  decimal.Decimal `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Profit    decimal.Decimal `json:"profit"`
}

// PurchaseRecord is the immutable log entry written for each purchase.
type PurchaseRecord struct {
	ID        string          `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	Item      string          `json:"item"`
	Quantity  decimal.Decimal `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// ExpenseRecord captures operating expenses.
type ExpenseRecord struct {
	ID        string          `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	Title     string          `json:"title"`
	Amount    decimal.Decimal `json:"amount"`
}
