package models

import "github.com/shopspring/decimal"

// InventoryItem holds the current stock of one item. Name is case-sensitive.
type InventoryItem struct {
	Name        string          `json:"name"`
	Quantity    decimal.Decimal `json:"quantity"`
	AverageCost decimal.Decimal `json:"average_cost"`
}

// Value is the stock valued at its weighted-average cost.
func (i InventoryItem) Value() decimal.Decimal {
	return i.Quantity.Mul(i.AverageCost)
}

// Summary is the single running aggregate of cash, cumulative profit and capital.
type Summary struct {
	Cash        decimal.Decimal `json:"cash"`
	TotalProfit decimal.Decimal `json:"total_profit"`
	Capital     decimal.Decimal `json:"capital"`
}
