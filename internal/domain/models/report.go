package models

import "time"

// DailyReport is the end-of-day bookkeeping snapshot archived to MongoDB.
// Amounts are stored as floats so they stay queryable in the archive.
type DailyReport struct {
	Date        time.Time `bson:"date" json:"date"`
	ProfitToday float64   `bson:"profit_today" json:"profit_today"`
	ProfitMonth float64   `bson:"profit_month" json:"profit_month"`
	TotalProfit float64   `bson:"total_profit" json:"total_profit"`
	Cash        float64   `bson:"cash" json:"cash"`
	Capital     float64   `bson:"capital" json:"capital"`
	StockValue  float64   `bson:"stock_value" json:"stock_value"`
	ItemCount   int       `bson:"item_count" json:"item_count"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}
