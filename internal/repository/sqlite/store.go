package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mamadbah2/stockbot/internal/domain/models"

	_ "modernc.org/sqlite" // SQLite driver
)

// Fixed-width so that text order matches time order.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store implements the ledger on a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at dbPath and applies the schema.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection serializes writers inside the process.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) GetInventoryItem(ctx context.Context, name string) (models.InventoryItem, bool, error) {
	item := models.InventoryItem{Name: name}
	err := s.db.QueryRowContext(ctx,
		`SELECT quantity, average_cost FROM inventory WHERE name = ?`, name).
		Scan(&item.Quantity, &item.AverageCost)
	if errors.Is(err, sql.ErrNoRows) {
		return models.InventoryItem{}, false, nil
	}
	if err != nil {
		return models.InventoryItem{}, false, fmt.Errorf("query inventory item %s: %w", name, err)
	}
	return item, true, nil
}

func (s *Store) SetInventoryItem(ctx context.Context, item models.InventoryItem) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO inventory (name, quantity, average_cost) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET quantity = excluded.quantity, average_cost = excluded.average_cost`,
		item.Name, item.Quantity.String(), item.AverageCost.String())
	if err != nil {
		return fmt.Errorf("upsert inventory item %s: %w", item.Name, err)
	}
	return nil
}

func (s *Store) ListInventory(ctx context.Context) ([]models.InventoryItem, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, quantity, average_cost FROM inventory ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query inventory: %w", err)
	}
	defer rows.Close()

	var items []models.InventoryItem
	for rows.Next() {
		var item models.InventoryItem
		if err := rows.Scan(&item.Name, &item.Quantity, &item.AverageCost); err != nil {
			return nil, fmt.Errorf("scan inventory row: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *Store) AppendSale(ctx context.Context, record models.SaleRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sales (id, created_at, item, quantity, price, profit) VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), formatTimestamp(record.Timestamp), record.Item,
		record.Quantity.String(), record.Price.String(), record.Profit.String())
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

func (s *Store) AppendPurchase(ctx context.Context, record models.PurchaseRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO purchases (id, created_at, item, quantity, price) VALUES (?, ?, ?, ?, ?)`,
		uuid.NewString(), formatTimestamp(record.Timestamp), record.Item,
		record.Quantity.String(), record.Price.String())
	if err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}
	return nil
}

func (s *Store) AppendExpense(ctx context.Context, record models.ExpenseRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO expenses (id, created_at, title, amount) VALUES (?, ?, ?, ?)`,
		uuid.NewString(), formatTimestamp(record.Timestamp), record.Title, record.Amount.String())
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

func (s *Store) ListSales(ctx context.Context) ([]models.SaleRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, item, quantity, price, profit FROM sales ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("query sales: %w", err)
	}
	defer rows.Close()

	var sales []models.SaleRecord
	for rows.Next() {
		var (
			sale      models.SaleRecord
			createdAt string
		)
		if err := rows.Scan(&sale.ID, &createdAt, &sale.Item, &sale.Quantity, &sale.Price, &sale.Profit); err != nil {
			return nil, fmt.Errorf("scan sale row: %w", err)
		}
		if sale.Timestamp, err = time.Parse(timestampLayout, createdAt); err != nil {
			return nil, fmt.Errorf("parse sale timestamp %q: %w", createdAt, err)
		}
		sales = append(sales, sale)
	}
	return sales, rows.Err()
}

func (s *Store) GetSummary(ctx context.Context) (models.Summary, error) {
	var summary models.Summary
	err := s.db.QueryRowContext(ctx, `SELECT cash, total_profit, capital FROM summary WHERE id = 1`).
		Scan(&summary.Cash, &summary.TotalProfit, &summary.Capital)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Summary{Cash: decimal.Zero, TotalProfit: decimal.Zero, Capital: decimal.Zero}, nil
	}
	if err != nil {
		return models.Summary{}, fmt.Errorf("query summary: %w", err)
	}
	return summary, nil
}

func (s *Store) SetSummary(ctx context.Context, summary models.Summary) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO summary (id, cash, total_profit, capital) VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET cash = excluded.cash, total_profit = excluded.total_profit, capital = excluded.capital`,
		summary.Cash.String(), summary.TotalProfit.String(), summary.Capital.String())
	if err != nil {
		return fmt.Errorf("upsert summary: %w", err)
	}
	return nil
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}
