// Package memory provides a map-backed ledger store for tests and local runs.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/mamadbah2/stockbot/internal/domain/models"
)

// Store keeps the whole ledger in process memory.
type Store struct {
	mu        sync.RWMutex
	inventory map[string]models.InventoryItem
	sales     []models.SaleRecord
	purchases []models.PurchaseRecord
	expenses  []models.ExpenseRecord
	summary   models.Summary
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{inventory: make(map[string]models.InventoryItem)}
}

func (s *Store) GetInventoryItem(_ context.Context, name string) (models.InventoryItem, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.inventory[name]
	return item, ok, nil
}

func (s *Store) SetInventoryItem(_ context.Context, item models.InventoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inventory[item.Name] = item
	return nil
}

func (s *Store) ListInventory(_ context.Context) ([]models.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.InventoryItem, 0, len(s.inventory))
	for _, item := range s.inventory {
		out = append(out, item)
	}
	return out, nil
}

func (s *Store) AppendSale(_ context.Context, record models.SaleRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record.ID = uuid.NewString()
	s.sales = append(s.sales, record)
	return nil
}

func (s *Store) AppendPurchase(_ context.Context, record models.PurchaseRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record.ID = uuid.NewString()
	s.purchases = append(s.purchases, record)
	return nil
}

func (s *Store) AppendExpense(_ context.Context, record models.ExpenseRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record.ID = uuid.NewString()
	s.expenses = append(s.expenses, record)
	return nil
}

func (s *Store) ListSales(_ context.Context) ([]models.SaleRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.SaleRecord(nil), s.sales...), nil
}

// Purchases returns a copy of the purchase log.
func (s *Store) Purchases() []models.PurchaseRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.PurchaseRecord(nil), s.purchases...)
}

// Expenses returns a copy of the expense log.
func (s *Store) Expenses() []models.ExpenseRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.ExpenseRecord(nil), s.expenses...)
}

func (s *Store) GetSummary(_ context.Context) (models.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summary, nil
}

func (s *Store) SetSummary(_ context.Context, summary models.Summary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summary = summary
	return nil
}
