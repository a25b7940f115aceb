package accounting

import (
	"context"

	"github.com/mamadbah2/stockbot/internal/domain/models"
)

// Store is the persistence collaborator the engine reads and mutates. Implementations
// assign record IDs; the engine assigns timestamps.
type Store interface {
	// GetInventoryItem reports found=false for an unknown name.
	GetInventoryItem(ctx context.Context, name string) (item models.InventoryItem, found bool, err error)
	SetInventoryItem(ctx context.Context, item models.InventoryItem) error
	ListInventory(ctx context.Context) ([]models.InventoryItem, error)

	AppendSale(ctx context.Context, record models.SaleRecord) error
	AppendPurchase(ctx context.Context, record models.PurchaseRecord) error
	AppendExpense(ctx context.Context, record models.ExpenseRecord) error
	ListSales(ctx context.Context) ([]models.SaleRecord, error)

	// GetSummary returns the zero summary when none has been written yet.
	GetSummary(ctx context.Context) (models.Summary, error)
	SetSummary(ctx context.Context, summary models.Summary) error
}
