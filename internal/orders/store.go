package orders

import (
	"context"

	"github.com/provenly/commerce/internal/inventory"
)

// Tx is everything the coordinator may do inside one order transaction:
// locked ledger reads and deductions, product lookups, and the order writes.
// Every call sees and mutates the same isolated snapshot; nothing persists
// unless the transaction commits.
type Tx interface {
	inventory.Ledger

	// Product returns the catalog entry or *ProductNotFoundError.
	Product(ctx context.Context, id int64) (Product, error)

	// InsertOrder persists the order and fills ID and CreatedAt.
	InsertOrder(ctx context.Context, o *Order) error

	// InsertItem persists one order item and fills ID.
	InsertItem(ctx context.Context, it *OrderItem) error

	// ClaimLogs points the given range logs at the order item, finalizing
	// the allocation.
	ClaimLogs(ctx context.Context, orderItemID int64, logIDs []int64) error
}

// ItemDetail is an order item joined with its product title for responses.
type ItemDetail struct {
	OrderItem
	ProductName string
}

type Store interface {
	// InTx runs fn inside one transaction, committing when fn returns nil
	// and rolling back every write otherwise.
	InTx(ctx context.Context, fn func(tx Tx) error) error

	// OrderForUser loads an order with its items, scoped to the owning
	// user. Returns ErrOrderNotFound for both absence and foreign orders.
	OrderForUser(ctx context.Context, userID, orderID int64) (*Order, []ItemDetail, error)

	// Products lists the catalog.
	Products(ctx context.Context) ([]Product, error)
}
