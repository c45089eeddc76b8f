package orders

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

// Orders are created pending; fulfilment transitions live outside this
// service.
const StatusPending Status = "pending"

// Product is the slice of the catalog this service needs: a priced, titled
// entry to snapshot onto order items.
type Product struct {
	ID    int64
	Title string
	Price decimal.Decimal
}

type Order struct {
	ID              int64
	UserID          int64
	OrderNumber     string
	Status          Status
	Subtotal        decimal.Decimal
	TaxAmount       decimal.Decimal
	TotalAmount     decimal.Decimal
	ShippingAddress json.RawMessage // nullable
	CreatedAt       time.Time
}

// OrderItem snapshots the unit price at order time; later catalog price
// changes never touch it. BatchID records the first batch the line drew
// from; a multi-batch split is fully visible on the claimed range logs.
type OrderItem struct {
	ID        int64
	OrderID   int64
	ProductID int64
	BatchID   *int64
	Quantity  int
	Price     decimal.Decimal
	Subtotal  decimal.Decimal
}
