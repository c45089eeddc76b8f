package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/provenly/commerce/internal/inventory"
	"github.com/provenly/commerce/internal/pricing"
)

type LineInput struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type ResultItem struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Subtotal    float64 `json:"subtotal"`
}

type Result struct {
	OrderID     int64        `json:"order_id"`
	OrderNumber string       `json:"order_number"`
	Status      Status       `json:"status"`
	Items       []ResultItem `json:"items"`
	Subtotal    float64      `json:"subtotal"`
	TaxAmount   float64      `json:"tax_amount"`
	TotalAmount float64      `json:"total_amount"`
	CreatedAt   time.Time    `json:"created_at"`
}

// Service coordinates order placement: per-line product lookup, FIFO
// allocation, pricing, persistence and range-log linking, all inside one
// transaction that either commits everything or nothing.
type Service struct {
	Store  Store
	Pricer pricing.Engine
	Log    *slog.Logger
}

func NewService(store Store, pricer pricing.Engine, log *slog.Logger) *Service {
	return &Service{Store: store, Pricer: pricer, Log: log}
}

func (s *Service) CreateOrder(ctx context.Context, userID int64, lines []LineInput, shippingAddress json.RawMessage) (*Result, error) {
	if len(lines) == 0 {
		return nil, &ValidationError{Msg: "order must contain at least one item"}
	}
	for _, l := range lines {
		if l.Quantity <= 0 {
			return nil, &ValidationError{Msg: fmt.Sprintf("invalid quantity %d for product %d", l.Quantity, l.ProductID)}
		}
	}

	var res *Result
	err := s.Store.InTx(ctx, func(tx Tx) error {
		type pendingLine struct {
			product Product
			qty     int
			alloc   *inventory.Allocation
			sub     decimal.Decimal
		}

		pend := make([]pendingLine, 0, len(lines))
		lineSubs := make([]decimal.Decimal, 0, len(lines))
		for _, line := range lines {
			p, err := tx.Product(ctx, line.ProductID)
			if err != nil {
				return err
			}

			alloc, err := inventory.Allocate(ctx, tx, p.ID, line.Quantity)
			if err != nil {
				var inc *inventory.InconsistencyError
				if errors.As(err, &inc) {
					s.Log.Error("inventory ledger inconsistency",
						"product_id", p.ID,
						"batch_id", inc.BatchID,
						"expected", inc.Expected,
						"found", inc.Found,
					)
				}
				return fmt.Errorf("product %q: %w", p.Title, err)
			}

			sub := s.Pricer.LineSubtotal(p.Price, line.Quantity)
			lineSubs = append(lineSubs, sub)
			pend = append(pend, pendingLine{product: p, qty: line.Quantity, alloc: alloc, sub: sub})
		}

		subtotal, tax, total := s.Pricer.Totals(lineSubs)

		o := &Order{
			UserID:          userID,
			OrderNumber:     NewOrderNumber(),
			Status:          StatusPending,
			Subtotal:        subtotal,
			TaxAmount:       tax,
			TotalAmount:     total,
			ShippingAddress: shippingAddress,
		}
		if err := tx.InsertOrder(ctx, o); err != nil {
			return err
		}

		items := make([]ResultItem, 0, len(pend))
		for _, pl := range pend {
			primary := pl.alloc.PrimaryBatchID
			it := &OrderItem{
				OrderID:   o.ID,
				ProductID: pl.product.ID,
				BatchID:   &primary,
				Quantity:  pl.qty,
				Price:     pl.product.Price,
				Subtotal:  pl.sub,
			}
			if err := tx.InsertItem(ctx, it); err != nil {
				return err
			}

			var logIDs []int64
			for _, claim := range pl.alloc.Claims {
				for _, rl := range claim.Logs {
					logIDs = append(logIDs, rl.ID)
				}
			}
			if err := tx.ClaimLogs(ctx, it.ID, logIDs); err != nil {
				return err
			}

			items = append(items, ResultItem{
				ProductID:   pl.product.ID,
				ProductName: pl.product.Title,
				Quantity:    pl.qty,
				Price:       pl.product.Price.InexactFloat64(),
				Subtotal:    pl.sub.InexactFloat64(),
			})
		}

		res = &Result{
			OrderID:     o.ID,
			OrderNumber: o.OrderNumber,
			Status:      o.Status,
			Items:       items,
			Subtotal:    subtotal.InexactFloat64(),
			TaxAmount:   tax.InexactFloat64(),
			TotalAmount: total.InexactFloat64(),
			CreatedAt:   o.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// GetOrder returns the persisted order, rebuilt from its rows.
func (s *Service) GetOrder(ctx context.Context, userID, orderID int64) (*Result, error) {
	o, items, err := s.Store.OrderForUser(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	out := make([]ResultItem, 0, len(items))
	for _, it := range items {
		out = append(out, ResultItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Price:       it.Price.InexactFloat64(),
			Subtotal:    it.Subtotal.InexactFloat64(),
		})
	}
	return &Result{
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		Status:      o.Status,
		Items:       out,
		Subtotal:    o.Subtotal.InexactFloat64(),
		TaxAmount:   o.TaxAmount.InexactFloat64(),
		TotalAmount: o.TotalAmount.InexactFloat64(),
		CreatedAt:   o.CreatedAt,
	}, nil
}
