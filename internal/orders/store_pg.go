package orders

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/provenly/commerce/internal/inventory"
)

// PGStore is the pgx-backed Store. One order equals one transaction; batch
// row locks taken inside it serialize concurrent allocations per product.
type PGStore struct {
	DB *pgxpool.Pool
}

func NewPGStore(db *pgxpool.Pool) *PGStore { return &PGStore{DB: db} }

func (s *PGStore) InTx(ctx context.Context, fn func(tx Tx) error) error {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(&pgTx{TxLedger: inventory.TxLedger{Tx: tx}}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

type pgTx struct {
	inventory.TxLedger
}

func (t *pgTx) Product(ctx context.Context, id int64) (Product, error) {
	var p Product
	err := t.Tx.QueryRow(ctx, `
		SELECT id, title, price::text
		FROM products
		WHERE id = $1 AND deleted_at IS NULL`, id).Scan(&p.ID, &p.Title, &p.Price)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, &ProductNotFoundError{ID: id}
	}
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (t *pgTx) InsertOrder(ctx context.Context, o *Order) error {
	return t.Tx.QueryRow(ctx, `
		INSERT INTO orders (user_id, order_number, status, subtotal, tax_amount, total_amount, shipping_address)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`,
		o.UserID, o.OrderNumber, string(o.Status), o.Subtotal, o.TaxAmount, o.TotalAmount, o.ShippingAddress,
	).Scan(&o.ID, &o.CreatedAt)
}

func (t *pgTx) InsertItem(ctx context.Context, it *OrderItem) error {
	return t.Tx.QueryRow(ctx, `
		INSERT INTO order_items (order_id, product_id, batch_id, quantity, price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		it.OrderID, it.ProductID, it.BatchID, it.Quantity, it.Price, it.Subtotal,
	).Scan(&it.ID)
}

func (s *PGStore) OrderForUser(ctx context.Context, userID, orderID int64) (*Order, []ItemDetail, error) {
	var (
		o      Order
		status string
	)
	err := s.DB.QueryRow(ctx, `
		SELECT id, user_id, order_number, status, subtotal::text, tax_amount::text, total_amount::text, shipping_address, created_at
		FROM orders
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`, orderID, userID,
	).Scan(&o.ID, &o.UserID, &o.OrderNumber, &status, &o.Subtotal, &o.TaxAmount, &o.TotalAmount, &o.ShippingAddress, &o.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	o.Status = Status(status)

	rows, err := s.DB.Query(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, oi.batch_id, oi.quantity, oi.price::text, oi.subtotal::text,
		       COALESCE(p.title, 'Unknown Product')
		FROM order_items oi
		LEFT JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = $1 AND oi.deleted_at IS NULL
		ORDER BY oi.id`, o.ID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var items []ItemDetail
	for rows.Next() {
		var it ItemDetail
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.BatchID, &it.Quantity, &it.Price, &it.Subtotal, &it.ProductName); err != nil {
			return nil, nil, err
		}
		items = append(items, it)
	}
	return &o, items, rows.Err()
}

func (s *PGStore) Products(ctx context.Context) ([]Product, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT id, title, price::text
		FROM products
		WHERE deleted_at IS NULL
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Title, &p.Price); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
