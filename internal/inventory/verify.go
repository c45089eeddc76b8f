package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrAuthcodeNotFound = errors.New("authcode not found")

// VerifyResult is what a provenance scan of one authcode reveals.
type VerifyResult struct {
	Authcode     string    `json:"authcode"`
	ProductID    int64     `json:"product_id"`
	ProductTitle string    `json:"product_name"`
	BatchID      int64     `json:"batch_id"`
	Views        int       `json:"number_of_views"`
	Claimed      bool      `json:"claimed"`
	BatchedAt    time.Time `json:"batched_at"`
}

// Verifier answers authcode scans outside of any order transaction.
type Verifier struct {
	DB *pgxpool.Pool
}

// Lookup resolves an authcode to its batch and product and bumps the unit's
// view counter.
func (v *Verifier) Lookup(ctx context.Context, authcode string) (*VerifyResult, error) {
	var (
		res         VerifyResult
		orderItemID *int64
	)
	err := v.DB.QueryRow(ctx, `
		UPDATE batch_range_logs rl
		SET number_of_views = rl.number_of_views + 1, updated_at = now()
		FROM batches b, products p
		WHERE rl.authcode = $1 AND rl.deleted_at IS NULL
		  AND b.id = rl.batch_id AND p.id = b.product_id
		RETURNING rl.authcode, p.id, p.title, b.id, rl.number_of_views, rl.order_item_id, b.created_at`,
		authcode,
	).Scan(&res.Authcode, &res.ProductID, &res.ProductTitle, &res.BatchID, &res.Views, &orderItemID, &res.BatchedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAuthcodeNotFound
	}
	if err != nil {
		return nil, err
	}
	res.Claimed = orderItemID != nil
	return &res, nil
}
