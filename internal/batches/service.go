// Package batches handles administrative stock intake: one batch row plus
// one range log per physical unit, each unit carrying a fresh authcode.
package batches

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidUnits    = errors.New("total_units must be positive")
)

type CreateInput struct {
	ProductID  int64 `json:"product_id"`
	TotalUnits int   `json:"total_units"`
}

type CreateResult struct {
	BatchID    int64 `json:"batch_id"`
	ProductID  int64 `json:"product_id"`
	TotalUnits int   `json:"total_units"`
}

type Service struct {
	DB  *pgxpool.Pool
	Log *slog.Logger
}

// Create inserts the batch and its range logs in one transaction, so the
// accounting identity (available_units == unclaimed logs) holds from birth.
func (s *Service) Create(ctx context.Context, in CreateInput) (*CreateResult, error) {
	if in.TotalUnits <= 0 {
		return nil, ErrInvalidUnits
	}

	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var exists bool
	if err := tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM products WHERE id = $1 AND deleted_at IS NULL)`,
		in.ProductID).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrProductNotFound
	}

	var batchID int64
	if err := tx.QueryRow(ctx, `
		INSERT INTO batches (product_id, total_units, available_units)
		VALUES ($1, $2, $2)
		RETURNING id`, in.ProductID, in.TotalUnits).Scan(&batchID); err != nil {
		return nil, err
	}

	logRows := make([][]any, 0, in.TotalUnits)
	for i := 0; i < in.TotalUnits; i++ {
		logRows = append(logRows, []any{batchID, newAuthcode(), 0})
	}
	n, err := tx.CopyFrom(ctx,
		pgx.Identifier{"batch_range_logs"},
		[]string{"batch_id", "authcode", "number_of_views"},
		pgx.CopyFromRows(logRows),
	)
	if err != nil {
		return nil, err
	}
	if int(n) != in.TotalUnits {
		return nil, fmt.Errorf("batch %d: inserted %d of %d range logs", batchID, n, in.TotalUnits)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	s.Log.Info("batch created", "batch_id", batchID, "product_id", in.ProductID, "units", in.TotalUnits)
	return &CreateResult{BatchID: batchID, ProductID: in.ProductID, TotalUnits: in.TotalUnits}, nil
}

func newAuthcode() string {
	buf := make([]byte, 8)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
