package inventory

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// TxLedger serves the Ledger contract from one open pgx transaction.
// BatchesForProduct takes FOR UPDATE locks so concurrent orders for the same
// product serialize on the batch rows.
type TxLedger struct {
	Tx pgx.Tx
}

func (l *TxLedger) BatchesForProduct(ctx context.Context, productID int64) ([]Batch, error) {
	rows, err := l.Tx.Query(ctx, `
		SELECT id, product_id, total_units, available_units, created_at
		FROM batches
		WHERE product_id = $1 AND deleted_at IS NULL
		ORDER BY created_at, id
		FOR UPDATE`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Batch
	for rows.Next() {
		var b Batch
		if err := rows.Scan(&b.ID, &b.ProductID, &b.TotalUnits, &b.AvailableUnits, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (l *TxLedger) UnclaimedLogs(ctx context.Context, batchID int64, limit int) ([]RangeLog, error) {
	rows, err := l.Tx.Query(ctx, `
		SELECT id, batch_id, authcode, number_of_views, order_item_id
		FROM batch_range_logs
		WHERE batch_id = $1 AND order_item_id IS NULL AND deleted_at IS NULL
		ORDER BY id
		LIMIT $2`, batchID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RangeLog
	for rows.Next() {
		var rl RangeLog
		if err := rows.Scan(&rl.ID, &rl.BatchID, &rl.Authcode, &rl.Views, &rl.OrderItemID); err != nil {
			return nil, err
		}
		out = append(out, rl)
	}
	return out, rows.Err()
}

func (l *TxLedger) DeductBatch(ctx context.Context, batchID int64, n int) error {
	ct, err := l.Tx.Exec(ctx, `
		UPDATE batches
		SET available_units = available_units - $2, updated_at = now()
		WHERE id = $1 AND available_units >= $2`, batchID, n)
	if err != nil {
		return err
	}
	if ct.RowsAffected() != 1 {
		// available_units would have gone negative; the FOR UPDATE read
		// should make this impossible
		return fmt.Errorf("batch %d: deduct of %d units lost to concurrent update", batchID, n)
	}
	return nil
}

// ClaimLogs finalizes an allocation by pointing the claimed range logs at
// the persisted order item.
func (l *TxLedger) ClaimLogs(ctx context.Context, orderItemID int64, logIDs []int64) error {
	ct, err := l.Tx.Exec(ctx, `
		UPDATE batch_range_logs
		SET order_item_id = $1, updated_at = now()
		WHERE id = ANY($2) AND order_item_id IS NULL`, orderItemID, logIDs)
	if err != nil {
		return err
	}
	if int(ct.RowsAffected()) != len(logIDs) {
		return fmt.Errorf("order item %d: claimed %d of %d range logs", orderItemID, ct.RowsAffected(), len(logIDs))
	}
	return nil
}
