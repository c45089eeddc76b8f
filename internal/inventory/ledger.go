package inventory

import "context"

// Ledger is the transactional view of batch stock. Implementations must
// serve all three calls from the same transaction that will later persist
// the order, and BatchesForProduct must lock the returned rows so two
// concurrent orders cannot both read the same available_units.
type Ledger interface {
	// BatchesForProduct returns the product's batches oldest-created
	// first; batches created at the same instant are ordered by id.
	BatchesForProduct(ctx context.Context, productID int64) ([]Batch, error)

	// UnclaimedLogs returns up to limit range logs of the batch with no
	// order-item reference, ordered by id.
	UnclaimedLogs(ctx context.Context, batchID int64, limit int) ([]RangeLog, error)

	// DeductBatch decrements the batch's available_units by n.
	DeductBatch(ctx context.Context, batchID int64, n int) error
}
