package inventory

import "context"

// BatchClaim records how many units one batch contributed to a line and
// which range logs were taken.
type BatchClaim struct {
	BatchID  int64
	Quantity int
	Logs     []RangeLog
}

// Allocation is the outcome of allocating one order line. PrimaryBatchID is
// the first batch drawn from; when a line spans several batches the full
// split lives in Claims.
type Allocation struct {
	PrimaryBatchID int64
	Claims         []BatchClaim
}

func (a *Allocation) Quantity() int {
	n := 0
	for _, c := range a.Claims {
		n += c.Quantity
	}
	return n
}

// Allocate claims qty units of a product from its batches, oldest first.
// On *InsufficientError no batch has been touched; on *InconsistencyError
// the caller must roll back the surrounding transaction.
func Allocate(ctx context.Context, l Ledger, productID int64, qty int) (*Allocation, error) {
	batches, err := l.BatchesForProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	totalAvailable := 0
	for _, b := range batches {
		totalAvailable += b.AvailableUnits
	}
	if totalAvailable < qty {
		return nil, &InsufficientError{ProductID: productID, Requested: qty, Available: totalAvailable}
	}

	alloc := &Allocation{}
	remaining := qty
	for _, b := range batches {
		if remaining <= 0 {
			break
		}
		if b.AvailableUnits <= 0 {
			continue
		}
		take := remaining
		if b.AvailableUnits < take {
			take = b.AvailableUnits
		}

		logs, err := l.UnclaimedLogs(ctx, b.ID, take)
		if err != nil {
			return nil, err
		}
		if len(logs) < take {
			return nil, &InconsistencyError{BatchID: b.ID, Expected: take, Found: len(logs)}
		}

		if err := l.DeductBatch(ctx, b.ID, take); err != nil {
			return nil, err
		}

		if alloc.PrimaryBatchID == 0 {
			alloc.PrimaryBatchID = b.ID
		}
		alloc.Claims = append(alloc.Claims, BatchClaim{BatchID: b.ID, Quantity: take, Logs: logs})
		remaining -= take
	}
	return alloc, nil
}
