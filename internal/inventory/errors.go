package inventory

import "fmt"

// InsufficientError is the expected business failure: the product simply
// does not have enough stock. User-facing.
type InsufficientError struct {
	ProductID int64
	Requested int
	Available int
}

func (e *InsufficientError) Error() string {
	return fmt.Sprintf("insufficient inventory: %d units available, %d requested", e.Available, e.Requested)
}

// InconsistencyError means a batch's available_units counter disagrees with
// its unallocated range logs. This is data corruption, not a user error; it
// still aborts the order but must be alerted on.
type InconsistencyError struct {
	BatchID  int64
	Expected int
	Found    int
}

func (e *InconsistencyError) Error() string {
	return fmt.Sprintf("batch %d range logs out of sync: expected %d available, found %d", e.BatchID, e.Expected, e.Found)
}
