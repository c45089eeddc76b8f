package inventory

import "time"

// Batch is a dated stock lot for one product. AvailableUnits is only
// mutated inside an order transaction (allocation) or by admin intake.
type Batch struct {
	ID             int64
	ProductID      int64
	TotalUnits     int
	AvailableUnits int
	CreatedAt      time.Time
}

// RangeLog is one row per physical, authenticatable unit of a batch. A nil
// OrderItemID means the unit is unallocated. The count of unallocated logs
// for a batch must always equal the batch's AvailableUnits.
type RangeLog struct {
	ID          int64
	BatchID     int64
	Authcode    string
	Views       int
	OrderItemID *int64
}
