package orders

import (
	"errors"
	"fmt"
)

// ErrOrderNotFound covers both a missing order and another user's order;
// callers cannot tell the two apart.
var ErrOrderNotFound = errors.New("order not found")

type ProductNotFoundError struct {
	ID int64
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product with id %d not found", e.ID)
}

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }
