package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewOrderNumberFormat(t *testing.T) {
	n := NewOrderNumber()
	assert.Regexp(t, `^ORD-\d{13,}-[0-9a-f]{6}$`, n)
}

func TestNewOrderNumberUnlikelyToCollide(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		n := NewOrderNumber()
		assert.False(t, seen[n], "duplicate order number %s", n)
		seen[n] = true
	}
}
