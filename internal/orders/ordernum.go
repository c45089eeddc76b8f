package orders

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// NewOrderNumber builds an ORD-<unix millis>-<6 hex chars> number. The
// timestamp plus random suffix makes collisions negligible; callers must
// treat the value as opaque and not assume monotonicity.
func NewOrderNumber() string {
	buf := make([]byte, 3)
	_, _ = rand.Read(buf)
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), hex.EncodeToString(buf))
}
