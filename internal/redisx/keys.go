package redisx

import "time"

const (
	// Dedup for event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"

	// Cached provenance lookup: verify:{authcode}
	KeyVerify = "verify:%s"
)

var (
	TTLDedup  = 48 * time.Hour
	TTLVerify = 5 * time.Minute
)
