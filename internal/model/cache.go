package model

import (
	"encoding/json"
	"time"
)

// CacheEntry is a stored cache value with an absolute expiry.
type CacheEntry struct {
	Key       string
	Value     json.RawMessage
	ExpiresAt time.Time
}

// Expired reports whether the entry is no longer readable at t.
func (e CacheEntry) Expired(t time.Time) bool {
	return !t.Before(e.ExpiresAt)
}
