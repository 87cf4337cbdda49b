package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"budgetpro/internal/core"
)

// Encode serializes a store for persistence.
func Encode(s core.Store) ([]byte, error) {
	b, err := json.Marshal(s.Normalize())
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return b, nil
}

// Decode parses a persisted store. Empty input and decode failures both
// yield the default store for now; the error is returned only so the caller
// can log it.
func Decode(data []byte, now time.Time) (core.Store, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return core.DefaultStore(now), nil
	}
	var s core.Store
	if err := json.Unmarshal(data, &s); err != nil {
		return core.DefaultStore(now), fmt.Errorf("decode snapshot: %w", err)
	}
	return s.Normalize(), nil
}
