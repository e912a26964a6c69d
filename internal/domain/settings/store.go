package settings

import (
	"context"
	"strconv"
)

// Store is the generic string key-value configuration table shared with the
// rest of the ERP (system_config). The notification ledger, the monthly
// quota counter and the daily run marker all live here.
type Store interface {
	// Get returns the stored value for key, or def when the key is absent.
	Get(ctx context.Context, key, def string) (string, error)
	// Set upserts the value for key.
	Set(ctx context.Context, key, value string) error
}

// GetInt reads key as an integer, falling back to def when the key is
// absent, unreadable or not numeric. Config reads degrade to defaults
// rather than failing the caller.
func GetInt(ctx context.Context, s Store, key string, def int) int {
	raw, err := s.Get(ctx, key, strconv.Itoa(def))
	if err != nil {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
