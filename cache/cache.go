// Package cache stores built translation maps keyed by page, locale and
// content-tree hash, so unchanged pages skip the builder on re-sync.
package cache

import (
	"encoding/json"

	"github.com/nordbloc/siteloc"
)

// MapCache is the interface for translation-map caching. Values are the
// JSON serialization of a siteloc.TranslationMap (an ordered pair array).
type MapCache interface {
	// Get retrieves a cached serialized map. Returns empty string and
	// false if not found or expired.
	Get(key string) (string, bool)

	// Set stores a serialized map in the cache.
	Set(key string, value string) error
}

// GetMap retrieves and decodes a cached translation map. A decode failure
// is treated as a miss: the caller rebuilds and overwrites the entry.
func GetMap(c MapCache, key string) (*siteloc.TranslationMap, bool) {
	if c == nil {
		return nil, false
	}
	raw, ok := c.Get(key)
	if !ok {
		return nil, false
	}
	m := siteloc.NewTranslationMap()
	if err := json.Unmarshal([]byte(raw), m); err != nil {
		return nil, false
	}
	return m, true
}

// SetMap encodes and stores a translation map.
func SetMap(c MapCache, key string, m *siteloc.TranslationMap) error {
	if c == nil {
		return nil
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return &siteloc.CacheError{Message: "encoding translation map", Cause: err}
	}
	return c.Set(key, string(raw))
}
