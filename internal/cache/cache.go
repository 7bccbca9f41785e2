// Package cache provides the time-boxed claim-result cache: identical
// claim text checked within the TTL reuses the previous aggregated
// verdict instead of re-querying every provider.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/veridict/veridict/internal/model"
)

// Cache defines the interface for the byte-level cache layers
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key from normalized claim text.
func Key(claim string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(claim)), " ")
	hash := sha256.Sum256([]byte(normalized))
	return "veridict:v1:" + hex.EncodeToString(hash[:])
}

// VerdictCache is the typed wrapper used by the pipeline: aggregated
// verdicts in, aggregated verdicts out. Safe for concurrent use (the
// underlying layers are).
type VerdictCache struct {
	store Cache
	ttl   time.Duration
}

// NewVerdictCache wraps a cache layer with the configured TTL.
func NewVerdictCache(store Cache, ttl time.Duration) *VerdictCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &VerdictCache{store: store, ttl: ttl}
}

// Get returns the cached verdict for a claim, if present and fresh.
func (c *VerdictCache) Get(claim string) (model.AggregatedVerdict, bool) {
	data, found := c.store.Get(Key(claim))
	if !found {
		return model.AggregatedVerdict{}, false
	}

	var verdict model.AggregatedVerdict
	if err := json.Unmarshal(data, &verdict); err != nil {
		_ = c.store.Delete(Key(claim))
		return model.AggregatedVerdict{}, false
	}
	return verdict, true
}

// Set stores a verdict for a claim.
func (c *VerdictCache) Set(claim string, verdict model.AggregatedVerdict) {
	data, err := json.Marshal(verdict)
	if err != nil {
		return
	}
	_ = c.store.Set(Key(claim), data, c.ttl)
}
