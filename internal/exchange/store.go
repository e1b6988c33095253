package exchange

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// PricesBackupFile is the flat snapshot file the backup service keeps fresh.
const PricesBackupFile = "exchange_prices_backup.json"

const (
	cacheKeyPrices = "exchange:all_prices"
)

// Store serves price snapshots from the local backup file through a TTL
// cache. Concurrent cache misses for the same key are coalesced with
// singleflight so the file is parsed once.
type Store struct {
	dataDir  string
	priceTTL time.Duration
	cache    *gocache.Cache
	group    singleflight.Group
}

// NewStore creates a price store over dataDir with the given price TTL.
func NewStore(dataDir string, priceTTL time.Duration) *Store {
	if priceTTL <= 0 {
		priceTTL = time.Minute
	}
	return &Store{
		dataDir:  dataDir,
		priceTTL: priceTTL,
		cache:    gocache.New(priceTTL, 2*priceTTL),
	}
}

// Prices returns the current price table. It fails with an explicit
// "data unavailable" error when no snapshot exists — never partial data.
func (s *Store) Prices() (PriceTable, error) {
	if v, ok := s.cache.Get(cacheKeyPrices); ok {
		return v.(PriceTable), nil
	}

	v, err, _ := s.group.Do(cacheKeyPrices, func() (interface{}, error) {
		path := filepath.Join(s.dataDir, PricesBackupFile)
		raw, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("price data unavailable: no snapshot at %s", path)
			}
			return nil, fmt.Errorf("read price snapshot: %w", err)
		}
		quotes, err := ParseQuotes(raw)
		if err != nil {
			return nil, fmt.Errorf("parse price snapshot: %w", err)
		}
		table := Flatten(quotes)
		s.cache.Set(cacheKeyPrices, table, s.priceTTL)
		return table, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(PriceTable), nil
}

// Quote returns a single material's quote; ok is false when the snapshot
// has no entry for it.
func (s *Store) Quote(matID int) (Quote, bool, error) {
	table, err := s.Prices()
	if err != nil {
		return Quote{}, false, err
	}
	q, ok := table[matID]
	return q, ok, nil
}

// ClearCache drops all cached entries; the next read re-parses the snapshot.
func (s *Store) ClearCache() {
	s.cache.Flush()
}

// CacheStats describes the cache for the status endpoint.
type CacheStats struct {
	Items      int           `json:"items"`
	PriceTTLMs int64         `json:"priceTtlMs"`
	TTL        time.Duration `json:"-"`
}

// Stats reports current cache occupancy.
func (s *Store) Stats() CacheStats {
	return CacheStats{
		Items:      s.cache.ItemCount(),
		PriceTTLMs: s.priceTTL.Milliseconds(),
		TTL:        s.priceTTL,
	}
}
