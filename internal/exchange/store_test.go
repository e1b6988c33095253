package exchange

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeSnapshot(t *testing.T, dir, raw string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, PricesBackupFile), []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestStore_Prices(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, `[{"matId": 1, "currentPrice": 10}, {"matId": 2, "currentPrice": -1}]`)

	s := NewStore(dir, time.Minute)
	table, err := s.Prices()
	if err != nil {
		t.Fatalf("Prices: %v", err)
	}
	if len(table) != 2 {
		t.Fatalf("got %d quotes", len(table))
	}
	if price, ok := table.UnitPrice(1); !ok || price != 10 {
		t.Errorf("UnitPrice(1) = (%v, %v)", price, ok)
	}
}

func TestStore_MissingSnapshot(t *testing.T) {
	s := NewStore(t.TempDir(), time.Minute)
	if _, err := s.Prices(); err == nil {
		t.Fatal("expected unavailable error, never partial data")
	}
}

func TestStore_CacheServesStaleUntilCleared(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, `[{"matId": 1, "currentPrice": 10}]`)

	s := NewStore(dir, time.Hour)
	if _, err := s.Prices(); err != nil {
		t.Fatalf("Prices: %v", err)
	}

	// Rewrite the snapshot; the cached table must keep serving until cleared.
	writeSnapshot(t, dir, `[{"matId": 1, "currentPrice": 99}]`)
	table, err := s.Prices()
	if err != nil {
		t.Fatal(err)
	}
	if table[1].CurrentPrice != 10 {
		t.Errorf("cache bypassed: price = %v", table[1].CurrentPrice)
	}

	s.ClearCache()
	table, err = s.Prices()
	if err != nil {
		t.Fatal(err)
	}
	if table[1].CurrentPrice != 99 {
		t.Errorf("cache not cleared: price = %v", table[1].CurrentPrice)
	}
}

func TestStore_Quote(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, `[{"matId": 1, "currentPrice": 10}]`)

	s := NewStore(dir, time.Minute)
	q, ok, err := s.Quote(1)
	if err != nil || !ok || q.CurrentPrice != 10 {
		t.Errorf("Quote(1) = (%+v, %v, %v)", q, ok, err)
	}
	if _, ok, _ := s.Quote(99); ok {
		t.Error("Quote(99) should report absent")
	}
}

func TestStore_Stats(t *testing.T) {
	s := NewStore(t.TempDir(), 30*time.Second)
	stats := s.Stats()
	if stats.PriceTTLMs != 30000 {
		t.Errorf("PriceTTLMs = %d", stats.PriceTTLMs)
	}
	if stats.Items != 0 {
		t.Errorf("Items = %d on fresh store", stats.Items)
	}
}
