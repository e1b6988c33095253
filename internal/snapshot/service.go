// Package snapshot keeps the local flat-file backups of upstream data fresh:
// the full game data payload, the exchange price list, and the exchange
// material details. All reads elsewhere in the application go through these
// files, so the server keeps answering from the last good snapshot when the
// upstream is down.
package snapshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"gt-analyzer/internal/exchange"
	"gt-analyzer/internal/gamedata"
	"gt-analyzer/internal/logger"
)

// DetailsBackupFile holds the full material detail payload (order books and
// trade history per material).
const DetailsBackupFile = "exchange_details_all_backup.json"

// Service periodically refreshes the backup files.
type Service struct {
	client   *exchange.Client
	dataDir  string
	interval time.Duration

	mu       sync.Mutex
	cancel   context.CancelFunc
	done     chan struct{}
	lastRun  time.Time
	lastErrs map[string]string
}

// New creates a backup service writing into dataDir every interval.
func New(client *exchange.Client, dataDir string, interval time.Duration) *Service {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Service{
		client:   client,
		dataDir:  dataDir,
		interval: interval,
	}
}

// Start launches the refresh loop. The first refresh runs immediately so a
// fresh deployment has snapshots before the first tick.
func (s *Service) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		s.runOnce()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.runOnce()
			}
		}
	}()
}

// Stop halts the refresh loop and waits for an in-flight run to finish.
func (s *Service) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (s *Service) runOnce() {
	report := s.RunOnce()
	for target, status := range report {
		if status == "ok" {
			logger.Success("Backup", target+" refreshed")
		} else {
			logger.Warn("Backup", fmt.Sprintf("%s failed: %s", target, status))
		}
	}
}

// RunOnce refreshes all three backup files concurrently and returns a report
// mapping each target to "ok" or its error string. One target failing never
// blocks the others; an existing backup file is left untouched on failure.
func (s *Service) RunOnce() map[string]string {
	type result struct {
		target string
		err    error
	}
	results := make([]result, 3)

	var g errgroup.Group
	g.Go(func() error {
		results[0] = result{"game_data", s.refresh(gamedata.BackupFile, s.client.FetchGameData)}
		return nil
	})
	g.Go(func() error {
		results[1] = result{"exchange_prices", s.refresh(exchange.PricesBackupFile, s.client.FetchAllPrices)}
		return nil
	})
	g.Go(func() error {
		results[2] = result{"exchange_details", s.refresh(DetailsBackupFile, s.client.FetchAllDetails)}
		return nil
	})
	g.Wait()

	report := make(map[string]string, len(results))
	for _, r := range results {
		if r.err != nil {
			report[r.target] = r.err.Error()
		} else {
			report[r.target] = "ok"
		}
	}

	s.mu.Lock()
	s.lastRun = time.Now()
	s.lastErrs = report
	s.mu.Unlock()
	return report
}

func (s *Service) refresh(filename string, fetch func() ([]byte, error)) error {
	raw, err := fetch()
	if err != nil {
		return err
	}
	return atomicWrite(filepath.Join(s.dataDir, filename), raw)
}

// Status reports the last run time and per-target outcome.
func (s *Service) Status() (time.Time, map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	report := make(map[string]string, len(s.lastErrs))
	for k, v := range s.lastErrs {
		report[k] = v
	}
	return s.lastRun, report
}

// atomicWrite writes data via a temp file and rename so readers never observe
// a partially written snapshot.
func atomicWrite(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
