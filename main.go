package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"gt-analyzer/internal/api"
	"gt-analyzer/internal/atlas"
	"gt-analyzer/internal/config"
	"gt-analyzer/internal/exchange"
	"gt-analyzer/internal/gamedata"
	"gt-analyzer/internal/logger"
	"gt-analyzer/internal/snapshot"
)

var version = "dev"

func main() {
	port := flag.Int("port", 0, "HTTP server port (overrides config)")
	dataDir := flag.String("data", "", "data directory (overrides config)")
	configPath := flag.String("config", "config.yaml", "config file path")
	genNeighbors := flag.Bool("gen-neighbors", false, "regenerate the system neighbor table and exit")
	flag.Parse()

	godotenv.Load()
	logger.Banner(version)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("Config", err.Error())
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Port = *port
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	os.MkdirAll(cfg.DataDir, 0o755)

	if *genNeighbors {
		if err := generateNeighbors(cfg.DataDir); err != nil {
			logger.Error("Atlas", err.Error())
			os.Exit(1)
		}
		return
	}

	budget := exchange.NewBudget(cfg.BudgetUnits, cfg.BudgetWindow())
	client := exchange.NewClient(cfg.GameDataURL, cfg.ExchangeBaseURL, budget)
	store := exchange.NewStore(cfg.DataDir, cfg.PriceTTL())
	backup := snapshot.New(client, cfg.DataDir, cfg.BackupInterval())
	backup.Start()
	defer backup.Stop()

	srv := api.NewServer(cfg, store, budget, backup)

	// Load game data in background so the server is reachable immediately;
	// data endpoints answer 503 until the snapshot is in.
	go func() {
		snap, err := gamedata.Load(cfg.DataDir)
		if err != nil {
			logger.Warn("GameData", err.Error())
			return
		}
		table, err := atlas.Load(cfg.DataDir)
		if err != nil {
			logger.Warn("Atlas", err.Error())
		}
		srv.SetSnapshot(snap, table)
		logger.Success("GameData", "Analyzer ready")
	}()

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Server(addr)
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		logger.Error("Server", fmt.Sprintf("Failed: %v", err))
		os.Exit(1)
	}
}

// generateNeighbors is the offline build step: it recomputes the per-system
// neighbor table from the current game-data snapshot and writes it next to
// the other snapshot files.
func generateNeighbors(dataDir string) error {
	snap, err := gamedata.Load(dataDir)
	if err != nil {
		return err
	}
	table := atlas.Generate(snap.Systems)
	if err := table.Save(dataDir); err != nil {
		return err
	}
	logger.Success("Atlas", fmt.Sprintf("Wrote %d system entries to %s", len(table), atlas.NeighborsFile))
	return nil
}
