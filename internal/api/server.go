// Package api exposes the analysis engine over HTTP. All endpoints answer
// from the local snapshot files; nothing on the request path talks to the
// upstream game API.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"gt-analyzer/internal/atlas"
	"gt-analyzer/internal/config"
	"gt-analyzer/internal/exchange"
	"gt-analyzer/internal/gamedata"
	"gt-analyzer/internal/snapshot"
)

// Server is the HTTP API server that connects the snapshot data, the price
// store, and the analysis engine.
type Server struct {
	cfg    *config.Config
	store  *exchange.Store
	budget *exchange.Budget
	backup *snapshot.Service

	mu    sync.RWMutex
	snap  *gamedata.Snapshot
	atlas atlas.Table
}

// NewServer creates a Server with the given config, price store, budget and
// backup service. Snapshot data arrives later via SetSnapshot.
func NewServer(cfg *config.Config, store *exchange.Store, budget *exchange.Budget, backup *snapshot.Service) *Server {
	return &Server{
		cfg:    cfg,
		store:  store,
		budget: budget,
		backup: backup,
	}
}

// SetSnapshot is called when game data (and the adjacency table) finishes
// loading. It may be called again to swap in a fresher snapshot.
func (s *Server) SetSnapshot(snap *gamedata.Snapshot, table atlas.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snap
	s.atlas = table
}

// snapshot returns the current game data, or nil before the first load.
func (s *Server) snapshot() (*gamedata.Snapshot, atlas.Table) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap, s.atlas
}

// requireSnapshot writes a 503 and returns nil when game data is not loaded.
func (s *Server) requireSnapshot(w http.ResponseWriter) *gamedata.Snapshot {
	snap, _ := s.snapshot()
	if snap == nil {
		writeError(w, 503, "game data not loaded yet")
	}
	return snap
}

// prices loads the current price table, writing a 503 on failure.
func (s *Server) prices(w http.ResponseWriter) (exchange.PriceTable, bool) {
	table, err := s.store.Prices()
	if err != nil {
		writeError(w, 503, err.Error())
		return nil, false
	}
	return table, true
}

// Handler returns the HTTP handler with all API routes and CORS middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	// Snapshot entities
	mux.HandleFunc("GET /api/materials", s.handleMaterials)
	mux.HandleFunc("GET /api/materials/{id}", s.handleMaterialByID)
	mux.HandleFunc("GET /api/buildings", s.handleBuildings)
	mux.HandleFunc("GET /api/buildings/{id}", s.handleBuildingByID)
	mux.HandleFunc("GET /api/recipes", s.handleRecipes)
	mux.HandleFunc("GET /api/systems", s.handleSystems)
	// Exchange
	mux.HandleFunc("GET /api/exchange/prices", s.handleExchangePrices)
	// Calculators
	mux.HandleFunc("GET /api/calculator/building-cost/{id}", s.handleBuildingCost)
	mux.HandleFunc("GET /api/calculator/building-costs", s.handleBuildingCosts)
	mux.HandleFunc("GET /api/calculator/recipe-profit/{id}", s.handleRecipeProfit)
	mux.HandleFunc("GET /api/calculator/recipe-profits", s.handleRecipeProfits)
	// Geospatial analyzer
	mux.HandleFunc("GET /api/analyzer/systems", s.handleAnalyzerSystems)
	mux.HandleFunc("GET /api/analyzer/best-location/{materialID}", s.handleBestLocation)
	mux.HandleFunc("GET /api/analyzer/advanced-search", s.handleAdvancedSearch)
	mux.HandleFunc("GET /api/analyzer/system-group-search", s.handleSystemGroupSearch)
	// Comprehensive
	mux.HandleFunc("GET /api/comprehensive/recipe-analysis", s.handleComprehensive)
	// Constants
	mux.HandleFunc("GET /api/constants/material-types", s.handleMaterialTypes)
	mux.HandleFunc("GET /api/constants/recipe-types", s.handleRecipeTypes)
	mux.HandleFunc("GET /api/constants/material-names", s.handleMaterialNames)
	mux.HandleFunc("GET /api/constants/building-names", s.handleBuildingNames)
	mux.HandleFunc("GET /api/constants/recipe-names", s.handleRecipeNames)
	// Ops
	mux.HandleFunc("POST /api/cache/clear", s.handleCacheClear)
	mux.HandleFunc("GET /api/cache/stats", s.handleCacheStats)
	mux.HandleFunc("GET /api/budget/status", s.handleBudgetStatus)
	mux.HandleFunc("POST /api/admin/backup/run-once", s.handleBackupRunOnce)
	return corsMiddleware(mux, s.cfg.CORSOrigins)
}

func corsMiddleware(next http.Handler, origins []string) http.Handler {
	allowed := make(map[string]bool, len(origins))
	wildcard := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			wildcard = true
		}
		allowed[o] = true
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case wildcard:
			w.Header().Set("Access-Control-Allow-Origin", "*")
		case allowed[r.Header.Get("Origin")]:
			w.Header().Set("Access-Control-Allow-Origin", r.Header.Get("Origin"))
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(204)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// cacheFor advertises how long a response may be reused downstream. Static
// snapshot data gets the long TTL, price-derived responses the short one.
func cacheFor(w http.ResponseWriter, ttl time.Duration) {
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(ttl.Seconds())))
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// pathID parses the named integer path segment, writing a 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(r.PathValue(name))
	if err != nil {
		writeError(w, 400, "invalid "+name)
		return 0, false
	}
	return id, true
}

func queryFloat(r *http.Request, key string, fallback float64) float64 {
	if v := r.URL.Query().Get(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func queryInt(r *http.Request, key string, fallback int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// queryIntList parses a comma-separated integer list; malformed entries are
// skipped.
func queryIntList(r *http.Request, key string) []int {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return nil
	}
	var out []int
	for _, part := range strings.Split(v, ",") {
		if n, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
			out = append(out, n)
		}
	}
	return out
}

// hubCoords resolves the distance reference point: explicit hub_x/hub_y
// query parameters, defaulting to the configured exchange hub.
func (s *Server) hubCoords(r *http.Request) (float64, float64) {
	return queryFloat(r, "hub_x", s.cfg.ExchangeX), queryFloat(r, "hub_y", s.cfg.ExchangeY)
}
