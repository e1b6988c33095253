package api

import (
	"encoding/json"
	"net/http"
	"time"

	"gt-analyzer/internal/engine"
	"gt-analyzer/internal/gamedata"
)

// --- Health & ops ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	snap, table := s.snapshot()

	result := map[string]interface{}{
		"status":      "ok",
		"data_loaded": snap != nil,
	}
	if snap != nil {
		result["materials"] = len(snap.Materials)
		result["buildings"] = len(snap.Buildings)
		result["recipes"] = len(snap.Recipes)
		result["systems"] = len(snap.Systems)
		result["neighbor_entries"] = len(table)
	}
	if s.budget != nil {
		result["budget"] = map[string]interface{}{
			"used":      s.budget.Usage(),
			"remaining": s.budget.Remaining(),
			"total":     s.budget.Total(),
		}
	}
	result["cache"] = s.store.Stats()
	if s.backup != nil {
		lastRun, _ := s.backup.Status()
		if !lastRun.IsZero() {
			result["last_backup"] = lastRun.UTC().Format(time.RFC3339)
		}
	}
	writeJSON(w, result)
}

func (s *Server) handleCacheClear(w http.ResponseWriter, r *http.Request) {
	s.store.ClearCache()
	writeJSON(w, map[string]string{"status": "cleared"})
}

func (s *Server) handleCacheStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.store.Stats())
}

func (s *Server) handleBudgetStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"used":      s.budget.Usage(),
		"remaining": s.budget.Remaining(),
		"total":     s.budget.Total(),
		"windowSec": int(s.budget.Window().Seconds()),
	})
}

func (s *Server) handleBackupRunOnce(w http.ResponseWriter, r *http.Request) {
	if s.backup == nil {
		writeError(w, 503, "backup service not running")
		return
	}
	report := s.backup.RunOnce()
	writeJSON(w, map[string]interface{}{"report": report})
}

// --- Snapshot entities ---

type materialInfo struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	NameZh   string `json:"nameZh"`
	Type     int    `json:"type"`
	TypeName string `json:"typeName"`
}

func materialView(m *gamedata.Material, names *gamedata.Names) materialInfo {
	name := names.Material(m.ID)
	return materialInfo{
		ID:       m.ID,
		Name:     name.En,
		NameZh:   name.Zh,
		Type:     m.Type,
		TypeName: gamedata.MaterialTypeName(m.Type).En,
	}
}

func (s *Server) handleMaterials(w http.ResponseWriter, r *http.Request) {
	snap := s.requireSnapshot(w)
	if snap == nil {
		return
	}
	out := make([]materialInfo, 0, len(snap.Materials))
	for i := range snap.Materials {
		out = append(out, materialView(&snap.Materials[i], snap.Names))
	}
	cacheFor(w, s.cfg.StaticTTL())
	writeJSON(w, out)
}

func (s *Server) handleMaterialByID(w http.ResponseWriter, r *http.Request) {
	snap := s.requireSnapshot(w)
	if snap == nil {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	m := snap.Material(id)
	if m == nil {
		writeError(w, 404, "material not found")
		return
	}
	cacheFor(w, s.cfg.StaticTTL())
	writeJSON(w, materialView(m, snap.Names))
}

type buildingInfo struct {
	ID                    int                `json:"id"`
	Name                  string             `json:"name"`
	NameZh                string             `json:"nameZh"`
	ConstructionMaterials gamedata.StackList `json:"constructionMaterials"`
	WorkersNeeded         gamedata.Workforce `json:"workersNeeded"`
}

func buildingView(b *gamedata.Building, names *gamedata.Names) buildingInfo {
	name := names.Building(b.ID)
	return buildingInfo{
		ID:                    b.ID,
		Name:                  name.En,
		NameZh:                name.Zh,
		ConstructionMaterials: b.ConstructionMaterials,
		WorkersNeeded:         b.WorkersNeeded,
	}
}

func (s *Server) handleBuildings(w http.ResponseWriter, r *http.Request) {
	snap := s.requireSnapshot(w)
	if snap == nil {
		return
	}
	out := make([]buildingInfo, 0, len(snap.Buildings))
	for i := range snap.Buildings {
		out = append(out, buildingView(&snap.Buildings[i], snap.Names))
	}
	cacheFor(w, s.cfg.StaticTTL())
	writeJSON(w, out)
}

func (s *Server) handleBuildingByID(w http.ResponseWriter, r *http.Request) {
	snap := s.requireSnapshot(w)
	if snap == nil {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	b := snap.Building(id)
	if b == nil {
		writeError(w, 404, "building not found")
		return
	}
	cacheFor(w, s.cfg.StaticTTL())
	writeJSON(w, buildingView(b, snap.Names))
}

func (s *Server) handleRecipes(w http.ResponseWriter, r *http.Request) {
	snap := s.requireSnapshot(w)
	if snap == nil {
		return
	}
	type recipeInfo struct {
		ID          int                `json:"id"`
		Name        string             `json:"name"`
		Type        int                `json:"type"`
		TypeName    string             `json:"typeName"`
		ProducedIn  int                `json:"producedIn"`
		Inputs      gamedata.StackList `json:"inputs"`
		Output      gamedata.ItemStack `json:"output"`
		TimeMinutes float64            `json:"timeMinutes"`
	}
	out := make([]recipeInfo, 0, len(snap.Recipes))
	for i := range snap.Recipes {
		rec := &snap.Recipes[i]
		out = append(out, recipeInfo{
			ID:          rec.ID,
			Name:        snap.Names.Recipe(rec.ID).En,
			Type:        rec.Type,
			TypeName:    gamedata.RecipeTypeName(rec.Type).En,
			ProducedIn:  rec.ProducedIn,
			Inputs:      rec.Inputs,
			Output:      rec.Output,
			TimeMinutes: rec.TimeMinutes,
		})
	}
	cacheFor(w, s.cfg.StaticTTL())
	writeJSON(w, out)
}

func (s *Server) handleSystems(w http.ResponseWriter, r *http.Request) {
	snap := s.requireSnapshot(w)
	if snap == nil {
		return
	}
	type systemInfo struct {
		ID          int     `json:"systemId"`
		Name        string  `json:"systemName"`
		X           float64 `json:"x"`
		Y           float64 `json:"y"`
		PlanetCount int     `json:"planetCount"`
	}
	out := make([]systemInfo, 0, len(snap.Systems))
	for i := range snap.Systems {
		sys := &snap.Systems[i]
		out = append(out, systemInfo{
			ID:          sys.ID,
			Name:        sys.Name,
			X:           sys.X,
			Y:           sys.Y,
			PlanetCount: len(sys.Planets),
		})
	}
	cacheFor(w, s.cfg.StaticTTL())
	writeJSON(w, out)
}

// --- Exchange ---

func (s *Server) handleExchangePrices(w http.ResponseWriter, r *http.Request) {
	snap := s.requireSnapshot(w)
	if snap == nil {
		return
	}
	prices, ok := s.prices(w)
	if !ok {
		return
	}
	cacheFor(w, s.cfg.PriceTTL())

	type quoteInfo struct {
		MaterialID   int     `json:"matId"`
		MaterialName string  `json:"materialName"`
		CurrentPrice float64 `json:"currentPrice"`
	}

	if v := r.URL.Query().Get("mat_id"); v != "" {
		id := queryInt(r, "mat_id", 0)
		q, found := prices[id]
		if !found {
			writeError(w, 404, "no quote for material")
			return
		}
		writeJSON(w, quoteInfo{
			MaterialID:   q.MatID,
			MaterialName: snap.Names.Material(q.MatID).En,
			CurrentPrice: q.CurrentPrice,
		})
		return
	}

	out := make([]quoteInfo, 0, len(prices))
	for _, q := range prices {
		out = append(out, quoteInfo{
			MaterialID:   q.MatID,
			MaterialName: snap.Names.Material(q.MatID).En,
			CurrentPrice: q.CurrentPrice,
		})
	}
	writeJSON(w, out)
}

// --- Calculators ---

func (s *Server) handleBuildingCost(w http.ResponseWriter, r *http.Request) {
	snap := s.requireSnapshot(w)
	if snap == nil {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	b := snap.Building(id)
	if b == nil {
		writeError(w, 404, "building not found")
		return
	}
	prices, ok := s.prices(w)
	if !ok {
		return
	}
	writeJSON(w, engine.BuildingCost(b, prices, snap.Names))
}

func (s *Server) handleBuildingCosts(w http.ResponseWriter, r *http.Request) {
	snap := s.requireSnapshot(w)
	if snap == nil {
		return
	}
	prices, ok := s.prices(w)
	if !ok {
		return
	}

	buildings := snap.Buildings
	if ids := queryIntList(r, "building_ids"); len(ids) > 0 {
		buildings = make([]gamedata.Building, 0, len(ids))
		for _, id := range ids {
			if b := snap.Building(id); b != nil {
				buildings = append(buildings, *b)
			}
		}
	}
	writeJSON(w, engine.BuildingCosts(buildings, prices, snap.Names))
}

func (s *Server) handleRecipeProfit(w http.ResponseWriter, r *http.Request) {
	snap := s.requireSnapshot(w)
	if snap == nil {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	rec := snap.Recipe(id)
	if rec == nil {
		writeError(w, 404, "recipe not found")
		return
	}
	prices, ok := s.prices(w)
	if !ok {
		return
	}
	efficiency := queryFloat(r, "efficiency", 0)
	writeJSON(w, engine.RecipeProfit(rec, prices, snap.Names, efficiency))
}

func (s *Server) handleRecipeProfits(w http.ResponseWriter, r *http.Request) {
	snap := s.requireSnapshot(w)
	if snap == nil {
		return
	}
	prices, ok := s.prices(w)
	if !ok {
		return
	}

	params := engine.ProfitParams{
		SortBy:     r.URL.Query().Get("sort_by"),
		BuildingID: queryInt(r, "building_id", 0),
		Efficiency: queryFloat(r, "efficiency", 0),
	}
	results := engine.RecipeProfits(snap.Recipes, prices, snap.Names, params)
	if limit := queryInt(r, "limit", 0); limit > 0 && limit < len(results) {
		results = results[:limit]
	}
	writeJSON(w, results)
}

// --- Geospatial analyzer ---

// parseMaterialFilters decodes the material_filters query parameter, a JSON
// array like [{"materialId":5,"minAbundance":50}].
func parseMaterialFilters(r *http.Request) ([]engine.MaterialFilter, error) {
	raw := r.URL.Query().Get("material_filters")
	if raw == "" {
		return nil, nil
	}
	var filters []engine.MaterialFilter
	if err := json.Unmarshal([]byte(raw), &filters); err != nil {
		return nil, err
	}
	return filters, nil
}

func (s *Server) handleAnalyzerSystems(w http.ResponseWriter, r *http.Request) {
	snap := s.requireSnapshot(w)
	if snap == nil {
		return
	}
	hubX, hubY := s.hubCoords(r)
	writeJSON(w, engine.AnalyzeResources(snap.Systems, hubX, hubY, snap.Names))
}

func (s *Server) handleBestLocation(w http.ResponseWriter, r *http.Request) {
	snap := s.requireSnapshot(w)
	if snap == nil {
		return
	}
	id, ok := pathID(w, r, "materialID")
	if !ok {
		return
	}
	writeJSON(w, engine.BestLocations(snap.Systems, id, snap.Names))
}

func (s *Server) handleAdvancedSearch(w http.ResponseWriter, r *http.Request) {
	snap := s.requireSnapshot(w)
	if snap == nil {
		return
	}
	filters, err := parseMaterialFilters(r)
	if err != nil {
		writeError(w, 400, "invalid material_filters")
		return
	}
	hubX, hubY := s.hubCoords(r)
	params := engine.SearchParams{
		ExchangeX:       hubX,
		ExchangeY:       hubY,
		MaxDistance:     queryFloat(r, "max_distance", 0),
		MaterialFilters: filters,
		MinFertility:    queryFloat(r, "min_fertility", 0),
	}
	writeJSON(w, engine.AdvancedSearch(snap.Systems, params, snap.Names))
}

func (s *Server) handleSystemGroupSearch(w http.ResponseWriter, r *http.Request) {
	snap, table := s.snapshot()
	if snap == nil {
		writeError(w, 503, "game data not loaded yet")
		return
	}
	if len(table) == 0 {
		writeError(w, 503, "system neighbor table not loaded")
		return
	}
	filters, err := parseMaterialFilters(r)
	if err != nil {
		writeError(w, 400, "invalid material_filters")
		return
	}
	excludedTiers := queryIntList(r, "excluded_planet_tiers")
	hubX, hubY := s.hubCoords(r)
	writeJSON(w, engine.NeighborhoodSearch(snap.Systems, table, filters, excludedTiers, hubX, hubY, snap.Names))
}

// --- Comprehensive ---

func (s *Server) handleComprehensive(w http.ResponseWriter, r *http.Request) {
	snap := s.requireSnapshot(w)
	if snap == nil {
		return
	}
	prices, ok := s.prices(w)
	if !ok {
		return
	}

	params := engine.ComprehensiveParams{
		SortBy:          r.URL.Query().Get("sort_by"),
		BuildingID:      queryInt(r, "building_id", 0),
		Efficiency:      queryFloat(r, "efficiency", 0),
		TotalPopulation: queryInt(r, "total_population", 0),
	}
	results := engine.ComprehensiveProfits(
		snap.Recipes, snap.BuildingsByID, prices, snap.MaterialsByName, snap.Names, params)
	if limit := queryInt(r, "limit", 0); limit > 0 && limit < len(results) {
		results = results[:limit]
	}
	writeJSON(w, results)
}

// --- Constants ---

func (s *Server) handleMaterialTypes(w http.ResponseWriter, r *http.Request) {
	cacheFor(w, s.cfg.StaticTTL())
	writeJSON(w, gamedata.MaterialTypes)
}

func (s *Server) handleRecipeTypes(w http.ResponseWriter, r *http.Request) {
	cacheFor(w, s.cfg.StaticTTL())
	writeJSON(w, gamedata.RecipeTypes)
}

func (s *Server) handleMaterialNames(w http.ResponseWriter, r *http.Request) {
	snap := s.requireSnapshot(w)
	if snap == nil {
		return
	}
	cacheFor(w, s.cfg.StaticTTL())
	writeJSON(w, snap.Names.MaterialNames())
}

func (s *Server) handleBuildingNames(w http.ResponseWriter, r *http.Request) {
	snap := s.requireSnapshot(w)
	if snap == nil {
		return
	}
	cacheFor(w, s.cfg.StaticTTL())
	writeJSON(w, snap.Names.BuildingNames())
}

func (s *Server) handleRecipeNames(w http.ResponseWriter, r *http.Request) {
	snap := s.requireSnapshot(w)
	if snap == nil {
		return
	}
	cacheFor(w, s.cfg.StaticTTL())
	writeJSON(w, snap.Names.RecipeNames())
}
