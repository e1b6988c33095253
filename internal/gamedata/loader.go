package gamedata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gt-analyzer/internal/logger"
)

// BackupFile is the flat snapshot file the backup service keeps refreshed.
const BackupFile = "game_data_backup.json"

// Snapshot holds one parsed game-data snapshot plus lookup indexes.
// It is read-only after Load returns.
type Snapshot struct {
	Materials []Material
	Buildings []Building
	Recipes   []Recipe
	Systems   []StarSystem

	MaterialsByID   map[int]*Material
	BuildingsByID   map[int]*Building
	RecipesByID     map[int]*Recipe
	SystemsByID     map[int]*StarSystem
	MaterialsByName map[string]*Material // keyed by English short name

	Names *Names
}

// Load reads the latest game-data snapshot from dataDir.
// It fails with an explicit error when no snapshot file exists — the caller
// must never see partial data.
func Load(dataDir string) (*Snapshot, error) {
	path := filepath.Join(dataDir, BackupFile)
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("game data unavailable: no snapshot at %s", path)
		}
		return nil, fmt.Errorf("read game data snapshot: %w", err)
	}

	snap, err := Parse(raw)
	if err != nil {
		return nil, err
	}

	logger.Section("Game Data Snapshot")
	logger.Stats("Materials", len(snap.Materials))
	logger.Stats("Buildings", len(snap.Buildings))
	logger.Stats("Recipes", len(snap.Recipes))
	logger.Stats("Systems", len(snap.Systems))
	return snap, nil
}

// Parse decodes a raw snapshot payload and builds all indexes.
// Entity lists with malformed shapes decode to empty (see types.go); a
// payload that is not a JSON object at all is rejected.
func Parse(raw []byte) (*Snapshot, error) {
	var payload struct {
		Materials []Material   `json:"materials"`
		Buildings []Building   `json:"buildings"`
		Recipes   []Recipe     `json:"recipes"`
		Systems   []StarSystem `json:"systems"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("parse game data snapshot: %w", err)
	}

	snap := &Snapshot{
		Materials:       payload.Materials,
		Buildings:       payload.Buildings,
		Recipes:         payload.Recipes,
		Systems:         payload.Systems,
		MaterialsByID:   make(map[int]*Material, len(payload.Materials)),
		BuildingsByID:   make(map[int]*Building, len(payload.Buildings)),
		RecipesByID:     make(map[int]*Recipe, len(payload.Recipes)),
		SystemsByID:     make(map[int]*StarSystem, len(payload.Systems)),
		MaterialsByName: make(map[string]*Material, len(payload.Materials)),
	}

	for i := range snap.Materials {
		m := &snap.Materials[i]
		snap.MaterialsByID[m.ID] = m
		if key := m.ShortName; key != "" {
			snap.MaterialsByName[key] = m
		} else if m.Name != "" {
			snap.MaterialsByName[m.Name] = m
		}
	}
	for i := range snap.Buildings {
		snap.BuildingsByID[snap.Buildings[i].ID] = &snap.Buildings[i]
	}
	for i := range snap.Recipes {
		snap.RecipesByID[snap.Recipes[i].ID] = &snap.Recipes[i]
	}
	for i := range snap.Systems {
		snap.SystemsByID[snap.Systems[i].ID] = &snap.Systems[i]
	}

	snap.Names = BuildNames(snap.Materials, snap.Buildings, snap.Recipes)
	return snap, nil
}

// Material returns the material with the given id, or nil.
func (s *Snapshot) Material(id int) *Material { return s.MaterialsByID[id] }

// Building returns the building with the given id, or nil.
func (s *Snapshot) Building(id int) *Building { return s.BuildingsByID[id] }

// Recipe returns the recipe with the given id, or nil.
func (s *Snapshot) Recipe(id int) *Recipe { return s.RecipesByID[id] }

// System returns the star system with the given id, or nil.
func (s *Snapshot) System(id int) *StarSystem { return s.SystemsByID[id] }
