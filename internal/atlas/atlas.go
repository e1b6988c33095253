// Package atlas holds the precomputed star-system neighborhood table:
// for every system, the systems within a fixed 4-light-year radius.
// The table is generated offline (see Generate) and only ever loaded on the
// request path — neighborhood queries never recompute geometry.
package atlas

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"gt-analyzer/internal/gamedata"
)

// NeighborsFile is the build-time artifact written by Generate.
const NeighborsFile = "system_neighbors.json"

// NeighborRadiusLy is the fixed neighborhood radius in light-years.
const NeighborRadiusLy = 4.0

// LightYearUnits is the map-coordinate scale: 50 units per light-year.
const LightYearUnits = 50.0

// Neighbor is one system within radius of a center system.
type Neighbor struct {
	SystemID   int     `json:"systemId"`
	SystemName string  `json:"systemName"`
	Distance   float64 `json:"distance"` // light-years, rounded to 2 decimals
}

// Entry is the neighborhood of one center system.
type Entry struct {
	SystemID      int        `json:"systemId"`
	SystemName    string     `json:"systemName"`
	X             float64    `json:"x"`
	Y             float64    `json:"y"`
	Neighbors     []Neighbor `json:"neighbors"`
	NeighborCount int        `json:"neighborCount"`
}

// Table maps systemId → neighborhood entry.
type Table map[int]Entry

// Distance returns the map distance between two points in light-years.
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1) / LightYearUnits
}

// Generate computes the neighborhood table for all systems. O(n²) over a few
// thousand systems — fine for an offline batch step, too slow per-request.
func Generate(systems []gamedata.StarSystem) Table {
	table := make(Table, len(systems))
	for _, center := range systems {
		if center.ID == 0 {
			continue
		}
		var neighbors []Neighbor
		for _, other := range systems {
			if other.ID == center.ID {
				continue
			}
			d := Distance(center.X, center.Y, other.X, other.Y)
			if d <= NeighborRadiusLy {
				neighbors = append(neighbors, Neighbor{
					SystemID:   other.ID,
					SystemName: other.Name,
					Distance:   math.Round(d*100) / 100,
				})
			}
		}
		table[center.ID] = Entry{
			SystemID:      center.ID,
			SystemName:    center.Name,
			X:             center.X,
			Y:             center.Y,
			Neighbors:     neighbors,
			NeighborCount: len(neighbors),
		}
	}
	return table
}

// Load reads the neighborhood table artifact from dataDir.
// The file is keyed by stringified system ids.
func Load(dataDir string) (Table, error) {
	path := filepath.Join(dataDir, NeighborsFile)
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("neighborhood table unavailable: no artifact at %s", path)
		}
		return nil, fmt.Errorf("read neighborhood table: %w", err)
	}

	var keyed map[string]Entry
	if err := json.Unmarshal(raw, &keyed); err != nil {
		return nil, fmt.Errorf("parse neighborhood table: %w", err)
	}

	table := make(Table, len(keyed))
	for key, entry := range keyed {
		id, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		table[id] = entry
	}
	return table, nil
}

// Save writes the table artifact to dataDir atomically (tmp + rename).
func (t Table) Save(dataDir string) error {
	keyed := make(map[string]Entry, len(t))
	for id, entry := range t {
		keyed[strconv.Itoa(id)] = entry
	}
	raw, err := json.MarshalIndent(keyed, "", "  ")
	if err != nil {
		return err
	}

	path := filepath.Join(dataDir, NeighborsFile)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// NeighborIDs returns the neighbor system ids for a center, or nil when the
// center is absent from the table.
func (t Table) NeighborIDs(systemID int) []int {
	entry, ok := t[systemID]
	if !ok || len(entry.Neighbors) == 0 {
		return nil
	}
	ids := make([]int, 0, len(entry.Neighbors))
	for _, n := range entry.Neighbors {
		ids = append(ids, n.SystemID)
	}
	return ids
}
