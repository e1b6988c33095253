package atlas

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"gt-analyzer/internal/gamedata"
)

func TestDistance(t *testing.T) {
	if got := Distance(0, 0, 150, 0); math.Abs(got-3) > 1e-9 {
		t.Errorf("Distance = %v, want 3", got)
	}
	if got := Distance(10, 10, 10, 10); got != 0 {
		t.Errorf("Distance = %v, want 0", got)
	}
}

func testSystems() []gamedata.StarSystem {
	return []gamedata.StarSystem{
		{ID: 1, Name: "Alpha", X: 0, Y: 0},
		{ID: 2, Name: "Beta", X: 150, Y: 0},  // 3.00 ly from Alpha
		{ID: 3, Name: "Gamma", X: 0, Y: 199}, // 3.98 ly from Alpha
		{ID: 4, Name: "Delta", X: 500, Y: 0}, // 10 ly out
		{ID: 0, Name: "Broken"},              // zero id skipped
	}
}

func TestGenerate(t *testing.T) {
	table := Generate(testSystems())
	if len(table) != 4 {
		t.Fatalf("got %d entries, want 4 (zero-id skipped)", len(table))
	}

	alpha := table[1]
	if alpha.NeighborCount != 2 || len(alpha.Neighbors) != 2 {
		t.Fatalf("alpha = %+v, want 2 neighbors", alpha)
	}
	for _, n := range alpha.Neighbors {
		switch n.SystemID {
		case 2:
			if n.Distance != 3.0 {
				t.Errorf("beta distance = %v, want 3.0", n.Distance)
			}
		case 3:
			if n.Distance != 3.98 {
				t.Errorf("gamma distance = %v, want 3.98 (2dp)", n.Distance)
			}
		default:
			t.Errorf("unexpected neighbor %+v", n)
		}
	}

	delta := table[4]
	if delta.NeighborCount != 0 || len(delta.Neighbors) != 0 {
		t.Errorf("delta = %+v, want isolated", delta)
	}
}

func TestGenerate_Symmetric(t *testing.T) {
	table := Generate(testSystems())
	for id, entry := range table {
		for _, n := range entry.Neighbors {
			back, ok := table[n.SystemID]
			if !ok {
				t.Fatalf("neighbor %d of %d has no entry", n.SystemID, id)
			}
			found := false
			for _, bn := range back.Neighbors {
				if bn.SystemID == id {
					found = true
				}
			}
			if !found {
				t.Errorf("adjacency not symmetric: %d → %d", id, n.SystemID)
			}
		}
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	table := Generate(testSystems())
	if err := table.Save(dir); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, NeighborsFile)); err != nil {
		t.Fatalf("artifact missing: %v", err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded) != len(table) {
		t.Fatalf("loaded %d entries, want %d", len(loaded), len(table))
	}
	if loaded[1].NeighborCount != 2 || loaded[1].SystemName != "Alpha" {
		t.Errorf("entry 1 = %+v", loaded[1])
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(t.TempDir()); err == nil {
		t.Fatal("expected unavailable error")
	}
}

func TestNeighborIDs(t *testing.T) {
	table := Generate(testSystems())
	ids := table.NeighborIDs(1)
	if len(ids) != 2 {
		t.Fatalf("ids = %v", ids)
	}
	if table.NeighborIDs(4) != nil {
		t.Error("isolated system should yield nil")
	}
	if table.NeighborIDs(999) != nil {
		t.Error("absent system should yield nil")
	}
}
