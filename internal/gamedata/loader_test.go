package gamedata

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleSnapshot = `{
	"materials": [
		{"id": 1, "name": "钢", "sName": "Steel", "type": 1},
		{"id": 2, "name": "Water", "type": 5}
	],
	"buildings": [
		{"id": 10, "name": "Smelter",
		 "constructionMaterials": [{"id": 1, "am": 50}],
		 "workersNeeded": [100, 20]}
	],
	"recipes": [
		{"id": 100, "name": "Smelt Steel", "type": 2, "producedIn": 10,
		 "inputs": [{"id": 2, "amount": 5}],
		 "output": {"id": 1, "am": 10},
		 "timeMinutes": 120}
	],
	"systems": [
		{"id": 7, "name": "Sol", "x": 100, "y": 200,
		 "planets": [{"fert": 1.1, "tier": 2, "mats": [{"id": 1, "ab": 80}]}]}
	]
}`

func TestParse_Sample(t *testing.T) {
	snap, err := Parse([]byte(sampleSnapshot))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if len(snap.Materials) != 2 || len(snap.Buildings) != 1 || len(snap.Recipes) != 1 || len(snap.Systems) != 1 {
		t.Fatalf("counts = %d/%d/%d/%d", len(snap.Materials), len(snap.Buildings), len(snap.Recipes), len(snap.Systems))
	}

	b := snap.Building(10)
	if b == nil {
		t.Fatal("building 10 missing")
	}
	if len(b.ConstructionMaterials) != 1 || b.ConstructionMaterials[0].Amount != 50 {
		t.Errorf("construction materials = %+v", b.ConstructionMaterials)
	}
	// Short workforce arrays zero-pad the remaining roles.
	if b.WorkersNeeded != (Workforce{100, 20, 0, 0}) {
		t.Errorf("workers = %v", b.WorkersNeeded)
	}

	r := snap.Recipe(100)
	if r == nil {
		t.Fatal("recipe 100 missing")
	}
	// "amount" accepted as the long spelling of "am".
	if len(r.Inputs) != 1 || r.Inputs[0].Amount != 5 {
		t.Errorf("inputs = %+v", r.Inputs)
	}
	if r.Output.MaterialID != 1 || r.Output.Amount != 10 {
		t.Errorf("output = %+v", r.Output)
	}

	sys := snap.System(7)
	if sys == nil || len(sys.Planets) != 1 {
		t.Fatalf("system 7 = %+v", sys)
	}
	if sys.Planets[0].Resources[0].Abundance != 80 {
		t.Errorf("resources = %+v", sys.Planets[0].Resources)
	}
}

func TestParse_Indexes(t *testing.T) {
	snap, err := Parse([]byte(sampleSnapshot))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	// Short-name keyed; falls back to localized name when sName is absent.
	if m := snap.MaterialsByName["Steel"]; m == nil || m.ID != 1 {
		t.Errorf("MaterialsByName[Steel] = %+v", m)
	}
	if m := snap.MaterialsByName["Water"]; m == nil || m.ID != 2 {
		t.Errorf("MaterialsByName[Water] = %+v", m)
	}
	if snap.Material(999) != nil {
		t.Error("unknown id should resolve nil")
	}
}

func TestParse_MalformedListsBecomeEmpty(t *testing.T) {
	raw := `{
		"materials": {"not": "a list"},
		"buildings": [{"id": 1, "constructionMaterials": "oops", "workersNeeded": {"bad": true}}],
		"recipes": [{"id": 2, "inputs": 42, "output": {"id": "x"}}],
		"systems": [{"id": 3, "planets": [{"mats": false}]}]
	}`
	snap, err := Parse([]byte(raw))
	if err == nil {
		// materials is an object, which the outer decode rejects
		t.Fatal("expected top-level type error for materials")
	}

	// The tolerant shapes live one level down: lists inside entities.
	raw = `{
		"buildings": [{"id": 1, "constructionMaterials": "oops", "workersNeeded": {"bad": true}}],
		"recipes": [{"id": 2, "inputs": 42}],
		"systems": [{"id": 3, "planets": [{"mats": false}]}]
	}`
	snap, err = Parse([]byte(raw))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	b := snap.Building(1)
	if len(b.ConstructionMaterials) != 0 {
		t.Errorf("materials = %+v, want empty", b.ConstructionMaterials)
	}
	if b.WorkersNeeded != (Workforce{}) {
		t.Errorf("workers = %v, want zeros", b.WorkersNeeded)
	}
	if len(snap.Recipe(2).Inputs) != 0 {
		t.Errorf("inputs = %+v, want empty", snap.Recipe(2).Inputs)
	}
	if len(snap.System(3).Planets[0].Resources) != 0 {
		t.Errorf("resources = %+v, want empty", snap.System(3).Planets[0].Resources)
	}
}

func TestParse_NotJSON(t *testing.T) {
	if _, err := Parse([]byte("not json at all")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(t.TempDir())
	if err == nil {
		t.Fatal("expected unavailable error")
	}
}

func TestLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, BackupFile), []byte(sampleSnapshot), 0o644); err != nil {
		t.Fatal(err)
	}
	snap, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if snap.Names.Material(1).En != "Steel" || snap.Names.Material(1).Zh != "钢" {
		t.Errorf("material name = %+v", snap.Names.Material(1))
	}
}
