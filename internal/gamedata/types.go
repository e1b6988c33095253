package gamedata

import "encoding/json"

// ItemStack is a (material, amount) pair as it appears in building
// construction lists, recipe inputs and recipe outputs. Snapshots use the
// short field "am"; older dumps spell it out as "amount" — "am" wins when
// both are present. A malformed entry decodes to the zero stack.
type ItemStack struct {
	MaterialID int
	Amount     float64
}

func (s *ItemStack) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID     int      `json:"id"`
		Am     *float64 `json:"am"`
		Amount *float64 `json:"amount"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		*s = ItemStack{}
		return nil
	}
	s.MaterialID = raw.ID
	switch {
	case raw.Am != nil:
		s.Amount = *raw.Am
	case raw.Amount != nil:
		s.Amount = *raw.Amount
	default:
		s.Amount = 0
	}
	return nil
}

func (s ItemStack) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID int     `json:"id"`
		Am float64 `json:"am"`
	}{s.MaterialID, s.Amount})
}

// StackList tolerates malformed snapshot shapes: any value that is not a
// JSON array decodes to an empty list instead of failing the whole snapshot.
type StackList []ItemStack

func (l *StackList) UnmarshalJSON(data []byte) error {
	var items []ItemStack
	if err := json.Unmarshal(data, &items); err != nil {
		*l = nil
		return nil
	}
	*l = items
	return nil
}

// Workforce holds per-role headcounts in the fixed snapshot order
// [Worker, Technician, Engineer, Scientist]. Shorter arrays are zero-padded,
// longer ones truncated, anything malformed decodes to all zeros.
type Workforce [4]int

// Worker-role indexes into Workforce.
const (
	RoleWorker = iota
	RoleTechnician
	RoleEngineer
	RoleScientist
)

func (w *Workforce) UnmarshalJSON(data []byte) error {
	*w = Workforce{}
	var counts []int
	if err := json.Unmarshal(data, &counts); err != nil {
		return nil
	}
	for i := 0; i < len(*w) && i < len(counts); i++ {
		w[i] = counts[i]
	}
	return nil
}

// Total returns the combined headcount across all roles.
func (w Workforce) Total() int {
	n := 0
	for _, c := range w {
		n += c
	}
	return n
}

// Material is a tradeable game material.
type Material struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`  // localized display name
	ShortName string `json:"sName"` // English name
	Type      int    `json:"type"`  // category code, see MaterialTypes
}

// Building is a constructible production building.
type Building struct {
	ID                    int       `json:"id"`
	Name                  string    `json:"name"`
	ShortName             string    `json:"sName"`
	ConstructionMaterials StackList `json:"constructionMaterials"`
	WorkersNeeded         Workforce `json:"workersNeeded"`
}

// Recipe is a production recipe run inside a building.
type Recipe struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Type        int       `json:"type"` // see RecipeTypes
	ProducedIn  int       `json:"producedIn"`
	Inputs      StackList `json:"inputs"`
	Output      ItemStack `json:"output"`
	TimeMinutes float64   `json:"timeMinutes"`
}

// Resource is a per-planet material abundance entry ("mats" in snapshots).
type Resource struct {
	MaterialID int     `json:"id"`
	Abundance  float64 `json:"ab"`
}

// ResourceList tolerates malformed shapes the same way StackList does.
type ResourceList []Resource

func (l *ResourceList) UnmarshalJSON(data []byte) error {
	var items []Resource
	if err := json.Unmarshal(data, &items); err != nil {
		*l = nil
		return nil
	}
	*l = items
	return nil
}

// Planet belongs to a star system.
type Planet struct {
	Fertility float64      `json:"fert"`
	Tier      int          `json:"tier"`
	Resources ResourceList `json:"mats"`
}

// PlanetList tolerates malformed shapes the same way StackList does.
type PlanetList []Planet

func (l *PlanetList) UnmarshalJSON(data []byte) error {
	var items []Planet
	if err := json.Unmarshal(data, &items); err != nil {
		*l = nil
		return nil
	}
	*l = items
	return nil
}

// StarSystem is a star system with a 2-D map coordinate and its planets.
type StarSystem struct {
	ID      int        `json:"id"`
	Name    string     `json:"name"`
	X       float64    `json:"x"`
	Y       float64    `json:"y"`
	Planets PlanetList `json:"planets"`
}
