package gamedata

import "fmt"

// Name is a bilingual display name.
type Name struct {
	En string `json:"en"`
	Zh string `json:"zh"`
}

// MaterialTypes maps material category codes to display names.
var MaterialTypes = map[int]Name{
	1:  {En: "Metals", Zh: "金属"},
	2:  {En: "Construction Materials", Zh: "建筑材料"},
	3:  {En: "Agricultural Products", Zh: "农产品"},
	4:  {En: "Minerals", Zh: "矿物"},
	5:  {En: "Gases and Liquids", Zh: "气体和液体"},
	6:  {En: "Materials", Zh: "材料"},
	7:  {En: "Consumables", Zh: "消耗品"},
	8:  {En: "Plastics", Zh: "塑料"},
	9:  {En: "Chemicals", Zh: "化学品"},
	10: {En: "Machinery", Zh: "机械"},
	11: {En: "Electronics", Zh: "电子产品"},
	12: {En: "Science", Zh: "科研"},
	13: {En: "Ship Parts", Zh: "飞船部件"},
}

// RecipeTypes maps recipe category codes to display names.
var RecipeTypes = map[int]Name{
	1: {En: "Extraction", Zh: "提取"},
	2: {En: "Production", Zh: "生产"},
	3: {En: "Farming", Zh: "农业"},
}

// MaterialTypeName resolves a material category code with a deterministic fallback.
func MaterialTypeName(typeID int) Name {
	if n, ok := MaterialTypes[typeID]; ok {
		return n
	}
	unknown := fmt.Sprintf("Unknown Type %d", typeID)
	return Name{En: unknown, Zh: unknown}
}

// RecipeTypeName resolves a recipe category code with a deterministic fallback.
func RecipeTypeName(typeID int) Name {
	if n, ok := RecipeTypes[typeID]; ok {
		return n
	}
	unknown := fmt.Sprintf("Unknown Type %d", typeID)
	return Name{En: unknown, Zh: unknown}
}

// Names is an immutable id→display-name lookup built once from a snapshot.
// It is constructed fully before being shared, so concurrent readers need no
// locking; resolving an unknown id yields a deterministic placeholder.
type Names struct {
	materials map[int]Name
	buildings map[int]Name
	recipes   map[int]Name
}

// BuildNames constructs the lookup from raw snapshot entity lists.
// The English material name prefers the short name; buildings and recipes
// carry a single name in game data, used for both languages.
func BuildNames(materials []Material, buildings []Building, recipes []Recipe) *Names {
	n := &Names{
		materials: make(map[int]Name, len(materials)),
		buildings: make(map[int]Name, len(buildings)),
		recipes:   make(map[int]Name, len(recipes)),
	}
	for _, m := range materials {
		if m.ID == 0 {
			continue
		}
		en := m.ShortName
		if en == "" {
			en = m.Name
		}
		zh := m.Name
		if zh == "" {
			zh = en
		}
		n.materials[m.ID] = Name{En: en, Zh: zh}
	}
	for _, b := range buildings {
		if b.ID == 0 {
			continue
		}
		n.buildings[b.ID] = Name{En: b.Name, Zh: b.Name}
	}
	for _, r := range recipes {
		if r.ID == 0 {
			continue
		}
		n.recipes[r.ID] = Name{En: r.Name, Zh: r.Name}
	}
	return n
}

func fallback(kind string, id int) Name {
	s := fmt.Sprintf("%s %d", kind, id)
	return Name{En: s, Zh: s}
}

// Material resolves a material name. Safe on a nil receiver.
func (n *Names) Material(id int) Name {
	if n != nil {
		if name, ok := n.materials[id]; ok {
			return name
		}
	}
	return fallback("Material", id)
}

// Building resolves a building name. Safe on a nil receiver.
func (n *Names) Building(id int) Name {
	if n != nil {
		if name, ok := n.buildings[id]; ok {
			return name
		}
	}
	return fallback("Building", id)
}

// Recipe resolves a recipe name. Safe on a nil receiver.
func (n *Names) Recipe(id int) Name {
	if n != nil {
		if name, ok := n.recipes[id]; ok {
			return name
		}
	}
	return fallback("Recipe", id)
}

// MaterialNames returns a copy of the full material name table.
func (n *Names) MaterialNames() map[int]Name { return copyNames(n.materials) }

// BuildingNames returns a copy of the full building name table.
func (n *Names) BuildingNames() map[int]Name { return copyNames(n.buildings) }

// RecipeNames returns a copy of the full recipe name table.
func (n *Names) RecipeNames() map[int]Name { return copyNames(n.recipes) }

func copyNames(src map[int]Name) map[int]Name {
	out := make(map[int]Name, len(src))
	for id, name := range src {
		out[id] = name
	}
	return out
}
