package engine

import (
	"sort"

	"gt-analyzer/internal/exchange"
	"gt-analyzer/internal/gamedata"
)

// BuildingCost computes the full construction cost breakdown for a building.
// Materials without a valid price contribute 0 to the raw total and flag the
// whole result as price-unavailable; percentage shares are filled in only
// when every contributing price was valid and the total is positive.
// A building with no construction materials costs 0 and is fully available.
func BuildingCost(b *gamedata.Building, prices exchange.PriceTable, names *gamedata.Names) CostResult {
	result := CostResult{
		BuildingID:           b.ID,
		BuildingName:         names.Building(b.ID).En,
		BuildingNameZh:       names.Building(b.ID).Zh,
		PriceAvailable:       true,
		UnavailableMaterials: []UnavailableMaterial{},
		MaterialCosts:        []MaterialCost{},
	}

	for _, stack := range b.ConstructionMaterials {
		name := names.Material(stack.MaterialID)
		unitPrice, valid := prices.UnitPrice(stack.MaterialID)
		if !valid {
			result.PriceAvailable = false
			result.UnavailableMaterials = append(result.UnavailableMaterials, UnavailableMaterial{
				MaterialID:     stack.MaterialID,
				MaterialName:   name.En,
				MaterialNameZh: name.Zh,
			})
		}

		lineCost := stack.Amount * unitPrice
		result.TotalCost += lineCost
		result.MaterialCosts = append(result.MaterialCosts, MaterialCost{
			MaterialID:     stack.MaterialID,
			MaterialName:   name.En,
			MaterialNameZh: name.Zh,
			Amount:         stack.Amount,
			UnitPrice:      unitPrice,
			PriceAvailable: valid,
			TotalCost:      lineCost,
		})
	}

	if result.TotalCost > 0 && result.PriceAvailable {
		for i := range result.MaterialCosts {
			result.MaterialCosts[i].CostPercentage = result.MaterialCosts[i].TotalCost / result.TotalCost * 100
		}
	}
	return result
}

// BuildingCosts computes cost breakdowns for a set of buildings, sorted with
// fully-priced results first, descending by total cost.
func BuildingCosts(buildings []gamedata.Building, prices exchange.PriceTable, names *gamedata.Names) []CostResult {
	results := make([]CostResult, 0, len(buildings))
	for i := range buildings {
		results = append(results, BuildingCost(&buildings[i], prices, names))
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].PriceAvailable != results[j].PriceAvailable {
			return results[i].PriceAvailable
		}
		return results[i].TotalCost > results[j].TotalCost
	})
	return results
}
