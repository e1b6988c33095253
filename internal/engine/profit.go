package engine

import (
	"sort"

	"gt-analyzer/internal/exchange"
	"gt-analyzer/internal/gamedata"
)

// RecipeProfit computes the profitability of one recipe at the given price
// table and efficiency multiplier (percentage; 100 = baseline, higher runs
// faster). If any contributing price — input or output — is invalid, profit,
// profit/hour and ROI are all reported unavailable, never partially computed.
func RecipeProfit(r *gamedata.Recipe, prices exchange.PriceTable, names *gamedata.Names, efficiency float64) ProfitResult {
	result := ProfitResult{
		RecipeID:             r.ID,
		RecipeName:           names.Recipe(r.ID).En,
		BuildingID:           r.ProducedIn,
		BuildingName:         names.Building(r.ProducedIn).En,
		BuildingNameZh:       names.Building(r.ProducedIn).Zh,
		PriceAvailable:       true,
		UnavailableMaterials: []UnavailableMaterial{},
		InputDetails:         []InputDetail{},
	}

	var inputCost float64
	for _, stack := range r.Inputs {
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
		inputCost += lineCost
		result.InputDetails = append(result.InputDetails, InputDetail{
			MaterialID:     stack.MaterialID,
			MaterialName:   name.En,
			MaterialNameZh: name.Zh,
			Amount:         stack.Amount,
			UnitPrice:      unitPrice,
			PriceAvailable: valid,
			TotalCost:      lineCost,
		})
	}

	outName := names.Material(r.Output.MaterialID)
	outPrice, outValid := prices.UnitPrice(r.Output.MaterialID)
	if !outValid {
		result.PriceAvailable = false
		result.UnavailableMaterials = append(result.UnavailableMaterials, UnavailableMaterial{
			MaterialID:     r.Output.MaterialID,
			MaterialName:   outName.En,
			MaterialNameZh: outName.Zh,
		})
	}
	outputValue := r.Output.Amount * outPrice

	// Efficiency scales production speed: 150 means 1.5x speed, so the
	// effective time is nominal/1.5. A non-positive multiplier leaves the
	// nominal time untouched instead of dividing by zero.
	adjustedMinutes := r.TimeMinutes
	if efficiency > 0 {
		adjustedMinutes = r.TimeMinutes / (efficiency / 100)
	}
	result.TimeMinutes = adjustedMinutes
	result.TimeHours = adjustedMinutes / 60

	result.OutputDetails = OutputDetail{
		MaterialID:     r.Output.MaterialID,
		MaterialName:   outName.En,
		MaterialNameZh: outName.Zh,
		Amount:         r.Output.Amount,
		UnitPrice:      outPrice,
		PriceAvailable: outValid,
	}

	if !result.PriceAvailable {
		return result
	}

	profit := outputValue - inputCost
	result.InputCost = Available(inputCost)
	result.OutputValue = Available(outputValue)
	result.OutputDetails.TotalValue = Available(outputValue)
	result.TotalProfit = Available(profit)
	if result.TimeHours > 0 {
		result.ProfitPerHour = Available(profit / result.TimeHours)
	} else {
		result.ProfitPerHour = Available(0)
	}
	// ROI is meaningless on a free input basket.
	if inputCost > 0 {
		result.ROI = Available(profit / inputCost * 100)
	}
	return result
}

// RecipeProfits computes profitability for a recipe set, optionally filtered
// by producing building, sorted by the requested key with unavailable values
// after all valid ones (valid entries descending).
func RecipeProfits(recipes []gamedata.Recipe, prices exchange.PriceTable, names *gamedata.Names, params ProfitParams) []ProfitResult {
	results := make([]ProfitResult, 0, len(recipes))
	for i := range recipes {
		if params.BuildingID != 0 && recipes[i].ProducedIn != params.BuildingID {
			continue
		}
		results = append(results, RecipeProfit(&recipes[i], prices, names, params.Efficiency))
	}

	key := params.SortBy
	if key == "" {
		key = SortProfitPerHour
	}
	sort.SliceStable(results, func(i, j int) bool {
		return lessDesc(profitMetric(&results[i], key), profitMetric(&results[j], key))
	})
	return results
}

func profitMetric(r *ProfitResult, key string) Metric {
	switch key {
	case SortTotalProfit:
		return r.TotalProfit
	case SortROI:
		return r.ROI
	default:
		return r.ProfitPerHour
	}
}
