package engine

import (
	"sort"

	"gt-analyzer/internal/exchange"
	"gt-analyzer/internal/gamedata"
)

// Workforce expansion-penalty tuning: above the population threshold, every
// full extra thousand inhabitants inflates consumable usage by 0.1%.
const (
	populationThreshold = 2000
	penaltyPerThousand  = 0.001
)

// consumable is one entry of the fixed per-role upkeep table. Amounts are
// daily usage per 100 workers; essential consumables block a role's cost
// when they cannot be priced, non-essential ones are skipped silently.
type consumable struct {
	name        string
	dailyPer100 float64
	essential   bool
}

type roleProfile struct {
	role        string
	consumables []consumable
}

// workforceProfiles is the static upkeep table, indexed in the snapshot's
// worker-role order [Worker, Technician, Engineer, Scientist].
var workforceProfiles = [4]roleProfile{
	{role: "Worker", consumables: []consumable{
		{"Rations", 24.0, true},
		{"Drinking Water", 32.0, true},
		{"Tools", 12.0, true},
		{"Workwear", 8.0, false},
		{"Ale", 7.2, false},
		{"Pie", 1.6, false},
	}},
	{role: "Technician", consumables: []consumable{
		{"Fine Rations", 24.0, true},
		{"Drinking Water", 48.0, true},
		{"Workwear", 16.0, true},
		{"Coffee", 8.0, false},
		{"Exosuit", 2.4, false},
		{"Pie", 2.4, false},
	}},
	{role: "Engineer", consumables: []consumable{
		{"Fine Rations", 28.0, true},
		{"Vitaqua", 44.0, true},
		{"Advanced Tools", 12.0, true},
		{"Coffee", 8.0, false},
		{"Robot", 0.8, false},
		{"Rejuvaline", 4.0, false},
	}},
	{role: "Scientist", consumables: []consumable{
		{"Gourmet Rations", 28.0, true},
		{"Vitaqua", 44.0, true},
		{"Spectra Modulator", 6.0, true},
		{"Laboratory Suit", 4.0, false},
		{"Nanites", 4.0, false},
		{"Rejuvaline", 4.8, false},
	}},
}

// ExpansionPenalty returns the consumable-usage multiplier for the given
// total population: 1.0 up to 2000, then +0.001 per full 1000 above it.
func ExpansionPenalty(totalPopulation int) float64 {
	if totalPopulation <= populationThreshold {
		return 1.0
	}
	extra := totalPopulation - populationThreshold
	return 1.0 + float64(extra/1000)*penaltyPerThousand
}

// WorkforceCost computes the consumable upkeep of one production cycle for
// the building's workforce. Consumables are resolved against the snapshot's
// name→material index; an essential consumable that cannot be resolved or
// priced marks its role unavailable but leaves the remaining roles intact.
func WorkforceCost(
	b *gamedata.Building,
	r *gamedata.Recipe,
	prices exchange.PriceTable,
	materialsByName map[string]*gamedata.Material,
	totalPopulation int,
) WorkforceResult {
	result := WorkforceResult{
		CostAvailable:        true,
		ExpansionPenalty:     ExpansionPenalty(totalPopulation),
		TotalPopulation:      totalPopulation,
		UnavailableMaterials: []WorkforceGap{},
		Roles:                []RoleCost{},
	}

	cycleDays := r.TimeMinutes / (60 * 24)
	totalCost := 0.0

	for roleIdx, profile := range workforceProfiles {
		headcount := b.WorkersNeeded[roleIdx]
		if headcount == 0 {
			continue
		}

		roleCost := 0.0
		roleAvailable := true
		details := []ConsumableCost{}

		for _, c := range profile.consumables {
			material, ok := materialsByName[c.name]
			if !ok || material == nil {
				if c.essential {
					roleAvailable = false
					result.UnavailableMaterials = append(result.UnavailableMaterials, WorkforceGap{
						MaterialName: c.name,
						Role:         profile.role,
					})
				}
				continue
			}

			unitPrice, valid := prices.UnitPrice(material.ID)
			if !valid {
				if c.essential {
					roleAvailable = false
					result.UnavailableMaterials = append(result.UnavailableMaterials, WorkforceGap{
						MaterialID:   material.ID,
						MaterialName: c.name,
						Role:         profile.role,
					})
				}
				continue
			}

			cycleAmount := c.dailyPer100 / 100 * float64(headcount) * cycleDays * result.ExpansionPenalty
			lineCost := cycleAmount * unitPrice
			roleCost += lineCost
			details = append(details, ConsumableCost{
				MaterialID:   material.ID,
				MaterialName: c.name,
				Essential:    c.essential,
				DailyPer100:  c.dailyPer100,
				CycleAmount:  cycleAmount,
				UnitPrice:    unitPrice,
				TotalCost:    lineCost,
			})
		}

		if !roleAvailable {
			result.CostAvailable = false
		}
		totalCost += roleCost

		entry := RoleCost{
			Role:          profile.role,
			WorkerCount:   headcount,
			CostAvailable: roleAvailable,
			Consumables:   details,
		}
		if roleAvailable {
			entry.TotalCost = Available(roleCost)
		}
		result.Roles = append(result.Roles, entry)
	}

	if result.CostAvailable {
		result.TotalCost = Available(totalCost)
	}
	return result
}

// ComprehensiveProfit folds workforce upkeep into a recipe's profitability.
// Both the recipe's prices and the workforce cost must be available for the
// comprehensive metrics to be reported; otherwise they are unavailable.
func ComprehensiveProfit(
	r *gamedata.Recipe,
	b *gamedata.Building,
	prices exchange.PriceTable,
	materialsByName map[string]*gamedata.Material,
	names *gamedata.Names,
	efficiency float64,
	totalPopulation int,
) ComprehensiveResult {
	base := RecipeProfit(r, prices, names, efficiency)
	workforce := WorkforceCost(b, r, prices, materialsByName, totalPopulation)

	result := ComprehensiveResult{
		ProfitResult:           base,
		WorkforceCost:          workforce.TotalCost,
		WorkforceCostAvailable: workforce.CostAvailable,
		ExpansionPenalty:       workforce.ExpansionPenalty,
		WorkforceDetails:       workforce.Roles,
		UnavailableWorkforce:   workforce.UnavailableMaterials,
	}

	if base.PriceAvailable && workforce.CostAvailable {
		costPerHour := 0.0
		if base.TimeHours > 0 {
			costPerHour = workforce.TotalCost.Value / base.TimeHours
		}
		result.WorkforceCostPerHour = Available(costPerHour)
		result.ComprehensiveProfitPerHour = Available(base.ProfitPerHour.Value - costPerHour)
		result.ComprehensiveTotalProfit = Available(base.TotalProfit.Value - workforce.TotalCost.Value)
	}
	return result
}

// ComprehensiveParams holds the batch comprehensive analysis parameters.
type ComprehensiveParams struct {
	SortBy          string // comprehensiveProfitPerHour | comprehensiveTotalProfit | profitPerHour
	BuildingID      int    // 0 = all buildings
	Efficiency      float64
	TotalPopulation int
}

// ComprehensiveProfits runs the comprehensive analysis across a recipe set.
// Recipes whose producing building is missing from the snapshot are skipped:
// upkeep cannot be computed without the building's workforce numbers.
func ComprehensiveProfits(
	recipes []gamedata.Recipe,
	buildingsByID map[int]*gamedata.Building,
	prices exchange.PriceTable,
	materialsByName map[string]*gamedata.Material,
	names *gamedata.Names,
	params ComprehensiveParams,
) []ComprehensiveResult {
	results := make([]ComprehensiveResult, 0, len(recipes))
	for i := range recipes {
		r := &recipes[i]
		if params.BuildingID != 0 && r.ProducedIn != params.BuildingID {
			continue
		}
		building, ok := buildingsByID[r.ProducedIn]
		if !ok {
			continue
		}
		results = append(results, ComprehensiveProfit(
			r, building, prices, materialsByName, names, params.Efficiency, params.TotalPopulation))
	}

	key := params.SortBy
	if key == "" {
		key = SortComprehensivePerHour
	}
	sort.SliceStable(results, func(i, j int) bool {
		return lessDesc(comprehensiveMetric(&results[i], key), comprehensiveMetric(&results[j], key))
	})
	return results
}

func comprehensiveMetric(r *ComprehensiveResult, key string) Metric {
	switch key {
	case SortComprehensiveTotal:
		return r.ComprehensiveTotalProfit
	case SortProfitPerHour:
		return r.ProfitPerHour
	default:
		return r.ComprehensiveProfitPerHour
	}
}
