// Package engine holds the pure analysis calculators: construction cost,
// recipe profitability, geospatial resource search, and workforce-adjusted
// net profit. Every function is a side-effect-free transformation over its
// inputs and is safe to call concurrently.
package engine

// UnavailableMaterial identifies a material whose price (or identity) could
// not be resolved during a computation.
type UnavailableMaterial struct {
	MaterialID     int    `json:"materialId,omitempty"`
	MaterialName   string `json:"materialName"`
	MaterialNameZh string `json:"materialNameZh,omitempty"`
}

// MaterialCost is one line item of a building cost breakdown.
type MaterialCost struct {
	MaterialID     int     `json:"materialId"`
	MaterialName   string  `json:"materialName"`
	MaterialNameZh string  `json:"materialNameZh"`
	Amount         float64 `json:"amount"`
	UnitPrice      float64 `json:"unitPrice"`
	PriceAvailable bool    `json:"priceAvailable"`
	TotalCost      float64 `json:"totalCost"`
	CostPercentage float64 `json:"costPercentage"`
}

// CostResult is the full construction cost breakdown for one building.
// TotalCost is a raw sum in which unavailable prices contribute 0; when
// PriceAvailable is false the total and all percentages are not meaningful.
type CostResult struct {
	BuildingID           int                   `json:"buildingId"`
	BuildingName         string                `json:"buildingName"`
	BuildingNameZh       string                `json:"buildingNameZh"`
	TotalCost            float64               `json:"totalCost"`
	PriceAvailable       bool                  `json:"priceAvailable"`
	UnavailableMaterials []UnavailableMaterial `json:"unavailableMaterials"`
	MaterialCosts        []MaterialCost        `json:"materialCosts"`
}

// InputDetail is one line item of a recipe's input cost breakdown.
type InputDetail struct {
	MaterialID     int     `json:"materialId"`
	MaterialName   string  `json:"materialName"`
	MaterialNameZh string  `json:"materialNameZh"`
	Amount         float64 `json:"amount"`
	UnitPrice      float64 `json:"unitPrice"`
	PriceAvailable bool    `json:"priceAvailable"`
	TotalCost      float64 `json:"totalCost"`
}

// OutputDetail describes a recipe's single output line.
type OutputDetail struct {
	MaterialID     int     `json:"materialId"`
	MaterialName   string  `json:"materialName"`
	MaterialNameZh string  `json:"materialNameZh"`
	Amount         float64 `json:"amount"`
	UnitPrice      float64 `json:"unitPrice"`
	PriceAvailable bool    `json:"priceAvailable"`
	TotalValue     Metric  `json:"totalValue"`
}

// ProfitResult is the profitability analysis of one recipe.
// TimeMinutes/TimeHours are the efficiency-adjusted production time.
type ProfitResult struct {
	RecipeID             int                   `json:"recipeId"`
	RecipeName           string                `json:"recipeName"`
	BuildingID           int                   `json:"buildingId"`
	BuildingName         string                `json:"buildingName"`
	BuildingNameZh       string                `json:"buildingNameZh"`
	InputCost            Metric                `json:"inputCost"`
	OutputValue          Metric                `json:"outputValue"`
	TotalProfit          Metric                `json:"totalProfit"`
	ProfitPerHour        Metric                `json:"profitPerHour"`
	ROI                  Metric                `json:"roi"`
	TimeMinutes          float64               `json:"timeMinutes"`
	TimeHours            float64               `json:"timeHours"`
	PriceAvailable       bool                  `json:"priceAvailable"`
	UnavailableMaterials []UnavailableMaterial `json:"unavailableMaterials"`
	InputDetails         []InputDetail         `json:"inputDetails"`
	OutputDetails        OutputDetail          `json:"outputDetails"`
}

// Profit sort keys for batch computation.
const (
	SortTotalProfit   = "totalProfit"
	SortProfitPerHour = "profitPerHour"
	SortROI           = "roi"
)

// ProfitParams holds the batch profit computation parameters.
type ProfitParams struct {
	SortBy     string  // one of the Sort* keys; defaults to SortProfitPerHour
	BuildingID int     // 0 = all buildings
	Efficiency float64 // percentage, 100 = baseline; <=0 treated as 100
}

// ResourceSummary aggregates one material's presence across planets.
type ResourceSummary struct {
	MaterialID     int     `json:"materialId"`
	MaterialName   string  `json:"materialName"`
	MaterialNameZh string  `json:"materialNameZh"`
	TotalAbundance float64 `json:"totalAbundance"`
	PlanetCount    int     `json:"planetCount"`
	MaxAbundance   float64 `json:"maxAbundance"`
}

// SystemResources is the per-system resource aggregation with its distance
// to the exchange hub.
type SystemResources struct {
	SystemID           int               `json:"systemId"`
	SystemName         string            `json:"systemName"`
	X                  float64           `json:"x"`
	Y                  float64           `json:"y"`
	DistanceToExchange float64           `json:"distanceToExchange"`
	PlanetCount        int               `json:"planetCount"`
	Resources          []ResourceSummary `json:"resources"`
}

// SearchResult is one advanced-search hit.
type SearchResult struct {
	SystemResources
	MaxFertility float64 `json:"maxFertility"`
}

// MaterialFilter requires at least one planet with the material at or above
// the threshold abundance.
type MaterialFilter struct {
	MaterialID   int     `json:"materialId"`
	MinAbundance float64 `json:"minAbundance"`
}

// SearchParams holds the advanced-search criteria. Zero values mean
// "no filter" throughout, matching the rest of the query surface.
type SearchParams struct {
	ExchangeX       float64
	ExchangeY       float64
	MaxDistance     float64 // light-years; 0 = unlimited
	MaterialFilters []MaterialFilter
	MinFertility    float64 // 0 = no fertility requirement
}

// BestLocation ranks a system for producing one material.
type BestLocation struct {
	SystemID       int     `json:"systemId"`
	SystemName     string  `json:"systemName"`
	MaterialID     int     `json:"materialId"`
	MaterialName   string  `json:"materialName"`
	MaterialNameZh string  `json:"materialNameZh"`
	TotalAbundance float64 `json:"totalAbundance"`
	PlanetCount    int     `json:"planetCount"`
	AvgAbundance   float64 `json:"avgAbundance"`
}

// NeighborhoodResult is one qualifying center system with resources
// aggregated across itself and its precomputed neighbors.
type NeighborhoodResult struct {
	SearchResult
	NeighborSystemIDs []int `json:"neighborSystemIds"`
	NeighborCount     int   `json:"neighborCount"`
}

// WorkforceGap identifies a consumable that blocked a role's cost.
type WorkforceGap struct {
	MaterialID   int    `json:"materialId,omitempty"`
	MaterialName string `json:"materialName"`
	Role         string `json:"workforceType"`
}

// ConsumableCost is one consumable line within a role's upkeep.
type ConsumableCost struct {
	MaterialID   int     `json:"materialId"`
	MaterialName string  `json:"materialName"`
	Essential    bool    `json:"essential"`
	DailyPer100  float64 `json:"dailyAmountPer100"`
	CycleAmount  float64 `json:"cycleAmount"`
	UnitPrice    float64 `json:"unitPrice"`
	TotalCost    float64 `json:"totalCost"`
}

// RoleCost is the per-role workforce upkeep for one production cycle.
type RoleCost struct {
	Role          string           `json:"workforceType"`
	WorkerCount   int              `json:"workerCount"`
	CostAvailable bool             `json:"costAvailable"`
	TotalCost     Metric           `json:"totalCost"`
	Consumables   []ConsumableCost `json:"consumables"`
}

// WorkforceResult is the workforce upkeep cost of one production cycle.
// Roles whose essential consumables cannot be priced invalidate the total,
// but every role's detail is still surfaced for inspection.
type WorkforceResult struct {
	TotalCost            Metric         `json:"totalWorkforceCost"`
	CostAvailable        bool           `json:"costAvailable"`
	ExpansionPenalty     float64        `json:"expansionPenalty"`
	TotalPopulation      int            `json:"totalPopulation"`
	UnavailableMaterials []WorkforceGap `json:"unavailableMaterials"`
	Roles                []RoleCost     `json:"workforceDetails"`
}

// ComprehensiveResult folds workforce upkeep into a recipe's profitability.
type ComprehensiveResult struct {
	ProfitResult
	WorkforceCost              Metric         `json:"workforceCost"`
	WorkforceCostPerHour       Metric         `json:"workforceCostPerHour"`
	WorkforceCostAvailable     bool           `json:"workforceCostAvailable"`
	ExpansionPenalty           float64        `json:"expansionPenalty"`
	ComprehensiveProfitPerHour Metric         `json:"comprehensiveProfitPerHour"`
	ComprehensiveTotalProfit   Metric         `json:"comprehensiveTotalProfit"`
	WorkforceDetails           []RoleCost     `json:"workforceDetails"`
	UnavailableWorkforce       []WorkforceGap `json:"unavailableWorkforceMaterials"`
}

// Comprehensive sort keys.
const (
	SortComprehensivePerHour = "comprehensiveProfitPerHour"
	SortComprehensiveTotal   = "comprehensiveTotalProfit"
)
