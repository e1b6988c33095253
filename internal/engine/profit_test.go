package engine

import (
	"math"
	"testing"

	"gt-analyzer/internal/exchange"
	"gt-analyzer/internal/gamedata"
)

func simpleRecipe(id int, timeMinutes float64) *gamedata.Recipe {
	return &gamedata.Recipe{
		ID:          id,
		ProducedIn:  1,
		Inputs:      gamedata.StackList{{MaterialID: 1, Amount: 2}},
		Output:      gamedata.ItemStack{MaterialID: 2, Amount: 1},
		TimeMinutes: timeMinutes,
	}
}

func TestRecipeProfit_Basic(t *testing.T) {
	r := simpleRecipe(1, 120)
	prices := testPrices(
		exchange.Quote{MatID: 1, CurrentPrice: 10}, // input 2×10 = 20
		exchange.Quote{MatID: 2, CurrentPrice: 50}, // output 1×50 = 50
	)
	got := RecipeProfit(r, prices, testNames(t, nil, nil, nil), 0)

	if !got.PriceAvailable {
		t.Fatal("expected fully priced result")
	}
	if math.Abs(got.TotalProfit.Value-30) > 1e-9 {
		t.Errorf("TotalProfit = %v, want 30", got.TotalProfit.Value)
	}
	if math.Abs(got.ProfitPerHour.Value-15) > 1e-9 {
		t.Errorf("ProfitPerHour = %v, want 15 (30 over 2h)", got.ProfitPerHour.Value)
	}
	if !got.ROI.Valid || math.Abs(got.ROI.Value-150) > 1e-9 {
		t.Errorf("ROI = %+v, want 150", got.ROI)
	}
}

func TestRecipeProfit_Efficiency(t *testing.T) {
	tests := []struct {
		name        string
		efficiency  float64
		wantMinutes float64
	}{
		{"baseline 100", 100, 120},
		{"faster 150", 150, 80},
		{"slower 50", 50, 240},
		{"zero leaves nominal", 0, 120},
		{"negative leaves nominal", -10, 120},
	}
	prices := testPrices(
		exchange.Quote{MatID: 1, CurrentPrice: 10},
		exchange.Quote{MatID: 2, CurrentPrice: 50},
	)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RecipeProfit(simpleRecipe(1, 120), prices, testNames(t, nil, nil, nil), tt.efficiency)
			if math.Abs(got.TimeMinutes-tt.wantMinutes) > 1e-9 {
				t.Errorf("TimeMinutes = %v, want %v", got.TimeMinutes, tt.wantMinutes)
			}
		})
	}
}

func TestRecipeProfit_UnavailablePropagates(t *testing.T) {
	tests := []struct {
		name   string
		quotes []exchange.Quote
	}{
		{"input unpriced", []exchange.Quote{{MatID: 2, CurrentPrice: 50}}},
		{"output sentinel", []exchange.Quote{{MatID: 1, CurrentPrice: 10}, {MatID: 2, CurrentPrice: -1}}},
		{"output zero", []exchange.Quote{{MatID: 1, CurrentPrice: 10}, {MatID: 2, CurrentPrice: 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RecipeProfit(simpleRecipe(1, 60), testPrices(tt.quotes...), testNames(t, nil, nil, nil), 0)
			if got.PriceAvailable {
				t.Fatal("result should be price-unavailable")
			}
			// Never partially computed: all derived metrics absent together.
			for name, m := range map[string]Metric{
				"InputCost":     got.InputCost,
				"OutputValue":   got.OutputValue,
				"TotalProfit":   got.TotalProfit,
				"ProfitPerHour": got.ProfitPerHour,
				"ROI":           got.ROI,
			} {
				if m.Valid {
					t.Errorf("%s = %+v, want unavailable", name, m)
				}
			}
			if len(got.UnavailableMaterials) == 0 {
				t.Error("UnavailableMaterials empty")
			}
		})
	}
}

func TestRecipeProfit_FreeInputs(t *testing.T) {
	r := &gamedata.Recipe{
		ID:          1,
		Output:      gamedata.ItemStack{MaterialID: 2, Amount: 1},
		TimeMinutes: 60,
	}
	got := RecipeProfit(r, testPrices(exchange.Quote{MatID: 2, CurrentPrice: 50}), testNames(t, nil, nil, nil), 0)
	if !got.PriceAvailable {
		t.Fatal("no inputs means nothing can be unpriced")
	}
	if got.ROI.Valid {
		t.Errorf("ROI = %+v, want unavailable on zero input cost", got.ROI)
	}
	if math.Abs(got.TotalProfit.Value-50) > 1e-9 {
		t.Errorf("TotalProfit = %v, want 50", got.TotalProfit.Value)
	}
}

func TestRecipeProfit_ZeroTime(t *testing.T) {
	got := RecipeProfit(simpleRecipe(1, 0), testPrices(
		exchange.Quote{MatID: 1, CurrentPrice: 10},
		exchange.Quote{MatID: 2, CurrentPrice: 50},
	), testNames(t, nil, nil, nil), 0)
	if !got.ProfitPerHour.Valid || got.ProfitPerHour.Value != 0 {
		t.Errorf("ProfitPerHour = %+v, want available 0 on zero time", got.ProfitPerHour)
	}
}

func TestRecipeProfits_SortROIUnavailableLast(t *testing.T) {
	recipes := []gamedata.Recipe{
		// ROI 10: cost 100 → profit 10
		{ID: 1, Inputs: gamedata.StackList{{MaterialID: 1, Amount: 10}}, Output: gamedata.ItemStack{MaterialID: 2, Amount: 1}, TimeMinutes: 60},
		// unpriced output
		{ID: 2, Inputs: gamedata.StackList{{MaterialID: 1, Amount: 1}}, Output: gamedata.ItemStack{MaterialID: 9, Amount: 1}, TimeMinutes: 60},
		// ROI 50: cost 10 → profit 5
		{ID: 3, Inputs: gamedata.StackList{{MaterialID: 1, Amount: 1}}, Output: gamedata.ItemStack{MaterialID: 3, Amount: 1}, TimeMinutes: 60},
	}
	prices := testPrices(
		exchange.Quote{MatID: 1, CurrentPrice: 10},
		exchange.Quote{MatID: 2, CurrentPrice: 110},
		exchange.Quote{MatID: 3, CurrentPrice: 15},
	)
	got := RecipeProfits(recipes, prices, testNames(t, nil, nil, nil), ProfitParams{SortBy: SortROI})
	wantOrder := []int{3, 1, 2}
	for i, want := range wantOrder {
		if got[i].RecipeID != want {
			t.Errorf("position %d = recipe %d, want %d", i, got[i].RecipeID, want)
		}
	}
}

func TestRecipeProfits_BuildingFilter(t *testing.T) {
	recipes := []gamedata.Recipe{
		{ID: 1, ProducedIn: 5, Output: gamedata.ItemStack{MaterialID: 2, Amount: 1}, TimeMinutes: 60},
		{ID: 2, ProducedIn: 6, Output: gamedata.ItemStack{MaterialID: 2, Amount: 1}, TimeMinutes: 60},
	}
	prices := testPrices(exchange.Quote{MatID: 2, CurrentPrice: 10})
	got := RecipeProfits(recipes, prices, testNames(t, nil, nil, nil), ProfitParams{BuildingID: 5})
	if len(got) != 1 || got[0].RecipeID != 1 {
		t.Errorf("filter produced %+v, want only recipe 1", got)
	}
}

func TestRecipeProfits_Deterministic(t *testing.T) {
	recipes := []gamedata.Recipe{
		{ID: 1, Output: gamedata.ItemStack{MaterialID: 2, Amount: 1}, TimeMinutes: 60},
		{ID: 2, Output: gamedata.ItemStack{MaterialID: 2, Amount: 1}, TimeMinutes: 60},
		{ID: 3, Output: gamedata.ItemStack{MaterialID: 2, Amount: 1}, TimeMinutes: 60},
	}
	prices := testPrices(exchange.Quote{MatID: 2, CurrentPrice: 10})
	first := RecipeProfits(recipes, prices, testNames(t, nil, nil, nil), ProfitParams{})
	for run := 0; run < 5; run++ {
		again := RecipeProfits(recipes, prices, testNames(t, nil, nil, nil), ProfitParams{})
		for i := range first {
			if again[i].RecipeID != first[i].RecipeID {
				t.Fatalf("run %d: order changed at %d", run, i)
			}
		}
	}
}
