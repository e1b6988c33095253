package engine

import (
	"sort"

	"gt-analyzer/internal/atlas"
	"gt-analyzer/internal/gamedata"
)

// Distance returns the map distance between two points in light-years
// (Euclidean distance over 50 map units per light-year).
func Distance(x1, y1, x2, y2 float64) float64 {
	return atlas.Distance(x1, y1, x2, y2)
}

// resourceTally accumulates per-material aggregates in first-seen order so
// results are deterministic for identical inputs.
type resourceTally struct {
	order     []int
	summaries map[int]*ResourceSummary
}

func newResourceTally() *resourceTally {
	return &resourceTally{summaries: make(map[int]*ResourceSummary)}
}

func (t *resourceTally) add(materialID int, abundance float64, names *gamedata.Names) {
	s, ok := t.summaries[materialID]
	if !ok {
		name := names.Material(materialID)
		s = &ResourceSummary{
			MaterialID:     materialID,
			MaterialName:   name.En,
			MaterialNameZh: name.Zh,
		}
		t.summaries[materialID] = s
		t.order = append(t.order, materialID)
	}
	s.TotalAbundance += abundance
	s.PlanetCount++
	if abundance > s.MaxAbundance {
		s.MaxAbundance = abundance
	}
}

func (t *resourceTally) list() []ResourceSummary {
	out := make([]ResourceSummary, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, *t.summaries[id])
	}
	return out
}

// AnalyzeResources aggregates each system's resource abundance per material
// across all its planets and attaches the distance to the exchange hub.
func AnalyzeResources(systems []gamedata.StarSystem, exchangeX, exchangeY float64, names *gamedata.Names) []SystemResources {
	results := make([]SystemResources, 0, len(systems))
	for _, sys := range systems {
		tally := newResourceTally()
		for _, planet := range sys.Planets {
			for _, res := range planet.Resources {
				tally.add(res.MaterialID, res.Abundance, names)
			}
		}
		results = append(results, SystemResources{
			SystemID:           sys.ID,
			SystemName:         sys.Name,
			X:                  sys.X,
			Y:                  sys.Y,
			DistanceToExchange: Distance(exchangeX, exchangeY, sys.X, sys.Y),
			PlanetCount:        len(sys.Planets),
			Resources:          tally.list(),
		})
	}
	return results
}

// planetMeetsFilter reports whether a single planet carries the material at
// or above the threshold. Filters are satisfied per planet, never by summing
// abundance across planets.
func planetMeetsFilter(planet *gamedata.Planet, filter MaterialFilter) bool {
	for _, res := range planet.Resources {
		if res.MaterialID == filter.MaterialID && res.Abundance >= filter.MinAbundance {
			return true
		}
	}
	return false
}

func planetsMeetFilters(planets []gamedata.Planet, filters []MaterialFilter) bool {
	for _, filter := range filters {
		found := false
		for i := range planets {
			if planetMeetsFilter(&planets[i], filter) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// AdvancedSearch returns systems matching all criteria, sorted ascending by
// distance to the exchange. Systems without planets never match.
func AdvancedSearch(systems []gamedata.StarSystem, params SearchParams, names *gamedata.Names) []SearchResult {
	var results []SearchResult
	for _, sys := range systems {
		dist := Distance(params.ExchangeX, params.ExchangeY, sys.X, sys.Y)
		if params.MaxDistance > 0 && dist > params.MaxDistance {
			continue
		}
		if len(sys.Planets) == 0 {
			continue
		}
		if !planetsMeetFilters(sys.Planets, params.MaterialFilters) {
			continue
		}
		if params.MinFertility > 0 {
			fertile := false
			for _, planet := range sys.Planets {
				if planet.Fertility >= params.MinFertility {
					fertile = true
					break
				}
			}
			if !fertile {
				continue
			}
		}

		tally := newResourceTally()
		maxFertility := 0.0
		for _, planet := range sys.Planets {
			if planet.Fertility > maxFertility {
				maxFertility = planet.Fertility
			}
			for _, res := range planet.Resources {
				tally.add(res.MaterialID, res.Abundance, names)
			}
		}
		results = append(results, SearchResult{
			SystemResources: SystemResources{
				SystemID:           sys.ID,
				SystemName:         sys.Name,
				X:                  sys.X,
				Y:                  sys.Y,
				DistanceToExchange: dist,
				PlanetCount:        len(sys.Planets),
				Resources:          tally.list(),
			},
			MaxFertility: maxFertility,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].DistanceToExchange < results[j].DistanceToExchange
	})
	return results
}

// BestLocations ranks systems for producing one material, descending by the
// material's total abundance across the system's planets. Systems with no
// abundance at all are excluded.
func BestLocations(systems []gamedata.StarSystem, materialID int, names *gamedata.Names) []BestLocation {
	name := names.Material(materialID)
	var results []BestLocation
	for _, sys := range systems {
		total := 0.0
		count := 0
		for _, planet := range sys.Planets {
			for _, res := range planet.Resources {
				if res.MaterialID == materialID {
					total += res.Abundance
					count++
				}
			}
		}
		if total <= 0 {
			continue
		}
		avg := 0.0
		if count > 0 {
			avg = total / float64(count)
		}
		results = append(results, BestLocation{
			SystemID:       sys.ID,
			SystemName:     sys.Name,
			MaterialID:     materialID,
			MaterialName:   name.En,
			MaterialNameZh: name.Zh,
			TotalAbundance: total,
			PlanetCount:    count,
			AvgAbundance:   avg,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].TotalAbundance > results[j].TotalAbundance
	})
	return results
}

// NeighborhoodSearch finds center systems that satisfy every material filter
// on their own planets (planets with an excluded tier are ignored for
// qualification) and aggregates resources across the center plus exactly the
// systems the precomputed table lists as its neighbors. Geometry is never
// recomputed here: a stale table entry wins over actual coordinates.
// Results are sorted ascending by the center's distance to the exchange.
func NeighborhoodSearch(
	systems []gamedata.StarSystem,
	table atlas.Table,
	filters []MaterialFilter,
	excludedTiers []int,
	exchangeX, exchangeY float64,
	names *gamedata.Names,
) []NeighborhoodResult {
	excluded := make(map[int]bool, len(excludedTiers))
	for _, tier := range excludedTiers {
		excluded[tier] = true
	}

	byID := make(map[int]*gamedata.StarSystem, len(systems))
	for i := range systems {
		byID[systems[i].ID] = &systems[i]
	}

	var results []NeighborhoodResult
	for i := range systems {
		center := &systems[i]
		if center.ID == 0 {
			continue
		}

		eligible := make([]gamedata.Planet, 0, len(center.Planets))
		for _, planet := range center.Planets {
			if !excluded[planet.Tier] {
				eligible = append(eligible, planet)
			}
		}
		if len(eligible) == 0 || !planetsMeetFilters(eligible, filters) {
			continue
		}

		neighborIDs := table.NeighborIDs(center.ID)
		if len(neighborIDs) == 0 {
			continue
		}
		neighbors := make([]*gamedata.StarSystem, 0, len(neighborIDs))
		presentIDs := make([]int, 0, len(neighborIDs))
		for _, id := range neighborIDs {
			if sys, ok := byID[id]; ok {
				neighbors = append(neighbors, sys)
				presentIDs = append(presentIDs, id)
			}
		}
		if len(neighbors) == 0 {
			continue
		}

		tally := newResourceTally()
		totalPlanets := 0
		maxFertility := 0.0
		group := append([]*gamedata.StarSystem{center}, neighbors...)
		for _, sys := range group {
			totalPlanets += len(sys.Planets)
			for _, planet := range sys.Planets {
				if planet.Fertility > maxFertility {
					maxFertility = planet.Fertility
				}
				for _, res := range planet.Resources {
					tally.add(res.MaterialID, res.Abundance, names)
				}
			}
		}

		results = append(results, NeighborhoodResult{
			SearchResult: SearchResult{
				SystemResources: SystemResources{
					SystemID:           center.ID,
					SystemName:         center.Name,
					X:                  center.X,
					Y:                  center.Y,
					DistanceToExchange: Distance(exchangeX, exchangeY, center.X, center.Y),
					PlanetCount:        totalPlanets,
					Resources:          tally.list(),
				},
				MaxFertility: maxFertility,
			},
			NeighborSystemIDs: presentIDs,
			NeighborCount:     len(neighbors),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].DistanceToExchange < results[j].DistanceToExchange
	})
	return results
}
