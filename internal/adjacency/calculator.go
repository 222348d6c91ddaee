// Package adjacency scores map positions for district placement: given a
// coordinate, a district, and a tile snapshot, it computes an integer
// adjacency bonus and a source-by-source breakdown. Pure computation — no
// I/O, no shared state, no error paths; missing tiles are absent neighbors
// and unknown civilizations fall back to default modifiers.
package adjacency

import (
	"math"
	"sort"

	"github.com/talgya/hexplan/internal/world"
)

// Source is one named bonus contributor: how many neighbors qualified, the
// bonus each grants, and the product.
type Source struct {
	Name      string  `json:"source"`
	Count     int     `json:"count"`
	BonusEach float64 `json:"bonus_per_source"`
	Total     float64 `json:"total_bonus"`
}

// Result is the adjacency outcome for one (coordinate, district) pair.
// Bonus == floor(sum of Breakdown totals); flooring happens once on the
// grand total so fractional sources can combine before truncation.
type Result struct {
	District  world.District `json:"district"`
	Bonus     int            `json:"bonus"`
	Breakdown []Source       `json:"breakdown"`
}

// SpecialtyDistricts are the districts scored by CalculateAll.
var SpecialtyDistricts = [...]world.District{
	world.DistrictCampus,
	world.DistrictHolySite,
	world.DistrictTheaterSquare,
	world.DistrictCommercialHub,
	world.DistrictIndustrialZone,
	world.DistrictHarbor,
	world.DistrictEncampment,
	world.DistrictEntertainment,
	world.DistrictPreserve,
}

// Calculate computes the adjacency bonus for placing a district at a
// coordinate. Neighbors absent from the map are excluded from every count;
// civID is matched case-insensitively and unknown ids use default modifiers.
func Calculate(coord world.HexCoord, district world.District, tiles world.TileMap, civID string) Result {
	rule := districtRules[district] // zero value: generic-only
	if rule.fixedZero {
		return Result{District: district, Bonus: 0, Breakdown: []Source{}}
	}

	mods := ModifiersFor(civID)

	ctx := ruleContext{coord: coord, center: tiles.Get(coord)}
	for _, nc := range coord.Neighbors() {
		if t := tiles.Get(nc); t != nil {
			ctx.neighbors = append(ctx.neighbors, t)
		}
	}

	var breakdown []Source
	if rule.fn != nil {
		breakdown = rule.fn(ctx)
	}

	// Civilization-specific extra rules for this district, labeled
	// distinctly from the base sources.
	for _, extra := range mods.ExtraRules[district] {
		breakdown = addSource(breakdown, extra.Label,
			ctx.countNeighbors(extra.matches), extra.BonusEach)
	}

	// Civilization feature bonuses keyed "<feature>_<district>".
	breakdown = appendFeatureBonuses(breakdown, ctx, district, mods)

	if !rule.skipGeneric {
		// Generic district adjacency: every neighboring built district
		// (city center included) grants the civilization's multiplier.
		breakdown = addSource(breakdown, "District",
			ctx.countNeighbors(providesDistrictAdjacency), mods.DistrictMultiplier)

		// A neighboring Government Plaza grants +1 on top of counting in
		// the generic step above.
		breakdown = addSource(breakdown, "Government Plaza",
			ctx.countNeighbors(func(t *world.Tile) bool {
				return t.District == world.DistrictGovernmentPlaza
			}), 1)
	}

	total := 0.0
	for _, s := range breakdown {
		total += s.Total
	}
	if breakdown == nil {
		breakdown = []Source{}
	}
	return Result{
		District:  district,
		Bonus:     int(math.Floor(total)),
		Breakdown: breakdown,
	}
}

// appendFeatureBonuses evaluates the civilization's per-feature bonuses
// against the neighbor set for the given district.
func appendFeatureBonuses(breakdown []Source, ctx ruleContext, district world.District, mods CivModifiers) []Source {
	if len(mods.FeatureBonuses) == 0 {
		return breakdown
	}
	for f := world.FeatureWoods; f <= world.FeatureFloodplains; f++ {
		bonus, ok := mods.FeatureBonuses[featureBonusKey(f, district)]
		if !ok {
			continue
		}
		feature := f
		count := ctx.countNeighbors(func(t *world.Tile) bool { return t.HasFeature(feature) })
		breakdown = addSource(breakdown, world.FeatureName(f)+" ("+mods.Name+")", count, bonus)
	}
	return breakdown
}

// CalculateAll scores every specialty district at a coordinate and returns
// the results sorted by descending bonus. The sort is stable so ties keep
// the fixed district order.
func CalculateAll(coord world.HexCoord, tiles world.TileMap, civID string) []Result {
	results := make([]Result, 0, len(SpecialtyDistricts))
	for _, d := range SpecialtyDistricts {
		results = append(results, Calculate(coord, d, tiles, civID))
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Bonus > results[j].Bonus
	})
	return results
}
