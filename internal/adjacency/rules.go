// District rule table: each district maps to a pure function producing its
// base bonus sources from the neighbor set, plus flags for the generic
// district-adjacency step. Special-case districts (Harbor, Government Plaza)
// are table entries, not early returns threaded through the calculator.
package adjacency

import "github.com/talgya/hexplan/internal/world"

// ruleContext is the read-only input to a district rule: the prospective
// district tile (may be nil for an empty/off-map center) and the neighbor
// tiles present in the map. Off-map neighbors are already excluded.
type ruleContext struct {
	coord     world.HexCoord
	center    *world.Tile
	neighbors []*world.Tile
}

// countNeighbors counts neighbors satisfying the predicate.
func (ctx ruleContext) countNeighbors(pred func(*world.Tile) bool) int {
	n := 0
	for _, t := range ctx.neighbors {
		if pred(t) {
			n++
		}
	}
	return n
}

// ruleFunc produces the base bonus sources for one district.
type ruleFunc func(ctx ruleContext) []Source

// districtRule pairs a district's base rule with its exemption flags.
type districtRule struct {
	fn ruleFunc

	// skipGeneric exempts the district from the generic district-adjacency
	// and Government Plaza steps (Harbor computes its own district bonus).
	skipGeneric bool

	// fixedZero short-circuits the whole calculation to a zero bonus with
	// an empty breakdown (Government Plaza receives no adjacency).
	fixedZero bool
}

// addSource appends a source only when its neighbor count is nonzero.
// Zero-count sources are omitted, not emitted as zero.
func addSource(list []Source, name string, count int, each float64) []Source {
	if count == 0 {
		return list
	}
	return append(list, Source{
		Name:      name,
		Count:     count,
		BonusEach: each,
		Total:     float64(count) * each,
	})
}

// providesDistrictAdjacency reports whether a tile counts in the generic
// per-district step: the city center and every built district provide it.
func providesDistrictAdjacency(t *world.Tile) bool {
	return t.District != world.DistrictNone
}

// isCharming reports whether a tile qualifies for the Preserve bonus: an
// unimproved, district-free tile with woods, a mountain, coastal terrain,
// or an oasis.
func isCharming(t *world.Tile) bool {
	if t.Improvement != world.ImprovementNone || t.District != world.DistrictNone {
		return false
	}
	return t.HasFeature(world.FeatureWoods) ||
		t.IsMountain() ||
		t.Terrain == world.TerrainCoast ||
		t.HasFeature(world.FeatureOasis)
}

// districtRules is the rule table. Districts without an entry receive the
// generic district-adjacency bonus only.
var districtRules = map[world.District]districtRule{
	world.DistrictCampus:         {fn: campusRule},
	world.DistrictHolySite:       {fn: holySiteRule},
	world.DistrictTheaterSquare:  {fn: theaterSquareRule},
	world.DistrictCommercialHub:  {fn: commercialHubRule},
	world.DistrictIndustrialZone: {fn: industrialZoneRule},
	world.DistrictHarbor:         {fn: harborRule, skipGeneric: true},
	world.DistrictEncampment:     {}, // No intrinsic sources; generic only
	world.DistrictPreserve:       {fn: preserveRule},

	// The Government Plaza receives no adjacency of any kind.
	world.DistrictGovernmentPlaza: {fixedZero: true, skipGeneric: true},
}

func campusRule(ctx ruleContext) []Source {
	var sources []Source
	sources = addSource(sources, "Mountain",
		ctx.countNeighbors((*world.Tile).IsMountain), 1)
	sources = addSource(sources, "Rainforest",
		ctx.countNeighbors(func(t *world.Tile) bool { return t.HasFeature(world.FeatureRainforest) }), 1)
	sources = addSource(sources, "Reef",
		ctx.countNeighbors(func(t *world.Tile) bool { return t.HasFeature(world.FeatureReef) }), 1)
	sources = addSource(sources, "Geothermal Fissure",
		ctx.countNeighbors(func(t *world.Tile) bool { return t.HasFeature(world.FeatureGeothermal) }), 1)
	return sources
}

func holySiteRule(ctx ruleContext) []Source {
	var sources []Source
	sources = addSource(sources, "Mountain",
		ctx.countNeighbors((*world.Tile).IsMountain), 1)
	sources = addSource(sources, "Woods",
		ctx.countNeighbors(func(t *world.Tile) bool { return t.HasFeature(world.FeatureWoods) }), 1)
	return sources
}

func theaterSquareRule(ctx ruleContext) []Source {
	var sources []Source
	sources = addSource(sources, "Wonder",
		ctx.countNeighbors(func(t *world.Tile) bool { return t.Wonder != "" }), 1)
	sources = addSource(sources, "Entertainment",
		ctx.countNeighbors(func(t *world.Tile) bool {
			return t.District == world.DistrictEntertainment || t.District == world.DistrictWaterPark
		}), 2)
	return sources
}

func commercialHubRule(ctx ruleContext) []Source {
	var sources []Source
	sources = addSource(sources, "Harbor",
		ctx.countNeighbors(func(t *world.Tile) bool { return t.District == world.DistrictHarbor }), 2)

	// River bonus is +2 once when the hub's own tile touches a river edge.
	// Deliberately checks the center, not the neighbors: this asymmetry
	// with the rest of the table mirrors the game rule. Do not "fix" it
	// into per-neighbor counting.
	if ctx.center != nil && ctx.center.OnRiver() {
		sources = addSource(sources, "River", 1, 2)
	}
	return sources
}

func industrialZoneRule(ctx ruleContext) []Source {
	var sources []Source
	sources = addSource(sources, "Aqueduct, Dam, Canal",
		ctx.countNeighbors(func(t *world.Tile) bool {
			switch t.District {
			case world.DistrictAqueduct, world.DistrictDam, world.DistrictCanal:
				return true
			}
			return false
		}), 1.5)
	sources = addSource(sources, "Quarry",
		ctx.countNeighbors(func(t *world.Tile) bool { return t.Improvement == world.ImprovementQuarry }), 1)
	sources = addSource(sources, "Improved Strategic Resource",
		ctx.countNeighbors(func(t *world.Tile) bool {
			return t.Resource != nil && t.Resource.Kind == world.ResourceStrategic &&
				t.Improvement != world.ImprovementNone
		}), 2)
	sources = addSource(sources, "Mine",
		ctx.countNeighbors(func(t *world.Tile) bool { return t.Improvement == world.ImprovementMine }), 1)
	sources = addSource(sources, "Lumber Mill",
		ctx.countNeighbors(func(t *world.Tile) bool { return t.Improvement == world.ImprovementLumberMill }), 0.5)
	return sources
}

// harborRule is the whole of the Harbor's adjacency: it computes its own
// district bonuses and is exempt from the generic per-district step.
func harborRule(ctx ruleContext) []Source {
	var sources []Source
	sources = addSource(sources, "City Center",
		ctx.countNeighbors(func(t *world.Tile) bool { return t.District == world.DistrictCityCenter }), 2)
	sources = addSource(sources, "Sea Resources",
		ctx.countNeighbors((*world.Tile).HasSeaResource), 1)
	sources = addSource(sources, "District",
		ctx.countNeighbors(func(t *world.Tile) bool {
			return providesDistrictAdjacency(t) && t.District != world.DistrictCityCenter
		}), 1)
	return sources
}

func preserveRule(ctx ruleContext) []Source {
	return addSource(nil, "Charming Tile", ctx.countNeighbors(isCharming), 1)
}
