// Civilization modifier registry. Modifiers are data-only records looked up
// once per calculation by lower-cased civilization id; unknown ids resolve
// to the default set. New civilizations are rows in the table, not code.
package adjacency

import (
	"strings"

	"github.com/talgya/hexplan/internal/world"
)

// ExtraRule is a declarative predicate/bonus pair a civilization adds to a
// district's base rule. A neighbor matches when every set field matches.
type ExtraRule struct {
	Label     string  // Breakdown label, e.g. "Farm (Maya)"
	BonusEach float64 // Bonus per matching neighbor

	// Match criteria. Zero values mean "not required".
	Improvement world.Improvement
	Feature     world.Feature
	HasFeature  bool // Feature field is only meaningful when set
	District    world.District
	AnyResource bool // Neighbor must carry any resource
}

// matches reports whether a neighbor tile satisfies the rule's criteria.
func (r ExtraRule) matches(t *world.Tile) bool {
	if r.Improvement != world.ImprovementNone && t.Improvement != r.Improvement {
		return false
	}
	if r.HasFeature && !t.HasFeature(r.Feature) {
		return false
	}
	if r.District != world.DistrictNone && t.District != r.District {
		return false
	}
	if r.AnyResource && t.Resource == nil {
		return false
	}
	return true
}

// CivModifiers is one civilization's adjacency rule adjustments.
type CivModifiers struct {
	Name string

	// DistrictMultiplier is the bonus each neighboring district grants in
	// the generic district-adjacency step.
	DistrictMultiplier float64

	// FeatureBonuses adds a flat per-neighbor bonus keyed by
	// "<feature>_<district>" (lower-cased, spaces as underscores).
	FeatureBonuses map[string]float64

	// ExtraRules appends civilization-specific sources to a district's base
	// rule. Sources are labeled with the civilization name so the breakdown
	// never silently double-attributes a bonus.
	ExtraRules map[world.District][]ExtraRule

	// Replaces names the unique district standing in for a standard one,
	// when the extra rules model such a replacement.
	Replaces map[world.District]string
}

// defaultModifiers applies to every civilization without a registry entry.
var defaultModifiers = CivModifiers{
	Name:               "Default",
	DistrictMultiplier: 0.5,
}

// civRegistry holds the shipped civilization-specific rule adjustments.
var civRegistry = map[string]CivModifiers{
	// Japan: districts cluster — full +1 per neighboring district.
	"japan": {
		Name:               "Japan",
		DistrictMultiplier: 1.0,
	},

	// Brazil: rainforest grants +1 to Holy Site, Commercial Hub, and
	// Theater Square (Campus already counts rainforest in its base rule).
	"brazil": {
		Name:               "Brazil",
		DistrictMultiplier: 0.5,
		FeatureBonuses: map[string]float64{
			featureBonusKey(world.FeatureRainforest, world.DistrictHolySite):      1,
			featureBonusKey(world.FeatureRainforest, world.DistrictCommercialHub): 1,
			featureBonusKey(world.FeatureRainforest, world.DistrictTheaterSquare): 1,
		},
	},

	// Maya: the Observatory replaces the Campus and draws adjacency from
	// worked farmland instead of terrain.
	"maya": {
		Name:               "Maya",
		DistrictMultiplier: 0.5,
		ExtraRules: map[world.District][]ExtraRule{
			world.DistrictCampus: {
				{Label: "Plantation (Maya)", BonusEach: 1, Improvement: world.ImprovementPlantation},
				{Label: "Farm (Maya)", BonusEach: 0.5, Improvement: world.ImprovementFarm},
			},
		},
		Replaces: map[world.District]string{
			world.DistrictCampus: "Observatory",
		},
	},

	// Germany: the Hansa replaces the Industrial Zone, rewarding commerce
	// and raw resources.
	"germany": {
		Name:               "Germany",
		DistrictMultiplier: 0.5,
		ExtraRules: map[world.District][]ExtraRule{
			world.DistrictIndustrialZone: {
				{Label: "Commercial Hub (Germany)", BonusEach: 2, District: world.DistrictCommercialHub},
				{Label: "Resource (Germany)", BonusEach: 1, AnyResource: true},
			},
		},
		Replaces: map[world.District]string{
			world.DistrictIndustrialZone: "Hansa",
		},
	},
}

// ModifiersFor resolves the modifier set for a civilization id. Lookup is
// case-insensitive; empty or unknown ids resolve to the default set.
func ModifiersFor(civID string) CivModifiers {
	if m, ok := civRegistry[strings.ToLower(strings.TrimSpace(civID))]; ok {
		return m
	}
	return defaultModifiers
}

// featureBonusKey builds the "<feature>_<district>" lookup key.
func featureBonusKey(f world.Feature, d world.District) string {
	snake := func(s string) string {
		return strings.ReplaceAll(strings.ToLower(s), " ", "_")
	}
	return snake(world.FeatureName(f)) + "_" + snake(d.String())
}
