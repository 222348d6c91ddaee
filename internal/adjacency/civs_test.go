package adjacency

import (
	"testing"

	"github.com/talgya/hexplan/internal/world"
)

func TestModifiersForUnknownFallsBackToDefault(t *testing.T) {
	for _, id := range []string{"", "atlantis", "  ", "klingon"} {
		m := ModifiersFor(id)
		if m.DistrictMultiplier != 0.5 {
			t.Errorf("ModifiersFor(%q).DistrictMultiplier = %v, want 0.5", id, m.DistrictMultiplier)
		}
		if len(m.ExtraRules) != 0 || len(m.FeatureBonuses) != 0 {
			t.Errorf("ModifiersFor(%q) carries civ-specific rules", id)
		}
	}
}

func TestModifiersForCaseInsensitive(t *testing.T) {
	for _, id := range []string{"japan", "Japan", "JAPAN", " japan "} {
		if m := ModifiersFor(id); m.Name != "Japan" {
			t.Errorf("ModifiersFor(%q) resolved %q, want Japan", id, m.Name)
		}
	}
}

func TestJapanFullDistrictMultiplier(t *testing.T) {
	tiles, n := buildMap(nil)
	n[0].District = world.DistrictCityCenter
	n[1].District = world.DistrictHolySite

	def := Calculate(origin, world.DistrictCampus, tiles, "")
	jpn := Calculate(origin, world.DistrictCampus, tiles, "japan")

	if def.Bonus != 1 { // 2 × 0.5
		t.Errorf("default campus bonus = %d, want 1", def.Bonus)
	}
	if jpn.Bonus != 2 { // 2 × 1.0
		t.Errorf("japan campus bonus = %d, want 2", jpn.Bonus)
	}
	if s, ok := findSource(jpn, "District"); !ok || s.BonusEach != 1.0 {
		t.Errorf("japan District source = %+v, want bonus 1.0 each", s)
	}
}

func TestBrazilRainforestFeatureBonus(t *testing.T) {
	tiles, n := buildMap(nil)
	n[0].Features = []world.Feature{world.FeatureRainforest}
	n[1].Features = []world.Feature{world.FeatureRainforest}

	def := Calculate(origin, world.DistrictHolySite, tiles, "")
	if def.Bonus != 0 {
		t.Errorf("default holy site bonus = %d, want 0", def.Bonus)
	}

	bra := Calculate(origin, world.DistrictHolySite, tiles, "brazil")
	if bra.Bonus != 2 {
		t.Errorf("brazil holy site bonus = %d, want 2 (%+v)", bra.Bonus, bra.Breakdown)
	}
	s, ok := findSource(bra, "Rainforest (Brazil)")
	if !ok || s.Count != 2 || s.Total != 2 {
		t.Errorf("Rainforest (Brazil) source = %+v, want count 2 total 2", s)
	}

	// Campus already counts rainforest in its base rule; Brazil adds no
	// second campus source, so the breakdown stays singly attributed.
	campus := Calculate(origin, world.DistrictCampus, tiles, "brazil")
	if _, ok := findSource(campus, "Rainforest (Brazil)"); ok {
		t.Error("brazil campus double-attributes rainforest")
	}
	if s, ok := findSource(campus, "Rainforest"); !ok || s.Count != 2 {
		t.Errorf("campus Rainforest source = %+v, want count 2", s)
	}
}

func TestMayaObservatoryFarmRules(t *testing.T) {
	tiles, n := buildMap(nil)
	n[0].Improvement = world.ImprovementFarm
	n[1].Improvement = world.ImprovementFarm
	n[2].Improvement = world.ImprovementPlantation
	n[3].Modifier = world.ModifierMountain

	r := Calculate(origin, world.DistrictCampus, tiles, "maya")
	// Base mountain 1 + plantation 1 + farms 2×0.5 = 3.
	if r.Bonus != 3 {
		t.Fatalf("maya campus bonus = %d, want 3 (%+v)", r.Bonus, r.Breakdown)
	}
	if s, ok := findSource(r, "Farm (Maya)"); !ok || s.Count != 2 || s.Total != 1 {
		t.Errorf("Farm (Maya) source = %+v, want count 2 total 1", s)
	}
	if s, ok := findSource(r, "Plantation (Maya)"); !ok || s.Count != 1 {
		t.Errorf("Plantation (Maya) source = %+v, want count 1", s)
	}

	// Civ extra rules are a superset: base sources stay intact and the
	// default civilization sees none of the extras.
	def := Calculate(origin, world.DistrictCampus, tiles, "")
	if def.Bonus != 1 {
		t.Errorf("default campus bonus = %d, want 1", def.Bonus)
	}
	if _, ok := findSource(def, "Farm (Maya)"); ok {
		t.Error("default civ received maya farm source")
	}

	if name := ModifiersFor("maya").Replaces[world.DistrictCampus]; name != "Observatory" {
		t.Errorf("maya campus replacement = %q, want Observatory", name)
	}
}

func TestGermanyHansaRules(t *testing.T) {
	tiles, n := buildMap(nil)
	n[0].District = world.DistrictCommercialHub
	n[1].Resource = &world.Resource{Name: "Sheep", Kind: world.ResourceBonus}
	n[2].Resource = &world.Resource{Name: "Iron", Kind: world.ResourceStrategic}

	r := Calculate(origin, world.DistrictIndustrialZone, tiles, "germany")
	if s, ok := findSource(r, "Commercial Hub (Germany)"); !ok || s.Total != 2 {
		t.Errorf("Commercial Hub (Germany) source = %+v, want total 2", s)
	}
	if s, ok := findSource(r, "Resource (Germany)"); !ok || s.Count != 2 || s.Total != 2 {
		t.Errorf("Resource (Germany) source = %+v, want count 2 total 2", s)
	}
	// Hansa extras 4 + generic district 0.5 → floor(4.5) = 4.
	if r.Bonus != 4 {
		t.Errorf("germany industrial zone bonus = %d, want 4 (%+v)", r.Bonus, r.Breakdown)
	}

	if name := ModifiersFor("germany").Replaces[world.DistrictIndustrialZone]; name != "Hansa" {
		t.Errorf("germany industrial zone replacement = %q, want Hansa", name)
	}
}

func TestFeatureBonusKeyFormat(t *testing.T) {
	got := featureBonusKey(world.FeatureRainforest, world.DistrictHolySite)
	if got != "rainforest_holy_site" {
		t.Errorf("featureBonusKey = %q, want rainforest_holy_site", got)
	}
	got = featureBonusKey(world.FeatureGeothermal, world.DistrictCampus)
	if got != "geothermal_fissure_campus" {
		t.Errorf("featureBonusKey = %q, want geothermal_fissure_campus", got)
	}
}
