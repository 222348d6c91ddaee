package world

import "testing"

func TestTileHelpers(t *testing.T) {
	tile := &Tile{
		Terrain:  TerrainCoast,
		Features: []Feature{FeatureReef},
		Resource: &Resource{Name: "Fish", Kind: ResourceBonus},
	}
	if !tile.HasFeature(FeatureReef) || tile.HasFeature(FeatureWoods) {
		t.Errorf("HasFeature wrong for %+v", tile.Features)
	}
	if !tile.HasSeaResource() {
		t.Error("coast tile with resource should report a sea resource")
	}
	if tile.OnRiver() {
		t.Error("tile without river edges reports OnRiver")
	}
	tile.RiverEdges[DirSW] = true
	if !tile.OnRiver() {
		t.Error("tile with river edge does not report OnRiver")
	}

	land := &Tile{Terrain: TerrainPlains, Resource: &Resource{Name: "Iron", Kind: ResourceStrategic}}
	if land.HasSeaResource() {
		t.Error("land resource reported as sea resource")
	}

	mountain := &Tile{Terrain: TerrainPlains, Modifier: ModifierMountain}
	if !mountain.IsMountain() {
		t.Error("mountain modifier not detected")
	}
}

func TestDistrictFromName(t *testing.T) {
	cases := []struct {
		in   string
		want District
		ok   bool
	}{
		{"Campus", DistrictCampus, true},
		{"campus", DistrictCampus, true},
		{"holy_site", DistrictHolySite, true},
		{"Holy Site", DistrictHolySite, true},
		{" industrial zone ", DistrictIndustrialZone, true},
		{"government_plaza", DistrictGovernmentPlaza, true},
		{"castle", DistrictNone, false},
		{"", DistrictNone, false},
	}
	for _, c := range cases {
		got, ok := DistrictFromName(c.in)
		if got != c.want || ok != c.ok {
			t.Errorf("DistrictFromName(%q) = %v, %v, want %v, %v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestTileMapFromKeys(t *testing.T) {
	keyed := map[string]*Tile{
		"0,0":  {Terrain: TerrainGrassland},
		"2,-1": {Terrain: TerrainPlains},
	}
	tiles, err := TileMapFromKeys(keyed)
	if err != nil {
		t.Fatalf("TileMapFromKeys: %v", err)
	}
	if len(tiles) != 2 {
		t.Fatalf("got %d tiles, want 2", len(tiles))
	}
	tile := tiles.Get(HexCoord{Q: 2, R: -1})
	if tile == nil || tile.Coord != (HexCoord{Q: 2, R: -1}) {
		t.Errorf("tile coord not set from key: %+v", tile)
	}

	if _, err := TileMapFromKeys(map[string]*Tile{"oops": {}}); err == nil {
		t.Error("malformed key accepted")
	}
}

func TestNameHelpers(t *testing.T) {
	if TerrainName(TerrainOcean) != "Ocean" || TerrainName(Terrain(99)) != "Unknown" {
		t.Error("TerrainName wrong")
	}
	if FeatureName(FeatureGeothermal) != "Geothermal Fissure" {
		t.Error("FeatureName wrong")
	}
	if ImprovementName(ImprovementLumberMill) != "Lumber Mill" {
		t.Error("ImprovementName wrong")
	}
	if DistrictTheaterSquare.String() != "Theater Square" || District(99).String() != "Unknown" {
		t.Error("District String wrong")
	}
}
