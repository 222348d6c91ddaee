// Tile attributes read by the adjacency engine: terrain, features,
// resources, improvements, districts, wonders, and river edges.
package world

import (
	"fmt"
	"strings"
)

// Terrain is the base terrain type of a tile.
type Terrain uint8

const (
	TerrainGrassland Terrain = iota
	TerrainPlains
	TerrainDesert
	TerrainTundra
	TerrainSnow
	TerrainCoast // Shallow water
	TerrainOcean // Deep water
)

// IsWater reports whether the terrain is coast or ocean.
func (t Terrain) IsWater() bool {
	return t == TerrainCoast || t == TerrainOcean
}

// TerrainName returns a human-readable name for a terrain type.
func TerrainName(t Terrain) string {
	switch t {
	case TerrainGrassland:
		return "Grassland"
	case TerrainPlains:
		return "Plains"
	case TerrainDesert:
		return "Desert"
	case TerrainTundra:
		return "Tundra"
	case TerrainSnow:
		return "Snow"
	case TerrainCoast:
		return "Coast"
	case TerrainOcean:
		return "Ocean"
	default:
		return "Unknown"
	}
}

// Modifier is the elevation modifier on top of the base terrain.
type Modifier uint8

const (
	ModifierNone Modifier = iota
	ModifierHills
	ModifierMountain
)

// Feature is a natural feature occupying a tile. A tile may carry several
// (e.g. woods on floodplains).
type Feature uint8

const (
	FeatureWoods Feature = iota
	FeatureRainforest
	FeatureMarsh
	FeatureOasis
	FeatureReef
	FeatureGeothermal
	FeatureFloodplains
)

// FeatureName returns a human-readable name for a feature.
func FeatureName(f Feature) string {
	switch f {
	case FeatureWoods:
		return "Woods"
	case FeatureRainforest:
		return "Rainforest"
	case FeatureMarsh:
		return "Marsh"
	case FeatureOasis:
		return "Oasis"
	case FeatureReef:
		return "Reef"
	case FeatureGeothermal:
		return "Geothermal Fissure"
	case FeatureFloodplains:
		return "Floodplains"
	default:
		return "Unknown"
	}
}

// Improvement is a worked-tile improvement.
type Improvement uint8

const (
	ImprovementNone Improvement = iota
	ImprovementFarm
	ImprovementMine
	ImprovementQuarry
	ImprovementLumberMill
	ImprovementPlantation
	ImprovementPasture
	ImprovementCamp
	ImprovementFishingBoats
)

// ImprovementName returns a human-readable name for an improvement.
func ImprovementName(i Improvement) string {
	switch i {
	case ImprovementNone:
		return "None"
	case ImprovementFarm:
		return "Farm"
	case ImprovementMine:
		return "Mine"
	case ImprovementQuarry:
		return "Quarry"
	case ImprovementLumberMill:
		return "Lumber Mill"
	case ImprovementPlantation:
		return "Plantation"
	case ImprovementPasture:
		return "Pasture"
	case ImprovementCamp:
		return "Camp"
	case ImprovementFishingBoats:
		return "Fishing Boats"
	default:
		return "Unknown"
	}
}

// District is a city district occupying a tile.
type District uint8

const (
	DistrictNone District = iota
	DistrictCityCenter
	DistrictCampus
	DistrictHolySite
	DistrictTheaterSquare
	DistrictCommercialHub
	DistrictIndustrialZone
	DistrictHarbor
	DistrictEncampment
	DistrictEntertainment
	DistrictWaterPark
	DistrictPreserve
	DistrictGovernmentPlaza
	DistrictAqueduct
	DistrictDam
	DistrictCanal
	DistrictNeighborhood
	DistrictSpaceport
)

var districtNames = map[District]string{
	DistrictNone:            "None",
	DistrictCityCenter:      "City Center",
	DistrictCampus:          "Campus",
	DistrictHolySite:        "Holy Site",
	DistrictTheaterSquare:   "Theater Square",
	DistrictCommercialHub:   "Commercial Hub",
	DistrictIndustrialZone:  "Industrial Zone",
	DistrictHarbor:          "Harbor",
	DistrictEncampment:      "Encampment",
	DistrictEntertainment:   "Entertainment Complex",
	DistrictWaterPark:       "Water Park",
	DistrictPreserve:        "Preserve",
	DistrictGovernmentPlaza: "Government Plaza",
	DistrictAqueduct:        "Aqueduct",
	DistrictDam:             "Dam",
	DistrictCanal:           "Canal",
	DistrictNeighborhood:    "Neighborhood",
	DistrictSpaceport:       "Spaceport",
}

// String returns a human-readable name for a district.
func (d District) String() string {
	if s, ok := districtNames[d]; ok {
		return s
	}
	return "Unknown"
}

// DistrictFromName resolves a district from its name, case-insensitively.
// Underscores match spaces ("holy_site" == "Holy Site").
func DistrictFromName(name string) (District, bool) {
	want := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "_", " "))
	for d, n := range districtNames {
		if strings.ToLower(n) == want {
			return d, true
		}
	}
	return DistrictNone, false
}

// ResourceKind classifies a tile resource.
type ResourceKind uint8

const (
	ResourceBonus ResourceKind = iota
	ResourceLuxury
	ResourceStrategic
)

// Resource is a tile resource. Strategic resources are only visible once
// revealed by the owning player's tech.
type Resource struct {
	Name     string       `json:"name"`
	Kind     ResourceKind `json:"kind"`
	Revealed bool         `json:"revealed"`
}

// Tile holds the static and dynamic attributes of a single hex. The
// adjacency engine treats tiles as read-only snapshots and never mutates
// them.
type Tile struct {
	Coord    HexCoord  `json:"coord"`
	Terrain  Terrain   `json:"terrain"`
	Modifier Modifier  `json:"modifier"`
	Features []Feature `json:"features,omitempty"`
	Resource *Resource `json:"resource,omitempty"`

	Improvement Improvement `json:"improvement"`
	District    District    `json:"district"`
	Wonder      string      `json:"wonder,omitempty"` // Built wonder id, empty if none

	// RiverEdges marks which of the six edges border a river, indexed by
	// Direction (E, NE, NW, W, SW, SE).
	RiverEdges [6]bool `json:"river_edges"`
}

// HasFeature reports whether the tile carries the given feature.
func (t *Tile) HasFeature(f Feature) bool {
	for _, tf := range t.Features {
		if tf == f {
			return true
		}
	}
	return false
}

// IsMountain reports whether the tile is a mountain.
func (t *Tile) IsMountain() bool {
	return t.Modifier == ModifierMountain
}

// OnRiver reports whether any edge of the tile borders a river.
func (t *Tile) OnRiver() bool {
	for _, e := range t.RiverEdges {
		if e {
			return true
		}
	}
	return false
}

// HasSeaResource reports whether the tile is water carrying a resource.
func (t *Tile) HasSeaResource() bool {
	return t.Terrain.IsWater() && t.Resource != nil
}

// TileMap is the full map snapshot, keyed by coordinate. Coordinates absent
// from the map are off-map or unexplored and are excluded from neighbor
// aggregation.
type TileMap map[HexCoord]*Tile

// Get returns the tile at the given coordinate, or nil if off-map.
func (m TileMap) Get(coord HexCoord) *Tile {
	return m[coord]
}

// TileMapFromKeys builds a TileMap from a snapshot keyed by canonical "q,r"
// strings (the wire form external callers use). A malformed key is a caller
// contract violation and is reported as an error rather than skipped.
func TileMapFromKeys(keyed map[string]*Tile) (TileMap, error) {
	tiles := make(TileMap, len(keyed))
	for key, tile := range keyed {
		coord, ok := ParseKey(key)
		if !ok {
			return nil, fmt.Errorf("malformed tile key %q", key)
		}
		tile.Coord = coord
		tiles[coord] = tile
	}
	return tiles, nil
}

// Set places a tile at its own coordinate.
func (m TileMap) Set(t *Tile) {
	m[t.Coord] = t
}
