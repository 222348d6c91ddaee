// Package mapgen produces demo tile maps using layered simplex noise.
// Generates elevation, rainfall, and temperature layers, then derives
// terrain, features, and resources. Deterministic for a given seed.
package mapgen

import (
	"math"
	"math/rand"
	"sort"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/hexplan/internal/world"
)

// Config holds map generation parameters.
type Config struct {
	Radius      int     `yaml:"radius"`       // Hex grid radius
	Seed        int64   `yaml:"seed"`         // Random seed (0 = random)
	SeaLevel    float64 `yaml:"sea_level"`    // Elevation threshold for ocean (0.0–1.0)
	MountainLvl float64 `yaml:"mountain_lvl"` // Elevation threshold for mountains (0.0–1.0)
	HillsLvl    float64 `yaml:"hills_lvl"`    // Elevation threshold for hills (0.0–1.0)
}

// DefaultConfig returns a reasonable starting configuration.
func DefaultConfig() Config {
	return Config{
		Radius:      12,
		Seed:        0,
		SeaLevel:    0.25,
		MountainLvl: 0.72,
		HillsLvl:    0.55,
	}
}

// Generate creates a complete tile map with terrain, features, resources,
// and rivers.
func Generate(cfg Config) world.TileMap {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Int63()
	}

	// Independent noise layers.
	elevNoise := opensimplex.NewNormalized(seed)
	rainNoise := opensimplex.NewNormalized(seed + 1)
	tempNoise := opensimplex.NewNormalized(seed + 2)

	rng := rand.New(rand.NewSource(seed + 3))
	tiles := make(world.TileMap)

	for _, coord := range world.HexesInRange(world.HexCoord{}, cfg.Radius) {
		// Hex axial → cartesian for noise sampling.
		x := float64(coord.Q) + float64(coord.R)*0.5
		y := float64(coord.R) * math.Sqrt(3.0) / 2.0

		elev := octaveNoise(elevNoise, x, y, 4, 0.10, 0.5)
		rain := octaveNoise(rainNoise, x, y, 3, 0.08, 0.5)
		temp := octaveNoise(tempNoise, x, y, 3, 0.06, 0.5)

		// Continental shaping: lower elevation near the rim for an ocean
		// border.
		distFromCenter := math.Sqrt(x*x+y*y) / float64(cfg.Radius)
		edgeFalloff := 1.0 - math.Pow(distFromCenter, 3.5)
		if edgeFalloff < 0 {
			edgeFalloff = 0
		}
		elev *= edgeFalloff

		// Temperature drops with elevation and distance from the equator.
		temp = temp*0.6 + (1.0-math.Abs(y)/float64(cfg.Radius))*0.3 + (1.0-elev)*0.1

		tile := &world.Tile{
			Coord:    coord,
			Terrain:  deriveTerrain(elev, rain, temp, cfg),
			Modifier: deriveModifier(elev, cfg),
		}
		addFeatures(tile, elev, rain, temp, rng)
		addResource(tile, rng)
		tiles.Set(tile)
	}

	markCoast(tiles)
	placeRivers(tiles, seed)

	return tiles
}

// deriveTerrain determines the base terrain from environmental parameters.
func deriveTerrain(elev, rain, temp float64, cfg Config) world.Terrain {
	if elev < cfg.SeaLevel {
		return world.TerrainOcean
	}
	if temp < 0.15 {
		return world.TerrainSnow
	}
	if temp < 0.3 {
		return world.TerrainTundra
	}
	if rain < 0.25 && temp > 0.5 {
		return world.TerrainDesert
	}
	if rain < 0.5 {
		return world.TerrainPlains
	}
	return world.TerrainGrassland
}

// deriveModifier sets hills or mountain from elevation. Water stays flat.
func deriveModifier(elev float64, cfg Config) world.Modifier {
	if elev < cfg.SeaLevel {
		return world.ModifierNone
	}
	if elev > cfg.MountainLvl {
		return world.ModifierMountain
	}
	if elev > cfg.HillsLvl {
		return world.ModifierHills
	}
	return world.ModifierNone
}

// addFeatures places natural features from climate plus a little noise.
func addFeatures(t *world.Tile, elev, rain, temp float64, rng *rand.Rand) {
	if t.Terrain.IsWater() || t.Modifier == world.ModifierMountain {
		// Geothermal fissures hug mountain terrain.
		if t.Modifier == world.ModifierMountain && rng.Float64() < 0.05 {
			t.Features = append(t.Features, world.FeatureGeothermal)
		}
		return
	}

	switch t.Terrain {
	case world.TerrainGrassland:
		if rain > 0.75 && temp > 0.65 {
			t.Features = append(t.Features, world.FeatureRainforest)
		} else if rain > 0.6 {
			t.Features = append(t.Features, world.FeatureWoods)
		} else if rain > 0.55 && elev < 0.35 {
			t.Features = append(t.Features, world.FeatureMarsh)
		}
	case world.TerrainPlains, world.TerrainTundra:
		if rain > 0.4 && rng.Float64() < 0.4 {
			t.Features = append(t.Features, world.FeatureWoods)
		}
	case world.TerrainDesert:
		if rng.Float64() < 0.06 {
			t.Features = append(t.Features, world.FeatureOasis)
		}
	}
}

// strategicNames and luxuryNames are sampled when placing resources.
var (
	strategicNames = []string{"Iron", "Horses", "Coal", "Niter", "Aluminum"}
	luxuryNames    = []string{"Silver", "Ivory", "Silk", "Wine", "Marble"}
	bonusNames     = []string{"Wheat", "Cattle", "Stone", "Deer", "Copper"}
	seaNames       = []string{"Fish", "Crabs", "Whales", "Pearls"}
)

// addResource sparsely scatters resources appropriate to the terrain.
func addResource(t *world.Tile, rng *rand.Rand) {
	roll := rng.Float64()
	switch {
	case t.Terrain == world.TerrainOcean:
		// Deep ocean carries nothing.
	case t.Terrain == world.TerrainCoast:
		if roll < 0.15 {
			t.Resource = &world.Resource{Name: pick(seaNames, rng), Kind: world.ResourceBonus}
		}
	case t.Modifier == world.ModifierMountain:
		// Mountains are unworkable.
	case roll < 0.06:
		t.Resource = &world.Resource{Name: pick(strategicNames, rng), Kind: world.ResourceStrategic, Revealed: true}
	case roll < 0.12:
		t.Resource = &world.Resource{Name: pick(luxuryNames, rng), Kind: world.ResourceLuxury}
	case roll < 0.22:
		t.Resource = &world.Resource{Name: pick(bonusNames, rng), Kind: world.ResourceBonus}
	}
}

func pick(names []string, rng *rand.Rand) string {
	return names[rng.Intn(len(names))]
}

// markCoast converts ocean tiles adjacent to land into coast.
func markCoast(tiles world.TileMap) {
	var toMark []world.HexCoord
	for coord, t := range tiles {
		if t.Terrain != world.TerrainOcean {
			continue
		}
		for _, nc := range coord.Neighbors() {
			if n := tiles.Get(nc); n != nil && !n.Terrain.IsWater() {
				toMark = append(toMark, coord)
				break
			}
		}
	}
	for _, coord := range toMark {
		tiles.Get(coord).Terrain = world.TerrainCoast
	}
}

// placeRivers traces descent paths from highlands toward the sea, marking
// the shared edge on both tiles of each step.
func placeRivers(tiles world.TileMap, seed int64) {
	rng := rand.New(rand.NewSource(seed + 100))

	var sources []world.HexCoord
	for coord, t := range tiles {
		if t.Modifier == world.ModifierMountain || t.Modifier == world.ModifierHills {
			sources = append(sources, coord)
		}
	}
	if len(sources) == 0 {
		return
	}
	// Map iteration order is random; sort before shuffling so the seeded
	// rng sees the same input every run.
	sort.Slice(sources, func(i, j int) bool { return less(sources[i], sources[j]) })

	numRivers := len(sources) / 10
	if numRivers < 2 {
		numRivers = 2
	}
	if numRivers > 8 {
		numRivers = 8
	}

	rng.Shuffle(len(sources), func(i, j int) {
		sources[i], sources[j] = sources[j], sources[i]
	})
	if len(sources) > numRivers {
		sources = sources[:numRivers]
	}

	for _, start := range sources {
		traceRiver(tiles, start, rng)
	}
}

// traceRiver walks from a source tile toward the coast, flagging the river
// edge on both sides of each traversed boundary.
func traceRiver(tiles world.TileMap, start world.HexCoord, rng *rand.Rand) {
	current := start
	visited := map[world.HexCoord]bool{start: true}
	const maxSteps = 40

	for step := 0; step < maxSteps; step++ {
		t := tiles.Get(current)
		if t == nil || t.Terrain.IsWater() {
			return
		}

		// Prefer a water neighbor; otherwise step to any unvisited land
		// neighbor, biased by the rng so rivers wander.
		next := world.Direction(-1)
		dirs := rng.Perm(6)
		for _, di := range dirs {
			d := world.Direction(di)
			n := tiles.Get(current.Neighbor(d))
			if n == nil || visited[n.Coord] {
				continue
			}
			if n.Terrain.IsWater() {
				next = d
				break
			}
			if next < 0 && n.Modifier != world.ModifierMountain {
				next = d
			}
		}
		if next < 0 {
			return
		}

		nc := current.Neighbor(next)
		t.RiverEdges[next] = true
		if n := tiles.Get(nc); n != nil {
			n.RiverEdges[next.Opposite()] = true
			if n.Terrain.IsWater() {
				return
			}
		}
		visited[nc] = true
		current = nc
	}
}

// SeedCity marks a city center at the given coordinate and scatters a few
// starter improvements around it, so freshly generated maps have something
// for the advisor to react to.
func SeedCity(tiles world.TileMap, coord world.HexCoord) {
	center := tiles.Get(coord)
	if center == nil {
		return
	}
	center.District = world.DistrictCityCenter
	center.Improvement = world.ImprovementNone
	center.Resource = nil

	for _, nc := range coord.Neighbors() {
		t := tiles.Get(nc)
		if t == nil || t.Terrain.IsWater() || t.District != world.DistrictNone {
			continue
		}
		switch {
		case t.Modifier == world.ModifierMountain:
			// Unworkable.
		case t.HasFeature(world.FeatureWoods):
			t.Improvement = world.ImprovementLumberMill
		case t.Modifier == world.ModifierHills:
			t.Improvement = world.ImprovementMine
		case t.Terrain == world.TerrainGrassland || t.Terrain == world.TerrainPlains:
			t.Improvement = world.ImprovementFarm
		}
	}
}

// BestCitySite returns the land coordinate closest to the map center that
// can host a city, preferring river tiles.
func BestCitySite(tiles world.TileMap) (world.HexCoord, bool) {
	best := world.HexCoord{}
	bestScore := math.Inf(-1)
	found := false

	for coord, t := range tiles {
		if t.Terrain.IsWater() || t.Modifier == world.ModifierMountain {
			continue
		}
		score := -float64(world.Distance(coord, world.HexCoord{}))
		if t.OnRiver() {
			score += 2
		}
		if score > bestScore || (score == bestScore && less(coord, best)) {
			best = coord
			bestScore = score
			found = true
		}
	}
	return best, found
}

// less gives a deterministic tie order over coordinates.
func less(a, b world.HexCoord) bool {
	if a.Q != b.Q {
		return a.Q < b.Q
	}
	return a.R < b.R
}

// TerrainCounts summarizes the terrain distribution of a map.
func TerrainCounts(tiles world.TileMap) map[world.Terrain]int {
	counts := make(map[world.Terrain]int)
	for _, t := range tiles {
		counts[t.Terrain]++
	}
	return counts
}

// octaveNoise layers multiple noise frequencies into fractal noise.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}
