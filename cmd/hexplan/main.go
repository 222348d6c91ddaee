// Command hexplan is the district placement advisor CLI: generate demo
// maps, score placements, and serve the overlay API.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	humanize "github.com/dustin/go-humanize"

	"github.com/talgya/hexplan/internal/adjacency"
	"github.com/talgya/hexplan/internal/api"
	"github.com/talgya/hexplan/internal/config"
	"github.com/talgya/hexplan/internal/mapgen"
	"github.com/talgya/hexplan/internal/persistence"
	"github.com/talgya/hexplan/internal/world"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "generate":
		err = runGenerate(os.Args[2:])
	case "advise":
		err = runAdvise(os.Args[2:])
	case "serve":
		err = runServe(os.Args[2:])
	case "maps":
		err = runMaps(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		slog.Error("command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: hexplan <command> [flags]

commands:
  generate   generate a demo map and save it
  advise     score district placements on a saved map
  serve      serve the overlay HTTP API for a saved map
  maps       list saved maps`)
}

func openDB(cfg config.Config) (*persistence.DB, error) {
	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	return persistence.Open(cfg.DBPath)
}

func runGenerate(args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	cfgPath := fs.String("config", "hexplan.yaml", "config file")
	name := fs.String("name", "demo", "map name")
	seed := fs.Int64("seed", 0, "generator seed (0 = random)")
	radius := fs.Int("radius", 0, "map radius (0 = config default)")
	civ := fs.String("civ", "", "civilization id to store with the map")
	fs.Parse(args)

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	gen := cfg.Generator
	if *seed != 0 {
		gen.Seed = *seed
	}
	if *radius > 0 {
		gen.Radius = *radius
	}

	tiles := mapgen.Generate(gen)
	if site, ok := mapgen.BestCitySite(tiles); ok {
		mapgen.SeedCity(tiles, site)
		slog.Info("city seeded", "coord", site)
	}

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := db.SaveMap(*name, *civ, tiles)
	if err != nil {
		return err
	}

	slog.Info("map generated",
		"id", id,
		"name", *name,
		"tiles", humanize.Comma(int64(len(tiles))),
		"radius", gen.Radius,
	)
	for terrain, count := range mapgen.TerrainCounts(tiles) {
		slog.Info("terrain", "type", world.TerrainName(terrain), "count", count)
	}
	return nil
}

// latestMap resolves an explicit map id, falling back to the newest save.
func latestMap(db *persistence.DB, id string) (string, error) {
	if id != "" {
		return id, nil
	}
	infos, err := db.ListMaps()
	if err != nil {
		return "", err
	}
	if len(infos) == 0 {
		return "", fmt.Errorf("no saved maps; run hexplan generate first")
	}
	return infos[0].ID, nil
}

func runAdvise(args []string) error {
	fs := flag.NewFlagSet("advise", flag.ExitOnError)
	cfgPath := fs.String("config", "hexplan.yaml", "config file")
	mapID := fs.String("map", "", "map id (default: newest)")
	districtName := fs.String("district", "", "district to score (default: all specialty districts)")
	civ := fs.String("civ", "", "civilization id")
	top := fs.Int("top", 10, "number of placements to print")
	save := fs.Bool("save", false, "save the printed placements as plans")
	fs.Parse(args)

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	if *civ == "" {
		*civ = cfg.DefaultCiv
	}

	districts := adjacency.SpecialtyDistricts[:]
	if *districtName != "" {
		d, ok := world.DistrictFromName(*districtName)
		if !ok {
			return fmt.Errorf("unknown district %q", *districtName)
		}
		districts = []world.District{d}
	}

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := latestMap(db, *mapID)
	if err != nil {
		return err
	}
	tiles, err := db.LoadMap(id)
	if err != nil {
		return err
	}

	type placement struct {
		coord  world.HexCoord
		result adjacency.Result
	}
	var placements []placement
	for coord, tile := range tiles {
		if tile.Modifier == world.ModifierMountain || tile.District != world.DistrictNone {
			continue
		}
		for _, d := range districts {
			r := adjacency.Calculate(coord, d, tiles, *civ)
			if r.Bonus > 0 {
				placements = append(placements, placement{coord, r})
			}
		}
	}
	sort.SliceStable(placements, func(i, j int) bool {
		if placements[i].result.Bonus != placements[j].result.Bonus {
			return placements[i].result.Bonus > placements[j].result.Bonus
		}
		return coordLess(placements[i].coord, placements[j].coord)
	})
	if len(placements) > *top {
		placements = placements[:*top]
	}

	slog.Info("placements scored", "map", id, "civ", *civ, "shown", len(placements))
	for _, p := range placements {
		fmt.Printf("%-9s %-22s %2d  %-9s", p.coord, p.result.District, p.result.Bonus,
			adjacency.RatingForBonus(p.result.Bonus))
		for _, s := range p.result.Breakdown {
			fmt.Printf("  %s ×%d=%.1f", s.Name, s.Count, s.Total)
		}
		fmt.Println()

		if *save {
			if err := db.SavePlan(id, p.coord, p.result, false); err != nil {
				return err
			}
		}
	}
	return nil
}

func coordLess(a, b world.HexCoord) bool {
	if a.Q != b.Q {
		return a.Q < b.Q
	}
	return a.R < b.R
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfgPath := fs.String("config", "hexplan.yaml", "config file")
	mapID := fs.String("map", "", "map id (default: newest)")
	port := fs.Int("port", 0, "listen port (0 = config default)")
	fs.Parse(args)

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	if *port == 0 {
		*port = cfg.APIPort
	}

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := latestMap(db, *mapID)
	if err != nil {
		return err
	}
	tiles, err := db.LoadMap(id)
	if err != nil {
		return err
	}

	var name, civ string
	if infos, err := db.ListMaps(); err == nil {
		for _, info := range infos {
			if info.ID == id {
				name, civ = info.Name, info.Civ
			}
		}
	}

	server := &api.Server{
		Tiles:      tiles,
		MapID:      id,
		MapName:    name,
		DefaultCiv: civ,
		Port:       *port,
	}
	return server.Start()
}

func runMaps(args []string) error {
	fs := flag.NewFlagSet("maps", flag.ExitOnError)
	cfgPath := fs.String("config", "hexplan.yaml", "config file")
	fs.Parse(args)

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	infos, err := db.ListMaps()
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		fmt.Println("no saved maps")
		return nil
	}
	for _, info := range infos {
		civ := info.Civ
		if civ == "" {
			civ = "-"
		}
		fmt.Printf("%s  %-20s civ=%-10s tiles=%-6s saved %s\n",
			info.ID, info.Name, civ,
			humanize.Comma(int64(info.TileCount)),
			humanize.Time(info.CreatedAt))
	}
	return nil
}
