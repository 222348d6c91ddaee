// Package api provides the HTTP API for querying adjacency overlays.
// All endpoints are GET and read-only: the server holds an immutable tile
// snapshot and every calculation is pure, so handlers are safe to run
// concurrently.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/talgya/hexplan/internal/adjacency"
	"github.com/talgya/hexplan/internal/world"
)

// Server serves adjacency overlays for one loaded map.
type Server struct {
	Tiles      world.TileMap
	MapID      string
	MapName    string
	DefaultCiv string
	Port       int

	started time.Time
}

// Handler builds the route table. Split out from Start for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/adjacency", s.handleAdjacency)
	mux.HandleFunc("/api/v1/overlay", s.handleOverlay)
	mux.HandleFunc("/api/v1/best", s.handleBest)
	mux.HandleFunc("/api/v1/map", s.handleMap)

	return corsMiddleware(logMiddleware(mux))
}

// Start serves the HTTP API, blocking until the listener fails.
func (s *Server) Start() error {
	s.started = time.Now()
	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "map", s.MapID, "tiles", len(s.Tiles))
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"map_id":      s.MapID,
		"map_name":    s.MapName,
		"tiles":       len(s.Tiles),
		"default_civ": s.DefaultCiv,
		"uptime_sec":  int(time.Since(s.started).Seconds()),
	})
}

// resultView decorates an adjacency result with display fields.
type resultView struct {
	District string             `json:"district"`
	Coord    world.HexCoord     `json:"coord"`
	Bonus    int                `json:"bonus"`
	Rating   adjacency.Rating   `json:"rating"`
	Color    string             `json:"color"`
	Sources  []adjacency.Source `json:"breakdown"`
}

func viewOf(coord world.HexCoord, r adjacency.Result) resultView {
	return resultView{
		District: r.District.String(),
		Coord:    coord,
		Bonus:    r.Bonus,
		Rating:   adjacency.RatingForBonus(r.Bonus),
		Color:    adjacency.ColorForBonus(r.Bonus),
		Sources:  r.Breakdown,
	}
}

// handleAdjacency scores one (coordinate, district) pair.
// GET /api/v1/adjacency?q=1&r=-2&district=campus&civ=japan
func (s *Server) handleAdjacency(w http.ResponseWriter, r *http.Request) {
	coord, ok := coordParam(r)
	if !ok {
		http.Error(w, "q and r must be integers", http.StatusBadRequest)
		return
	}
	district, ok := world.DistrictFromName(r.URL.Query().Get("district"))
	if !ok {
		http.Error(w, "unknown district", http.StatusBadRequest)
		return
	}

	result := adjacency.Calculate(coord, district, s.Tiles, s.civParam(r))
	writeJSON(w, viewOf(coord, result))
}

// handleOverlay scores every placeable tile for one district.
// GET /api/v1/overlay?district=campus&civ=brazil
func (s *Server) handleOverlay(w http.ResponseWriter, r *http.Request) {
	district, ok := world.DistrictFromName(r.URL.Query().Get("district"))
	if !ok {
		http.Error(w, "unknown district", http.StatusBadRequest)
		return
	}
	civ := s.civParam(r)

	views := make([]resultView, 0, len(s.Tiles))
	for coord, tile := range s.Tiles {
		if !placeable(tile) {
			continue
		}
		views = append(views, viewOf(coord, adjacency.Calculate(coord, district, s.Tiles, civ)))
	}
	sortViews(views)
	writeJSON(w, views)
}

// handleBest returns the top placements across all specialty districts.
// GET /api/v1/best?civ=germany&limit=10
func (s *Server) handleBest(w http.ResponseWriter, r *http.Request) {
	civ := s.civParam(r)
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	var views []resultView
	for coord, tile := range s.Tiles {
		if !placeable(tile) {
			continue
		}
		for _, result := range adjacency.CalculateAll(coord, s.Tiles, civ) {
			if result.Bonus > 0 {
				views = append(views, viewOf(coord, result))
			}
		}
	}
	sortViews(views)
	if len(views) > limit {
		views = views[:limit]
	}
	writeJSON(w, views)
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	type tileView struct {
		*world.Tile
		TerrainName string      `json:"terrain_name"`
		Pixel       world.Pixel `json:"pixel"`
	}
	views := make([]tileView, 0, len(s.Tiles))
	for _, tile := range s.Tiles {
		views = append(views, tileView{
			Tile:        tile,
			TerrainName: world.TerrainName(tile.Terrain),
			Pixel:       world.AxialToPixel(tile.Coord),
		})
	}
	sort.Slice(views, func(i, j int) bool {
		a, b := views[i].Coord, views[j].Coord
		if a.Q != b.Q {
			return a.Q < b.Q
		}
		return a.R < b.R
	})
	writeJSON(w, views)
}

// placeable filters tiles a district could plausibly occupy; mountains and
// already-districted tiles are skipped in bulk scans.
func placeable(t *world.Tile) bool {
	return t.Modifier != world.ModifierMountain && t.District == world.DistrictNone
}

// sortViews orders by descending bonus with a deterministic coordinate tie
// order so overlay output is stable.
func sortViews(views []resultView) {
	sort.SliceStable(views, func(i, j int) bool {
		if views[i].Bonus != views[j].Bonus {
			return views[i].Bonus > views[j].Bonus
		}
		a, b := views[i].Coord, views[j].Coord
		if a.Q != b.Q {
			return a.Q < b.Q
		}
		return a.R < b.R
	})
}

func (s *Server) civParam(r *http.Request) string {
	if civ := r.URL.Query().Get("civ"); civ != "" {
		return civ
	}
	return s.DefaultCiv
}

func coordParam(r *http.Request) (world.HexCoord, bool) {
	q, err := strconv.Atoi(r.URL.Query().Get("q"))
	if err != nil {
		return world.HexCoord{}, false
	}
	rr, err := strconv.Atoi(r.URL.Query().Get("r"))
	if err != nil {
		return world.HexCoord{}, false
	}
	return world.HexCoord{Q: q, R: rr}, true
}

func logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("request", "method", r.Method, "path", r.URL.Path, "dur", time.Since(start))
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	allowedOrigins := map[string]bool{
		"http://localhost:5173": true,
		"http://localhost:3000": true,
	}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				allowedOrigins[origin] = true
			}
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		slog.Error("write response", "error", err)
	}
}
