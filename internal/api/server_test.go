package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/talgya/hexplan/internal/world"
)

// testServer builds a server over a small map: a city center at the origin
// with two mountains and a rainforest around it.
func testServer() *Server {
	tiles := make(world.TileMap)
	center := world.HexCoord{Q: 0, R: 0}
	tiles.Set(&world.Tile{Coord: center, Terrain: world.TerrainGrassland, District: world.DistrictCityCenter})
	for i, nc := range center.Neighbors() {
		t := &world.Tile{Coord: nc, Terrain: world.TerrainGrassland}
		switch i {
		case 0, 1:
			t.Modifier = world.ModifierMountain
		case 2:
			t.Features = []world.Feature{world.FeatureRainforest}
		}
		tiles.Set(t)
	}
	return &Server{Tiles: tiles, MapID: "test-map", MapName: "Test", Port: 0}
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandleAdjacency(t *testing.T) {
	h := testServer().Handler()

	// The tile SW of the origin neighbors the city center only; the
	// mountains and rainforest sit on the far side, so a campus here
	// scores just the generic district bonus (0.5, floored to 0).
	rec := get(t, h, "/api/v1/adjacency?q=-1&r=1&district=campus")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var view struct {
		District string `json:"district"`
		Bonus    int    `json:"bonus"`
		Rating   string `json:"rating"`
		Color    string `json:"color"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if view.District != "Campus" {
		t.Errorf("district = %q, want Campus", view.District)
	}
	if view.Bonus != 0 || view.Rating != "Poor" || view.Color != "gray" {
		t.Errorf("view = %+v, want bonus 0 Poor/gray", view)
	}

	// A campus between the mountains scores their adjacency.
	rec = get(t, h, "/api/v1/adjacency?q=1&r=-1&district=campus")
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if view.Bonus < 1 {
		t.Errorf("mountain-adjacent campus bonus = %d, want >= 1", view.Bonus)
	}
}

func TestHandleAdjacencyBadParams(t *testing.T) {
	h := testServer().Handler()
	for _, path := range []string{
		"/api/v1/adjacency?q=x&r=0&district=campus",
		"/api/v1/adjacency?q=0&district=campus",
		"/api/v1/adjacency?q=0&r=0&district=nonsense",
		"/api/v1/adjacency?q=0&r=0",
	} {
		if rec := get(t, h, path); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", path, rec.Code)
		}
	}
}

func TestHandleOverlaySortedAndPlaceableOnly(t *testing.T) {
	h := testServer().Handler()
	rec := get(t, h, "/api/v1/overlay?district=campus")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var views []struct {
		Coord world.HexCoord `json:"coord"`
		Bonus int            `json:"bonus"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &views); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// 7 tiles minus the city center and two mountains.
	if len(views) != 4 {
		t.Fatalf("overlay has %d entries, want 4", len(views))
	}
	for i := 1; i < len(views); i++ {
		if views[i].Bonus > views[i-1].Bonus {
			t.Errorf("overlay not sorted at %d: %+v", i, views)
		}
	}
}

func TestHandleBestRespectsLimit(t *testing.T) {
	h := testServer().Handler()
	rec := get(t, h, "/api/v1/best?limit=3")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var views []struct {
		Bonus int `json:"bonus"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &views); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(views) > 3 {
		t.Errorf("best returned %d entries, want <= 3", len(views))
	}
	for _, v := range views {
		if v.Bonus <= 0 {
			t.Errorf("best includes zero-bonus entry: %+v", v)
		}
	}

	if rec := get(t, h, "/api/v1/best?limit=0"); rec.Code != http.StatusBadRequest {
		t.Errorf("limit=0 status = %d, want 400", rec.Code)
	}
}

func TestWriteJSONUnencodableValue(t *testing.T) {
	// Encode failures are logged, not propagated; the handler must not
	// panic when handed a value json cannot marshal.
	rec := httptest.NewRecorder()
	writeJSON(rec, make(chan int))
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q, want application/json", ct)
	}
}

func TestHandleStatusAndMap(t *testing.T) {
	h := testServer().Handler()

	rec := get(t, h, "/api/v1/status")
	var status struct {
		MapID string `json:"map_id"`
		Tiles int    `json:"tiles"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if status.MapID != "test-map" || status.Tiles != 7 {
		t.Errorf("status = %+v", status)
	}

	rec = get(t, h, "/api/v1/map")
	var tiles []struct {
		Coord       world.HexCoord `json:"coord"`
		TerrainName string         `json:"terrain_name"`
		Pixel       world.Pixel    `json:"pixel"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &tiles); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(tiles) != 7 {
		t.Errorf("map dump has %d tiles, want 7", len(tiles))
	}
	for _, tv := range tiles {
		if tv.TerrainName == "" {
			t.Errorf("tile %v missing terrain name", tv.Coord)
		}
	}
}
