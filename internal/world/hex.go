// Package world provides the hex grid and tile data structures.
// Uses axial coordinates (q, r) for a flat-top hex grid.
package world

import (
	"fmt"
	"strconv"
	"strings"
)

// HexCoord represents a position on the hex grid using axial coordinates.
// The third cube coordinate s is derived: s = -q - r.
type HexCoord struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// S returns the implicit third cube coordinate.
func (h HexCoord) S() int {
	return -h.Q - h.R
}

// Key returns the canonical "q,r" map key for this coordinate.
func (h HexCoord) Key() string {
	return strconv.Itoa(h.Q) + "," + strconv.Itoa(h.R)
}

// ParseKey parses a canonical "q,r" key back into a coordinate.
// A malformed key is a caller contract violation; ok reports validity.
func ParseKey(key string) (HexCoord, bool) {
	qs, rs, found := strings.Cut(key, ",")
	if !found {
		return HexCoord{}, false
	}
	q, err := strconv.Atoi(strings.TrimSpace(qs))
	if err != nil {
		return HexCoord{}, false
	}
	r, err := strconv.Atoi(strings.TrimSpace(rs))
	if err != nil {
		return HexCoord{}, false
	}
	return HexCoord{Q: q, R: r}, true
}

// Direction indexes the six hex edges/neighbors.
type Direction int

const (
	DirE Direction = iota
	DirNE
	DirNW
	DirW
	DirSW
	DirSE
)

// HexNeighborDirections defines the six neighbor offsets in axial coordinates,
// ordered E, NE, NW, W, SW, SE. The order is a contract: callers index edge
// data (river edges) by direction.
var HexNeighborDirections = [6]HexCoord{
	{Q: 1, R: 0},  // E
	{Q: 1, R: -1}, // NE
	{Q: 0, R: -1}, // NW
	{Q: -1, R: 0}, // W
	{Q: -1, R: 1}, // SW
	{Q: 0, R: 1},  // SE
}

// Opposite returns the direction of the shared edge as seen from the
// neighboring hex.
func (d Direction) Opposite() Direction {
	return (d + 3) % 6
}

// Neighbors returns the six adjacent hex coordinates in E, NE, NW, W, SW, SE
// order.
func (h HexCoord) Neighbors() [6]HexCoord {
	var result [6]HexCoord
	for i, dir := range HexNeighborDirections {
		result[i] = HexCoord{Q: h.Q + dir.Q, R: h.R + dir.R}
	}
	return result
}

// Neighbor returns the adjacent coordinate in the given direction.
func (h HexCoord) Neighbor(d Direction) HexCoord {
	dir := HexNeighborDirections[d]
	return HexCoord{Q: h.Q + dir.Q, R: h.R + dir.R}
}

// Distance returns the hex distance between two coordinates:
// (|dq| + |dq+dr| + |dr|) / 2.
func Distance(a, b HexCoord) int {
	dq := a.Q - b.Q
	dr := a.R - b.R
	return (abs(dq) + abs(dq+dr) + abs(dr)) / 2
}

// HexesInRange returns every coordinate within n steps of center, inclusive
// of the center itself. The result holds 1 + 3n(n+1) coordinates for n >= 0.
func HexesInRange(center HexCoord, n int) []HexCoord {
	if n < 0 {
		return nil
	}
	result := make([]HexCoord, 0, 1+3*n*(n+1))
	for dq := -n; dq <= n; dq++ {
		lo := -n
		if -dq-n > lo {
			lo = -dq - n
		}
		hi := n
		if -dq+n < hi {
			hi = -dq + n
		}
		for dr := lo; dr <= hi; dr++ {
			result = append(result, HexCoord{Q: center.Q + dq, R: center.R + dr})
		}
	}
	return result
}

// String returns the coordinate in "(q, r)" form.
func (h HexCoord) String() string {
	return fmt.Sprintf("(%d, %d)", h.Q, h.R)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
