// Pixel-space geometry for the flat-top hex grid: axial/pixel conversion,
// fractional rounding, and polygon corners for rendering.
package world

import "math"

// HexRadius is the center-to-corner distance in pixels. Hex width and
// height derive from it: width = 2*radius, height = sqrt(3)*radius.
const HexRadius = 32.0

// Pixel is a point in render space.
type Pixel struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// AxialToPixel converts an axial coordinate to the pixel center of its hex.
func AxialToPixel(h HexCoord) Pixel {
	return Pixel{
		X: HexRadius * 1.5 * float64(h.Q),
		Y: HexRadius * math.Sqrt(3) * (float64(h.R) + float64(h.Q)/2),
	}
}

// PixelToAxial converts a pixel position to the hex containing it. The
// inverse transform yields fractional axial coordinates which are then
// rounded to the nearest valid hex.
func PixelToAxial(x, y float64) HexCoord {
	fq := x * (2.0 / 3.0) / HexRadius
	fr := (-x/3.0 + math.Sqrt(3)/3.0*y) / HexRadius
	return RoundAxial(fq, fr)
}

// RoundAxial rounds fractional axial coordinates to the nearest hex using
// cube rounding: round q, r, and the derived s independently, then recompute
// the coordinate with the largest rounding error from the other two so the
// constraint q+r+s = 0 holds.
func RoundAxial(fq, fr float64) HexCoord {
	fs := -fq - fr

	q := math.Round(fq)
	r := math.Round(fr)
	s := math.Round(fs)

	dq := math.Abs(q - fq)
	dr := math.Abs(r - fr)
	ds := math.Abs(s - fs)

	if dq > dr && dq > ds {
		q = -r - s
	} else if dr > ds {
		r = -q - s
	}
	// s is derived; no need to fix it up.

	return HexCoord{Q: int(q), R: int(r)}
}

// HexCorners returns the six corner points of a flat-top hex centered at the
// given pixel, at 0°, 60°, ... 300° from center. The order is fixed for
// polygon-drawing consumers.
func HexCorners(center Pixel) [6]Pixel {
	var corners [6]Pixel
	for i := 0; i < 6; i++ {
		angle := float64(i) * math.Pi / 3
		corners[i] = Pixel{
			X: center.X + HexRadius*math.Cos(angle),
			Y: center.Y + HexRadius*math.Sin(angle),
		}
	}
	return corners
}
