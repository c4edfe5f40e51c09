package physics

import (
	"github.com/paulmach/orb"
)

// Ring converts a vertex list into an open orb ring.
func Ring(vertices []Vector2) orb.Ring {
	r := make(orb.Ring, len(vertices))
	for i, v := range vertices {
		r[i] = orb.Point{v.X, v.Y}
	}
	return r
}

// SignedArea returns the shoelace area of the polygon; positive when the
// vertices wind counter-clockwise.
func SignedArea(vertices []Vector2) float64 {
	n := len(vertices)
	if n < 3 {
		return 0
	}
	area := 0.0
	for i := 0; i < n; i++ {
		area += vertices[i].Det(vertices[(i+1)%n])
	}
	return area / 2
}

// IsCounterClockwise reports whether a polygon winds counter-clockwise.
// Degenerate polygons (zero area) are neither.
func IsCounterClockwise(vertices []Vector2) bool {
	if len(vertices) < 3 {
		return false
	}
	return Ring(vertices).Orientation() == orb.CCW
}

// Bounds returns the axis-aligned bounding box of a set of points.
func Bounds(points ...Vector2) (min, max Vector2) {
	if len(points) == 0 {
		return
	}
	b := orb.MultiPoint(Ring(points)).Bound()
	return Vector2{X: b.Min.X(), Y: b.Min.Y()}, Vector2{X: b.Max.X(), Y: b.Max.Y()}
}
