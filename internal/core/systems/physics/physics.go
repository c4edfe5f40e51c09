package physics

// Lightweight 2D geometry shared by the scenario, the navigation policy
// and the engine contract. Values are always passed by copy.

import (
	"errors"
	"math"
)

// ErrZeroLength is returned when a zero vector has no direction to keep.
var ErrZeroLength = errors.New("cannot normalize a zero-length vector")

// Vector2 is a 2D point or displacement.
type Vector2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Vec2 is shorthand for Vector2{X: x, Y: y}.
func Vec2(x, y float64) Vector2 { return Vector2{X: x, Y: y} }

// Polar returns a vector of the given length pointing at angle radians.
func Polar(length, angle float64) Vector2 {
	return Vector2{X: length * math.Cos(angle), Y: length * math.Sin(angle)}
}

func (v Vector2) Add(o Vector2) Vector2   { return Vector2{X: v.X + o.X, Y: v.Y + o.Y} }
func (v Vector2) Sub(o Vector2) Vector2   { return Vector2{X: v.X - o.X, Y: v.Y - o.Y} }
func (v Vector2) Scale(s float64) Vector2 { return Vector2{X: v.X * s, Y: v.Y * s} }
func (v Vector2) Neg() Vector2            { return Vector2{X: -v.X, Y: -v.Y} }

// Dot returns the scalar product.
func (v Vector2) Dot(o Vector2) float64 { return v.X*o.X + v.Y*o.Y }

// Det returns the 2D cross product (determinant of the 2x2 matrix [v o]).
func (v Vector2) Det(o Vector2) float64 { return v.X*o.Y - v.Y*o.X }

// AbsSq returns the squared length.
func (v Vector2) AbsSq() float64 { return v.Dot(v) }

// Abs returns the length.
func (v Vector2) Abs() float64 { return math.Sqrt(v.AbsSq()) }

// Normalize returns the unit vector with the same direction.
func (v Vector2) Normalize() (Vector2, error) {
	l := v.Abs()
	if l == 0 {
		return Vector2{}, ErrZeroLength
	}
	return v.Scale(1 / l), nil
}

// ClampLength shortens v to at most max, keeping its direction.
func (v Vector2) ClampLength(max float64) Vector2 {
	if sq := v.AbsSq(); sq > max*max {
		return v.Scale(max / math.Sqrt(sq))
	}
	return v
}

// DistanceSq returns the squared distance between two points.
func DistanceSq(a, b Vector2) float64 { return a.Sub(b).AbsSq() }

// Distance returns the Euclidean distance between two points.
func Distance(a, b Vector2) float64 { return math.Hypot(b.X-a.X, b.Y-a.Y) }
