package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorArithmetic(t *testing.T) {
	a := Vec2(3, 4)
	b := Vec2(-1, 2)

	assert.Equal(t, Vec2(2, 6), a.Add(b))
	assert.Equal(t, Vec2(4, 2), a.Sub(b))
	assert.Equal(t, Vec2(6, 8), a.Scale(2))
	assert.Equal(t, 25.0, a.AbsSq())
	assert.Equal(t, 5.0, a.Abs())
	assert.Equal(t, 5.0, a.Dot(b))
	assert.Equal(t, 10.0, a.Det(b))
}

func TestNormalize(t *testing.T) {
	n, err := Vec2(3, 4).Normalize()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, n.Abs(), 1e-12)
	assert.InDelta(t, 0.6, n.X, 1e-12)
	assert.InDelta(t, 0.8, n.Y, 1e-12)

	_, err = Vector2{}.Normalize()
	assert.ErrorIs(t, err, ErrZeroLength)
}

func TestClampLength(t *testing.T) {
	v := Vec2(6, 8).ClampLength(2)
	assert.InDelta(t, 2.0, v.Abs(), 1e-12)

	short := Vec2(0.5, 0)
	assert.Equal(t, short, short.ClampLength(2))
}

func TestPolar(t *testing.T) {
	v := Polar(2, math.Pi/2)
	assert.InDelta(t, 0.0, v.X, 1e-12)
	assert.InDelta(t, 2.0, v.Y, 1e-12)
}

func TestWinding(t *testing.T) {
	ccw := []Vector2{Vec2(0, 0), Vec2(1, 0), Vec2(1, 1), Vec2(0, 1)}
	cw := []Vector2{Vec2(0, 0), Vec2(0, 1), Vec2(1, 1), Vec2(1, 0)}

	assert.InDelta(t, 1.0, SignedArea(ccw), 1e-12)
	assert.InDelta(t, -1.0, SignedArea(cw), 1e-12)
	assert.True(t, IsCounterClockwise(ccw))
	assert.False(t, IsCounterClockwise(cw))
	assert.False(t, IsCounterClockwise(ccw[:2]))
}

func TestBounds(t *testing.T) {
	min, max := Bounds(Vec2(-3, 2), Vec2(4, -1), Vec2(0, 7))
	assert.Equal(t, Vec2(-3, -1), min)
	assert.Equal(t, Vec2(4, 7), max)

	min, max = Bounds()
	assert.Equal(t, Vector2{}, min)
	assert.Equal(t, Vector2{}, max)
}
