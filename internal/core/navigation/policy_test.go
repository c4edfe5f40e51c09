package navigation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/crowdsim/internal/core/systems/physics"
)

type fakeAgents struct {
	positions []physics.Vector2
	pref      []physics.Vector2
}

func newFakeAgents(positions ...physics.Vector2) *fakeAgents {
	return &fakeAgents{positions: positions, pref: make([]physics.Vector2, len(positions))}
}

func (f *fakeAgents) NumAgents() int                                { return len(f.positions) }
func (f *fakeAgents) AgentPosition(i int) physics.Vector2           { return f.positions[i] }
func (f *fakeAgents) SetAgentPrefVelocity(i int, v physics.Vector2) { f.pref[i] = v }

func TestDesiredVelocityFarIsUnit(t *testing.T) {
	v := DesiredVelocity(physics.Vec2(55, 55), physics.Vec2(-75, -75))
	assert.InDelta(t, 1.0, v.Abs(), 1e-12)
	assert.InDelta(t, -math.Sqrt2/2, v.X, 1e-12)
	assert.InDelta(t, -math.Sqrt2/2, v.Y, 1e-12)
}

func TestDesiredVelocityNearIsRaw(t *testing.T) {
	pos := physics.Vec2(10, 10)
	goal := physics.Vec2(10.25, 9.5)
	assert.Equal(t, goal.Sub(pos), DesiredVelocity(pos, goal))

	// exactly unit distance is not normalized either
	assert.Equal(t, physics.Vec2(1, 0), DesiredVelocity(physics.Vec2(0, 0), physics.Vec2(1, 0)))
}

func TestDesiredVelocityAtGoalIsZero(t *testing.T) {
	g := physics.Vec2(-75, 75)
	assert.Equal(t, physics.Vector2{}, DesiredVelocity(g, g))
}

func TestPerturbationBound(t *testing.T) {
	p := NewPolicy(nil, WithSeed(1))
	for i := 0; i < 100_000; i++ {
		assert.Less(t, p.Perturbation().Abs(), DefaultPerturbation)
	}

	wide := NewPolicy(nil, WithSeed(1), WithPerturbation(0.5))
	maxSeen := 0.0
	for i := 0; i < 10_000; i++ {
		maxSeen = math.Max(maxSeen, wide.Perturbation().Abs())
	}
	assert.Less(t, maxSeen, 0.5)
	// the nudge spans most of its range
	assert.Greater(t, maxSeen, 0.4)
}

func TestZeroPerturbation(t *testing.T) {
	p := NewPolicy(nil, WithSeed(1), WithPerturbation(0))
	assert.Equal(t, physics.Vector2{}, p.Perturbation())
}

func TestApplyTwiceKeepsGoalComponent(t *testing.T) {
	goals := []physics.Vector2{physics.Vec2(-75, -75), physics.Vec2(75, -75), physics.Vec2(3, 3)}
	agents := newFakeAgents(physics.Vec2(55, 55), physics.Vec2(-55, 55), physics.Vec2(3.5, 3))
	p := NewPolicy(goals, WithSeed(42))

	p.Apply(agents)
	first := append([]physics.Vector2(nil), agents.pref...)
	p.Apply(agents)
	second := agents.pref

	for i := range goals {
		want := DesiredVelocity(agents.positions[i], goals[i])
		assert.Less(t, first[i].Sub(want).Abs(), DefaultPerturbation, "agent %d", i)
		assert.Less(t, second[i].Sub(want).Abs(), DefaultPerturbation, "agent %d", i)
		assert.NotEqual(t, first[i], second[i], "agent %d perturbation did not change", i)
	}
}

func TestApplyNormalizationGuard(t *testing.T) {
	goals := []physics.Vector2{physics.Vec2(100, 0), physics.Vec2(0.3, 0.4)}
	agents := newFakeAgents(physics.Vec2(0, 0), physics.Vec2(0, 0))
	NewPolicy(goals, WithPerturbation(0)).Apply(agents)

	assert.Equal(t, physics.Vec2(1, 0), agents.pref[0])
	assert.Equal(t, physics.Vec2(0.3, 0.4), agents.pref[1])
}

func TestSeedIsReproducible(t *testing.T) {
	goals := []physics.Vector2{physics.Vec2(-75, -75)}
	a := newFakeAgents(physics.Vec2(55, 55))
	b := newFakeAgents(physics.Vec2(55, 55))

	pa := NewPolicy(goals, WithSeed(9))
	pb := NewPolicy(goals, WithSeed(9))
	for i := 0; i < 10; i++ {
		pa.Apply(a)
		pb.Apply(b)
		require.Equal(t, a.pref, b.pref)
	}
	assert.Equal(t, 1, pa.NumGoals())
	assert.Equal(t, goals[0], pa.Goal(0))
	assert.Equal(t, DefaultPerturbation, pa.Epsilon())
}
