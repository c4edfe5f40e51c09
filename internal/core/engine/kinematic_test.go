package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeusync/crowdsim/internal/core/systems/physics"
)

var square = []physics.Vector2{
	physics.Vec2(0, 0), physics.Vec2(1, 0), physics.Vec2(1, 1), physics.Vec2(0, 1),
}

func newEngine(t *testing.T) *Kinematic {
	t.Helper()
	k := NewKinematic()
	require.NoError(t, k.SetTimeStep(0.5))
	require.NoError(t, k.SetAgentDefaults(AgentDefaults{Radius: 2, MaxSpeed: 2}))
	return k
}

func TestAddAgentIndices(t *testing.T) {
	k := NewKinematic()
	_, err := k.AddAgent(physics.Vec2(0, 0))
	assert.ErrorIs(t, err, ErrNoAgentDefaults)

	k = newEngine(t)
	for want := 0; want < 3; want++ {
		got, err := k.AddAgent(physics.Vec2(float64(want), 0))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.Equal(t, 3, k.NumAgents())
	assert.Equal(t, physics.Vec2(2, 0), k.AgentPosition(2))
	assert.Equal(t, 2.0, k.AgentRadius(1))
}

func TestInvalidTimeStep(t *testing.T) {
	k := NewKinematic()
	assert.ErrorIs(t, k.SetTimeStep(0), ErrInvalidTimeStep)
	assert.ErrorIs(t, k.SetTimeStep(-1), ErrInvalidTimeStep)
}

func TestObstacleValidation(t *testing.T) {
	k := newEngine(t)

	assert.ErrorIs(t, k.AddObstacle(square[:1]), ErrObstacleTooFewVertices)

	reversed := []physics.Vector2{square[3], square[2], square[1], square[0]}
	assert.ErrorIs(t, k.AddObstacle(reversed), ErrObstacleNotCounterClockwise)

	require.NoError(t, k.AddObstacle(square))
	require.NoError(t, k.AddObstacle(square[:2]))
	assert.Equal(t, 2, k.NumObstacles())
	assert.Equal(t, square, k.Obstacle(0))
}

func TestProcessObstaclesLifecycle(t *testing.T) {
	k := newEngine(t)
	require.NoError(t, k.AddObstacle(square))

	assert.ErrorIs(t, k.DoStep(), ErrObstaclesNotProcessed)

	require.NoError(t, k.ProcessObstacles())
	assert.ErrorIs(t, k.ProcessObstacles(), ErrObstaclesProcessed)
	assert.ErrorIs(t, k.AddObstacle(square), ErrObstaclesProcessed)
	assert.NoError(t, k.DoStep())
}

func TestDoStepIntegratesClampedVelocity(t *testing.T) {
	k := newEngine(t)
	i, err := k.AddAgent(physics.Vec2(0, 0))
	require.NoError(t, err)
	require.NoError(t, k.ProcessObstacles())

	k.SetAgentPrefVelocity(i, physics.Vec2(1, 0))
	assert.Equal(t, physics.Vec2(1, 0), k.AgentPrefVelocity(i))
	require.NoError(t, k.DoStep())
	assert.InDelta(t, 0.5, k.AgentPosition(i).X, 1e-12)
	assert.InDelta(t, 0.5, k.GlobalTime(), 1e-12)

	// faster than max speed is capped at 2
	k.SetAgentPrefVelocity(i, physics.Vec2(0, 10))
	require.NoError(t, k.DoStep())
	assert.InDelta(t, 2.0, k.AgentVelocity(i).Abs(), 1e-12)
	assert.InDelta(t, 1.0, k.AgentPosition(i).Y, 1e-12)
	assert.InDelta(t, 1.0, k.GlobalTime(), 1e-12)
}
