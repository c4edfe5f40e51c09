package engine

import (
	"fmt"

	"github.com/zeusync/crowdsim/internal/core/systems/physics"
)

var _ Engine = (*Kinematic)(nil)

type agent struct {
	position     physics.Vector2
	velocity     physics.Vector2
	prefVelocity physics.Vector2
	defaults     AgentDefaults
}

// Kinematic is a reference engine without avoidance: each step an agent
// takes its preferred velocity, capped at its max speed, and integrates
// it over one time step. It enforces the full configuration contract, so
// scenarios built against it are valid for any conforming engine.
type Kinematic struct {
	timeStep   float64
	globalTime float64
	defaults   *AgentDefaults
	agents     []*agent
	obstacles  [][]physics.Vector2
	processed  bool
}

func NewKinematic() *Kinematic {
	return &Kinematic{}
}

func (k *Kinematic) SetTimeStep(dt float64) error {
	if dt <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidTimeStep, dt)
	}
	k.timeStep = dt
	return nil
}

func (k *Kinematic) TimeStep() float64 { return k.timeStep }

func (k *Kinematic) GlobalTime() float64 { return k.globalTime }

func (k *Kinematic) SetAgentDefaults(defaults AgentDefaults) error {
	d := defaults
	k.defaults = &d
	return nil
}

func (k *Kinematic) AddAgent(position physics.Vector2) (int, error) {
	if k.defaults == nil {
		return -1, ErrNoAgentDefaults
	}
	k.agents = append(k.agents, &agent{
		position: position,
		velocity: k.defaults.Velocity,
		defaults: *k.defaults,
	})
	return len(k.agents) - 1, nil
}

func (k *Kinematic) AddObstacle(vertices []physics.Vector2) error {
	if k.processed {
		return ErrObstaclesProcessed
	}
	if len(vertices) < 2 {
		return fmt.Errorf("%w: got %d", ErrObstacleTooFewVertices, len(vertices))
	}
	if len(vertices) > 2 && !physics.IsCounterClockwise(vertices) {
		return fmt.Errorf("obstacle %d: %w", len(k.obstacles), ErrObstacleNotCounterClockwise)
	}
	k.obstacles = append(k.obstacles, append([]physics.Vector2(nil), vertices...))
	return nil
}

func (k *Kinematic) ProcessObstacles() error {
	if k.processed {
		return ErrObstaclesProcessed
	}
	k.processed = true
	return nil
}

// NumObstacles returns how many polygons were registered.
func (k *Kinematic) NumObstacles() int { return len(k.obstacles) }

// Obstacle returns a copy of the i-th polygon.
func (k *Kinematic) Obstacle(i int) []physics.Vector2 {
	return append([]physics.Vector2(nil), k.obstacles[i]...)
}

func (k *Kinematic) DoStep() error {
	if !k.processed {
		return ErrObstaclesNotProcessed
	}
	if k.timeStep <= 0 {
		return ErrInvalidTimeStep
	}
	for _, a := range k.agents {
		a.velocity = a.prefVelocity.ClampLength(a.defaults.MaxSpeed)
		a.position = a.position.Add(a.velocity.Scale(k.timeStep))
	}
	k.globalTime += k.timeStep
	return nil
}

func (k *Kinematic) NumAgents() int { return len(k.agents) }

func (k *Kinematic) AgentPosition(i int) physics.Vector2 { return k.agents[i].position }

func (k *Kinematic) AgentVelocity(i int) physics.Vector2 { return k.agents[i].velocity }

func (k *Kinematic) AgentRadius(i int) float64 { return k.agents[i].defaults.Radius }

func (k *Kinematic) AgentPrefVelocity(i int) physics.Vector2 { return k.agents[i].prefVelocity }

func (k *Kinematic) SetAgentPrefVelocity(i int, v physics.Vector2) { k.agents[i].prefVelocity = v }
