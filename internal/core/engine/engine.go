package engine

import "github.com/zeusync/crowdsim/internal/core/systems/physics"

// Engine is the simulation engine the scenario driver steers. Collision
// avoidance, neighbour search and obstacle preprocessing are owned by the
// implementation.
//
// Agents are addressed by the index AddAgent returned. Indices start at 0,
// grow by one per agent and never change. An out-of-range index is a
// programming error and may panic.
type Engine interface {
	// Configuration, before any agent is added

	SetTimeStep(dt float64) error
	SetAgentDefaults(defaults AgentDefaults) error

	// Scenario construction

	AddAgent(position physics.Vector2) (int, error)
	// AddObstacle registers one polygon, vertices in counter-clockwise order.
	AddObstacle(vertices []physics.Vector2) error
	// ProcessObstacles finalizes the obstacle set. It must run exactly once,
	// after the last AddObstacle and before the first DoStep.
	ProcessObstacles() error

	// Simulation

	DoStep() error
	GlobalTime() float64
	TimeStep() float64

	// Agent state

	NumAgents() int
	AgentPosition(i int) physics.Vector2
	AgentPrefVelocity(i int) physics.Vector2
	SetAgentPrefVelocity(i int, v physics.Vector2)
}

// AgentDefaults is applied to every agent added after it is set.
type AgentDefaults struct {
	NeighborDist    float64         `json:"neighbor_dist" yaml:"neighbor_dist"`
	MaxNeighbors    int             `json:"max_neighbors" yaml:"max_neighbors"`
	TimeHorizon     float64         `json:"time_horizon" yaml:"time_horizon"`
	TimeHorizonObst float64         `json:"time_horizon_obst" yaml:"time_horizon_obst"`
	Radius          float64         `json:"radius" yaml:"radius"`
	MaxSpeed        float64         `json:"max_speed" yaml:"max_speed"`
	Velocity        physics.Vector2 `json:"velocity" yaml:"velocity"`
}
