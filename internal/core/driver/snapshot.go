package driver

import (
	"github.com/zeusync/crowdsim/internal/core/scenario"
	"github.com/zeusync/crowdsim/internal/core/systems/physics"
)

// Event types published on the bus.
const (
	EventTick      = "sim.tick"
	EventConverged = "sim.converged"
	EventStepLimit = "sim.step_limit"
)

// Snapshot is the read-only view of one tick, taken before the engine
// steps. Handlers must not keep or modify Agents past the call.
type Snapshot struct {
	RunID      string          `json:"run_id"`
	Step       int             `json:"step"`
	GlobalTime float64         `json:"global_time"`
	Min        physics.Vector2 `json:"min"`
	Max        physics.Vector2 `json:"max"`
	Agents     []AgentView     `json:"agents"`
}

// AgentView is how one agent should be drawn.
type AgentView struct {
	Index    int             `json:"index"`
	Position physics.Vector2 `json:"position"`
	Radius   float64         `json:"radius"`
	Color    scenario.Color  `json:"color"`
}

// Outcome is published with EventConverged and EventStepLimit.
type Outcome struct {
	RunID      string  `json:"run_id"`
	State      State   `json:"state"`
	Steps      int     `json:"steps"`
	GlobalTime float64 `json:"global_time"`
	Remaining  int     `json:"remaining"`
}
