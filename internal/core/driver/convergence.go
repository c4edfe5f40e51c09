package driver

import "github.com/zeusync/crowdsim/internal/core/systems/physics"

// Positions is the read side of the engine the checker needs.
type Positions interface {
	NumAgents() int
	AgentPosition(i int) physics.Vector2
}

// Reached reports whether position is within tolerance of goal. The
// boundary counts as reached.
func Reached(position, goal physics.Vector2, toleranceSq float64) bool {
	return physics.DistanceSq(position, goal) <= toleranceSq
}

// Converged reports whether every agent is within tolerance of its goal.
// It stops at the first agent that is not.
func Converged(agents Positions, goals []physics.Vector2, toleranceSq float64) bool {
	n := agents.NumAgents()
	for i := 0; i < n; i++ {
		if !Reached(agents.AgentPosition(i), goals[i], toleranceSq) {
			return false
		}
	}
	return true
}

// Remaining counts the agents still outside tolerance.
func Remaining(agents Positions, goals []physics.Vector2, toleranceSq float64) int {
	left := 0
	n := agents.NumAgents()
	for i := 0; i < n; i++ {
		if !Reached(agents.AgentPosition(i), goals[i], toleranceSq) {
			left++
		}
	}
	return left
}
