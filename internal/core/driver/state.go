package driver

import (
	"fmt"
	"time"
)

// State is where a run is in its lifecycle.
type State uint8

const (
	StateRunning State = iota
	StateConverged
	StateStepLimit
	StateCancelled
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateConverged:
		return "converged"
	case StateStepLimit:
		return "step_limit"
	case StateCancelled:
		return "cancelled"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Result summarizes a finished run.
type Result struct {
	RunID      string
	State      State
	Steps      int
	GlobalTime float64
	Elapsed    time.Duration
}
