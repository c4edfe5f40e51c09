package driver

import "errors"

var (
	// ErrNotConverged is returned when the step ceiling is hit first.
	ErrNotConverged      = errors.New("simulation did not converge")
	ErrGoalCountMismatch = errors.New("goal count does not match engine agent count")
)
