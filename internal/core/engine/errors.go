package engine

import "errors"

// Configuration errors. They abort scenario setup and are never retried.
var (
	ErrInvalidTimeStep             = errors.New("time step must be positive")
	ErrNoAgentDefaults             = errors.New("agent defaults are not set")
	ErrObstacleTooFewVertices      = errors.New("obstacle needs at least two vertices")
	ErrObstacleNotCounterClockwise = errors.New("obstacle vertices are not counter-clockwise")
	ErrObstaclesProcessed          = errors.New("obstacles are already processed")
	ErrObstaclesNotProcessed       = errors.New("obstacles are not processed")
)
