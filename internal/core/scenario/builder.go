package scenario

import (
	"fmt"

	"github.com/zeusync/crowdsim/internal/core/engine"
	"github.com/zeusync/crowdsim/internal/core/systems/physics"
)

// quadrants are the corner groups, as the direction each grid grows in.
// Goals sit in the diagonally opposite corner.
var quadrants = [4]physics.Vector2{
	{X: 1, Y: 1},
	{X: -1, Y: 1},
	{X: 1, Y: -1},
	{X: -1, Y: -1},
}

// Build configures eng with c and populates it with agents and obstacles.
// The engine must be fresh. On success the obstacles are processed and the
// engine is ready to step; the returned layout holds one goal per agent,
// indexed like the engine's agents.
func Build(eng engine.Engine, c *Config) (*Layout, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := eng.SetTimeStep(c.TimeStep); err != nil {
		return nil, fmt.Errorf("set time step: %w", err)
	}
	if err := eng.SetAgentDefaults(c.Agent); err != nil {
		return nil, fmt.Errorf("set agent defaults: %w", err)
	}

	n := c.Grid.Size
	layout := &Layout{
		Starts:    make([]physics.Vector2, 0, 4*n*n),
		Goals:     make([]physics.Vector2, 0, 4*n*n),
		Obstacles: make([][]physics.Vector2, 0, len(c.Obstacles)),
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			local := physics.Vec2(
				c.Grid.Offset+float64(i)*c.Grid.Spacing,
				c.Grid.Offset+float64(j)*c.Grid.Spacing,
			)
			for _, q := range quadrants {
				start := physics.Vec2(q.X*local.X, q.Y*local.Y)
				goal := physics.Vec2(-q.X*c.Grid.Goal, -q.Y*c.Grid.Goal)
				if err := layout.addAgent(eng, start, goal); err != nil {
					return nil, err
				}
			}
		}
	}

	for i, vertices := range c.Obstacles {
		if err := eng.AddObstacle(vertices); err != nil {
			return nil, fmt.Errorf("add obstacle %d: %w", i, err)
		}
		layout.Obstacles = append(layout.Obstacles, append([]physics.Vector2(nil), vertices...))
	}

	if err := eng.ProcessObstacles(); err != nil {
		return nil, fmt.Errorf("process obstacles: %w", err)
	}
	return layout, nil
}

func (l *Layout) addAgent(eng engine.Engine, start, goal physics.Vector2) error {
	idx, err := eng.AddAgent(start)
	if err != nil {
		return fmt.Errorf("add agent %d: %w", len(l.Goals), err)
	}
	if idx != len(l.Goals) {
		return fmt.Errorf("%w: engine returned %d, expected %d", ErrIndexMismatch, idx, len(l.Goals))
	}
	l.Starts = append(l.Starts, start)
	l.Goals = append(l.Goals, goal)
	return nil
}
