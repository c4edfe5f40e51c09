package scenario

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/crowdsim/internal/core/engine"
	"github.com/zeusync/crowdsim/internal/core/systems/physics"
)

// Config describes a corner-grid crossing scenario and how it is run.
type Config struct {
	Name     string               `json:"name" yaml:"name"`
	TimeStep float64              `json:"time_step" yaml:"time_step"`
	Agent    engine.AgentDefaults `json:"agent" yaml:"agent"`
	Grid     GridConfig           `json:"grid" yaml:"grid"`
	// Obstacles are polygons with vertices in counter-clockwise order.
	Obstacles [][]physics.Vector2 `json:"obstacles" yaml:"obstacles"`

	GoalTolerance float64 `json:"goal_tolerance" yaml:"goal_tolerance"`
	Perturbation  float64 `json:"perturbation" yaml:"perturbation"`
	// MaxSteps bounds the run; 0 runs until convergence.
	MaxSteps int `json:"max_steps" yaml:"max_steps"`
	// Seed makes the perturbation reproducible; nil seeds from entropy.
	Seed *int64 `json:"seed,omitempty" yaml:"seed,omitempty"`

	Display DisplayConfig `json:"display" yaml:"display"`
}

// GridConfig places Size x Size agents in every quadrant, starting Offset
// away from both axes and Spacing apart. Each quadrant's goal is the point
// (Goal, Goal) mirrored into the diagonally opposite quadrant.
type GridConfig struct {
	Size    int     `json:"size" yaml:"size"`
	Offset  float64 `json:"offset" yaml:"offset"`
	Spacing float64 `json:"spacing" yaml:"spacing"`
	Goal    float64 `json:"goal" yaml:"goal"`
}

type DisplayConfig struct {
	Enabled bool            `json:"enabled" yaml:"enabled"`
	Palette []Color         `json:"palette" yaml:"palette"`
	Min     physics.Vector2 `json:"min" yaml:"min"`
	Max     physics.Vector2 `json:"max" yaml:"max"`
}

// Color is an RGB triple with channels in [0, 1].
type Color struct {
	R float64 `json:"r" yaml:"r"`
	G float64 `json:"g" yaml:"g"`
	B float64 `json:"b" yaml:"b"`
}

// DefaultConfig returns the Blocks scenario: 100 agents in four 5x5
// corner groups crossing through a narrow gap left by four square blocks.
func DefaultConfig() Config {
	return Config{
		Name:     "blocks",
		TimeStep: 0.25,
		Agent: engine.AgentDefaults{
			NeighborDist:    15,
			MaxNeighbors:    10,
			TimeHorizon:     5,
			TimeHorizonObst: 5,
			Radius:          2,
			MaxSpeed:        2,
		},
		Grid: GridConfig{Size: 5, Offset: 55, Spacing: 10, Goal: 75},
		Obstacles: [][]physics.Vector2{
			{physics.Vec2(-10, 40), physics.Vec2(-40, 40), physics.Vec2(-40, 10), physics.Vec2(-10, 10)},
			{physics.Vec2(10, 40), physics.Vec2(10, 10), physics.Vec2(40, 10), physics.Vec2(40, 40)},
			{physics.Vec2(10, -40), physics.Vec2(40, -40), physics.Vec2(40, -10), physics.Vec2(10, -10)},
			{physics.Vec2(-10, -40), physics.Vec2(-10, -10), physics.Vec2(-40, -10), physics.Vec2(-40, -40)},
		},
		GoalTolerance: 20,
		Perturbation:  1e-4,
		MaxSteps:      5000,
		Display: DisplayConfig{
			Enabled: true,
			Palette: []Color{{R: 1}, {G: 1}, {B: 1}},
			Min:     physics.Vec2(-300, -300),
			Max:     physics.Vec2(300, 300),
		},
	}
}

// Validate validates the scenario configuration
func (c *Config) Validate() error {
	if c.TimeStep <= 0 {
		return fmt.Errorf("%w: time step must be positive, got %v", ErrInvalidConfig, c.TimeStep)
	}
	if c.Agent.Radius < 0 || c.Agent.MaxSpeed <= 0 {
		return fmt.Errorf("%w: agent radius must be >= 0 and max speed > 0", ErrInvalidConfig)
	}
	if err := c.Grid.Validate(); err != nil {
		return err
	}
	for i, o := range c.Obstacles {
		if len(o) < 2 {
			return fmt.Errorf("%w: obstacle %d has %d vertices", ErrInvalidConfig, i, len(o))
		}
	}
	if c.GoalTolerance <= 0 {
		return fmt.Errorf("%w: goal tolerance must be positive", ErrInvalidConfig)
	}
	if c.Perturbation < 0 {
		return fmt.Errorf("%w: perturbation must not be negative", ErrInvalidConfig)
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("%w: max steps must not be negative", ErrInvalidConfig)
	}
	return c.Display.Validate()
}

// Validate validates the grid configuration
func (g *GridConfig) Validate() error {
	if g.Size <= 0 {
		return fmt.Errorf("%w: grid size must be positive", ErrInvalidConfig)
	}
	if g.Spacing < 0 || g.Offset < 0 {
		return fmt.Errorf("%w: grid offset and spacing must not be negative", ErrInvalidConfig)
	}
	return nil
}

func (d *DisplayConfig) Validate() error {
	if len(d.Palette) == 0 {
		return fmt.Errorf("%w: palette is empty", ErrInvalidConfig)
	}
	if d.Max.X <= d.Min.X || d.Max.Y <= d.Min.Y {
		return fmt.Errorf("%w: display bounds are empty", ErrInvalidConfig)
	}
	return nil
}

// GoalToleranceSq is the squared arrival distance.
func (c *Config) GoalToleranceSq() float64 {
	return c.GoalTolerance * c.GoalTolerance
}

// ColorOf returns the display colour of agent i, cycling through the palette.
func (c *Config) ColorOf(i int) Color {
	return c.Display.Palette[i%len(c.Display.Palette)]
}

// LoadYAML decodes a config from r on top of DefaultConfig, so a file only
// needs the keys it changes. The result is validated.
func LoadYAML(r io.Reader) (*Config, error) {
	c := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadFile reads a YAML scenario file.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadYAML(f)
}

// ToYAML encodes the configuration.
func (c *Config) ToYAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
