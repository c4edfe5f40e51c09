package scenario

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/crowdsim/internal/core/systems/physics"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 400.0, cfg.GoalToleranceSq())
	assert.Equal(t, 0.25, cfg.TimeStep)
	assert.Nil(t, cfg.Seed)
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"time step", func(c *Config) { c.TimeStep = 0 }},
		{"max speed", func(c *Config) { c.Agent.MaxSpeed = 0 }},
		{"grid size", func(c *Config) { c.Grid.Size = 0 }},
		{"grid spacing", func(c *Config) { c.Grid.Spacing = -1 }},
		{"obstacle vertices", func(c *Config) { c.Obstacles = [][]physics.Vector2{{physics.Vec2(0, 0)}} }},
		{"tolerance", func(c *Config) { c.GoalTolerance = 0 }},
		{"perturbation", func(c *Config) { c.Perturbation = -1 }},
		{"max steps", func(c *Config) { c.MaxSteps = -1 }},
		{"palette", func(c *Config) { c.Display.Palette = nil }},
		{"bounds", func(c *Config) { c.Display.Max = c.Display.Min }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestColorOfCycles(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, Color{R: 1}, cfg.ColorOf(0))
	assert.Equal(t, Color{G: 1}, cfg.ColorOf(1))
	assert.Equal(t, Color{B: 1}, cfg.ColorOf(2))
	assert.Equal(t, Color{R: 1}, cfg.ColorOf(3))
	assert.Equal(t, Color{B: 1}, cfg.ColorOf(98))
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	src := `
name: small
grid:
  size: 2
  offset: 30
  spacing: 5
  goal: 40
seed: 42
max_steps: 100
obstacles:
  - [{x: 0, y: 0}, {x: 1, y: 0}, {x: 1, y: 1}]
`
	cfg, err := LoadYAML(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, "small", cfg.Name)
	assert.Equal(t, GridConfig{Size: 2, Offset: 30, Spacing: 5, Goal: 40}, cfg.Grid)
	require.NotNil(t, cfg.Seed)
	assert.EqualValues(t, 42, *cfg.Seed)
	assert.Equal(t, 100, cfg.MaxSteps)
	require.Len(t, cfg.Obstacles, 1)
	assert.Len(t, cfg.Obstacles[0], 3)
	// untouched keys keep their defaults
	assert.Equal(t, 0.25, cfg.TimeStep)
	assert.Equal(t, 2.0, cfg.Agent.Radius)
}

func TestLoadYAMLEmptyIsDefault(t *testing.T) {
	cfg, err := LoadYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), *cfg)
}

func TestLoadYAMLRejects(t *testing.T) {
	_, err := LoadYAML(strings.NewReader("unknown_key: 1\n"))
	assert.Error(t, err)

	_, err = LoadYAML(strings.NewReader("time_step: -1\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestConfigYAMLRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	seed := int64(7)
	cfg.Seed = &seed
	data, err := cfg.ToYAML()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "blocks.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, *loaded)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
