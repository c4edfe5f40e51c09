package driver

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/zeusync/crowdsim/internal/core/engine"
	"github.com/zeusync/crowdsim/internal/core/events/bus"
	"github.com/zeusync/crowdsim/internal/core/navigation"
	"github.com/zeusync/crowdsim/internal/core/observability/log"
	"github.com/zeusync/crowdsim/internal/core/scenario"
)

// Driver runs a built scenario until every agent is near its goal.
// It is single-threaded: Run must not be called concurrently.
type Driver struct {
	engine engine.Engine
	layout *scenario.Layout
	config *scenario.Config
	policy *navigation.Policy

	bus   bus.EventBus
	log   log.Log
	runID string
}

type Option func(*Driver)

// WithBus publishes tick snapshots and outcomes on b.
func WithBus(b bus.EventBus) Option {
	return func(d *Driver) { d.bus = b }
}

func WithLogger(l log.Log) Option {
	return func(d *Driver) { d.log = l }
}

func WithRunID(id string) Option {
	return func(d *Driver) { d.runID = id }
}

// WithPolicy replaces the policy built from the config.
func WithPolicy(p *navigation.Policy) Option {
	return func(d *Driver) { d.policy = p }
}

// New wraps an engine that scenario.Build already populated with layout.
func New(eng engine.Engine, layout *scenario.Layout, cfg *scenario.Config, opts ...Option) (*Driver, error) {
	if eng.NumAgents() != layout.NumAgents() {
		return nil, fmt.Errorf("%w: %d goals, %d agents", ErrGoalCountMismatch, layout.NumAgents(), eng.NumAgents())
	}
	d := &Driver{
		engine: eng,
		layout: layout,
		config: cfg,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.runID == "" {
		d.runID = uuid.NewString()
	}
	if d.log == nil {
		d.log = log.Provide()
	}
	d.log = d.log.With(log.String("run_id", d.runID), log.String("scenario", cfg.Name))
	if d.policy == nil {
		popts := []navigation.Option{navigation.WithPerturbation(cfg.Perturbation)}
		if cfg.Seed != nil {
			popts = append(popts, navigation.WithSeed(*cfg.Seed))
		}
		d.policy = navigation.NewPolicy(layout.Goals, popts...)
	}
	if d.policy.NumGoals() != eng.NumAgents() {
		return nil, fmt.Errorf("%w: policy has %d goals, %d agents", ErrGoalCountMismatch, d.policy.NumGoals(), eng.NumAgents())
	}
	return d, nil
}

// Setup builds cfg into eng and returns a driver for it.
func Setup(eng engine.Engine, cfg *scenario.Config, opts ...Option) (*Driver, error) {
	layout, err := scenario.Build(eng, cfg)
	if err != nil {
		return nil, err
	}
	d, err := New(eng, layout, cfg, opts...)
	if err != nil {
		return nil, err
	}
	d.log.Info("scenario built",
		log.Int("agents", eng.NumAgents()),
		log.Int("obstacles", len(layout.Obstacles)),
		log.String("digest", strconv.FormatUint(layout.Digest(), 16)),
		log.Float64("time_step", eng.TimeStep()),
	)
	return d, nil
}

func (d *Driver) RunID() string { return d.runID }

func (d *Driver) Layout() *scenario.Layout { return d.layout }

// Converged reports whether every agent is within the goal tolerance.
func (d *Driver) Converged() bool {
	return Converged(d.engine, d.layout.Goals, d.config.GoalToleranceSq())
}

// Run ticks the simulation until it converges. Each tick publishes a
// snapshot (when display is enabled), sets preferred velocities and steps
// the engine once.
//
// It returns ErrNotConverged when the configured step ceiling is reached,
// ctx.Err() when ctx is done, and engine errors unchanged apart from
// wrapping. The Result is valid in every case.
func (d *Driver) Run(ctx context.Context) (Result, error) {
	start := time.Now()
	res := Result{RunID: d.runID, State: StateRunning}
	finish := func(state State) Result {
		res.State = state
		res.GlobalTime = d.engine.GlobalTime()
		res.Elapsed = time.Since(start)
		return res
	}

	for {
		if d.Converged() {
			res = finish(StateConverged)
			d.publishOutcome(EventConverged, res)
			d.log.Info("simulation converged",
				log.Int("steps", res.Steps),
				log.Float64("global_time", res.GlobalTime),
				log.Duration("elapsed", res.Elapsed),
			)
			return res, nil
		}
		if d.config.MaxSteps > 0 && res.Steps >= d.config.MaxSteps {
			res = finish(StateStepLimit)
			d.publishOutcome(EventStepLimit, res)
			d.log.Warn("step limit reached",
				log.Int("steps", res.Steps),
				log.Int("remaining", d.remaining()),
			)
			return res, fmt.Errorf("%w after %d steps", ErrNotConverged, res.Steps)
		}
		if err := ctx.Err(); err != nil {
			return finish(StateCancelled), err
		}

		if d.config.Display.Enabled {
			d.publish(EventTick, d.Snapshot(res.Steps))
		}
		d.policy.Apply(d.engine)
		if err := d.engine.DoStep(); err != nil {
			d.log.Error("engine step failed", log.Int("step", res.Steps), log.Error(err))
			return finish(StateFailed), fmt.Errorf("step %d: %w", res.Steps, err)
		}
		res.Steps++

		if res.Steps%1000 == 0 {
			d.log.Debug("progress", log.Int("steps", res.Steps), log.Int("remaining", d.remaining()))
		}
	}
}

// Snapshot captures positions, radius and colour of every agent.
func (d *Driver) Snapshot(step int) Snapshot {
	n := d.engine.NumAgents()
	s := Snapshot{
		RunID:      d.runID,
		Step:       step,
		GlobalTime: d.engine.GlobalTime(),
		Min:        d.config.Display.Min,
		Max:        d.config.Display.Max,
		Agents:     make([]AgentView, n),
	}
	for i := 0; i < n; i++ {
		s.Agents[i] = AgentView{
			Index:    i,
			Position: d.engine.AgentPosition(i),
			Radius:   d.config.Agent.Radius,
			Color:    d.config.ColorOf(i),
		}
	}
	return s
}

func (d *Driver) remaining() int {
	return Remaining(d.engine, d.layout.Goals, d.config.GoalToleranceSq())
}

func (d *Driver) publishOutcome(eventType string, res Result) {
	d.publish(eventType, Outcome{
		RunID:      res.RunID,
		State:      res.State,
		Steps:      res.Steps,
		GlobalTime: res.GlobalTime,
		Remaining:  d.remaining(),
	})
}

// publish never fails the run: observers are not part of the simulation.
func (d *Driver) publish(eventType string, data any) {
	if d.bus == nil {
		return
	}
	if err := d.bus.Publish(bus.NewEvent(eventType, d.runID, data)); err != nil {
		d.log.Warn("event handler failed", log.String("event", eventType), log.Error(err))
	}
}
