package navigation

import (
	"math"
	"math/rand"
	"time"

	"github.com/zeusync/crowdsim/internal/core/systems/physics"
)

// DefaultPerturbation is the upper bound on the random nudge added to every
// preferred velocity.
const DefaultPerturbation = 1e-4

// Agents is the slice of engine state the policy touches.
type Agents interface {
	NumAgents() int
	AgentPosition(i int) physics.Vector2
	SetAgentPrefVelocity(i int, v physics.Vector2)
}

// Policy steers every agent straight at its goal. Each tick it adds a tiny
// random nudge so symmetric crowds do not lock up head to head.
type Policy struct {
	goals   []physics.Vector2
	epsilon float64
	rng     *rand.Rand
}

type Option func(*Policy)

// WithSeed makes the perturbation sequence reproducible.
func WithSeed(seed int64) Option {
	return func(p *Policy) { p.rng = rand.New(rand.NewSource(seed)) }
}

// WithRand hands the policy its own generator. It must not be shared with
// other goroutines.
func WithRand(rng *rand.Rand) Option {
	return func(p *Policy) { p.rng = rng }
}

// WithPerturbation sets the exclusive upper bound of the nudge length.
// Zero disables the nudge.
func WithPerturbation(epsilon float64) Option {
	return func(p *Policy) { p.epsilon = epsilon }
}

// NewPolicy creates a policy for goals, where goals[i] is the goal of
// engine agent i. Without WithSeed or WithRand it seeds from the clock.
func NewPolicy(goals []physics.Vector2, opts ...Option) *Policy {
	p := &Policy{
		goals:   goals,
		epsilon: DefaultPerturbation,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.rng == nil {
		p.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return p
}

// DesiredVelocity points from position to goal. Beyond unit distance it is
// a unit vector; closer in it is the raw offset, so agents slow down as
// they arrive and an agent on its goal stands still.
func DesiredVelocity(position, goal physics.Vector2) physics.Vector2 {
	v := goal.Sub(position)
	if v.AbsSq() > 1 {
		// AbsSq > 1 rules out the zero vector
		v, _ = v.Normalize()
	}
	return v
}

// Perturbation draws a vector with uniform angle in [0, 2π) and uniform
// length in [0, epsilon).
func (p *Policy) Perturbation() physics.Vector2 {
	angle := p.rng.Float64() * 2 * math.Pi
	dist := p.rng.Float64() * p.epsilon
	return physics.Polar(dist, angle)
}

// PreferredVelocity is DesiredVelocity for agent i plus a fresh nudge.
func (p *Policy) PreferredVelocity(i int, position physics.Vector2) physics.Vector2 {
	return DesiredVelocity(position, p.goals[i]).Add(p.Perturbation())
}

// Apply sets the preferred velocity of every agent from its current
// position. It must run every tick: the engine may steer agents back into
// symmetry between steps.
func (p *Policy) Apply(agents Agents) {
	n := agents.NumAgents()
	for i := 0; i < n; i++ {
		agents.SetAgentPrefVelocity(i, p.PreferredVelocity(i, agents.AgentPosition(i)))
	}
}

// Goal returns the goal of agent i.
func (p *Policy) Goal(i int) physics.Vector2 { return p.goals[i] }

// NumGoals returns how many agents the policy steers.
func (p *Policy) NumGoals() int { return len(p.goals) }

func (p *Policy) Epsilon() float64 { return p.epsilon }
