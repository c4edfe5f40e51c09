package scenario

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/zeusync/crowdsim/internal/core/systems/physics"
)

// Layout is what Build placed in the engine. Goals[i] belongs to engine
// agent i; the slices are append-only during Build and read-only after.
type Layout struct {
	Starts    []physics.Vector2
	Goals     []physics.Vector2
	Obstacles [][]physics.Vector2
}

func (l *Layout) NumAgents() int { return len(l.Goals) }

func (l *Layout) Goal(i int) physics.Vector2 { return l.Goals[i] }

// Digest fingerprints the layout so runs of the same scenario can be
// matched up in logs.
func (l *Layout) Digest() uint64 {
	d := xxhash.New()
	var buf [8]byte
	write := func(f float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		_, _ = d.Write(buf[:])
	}
	writeAll := func(vs []physics.Vector2) {
		binary.LittleEndian.PutUint64(buf[:], uint64(len(vs)))
		_, _ = d.Write(buf[:])
		for _, v := range vs {
			write(v.X)
			write(v.Y)
		}
	}
	writeAll(l.Starts)
	writeAll(l.Goals)
	for _, o := range l.Obstacles {
		writeAll(o)
	}
	return d.Sum64()
}
