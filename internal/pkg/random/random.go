// Package random provides the injectable random source threaded through
// every engine call that needs chance.
package random

import (
	"math/rand/v2"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/bbeaudet-dev/rollio-sub001/internal/errors"
)

// Source yields uniform floats in [0,1).
type Source interface {
	Float64() float64
}

// IntN maps one draw from src onto [0,n). It returns 0 when n <= 0 without
// drawing.
func IntN(src Source, n int) int {
	if n <= 0 {
		return 0
	}
	i := int(src.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// Seeded is a reproducible source backed by a PCG generator. Its state can
// be captured and restored so a persisted run continues the same stream.
type Seeded struct {
	pcg *rand.PCG
	rng *rand.Rand
}

// NewSeeded creates a seeded source
func NewSeeded(seed uint64) *Seeded {
	pcg := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	return &Seeded{pcg: pcg, rng: rand.New(pcg)}
}

// RestoreSeeded recreates a source from a captured state
func RestoreSeeded(state []byte) (*Seeded, error) {
	pcg := &rand.PCG{}
	if err := pcg.UnmarshalBinary(state); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid random state")
	}
	return &Seeded{pcg: pcg, rng: rand.New(pcg)}, nil
}

// Float64 returns the next draw
func (s *Seeded) Float64() float64 {
	return s.rng.Float64()
}

// State captures the generator position
func (s *Seeded) State() ([]byte, error) {
	state, err := s.pcg.MarshalBinary()
	if err != nil {
		return nil, errors.Wrap(err, "failed to capture random state")
	}
	return state, nil
}

// rollerResolution is the die size used to build a float from a roll
const rollerResolution = 1 << 20

// RollerSource adapts an rpg-toolkit dice roller. It is not reproducible and
// is meant for casual play, not replays.
type RollerSource struct {
	roller dice.Roller
}

// NewRollerSource wraps roller; nil selects dice.DefaultRoller
func NewRollerSource(roller dice.Roller) *RollerSource {
	if roller == nil {
		roller = dice.DefaultRoller
	}
	return &RollerSource{roller: roller}
}

// Float64 rolls a d(2^20) and scales it into [0,1). A failing roller yields 0.
func (r *RollerSource) Float64() float64 {
	v, err := r.roller.Roll(rollerResolution)
	if err != nil || v < 1 {
		return 0
	}
	return float64(v-1) / rollerResolution
}

// Sequence replays fixed values in order, wrapping around. Tests use it to
// land a draw inside a specific probability window.
type Sequence struct {
	values []float64
	next   int
	drawn  int
}

// NewSequence creates a sequence source. With no values it always returns 0.
func NewSequence(values ...float64) *Sequence {
	return &Sequence{values: values}
}

// Float64 returns the next value
func (s *Sequence) Float64() float64 {
	s.drawn++
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next]
	s.next = (s.next + 1) % len(s.values)
	return v
}

// Drawn reports how many values have been consumed
func (s *Sequence) Drawn() int {
	return s.drawn
}
