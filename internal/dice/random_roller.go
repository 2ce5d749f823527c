package dice

import (
	"math/rand"

	"github.com/hallowdale/dungeoncrawl/internal/errors"
)

// randomRoller implements Roller using the top-level math/rand source,
// which is locked and safe for concurrent callers.
type randomRoller struct{}

// NewRandomRoller creates a new random dice roller
func NewRandomRoller() Roller {
	return &randomRoller{}
}

// Roll implements Roller.Roll
func (r *randomRoller) Roll(sides int) (int, error) {
	if sides < 1 {
		return 0, errors.InvalidArgumentf("invalid dice size %d", sides)
	}
	return rand.Intn(sides) + 1, nil
}

// Uniform implements Roller.Uniform
func (r *randomRoller) Uniform() float64 {
	return rand.Float64()
}
