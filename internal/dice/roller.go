package dice

//go:generate mockgen -destination=mock/mock_roller.go -package=mockdice -source=roller.go

// Roller provides the two random primitives every probabilistic component
// is expressed in terms of. Implementations can be swapped for a seeded or
// scripted generator so combat math stays independently testable.
type Roller interface {
	// Roll returns a uniformly distributed integer in [1, sides]
	Roll(sides int) (int, error)

	// Uniform returns a uniformly distributed float in [0, 1)
	Uniform() float64
}
