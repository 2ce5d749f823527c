package mockdice

import (
	"fmt"
	"sync"
)

// ManualMockRoller implements dice.Roller for testing with predetermined results
type ManualMockRoller struct {
	mu           sync.Mutex
	rolls        []int
	rollIndex    int
	uniforms     []float64
	uniformIndex int
}

// NewManualMockRoller creates a new mock dice roller
func NewManualMockRoller() *ManualMockRoller {
	return &ManualMockRoller{
		rolls:    []int{},
		uniforms: []float64{},
	}
}

// SetNextRoll sets the next roll result
func (m *ManualMockRoller) SetNextRoll(roll int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = append(m.rolls, roll)
}

// SetRolls sets multiple roll results
func (m *ManualMockRoller) SetRolls(rolls []int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = rolls
	m.rollIndex = 0
}

// SetUniforms sets the queued Uniform results
func (m *ManualMockRoller) SetUniforms(uniforms []float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uniforms = uniforms
	m.uniformIndex = 0
}

// Reset clears all queued results and resets the indexes
func (m *ManualMockRoller) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rolls = []int{}
	m.rollIndex = 0
	m.uniforms = []float64{}
	m.uniformIndex = 0
}

// getNextRoll returns the next predetermined roll
func (m *ManualMockRoller) getNextRoll() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.rollIndex >= len(m.rolls) {
		return 0, fmt.Errorf("no more predetermined rolls available (used %d of %d)", m.rollIndex, len(m.rolls))
	}

	roll := m.rolls[m.rollIndex]
	m.rollIndex++
	return roll, nil
}

// Roll implements dice.Roller.Roll
func (m *ManualMockRoller) Roll(sides int) (int, error) {
	roll, err := m.getNextRoll()
	if err != nil {
		return 0, err
	}
	if roll < 1 || roll > sides {
		return 0, fmt.Errorf("invalid roll %d for d%d", roll, sides)
	}
	return roll, nil
}

// Uniform implements dice.Roller.Uniform. Returns 0 when the queue is
// exhausted so hit checks default to the happy path.
func (m *ManualMockRoller) Uniform() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.uniformIndex >= len(m.uniforms) {
		return 0
	}

	u := m.uniforms[m.uniformIndex]
	m.uniformIndex++
	return u
}
