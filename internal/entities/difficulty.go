package entities

// Difficulty is the closed band driving scaling multipliers throughout
// generation and rewards
type Difficulty string

const (
	DifficultyEasy    Difficulty = "easy"
	DifficultyMedium  Difficulty = "medium"
	DifficultyHard    Difficulty = "hard"
	DifficultyExtreme Difficulty = "extreme"
)

// Difficulties lists all bands in ascending order
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyExtreme}
}

// IsValid reports whether d is one of the closed set
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyExtreme:
		return true
	}
	return false
}

// Ordinal returns the zero-based position of the band (Easy=0 .. Extreme=3)
func (d Difficulty) Ordinal() int {
	switch d {
	case DifficultyMedium:
		return 1
	case DifficultyHard:
		return 2
	case DifficultyExtreme:
		return 3
	default:
		return 0
	}
}

// VictoryMultiplier scales combat victory rewards
func (d Difficulty) VictoryMultiplier() float64 {
	switch d {
	case DifficultyMedium:
		return 1.25
	case DifficultyHard:
		return 1.5
	case DifficultyExtreme:
		return 2.0
	default:
		return 1.0
	}
}

// RewardMultiplier scales generated room reward baselines
func (d Difficulty) RewardMultiplier() float64 {
	switch d {
	case DifficultyMedium:
		return 1.5
	case DifficultyHard:
		return 2.0
	case DifficultyExtreme:
		return 3.0
	default:
		return 1.0
	}
}

// GoldLossRate is the fraction of gold lost on combat defeat
func (d Difficulty) GoldLossRate() float64 {
	switch d {
	case DifficultyEasy:
		return 0.05
	case DifficultyHard:
		return 0.15
	case DifficultyExtreme:
		return 0.25
	default:
		return 0.10
	}
}

// RestoreRate is the fraction of max health restored after a defeat.
// Harsher bands restore less.
func (d Difficulty) RestoreRate() float64 {
	switch d {
	case DifficultyEasy:
		return 0.5
	case DifficultyHard:
		return 0.2
	case DifficultyExtreme:
		return 0.1
	default:
		return 0.3
	}
}
