package entities

// Rarity is the ordinal classification driving weighted artifact selection
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
	RarityMythical  Rarity = "mythical"
)

// Rarities lists all rarities in ascending order
func Rarities() []Rarity {
	return []Rarity{RarityCommon, RarityRare, RarityEpic, RarityLegendary, RarityMythical}
}

// IsValid reports whether r is one of the closed set
func (r Rarity) IsValid() bool {
	switch r {
	case RarityCommon, RarityRare, RarityEpic, RarityLegendary, RarityMythical:
		return true
	}
	return false
}

// Artifact is a collectible dungeon reward
type Artifact struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Rarity      Rarity `json:"rarity"`
}
