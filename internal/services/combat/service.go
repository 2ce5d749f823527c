package combat

//go:generate mockgen -destination=mock/mock_service.go -package=mockcombat -source=service.go

import (
	"fmt"

	"github.com/hallowdale/dungeoncrawl/internal/dice"
	"github.com/hallowdale/dungeoncrawl/internal/entities"
	dcerr "github.com/hallowdale/dungeoncrawl/internal/errors"
)

// Service resolves combat turns between a player and a monster. It mutates
// the entities it is given and leaves persistence to the caller.
type Service interface {
	// CalculateDamage computes one damage roll for the given attack and
	// defense stats
	CalculateDamage(attack, defense int) (int, error)

	// PlayerAttacks resolves a player attack against a monster
	PlayerAttacks(player *entities.Player, monster *entities.Monster) (*AttackResult, error)

	// MonsterAttacks resolves a monster attack against a player
	MonsterAttacks(monster *entities.Monster, player *entities.Player) (*AttackResult, error)

	// PlayerDefends rolls for a defense bonus and applies it to the player
	PlayerDefends(player *entities.Player) (*DefendResult, error)

	// PlayerHeals applies a heal roll to the player, capped at max health
	PlayerHeals(player *entities.Player, amount int) (*HealResult, error)

	// PlayerFlees rolls a flee attempt. No state changes either way.
	PlayerFlees(player *entities.Player) (bool, error)

	// ResolveVictory grants difficulty-scaled rewards for clearing a room
	// and marks the room explored
	ResolveVictory(player *entities.Player, room *entities.Room) (*VictoryResult, error)

	// ResolveDefeat applies the gold loss and partial health restore for
	// falling in a room
	ResolveDefeat(player *entities.Player, room *entities.Room) (*DefeatResult, error)
}

// AttackResult reports the outcome of a single attack
type AttackResult struct {
	Hit             bool
	Damage          int
	RemainingHealth int
	Message         string
}

// DefendResult reports the outcome of a defend action
type DefendResult struct {
	Roll         int
	BonusDefense int
}

// HealResult reports the outcome of a heal action
type HealResult struct {
	Roll          int
	AmountHealed  int
	CurrentHealth int
}

// VictoryResult reports the rewards granted for a combat victory
type VictoryResult struct {
	ExperienceGained int
	GoldGained       int
	BonusApplied     bool
}

// DefeatResult reports the penalties applied for a combat defeat
type DefeatResult struct {
	GoldLost       int
	HealthRestored int
}

// service implements the Service interface
type service struct {
	roller dice.Roller
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Roller dice.Roller // Required
}

// NewService creates a new combat service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Roller == nil {
		panic("roller is required")
	}

	return &service{
		roller: cfg.Roller,
	}
}

// hitChance scales with the level gap, clamped to [0.05, 0.95] so neither
// side ever hits or misses with certainty.
func hitChance(attackerLevel, defenderLevel int) float64 {
	chance := 0.75 + 0.05*float64(attackerLevel-defenderLevel)
	if chance < 0.05 {
		return 0.05
	}
	if chance > 0.95 {
		return 0.95
	}
	return chance
}

func (s *service) CalculateDamage(attack, defense int) (int, error) {
	if attack < 0 || defense < 0 {
		return 0, dcerr.InvalidArgumentf("stats cannot be negative: attack=%d defense=%d", attack, defense)
	}

	roll, err := s.roller.Roll(20)
	if err != nil {
		return 0, dcerr.Wrap(err, "failed to roll damage")
	}

	base := attack - defense/2

	var damage int
	switch {
	case roll == 20:
		damage = base * 2
	case roll == 1:
		damage = 0
	case roll >= 15:
		damage = int(float64(base) * 1.5)
	case roll <= 5:
		damage = int(float64(base) * 0.5)
	default:
		damage = max(base, 1)
	}

	return max(damage, 0), nil
}

func (s *service) PlayerAttacks(player *entities.Player, monster *entities.Monster) (*AttackResult, error) {
	if player == nil {
		return nil, dcerr.InvalidArgument("player cannot be nil")
	}
	if monster == nil {
		return nil, dcerr.InvalidArgument("monster cannot be nil")
	}

	if s.roller.Uniform() >= hitChance(player.Level, monster.Level) {
		return &AttackResult{
			Hit:             false,
			RemainingHealth: monster.Health,
			Message:         fmt.Sprintf("%s swings at %s and misses", player.Username, monster.Name),
		}, nil
	}

	damage, err := s.CalculateDamage(player.Attack, monster.Defense)
	if err != nil {
		return nil, err
	}

	monster.TakeDamage(damage)

	return &AttackResult{
		Hit:             true,
		Damage:          damage,
		RemainingHealth: monster.Health,
		Message:         fmt.Sprintf("%s hits %s for %d damage", player.Username, monster.Name, damage),
	}, nil
}

func (s *service) MonsterAttacks(monster *entities.Monster, player *entities.Player) (*AttackResult, error) {
	if monster == nil {
		return nil, dcerr.InvalidArgument("monster cannot be nil")
	}
	if player == nil {
		return nil, dcerr.InvalidArgument("player cannot be nil")
	}

	if s.roller.Uniform() >= hitChance(monster.Level, player.Level) {
		return &AttackResult{
			Hit:             false,
			RemainingHealth: player.Health,
			Message:         fmt.Sprintf("%s lunges at %s and misses", monster.Name, player.Username),
		}, nil
	}

	damage, err := s.CalculateDamage(monster.Attack, player.Defense)
	if err != nil {
		return nil, err
	}

	player.TakeDamage(damage)

	return &AttackResult{
		Hit:             true,
		Damage:          damage,
		RemainingHealth: player.Health,
		Message:         fmt.Sprintf("%s hits %s for %d damage", monster.Name, player.Username, damage),
	}, nil
}

func (s *service) PlayerDefends(player *entities.Player) (*DefendResult, error) {
	if player == nil {
		return nil, dcerr.InvalidArgument("player cannot be nil")
	}

	roll, err := s.roller.Roll(20)
	if err != nil {
		return nil, dcerr.Wrap(err, "failed to roll defense")
	}

	bonus := 0
	if roll >= 10 {
		bonus = roll / 2
	}
	player.Defense += bonus

	return &DefendResult{
		Roll:         roll,
		BonusDefense: bonus,
	}, nil
}

func (s *service) PlayerHeals(player *entities.Player, amount int) (*HealResult, error) {
	if player == nil {
		return nil, dcerr.InvalidArgument("player cannot be nil")
	}
	if amount < 0 {
		return nil, dcerr.InvalidArgumentf("heal amount cannot be negative: %d", amount)
	}

	roll, err := s.roller.Roll(20)
	if err != nil {
		return nil, dcerr.Wrap(err, "failed to roll heal")
	}

	actual := amount
	switch {
	case roll >= 18:
		actual = int(float64(amount) * 1.5)
	case roll <= 3:
		actual = int(float64(amount) * 0.5)
	}

	healed := player.Heal(actual)

	return &HealResult{
		Roll:          roll,
		AmountHealed:  healed,
		CurrentHealth: player.Health,
	}, nil
}

func (s *service) PlayerFlees(player *entities.Player) (bool, error) {
	if player == nil {
		return false, dcerr.InvalidArgument("player cannot be nil")
	}

	roll, err := s.roller.Roll(20)
	if err != nil {
		return false, dcerr.Wrap(err, "failed to roll flee")
	}

	return roll+player.Level/5 >= 12, nil
}

func (s *service) ResolveVictory(player *entities.Player, room *entities.Room) (*VictoryResult, error) {
	if player == nil {
		return nil, dcerr.InvalidArgument("player cannot be nil")
	}
	if room == nil {
		return nil, dcerr.InvalidArgument("room cannot be nil")
	}

	roll, err := s.roller.Roll(20)
	if err != nil {
		return nil, dcerr.Wrap(err, "failed to roll victory bonus")
	}

	multiplier := room.Difficulty.VictoryMultiplier()
	bonus := roll >= 15
	if bonus {
		multiplier += 0.2
	}

	finalExp := int(float64(room.ExperienceReward) * multiplier)
	finalGold := int(float64(room.GoldReward) * multiplier)

	player.AddExperience(finalExp)
	player.AddGold(finalGold)
	room.MarkExplored()

	return &VictoryResult{
		ExperienceGained: finalExp,
		GoldGained:       finalGold,
		BonusApplied:     bonus,
	}, nil
}

func (s *service) ResolveDefeat(player *entities.Player, room *entities.Room) (*DefeatResult, error) {
	if player == nil {
		return nil, dcerr.InvalidArgument("player cannot be nil")
	}
	if room == nil {
		return nil, dcerr.InvalidArgument("room cannot be nil")
	}

	goldLost := int(float64(player.Gold) * room.Difficulty.GoldLossRate())
	player.RemoveGold(goldLost)

	player.Health = int(float64(player.MaxHealth) * room.Difficulty.RestoreRate())

	return &DefeatResult{
		GoldLost:       goldLost,
		HealthRestored: player.Health,
	}, nil
}
