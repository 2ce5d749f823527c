package monster

//go:generate mockgen -destination=mock/mock_service.go -package=mockmonster -source=service.go

import (
	"context"

	"github.com/hallowdale/dungeoncrawl/internal/dice"
	"github.com/hallowdale/dungeoncrawl/internal/entities"
	dcerr "github.com/hallowdale/dungeoncrawl/internal/errors"
	"github.com/hallowdale/dungeoncrawl/internal/repositories/monsters"
	"github.com/hallowdale/dungeoncrawl/internal/uuid"
)

// Repository is an alias for the monster repository interface
type Repository = monsters.Repository

// Display names keyed by type
var monsterNames = map[entities.MonsterType][]string{
	entities.MonsterTypeDragon:    {"Drakor", "Fyrezor", "Scalewing", "Infernus"},
	entities.MonsterTypeGoblin:    {"Gribble", "Snark", "Grimp", "Razz"},
	entities.MonsterTypeTroll:     {"Grunk", "Thud", "Bouldar", "Smash"},
	entities.MonsterTypeUndead:    {"Skeleton Warrior", "Zombie", "Wraith", "Ghoul"},
	entities.MonsterTypeBeast:     {"Dire Wolf", "Giant Spider", "Cave Bear", "Wyvern"},
	entities.MonsterTypeDemon:     {"Hellspawn", "Dreadlord", "Abyssal", "Tormentor"},
	entities.MonsterTypeElemental: {"Fire Elemental", "Ice Golem", "Storm Spirit", "Earth Guardian"},
	entities.MonsterTypeHumanoid:  {"Bandit", "Cultist", "Dark Knight", "Assassin"},
}

// Service defines the monster service interface
type Service interface {
	// CreateMonster stores a monster with explicit stats
	CreateMonster(ctx context.Context, input *CreateMonsterInput) (*entities.Monster, error)

	// GetMonster retrieves a monster by ID
	GetMonster(ctx context.Context, monsterID string) (*entities.Monster, error)

	// UpdateMonster updates an existing monster
	UpdateMonster(ctx context.Context, monster *entities.Monster) error

	// DeleteMonster removes a monster
	DeleteMonster(ctx context.Context, monsterID string) error

	// ListByLevelRange retrieves monsters within a level band
	ListByLevelRange(ctx context.Context, minLevel, maxLevel int) ([]*entities.Monster, error)

	// GenerateMonster builds a monster scaled to the given level and
	// difficulty band. The result is not persisted; callers attach it to a
	// room or store it explicitly.
	GenerateMonster(input *GenerateMonsterInput) (*entities.Monster, error)
}

// CreateMonsterInput contains data for creating a monster with fixed stats
type CreateMonsterInput struct {
	Name    string
	Level   int
	Health  int
	Attack  int
	Defense int
	Type    entities.MonsterType
}

// GenerateMonsterInput drives procedural monster generation
type GenerateMonsterInput struct {
	Level      int
	Difficulty entities.Difficulty
	Type       *entities.MonsterType // Optional, random when nil
}

// service implements the Service interface
type service struct {
	repository    Repository
	roller        dice.Roller
	uuidGenerator uuid.Generator
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository    Repository     // Required
	Roller        dice.Roller    // Required
	UUIDGenerator uuid.Generator // Optional, will use default if nil
}

// NewService creates a new monster service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Repository == nil {
		panic("repository is required")
	}
	if cfg.Roller == nil {
		panic("roller is required")
	}

	svc := &service{
		repository: cfg.Repository,
		roller:     cfg.Roller,
	}

	if cfg.UUIDGenerator != nil {
		svc.uuidGenerator = cfg.UUIDGenerator
	} else {
		svc.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}

	return svc
}

func (s *service) CreateMonster(ctx context.Context, input *CreateMonsterInput) (*entities.Monster, error) {
	if input == nil {
		return nil, dcerr.InvalidArgument("input cannot be nil")
	}
	if input.Name == "" {
		return nil, dcerr.InvalidArgument("monster name is required")
	}
	if input.Level < 1 {
		return nil, dcerr.InvalidArgumentf("monster level must be at least 1, got %d", input.Level)
	}

	monster := &entities.Monster{
		ID:      s.uuidGenerator.New(),
		Name:    input.Name,
		Level:   input.Level,
		Health:  input.Health,
		Attack:  input.Attack,
		Defense: input.Defense,
		Type:    input.Type,
	}

	if err := s.repository.Create(ctx, monster); err != nil {
		return nil, dcerr.Wrap(err, "failed to create monster")
	}

	return monster, nil
}

func (s *service) GetMonster(ctx context.Context, monsterID string) (*entities.Monster, error) {
	if monsterID == "" {
		return nil, dcerr.InvalidArgument("monster ID is required")
	}

	return s.repository.Get(ctx, monsterID)
}

func (s *service) UpdateMonster(ctx context.Context, monster *entities.Monster) error {
	if monster == nil {
		return dcerr.InvalidArgument("monster cannot be nil")
	}

	return s.repository.Update(ctx, monster)
}

func (s *service) DeleteMonster(ctx context.Context, monsterID string) error {
	if monsterID == "" {
		return dcerr.InvalidArgument("monster ID is required")
	}

	return s.repository.Delete(ctx, monsterID)
}

func (s *service) ListByLevelRange(ctx context.Context, minLevel, maxLevel int) ([]*entities.Monster, error) {
	return s.repository.ListByLevelRange(ctx, minLevel, maxLevel)
}

func (s *service) GenerateMonster(input *GenerateMonsterInput) (*entities.Monster, error) {
	if input == nil {
		return nil, dcerr.InvalidArgument("input cannot be nil")
	}
	if input.Level < 1 {
		return nil, dcerr.InvalidArgumentf("target level must be at least 1, got %d", input.Level)
	}
	if !input.Difficulty.IsValid() {
		return nil, dcerr.InvalidArgumentf("invalid difficulty: %s", input.Difficulty)
	}

	level := input.Level + s.levelVariation(input.Difficulty)
	if level < 1 {
		level = 1
	}

	var monsterType entities.MonsterType
	if input.Type != nil {
		monsterType = *input.Type
	} else {
		types := entities.MonsterTypes()
		monsterType = types[s.intn(len(types))]
	}

	names, ok := monsterNames[monsterType]
	if !ok {
		return nil, dcerr.InvalidArgumentf("invalid monster type: %s", monsterType)
	}
	name := names[s.intn(len(names))]

	return &entities.Monster{
		ID:      s.uuidGenerator.New(),
		Name:    name,
		Level:   level,
		Health:  s.jitter(50 + level*15),
		Attack:  s.jitter(5 + level*2),
		Defense: s.jitter(3 + level),
		Type:    monsterType,
	}, nil
}

// levelVariation draws from the difficulty band's inclusive range:
// Easy [-2,0], Medium [-1,1], Hard [0,2], Extreme [1,4].
func (s *service) levelVariation(difficulty entities.Difficulty) int {
	var lo, hi int
	switch difficulty {
	case entities.DifficultyMedium:
		lo, hi = -1, 1
	case entities.DifficultyHard:
		lo, hi = 0, 2
	case entities.DifficultyExtreme:
		lo, hi = 1, 4
	default:
		lo, hi = -2, 0
	}
	return lo + s.intn(hi-lo+1)
}

// jitter perturbs a base stat by up to 10% either way
func (s *service) jitter(base int) int {
	spread := base / 10
	if spread == 0 {
		return base
	}
	return base - spread + s.intn(2*spread+1)
}

func (s *service) intn(n int) int {
	v := int(s.roller.Uniform() * float64(n))
	if v >= n {
		v = n - 1
	}
	return v
}
