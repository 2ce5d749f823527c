package room

//go:generate mockgen -destination=mock/mock_service.go -package=mockroom -source=service.go

import (
	"context"

	"github.com/hallowdale/dungeoncrawl/internal/dice"
	"github.com/hallowdale/dungeoncrawl/internal/entities"
	dcerr "github.com/hallowdale/dungeoncrawl/internal/errors"
	"github.com/hallowdale/dungeoncrawl/internal/repositories/rooms"
	"github.com/hallowdale/dungeoncrawl/internal/services/monster"
	"github.com/hallowdale/dungeoncrawl/internal/uuid"
)

// Repository is an alias for the room repository interface
type Repository = rooms.Repository

// Chance a generated room holds a monster
const monsterChance = 0.8

type roomTemplate struct {
	name        string
	description string
}

var roomTemplates = []roomTemplate{
	{"Dark Chamber", "A dark passage filled with ancient mysteries"},
	{"Crystal Cave", "The walls shimmer with crystalline formations"},
	{"Ancient Hall", "Grand pillars reach toward a vaulted ceiling"},
	{"Shadow Corridor", "Shadows dance on the stone walls"},
	{"Mystic Shrine", "Strange runes glow with ethereal light"},
	{"Forgotten Crypt", "The air is thick with the scent of decay"},
	{"Sacred Sanctum", "A holy place now abandoned and silent"},
	{"Hidden Vault", "Ancient treasures lie hidden here"},
	{"Cursed Throne Room", "An ominous throne dominates the chamber"},
	{"Abandoned Library", "Dusty tomes line the crumbling shelves"},
	{"Torture Chamber", "Rusty chains hang from the blood-stained walls"},
	{"Treasury", "Gold and jewels glitter in the dim light"},
	{"Ritual Circle", "Arcane symbols are carved into the floor"},
	{"War Room", "Old battle plans still hang on the walls"},
	{"Armory", "Weapons of ages past rest in their racks"},
	{"Dragon's Lair", "The heat is oppressive and the air smells of sulfur"},
}

// Service defines the room service interface
type Service interface {
	// GetRoom retrieves a room by ID
	GetRoom(ctx context.Context, roomID string) (*entities.Room, error)

	// UpdateRoom updates an existing room
	UpdateRoom(ctx context.Context, room *entities.Room) error

	// DeleteRoom removes a room
	DeleteRoom(ctx context.Context, roomID string) error

	// ListByDungeon retrieves the rooms belonging to a dungeon
	ListByDungeon(ctx context.Context, dungeonID string) ([]*entities.Room, error)

	// MarkExplored flags a room explored and persists it. Exploration is
	// monotonic; marking twice is harmless.
	MarkExplored(ctx context.Context, roomID string) (*entities.Room, error)

	// GenerateRoom builds a room for the given dungeon level and
	// difficulty, attaching a monster most of the time. The result is not
	// persisted.
	GenerateRoom(input *GenerateRoomInput) (*entities.Room, error)

	// SaveRoom persists a generated room
	SaveRoom(ctx context.Context, room *entities.Room) error
}

// GenerateRoomInput drives procedural room generation
type GenerateRoomInput struct {
	DungeonID    string
	DungeonLevel int
	Difficulty   entities.Difficulty
}

// service implements the Service interface
type service struct {
	repository     Repository
	monsterService monster.Service
	roller         dice.Roller
	uuidGenerator  uuid.Generator
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository     Repository      // Required
	MonsterService monster.Service // Required
	Roller         dice.Roller     // Required
	UUIDGenerator  uuid.Generator  // Optional, will use default if nil
}

// NewService creates a new room service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Repository == nil {
		panic("repository is required")
	}
	if cfg.MonsterService == nil {
		panic("monster service is required")
	}
	if cfg.Roller == nil {
		panic("roller is required")
	}

	svc := &service{
		repository:     cfg.Repository,
		monsterService: cfg.MonsterService,
		roller:         cfg.Roller,
	}

	if cfg.UUIDGenerator != nil {
		svc.uuidGenerator = cfg.UUIDGenerator
	} else {
		svc.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}

	return svc
}

func (s *service) GetRoom(ctx context.Context, roomID string) (*entities.Room, error) {
	if roomID == "" {
		return nil, dcerr.InvalidArgument("room ID is required")
	}

	return s.repository.Get(ctx, roomID)
}

func (s *service) UpdateRoom(ctx context.Context, room *entities.Room) error {
	if room == nil {
		return dcerr.InvalidArgument("room cannot be nil")
	}

	return s.repository.Update(ctx, room)
}

func (s *service) DeleteRoom(ctx context.Context, roomID string) error {
	if roomID == "" {
		return dcerr.InvalidArgument("room ID is required")
	}

	return s.repository.Delete(ctx, roomID)
}

func (s *service) ListByDungeon(ctx context.Context, dungeonID string) ([]*entities.Room, error) {
	return s.repository.ListByDungeon(ctx, dungeonID)
}

func (s *service) MarkExplored(ctx context.Context, roomID string) (*entities.Room, error) {
	room, err := s.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	room.MarkExplored()

	if err := s.repository.Update(ctx, room); err != nil {
		return nil, dcerr.Wrap(err, "failed to persist room exploration").
			WithMeta("room_id", roomID)
	}

	return room, nil
}

func (s *service) GenerateRoom(input *GenerateRoomInput) (*entities.Room, error) {
	if input == nil {
		return nil, dcerr.InvalidArgument("input cannot be nil")
	}
	if input.DungeonLevel < 1 {
		return nil, dcerr.InvalidArgumentf("dungeon level must be at least 1, got %d", input.DungeonLevel)
	}
	if !input.Difficulty.IsValid() {
		return nil, dcerr.InvalidArgumentf("invalid difficulty: %s", input.Difficulty)
	}

	template := roomTemplates[s.intn(len(roomTemplates))]

	multiplier := input.Difficulty.RewardMultiplier()
	room := &entities.Room{
		ID:               s.uuidGenerator.New(),
		DungeonID:        input.DungeonID,
		Name:             template.name,
		Description:      template.description,
		Level:            input.DungeonLevel,
		Difficulty:       input.Difficulty,
		ExperienceReward: int(float64(20*input.DungeonLevel) * multiplier),
		GoldReward:       int(float64(10*input.DungeonLevel) * multiplier),
	}

	if s.roller.Uniform() < monsterChance {
		generated, err := s.monsterService.GenerateMonster(&monster.GenerateMonsterInput{
			Level:      input.DungeonLevel,
			Difficulty: input.Difficulty,
		})
		if err != nil {
			return nil, dcerr.Wrap(err, "failed to generate room monster")
		}
		room.Monster = generated
	}

	return room, nil
}

func (s *service) SaveRoom(ctx context.Context, room *entities.Room) error {
	if room == nil {
		return dcerr.InvalidArgument("room cannot be nil")
	}

	return s.repository.Create(ctx, room)
}

func (s *service) intn(n int) int {
	v := int(s.roller.Uniform() * float64(n))
	if v >= n {
		v = n - 1
	}
	return v
}
