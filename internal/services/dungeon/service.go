package dungeon

//go:generate mockgen -destination=mock/mock_service.go -package=mockdungeon -source=service.go

import (
	"context"

	"github.com/hallowdale/dungeoncrawl/internal/dice"
	"github.com/hallowdale/dungeoncrawl/internal/entities"
	dcerr "github.com/hallowdale/dungeoncrawl/internal/errors"
	"github.com/hallowdale/dungeoncrawl/internal/repositories/dungeons"
	"github.com/hallowdale/dungeoncrawl/internal/services/artifact"
	"github.com/hallowdale/dungeoncrawl/internal/services/room"
	"github.com/hallowdale/dungeoncrawl/internal/uuid"
)

// Repository is an alias for the dungeon repository interface
type Repository = dungeons.Repository

// Chance a generated dungeon holds an artifact
const artifactChance = 0.5

type dungeonTemplate struct {
	name        string
	description string
}

var dungeonTemplates = []dungeonTemplate{
	{"The Abandoned Depths", "An ancient place filled with dangers and untold treasures"},
	{"Tower of Shadows", "Few who enter these halls return to tell the tale"},
	{"Crimson Catacombs", "Dark magic seeps from every stone of this cursed place"},
	{"The Lost Temple", "Legends speak of great riches hidden within"},
	{"Abyssal Fortress", "The air itself feels hostile in this forgotten realm"},
	{"The Dragon's Keep", "A maze of corridors where death waits at every turn"},
	{"The Cursed Citadel", "Ancient curses guard the treasures it holds"},
	{"Ruins of Eternity", "Time has forgotten this place, but evil remembers"},
	{"The Dark Sanctum", "A sanctuary corrupted by sinister forces"},
	{"Tomb of the Ancient Kings", "The resting place of forgotten sovereigns"},
	{"Infernal Dungeon", "Flame and fury await those who dare enter"},
	{"Castle Morfroi", "A once-proud fortress, now home to nightmares"},
}

// Service defines the dungeon service interface
type Service interface {
	// GetDungeon retrieves a dungeon by ID
	GetDungeon(ctx context.Context, dungeonID string) (*entities.Dungeon, error)

	// ListDungeons retrieves all dungeons
	ListDungeons(ctx context.Context) ([]*entities.Dungeon, error)

	// ListByExplored retrieves dungeons filtered by exploration status
	ListByExplored(ctx context.Context, explored bool) ([]*entities.Dungeon, error)

	// DeleteDungeon removes a dungeon
	DeleteDungeon(ctx context.Context, dungeonID string) error

	// UpdateDungeon updates an existing dungeon
	UpdateDungeon(ctx context.Context, dungeon *entities.Dungeon) error

	// MarkExplored flags a dungeon explored and persists it. This is the
	// only way a dungeon becomes explored; it is never derived from room
	// completion.
	MarkExplored(ctx context.Context, dungeonID string) (*entities.Dungeon, error)

	// GetProgress returns the floored percentage of explored rooms
	GetProgress(ctx context.Context, dungeonID string) (int, error)

	// MarkRoomExplored flags one room inside the dungeon blob explored
	// and persists the dungeon
	MarkRoomExplored(ctx context.Context, dungeonID, roomID string) (*entities.Dungeon, error)

	// GenerateDungeon builds and persists a dungeon with positionally
	// banded room difficulties and an optional artifact
	GenerateDungeon(ctx context.Context, input *GenerateDungeonInput) (*entities.Dungeon, error)
}

// GenerateDungeonInput drives procedural dungeon generation
type GenerateDungeonInput struct {
	RoomCount int
	Level     int
}

// service implements the Service interface
type service struct {
	repository      Repository
	roomService     room.Service
	artifactService artifact.Service
	roller          dice.Roller
	uuidGenerator   uuid.Generator
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository      Repository       // Required
	RoomService     room.Service     // Required
	ArtifactService artifact.Service // Required
	Roller          dice.Roller      // Required
	UUIDGenerator   uuid.Generator   // Optional, will use default if nil
}

// NewService creates a new dungeon service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Repository == nil {
		panic("repository is required")
	}
	if cfg.RoomService == nil {
		panic("room service is required")
	}
	if cfg.ArtifactService == nil {
		panic("artifact service is required")
	}
	if cfg.Roller == nil {
		panic("roller is required")
	}

	svc := &service{
		repository:      cfg.Repository,
		roomService:     cfg.RoomService,
		artifactService: cfg.ArtifactService,
		roller:          cfg.Roller,
	}

	if cfg.UUIDGenerator != nil {
		svc.uuidGenerator = cfg.UUIDGenerator
	} else {
		svc.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}

	return svc
}

func (s *service) GetDungeon(ctx context.Context, dungeonID string) (*entities.Dungeon, error) {
	if dungeonID == "" {
		return nil, dcerr.InvalidArgument("dungeon ID is required")
	}

	return s.repository.Get(ctx, dungeonID)
}

func (s *service) ListDungeons(ctx context.Context) ([]*entities.Dungeon, error) {
	return s.repository.List(ctx)
}

func (s *service) ListByExplored(ctx context.Context, explored bool) ([]*entities.Dungeon, error) {
	dungeonsList, err := s.repository.List(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]*entities.Dungeon, 0, len(dungeonsList))
	for _, d := range dungeonsList {
		if d.IsExplored == explored {
			filtered = append(filtered, d)
		}
	}

	return filtered, nil
}

func (s *service) DeleteDungeon(ctx context.Context, dungeonID string) error {
	if dungeonID == "" {
		return dcerr.InvalidArgument("dungeon ID is required")
	}

	return s.repository.Delete(ctx, dungeonID)
}

func (s *service) UpdateDungeon(ctx context.Context, dungeon *entities.Dungeon) error {
	if dungeon == nil {
		return dcerr.InvalidArgument("dungeon cannot be nil")
	}

	return s.repository.Update(ctx, dungeon)
}

func (s *service) MarkExplored(ctx context.Context, dungeonID string) (*entities.Dungeon, error) {
	dungeon, err := s.GetDungeon(ctx, dungeonID)
	if err != nil {
		return nil, err
	}

	dungeon.MarkExplored()

	if err := s.repository.Update(ctx, dungeon); err != nil {
		return nil, dcerr.Wrap(err, "failed to persist dungeon exploration").
			WithMeta("dungeon_id", dungeonID)
	}

	return dungeon, nil
}

func (s *service) GetProgress(ctx context.Context, dungeonID string) (int, error) {
	dungeon, err := s.GetDungeon(ctx, dungeonID)
	if err != nil {
		return 0, err
	}

	return dungeon.Progress(), nil
}

func (s *service) MarkRoomExplored(ctx context.Context, dungeonID, roomID string) (*entities.Dungeon, error) {
	dungeon, err := s.GetDungeon(ctx, dungeonID)
	if err != nil {
		return nil, err
	}

	found := false
	for _, r := range dungeon.Rooms {
		if r.ID == roomID {
			r.MarkExplored()
			found = true
			break
		}
	}
	if !found {
		return nil, dcerr.NotFoundf("room %s is not in dungeon %s", roomID, dungeonID)
	}

	if err := s.repository.Update(ctx, dungeon); err != nil {
		return nil, dcerr.Wrap(err, "failed to persist room exploration").
			WithMeta("dungeon_id", dungeonID).
			WithMeta("room_id", roomID)
	}

	return dungeon, nil
}

func (s *service) GenerateDungeon(ctx context.Context, input *GenerateDungeonInput) (*entities.Dungeon, error) {
	if input == nil {
		return nil, dcerr.InvalidArgument("input cannot be nil")
	}
	if input.RoomCount < 1 {
		return nil, dcerr.InvalidArgumentf("room count must be at least 1, got %d", input.RoomCount)
	}
	if input.Level < 1 {
		return nil, dcerr.InvalidArgumentf("dungeon level must be at least 1, got %d", input.Level)
	}

	template := dungeonTemplates[s.intn(len(dungeonTemplates))]

	dungeon := &entities.Dungeon{
		ID:          s.uuidGenerator.New(),
		Name:        template.name,
		Description: template.description,
		Level:       input.Level,
		Rooms:       make([]*entities.Room, 0, input.RoomCount),
	}

	for i := 0; i < input.RoomCount; i++ {
		generated, err := s.roomService.GenerateRoom(&room.GenerateRoomInput{
			DungeonID:    dungeon.ID,
			DungeonLevel: input.Level,
			Difficulty:   bandForPosition(i, input.RoomCount),
		})
		if err != nil {
			return nil, dcerr.Wrapf(err, "failed to generate room %d", i)
		}

		if err := s.roomService.SaveRoom(ctx, generated); err != nil {
			return nil, dcerr.Wrapf(err, "failed to save room %d", i)
		}

		dungeon.Rooms = append(dungeon.Rooms, generated)
	}

	if s.roller.Uniform() < artifactChance {
		generated, err := s.artifactService.GenerateArtifact()
		if err != nil {
			return nil, dcerr.Wrap(err, "failed to generate dungeon artifact")
		}
		dungeon.Artifact = generated
	}

	if err := s.repository.Create(ctx, dungeon); err != nil {
		return nil, dcerr.Wrap(err, "failed to store dungeon")
	}

	return dungeon, nil
}

// bandForPosition fixes each room's difficulty by its index: the first 30%
// are Easy, through 60% Medium, through 85% Hard, and the tail Extreme.
func bandForPosition(index, roomCount int) entities.Difficulty {
	n := float64(roomCount)
	i := float64(index)
	switch {
	case i < n*0.3:
		return entities.DifficultyEasy
	case i < n*0.6:
		return entities.DifficultyMedium
	case i < n*0.85:
		return entities.DifficultyHard
	default:
		return entities.DifficultyExtreme
	}
}

func (s *service) intn(n int) int {
	v := int(s.roller.Uniform() * float64(n))
	if v >= n {
		v = n - 1
	}
	return v
}
