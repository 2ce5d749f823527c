package services

import (
	"github.com/hallowdale/dungeoncrawl/internal/dice"
	"github.com/hallowdale/dungeoncrawl/internal/repositories/artifacts"
	"github.com/hallowdale/dungeoncrawl/internal/repositories/dungeons"
	"github.com/hallowdale/dungeoncrawl/internal/repositories/gamesessions"
	"github.com/hallowdale/dungeoncrawl/internal/repositories/highscores"
	"github.com/hallowdale/dungeoncrawl/internal/repositories/histories"
	"github.com/hallowdale/dungeoncrawl/internal/repositories/monsters"
	"github.com/hallowdale/dungeoncrawl/internal/repositories/players"
	"github.com/hallowdale/dungeoncrawl/internal/repositories/rooms"
	artifactService "github.com/hallowdale/dungeoncrawl/internal/services/artifact"
	combatService "github.com/hallowdale/dungeoncrawl/internal/services/combat"
	dungeonService "github.com/hallowdale/dungeoncrawl/internal/services/dungeon"
	gameService "github.com/hallowdale/dungeoncrawl/internal/services/game"
	gamehistoryService "github.com/hallowdale/dungeoncrawl/internal/services/gamehistory"
	highscoreService "github.com/hallowdale/dungeoncrawl/internal/services/highscore"
	monsterService "github.com/hallowdale/dungeoncrawl/internal/services/monster"
	playerService "github.com/hallowdale/dungeoncrawl/internal/services/player"
	roomService "github.com/hallowdale/dungeoncrawl/internal/services/room"
	sessionService "github.com/hallowdale/dungeoncrawl/internal/services/session"
)

// Provider holds all service instances
type Provider struct {
	PlayerService    playerService.Service
	MonsterService   monsterService.Service
	RoomService      roomService.Service
	ArtifactService  artifactService.Service
	DungeonService   dungeonService.Service
	SessionService   sessionService.Service
	CombatService    combatService.Service
	HighscoreService highscoreService.Service
	HistoryService   gamehistoryService.Service
	GameService      gameService.Service
}

// ProviderConfig holds configuration for creating services
type ProviderConfig struct {
	Roller dice.Roller // Required

	// Repositories fall back to in-memory implementations when nil
	PlayerRepository    players.Repository
	MonsterRepository   monsters.Repository
	RoomRepository      rooms.Repository
	ArtifactRepository  artifacts.Repository
	DungeonRepository   dungeons.Repository
	SessionRepository   gamesessions.Repository
	HighscoreRepository highscores.Repository
	HistoryRepository   histories.Repository

	// MaxHealsPerRoom caps in-combat heals per room, defaulting to 2
	MaxHealsPerRoom int
}

// NewProvider creates a new service provider with all services initialized
func NewProvider(cfg *ProviderConfig) *Provider {
	if cfg.Roller == nil {
		panic("roller is required")
	}

	// Use in-memory repositories where none are provided
	playerRepo := cfg.PlayerRepository
	if playerRepo == nil {
		playerRepo = players.NewInMemoryRepository()
	}

	monsterRepo := cfg.MonsterRepository
	if monsterRepo == nil {
		monsterRepo = monsters.NewInMemoryRepository()
	}

	roomRepo := cfg.RoomRepository
	if roomRepo == nil {
		roomRepo = rooms.NewInMemoryRepository()
	}

	artifactRepo := cfg.ArtifactRepository
	if artifactRepo == nil {
		artifactRepo = artifacts.NewInMemoryRepository()
	}

	dungeonRepo := cfg.DungeonRepository
	if dungeonRepo == nil {
		dungeonRepo = dungeons.NewInMemoryRepository()
	}

	sessionRepo := cfg.SessionRepository
	if sessionRepo == nil {
		sessionRepo = gamesessions.NewInMemoryRepository(nil)
	}

	highscoreRepo := cfg.HighscoreRepository
	if highscoreRepo == nil {
		highscoreRepo = highscores.NewInMemoryRepository()
	}

	historyRepo := cfg.HistoryRepository
	if historyRepo == nil {
		historyRepo = histories.NewInMemoryRepository()
	}

	playerSvc := playerService.NewService(&playerService.ServiceConfig{
		Repository:        playerRepo,
		HistoryRepository: historyRepo,
	})

	monsterSvc := monsterService.NewService(&monsterService.ServiceConfig{
		Repository: monsterRepo,
		Roller:     cfg.Roller,
	})

	roomSvc := roomService.NewService(&roomService.ServiceConfig{
		Repository:     roomRepo,
		MonsterService: monsterSvc,
		Roller:         cfg.Roller,
	})

	artifactSvc := artifactService.NewService(&artifactService.ServiceConfig{
		Repository: artifactRepo,
		Roller:     cfg.Roller,
	})

	dungeonSvc := dungeonService.NewService(&dungeonService.ServiceConfig{
		Repository:      dungeonRepo,
		RoomService:     roomSvc,
		ArtifactService: artifactSvc,
		Roller:          cfg.Roller,
	})

	sessionSvc := sessionService.NewService(&sessionService.ServiceConfig{
		Repository: sessionRepo,
	})

	combatSvc := combatService.NewService(&combatService.ServiceConfig{
		Roller: cfg.Roller,
	})

	highscoreSvc := highscoreService.NewService(&highscoreService.ServiceConfig{
		Repository: highscoreRepo,
	})

	historySvc := gamehistoryService.NewService(&gamehistoryService.ServiceConfig{
		Repository: historyRepo,
	})

	gameSvc := gameService.NewService(&gameService.ServiceConfig{
		PlayerService:    playerSvc,
		DungeonService:   dungeonSvc,
		SessionService:   sessionSvc,
		CombatService:    combatSvc,
		HighscoreService: highscoreSvc,
		HistoryService:   historySvc,
		Roller:           cfg.Roller,
		MaxHealsPerRoom:  cfg.MaxHealsPerRoom,
	})

	return &Provider{
		PlayerService:    playerSvc,
		MonsterService:   monsterSvc,
		RoomService:      roomSvc,
		ArtifactService:  artifactSvc,
		DungeonService:   dungeonSvc,
		SessionService:   sessionSvc,
		CombatService:    combatSvc,
		HighscoreService: highscoreSvc,
		HistoryService:   historySvc,
		GameService:      gameSvc,
	}
}
