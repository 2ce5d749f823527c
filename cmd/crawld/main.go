package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/hallowdale/dungeoncrawl/internal/config"
	"github.com/hallowdale/dungeoncrawl/internal/dice"
	"github.com/hallowdale/dungeoncrawl/internal/entities"
	"github.com/hallowdale/dungeoncrawl/internal/repositories/artifacts"
	"github.com/hallowdale/dungeoncrawl/internal/repositories/dungeons"
	"github.com/hallowdale/dungeoncrawl/internal/repositories/gamesessions"
	"github.com/hallowdale/dungeoncrawl/internal/repositories/highscores"
	"github.com/hallowdale/dungeoncrawl/internal/repositories/histories"
	"github.com/hallowdale/dungeoncrawl/internal/repositories/monsters"
	"github.com/hallowdale/dungeoncrawl/internal/repositories/players"
	"github.com/hallowdale/dungeoncrawl/internal/repositories/rooms"
	"github.com/hallowdale/dungeoncrawl/internal/services"
	"github.com/hallowdale/dungeoncrawl/internal/services/game"
	"github.com/hallowdale/dungeoncrawl/internal/services/player"
)

const maxTurnsPerRoom = 50

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	providerConfig := &services.ProviderConfig{
		Roller:          dice.NewRandomRoller(),
		MaxHealsPerRoom: cfg.Game.MaxHealsPerRoom,
	}

	// Keep the Redis client for cleanup
	var redisClient *redis.Client

	log.Printf("Connecting to Redis at: %s", cfg.Redis.Addr)
	redisClient = redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if pingErr := redisClient.Ping(ctx).Err(); pingErr != nil {
		cancel()
		log.Printf("Failed to connect to Redis: %v", pingErr)
		log.Println("Falling back to in-memory repositories")
		redisClient = nil
	} else {
		defer cancel()
		log.Println("Successfully connected to Redis")

		timeProvider := gamesessions.RealTimeProvider{}
		providerConfig.PlayerRepository = players.NewRedisRepository(&players.RedisRepoConfig{Client: redisClient})
		providerConfig.MonsterRepository = monsters.NewRedisRepository(&monsters.RedisRepoConfig{Client: redisClient})
		providerConfig.RoomRepository = rooms.NewRedisRepository(&rooms.RedisRepoConfig{Client: redisClient})
		providerConfig.ArtifactRepository = artifacts.NewRedisRepository(&artifacts.RedisRepoConfig{Client: redisClient})
		providerConfig.DungeonRepository = dungeons.NewRedisRepository(&dungeons.RedisRepoConfig{Client: redisClient})
		providerConfig.SessionRepository = gamesessions.NewRedisRepository(&gamesessions.RedisRepoConfig{
			Client:       redisClient,
			TimeProvider: timeProvider,
		})
		providerConfig.HighscoreRepository = highscores.NewRedisRepository(&highscores.RedisRepoConfig{Client: redisClient})
		providerConfig.HistoryRepository = histories.NewRedisRepository(&histories.RedisRepoConfig{Client: redisClient})

		log.Println("Using Redis for persistence")
	}

	serviceProvider := services.NewProvider(providerConfig)

	if err := playDemoRun(context.Background(), serviceProvider); err != nil {
		log.Fatalf("Demo run failed: %v", err)
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Printf("Error closing Redis connection: %v", err)
		} else {
			log.Println("Closed Redis connection")
		}
	}
}

// playDemoRun auto-plays one full crawl so a fresh checkout demonstrates
// the whole turn loop end to end.
func playDemoRun(ctx context.Context, provider *services.Provider) error {
	crawler, err := provider.PlayerService.CreatePlayer(ctx, &player.CreatePlayerInput{
		Username: fmt.Sprintf("crawler-%d", time.Now().Unix()),
	})
	if err != nil {
		return err
	}
	log.Printf("Created player %s (level %d, %d HP)", crawler.Username, crawler.Level, crawler.Health)

	state, err := provider.GameService.StartRun(ctx, &game.StartRunInput{
		PlayerID:   crawler.ID,
		RoomCount:  6,
		Level:      1,
		Difficulty: entities.DifficultyMedium,
	})
	if err != nil {
		return err
	}
	log.Printf("Entering %q: %s (%d rooms)", state.Dungeon.Name, state.Dungeon.Description, state.Dungeon.RoomCount())

	sessionID := state.Session.ID
	for {
		state, err = provider.GameService.GetRunState(ctx, sessionID)
		if err != nil {
			return err
		}
		log.Printf("Room %d/%d: %s", state.Session.CurrentRoomIndex+1, state.Session.Snapshot.TotalRooms, state.CurrentRoom.Name)

		over, err := playRoom(ctx, provider, sessionID)
		if err != nil {
			return err
		}
		if over {
			ended, endErr := provider.SessionService.GetSession(ctx, sessionID)
			if endErr != nil {
				return endErr
			}
			log.Printf("The run ends here. Final score: %d", ended.Snapshot.Score)
			return nil
		}

		advanced, err := provider.GameService.NextRoom(ctx, sessionID)
		if err != nil {
			return err
		}
		if advanced.Completion != nil {
			c := advanced.Completion
			log.Printf("Dungeon complete! Bonus %d, final score %d", c.Bonus, c.FinalScore)
			if c.NewHighScore {
				log.Println("New high score!")
			}
			if c.Artifact != nil {
				log.Printf("Claimed artifact: %s (%s)", c.Artifact.Name, c.Artifact.Rarity)
			}
			return nil
		}
	}
}

// playRoom fights through one room and searches it. Returns true when the
// player fell and the run is over.
func playRoom(ctx context.Context, provider *services.Provider, sessionID string) (bool, error) {
	for turn := 0; turn < maxTurnsPerRoom; turn++ {
		state, err := provider.GameService.GetRunState(ctx, sessionID)
		if err != nil {
			return false, err
		}
		snap := state.Session.Snapshot

		var action game.Action
		switch {
		case state.CurrentRoom.Monster != nil && !snap.IsMonsterDefeated:
			if state.Player.Health < 30 && snap.CanHeal() {
				action = game.ActionHeal
			} else {
				action = game.ActionFight
			}
		case !snap.IsRoomCompleted:
			action = game.ActionSearch
		default:
			return false, nil
		}

		result, err := provider.GameService.ExecuteTurn(ctx, &game.TurnInput{SessionID: sessionID, Action: action})
		if err != nil {
			return false, err
		}
		logTurn(result)

		if result.PlayerDefeated {
			return true, nil
		}
	}
	return false, fmt.Errorf("room did not resolve within %d turns", maxTurnsPerRoom)
}

func logTurn(result *game.TurnResult) {
	switch result.Action {
	case game.ActionFight:
		if result.PlayerAttack != nil {
			log.Printf("  %s", result.PlayerAttack.Message)
		}
		if result.Victory != nil {
			log.Printf("  Victory! +%d XP, +%d gold, +%d points", result.Victory.ExperienceGained, result.Victory.GoldGained, result.ScoreGained)
		}
		if result.MonsterAttack != nil {
			log.Printf("  %s", result.MonsterAttack.Message)
		}
	case game.ActionHeal:
		if result.Heal != nil {
			log.Printf("  Quaffed a potion: +%d HP (now %d)", result.Heal.AmountHealed, result.Heal.CurrentHealth)
		}
	case game.ActionSearch:
		log.Printf("  Searched the room: +%d gold, +%d points", result.GoldFound, result.ScoreGained)
	}

	if result.Defeat != nil {
		log.Printf("  Defeated! Lost %d gold, restored to %d HP", result.Defeat.GoldLost, result.Defeat.HealthRestored)
	}
}
