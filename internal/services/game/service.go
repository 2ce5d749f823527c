package game

//go:generate mockgen -destination=mock/mock_service.go -package=mockgame -source=service.go

import (
	"context"

	"github.com/hallowdale/dungeoncrawl/internal/dice"
	"github.com/hallowdale/dungeoncrawl/internal/entities"
	dcerr "github.com/hallowdale/dungeoncrawl/internal/errors"
	"github.com/hallowdale/dungeoncrawl/internal/services/combat"
	"github.com/hallowdale/dungeoncrawl/internal/services/dungeon"
	"github.com/hallowdale/dungeoncrawl/internal/services/gamehistory"
	"github.com/hallowdale/dungeoncrawl/internal/services/highscore"
	"github.com/hallowdale/dungeoncrawl/internal/services/player"
	"github.com/hallowdale/dungeoncrawl/internal/services/session"
)

// Action is a player-chosen turn action
type Action string

const (
	ActionFight  Action = "fight"
	ActionDefend Action = "defend"
	ActionHeal   Action = "heal"
	ActionFlee   Action = "flee"
	ActionSearch Action = "search"
)

// Healing potions restore a fixed amount before the heal roll adjusts it
const healAmount = 20

const (
	roomScoreBase       = 100
	completionBonusBase = 500
)

// Service runs whole dungeon crawls, one turn per call. It composes the
// combat resolver, the progression engine, and the session state machine,
// and persists every mutation before returning.
type Service interface {
	// StartRun generates a dungeon and opens a session positioned at its
	// first room
	StartRun(ctx context.Context, input *StartRunInput) (*RunState, error)

	// GetRunState loads the player, dungeon, and current room for an
	// active session
	GetRunState(ctx context.Context, sessionID string) (*RunState, error)

	// ExecuteTurn resolves one player action against the current room
	ExecuteTurn(ctx context.Context, input *TurnInput) (*TurnResult, error)

	// NextRoom advances the run to the following room, resetting the
	// per-room counters. Advancing past the last room completes the
	// dungeon instead.
	NextRoom(ctx context.Context, sessionID string) (*NextRoomResult, error)

	// CompleteDungeon applies the completion bonus, records high score and
	// history, grants the dungeon artifact, and ends the session
	CompleteDungeon(ctx context.Context, sessionID string) (*CompletionResult, error)
}

// StartRunInput describes the run to open
type StartRunInput struct {
	PlayerID   string
	RoomCount  int
	Level      int
	Difficulty entities.Difficulty
}

// TurnInput selects the action to resolve
type TurnInput struct {
	SessionID string
	Action    Action
}

// RunState is the loaded view of an in-flight run
type RunState struct {
	Player      *entities.Player
	Dungeon     *entities.Dungeon
	Session     *entities.GameSession
	CurrentRoom *entities.Room
}

// TurnResult reports everything one turn did
type TurnResult struct {
	Action          Action
	PlayerAttack    *combat.AttackResult
	MonsterAttack   *combat.AttackResult
	Defend          *combat.DefendResult
	Heal            *combat.HealResult
	Victory         *combat.VictoryResult
	Defeat          *combat.DefeatResult
	Fled            bool
	GoldFound       int
	ScoreGained     int
	Score           int
	MonsterDefeated bool
	RoomCompleted   bool
	PlayerDefeated  bool
}

// NextRoomResult is either the next room or, past the last one, the
// completed run
type NextRoomResult struct {
	Session    *entities.GameSession
	Room       *entities.Room
	Completion *CompletionResult
}

// CompletionResult reports a finished dungeon
type CompletionResult struct {
	Bonus        int
	FinalScore   int
	NewHighScore bool
	Artifact     *entities.Artifact
}

// service implements the Service interface
type service struct {
	playerService    player.Service
	dungeonService   dungeon.Service
	sessionService   session.Service
	combatService    combat.Service
	highscoreService highscore.Service
	historyService   gamehistory.Service
	roller           dice.Roller
	maxHealsPerRoom  int
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	PlayerService    player.Service      // Required
	DungeonService   dungeon.Service     // Required
	SessionService   session.Service     // Required
	CombatService    combat.Service      // Required
	HighscoreService highscore.Service   // Required
	HistoryService   gamehistory.Service // Required
	Roller           dice.Roller         // Required
	MaxHealsPerRoom  int                 // Optional, defaults to 2
}

// NewService creates a new game service
func NewService(cfg *ServiceConfig) Service {
	if cfg.PlayerService == nil {
		panic("player service is required")
	}
	if cfg.DungeonService == nil {
		panic("dungeon service is required")
	}
	if cfg.SessionService == nil {
		panic("session service is required")
	}
	if cfg.CombatService == nil {
		panic("combat service is required")
	}
	if cfg.HighscoreService == nil {
		panic("highscore service is required")
	}
	if cfg.HistoryService == nil {
		panic("history service is required")
	}
	if cfg.Roller == nil {
		panic("roller is required")
	}

	maxHeals := cfg.MaxHealsPerRoom
	if maxHeals <= 0 {
		maxHeals = entities.DefaultMaxHealsPerRoom
	}

	return &service{
		playerService:    cfg.PlayerService,
		dungeonService:   cfg.DungeonService,
		sessionService:   cfg.SessionService,
		combatService:    cfg.CombatService,
		highscoreService: cfg.HighscoreService,
		historyService:   cfg.HistoryService,
		roller:           cfg.Roller,
		maxHealsPerRoom:  maxHeals,
	}
}

func (s *service) StartRun(ctx context.Context, input *StartRunInput) (*RunState, error) {
	if input == nil {
		return nil, dcerr.InvalidArgument("input cannot be nil")
	}
	if input.PlayerID == "" {
		return nil, dcerr.InvalidArgument("player ID is required")
	}
	if !input.Difficulty.IsValid() {
		return nil, dcerr.InvalidArgumentf("invalid difficulty: %s", input.Difficulty)
	}

	crawler, err := s.playerService.GetPlayer(ctx, input.PlayerID)
	if err != nil {
		return nil, err
	}

	generated, err := s.dungeonService.GenerateDungeon(ctx, &dungeon.GenerateDungeonInput{
		RoomCount: input.RoomCount,
		Level:     input.Level,
	})
	if err != nil {
		return nil, err
	}

	firstRoom, ok := generated.RoomAt(0)
	if !ok {
		return nil, dcerr.Internal("generated dungeon has no rooms")
	}

	snapshot := &entities.Snapshot{
		DungeonID:       generated.ID,
		TotalRooms:      generated.RoomCount(),
		MaxHealsPerRoom: s.maxHealsPerRoom,
		Difficulty:      input.Difficulty,
	}

	opened, err := s.sessionService.StartSession(ctx, &session.StartSessionInput{
		PlayerID:    input.PlayerID,
		DungeonID:   generated.ID,
		FirstRoomID: firstRoom.ID,
		Snapshot:    snapshot,
	})
	if err != nil {
		return nil, err
	}
	opened.Snapshot.StartTime = opened.StartTime

	return &RunState{
		Player:      crawler,
		Dungeon:     generated,
		Session:     opened,
		CurrentRoom: firstRoom,
	}, nil
}

func (s *service) GetRunState(ctx context.Context, sessionID string) (*RunState, error) {
	sess, snap, err := s.loadTurnSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	crawler, err := s.playerService.GetPlayer(ctx, sess.PlayerID)
	if err != nil {
		return nil, err
	}

	dng, err := s.dungeonService.GetDungeon(ctx, snap.DungeonID)
	if err != nil {
		return nil, err
	}

	current, ok := dng.RoomAt(snap.CurrentRoomIndex)
	if !ok {
		return nil, dcerr.InvalidStatef("session %s points at room index %d outside the dungeon", sessionID, snap.CurrentRoomIndex)
	}

	return &RunState{
		Player:      crawler,
		Dungeon:     dng,
		Session:     sess,
		CurrentRoom: current,
	}, nil
}

func (s *service) ExecuteTurn(ctx context.Context, input *TurnInput) (*TurnResult, error) {
	if input == nil {
		return nil, dcerr.InvalidArgument("input cannot be nil")
	}

	state, err := s.GetRunState(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	snap := state.Session.Snapshot
	result := &TurnResult{Action: input.Action}

	switch input.Action {
	case ActionFight:
		err = s.resolveFight(state, result)
	case ActionDefend:
		err = s.resolveDefend(state, result)
	case ActionHeal:
		err = s.resolveHeal(state, result)
	case ActionFlee:
		err = s.resolveFlee(state, result)
	case ActionSearch:
		err = s.resolveSearch(state, result)
	default:
		return nil, dcerr.InvalidArgumentf("unknown action: %s", input.Action)
	}
	if err != nil {
		return nil, err
	}

	result.Score = snap.Score
	result.MonsterDefeated = snap.IsMonsterDefeated
	result.RoomCompleted = snap.IsRoomCompleted

	if err := s.playerService.UpdatePlayer(ctx, state.Player); err != nil {
		return nil, dcerr.Wrap(err, "failed to persist the player after the turn")
	}
	if err := s.dungeonService.UpdateDungeon(ctx, state.Dungeon); err != nil {
		return nil, dcerr.Wrap(err, "failed to persist the dungeon after the turn")
	}

	if state.Player.IsDead() {
		defeat, err := s.resolveRunDefeat(ctx, state)
		if err != nil {
			return nil, err
		}
		result.Defeat = defeat
		result.PlayerDefeated = true
		return result, nil
	}

	if _, err := s.sessionService.SaveSession(ctx, &session.SaveSessionInput{
		SessionID: state.Session.ID,
		Snapshot:  snap,
		Paused:    false,
	}); err != nil {
		return nil, err
	}

	return result, nil
}

func (s *service) NextRoom(ctx context.Context, sessionID string) (*NextRoomResult, error) {
	state, err := s.GetRunState(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	snap := state.Session.Snapshot
	if monsterBlocks(state.CurrentRoom, snap) {
		return nil, dcerr.InvalidState("a monster still blocks the way out")
	}

	if snap.OnLastRoom() {
		completion, err := s.CompleteDungeon(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		return &NextRoomResult{Completion: completion}, nil
	}

	nextIndex := snap.CurrentRoomIndex + 1
	next, ok := state.Dungeon.RoomAt(nextIndex)
	if !ok {
		return nil, dcerr.Internalf("room index %d missing from dungeon %s", nextIndex, state.Dungeon.ID)
	}

	snap.EnterRoom(nextIndex)

	moved, err := s.sessionService.MoveToRoom(ctx, sessionID, next.ID, nextIndex)
	if err != nil {
		return nil, err
	}

	if _, err := s.sessionService.SaveSession(ctx, &session.SaveSessionInput{
		SessionID: sessionID,
		Snapshot:  snap,
		Paused:    false,
	}); err != nil {
		return nil, err
	}
	moved.Snapshot = snap

	return &NextRoomResult{Session: moved, Room: next}, nil
}

func (s *service) CompleteDungeon(ctx context.Context, sessionID string) (*CompletionResult, error) {
	state, err := s.GetRunState(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	snap := state.Session.Snapshot
	bonus := completionBonusBase * (snap.Difficulty.Ordinal() + 1)
	snap.Score += bonus

	_, newBest, err := s.highscoreService.UpdateIfHigher(ctx, state.Player.ID, snap.Score)
	if err != nil {
		return nil, err
	}

	if _, _, err := s.historyService.RecordCompletion(ctx, state.Player.ID, state.Dungeon.ID); err != nil {
		return nil, err
	}

	if _, err := s.dungeonService.MarkExplored(ctx, state.Dungeon.ID); err != nil {
		return nil, err
	}

	if state.Dungeon.Artifact != nil {
		if err := s.playerService.GrantArtifact(ctx, state.Player.ID, state.Dungeon.Artifact); err != nil {
			return nil, err
		}
	}

	if _, err := s.sessionService.SaveSession(ctx, &session.SaveSessionInput{
		SessionID: sessionID,
		Snapshot:  snap,
		Paused:    false,
	}); err != nil {
		return nil, err
	}
	if _, err := s.sessionService.EndSession(ctx, sessionID); err != nil {
		return nil, err
	}

	return &CompletionResult{
		Bonus:        bonus,
		FinalScore:   snap.Score,
		NewHighScore: newBest,
		Artifact:     state.Dungeon.Artifact,
	}, nil
}

func (s *service) resolveFight(state *RunState, result *TurnResult) error {
	snap := state.Session.Snapshot
	if !monsterBlocks(state.CurrentRoom, snap) {
		return dcerr.InvalidState("there is no monster to fight")
	}
	monster := state.CurrentRoom.Monster

	attack, err := s.combatService.PlayerAttacks(state.Player, monster)
	if err != nil {
		return err
	}
	result.PlayerAttack = attack

	if attack.Hit && monster.IsDefeated() {
		snap.IsMonsterDefeated = true

		gained := roomScore(snap.Difficulty)
		snap.Score += gained
		result.ScoreGained = gained

		victory, err := s.combatService.ResolveVictory(state.Player, state.CurrentRoom)
		if err != nil {
			return err
		}
		result.Victory = victory
		return nil
	}

	reciprocal, err := s.combatService.MonsterAttacks(monster, state.Player)
	if err != nil {
		return err
	}
	result.MonsterAttack = reciprocal
	return nil
}

func (s *service) resolveDefend(state *RunState, result *TurnResult) error {
	defend, err := s.combatService.PlayerDefends(state.Player)
	if err != nil {
		return err
	}
	result.Defend = defend
	return nil
}

func (s *service) resolveHeal(state *RunState, result *TurnResult) error {
	snap := state.Session.Snapshot
	if !snap.CanHeal() {
		return dcerr.InvalidStatef("no healing potions left for this room (used %d of %d)",
			snap.HealsUsedInRoom, snap.MaxHealsPerRoom)
	}

	heal, err := s.combatService.PlayerHeals(state.Player, healAmount)
	if err != nil {
		return err
	}
	snap.HealsUsedInRoom++
	result.Heal = heal
	return nil
}

func (s *service) resolveFlee(state *RunState, result *TurnResult) error {
	snap := state.Session.Snapshot
	if !monsterBlocks(state.CurrentRoom, snap) {
		return dcerr.InvalidState("there is nothing to flee from")
	}

	fled, err := s.combatService.PlayerFlees(state.Player)
	if err != nil {
		return err
	}
	result.Fled = fled

	if fled {
		// Fleeing clears the encounter without rewards
		snap.IsMonsterDefeated = true
		snap.IsRoomCompleted = true
		return nil
	}

	reciprocal, err := s.combatService.MonsterAttacks(state.CurrentRoom.Monster, state.Player)
	if err != nil {
		return err
	}
	result.MonsterAttack = reciprocal
	return nil
}

func (s *service) resolveSearch(state *RunState, result *TurnResult) error {
	snap := state.Session.Snapshot
	if monsterBlocks(state.CurrentRoom, snap) {
		return dcerr.InvalidState("a monster still blocks the room")
	}
	if snap.IsRoomCompleted {
		return dcerr.InvalidState("this room has already been picked clean")
	}

	goldFound := (10 + s.intn(40)) * state.Player.Level
	state.Player.AddGold(goldFound)
	result.GoldFound = goldFound

	gained := roomScore(snap.Difficulty) / 2
	snap.Score += gained
	result.ScoreGained = gained
	snap.IsRoomCompleted = true
	return nil
}

// resolveRunDefeat applies the defeat penalties, records the score, and
// ends the session. The run is over.
func (s *service) resolveRunDefeat(ctx context.Context, state *RunState) (*combat.DefeatResult, error) {
	defeat, err := s.combatService.ResolveDefeat(state.Player, state.CurrentRoom)
	if err != nil {
		return nil, err
	}

	if err := s.playerService.UpdatePlayer(ctx, state.Player); err != nil {
		return nil, dcerr.Wrap(err, "failed to persist the player after defeat")
	}

	if _, _, err := s.highscoreService.UpdateIfHigher(ctx, state.Player.ID, state.Session.Snapshot.Score); err != nil {
		return nil, err
	}

	if _, err := s.sessionService.SaveSession(ctx, &session.SaveSessionInput{
		SessionID: state.Session.ID,
		Snapshot:  state.Session.Snapshot,
		Paused:    false,
	}); err != nil {
		return nil, err
	}
	if _, err := s.sessionService.EndSession(ctx, state.Session.ID); err != nil {
		return nil, err
	}

	return defeat, nil
}

// loadTurnSession fetches a session and checks it can take a turn
func (s *service) loadTurnSession(ctx context.Context, sessionID string) (*entities.GameSession, *entities.Snapshot, error) {
	sess, err := s.sessionService.GetSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if !sess.IsActive {
		return nil, nil, dcerr.InvalidStatef("session %s has ended", sessionID)
	}
	if sess.IsPaused {
		return nil, nil, dcerr.InvalidStatef("session %s is paused; resume it first", sessionID)
	}
	if sess.Snapshot == nil {
		return nil, nil, dcerr.InvalidStatef("session %s has no run snapshot", sessionID)
	}
	return sess, sess.Snapshot, nil
}

// monsterBlocks reports whether a living monster still holds the room
func monsterBlocks(room *entities.Room, snap *entities.Snapshot) bool {
	return room.Monster != nil && !snap.IsMonsterDefeated
}

func roomScore(difficulty entities.Difficulty) int {
	return roomScoreBase * (difficulty.Ordinal() + 1)
}

func (s *service) intn(n int) int {
	v := int(s.roller.Uniform() * float64(n))
	if v >= n {
		v = n - 1
	}
	return v
}
