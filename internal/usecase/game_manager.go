package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

type botService interface {
	MakeTurn(ctx context.Context, game *entity.Game) (entity.Position, error)
}

// GameManager runs a single game against the computer. It is not safe for concurrent use.
type GameManager struct {
	logger *slog.Logger
	bot    botService

	computerFirst bool
	game          *entity.Game
}

func NewGameManager(logger *slog.Logger, bot botService, computerFirst bool) *GameManager {
	return &GameManager{
		logger:        logger.With("component", "game_manager"),
		bot:           bot,
		computerFirst: computerFirst,
	}
}

// NewGame discards the current game and starts another. The computer opens if configured to.
func (that *GameManager) NewGame(ctx context.Context) (*entity.Game, error) {
	that.game = entity.NewGame(uuid.NewString(), that.computerFirst)

	log := that.logger.With("game_id", that.game.ID)
	log.Info("new game", "computer_first", that.computerFirst)

	if that.game.IsComputerTurn() {
		if _, err := that.bot.MakeTurn(ctx, that.game); err != nil {
			return nil, fmt.Errorf("failed to make opening move: %w", err)
		}
	}

	return that.game, nil
}

// HumanTurn applies the human's move and, while the game is still on, the computer's reply.
func (that *GameManager) HumanTurn(ctx context.Context, pos entity.Position) (*entity.Game, error) {
	if that.game == nil {
		return nil, apperror.ErrGameIsNotStarted
	}

	log := that.logger.With("game_id", that.game.ID)

	if err := that.game.MakeTurn(entity.Human, pos); err != nil {
		log.Debug("rejected human move", "position", pos.String(), "error", err)
		return that.game, fmt.Errorf("failed make turn: %w", err)
	}

	log.Info("human moved", "position", pos.String(), "outcome", that.game.Outcome.String())

	if that.game.IsFinished() {
		log.Info("game finished", "outcome", that.game.Outcome.String(), "moves", that.game.Moves)
		return that.game, nil
	}

	if _, err := that.bot.MakeTurn(ctx, that.game); err != nil {
		return that.game, fmt.Errorf("failed computer turn: %w", err)
	}

	if that.game.IsFinished() {
		log.Info("game finished", "outcome", that.game.Outcome.String(), "moves", that.game.Moves)
	}

	return that.game, nil
}

// Game returns the current game, nil before NewGame.
func (that *GameManager) Game() *entity.Game {
	return that.game
}

func (that *GameManager) Outcome() entity.Outcome {
	if that.game == nil {
		return entity.Ongoing
	}

	return that.game.Outcome
}
