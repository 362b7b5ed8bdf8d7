package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

type openingBook interface {
	Get(ctx context.Context, key string) (entity.Position, error)
	Save(ctx context.Context, key string, pos entity.Position) error
}

type BotService interface {
	MakeTurn(ctx context.Context, game *entity.Game) (entity.Position, error)
}

type botService struct {
	logger   *slog.Logger
	strategy Strategy
	book     openingBook
}

// NewBotService builds the computer player. book may be nil; it is only worth passing
// for strategies that always answer a position the same way.
func NewBotService(logger *slog.Logger, strategy Strategy, book openingBook) BotService {
	return &botService{
		logger:   logger.With("component", "bot", "strategy", strategy.Name()),
		strategy: strategy,
		book:     book,
	}
}

func (that *botService) MakeTurn(ctx context.Context, game *entity.Game) (entity.Position, error) {
	if game.IsFinished() {
		return entity.Position{}, apperror.ErrGameFinished
	}

	if !game.IsComputerTurn() {
		return entity.Position{}, apperror.ErrNotYourTurn
	}

	log := that.logger.With("game_id", game.ID)

	pos, err := that.chooseMove(ctx, log, &game.Board)
	if err != nil {
		return entity.Position{}, err
	}

	if err = game.MakeTurn(entity.Computer, pos); err != nil {
		return entity.Position{}, fmt.Errorf("bot failed to make turn: %w", err)
	}

	log.Info("computer moved", "position", pos.String(), "outcome", game.Outcome.String())

	return pos, nil
}

func (that *botService) chooseMove(ctx context.Context, log *slog.Logger, board *entity.Board) (entity.Position, error) {
	key := board.Key()

	if that.book != nil {
		pos, err := that.book.Get(ctx, key)
		switch {
		case err == nil && that.isPlayable(board, pos):
			log.Debug("book hit", "key", key)
			return pos, nil
		case err == nil:
			log.Warn("book entry is not playable, searching", "key", key, "position", pos.String())
		case !errors.Is(err, apperror.ErrBookMiss):
			log.Warn("could not read opening book", "key", key, "error", err)
		}
	}

	pos, err := that.strategy.ChooseMove(board)
	if err != nil {
		return entity.Position{}, fmt.Errorf("failed to choose move: %w", err)
	}

	if that.book != nil {
		if err = that.book.Save(ctx, key, pos); err != nil {
			log.Warn("could not update opening book", "key", key, "error", err)
		}
	}

	return pos, nil
}

func (that *botService) isPlayable(board *entity.Board, pos entity.Position) bool {
	empty, err := board.IsEmpty(pos)
	return err == nil && empty
}
