package service

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/minimax"
)

const (
	StrategyOptimal   = "optimal"
	StrategyHeuristic = "heuristic"
	StrategyRandom    = "random"
)

var ErrUnknownStrategy = errors.New("unknown strategy")

// Strategy picks the computer's next move. It must leave board as it found it.
type Strategy interface {
	Name() string
	ChooseMove(board *entity.Board) (entity.Position, error)
}

func NewStrategy(name string, rng *rand.Rand) (Strategy, error) {
	switch name {
	case StrategyOptimal:
		return NewOptimalStrategy(), nil
	case StrategyHeuristic:
		return NewHeuristicStrategy(rng), nil
	case StrategyRandom:
		return NewRandomStrategy(rng), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

type optimalStrategy struct {
	searcher *minimax.Searcher
}

func NewOptimalStrategy() Strategy {
	return &optimalStrategy{searcher: minimax.New()}
}

func (that *optimalStrategy) Name() string {
	return StrategyOptimal
}

func (that *optimalStrategy) ChooseMove(board *entity.Board) (entity.Position, error) {
	pos, _, err := that.searcher.BestMove(board)
	if err != nil {
		return entity.Position{}, fmt.Errorf("search failed: %w", err)
	}

	return pos, nil
}

var (
	corners = []entity.Position{{Row: 0, Col: 0}, {Row: 0, Col: 2}, {Row: 2, Col: 0}, {Row: 2, Col: 2}}
	centre  = entity.Position{Row: 1, Col: 1}
	edges   = []entity.Position{{Row: 0, Col: 1}, {Row: 1, Col: 0}, {Row: 1, Col: 2}, {Row: 2, Col: 1}}
)

// heuristicStrategy wins if it can, blocks if it must, then prefers a corner, the centre
// and finally an edge.
type heuristicStrategy struct {
	rng *rand.Rand
}

func NewHeuristicStrategy(rng *rand.Rand) Strategy {
	return &heuristicStrategy{rng: rng}
}

func (that *heuristicStrategy) Name() string {
	return StrategyHeuristic
}

func (that *heuristicStrategy) ChooseMove(board *entity.Board) (entity.Position, error) {
	available := board.EmptyPositions()
	if len(available) == 0 || board.Evaluate().IsTerminal() {
		return entity.Position{}, apperror.ErrNoLegalMoves
	}

	for _, mark := range []entity.Cell{entity.Computer, entity.Human} {
		for _, pos := range available {
			probe := *board
			probe[pos.Row][pos.Col] = mark

			if probe.Evaluate() == winFor(mark) {
				return pos, nil
			}
		}
	}

	if pos, ok := that.pick(board, corners); ok {
		return pos, nil
	}

	if board.At(centre) == entity.Empty {
		return centre, nil
	}

	if pos, ok := that.pick(board, edges); ok {
		return pos, nil
	}

	return entity.Position{}, apperror.ErrNoLegalMoves
}

func (that *heuristicStrategy) pick(board *entity.Board, from []entity.Position) (entity.Position, bool) {
	open := make([]entity.Position, 0, len(from))
	for _, pos := range from {
		if board.At(pos) == entity.Empty {
			open = append(open, pos)
		}
	}

	if len(open) == 0 {
		return entity.Position{}, false
	}

	return open[that.rng.Intn(len(open))], true
}

func winFor(mark entity.Cell) entity.Outcome {
	if mark == entity.Computer {
		return entity.ComputerWins
	}

	return entity.HumanWins
}

type randomStrategy struct {
	rng *rand.Rand
}

func NewRandomStrategy(rng *rand.Rand) Strategy {
	return &randomStrategy{rng: rng}
}

func (that *randomStrategy) Name() string {
	return StrategyRandom
}

func (that *randomStrategy) ChooseMove(board *entity.Board) (entity.Position, error) {
	available := board.EmptyPositions()
	if len(available) == 0 || board.Evaluate().IsTerminal() {
		return entity.Position{}, apperror.ErrNoLegalMoves
	}

	return available[that.rng.Intn(len(available))], nil
}
