// Package minimax picks the computer's move by exhaustive minimax search.
//
// The search has no pruning and no depth limit: the tree below any 3x3 position is small
// enough to walk completely. Terminal positions score +1 for a computer win, -1 for a human
// win and 0 for a tie, regardless of how deep they are found.
package minimax

import (
	"fmt"
	"math"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const (
	WinScore  = 1
	LossScore = -1
	TieScore  = 0
)

var scores = map[entity.Outcome]int{
	entity.ComputerWins: WinScore,
	entity.HumanWins:    LossScore,
	entity.Tie:          TieScore,
}

// Stats describes the last search. MaxDepth counts plies below the root move.
type Stats struct {
	Nodes    int
	MaxDepth int
}

// Searcher is not safe for concurrent use; it takes the board for the length of a call.
type Searcher struct {
	stats Stats
}

func New() *Searcher {
	return &Searcher{}
}

// ChooseComputerMove runs a search on a fresh Searcher and commits its move.
func ChooseComputerMove(board *entity.Board) (entity.Position, error) {
	return New().ChooseComputerMove(board)
}

// Value scores board with a fresh Searcher.
func Value(board *entity.Board, maximizing bool) int {
	return New().Value(board, maximizing)
}

func (that *Searcher) Stats() Stats {
	return that.stats
}

// ChooseComputerMove finds the best move for the computer and places it on board.
func (that *Searcher) ChooseComputerMove(board *entity.Board) (entity.Position, error) {
	pos, _, err := that.BestMove(board)
	if err != nil {
		return entity.Position{}, err
	}

	if err = board.Place(pos, entity.Computer); err != nil {
		return entity.Position{}, fmt.Errorf("failed to commit move: %w", err)
	}

	return pos, nil
}

// BestMove returns the computer's best move and its score without changing board.
// Equal scores keep the first move in row-major order.
func (that *Searcher) BestMove(board *entity.Board) (entity.Position, int, error) {
	that.stats = Stats{}

	if board.Evaluate().IsTerminal() {
		return entity.Position{}, 0, apperror.ErrNoLegalMoves
	}

	candidates := board.EmptyPositions()
	if len(candidates) == 0 {
		return entity.Position{}, 0, apperror.ErrNoLegalMoves
	}

	bestScore := math.MinInt
	var bestMove entity.Position

	for _, pos := range candidates {
		score := that.speculate(board, pos, entity.Computer, func() int {
			return that.value(board, 0, false)
		})

		if score > bestScore {
			bestScore = score
			bestMove = pos
		}
	}

	return bestMove, bestScore, nil
}

func (that *Searcher) Value(board *entity.Board, maximizing bool) int {
	that.stats = Stats{}

	return that.value(board, 0, maximizing)
}

func (that *Searcher) value(board *entity.Board, depth int, maximizing bool) int {
	that.stats.Nodes++
	if depth > that.stats.MaxDepth {
		that.stats.MaxDepth = depth
	}

	if outcome := board.Evaluate(); outcome.IsTerminal() {
		return scores[outcome]
	}

	if maximizing {
		best := math.MinInt
		for _, pos := range board.EmptyPositions() {
			best = max(best, that.speculate(board, pos, entity.Computer, func() int {
				return that.value(board, depth+1, false)
			}))
		}

		return best
	}

	best := math.MaxInt
	for _, pos := range board.EmptyPositions() {
		best = min(best, that.speculate(board, pos, entity.Human, func() int {
			return that.value(board, depth+1, true)
		}))
	}

	return best
}

// speculate puts mark on an empty pos for the duration of score and always takes it back.
func (that *Searcher) speculate(board *entity.Board, pos entity.Position, mark entity.Cell, score func() int) int {
	board[pos.Row][pos.Col] = mark
	defer func() {
		board[pos.Row][pos.Col] = entity.Empty
	}()

	return score()
}
