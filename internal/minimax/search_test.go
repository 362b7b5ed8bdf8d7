package minimax

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	x = entity.Computer
	o = entity.Human
	e = entity.Empty
)

func TestChooseComputerMove(t *testing.T) {
	t.Run("Empty board opens in the top-left corner", func(t *testing.T) {
		// Given: an empty board
		var board entity.Board
		searcher := New()

		// When: the computer moves first
		pos, score, err := searcher.BestMove(&board)

		// Then: every opening draws, so the first cell in row-major order is chosen
		require.NoError(t, err)
		assert.Equal(t, entity.Position{Row: 0, Col: 0}, pos)
		assert.Equal(t, TieScore, score)
		assert.Equal(t, entity.Board{}, board)
	})

	t.Run("Takes an immediate win", func(t *testing.T) {
		// Given: both (2,0) and (2,2) complete a diagonal for the computer
		board := entity.Board{{x, o, x}, {o, x, o}, {e, e, e}}

		// When: the computer chooses a move
		pos, err := ChooseComputerMove(&board)

		// Then: the first winning cell is played and the game is won
		require.NoError(t, err)
		assert.Equal(t, entity.Position{Row: 2, Col: 0}, pos)
		assert.Equal(t, entity.Computer, board.At(pos))
		assert.Equal(t, entity.ComputerWins, board.Evaluate())
	})

	t.Run("Blocks the human", func(t *testing.T) {
		// Given: the human threatens the top row
		board := entity.Board{{o, o, e}, {e, x, e}, {e, e, e}}

		// When: the computer chooses a move
		pos, err := ChooseComputerMove(&board)

		// Then: it blocks at the end of the row
		require.NoError(t, err)
		assert.Equal(t, entity.Position{Row: 0, Col: 2}, pos)
		assert.Equal(t, entity.Ongoing, board.Evaluate())
	})

	t.Run("Forced win scores like an immediate win", func(t *testing.T) {
		// Given: (1,2) wins now, while (0,2) blocks the human and forks two lines
		board := entity.Board{{o, o, e}, {x, x, e}, {e, e, e}}
		searcher := New()

		// When: the computer looks for its best move
		pos, score, err := searcher.BestMove(&board)

		// Then: both moves score a win, so the earlier one in row-major order is chosen
		require.NoError(t, err)
		assert.Equal(t, entity.Position{Row: 0, Col: 2}, pos)
		assert.Equal(t, WinScore, score)
	})

	t.Run("Commits exactly one mark", func(t *testing.T) {
		board := entity.Board{{o, e, e}, {e, e, e}, {e, e, e}}
		before := len(board.EmptyPositions())

		_, err := ChooseComputerMove(&board)

		require.NoError(t, err)
		assert.Len(t, board.EmptyPositions(), before-1)
	})

	t.Run("Full board has no legal moves", func(t *testing.T) {
		board := entity.Board{{x, o, x}, {x, o, o}, {o, x, x}}
		before := board

		_, err := ChooseComputerMove(&board)

		require.ErrorIs(t, err, apperror.ErrNoLegalMoves)
		assert.Equal(t, before, board)
	})

	t.Run("Finished game has no legal moves", func(t *testing.T) {
		board := entity.Board{{o, o, o}, {x, x, e}, {x, e, e}}

		_, err := ChooseComputerMove(&board)

		require.ErrorIs(t, err, apperror.ErrNoLegalMoves)
	})
}

func TestBestMove_TieBreak(t *testing.T) {
	t.Run("Repeated searches agree", func(t *testing.T) {
		// Given: the human holds the centre, so every corner draws
		board := entity.Board{{e, e, e}, {e, o, e}, {e, e, e}}
		before := board
		searcher := New()

		for i := 0; i < 5; i++ {
			// When: the search runs again on the same board
			pos, score, err := searcher.BestMove(&board)

			// Then: the first corner is chosen every time and the board is left alone
			require.NoError(t, err)
			assert.Equal(t, entity.Position{Row: 0, Col: 0}, pos)
			assert.Equal(t, TieScore, score)
			assert.Equal(t, before, board)
		}
	})

	t.Run("Earlier cells score lower", func(t *testing.T) {
		// Given: the human opened in a corner, only the centre holds the draw
		board := entity.Board{{o, e, e}, {e, e, e}, {e, e, e}}

		best, score, err := New().BestMove(&board)
		require.NoError(t, err)
		require.Equal(t, entity.Position{Row: 1, Col: 1}, best)
		require.Equal(t, TieScore, score)

		// Then: every cell before the choice in row-major order loses
		for _, pos := range board.EmptyPositions() {
			if pos == best {
				break
			}

			require.NoError(t, board.Place(pos, entity.Computer))
			assert.Equal(t, LossScore, Value(&board, false), "cell %s", pos)
			require.NoError(t, board.Clear(pos))
		}
	})
}

func TestValue(t *testing.T) {
	t.Run("Terminal scores ignore depth", func(t *testing.T) {
		win := entity.Board{{x, x, x}, {o, o, e}, {e, e, e}}
		loss := entity.Board{{o, o, o}, {x, x, e}, {x, e, e}}
		tie := entity.Board{{x, o, x}, {x, o, o}, {o, x, x}}

		for _, maximizing := range []bool{true, false} {
			assert.Equal(t, WinScore, Value(&win, maximizing))
			assert.Equal(t, LossScore, Value(&loss, maximizing))
			assert.Equal(t, TieScore, Value(&tie, maximizing))
		}
	})

	t.Run("Empty board is a draw with perfect play", func(t *testing.T) {
		var board entity.Board

		assert.Equal(t, TieScore, Value(&board, true))
		assert.Equal(t, TieScore, Value(&board, false))
	})

	t.Run("Forced win two plies deep scores like an immediate win", func(t *testing.T) {
		// Given: the computer has forked the human
		board := entity.Board{{o, o, x}, {x, x, e}, {e, e, e}}

		// When: scoring with the human to move
		score := Value(&board, false)

		// Then: the human cannot stop both lines
		assert.Equal(t, WinScore, score)
	})

	t.Run("Board is restored after scoring", func(t *testing.T) {
		board := entity.Board{{x, o, e}, {e, e, e}, {e, e, o}}
		before := board

		Value(&board, true)
		Value(&board, false)

		assert.Equal(t, before, board)
	})
}

func TestSearcher_Stats(t *testing.T) {
	t.Run("Depth never exceeds nine plies", func(t *testing.T) {
		var board entity.Board
		searcher := New()

		searcher.Value(&board, true)
		stats := searcher.Stats()

		assert.LessOrEqual(t, stats.MaxDepth, 9)
		assert.Equal(t, 9, stats.MaxDepth)
		assert.Positive(t, stats.Nodes)
	})

	t.Run("Node count is bounded by the full game tree", func(t *testing.T) {
		var board entity.Board
		searcher := New()

		_, _, err := searcher.BestMove(&board)
		require.NoError(t, err)

		// 9! full lines of play bound the tree, terminal cutoffs keep it far smaller
		stats := searcher.Stats()
		assert.LessOrEqual(t, stats.MaxDepth, 8)
		assert.Less(t, stats.Nodes, 986410)
	})
}

// playOut enumerates every human reply to the computer and returns the outcomes reached.
func playOut(t *testing.T, board entity.Board, computerTurn bool, outcomes map[entity.Outcome]int) {
	t.Helper()

	if outcome := board.Evaluate(); outcome.IsTerminal() {
		outcomes[outcome]++
		return
	}

	if computerTurn {
		_, err := ChooseComputerMove(&board)
		require.NoError(t, err)
		playOut(t, board, false, outcomes)

		return
	}

	for _, pos := range board.EmptyPositions() {
		next := board
		require.NoError(t, next.Place(pos, entity.Human))
		playOut(t, next, true, outcomes)
	}
}

func TestSelfPlay_ComputerNeverLoses(t *testing.T) {
	t.Run("Computer moves first", func(t *testing.T) {
		outcomes := make(map[entity.Outcome]int)

		playOut(t, entity.Board{}, true, outcomes)

		assert.Zero(t, outcomes[entity.HumanWins])
		assert.Positive(t, outcomes[entity.ComputerWins]+outcomes[entity.Tie])
	})

	t.Run("Human moves first", func(t *testing.T) {
		outcomes := make(map[entity.Outcome]int)

		playOut(t, entity.Board{}, false, outcomes)

		assert.Zero(t, outcomes[entity.HumanWins])
		assert.Positive(t, outcomes[entity.Tie])
	})
}
