package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
)

// Game owns the board of one session and tracks whose turn it is.
type Game struct {
	ID      string
	Board   Board
	Turn    Cell
	Outcome Outcome
	Moves   int
}

func NewGame(id string, computerFirst bool) *Game {
	turn := Human
	if computerFirst {
		turn = Computer
	}

	return &Game{
		ID:      id,
		Turn:    turn,
		Outcome: Ongoing,
	}
}

// MakeTurn applies mark at pos after checking the turn order and the cell.
func (that *Game) MakeTurn(mark Cell, pos Position) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if that.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	empty, err := that.Board.IsEmpty(pos)
	if err != nil {
		return err
	}

	if !empty {
		return fmt.Errorf("%w: %s", apperror.ErrIllegalPlacement, pos)
	}

	if err = that.Board.Place(pos, mark); err != nil {
		return err
	}

	that.Moves++
	that.UpdateGameState()

	return nil
}

func (that *Game) UpdateGameState() {
	that.Outcome = that.Board.Evaluate()

	// terminal outcomes are absorbing
	if that.Outcome.IsTerminal() {
		that.Turn = Empty
		return
	}

	that.Turn = that.Turn.Opponent()
}

func (that *Game) IsFinished() bool {
	return that.Outcome.IsTerminal()
}

func (that *Game) IsComputerTurn() bool {
	return !that.IsFinished() && that.Turn == Computer
}

// Snapshot returns a copy of the grid for rendering.
func (that *Game) Snapshot() Board {
	return that.Board
}

func (that *Game) Reset(computerFirst bool) {
	*that = *NewGame(that.ID, computerFirst)
}
