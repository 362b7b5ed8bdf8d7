package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
)

const Size = 3

// Position addresses a cell by row and column, both in [0, Size).
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Position) Valid() bool {
	return that.Row >= 0 && that.Row < Size && that.Col >= 0 && that.Col < Size
}

func (that Position) String() string {
	return fmt.Sprintf("(%d,%d)", that.Row, that.Col)
}

// WinLines are scanned in this order: rows, columns, main diagonal, anti-diagonal.
var WinLines = [8][3]Position{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// Board is a 3x3 grid stored row-major. The zero value is an empty board.
type Board [Size][Size]Cell

func (that *Board) IsEmpty(pos Position) (bool, error) {
	if !pos.Valid() {
		return false, fmt.Errorf("%w: %s", apperror.ErrInvalidCoordinate, pos)
	}

	return that[pos.Row][pos.Col] == Empty, nil
}

// Place writes mark at pos. Occupancy is not checked here.
func (that *Board) Place(pos Position, mark Cell) error {
	if !pos.Valid() {
		return fmt.Errorf("%w: %s", apperror.ErrInvalidCoordinate, pos)
	}

	that[pos.Row][pos.Col] = mark

	return nil
}

func (that *Board) Clear(pos Position) error {
	return that.Place(pos, Empty)
}

// At returns the cell at pos. pos must be valid.
func (that *Board) At(pos Position) Cell {
	return that[pos.Row][pos.Col]
}

// EmptyPositions lists free cells row by row, lowest column first.
func (that *Board) EmptyPositions() []Position {
	positions := make([]Position, 0, Size*Size)
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if that[row][col] == Empty {
				positions = append(positions, Position{Row: row, Col: col})
			}
		}
	}

	return positions
}

func (that *Board) Evaluate() Outcome {
	winner := Empty

	// a later completed line overrides an earlier one
	for _, line := range WinLines {
		a, b, c := that.At(line[0]), that.At(line[1]), that.At(line[2])
		if a != Empty && a == b && b == c {
			winner = a
		}
	}

	switch winner {
	case Computer:
		return ComputerWins
	case Human:
		return HumanWins
	}

	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if that[row][col] == Empty {
				return Ongoing
			}
		}
	}

	return Tie
}

// Key encodes the board as nine symbols, row-major.
func (that *Board) Key() string {
	var sb strings.Builder
	sb.Grow(Size * Size)

	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			sb.WriteString(that[row][col].Symbol())
		}
	}

	return sb.String()
}
