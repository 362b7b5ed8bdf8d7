package entity

// Cell is the content of one square of the board.
type Cell uint8

const (
	Empty Cell = iota
	Computer
	Human
)

// Opponent returns the other player's mark. Empty has no opponent.
func (that Cell) Opponent() Cell {
	switch that {
	case Computer:
		return Human
	case Human:
		return Computer
	default:
		return Empty
	}
}

// Symbol is the single character used to draw the cell and to build board keys.
func (that Cell) Symbol() string {
	switch that {
	case Computer:
		return "X"
	case Human:
		return "O"
	default:
		return "."
	}
}

func (that Cell) String() string {
	switch that {
	case Computer:
		return "computer"
	case Human:
		return "human"
	default:
		return "empty"
	}
}

// Outcome is derived from the board contents, it is never stored on its own.
type Outcome uint8

const (
	Ongoing Outcome = iota
	ComputerWins
	HumanWins
	Tie
)

func (that Outcome) IsTerminal() bool {
	return that != Ongoing
}

func (that Outcome) String() string {
	switch that {
	case ComputerWins:
		return "computer wins"
	case HumanWins:
		return "human wins"
	case Tie:
		return "tie"
	default:
		return "ongoing"
	}
}
