package apperror

import "errors"

var (
	ErrInvalidCoordinate = errors.New("coordinate is outside the board")
	ErrIllegalPlacement  = errors.New("cell is already occupied")
	ErrNoLegalMoves      = errors.New("no legal moves left")
	ErrGameFinished      = errors.New("game is already finished")
	ErrGameIsNotStarted  = errors.New("game is not started")
	ErrNotYourTurn       = errors.New("it's not your turn")
	ErrBookMiss          = errors.New("position is not in the opening book")
)
