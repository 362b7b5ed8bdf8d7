package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

type gameUseCase interface {
	NewGame(ctx context.Context) (*entity.Game, error)
	HumanTurn(ctx context.Context, pos entity.Position) (*entity.Game, error)
}

// Console plays games on a text terminal: cells are picked by number, 1 to 9 row by row.
type Console struct {
	logger      *slog.Logger
	in          *bufio.Scanner
	out         io.Writer
	gameUseCase gameUseCase
}

func New(logger *slog.Logger, in io.Reader, out io.Writer, gameUseCase gameUseCase) *Console {
	return &Console{
		logger:      logger.With("component", "console"),
		in:          bufio.NewScanner(in),
		out:         out,
		gameUseCase: gameUseCase,
	}
}

// Run plays games until the input ends, the player declines another game or ctx is done.
func (that *Console) Run(ctx context.Context) error {
	that.printf("Welcome to Tic Tac Toe! You are %s, the computer is %s.\n",
		entity.Human.Symbol(), entity.Computer.Symbol())

	for {
		finished, err := that.playGame(ctx)
		if err != nil {
			return err
		}

		if !finished {
			return nil
		}

		again, ok := that.ask("Play again? (y/n): ")
		if !ok || !strings.HasPrefix(strings.ToLower(again), "y") {
			that.printf("Bye!\n")
			return nil
		}
	}
}

// playGame reports false when the input ended before the game did.
func (that *Console) playGame(ctx context.Context) (bool, error) {
	game, err := that.gameUseCase.NewGame(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to start game: %w", err)
	}

	that.printBoard(game.Snapshot())

	for !game.IsFinished() {
		if err = ctx.Err(); err != nil {
			return false, fmt.Errorf("game interrupted: %w", err)
		}

		line, ok := that.ask(fmt.Sprintf("Please select a cell to place an '%s' (1-9): ", entity.Human.Symbol()))
		if !ok {
			return false, nil
		}

		pos, err := ParseCell(line)
		if err != nil {
			that.printf("%s\n", describe(err))
			continue
		}

		game, err = that.gameUseCase.HumanTurn(ctx, pos)
		switch {
		case errors.Is(err, apperror.ErrIllegalPlacement), errors.Is(err, apperror.ErrInvalidCoordinate):
			that.printf("%s\n", describe(err))
			continue
		case err != nil:
			return false, fmt.Errorf("failed to play turn: %w", err)
		}

		that.printBoard(game.Snapshot())
	}

	that.printf("%s\n", resultMessage(game.Outcome))
	that.logger.Debug("game over", "game_id", game.ID, "outcome", game.Outcome.String())

	return true, nil
}

// ParseCell turns "1".."9" into a position, counting row by row from the top left.
func ParseCell(input string) (entity.Position, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return entity.Position{}, fmt.Errorf("%w: %q", errNotANumber, input)
	}

	if n < 1 || n > entity.Size*entity.Size {
		return entity.Position{}, fmt.Errorf("%w: %d", apperror.ErrInvalidCoordinate, n)
	}

	return entity.Position{Row: (n - 1) / entity.Size, Col: (n - 1) % entity.Size}, nil
}

func cellNumber(pos entity.Position) int {
	return pos.Row*entity.Size + pos.Col + 1
}

var errNotANumber = errors.New("not a number")

func describe(err error) string {
	switch {
	case errors.Is(err, errNotANumber):
		return "Please type a number!"
	case errors.Is(err, apperror.ErrInvalidCoordinate):
		return "Please type a number within the range!"
	case errors.Is(err, apperror.ErrIllegalPlacement):
		return "Sorry, this cell is occupied!"
	default:
		return err.Error()
	}
}

func resultMessage(outcome entity.Outcome) string {
	switch outcome {
	case entity.ComputerWins:
		return "Sorry, the computer won this time!"
	case entity.HumanWins:
		return "You won!"
	case entity.Tie:
		return "Tie Game!"
	default:
		return ""
	}
}

func (that *Console) ask(prompt string) (string, bool) {
	that.printf("%s", prompt)

	if !that.in.Scan() {
		that.printf("\n")
		return "", false
	}

	return that.in.Text(), true
}

func (that *Console) printBoard(board entity.Board) {
	that.printf("%s", Render(board))
}

// Render draws the grid; free cells show the number that selects them.
func Render(board entity.Board) string {
	var sb strings.Builder

	for row := 0; row < entity.Size; row++ {
		if row > 0 {
			sb.WriteString("-----------\n")
		}

		cells := make([]string, 0, entity.Size)
		for col := 0; col < entity.Size; col++ {
			pos := entity.Position{Row: row, Col: col}
			if board.At(pos) == entity.Empty {
				cells = append(cells, strconv.Itoa(cellNumber(pos)))
				continue
			}

			cells = append(cells, board.At(pos).Symbol())
		}

		sb.WriteString(" " + strings.Join(cells, " | ") + "\n")
	}

	sb.WriteString("\n")

	return sb.String()
}

func (that *Console) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(that.out, format, args...); err != nil {
		that.logger.Error("failed to write output", "error", err)
	}
}
