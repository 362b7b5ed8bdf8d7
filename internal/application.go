package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/config"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/service"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-minimax/transport/console"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application on the process's terminal.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		logger.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	return Run(ctx, logger, conf, os.Stdin, os.Stdout)
}

// Run wires the components and plays on in and out until the player stops or ctx is done.
func Run(ctx context.Context, logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	log := logger.With("component", "app")

	rng := rand.New(rand.NewSource(time.Now().UnixNano())) //nolint: gosec // it's ok

	strategy, err := service.NewStrategy(conf.Strategy, rng)
	if err != nil {
		return fmt.Errorf("could not create strategy: %w", err)
	}

	book, closeBook, err := openBook(ctx, conf, strategy)
	if err != nil {
		return err
	}

	defer func() {
		if err = closeBook(); err != nil {
			log.Error("could not close opening book", "error", err)
		}
	}()

	bot := service.NewBotService(logger, strategy, book)
	gameManager := usecase.NewGameManager(logger, bot, conf.ComputerFirst)

	consoleErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting console game", "strategy", strategy.Name(), "book", conf.Book.Backend)
		consoleErrCh <- console.New(logger, in, out, gameManager).Run(ctx)
	}()

	select {
	case err = <-consoleErrCh:
		if err != nil {
			return fmt.Errorf("console error: %w", err)
		}

		return nil
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// openBook returns nil for strategies that may answer a position differently each time.
func openBook(ctx context.Context, conf *config.Config, strategy service.Strategy) (repository.BookRepository, func() error, error) {
	noop := func() error { return nil }

	if strategy.Name() != service.StrategyOptimal {
		return nil, noop, nil
	}

	switch conf.Book.Backend {
	case config.BookMemory:
		return repository.NewMemoryBookRepository(), noop, nil
	case config.BookRedis:
		redisAddrString := conf.Redis.GetRedisAddr()
		if conf.Redis.Host == "" {
			return nil, noop, ErrAddrNotFound
		}

		redisStorage, err := storage.New(ctx, redisAddrString)
		if err != nil {
			return nil, noop, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return repository.NewBookRepository(redisStorage), redisStorage.Close, nil
	default:
		return nil, noop, nil
	}
}
