package repository

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

type memoryBook struct {
	mu      sync.RWMutex
	entries map[string]entity.Position
}

// NewMemoryBookRepository keeps the book for the lifetime of the process.
func NewMemoryBookRepository() BookRepository {
	return &memoryBook{
		entries: make(map[string]entity.Position),
	}
}

func (that *memoryBook) Save(_ context.Context, key string, pos entity.Position) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.entries[key] = pos

	return nil
}

func (that *memoryBook) Get(_ context.Context, key string) (entity.Position, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	pos, ok := that.entries[key]
	if !ok {
		return entity.Position{}, apperror.ErrBookMiss
	}

	return pos, nil
}
