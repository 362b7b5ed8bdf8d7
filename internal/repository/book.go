package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const bookKeyPrefix = "book:"

// BookRepository stores the computer's reply to a position, keyed by entity.Board.Key.
type BookRepository interface {
	Get(ctx context.Context, key string) (entity.Position, error)
	Save(ctx context.Context, key string, pos entity.Position) error
}

type dbBook struct {
	client *redis.Client
}

func NewBookRepository(client *redis.Client) BookRepository {
	return &dbBook{
		client: client,
	}
}

func (that *dbBook) Save(ctx context.Context, key string, pos entity.Position) error {
	posJSON, err := json.Marshal(pos)
	if err != nil {
		return fmt.Errorf("could not marshal position: %w", err)
	}

	err = that.client.Set(ctx, bookKeyPrefix+key, posJSON, 0).Err()
	if err != nil {
		return fmt.Errorf("failed to set book entry: %w", err)
	}

	return nil
}

func (that *dbBook) Get(ctx context.Context, key string) (entity.Position, error) {
	response, err := that.client.Get(ctx, bookKeyPrefix+key).Result()

	if errors.Is(err, redis.Nil) {
		return entity.Position{}, apperror.ErrBookMiss
	}

	if err != nil {
		return entity.Position{}, fmt.Errorf("failed to get book entry: %w", err)
	}

	var pos entity.Position
	if err = json.Unmarshal([]byte(response), &pos); err != nil {
		return entity.Position{}, fmt.Errorf("failed to unmarshal position: %w", err)
	}

	return pos, nil
}
