// Package redisstore reads game state straight from Redis with go-redis.
// It is the preferred transport when the operator can reach Redis directly.
package redisstore

import (
	"context"

	"github.com/DiversioTeam/ClassQuiz/internal/domain"
	"github.com/redis/go-redis/v9"
)

// Store implements the exporter's read-only key-value contract on a live
// Redis connection.
type Store struct {
	client *redis.Client
}

func New(client *redis.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, &domain.TransportError{Op: "GET " + key, Err: err}
	}
	return val, true, nil
}

func (s *Store) GetAll(ctx context.Context, key string) (map[string]string, error) {
	fields, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, &domain.TransportError{Op: "HGETALL " + key, Err: err}
	}
	return fields, nil
}
