// Package draftstore хранит черновики мастера бронирования в redis.
// Черновик живёт между HTTP запросами и умирает по TTL:
// брошенный мастер не оставляет следов на сервере.
package draftstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/WM-BookingService/internal/wizard"
)

const keyPrefix = "wm:draft:"

// Store redis-хранилище состояний мастера
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore создает хранилище черновиков
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

// Create сохраняет новое состояние и возвращает сгенерированный id черновика
func (s *Store) Create(ctx context.Context, state wizard.State) (string, error) {
	id := uuid.NewString()
	if err := s.set(ctx, id, state); err != nil {
		return "", err
	}
	return id, nil
}

// Get возвращает состояние черновика по id
func (s *Store) Get(ctx context.Context, id string) (wizard.State, error) {
	var state wizard.State

	payload, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return state, ErrDraftNotFound
	}
	if err != nil {
		return state, fmt.Errorf("%w: Get: %v", ErrStore, err)
	}

	if err := json.Unmarshal(payload, &state); err != nil {
		return state, fmt.Errorf("%w: Get: %v", ErrDecode, err)
	}

	return state, nil
}

// Save перезаписывает состояние черновика, продлевая TTL
func (s *Store) Save(ctx context.Context, id string, state wizard.State) error {
	return s.set(ctx, id, state)
}

// Delete удаляет черновик (после успешной отправки)
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("%w: Delete: %v", ErrStore, err)
	}
	return nil
}

func (s *Store) set(ctx context.Context, id string, state wizard.State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	if err := s.client.Set(ctx, keyPrefix+id, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Set: %v", ErrStore, err)
	}

	return nil
}
