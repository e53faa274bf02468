package checkout

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"pharmavia_back_end/internal/models"
)

// RedisCartStore lit le panier JSON stocké sous "cart:<user>" ou
// "cart:guest:<id>" (même format que les handlers panier)
type RedisCartStore struct {
	RDB *redis.Client
}

func (s *RedisCartStore) Snapshot(ctx context.Context, cartKey string) ([]models.CartItem, error) {
	data, err := s.RDB.Get(ctx, cartKey).Result()
	if err == redis.Nil || data == "" {
		return nil, ErrEmptyCart
	}
	if err != nil {
		return nil, fmt.Errorf("lecture panier: %v", err)
	}

	var items []models.CartItem
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, fmt.Errorf("décodage panier: %v", err)
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	return items, nil
}

func (s *RedisCartStore) Clear(ctx context.Context, cartKey string) error {
	if err := s.RDB.Del(ctx, cartKey).Err(); err != nil {
		return err
	}
	// Les onglets abonnés à la sync panier voient le panier se vider
	s.RDB.Publish(ctx, cartKey, "cleared")
	return nil
}
