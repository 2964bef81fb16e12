// Package cache implementa el cache del tablero sobre Redis. Es una capa
// opcional: si Redis no está disponible, las consultas van directo a la DB.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Reposicion-api/pkg/config"
)

// RedisClient envuelve el cliente go-redis con los métodos que usa la app.
type RedisClient struct {
	client *redis.Client
}

// NewRedisClient crea el cliente desde la configuración y verifica la conexión.
func NewRedisClient(cfg config.RedisConfig) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("conexión a redis: %w", err)
	}
	return &RedisClient{client: client}, nil
}

// Set guarda un valor con TTL.
func (r *RedisClient) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

// Get lee un valor. Devuelve redis.Nil si la clave no existe.
func (r *RedisClient) Get(ctx context.Context, key string) (string, error) {
	return r.client.Get(ctx, key).Result()
}

// Delete borra claves.
func (r *RedisClient) Delete(ctx context.Context, keys ...string) error {
	return r.client.Del(ctx, keys...).Err()
}

// Close cierra la conexión.
func (r *RedisClient) Close() error {
	return r.client.Close()
}
