package infra

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// NewRedis abre el cliente redis que respalda las colas de trabajos
// (jobs:pdf, jobs:email y sus DLQ) y el cache de reportes. Falla al arrancar
// si el servidor no responde: sin redis no hay renderizado asíncrono.
func NewRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return rdb, nil
}
