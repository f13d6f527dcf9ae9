package config

import (
	"github.com/redis/rueidis"
	"github.com/rs/zerolog/log"
)

// NewRedisClient connects the session store with client-side caching off.
func NewRedisClient(cfg Config) rueidis.Client {
	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  []string{cfg.RedisAddr},
		Password:     cfg.RedisPassword,
		SelectDB:     cfg.RedisDB,
		DisableCache: true,
	})
	if err != nil {
		log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("failed to create redis client")
	}

	return client
}
