package client

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

func RedisClient() *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// The cache degrades to misses when Redis is down, so a failed ping is
	// only a warning at startup.
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("warning: could not reach Redis at startup: %v", err)
	}

	return rdb
}
