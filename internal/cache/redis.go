package cache

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache keys
const (
	ActiveOffersKey = "offers:active"
	OfferKeyFmt     = "offers:%d"
)

var client *redis.Client

// Init initializes the Redis connection. The service degrades gracefully
// when Redis is unavailable: every helper no-ops on a nil client.
func Init() error {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetClient returns the Redis client (nil when cache is disabled)
func GetClient() *redis.Client {
	return client
}

// GetCachedActiveOffers returns the cached active-offers payload if present
func GetCachedActiveOffers(ctx context.Context) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, ActiveOffersKey).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// CacheActiveOffers caches the active-offers payload for 5 minutes
func CacheActiveOffers(ctx context.Context, data []byte) {
	if client == nil {
		return
	}
	client.Set(ctx, ActiveOffersKey, data, 5*time.Minute)
}

// GetCachedOffer returns a cached single offer payload if present
func GetCachedOffer(ctx context.Context, id int) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, fmt.Sprintf(OfferKeyFmt, id)).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// CacheOffer caches a single offer payload for 5 minutes
func CacheOffer(ctx context.Context, id int, data []byte) {
	if client == nil {
		return
	}
	client.Set(ctx, fmt.Sprintf(OfferKeyFmt, id), data, 5*time.Minute)
}

// InvalidateOffers drops the active-offers entry (on out-of-band offer
// updates); per-offer entries age out by TTL
func InvalidateOffers(ctx context.Context) {
	if client == nil {
		return
	}
	client.Del(ctx, ActiveOffersKey)
}
