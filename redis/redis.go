package redis

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

// availabilityTTL keeps cached availability short-lived; bookings and
// template updates invalidate eagerly, the TTL covers everything else.
const availabilityTTL = 60 * time.Second

func InitRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		fmt.Println("REDIS_ADDR not set, availability caching disabled")
		return
	}

	Client = redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})

	// Test connection
	_, err := Client.Ping(Ctx).Result()
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
	}
	fmt.Println("✅ Connected to Redis")
}

func availabilityKey(doctorID uint) string {
	return fmt.Sprintf("availability:doctor:%d", doctorID)
}

// GetCachedAvailability returns the cached availability payload for a
// doctor, or nil on a miss or when caching is disabled.
func GetCachedAvailability(doctorID uint) []byte {
	if Client == nil {
		return nil
	}
	payload, err := Client.Get(Ctx, availabilityKey(doctorID)).Bytes()
	if err != nil {
		return nil
	}
	return payload
}

// CacheAvailability stores a rendered availability response.
func CacheAvailability(doctorID uint, payload []byte) {
	if Client == nil {
		return
	}
	Client.Set(Ctx, availabilityKey(doctorID), payload, availabilityTTL)
}

// InvalidateAvailability drops the cached response after a booking,
// cancellation or template replacement.
func InvalidateAvailability(doctorID uint) {
	if Client == nil {
		return
	}
	Client.Del(Ctx, availabilityKey(doctorID))
}
