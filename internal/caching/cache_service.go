package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"rentora/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type CacheService interface {
	// Property caching
	GetProperty(ctx context.Context, propertyID uuid.UUID) (*models.Property, error)
	SetProperty(ctx context.Context, property *models.Property, ttl time.Duration) error
	DeleteProperty(ctx context.Context, propertyID uuid.UUID) error

	// Rating summary caching
	GetRatingSummary(ctx context.Context, propertyID uuid.UUID) (*models.RatingSummary, error)
	SetRatingSummary(ctx context.Context, propertyID uuid.UUID, summary *models.RatingSummary, ttl time.Duration) error
	DeleteRatingSummary(ctx context.Context, propertyID uuid.UUID) error

	// Rate limiting
	IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error)

	// Generic string operations for refresh token management
	SetString(ctx context.Context, key string, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
	CountKeys(ctx context.Context, pattern string) (int, error)
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept redis://host:port style addresses as well as bare host:port.
	parsedAddr := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://")

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisCacheService{client: client}
}

// NewRedisCacheServiceWithClient wraps an existing client, letting callers
// share one connection with health checks.
func NewRedisCacheServiceWithClient(client *redis.Client) CacheService {
	return &redisCacheService{client: client}
}

func propertyKey(propertyID uuid.UUID) string {
	return fmt.Sprintf("rentora:property:%s", propertyID.String())
}

func ratingSummaryKey(propertyID uuid.UUID) string {
	return fmt.Sprintf("rentora:rating-summary:%s", propertyID.String())
}

func (r *redisCacheService) GetProperty(ctx context.Context, propertyID uuid.UUID) (*models.Property, error) {
	data, err := r.client.Get(ctx, propertyKey(propertyID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var property models.Property
	if err := json.Unmarshal(data, &property); err != nil {
		return nil, err
	}
	return &property, nil
}

func (r *redisCacheService) SetProperty(ctx context.Context, property *models.Property, ttl time.Duration) error {
	data, err := json.Marshal(property)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, propertyKey(property.ID), data, ttl).Err()
}

func (r *redisCacheService) DeleteProperty(ctx context.Context, propertyID uuid.UUID) error {
	return r.client.Del(ctx, propertyKey(propertyID)).Err()
}

func (r *redisCacheService) GetRatingSummary(ctx context.Context, propertyID uuid.UUID) (*models.RatingSummary, error) {
	data, err := r.client.Get(ctx, ratingSummaryKey(propertyID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var summary models.RatingSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *redisCacheService) SetRatingSummary(ctx context.Context, propertyID uuid.UUID, summary *models.RatingSummary, ttl time.Duration) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, ratingSummaryKey(propertyID), data, ttl).Err()
}

func (r *redisCacheService) DeleteRatingSummary(ctx context.Context, propertyID uuid.UUID) error {
	return r.client.Del(ctx, ratingSummaryKey(propertyID)).Err()
}

// IsRateLimited increments the window counter for key and reports whether
// the caller exceeded the limit.
func (r *redisCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	fullKey := fmt.Sprintf("rentora:ratelimit:%s", key)
	count, err := r.client.Incr(ctx, fullKey).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := r.client.Expire(ctx, fullKey, window).Err(); err != nil {
			return false, err
		}
	}
	return count > int64(limit), nil
}

func (r *redisCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisCacheService) GetString(ctx context.Context, key string) (string, error) {
	return r.client.Get(ctx, key).Result()
}

func (r *redisCacheService) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

// CountKeys walks matching keys with SCAN so large keyspaces are not blocked
// the way KEYS would.
func (r *redisCacheService) CountKeys(ctx context.Context, pattern string) (int, error) {
	var cursor uint64
	count := 0
	for {
		keys, next, err := r.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return 0, err
		}
		count += len(keys)
		cursor = next
		if cursor == 0 {
			return count, nil
		}
	}
}
