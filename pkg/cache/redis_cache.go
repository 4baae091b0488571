// -----------------------------------------------------------------------------
// Redis Cache Driver
// -----------------------------------------------------------------------------
// Redis-based cache implementation.
//
// Birden fazla process aynı veritabanını okuyorsa sonuçlar paylaşılır.
// Tüm key'ler prefix ile namespace'lenir; Flush sadece bu namespace'i siler.
// -----------------------------------------------------------------------------

package cache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisTimeout = 3 * time.Second

// RedisCache, Redis-based cache implementation.
type RedisCache struct {
	client redis.UniversalClient
	logger *log.Logger
	prefix string // Key prefix (namespace)
}

// NewRedisCache, yeni bir Redis cache instance oluşturur.
//
// Parametreler:
//   - client: Redis client
//   - logger: Log instance
//   - prefix: Cache key prefix (örn: "fluentdb:")
//
// Örnek:
//
//	c := cache.NewRedisCache(rc.Client(), logger, "fluentdb:")
//	// "query:ab12..." → gerçek key: "fluentdb:query:ab12..."
func NewRedisCache(client redis.UniversalClient, logger *log.Logger, prefix string) *RedisCache {
	return &RedisCache{
		client: client,
		logger: logger,
		prefix: prefix,
	}
}

// prefixKey, key'e prefix ekler.
func (r *RedisCache) prefixKey(key string) string {
	return r.prefix + key
}

// Get, cache'den veri okur.
func (r *RedisCache) Get(key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	prefixedKey := r.prefixKey(key)
	val, err := r.client.Get(ctx, prefixedKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		r.logger.Printf("❌ Redis Get hatası [%s]: %v", prefixedKey, err)
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	return val, nil
}

// Set, cache'e veri yazar.
func (r *RedisCache) Set(key string, value []byte, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	prefixedKey := r.prefixKey(key)
	if err := r.client.Set(ctx, prefixedKey, value, ttl).Err(); err != nil {
		r.logger.Printf("❌ Redis Set hatası [%s]: %v", prefixedKey, err)
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

// Delete, cache'den veri siler.
func (r *RedisCache) Delete(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	prefixedKey := r.prefixKey(key)
	if err := r.client.Del(ctx, prefixedKey).Err(); err != nil {
		r.logger.Printf("❌ Redis Delete hatası [%s]: %v", prefixedKey, err)
		return fmt.Errorf("redis delete failed: %w", err)
	}

	return nil
}

// Has, key'in varlığını kontrol eder.
func (r *RedisCache) Has(key string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	count, err := r.client.Exists(ctx, r.prefixKey(key)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists failed: %w", err)
	}

	return count > 0, nil
}

// Flush, prefix altındaki tüm key'leri SCAN + DEL ile siler.
//
// UYARI: Prefix boşsa tüm Redis database temizlenir (FlushDB).
func (r *RedisCache) Flush() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if r.prefix == "" {
		if err := r.client.FlushDB(ctx).Err(); err != nil {
			r.logger.Printf("❌ Redis FlushDB hatası: %v", err)
			return fmt.Errorf("redis flushdb failed: %w", err)
		}
		return nil
	}

	iter := r.client.Scan(ctx, 0, r.prefix+"*", 0).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		r.logger.Printf("❌ Redis Scan hatası: %v", err)
		return fmt.Errorf("redis scan failed: %w", err)
	}

	if len(keys) > 0 {
		if err := r.client.Del(ctx, keys...).Err(); err != nil {
			r.logger.Printf("❌ Redis Flush hatası: %v", err)
			return fmt.Errorf("redis flush failed: %w", err)
		}
	}

	return nil
}
