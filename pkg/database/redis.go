// -----------------------------------------------------------------------------
// Redis Connection
// -----------------------------------------------------------------------------
// Sorgu sonuç cache'i redis driver'ı ile çalıştığında kullanılan bağlantı.
// Bağlantı açılırken Ping ile test edilir; erişilemeyen Redis sessizce
// atlanmaz, hata döner.
// -----------------------------------------------------------------------------

package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig, Redis bağlantı yapılandırması.
type RedisConfig struct {
	Host        string        // Redis sunucu adresi
	Port        int           // Redis port
	Password    string        // Redis şifresi (opsiyonel)
	DB          int           // Database numarası (0-15)
	PoolSize    int           // Connection pool boyutu
	DialTimeout time.Duration // Bağlantı timeout süresi
}

// DefaultRedisConfig, varsayılan Redis yapılandırması.
func DefaultRedisConfig() *RedisConfig {
	return &RedisConfig{
		Host:        "127.0.0.1",
		Port:        6379,
		PoolSize:    4,
		DialTimeout: 5 * time.Second,
	}
}

// Addr, "host:port" adresini döndürür.
func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RedisClient, redis.Client'ı wrap eder.
type RedisClient struct {
	client *redis.Client
	logger *log.Logger
}

// NewRedisClient, yeni bir Redis client oluşturur ve bağlantıyı test eder.
//
// Örnek:
//
//	rc, err := database.NewRedisClient(database.DefaultRedisConfig(), logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer rc.Close()
//	resultCache := cache.NewRedisCache(rc.Client(), logger, "fluentdb:")
func NewRedisClient(config *RedisConfig, logger *log.Logger) (*RedisClient, error) {
	if config == nil {
		config = DefaultRedisConfig()
	}

	client := redis.NewClient(&redis.Options{
		Addr:        config.Addr(),
		Password:    config.Password,
		DB:          config.DB,
		PoolSize:    config.PoolSize,
		DialTimeout: config.DialTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), config.DialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		logger.Printf("❌ Redis bağlantı hatası: %v", err)
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	logger.Printf("✅ Redis bağlantısı başarılı: %s (DB: %d)", config.Addr(), config.DB)

	return &RedisClient{client: client, logger: logger}, nil
}

// Client, raw redis.Client instance döndürür.
func (r *RedisClient) Client() *redis.Client {
	return r.client
}

// Ping, Redis sunucusunun erişilebilir olup olmadığını kontrol eder.
func (r *RedisClient) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close, Redis bağlantısını kapatır.
func (r *RedisClient) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Printf("❌ Redis kapatma hatası: %v", err)
		return err
	}
	r.logger.Println("✅ Redis bağlantısı kapatıldı")
	return nil
}
