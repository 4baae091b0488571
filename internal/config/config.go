// -----------------------------------------------------------------------------
// Config Package
// -----------------------------------------------------------------------------
// Bu dosya, fluentdb CLI'ının merkezi konfigürasyon yönetimini sağlar.
// Ortam değişkenlerini okuyarak veritabanı, cache ve throttle ayarlarını
// tip güvenli bir Config nesnesinde toplar.
//
// Eksik ortam değişkenlerinde varsayılan değerler kullanılır. Komut satırı
// flag'leri bu değerlerin üzerine yazar (bkz. cmd/fluentdb).
// -----------------------------------------------------------------------------

package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config, uygulamanın merkezi yapılandırma nesnesidir.
//
// Nested struct yapısı kullanılarak ilgili ayarlar gruplandırılmıştır:
//   - App: Uygulama genel ayarları
//   - DB: Veritabanı motoru ve connection string parçaları
//   - Redis: Redis bağlantı ayarları (cache driver redis ise)
//   - Cache: Sorgu sonuç cache'i
//   - RateLimit: Statement throttle ayarları
type Config struct {
	App struct {
		Name string // Uygulama adı
		Env  string // Ortam (development, production, test)
	}

	DB struct {
		Engine   string // sqlite, mysql
		Name     string // Veritabanı adı
		Dir      string // Dosya tabanlı motorlar için dizin
		Protocol string // Connection string öneki (boşsa motor varsayılanı)
		Params   string // Motora iletilen ek seçenekler
		Create   bool   // Veritabanı yoksa oluştur
	}

	Redis struct {
		Host     string // Redis host adresi
		Port     int    // Redis port
		Password string // Redis şifresi (opsiyonel)
		DB       int    // Database numarası (0-15)
	}

	Cache struct {
		Driver  string        // none, memory, file, redis
		Prefix  string        // Cache key prefix (namespace)
		TTL     time.Duration // Sonuçların saklanma süresi
		FileDir string        // File cache dizini (file driver için)
	}

	RateLimit struct {
		Enabled bool    // Throttle aktif mi?
		QPS     float64 // Saniyedeki maksimum statement sayısı
		Burst   int     // Anlık izin verilen statement sayısı
	}
}

// Load, ortam değişkenlerini okuyarak Config nesnesini döndürür.
//
// Örnek kullanım:
//
//	cfg := config.Load()
//	log.Printf("Engine: %s", cfg.DB.Engine)
func Load() *Config {
	cfg := &Config{}

	cfg.App.Name = getEnv("APP_NAME", "fluentdb")
	cfg.App.Env = getEnv("APP_ENV", "development")

	cfg.DB.Engine = getEnv("DB_ENGINE", "sqlite")
	cfg.DB.Name = getEnv("DB_NAME", "fluentdb")
	cfg.DB.Dir = getEnv("DB_DIR", "./data")
	cfg.DB.Protocol = getEnv("DB_PROTOCOL", "")
	cfg.DB.Params = getEnv("DB_PARAMS", "")
	cfg.DB.Create = getEnvAsBool("DB_CREATE", true)

	cfg.Redis.Host = getEnv("REDIS_HOST", "127.0.0.1")
	cfg.Redis.Port = getEnvAsInt("REDIS_PORT", 6379)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = getEnvAsInt("REDIS_DB", 0)

	cfg.Cache.Driver = strings.ToLower(getEnv("CACHE_DRIVER", "none"))
	cfg.Cache.Prefix = getEnv("CACHE_PREFIX", "fluentdb:")
	cfg.Cache.TTL = getEnvAsDuration("CACHE_TTL", 300) // 5 dakika
	cfg.Cache.FileDir = getEnv("CACHE_FILE_DIR", "./storage/cache")

	cfg.RateLimit.Enabled = getEnvAsBool("DB_RATE_LIMIT_ENABLED", false)
	cfg.RateLimit.QPS = getEnvAsFloat("DB_RATE_LIMIT_QPS", 100)
	cfg.RateLimit.Burst = getEnvAsInt("DB_RATE_LIMIT_BURST", 10)

	if err := cfg.Validate(); err != nil {
		log.Printf("❌ Config validation hatası: %v", err)
	}

	return cfg
}

// Validate, config değerlerinin geçerliliğini kontrol eder.
//
// Döndürür:
//   - error: Validation hatası (varsa)
func (c *Config) Validate() error {
	switch c.DB.Engine {
	case "sqlite", "mysql":
	default:
		return fmt.Errorf("geçersiz DB_ENGINE: %s (sqlite veya mysql olmalı)", c.DB.Engine)
	}

	if strings.TrimSpace(c.DB.Name) == "" {
		return fmt.Errorf("DB_NAME boş olamaz")
	}

	validDrivers := map[string]bool{
		"none":   true,
		"memory": true,
		"file":   true,
		"redis":  true,
	}
	if !validDrivers[c.Cache.Driver] {
		return fmt.Errorf("geçersiz CACHE_DRIVER: %s (none, memory, file veya redis olmalı)", c.Cache.Driver)
	}

	if c.RateLimit.Enabled && c.RateLimit.QPS <= 0 {
		return fmt.Errorf("DB_RATE_LIMIT_QPS pozitif olmalı: %v", c.RateLimit.QPS)
	}

	if c.IsProduction() && c.DB.Engine == "mysql" && c.DB.Protocol == "" {
		log.Println("⚠️  UYARI: DB_PROTOCOL boş, varsayılan MySQL kimlik bilgileri kullanılacak!")
	}

	return nil
}

// RedisAddr, "host:port" adresini döndürür.
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// RateLimitQPS, throttle kapalıysa 0 (sınırsız) döndürür.
func (c *Config) RateLimitQPS() float64 {
	if !c.RateLimit.Enabled {
		return 0
	}
	return c.RateLimit.QPS
}

// IsProduction, uygulamanın production ortamında çalışıp çalışmadığını kontrol eder.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// IsDevelopment, uygulamanın development ortamında çalışıp çalışmadığını kontrol eder.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsTest, uygulamanın test ortamında çalışıp çalışmadığını kontrol eder.
func (c *Config) IsTest() bool {
	return c.App.Env == "test"
}

// getEnv, ortam değişkenini okur, yoksa default kullanır.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt, integer ortam değişkeni.
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("⚠️  Uyarı: %s için geçersiz değer: %s, varsayılan (%d) kullanılıyor.", key, valueStr, defaultValue)
		return defaultValue
	}

	return value
}

// getEnvAsFloat, ondalıklı ortam değişkeni.
func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("⚠️  Uyarı: %s için geçersiz değer: %s, varsayılan (%v) kullanılıyor.", key, valueStr, defaultValue)
		return defaultValue
	}

	return value
}

// getEnvAsBool, boolean ortam değişkeni.
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("⚠️  Uyarı: %s için geçersiz boolean değer: %s, varsayılan (%t) kullanılıyor.", key, valueStr, defaultValue)
		return defaultValue
	}

	return value
}

// getEnvAsDuration, saniye cinsinden süre.
func getEnvAsDuration(key string, defaultSeconds int) time.Duration {
	return time.Duration(getEnvAsInt(key, defaultSeconds)) * time.Second
}
