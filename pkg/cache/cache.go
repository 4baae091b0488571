// -----------------------------------------------------------------------------
// Cache Interface
// -----------------------------------------------------------------------------
// Sorgu sonuç cache'i için ortak interface.
//
// Değerler byte dizisi olarak saklanır; serileştirme çağıranın işidir
// (database paketi ResultSet'i JSON olarak yazar). Bu sayede memory, file ve
// redis driver'ları aynı veriyi aynı şekilde döndürür.
//
// Driver'lar: Memory, File, Redis
// -----------------------------------------------------------------------------

package cache

import (
	"fmt"
	"log"
	"time"
)

// Cache, tüm cache driver'ların implement etmesi gereken interface.
type Cache interface {
	// Get, cache'den veri okur. Key bulunamazsa veya süresi dolmuşsa
	// (nil, nil) döner.
	Get(key string) ([]byte, error)

	// Set, cache'e veri yazar. ttl = 0 ise süresiz saklanır.
	Set(key string, value []byte, ttl time.Duration) error

	// Delete, key'i siler. Key yoksa hata vermez.
	Delete(key string) error

	// Has, key'in cache'de (ve süresi dolmamış) olup olmadığını kontrol eder.
	Has(key string) (bool, error)

	// Flush, driver'ın sahip olduğu tüm key'leri siler.
	Flush() error
}

// Driver adları.
const (
	DriverNone   = "none"
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverRedis  = "redis"
)

// New, memory veya file driver'ı oluşturur. Redis driver'ı bir client
// gerektirdiği için NewRedisCache ile ayrıca oluşturulur. "none" veya boş
// driver için (nil, nil) döner.
func New(driver, fileDir string, logger *log.Logger) (Cache, error) {
	switch driver {
	case "", DriverNone:
		return nil, nil
	case DriverMemory:
		return NewMemoryCache(logger), nil
	case DriverFile:
		fc, err := NewFileCache(fileDir, logger)
		if err != nil {
			return nil, err
		}
		return fc, nil
	case DriverRedis:
		return nil, fmt.Errorf("cache driver %q requires a redis client, use NewRedisCache", driver)
	default:
		return nil, fmt.Errorf("unknown cache driver: %q", driver)
	}
}

// Stop, arka plan goroutine'i olan driver'ları durdurur.
func Stop(c Cache) {
	if stopper, ok := c.(interface{ Stop() }); ok {
		stopper.Stop()
	}
}
