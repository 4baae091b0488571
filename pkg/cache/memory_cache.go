// -----------------------------------------------------------------------------
// Memory Cache Driver
// -----------------------------------------------------------------------------
// In-memory cache implementation (non-persistent).
//
// Testler ve tek process'lik CLI oturumları için idealdir.
//
// Özellikler:
// - Thread-safe (sync.RWMutex)
// - TTL support (periyodik temizlik)
// - GC goroutine'i Stop ile durdurulabilir
// -----------------------------------------------------------------------------

package cache

import (
	"context"
	"log"
	"sync"
	"time"
)

// MemoryCacheEntry, memory'de saklanan veri yapısı.
type MemoryCacheEntry struct {
	Value     []byte
	ExpiresAt time.Time // zero value = süresiz
}

// IsExpired, entry'nin expire olup olmadığını kontrol eder.
func (e *MemoryCacheEntry) IsExpired() bool {
	if e.ExpiresAt.IsZero() {
		return false
	}
	return time.Now().After(e.ExpiresAt)
}

// MemoryCache, in-memory cache implementation.
type MemoryCache struct {
	store  map[string]*MemoryCacheEntry
	mu     sync.RWMutex
	logger *log.Logger
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewMemoryCache, yeni bir Memory cache instance oluşturur.
func NewMemoryCache(logger *log.Logger) *MemoryCache {
	ctx, cancel := context.WithCancel(context.Background())

	mc := &MemoryCache{
		store:  make(map[string]*MemoryCacheEntry),
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}

	mc.wg.Add(1)
	go mc.garbageCollectionLoop(5 * time.Minute)

	logger.Println("✅ Memory cache başlatıldı")

	return mc
}

// Get, cache'den veri okur. Dönen slice bir kopyadır.
func (m *MemoryCache) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, exists := m.store[key]
	if !exists || entry.IsExpired() {
		return nil, nil
	}

	return append([]byte(nil), entry.Value...), nil
}

// Set, cache'e veri yazar.
func (m *MemoryCache) Set(key string, value []byte, ttl time.Duration) error {
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.store[key] = &MemoryCacheEntry{
		Value:     append([]byte(nil), value...),
		ExpiresAt: expiresAt,
	}
	return nil
}

// Delete, cache'den veri siler.
func (m *MemoryCache) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.store, key)
	return nil
}

// Has, key'in varlığını kontrol eder.
func (m *MemoryCache) Has(key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, exists := m.store[key]
	return exists && !entry.IsExpired(), nil
}

// Flush, tüm entry'leri siler.
func (m *MemoryCache) Flush() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.store = make(map[string]*MemoryCacheEntry)
	return nil
}

// Size, cache'deki toplam entry sayısını döndürür (expired dahil).
func (m *MemoryCache) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.store)
}

// Stop, GC goroutine'ini durdurur.
func (m *MemoryCache) Stop() {
	m.cancel()
	m.wg.Wait()
}

func (m *MemoryCache) garbageCollectionLoop(interval time.Duration) {
	defer m.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.cleanExpiredEntries()
		case <-m.ctx.Done():
			return
		}
	}
}

// cleanExpiredEntries, expired entry'leri temizler.
func (m *MemoryCache) cleanExpiredEntries() {
	m.mu.Lock()
	defer m.mu.Unlock()

	cleaned := 0
	for key, entry := range m.store {
		if entry.IsExpired() {
			delete(m.store, key)
			cleaned++
		}
	}

	if cleaned > 0 {
		m.logger.Printf("🧹 Memory cache garbage collection: %d expired entry silindi", cleaned)
	}
}
