package cache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// -----------------------------------------------------------------------------
// File Cache Driver
// -----------------------------------------------------------------------------
// Sorgu sonuçlarını diskte saklar; CLI oturumları arasında cache korunur.
//
// Her key md5 hash'i ile iki seviyeli bir dizine yazılır (ab/abcdef...).
// Expired dosyalar okuma sırasında ve periyodik GC ile silinir.
// -----------------------------------------------------------------------------

// FileCacheEntry, diske yazılan kayıt.
type FileCacheEntry struct {
	Value     []byte `json:"value"`
	ExpiresAt int64  `json:"expires_at"` // unix saniye, 0 = süresiz
}

func (e *FileCacheEntry) expired(now time.Time) bool {
	return e.ExpiresAt > 0 && now.Unix() > e.ExpiresAt
}

// FileCache, dosya tabanlı cache implementation.
type FileCache struct {
	dir    string
	logger *log.Logger
	mu     sync.RWMutex
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewFileCache, yeni bir File cache instance oluşturur.
func NewFileCache(dir string, logger *log.Logger) (*FileCache, error) {
	if dir == "" {
		return nil, errors.New("file cache directory is empty")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		logger.Printf("❌ Cache dizini oluşturma hatası [%s]: %v", dir, err)
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	fc := &FileCache{
		dir:    dir,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}

	fc.wg.Add(1)
	go fc.garbageCollectionLoop(10 * time.Minute)

	logger.Printf("✅ File cache başlatıldı: %s", dir)

	return fc, nil
}

// Stop, GC goroutine'ini durdurur.
func (f *FileCache) Stop() {
	f.cancel()
	f.wg.Wait()
}

// filePath, key için dosya yolunu döndürür.
func (f *FileCache) filePath(key string) string {
	hash := md5.Sum([]byte(key))
	name := hex.EncodeToString(hash[:])
	return filepath.Join(f.dir, name[:2], name)
}

// Get, cache'den veri okur.
func (f *FileCache) Get(key string) ([]byte, error) {
	path := f.filePath(key)

	f.mu.RLock()
	data, err := os.ReadFile(path)
	f.mu.RUnlock()

	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		f.logger.Printf("❌ File cache okuma hatası [%s]: %v", key, err)
		return nil, fmt.Errorf("file cache read failed: %w", err)
	}

	var entry FileCacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		f.logger.Printf("⚠️  Bozuk cache dosyası siliniyor [%s]: %v", key, err)
		f.remove(path)
		return nil, nil
	}

	if entry.expired(time.Now()) {
		f.remove(path)
		return nil, nil
	}

	return entry.Value, nil
}

// Set, cache'e veri yazar.
func (f *FileCache) Set(key string, value []byte, ttl time.Duration) error {
	var expiresAt int64
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl).Unix()
	}

	data, err := json.Marshal(FileCacheEntry{Value: value, ExpiresAt: expiresAt})
	if err != nil {
		return fmt.Errorf("json encode failed: %w", err)
	}

	path := f.filePath(key)

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("file cache write failed: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		f.logger.Printf("❌ File cache yazma hatası [%s]: %v", key, err)
		return fmt.Errorf("file cache write failed: %w", err)
	}

	return nil
}

// Delete, cache'den veri siler.
func (f *FileCache) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.filePath(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		f.logger.Printf("❌ File cache silme hatası [%s]: %v", key, err)
		return fmt.Errorf("file cache delete failed: %w", err)
	}

	return nil
}

// Has, key'in varlığını kontrol eder.
func (f *FileCache) Has(key string) (bool, error) {
	val, err := f.Get(key)
	if err != nil {
		return false, err
	}
	return val != nil, nil
}

// Flush, cache dizinini boşaltır.
func (f *FileCache) Flush() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.RemoveAll(f.dir); err != nil {
		f.logger.Printf("❌ Cache temizleme hatası: %v", err)
		return fmt.Errorf("cache flush failed: %w", err)
	}
	if err := os.MkdirAll(f.dir, 0755); err != nil {
		return fmt.Errorf("failed to recreate cache directory: %w", err)
	}

	return nil
}

func (f *FileCache) remove(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	os.Remove(path)
}

func (f *FileCache) garbageCollectionLoop(interval time.Duration) {
	defer f.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			f.cleanExpiredFiles()
		case <-f.ctx.Done():
			return
		}
	}
}

// cleanExpiredFiles, expired ve bozuk dosyaları temizler.
func (f *FileCache) cleanExpiredFiles() {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := time.Now()
	cleaned := 0

	filepath.WalkDir(f.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}

		var entry FileCacheEntry
		if json.Unmarshal(data, &entry) != nil || entry.expired(now) {
			if os.Remove(path) == nil {
				cleaned++
			}
		}
		return nil
	})

	if cleaned > 0 {
		f.logger.Printf("🧹 Garbage collection: %d expired file silindi", cleaned)
	}
}
