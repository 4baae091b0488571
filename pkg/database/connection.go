// -----------------------------------------------------------------------------
// Database Package
// -----------------------------------------------------------------------------
// Bu dosya, gömülü veritabanını açan/oluşturan ve kapatan bağlantı yaşam
// döngüsünü içerir.
//
// Open fonksiyonu connection string'i sabit bir protokol öneki, normalize
// edilmiş veritabanı adı ve çağıranın verdiği seçeneklerden üretir,
// bağlantıyı başlatır ve Ping ile doğrular. DB tek bir motor bağlantısı tutar;
// aynı anda en fazla bir canlı statement vardır.
//
// Close, bağlantıyı kapatır ve ardından motorun kapanış direktifini çalıştırır.
// Motor temiz kapanışı bir hata ile bildiriyorsa (varsayılan 50000 / XJ015)
// bu hata başarı sayılır ve loglanmaz.
// -----------------------------------------------------------------------------

package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/biyonik/fluentdb/pkg/cache"
)

// Options, Open için bağlantı ve yardımcı bileşen ayarlarıdır.
//
// Alanlar:
//   - Engine: "sqlite" (varsayılan) veya "mysql"
//   - Protocol: connection string öneki (boşsa Grammar.DefaultProtocol)
//   - Dir: dosya tabanlı motorlarda veritabanı dizini
//   - Create: veritabanı yoksa oluştur
//   - Params: motora olduğu gibi iletilen ek seçenekler
//   - Logger: log instance (boşsa stderr)
//   - Cache / CacheTTL: sorgu sonuç cache'i (opsiyonel)
//   - RateLimit / Burst: saniyedeki maksimum statement sayısı (0 = sınırsız)
//   - Shutdown: Close sırasında bağlantı kapatıldıktan sonra çalışan direktif
//   - ShutdownSignal: başarı kabul edilen kapanış hatası
type Options struct {
	Engine   string
	Protocol string
	Dir      string
	Create   bool
	Params   string

	Logger *log.Logger

	Cache    cache.Cache
	CacheTTL time.Duration

	RateLimit float64
	Burst     int

	Shutdown       func(ctx context.Context) error
	ShutdownSignal *ShutdownSignal
}

// DB, tek bir veritabanına ait erişim katmanıdır.
//
// DB eşzamanlı kullanım için güvenli değildir: bekleyen Clauses değeri ve tek
// motor bağlantısı senkronize edilmez. Birden fazla goroutine aynı DB'yi
// kullanacaksa erişimi dışarıdan bir mutex ile sıralamalı ya da her goroutine
// kendi DB'sini açmalıdır.
type DB struct {
	conn     *sql.DB
	grammar  Grammar
	name     string
	dsn      string
	logger   *log.Logger
	cache    cache.Cache
	cacheTTL time.Duration
	throttle *throttle
	pending  Clauses

	shutdown       func(ctx context.Context) error
	shutdownSignal ShutdownSignal
}

// normalizeName, veritabanı ve tablo adlarını trim eder ve küçük harfe çevirir.
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Open, verilen ad ve seçeneklerle veritabanına bağlanır.
//
// Bağlantı sırasında şu adımlar gerçekleştirilir:
//  1. Engine'e göre Grammar seçilir ve connection string üretilir.
//  2. sql.Open ile sürücü ve DSN kullanılarak bağlantı nesnesi oluşturulur.
//  3. Havuz tek bağlantıya sınırlanır (tek canlı statement).
//  4. db.PingContext ile veritabanının ulaşılabilirliği kontrol edilir.
//  5. Hata varsa loglanır, bağlantı kapatılır ve *OpenError döner.
//
// Örnek:
//
//	db, err := database.Open(ctx, "inventory", database.Options{Dir: "./data", Create: true})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close(ctx)
func Open(ctx context.Context, name string, opts Options) (*DB, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "[fluentdb] ", log.LstdFlags)
	}

	grammar, err := GrammarFor(opts.Engine)
	if err != nil {
		logger.Printf("❌ Veritabanı motoru yüklenemedi: %v", err)
		return nil, &OpenError{Err: err}
	}

	protocol := opts.Protocol
	if protocol == "" {
		protocol = grammar.DefaultProtocol()
	}

	name = normalizeName(name)
	dsn := grammar.DSN(protocol, opts.Dir, name, opts.Create, opts.Params)

	conn, err := sql.Open(grammar.DriverName(), dsn)
	if err != nil {
		logger.Printf("❌ '%s' veritabanına bağlanılamadı: %v", name, err)
		return nil, &OpenError{DSN: dsn, Err: err}
	}

	// Tek bağlantı: aynı anda en fazla bir canlı statement.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		logger.Printf("❌ '%s' veritabanına bağlanılamadı: %v", name, err)
		return nil, &OpenError{DSN: dsn, Err: err}
	}

	signal := DefaultShutdownSignal
	if opts.ShutdownSignal != nil {
		signal = *opts.ShutdownSignal
	}

	logger.Printf("✅ Veritabanı bağlantısı başarılı: %s (%s)", name, grammar.Name())

	return &DB{
		conn:           conn,
		grammar:        grammar,
		name:           name,
		dsn:            dsn,
		logger:         logger,
		cache:          opts.Cache,
		cacheTTL:       opts.CacheTTL,
		throttle:       newThrottle(opts.RateLimit, opts.Burst),
		shutdown:       opts.Shutdown,
		shutdownSignal: signal,
	}, nil
}

// Name, normalize edilmiş veritabanı adını döndürür.
func (db *DB) Name() string { return db.name }

// Grammar, aktif SQL lehçesini döndürür.
func (db *DB) Grammar() Grammar { return db.grammar }

// usable, bağlantının kullanılabilir olup olmadığını kontrol eder.
func (db *DB) usable() error {
	if db == nil || db.conn == nil {
		return ErrConnectionUnusable
	}
	return nil
}

// Close, aktif bağlantıyı kapatır ve motorun kapanış direktifini çalıştırır.
//
// Kapanış direktifi beklenen sinyal (ShutdownSignal) ile dönerse bu başarıdır
// ve sessizce yutulur. Diğer tüm hatalar loglanır ve ErrUnexpectedShutdown ile
// sarmalanarak döner. İkinci bir Close çağrısı hiçbir şey yapmaz.
//
// Cache ve throttle referansları bırakılır. Cache'i oluşturan çağıran onu
// durdurmaktan sorumludur; aynı cache başka DB'lerle paylaşılıyor olabilir.
func (db *DB) Close(ctx context.Context) error {
	if db == nil || db.conn == nil {
		return nil
	}

	conn := db.conn
	db.conn = nil
	db.pending = Clauses{}
	db.cache = nil
	db.throttle = nil

	err := conn.Close()
	if err == nil && db.shutdown != nil {
		err = db.shutdown(ctx)
	}

	if err == nil || db.shutdownSignal.Matches(err) {
		db.logger.Printf("✅ Veritabanı kapatıldı: %s", db.name)
		return nil
	}

	db.logger.Printf("❌ Veritabanı normal şekilde kapanmadı (%s): %v", db.name, err)
	return fmt.Errorf("%w: %w", ErrUnexpectedShutdown, err)
}

// IsShutdownSignal, hatanın varsayılan temiz kapanış sinyali olup olmadığını
// kontrol eder.
func IsShutdownSignal(err error) bool {
	return DefaultShutdownSignal.Matches(err)
}
