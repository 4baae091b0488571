package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/biyonik/fluentdb/internal/config"
	"github.com/biyonik/fluentdb/pkg/cache"
	"github.com/biyonik/fluentdb/pkg/database"
	"github.com/biyonik/fluentdb/pkg/database/migration"
)

// Version is set at build time via -ldflags
var Version = "dev"

// options, komut satırı flag'leridir. Boş değerler config'teki (ortam
// değişkeni) değerleri korur.
type options struct {
	name       string
	dir        string
	engine     string
	sql        string
	file       string
	migrations string
	rollback   bool
	tables     bool
	version    bool
}

func parseFlags(args []string) (options, error) {
	var opts options

	fs := flag.NewFlagSet("fluentdb", flag.ContinueOnError)
	fs.StringVar(&opts.name, "name", "", "Database name (DB_NAME)")
	fs.StringVar(&opts.dir, "dir", "", "Database directory for file engines (DB_DIR)")
	fs.StringVar(&opts.engine, "engine", "", "Database engine: sqlite or mysql (DB_ENGINE)")
	fs.StringVar(&opts.sql, "sql", "", "SQL statements to execute, separated by ;")
	fs.StringVar(&opts.file, "file", "", "SQL file to execute")
	fs.StringVar(&opts.migrations, "migrations", "", "Directory with <name>.up.sql / <name>.down.sql files to apply")
	fs.BoolVar(&opts.rollback, "rollback", false, "Roll back the last migration batch (requires -migrations)")
	fs.BoolVar(&opts.tables, "tables", false, "List tables")
	fs.BoolVar(&opts.version, "version", false, "Show version and exit")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.rollback && opts.migrations == "" {
		return opts, errors.New("-rollback requires -migrations")
	}
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(2)
	}
	if opts.version {
		fmt.Printf("fluentdb %s\n", Version)
		return
	}

	logger := log.New(os.Stderr, "[fluentdb] ", log.LstdFlags)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	applyFlags(cfg, opts)
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("❌ Geçersiz yapılandırma: %v", err)
	}

	if err := run(ctx, cfg, opts, os.Stdout, logger); err != nil {
		logger.Printf("❌ %v", err)
		os.Exit(1)
	}
}

// applyFlags, boş olmayan flag'leri config'in üzerine yazar.
func applyFlags(cfg *config.Config, opts options) {
	if opts.name != "" {
		cfg.DB.Name = opts.name
	}
	if opts.dir != "" {
		cfg.DB.Dir = opts.dir
	}
	if opts.engine != "" {
		cfg.DB.Engine = strings.ToLower(opts.engine)
	}
}

// run, veritabanını açar, istenen işlemleri sırayla çalıştırır ve kapatır:
// migration'lar, SQL dosyası, -sql statement'ları, tablo listesi.
func run(ctx context.Context, cfg *config.Config, opts options, out io.Writer, logger *log.Logger) (err error) {
	resultCache, closeCache, err := openCache(cfg, logger)
	if err != nil {
		return err
	}
	defer closeCache()

	db, err := database.Open(ctx, cfg.DB.Name, database.Options{
		Engine:    cfg.DB.Engine,
		Protocol:  cfg.DB.Protocol,
		Dir:       cfg.DB.Dir,
		Create:    cfg.DB.Create,
		Params:    cfg.DB.Params,
		Logger:    logger,
		Cache:     resultCache,
		CacheTTL:  cfg.Cache.TTL,
		RateLimit: cfg.RateLimitQPS(),
		Burst:     cfg.RateLimit.Burst,
	})
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(context.Background()); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if opts.migrations != "" {
		if err := migrate(ctx, db, opts, out, logger); err != nil {
			return err
		}
	}

	if opts.file != "" {
		content, err := os.ReadFile(opts.file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", opts.file, err)
		}
		if err := execute(ctx, db, string(content), out); err != nil {
			return err
		}
	}

	if opts.sql != "" {
		if err := execute(ctx, db, opts.sql, out); err != nil {
			return err
		}
	}

	if opts.tables {
		tables, err := db.Tables(ctx)
		if err != nil {
			return err
		}
		for _, table := range tables {
			fmt.Fprintln(out, table)
		}
	}

	return nil
}

// openCache, config'teki driver'a göre sorgu sonuç cache'ini oluşturur.
// Dönen kapatma fonksiyonu her durumda çağrılabilir.
func openCache(cfg *config.Config, logger *log.Logger) (cache.Cache, func(), error) {
	noop := func() {}

	if cfg.Cache.Driver != cache.DriverRedis {
		c, err := cache.New(cfg.Cache.Driver, cfg.Cache.FileDir, logger)
		if err != nil || c == nil {
			return nil, noop, err
		}
		return c, func() { cache.Stop(c) }, nil
	}

	redisConfig := database.DefaultRedisConfig()
	redisConfig.Host = cfg.Redis.Host
	redisConfig.Port = cfg.Redis.Port
	redisConfig.Password = cfg.Redis.Password
	redisConfig.DB = cfg.Redis.DB

	rc, err := database.NewRedisClient(redisConfig, logger)
	if err != nil {
		return nil, noop, err
	}

	return cache.NewRedisCache(rc.Client(), logger, cfg.Cache.Prefix), func() { rc.Close() }, nil
}

// migrate, dizindeki migration'ları uygular veya son batch'i geri alır.
func migrate(ctx context.Context, db *database.DB, opts options, out io.Writer, logger *log.Logger) error {
	migrations, err := migration.Load(opts.migrations)
	if err != nil {
		return err
	}

	m := migration.NewMigrator(db, logger)

	if opts.rollback {
		reverted, err := m.Rollback(ctx, migrations)
		for _, name := range reverted {
			fmt.Fprintf(out, "Rolled back: %s\n", name)
		}
		return err
	}

	applied, err := m.Run(ctx, migrations)
	for _, name := range applied {
		fmt.Fprintf(out, "Migrated: %s\n", name)
	}
	if err == nil && len(applied) == 0 {
		fmt.Fprintln(out, "Nothing to migrate")
	}
	return err
}

// execute, script'teki her statement'ı çalıştırır ve sonucu yazar.
// Sorgular tablo olarak, update komutları etkilenen satır sayısıyla gösterilir.
func execute(ctx context.Context, db *database.DB, script string, out io.Writer) error {
	for _, stmt := range database.SplitStatements(script) {
		rs, affected, err := db.Exec(ctx, stmt)
		switch {
		case errors.Is(err, database.ErrNoRows):
			fmt.Fprintln(out, "0 row(s)")
		case err != nil:
			return err
		case rs != nil:
			if err := rs.Render(out); err != nil {
				return err
			}
		default:
			fmt.Fprintf(out, "OK, %d row(s) affected\n", affected)
		}
	}
	return nil
}
