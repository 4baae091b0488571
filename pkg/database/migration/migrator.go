// -----------------------------------------------------------------------------
// Database Migration System
// -----------------------------------------------------------------------------
// Bu package, sıralı ve isimli SQL migration'larını uygular ve geri alır.
//
// Migrator kendi bookkeeping'ini erişim katmanının üzerinden yapar: migrations
// tablosu CreateTable ile oluşturulur, kayıtlar Insert ile yazılır, okuma
// immutable Clauses + Fetch ile yapılır. DB üzerinde bekleyen (pending)
// parçalara dokunulmaz.
//
// Özellikler:
// - Migration tracking (migrations tablosu: migration, batch, seq)
// - Batch bazlı rollback
// - Dizin tabanlı yükleme (<ad>.up.sql / <ad>.down.sql)
//
// Kullanım:
//
//	migrations := []migration.Migration{
//	    {
//	        Name: "2024_01_01_create_users",
//	        Up:   "CREATE TABLE users (id INT PRIMARY KEY, name VARCHAR(64))",
//	        Down: "DROP TABLE users",
//	    },
//	}
//
//	m := migration.NewMigrator(db, logger)
//	applied, err := m.Run(ctx, migrations)
// -----------------------------------------------------------------------------

package migration

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"

	"github.com/biyonik/fluentdb/pkg/database"
)

// Table, migration kayıtlarının tutulduğu tablo.
const Table = "migrations"

// Migration, tek bir şema değişikliğidir.
//
// Up ve Down birden fazla ";" ile ayrılmış statement içerebilir.
type Migration struct {
	Name string
	Up   string
	Down string
}

// Record, migrations tablosundaki bir satırdır. Seq, uygulanma sırasıdır.
type Record struct {
	Name  string
	Batch int
	Seq   int
}

// Migrator manages database migrations.
type Migrator struct {
	db     *database.DB
	logger *log.Logger
}

// NewMigrator creates a new Migrator instance.
func NewMigrator(db *database.DB, logger *log.Logger) *Migrator {
	if logger == nil {
		logger = log.Default()
	}
	return &Migrator{db: db, logger: logger}
}

// CreateMigrationsTable creates the migrations tracking table if missing.
func (m *Migrator) CreateMigrationsTable(ctx context.Context) error {
	exists, err := m.db.TableExists(ctx, Table)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	if err := m.db.CreateTable(ctx, Table, "migration VARCHAR(255) NOT NULL, batch INT NOT NULL, seq INT NOT NULL"); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	m.logger.Println("✅ Created migrations table")
	return nil
}

// Ran, uygulanmış migration kayıtlarını uygulanma sırasıyla döndürür.
func (m *Migrator) Ran(ctx context.Context) ([]Record, error) {
	if err := m.CreateMigrationsTable(ctx); err != nil {
		return nil, err
	}

	return m.records(ctx, database.Clauses{})
}

// LastBatch returns the last batch number (0 if nothing ran).
func (m *Migrator) LastBatch(ctx context.Context) (int, error) {
	return m.max(ctx, "batch")
}

// records, filtreye uyan kayıtları seq sırasıyla döndürür.
func (m *Migrator) records(ctx context.Context, filter database.Clauses) ([]Record, error) {
	rs, err := m.db.Fetch(ctx, database.FetchSpec{
		Table:   Table,
		Clauses: filter.Select("migration, batch, seq"),
	})
	if errors.Is(err, database.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	records, err := toRecords(rs)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Seq < records[j].Seq
	})
	return records, nil
}

// max, kolonun en büyük değerini döndürür (tablo boşsa 0).
func (m *Migrator) max(ctx context.Context, column string) (int, error) {
	rs, err := m.db.Fetch(ctx, database.FetchSpec{
		Table:   Table,
		Clauses: database.Clauses{}.SelectMax(column, "last"),
	})
	if errors.Is(err, database.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	value := rs.First()["last"]
	if value == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", column, value, err)
	}
	return n, nil
}

// Run, henüz uygulanmamış migration'ları verilen sırayla tek bir yeni batch
// olarak uygular ve uygulananların adlarını döndürür.
//
// Bir migration başarısız olursa işlem durur; o ana kadar uygulananlar kayıtlı
// kalır.
func (m *Migrator) Run(ctx context.Context, migrations []Migration) ([]string, error) {
	ran, err := m.Ran(ctx)
	if err != nil {
		return nil, err
	}

	done := make(map[string]bool, len(ran))
	for _, r := range ran {
		done[r.Name] = true
	}

	batch, err := m.LastBatch(ctx)
	if err != nil {
		return nil, err
	}
	batch++

	seq, err := m.max(ctx, "seq")
	if err != nil {
		return nil, err
	}

	var applied []string
	for _, mig := range migrations {
		if done[mig.Name] {
			continue
		}

		if _, err := m.db.ExecScript(ctx, mig.Up); err != nil {
			m.logger.Printf("❌ Migration başarısız: %s", mig.Name)
			return applied, fmt.Errorf("migration %s failed: %w", mig.Name, err)
		}

		seq++
		values := quote(mig.Name) + ", " + strconv.Itoa(batch) + ", " + strconv.Itoa(seq)
		if _, err := m.db.Insert(ctx, Table, "migration, batch, seq", values); err != nil {
			return applied, fmt.Errorf("failed to record migration %s: %w", mig.Name, err)
		}

		m.logger.Printf("✅ Migrated: %s (batch %d)", mig.Name, batch)
		applied = append(applied, mig.Name)
		done[mig.Name] = true
	}

	return applied, nil
}

// Rollback, son batch'teki migration'ları ters sırayla geri alır ve geri
// alınanların adlarını döndürür.
//
// migrations, Down SQL'ini bulmak için kullanılır; kayıtlı fakat listede
// olmayan bir migration hata döndürür.
func (m *Migrator) Rollback(ctx context.Context, migrations []Migration) ([]string, error) {
	if err := m.CreateMigrationsTable(ctx); err != nil {
		return nil, err
	}

	batch, err := m.LastBatch(ctx)
	if err != nil {
		return nil, err
	}
	if batch == 0 {
		return nil, nil
	}

	records, err := m.records(ctx, database.Clauses{}.Where("batch = "+strconv.Itoa(batch)))
	if err != nil {
		return nil, err
	}

	byName := make(map[string]Migration, len(migrations))
	for _, mig := range migrations {
		byName[mig.Name] = mig
	}

	var reverted []string
	for i := len(records) - 1; i >= 0; i-- {
		name := records[i].Name
		mig, ok := byName[name]
		if !ok {
			return reverted, fmt.Errorf("migration %s not found", name)
		}

		if _, err := m.db.ExecScript(ctx, mig.Down); err != nil {
			m.logger.Printf("❌ Rollback başarısız: %s", name)
			return reverted, fmt.Errorf("rollback %s failed: %w", name, err)
		}

		if _, err := m.db.ExecuteDDL(ctx, "DELETE FROM "+Table+" WHERE migration = "+quote(name)); err != nil {
			return reverted, fmt.Errorf("failed to delete migration record %s: %w", name, err)
		}

		m.logger.Printf("✅ Rolled back: %s", name)
		reverted = append(reverted, name)
	}

	return reverted, nil
}

func toRecords(rs *database.ResultSet) ([]Record, error) {
	records := make([]Record, 0, rs.Len())
	for _, row := range rs.Rows {
		batch, err := strconv.Atoi(row["batch"])
		if err != nil {
			return nil, fmt.Errorf("invalid batch value %q: %w", row["batch"], err)
		}
		seq, err := strconv.Atoi(row["seq"])
		if err != nil {
			return nil, fmt.Errorf("invalid seq value %q: %w", row["seq"], err)
		}
		records = append(records, Record{Name: row["migration"], Batch: batch, Seq: seq})
	}
	return records, nil
}

// quote, değeri tek tırnaklı SQL string literal'ine çevirir.
func quote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}
