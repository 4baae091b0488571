// -----------------------------------------------------------------------------
// Testing Helpers
// -----------------------------------------------------------------------------
// Bu package, fluentdb üzerinde test yazımını kolaylaştıran helper
// fonksiyonlar sağlar.
//
// Özellikler:
// - Geçici SQLite veritabanı (RefreshDatabase)
// - Tablo oluşturma ve seed (SeedTable)
// - Küçük assertion helper'ları
//
// database paketinin kendi testleri import cycle nedeniyle bu paketi
// kullanamaz; migration, cache ve CLI testleri içindir.
//
// Kullanım:
//
//	func TestUsers(t *testing.T) {
//	    db := fdbtest.RefreshDatabase(t)
//	    fdbtest.SeedTable(t, db, "users", "id INT, name VARCHAR(64)", "id, name", "1, 'Alice'")
//
//	    rs, err := db.Get(ctx, "users")
//	    fdbtest.AssertNil(t, err)
//	    fdbtest.AssertEquals(t, "Alice", rs.First()["name"])
//	}
// -----------------------------------------------------------------------------

package testing

import (
	"context"
	"errors"
	"io"
	"log"
	"reflect"
	"strings"
	"testing"

	"github.com/biyonik/fluentdb/pkg/database"
)

// -----------------------------------------------------------------------------
// Database Testing Helpers
// -----------------------------------------------------------------------------

// DiscardLogger, çıktısı atılan bir logger döndürür.
func DiscardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// RefreshDatabase, test için geçici dizinde yeni bir SQLite veritabanı açar.
// Veritabanı test bitince kapatılır, dizin testing paketi tarafından silinir.
//
// configure ile Options üzerinde değişiklik yapılabilir (cache, throttle vb.).
func RefreshDatabase(t *testing.T, configure ...func(*database.Options)) *database.DB {
	t.Helper()

	opts := database.Options{
		Dir:    t.TempDir(),
		Create: true,
		Logger: DiscardLogger(),
	}
	for _, fn := range configure {
		fn(&opts)
	}

	db, err := database.Open(context.Background(), "test", opts)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	t.Cleanup(func() {
		if err := db.Close(context.Background()); err != nil {
			t.Errorf("Failed to close test database: %v", err)
		}
	})

	return db
}

// SeedTable, tabloyu oluşturur ve her values string'i için bir satır ekler.
func SeedTable(t *testing.T, db *database.DB, table, columnsSpec, columns string, values ...string) {
	t.Helper()
	ctx := context.Background()

	if err := db.CreateTable(ctx, table, columnsSpec); err != nil {
		t.Fatalf("Failed to create table %s: %v", table, err)
	}
	for _, v := range values {
		if _, err := db.Insert(ctx, table, columns, v); err != nil {
			t.Fatalf("Failed to seed table %s: %v", table, err)
		}
	}
}

// AssertRowCount, tablonun beklenen sayıda satır içerdiğini doğrular.
// Boş tablo ErrNoRows ile döner ve 0 sayılır.
func AssertRowCount(t *testing.T, db *database.DB, table string, expected int) {
	t.Helper()

	rs, err := db.Get(context.Background(), table)
	if err != nil && !errors.Is(err, database.ErrNoRows) {
		t.Fatalf("Failed to read table %s: %v", table, err)
	}
	if rs.Len() != expected {
		t.Errorf("Expected %d rows in %s, got %d", expected, table, rs.Len())
	}
}

// -----------------------------------------------------------------------------
// Assertion Helpers
// -----------------------------------------------------------------------------

// AssertEquals asserts that two values are equal.
func AssertEquals(t *testing.T, expected, actual interface{}) {
	t.Helper()
	if !reflect.DeepEqual(expected, actual) {
		t.Errorf("Expected %v, got %v", expected, actual)
	}
}

// AssertNil asserts that an error is nil.
func AssertNil(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}

// AssertErrorIs asserts that err matches target via errors.Is.
func AssertErrorIs(t *testing.T, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Errorf("Expected error %v, got %v", target, err)
	}
}

// AssertTrue asserts that a condition is true.
func AssertTrue(t *testing.T, condition bool, message string) {
	t.Helper()
	if !condition {
		t.Errorf("Assertion failed: %s", message)
	}
}

// AssertContains asserts that a string contains a substring.
func AssertContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Errorf("Expected %q to contain %q", haystack, needle)
	}
}
