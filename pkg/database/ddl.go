package database

import (
	"context"
	"fmt"
)

// Convenience DDL builders. Parçalar olduğu gibi şablona yerleştirilir;
// doğruluk ve injection riski çağırana aittir.

// CreateTable, "CREATE TABLE <name> (<columnsSpec>)" çalıştırır.
//
// Örnek:
//
//	db.CreateTable(ctx, "users", "id INT PRIMARY KEY, name VARCHAR(64)")
func (db *DB) CreateTable(ctx context.Context, name, columnsSpec string) error {
	_, err := db.ExecuteDDL(ctx, fmt.Sprintf("CREATE TABLE %s (%s)", normalizeName(name), columnsSpec))
	return err
}

// Insert, "INSERT INTO <table> (<columns>) VALUES (<values>)" çalıştırır.
//
// Örnek:
//
//	db.Insert(ctx, "users", "id, name", "1, 'Alice'")
func (db *DB) Insert(ctx context.Context, table, columns, values string) (int64, error) {
	return db.ExecuteDDL(ctx, fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", normalizeName(table), columns, values))
}

// DropTable, "DROP TABLE <name>" çalıştırır.
func (db *DB) DropTable(ctx context.Context, name string) error {
	_, err := db.ExecuteDDL(ctx, fmt.Sprintf("DROP TABLE %s", normalizeName(name)))
	return err
}
