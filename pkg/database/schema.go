package database

import (
	"context"
	"strings"
)

// -----------------------------------------------------------------------------
// SCHEMA INTROSPECTOR
// -----------------------------------------------------------------------------
// Motor metadata'sını sabit şema sahibiyle sınırlı olarak sorgular.
// Bekleyen Clauses değerine dokunmaz.
// -----------------------------------------------------------------------------

// TableExists, pattern'e uyan en az bir tablo olup olmadığını kontrol eder.
//
// Pattern trim edilip büyük harfe çevrilir ve büyük harfli tablo adlarıyla
// LIKE ile karşılaştırılır; "%" ve "_" joker karakter olarak çalışır.
// Bu nedenle "Users" ve "users" aynı sonucu verir.
//
// Örnek:
//
//	exists, err := db.TableExists(ctx, "users")
//	exists, err := db.TableExists(ctx, "order_%")
func (db *DB) TableExists(ctx context.Context, pattern string) (bool, error) {
	if err := db.usable(); err != nil {
		return false, err
	}
	if err := db.throttle.wait(ctx); err != nil {
		return false, err
	}

	query := db.grammar.CompileTableExists()
	pattern = strings.ToUpper(strings.TrimSpace(pattern))

	rows, err := db.conn.QueryContext(ctx, query, pattern)
	if err != nil {
		return false, db.statementFailed("metadata", query, err)
	}
	defer rows.Close()

	exists := rows.Next()
	if err := rows.Err(); err != nil {
		return false, db.statementFailed("metadata", query, err)
	}

	return exists, nil
}

// Tables, şema sahibindeki tablo adlarını alfabetik sırayla listeler.
func (db *DB) Tables(ctx context.Context) ([]string, error) {
	if err := db.usable(); err != nil {
		return nil, err
	}
	if err := db.throttle.wait(ctx); err != nil {
		return nil, err
	}

	query := db.grammar.CompileTables()

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, db.statementFailed("metadata", query, err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, db.statementFailed("metadata", query, err)
		}
		tables = append(tables, strings.ToLower(name))
	}
	if err := rows.Err(); err != nil {
		return nil, db.statementFailed("metadata", query, err)
	}

	return tables, nil
}
