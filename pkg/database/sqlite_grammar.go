package database

import (
	"path/filepath"

	_ "modernc.org/sqlite" // register pure-Go SQLite driver
)

// -----------------------------------------------------------------------------
// SQLite Grammar
// -----------------------------------------------------------------------------
// Varsayılan gömülü motor. modernc.org/sqlite CGO gerektirmez ve "file:"
// önekli URI'leri olduğu gibi SQLite'a iletir; bu sayede "mode=rwc"
// (oluştur) ve "mode=rw" (sadece mevcut dosyayı aç) direktifleri çalışır.
//
// Şema sahibi her zaman "main" şemasıdır.
// -----------------------------------------------------------------------------

type SQLiteGrammar struct{}

func NewSQLiteGrammar() *SQLiteGrammar {
	return &SQLiteGrammar{}
}

func (g *SQLiteGrammar) Name() string { return EngineSQLite }

func (g *SQLiteGrammar) DriverName() string { return "sqlite" }

func (g *SQLiteGrammar) DefaultProtocol() string { return "file:" }

// DSN, "file:<dir>/<name>?mode=rwc&<params>" biçiminde URI üretir.
func (g *SQLiteGrammar) DSN(protocol, dir, name string, create bool, params string) string {
	path := name
	if dir != "" {
		path = filepath.Join(dir, name)
	}

	mode := "mode=rw"
	if create {
		mode = "mode=rwc"
	}

	return protocol + filepath.ToSlash(path) + "?" + joinParams(mode, params)
}

func (g *SQLiteGrammar) CompileTableExists() string {
	return "SELECT name FROM main.sqlite_master WHERE type = 'table' AND UPPER(name) LIKE ?"
}

func (g *SQLiteGrammar) CompileTables() string {
	return "SELECT name FROM main.sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name"
}
