package database

import (
	"fmt"
	"strings"
)

// -----------------------------------------------------------------------------
// Grammar Interface
// -----------------------------------------------------------------------------
// Grammar, motora (SQL lehçesine) özgü parçaları tanımlar: sürücü adı,
// connection string formatı ve şema metadata sorguları. Builder ve fetch
// katmanı lehçeden bağımsızdır; ROW_NUMBER() tabanlı sayfalama her iki
// motorda da aynı SQL ile çalışır.
//
// Implementasyonlar:
// - SQLiteGrammar: gömülü, dosya tabanlı SQLite (varsayılan)
// - MySQLGrammar: MySQL 8+ / MariaDB 10.2+
// -----------------------------------------------------------------------------

// Grammar, SQL lehçesine özgü davranışı tanımlar.
type Grammar interface {
	// Name, motorun kısa adını döndürür ("sqlite", "mysql").
	Name() string

	// DriverName, database/sql'e kayıtlı sürücü adını döndürür.
	DriverName() string

	// DefaultProtocol, Options.Protocol boşsa kullanılacak önek.
	DefaultProtocol() string

	// DSN, önek + veritabanı adı + seçeneklerden connection string üretir.
	// name zaten normalize edilmiş (küçük harf, trim) olarak gelir.
	DSN(protocol, dir, name string, create bool, params string) string

	// CompileTableExists, tek bir parametre (büyük harfli LIKE pattern'i)
	// alan ve sabit şema sahibiyle sınırlı tablo arama sorgusunu üretir.
	CompileTableExists() string

	// CompileTables, şema sahibindeki tüm tablo adlarını listeler.
	CompileTables() string
}

// Engine adları.
const (
	EngineSQLite = "sqlite"
	EngineMySQL  = "mysql"
)

// GrammarFor, motor adına göre Grammar döndürür. Boş ad SQLite demektir.
func GrammarFor(engine string) (Grammar, error) {
	switch strings.ToLower(strings.TrimSpace(engine)) {
	case "", EngineSQLite:
		return NewSQLiteGrammar(), nil
	case EngineMySQL:
		return NewMySQLGrammar(), nil
	default:
		return nil, fmt.Errorf("unsupported database engine: %q", engine)
	}
}

// joinParams, boş olmayan query parametrelerini & ile birleştirir.
func joinParams(params ...string) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		p = strings.TrimLeft(strings.TrimSpace(p), "?&")
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "&")
}
