package database

import (
	_ "github.com/go-sql-driver/mysql"
)

// -----------------------------------------------------------------------------
// MySQL Grammar
// -----------------------------------------------------------------------------
// Alternatif motor. Protocol, DSN'in veritabanı adına kadar olan kısmıdır:
//
//	user:password@tcp(127.0.0.1:3306)/
//
// MySQL veritabanını DSN üzerinden oluşturamaz; create direktifi yok sayılır.
// ROW_NUMBER() OVER () için MySQL 8 gereklidir.
// Şema sahibi, bağlantının aktif veritabanıdır (DATABASE()).
// -----------------------------------------------------------------------------

type MySQLGrammar struct{}

func NewMySQLGrammar() *MySQLGrammar {
	return &MySQLGrammar{}
}

func (g *MySQLGrammar) Name() string { return EngineMySQL }

func (g *MySQLGrammar) DriverName() string { return "mysql" }

func (g *MySQLGrammar) DefaultProtocol() string { return "root:password@tcp(127.0.0.1:3306)/" }

// DSN, "<protocol><name>?<params>" biçiminde DSN üretir. dir kullanılmaz.
func (g *MySQLGrammar) DSN(protocol, dir, name string, create bool, params string) string {
	dsn := protocol + name
	if q := joinParams(params); q != "" {
		dsn += "?" + q
	}
	return dsn
}

func (g *MySQLGrammar) CompileTableExists() string {
	return "SELECT table_name FROM information_schema.tables WHERE table_schema = DATABASE() AND UPPER(table_name) LIKE ?"
}

func (g *MySQLGrammar) CompileTables() string {
	return "SELECT table_name FROM information_schema.tables WHERE table_schema = DATABASE() ORDER BY table_name"
}
