package database

import (
	"context"
	"strings"
)

// -----------------------------------------------------------------------------
// SQL SCRIPT HELPERS
// -----------------------------------------------------------------------------
// Çok statement'lı SQL metinlerini (migration dosyaları, CLI girdisi) tek tek
// statement'lara böler ve her birini doğru executor'a yönlendirir.
// -----------------------------------------------------------------------------

// SplitStatements, SQL metnini ";" ile statement'lara böler.
//
// Tek veya çift tırnak içindeki ";" ayırıcı sayılmaz, "--" ile başlayan satır
// sonu yorumları atlanır ve boş statement'lar döndürülmez.
//
// Örnek:
//
//	SplitStatements("INSERT INTO t VALUES ('a;b'); SELECT * FROM t;")
//	→ ["INSERT INTO t VALUES ('a;b')", "SELECT * FROM t"]
func SplitStatements(script string) []string {
	var statements []string
	var current strings.Builder
	var quote byte

	flush := func() {
		if stmt := strings.TrimSpace(current.String()); stmt != "" {
			statements = append(statements, stmt)
		}
		current.Reset()
	}

	for i := 0; i < len(script); i++ {
		ch := script[i]

		if quote != 0 {
			current.WriteByte(ch)
			if ch == quote {
				quote = 0
			}
			continue
		}

		switch {
		case ch == '\'' || ch == '"':
			quote = ch
			current.WriteByte(ch)
		case ch == '-' && i+1 < len(script) && script[i+1] == '-':
			for i < len(script) && script[i] != '\n' {
				i++
			}
			current.WriteByte('\n')
		case ch == ';':
			flush()
		default:
			current.WriteByte(ch)
		}
	}
	flush()

	return statements
}

// IsQuery, statement'ın satır döndüren bir sorgu olup olmadığını ilk anahtar
// kelimeye bakarak tahmin eder.
func IsQuery(statement string) bool {
	switch firstKeyword(statement) {
	case "SELECT", "WITH", "VALUES", "PRAGMA", "SHOW", "EXPLAIN", "DESCRIBE":
		return true
	}
	return false
}

// firstKeyword, statement'ın büyük harfli ilk kelimesini döndürür.
func firstKeyword(statement string) string {
	fields := strings.Fields(strings.TrimLeft(strings.TrimSpace(statement), "("))
	if len(fields) == 0 {
		return ""
	}
	return strings.ToUpper(strings.TrimLeft(fields[0], "("))
}

// Exec, statement'ı türüne göre ExecuteDML veya ExecuteDDL ile çalıştırır.
// Update komutlarında ResultSet nil döner.
//
// Satır döndürmeyen bir sorgu ErrNoRows ile döner.
func (db *DB) Exec(ctx context.Context, statement string) (*ResultSet, int64, error) {
	if IsQuery(statement) {
		rs, err := db.ExecuteDML(ctx, statement)
		return rs, 0, err
	}
	n, err := db.ExecuteDDL(ctx, statement)
	return nil, n, err
}

// ExecScript, script'teki statement'ları sırayla çalıştırır ve ilk hatada
// durur. Dönen sayı başarıyla çalışan statement sayısıdır.
func (db *DB) ExecScript(ctx context.Context, script string) (int, error) {
	executed := 0
	for _, stmt := range SplitStatements(script) {
		if _, err := db.ExecuteDDL(ctx, stmt); err != nil {
			return executed, err
		}
		executed++
	}
	return executed, nil
}
