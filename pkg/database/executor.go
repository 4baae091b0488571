package database

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// -----------------------------------------------------------------------------
// STATEMENT EXECUTOR
// -----------------------------------------------------------------------------
// ExecuteDDL yazma komutlarını (CREATE, INSERT, UPDATE, DELETE, DROP)
// çalıştırır ve etkilenen satır sayısını döndürür. ExecuteDML sorgu çalıştırır
// ve sonucu Row Materializer'a verir.
//
// Hatalar tüm tanı bilgisiyle (SQL, kod, state) loglanır ve *StatementError
// olarak döner. Cache aktifse SELECT sonuçları cache'lenir; başarılı her yazma
// komutu ve SELECT ile başlamayan her sorgu cache'i temizler.
// -----------------------------------------------------------------------------

// ExecuteDDL, bir update komutu çalıştırır.
//
// Döndürür:
//   - int64: etkilenen satır sayısı (motor desteklemiyorsa 0)
//   - error: ErrConnectionUnusable veya *StatementError
//
// Örnek:
//
//	n, err := db.ExecuteDDL(ctx, "DELETE FROM users WHERE active = 0")
func (db *DB) ExecuteDDL(ctx context.Context, query string) (int64, error) {
	if err := db.usable(); err != nil {
		return 0, err
	}
	if err := db.throttle.wait(ctx); err != nil {
		return 0, err
	}

	result, err := db.conn.ExecContext(ctx, query)
	if err != nil {
		return 0, db.statementFailed("update", query, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		affected = 0
	}

	db.invalidateCache()

	return affected, nil
}

// ExecuteDML, bir sorgu çalıştırır ve satırları materialize eder.
//
// Döndürür:
//   - *ResultSet: en az bir satır içeren sonuç
//   - error: satır yoksa ErrNoRows, hata varsa *StatementError
//
// Örnek:
//
//	rs, err := db.ExecuteDML(ctx, "SELECT id, name FROM users")
//	if errors.Is(err, database.ErrNoRows) {
//	    // Sonuç yok
//	}
func (db *DB) ExecuteDML(ctx context.Context, query string) (*ResultSet, error) {
	if err := db.usable(); err != nil {
		return nil, err
	}

	// Sadece SELECT sonuçları cache'lenir. WITH ... DELETE gibi yazma yapabilen
	// sorgular cache'i okumaz ve başarılı olduklarında cache'i temizler.
	readOnly := firstKeyword(query) == "SELECT"

	key := ""
	if readOnly {
		key = db.cacheKey(query)
		if rs := db.cached(key); rs != nil {
			return rs, nil
		}
	}

	if err := db.throttle.wait(ctx); err != nil {
		return nil, err
	}

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, db.statementFailed("query", query, err)
	}
	defer rows.Close()

	rs, err := materialize(rows)
	if err != nil {
		return nil, db.statementFailed("query", query, err)
	}
	if !readOnly {
		db.invalidateCache()
	}
	if rs == nil {
		return nil, ErrNoRows
	}

	db.remember(key, rs)

	return rs, nil
}

// statementFailed, hatayı tanı bilgisiyle loglar ve StatementError döndürür.
func (db *DB) statementFailed(op, query string, err error) error {
	stmtErr := newStatementError(op, query, err)
	db.logger.Printf("❌ SQL %s hatası [code: %d, state: %q]: %v\n   SQL: %s",
		op, stmtErr.Code, stmtErr.State, err, query)
	return stmtErr
}

// -----------------------------------------------------------------------------
// Result cache
// -----------------------------------------------------------------------------

// cacheKey, sorgu metnini ve DSN'i hash'leyerek cache anahtarı üretir.
// Aynı cache'i paylaşan farklı veritabanları çakışmaz.
func (db *DB) cacheKey(query string) string {
	if db.cache == nil {
		return ""
	}
	sum := sha256.Sum256([]byte(db.dsn + "\x00" + query))
	return "query:" + hex.EncodeToString(sum[:])
}

// cached, cache'deki sonucu döndürür. Cache hatası sorguyu engellemez.
func (db *DB) cached(key string) *ResultSet {
	if key == "" {
		return nil
	}

	data, err := db.cache.Get(key)
	if err != nil || data == nil {
		return nil
	}

	var rs ResultSet
	if err := json.Unmarshal(data, &rs); err != nil {
		db.logger.Printf("⚠️  Cache decode hatası [%s]: %v", key, err)
		return nil
	}
	if len(rs.Rows) == 0 {
		return nil
	}
	return &rs
}

// remember, sonucu cache'e yazar.
func (db *DB) remember(key string, rs *ResultSet) {
	if key == "" {
		return
	}

	data, err := json.Marshal(rs)
	if err != nil {
		db.logger.Printf("⚠️  Cache encode hatası [%s]: %v", key, err)
		return
	}

	if err := db.cache.Set(key, data, db.cacheTTL); err != nil {
		db.logger.Printf("⚠️  Cache yazma hatası [%s]: %v", key, err)
	}
}

// invalidateCache, yazma komutlarından sonra tüm sorgu sonuçlarını siler.
func (db *DB) invalidateCache() {
	if db.cache == nil {
		return
	}
	if err := db.cache.Flush(); err != nil {
		db.logger.Printf("⚠️  Cache temizleme hatası: %v", err)
	}
}
