package database

import (
	"strings"
)

// -----------------------------------------------------------------------------
// QUERY BUILDER: CLAUSE ACCUMULATOR
// -----------------------------------------------------------------------------
// Bu dosya, zincirleme çağrılarla biriktirilen SQL parçalarını (select listesi,
// join'ler, where koşulu) tutan Clauses değerini içerir.
//
// Clauses immutable bir değerdir: her metod yeni bir Clauses döndürür, alıcıyı
// değiştirmez. DB üzerindeki zincirleme API (db.Select(...).Where(...)) aynı
// metodları bekleyen (pending) bir Clauses değeri üzerinde çalıştırır; bir
// fetch operasyonu bu değeri alır ve sıfırlar.
//
// Parçalar olduğu gibi SQL'e eklenir, escape edilmez. Koşul ve join
// ifadelerinin güvenliği çağırana aittir.
// -----------------------------------------------------------------------------

// avgCastType, AVG'nin tamsayı bölmesine düşmemesi için kullanılan tip.
// SQLite "DOUB" içeren tipleri REAL sayar, MySQL 8.0.17+ DOUBLE cast'ini destekler.
const avgCastType = "DOUBLE"

// Clauses, tek bir sorgu inşası boyunca biriken SQL parçalarıdır.
// Sıfır değeri boş (hiçbir parça set edilmemiş) durumdur.
type Clauses struct {
	selects string
	joins   string
	wheres  string
}

// normalizeIdentifier, backtick'leri kaldırır, trim eder ve küçük harfe çevirir.
func normalizeIdentifier(value string) string {
	return strings.ToLower(strings.TrimSpace(strings.ReplaceAll(value, "`", "")))
}

// appendSelect, ifadeyi mevcut select parçasına ", " ile ekler.
func (c Clauses) appendSelect(expr string) Clauses {
	if expr == "" {
		return c
	}
	if c.selects == "" {
		c.selects = expr
	} else {
		c.selects += ", " + expr
	}
	return c
}

// Select, virgülle ayrılmış kolon listesini select parçasına ekler.
//
// Örnek:
//
//	c.Select("`ID`, Name").Select("email")
//	→ "id, name, email"
func (c Clauses) Select(columns string) Clauses {
	for _, column := range strings.Split(columns, ",") {
		c = c.appendSelect(normalizeIdentifier(column))
	}
	return c
}

func (c Clauses) aggregate(function, column, alias string, cast bool) Clauses {
	column = normalizeIdentifier(column)
	if cast {
		column = "CAST(" + column + " AS " + avgCastType + ")"
	}
	expr := function + "(" + column + ")"
	if alias = normalizeIdentifier(alias); alias != "" {
		expr += " AS " + alias
	}
	return c.appendSelect(expr)
}

// SelectMax, "MAX(column) AS alias" ifadesini ekler.
func (c Clauses) SelectMax(column, alias string) Clauses {
	return c.aggregate("MAX", column, alias, false)
}

// SelectMin, "MIN(column) AS alias" ifadesini ekler.
func (c Clauses) SelectMin(column, alias string) Clauses {
	return c.aggregate("MIN", column, alias, false)
}

// SelectAvg, "AVG(CAST(column AS DOUBLE)) AS alias" ifadesini ekler.
// Cast, tamsayı kolonlarda ortalamanın kesilmesini engeller.
func (c Clauses) SelectAvg(column, alias string) Clauses {
	return c.aggregate("AVG", column, alias, true)
}

// SelectSum, "SUM(column) AS alias" ifadesini ekler.
func (c Clauses) SelectSum(column, alias string) Clauses {
	return c.aggregate("SUM", column, alias, false)
}

// Join, "<TYPE> JOIN <target> ON (<condition>)" ifadesini çağrı sırasıyla ekler.
// joinType büyük/küçük harf duyarsızdır; boş ise INNER kullanılır.
//
// Örnek:
//
//	c.Join("orders", "users.id = orders.user_id", "left")
//	→ "LEFT JOIN orders ON (users.id = orders.user_id)"
func (c Clauses) Join(target, condition, joinType string) Clauses {
	kind := strings.ToUpper(strings.TrimSpace(joinType))
	if kind == "" {
		kind = "INNER"
	}
	expr := kind + " JOIN " + normalizeIdentifier(target) + " ON (" + strings.TrimSpace(condition) + ")"
	if c.joins == "" {
		c.joins = expr
	} else {
		c.joins += " " + expr
	}
	return c
}

func (c Clauses) predicate(connective, condition string) Clauses {
	condition = strings.TrimSpace(condition)
	if c.wheres == "" {
		c.wheres = "WHERE " + condition
	} else {
		c.wheres += " " + connective + " " + condition
	}
	return c
}

// Where, koşulu AND ile ekler. İlk çağrı (Where veya OrWhere) WHERE anahtar
// kelimesini oluşturur.
//
// Koşullar parantezlenmez; karışık AND/OR zincirleri motorun kendi öncelik
// kurallarıyla değerlendirilir.
func (c Clauses) Where(condition string) Clauses {
	return c.predicate("AND", condition)
}

// OrWhere, koşulu OR ile ekler.
//
// Örnek:
//
//	c.Where("x = 1").OrWhere("y = 2")   → "WHERE x = 1 OR y = 2"
//	c.OrWhere("x = 1").Where("y = 2")   → "WHERE x = 1 AND y = 2"
func (c Clauses) OrWhere(condition string) Clauses {
	return c.predicate("OR", condition)
}

// SelectFragment, select parçasını döndürür; set edilmemişse boş string.
func (c Clauses) SelectFragment() string { return c.selects }

// JoinFragment, join parçasını döndürür; set edilmemişse boş string.
func (c Clauses) JoinFragment() string { return c.joins }

// WhereFragment, "WHERE ..." parçasını döndürür; set edilmemişse boş string.
func (c Clauses) WhereFragment() string { return c.wheres }

// IsZero, hiçbir parçanın set edilmediğini bildirir.
func (c Clauses) IsZero() bool {
	return c == Clauses{}
}

// -----------------------------------------------------------------------------
// DB üzerinde zincirleme API
// -----------------------------------------------------------------------------
// Bu metodlar bağlantıya dokunmaz ve hata döndürmez; sadece bekleyen
// Clauses değerini günceller. DB eşzamanlı kullanım için güvenli değildir.

// Select, bekleyen sorguya kolon ekler.
func (db *DB) Select(columns string) *DB {
	db.pending = db.pending.Select(columns)
	return db
}

// SelectMax, bekleyen sorguya MAX aggregate'i ekler.
func (db *DB) SelectMax(column, alias string) *DB {
	db.pending = db.pending.SelectMax(column, alias)
	return db
}

// SelectMin, bekleyen sorguya MIN aggregate'i ekler.
func (db *DB) SelectMin(column, alias string) *DB {
	db.pending = db.pending.SelectMin(column, alias)
	return db
}

// SelectAvg, bekleyen sorguya AVG aggregate'i ekler.
func (db *DB) SelectAvg(column, alias string) *DB {
	db.pending = db.pending.SelectAvg(column, alias)
	return db
}

// SelectSum, bekleyen sorguya SUM aggregate'i ekler.
func (db *DB) SelectSum(column, alias string) *DB {
	db.pending = db.pending.SelectSum(column, alias)
	return db
}

// Join, bekleyen sorguya join ekler.
func (db *DB) Join(target, condition, joinType string) *DB {
	db.pending = db.pending.Join(target, condition, joinType)
	return db
}

// Where, bekleyen sorguya AND koşulu ekler.
func (db *DB) Where(condition string) *DB {
	db.pending = db.pending.Where(condition)
	return db
}

// OrWhere, bekleyen sorguya OR koşulu ekler.
func (db *DB) OrWhere(condition string) *DB {
	db.pending = db.pending.OrWhere(condition)
	return db
}

// Pending, bekleyen Clauses değerinin kopyasını döndürür.
func (db *DB) Pending() Clauses {
	return db.pending
}

// takePending, bekleyen parçaları döndürür ve üçünü birden sıfırlar.
func (db *DB) takePending() Clauses {
	c := db.pending
	db.pending = Clauses{}
	return c
}
