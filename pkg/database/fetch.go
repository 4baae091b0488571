package database

import (
	"context"
	"math"
	"strconv"
	"strings"
)

// -----------------------------------------------------------------------------
// FETCH OPERATIONS
// -----------------------------------------------------------------------------
// Fetch operasyonları biriken parçaları tablo adı ve opsiyonel sayfalama
// sınırlarıyla birleştirip SQL üretir, Statement Executor'a verir ve
// sonucu döndürür.
//
// Sayfalama, LIMIT/OFFSET yerine ROW_NUMBER() penceresi ile yapılır:
//
//	SELECT * FROM (
//	    SELECT <select>, ROW_NUMBER() OVER () AS rownum FROM <table> <join> <where>
//	) AS numbered WHERE rownum > <offset> AND rownum <= <offset+limit>
//
// Satır numaraları 1'den başlar. Sayfalı sonuçlar rownum kolonunu da içerir.
// -----------------------------------------------------------------------------

// Page, satır numarası penceresidir: Offset < rownum <= Offset+Limit.
// Negatif değerler 0 sayılır; Limit 0 boş pencere demektir. Offset+Limit
// taşarsa üst sınır math.MaxInt olur.
type Page struct {
	Limit  int
	Offset int
}

// FetchSpec, tek bir fetch operasyonunun tüm girdileridir.
//
// Alanlar:
//   - Table: sorgulanacak tablo (küçük harfe çevrilir)
//   - Clauses: select/join/where parçaları
//   - Page: sayfalama penceresi (nil ise sınırsız)
type FetchSpec struct {
	Table   string
	Clauses Clauses
	Page    *Page
}

// CompileFetch, FetchSpec'ten çalıştırılacak SQL'i üretir.
//
// Örnek:
//
//	CompileFetch(FetchSpec{Table: "Users", Page: &Page{Limit: 10, Offset: 5}})
//	→ SELECT * FROM (SELECT *, ROW_NUMBER() OVER () AS rownum FROM users) AS numbered
//	  WHERE rownum > 5 AND rownum <= 15
func CompileFetch(spec FetchSpec) string {
	selects := spec.Clauses.SelectFragment()
	if selects == "" {
		selects = "*"
	}

	from := normalizeName(spec.Table)
	if joins := spec.Clauses.JoinFragment(); joins != "" {
		from += " " + joins
	}
	if wheres := spec.Clauses.WhereFragment(); wheres != "" {
		from += " " + wheres
	}

	if spec.Page == nil {
		return "SELECT " + selects + " FROM " + from
	}

	limit, offset := spec.Page.Limit, spec.Page.Offset
	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}
	// Üst sınır int taşmasında math.MaxInt'e sabitlenir.
	if limit > math.MaxInt-offset {
		limit = math.MaxInt - offset
	}

	var sb strings.Builder
	sb.WriteString("SELECT * FROM (SELECT ")
	sb.WriteString(selects)
	sb.WriteString(", ROW_NUMBER() OVER () AS rownum FROM ")
	sb.WriteString(from)
	sb.WriteString(") AS numbered WHERE ")
	if offset > 0 {
		sb.WriteString("rownum > ")
		sb.WriteString(strconv.Itoa(offset))
		sb.WriteString(" AND ")
	}
	sb.WriteString("rownum <= ")
	sb.WriteString(strconv.Itoa(offset + limit))

	return sb.String()
}

// Fetch, verilen Clauses değeriyle sorgu çalıştırır. Bekleyen (pending)
// parçalara dokunmaz.
func (db *DB) Fetch(ctx context.Context, spec FetchSpec) (*ResultSet, error) {
	return db.ExecuteDML(ctx, CompileFetch(spec))
}

// Get, bekleyen parçalarla tablonun tüm eşleşen satırlarını döndürür.
//
// Bekleyen parçalar SQL üretilmeden önce alınır ve sıfırlanır; sorgu hata
// verse bile bir sonraki sorguya taşınmazlar.
//
// Örnek:
//
//	rs, err := db.Select("id, name").Where("age > 18").Get(ctx, "users")
func (db *DB) Get(ctx context.Context, table string) (*ResultSet, error) {
	return db.Fetch(ctx, FetchSpec{Table: table, Clauses: db.takePending()})
}

// GetLimit, ilk limit satırı döndürür (1 <= rownum <= limit).
func (db *DB) GetLimit(ctx context.Context, table string, limit int) (*ResultSet, error) {
	return db.Fetch(ctx, FetchSpec{Table: table, Clauses: db.takePending(), Page: &Page{Limit: limit}})
}

// GetPage, offset satırı atlayıp sonraki limit satırı döndürür
// (offset < rownum <= offset+limit).
//
// Örnek:
//
//	rs, err := db.GetPage(ctx, "users", 10, 5) // 6..15. satırlar
func (db *DB) GetPage(ctx context.Context, table string, limit, offset int) (*ResultSet, error) {
	return db.Fetch(ctx, FetchSpec{Table: table, Clauses: db.takePending(), Page: &Page{Limit: limit, Offset: offset}})
}
