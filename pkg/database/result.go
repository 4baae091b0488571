package database

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// -----------------------------------------------------------------------------
// RESULT HELPERS: ROW MATERIALIZER
// -----------------------------------------------------------------------------
// Bu dosya, SQL'den dönen sonuçları kolon adı → string değer eşlemesine
// dönüştürür. Motora özgü tipler (int64, float64, []byte, time.Time, vb.)
// metne çevrilir; bu katmanda sayısal/tarih tipi korunmaz.
//
// Kolon şeması (sayı ve küçük harfli adlar) sonuç kümesinden bir kez okunur
// ve tüm satırlar için aynı şema kullanılır.
// -----------------------------------------------------------------------------

// Row, tek bir sonuç satırıdır: küçük harfli kolon adı → metin değer.
// NULL değerler boş string olarak temsil edilir.
type Row map[string]string

// ResultSet, motorun döndürdüğü sırayla satırlar ve kolon adlarıdır.
// ExecuteDML ve fetch operasyonları boş ResultSet döndürmez; satır yoksa
// ErrNoRows döner.
type ResultSet struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// Len, satır sayısını döndürür.
func (rs *ResultSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.Rows)
}

// First, ilk satırı döndürür; sonuç boşsa nil.
func (rs *ResultSet) First() Row {
	if rs.Len() == 0 {
		return nil
	}
	return rs.Rows[0]
}

// Values, satırları kolon sırasına göre string dizileri olarak döndürür.
func (rs *ResultSet) Values() [][]string {
	if rs == nil {
		return nil
	}
	data := make([][]string, len(rs.Rows))
	for i, row := range rs.Rows {
		values := make([]string, len(rs.Columns))
		for j, col := range rs.Columns {
			values[j] = row[col]
		}
		data[i] = values
	}
	return data
}

// renderValue, sürücüden gelen değeri metne çevirir.
func renderValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case []byte:
		return string(v)
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int:
		return strconv.Itoa(v)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		return v.Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(v)
	}
}

// materialize, sql.Rows'ı ResultSet'e dönüştürür. Satır yoksa nil döner.
func materialize(rows *sql.Rows) (*ResultSet, error) {
	if !rows.Next() {
		return nil, rows.Err()
	}

	// Kolon metadata'sı ilk satırda bir kez okunur.
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	for i := range cols {
		cols[i] = strings.ToLower(cols[i])
	}

	rs := &ResultSet{Columns: cols}

	values := make([]interface{}, len(cols))
	pointers := make([]interface{}, len(cols))
	for i := range values {
		pointers[i] = &values[i]
	}

	for {
		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}

		row := make(Row, len(cols))
		for i, col := range cols {
			row[col] = renderValue(values[i])
		}
		rs.Rows = append(rs.Rows, row)

		if !rows.Next() {
			break
		}
	}

	return rs, rows.Err()
}
