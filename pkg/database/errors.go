// -----------------------------------------------------------------------------
// Database Errors
// -----------------------------------------------------------------------------
// Bu dosya, erişim katmanının döndürdüğü hata tiplerini içerir. Her operasyon
// hatayı loglar ve ayrıca açık bir hata olarak döndürür.
//
// Ayrım:
//   - ErrNoRows: sorgu başarılı, fakat satır yok
//   - *StatementError: SQL çalıştırma hatası (sözdizimi, constraint, vb.)
//   - ErrConnectionUnusable: bağlantı hiç açılmadı veya kapatıldı
//   - *OpenError: bağlantı açılamadı
//   - ErrUnexpectedShutdown: motor beklenen sinyal dışında bir hata ile kapandı
// -----------------------------------------------------------------------------

package database

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"modernc.org/sqlite"
)

var (
	// ErrNoRows, sonuç kümesi boş olduğunda döner.
	ErrNoRows = errors.New("database: no rows in result set")

	// ErrConnectionUnusable, kapalı veya hiç açılmamış bir bağlantı üzerinde
	// işlem yapılmak istendiğinde döner.
	ErrConnectionUnusable = errors.New("database: connection is not usable")

	// ErrUnexpectedShutdown, motor normal şekilde kapanmadığında döner.
	ErrUnexpectedShutdown = errors.New("database: engine did not shut down normally")
)

// StatementError, başarısız bir SQL komutunu tüm tanı bilgisiyle taşır.
//
// Alanlar:
//   - Op: "query" veya "update"
//   - SQL: çalıştırılan SQL metni
//   - Code: motorun sayısal hata kodu (bilinmiyorsa 0)
//   - State: SQLSTATE değeri (bilinmiyorsa boş)
//   - Err: sürücüden dönen asıl hata
type StatementError struct {
	Op    string
	SQL   string
	Code  int
	State string
	Err   error
}

func (e *StatementError) Error() string {
	msg := fmt.Sprintf("%s failed: %v", e.Op, e.Err)
	if e.Code != 0 || e.State != "" {
		msg += fmt.Sprintf(" (code %d, state %q)", e.Code, e.State)
	}
	return msg
}

func (e *StatementError) Unwrap() error {
	return e.Err
}

// OpenError, bağlantı açma hatasını connection string ile birlikte taşır.
type OpenError struct {
	DSN string
	Err error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("could not connect to database %q: %v", e.DSN, e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}

// ShutdownSignal, motorun temiz kapanışı bildirmek için kullandığı hata
// kodu/state çiftidir. Bu çifte uyan hata başarı olarak kabul edilir.
type ShutdownSignal struct {
	Code  int
	State string
}

// DefaultShutdownSignal, gömülü motorların kullandığı iyi bilinen kapanış
// sinyali (50000 / XJ015).
var DefaultShutdownSignal = ShutdownSignal{Code: 50000, State: "XJ015"}

// Matches, hatanın bu kapanış sinyali olup olmadığını kontrol eder.
func (s ShutdownSignal) Matches(err error) bool {
	if err == nil {
		return false
	}
	code, state := classify(err)
	return code == s.Code && state == s.State
}

// codedError ve stateError, sürücüye özel tiplere bağlı kalmadan kod ve
// SQLSTATE bilgisi sunan hatalar için kullanılır.
type codedError interface {
	Code() int
}

type stateError interface {
	SQLState() string
}

// classify, sürücü hatasından sayısal kodu ve SQLSTATE değerini çıkarır.
func classify(err error) (int, string) {
	var stmtErr *StatementError
	if errors.As(err, &stmtErr) {
		return stmtErr.Code, stmtErr.State
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		state := ""
		if mysqlErr.SQLState != [5]byte{} {
			state = string(mysqlErr.SQLState[:])
		}
		return int(mysqlErr.Number), state
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code(), ""
	}

	code, state := 0, ""
	var coded codedError
	if errors.As(err, &coded) {
		code = coded.Code()
	}
	var stated stateError
	if errors.As(err, &stated) {
		state = stated.SQLState()
	}
	return code, state
}

// newStatementError, sürücü hatasını StatementError ile sarmalar.
func newStatementError(op, query string, err error) *StatementError {
	code, state := classify(err)
	return &StatementError{
		Op:    op,
		SQL:   query,
		Code:  code,
		State: state,
		Err:   err,
	}
}
