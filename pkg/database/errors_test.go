package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
)

// engineError, Code ve SQLState sunan sürücü bağımsız bir hata.
type engineError struct {
	code  int
	state string
}

func (e engineError) Error() string    { return fmt.Sprintf("engine error %d", e.code) }
func (e engineError) Code() int        { return e.code }
func (e engineError) SQLState() string { return e.state }

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantCode  int
		wantState string
	}{
		{
			"mysql error",
			&mysql.MySQLError{Number: 1146, SQLState: [5]byte{'4', '2', 'S', '0', '2'}, Message: "Table doesn't exist"},
			1146, "42S02",
		},
		{
			"mysql error without state",
			&mysql.MySQLError{Number: 1045, Message: "Access denied"},
			1045, "",
		},
		{"generic coded error", engineError{code: 50000, state: "XJ015"}, 50000, "XJ015"},
		{"wrapped coded error", fmt.Errorf("shutdown: %w", engineError{code: 45000, state: "08006"}), 45000, "08006"},
		{"statement error", &StatementError{Code: 7, State: "HY000", Err: errors.New("x")}, 7, "HY000"},
		{"plain error", errors.New("boom"), 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, state := classify(tt.err)
			if code != tt.wantCode || state != tt.wantState {
				t.Errorf("Expected (%d, %q), got (%d, %q)", tt.wantCode, tt.wantState, code, state)
			}
		})
	}
}

func TestShutdownSignal_Matches(t *testing.T) {
	if !DefaultShutdownSignal.Matches(engineError{code: 50000, state: "XJ015"}) {
		t.Error("Expected default signal to match 50000/XJ015")
	}
	if !IsShutdownSignal(fmt.Errorf("close: %w", engineError{code: 50000, state: "XJ015"})) {
		t.Error("Expected wrapped signal to match")
	}
	if DefaultShutdownSignal.Matches(engineError{code: 50000, state: "XJ004"}) {
		t.Error("Expected state mismatch to fail")
	}
	if DefaultShutdownSignal.Matches(engineError{code: 40000, state: "XJ015"}) {
		t.Error("Expected code mismatch to fail")
	}
	if DefaultShutdownSignal.Matches(nil) {
		t.Error("Expected nil error not to match")
	}
}

func TestStatementError_Message(t *testing.T) {
	cause := errors.New("no such table: nope")
	err := newStatementError("query", "SELECT * FROM nope", cause)

	if !errors.Is(err, cause) {
		t.Error("Expected StatementError to unwrap to its cause")
	}

	expected := "query failed: no such table: nope"
	if err.Error() != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, err.Error())
	}

	coded := newStatementError("update", "INSERT", &mysql.MySQLError{Number: 1062, SQLState: [5]byte{'2', '3', '0', '0', '0'}, Message: "Duplicate entry"})
	if coded.Op != "update" || coded.Code != 1062 || coded.State != "23000" {
		t.Errorf("Unexpected classification: %+v", coded)
	}
}
