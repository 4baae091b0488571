package database

import (
	"context"
	"errors"
	"testing"
)

func TestSplitStatements(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"single statement", "SELECT * FROM t", []string{"SELECT * FROM t"}},
		{"two statements", "SELECT * FROM a; SELECT * FROM b;", []string{"SELECT * FROM a", "SELECT * FROM b"}},
		{"comments", "-- setup\nCREATE TABLE t (id INT); -- trailing\n", []string{"CREATE TABLE t (id INT)"}},
		{"quoted semicolon", "INSERT INTO t VALUES ('a;b'); SELECT 1", []string{"INSERT INTO t VALUES ('a;b')", "SELECT 1"}},
		{"quoted dashes", "SELECT '--not a comment'", []string{"SELECT '--not a comment'"}},
		{"escaped quote", "INSERT INTO t VALUES ('it''s; fine')", []string{"INSERT INTO t VALUES ('it''s; fine')"}},
		{"empty", "", nil},
		{"only semicolons", " ;;; ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitStatements(tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("Expected %d statements, got %d: %q", len(tt.expected), len(got), got)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("Statement %d\nExpected:\n%s\nGot:\n%s", i, tt.expected[i], got[i])
				}
			}
		})
	}
}

func TestIsQuery(t *testing.T) {
	queries := []string{"SELECT 1", "  select * from t", "WITH x AS (SELECT 1) SELECT * FROM x", "(SELECT 1)", "PRAGMA table_info(t)"}
	for _, q := range queries {
		if !IsQuery(q) {
			t.Errorf("Expected %q to be a query", q)
		}
	}

	updates := []string{"", "INSERT INTO t VALUES (1)", "CREATE TABLE t (id INT)", "DELETE FROM t"}
	for _, u := range updates {
		if IsQuery(u) {
			t.Errorf("Expected %q not to be a query", u)
		}
	}
}

func TestFirstKeyword(t *testing.T) {
	tests := map[string]string{
		"":                                   "",
		"  select * from t":                  "SELECT",
		"((SELECT 1))":                       "SELECT",
		"WITH d AS (SELECT 1) DELETE FROM t": "WITH",
		"\ninsert into t values (1)":         "INSERT",
	}
	for stmt, expected := range tests {
		if got := firstKeyword(stmt); got != expected {
			t.Errorf("firstKeyword(%q): expected %q, got %q", stmt, expected, got)
		}
	}
}

func TestExecAndExecScript(t *testing.T) {
	db := openTestDB(t, Options{})
	ctx := context.Background()

	n, err := db.ExecScript(ctx, "CREATE TABLE t (id INT); INSERT INTO t VALUES (1); INSERT INTO t VALUES (2);")
	if err != nil {
		t.Fatalf("ExecScript failed: %v", err)
	}
	if n != 3 {
		t.Errorf("Expected 3 statements executed, got %d", n)
	}

	rs, affected, err := db.Exec(ctx, "SELECT id FROM t")
	if err != nil || rs.Len() != 2 || affected != 0 {
		t.Errorf("Unexpected query result: rs=%v affected=%d err=%v", rs, affected, err)
	}

	rs, affected, err = db.Exec(ctx, "DELETE FROM t WHERE id = 1")
	if err != nil || rs != nil || affected != 1 {
		t.Errorf("Unexpected update result: rs=%v affected=%d err=%v", rs, affected, err)
	}

	n, err = db.ExecScript(ctx, "INSERT INTO t VALUES (3); INSERT INTO missing VALUES (1); INSERT INTO t VALUES (4)")
	var stmtErr *StatementError
	if !errors.As(err, &stmtErr) {
		t.Fatalf("Expected *StatementError, got %v", err)
	}
	if n != 1 {
		t.Errorf("Expected script to stop after 1 statement, got %d", n)
	}
}
