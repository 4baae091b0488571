package database

import (
	"bytes"
	"testing"
	"time"
)

func TestRenderValue(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 30, 0, 500, time.UTC)

	tests := []struct {
		name     string
		value    interface{}
		expected string
	}{
		{"nil", nil, ""},
		{"bytes", []byte("abc"), "abc"},
		{"string", "Alice", "Alice"},
		{"int64", int64(-42), "-42"},
		{"int", 7, "7"},
		{"uint64", uint64(18446744073709551615), "18446744073709551615"},
		{"float", 27.5, "27.5"},
		{"float whole", float64(3), "3"},
		{"float32", float32(0.25), "0.25"},
		{"bool", true, "true"},
		{"time", ts, "2024-03-01T12:30:00.0000005Z"},
		{"fallback", struct{ A int }{1}, "{1}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := renderValue(tt.value); got != tt.expected {
				t.Errorf("Expected:\n%s\nGot:\n%s", tt.expected, got)
			}
		})
	}
}

func TestResultSet_Accessors(t *testing.T) {
	var empty *ResultSet
	if empty.Len() != 0 || empty.First() != nil || empty.Values() != nil {
		t.Error("Expected nil ResultSet accessors to be safe")
	}

	rs := &ResultSet{
		Columns: []string{"id", "name"},
		Rows:    []Row{{"id": "1", "name": "Alice"}, {"id": "2", "name": ""}},
	}

	if rs.First()["name"] != "Alice" {
		t.Errorf("Unexpected first row: %v", rs.First())
	}

	values := rs.Values()
	if len(values) != 2 || values[1][0] != "2" || values[1][1] != "" {
		t.Errorf("Unexpected values: %v", values)
	}
}

func TestResultSet_Render(t *testing.T) {
	rs := &ResultSet{
		Columns: []string{"id", "name"},
		Rows:    []Row{{"id": "1", "name": "Alice"}, {"id": "22", "name": "Bob"}},
	}

	var buf bytes.Buffer
	if err := rs.Render(&buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	expected := "" +
		"+----+-------+\n" +
		"| id | name  |\n" +
		"+----+-------+\n" +
		"| 1  | Alice |\n" +
		"| 22 | Bob   |\n" +
		"+----+-------+\n" +
		"2 row(s)\n"
	if buf.String() != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, buf.String())
	}
}

func TestResultSet_RenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := (&ResultSet{}).Render(&buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if buf.String() != "0 row(s)\n" {
		t.Errorf("Unexpected output: %q", buf.String())
	}
}
