package database

import (
	"context"
	"errors"
	"math"
	"strconv"
	"testing"
)

func TestCompileFetch(t *testing.T) {
	filtered := Clauses{}.
		Select("id, name").
		Join("orders", "users.id = orders.user_id", "left").
		Where("age > 18")

	tests := []struct {
		name     string
		spec     FetchSpec
		expected string
	}{
		{
			"bare table",
			FetchSpec{Table: " Users "},
			"SELECT * FROM users",
		},
		{
			"all fragments",
			FetchSpec{Table: "users", Clauses: filtered},
			"SELECT id, name FROM users LEFT JOIN orders ON (users.id = orders.user_id) WHERE age > 18",
		},
		{
			"where only",
			FetchSpec{Table: "users", Clauses: Clauses{}.Where("x = 1")},
			"SELECT * FROM users WHERE x = 1",
		},
		{
			"limit",
			FetchSpec{Table: "users", Page: &Page{Limit: 10}},
			"SELECT * FROM (SELECT *, ROW_NUMBER() OVER () AS rownum FROM users) AS numbered WHERE rownum <= 10",
		},
		{
			"limit and offset",
			FetchSpec{Table: "users", Page: &Page{Limit: 10, Offset: 5}},
			"SELECT * FROM (SELECT *, ROW_NUMBER() OVER () AS rownum FROM users) AS numbered WHERE rownum > 5 AND rownum <= 15",
		},
		{
			"paged with fragments",
			FetchSpec{Table: "users", Clauses: filtered, Page: &Page{Limit: 3, Offset: 3}},
			"SELECT * FROM (SELECT id, name, ROW_NUMBER() OVER () AS rownum FROM users LEFT JOIN orders ON (users.id = orders.user_id) WHERE age > 18) AS numbered WHERE rownum > 3 AND rownum <= 6",
		},
		{
			"negative values clamp",
			FetchSpec{Table: "users", Page: &Page{Limit: -1, Offset: -4}},
			"SELECT * FROM (SELECT *, ROW_NUMBER() OVER () AS rownum FROM users) AS numbered WHERE rownum <= 0",
		},
		{
			"unbounded limit saturates",
			FetchSpec{Table: "users", Page: &Page{Limit: math.MaxInt, Offset: 5}},
			"SELECT * FROM (SELECT *, ROW_NUMBER() OVER () AS rownum FROM users) AS numbered WHERE rownum > 5 AND rownum <= " + strconv.Itoa(math.MaxInt),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CompileFetch(tt.spec)
			if got != tt.expected {
				t.Errorf("Expected:\n%s\nGot:\n%s", tt.expected, got)
			}
		})
	}
}

func TestGet_ResetsPendingOnUnusableConnection(t *testing.T) {
	db := &DB{}
	db.Select("id").Where("x = 1")

	_, err := db.Get(context.Background(), "users")

	if !errors.Is(err, ErrConnectionUnusable) {
		t.Errorf("Expected ErrConnectionUnusable, got %v", err)
	}
	if !db.Pending().IsZero() {
		t.Error("Expected pending clauses to be reset even though the fetch failed")
	}
}

func TestGetLimitAndPage_ResetPending(t *testing.T) {
	db := &DB{}

	db.Select("id")
	db.GetLimit(context.Background(), "users", 5)
	if !db.Pending().IsZero() {
		t.Error("GetLimit did not reset pending clauses")
	}

	db.Where("x = 1")
	db.GetPage(context.Background(), "users", 5, 5)
	if !db.Pending().IsZero() {
		t.Error("GetPage did not reset pending clauses")
	}
}
