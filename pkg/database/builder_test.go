// -----------------------------------------------------------------------------
// Clause Accumulator Tests
// -----------------------------------------------------------------------------
// Bu testler, select/join/where parçalarının zincirleme çağrılarla nasıl
// biriktiğini ve DB üzerindeki bekleyen parçaların fetch sonrası
// sıfırlandığını doğrular.
// -----------------------------------------------------------------------------

package database

import (
	"testing"
)

func TestSelect_NormalizesColumns(t *testing.T) {
	c := Clauses{}.Select(" `ID`, Name ,, EMAIL ")

	expected := "id, name, email"
	if got := c.SelectFragment(); got != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, got)
	}
}

func TestSelect_AppendsAcrossCalls(t *testing.T) {
	c := Clauses{}.Select("id").Select("name")

	expected := "id, name"
	if got := c.SelectFragment(); got != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, got)
	}
}

func TestSelect_EmptyListLeavesFragmentUnset(t *testing.T) {
	c := Clauses{}.Select(" , ")

	if !c.IsZero() {
		t.Errorf("Expected zero Clauses, got select %q", c.SelectFragment())
	}
}

func TestAggregates(t *testing.T) {
	tests := []struct {
		name     string
		build    func(Clauses) Clauses
		expected string
	}{
		{"max", func(c Clauses) Clauses { return c.SelectMax("Price", "Top") }, "MAX(price) AS top"},
		{"min", func(c Clauses) Clauses { return c.SelectMin("price", "low") }, "MIN(price) AS low"},
		{"sum", func(c Clauses) Clauses { return c.SelectSum("qty", "total") }, "SUM(qty) AS total"},
		{"avg casts", func(c Clauses) Clauses { return c.SelectAvg("age", "avg_age") }, "AVG(CAST(age AS DOUBLE)) AS avg_age"},
		{"no alias", func(c Clauses) Clauses { return c.SelectMax("id", "") }, "MAX(id)"},
		{
			"after select",
			func(c Clauses) Clauses { return c.Select("dept").SelectSum("salary", "payroll") },
			"dept, SUM(salary) AS payroll",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.build(Clauses{}).SelectFragment()
			if got != tt.expected {
				t.Errorf("Expected:\n%s\nGot:\n%s", tt.expected, got)
			}
		})
	}
}

func TestJoin_TypeIsCaseInsensitive(t *testing.T) {
	for _, joinType := range []string{"left", "LEFT", " Left "} {
		c := Clauses{}.Join("Orders", "users.id = orders.user_id", joinType)

		expected := "LEFT JOIN orders ON (users.id = orders.user_id)"
		if got := c.JoinFragment(); got != expected {
			t.Errorf("joinType %q\nExpected:\n%s\nGot:\n%s", joinType, expected, got)
		}
	}
}

func TestJoin_DefaultsToInnerAndKeepsOrder(t *testing.T) {
	c := Clauses{}.
		Join("orders", "u.id = orders.user_id", "").
		Join("items", "orders.id = items.order_id", "left outer")

	expected := "INNER JOIN orders ON (u.id = orders.user_id) LEFT OUTER JOIN items ON (orders.id = items.order_id)"
	if got := c.JoinFragment(); got != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, got)
	}
}

func TestWhere_Connectives(t *testing.T) {
	tests := []struct {
		name     string
		build    func(Clauses) Clauses
		expected string
	}{
		{"single where", func(c Clauses) Clauses { return c.Where(" x = 1 ") }, "WHERE x = 1"},
		{"single orWhere", func(c Clauses) Clauses { return c.OrWhere("x = 1") }, "WHERE x = 1"},
		{"where then orWhere", func(c Clauses) Clauses { return c.Where("x = 1").OrWhere("y = 2") }, "WHERE x = 1 OR y = 2"},
		{"orWhere then where", func(c Clauses) Clauses { return c.OrWhere("x = 1").Where("y = 2") }, "WHERE x = 1 AND y = 2"},
		{
			"mixed chain",
			func(c Clauses) Clauses { return c.Where("a = 1").Where("b = 2").OrWhere("c = 3") },
			"WHERE a = 1 AND b = 2 OR c = 3",
		},
		{"literal case kept", func(c Clauses) Clauses { return c.Where("name = 'Alice'") }, "WHERE name = 'Alice'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.build(Clauses{}).WhereFragment()
			if got != tt.expected {
				t.Errorf("Expected:\n%s\nGot:\n%s", tt.expected, got)
			}
		})
	}
}

func TestClauses_AreImmutable(t *testing.T) {
	base := Clauses{}.Select("id").Where("x = 1")

	_ = base.Select("name").Join("t", "a = b", "").OrWhere("y = 2")

	if base.SelectFragment() != "id" {
		t.Errorf("Select fragment mutated: %q", base.SelectFragment())
	}
	if base.JoinFragment() != "" {
		t.Errorf("Join fragment mutated: %q", base.JoinFragment())
	}
	if base.WhereFragment() != "WHERE x = 1" {
		t.Errorf("Where fragment mutated: %q", base.WhereFragment())
	}
}

func TestDB_ChainAccumulatesPending(t *testing.T) {
	db := &DB{}

	db.Select("id").SelectMax("age", "oldest").Join("orders", "a = b", "left").Where("x = 1").OrWhere("y = 2")

	pending := db.Pending()
	if pending.SelectFragment() != "id, MAX(age) AS oldest" {
		t.Errorf("Unexpected select fragment: %q", pending.SelectFragment())
	}
	if pending.JoinFragment() != "LEFT JOIN orders ON (a = b)" {
		t.Errorf("Unexpected join fragment: %q", pending.JoinFragment())
	}
	if pending.WhereFragment() != "WHERE x = 1 OR y = 2" {
		t.Errorf("Unexpected where fragment: %q", pending.WhereFragment())
	}
}

func TestDB_TakePendingResetsAllFragments(t *testing.T) {
	db := &DB{}
	db.Select("id").Join("t", "a = b", "").Where("x = 1")

	taken := db.takePending()

	if taken.IsZero() {
		t.Error("Expected taken Clauses to carry fragments")
	}
	if !db.Pending().IsZero() {
		t.Errorf("Expected pending state reset, got %+v", db.Pending())
	}
}
