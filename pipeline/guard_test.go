package pipeline

import (
	"testing"

	"github.com/dcshock/conduit/conn"
)

func TestAlways(t *testing.T) {
	if !Always(conn.New(nil)) {
		t.Error("Always should be true")
	}
}

func TestNot(t *testing.T) {
	if Not(Always)(conn.New(nil)) {
		t.Error("Not(Always) should be false")
	}
}

func TestAndOr(t *testing.T) {
	c := conn.New(nil).Assign("a", 1)
	if !And(HasAssign("a"), Always)(c) {
		t.Error("And: want true")
	}
	if And(HasAssign("a"), HasAssign("b"))(c) {
		t.Error("And with missing assign: want false")
	}
	if !Or(HasAssign("b"), HasAssign("a"))(c) {
		t.Error("Or: want true")
	}
	if Or(HasAssign("b"), HasAssign("c"))(c) {
		t.Error("Or with nothing present: want false")
	}
}

func TestHasAssign(t *testing.T) {
	c := conn.New(nil)
	if HasAssign("user")(c) {
		t.Error("missing key: want false")
	}
	c.Assign("user", nil)
	if !HasAssign("user")(c) {
		t.Error("present key (even nil): want true")
	}
}

func TestAssignEquals(t *testing.T) {
	c := conn.New(nil).Assign("role", "admin")
	if !AssignEquals("role", "admin")(c) {
		t.Error("equal value: want true")
	}
	if AssignEquals("role", "guest")(c) {
		t.Error("different value: want false")
	}
	if AssignEquals("missing", "x")(c) {
		t.Error("missing key: want false")
	}
	// deep equality for composite values
	c.Assign("tags", []string{"a", "b"})
	if !AssignEquals("tags", []string{"a", "b"})(c) {
		t.Error("slice deep-equal: want true")
	}
}
