package config

import (
	"testing"

	"github.com/dcshock/conduit/conn"
)

func TestCompileGuard_AssignComparison(t *testing.T) {
	g, err := CompileGuard(`assigns.role == "admin"`)
	if err != nil {
		t.Fatal(err)
	}
	if !g(conn.New(nil).Assign("role", "admin")) {
		t.Error("admin: want true")
	}
	if g(conn.New(nil).Assign("role", "guest")) {
		t.Error("guest: want false")
	}
}

func TestCompileGuard_MissingAttributeIsFalse(t *testing.T) {
	g, err := CompileGuard(`assigns.role == "admin"`)
	if err != nil {
		t.Fatal(err)
	}
	if g(conn.New(nil)) {
		t.Error("missing assign should evaluate false, not error")
	}
}

func TestCompileGuard_InputAndStatusBindings(t *testing.T) {
	g, err := CompileGuard(`input.kind == "report" && status == 0`)
	if err != nil {
		t.Fatal(err)
	}
	if !g(conn.New(map[string]any{"kind": "report"})) {
		t.Error("want true")
	}
	c := conn.New(map[string]any{"kind": "report"})
	if err := c.PutStatus(200); err != nil {
		t.Fatal(err)
	}
	if g(c) {
		t.Error("status != 0: want false")
	}
}

func TestCompileGuard_StateAndHaltedBindings(t *testing.T) {
	g, err := CompileGuard(`state == "set" && !halted`)
	if err != nil {
		t.Fatal(err)
	}
	c := conn.New(nil)
	if g(c) {
		t.Error("unset conn: want false")
	}
	if err := c.SetOutput("ok", "x"); err != nil {
		t.Fatal(err)
	}
	if !g(c) {
		t.Error("set, not halted: want true")
	}
	c.Halt()
	if g(c) {
		t.Error("halted: want false")
	}
}

func TestCompileGuard_NumericAndBoolLogic(t *testing.T) {
	g, err := CompileGuard(`assigns.attempts < 3 || assigns.force`)
	if err != nil {
		t.Fatal(err)
	}
	if !g(conn.New(nil).Assign("attempts", 1).Assign("force", false)) {
		t.Error("attempts 1: want true")
	}
	if g(conn.New(nil).Assign("attempts", 5).Assign("force", false)) {
		t.Error("attempts 5: want false")
	}
	if !g(conn.New(nil).Assign("attempts", 5).Assign("force", true)) {
		t.Error("forced: want true")
	}
}

func TestCompileGuard_NonBooleanResultIsFalse(t *testing.T) {
	g, err := CompileGuard(`assigns.role`)
	if err != nil {
		t.Fatal(err)
	}
	if g(conn.New(nil).Assign("role", "admin")) {
		t.Error("string result should count as false")
	}
	// but a real bool assign works
	if !g(conn.New(nil).Assign("role", true)) {
		t.Error("bool assign: want true")
	}
}

func TestCompileGuard_ParseError(t *testing.T) {
	if _, err := CompileGuard(`assigns.role ==`); err == nil {
		t.Error("expected parse error")
	}
}

func TestCompileGuard_UnrepresentableValueIsNull(t *testing.T) {
	g, err := CompileGuard(`assigns.handle == null`)
	if err != nil {
		t.Fatal(err)
	}
	type opaque struct{ ch chan int }
	if !g(conn.New(nil).Assign("handle", opaque{})) {
		t.Error("unrepresentable value should read as null")
	}
}

func TestCompileGuard_NestedMapsAndLists(t *testing.T) {
	g, err := CompileGuard(`assigns.user.plan == "pro" && assigns.tags[0] == "beta"`)
	if err != nil {
		t.Fatal(err)
	}
	c := conn.New(nil).
		Assign("user", map[string]any{"plan": "pro"}).
		Assign("tags", []string{"beta", "internal"})
	if !g(c) {
		t.Error("nested bindings: want true")
	}
}
