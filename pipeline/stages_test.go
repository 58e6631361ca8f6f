package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/dcshock/conduit/conn"
)

func TestIdentity(t *testing.T) {
	ctx := context.Background()
	c := conn.New(nil)
	out, err := Identity()(ctx, c, nil)
	if err != nil {
		t.Fatal(err)
	}
	if out != c {
		t.Error("identity should return the same conn")
	}
}

func TestTap_SideEffectOnly(t *testing.T) {
	ctx := context.Background()
	called := false
	stage := Tap(func(ctx context.Context, c *conn.Conn) { called = true })
	c := conn.New(nil)
	out, err := stage(ctx, c, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !called {
		t.Error("tap fn not called")
	}
	if out != c {
		t.Error("tap should pass the conn through")
	}
}

func TestPut(t *testing.T) {
	ctx := context.Background()
	out, err := Put("env", "prod")(ctx, conn.New(nil), nil)
	if err != nil {
		t.Fatal(err)
	}
	if out.Assigns["env"] != "prod" {
		t.Errorf("assigns[env]: got %v", out.Assigns["env"])
	}
}

func TestRespond_SetsOutputWithoutHalting(t *testing.T) {
	ctx := context.Background()
	out, err := Respond("ok", "done")(ctx, conn.New(nil), nil)
	if err != nil {
		t.Fatal(err)
	}
	if out.State() != conn.StateSet || out.Status() != 200 || out.Output() != "done" {
		t.Errorf("conn: %v %d %v", out.State(), out.Status(), out.Output())
	}
	if out.Halted() {
		t.Error("respond must not halt")
	}
}

func TestHaltWith(t *testing.T) {
	ctx := context.Background()
	out, err := HaltWith("unauthorized", "token required")(ctx, conn.New(nil), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !out.Halted() {
		t.Error("conn should be halted")
	}
	if out.Status() != 401 || out.State() != conn.StateSet {
		t.Errorf("status/state: %d/%v", out.Status(), out.State())
	}
}

func TestHaltWith_AfterSentFails(t *testing.T) {
	ctx := context.Background()
	c := conn.New(nil)
	if err := c.SendOutput("ok", "done"); err != nil {
		t.Fatal(err)
	}
	if _, err := HaltWith("forbidden", "late")(ctx, c, nil); err == nil {
		t.Error("halting with output after sent should fail")
	}
}

func TestRequire_AllPresent(t *testing.T) {
	ctx := context.Background()
	c := conn.New(map[string]any{"id": 1, "name": "x"})
	out, err := Require("id", "name")(ctx, c, nil)
	if err != nil {
		t.Fatal(err)
	}
	if out.Halted() {
		t.Error("conn should pass through when all keys are present")
	}
}

func TestRequire_MissingKeyHalts(t *testing.T) {
	ctx := context.Background()
	out, err := Require("token")(ctx, conn.New(nil), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !out.Halted() {
		t.Fatal("conn should be halted")
	}
	if out.Status() != 400 {
		t.Errorf("status: got %d, want 400", out.Status())
	}
	msg, _ := out.Output().(string)
	if !strings.Contains(msg, "token") {
		t.Errorf("output should name the missing key: %v", out.Output())
	}
}
