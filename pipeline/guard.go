package pipeline

import (
	"reflect"

	"github.com/dcshock/conduit/conn"
)

// Guard decides per invocation whether a stage runs. Guards must be free of
// side effects: they read the Conn and return a verdict, nothing else. A nil
// guard on a stage entry means "always run".
type Guard func(c *conn.Conn) bool

// Always is the unconditional guard. Equivalent to passing a nil guard.
func Always(*conn.Conn) bool { return true }

// Not inverts a guard.
func Not(g Guard) Guard {
	return func(c *conn.Conn) bool { return !g(c) }
}

// And returns a guard that is true when every given guard is true.
func And(guards ...Guard) Guard {
	return func(c *conn.Conn) bool {
		for _, g := range guards {
			if !g(c) {
				return false
			}
		}
		return true
	}
}

// Or returns a guard that is true when any given guard is true.
func Or(guards ...Guard) Guard {
	return func(c *conn.Conn) bool {
		for _, g := range guards {
			if g(c) {
				return true
			}
		}
		return false
	}
}

// HasAssign is true when key is present in Assigns.
func HasAssign(key string) Guard {
	return func(c *conn.Conn) bool {
		_, ok := c.Assigns[key]
		return ok
	}
}

// AssignEquals is true when Assigns[key] deep-equals want.
func AssignEquals(key string, want any) Guard {
	return func(c *conn.Conn) bool {
		got, ok := c.Assigns[key]
		return ok && reflect.DeepEqual(got, want)
	}
}
