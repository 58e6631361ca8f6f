package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/dcshock/conduit/conn"
	"github.com/dcshock/conduit/pipeline"
)

// CompileGuard parses src as an HCL expression once and returns a guard that
// evaluates it against the connection on every invocation. In scope:
// `input`, `assigns` (objects), `status` (number), `state` (string), and
// `halted` (bool).
//
// A parse failure is a build error. An evaluation failure or a non-boolean
// result makes the guard false for that invocation: a guard must stay free
// of side effects, and skipping the stage is the benign outcome.
func CompileGuard(src string) (pipeline.Guard, error) {
	expr, diags := hclsyntax.ParseExpression([]byte(src), "guard", hcl.InitialPos)
	if diags.HasErrors() {
		return nil, fmt.Errorf("guard %q: %w", src, diags)
	}
	return func(c *conn.Conn) bool {
		val, diags := expr.Value(evalContext(c))
		if diags.HasErrors() {
			return false
		}
		if val.IsNull() || !val.IsKnown() || !val.Type().Equals(cty.Bool) {
			return false
		}
		return val.True()
	}, nil
}

// evalContext exposes the connection's runtime binding as HCL variables.
func evalContext(c *conn.Conn) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"input":   ctyObject(c.Input),
			"assigns": ctyObject(c.Assigns),
			"status":  cty.NumberIntVal(int64(c.Status())),
			"state":   cty.StringVal(c.State().String()),
			"halted":  cty.BoolVal(c.Halted()),
		},
	}
}

func ctyObject(m map[string]any) cty.Value {
	if len(m) == 0 {
		return cty.EmptyObjectVal
	}
	attrs := make(map[string]cty.Value, len(m))
	for k, v := range m {
		attrs[k] = toCty(v)
	}
	return cty.ObjectVal(attrs)
}

// toCty converts a dynamically typed assign value to cty. Values with no cty
// representation (pending async handles, arbitrary structs) become null so
// guards can still test for their presence.
func toCty(v any) cty.Value {
	switch t := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType)
	case bool:
		return cty.BoolVal(t)
	case string:
		return cty.StringVal(t)
	case int:
		return cty.NumberIntVal(int64(t))
	case int32:
		return cty.NumberIntVal(int64(t))
	case int64:
		return cty.NumberIntVal(t)
	case uint:
		return cty.NumberUIntVal(uint64(t))
	case uint64:
		return cty.NumberUIntVal(t)
	case float32:
		return cty.NumberFloatVal(float64(t))
	case float64:
		return cty.NumberFloatVal(t)
	case map[string]any:
		return ctyObject(t)
	case []any:
		if len(t) == 0 {
			return cty.EmptyTupleVal
		}
		vals := make([]cty.Value, len(t))
		for i, e := range t {
			vals[i] = toCty(e)
		}
		return cty.TupleVal(vals)
	case []string:
		if len(t) == 0 {
			return cty.EmptyTupleVal
		}
		vals := make([]cty.Value, len(t))
		for i, e := range t {
			vals[i] = cty.StringVal(e)
		}
		return cty.TupleVal(vals)
	default:
		ty, err := gocty.ImpliedType(v)
		if err != nil {
			return cty.NullVal(cty.DynamicPseudoType)
		}
		val, err := gocty.ToCtyValue(v, ty)
		if err != nil {
			return cty.NullVal(cty.DynamicPseudoType)
		}
		return val
	}
}
