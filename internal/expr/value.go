package expr

import (
	"fmt"
	"strconv"
)

// Value is a sealed interface representing the runtime result of evaluating
// an expression against one bound row. Only Number, Text, and Bool implement
// it.
//
// Values are explicit tagged variants, never bare interface{} payloads:
// coercion rules in this package are total matches over this closed family,
// and adding a new kind forces every consumer to handle it.
type Value interface {
	value() // Sealed - only these types implement it
}

// Number is a numeric runtime value. Comparisons and arithmetic operate on
// float64 per the query language's numeric promotion rules.
type Number float64

func (Number) value() {}

// Text is a string runtime value (the lexical form of a bound literal).
type Text string

func (Text) value() {}

// Bool is a boolean runtime value.
type Bool bool

func (Bool) value() {}

// Format renders a value for error messages and plan explain output.
func Format(v Value) string {
	switch val := v.(type) {
	case Number:
		return strconv.FormatFloat(float64(val), 'g', -1, 64)
	case Text:
		return strconv.Quote(string(val))
	case Bool:
		return strconv.FormatBool(bool(val))
	default:
		return fmt.Sprintf("unknown(%T)", v)
	}
}

// Row is the opaque variable lookup supplied by the execution engine for one
// data row. Implementations must be safe for concurrent reads: many rows are
// evaluated in parallel by independent workers.
type Row interface {
	// Value returns the bound value for a variable name.
	// The second result is false when the variable is unbound in this row.
	Value(name string) (Value, bool)
}

// MapRow is a Row backed by a plain map. Convenient for tests and for
// callers that already hold bindings in a map.
type MapRow map[string]Value

// Value implements Row.
func (r MapRow) Value(name string) (Value, bool) {
	v, ok := r[name]
	return v, ok
}
