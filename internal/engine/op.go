package engine

import "fmt"

// Op names an engine operation.
type Op int

const (
	// OpNone labels updates that did not come from an operation (Refresh).
	OpNone Op = iota
	OpClear
	OpSwap
	OpEnter
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpPower
	OpRoot
	// OpDigit is digit entry; it is dispatched through AppendDigit, not Apply.
	OpDigit
)

// Operations lists the nine register operations accepted by Apply, in
// display order.
var Operations = []Op{
	OpClear, OpSwap, OpEnter,
	OpAdd, OpSubtract, OpMultiply, OpDivide, OpPower, OpRoot,
}

var opNames = map[Op]string{
	OpNone:     "none",
	OpClear:    "clear",
	OpSwap:     "swap",
	OpEnter:    "enter",
	OpAdd:      "add",
	OpSubtract: "subtract",
	OpMultiply: "multiply",
	OpDivide:   "divide",
	OpPower:    "power",
	OpRoot:     "root",
	OpDigit:    "digit",
}

// String returns the lower-case operation name.
func (op Op) String() string {
	if name, ok := opNames[op]; ok {
		return name
	}
	return fmt.Sprintf("Op(%d)", int(op))
}

// MarshalText encodes op by name.
func (op Op) MarshalText() ([]byte, error) {
	return []byte(op.String()), nil
}

// UnmarshalText decodes an operation name produced by MarshalText.
func (op *Op) UnmarshalText(text []byte) error {
	parsed, ok := OpByName(string(text))
	if !ok {
		return fmt.Errorf("unknown operation %q", text)
	}
	*op = parsed
	return nil
}

// OpByName looks up an operation by its String form.
func OpByName(name string) (Op, bool) {
	for op, n := range opNames {
		if n == name {
			return op, true
		}
	}
	return OpNone, false
}

// Guarded reports whether op has a legality flag.
func (op Op) Guarded() bool {
	switch op {
	case OpSubtract, OpDivide, OpPower, OpRoot:
		return true
	}
	return false
}
