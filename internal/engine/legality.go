package engine

import "github.com/roach88/nncalc/internal/natural"

// MaxExponent is the largest power exponent or root degree the engine
// accepts. Bottom is converted to int32 before either operation.
const MaxExponent = natural.MaxInt32

var (
	two         = natural.New(2)
	maxExponent = natural.New(MaxExponent)
)

// Flags reports which of the guarded operations are currently legal.
// Add, multiply, clear, swap and enter are always legal.
type Flags struct {
	Subtract bool `json:"subtract" yaml:"subtract"`
	Divide   bool `json:"divide" yaml:"divide"`
	Power    bool `json:"power" yaml:"power"`
	Root     bool `json:"root" yaml:"root"`
}

// ComputeFlags derives the legality flags from the register values.
// It is recomputed from scratch after every mutation.
func ComputeFlags(top, bottom *natural.Natural) Flags {
	fitsExponent := bottom.Cmp(maxExponent) <= 0
	return Flags{
		Subtract: bottom.Cmp(top) <= 0,
		Divide:   !bottom.IsZero(),
		Power:    fitsExponent,
		Root:     fitsExponent && bottom.Cmp(two) >= 0,
	}
}

// Allows reports whether op is legal under f.
func (f Flags) Allows(op Op) bool {
	if !op.Guarded() {
		return true
	}
	switch op {
	case OpSubtract:
		return f.Subtract
	case OpDivide:
		return f.Divide
	case OpPower:
		return f.Power
	default:
		return f.Root
	}
}
