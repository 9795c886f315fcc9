package engine

import "github.com/roach88/nncalc/internal/natural"

// Registers is the engine's entire arithmetic state: the accumulator top
// and the operand under entry, bottom.
//
// Both slots always hold a valid Natural; an empty display is zero. The
// two slots never share storage. The engine changes the pair only through
// Exchange and commit, so both registers move together.
type Registers struct {
	top    *natural.Natural
	bottom *natural.Natural
}

// NewRegisters returns a pair holding (0, 0).
func NewRegisters() *Registers {
	return &Registers{
		top:    new(natural.Natural),
		bottom: new(natural.Natural),
	}
}

// Top returns a copy of the top register.
func (r *Registers) Top() *natural.Natural {
	return r.top.Copy()
}

// Bottom returns a copy of the bottom register.
func (r *Registers) Bottom() *natural.Natural {
	return r.bottom.Copy()
}

// SetTop copies n into the top register. The engine itself never calls
// the setters; they seed a pair from outside.
func (r *Registers) SetTop(n *natural.Natural) {
	r.top.Set(n)
}

// SetBottom copies n into the bottom register.
func (r *Registers) SetBottom(n *natural.Natural) {
	r.bottom.Set(n)
}

// Exchange swaps top and bottom by moving their storage.
func (r *Registers) Exchange() {
	r.top, r.bottom = r.bottom, r.top
}

// commit moves top and bottom into the pair. Callers hand over ownership
// and must not touch either value afterwards.
func (r *Registers) commit(top, bottom *natural.Natural) {
	r.top, r.bottom = top, bottom
}
