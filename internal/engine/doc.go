// Package engine implements the calculator engine: a pair of natural-number
// registers, the operations that transform them, and the legality policy
// that decides which guarded operations are currently allowed.
//
// ARCHITECTURE:
//
// Registers:
// The engine owns exactly two registers, top (the accumulator) and bottom
// (the operand under entry). Both always hold a valid natural number.
//
// Operation Flow:
//  1. Caller invokes an operation (Apply, AppendDigit or a named method)
//  2. The operation is validated against the current registers
//  3. The new register pair is computed on scratch values
//  4. Both registers are committed together
//  5. Flags are recomputed from scratch and one Update is pushed to the Display
//
// Binary operations consume top as the left operand and leave the result in
// bottom with top cleared, so results chain like a postfix calculator.
// Divide is the exception: the remainder is left in top.
//
// Validation happens before mutation. A refused operation returns an *Error
// and pushes nothing.
//
// Updates are stamped with a logical sequence number from Clock. Replaying
// the same operations on a fresh engine yields identical updates.
package engine
