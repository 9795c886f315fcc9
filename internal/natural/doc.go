// Package natural implements arbitrary-precision natural numbers.
//
// Natural wraps an apd.BigInt and exposes only the operations that keep a
// value non-negative. Methods follow the math/big convention: the receiver
// is the result, operands are never modified, and the receiver is returned
// so calls can be chained.
//
// A Natural must not be copied by value once it has been used, because the
// underlying BigInt may hold a pointer to shared storage. Use Set (or Copy)
// to duplicate a value.
package natural
