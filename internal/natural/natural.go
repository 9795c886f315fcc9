package natural

import (
	"errors"
	"fmt"
	"math"

	"github.com/cockroachdb/apd/v3"
)

// Errors returned by Natural operations.
var (
	ErrUnderflow      = errors.New("natural: subtraction would be negative")
	ErrDivisionByZero = errors.New("natural: division by zero")
	ErrInvalidDigit   = errors.New("natural: digit out of range [0, 9]")
	ErrRootDegree     = errors.New("natural: root degree must be at least 2")
	ErrNegativePower  = errors.New("natural: negative exponent")
	ErrSyntax         = errors.New("natural: invalid decimal syntax")
)

// MaxInt32 is the largest value Int32 converts successfully.
const MaxInt32 = math.MaxInt32

var (
	bigTen = apd.NewBigInt(10)
	bigOne = apd.NewBigInt(1)
)

// Natural is a non-negative integer of unbounded magnitude.
// The zero value is 0 and ready to use.
type Natural struct {
	v apd.BigInt
}

// New returns a Natural holding n.
func New(n uint64) *Natural {
	z := &Natural{}
	z.v.SetUint64(n)
	return z
}

// Parse reads a decimal string made only of ASCII digits.
// Signs, spaces and an empty string are rejected.
func Parse(s string) (*Natural, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: empty string", ErrSyntax)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return nil, fmt.Errorf("%w: %q", ErrSyntax, s)
		}
	}
	z := &Natural{}
	if _, ok := z.v.SetString(s, 10); !ok {
		return nil, fmt.Errorf("%w: %q", ErrSyntax, s)
	}
	return z, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// package-level constants.
func MustParse(s string) *Natural {
	z, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return z
}

// String returns the decimal representation, "0" for zero.
func (z *Natural) String() string {
	return z.v.String()
}

// Copy returns a new Natural with the same value and independent storage.
func (z *Natural) Copy() *Natural {
	return new(Natural).Set(z)
}

// Set sets z to x and returns z. Storage is copied, never shared.
func (z *Natural) Set(x *Natural) *Natural {
	if z != x {
		z.v.Set(&x.v)
	}
	return z
}

// Clear sets z to 0.
func (z *Natural) Clear() *Natural {
	z.v.SetInt64(0)
	return z
}

// IsZero reports whether z == 0.
func (z *Natural) IsZero() bool {
	return z.v.Sign() == 0
}

// Cmp compares z and x and returns -1, 0 or +1.
func (z *Natural) Cmp(x *Natural) int {
	return z.v.Cmp(&x.v)
}

// Digits returns the number of decimal digits of z (1 for zero).
func (z *Natural) Digits() int {
	return len(z.v.String())
}

// Int32 converts z to an int32. ok is false when z > MaxInt32.
func (z *Natural) Int32() (n int32, ok bool) {
	if !z.v.IsInt64() {
		return 0, false
	}
	i := z.v.Int64()
	if i > MaxInt32 {
		return 0, false
	}
	return int32(i), true
}

// Add sets z to x + y.
func (z *Natural) Add(x, y *Natural) *Natural {
	z.v.Add(&x.v, &y.v)
	return z
}

// Sub sets z to x - y. It fails with ErrUnderflow, leaving z unchanged,
// when y > x.
func (z *Natural) Sub(x, y *Natural) (*Natural, error) {
	if x.Cmp(y) < 0 {
		return z, ErrUnderflow
	}
	z.v.Sub(&x.v, &y.v)
	return z, nil
}

// Mul sets z to x * y.
func (z *Natural) Mul(x, y *Natural) *Natural {
	z.v.Mul(&x.v, &y.v)
	return z
}

// QuoRem sets z to x / y and r to x mod y. It fails with ErrDivisionByZero,
// leaving z and r unchanged, when y == 0. z and r must be distinct.
func (z *Natural) QuoRem(x, y, r *Natural) (*Natural, *Natural, error) {
	if y.IsZero() {
		return z, r, ErrDivisionByZero
	}
	z.v.QuoRem(&x.v, &y.v, &r.v)
	return z, r, nil
}

// AppendDigit sets z to z*10 + d.
func (z *Natural) AppendDigit(d int) error {
	if d < 0 || d > 9 {
		return fmt.Errorf("%w: %d", ErrInvalidDigit, d)
	}
	var t apd.BigInt
	t.Mul(&z.v, bigTen)
	z.v.Add(&t, apd.NewBigInt(int64(d)))
	return nil
}
