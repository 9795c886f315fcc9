package natural

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"
)

// Exp sets z to x**p. 0**0 is 1. It fails with ErrNegativePower when p < 0.
func (z *Natural) Exp(x *Natural, p int32) (*Natural, error) {
	if p < 0 {
		return z, fmt.Errorf("%w: %d", ErrNegativePower, p)
	}
	var result, base apd.BigInt
	result.Set(bigOne)
	base.Set(&x.v)
	expBig(&result, &base, uint32(p))
	z.v.Set(&result)
	return z, nil
}

// expBig multiplies result by base**p using square-and-multiply.
// base is clobbered.
func expBig(result, base *apd.BigInt, p uint32) {
	var t apd.BigInt
	for p > 0 {
		if p&1 == 1 {
			t.Mul(result, base)
			result.Set(&t)
		}
		p >>= 1
		if p > 0 {
			t.Mul(base, base)
			base.Set(&t)
		}
	}
}

// Root sets z to the floor of the k-th root of x. It fails with
// ErrRootDegree when k < 2.
func (z *Natural) Root(x *Natural, k int32) (*Natural, error) {
	if k < 2 {
		return z, fmt.Errorf("%w: %d", ErrRootDegree, k)
	}
	if x.IsZero() {
		return z.Clear(), nil
	}

	// x < 2**n, so any k >= n gives a root in [1, 2).
	n := x.v.BitLen()
	if int(k) >= n {
		z.v.Set(bigOne)
		return z, nil
	}

	// Bisect on lo**k <= x < hi**k, starting from hi = 2**ceil(n/k).
	shift := (n + int(k) - 1) / int(k)
	var lo, hi, mid, sum, pow, base apd.BigInt
	lo.Set(bigOne)
	hi.Lsh(bigOne, uint(shift))
	for {
		sum.Sub(&hi, &lo)
		if sum.Cmp(bigOne) <= 0 {
			break
		}
		sum.Add(&lo, &hi)
		mid.Rsh(&sum, 1)

		pow.Set(bigOne)
		base.Set(&mid)
		expBig(&pow, &base, uint32(k))
		if pow.Cmp(&x.v) <= 0 {
			lo.Set(&mid)
		} else {
			hi.Set(&mid)
		}
	}
	z.v.Set(&lo)
	return z, nil
}
