package natural

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNatural_Exp(t *testing.T) {
	tests := []struct {
		base string
		p    int32
		want string
	}{
		{"0", 0, "1"},
		{"0", 5, "0"},
		{"1", 1000, "1"},
		{"2", 10, "1024"},
		{"10", 30, "1" + strings.Repeat("0", 30)},
		{"7", 1, "7"},
		{"3", 0, "1"},
	}

	for _, tt := range tests {
		t.Run(tt.base+"^"+New(uint64(tt.p)).String(), func(t *testing.T) {
			got, err := new(Natural).Exp(MustParse(tt.base), tt.p)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestNatural_Exp_Negative(t *testing.T) {
	_, err := new(Natural).Exp(New(2), -1)
	assert.ErrorIs(t, err, ErrNegativePower)
}

func TestNatural_Root(t *testing.T) {
	tests := []struct {
		x    string
		k    int32
		want string
	}{
		{"0", 2, "0"},
		{"1", 2, "1"},
		{"3", 2, "1"},
		{"4", 2, "2"},
		{"99", 2, "9"},
		{"100", 2, "10"},
		{"26", 3, "2"},
		{"27", 3, "3"},
		{"1024", 10, "2"},
		{"1023", 10, "1"},
		{"5", MaxInt32, "1"},
		{"1" + strings.Repeat("0", 40), 2, "1" + strings.Repeat("0", 20)},
		{"1" + strings.Repeat("0", 40), 4, "1" + strings.Repeat("0", 10)},
	}

	for _, tt := range tests {
		t.Run(tt.x, func(t *testing.T) {
			got, err := new(Natural).Root(MustParse(tt.x), tt.k)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestNatural_Root_Bounds(t *testing.T) {
	// r**k <= x < (r+1)**k for a spread of values.
	for x := uint64(0); x < 300; x++ {
		for k := int32(2); k <= 5; k++ {
			r, err := new(Natural).Root(New(x), k)
			require.NoError(t, err)

			lo, err := new(Natural).Exp(r, k)
			require.NoError(t, err)
			hi, err := new(Natural).Exp(new(Natural).Add(r, New(1)), k)
			require.NoError(t, err)

			assert.LessOrEqual(t, lo.Cmp(New(x)), 0, "root(%d,%d)=%s too big", x, k, r)
			assert.Equal(t, 1, hi.Cmp(New(x)), "root(%d,%d)=%s too small", x, k, r)
		}
	}
}

func TestNatural_Root_BadDegree(t *testing.T) {
	for _, k := range []int32{-3, 0, 1} {
		_, err := new(Natural).Root(New(16), k)
		assert.ErrorIs(t, err, ErrRootDegree)
	}
}
