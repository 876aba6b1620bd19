// Package karatsuba provides a classical sub-quadratic multiplier over
// machine-word slices. The multiplication core uses it below the
// transform threshold, and the tests use it as an independent
// cross-check for transform products.
package karatsuba

import (
	"math/big"
	"math/bits"
)

// nat is a little-endian word slice, the layout big.Int exposes through
// Bits.
type nat []big.Word

// threshold is the size in words below which schoolbook multiplication
// beats the splitting overhead.
const threshold = 32

// Mul computes x*y and returns a fresh big.Int. Signs are handled; the
// arguments are never modified.
func Mul(x, y *big.Int) *big.Int {
	if x.Sign() == 0 || y.Sign() == 0 {
		return new(big.Int)
	}
	z := new(big.Int).SetBits(karatsuba(x.Bits(), y.Bits()))
	if x.Sign() != y.Sign() {
		z.Neg(z)
	}
	return z
}

// karatsuba multiplies two magnitudes:
//
//	z0 = x0*y0, z2 = x1*y1, z1 = (x0+x1)*(y0+y1) - z0 - z2
//	x*y = z0 + z1<<k + z2<<2k
func karatsuba(x, y nat) nat {
	n, m := len(x), len(y)
	if n < m {
		x, y = y, x
		n, m = m, n
	}
	if m == 0 {
		return nil
	}
	if n <= threshold {
		return mulBasic(x, y)
	}
	if n > 2*m {
		return mulUneven(x, y)
	}

	k := n / 2
	x0, x1 := x[:k], x[k:]
	y0, y1 := y, nat(nil)
	if len(y) > k {
		y0, y1 = y[:k], y[k:]
	}

	z0 := karatsuba(x0, y0)
	z2 := karatsuba(x1, y1)
	z1 := karatsuba(add(x0, x1), add(y0, y1))
	z1 = sub(z1, z0)
	z1 = sub(z1, z2)

	return assemble(z0, z1, z2, k)
}

// mulBasic is the schoolbook product for small inputs.
func mulBasic(x, y nat) nat {
	z := make(nat, len(x)+len(y))
	for i, d := range y {
		if d != 0 {
			z[len(x)+i] = addMulWord(z[i:i+len(x)], x, d)
		}
	}
	return trim(z)
}

// mulUneven splits the larger operand into chunks the size of the
// smaller one, so the symmetric splitting above stays balanced.
func mulUneven(x, y nat) nat {
	m := len(y)
	z := make(nat, len(x)+m)
	for i := 0; i < len(x); i += m {
		end := min(i+m, len(x))
		addAt(z, karatsuba(x[i:end], y), i)
	}
	return trim(z)
}

// addMulWord adds x*d to z in place and returns the carry word.
func addMulWord(z, x nat, d big.Word) big.Word {
	var carry big.Word
	for i := range z {
		hi, lo := bits.Mul(uint(x[i]), uint(d))
		lo, c := bits.Add(lo, uint(z[i]), 0)
		hi += c
		lo, c = bits.Add(lo, uint(carry), 0)
		hi += c
		z[i] = big.Word(lo)
		carry = big.Word(hi)
	}
	return carry
}

func add(x, y nat) nat {
	if len(x) < len(y) {
		x, y = y, x
	}
	if len(y) == 0 {
		return x
	}
	z := make(nat, len(x)+1)
	var c uint
	for i := range y {
		zi, cc := bits.Add(uint(x[i]), uint(y[i]), c)
		z[i], c = big.Word(zi), cc
	}
	for i := len(y); i < len(x); i++ {
		zi, cc := bits.Add(uint(x[i]), 0, c)
		z[i], c = big.Word(zi), cc
	}
	z[len(x)] = big.Word(c)
	return trim(z)
}

// sub assumes x >= y, which always holds for the middle Karatsuba term.
func sub(x, y nat) nat {
	z := make(nat, len(x))
	var b uint
	for i := range y {
		zi, bb := bits.Sub(uint(x[i]), uint(y[i]), b)
		z[i], b = big.Word(zi), bb
	}
	for i := len(y); i < len(x); i++ {
		zi, bb := bits.Sub(uint(x[i]), 0, b)
		z[i], b = big.Word(zi), bb
	}
	if b != 0 {
		panic("karatsuba: subtraction underflow")
	}
	return trim(z)
}

// addAt adds x to z starting at word offset shift, propagating the carry
// through the rest of z.
func addAt(z, x nat, shift int) {
	if len(x) == 0 {
		return
	}
	var c uint
	for i := range x {
		zi, cc := bits.Add(uint(z[shift+i]), uint(x[i]), c)
		z[shift+i], c = big.Word(zi), cc
	}
	for i := shift + len(x); c != 0 && i < len(z); i++ {
		zi, cc := bits.Add(uint(z[i]), 0, c)
		z[i], c = big.Word(zi), cc
	}
}

// assemble evaluates z0 + z1<<k + z2<<2k (word shifts).
func assemble(z0, z1, z2 nat, k int) nat {
	size := len(z2) + 2*k
	if s := len(z1) + k; s > size {
		size = s
	}
	if s := len(z0); s > size {
		size = s
	}
	z := make(nat, size+1)
	copy(z, z0)
	addAt(z, z1, k)
	addAt(z, z2, 2*k)
	return trim(z)
}

func trim(z nat) nat {
	for i := len(z); i > 0; i-- {
		if z[i-1] != 0 {
			return z[:i]
		}
	}
	return nil
}
