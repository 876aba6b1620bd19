// Package fermat implements arithmetic modulo 2^n+1 and the negacyclic
// convolution the multiplication core runs over it.
//
// A Ring is an immutable descriptor built from two small integers (s, p):
// the modulus exponent is n = p<<s, and the ring admits transforms of
// length 2^(s+1) rooted at θ = sqrt2^p, where sqrt2 = 2^(3n/4) - 2^(n/4)
// is a square root of 2 modulo 2^n+1. Elements are big.Int values in the
// canonical range [0, 2^n]; every operation returns a fresh value and
// never mutates its arguments.
package fermat

import "math/big"

var one = big.NewInt(1)

// Ring describes arithmetic modulo 2^(p<<s) + 1.
type Ring struct {
	s, p uint
}

// New returns the ring descriptor for the parameters (s, p).
func New(s, p uint) Ring {
	return Ring{s: s, p: p}
}

// Bits returns the modulus exponent n.
func (r Ring) Bits() uint {
	return r.p << r.s
}

// RootOrder returns the convolution length the ring's principal root
// supports, and therefore the number of pieces a value splits into.
func (r Ring) RootOrder() uint {
	return 1 << (r.s + 1)
}

// RootExponent returns the exponent governing per-piece bit allocation:
// splitting an m-bit capacity over this ring yields pieces of
// m >> (RootExponent()+1) bits.
func (r Ring) RootExponent() uint {
	return r.s
}

// Divisor returns the modulus 2^n+1.
func (r Ring) Divisor() *big.Int {
	d := new(big.Int).Lsh(one, r.Bits())
	return d.Add(d, one)
}

// MinusOne returns 2^n, the canonical representative of -1. It is the
// only element whose bit length exceeds n.
func (r Ring) MinusOne() *big.Int {
	return new(big.Int).Lsh(one, r.Bits())
}

// Canonicalize reduces x into the representative range [0, 2^n]. It is
// idempotent and accepts negative values.
func (r Ring) Canonicalize(x *big.Int) *big.Int {
	return new(big.Int).Mod(x, r.Divisor())
}
