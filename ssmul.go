// Package ssmul implements multiplication of big.Int using the
// Schönhage-Strassen method: the operands are multiplied modulo a Fermat
// number 2^n+1 large enough to hold the exact product, and multiplication
// in that ring is computed by splitting into pieces, convolving the pieces
// with a number-theoretic transform, and recombining with carry recovery.
package ssmul

import (
	"math/big"

	"github.com/plouvel/ssmul/internal/bitops"
	"github.com/plouvel/ssmul/internal/fermat"
	"github.com/plouvel/ssmul/internal/karatsuba"
)

// Mul computes the exact product x*y. It can be used instead of the Mul
// method of *big.Int from the math/big package.
//
// The only error it can return is *NoSuitableRingError, and reaching it
// means the ring sizing invariant is broken; callers should treat it as
// fatal rather than retry.
func Mul(x, y *big.Int) (*big.Int, error) {
	if x.Sign() < 0 {
		z, err := Mul(new(big.Int).Neg(x), y)
		if err != nil {
			return nil, err
		}
		return z.Neg(z), nil
	}
	if y.Sign() < 0 {
		z, err := Mul(x, new(big.Int).Neg(y))
		if err != nil {
			return nil, err
		}
		return z.Neg(z), nil
	}
	// 2^ceilLog2(n) >= bitlen(x)+bitlen(y), so the product never wraps
	// in the top-level ring and reduces to itself.
	n := 2 * max(uint(x.BitLen()), uint(y.BitLen()))
	return mulModFermat(x, y, fermat.New(bitops.CeilLog2(n), 1))
}

// tooSmallToSplit reports the ring sizes for which splitting cannot produce
// strictly smaller sub-multiplications, so the classical multiplier is used
// directly. 16-bit rings do split (into 12-bit ones); 40-bit rings do not.
func tooSmallToSplit(bits uint) bool {
	return (bits < 32 && bits != 16) || bits == 40
}

// mulModFermat returns canonicalize(a*b) in the given ring.
//
// Operands are canonicalized on entry, so a and b may be any integers;
// the interesting callers are Mul (top level, where the reduction is a
// no-op) and the pointwise multiplier handed to Convolve (where genuine
// modular wraparound happens).
func mulModFermat(a, b *big.Int, ring fermat.Ring) (*big.Int, error) {
	a = ring.Canonicalize(a)
	b = ring.Canonicalize(b)

	if tooSmallToSplit(ring.Bits()) {
		return ring.Canonicalize(karatsuba.Mul(a, b)), nil
	}

	// 2^n is a valid ring element (it is -1), but its canonical form
	// needs n+1 bits and cannot round-trip through splitting. Multiply
	// by -1 directly instead.
	if a.Cmp(ring.MinusOne()) == 0 {
		return ring.Canonicalize(new(big.Int).Neg(b)), nil
	}
	if b.Cmp(ring.MinusOne()) == 0 {
		return ring.Canonicalize(new(big.Int).Neg(a)), nil
	}

	inner, err := ringForSize(ring.Bits())
	if err != nil {
		return nil, err
	}
	count := inner.RootOrder()
	width := ring.Bits() >> (inner.RootExponent() + 1)

	piecesA := bitops.Split(a, count, width)
	piecesB := bitops.Split(b, count, width)

	piecesC, err := inner.Convolve(piecesA, piecesB, func(x, y *big.Int) (*big.Int, error) {
		return mulModFermat(x, y, inner)
	})
	if err != nil {
		return nil, err
	}

	// The convolution returns canonical residues, but the true negacyclic
	// coefficients are signed: a residue whose bit length reaches the
	// inner capacity is a wrapped negative coefficient. Restore it before
	// recombining. (The >= also covers the residue 2^bits of a true -1,
	// which occupies bits+1 bits.)
	divisor := inner.Divisor()
	for i, c := range piecesC {
		if uint(c.BitLen()) >= inner.Bits() {
			piecesC[i] = new(big.Int).Sub(c, divisor)
		}
	}

	return ring.Canonicalize(bitops.ShiftSum(piecesC, width)), nil
}
