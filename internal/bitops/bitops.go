// Package bitops provides the bit-level helpers shared by the
// multiplication core: integer base-2 logarithms and the piece
// split/recombine operations on big.Int values.
package bitops

import (
	"math/big"
	"math/bits"
)

var one = big.NewInt(1)

// CeilLog2 returns ceil(log2(n)). CeilLog2(0) and CeilLog2(1) are 0.
func CeilLog2(n uint) uint {
	if n <= 1 {
		return 0
	}
	return uint(bits.Len(n - 1))
}

// FloorLog2 returns floor(log2(n)) for n > 0, and 0 for n == 0.
func FloorLog2(n uint) uint {
	if n == 0 {
		return 0
	}
	return uint(bits.Len(n)) - 1
}

// Split slices x into count pieces of width bits each, least significant
// piece first. x must be non-negative and fit in count*width bits; x is
// not modified.
func Split(x *big.Int, count, width uint) []*big.Int {
	mask := new(big.Int).Lsh(one, width)
	mask.Sub(mask, one)
	pieces := make([]*big.Int, count)
	for i := uint(0); i < count; i++ {
		piece := new(big.Int).Rsh(x, i*width)
		pieces[i] = piece.And(piece, mask)
	}
	return pieces
}

// ShiftSum evaluates sum(pieces[i] << (i*width)), the weighted
// recombination inverse to Split. Pieces may be negative.
func ShiftSum(pieces []*big.Int, width uint) *big.Int {
	z := new(big.Int)
	for i := len(pieces) - 1; i >= 0; i-- {
		z.Lsh(z, width)
		z.Add(z, pieces[i])
	}
	return z
}
