package ssmul

import (
	"fmt"

	"github.com/plouvel/ssmul/internal/bitops"
	"github.com/plouvel/ssmul/internal/fermat"
)

// NoSuitableRingError reports that no Fermat ring can carry a negacyclic
// convolution for the requested combined bit size. For rings produced by
// the recursion in this package it is unreachable; seeing it means a
// caller asked to split a size outside the algorithm's sizing invariant.
type NoSuitableRingError struct {
	BitSize uint
}

func (e *NoSuitableRingError) Error() string {
	return fmt.Sprintf("ssmul: no suitable ring for a %d-bit convolution", e.BitSize)
}

// ringForSize returns the smallest ring over which a negacyclic convolution
// can carry-preservingly represent values of the given combined bit size.
//
// Candidates are swept over the shift parameter s (descending from
// ceilLog2(bitSize)) and a secondary parameter p in [max(2,s), 4s]; the
// four predicates below gate each candidate and the smallest capacity wins,
// ties keeping the first found.
func ringForSize(bitSize uint) (fermat.Ring, error) {
	var best fermat.Ring
	found := false
	for s := bitops.CeilLog2(bitSize); s >= 1; s-- {
		for p := max(2, s); p <= 4*s; p++ {
			r := fermat.New(s, p-1)
			if !isSmaller(r, bitSize) || !isEven(bitSize, s) ||
				!hasRoom(r, bitSize, s) || !canDoSqrt2(s, p) {
				continue
			}
			if !found || r.Bits() < best.Bits() {
				best = r
				found = true
			}
		}
	}
	if !found {
		return fermat.Ring{}, &NoSuitableRingError{BitSize: bitSize}
	}
	return best, nil
}

// isSmaller: the piece ring must be strictly smaller than the size being
// split, or the recursion would not shrink.
func isSmaller(r fermat.Ring, bitSize uint) bool {
	return r.Bits() < bitSize
}

// isEven: the size being split must align pieces on power-of-two
// boundaries; 2^(s+2) keeps the per-piece width itself even, which the
// half-bit shifts of the transform rely on.
func isEven(bitSize, s uint) bool {
	return bitSize%(1<<(s+2)) == 0
}

// hasRoom: a negacyclic coefficient is a signed sum of up to 2^(s+1)
// piece products, so the candidate ring must hold twice the piece width
// plus s+1 carry bits plus one guard bit that keeps the sign of the
// wrapped residue recoverable.
func hasRoom(r fermat.Ring, bitSize, s uint) bool {
	n := r.RootOrder()
	perPiece := (bitSize + n - 1) / n
	return r.Bits() >= perPiece*2+s+2
}

// canDoSqrt2: the transform root of a candidate Ring(s, p-1) is
// sqrt2^(p-1), and the half-bit shift realizing sqrt2 needs a capacity
// divisible by 4, which rules out s < 2. At s == 2 only even p (an odd
// root exponent, the case that genuinely uses sqrt2) is accepted.
func canDoSqrt2(s, p uint) bool {
	return s >= 3 || (s == 2 && p%2 == 0)
}
