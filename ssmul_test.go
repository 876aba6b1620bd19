package ssmul

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/plouvel/ssmul/internal/fermat"
	"github.com/plouvel/ssmul/internal/karatsuba"
)

func mustMul(t *testing.T, x, y *big.Int) *big.Int {
	t.Helper()
	z, err := Mul(x, y)
	if err != nil {
		t.Fatalf("Mul(%s, %s): %v", x, y, err)
	}
	return z
}

func TestMulSmall(t *testing.T) {
	tests := []struct {
		x, y, expected int64
	}{
		{0, 0, 0},
		{0, 12345, 0},
		{1, 1, 1},
		{1, -1, -1},
		{-1, -1, 1},
		{-7, 6, -42},
		{255, 255, 65025},
		{123456789, 987654321, 121932631112635269},
	}
	for _, tc := range tests {
		if got := mustMul(t, big.NewInt(tc.x), big.NewInt(tc.y)); got.Int64() != tc.expected {
			t.Errorf("Mul(%d, %d) = %s, want %d", tc.x, tc.y, got, tc.expected)
		}
	}
}

func TestMulSigns(t *testing.T) {
	x, _ := new(big.Int).SetString("123456789123456789123456789123456789", 10)
	y, _ := new(big.Int).SetString("987654321987654321987654321", 10)
	want := new(big.Int).Mul(x, y)

	for _, sx := range []int{1, -1} {
		for _, sy := range []int{1, -1} {
			a := new(big.Int).Set(x)
			b := new(big.Int).Set(y)
			if sx < 0 {
				a.Neg(a)
			}
			if sy < 0 {
				b.Neg(b)
			}
			expected := new(big.Int).Set(want)
			if sx*sy < 0 {
				expected.Neg(expected)
			}
			if got := mustMul(t, a, b); got.Cmp(expected) != 0 {
				t.Errorf("Mul with signs (%d, %d) mismatch", sx, sy)
			}
		}
	}
}

func TestMulMatchesBig(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	sizes := [][2]int{
		{100, 100},
		{1000, 1000},
		{2000, 2000},
		{4096, 4096},
		{10000, 10000},
		{123, 17000},
		{65536, 65536},
	}
	for _, sz := range sizes {
		x := randomBits(rng, sz[0])
		y := randomBits(rng, sz[1])
		want := new(big.Int).Mul(x, y)
		if got := mustMul(t, x, y); got.Cmp(want) != 0 {
			t.Errorf("mismatch at %d x %d bits", sz[0], sz[1])
		}
	}
}

func TestMulMatchesKaratsuba(t *testing.T) {
	// Cross-check against the independent classical multiplier on a
	// 10,000-bit pair.
	rng := rand.New(rand.NewSource(5))
	x := randomBits(rng, 10000)
	y := randomBits(rng, 10000)
	want := karatsuba.Mul(x, y)
	if got := mustMul(t, x, y); got.Cmp(want) != 0 {
		t.Error("transform and classical products disagree")
	}
}

func TestMulAllOnes(t *testing.T) {
	// (2^k-1)^2 maximizes coefficient magnitudes in every ring of the
	// recursion.
	for _, bits := range []uint{1000, 5000, 16384} {
		x := new(big.Int).Lsh(big.NewInt(1), bits)
		x.Sub(x, big.NewInt(1))
		want := new(big.Int).Mul(x, x)
		if got := mustMul(t, x, x); got.Cmp(want) != 0 {
			t.Errorf("squaring mismatch at %d bits", bits)
		}
	}
}

func TestMulDoesNotMutateOperands(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	x := randomBits(rng, 3000)
	y := new(big.Int).Neg(randomBits(rng, 3000))
	xCopy := new(big.Int).Set(x)
	yCopy := new(big.Int).Set(y)
	mustMul(t, x, y)
	if x.Cmp(xCopy) != 0 || y.Cmp(yCopy) != 0 {
		t.Error("operands were mutated")
	}
}

func TestTooSmallToSplit(t *testing.T) {
	splittable := []uint{16, 32, 48, 64, 80, 128, 256, 1024}
	unsplittable := []uint{8, 12, 20, 24, 28, 40}
	for _, bits := range splittable {
		if tooSmallToSplit(bits) {
			t.Errorf("tooSmallToSplit(%d) = true", bits)
		}
		if _, err := ringForSize(bits); err != nil {
			t.Errorf("no ring for splittable size %d: %v", bits, err)
		}
	}
	for _, bits := range unsplittable {
		if !tooSmallToSplit(bits) {
			t.Errorf("tooSmallToSplit(%d) = false", bits)
		}
	}
}

func TestRecursionDepthStaysLogarithmic(t *testing.T) {
	// Walk the ring chain the engine would descend through and check it
	// shrinks strictly at every level and bottoms out in the base band
	// after a handful of steps. The capacity roughly square-roots per
	// level, so even a 2^21-bit top ring reaches the base in 4 rings.
	chains := []struct {
		top      uint
		expected []uint
	}{
		{1 << 21, []uint{4608, 160, 32, 12}},
		{1 << 15, []uint{576, 48, 20}},
		{2048, []uint{128, 24}},
	}
	for _, tc := range chains {
		bits := tc.top
		var chain []uint
		for !tooSmallToSplit(bits) {
			inner, err := ringForSize(bits)
			if err != nil {
				t.Fatalf("ringForSize(%d): %v", bits, err)
			}
			if inner.Bits() >= bits {
				t.Fatalf("chain from %d does not shrink: %d -> %d", tc.top, bits, inner.Bits())
			}
			bits = inner.Bits()
			chain = append(chain, bits)
			if len(chain) > len(tc.expected) {
				break
			}
		}
		if len(chain) != len(tc.expected) {
			t.Fatalf("chain from %d has depth %d, want %d (%v)", tc.top, len(chain), len(tc.expected), chain)
		}
		for i := range chain {
			if chain[i] != tc.expected[i] {
				t.Fatalf("chain from %d is %v, want %v", tc.top, chain, tc.expected)
			}
		}
		if !tooSmallToSplit(bits) {
			t.Fatalf("chain from %d ends at %d, outside the base band", tc.top, bits)
		}
	}
}

func TestMulModFermatWraparound(t *testing.T) {
	// In the 64-bit ring, 2^x * 2^y with x+y = 64 reduces to -1 = 2^64.
	ring := fermat.New(3, 8)
	for _, x := range []uint{1, 17, 32, 63} {
		a := new(big.Int).Lsh(big.NewInt(1), x)
		b := new(big.Int).Lsh(big.NewInt(1), 64-x)
		got, err := mulModFermat(a, b, ring)
		if err != nil {
			t.Fatalf("mulModFermat: %v", err)
		}
		if got.Cmp(ring.MinusOne()) != 0 {
			t.Errorf("2^%d * 2^%d mod 2^64+1 = %s, want %s", x, 64-x, got, ring.MinusOne())
		}
	}
}

func TestMulModFermatMinusOneOperand(t *testing.T) {
	ring := fermat.New(3, 8)
	for _, v := range []int64{0, 1, 2, 12345} {
		got, err := mulModFermat(ring.MinusOne(), big.NewInt(v), ring)
		if err != nil {
			t.Fatalf("mulModFermat: %v", err)
		}
		want := ring.Canonicalize(big.NewInt(-v))
		if got.Cmp(want) != 0 {
			t.Errorf("-1 * %d = %s, want %s", v, got, want)
		}
	}
}

func TestMulModFermatMatchesDirectReduction(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, params := range [][2]uint{{3, 8}, {4, 5}, {5, 4}} {
		ring := fermat.New(params[0], params[1])
		div := ring.Divisor()
		for round := 0; round < 10; round++ {
			a := new(big.Int).Rand(rng, div)
			b := new(big.Int).Rand(rng, div)
			got, err := mulModFermat(a, b, ring)
			if err != nil {
				t.Fatalf("mulModFermat: %v", err)
			}
			want := new(big.Int).Mul(a, b)
			want.Mod(want, div)
			if got.Cmp(want) != 0 {
				t.Fatalf("ring %d bits: %s * %s = %s, want %s", ring.Bits(), a, b, got, want)
			}
		}
	}
}

func randomBits(rng *rand.Rand, bits int) *big.Int {
	bound := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	n := new(big.Int).Rand(rng, bound)
	n.SetBit(n, bits-1, 1)
	return n
}
