package bitops

import (
	"math/big"
	"testing"
)

func TestCeilLog2(t *testing.T) {
	tests := []struct {
		n        uint
		expected uint
	}{
		{0, 0},
		{1, 0},
		{2, 1},
		{3, 2},
		{4, 2},
		{5, 3},
		{8, 3},
		{9, 4},
		{1024, 10},
		{1025, 11},
	}
	for _, tc := range tests {
		if got := CeilLog2(tc.n); got != tc.expected {
			t.Errorf("CeilLog2(%d) = %d, want %d", tc.n, got, tc.expected)
		}
	}
}

func TestFloorLog2(t *testing.T) {
	tests := []struct {
		n        uint
		expected uint
	}{
		{0, 0},
		{1, 0},
		{2, 1},
		{3, 1},
		{4, 2},
		{7, 2},
		{8, 3},
		{1024, 10},
		{1025, 10},
	}
	for _, tc := range tests {
		if got := FloorLog2(tc.n); got != tc.expected {
			t.Errorf("FloorLog2(%d) = %d, want %d", tc.n, got, tc.expected)
		}
	}
}

func TestSplitShiftSumRoundTrip(t *testing.T) {
	tests := []struct {
		x            string
		count, width uint
	}{
		{"0", 4, 8},
		{"255", 4, 8},
		{"deadbeefcafebabe", 8, 8},
		{"123456789abcdef0123456789abcdef", 16, 8},
	}
	for _, tc := range tests {
		x, ok := new(big.Int).SetString(tc.x, 16)
		if !ok {
			x, _ = new(big.Int).SetString(tc.x, 10)
		}
		pieces := Split(x, tc.count, tc.width)
		if uint(len(pieces)) != tc.count {
			t.Fatalf("Split returned %d pieces, want %d", len(pieces), tc.count)
		}
		for i, p := range pieces {
			if p.Sign() < 0 || uint(p.BitLen()) > tc.width {
				t.Errorf("piece %d out of range: %s", i, p)
			}
		}
		if got := ShiftSum(pieces, tc.width); got.Cmp(x) != 0 {
			t.Errorf("round trip of %s gave %s", x, got)
		}
	}
}

func TestSplitOrder(t *testing.T) {
	// 0x0302 splits little-endian: pieces[0] is the low byte.
	pieces := Split(big.NewInt(0x0302), 2, 8)
	if pieces[0].Int64() != 2 || pieces[1].Int64() != 3 {
		t.Errorf("got pieces %v, %v", pieces[0], pieces[1])
	}
}

func TestShiftSumNegativePieces(t *testing.T) {
	// 1 - 2*2^8 + 2^16 = 65025
	pieces := []*big.Int{big.NewInt(1), big.NewInt(-2), big.NewInt(1)}
	if got := ShiftSum(pieces, 8); got.Int64() != 65025 {
		t.Errorf("got %s, want 65025", got)
	}
}
