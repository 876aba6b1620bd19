// Command generate-golden regenerates testdata/mul_golden.json, the
// reference products used by the golden-file tests. Products are
// computed with math/big only, so regeneration never depends on the
// code under test. Random operands are derived from a SHA-256 counter
// stream, making the output reproducible.
package main

import (
	"crypto/sha256"
	"encoding/json"
	"flag"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
)

// GoldenCase represents a single test case in the golden file. Values
// are lowercase hex with a leading "-" for negatives.
type GoldenCase struct {
	X       string `json:"x"`
	Y       string `json:"y"`
	Product string `json:"product"`
}

func main() {
	outputDir := flag.String("out", "testdata", "Output directory for the golden file")
	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	one := big.NewInt(1)
	pow := func(bits uint) *big.Int { return new(big.Int).Lsh(one, bits) }
	allOnes := func(bits uint) *big.Int { return new(big.Int).Sub(pow(bits), one) }

	pairs := [][2]*big.Int{
		{big.NewInt(0), big.NewInt(0)},
		{big.NewInt(0), big.NewInt(12345)},
		{big.NewInt(1), big.NewInt(-1)},
		{big.NewInt(-7), big.NewInt(6)},
		{big.NewInt(123456789), big.NewInt(987654321)},
		{pow(64), pow(64)},
		{allOnes(64), new(big.Int).Add(pow(64), one)},
		{pseudorandomInt("a1000", 1000), pseudorandomInt("b1000", 1000)},
		{pseudorandomInt("a4096", 4096), pseudorandomInt("b4096", 4096)},
		{pseudorandomInt("a10000", 10000), pseudorandomInt("b10000", 10000)},
		{pseudorandomInt("a20000", 20000), pseudorandomInt("b20000", 20000)},
		{new(big.Int).Neg(allOnes(5000)), allOnes(5000)},
		{pseudorandomInt("x123", 123), pseudorandomInt("y17000", 17000)},
	}

	cases := make([]GoldenCase, 0, len(pairs))
	for _, p := range pairs {
		cases = append(cases, GoldenCase{
			X:       p[0].Text(16),
			Y:       p[1].Text(16),
			Product: new(big.Int).Mul(p[0], p[1]).Text(16),
		})
	}

	data, err := json.MarshalIndent(cases, "", " ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding golden data: %v\n", err)
		os.Exit(1)
	}
	data = append(data, '\n')

	filename := filepath.Join(*outputDir, "mul_golden.json")
	if err := os.WriteFile(filename, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing golden file: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d cases to %s\n", len(cases), filename)
}

// pseudorandomInt derives a deterministic positive integer of exactly
// bits bits from a labeled SHA-256 counter stream.
func pseudorandomInt(label string, bits uint) *big.Int {
	var stream []byte
	for counter := 0; uint(len(stream))*8 < bits; counter++ {
		sum := sha256.Sum256(fmt.Appendf(nil, "%s:%d", label, counter))
		stream = append(stream, sum[:]...)
	}
	n := new(big.Int).SetBytes(stream)
	n.Rsh(n, uint(len(stream))*8-bits)
	n.SetBit(n, int(bits)-1, 1)
	return n
}
