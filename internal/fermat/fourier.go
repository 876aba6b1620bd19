package fermat

import (
	"math/big"

	"github.com/plouvel/ssmul/internal/bitops"
)

// PointwiseMul multiplies two transformed coefficients. The core passes
// its recursive ring multiplier here; tests pass a plain modular product.
type PointwiseMul func(x, y *big.Int) (*big.Int, error)

// Convolve computes the negacyclic convolution of xs and ys: the product
// of the two sequences read as polynomials, reduced modulo X^K+1, with
// coefficient arithmetic in the ring. Both inputs must have length
// K = RootOrder() and hold canonical elements; the result has the same
// length and is canonical. Order is significant and preserved.
//
// The X^K+1 reduction is obtained by twisting the inputs by powers of
// θ = sqrt2^p before an ordinary length-K transform, and untwisting after
// the inverse transform; the pointwise products in between are delegated
// to mul. Only the twist steps use genuine half-bit shifts: the transform
// butterflies always see even sqrt2 exponents.
func (r Ring) Convolve(xs, ys []*big.Int, mul PointwiseMul) ([]*big.Int, error) {
	order := r.RootOrder()
	if uint(len(xs)) != order || uint(len(ys)) != order {
		panic("fermat: convolution length does not match the ring's root order")
	}
	k := bitops.FloorLog2(order)
	t := &transformer{ring: r, bits: int(r.Bits()), div: r.Divisor()}

	// θ in sqrt2 units: θ^order = sqrt2^(2n) = -1.
	θshift := (2 * t.bits) >> k

	twistedX := make([]*big.Int, order)
	twistedY := make([]*big.Int, order)
	for i := range twistedX {
		twistedX[i] = t.shiftHalf(xs[i], i*θshift)
		twistedY[i] = t.shiftHalf(ys[i], i*θshift)
	}

	valuesX := make([]*big.Int, order)
	valuesY := make([]*big.Int, order)
	t.fourier(valuesX, twistedX, false, k, k)
	t.fourier(valuesY, twistedY, false, k, k)

	valuesZ := make([]*big.Int, order)
	for i := range valuesZ {
		z, err := mul(valuesX[i], valuesY[i])
		if err != nil {
			return nil, err
		}
		valuesZ[i] = z
	}

	raw := make([]*big.Int, order)
	t.fourier(raw, valuesZ, true, k, k)

	// Divide by K (shift by -k bits, i.e. -2k half-bits) and untwist.
	out := make([]*big.Int, order)
	for i := range out {
		out[i] = t.shiftHalf(raw[i], -(i*θshift + 2*int(k)))
	}
	return out, nil
}

// transformer carries the per-convolution state: the ring, its modulus,
// and the capacity in bits.
type transformer struct {
	ring Ring
	bits int
	div  *big.Int
}

// fourier evaluates src at the powers of the primitive 2^size-th root of
// unity sqrt2^((4n)>>size), writing the values to dst. backward negates
// the root, giving the unscaled inverse transform. Elements of src are
// read at stride 2^(k-size).
func (t *transformer) fourier(dst, src []*big.Int, backward bool, k, size uint) {
	idxShift := k - size
	ω2shift := (4 * t.bits) >> size
	if backward {
		ω2shift = -ω2shift
	}

	switch size {
	case 0:
		dst[0] = new(big.Int).Set(src[0])
		return
	case 1:
		dst[0] = t.add(src[0], src[1<<idxShift])
		dst[1] = t.sub(src[0], src[1<<idxShift])
		return
	}

	dst1 := dst[:1<<(size-1)]
	dst2 := dst[1<<(size-1):]
	t.fourier(dst1, src, backward, k, size-1)
	t.fourier(dst2, src[1<<idxShift:], backward, k, size-1)

	for i := range dst1 {
		twiddled := t.shiftHalf(dst2[i], i*ω2shift)
		dst2[i] = t.sub(dst1[i], twiddled)
		dst1[i] = t.add(dst1[i], twiddled)
	}
}

// shift returns x * 2^e in canonical form; e may be negative, using the
// period 2^(2n) = 1.
func (t *transformer) shift(x *big.Int, e int) *big.Int {
	period := 2 * t.bits
	e %= period
	if e < 0 {
		e += period
	}
	z := new(big.Int).Lsh(x, uint(e))
	return z.Mod(z, t.div)
}

// shiftHalf returns x * sqrt2^e in canonical form, where e counts
// half-bit shifts modulo the period 4n. Odd exponents expand sqrt2 as
// 2^(3n/4) - 2^(n/4), which requires 4 | n; the ring selector only emits
// rings satisfying that.
func (t *transformer) shiftHalf(x *big.Int, e int) *big.Int {
	period := 4 * t.bits
	e %= period
	if e < 0 {
		e += period
	}
	if e%2 == 0 {
		return t.shift(x, e/2)
	}
	if t.bits%4 != 0 {
		panic("fermat: half shift in a ring whose capacity is not divisible by 4")
	}
	quarter := uint(t.bits / 4)
	u := uint(e / 2)
	hi := new(big.Int).Lsh(x, u+3*quarter)
	lo := new(big.Int).Lsh(x, u+quarter)
	hi.Sub(hi, lo)
	return hi.Mod(hi, t.div)
}

// add and sub keep canonical operands canonical with a single
// conditional correction instead of a full reduction.

func (t *transformer) add(x, y *big.Int) *big.Int {
	z := new(big.Int).Add(x, y)
	if z.Cmp(t.div) >= 0 {
		z.Sub(z, t.div)
	}
	return z
}

func (t *transformer) sub(x, y *big.Int) *big.Int {
	z := new(big.Int).Sub(x, y)
	if z.Sign() < 0 {
		z.Add(z, t.div)
	}
	return z
}
