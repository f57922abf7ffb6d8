// Copyright (c) 2021 Oasis Labs Inc. All rights reserved.
// Copyright (c) 2021 Yawning Angel. All rights reserved.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are
// met:
//
// 1. Redistributions of source code must retain the above copyright
// notice, this list of conditions and the following disclaimer.
//
// 2. Redistributions in binary form must reproduce the above copyright
// notice, this list of conditions and the following disclaimer in the
// documentation and/or other materials provided with the distribution.
//
// 3. Neither the name of the copyright holder nor the names of its
// contributors may be used to endorse or promote products derived from
// this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS
// IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED
// TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A
// PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
// HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
// SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT LIMITED
// TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE, DATA, OR
// PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF
// LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING
// NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE OF THIS
// SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

// Package uint256 implements fixed-width 256 and 512 bit unsigned integer
// arithmetic, with no implicit modular reduction. Every operation here is
// branch-free in its own right; callers needing constant-time behavior
// across a secret-dependent choice use Select/CondAdd rather than a Go
// if-statement.
package uint256

import "math/bits"

// U256 is a 256 bit unsigned integer, stored as 4 little-endian 64 bit limbs.
type U256 struct {
	Limbs [4]uint64
}

// U512 is a 512 bit unsigned integer, stored as 8 little-endian 64 bit limbs.
type U512 struct {
	Limbs [8]uint64
}

// FromUint64 returns the U256 with value x.
func FromUint64(x uint64) U256 {
	return U256{Limbs: [4]uint64{x, 0, 0, 0}}
}

// FromLEBytes interprets b (little-endian, at least 32 bytes) as a U256.
// Only the first 32 bytes are consulted.
func FromLEBytes(b []byte) U256 {
	var z U256
	for i := range z.Limbs {
		z.Limbs[i] = leUint64(b[i*8 : i*8+8])
	}
	return z
}

// Bytes returns x as 32 little-endian bytes.
func (x U256) Bytes() [32]byte {
	var out [32]byte
	for i, limb := range x.Limbs {
		putLEUint64(out[i*8:i*8+8], limb)
	}
	return out
}

func leUint64(b []byte) uint64 {
	_ = b[7]
	return uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
		uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56
}

func putLEUint64(b []byte, x uint64) {
	_ = b[7]
	b[0] = byte(x)
	b[1] = byte(x >> 8)
	b[2] = byte(x >> 16)
	b[3] = byte(x >> 24)
	b[4] = byte(x >> 32)
	b[5] = byte(x >> 40)
	b[6] = byte(x >> 48)
	b[7] = byte(x >> 56)
}

// Add returns x+y truncated to 256 bits, along with the carry out of the
// top limb (0 or 1). This chains math/bits.Add64, the portable stand-in for
// the architecture's add-with-carry instruction.
func (x U256) Add(y U256) (U256, uint64) {
	var z U256
	var carry uint64
	z.Limbs[0], carry = bits.Add64(x.Limbs[0], y.Limbs[0], 0)
	z.Limbs[1], carry = bits.Add64(x.Limbs[1], y.Limbs[1], carry)
	z.Limbs[2], carry = bits.Add64(x.Limbs[2], y.Limbs[2], carry)
	z.Limbs[3], carry = bits.Add64(x.Limbs[3], y.Limbs[3], carry)
	return z, carry
}

// Sub returns x-y truncated to 256 bits, along with the borrow out of the
// top limb (0 or 1).
func (x U256) Sub(y U256) (U256, uint64) {
	var z U256
	var borrow uint64
	z.Limbs[0], borrow = bits.Sub64(x.Limbs[0], y.Limbs[0], 0)
	z.Limbs[1], borrow = bits.Sub64(x.Limbs[1], y.Limbs[1], borrow)
	z.Limbs[2], borrow = bits.Sub64(x.Limbs[2], y.Limbs[2], borrow)
	z.Limbs[3], borrow = bits.Sub64(x.Limbs[3], y.Limbs[3], borrow)
	return z, borrow
}

// Select returns a if choice == 0, and b if choice == 1. choice must be 0 or
// 1; any other value yields an unspecified result. The non-selected input is
// still read in full, so this never branches on choice.
func Select(a, b U256, choice uint64) U256 {
	mask := -(choice & 1)
	var z U256
	for i := range z.Limbs {
		z.Limbs[i] = a.Limbs[i] ^ (mask & (a.Limbs[i] ^ b.Limbs[i]))
	}
	return z
}

// SelectU512 is Select for U512 operands.
func SelectU512(a, b U512, choice uint64) U512 {
	mask := -(choice & 1)
	var z U512
	for i := range z.Limbs {
		z.Limbs[i] = a.Limbs[i] ^ (mask & (a.Limbs[i] ^ b.Limbs[i]))
	}
	return z
}

// CondAdd returns x+y (truncated to 256 bits) and its carry if choice == 1,
// or x and 0 if choice == 0. y is always added in; the result is discarded
// rather than skipped, so there is no data-dependent branch on choice.
func (x U256) CondAdd(y U256, choice uint64) (U256, uint64) {
	sum, carry := x.Add(y)
	return Select(x, sum, choice), carry & choice
}

// Geq reports, in constant time, whether x >= y (1 if true, 0 if false).
func (x U256) Geq(y U256) uint64 {
	_, borrow := x.Sub(y)
	return 1 - borrow
}

// IsZero reports, in constant time, whether x == 0.
func (x U256) IsZero() uint64 {
	acc := x.Limbs[0] | x.Limbs[1] | x.Limbs[2] | x.Limbs[3]
	return uint64(((acc | -acc) >> 63) ^ 1)
}

// Mul computes the full 512 bit product of x and y, returned as (hi, lo)
// where the value equals hi*2^256 + lo. This follows the three-limb rolling
// accumulator schoolbook approach: one row of partial products per output
// limb, carry chained through (r0, r1, r2).
func (x U256) Mul(y U256) (hi, lo U256) {
	var r0, r1, r2 uint64

	multiplyIn := func(i, j int) {
		hi64, lo64 := bits.Mul64(x.Limbs[i], y.Limbs[j])
		var c0, c1 uint64
		r0, c0 = bits.Add64(r0, lo64, 0)
		r1, c1 = bits.Add64(r1, hi64, c0)
		r2 += c1
	}
	propagate := func() uint64 {
		out := r0
		r0, r1, r2 = r1, r2, 0
		return out
	}

	multiplyIn(0, 0)
	lo.Limbs[0] = propagate()

	multiplyIn(0, 1)
	multiplyIn(1, 0)
	lo.Limbs[1] = propagate()

	multiplyIn(0, 2)
	multiplyIn(1, 1)
	multiplyIn(2, 0)
	lo.Limbs[2] = propagate()

	multiplyIn(0, 3)
	multiplyIn(1, 2)
	multiplyIn(2, 1)
	multiplyIn(3, 0)
	lo.Limbs[3] = propagate()

	multiplyIn(1, 3)
	multiplyIn(2, 2)
	multiplyIn(3, 1)
	hi.Limbs[0] = propagate()

	multiplyIn(2, 3)
	multiplyIn(3, 2)
	hi.Limbs[1] = propagate()

	multiplyIn(3, 3)
	hi.Limbs[2] = propagate()

	hi.Limbs[3] = r0

	return hi, lo
}

// MulSmall computes x*y for a u64 y, returning the carry above the top limb
// and the truncated 256 bit product.
func (x U256) MulSmall(y uint64) (carry uint64, lo U256) {
	var c uint64
	for i := range x.Limbs {
		hi64, lo64 := bits.Mul64(x.Limbs[i], y)
		var c0 uint64
		lo.Limbs[i], c0 = bits.Add64(lo64, c, 0)
		c = hi64 + c0
	}
	return c, lo
}

// ToU512 widens x to 512 bits.
func (x U256) ToU512() U512 {
	var z U512
	copy(z.Limbs[:4], x.Limbs[:])
	return z
}

// Add is U512 addition, truncated to 512 bits, with carry out of the top limb.
func (x U512) Add(y U512) (U512, uint64) {
	var z U512
	var carry uint64
	for i := range z.Limbs {
		z.Limbs[i], carry = bits.Add64(x.Limbs[i], y.Limbs[i], carry)
	}
	return z, carry
}

// Lo returns the low 256 bits of x.
func (x U512) Lo() U256 {
	var z U256
	copy(z.Limbs[:], x.Limbs[:4])
	return z
}

// mulRow computes xi*y as 5 limbs (the product of a 64 bit value and a 256
// bit value always fits in 320 bits).
func mulRow(xi uint64, y U256) [5]uint64 {
	var row [5]uint64
	var carry uint64
	for j := 0; j < 4; j++ {
		hi64, lo64 := bits.Mul64(xi, y.Limbs[j])
		var c0 uint64
		row[j], c0 = bits.Add64(lo64, carry, 0)
		carry = hi64 + c0
	}
	row[4] = carry
	return row
}

// MulByU256 computes the full 768 bit product of x (512 bits) and y (256
// bits), split as hi (the top 256 bits, as a U256) and lo (the bottom 512
// bits, as a U512): value == hi*2^512 + lo.
//
// Each of the 8 rows of the schoolbook product is added into the 12 limb
// accumulator and its carry is walked through the remaining limbs
// unconditionally, so the number of steps taken depends only on the row
// index (a public loop counter), never on the limb values themselves.
func (x U512) MulByU256(y U256) (hi U256, lo U512) {
	var acc [12]uint64
	for i := 0; i < 8; i++ {
		row := mulRow(x.Limbs[i], y)
		var carry uint64
		for j := 0; j < 5; j++ {
			acc[i+j], carry = bits.Add64(acc[i+j], row[j], carry)
		}
		for k := i + 5; k < 12; k++ {
			acc[k], carry = bits.Add64(acc[k], carry, 0)
		}
	}
	copy(lo.Limbs[:], acc[:8])
	copy(hi.Limbs[:], acc[8:12])
	return hi, lo
}
