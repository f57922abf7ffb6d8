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

// Package field implements arithmetic in the prime field Z/pZ, for
// p = 2^255 - 19, represented as a uint256.U256 in [0, p).
package field

import (
	"crypto/subtle"

	"github.com/cronokirby/ed25519go/internal/uint256"
)

// p = 2^255 - 19.
var p = uint256.U256{Limbs: [4]uint64{
	0xffffffffffffffed,
	0xffffffffffffffff,
	0xffffffffffffffff,
	0x7fffffffffffffff,
}}

// sqrtMinusOne is 2^((p-1)/4) mod p, a square root of -1.
var sqrtMinusOne = Elt{uint256.U256{Limbs: [4]uint64{
	0xc4ee1b274a0ea0b0,
	0x2f431806ad2fe478,
	0x2b4d00993dfbd7a7,
	0x2b8324804fc1df0b,
}}}

// Elt is an element of Z/pZ, always held in canonical range [0, p).
//
// Elt has no equality method; the package-level Equal function is exported
// in every build, not only in tests.
type Elt struct {
	v uint256.U256
}

// Zero is the additive identity.
func Zero() Elt { return Elt{} }

// One is the multiplicative identity.
func One() Elt { return Elt{uint256.FromUint64(1)} }

// FromUint64 returns the element with value x (x < p always holds for any
// u64, since p > 2^64).
func FromUint64(x uint64) Elt {
	return Elt{uint256.FromUint64(x)}
}

// SetCanonicalBytes parses 32 little-endian bytes as a field element,
// rejecting non-canonical encodings (value >= p), as RFC 8032 requires of
// point decoding.
func SetCanonicalBytes(b []byte) (Elt, bool) {
	v := uint256.FromLEBytes(b)
	if v.Geq(p) == 1 {
		return Elt{}, false
	}
	return Elt{v}, true
}

// Bytes returns x as 32 canonical little-endian bytes.
func (x Elt) Bytes() [32]byte {
	return x.v.Bytes()
}

// FromBytesReduce interprets b as a big-endian integer (OS2IP, as used by
// hash-to-field) of any length and reduces it mod p. Unlike SetCanonicalBytes
// this never rejects its input; it is Horner's method over ScaleSmall/Add and
// is not meant for hot paths, only for the occasional wide reduction that
// hash-to-curve needs.
func FromBytesReduce(b []byte) Elt {
	acc := Zero()
	for _, by := range b {
		acc = acc.ScaleSmall(256).Add(FromUint64(uint64(by)))
	}
	return acc
}

// reduceAfterAdd folds a (sum, carry) pair from a U256 addition back into
// [0, p), per the addition case table: take the speculative sum-minus-p
// whenever borrow == carry, otherwise keep sum unchanged.
func reduceAfterAdd(sum uint256.U256, carry uint64) Elt {
	sub, borrow := sum.Sub(p)
	takeSub := 1 - (borrow ^ carry)
	return Elt{uint256.Select(sum, sub, takeSub)}
}

// reduceAfterScale folds a value spanning up to 5 limbs (4 limbs plus a
// small carry above the top limb) back into [0, p), using the identity
// 2^255 == 19 (mod p).
func reduceAfterScale(limbs uint256.U256, carry uint64) Elt {
	q := (carry << 1) | (limbs.Limbs[3] >> 63)
	r := limbs
	r.Limbs[3] &^= uint64(1) << 63
	withCorrection, carry2 := r.Add(uint256.FromUint64(19 * q))
	return reduceAfterAdd(withCorrection, carry2)
}

// Add returns x+y mod p.
func (x Elt) Add(y Elt) Elt {
	sum, carry := x.v.Add(y.v)
	return reduceAfterAdd(sum, carry)
}

// Sub returns x-y mod p.
func (x Elt) Sub(y Elt) Elt {
	diff, borrow := x.v.Sub(y.v)
	fixed, _ := diff.CondAdd(p, borrow)
	return Elt{fixed}
}

// Negate returns -x mod p.
func (x Elt) Negate() Elt {
	return Zero().Sub(x)
}

// ScaleSmall returns c*x mod p, for a small constant c (hash-to-curve
// uses this with c = 2, and FromBytesReduce with c = 256; c must be small enough that the
// carry out of the scaling multiply fits comfortably below 2^63).
func (x Elt) ScaleSmall(c uint64) Elt {
	carry, lo := x.v.MulSmall(c)
	return reduceAfterScale(lo, carry)
}

// Mul returns x*y mod p. The 512 bit product is folded down using
// 2^256 == 38 (mod p), then the residual carry is folded again using
// 2^255 == 19 (mod p).
func (x Elt) Mul(y Elt) Elt {
	hi, lo := x.v.Mul(y.v)
	scaledCarry, scaledHi := hi.MulSmall(38)
	sum, addCarry := lo.Add(scaledHi)
	return reduceAfterScale(sum, scaledCarry+addCarry)
}

// Square returns x*x mod p.
func (x Elt) Square() Elt {
	return x.Mul(x)
}

// Invert returns x^-1 mod p via Fermat's little theorem (x^(p-2)), using a
// fixed addition-acyclic chain of 254 squarings with no data-dependent
// branches. The result is unspecified (but well-defined) when x == 0.
func (x Elt) Invert() Elt {
	var z2, z9, z11, z2_5_0, z2_10_0, z2_20_0, z2_50_0, z2_100_0, t Elt

	z2 = x.Square()          // 2
	t = z2.Square()          // 4
	t = t.Square()           // 8
	z9 = t.Mul(x)            // 9
	z11 = z9.Mul(z2)         // 11
	t = z11.Square()         // 22
	z2_5_0 = t.Mul(z9)       // 2^5 - 2^0

	t = z2_5_0.Square()
	for i := 0; i < 4; i++ {
		t = t.Square()
	}
	z2_10_0 = t.Mul(z2_5_0) // 2^10 - 2^0

	t = z2_10_0.Square()
	for i := 0; i < 9; i++ {
		t = t.Square()
	}
	z2_20_0 = t.Mul(z2_10_0) // 2^20 - 2^0

	t = z2_20_0.Square()
	for i := 0; i < 19; i++ {
		t = t.Square()
	}
	t = t.Mul(z2_20_0) // 2^40 - 2^0

	t = t.Square()
	for i := 0; i < 9; i++ {
		t = t.Square()
	}
	z2_50_0 = t.Mul(z2_10_0) // 2^50 - 2^0

	t = z2_50_0.Square()
	for i := 0; i < 49; i++ {
		t = t.Square()
	}
	z2_100_0 = t.Mul(z2_50_0) // 2^100 - 2^0

	t = z2_100_0.Square()
	for i := 0; i < 99; i++ {
		t = t.Square()
	}
	t = t.Mul(z2_100_0) // 2^200 - 2^0

	t = t.Square()
	for i := 0; i < 49; i++ {
		t = t.Square()
	}
	t = t.Mul(z2_50_0) // 2^250 - 2^0

	t = t.Square() // 2^251 - 2^1
	t = t.Square() // 2^252 - 2^2
	t = t.Square() // 2^253 - 2^3
	t = t.Square() // 2^254 - 2^4
	t = t.Square() // 2^255 - 2^5

	return t.Mul(z11) // 2^255 - 21 == p - 2
}

// pow_p_minus_5_over_8 returns x^((p-5)/8), using the same shape of
// addition chain as Invert (this exponent is 2^252 - 3).
func (x Elt) pow_p_minus_5_over_8() Elt {
	var t0, t1, t2 Elt

	t0 = x.Square()        // x^2
	t1 = t0.Square()       // x^4
	t1 = t1.Square()       // x^8
	t1 = x.Mul(t1)         // x^9
	t0 = t0.Mul(t1)        // x^11
	t0 = t0.Square()       // x^22
	t0 = t1.Mul(t0)        // x^31
	t1 = t0.Square()       // x^62
	for i := 1; i < 5; i++ {
		t1 = t1.Square() // x^992
	}
	t0 = t1.Mul(t0) // x^1023 == 2^10 - 1

	t1 = t0.Square()
	for i := 1; i < 10; i++ {
		t1 = t1.Square() // 2^20 - 2^10
	}
	t1 = t1.Mul(t0) // 2^20 - 1

	t2 = t1.Square()
	for i := 1; i < 20; i++ {
		t2 = t2.Square() // 2^40 - 2^20
	}
	t1 = t2.Mul(t1) // 2^40 - 1

	t1 = t1.Square()
	for i := 1; i < 10; i++ {
		t1 = t1.Square() // 2^50 - 2^10
	}
	t0 = t1.Mul(t0) // 2^50 - 1

	t1 = t0.Square()
	for i := 1; i < 50; i++ {
		t1 = t1.Square() // 2^100 - 2^50
	}
	t1 = t1.Mul(t0) // 2^100 - 1

	t2 = t1.Square()
	for i := 1; i < 100; i++ {
		t2 = t2.Square() // 2^200 - 2^100
	}
	t1 = t2.Mul(t1) // 2^200 - 1

	t1 = t1.Square()
	for i := 1; i < 50; i++ {
		t1 = t1.Square() // 2^250 - 2^50
	}
	t0 = t1.Mul(t0) // 2^250 - 1

	t0 = t0.Square() // 2^251 - 2
	t0 = t0.Square() // 2^252 - 4
	return t0.Mul(x) // 2^252 - 3
}

// SqrtRatio computes x with x^2 * v == u (mod p), as required to decode an
// edwards25519 point's x-coordinate from (y, sign) per RFC 8032 section
// 5.1.3. It returns (x, true) if such a root exists, or (zero, false)
// otherwise.
func SqrtRatio(u, v Elt) (Elt, bool) {
	v2 := v.Square()
	v3 := v2.Mul(v)
	v7 := v3.Mul(v2).Mul(v2)
	uv3 := u.Mul(v3)
	uv7 := u.Mul(v7)
	w := uv3.Mul(uv7.pow_p_minus_5_over_8())

	check := v.Mul(w.Square())
	negU := u.Negate()

	if Equal(check, u) {
		return w, true
	}
	if Equal(check, negU) {
		return w.Mul(sqrtMinusOne), true
	}
	return Zero(), false
}

// Equal is a plain equality check over public data. Its callers are the
// curve layer's projective point equality and point decoding, this
// package's SqrtRatio root test, and the hash-to-curve map's
// exceptional-case checks; secret-dependent code uses Select instead.
func Equal(x, y Elt) bool {
	xb := x.Bytes()
	yb := y.Bytes()
	return subtle.ConstantTimeCompare(xb[:], yb[:]) == 1
}

// Select returns a if choice == 0, and b if choice == 1.
func Select(a, b Elt, choice uint64) Elt {
	return Elt{uint256.Select(a.v, b.v, choice)}
}

// IsNegative reports whether the canonical representative of x is odd,
// matching the "sign" bit used by point encoding (the low bit of x).
func (x Elt) IsNegative() uint64 {
	return x.v.Limbs[0] & 1
}
