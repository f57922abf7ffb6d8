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

// Package scalar implements arithmetic in the scalar ring Z/lZ, for
// l = 2^252 + 27742317777372353535851937790883648493, the prime order of
// the edwards25519 base-point subgroup.
package scalar

import (
	"crypto/subtle"

	"github.com/cronokirby/ed25519go/internal/uint256"
)

// L is the group order, 2^252 + 27742317777372353535851937790883648493.
var L = uint256.U256{Limbs: [4]uint64{
	0x5812631a5cf5d3ed,
	0x14def9dea2f79cd6,
	0x0000000000000000,
	0x1000000000000000,
}}

// nSquared is 2^504 mod L, the weight of the top byte of a 64 byte hash
// output, used to fold that byte in ahead of the Barrett reduction below.
var nSquared = uint256.U256{Limbs: [4]uint64{
	0xe2edf685ab128969,
	0x680392762298a31d,
	0x3dceec73d217f5be,
	0x01b399411b7c309a,
}}

// barrettR is floor(2^506 / L), the precomputed Barrett reciprocal.
var barrettR = uint256.U256{Limbs: [4]uint64{
	0x9fb673968c28b04c,
	0xac84188574218ca6,
	0xffffffffffffffff,
	0x3fffffffffffffff,
}}

// Elt is an element of Z/lZ, held in canonical range [0, L). The exceptions
// are Clamp, whose result has the form 2^254 + 8k and so lies above L, and
// GroupOrder.
type Elt struct {
	v uint256.U256
}

// Zero is the additive identity.
func Zero() Elt { return Elt{} }

// One is the multiplicative identity.
func One() Elt { return Elt{uint256.FromUint64(1)} }

// FromUint64 returns the scalar with value x (always < L, since L > 2^64).
func FromUint64(x uint64) Elt {
	return Elt{uint256.FromUint64(x)}
}

// Clamp derives a scalar from a 32 byte seed using the RFC 8032 section
// 5.1.5 clamping procedure: clear the low 3 bits of byte 0, clear the top
// bit of byte 31, set bit 6 of byte 31. This forces the result into the
// form 2^254 + 8k, as required for the Ed25519 security argument.
func Clamp(seed [32]byte) Elt {
	var b [32]byte
	copy(b[:], seed[:])
	b[0] &= 248
	b[31] &= 127
	b[31] |= 64
	return Elt{uint256.FromLEBytes(b[:])}
}

// TryFromBytes decodes a scalar from at least 32 little-endian bytes,
// rejecting any encoding >= L (required at every point spec.md section 9's
// open question (i) touches: signature S values must be canonical).
func TryFromBytes(b []byte) (Elt, bool) {
	if len(b) < 32 {
		return Elt{}, false
	}
	v := uint256.FromLEBytes(b)
	if v.Geq(L) == 1 {
		return Elt{}, false
	}
	return Elt{v}, true
}

// Bytes returns x as 32 canonical little-endian bytes.
func (x Elt) Bytes() [32]byte {
	return x.v.Bytes()
}

// reduceOnce folds v back into [0, L) given that v < 2L, by speculatively
// subtracting L and keeping the subtracted value iff no borrow occurred.
func reduceOnce(v uint256.U256) Elt {
	removed, borrow := v.Sub(L)
	return Elt{uint256.Select(v, removed, 1-borrow)}
}

// Add returns x+y mod L.
func (x Elt) Add(y Elt) Elt {
	sum, _ := x.v.Add(y.v)
	return reduceOnce(sum)
}

// Negate returns -x mod L.
func (x Elt) Negate() Elt {
	diff, borrow := uint256.U256{}.Sub(x.v)
	withL, _ := diff.CondAdd(L, borrow)
	return Elt{withL}
}

// Sub returns x-y mod L.
func (x Elt) Sub(y Elt) Elt {
	return x.Add(y.Negate())
}

// reduceBarrett reduces a 512 bit value mod L using Barrett's algorithm
// with the precomputed reciprocal barrettR.
func reduceBarrett(large uint256.U512) Elt {
	hi, lo := large.MulByU256(barrettR)
	q := uint256.U256{Limbs: [4]uint64{
		(hi.Limbs[0] << 6) | (lo.Limbs[7] >> 58),
		(hi.Limbs[1] << 6) | (hi.Limbs[0] >> 58),
		(hi.Limbs[2] << 6) | (hi.Limbs[1] >> 58),
		(hi.Limbs[3] << 6) | (hi.Limbs[2] >> 58),
	}}
	_, toSubtract := q.Mul(L)
	diff, _ := large.Lo().Sub(toSubtract)
	return reduceOnce(diff)
}

// Mul returns x*y mod L, via Barrett reduction of the 512 bit product.
func (x Elt) Mul(y Elt) Elt {
	hi, lo := x.v.Mul(y.v)
	var large uint256.U512
	copy(large.Limbs[:4], lo.Limbs[:])
	copy(large.Limbs[4:], hi.Limbs[:])
	return reduceBarrett(large)
}

// ReduceWideBytes reduces a 64 byte (512 bit) hash output to a scalar mod L,
// per spec.md section 4.3: the top byte is folded in separately as
// byte * nSquared (nSquared = 2^504 mod L), so the sum handed to
// reduceBarrett stays below 2^505.
func ReduceWideBytes(bytes [64]byte) Elt {
	hiByte := uint64(bytes[63])
	bytes[63] = 0

	var lo uint256.U512
	for i := 0; i < 8; i++ {
		lo.Limbs[i] = uint64(bytes[i*8]) | uint64(bytes[i*8+1])<<8 | uint64(bytes[i*8+2])<<16 |
			uint64(bytes[i*8+3])<<24 | uint64(bytes[i*8+4])<<32 | uint64(bytes[i*8+5])<<40 |
			uint64(bytes[i*8+6])<<48 | uint64(bytes[i*8+7])<<56
	}

	carry, hiReducedLo := nSquared.MulSmall(hiByte)
	var hiReduced uint256.U512
	copy(hiReduced.Limbs[:4], hiReducedLo.Limbs[:])
	hiReduced.Limbs[4] = carry

	sum, _ := lo.Add(hiReduced)
	return reduceBarrett(sum)
}

// GroupOrder returns L itself as an Elt, bypassing the usual canonical-range
// invariant. This exists only so callers (notably tests checking that
// L*Basepoint is the identity) can exercise the literal group order; it must
// never be used as an operand to Add or Mul.
func GroupOrder() Elt {
	return Elt{L}
}

// Select returns a if choice == 0, and b if choice == 1.
func Select(a, b Elt, choice uint64) Elt {
	return Elt{uint256.Select(a.v, b.v, choice)}
}

// Equal is a plain equality check over public data, such as verifying a
// decoded nonce against a known-answer test vector; never call this on
// secret-derived scalars in production code paths.
func Equal(x, y Elt) bool {
	xb := x.Bytes()
	yb := y.Bytes()
	return subtle.ConstantTimeCompare(xb[:], yb[:]) == 1
}
