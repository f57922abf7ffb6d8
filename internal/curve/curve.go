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

// Package curve implements group operations on edwards25519, the twisted
// Edwards curve -x^2+y^2 = 1+d*x^2*y^2 over Fp that is birationally
// equivalent to Curve25519. Points are held in extended projective
// (X, Y, Z, T) coordinates, with x = X/Z, y = Y/Z, and T = XY/Z, following
// Hisil-Wong-Carter-Dawson.
package curve

import (
	"github.com/cronokirby/ed25519go/internal/field"
	"github.com/cronokirby/ed25519go/internal/scalar"
)

// d is the curve equation constant, -121665/121666 mod p.
var d = mustElt([4]uint64{0x75eb4dca135978a3, 0x0700a4d4141d8ab, 0x8cc740797779e898, 0x52036cee2b6ffe73})

// d2 is 2*d, used throughout the unified addition formula.
var d2 = d.Add(d)

func mustElt(limbs [4]uint64) field.Elt {
	var b [32]byte
	for i, limb := range limbs {
		for j := 0; j < 8; j++ {
			b[i*8+j] = byte(limb >> (8 * j))
		}
	}
	e, ok := field.SetCanonicalBytes(b[:])
	if !ok {
		panic("curve: constant is not a canonical field element")
	}
	return e
}

// Point is a group element of edwards25519, represented in extended
// projective coordinates. The zero value is not a valid point; use
// Identity or Decode.
type Point struct {
	x, y, z, t field.Elt
}

// Identity is the neutral element (0, 1).
func Identity() Point {
	return Point{x: field.Zero(), y: field.One(), z: field.One(), t: field.Zero()}
}

// basepoint is the standard generator of the prime order subgroup, with
// y = 4/5 and x chosen positive.
var basepoint = Point{
	x: mustElt([4]uint64{0xc9562d608f25d51a, 0x692cc7609525a7b2, 0xc0a4e231fdd6dc5c, 0x216936d3cd6e53fe}),
	y: mustElt([4]uint64{0x6666666666666658, 0x6666666666666666, 0x6666666666666666, 0x6666666666666666}),
	z: field.One(),
	t: mustElt([4]uint64{0x6dde8ab3a5b7dda3, 0x20f09f80775152f5, 0x66ea4e8e64abe37d, 0x67875f0fd78b7665}),
}

// Basepoint returns the standard generator B.
func Basepoint() Point {
	return basepoint
}

// Add returns p+q, using the unified (complete) addition formula
// add-2008-hwcd-3, valid for any pair of inputs including p == q.
func (p Point) Add(q Point) Point {
	a := p.y.Sub(p.x).Mul(q.y.Sub(q.x))
	b := p.y.Add(p.x).Mul(q.y.Add(q.x))
	c := p.t.Mul(d2).Mul(q.t)
	dd := p.z.Mul(q.z).Add(p.z.Mul(q.z))
	e := b.Sub(a)
	f := dd.Sub(c)
	g := dd.Add(c)
	h := b.Add(a)
	return Point{x: e.Mul(f), y: g.Mul(h), z: f.Mul(g), t: e.Mul(h)}
}

// Double returns p+p, using the dedicated doubling formula dbl-2008-hwcd,
// cheaper than a general Add call with both arguments equal to p.
func (p Point) Double() Point {
	a := p.x.Square()
	b := p.y.Square()
	c := p.z.Square().Add(p.z.Square())
	h := a.Add(b)
	xy := p.x.Add(p.y)
	e := h.Sub(xy.Square())
	g := a.Sub(b)
	f := c.Add(g)
	return Point{x: e.Mul(f), y: g.Mul(h), z: f.Mul(g), t: e.Mul(h)}
}

// Negate returns -p, which for a twisted Edwards curve is (-x, y).
func (p Point) Negate() Point {
	return Point{x: p.x.Negate(), y: p.y, z: p.z, t: p.t.Negate()}
}

// Select returns a if choice == 0, and b if choice == 1.
func Select(a, b Point, choice uint64) Point {
	return Point{
		x: field.Select(a.x, b.x, choice),
		y: field.Select(a.y, b.y, choice),
		z: field.Select(a.z, b.z, choice),
		t: field.Select(a.t, b.t, choice),
	}
}

// ScalarMul returns s*p, via a constant-time binary double-and-add ladder
// that processes every bit of s regardless of its value.
func (p Point) ScalarMul(s scalar.Elt) Point {
	bytes := s.Bytes()
	acc := Identity()
	for i := 255; i >= 0; i-- {
		acc = acc.Double()
		byteIdx := i / 8
		bitIdx := uint(i % 8)
		bit := uint64((bytes[byteIdx] >> bitIdx) & 1)
		added := acc.Add(p)
		acc = Select(acc, added, bit)
	}
	return acc
}

// ScalarBasepointMul returns s*B.
func ScalarBasepointMul(s scalar.Elt) Point {
	return basepoint.ScalarMul(s)
}

// affine returns the affine (x, y) coordinates of p, by inverting Z. This
// is not constant-time: it is meant only for point equality checks and
// encoding, both of which operate on public data during verification.
func (p Point) affine() (x, y field.Elt) {
	zInv := p.z.Invert()
	return p.x.Mul(zInv), p.y.Mul(zInv)
}

// Equal reports whether p and q represent the same group element. This
// compares affine coordinates and is not constant-time; callers must only
// use it on public points, such as during signature verification.
func Equal(p, q Point) bool {
	px, py := p.affine()
	qx, qy := q.affine()
	return field.Equal(px, qx) && field.Equal(py, qy)
}

// FromAffine builds a Point from affine (x, y) coordinates already known to
// satisfy the curve equation. Exported for the hash-to-curve map, which
// produces points this way rather than through Decode.
func FromAffine(x, y field.Elt) Point {
	return Point{x: x, y: y, z: field.One(), t: x.Mul(y)}
}

// MulByCofactor returns 8*p, clearing the cofactor of edwards25519's full
// group down to the prime order subgroup. Hash-to-curve and VRF proof
// verification both need this after mapping onto the curve.
func (p Point) MulByCofactor() Point {
	return p.Double().Double().Double()
}

// Encode returns the canonical 32 byte little-endian encoding of p: the
// y-coordinate with the sign of x folded into the top bit, per RFC 8032
// section 5.1.2.
func (p Point) Encode() [32]byte {
	x, y := p.affine()
	out := y.Bytes()
	if x.IsNegative() == 1 {
		out[31] |= 0x80
	}
	return out
}

// Decode parses a canonical 32 byte encoding into a point, recovering x via
// SqrtRatio and rejecting any non-canonical or off-curve encoding, per RFC
// 8032 section 5.1.3.
func Decode(b []byte) (Point, bool) {
	if len(b) != 32 {
		return Point{}, false
	}
	var yBytes [32]byte
	copy(yBytes[:], b)
	signBit := yBytes[31] >> 7
	yBytes[31] &= 0x7f

	y, ok := field.SetCanonicalBytes(yBytes[:])
	if !ok {
		return Point{}, false
	}

	ySq := y.Square()
	u := ySq.Sub(field.One())
	v := d.Mul(ySq).Add(field.One())
	x, ok := field.SqrtRatio(u, v)
	if !ok {
		return Point{}, false
	}

	if field.Equal(x, field.Zero()) && signBit == 1 {
		return Point{}, false
	}

	if x.IsNegative() != uint64(signBit) {
		x = x.Negate()
	}

	return Point{x: x, y: y, z: field.One(), t: x.Mul(y)}, true
}
