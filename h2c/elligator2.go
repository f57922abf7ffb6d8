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

package h2c

import (
	"github.com/cronokirby/ed25519go/internal/curve"
	"github.com/cronokirby/ed25519go/internal/field"
)

// Curve25519's Montgomery form is v^2 = u^3 + A*u^2 + u (B=1), with
// A = 486662 and the fixed non-square multiplier Z = 2 that RFC 9380 section
// 8.4 specifies for this curve's Elligator2 suites.
var (
	constMontgomeryA    = field.FromUint64(486662)
	constMontgomeryNegA = mustElt([4]uint64{0xfffffffffff892e7, 0xffffffffffffffff, 0xffffffffffffffff, 0x7fffffffffffffff})

	// negOne is used for the tv1 == -1 exceptional-input check in
	// map_to_curve_elligator2 (RFC 9380 section 6.7.1, step 3).
	negOne = field.Zero().Sub(field.One())

	// sqrt(-(A+2)), the Montgomery<->Edwards birational map's x-coordinate
	// factor (RFC 7748 section 4.1): x = sqrt(-(A+2))*u/v.
	constMontgomerySqrtNegAPlusTwo = mustElt([4]uint64{0xcc6e04aaff457e06, 0xc5a1d3d14b7d1a82, 0xd27b08dc03fc4f7e, 0xf26edf460a006bb})
)

func mustElt(limbs [4]uint64) field.Elt {
	var b [32]byte
	for i, limb := range limbs {
		for j := 0; j < 8; j++ {
			b[i*8+j] = byte(limb >> (8 * j))
		}
	}
	e, ok := field.SetCanonicalBytes(b[:])
	if !ok {
		panic("h2c: constant is not a canonical field element")
	}
	return e
}

func boolToChoice(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

func feIsZero(x field.Elt) uint64 {
	return boolToChoice(field.Equal(x, field.Zero()))
}

// ell2MontgomeryFlavor is map_to_curve_elligator2 (RFC 9380 section 6.7.1)
// specialized to Curve25519, returning Montgomery (u, v) coordinates for a
// uniformly random field element.
func ell2MontgomeryFlavor(r field.Elt) (u, v field.Elt) {
	tv1 := r.Square().ScaleSmall(2) // Z * r^2, Z = 2
	e1 := boolToChoice(field.Equal(tv1, negOne))
	tv1 = field.Select(tv1, field.Zero(), e1)

	x1 := field.One().Add(tv1).Invert()
	x1 = constMontgomeryNegA.Mul(x1)

	gx1 := x1.Add(constMontgomeryA).Mul(x1).Add(field.One()).Mul(x1)

	x2 := x1.Negate().Sub(constMontgomeryA)
	gx2 := tv1.Mul(gx1)

	yRoot1, e2b := field.SqrtRatio(gx1, field.One())
	yRoot2, _ := field.SqrtRatio(gx2, field.One())
	e2 := boolToChoice(e2b)

	x := field.Select(x2, x1, e2)
	y := field.Select(yRoot2, yRoot1, e2)

	e3 := y.IsNegative()
	y = field.Select(y, y.Negate(), e2^e3)

	return x, y
}

// ell2EdwardsFlavor maps a uniformly random field element to an edwards25519
// point via Elligator2, composing ell2MontgomeryFlavor with the
// Montgomery->Edwards birational map of RFC 7748 section 4.1:
// x = sqrt(-(A+2))*u/v, y = (u-1)/(u+1), with the exceptional cases (v = 0 or
// u = -1) mapped to the identity point, as RFC 9380 section 6.7.1 requires.
func ell2EdwardsFlavor(r field.Elt) curve.Point {
	u, v := ell2MontgomeryFlavor(r)

	vIsZero := feIsZero(v)
	uPlusOne := u.Add(field.One())
	uPlusOneIsZero := feIsZero(uPlusOne)

	x := constMontgomerySqrtNegAPlusTwo.Mul(u).Mul(v.Invert())
	y := u.Sub(field.One()).Mul(uPlusOne.Invert())

	resultUndefined := vIsZero | uPlusOneIsZero
	x = field.Select(x, field.Zero(), resultUndefined)
	y = field.Select(y, field.One(), resultUndefined)

	return curve.FromAffine(x, y)
}
