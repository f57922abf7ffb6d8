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

package curve

import (
	"testing"

	"github.com/cronokirby/ed25519go/internal/scalar"
)

func TestIdentityIsAdditiveUnit(t *testing.T) {
	b := Basepoint()
	if got := b.Add(Identity()); !Equal(got, b) {
		t.Fatal("B + identity != B")
	}
}

func TestDoubleEqualsSelfAdd(t *testing.T) {
	b := Basepoint()
	if got := b.Double(); !Equal(got, b.Add(b)) {
		t.Fatal("B.Double() != B+B")
	}
}

func TestAddCommutative(t *testing.T) {
	b := Basepoint()
	two := b.Double()
	three := two.Add(b)
	threeAlt := b.Add(two)
	if !Equal(three, threeAlt) {
		t.Fatal("B+2B != 2B+B")
	}
}

func TestAddAssociative(t *testing.T) {
	b := Basepoint()
	two := b.Double()
	three := two.Add(b)
	four := three.Add(b)
	fourAlt := two.Add(two)
	if !Equal(four, fourAlt) {
		t.Fatal("((B+B)+B)+B != (B+B)+(B+B)")
	}
}

func TestNegateIsInverse(t *testing.T) {
	b := Basepoint()
	if got := b.Add(b.Negate()); !Equal(got, Identity()) {
		t.Fatal("B + (-B) != identity")
	}
}

func TestScalarMulLinearity(t *testing.T) {
	b := Basepoint()
	three := scalar.FromUint64(3)
	five := scalar.FromUint64(5)
	eight := scalar.FromUint64(8)

	lhs := b.ScalarMul(three).Add(b.ScalarMul(five))
	rhs := b.ScalarMul(eight)
	if !Equal(lhs, rhs) {
		t.Fatal("3B+5B != 8B")
	}
}

func TestScalarMulByZeroIsIdentity(t *testing.T) {
	b := Basepoint()
	if got := b.ScalarMul(scalar.Zero()); !Equal(got, Identity()) {
		t.Fatal("0*B != identity")
	}
}

func TestScalarMulByOneReturnsSamePoint(t *testing.T) {
	b := Basepoint()
	if got := b.ScalarMul(scalar.One()); !Equal(got, b) {
		t.Fatal("1*B != B")
	}
}

func TestScalarBasepointMulMatchesScalarMul(t *testing.T) {
	s := scalar.FromUint64(12345)
	if got := ScalarBasepointMul(s); !Equal(got, Basepoint().ScalarMul(s)) {
		t.Fatal("ScalarBasepointMul(s) != Basepoint().ScalarMul(s)")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	b := Basepoint()
	enc := b.Encode()
	dec, ok := Decode(enc[:])
	if !ok {
		t.Fatal("failed to decode basepoint encoding")
	}
	if !Equal(dec, b) {
		t.Fatal("decode(encode(B)) != B")
	}
}

func TestDecodeRejectsWrongLength(t *testing.T) {
	if _, ok := Decode(make([]byte, 31)); ok {
		t.Fatal("expected a 31 byte input to be rejected")
	}
}

func TestDecodeRejectsNonCanonicalY(t *testing.T) {
	var b [32]byte
	for i := range b {
		b[i] = 0xff
	}
	if _, ok := Decode(b[:]); ok {
		t.Fatal("expected an out-of-range y coordinate to be rejected")
	}
}

// TestGroupOrderIsL checks the defining property of the prime order
// subgroup: multiplying the basepoint by the group order yields identity.
func TestGroupOrderIsL(t *testing.T) {
	if got := Basepoint().ScalarMul(scalar.GroupOrder()); !Equal(got, Identity()) {
		t.Fatal("L*B != identity")
	}
}
