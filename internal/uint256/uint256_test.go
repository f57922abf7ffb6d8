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

package uint256

import (
	"math/rand"
	"reflect"
	"testing"
	"testing/quick"
)

func (U256) Generate(r *rand.Rand, size int) reflect.Value {
	return reflect.ValueOf(U256{Limbs: [4]uint64{r.Uint64(), r.Uint64(), r.Uint64(), r.Uint64()}})
}

func TestAddCommutative(t *testing.T) {
	f := func(a, b U256) bool {
		x, cx := a.Add(b)
		y, cy := b.Add(a)
		return x == y && cx == cy
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestAddAssociative(t *testing.T) {
	f := func(a, b, c U256) bool {
		ab, _ := a.Add(b)
		abc, _ := ab.Add(c)
		bc, _ := b.Add(c)
		abc2, _ := a.Add(bc)
		return abc == abc2
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestSubSelf(t *testing.T) {
	f := func(a U256) bool {
		diff, borrow := a.Sub(a)
		return diff == U256{} && borrow == 0
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestMulCommutative(t *testing.T) {
	f := func(a, b U256) bool {
		hi1, lo1 := a.Mul(b)
		hi2, lo2 := b.Mul(a)
		return hi1 == hi2 && lo1 == lo2
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestMulIdentity(t *testing.T) {
	f := func(a U256) bool {
		hi, lo := a.Mul(FromUint64(1))
		return hi == U256{} && lo == a
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestDoublingEqualsSelfAdd(t *testing.T) {
	f := func(a U256) bool {
		doubled, carryAdd := a.Add(a)
		carryMul, lo := a.MulSmall(2)
		return doubled == lo && carryAdd == carryMul
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestAdditionWrapExample(t *testing.T) {
	a := U256{Limbs: [4]uint64{^uint64(0), ^uint64(0), ^uint64(0), 0}}
	b := FromUint64(2)
	want := U256{Limbs: [4]uint64{1, 0, 0, 1}}
	got, carry := a.Add(b)
	if got != want || carry != 0 {
		t.Fatalf("a+b = %+v (carry %d), want %+v", got, carry, want)
	}
}

func TestSubtractionUnderflowExample(t *testing.T) {
	a := U256{}
	b := FromUint64(1)
	want := U256{Limbs: [4]uint64{^uint64(0), ^uint64(0), ^uint64(0), ^uint64(0)}}
	got, borrow := a.Sub(b)
	if got != want || borrow != 1 {
		t.Fatalf("a-b = %+v (borrow %d), want %+v", got, borrow, want)
	}
}

func TestMulByU256MatchesNarrowMul(t *testing.T) {
	// When x fits in 256 bits (top half zero), a 512x256 multiply must
	// agree with the 256x256 multiply on the low 512 bits, with a zero
	// high 256 bits.
	f := func(xLo, y U256) bool {
		x := xLo.ToU512()
		hiWide, loWide := x.MulByU256(y)
		hiNarrow, loNarrow := xLo.Mul(y)
		return hiWide == U256{} && loWide.Lo() == loNarrow && loWide.Limbs[4] == hiNarrow.Limbs[0] &&
			loWide.Limbs[5] == hiNarrow.Limbs[1] && loWide.Limbs[6] == hiNarrow.Limbs[2] && loWide.Limbs[7] == hiNarrow.Limbs[3]
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}
