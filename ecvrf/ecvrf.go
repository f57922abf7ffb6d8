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

// Package ecvrf implements the ECVRF-EDWARDS25519-SHA512-ELL2 suite from the
// "Verifiable Random Functions (VRFs)" IETF draft, built entirely on this
// repo's own curve/scalar/sha512internal layers rather than a third-party
// curve implementation.
package ecvrf

import (
	"fmt"

	ed25519core "github.com/cronokirby/ed25519go"
	"github.com/cronokirby/ed25519go/h2c"
	"github.com/cronokirby/ed25519go/internal/curve"
	"github.com/cronokirby/ed25519go/internal/scalar"
	"github.com/cronokirby/ed25519go/internal/sha512internal"
)

const (
	// ProofSize is the size, in bytes, of an ECVRF proof: a compressed
	// point, a 16 byte truncated challenge, and a 32 byte scalar.
	ProofSize = 80
	// OutputSize is the size, in bytes, of a VRF output hash.
	OutputSize = 64

	zeroString  = 0x00
	twoString   = 0x02
	threeString = 0x03
	suiteString = 0x04
)

// h2cDST is "ECVRF_" || h2c_suite_ID_string || suite_string, the domain
// separation tag required of the hash-to-curve step by section 5.4.1.2.
var h2cDST = []byte("ECVRF_edwards25519_XMD:SHA-512_ELL2_NU_\x04")

// expandSecret hashes an Ed25519 seed into its clamped VRF scalar x and the
// 32 byte nonce-generation prefix, following RFC 8032 section 5.1.5 (the
// same derivation ed25519core uses for Sign).
func expandSecret(sk ed25519core.PrivateKey) (x scalar.Elt, prefix [32]byte) {
	h := sha512internal.Sum512(sk[:])
	var seed [32]byte
	copy(seed[:], h[:32])
	copy(prefix[:], h[32:])
	return scalar.Clamp(seed), prefix
}

// Prove implements ECVRF_prove.
func Prove(sk ed25519core.PrivateKey, alphaString []byte) []byte {
	// 1. Derive the VRF secret scalar x and public key Y = x*B.
	x, prefix := expandSecret(sk)
	y := ed25519core.DerivePublic(sk)

	// 2. H = ECVRF_hash_to_curve(Y, alpha_string)
	h, err := hashToCurveH2CSuite(y[:], alphaString)
	if err != nil {
		panic("ecvrf: failed to hash to curve: " + err.Error())
	}
	hString := h.Encode()

	// 4. Gamma = x*H
	gamma := h.ScalarMul(x)
	gammaString := gamma.Encode()

	// 5. k = ECVRF_nonce_generation(SK, h_string)
	k := scalar.ReduceWideBytes(sha512internal.Sum512(append(append([]byte{}, prefix[:]...), hString[:]...)))

	// 6. c = ECVRF_hash_points(H, Gamma, k*B, k*H)
	kB := curve.ScalarBasepointMul(k)
	kH := h.ScalarMul(k)
	c := hashPoints(hString[:], gammaString[:], kB, kH)

	// 7. s = (k + c*x) mod L
	s := k.Add(c.Mul(x))

	// 8. pi_string = point_to_string(Gamma) || int_to_string(c, 16) ||
	// int_to_string(s, 32)
	var piString [ProofSize]byte
	copy(piString[:32], gammaString[:])
	cBytes := c.Bytes()
	copy(piString[32:48], cBytes[:16])
	sBytes := s.Bytes()
	copy(piString[48:], sBytes[:])

	return piString[:]
}

// ProofToHash implements ECVRF_proof_to_hash. piString must have come from
// Prove, or from a successful Verify call.
func ProofToHash(piString []byte) ([]byte, error) {
	gamma, _, _, err := decodeProof(piString)
	if err != nil {
		return nil, fmt.Errorf("ecvrf: decoding proof: %w", err)
	}
	return gammaToHash(gamma), nil
}

// Verify implements ECVRF_verify, including the public key validation of
// section 5.6.1 (rejecting small-order public keys).
func Verify(pk ed25519core.PublicKey, piString, alphaString []byte) (bool, []byte) {
	gamma, c, s, err := decodeProof(piString)
	if err != nil {
		return false, nil
	}
	gammaString := piString[:32]

	y, ok := curve.Decode(pk[:])
	if !ok {
		return false, nil
	}
	cY := y.MulByCofactor()
	if curve.Equal(cY, curve.Identity()) {
		return false, nil
	}

	h, err := hashToCurveH2CSuite(pk[:], alphaString)
	if err != nil {
		panic("ecvrf: failed to hash to curve: " + err.Error())
	}
	hString := h.Encode()

	// 5. U = s*B - c*Y
	u := curve.ScalarBasepointMul(s).Add(y.Negate().ScalarMul(c))

	// 6. V = s*H - c*Gamma
	v := h.ScalarMul(s).Add(gamma.Negate().ScalarMul(c))

	// 7. c' = ECVRF_hash_points(H, Gamma, U, V)
	cPrime := hashPoints(hString[:], gammaString, u, v)

	if !scalar.Equal(c, cPrime) {
		return false, nil
	}
	return true, gammaToHash(gamma)
}

func gammaToHash(gamma curve.Point) []byte {
	cG := gamma.MulByCofactor().Encode()
	buf := make([]byte, 0, 2+32+1)
	buf = append(buf, suiteString, threeString)
	buf = append(buf, cG[:]...)
	buf = append(buf, zeroString)
	digest := sha512internal.Sum512(buf)
	return digest[:]
}

func hashToCurveH2CSuite(y, alphaString []byte) (curve.Point, error) {
	stringToHash := append(append([]byte{}, y...), alphaString...)
	return h2c.Edwards25519_XMD_SHA512_ELL2_NU(h2cDST, stringToHash)
}

func hashPoints(p1, p2 []byte, p3, p4 curve.Point) scalar.Elt {
	p3b := p3.Encode()
	p4b := p4.Encode()

	buf := make([]byte, 0, 2+len(p1)+len(p2)+32+32+1)
	buf = append(buf, suiteString, twoString)
	buf = append(buf, p1...)
	buf = append(buf, p2...)
	buf = append(buf, p3b[:]...)
	buf = append(buf, p4b[:]...)
	buf = append(buf, zeroString)
	digest := sha512internal.Sum512(buf)

	var cBytes [32]byte
	copy(cBytes[:16], digest[:16])
	c, ok := scalar.TryFromBytes(cBytes[:])
	if !ok {
		panic("ecvrf: truncated challenge scalar was out of range")
	}
	return c
}

func decodeProof(piString []byte) (curve.Point, scalar.Elt, scalar.Elt, error) {
	if len(piString) != ProofSize {
		return curve.Point{}, scalar.Elt{}, scalar.Elt{}, fmt.Errorf("ecvrf: invalid proof size: %d", len(piString))
	}

	gamma, ok := curve.Decode(piString[:32])
	if !ok {
		return curve.Point{}, scalar.Elt{}, scalar.Elt{}, fmt.Errorf("ecvrf: failed to decode gamma")
	}

	var cBytes [32]byte
	copy(cBytes[:16], piString[32:48])
	c, ok := scalar.TryFromBytes(cBytes[:])
	if !ok {
		return curve.Point{}, scalar.Elt{}, scalar.Elt{}, fmt.Errorf("ecvrf: failed to deserialize c scalar")
	}

	s, ok := scalar.TryFromBytes(piString[48:])
	if !ok {
		return curve.Point{}, scalar.Elt{}, scalar.Elt{}, fmt.Errorf("ecvrf: failed to deserialize s scalar")
	}

	return gamma, c, s, nil
}
