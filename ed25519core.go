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

// Package ed25519core implements Ed25519 (RFC 8032) key generation, signing
// and verification from first principles, on top of the from-scratch
// uint256/field/scalar/curve/sha512internal layers in internal/.
package ed25519core

import (
	"fmt"
	"io"

	"github.com/cronokirby/ed25519go/internal/curve"
	"github.com/cronokirby/ed25519go/internal/scalar"
	"github.com/cronokirby/ed25519go/internal/sha512internal"
)

const (
	// PublicKeySize is the size, in bytes, of a compressed Edwards point.
	PublicKeySize = 32
	// PrivateKeySize is the size, in bytes, of a raw Ed25519 seed.
	PrivateKeySize = 32
	// SignatureSize is the size, in bytes, of an Ed25519 signature.
	SignatureSize = 64
)

// CoreError is the closed taxonomy of decode/verification failure kinds.
// Values are compared with errors.Is against the sentinels below.
type CoreError string

func (e CoreError) Error() string { return string(e) }

const (
	// ErrInvalidPoint reports a 32 byte string that does not decode to a
	// curve point: non-canonical y, no square root for x, or x = 0 with
	// the sign bit set.
	ErrInvalidPoint CoreError = "invalid point encoding"
	// ErrInvalidFieldElement reports a field element outside [0, p).
	ErrInvalidFieldElement CoreError = "invalid field element encoding"
	// ErrInvalidScalar reports a scalar that is >= the group order, or
	// too short to decode.
	ErrInvalidScalar CoreError = "invalid scalar encoding"
	// ErrInvalidEquation reports that the verification equation failed;
	// internal only, verify collapses this into a plain bool reject.
	ErrInvalidEquation CoreError = "invalid signature equation"
)

// PrivateKey is a 32 byte Ed25519 seed, per RFC 8032 section 5.1.5: the raw
// input to SHA-512 before clamping, not a scalar itself.
type PrivateKey [PrivateKeySize]byte

// Zero overwrites the key's backing array, so secret material does not
// linger in memory longer than the caller needs it.
func (sk *PrivateKey) Zero() {
	for i := range sk {
		sk[i] = 0
	}
}

// PublicKey is the 32 byte compressed encoding of an Ed25519 public point.
type PublicKey [PublicKeySize]byte

// Signature is the 64 byte R || S encoding of an Ed25519 signature.
type Signature [SignatureSize]byte

// GenerateKey draws a fresh PrivateKey from rand and derives its PublicKey.
// rand must be a cryptographically secure source; a failed read is
// propagated as a host-level error, per spec's "running out of entropy is
// a host-level concern" error policy.
func GenerateKey(rand io.Reader) (PublicKey, PrivateKey, error) {
	var sk PrivateKey
	if _, err := io.ReadFull(rand, sk[:]); err != nil {
		return PublicKey{}, PrivateKey{}, fmt.Errorf("ed25519core: reading random seed: %w", err)
	}
	return DerivePublic(sk), sk, nil
}

// expandSeed hashes a seed and splits the result into the clamped scalar s
// and the 32 byte nonce prefix, per RFC 8032 section 5.1.5.
func expandSeed(sk PrivateKey) (s scalar.Elt, prefix [32]byte) {
	h := sha512internal.Sum512(sk[:])
	var seed [32]byte
	copy(seed[:], h[:32])
	copy(prefix[:], h[32:])
	return scalar.Clamp(seed), prefix
}

// DerivePublic computes the public key corresponding to sk: A = encode(s*B)
// where s is sk's clamped scalar.
func DerivePublic(sk PrivateKey) PublicKey {
	s, _ := expandSeed(sk)
	return PublicKey(curve.ScalarBasepointMul(s).Encode())
}

// hashToScalar reduces SHA-512(parts...) to an element of Fl.
func hashToScalar(parts ...[]byte) scalar.Elt {
	var total int
	for _, p := range parts {
		total += len(p)
	}
	buf := make([]byte, 0, total)
	for _, p := range parts {
		buf = append(buf, p...)
	}
	return scalar.ReduceWideBytes(sha512internal.Sum512(buf))
}

// Sign computes an Ed25519 signature over message under sk, following RFC
// 8032 section 5.1.6: r = reduce(SHA-512(prefix||message)), R = r*B,
// k = reduce(SHA-512(R||A||message)), S = r + k*s.
func Sign(sk PrivateKey, message []byte) Signature {
	s, prefix := expandSeed(sk)
	a := curve.ScalarBasepointMul(s).Encode()

	r := hashToScalar(prefix[:], message)
	bigR := curve.ScalarBasepointMul(r).Encode()

	k := hashToScalar(bigR[:], a[:], message)
	bigS := r.Add(k.Mul(s))

	var out Signature
	copy(out[:32], bigR[:])
	sBytes := bigS.Bytes()
	copy(out[32:], sBytes[:])
	return out
}

// Verify reports whether sig is a valid Ed25519 signature over message
// under pk. All decode and equation failures collapse to false; callers
// that need to distinguish the failure kind use verifyResult directly.
func Verify(pk PublicKey, message []byte, sig Signature) bool {
	_, err := verifyResult(pk, message, sig)
	return err == nil
}

// verifyResult is the internal, error-revealing form of Verify, kept
// separate so tests and diagnostics can distinguish the failure kind
// without weakening the collapsed boolean surface that Verify exposes.
func verifyResult(pk PublicKey, message []byte, sig Signature) (struct{}, error) {
	r, ok := curve.Decode(sig[:32])
	if !ok {
		return struct{}{}, fmt.Errorf("ed25519core: decoding R: %w", ErrInvalidPoint)
	}
	s, ok := scalar.TryFromBytes(sig[32:])
	if !ok {
		return struct{}{}, fmt.Errorf("ed25519core: decoding S: %w", ErrInvalidScalar)
	}
	a, ok := curve.Decode(pk[:])
	if !ok {
		return struct{}{}, fmt.Errorf("ed25519core: decoding public key: %w", ErrInvalidPoint)
	}

	k := hashToScalar(sig[:32], pk[:], message)

	lhs := curve.ScalarBasepointMul(s)
	rhs := r.Add(a.ScalarMul(k))
	if !curve.Equal(lhs, rhs) {
		return struct{}{}, fmt.Errorf("ed25519core: checking signature equation: %w", ErrInvalidEquation)
	}
	return struct{}{}, nil
}
