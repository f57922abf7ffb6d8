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

// Package sha512internal implements SHA-512 from RFC 6234, independent of
// the standard library's crypto/sha512, since the Ed25519 protocol layer
// built on top of this module is meant to be self-contained rather than
// lean on a pre-built hash implementation.
package sha512internal

import "encoding/binary"

// Size is the number of bytes in a SHA-512 digest.
const Size = 64

// blockSize is the number of bytes in one message block (section 4).
const blockSize = 128

func ch(x, y, z uint64) uint64  { return (x & y) ^ (^x & z) }
func maj(x, y, z uint64) uint64 { return (x & y) ^ (x & z) ^ (y & z) }

func rotr(x uint64, n uint) uint64 { return (x >> n) | (x << (64 - n)) }

func bsig0(x uint64) uint64 { return rotr(x, 28) ^ rotr(x, 34) ^ rotr(x, 39) }
func bsig1(x uint64) uint64 { return rotr(x, 14) ^ rotr(x, 18) ^ rotr(x, 41) }
func ssig0(x uint64) uint64 { return rotr(x, 1) ^ rotr(x, 8) ^ (x >> 7) }
func ssig1(x uint64) uint64 { return rotr(x, 19) ^ rotr(x, 61) ^ (x >> 6) }

// k is the table of round constants from section 5.2.
var k = [80]uint64{
	0x428a2f98d728ae22, 0x7137449123ef65cd, 0xb5c0fbcfec4d3b2f, 0xe9b5dba58189dbbc,
	0x3956c25bf348b538, 0x59f111f1b605d019, 0x923f82a4af194f9b, 0xab1c5ed5da6d8118,
	0xd807aa98a3030242, 0x12835b0145706fbe, 0x243185be4ee4b28c, 0x550c7dc3d5ffb4e2,
	0x72be5d74f27b896f, 0x80deb1fe3b1696b1, 0x9bdc06a725c71235, 0xc19bf174cf692694,
	0xe49b69c19ef14ad2, 0xefbe4786384f25e3, 0x0fc19dc68b8cd5b5, 0x240ca1cc77ac9c65,
	0x2de92c6f592b0275, 0x4a7484aa6ea6e483, 0x5cb0a9dcbd41fbd4, 0x76f988da831153b5,
	0x983e5152ee66dfab, 0xa831c66d2db43210, 0xb00327c898fb213f, 0xbf597fc7beef0ee4,
	0xc6e00bf33da88fc2, 0xd5a79147930aa725, 0x06ca6351e003826f, 0x142929670a0e6e70,
	0x27b70a8546d22ffc, 0x2e1b21385c26c926, 0x4d2c6dfc5ac42aed, 0x53380d139d95b3df,
	0x650a73548baf63de, 0x766a0abb3c77b2a8, 0x81c2c92e47edaee6, 0x92722c851482353b,
	0xa2bfe8a14cf10364, 0xa81a664bbc423001, 0xc24b8b70d0f89791, 0xc76c51a30654be30,
	0xd192e819d6ef5218, 0xd69906245565a910, 0xf40e35855771202a, 0x106aa07032bbd1b8,
	0x19a4c116b8d2d0c8, 0x1e376c085141ab53, 0x2748774cdf8eeb99, 0x34b0bcb5e19b48a8,
	0x391c0cb3c5c95a63, 0x4ed8aa4ae3418acb, 0x5b9cca4f7763e373, 0x682e6ff3d6b2b8a3,
	0x748f82ee5defb2fc, 0x78a5636f43172f60, 0x84c87814a1f0ab72, 0x8cc702081a6439ec,
	0x90befffa23631e28, 0xa4506cebde82bde9, 0xbef9a3f7b2c67915, 0xc67178f2e372532b,
	0xca273eceea26619c, 0xd186b8c721c0c207, 0xeada7dd6cde0eb1e, 0xf57d4f7fee6ed178,
	0x06f067aa72176fba, 0x0a637dc5a2c898a6, 0x113f9804bef90dae, 0x1b710b35131c471b,
	0x28db77f523047d84, 0x32caab7b40c72493, 0x3c9ebe0a15c9bebc, 0x431d67c49c100d4c,
	0x4cc5d4becb3e42b6, 0x597f299cfc657e2a, 0x5fcb6fab3ad6faec, 0x6c44198c4a475817,
}

// initialH is the initial hash value from section 6.3.
var initialH = [8]uint64{
	0x6a09e667f3bcc908, 0xbb67ae8584caa73b, 0x3c6ef372fe94f82b, 0xa54ff53a5f1d36f1,
	0x510e527fade682d1, 0x9b05688c2b3e6c1f, 0x1f83d9abfb41bd6b, 0x5be0cd19137e2179,
}

// hashValue is the running state of a SHA-512 computation: the eight
// 64-bit chaining variables plus a reusable message schedule buffer.
type hashValue struct {
	data     [8]uint64
	schedule [80]uint64
}

func newHashValue() *hashValue {
	h := &hashValue{}
	h.data = initialH
	return h
}

// prepare fills the message schedule from one 128 byte block, per the
// expansion step of section 6.3.
func (h *hashValue) prepare(block *[blockSize]byte) {
	for t := 0; t < 16; t++ {
		h.schedule[t] = binary.BigEndian.Uint64(block[t*8 : t*8+8])
	}
	for t := 16; t < 80; t++ {
		h.schedule[t] = ssig1(h.schedule[t-2]) + h.schedule[t-7] + ssig0(h.schedule[t-15]) + h.schedule[t-16]
	}
}

// update absorbs one 128 byte block into the running hash state.
func (h *hashValue) update(block *[blockSize]byte) {
	h.prepare(block)
	w := &h.schedule

	a, b, c, d := h.data[0], h.data[1], h.data[2], h.data[3]
	e, f, g, hh := h.data[4], h.data[5], h.data[6], h.data[7]

	for t := 0; t < 80; t++ {
		t1 := hh + bsig1(e) + ch(e, f, g) + k[t] + w[t]
		t2 := bsig0(a) + maj(a, b, c)
		hh = g
		g = f
		f = e
		e = d + t1
		d = c
		c = b
		b = a
		a = t1 + t2
	}

	h.data[0] += a
	h.data[1] += b
	h.data[2] += c
	h.data[3] += d
	h.data[4] += e
	h.data[5] += f
	h.data[6] += g
	h.data[7] += hh
}

func (h *hashValue) result() [Size]byte {
	var out [Size]byte
	for i, v := range h.data {
		binary.BigEndian.PutUint64(out[i*8:i*8+8], v)
	}
	return out
}

// Sum512 computes the SHA-512 digest of message, following the padding
// scheme of section 4.2: a single 1 bit, zero bits up to a 896-bit
// boundary, and the 128-bit bit-length of the original message.
func Sum512(message []byte) [Size]byte {
	h := newHashValue()

	rest := message
	for len(rest) >= blockSize {
		var block [blockSize]byte
		copy(block[:], rest[:blockSize])
		h.update(&block)
		rest = rest[blockSize:]
	}

	var scratch [blockSize]byte
	n := copy(scratch[:], rest)
	scratch[n] = 0x80

	const desiredSize = blockSize - 16
	if n+1 > desiredSize {
		h.update(&scratch)
		scratch = [blockSize]byte{}
	}

	bitLen := uint64(len(message)) * 8
	binary.BigEndian.PutUint64(scratch[blockSize-8:], bitLen)
	h.update(&scratch)

	return h.result()
}
