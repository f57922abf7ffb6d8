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
	"fmt"

	"golang.org/x/crypto/sha3"

	"github.com/cronokirby/ed25519go/internal/sha512internal"
)

// bInBytes and sInBytes are b_in_bytes and s_in_bytes respectively, for
// expand_message_xmd instantiated with SHA-512 (RFC 9380 section 5.3.1).
const (
	bInBytes = sha512internal.Size
	sInBytes = 128
)

// ExpandMessageXMD implements expand_message_xmd (RFC 9380 section 5.3.1),
// fixed to the from-scratch SHA-512 in internal/sha512internal rather than a
// caller-supplied hash, since this repo's only hash primitive is that one.
func ExpandMessageXMD(out []byte, domainSeparator, message []byte) error {
	lenInBytes := len(out)
	ell := (lenInBytes + bInBytes - 1) / bInBytes
	if ell > 255 {
		return fmt.Errorf("h2c: expand_message_xmd: requested length too long")
	}
	if len(domainSeparator) > 255 {
		return fmt.Errorf("h2c: expand_message_xmd: domain separator too long")
	}

	dstPrime := append(append([]byte{}, domainSeparator...), byte(len(domainSeparator)))

	zPad := make([]byte, sInBytes)
	lenBytes := []byte{byte(lenInBytes >> 8), byte(lenInBytes)}

	msgPrime := make([]byte, 0, len(zPad)+len(message)+len(lenBytes)+1+len(dstPrime))
	msgPrime = append(msgPrime, zPad...)
	msgPrime = append(msgPrime, message...)
	msgPrime = append(msgPrime, lenBytes...)
	msgPrime = append(msgPrime, 0)
	msgPrime = append(msgPrime, dstPrime...)

	b0 := sha512internal.Sum512(msgPrime)

	b1In := make([]byte, 0, bInBytes+1+len(dstPrime))
	b1In = append(b1In, b0[:]...)
	b1In = append(b1In, 1)
	b1In = append(b1In, dstPrime...)
	prev := sha512internal.Sum512(b1In)

	copy(out, prev[:])
	written := bInBytes
	if written > lenInBytes {
		written = lenInBytes
	}

	for i := 2; i <= ell; i++ {
		var xored [bInBytes]byte
		for j := range xored {
			xored[j] = b0[j] ^ prev[j]
		}
		bIIn := make([]byte, 0, bInBytes+1+len(dstPrime))
		bIIn = append(bIIn, xored[:]...)
		bIIn = append(bIIn, byte(i))
		bIIn = append(bIIn, dstPrime...)
		prev = sha512internal.Sum512(bIIn)

		remaining := lenInBytes - written
		n := bInBytes
		if n > remaining {
			n = remaining
		}
		copy(out[written:written+n], prev[:n])
		written += n
	}

	return nil
}

// ExpandMessageXOF implements expand_message_xof (RFC 9380 section 5.3.2),
// parameterized by a caller-supplied extendable output function using
// golang.org/x/crypto/sha3's ShakeHash as the XOF interface.
func ExpandMessageXOF(out []byte, xofFunc sha3.ShakeHash, domainSeparator, message []byte) error {
	lenInBytes := len(out)
	if len(domainSeparator) > 255 {
		return fmt.Errorf("h2c: expand_message_xof: domain separator too long")
	}

	dstPrime := append(append([]byte{}, domainSeparator...), byte(len(domainSeparator)))
	lenBytes := []byte{byte(lenInBytes >> 8), byte(lenInBytes)}

	xofFunc.Reset()
	_, _ = xofFunc.Write(message)
	_, _ = xofFunc.Write(lenBytes)
	_, _ = xofFunc.Write(dstPrime)
	if _, err := xofFunc.Read(out); err != nil {
		return fmt.Errorf("h2c: expand_message_xof: squeezing output: %w", err)
	}
	return nil
}
