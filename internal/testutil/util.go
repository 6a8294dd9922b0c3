// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package testutil is a collection of testing helper methods.
package testutil

import (
	"encoding/hex"
	"io"
	"math/rand"
)

// ResizeData resizes the input. If n < 0, then the original input will be
// returned as is. If n <= len(input), then the input slice will be truncated.
// However, if n > len(input), then the input will be replicated to fill in
// the missing bytes, but each replicated string will be XORed by some byte
// mask to avoid favoring algorithms with large LZ77 windows.
//
// If n > len(input), then len(input) must be > 0.
func ResizeData(input []byte, n int) []byte {
	if n < 0 {
		return input
	}
	if len(input) >= n {
		return input[:n]
	}
	if len(input) == 0 {
		panic("unable to replicate an empty string")
	}

	var mask byte
	output := make([]byte, n)
	for i := range output {
		idx := i % len(input)
		output[i] = input[idx] ^ mask
		if idx == len(input)-1 {
			mask++
		}
	}
	return output
}

// MustDecodeHex must decode a hexadecimal string or else panics.
func MustDecodeHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

// RandBytes returns n bytes from a deterministic pseudo-random source.
// Such data is effectively incompressible.
func RandBytes(n int, seed int64) []byte {
	r := rand.New(rand.NewSource(seed))
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(r.Intn(256))
	}
	return b
}

// RepeatBytes returns n bytes that heavily favor LZ77-style compression:
// short random seeds followed by long copies from a random earlier offset.
func RepeatBytes(n int, seed int64) []byte {
	r := rand.New(rand.NewSource(seed))
	b := make([]byte, 0, n)
	for len(b) < n {
		if len(b) < 16 || r.Intn(4) == 0 {
			for i := 0; i < 4; i++ {
				b = append(b, byte(r.Intn(256)))
			}
			continue
		}
		length := 4 + r.Intn(60)
		dist := 1 + r.Intn(len(b))
		for i := 0; i < length && len(b) < n; i++ {
			b = append(b, b[len(b)-dist])
		}
	}
	return b[:n]
}

// FaultyByteReader returns Err after N bytes have been read through it.
type FaultyByteReader struct {
	R   io.ByteReader
	N   int64 // Number of valid bytes to read
	Err error // Return this error after N bytes
}

func (fr *FaultyByteReader) ReadByte() (byte, error) {
	if fr.N <= 0 {
		return 0, fr.Err
	}
	fr.N--
	return fr.R.ReadByte()
}

// FaultyByteWriter returns Err after N bytes have been written through it.
type FaultyByteWriter struct {
	W   io.ByteWriter
	N   int64 // Number of valid bytes to write
	Err error // Return this error after N bytes
}

func (fw *FaultyByteWriter) WriteByte(b byte) error {
	if fw.N <= 0 {
		return fw.Err
	}
	fw.N--
	return fw.W.WriteByte(b)
}
