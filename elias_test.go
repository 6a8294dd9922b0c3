// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package shrink

import (
	"bytes"
	"testing"

	"github.com/howerj/shrink/internal/testutil"
)

func TestEliasFormat(t *testing.T) {
	vectors := []struct {
		input  []byte
		output []byte
	}{{
		// Even the empty stream carries the terminal code: four ones,
		// a zero, and the suffix 0001 (gamma of 17), then padding.
		input:  []byte{},
		output: testutil.MustDecodeHex("f080"),
	}, {
		// Nibbles 6 and 1: gamma(7)=11011, gamma(2)=100, terminal.
		input:  []byte("a"),
		output: testutil.MustDecodeHex("dcf080"),
	}, {
		// Nibble 0 is the cheapest symbol: gamma(1) is a single zero
		// bit, so 0x00 codes as two bits.
		input:  []byte{0x00},
		output: testutil.MustDecodeHex("3c20"),
	}}
	for i, v := range vectors {
		comp := make([]byte, 4*len(v.input)+8)
		cn, err := EncodeBuffer(Elias, v.input, comp)
		if err != nil {
			t.Errorf("test %d, encode error: %v", i, err)
			continue
		}
		if !bytes.Equal(comp[:cn], v.output) {
			t.Errorf("test %d, output mismatch:\ngot  %x\nwant %x", i, comp[:cn], v.output)
		}
		decomp := make([]byte, len(v.input)+8)
		dn, err := DecodeBuffer(Elias, v.output, decomp)
		if err != nil {
			t.Errorf("test %d, decode error: %v", i, err)
			continue
		}
		if !bytes.Equal(decomp[:dn], v.input) {
			t.Errorf("test %d, input mismatch:\ngot  %x\nwant %x", i, decomp[:dn], v.input)
		}
	}
}

func TestEliasCorrupt(t *testing.T) {
	vectors := [][]byte{
		testutil.MustDecodeHex("ffff"), // unary prefix longer than any symbol
		testutil.MustDecodeHex("f100"), // gamma value 18, above the terminal
	}
	for i, v := range vectors {
		out := make([]byte, 64)
		if _, err := DecodeBuffer(Elias, v, out); err != ErrCorrupt {
			t.Errorf("test %d, error: got %v, want %v", i, err, ErrCorrupt)
		}
	}
}

// Low-valued nibbles code in fewer bits, so data made of small nibbles
// must actually compress.
func TestEliasCompresses(t *testing.T) {
	input := bytes.Repeat([]byte{0x00, 0x01, 0x10, 0x11}, 64)
	comp := make([]byte, 4*len(input))
	cn, err := EncodeBuffer(Elias, input, comp)
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}
	if cn >= len(input) {
		t.Errorf("small-nibble data did not compress: %d to %d bytes", len(input), cn)
	}
}
