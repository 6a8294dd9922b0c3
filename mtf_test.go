// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package shrink

import (
	"bytes"
	"testing"

	"github.com/howerj/shrink/internal/testutil"
)

func TestMTFFormat(t *testing.T) {
	vectors := []struct {
		input  []byte
		output []byte
	}{{
		input:  []byte{},
		output: []byte{},
	}, {
		// Identity model: the first occurrence of a byte codes as its
		// own value, recently seen bytes code near zero.
		input:  []byte("banana"),
		output: testutil.MustDecodeHex("62626e010101"),
	}, {
		// A run of one value collapses to a run of zeros after the
		// first occurrence.
		input:  []byte{7, 7, 7, 7},
		output: testutil.MustDecodeHex("07000000"),
	}}
	for i, v := range vectors {
		comp := make([]byte, len(v.input)+8)
		cn, err := EncodeBuffer(MTF, v.input, comp)
		if err != nil {
			t.Errorf("test %d, encode error: %v", i, err)
			continue
		}
		if !bytes.Equal(comp[:cn], v.output) {
			t.Errorf("test %d, output mismatch:\ngot  %x\nwant %x", i, comp[:cn], v.output)
		}
		decomp := make([]byte, len(v.input)+8)
		dn, err := DecodeBuffer(MTF, v.output, decomp)
		if err != nil {
			t.Errorf("test %d, decode error: %v", i, err)
			continue
		}
		if !bytes.Equal(decomp[:dn], v.input) {
			t.Errorf("test %d, input mismatch:\ngot  %x\nwant %x", i, decomp[:dn], v.input)
		}
	}
}

// The transform is length preserving and a bijection on byte sequences:
// decode(encode(x)) == x for arbitrary data, which also proves the two
// models stay synchronized byte for byte.
func TestMTFSymmetry(t *testing.T) {
	input := testutil.RandBytes(8192, 5)
	comp := make([]byte, len(input))
	cn, err := EncodeBuffer(MTF, input, comp)
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}
	if cn != len(input) {
		t.Fatalf("length not preserved: %d to %d bytes", len(input), cn)
	}
	decomp := make([]byte, len(input))
	dn, err := DecodeBuffer(MTF, comp, decomp)
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if !bytes.Equal(decomp[:dn], input) {
		t.Error("round trip mismatch")
	}
}

// Model promotion must behave identically on both sides; a direct check
// on the table state after a known sequence.
func TestMTFModel(t *testing.T) {
	var enc, dec mtfModel
	enc.init()
	dec.init()
	input := []byte("abracadabra")
	for _, c := range input {
		rank := 0
		for enc[rank] != c {
			rank++
		}
		enc.promote(rank)
		if got := dec[rank]; got != c {
			t.Fatalf("decoder model lookup: got %q, want %q", got, c)
		}
		dec.promote(rank)
	}
	if enc != dec {
		t.Error("encoder and decoder models diverged")
	}
}
