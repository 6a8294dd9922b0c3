// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package shrink

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/howerj/shrink/internal/testutil"
)

var testCodecs = []Codec{RLE, LZSS, Elias, MTF, LZP}

func testCorpus() map[string][]byte {
	return map[string][]byte{
		"empty":   {},
		"byte":    {0x42},
		"heaven":  []byte("If not to heaven, then hand in hand to hell"),
		"runs":    []byte("aaaaaaaaaabbbbbbbbccddddddeeeeeeeefffffffhh"),
		"sam":     []byte(selfTestCorpus[3]),
		"zeros":   make([]byte, 2048),
		"random":  testutil.RandBytes(2048, 1),
		"repeats": testutil.RepeatBytes(4096, 2),
		"resized": testutil.ResizeData([]byte("the quick brown fox. "), 3000),
	}
}

func TestRoundTrip(t *testing.T) {
	for _, codec := range testCodecs {
		for name, input := range testCorpus() {
			comp := make([]byte, 4*len(input)+64)
			cn, err := EncodeBuffer(codec, input, comp)
			if err != nil {
				t.Errorf("%v/%s: encode error: %v", codec, name, err)
				continue
			}
			decomp := make([]byte, len(input)+64)
			dn, err := DecodeBuffer(codec, comp[:cn], decomp)
			if err != nil {
				t.Errorf("%v/%s: decode error: %v", codec, name, err)
				continue
			}
			if diff := cmp.Diff(input, decomp[:dn]); diff != "" {
				t.Errorf("%v/%s: round trip mismatch (-want +got):\n%s", codec, name, diff)
			}
		}
	}
}

// An empty input must produce a valid (possibly empty) stream for every
// codec, and that stream must decode back to nothing.
func TestEmptyInput(t *testing.T) {
	for _, codec := range testCodecs {
		comp := make([]byte, 64)
		cn, err := EncodeBuffer(codec, nil, comp)
		if err != nil {
			t.Fatalf("%v: encode error: %v", codec, err)
		}
		decomp := make([]byte, 64)
		dn, err := DecodeBuffer(codec, comp[:cn], decomp)
		if err != nil {
			t.Fatalf("%v: decode error: %v", codec, err)
		}
		if dn != 0 {
			t.Errorf("%v: empty input decoded to %d bytes", codec, dn)
		}
	}
}

// Sparse data is RLE territory: 2KiB of zeros must shrink to a handful of
// run commands, well below what LZSS manages on the same input.
func TestZerosFavorRLE(t *testing.T) {
	zeros := make([]byte, 2048)
	comp := make([]byte, 4096)
	rn, err := EncodeBuffer(RLE, zeros, comp)
	if err != nil {
		t.Fatalf("rle encode error: %v", err)
	}
	ln, err := EncodeBuffer(LZSS, zeros, comp)
	if err != nil {
		t.Fatalf("lzss encode error: %v", err)
	}
	if rn >= 100 {
		t.Errorf("rle output got %d bytes, want below 100", rn)
	}
	if rn >= ln {
		t.Errorf("rle output (%d) not smaller than lzss output (%d)", rn, ln)
	}
}

// Incompressible data costs LZSS 9 bits per literal, so the output is
// larger than the input. That is expansion, not an error.
func TestRandomExpands(t *testing.T) {
	input := testutil.RandBytes(2048, 7)
	comp := make([]byte, 2*len(input))
	cn, err := EncodeBuffer(LZSS, input, comp)
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}
	if cn < len(input) {
		t.Errorf("random data compressed from %d to %d bytes", len(input), cn)
	}
	decomp := make([]byte, len(input)+64)
	dn, err := DecodeBuffer(LZSS, comp[:cn], decomp)
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if !bytes.Equal(input, decomp[:dn]) {
		t.Error("round trip mismatch")
	}
}

func TestSelfTest(t *testing.T) {
	if err := SelfTest(); err != nil {
		t.Fatal(err)
	}
}

func TestCodecString(t *testing.T) {
	names := map[Codec]string{
		RLE: "rle", LZSS: "lzss", Elias: "elias", MTF: "mtf", LZP: "lzp",
		Codec(99): "unknown",
	}
	for codec, want := range names {
		if got := codec.String(); got != want {
			t.Errorf("Codec(%d).String() = %q, want %q", int(codec), got, want)
		}
	}
}

func TestConfigErrors(t *testing.T) {
	vectors := []struct {
		codec Codec
		cfg   Config
		want  error
	}{
		{LZSS, Config{}, nil},
		{LZSS, Config{WindowExp: 6, LengthExp: 4, Threshold: 2}, nil},
		{LZSS, Config{WindowExp: 5}, ErrConfig},
		{LZSS, Config{WindowExp: 16}, ErrConfig},
		{LZSS, Config{WindowExp: 8, LengthExp: 9}, ErrConfig},
		{LZSS, Config{WindowExp: 15, LengthExp: 2}, ErrConfig}, // EI+EJ > 16
		{LZSS, Config{Threshold: 1}, ErrConfig},
		{LZSS, Config{WindowExp: 6, LengthExp: 6, Threshold: 4}, ErrConfig}, // F > N
		{RLE, Config{RunLength: 129}, ErrConfig},
		{RLE, Config{RunLength: 64}, nil},
		{RLE, Config{RunExtra: 9}, ErrConfig},
		{RLE, Config{RunLength: 2, RunExtra: 2}, ErrConfig},
		{LZP, Config{HashOrder: 7}, ErrConfig},
		{LZP, Config{HashOrder: 25}, ErrConfig},
		{LZP, Config{BlockLength: 9}, ErrConfig},
		{LZP, Config{HashOrder: 12, BlockLength: 4}, nil},
		{Codec(17), Config{}, ErrUnknownCodec},
	}
	for i, v := range vectors {
		_, err := NewCoder(v.codec, v.cfg)
		if err != v.want {
			t.Errorf("test %d, NewCoder(%v) error: got %v, want %v", i, v.codec, err, v.want)
		}
	}
}

func TestScratch(t *testing.T) {
	if _, err := NewCoder(LZSS, Config{Scratch: make([]byte, 16)}); err != ErrScratchSize {
		t.Errorf("small LZSS scratch: got %v, want %v", err, ErrScratchSize)
	}
	if _, err := NewCoder(LZP, Config{Scratch: make([]byte, 1024)}); err != ErrScratchSize {
		t.Errorf("small LZP scratch: got %v, want %v", err, ErrScratchSize)
	}
	if n := ScratchSize(LZSS, Config{}); n != 2*2048 {
		t.Errorf("ScratchSize(LZSS) = %d, want %d", n, 2*2048)
	}
	if n := ScratchSize(LZP, Config{}); n != 1<<16 {
		t.Errorf("ScratchSize(LZP) = %d, want %d", n, 1<<16)
	}
	if n := ScratchSize(MTF, Config{}); n != 0 {
		t.Errorf("ScratchSize(MTF) = %d, want 0", n)
	}

	// A caller-supplied arena must be fully equivalent to an allocated one.
	input := []byte(selfTestCorpus[1])
	for _, codec := range []Codec{LZSS, LZP} {
		arena := make([]byte, ScratchSize(codec, Config{}))
		enc, err := NewCoder(codec, Config{Scratch: arena})
		if err != nil {
			t.Fatalf("%v: NewCoder error: %v", codec, err)
		}
		var comp bytes.Buffer
		if err := enc.Encode(&Stream{In: bytes.NewReader(input), Out: &comp}); err != nil {
			t.Fatalf("%v: encode error: %v", codec, err)
		}
		want := make([]byte, comp.Len())
		if n, err := EncodeBuffer(codec, input, want); err != nil || n != comp.Len() {
			t.Fatalf("%v: reference encode: n=%d err=%v", codec, n, err)
		}
		if !bytes.Equal(comp.Bytes(), want) {
			t.Errorf("%v: arena output differs from allocated output", codec)
		}

		var decomp bytes.Buffer
		if err := enc.Decode(&Stream{In: bytes.NewReader(comp.Bytes()), Out: &decomp}); err != nil {
			t.Fatalf("%v: decode error: %v", codec, err)
		}
		if !bytes.Equal(decomp.Bytes(), input) {
			t.Errorf("%v: arena round trip mismatch", codec)
		}
	}
}

func TestBufferTooSmall(t *testing.T) {
	out := make([]byte, 2)
	if _, err := EncodeBuffer(RLE, []byte("hello world"), out); err != ErrBufferSize {
		t.Errorf("encode: got %v, want %v", err, ErrBufferSize)
	}
}

func TestStreamCounts(t *testing.T) {
	input := []byte("counting bytes in and out")
	var out bytes.Buffer
	s := &Stream{In: bytes.NewReader(input), Out: &out}
	if err := Encode(MTF, s); err != nil {
		t.Fatalf("encode error: %v", err)
	}
	if s.Read != int64(len(input)) {
		t.Errorf("Read = %d, want %d", s.Read, len(input))
	}
	if s.Wrote != int64(out.Len()) {
		t.Errorf("Wrote = %d, want %d", s.Wrote, out.Len())
	}
}

// A non-EOF failure from either side of the stream must abort the
// transform and surface as-is.
func TestStreamFaults(t *testing.T) {
	fault := Error("injected fault")
	input := testutil.RepeatBytes(512, 3)
	for _, codec := range testCodecs {
		var out bytes.Buffer
		s := &Stream{
			In:  &testutil.FaultyByteReader{R: bytes.NewReader(input), N: 17, Err: fault},
			Out: &out,
		}
		if err := Encode(codec, s); err != fault {
			t.Errorf("%v: faulty reader: got %v, want %v", codec, err, fault)
		}

		comp := make([]byte, 2*len(input))
		cn, err := EncodeBuffer(codec, input, comp)
		if err != nil {
			t.Fatalf("%v: encode error: %v", codec, err)
		}
		s = &Stream{
			In:  bytes.NewReader(comp[:cn]),
			Out: &testutil.FaultyByteWriter{W: &out, N: 3, Err: fault},
		}
		if err := Decode(codec, s); err != fault {
			t.Errorf("%v: faulty writer: got %v, want %v", codec, err, fault)
		}
	}
}
