// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package shrink

import "github.com/dsnet/golib/errs"

// bitWriter packs bits MSB first onto a Stream. The mask is one-hot and
// starts at 0x80; when it reaches zero the accumulated byte is pushed and
// the accumulator resets.
type bitWriter struct {
	s    *Stream
	bits uint8
	mask uint8
}

func newBitWriter(s *Stream) bitWriter {
	return bitWriter{s: s, mask: 0x80}
}

func (w *bitWriter) putBit(one bool) error {
	errs.Assert(w.mask != 0, errBitState)
	if one {
		w.bits |= w.mask
	}
	if w.mask >>= 1; w.mask == 0 {
		if err := w.s.put(w.bits); err != nil {
			return err
		}
		w.bits, w.mask = 0, 0x80
	}
	return nil
}

// putBits emits the low n bits of v, MSB first. n must be below 16.
func (w *bitWriter) putBits(v uint, n uint) error {
	errs.Assert(n > 0 && n < 16, errBitState)
	for mask := uint(1) << (n - 1); mask > 0; mask >>= 1 {
		if err := w.putBit(v&mask != 0); err != nil {
			return err
		}
	}
	return nil
}

// flush pushes a partial byte, if any. Padding bits are zero; a correct
// decoder never consumes them as data.
func (w *bitWriter) flush() error {
	if w.mask != 0x80 {
		if err := w.s.put(w.bits); err != nil {
			return err
		}
		w.bits, w.mask = 0, 0x80
	}
	return nil
}

// bitReader unpacks bits MSB first from a Stream. The mask starts at zero
// so that the first read pulls a fresh byte.
type bitReader struct {
	s    *Stream
	bits uint8
	mask uint8
}

func newBitReader(s *Stream) bitReader {
	return bitReader{s: s}
}

// getBits reads n bits, n below 16. An io.EOF mid-sequence propagates
// as-is: running out of encoded bytes is how the bit-packed codecs detect
// the end of their input.
func (r *bitReader) getBits(n uint) (uint, error) {
	errs.Assert(n < 16, errBitState)
	var x uint
	for i := uint(0); i < n; i++ {
		if r.mask == 0 {
			b, err := r.s.get()
			if err != nil {
				return 0, err
			}
			r.bits, r.mask = b, 0x80
		}
		x <<= 1
		if r.bits&r.mask != 0 {
			x |= 1
		}
		r.mask >>= 1
	}
	return x, nil
}

var errBitState error = Error("bit accumulator misuse")
