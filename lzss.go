// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package shrink

import "io"

// The LZSS stream is a bit stream of units. Each unit is one control bit:
// 1 for a literal followed by 8 bits of the byte, 0 for a reference
// followed by WindowExp bits of dictionary position and LengthExp bits of
// match length biased by -Threshold. All fields are MSB first.
//
// The dictionary is the last N bytes of output, pre-initialized with the
// fill byte; N is a power of two so wraparound is a mask rather than a
// modulo.

const (
	lzssReference = false
	lzssLiteral   = true
)

func lzssLiteralUnit(w *bitWriter, c byte) error {
	if err := w.putBit(lzssLiteral); err != nil {
		return err
	}
	return w.putBits(uint(c), 8)
}

func lzssReferenceUnit(w *bitWriter, cfg Config, pos, length int) error {
	if err := w.putBit(lzssReference); err != nil {
		return err
	}
	if err := w.putBits(uint(pos), uint(cfg.WindowExp)); err != nil {
		return err
	}
	return w.putBits(uint(length-cfg.Threshold), uint(cfg.LengthExp))
}

func lzssEncode(s *Stream, cfg Config, window []byte) error {
	var (
		n = cfg.window()    // dictionary size
		f = cfg.lookahead() // lookahead size
		p = cfg.Threshold
		w = newBitWriter(s)
	)
	buf := window[:2*n]
	for i := 0; i < n-f; i++ {
		buf[i] = cfg.Fill
	}

	// Fill the lookahead region from the stream.
	bufferend := n - f
	for bufferend < 2*n {
		c, err := s.get()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		buf[bufferend] = c
		bufferend++
	}

	for r, st := n-f, 0; r < bufferend; {
		f1 := f
		if bufferend-r < f1 {
			f1 = bufferend - r
		}
		c := buf[r]

		// Scan left to right for the longest match; on ties the
		// earliest position found is kept. The scan order is part of
		// the format's reproducibility contract, not an optimization
		// target.
		x, y := 0, 1
		for i := st; i < r; i++ {
			if buf[i] != c {
				continue
			}
			j := 1
			for ; j < f1; j++ {
				if buf[i+j] != buf[r+j] {
					break
				}
			}
			if j > y {
				x, y = i, j
			}
		}

		if y <= p { // reference would cost more than the literals
			y = 1
			if err := lzssLiteralUnit(&w, c); err != nil {
				return err
			}
		} else {
			if err := lzssReferenceUnit(&w, cfg, x&(n-1), y); err != nil {
				return err
			}
		}
		r += y
		st += y

		if r >= 2*n-f { // slide the window down and refill
			copy(buf, buf[n:2*n])
			bufferend -= n
			r -= n
			st -= n
			for bufferend < 2*n {
				c, err := s.get()
				if err == io.EOF {
					break
				}
				if err != nil {
					return err
				}
				buf[bufferend] = c
				bufferend++
			}
		}
	}
	return w.flush()
}

func lzssDecode(s *Stream, cfg Config, window []byte) error {
	var (
		n = cfg.window()
		f = cfg.lookahead()
		p = cfg.Threshold
		r = newBitReader(s)
	)
	dict := window[:n]
	for i := 0; i < n-f; i++ {
		dict[i] = cfg.Fill
	}

	// The write cursor chases the encoder's window cursor; the dictionary
	// is circular during decode.
	cur := n - f
	for {
		ctrl, err := r.getBits(1)
		if err != nil {
			return eofOK(err) // no more units
		}
		if ctrl == 1 { // literal
			v, err := r.getBits(8)
			if err != nil {
				return eofOK(err)
			}
			if err := s.put(byte(v)); err != nil {
				return err
			}
			dict[cur] = byte(v)
			cur = (cur + 1) & (n - 1)
			continue
		}
		pos, err := r.getBits(uint(cfg.WindowExp))
		if err != nil {
			return eofOK(err)
		}
		length, err := r.getBits(uint(cfg.LengthExp))
		if err != nil {
			return eofOK(err)
		}
		// Copy one byte at a time: the reference may overlap the bytes
		// it is producing.
		for k := 0; k < int(length)+p; k++ {
			c := dict[(int(pos)+k)&(n-1)]
			if err := s.put(c); err != nil {
				return err
			}
			dict[cur] = c
			cur = (cur + 1) & (n - 1)
		}
	}
}

// eofOK maps io.EOF to a clean termination. The bit-packed formats carry
// no length header; their decoders stop when the stream has no more bytes
// to offer, which can happen on any bit read within a unit because of the
// encoder's zero padding.
func eofOK(err error) error {
	if err == io.EOF {
		return nil
	}
	return err
}
