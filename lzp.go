// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package shrink

import "io"

// The LZP codec predicts each byte from a hash of its context. Input is
// processed in blocks of up to BlockLength bytes; each block emits one
// mask byte (bit k set means byte k was predicted correctly and omitted)
// followed by the mispredicted bytes in order. The hash advances over
// every byte; the table is updated only on misses, identically on both
// sides.

func lzpHash(h uint32, b byte, mask uint32) uint32 {
	return (h<<4 ^ uint32(b)) & mask
}

func lzpEncode(s *Stream, cfg Config, table []byte) error {
	hmask := uint32(len(table) - 1)
	for i := range table {
		table[i] = 0
	}
	var (
		lit [8]byte
		h   uint32
	)
	for {
		var mask, j, i int
		for i = 0; i < cfg.BlockLength; i++ {
			c, err := s.get()
			if err == io.EOF {
				break
			}
			if err != nil {
				return err
			}
			if table[h] == c {
				mask |= 1 << uint(i)
			} else {
				table[h] = c
				lit[j] = c
				j++
			}
			h = lzpHash(h, c, hmask)
		}
		if i > 0 {
			if err := s.put(byte(mask)); err != nil {
				return err
			}
			for k := 0; k < j; k++ {
				if err := s.put(lit[k]); err != nil {
					return err
				}
			}
		}
		if i < cfg.BlockLength { // input exhausted mid-block
			return nil
		}
	}
}

func lzpDecode(s *Stream, cfg Config, table []byte) error {
	hmask := uint32(len(table) - 1)
	for i := range table {
		table[i] = 0
	}
	var h uint32
	for {
		mask, err := s.get()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		for i := 0; i < cfg.BlockLength; i++ {
			var c byte
			if mask&(1<<uint(i)) != 0 {
				c = table[h]
			} else {
				b, err := s.get()
				if err == io.EOF {
					// A short final block: the encoder wrote
					// mask bits only for the bytes it had.
					return nil
				}
				if err != nil {
					return err
				}
				c = b
				table[h] = c
			}
			if err := s.put(c); err != nil {
				return err
			}
			h = lzpHash(h, c, hmask)
		}
	}
}
