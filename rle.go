// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package shrink

import "io"

// The RLE format is a sequence of command bytes with payloads. A command
// byte c above RL introduces a literal block of c-RL raw bytes; a command
// byte c of at most RL introduces a run: the next byte repeated c+1+ROVER
// times. Runs shorter than ROVER extra repeats cost more as a run command
// than as literals, so they are folded into the pending literal block.

// rleWriteBuf flushes the pending literal block, if any.
func rleWriteBuf(s *Stream, buf []byte, rl int) error {
	if len(buf) == 0 {
		return nil
	}
	if err := s.put(byte(len(buf) + rl)); err != nil {
		return err
	}
	for _, b := range buf {
		if err := s.put(b); err != nil {
			return err
		}
	}
	return nil
}

func rleEncode(s *Stream, cfg Config) error {
	rl, rover := cfg.RunLength, cfg.RunExtra
	var bufArr [128]byte // cfg.RunLength never exceeds 128
	buf, idx := bufArr[:rl], 0
	flush := func() error {
		err := rleWriteBuf(s, buf[:idx], rl)
		idx = 0
		return err
	}
	append1 := func(b byte) error {
		buf[idx] = b
		idx++
		if idx == rl-1 { // keep the command byte below 256
			return flush()
		}
		return nil
	}

	prev := -1
	c, err := s.get()
	for {
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if int(c) == prev {
			// Count further repeats of c. The cap keeps the run
			// command byte within the run half of the format.
			j, next := 0, -1
			for {
				b, e := s.get()
				if e == io.EOF {
					break
				}
				if e != nil {
					return e
				}
				if int(b) != prev || j >= rl+rover-1 {
					next = int(b)
					break
				}
				j++
			}
			if j > rover { // worth a run command
				if err := flush(); err != nil {
					return err
				}
				if err := s.put(byte(j - rover)); err != nil {
					return err
				}
				if err := s.put(c); err != nil {
					return err
				}
			} else { // fold the short run into the literals
				for k := 0; k <= j; k++ {
					if err := append1(c); err != nil {
						return err
					}
				}
			}
			if next < 0 {
				break
			}
			c = byte(next)
		}
		if err := append1(c); err != nil {
			return err
		}
		prev = int(c)
		c, err = s.get()
	}
	return flush()
}

func rleDecode(s *Stream, cfg Config) error {
	rl, rover := cfg.RunLength, cfg.RunExtra
	for {
		c, err := s.get()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if int(c) > rl { // literal block
			count := int(c) - rl
			for i := 0; i < count; i++ {
				b, err := s.get()
				if err != nil {
					return noEOF(err)
				}
				if err := s.put(b); err != nil {
					return err
				}
			}
			continue
		}
		// Repeated byte.
		count := int(c) + 1 + rover
		b, err := s.get()
		if err != nil {
			return noEOF(err)
		}
		for i := 0; i < count; i++ {
			if err := s.put(b); err != nil {
				return err
			}
		}
	}
}

// noEOF converts io.EOF into io.ErrUnexpectedEOF for reads that occur
// where the format still owes us payload bytes.
func noEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
