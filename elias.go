// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package shrink

import "io"

// The Elias codec applies the Elias-Gamma universal code to the input
// taken as a sequence of 4-bit symbols. Each symbol s is coded as the
// gamma code of s+1: a unary prefix of floor(log2(s+1)) one bits, a zero
// bit, then the binary digits of s+1 below its leading one, MSB first.
// Symbol 16 cannot occur in data and marks the end of the stream.

const eliasTerminal = 16 // one past the largest 4-bit symbol

func eliasPut(w *bitWriter, symbol uint) error {
	v := symbol + 1
	prefix := 0
	for x := v; x > 1; x >>= 1 {
		prefix++
	}
	for i := 0; i < prefix; i++ {
		if err := w.putBit(true); err != nil {
			return err
		}
	}
	if err := w.putBit(false); err != nil {
		return err
	}
	if prefix == 0 {
		return nil
	}
	return w.putBits(v&(1<<uint(prefix)-1), uint(prefix))
}

func eliasEncode(s *Stream) error {
	r, w := newBitReader(s), newBitWriter(s)
	for {
		sym, err := r.getBits(4)
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if err := eliasPut(&w, sym); err != nil {
			return err
		}
	}
	if err := eliasPut(&w, eliasTerminal); err != nil {
		return err
	}
	return w.flush()
}

func eliasDecode(s *Stream) error {
	r, w := newBitReader(s), newBitWriter(s)
	for {
		prefix := 0
		for {
			bit, err := r.getBits(1)
			if err != nil {
				if prefix == 0 {
					return eofOK(err) // clean end between codes
				}
				return noEOF(err)
			}
			if bit == 0 {
				break
			}
			if prefix++; prefix > 4 {
				return ErrCorrupt // gamma code beyond the terminal
			}
		}
		v := uint(1)
		if prefix > 0 {
			suffix, err := r.getBits(uint(prefix))
			if err != nil {
				return noEOF(err)
			}
			v = 1<<uint(prefix) | suffix
		}
		switch symbol := v - 1; {
		case symbol == eliasTerminal:
			return w.flush()
		case symbol > eliasTerminal:
			return ErrCorrupt
		default:
			if err := w.putBits(symbol, 4); err != nil {
				return err
			}
		}
	}
}
