// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package shrink

import "io"

// mtfModel is the recency table of the Move-To-Front transform: rank i
// holds the i-th most recently seen byte value. Both directions of the
// codec must mutate it identically, byte for byte, or they fall out of
// sync.
type mtfModel [256]byte

func (m *mtfModel) init() {
	for i := range m {
		m[i] = byte(i)
	}
}

// promote moves the entry at the given rank to the front.
func (m *mtfModel) promote(rank int) {
	v := m[rank]
	copy(m[1:], m[:rank])
	m[0] = v
}

func mtfEncode(s *Stream) error {
	var m mtfModel
	m.init()
	for {
		c, err := s.get()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		rank := 0
		for m[rank] != c {
			rank++
		}
		if err := s.put(byte(rank)); err != nil {
			return err
		}
		m.promote(rank)
	}
}

func mtfDecode(s *Stream) error {
	var m mtfModel
	m.init()
	for {
		rank, err := s.get()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		c := m[rank]
		if err := s.put(c); err != nil {
			return err
		}
		m.promote(int(rank))
	}
}
