// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package shrink

import "io"

// A Stream couples the byte source and byte sink for one transform and
// tallies traffic in both directions. Exhaustion of In is signaled by
// io.EOF and terminates the transform normally; any other error from In
// or Out aborts it.
//
// A Stream is owned by exactly one transform invocation at a time.
type Stream struct {
	In  io.ByteReader
	Out io.ByteWriter

	// Read and Wrote count the bytes successfully pulled from In and
	// pushed to Out. They are informational; the codecs never use them
	// for control flow.
	Read  int64
	Wrote int64
}

func (s *Stream) get() (byte, error) {
	b, err := s.In.ReadByte()
	if err == nil {
		s.Read++
	}
	return b, err
}

func (s *Stream) put(b byte) error {
	err := s.Out.WriteByte(b)
	if err == nil {
		s.Wrote++
	}
	return err
}

// capWriter writes into a fixed-capacity byte slice and fails with
// ErrBufferSize when full.
type capWriter struct {
	buf []byte
	n   int
}

func (w *capWriter) WriteByte(b byte) error {
	if w.n >= len(w.buf) {
		return ErrBufferSize
	}
	w.buf[w.n] = b
	w.n++
	return nil
}

// CRC-16/CCITT, polynomial in normal form, bytes processed MSB first.
const crc16Poly = 0x1021

// CRC16Init is the initial remainder of the CRC-16 used by HashReader and
// HashWriter.
const CRC16Init = 0xFFFF

func crc16Update(crc uint16, b byte) uint16 {
	crc ^= uint16(b) << 8
	for i := 0; i < 8; i++ {
		if crc&0x8000 != 0 {
			crc = crc<<1 ^ crc16Poly
		} else {
			crc <<= 1
		}
	}
	return crc
}

// A HashReader is an io.ByteReader decorator that maintains a CRC-16/CCITT
// checksum of every byte read through it. It exists as a diagnostic side
// channel for callers such as the command-line front end; it provides no
// integrity guarantee for the stream format itself.
type HashReader struct {
	R   io.ByteReader
	crc uint16
	set bool
}

func (h *HashReader) ReadByte() (byte, error) {
	if !h.set {
		h.crc, h.set = CRC16Init, true
	}
	b, err := h.R.ReadByte()
	if err == nil {
		h.crc = crc16Update(h.crc, b)
	}
	return b, err
}

// Sum16 returns the checksum of all bytes read so far.
func (h *HashReader) Sum16() uint16 {
	if !h.set {
		return CRC16Init
	}
	return h.crc
}

// A HashWriter is the io.ByteWriter counterpart of HashReader.
type HashWriter struct {
	W   io.ByteWriter
	crc uint16
	set bool
}

func (h *HashWriter) WriteByte(b byte) error {
	if !h.set {
		h.crc, h.set = CRC16Init, true
	}
	err := h.W.WriteByte(b)
	if err == nil {
		h.crc = crc16Update(h.crc, b)
	}
	return err
}

// Sum16 returns the checksum of all bytes written so far.
func (h *HashWriter) Sum16() uint16 {
	if !h.set {
		return CRC16Init
	}
	return h.crc
}
