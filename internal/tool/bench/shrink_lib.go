// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"bufio"
	"bytes"
	"io"

	"github.com/howerj/shrink"
)

// The shrink codecs operate on whole streams rather than incrementally, so
// the registry adapters buffer the data and run the codec on Close (for
// encoding) or on the first Read (for decoding). Levels are ignored; the
// codecs have no tunable effort knob.

var shrinkFormats = map[Format]shrink.Codec{
	FormatRLE:   shrink.RLE,
	FormatLZSS:  shrink.LZSS,
	FormatElias: shrink.Elias,
	FormatMTF:   shrink.MTF,
	FormatLZP:   shrink.LZP,
}

func init() {
	for f, c := range shrinkFormats {
		c := c
		RegisterEncoder(f, "shrink",
			func(w io.Writer, lvl int) io.WriteCloser {
				return &shrinkWriter{codec: c, w: w}
			})
		RegisterDecoder(f, "shrink",
			func(r io.Reader) io.ReadCloser {
				return &shrinkReader{codec: c, r: r}
			})
	}
}

type shrinkWriter struct {
	codec shrink.Codec
	w     io.Writer
	buf   bytes.Buffer
}

func (zw *shrinkWriter) Write(b []byte) (int, error) {
	return zw.buf.Write(b)
}

func (zw *shrinkWriter) Close() error {
	bw := bufio.NewWriter(zw.w)
	s := &shrink.Stream{In: &zw.buf, Out: bw}
	if err := shrink.Encode(zw.codec, s); err != nil {
		return err
	}
	return bw.Flush()
}

type shrinkReader struct {
	codec shrink.Codec
	r     io.Reader
	buf   *bytes.Buffer
}

func (zr *shrinkReader) Read(b []byte) (int, error) {
	if zr.buf == nil {
		zr.buf = new(bytes.Buffer)
		s := &shrink.Stream{In: bufio.NewReader(zr.r), Out: zr.buf}
		if err := shrink.Decode(zr.codec, s); err != nil {
			return 0, err
		}
	}
	return zr.buf.Read(b)
}

func (zr *shrinkReader) Close() error {
	return nil
}
