// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bench

import (
	"io"
	"io/ioutil"

	"github.com/golang/snappy"
)

func init() {
	RegisterEncoder(FormatSnappy, "snappy",
		func(w io.Writer, lvl int) io.WriteCloser {
			return snappy.NewBufferedWriter(w)
		})
	RegisterDecoder(FormatSnappy, "snappy",
		func(r io.Reader) io.ReadCloser {
			return ioutil.NopCloser(snappy.NewReader(r))
		})
}
