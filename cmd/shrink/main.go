// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Command shrink is a file de/compression utility. The default is to
// compress with LZSS; other codecs are selected by flag. If outfile is not
// given, output is written to standard out; if infile is not given either,
// input is taken from standard in.
//
// Example usage:
//	$ shrink -l file.txt file.txt.lzss
//	$ shrink -d -l file.txt.lzss file.txt
//	$ shrink -r -s "aaaaaaaaaabbbbb"
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	strconv "github.com/dsnet/golib/unitconv"
	"github.com/howerj/shrink"
)

var (
	decompress = flag.Bool("d", false, "decompress instead of compress")
	verbose    = flag.Bool("v", false, "print codec statistics to stderr")
	hash       = flag.Bool("H", false, "print a CRC-16 of the raw and coded data to stderr")
	selfTest   = flag.Bool("t", false, "run the built in self tests and exit")
	str        = flag.String("s", "", "hex dump the coded string instead of file I/O")

	useRLE   = flag.Bool("r", false, "use run length encoding")
	useLZSS  = flag.Bool("l", false, "use LZSS (the default)")
	useElias = flag.Bool("e", false, "use Elias gamma coding")
	useMTF   = flag.Bool("m", false, "use the move to front transform")
	useLZP   = flag.Bool("p", false, "use LZP")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-dvHt] [-rlemp] [-s string] [infile [outfile]]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", os.Args[0], err)
		os.Exit(1)
	}
}

func run() error {
	if *selfTest {
		return shrink.SelfTest()
	}
	codec, err := pickCodec()
	if err != nil {
		return err
	}
	if *str != "" {
		return stringOp(codec, *str)
	}
	return fileOp(codec)
}

func pickCodec() (shrink.Codec, error) {
	var codecs []shrink.Codec
	for _, f := range []struct {
		set   *bool
		codec shrink.Codec
	}{
		{useRLE, shrink.RLE},
		{useLZSS, shrink.LZSS},
		{useElias, shrink.Elias},
		{useMTF, shrink.MTF},
		{useLZP, shrink.LZP},
	} {
		if *f.set {
			codecs = append(codecs, f.codec)
		}
	}
	switch len(codecs) {
	case 0:
		return shrink.LZSS, nil
	case 1:
		return codecs[0], nil
	default:
		return 0, fmt.Errorf("multiple codecs selected")
	}
}

func fileOp(codec shrink.Codec) error {
	var in io.Reader = os.Stdin
	var out io.Writer = os.Stdout
	switch args := flag.Args(); {
	case len(args) > 2:
		return fmt.Errorf("too many arguments")
	case len(args) == 2:
		f, err := os.Create(args[1])
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
		fallthrough
	case len(args) == 1:
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	br := bufio.NewReader(in)
	bw := bufio.NewWriter(out)
	hr := &shrink.HashReader{R: br}
	hw := &shrink.HashWriter{W: bw}
	s := &shrink.Stream{In: hr, Out: hw}

	op, opName := shrink.Encode, "shrink"
	if *decompress {
		op, opName = shrink.Decode, "expand"
	}
	if err := op(codec, s); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}

	if *verbose {
		stats(codec, opName, s)
	}
	if *hash {
		fmt.Fprintf(os.Stderr, "crc16: in %#04x out %#04x\n", hr.Sum16(), hw.Sum16())
	}
	return nil
}

func stats(codec shrink.Codec, opName string, s *shrink.Stream) {
	fmt.Fprintf(os.Stderr, "codec: %s/%s\n", codec, opName)
	fmt.Fprintf(os.Stderr, "text:  %sB\n", sizePrefix(s.Read))
	if s.Read > 0 {
		percent := float64(s.Wrote) * 100.0 / float64(s.Read)
		fmt.Fprintf(os.Stderr, "code:  %sB (%.4g%%)\n", sizePrefix(s.Wrote), percent)
	}
}

func sizePrefix(n int64) string {
	s := strconv.FormatPrefix(float64(n), strconv.Base1024, 2)
	return strings.Replace(s, ".00", "", -1)
}

func stringOp(codec shrink.Codec, in string) error {
	out := make([]byte, 16*len(in)+16)
	var n int
	var err error
	if *decompress {
		n, err = shrink.DecodeBuffer(codec, []byte(in), out)
	} else {
		n, err = shrink.EncodeBuffer(codec, []byte(in), out)
	}
	if err != nil {
		return err
	}
	if err := dumpHex(os.Stdout, out[:n]); err != nil {
		return err
	}
	if *verbose {
		fmt.Fprintf(os.Stderr, "coded: %d bytes\n", n)
	}
	return nil
}

// dumpHex writes b in rows of 16 bytes with an offset column and a trailing
// printable-character column.
func dumpHex(w io.Writer, b []byte) error {
	for i := 0; i < len(b); i += 16 {
		if _, err := fmt.Fprintf(w, "%04X:\t", i); err != nil {
			return err
		}
		for j := i; j < i+16; j++ {
			var err error
			if j < len(b) {
				_, err = fmt.Fprintf(w, "%02X ", b[j])
			} else {
				_, err = fmt.Fprint(w, "   ")
			}
			if err != nil {
				return err
			}
		}
		if _, err := fmt.Fprint(w, "| "); err != nil {
			return err
		}
		for j := i; j < i+16; j++ {
			c := byte(' ')
			if j < len(b) {
				c = b[j]
				if c <= ' ' || c > '~' {
					c = '.'
				}
			}
			if _, err := fmt.Fprintf(w, "%c", c); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, " |"); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}
