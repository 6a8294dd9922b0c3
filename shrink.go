// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package shrink implements a family of interchangeable byte-stream
// compression codecs: run-length encoding, LZSS dictionary coding,
// Elias-Gamma coding, the Move-To-Front transform, and LZP prediction.
//
// All codecs operate on a Stream, which couples an arbitrary byte source
// with an arbitrary byte sink. The transforms themselves perform no
// per-byte heap allocation; the larger working buffers (the LZSS window
// and the LZP hash table) may be supplied by the caller as a scratch
// arena via Config.Scratch.
package shrink

import (
	"bytes"

	"github.com/dsnet/golib/errs"
)

// Error is the wrapper type for errors specific to this library.
type Error string

func (e Error) Error() string { return "shrink: " + string(e) }

var (
	// ErrCorrupt indicates that the decoder read a value outside the
	// valid range for its field.
	ErrCorrupt error = Error("stream is corrupted")

	// ErrConfig indicates that a Config violates a parameter constraint.
	ErrConfig error = Error("invalid configuration")

	// ErrScratchSize indicates that Config.Scratch is too small for the
	// selected codec. See ScratchSize for the minimum.
	ErrScratchSize error = Error("scratch buffer too small")

	// ErrBufferSize indicates that a destination buffer filled up before
	// the transform completed.
	ErrBufferSize error = Error("output buffer too small")

	// ErrUnknownCodec indicates a Codec value outside the closed set.
	ErrUnknownCodec error = Error("unknown codec")
)

// A Codec identifies one of the byte-stream transforms. The set is closed;
// the zero value is RLE.
type Codec int

const (
	RLE Codec = iota // Run-length encoding
	LZSS             // Sliding-window dictionary coding
	Elias            // Elias-Gamma coding of 4-bit symbols
	MTF              // Move-To-Front transform
	LZP              // Context-hash byte prediction
)

func (c Codec) String() string {
	switch c {
	case RLE:
		return "rle"
	case LZSS:
		return "lzss"
	case Elias:
		return "elias"
	case MTF:
		return "mtf"
	case LZP:
		return "lzp"
	default:
		return "unknown"
	}
}

// Config parameterizes a Coder. The zero value of every field selects the
// default shown below. Encoding and decoding must use identical parameters
// or the output will not decode to the input.
type Config struct {
	// WindowExp is the base-2 exponent of the LZSS dictionary size
	// (default 11, valid 6..15).
	WindowExp int

	// LengthExp is the base-2 exponent of the LZSS match-length field
	// (default 4). It must not exceed WindowExp, and WindowExp+LengthExp
	// must not exceed 16 so that a reference fits in 16 bits.
	LengthExp int

	// Threshold is the LZSS minimum-match cutoff P (default 2); matches
	// of Threshold bytes or fewer are emitted as literals.
	Threshold int

	// Fill is the byte the LZSS dictionary is initialized with.
	// The zero value selects the format's standard fill, a space.
	Fill byte

	// RunLength is the RLE command-byte split point RL (default 128,
	// valid 1..128). Command bytes above RunLength introduce literal
	// blocks; the rest introduce runs.
	RunLength int

	// RunExtra is the RLE bias ROVER (default 1, valid 1..8): the number
	// of extra repeats, beyond the first, that a run must have before it
	// is cheaper to encode than literals.
	RunExtra int

	// HashOrder is the base-2 exponent of the LZP hash table size
	// (default 16, valid 8..24).
	HashOrder int

	// BlockLength is the number of bytes covered by one LZP hit mask
	// (default 8, valid 1..8).
	BlockLength int

	// Scratch is an optional caller-supplied working buffer used for the
	// LZSS window or the LZP hash table. If nil, the Coder allocates its
	// own at construction time. If too small, NewCoder fails with
	// ErrScratchSize.
	Scratch []byte
}

// DefaultConfig returns the Config used by the package-level Encode and
// Decode functions, with every parameter set to its explicit default.
func DefaultConfig() Config {
	return Config{
		WindowExp:   11,
		LengthExp:   4,
		Threshold:   2,
		Fill:        ' ',
		RunLength:   128,
		RunExtra:    1,
		HashOrder:   16,
		BlockLength: 8,
	}
}

// withDefaults maps zero fields to their defaults.
func (cfg Config) withDefaults() Config {
	def := DefaultConfig()
	if cfg.WindowExp == 0 {
		cfg.WindowExp = def.WindowExp
	}
	if cfg.LengthExp == 0 {
		cfg.LengthExp = def.LengthExp
	}
	if cfg.Threshold == 0 {
		cfg.Threshold = def.Threshold
	}
	if cfg.Fill == 0 {
		cfg.Fill = def.Fill
	}
	if cfg.RunLength == 0 {
		cfg.RunLength = def.RunLength
	}
	if cfg.RunExtra == 0 {
		cfg.RunExtra = def.RunExtra
	}
	if cfg.HashOrder == 0 {
		cfg.HashOrder = def.HashOrder
	}
	if cfg.BlockLength == 0 {
		cfg.BlockLength = def.BlockLength
	}
	return cfg
}

func (cfg Config) verify() error {
	switch {
	case cfg.WindowExp < 6 || cfg.WindowExp > 15:
		return ErrConfig
	case cfg.LengthExp < 1 || cfg.LengthExp > cfg.WindowExp:
		return ErrConfig
	case cfg.WindowExp+cfg.LengthExp > 16:
		return ErrConfig
	case cfg.Threshold < 2:
		return ErrConfig
	case cfg.lookahead() > cfg.window():
		return ErrConfig
	case cfg.RunLength < 1 || cfg.RunLength > 128:
		return ErrConfig
	case cfg.RunExtra < 1 || cfg.RunExtra > 8:
		return ErrConfig
	case cfg.RunExtra >= cfg.RunLength:
		return ErrConfig
	case cfg.HashOrder < 8 || cfg.HashOrder > 24:
		return ErrConfig
	case cfg.BlockLength < 1 || cfg.BlockLength > 8:
		return ErrConfig
	}
	return nil
}

// window returns the LZSS dictionary size N.
func (cfg Config) window() int { return 1 << uint(cfg.WindowExp) }

// lookahead returns the LZSS lookahead size F.
func (cfg Config) lookahead() int { return 1<<uint(cfg.LengthExp) + cfg.Threshold - 1 }

// ScratchSize reports the minimum length of Config.Scratch for the given
// codec after zero fields in cfg are substituted with their defaults.
// Codecs that need no arena report zero.
func ScratchSize(codec Codec, cfg Config) int {
	cfg = cfg.withDefaults()
	switch codec {
	case LZSS:
		return 2 * cfg.window()
	case LZP:
		return 1 << uint(cfg.HashOrder)
	default:
		return 0
	}
}

// A Coder is a validated (codec, configuration) pair. A Coder may be reused
// for any number of transforms, but runs only one at a time; it is not safe
// for concurrent use.
type Coder struct {
	codec   Codec
	cfg     Config
	scratch []byte
}

// NewCoder returns a Coder for the given codec. All parameter constraints
// are checked here, once, rather than during the transform.
func NewCoder(codec Codec, cfg Config) (*Coder, error) {
	switch codec {
	case RLE, LZSS, Elias, MTF, LZP:
	default:
		return nil, ErrUnknownCodec
	}
	cfg = cfg.withDefaults()
	if err := cfg.verify(); err != nil {
		return nil, err
	}
	c := &Coder{codec: codec, cfg: cfg}
	if n := ScratchSize(codec, cfg); n > 0 {
		if cfg.Scratch != nil {
			if len(cfg.Scratch) < n {
				return nil, ErrScratchSize
			}
			c.scratch = cfg.Scratch[:n]
		} else {
			c.scratch = make([]byte, n)
		}
	}
	return c, nil
}

// Codec reports which transform this Coder runs.
func (c *Coder) Codec() Codec { return c.codec }

// Encode runs the codec's forward transform over s until s.In is
// exhausted.
func (c *Coder) Encode(s *Stream) (err error) {
	defer errs.Recover(&err)
	switch c.codec {
	case RLE:
		return rleEncode(s, c.cfg)
	case LZSS:
		return lzssEncode(s, c.cfg, c.scratch)
	case Elias:
		return eliasEncode(s)
	case MTF:
		return mtfEncode(s)
	case LZP:
		return lzpEncode(s, c.cfg, c.scratch)
	}
	return ErrUnknownCodec
}

// Decode runs the codec's inverse transform over s until s.In is
// exhausted.
func (c *Coder) Decode(s *Stream) (err error) {
	defer errs.Recover(&err)
	switch c.codec {
	case RLE:
		return rleDecode(s, c.cfg)
	case LZSS:
		return lzssDecode(s, c.cfg, c.scratch)
	case Elias:
		return eliasDecode(s)
	case MTF:
		return mtfDecode(s)
	case LZP:
		return lzpDecode(s, c.cfg, c.scratch)
	}
	return ErrUnknownCodec
}

// Encode runs codec's forward transform over s with the default
// configuration.
func Encode(codec Codec, s *Stream) error {
	c, err := NewCoder(codec, Config{})
	if err != nil {
		return err
	}
	return c.Encode(s)
}

// Decode runs codec's inverse transform over s with the default
// configuration.
func Decode(codec Codec, s *Stream) error {
	c, err := NewCoder(codec, Config{})
	if err != nil {
		return err
	}
	return c.Decode(s)
}

// EncodeBuffer compresses in into out using the default configuration and
// reports the number of bytes written. It fails with ErrBufferSize if out
// is too small to hold the result.
func EncodeBuffer(codec Codec, in, out []byte) (int, error) {
	return transformBuffer(codec, in, out, (*Coder).Encode)
}

// DecodeBuffer decompresses in into out using the default configuration
// and reports the number of bytes written. It fails with ErrBufferSize if
// out is too small to hold the result.
func DecodeBuffer(codec Codec, in, out []byte) (int, error) {
	return transformBuffer(codec, in, out, (*Coder).Decode)
}

func transformBuffer(codec Codec, in, out []byte, op func(*Coder, *Stream) error) (int, error) {
	c, err := NewCoder(codec, Config{})
	if err != nil {
		return 0, err
	}
	w := &capWriter{buf: out}
	s := &Stream{In: bytes.NewReader(in), Out: w}
	if err := op(c, s); err != nil {
		return 0, err
	}
	return w.n, nil
}
