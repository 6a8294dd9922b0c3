// Copyright 2015, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package shrink

import (
	"bytes"
	"fmt"
)

// selfTestCorpus is the fixture corpus every codec must round-trip.
var selfTestCorpus = []string{
	"",
	"If not to heaven, then hand in hand to hell",
	"aaaaaaaaaabbbbbbbbccddddddeeeeeeeefffffffhh",
	"I am Sam\nSam I am\nThat Sam-I-am!\n" +
		"That Sam-I-am!\nI do not like\nthat Sam-I-am!\n" +
		"Do you like green eggs and ham?\n" +
		"I do not like them, Sam-I-am.\n" +
		"I do not like green eggs and ham.\n",
}

// SelfTest round-trips a small fixed corpus through every codec and
// reports the first failure, if any. It is cheap enough to run at program
// start-up.
func SelfTest() error {
	codecs := []Codec{RLE, LZSS, Elias, MTF, LZP}
	for _, codec := range codecs {
		for i, msg := range selfTestCorpus {
			if err := roundTrip(codec, []byte(msg)); err != nil {
				return fmt.Errorf("shrink: self test %d (%v): %w", i, codec, err)
			}
		}
	}
	return nil
}

func roundTrip(codec Codec, msg []byte) error {
	comp := make([]byte, 16*len(msg)+64)
	cn, err := EncodeBuffer(codec, msg, comp)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	decomp := make([]byte, len(msg)+64)
	dn, err := DecodeBuffer(codec, comp[:cn], decomp)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if !bytes.Equal(msg, decomp[:dn]) {
		return Error("round trip mismatch")
	}
	return nil
}
