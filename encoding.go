// Copyright (C) The Inch Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package inch

import (
	"encoding/binary"
	"fmt"
	"math"

	"golang.org/x/crypto/blake2b"
)

// DeletionCode is the allele code of a lone "*" (allele missing due
// to an upstream deletion) when the encoding treats "*" as a
// sentinel.
const DeletionCode = -1

// Encoding maps allele strings to integer codes. Each base maps to a
// nonzero digit and the string is read as a number in base Radix,
// most significant base first. Because no digit is zero, distinct
// strings always get distinct codes.
//
// Encoding is a value type; copies share nothing mutable.
type Encoding struct {
	Name  string
	Radix int64
	// digits[b] is the digit for byte b, or 0 if b is not in the
	// alphabet.
	digits [256]int8
	// starSentinel means a lone "*" codes to DeletionCode instead
	// of participating as a digit.
	starSentinel bool
	// maxLen is the longest string whose code fits in an int64.
	maxLen int
}

var (
	// DefaultEncoding: A, C, G, T are 1..4 in base 5; "*" is
	// DeletionCode.
	DefaultEncoding = NewEncoding("default", "ACGT", true)
	// StarDigitEncoding: A, C, G, T, * are 1..5 in base 6.
	StarDigitEncoding = NewEncoding("star", "ACGT*", false)
)

// NewEncoding returns an encoding whose alphabet is the bytes of
// alphabet, in digit order starting at 1.
func NewEncoding(name, alphabet string, starSentinel bool) Encoding {
	enc := Encoding{
		Name:         name,
		Radix:        int64(len(alphabet) + 1),
		starSentinel: starSentinel,
	}
	for i := 0; i < len(alphabet); i++ {
		enc.digits[alphabet[i]] = int8(i + 1)
	}
	// m is the largest code of length maxLen
	for m := int64(0); m <= (math.MaxInt64-(enc.Radix-1))/enc.Radix; m = m*enc.Radix + enc.Radix - 1 {
		enc.maxLen++
	}
	return enc
}

// EncodingByName returns one of the predefined encodings.
func EncodingByName(name string) (Encoding, error) {
	switch name {
	case "", DefaultEncoding.Name:
		return DefaultEncoding, nil
	case StarDigitEncoding.Name:
		return StarDigitEncoding, nil
	default:
		return Encoding{}, fmt.Errorf("unknown encoding %q (choices: %s, %s)", name, DefaultEncoding.Name, StarDigitEncoding.Name)
	}
}

// Code returns the allele code for an allele string from the REF or
// ALT column.
//
// Alleles too long for the positional scheme are fingerprinted with
// blake2b into the negative range below DeletionCode, so the code is
// still a pure function of the string.
func (enc Encoding) Code(allele string) (int64, error) {
	if enc.starSentinel && allele == "*" {
		return DeletionCode, nil
	}
	if allele == "" {
		return 0, fmt.Errorf("%w: empty allele", ErrInvalidAllele)
	}
	var code int64
	for i := 0; i < len(allele); i++ {
		d := enc.digits[allele[i]]
		if d == 0 {
			return 0, fmt.Errorf("%w: %q in %q", ErrInvalidAllele, allele[i], allele)
		}
		code = code*enc.Radix + int64(d)
	}
	if len(allele) > enc.maxLen {
		sum := blake2b.Sum256([]byte(allele))
		return DeletionCode - 1 - int64(binary.BigEndian.Uint64(sum[:8])>>2), nil
	}
	return code, nil
}
