// Copyright (C) The Inch Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package inch

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/pgzip"
	log "github.com/sirupsen/logrus"
)

var vcfColumns = []string{"#CHROM", "POS", "ID", "REF", "ALT", "QUAL", "FILTER", "INFO", "FORMAT"}

var gzipMagic = []byte{0x1f, 0x8b}

type vcfRecord struct {
	Chrom  string
	Pos    int
	ID     string
	Ref    string
	Alt    []string
	Qual   string
	Filter string
	Info   string
	Format string
	// Raw genotype field for each sample, in header order.
	Genotypes []string
}

type vcfTable struct {
	Samples []string
	Records []vcfRecord
}

// Region selects variants on one chromosome, optionally limited to
// an inclusive 1-based position range. End == 0 means no upper
// bound. The zero Region selects everything.
type Region struct {
	Chrom string
	Start int
	End   int
}

// ParseRegion parses "chr", "chr:start", "chr:start-" or
// "chr:start-end". An empty string returns the zero Region.
//
// A chromosome name containing ":" can be given in braces, e.g.
// "{HLA-A*01:01:01:01}" or "{HLA-A*01:01:01:01}:100-200". Without
// braces, a name whose last ":" is not followed by a position is
// taken whole.
func ParseRegion(s string) (Region, error) {
	if s == "" {
		return Region{}, nil
	}
	var chrom, span string
	if strings.HasPrefix(s, "{") {
		end := strings.IndexByte(s, '}')
		if end < 0 {
			return Region{}, fmt.Errorf("%w %q: unterminated {", ErrInvalidRegion, s)
		}
		chrom = s[1:end]
		rest := s[end+1:]
		if rest == "" {
			if chrom == "" {
				return Region{}, fmt.Errorf("%w %q: empty chromosome", ErrInvalidRegion, s)
			}
			return Region{Chrom: chrom}, nil
		}
		if rest[0] != ':' {
			return Region{}, fmt.Errorf("%w %q: expected \":\" after }", ErrInvalidRegion, s)
		}
		span = rest[1:]
	} else {
		colon := strings.LastIndexByte(s, ':')
		if colon < 0 || !startsWithDigit(s[colon+1:]) {
			return Region{Chrom: s}, nil
		}
		chrom, span = s[:colon], s[colon+1:]
	}
	if chrom == "" {
		return Region{}, fmt.Errorf("%w %q: empty chromosome", ErrInvalidRegion, s)
	}
	r := Region{Chrom: chrom}
	startStr, endStr, ranged := strings.Cut(span, "-")
	var err error
	r.Start, err = strconv.Atoi(startStr)
	if err != nil || r.Start < 1 {
		return Region{}, fmt.Errorf("%w %q: bad start position", ErrInvalidRegion, s)
	}
	if !ranged {
		r.End = r.Start
	} else if endStr != "" {
		r.End, err = strconv.Atoi(endStr)
		if err != nil || r.End < r.Start {
			return Region{}, fmt.Errorf("%w %q: bad end position", ErrInvalidRegion, s)
		}
	}
	return r, nil
}

func startsWithDigit(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

func (r Region) IsZero() bool { return r.Chrom == "" }

func (r Region) String() string {
	switch {
	case r.Chrom == "":
		return "all chromosomes"
	case r.Start == 0 && r.End == 0:
		return r.Chrom
	case r.End == 0:
		return fmt.Sprintf("%s:%d-", r.Chrom, r.Start)
	default:
		return fmt.Sprintf("%s:%d-%d", r.Chrom, r.Start, r.End)
	}
}

func (r Region) contains(chrom string, pos int) bool {
	if r.Chrom == "" {
		return true
	}
	return chrom == r.Chrom && pos >= r.Start && (r.End == 0 || pos <= r.End)
}

// zopen opens fnm, transparently decompressing it if it starts with
// the gzip magic number. The file extension is not consulted.
func zopen(fnm string) (io.ReadCloser, error) {
	f, err := os.Open(fnm)
	if err != nil {
		return nil, err
	}
	bufr := bufio.NewReaderSize(f, 4*1024*1024)
	magic, err := bufr.Peek(len(gzipMagic))
	if err != nil && err != io.EOF {
		f.Close()
		return nil, fmt.Errorf("%s: %w", fnm, err)
	}
	if !bytes.Equal(magic, gzipMagic) {
		return readCloser{bufr, f}, nil
	}
	rdr, err := pgzip.NewReader(bufr)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: gzip: %w", fnm, err)
	}
	return gzipr{rdr, f}, nil
}

type readCloser struct {
	io.Reader
	io.Closer
}

// gzipr wraps a ReadCloser and a Closer, presenting a single Close()
// method that closes both wrapped objects.
type gzipr struct {
	io.ReadCloser
	io.Closer
}

func (gr gzipr) Close() error {
	e1 := gr.ReadCloser.Close()
	e2 := gr.Closer.Close()
	if e1 != nil {
		return e1
	}
	return e2
}

// LoadVCF reads the VCF file at fnm, keeping only records in region.
//
// Without a region the file must contain exactly one chromosome.
// With a region at least one record must match.
func LoadVCF(fnm string, region Region) (*vcfTable, error) {
	log.Printf("loading %s (%s)", fnm, region)
	rdr, err := zopen(fnm)
	if err != nil {
		return nil, err
	}
	defer rdr.Close()
	tbl, err := readVCF(rdr, region)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fnm, err)
	}
	log.Debugf("%s: %d samples, %d records", fnm, len(tbl.Samples), len(tbl.Records))
	return tbl, nil
}

func readVCF(rdr io.Reader, region Region) (*vcfTable, error) {
	scanner := bufio.NewScanner(rdr)
	scanner.Buffer(make([]byte, 64*1024), 1<<30)
	tbl := &vcfTable{}
	haveHeader := false
	chroms := map[string]bool{}
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if strings.HasPrefix(line, "#CHROM") {
			if haveHeader {
				return nil, fmt.Errorf("%w: second header at line %d", ErrMalformedHeader, lineno)
			}
			samples, err := parseHeader(strings.Fields(line))
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineno, err)
			}
			tbl.Samples = samples
			haveHeader = true
			continue
		}
		if strings.HasPrefix(line, "#") || strings.TrimSpace(line) == "" {
			continue
		}
		if !haveHeader {
			return nil, fmt.Errorf("%w: variant at line %d precedes #CHROM header", ErrMalformedHeader, lineno)
		}
		rec, err := parseRecord(strings.Fields(line), len(tbl.Samples))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno, err)
		}
		if !region.contains(rec.Chrom, rec.Pos) {
			continue
		}
		chroms[rec.Chrom] = true
		tbl.Records = append(tbl.Records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if !haveHeader {
		return nil, fmt.Errorf("%w: no #CHROM header line", ErrMalformedHeader)
	}
	if len(tbl.Records) == 0 {
		return nil, fmt.Errorf("%w on %s", ErrEmptyResult, region)
	}
	if len(chroms) > 1 {
		return nil, fmt.Errorf("%w (found %d)", ErrAmbiguousChromosome, len(chroms))
	}
	return tbl, nil
}

func parseHeader(fields []string) ([]string, error) {
	if len(fields) < len(vcfColumns) {
		return nil, fmt.Errorf("%w: %d columns, expected at least %d", ErrMalformedHeader, len(fields), len(vcfColumns))
	}
	for i, want := range vcfColumns {
		if fields[i] != want {
			return nil, fmt.Errorf("%w: column %d is %q, expected %q", ErrMalformedHeader, i+1, fields[i], want)
		}
	}
	samples := fields[len(vcfColumns):]
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: no sample columns", ErrMalformedHeader)
	}
	seen := make(map[string]bool, len(samples))
	for _, s := range samples {
		if seen[s] {
			return nil, fmt.Errorf("%w: duplicate sample %q", ErrMalformedHeader, s)
		}
		seen[s] = true
	}
	return append([]string(nil), samples...), nil
}

func parseRecord(fields []string, nsamples int) (vcfRecord, error) {
	if len(fields) != len(vcfColumns)+nsamples {
		return vcfRecord{}, fmt.Errorf("%w: %d fields, expected %d", ErrMalformedRecord, len(fields), len(vcfColumns)+nsamples)
	}
	pos, err := strconv.Atoi(fields[1])
	if err != nil {
		return vcfRecord{}, fmt.Errorf("%w: bad POS %q", ErrMalformedRecord, fields[1])
	}
	var alt []string
	if fields[4] != "." {
		alt = strings.Split(fields[4], ",")
	}
	return vcfRecord{
		Chrom:     fields[0],
		Pos:       pos,
		ID:        fields[2],
		Ref:       fields[3],
		Alt:       alt,
		Qual:      fields[5],
		Filter:    fields[6],
		Info:      fields[7],
		Format:    fields[8],
		Genotypes: fields[len(vcfColumns):],
	}, nil
}
