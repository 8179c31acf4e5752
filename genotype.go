// Copyright (C) The Inch Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package inch

import (
	"fmt"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Call is one sample's encoded genotype at one position: either a
// present allele code or a missing call.
type Call struct {
	code    int64
	missing bool
}

// Present returns a call carrying the given allele code.
func Present(code int64) Call { return Call{code: code} }

// Missing returns a missing call with the given sentinel. A missing
// call matches only another missing call with the same sentinel.
func Missing(sentinel int64) Call { return Call{code: sentinel, missing: true} }

// missingSentinel is the numeric stand-in for a missing call in
// column col. It is below DeletionCode so it cannot be mistaken for
// "*".
func missingSentinel(col int) int64 { return DeletionCode - 1 - int64(col) }

func (c Call) IsMissing() bool { return c.missing }

// Code returns the allele code, or the missing sentinel.
func (c Call) Code() int64 { return c.code }

// Matches reports whether both calls are present with the same allele
// code, or both missing with the same sentinel. Sentinels depend on
// the sample column, so missing calls of different samples never
// match.
func (c Call) Matches(other Call) bool {
	return c.missing == other.missing && c.code == other.code
}

// Value is the numeric form used as a PCA feature.
func (c Call) Value() float64 { return float64(c.code) }

func (c Call) String() string {
	if c.missing {
		return fmt.Sprintf("missing(%d)", c.code)
	}
	return strconv.FormatInt(c.code, 10)
}

// GenotypeMatrix holds encoded calls for every sample at every
// position of one chromosome. It is not modified after construction.
type GenotypeMatrix struct {
	Chrom     string
	positions []int
	samples   []string
	// calls[s][p] is sample s at position index p
	calls [][]Call
}

// NewGenotypeMatrix builds a matrix from rows of calls, one row per
// position, one column per sample.
func NewGenotypeMatrix(chrom string, positions []int, samples []string, rows [][]Call) (*GenotypeMatrix, error) {
	if len(rows) != len(positions) {
		return nil, fmt.Errorf("%d rows for %d positions", len(rows), len(positions))
	}
	g := &GenotypeMatrix{
		Chrom:     chrom,
		positions: append([]int(nil), positions...),
		samples:   append([]string(nil), samples...),
		calls:     make([][]Call, len(samples)),
	}
	for s := range g.calls {
		g.calls[s] = make([]Call, len(positions))
	}
	for p, row := range rows {
		if len(row) != len(samples) {
			return nil, fmt.Errorf("row %d has %d calls for %d samples", p, len(row), len(samples))
		}
		for s, call := range row {
			g.calls[s][p] = call
		}
	}
	return g, nil
}

func (g *GenotypeMatrix) NumPositions() int { return len(g.positions) }
func (g *GenotypeMatrix) NumSamples() int   { return len(g.samples) }

// Positions returns a copy of the positions in row order.
func (g *GenotypeMatrix) Positions() []int { return append([]int(nil), g.positions...) }

// Samples returns a copy of the sample IDs in column order.
func (g *GenotypeMatrix) Samples() []string { return append([]string(nil), g.samples...) }

// Call returns the call at position index p for sample index s.
func (g *GenotypeMatrix) Call(p, s int) Call { return g.calls[s][p] }

// selectRows returns a new matrix containing only the given position
// indexes, in the given order.
func (g *GenotypeMatrix) selectRows(rows []int) *GenotypeMatrix {
	out := &GenotypeMatrix{
		Chrom:     g.Chrom,
		positions: make([]int, len(rows)),
		samples:   g.Samples(),
		calls:     make([][]Call, len(g.samples)),
	}
	for i, p := range rows {
		out.positions[i] = g.positions[p]
	}
	for s, col := range g.calls {
		out.calls[s] = make([]Call, len(rows))
		for i, p := range rows {
			out.calls[s][i] = col[p]
		}
	}
	return out
}

// LoadGenotypes loads the VCF file at fnm and encodes it.
func LoadGenotypes(fnm string, region Region, enc Encoding) (*GenotypeMatrix, error) {
	tbl, err := LoadVCF(fnm, region)
	if err != nil {
		return nil, err
	}
	g, err := EncodeGenotypes(tbl, enc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fnm, err)
	}
	return g, nil
}

// EncodeGenotypes converts a loaded table into a GenotypeMatrix.
//
// Only the first allele of diploid or phased calls ("0/1", "1|0") is
// used; a warning names the samples where this happened.
func EncodeGenotypes(tbl *vcfTable, enc Encoding) (*GenotypeMatrix, error) {
	if len(tbl.Records) == 0 {
		return nil, ErrEmptyResult
	}
	g := &GenotypeMatrix{
		Chrom:     tbl.Records[0].Chrom,
		positions: make([]int, len(tbl.Records)),
		samples:   append([]string(nil), tbl.Samples...),
		calls:     make([][]Call, len(tbl.Samples)),
	}
	for s := range g.calls {
		g.calls[s] = make([]Call, len(tbl.Records))
	}
	nonHaploid := make([]bool, len(tbl.Samples))
	alleles := make([]int64, 0, 4)
	for p, rec := range tbl.Records {
		g.positions[p] = rec.Pos
		if first, _, _ := strings.Cut(rec.Format, ":"); first != "GT" {
			return nil, fmt.Errorf("%w: FORMAT %q at %s:%d", ErrInvalidFormat, rec.Format, rec.Chrom, rec.Pos)
		}
		alleles = alleles[:0]
		for _, a := range append([]string{rec.Ref}, rec.Alt...) {
			code, err := enc.Code(a)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", rec.Chrom, rec.Pos, err)
			}
			alleles = append(alleles, code)
		}
		for s, field := range rec.Genotypes {
			gt, _, _ := strings.Cut(field, ":")
			if i := strings.IndexAny(gt, "/|"); i >= 0 {
				nonHaploid[s] = true
				gt = gt[:i]
			}
			call, err := decodeGT(gt, alleles, s)
			if err != nil {
				return nil, fmt.Errorf("%s:%d sample %s: %w", rec.Chrom, rec.Pos, tbl.Samples[s], err)
			}
			g.calls[s][p] = call
		}
	}
	var affected []string
	for s, nh := range nonHaploid {
		if nh {
			affected = append(affected, tbl.Samples[s])
		}
	}
	if len(affected) > 0 {
		log.WithField("samples", strings.Join(affected, ",")).Warn("non-haploid genotypes detected, first allele used")
	}
	return g, nil
}

// decodeGT converts a single allele index from a GT field.
func decodeGT(gt string, alleles []int64, col int) (Call, error) {
	if gt == "." {
		return Missing(missingSentinel(col)), nil
	}
	if gt == "" {
		return Call{}, fmt.Errorf("%w: empty GT", ErrInvalidGenotypeCode)
	}
	for i := 0; i < len(gt); i++ {
		if gt[i] < '0' || gt[i] > '9' {
			return Call{}, fmt.Errorf("%w %q", ErrInvalidGenotypeCode, gt)
		}
	}
	idx, err := strconv.Atoi(gt)
	if err != nil || idx >= len(alleles) {
		return Call{}, fmt.Errorf("%w %q: %d alleles at this position", ErrInvalidGenotypeCode, gt, len(alleles))
	}
	return Present(alleles[idx]), nil
}
