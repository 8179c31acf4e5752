// Copyright (C) The Inch Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package inch

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Match is one descendent's best-matching founder (or founder group
// label).
type Match struct {
	Descendent string
	Founder    string
	Distance   float64
}

// Assignment lists matches in descendent column order.
type Assignment []Match

// Lookup returns the match label for a descendent.
func (a Assignment) Lookup(desc string) (string, bool) {
	for _, m := range a {
		if m.Descendent == desc {
			return m.Founder, true
		}
	}
	return "", false
}

// IdentifyFounders assigns each sample in the descendent VCF to the
// closest sample in the founder VCF, using only positions present in
// both files. If group specs are given, matches are reported by
// founder group label.
func IdentifyFounders(founderFile, descFile string, region Region, groupSpecs []string, enc Encoding) (Assignment, error) {
	founders, err := LoadGenotypes(founderFile, region, enc)
	if err != nil {
		return nil, err
	}
	var p Partition
	if len(groupSpecs) > 0 {
		p, err = ResolveGroups(founders.samples, groupSpecs)
		if err != nil {
			return nil, err
		}
	}
	desc, err := LoadGenotypes(descFile, region, enc)
	if err != nil {
		return nil, err
	}
	return MatchNearest(desc, founders, p)
}

// MatchNearest assigns each sample of desc to its nearest sample in
// founders. Ties go to the founder that comes first in column order.
// If p is non-nil the founder is reported by its group label in p.
func MatchNearest(desc, founders *GenotypeMatrix, p Partition) (Assignment, error) {
	if desc.Chrom != founders.Chrom {
		return nil, fmt.Errorf("%w (%q vs %q)", ErrChromosomeMismatch, founders.Chrom, desc.Chrom)
	}
	desc, founders, err := alignPositions(desc, founders)
	if err != nil {
		return nil, err
	}
	log.Printf("comparing %d descendents with %d founders at %d shared positions", desc.NumSamples(), founders.NumSamples(), desc.NumPositions())
	dist, err := HammingDistances(desc, founders)
	if err != nil {
		return nil, err
	}
	var labelOf map[string]string
	if p != nil {
		labelOf = p.LabelOf()
	}
	rows, cols := dist.Dims()
	result := make(Assignment, rows)
	for i := 0; i < rows; i++ {
		best := 0
		for j := 1; j < cols; j++ {
			if dist.At(i, j) < dist.At(i, best) {
				best = j
			}
		}
		founder := founders.samples[best]
		if label, ok := labelOf[founder]; ok {
			founder = label
		}
		result[i] = Match{
			Descendent: desc.samples[i],
			Founder:    founder,
			Distance:   dist.At(i, best),
		}
	}
	return result, nil
}

type posKey struct {
	pos int
	// nth occurrence of pos in its matrix, for files that list a
	// position more than once
	nth int
}

// alignPositions restricts both matrices to the positions they have
// in common, ordered as in desc.
func alignPositions(desc, founders *GenotypeMatrix) (*GenotypeMatrix, *GenotypeMatrix, error) {
	founderRow := make(map[posKey]int, founders.NumPositions())
	seen := map[int]int{}
	for i, pos := range founders.positions {
		founderRow[posKey{pos, seen[pos]}] = i
		seen[pos]++
	}
	var descRows, founderRows []int
	seen = map[int]int{}
	for i, pos := range desc.positions {
		key := posKey{pos, seen[pos]}
		seen[pos]++
		if j, ok := founderRow[key]; ok {
			descRows = append(descRows, i)
			founderRows = append(founderRows, j)
		}
	}
	if len(descRows) == 0 {
		return nil, nil, ErrNoSharedPositions
	}
	log.Debugf("aligned %d of %d descendent positions and %d founder positions", len(descRows), desc.NumPositions(), founders.NumPositions())
	return desc.selectRows(descRows), founders.selectRows(founderRows), nil
}
