// Copyright (C) The Inch Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package inch

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// HammingDistances returns the fraction of positions at which each
// sample of rows differs from each sample of cols, as decided by
// Call.Matches. Both matrices must have the same positions in the
// same order.
//
// Comparing a matrix with itself, or with another load of the same
// file, gives a symmetric result with a zero diagonal.
func HammingDistances(rows, cols *GenotypeMatrix) (*LabeledMatrix, error) {
	if rows.NumPositions() != cols.NumPositions() {
		return nil, fmt.Errorf("cannot compare %d positions with %d positions", rows.NumPositions(), cols.NumPositions())
	}
	if rows.NumPositions() == 0 {
		return nil, ErrNoSharedPositions
	}
	m, err := newLabeledMatrix(rows.samples, cols.samples)
	if err != nil {
		return nil, err
	}
	same := rows == cols
	n := float64(rows.NumPositions())
	for i, a := range rows.calls {
		for j, b := range cols.calls {
			if same && j < i {
				m.set(i, j, m.At(j, i))
				continue
			}
			m.set(i, j, float64(hamming(a, b))/n)
		}
	}
	return m, nil
}

func hamming(a, b []Call) int {
	diff := 0
	for p, call := range a {
		if !call.Matches(b[p]) {
			diff++
		}
	}
	return diff
}

// MergeToGroups collapses a square distance matrix onto the groups
// of p. The distance between two different groups is the mean of the
// distances between their members; the diagonal is always 0.
func MergeToGroups(m *LabeledMatrix, p Partition) (*LabeledMatrix, error) {
	labels := p.Labels()
	merged, err := newLabeledMatrix(labels, labels)
	if err != nil {
		return nil, err
	}
	rowIdx := make([][]int, len(p))
	colIdx := make([][]int, len(p))
	for g, group := range p {
		for _, id := range group {
			i, ok := m.RowIndex(id)
			if !ok {
				return nil, fmt.Errorf("%w: %q not in distance matrix rows", ErrUnknownGroupMember, id)
			}
			j, ok := m.ColIndex(id)
			if !ok {
				return nil, fmt.Errorf("%w: %q not in distance matrix columns", ErrUnknownGroupMember, id)
			}
			rowIdx[g] = append(rowIdx[g], i)
			colIdx[g] = append(colIdx[g], j)
		}
	}
	var vals []float64
	for a := range p {
		for b := range p {
			if labels[a] == labels[b] {
				continue
			}
			vals = vals[:0]
			for _, i := range rowIdx[a] {
				for _, j := range colIdx[b] {
					vals = append(vals, m.At(i, j))
				}
			}
			merged.set(a, b, stat.Mean(vals, nil))
		}
	}
	return merged, nil
}

// DistanceMatrix loads founders from fnm and returns the pairwise
// distances between them, merged onto groups if any group specs are
// given.
func DistanceMatrix(fnm string, region Region, groupSpecs []string, enc Encoding) (*LabeledMatrix, error) {
	g, err := LoadGenotypes(fnm, region, enc)
	if err != nil {
		return nil, err
	}
	var p Partition
	if len(groupSpecs) > 0 {
		// resolve before the O(n^2) distance calculation so bad
		// groups fail early
		p, err = ResolveGroups(g.samples, groupSpecs)
		if err != nil {
			return nil, err
		}
	}
	m, err := HammingDistances(g, g)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return m, nil
	}
	return MergeToGroups(m, p)
}
