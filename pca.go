// Copyright (C) The Inch Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package inch

import (
	"fmt"

	"github.com/james-bowman/nlp"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// PCAResult holds each sample's weight on each principal component
// (rows are samples, columns PC1..PCn) and the variance explained by
// each component, in decreasing order.
type PCAResult struct {
	Weights   *LabeledMatrix
	Variances []float64
}

// RunPCA loads the VCF file at fnm and runs PCA with n components.
func RunPCA(fnm string, region Region, n int, enc Encoding) (*PCAResult, error) {
	g, err := LoadGenotypes(fnm, region, enc)
	if err != nil {
		return nil, err
	}
	return PCAFromMatrix(g, n)
}

// PCAFromMatrix runs PCA on an encoded genotype matrix, treating
// samples as observations and positions as features.
func PCAFromMatrix(g *GenotypeMatrix, n int) (*PCAResult, error) {
	rows, cols := g.NumPositions(), g.NumSamples()
	maxn := rows
	if cols < maxn {
		maxn = cols
	}
	if n < 1 || n > maxn {
		return nil, fmt.Errorf("%w: cannot calculate %d PCs: must be between 1 and %d", ErrInvalidComponentCount, n, maxn)
	}

	// nlp wants features as rows and observations as columns,
	// which is already our orientation.
	log.Printf("creating matrix: %d rows, %d cols", rows, cols)
	mtx := mat.NewDense(rows, cols, nil)
	for s, col := range g.calls {
		for p, call := range col {
			mtx.Set(p, s, call.Value())
		}
	}
	for p := 0; p < rows; p++ {
		row := mtx.RawRowView(p)
		mean := stat.Mean(row, nil)
		for s := range row {
			row[s] -= mean
		}
	}

	log.Print("fitting")
	transformer := nlp.NewPCA(n)
	transformer.Fit(mtx)
	log.Print("transforming")
	scores, err := transformer.Transform(mtx)
	if err != nil {
		return nil, err
	}

	labels := make([]string, n)
	for c := range labels {
		labels[c] = fmt.Sprintf("PC%d", c+1)
	}
	weights, err := newLabeledMatrix(g.samples, labels)
	if err != nil {
		return nil, err
	}
	variances := make([]float64, n)
	for c := 0; c < n; c++ {
		component := mat.Row(nil, c, scores)
		for s, v := range component {
			weights.set(s, c, v)
		}
		if cols > 1 {
			variances[c] = stat.Variance(component, nil)
		}
	}
	return &PCAResult{Weights: weights, Variances: variances}, nil
}
