// Copyright (C) The Inch Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package inch

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// LabeledMatrix is a dense float64 matrix with ordered, unique row and
// column labels. Distance matrices and PCA weights are both
// LabeledMatrix values.
//
// At(i, j) addresses cells by position; Get(row, col) addresses them
// by label. A LabeledMatrix is not modified after construction.
type LabeledMatrix struct {
	rows   []string
	cols   []string
	rowIdx map[string]int
	colIdx map[string]int
	data   *mat.Dense
}

// newLabeledMatrix returns a zero-filled matrix with the given
// labels. Labels must be unique within rows and within cols.
func newLabeledMatrix(rows, cols []string) (*LabeledMatrix, error) {
	if len(rows) == 0 || len(cols) == 0 {
		return nil, fmt.Errorf("cannot build %d x %d matrix", len(rows), len(cols))
	}
	m := &LabeledMatrix{
		rows:   append([]string(nil), rows...),
		cols:   append([]string(nil), cols...),
		rowIdx: make(map[string]int, len(rows)),
		colIdx: make(map[string]int, len(cols)),
		data:   mat.NewDense(len(rows), len(cols), nil),
	}
	for i, label := range rows {
		if _, dup := m.rowIdx[label]; dup {
			return nil, fmt.Errorf("duplicate row label %q", label)
		}
		m.rowIdx[label] = i
	}
	for j, label := range cols {
		if _, dup := m.colIdx[label]; dup {
			return nil, fmt.Errorf("duplicate column label %q", label)
		}
		m.colIdx[label] = j
	}
	return m, nil
}

// Dims returns the number of rows and columns.
func (m *LabeledMatrix) Dims() (rows, cols int) { return m.data.Dims() }

// Rows returns a copy of the row labels in order.
func (m *LabeledMatrix) Rows() []string { return append([]string(nil), m.rows...) }

// Cols returns a copy of the column labels in order.
func (m *LabeledMatrix) Cols() []string { return append([]string(nil), m.cols...) }

func (m *LabeledMatrix) At(i, j int) float64 { return m.data.At(i, j) }

// Get returns the value at the given labels. ok is false if either
// label is unknown.
func (m *LabeledMatrix) Get(row, col string) (v float64, ok bool) {
	i, ok := m.rowIdx[row]
	if !ok {
		return 0, false
	}
	j, ok := m.colIdx[col]
	if !ok {
		return 0, false
	}
	return m.data.At(i, j), true
}

func (m *LabeledMatrix) RowIndex(label string) (int, bool) {
	i, ok := m.rowIdx[label]
	return i, ok
}

func (m *LabeledMatrix) ColIndex(label string) (int, bool) {
	j, ok := m.colIdx[label]
	return j, ok
}

// Row returns a copy of row i.
func (m *LabeledMatrix) Row(i int) []float64 {
	return mat.Row(nil, i, m.data)
}

// Float64s returns the values in row-major order.
func (m *LabeledMatrix) Float64s() []float64 {
	rows, cols := m.data.Dims()
	out := make([]float64, 0, rows*cols)
	for i := 0; i < rows; i++ {
		out = append(out, m.data.RawRowView(i)...)
	}
	return out
}

func (m *LabeledMatrix) set(i, j int, v float64) { m.data.Set(i, j, v) }
