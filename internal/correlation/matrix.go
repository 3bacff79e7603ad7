package correlation

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/lChap701/boilerplate-medical-data-visualizer/internal/dataprocessing"
	apperrors "github.com/lChap701/boilerplate-medical-data-visualizer/internal/errors"
)

// Matrix is a labelled, symmetric correlation matrix
type Matrix struct {
	names []string
	sym   *mat.SymDense
}

// Compute returns the Pearson correlation of every numeric column of ds.
// Columns without variance correlate as NaN with everything, themselves
// included; with fewer than two records every entry is NaN.
func Compute(ds *dataprocessing.Dataset) (*Matrix, error) {
	names := ds.NumericColumns()
	n, c := ds.Len(), len(names)

	sym := mat.NewSymDense(c, nil)
	if n < 2 {
		for i := 0; i < c; i++ {
			for j := i; j < c; j++ {
				sym.SetSym(i, j, math.NaN())
			}
		}
		return &Matrix{names: names, sym: sym}, nil
	}

	data := mat.NewDense(n, c, nil)
	constant := make([]bool, c)
	for j, name := range names {
		col, err := ds.Column(name)
		if err != nil {
			return nil, apperrors.NewAppError(apperrors.ErrTypeValidation, "failed to read numeric column", err).
				WithContext("column", name)
		}
		data.SetCol(j, col)

		v := stat.Variance(col, nil)
		constant[j] = v == 0 || math.IsNaN(v)
	}

	stat.CorrelationMatrix(sym, data, nil)

	for i := 0; i < c; i++ {
		for j := i; j < c; j++ {
			switch {
			case constant[i] || constant[j]:
				sym.SetSym(i, j, math.NaN())
			case i == j:
				sym.SetSym(i, j, 1)
			}
		}
	}

	return &Matrix{names: names, sym: sym}, nil
}

// Names returns the column labels in matrix order
func (m *Matrix) Names() []string {
	return append([]string(nil), m.names...)
}

// Dims returns the number of rows and columns
func (m *Matrix) Dims() (int, int) {
	return len(m.names), len(m.names)
}

// At returns the correlation between columns i and j
func (m *Matrix) At(i, j int) float64 {
	return m.sym.At(i, j)
}

// Index returns the position of the named column
func (m *Matrix) Index(name string) (int, bool) {
	for i, n := range m.names {
		if n == name {
			return i, true
		}
	}
	return -1, false
}

// Values returns the matrix as rows
func (m *Matrix) Values() [][]float64 {
	n := len(m.names)
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, n)
		for j := range out[i] {
			out[i][j] = m.sym.At(i, j)
		}
	}
	return out
}
