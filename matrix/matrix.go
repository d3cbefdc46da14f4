package matrix

import (
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ColSums returns a slice containing m column sums.
func (m *Dense[T]) ColSums() []float64 {
	sum := make([]float64, m.cols)

	t := m.T()
	for j := 0; j < m.cols; j++ {
		sum[j] = floats.Sum(toFloat64(t.data[t.cols*j : t.cols*(j+1)]))
	}

	return sum
}

// Trace returns the sum of the diagonal elements of m.
// It returns ErrInvalidDimension if m is not square.
func (m *Dense[T]) Trace() (T, error) {
	if !m.IsSquare() {
		return 0, opErrorf(opTrace, ErrInvalidDimension, "[%d x %d] is not square", m.rows, m.cols)
	}

	var tr T
	for i := 0; i < m.rows; i++ {
		tr += m.data[m.cols*i+i]
	}

	return tr, nil
}

// EqualApprox returns true if m and b have the same shape and all their elements
// are within tol of each other, either in absolute or relative terms.
func (m *Dense[T]) EqualApprox(b *Dense[T], tol float64) bool {
	if m.rows != b.rows || m.cols != b.cols {
		return false
	}

	return floats.EqualApprox(toFloat64(m.data), toFloat64(b.data), tol)
}

// Gonum returns a copy of m as gonum dense matrix.
func (m *Dense[T]) Gonum() *mat.Dense {
	return mat.NewDense(m.rows, m.cols, toFloat64(m.data))
}

// FromGonum creates new matrix from the gonum matrix a and returns it.
// It returns ErrInvalidDimension if a is empty.
func FromGonum[T constraints.Float](a mat.Matrix) (*Dense[T], error) {
	rows, cols := a.Dims()
	m, err := New[T](rows, cols)
	if err != nil {
		return nil, err
	}

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			m.data[cols*i+j] = T(a.At(i, j))
		}
	}

	return m, nil
}

// String implements the Stringer interface.
// Every row is rendered on its own line with elements separated by a single space.
func (m *Dense[T]) String() string {
	bitSize := 64
	if _, ok := any(T(0)).(float32); ok {
		bitSize = 32
	}

	var b strings.Builder
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			if j > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(strconv.FormatFloat(float64(m.data[m.cols*i+j]), 'g', -1, bitSize))
		}
		b.WriteByte('\n')
	}

	return b.String()
}

func toFloat64[T constraints.Float](data []T) []float64 {
	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = float64(v)
	}

	return out
}
