package matrix

import (
	"golang.org/x/exp/constraints"
)

// Dense is a dense matrix of floating point numbers.
// Its elements are stored in a single slice in row-major order:
// element (i, j) lives at offset cols*i+j.
type Dense[T constraints.Float] struct {
	// rows is the number of matrix rows
	rows int
	// cols is the number of matrix columns
	cols int
	// data holds rows*cols matrix elements
	data []T
}

// New creates new zero-valued matrix with the given number of rows and columns and returns it.
// It returns ErrInvalidDimension if either of the dimensions is not a positive integer.
func New[T constraints.Float](rows, cols int) (*Dense[T], error) {
	if rows <= 0 || cols <= 0 {
		return nil, opErrorf(opNew, ErrInvalidDimension, "[%d x %d]", rows, cols)
	}

	return &Dense[T]{
		rows: rows,
		cols: cols,
		data: make([]T, rows*cols),
	}, nil
}

// NewWithData creates new matrix with the given dimensions and initializes it with data.
// data is expected to be in row-major order; it is copied, so the returned matrix does not alias it.
// It returns ErrInvalidDimension if either of the dimensions is not a positive integer
// or if the length of data does not equal rows*cols.
func NewWithData[T constraints.Float](rows, cols int, data []T) (*Dense[T], error) {
	m, err := New[T](rows, cols)
	if err != nil {
		return nil, err
	}

	if len(data) != rows*cols {
		return nil, opErrorf(opNew, ErrInvalidDimension, "data length %d != %d x %d", len(data), rows, cols)
	}
	copy(m.data, data)

	return m, nil
}

// Dims returns the number of matrix rows and columns.
func (m *Dense[T]) Dims() (rows, cols int) {
	return m.rows, m.cols
}

// At returns the element at row i and column j.
// It returns ErrOutOfBounds if either of the indices is outside the matrix.
func (m *Dense[T]) At(i, j int) (T, error) {
	if !m.inBounds(i, j) {
		return 0, opErrorf(opAt, ErrOutOfBounds, "(%d, %d) in [%d x %d]", i, j, m.rows, m.cols)
	}

	return m.data[m.cols*i+j], nil
}

// Set sets the element at row i and column j to v.
// It returns ErrOutOfBounds if either of the indices is outside the matrix.
func (m *Dense[T]) Set(i, j int, v T) error {
	if !m.inBounds(i, j) {
		return opErrorf(opSet, ErrOutOfBounds, "(%d, %d) in [%d x %d]", i, j, m.rows, m.cols)
	}
	m.data[m.cols*i+j] = v

	return nil
}

func (m *Dense[T]) inBounds(i, j int) bool {
	return i >= 0 && i < m.rows && j >= 0 && j < m.cols
}

// RawData returns a copy of the matrix elements in row-major order.
func (m *Dense[T]) RawData() []T {
	data := make([]T, len(m.data))
	copy(data, m.data)

	return data
}

// Clone returns a deep copy of m.
func (m *Dense[T]) Clone() *Dense[T] {
	return &Dense[T]{
		rows: m.rows,
		cols: m.cols,
		data: m.RawData(),
	}
}

// IsSquare returns true if m has the same number of rows and columns.
func (m *Dense[T]) IsSquare() bool {
	return m.rows == m.cols
}

// IsColVector returns true if m has exactly one column.
func (m *Dense[T]) IsColVector() bool {
	return m.cols == 1
}

// Equal returns true if m and b have the same shape and exactly the same elements.
func (m *Dense[T]) Equal(b *Dense[T]) bool {
	if m.rows != b.rows || m.cols != b.cols {
		return false
	}

	for i := range m.data {
		if m.data[i] != b.data[i] {
			return false
		}
	}

	return true
}
