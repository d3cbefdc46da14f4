package matrix

import "golang.org/x/exp/constraints"

// Scalar returns 1 x 1 matrix which holds x.
func Scalar[T constraints.Float](x T) *Dense[T] {
	return &Dense[T]{
		rows: 1,
		cols: 1,
		data: []T{x},
	}
}

// Eye returns n x n identity matrix.
// It returns ErrInvalidDimension if n is not a positive integer.
func Eye[T constraints.Float](n int) (*Dense[T], error) {
	m, err := New[T](n, n)
	if err != nil {
		return nil, err
	}

	for i := 0; i < n; i++ {
		m.data[n*i+i] = 1
	}

	return m, nil
}

// Col returns n x 1 column vector with all elements set to x.
// It returns ErrInvalidDimension if n is not a positive integer.
func Col[T constraints.Float](n int, x T) (*Dense[T], error) {
	m, err := New[T](n, 1)
	if err != nil {
		return nil, err
	}

	for i := range m.data {
		m.data[i] = x
	}

	return m, nil
}
