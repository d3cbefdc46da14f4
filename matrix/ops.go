package matrix

import "golang.org/x/exp/constraints"

// T returns a new matrix which is the transpose of m.
func (m *Dense[T]) T() *Dense[T] {
	out := &Dense[T]{
		rows: m.cols,
		cols: m.rows,
		data: make([]T, len(m.data)),
	}

	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			out.data[out.cols*j+i] = m.data[m.cols*i+j]
		}
	}

	return out
}

// Add adds b to m elementwise and returns the result as a new matrix.
// It returns ErrInvalidDimension if m and b do not have the same shape.
func (m *Dense[T]) Add(b *Dense[T]) (*Dense[T], error) {
	if m.rows != b.rows || m.cols != b.cols {
		return nil, opErrorf(opAdd, ErrInvalidDimension, "[%d x %d] + [%d x %d]", m.rows, m.cols, b.rows, b.cols)
	}

	out := m.Clone()
	for i := range out.data {
		out.data[i] += b.data[i]
	}

	return out, nil
}

// AddScalar adds x to every element of m and returns the result as a new matrix.
func (m *Dense[T]) AddScalar(x T) *Dense[T] {
	out := m.Clone()
	for i := range out.data {
		out.data[i] += x
	}

	return out
}

// ScalarAdd returns x + m. Scalar addition is commutative: it is the same as m.AddScalar(x).
func ScalarAdd[T constraints.Float](x T, m *Dense[T]) *Dense[T] {
	return m.AddScalar(x)
}

// Sub subtracts b from m and returns the result as a new matrix.
// It is defined as m + (-1 * b), so it returns ErrInvalidDimension if m and b do not have the same shape.
func (m *Dense[T]) Sub(b *Dense[T]) (*Dense[T], error) {
	return m.Add(b.Scale(-1))
}

// Mul multiplies m by b and returns the result as a new [m.rows x b.cols] matrix.
// It returns ErrInvalidDimension if the number of columns of m does not match the number of rows of b.
func (m *Dense[T]) Mul(b *Dense[T]) (*Dense[T], error) {
	if m.cols != b.rows {
		return nil, opErrorf(opMul, ErrInvalidDimension, "[%d x %d] * [%d x %d]", m.rows, m.cols, b.rows, b.cols)
	}

	out := &Dense[T]{
		rows: m.rows,
		cols: b.cols,
		data: make([]T, m.rows*b.cols),
	}

	for i := 0; i < out.rows; i++ {
		for j := 0; j < out.cols; j++ {
			var sum T
			for k := 0; k < m.cols; k++ {
				sum += m.data[m.cols*i+k] * b.data[b.cols*k+j]
			}
			out.data[out.cols*i+j] = sum
		}
	}

	return out, nil
}

// Scale multiplies every element of m by x and returns the result as a new matrix.
func (m *Dense[T]) Scale(x T) *Dense[T] {
	out := m.Clone()
	for i := range out.data {
		out.data[i] *= x
	}

	return out
}

// ScalarMul returns x * m. It is the same as m.Scale(x).
func ScalarMul[T constraints.Float](x T, m *Dense[T]) *Dense[T] {
	return m.Scale(x)
}

// Div divides every element of m by x and returns the result as a new matrix.
// It returns ErrDivideByZero if x is zero.
func (m *Dense[T]) Div(x T) (*Dense[T], error) {
	if x == 0 {
		return nil, opErrorf(opDiv, ErrDivideByZero, "[%d x %d] / 0", m.rows, m.cols)
	}

	return m.Scale(1 / x), nil
}
