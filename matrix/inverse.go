package matrix

import "golang.org/x/exp/constraints"

// ScaleRow multiplies every element of row r by factor in place.
// It returns ErrOutOfBounds if r is not a valid row index.
func (m *Dense[T]) ScaleRow(r int, factor T) error {
	if r < 0 || r >= m.rows {
		return opErrorf(opScaleRow, ErrOutOfBounds, "row %d in [%d x %d]", r, m.rows, m.cols)
	}

	row := m.data[m.cols*r : m.cols*(r+1)]
	for j := range row {
		row[j] *= factor
	}

	return nil
}

// SwapRows swaps rows r1 and r2 in place.
// It returns ErrOutOfBounds if either of the rows is not a valid row index.
func (m *Dense[T]) SwapRows(r1, r2 int) error {
	if r1 < 0 || r1 >= m.rows || r2 < 0 || r2 >= m.rows {
		return opErrorf(opSwapRows, ErrOutOfBounds, "rows %d, %d in [%d x %d]", r1, r2, m.rows, m.cols)
	}

	if r1 == r2 {
		return nil
	}

	for j := 0; j < m.cols; j++ {
		m.data[m.cols*r1+j], m.data[m.cols*r2+j] = m.data[m.cols*r2+j], m.data[m.cols*r1+j]
	}

	return nil
}

// Inv returns the inverse of m computed by Gauss-Jordan elimination with partial pivoting.
// For every pivot column the row with the largest absolute value is swapped into the pivot
// position, the pivot row is normalized and the pivot column is eliminated from all other rows.
// The same row operations applied to the identity matrix yield the inverse.
//
// It returns ErrInvalidDimension if m is not square and ErrSingular if a pivot column
// contains only zeros. There is no tolerance: nearly singular matrices are inverted and
// may produce very large elements.
func (m *Dense[T]) Inv() (*Dense[T], error) {
	if !m.IsSquare() {
		return nil, opErrorf(opInv, ErrInvalidDimension, "[%d x %d] is not square", m.rows, m.cols)
	}

	n := m.rows
	a := m.Clone()
	inv, err := Eye[T](n)
	if err != nil {
		return nil, opErrorf(opInv, err, "identity [%d x %d]", n, n)
	}

	for p := 0; p < n; p++ {
		// find the pivot
		var maxAbs T
		pivot := p
		for i := p; i < n; i++ {
			if v := abs(a.data[n*i+p]); v > maxAbs {
				maxAbs = v
				pivot = i
			}
		}

		if maxAbs == 0 {
			return nil, opErrorf(opInv, ErrSingular, "zero pivot column %d", p)
		}

		// pivot row indices are always valid here
		_ = a.SwapRows(p, pivot)
		_ = inv.SwapRows(p, pivot)

		f := 1 / a.data[n*p+p]
		_ = a.ScaleRow(p, f)
		_ = inv.ScaleRow(p, f)

		for i := 0; i < n; i++ {
			if i == p {
				continue
			}

			f := a.data[n*i+p]
			for j := 0; j < n; j++ {
				a.data[n*i+j] -= a.data[n*p+j] * f
				inv.data[n*i+j] -= inv.data[n*p+j] * f
			}
		}
	}

	return inv, nil
}

func abs[T constraints.Float](x T) T {
	if x < 0 {
		return -x
	}

	return x
}
