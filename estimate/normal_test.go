package estimate

import (
	"math"
	"testing"

	"github.com/milosgajdos/go-bayes/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDense(t *testing.T, rows, cols int, data []float64) *matrix.Dense[float64] {
	t.Helper()
	m, err := matrix.NewWithData(rows, cols, data)
	require.NoError(t, err)

	return m
}

func TestNewNormal(t *testing.T) {
	assert := assert.New(t)

	mean := newDense(t, 2, 1, []float64{1.0, 1.0})
	cov := newDense(t, 2, 2, []float64{1.0, 0.0, 0.0, 1.0})

	n, err := NewNormal(mean, cov)
	assert.NotNil(n)
	assert.NoError(err)
	assert.Equal(2, n.Dim())

	for _, test := range []struct {
		mean *matrix.Dense[float64]
		cov  *matrix.Dense[float64]
	}{
		// mean is not a column vector
		{mean: newDense(t, 1, 2, []float64{1, 1}), cov: cov},
		// covariance is not square
		{mean: mean, cov: newDense(t, 2, 1, []float64{1, 1})},
		// covariance does not match the mean
		{mean: mean, cov: newDense(t, 1, 1, []float64{1})},
		{mean: nil, cov: cov},
		{mean: mean, cov: nil},
	} {
		n, err := NewNormal(test.mean, test.cov)
		assert.Nil(n)
		assert.ErrorIs(err, matrix.ErrInvalidDimension)
	}
}

func TestMeanCov(t *testing.T) {
	assert := assert.New(t)

	mean := newDense(t, 2, 1, []float64{1.0, 2.0})
	cov := newDense(t, 2, 2, []float64{1.0, 2.0, 2.0, 4.0})

	n, err := NewNormal(mean, cov)
	assert.NoError(err)

	assert.True(mean.Equal(n.Mean()))
	assert.True(cov.Equal(n.Cov()))

	// neither the inputs nor the returned copies alias the belief
	assert.NoError(mean.Set(0, 0, 100))
	assert.NoError(n.Cov().Set(0, 0, 100))
	m := n.Mean()
	v, _ := m.At(0, 0)
	assert.Equal(1.0, v)
	c := n.Cov()
	v, _ = c.At(0, 0)
	assert.Equal(1.0, v)
}

func TestLogProb(t *testing.T) {
	assert := assert.New(t)

	mean := newDense(t, 2, 1, []float64{0, 0})
	cov := newDense(t, 2, 2, []float64{1, 0, 0, 1})

	n, err := NewNormal(mean, cov)
	assert.NoError(err)

	dist, err := n.Dist()
	assert.NoError(err)
	assert.Equal(2, dist.Dim())

	// standard bivariate normal density at the origin is 1/(2*pi)
	lp, err := n.LogProb(newDense(t, 2, 1, []float64{0, 0}))
	assert.NoError(err)
	assert.InDelta(-math.Log(2*math.Pi), lp, 1e-12)

	// density does not depend on the distribution seed
	again, err := n.LogProb(newDense(t, 2, 1, []float64{0, 0}))
	assert.NoError(err)
	assert.Equal(lp, again)

	_, err = n.LogProb(newDense(t, 1, 1, []float64{0}))
	assert.ErrorIs(err, matrix.ErrInvalidDimension)

	// singular covariance has no density
	n, err = NewNormal(mean, newDense(t, 2, 2, []float64{1, 1, 1, 1}))
	assert.NoError(err)
	_, err = n.Dist()
	assert.Error(err)
}

func TestString(t *testing.T) {
	assert := assert.New(t)

	str := "Mean\n0\n-1\n\nCovariance Matrix\n0.01 0\n0 0.01\n"

	n, err := NewNormal(
		newDense(t, 2, 1, []float64{0, -1}),
		newDense(t, 2, 2, []float64{0.01, 0, 0, 0.01}),
	)
	assert.NoError(err)
	assert.Equal(str, n.String())
}
