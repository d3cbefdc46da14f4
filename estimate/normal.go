package estimate

import (
	"fmt"
	"time"

	"github.com/milosgajdos/go-bayes/matrix"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
)

// Normal is a multivariate normal belief
type Normal[T constraints.Float] struct {
	// mean is n x 1 mean vector
	mean *matrix.Dense[T]
	// cov is n x n covariance matrix
	cov *matrix.Dense[T]
}

// NewNormal returns new multivariate normal belief given its mean and covariance.
// Both mean and cov are copied.
// It returns matrix.ErrInvalidDimension if mean is not a column vector or
// if cov is not a square matrix with the same number of rows as mean.
func NewNormal[T constraints.Float](mean, cov *matrix.Dense[T]) (*Normal[T], error) {
	if mean == nil || cov == nil {
		return nil, fmt.Errorf("nil mean or covariance: %w", matrix.ErrInvalidDimension)
	}

	rm, cm := mean.Dims()
	if cm != 1 {
		return nil, fmt.Errorf("mean [%d x %d] is not a column vector: %w", rm, cm, matrix.ErrInvalidDimension)
	}

	rc, cc := cov.Dims()
	if rc != rm || cc != rm {
		return nil, fmt.Errorf("covariance [%d x %d] does not match mean [%d x 1]: %w", rc, cc, rm, matrix.ErrInvalidDimension)
	}

	return &Normal[T]{
		mean: mean.Clone(),
		cov:  cov.Clone(),
	}, nil
}

// Mean returns a copy of the mean vector
func (n *Normal[T]) Mean() *matrix.Dense[T] {
	return n.mean.Clone()
}

// Cov returns a copy of the covariance matrix
func (n *Normal[T]) Cov() *matrix.Dense[T] {
	return n.cov.Clone()
}

// Dim returns the dimension of the distribution
func (n *Normal[T]) Dim() int {
	rows, _ := n.mean.Dims()
	return rows
}

// Dist returns gonum multivariate normal distribution with the same mean and covariance.
// The covariance is symmetrized before it is handed over to gonum.
// Every call returns a new distribution seeded from the current time: the seed only
// affects sampling, so density evaluation is deterministic.
// It returns error if the covariance is not positive definite.
func (n *Normal[T]) Dist() (*distmv.Normal, error) {
	size := n.Dim()
	sym := mat.NewSymDense(size, nil)
	for i := 0; i < size; i++ {
		for j := i; j < size; j++ {
			cij, _ := n.cov.At(i, j)
			cji, _ := n.cov.At(j, i)
			sym.SetSym(i, j, float64(cij+cji)/2)
		}
	}

	mean := make([]float64, size)
	for i := range mean {
		v, _ := n.mean.At(i, 0)
		mean[i] = float64(v)
	}

	src := rand.NewSource(uint64(time.Now().UnixNano()))
	dist, ok := distmv.NewNormal(mean, sym, src)
	if !ok {
		return nil, fmt.Errorf("covariance is not positive definite:\n%v", n.cov)
	}

	return dist, nil
}

// LogProb returns the log of the probability density of x under the distribution.
// It returns error if x is not a column vector of the distribution dimension or
// if the covariance is not positive definite.
func (n *Normal[T]) LogProb(x *matrix.Dense[T]) (float64, error) {
	rows, cols := x.Dims()
	if rows != n.Dim() || cols != 1 {
		return 0, fmt.Errorf("invalid point [%d x %d]: %w", rows, cols, matrix.ErrInvalidDimension)
	}

	dist, err := n.Dist()
	if err != nil {
		return 0, err
	}

	data := x.RawData()
	point := make([]float64, len(data))
	for i, v := range data {
		point[i] = float64(v)
	}

	return dist.LogProb(point), nil
}

// String implements the Stringer interface.
func (n *Normal[T]) String() string {
	return fmt.Sprintf("Mean\n%v\nCovariance Matrix\n%v", n.mean, n.cov)
}
