package sim

import (
	"fmt"

	bayes "github.com/milosgajdos/go-bayes"
	"github.com/milosgajdos/go-bayes/estimate"
	"github.com/milosgajdos/go-bayes/matrix"
	brand "github.com/milosgajdos/go-bayes/rand"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/rand"
)

// Observer simulates a static linear observation model
//
//	y = A*x + B + w
//
// where w is observation noise. Every simulated observation is
// a Gaussian belief whose covariance is the noise covariance.
type Observer[T constraints.Float] struct {
	// a maps the state space into the observation space
	a *matrix.Dense[T]
	// b is observation offset
	b *matrix.Dense[T]
	// w is observation noise
	w bayes.Noise
}

// NewObserver creates new Observer and returns it.
// It returns error if b is not a column vector with the same number of rows as a
// or if the dimension of noise w does not match the number of rows of a.
func NewObserver[T constraints.Float](a, b *matrix.Dense[T], w bayes.Noise) (*Observer[T], error) {
	if a == nil || b == nil || w == nil {
		return nil, fmt.Errorf("invalid observer: nil observation model or noise")
	}

	ny, _ := a.Dims()
	if rows, cols := b.Dims(); rows != ny || cols != 1 {
		return nil, fmt.Errorf("invalid observation offset dimensions: [%d x %d]: %w", rows, cols, matrix.ErrInvalidDimension)
	}

	if w.Cov().SymmetricDim() != ny || len(w.Mean()) != ny {
		return nil, fmt.Errorf("invalid observation noise dimension: %d: %w", w.Cov().SymmetricDim(), matrix.ErrInvalidDimension)
	}

	return &Observer[T]{
		a: a.Clone(),
		b: b.Clone(),
		w: w,
	}, nil
}

// Dims returns state and observation dimensions.
func (o *Observer[T]) Dims() (nx, ny int) {
	ny, nx = o.a.Dims()
	return nx, ny
}

// Observe returns a noisy observation of the state x.
// It returns error if x is not a state column vector.
func (o *Observer[T]) Observe(x *matrix.Dense[T]) (*estimate.Normal[T], error) {
	y, err := o.output(x)
	if err != nil {
		return nil, err
	}

	wn := o.w.Sample()
	for i := 0; i < wn.Len(); i++ {
		v, _ := y.At(i, 0)
		_ = y.Set(i, 0, v+T(wn.AtVec(i)))
	}

	return o.observation(y)
}

// ObserveN returns n noisy observations of the state x.
// Noise samples are drawn in one batch from the random source src; if src is nil a time seeded source is used.
// It returns error if x is not a state column vector, n is not positive or the noise covariance can't be factorized.
func (o *Observer[T]) ObserveN(x *matrix.Dense[T], n int, src rand.Source) ([]*estimate.Normal[T], error) {
	y, err := o.output(x)
	if err != nil {
		return nil, err
	}

	samples, err := brand.WithCovN(o.w.Cov(), n, src)
	if err != nil {
		return nil, fmt.Errorf("failed to sample observation noise: %w", err)
	}
	mean := o.w.Mean()

	obs := make([]*estimate.Normal[T], n)
	for j := range obs {
		yj := y.Clone()
		for i := range mean {
			v, _ := yj.At(i, 0)
			_ = yj.Set(i, 0, v+T(mean[i]+samples.At(i, j)))
		}

		if obs[j], err = o.observation(yj); err != nil {
			return nil, err
		}
	}

	return obs, nil
}

// output returns noiseless observation A*x + B
func (o *Observer[T]) output(x *matrix.Dense[T]) (*matrix.Dense[T], error) {
	if x == nil {
		return nil, fmt.Errorf("invalid state vector: %w", matrix.ErrInvalidDimension)
	}

	nx, _ := o.Dims()
	if rows, cols := x.Dims(); rows != nx || cols != 1 {
		return nil, fmt.Errorf("invalid state vector [%d x %d]: %w", rows, cols, matrix.ErrInvalidDimension)
	}

	y, err := o.a.Mul(x)
	if err != nil {
		return nil, err
	}

	return y.Add(o.b)
}

func (o *Observer[T]) observation(y *matrix.Dense[T]) (*estimate.Normal[T], error) {
	cov, err := matrix.FromGonum[T](o.w.Cov())
	if err != nil {
		return nil, fmt.Errorf("invalid noise covariance: %w", err)
	}

	return estimate.NewNormal(y, cov)
}
