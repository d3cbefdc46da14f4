package lgs

import (
	"fmt"

	bayes "github.com/milosgajdos/go-bayes"
	"github.com/milosgajdos/go-bayes/estimate"
	"github.com/milosgajdos/go-bayes/matrix"
	"golang.org/x/exp/constraints"
)

// System is a linear Gaussian system.
// It maintains a Gaussian posterior belief about an unknown state which is observed
// through a fixed linear observation model y = A*x + B + noise.
type System[T constraints.Float] struct {
	// posterior is the current state belief
	posterior *estimate.Normal[T]
	// a maps the state space into the observation space
	a *matrix.Dense[T]
	// b is observation offset
	b *matrix.Dense[T]
}

// New creates new linear Gaussian system with the given prior belief,
// observation matrix a and observation offset b and returns it.
// Shapes of a and b are not checked against the prior: mismatches are reported by Train.
// It returns error if any of the parameters is nil or if the prior is not a valid normal belief.
func New[T constraints.Float](prior bayes.Belief[T], a, b *matrix.Dense[T]) (*System[T], error) {
	if prior == nil || a == nil || b == nil {
		return nil, fmt.Errorf("invalid system: nil prior or observation model")
	}

	posterior, err := estimate.NewNormal(prior.Mean(), prior.Cov())
	if err != nil {
		return nil, fmt.Errorf("invalid prior: %w", err)
	}

	return &System[T]{
		posterior: posterior,
		a:         a.Clone(),
		b:         b.Clone(),
	}, nil
}

// Train fuses observation y into the posterior belief.
//
// The update is done in information form: precisions of the prior and of the
// observation mapped into the state space are added together:
//
//	cov  = (P^-1 + A' * R^-1 * A)^-1
//	mean = cov * (A' * R^-1 * (y - B) + P^-1 * x)
//
// where x, P are posterior mean and covariance and y, R are observation mean and covariance.
// The posterior is replaced only if the whole update succeeds.
// It returns error wrapping matrix.ErrSingular if either of the covariances or their fused
// precision can't be inverted and matrix.ErrInvalidDimension if y does not match the model.
func (s *System[T]) Train(y bayes.Belief[T]) error {
	if y == nil {
		return fmt.Errorf("invalid observation: %w", matrix.ErrInvalidDimension)
	}

	pInv, err := s.posterior.Cov().Inv()
	if err != nil {
		return fmt.Errorf("failed to invert posterior covariance: %w", err)
	}

	rInv, err := y.Cov().Inv()
	if err != nil {
		return fmt.Errorf("failed to invert observation covariance: %w", err)
	}

	// A' * R^-1
	atRInv, err := s.a.T().Mul(rInv)
	if err != nil {
		return fmt.Errorf("observation model mismatch: %w", err)
	}

	// A' * R^-1 * A
	info, err := atRInv.Mul(s.a)
	if err != nil {
		return fmt.Errorf("observation model mismatch: %w", err)
	}

	precision, err := pInv.Add(info)
	if err != nil {
		return fmt.Errorf("observation model does not match state: %w", err)
	}

	cov, err := precision.Inv()
	if err != nil {
		return fmt.Errorf("failed to invert fused precision: %w", err)
	}

	// y - B
	inn, err := y.Mean().Sub(s.b)
	if err != nil {
		return fmt.Errorf("observation offset mismatch: %w", err)
	}

	// A' * R^-1 * (y - B)
	obsInfo, err := atRInv.Mul(inn)
	if err != nil {
		return fmt.Errorf("observation mean mismatch: %w", err)
	}

	// P^-1 * x
	priorInfo, err := pInv.Mul(s.posterior.Mean())
	if err != nil {
		return fmt.Errorf("posterior mismatch: %w", err)
	}

	infoMean, err := obsInfo.Add(priorInfo)
	if err != nil {
		return fmt.Errorf("observation model does not match state: %w", err)
	}

	mean, err := cov.Mul(infoMean)
	if err != nil {
		return fmt.Errorf("failed to compute posterior mean: %w", err)
	}

	posterior, err := estimate.NewNormal(mean, cov)
	if err != nil {
		return fmt.Errorf("invalid posterior: %w", err)
	}
	s.posterior = posterior

	return nil
}

// TrainAll fuses observations ys into the posterior belief one after another.
// It stops at the first observation which fails to be fused and returns error;
// observations fused before the failing one remain applied.
func (s *System[T]) TrainAll(ys ...bayes.Belief[T]) error {
	for i, y := range ys {
		if err := s.Train(y); err != nil {
			return fmt.Errorf("observation %d: %w", i, err)
		}
	}

	return nil
}

// Posterior returns current posterior belief
func (s *System[T]) Posterior() bayes.Belief[T] {
	// NewNormal can't fail: posterior has been validated already
	posterior, _ := estimate.NewNormal(s.posterior.Mean(), s.posterior.Cov())

	return posterior
}

// A returns observation matrix
func (s *System[T]) A() *matrix.Dense[T] {
	return s.a.Clone()
}

// B returns observation offset
func (s *System[T]) B() *matrix.Dense[T] {
	return s.b.Clone()
}

// String implements the Stringer interface.
func (s *System[T]) String() string {
	return fmt.Sprintf("System{\nPosterior=\n%v\nA=\n%v\nB=\n%v}", s.posterior, s.a, s.b)
}
