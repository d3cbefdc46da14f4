package kf

import (
	"fmt"

	bayes "github.com/milosgajdos/go-bayes"
	"github.com/milosgajdos/go-bayes/estimate"
	"github.com/milosgajdos/go-bayes/matrix"
	"golang.org/x/exp/constraints"
)

// KF is Kalman filter measurement update.
// It fuses observations y = A*x + B + noise into a Gaussian state belief
// in covariance form, so unlike the information form it never inverts the state covariance.
type KF[T constraints.Float] struct {
	// x is the posterior mean
	x *matrix.Dense[T]
	// p is the posterior covariance
	p *matrix.Dense[T]
	// a is observation matrix
	a *matrix.Dense[T]
	// b is observation offset
	b *matrix.Dense[T]
	// inn is innovation vector of the last update
	inn *matrix.Dense[T]
	// k is Kalman gain of the last update
	k *matrix.Dense[T]
}

// New creates new KF and returns it.
// It accepts the following parameters:
//   - init: initial belief about the state
//   - a:    observation matrix
//   - b:    observation offset
//
// It returns error if either of the following conditions is met:
//   - any of the parameters is nil
//   - a does not have as many columns as the state dimension
//   - b is not a column vector with as many rows as a
func New[T constraints.Float](init bayes.Belief[T], a, b *matrix.Dense[T]) (*KF[T], error) {
	if init == nil || a == nil || b == nil {
		return nil, fmt.Errorf("invalid KF: nil initial belief or observation model")
	}

	// NewNormal deep copies the belief so KF never shares storage with it
	n, err := estimate.NewNormal(init.Mean(), init.Cov())
	if err != nil {
		return nil, fmt.Errorf("invalid initial belief: %w", err)
	}
	x, p := n.Mean(), n.Cov()
	nx := n.Dim()

	ny, cols := a.Dims()
	if cols != nx {
		return nil, fmt.Errorf("invalid observation matrix dimensions: [%d x %d]: %w", ny, cols, matrix.ErrInvalidDimension)
	}

	rows, cols := b.Dims()
	if rows != ny || cols != 1 {
		return nil, fmt.Errorf("invalid observation offset dimensions: [%d x %d]: %w", rows, cols, matrix.ErrInvalidDimension)
	}

	// innovation vector
	inn, err := matrix.New[T](ny, 1)
	if err != nil {
		return nil, err
	}

	// kalman gain
	k, err := matrix.New[T](nx, ny)
	if err != nil {
		return nil, err
	}

	return &KF[T]{
		x:   x,
		p:   p,
		a:   a.Clone(),
		b:   b.Clone(),
		inn: inn,
		k:   k,
	}, nil
}

// Train corrects the posterior belief using observation y.
// It returns error if y does not match the observation model or if the innovation covariance
// A*P*A' + R can't be inverted. The posterior is left unchanged on error.
func (k *KF[T]) Train(y bayes.Belief[T]) error {
	if y == nil {
		return fmt.Errorf("invalid observation: %w", matrix.ErrInvalidDimension)
	}

	ny, _ := k.a.Dims()
	if y.Dim() != ny {
		return fmt.Errorf("invalid observation dimension %d != %d: %w", y.Dim(), ny, matrix.ErrInvalidDimension)
	}
	r := y.Cov()

	// P*A'
	pxy, err := k.p.Mul(k.a.T())
	if err != nil {
		return fmt.Errorf("observation model mismatch: %w", err)
	}

	// Note: pxy = P * A' so we reuse the result here
	// A*P*A' + R
	pyy, err := k.a.Mul(pxy)
	if err != nil {
		return fmt.Errorf("observation model mismatch: %w", err)
	}
	if pyy, err = pyy.Add(r); err != nil {
		return fmt.Errorf("observation covariance mismatch: %w", err)
	}

	// calculate Kalman gain
	pyyInv, err := pyy.Inv()
	if err != nil {
		return fmt.Errorf("failed to calculate Pyy inverse: %w", err)
	}
	gain, err := pxy.Mul(pyyInv)
	if err != nil {
		return fmt.Errorf("failed to calculate Kalman gain: %w", err)
	}

	// predicted observation A*x + B
	yPred, err := k.a.Mul(k.x)
	if err != nil {
		return fmt.Errorf("observation model mismatch: %w", err)
	}
	if yPred, err = yPred.Add(k.b); err != nil {
		return fmt.Errorf("observation offset mismatch: %w", err)
	}

	// innovation vector
	inn, err := y.Mean().Sub(yPred)
	if err != nil {
		return fmt.Errorf("observation mean mismatch: %w", err)
	}

	// update state x
	corr, err := gain.Mul(inn)
	if err != nil {
		return fmt.Errorf("failed to calculate state correction: %w", err)
	}
	x, err := k.x.Add(corr)
	if err != nil {
		return fmt.Errorf("failed to update state: %w", err)
	}

	// Joseph form update
	nx, _ := k.x.Dims()
	eye, err := matrix.Eye[T](nx)
	if err != nil {
		return fmt.Errorf("failed to create identity: %w", err)
	}
	// K*A
	ka, err := gain.Mul(k.a)
	if err != nil {
		return fmt.Errorf("failed to calculate K*A: %w", err)
	}
	// eye - K*A
	ika, err := eye.Sub(ka)
	if err != nil {
		return fmt.Errorf("failed to calculate I-K*A: %w", err)
	}

	// (I-K*A)*P*(I-K*A)'
	apa, err := ika.Mul(k.p)
	if err != nil {
		return fmt.Errorf("failed to propagate covariance: %w", err)
	}
	if apa, err = apa.Mul(ika.T()); err != nil {
		return fmt.Errorf("failed to propagate covariance: %w", err)
	}

	// K*R*K'
	krk, err := gain.Mul(r)
	if err != nil {
		return fmt.Errorf("failed to calculate K*R*K': %w", err)
	}
	if krk, err = krk.Mul(gain.T()); err != nil {
		return fmt.Errorf("failed to calculate K*R*K': %w", err)
	}

	p, err := apa.Add(krk)
	if err != nil {
		return fmt.Errorf("failed to update covariance: %w", err)
	}

	k.x = x
	k.p = p
	k.inn = inn
	k.k = gain

	return nil
}

// Posterior returns current posterior belief
func (k *KF[T]) Posterior() bayes.Belief[T] {
	// NewNormal can't fail: x and p are kept consistent
	posterior, _ := estimate.NewNormal(k.x, k.p)

	return posterior
}

// Cov returns KF covariance
func (k *KF[T]) Cov() *matrix.Dense[T] {
	return k.p.Clone()
}

// Gain returns Kalman gain
func (k *KF[T]) Gain() *matrix.Dense[T] {
	return k.k.Clone()
}

// Innovation returns innovation vector of the last update
func (k *KF[T]) Innovation() *matrix.Dense[T] {
	return k.inn.Clone()
}
