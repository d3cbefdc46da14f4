package bayes

import (
	"github.com/milosgajdos/go-bayes/matrix"
	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/mat"
)

// Belief is a Gaussian belief over a vector space
type Belief[T constraints.Float] interface {
	// Mean returns belief mean column vector
	Mean() *matrix.Dense[T]
	// Cov returns belief covariance matrix
	Cov() *matrix.Dense[T]
	// Dim returns the dimension of the belief vector space
	Dim() int
}

// Fuser fuses observations into a posterior belief
type Fuser[T constraints.Float] interface {
	// Train fuses the observation into the posterior belief
	Train(Belief[T]) error
	// Posterior returns current posterior belief
	Posterior() Belief[T]
}

// Noise is observation noise
type Noise interface {
	// Mean returns noise mean
	Mean() []float64
	// Cov returns covariance matrix of the noise
	Cov() mat.Symmetric
	// Sample returns a sample of the noise
	Sample() mat.Vector
}
