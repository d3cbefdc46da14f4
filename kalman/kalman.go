package kalman

import (
	bayes "github.com/milosgajdos/go-bayes"
	"github.com/milosgajdos/go-bayes/matrix"
	"golang.org/x/exp/constraints"
)

// Kalman is Kalman filter measurement update
type Kalman[T constraints.Float] interface {
	// bayes.Fuser fuses observations into posterior belief
	bayes.Fuser[T]
	// Gain returns Kalman gain of the last update
	Gain() *matrix.Dense[T]
}
