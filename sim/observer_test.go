package sim

import (
	"os"
	"testing"

	"github.com/milosgajdos/go-bayes/estimate"
	"github.com/milosgajdos/go-bayes/kalman/lgs"
	"github.com/milosgajdos/go-bayes/matrix"
	"github.com/milosgajdos/go-bayes/noise"
	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

var (
	x    *matrix.Dense[float64]
	A, B *matrix.Dense[float64]
	zero *fixedNoise
	wn   *noise.Gaussian
)

// fixedNoise always samples its mean
type fixedNoise struct {
	mean []float64
	cov  *mat.SymDense
}

func newFixedNoise(size int) *fixedNoise {
	return &fixedNoise{
		mean: make([]float64, size),
		cov:  mat.NewSymDense(size, nil),
	}
}

func (f *fixedNoise) Mean() []float64    { return f.mean }
func (f *fixedNoise) Cov() mat.Symmetric { return f.cov }
func (f *fixedNoise) Sample() mat.Vector {
	return mat.NewVecDense(len(f.mean), append([]float64(nil), f.mean...))
}

func setup() {
	x, _ = matrix.NewWithData(2, 1, []float64{0.5, 0.6})

	A, _ = matrix.NewWithData(2, 2, []float64{1.0, 1.0, 0.0, 1.0})
	B, _ = matrix.NewWithData(2, 1, []float64{0.5, 1.0})

	zero = newFixedNoise(2)
	wn, _ = noise.NewGaussian([]float64{0, 0}, mat.NewSymDense(2, []float64{0.01, 0, 0, 0.01}))
}

func TestMain(m *testing.M) {
	// set up tests
	setup()
	// run the tests
	retCode := m.Run()
	// call with result of m.Run()
	os.Exit(retCode)
}

func TestNewObserver(t *testing.T) {
	assert := assert.New(t)

	o, err := NewObserver(A, B, zero)
	assert.NotNil(o)
	assert.NoError(err)

	nx, ny := o.Dims()
	assert.Equal(2, nx)
	assert.Equal(2, ny)

	o, err = NewObserver(A, B, nil)
	assert.Nil(o)
	assert.Error(err)

	// offset does not match observation matrix
	o, err = NewObserver(A, matrix.Scalar(1.0), zero)
	assert.Nil(o)
	assert.ErrorIs(err, matrix.ErrInvalidDimension)

	// noise does not match observation matrix
	z3 := newFixedNoise(3)
	o, err = NewObserver(A, B, z3)
	assert.Nil(o)
	assert.ErrorIs(err, matrix.ErrInvalidDimension)
}

func TestObserve(t *testing.T) {
	assert := assert.New(t)

	o, err := NewObserver(A, B, zero)
	assert.NoError(err)

	y, err := o.Observe(x)
	assert.NoError(err)
	// A*x + B
	assert.InDeltaSlice([]float64{1.6, 1.6}, y.Mean().RawData(), 1e-12)
	assert.Equal([]float64{0, 0, 0, 0}, y.Cov().RawData())

	// invalid state vector
	y, err = o.Observe(matrix.Scalar(1.0))
	assert.Nil(y)
	assert.ErrorIs(err, matrix.ErrInvalidDimension)

	y, err = o.Observe(nil)
	assert.Nil(y)
	assert.ErrorIs(err, matrix.ErrInvalidDimension)

	o, err = NewObserver(A, B, wn)
	assert.NoError(err)
	y, err = o.Observe(x)
	assert.NoError(err)
	assert.Equal(2, y.Dim())
	assert.InDeltaSlice([]float64{0.01, 0, 0, 0.01}, y.Cov().RawData(), 1e-12)
}

func TestObserveN(t *testing.T) {
	assert := assert.New(t)

	o, err := NewObserver(A, B, wn)
	assert.NoError(err)

	obs, err := o.ObserveN(x, 10, rand.NewSource(7))
	assert.NoError(err)
	assert.Len(obs, 10)

	// same seed yields the same observations
	again, err := o.ObserveN(x, 10, rand.NewSource(7))
	assert.NoError(err)
	for i := range obs {
		assert.True(obs[i].Mean().Equal(again[i].Mean()))
	}

	_, err = o.ObserveN(x, 0, nil)
	assert.Error(err)

	_, err = o.ObserveN(matrix.Scalar(1.0), 10, nil)
	assert.ErrorIs(err, matrix.ErrInvalidDimension)
}

func TestFuseObservations(t *testing.T) {
	assert := assert.New(t)

	o, err := NewObserver(A, B, wn)
	assert.NoError(err)

	obs, err := o.ObserveN(x, 200, rand.NewSource(3))
	assert.NoError(err)

	mean, _ := matrix.Col(2, 0.0)
	eye, _ := matrix.Eye[float64](2)
	prior, err := estimate.NewNormal(mean, eye.Scale(1e6))
	assert.NoError(err)

	s, err := lgs.New[float64](prior, A, B)
	assert.NoError(err)
	for _, y := range obs {
		assert.NoError(s.Train(y))
	}

	// posterior mean converges to the true state
	assert.InDeltaSlice(x.RawData(), s.Posterior().Mean().RawData(), 0.05)
}
